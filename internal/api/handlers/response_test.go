package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondError(t *testing.T) {
	w := httptest.NewRecorder()
	RespondConflict(w, "занято")

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"code":409,"message":"занято"}`, w.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Force bool `json:"force"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"force":true}`))
	require.NoError(t, DecodeJSON(r, &dst))
	assert.True(t, dst.Force)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	assert.ErrorIs(t, DecodeJSON(r, &dst), ErrEmptyBody)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"unknown":1}`))
	assert.Error(t, DecodeJSON(r, &dst))
}

func TestParseDate_UsesLocation(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)

	d, err := ParseDate("2026-05-04", loc)
	require.NoError(t, err)
	assert.Equal(t, loc, d.Location())
	assert.Equal(t, 4, d.Day())

	_, err = ParseDate("04/05/2026", loc)
	assert.Error(t, err)

	empty, err := ParseOptionalDate("", loc)
	require.NoError(t, err)
	assert.Nil(t, empty)
}
