package timegrid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonScheduler/pkg/types"
)

func TestDefault_Times(t *testing.T) {
	g := Default()
	times := g.Times()

	require.Len(t, times, 27)
	assert.Equal(t, types.TimeString("07:00"), times[0])
	assert.Equal(t, types.TimeString("07:30"), times[1])
	assert.Equal(t, types.TimeString("20:00"), times[len(times)-1], "close is the sentinel")
	assert.Equal(t, 26, g.SlotCount())
	assert.Equal(t, 30*time.Minute, g.Step())
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name  string
		open  types.TimeString
		close types.TimeString
		step  int
	}{
		{name: "open after close", open: "20:00", close: "07:00", step: 30},
		{name: "zero step", open: "07:00", close: "20:00", step: 0},
		{name: "not a multiple", open: "07:00", close: "20:10", step: 30},
		{name: "bad format", open: "7h", close: "20:00", step: 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.open, tt.close, tt.step)
			assert.ErrorIs(t, err, ErrInvalidGrid)
		})
	}

	g, err := New("08:00", "12:00", 60)
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"08:00", "09:00", "10:00", "11:00", "12:00"}, g.Times())
}

func TestGrid_SlotsFor_RoundsUp(t *testing.T) {
	g := Default()

	assert.Equal(t, 0, g.SlotsFor(0))
	assert.Equal(t, 1, g.SlotsFor(1))
	assert.Equal(t, 1, g.SlotsFor(30))
	assert.Equal(t, 2, g.SlotsFor(31))
	assert.Equal(t, 3, g.SlotsFor(90))
}

func TestGrid_Snap(t *testing.T) {
	g := Default()

	assert.Equal(t, 600, g.Snap(600))
	assert.Equal(t, 600, g.Snap(614))
	assert.Equal(t, 630, g.Snap(615))
	assert.Equal(t, 630, g.Snap(629))
	assert.Equal(t, 0, g.Snap(10))
	assert.Equal(t, -30, g.Snap(-20))
}

func TestGrid_IsOnGrid(t *testing.T) {
	g := Default()

	assert.True(t, g.IsOnGrid("07:00"))
	assert.True(t, g.IsOnGrid("19:30"))
	assert.False(t, g.IsOnGrid("20:00"), "a slot may not start at closing")
	assert.False(t, g.IsOnGrid("06:30"))
	assert.False(t, g.IsOnGrid("09:15"))
	assert.Equal(t, 4, g.IndexOf("09:00"))
	assert.Equal(t, -1, g.IndexOf("09:10"))
}

func TestGrid_At(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	day := time.Date(2026, 5, 4, 17, 45, 0, 0, loc)

	got := Default().At(day, "09:30")
	assert.Equal(t, time.Date(2026, 5, 4, 9, 30, 0, 0, loc), got)
}
