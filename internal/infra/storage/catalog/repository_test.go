package catalog

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
)

func TestRepository_ListServices(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"name", "value", "duration_minutes", "category"}).
		AddRow("Corte", 50.0, 30, "hair").
		AddRow("Manicure", 35.0, 45, "nails")
	mock.ExpectQuery(`SELECT name, value, duration_minutes, category FROM services WHERE is_active = \$1 ORDER BY category ASC, name ASC`).
		WithArgs(true).
		WillReturnRows(rows)

	got, err := NewRepository(db).ListServices(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Service{
		{Name: "Corte", Value: 50, DurationMinutes: 30, Category: "hair"},
		{Name: "Manicure", Value: 35, DurationMinutes: 45, Category: "nails"},
	}, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListServices_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM services").WillReturnError(assert.AnError)

	_, err = NewRepository(db).ListServices(context.Background())
	assert.ErrorIs(t, err, ErrExecQuery)
}
