package request

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
)

func TestRepository_CreateAndList(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	start := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	a := domain.Appointment{
		ID:                   11,
		ClientName:           "Joana",
		ClientPhone:          "11912345678",
		ProfessionalUsername: "ana",
		Services:             []domain.Service{{Name: "Escova", Value: 60, DurationMinutes: 30}},
		DateTime:             start,
		EndTime:              start.Add(30 * time.Minute),
		Status:               domain.StatusPending,
		CreatedAt:            start.Add(-time.Hour),
	}

	mock.ExpectExec(`INSERT INTO appointment_requests \(id,client_name`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rows := sqlmock.NewRows(columns).AddRow(
		int64(11), "Joana", "11912345678", nil, "ana",
		[]byte(`[{"name":"Escova","value":60,"durationMinutes":30}]`),
		start, start.Add(30*time.Minute), nil, start.Add(-time.Hour),
	)
	mock.ExpectQuery(`SELECT (.+) FROM appointment_requests ORDER BY created_at ASC, id ASC`).
		WillReturnRows(rows)

	repo := NewRepository(db)
	require.NoError(t, repo.Create(context.Background(), a))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, domain.StatusPending, got[0].Status)
	assert.Equal(t, a.Services, got[0].Services)
	assert.Equal(t, a.EndTime, got[0].EndTime)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Delete_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM appointment_requests WHERE id = \$1`).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = NewRepository(db).Delete(context.Background(), 5)
	assert.ErrorIs(t, err, ErrRequestNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM appointment_requests WHERE id = \$1$`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(columns))

	_, err = NewRepository(db).GetByID(context.Background(), 5)
	assert.ErrorIs(t, err, ErrRequestNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
