package bookingtype

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func setupTypeMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() { sqlxDB.Close() }
	return repo, mock, closer
}

var typeCols = []string{"id", "coach_id", "name", "description", "base_price_cents", "is_active", "created_at"}

func TestCreateBookingType(t *testing.T) {
	repo, mock, close := setupTypeMock(t)
	defer close()

	desc := "One hour of focused serve work"

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO booking_types (coach_id, name, description, base_price_cents) VALUES ($1, $2, $3, $4) RETURNING")).
		WithArgs(5, "Serve Technique", desc, int64(10000)).
		WillReturnRows(sqlmock.NewRows(typeCols).
			AddRow(1, 5, "Serve Technique", desc, int64(10000), true, time.Now()))

	created, err := repo.Create(context.Background(), 5, &BookingType{
		Name: "Serve Technique", Description: &desc, BasePriceCents: 10000,
	})
	require.NoError(t, err)
	require.Equal(t, 1, created.ID)
	require.True(t, created.IsActive)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListActive(t *testing.T) {
	repo, mock, close := setupTypeMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM booking_types WHERE is_active = TRUE ORDER BY created_at DESC")).
		WillReturnRows(sqlmock.NewRows(typeCols).
			AddRow(2, 5, "Match Play", nil, int64(15000), true, time.Now()).
			AddRow(1, 6, "Serve Technique", nil, int64(10000), true, time.Now()))

	types, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, types, 2)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListByCoach(t *testing.T) {
	repo, mock, close := setupTypeMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM booking_types WHERE coach_id = $1 ORDER BY created_at DESC")).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows(typeCols).
			AddRow(1, 5, "Serve Technique", nil, int64(10000), false, time.Now()))

	types, err := repo.ListByCoach(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, types, 1)
	require.False(t, types[0].IsActive)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateBookingType(t *testing.T) {
	repo, mock, close := setupTypeMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE booking_types SET name = $1, description = $2, base_price_cents = $3 WHERE id = $4 RETURNING")).
		WithArgs("Serve Clinic", nil, int64(12000), 1).
		WillReturnRows(sqlmock.NewRows(typeCols).
			AddRow(1, 5, "Serve Clinic", nil, int64(12000), true, time.Now()))

	updated, err := repo.Update(context.Background(), &BookingType{
		ID: 1, Name: "Serve Clinic", BasePriceCents: 12000,
	})
	require.NoError(t, err)
	require.Equal(t, int64(12000), updated.BasePriceCents)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeactivateBookingType(t *testing.T) {
	repo, mock, close := setupTypeMock(t)
	defer close()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE booking_types SET is_active = FALSE WHERE id = $1")).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Deactivate(context.Background(), 1)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
