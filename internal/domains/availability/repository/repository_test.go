package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel/infras/otel/mocks"
	"hotel/infras/postgres"
	"hotel/internal/domains/availability/repository"
)

func newRepo(t *testing.T) (repository.Availability, *sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	conn := sqlx.NewDb(db, "postgres")

	return repository.New(&postgres.Connection{Read: conn, Write: conn}, mocks.NewOtel()), conn, mock
}

func TestRepository_CountOverlaps(t *testing.T) {
	repo, conn, mock := newRepo(t)

	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id, hotel_id, room_type_id, number, status, out_of_service_until FROM hotel_rooms\s+WHERE id = \$1 FOR UPDATE`).
		WithArgs("room-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "hotel_id", "room_type_id", "number", "status", "out_of_service_until"}).
			AddRow("room-1", "hotel-1", "rt-1", "101", "available", nil))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM booking_rooms br\s+WHERE br.room_id = \$1 AND br.status <> 'cancelled' AND br.start_date < \$3 AND COALESCE\(br.extended_date, br.end_date\) > \$2`).
		WithArgs("room-1", start, end, "").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectCommit()

	tx, err := conn.Beginx()
	require.NoError(t, err)

	room, err := repo.LockRoom(context.Background(), tx, "room-1")
	assert.NoError(t, err)
	assert.Equal(t, "101", room.Number)

	count, err := repo.CountOverlaps(context.Background(), tx, "room-1", start, end, "")
	assert.NoError(t, err)
	assert.Equal(t, 2, count)

	assert.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_LockRoomMissing(t *testing.T) {
	repo, conn, mock := newRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM hotel_rooms`).
		WithArgs("room-x").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	tx, err := conn.Beginx()
	require.NoError(t, err)

	room, err := repo.LockRoom(context.Background(), tx, "room-x")
	assert.NoError(t, err)
	assert.Empty(t, room.ID)
	assert.NoError(t, tx.Rollback())
}

func TestRepository_OccupancyOn(t *testing.T) {
	repo, _, mock := newRepo(t)

	date := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`AS total_rooms`).
		WithArgs("hotel-1", date).
		WillReturnRows(sqlmock.NewRows([]string{"total_rooms", "booked_rooms"}).AddRow(10, 8))

	occupancy, err := repo.OccupancyOn(context.Background(), "hotel-1", date)
	assert.NoError(t, err)
	assert.Equal(t, 10, occupancy.TotalRooms)
	assert.Equal(t, 8, occupancy.BookedRooms)
	assert.NoError(t, mock.ExpectationsWereMet())
}
