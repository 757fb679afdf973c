package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/availability/model"
	"hotel/shared/constant"
	"hotel/shared/logger"
	"time"

	"github.com/jmoiron/sqlx"
)

// effectiveEnd is the end of a booked interval, honouring stay extensions.
const effectiveEnd = "COALESCE(br.extended_date, br.end_date)"

var (
	countOverlapsQuery = fmt.Sprintf(`SELECT COUNT(*) FROM %s br
WHERE br.room_id = $1 AND br.status <> '%s' AND br.start_date < $3 AND %s > $2 AND br.id::text <> $4`,
		model.BookingRoomTableName, model.StatusCancelled, effectiveEnd)

	lockRoomQuery = fmt.Sprintf(`SELECT id, hotel_id, room_type_id, number, status, out_of_service_until FROM %s
WHERE id = $1 FOR UPDATE`, model.RoomTableName)

	occupancyQuery = fmt.Sprintf(`SELECT
	(SELECT COUNT(*) FROM %[1]s WHERE hotel_id = $1) AS total_rooms,
	(SELECT COUNT(DISTINCT br.room_id) FROM %[2]s br JOIN %[1]s hr ON hr.id = br.room_id
		WHERE hr.hotel_id = $1 AND br.status <> '%[3]s' AND br.start_date <= $2 AND %[4]s > $2) AS booked_rooms`,
		model.RoomTableName, model.BookingRoomTableName, model.StatusCancelled, effectiveEnd)
)

type queryer interface {
	GetContext(ctx context.Context, dest any, query string, args ...any) error
}

type Availability interface {
	CountOverlaps(ctx context.Context, tx *sqlx.Tx, roomID string, start, end time.Time, excludeBookingRoomID string) (int, error)
	LockRoom(ctx context.Context, tx *sqlx.Tx, roomID string) (model.LockedRoom, error)
	OccupancyOn(ctx context.Context, hotelID string, date time.Time) (model.Occupancy, error)
}

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Availability {
	return &repositoryImpl{
		db:   db,
		otel: otel,
	}
}

func (r *repositoryImpl) reader(tx *sqlx.Tx) queryer {
	if tx != nil {
		return tx
	}

	return r.db.Read
}

// CountOverlaps counts the non-cancelled booked intervals of a room intersecting [start, end).
func (r *repositoryImpl) CountOverlaps(ctx context.Context, tx *sqlx.Tx, roomID string, start, end time.Time, excludeBookingRoomID string) (int, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".availability.CountOverlaps")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, countOverlapsQuery)

	var count int
	if err := r.reader(tx).GetContext(ctx, &count, countOverlapsQuery, roomID, start, end, excludeBookingRoomID); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to count overlapping bookings: %w", err)
	}

	return count, nil
}

// LockRoom takes a row lock on the physical room until tx ends. A missing room yields a zero value.
func (r *repositoryImpl) LockRoom(ctx context.Context, tx *sqlx.Tx, roomID string) (model.LockedRoom, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".availability.LockRoom")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, lockRoomQuery)

	var room model.LockedRoom
	if err := tx.GetContext(ctx, &room, lockRoomQuery, roomID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return room, nil
		}

		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return room, fmt.Errorf("failed to lock room: %w", err)
	}

	return room, nil
}

// OccupancyOn returns the hotel room count and the rooms booked on date.
func (r *repositoryImpl) OccupancyOn(ctx context.Context, hotelID string, date time.Time) (model.Occupancy, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".availability.OccupancyOn")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, occupancyQuery)

	var occupancy model.Occupancy
	if err := r.db.Read.GetContext(ctx, &occupancy, occupancyQuery, hotelID, date); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return occupancy, fmt.Errorf("failed to get occupancy: %w", err)
	}

	return occupancy, nil
}
