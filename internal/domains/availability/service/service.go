package service

import (
	"context"
	"fmt"
	"hotel/infras/otel"
	"hotel/internal/domains/availability/model"
	"hotel/internal/domains/availability/repository"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type Availability interface {
	IsRoomAvailable(ctx context.Context, tx *sqlx.Tx, roomID string, start, end time.Time, excludeBookingRoomID string) (bool, error)
	EnsureRoomAvailable(ctx context.Context, tx *sqlx.Tx, roomID, roomNumber string, start, end time.Time, excludeBookingRoomID string) error
	LockRoom(ctx context.Context, tx *sqlx.Tx, roomID string) (model.LockedRoom, error)
	OccupancyOn(ctx context.Context, hotelID string, date time.Time) (model.Occupancy, error)
}

type serviceImpl struct {
	repo repository.Availability
	otel otel.Otel
}

func New(repo repository.Availability, otel otel.Otel) Availability {
	return &serviceImpl{
		repo: repo,
		otel: otel,
	}
}

// Overlaps reports whether the half-open intervals [s1, e1) and [s2, e2) intersect.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && e1.After(s2)
}

func (s *serviceImpl) IsRoomAvailable(ctx context.Context, tx *sqlx.Tx, roomID string, start, end time.Time, excludeBookingRoomID string) (ok bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".IsRoomAvailable")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !end.After(start) {
		return false, nil
	}

	count, err := s.repo.CountOverlaps(ctx, tx, roomID, start, end, excludeBookingRoomID)
	if err != nil {
		log.Error().Err(err).Str("room_id", roomID).Msg("failed to check room availability")

		return false, fmt.Errorf("failed to check room availability: %w", err)
	}

	return count == 0, nil
}

func (s *serviceImpl) EnsureRoomAvailable(ctx context.Context, tx *sqlx.Tx, roomID, roomNumber string, start, end time.Time, excludeBookingRoomID string) error {
	ok, err := s.IsRoomAvailable(ctx, tx, roomID, start, end, excludeBookingRoomID)
	if err != nil {
		return err
	}

	if !ok {
		return failure.BadRequestFromString(fmt.Sprintf("room %s is not available for selected dates", roomNumber)) // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) LockRoom(ctx context.Context, tx *sqlx.Tx, roomID string) (room model.LockedRoom, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".LockRoom")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	room, err = s.repo.LockRoom(ctx, tx, roomID)
	if err != nil {
		log.Error().Err(err).Str("room_id", roomID).Msg("failed to lock room")

		return room, fmt.Errorf("failed to lock room: %w", err)
	}

	if room.ID == "" {
		return room, failure.NotFound("room not found") // nolint:wrapcheck
	}

	return room, nil
}

func (s *serviceImpl) OccupancyOn(ctx context.Context, hotelID string, date time.Time) (occupancy model.Occupancy, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".OccupancyOn")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	occupancy, err = s.repo.OccupancyOn(ctx, hotelID, date)
	if err != nil {
		log.Error().Err(err).Msg("failed to get occupancy")

		return occupancy, fmt.Errorf("failed to get occupancy: %w", err)
	}

	return occupancy, nil
}
