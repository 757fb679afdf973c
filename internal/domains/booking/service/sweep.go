package service

import (
	"context"
	"fmt"
	"hotel/internal/domains/booking/event"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/shared"
	"hotel/shared/clock"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"slices"
	"time"

	"github.com/jmoiron/sqlx"
)

// CancelNoShows cancels the pending rooms due on the sweep date that nobody checked in to.
// A booking left with only cancelled rooms is cancelled too.
func (s *serviceImpl) CancelNoShows(ctx context.Context, req dto.SweepRequest) (res dto.NoShowResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CancelNoShows")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	date, err := s.sweepDate(req.Date)
	if err != nil {
		return res, err
	}

	filters := []any{
		gDto.Filter{ArgName: "room_status", Field: model.FieldStatus, Value: model.RoomStatusPending, Operator: gDto.FilterOperatorEq, Table: model.RoomTableName},
		gDto.Filter{Field: model.FieldActualCheckInAt, Operator: gDto.FilterIsNull, Table: model.RoomTableName},
		gDto.Filter{Field: model.FieldStartDate, Value: date, Operator: gDto.FilterOperatorEq, Table: model.RoomTableName},
	}

	if hotelID := shared.HotelIDFromContext(ctx, req.HotelID); hotelID != "" {
		filters = append(filters, gDto.Filter{Field: model.FieldHotelID, Value: hotelID, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	affected := []model.Booking{}

	err = s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		rooms, err := s.repos.Room.GetAllTx(ctx, tx, gDto.QueryParams{}, shared.FilterAnd(filters...))
		if err != nil {
			return fmt.Errorf("failed to get no-show rooms: %w", err)
		}

		for _, room := range rooms {
			if err = s.cancelRoom(ctx, tx, room.HotelID, room); err != nil {
				return err
			}

			if !slices.ContainsFunc(affected, func(b model.Booking) bool { return b.ID == room.BookingID }) {
				affected = append(affected, bookingOf(room))
			}
		}

		for _, booking := range affected {
			if err = s.cancelIfEmpty(ctx, tx, booking.ID); err != nil {
				return err
			}
		}

		res.CancelledRooms = len(rooms)
		res.AffectedBookings = len(affected)

		return nil
	})
	if err != nil {
		return dto.NoShowResponse{}, s.txError(err, "failed to cancel no-show rooms")
	}

	if len(affected) > 0 {
		s.changed(ctx, event.TypeBookingSwept, affected...)
	}

	return res, nil
}

func (s *serviceImpl) cancelIfEmpty(ctx context.Context, tx *sqlx.Tx, bookingID string) error {
	rooms, err := s.roomsOf(ctx, tx, bookingID)
	if err != nil {
		return err
	}

	if slices.ContainsFunc(rooms, func(r model.BookingRoom) bool { return r.Status != model.RoomStatusCancelled }) {
		return nil
	}

	return s.updateBooking(ctx, tx, bookingID, map[string]any{model.FieldStatus: model.StatusCancelled})
}

// AutoCancel marks as missing the open bookings whose first day has passed without any check-in.
func (s *serviceImpl) AutoCancel(ctx context.Context, req dto.SweepRequest) (res dto.AutoCancelResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AutoCancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	date, err := s.sweepDate(req.Date)
	if err != nil {
		return res, err
	}

	filters := []any{
		openBookings(),
		gDto.Filter{Field: model.FieldStartDate, Value: date, Operator: gDto.FilterOperatorLess, Table: model.TableName},
	}

	if hotelID := shared.HotelIDFromContext(ctx, req.HotelID); hotelID != "" {
		filters = append(filters, gDto.Filter{Field: model.FieldHotelID, Value: hotelID, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	missing := []model.Booking{}

	err = s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		bookings, err := s.repos.Booking.GetAllTx(ctx, tx, gDto.QueryParams{}, shared.FilterAnd(filters...))
		if err != nil {
			return fmt.Errorf("failed to get overdue bookings: %w", err)
		}

		for _, booking := range bookings {
			rooms, err := s.roomsOf(ctx, tx, booking.ID)
			if err != nil {
				return err
			}

			if slices.ContainsFunc(rooms, func(r model.BookingRoom) bool { return r.ActualCheckInAt != nil }) {
				continue
			}

			if err = s.updateBooking(ctx, tx, booking.ID, map[string]any{model.FieldStatus: model.StatusMissing}); err != nil {
				return err
			}

			missing = append(missing, booking)
		}

		return nil
	})
	if err != nil {
		return res, s.txError(err, "failed to auto cancel bookings")
	}

	if len(missing) > 0 {
		s.changed(ctx, event.TypeBookingSwept, missing...)
	}

	res.MissingBookings = len(missing)

	return res, nil
}

func (s *serviceImpl) sweepDate(value string) (time.Time, error) {
	if value == "" {
		return clock.Today(s.clock), nil
	}

	date, err := clock.ParseDate(value)
	if err != nil {
		return date, failure.BadRequestFromString("invalid sweep date") // nolint:wrapcheck
	}

	return date, nil
}

func openBookings() gDto.Filter {
	return gDto.Filter{
		ArgName:  "booking_status",
		Field:    model.FieldStatus,
		Value:    []string{model.StatusPending, model.StatusConfirmed},
		Operator: gDto.FilterOperatorIn,
		Table:    model.TableName,
	}
}
