package service

import (
	"context"
	"fmt"
	"hotel/internal/domains/booking/event"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	guestModel "hotel/internal/domains/guest/model"
	guestDto "hotel/internal/domains/guest/model/dto"
	roomModel "hotel/internal/domains/room/model"
	"hotel/shared"
	"hotel/shared/clock"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"slices"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// CheckIn links the arriving guests and moves the room to checked in; repeated calls only add guests.
func (s *serviceImpl) CheckIn(ctx context.Context, req dto.CheckInRequest, bookingRoomID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckIn")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	at, err := parseTimestamp(req.CheckInAt, s.clock.Now())
	if err != nil {
		return err
	}

	var room model.BookingRoom

	err = s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		room, err = s.lockBookingRoom(ctx, tx, bookingRoomID)
		if err != nil {
			return err
		}

		if err = ensureOpen(room); err != nil {
			return err
		}

		linked, err := s.roomGuests(ctx, tx, room.ID, "")
		if err != nil {
			return err
		}

		for _, guestReq := range req.Guests {
			guestID, err := s.upsertGuest(ctx, tx, guestReq, room.HotelID)
			if err != nil {
				return err
			}

			if slices.ContainsFunc(linked, func(g model.BookingGuest) bool { return g.GuestID == guestID }) {
				continue
			}

			if err = s.link(ctx, tx, room.ID, guestID); err != nil {
				return err
			}

			linked = append(linked, model.BookingGuest{BookingRoomID: room.ID, GuestID: guestID})
		}

		if room.Status == model.RoomStatusCheckedIn {
			return nil
		}

		err = s.updateBookingRoom(ctx, tx, room.ID, map[string]any{
			model.FieldStatus:          model.RoomStatusCheckedIn,
			model.FieldActualCheckInAt: at,
		})
		if err != nil {
			return err
		}

		return s.setRoomStatus(ctx, tx, room.HotelID, room.RoomID, roomModel.StatusOccupied)
	})
	if err != nil {
		return s.txError(err, "failed to check in")
	}

	s.changed(ctx, event.TypeBookingCheckedIn, bookingOf(room))

	return nil
}

// upsertGuest updates the hotel guest with the same phone in place or registers a new one.
func (s *serviceImpl) upsertGuest(ctx context.Context, tx *sqlx.Tx, req guestDto.GuestRequest, hotelID string) (string, error) {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	now := s.clock.Now()

	if phone := strings.TrimSpace(req.Phone); phone != "" {
		filter := shared.FilterAnd(
			gDto.Filter{Field: guestModel.FieldPhone, Value: phone, Operator: gDto.FilterOperatorEq, Table: guestModel.TableName},
			gDto.Filter{Field: guestModel.FieldHotelID, Value: hotelID, Operator: gDto.FilterOperatorEq, Table: guestModel.TableName},
		)

		guest, err := s.guestRepo.GetTx(ctx, tx, filter, guestModel.FieldID)
		if err != nil {
			return "", fmt.Errorf("failed to find guest by phone: %w", err)
		}

		if guest.ID != "" {
			fields := shared.TransformFields(req.ToUpdate(), user, now)
			if err = s.guestRepo.UpdateTx(ctx, tx, fields, shared.FilterByID(guest.ID, guestModel.FieldID, guestModel.TableName)); err != nil {
				return "", fmt.Errorf("failed to update guest: %w", err)
			}

			return guest.ID, nil
		}
	}

	guest := req.ToModel(hotelID, user, now)
	if err := s.guestRepo.InsertTx(ctx, tx, guest); err != nil {
		return "", fmt.Errorf("failed to create guest: %w", err)
	}

	return guest.ID, nil
}

// UpdateRoomActualTimes corrects the recorded arrival or departure of a room.
func (s *serviceImpl) UpdateRoomActualTimes(ctx context.Context, req dto.ActualTimesRequest, bookingRoomID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateRoomActualTimes")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var room model.BookingRoom

	err = s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		room, err = s.lockBookingRoom(ctx, tx, bookingRoomID)
		if err != nil {
			return err
		}

		if room.BookingStatus == model.StatusCancelled || room.Status == model.RoomStatusCancelled {
			return failure.BadRequestFromString("room is cancelled") // nolint:wrapcheck
		}

		fields := map[string]any{}
		checkIn := room.ActualCheckInAt
		status := room.Status

		if req.CheckInAt != "" {
			at, err := parseTimestamp(req.CheckInAt, time.Time{})
			if err != nil {
				return err
			}

			day := clock.DateOf(s.clock, at)
			if day.Before(room.StartDate) || day.After(room.EffectiveEndDate()) {
				return failure.BadRequestFromString("check in must be within the booked dates") // nolint:wrapcheck
			}

			checkIn = &at
			fields[model.FieldActualCheckInAt] = at

			if status == model.RoomStatusPending {
				status = model.RoomStatusCheckedIn
			}
		}

		if req.CheckOutAt != "" {
			at, err := parseTimestamp(req.CheckOutAt, time.Time{})
			if err != nil {
				return err
			}

			if checkIn == nil {
				return failure.BadRequestFromString("room is not checked in") // nolint:wrapcheck
			}

			if clock.DateOf(s.clock, at).Before(room.StartDate) || !at.After(*checkIn) {
				return failure.BadRequestFromString("check out must be after check in") // nolint:wrapcheck
			}

			fields[model.FieldActualCheckOutAt] = at
			status = model.RoomStatusCheckedOut
		}

		if status != room.Status {
			fields[model.FieldStatus] = status
		}

		if err = s.updateBookingRoom(ctx, tx, room.ID, fields); err != nil {
			return err
		}

		switch {
		case status == room.Status:
			return nil
		case status == model.RoomStatusCheckedOut:
			return s.setRoomStatus(ctx, tx, room.HotelID, room.RoomID, roomModel.StatusDirty)
		default:
			return s.setRoomStatus(ctx, tx, room.HotelID, room.RoomID, roomModel.StatusOccupied)
		}
	})
	if err != nil {
		return s.txError(err, "failed to update actual times")
	}

	s.changed(ctx, event.TypeBookingUpdated, bookingOf(room))

	return nil
}

// ChangeRoom moves a booking room to another physical room of the same hotel.
func (s *serviceImpl) ChangeRoom(ctx context.Context, req dto.ChangeRoomRequest, bookingRoomID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ChangeRoom")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var room model.BookingRoom

	err = s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		room, err = s.lockBookingRoom(ctx, tx, bookingRoomID)
		if err != nil {
			return err
		}

		if err = ensureOpen(room); err != nil {
			return err
		}

		if room.RoomID == req.RoomID {
			return failure.BadRequestFromString("booking room is already in this room") // nolint:wrapcheck
		}

		target, err := s.availability.LockRoom(ctx, tx, req.RoomID)
		if err != nil {
			return err //nolint:wrapcheck
		}

		if target.HotelID != room.HotelID {
			return failure.BadRequestFromString(fmt.Sprintf("room %s does not belong to the hotel", target.Number)) // nolint:wrapcheck
		}

		if target.Status == roomModel.StatusOutOfService {
			return failure.BadRequestFromString(fmt.Sprintf("room %s is out of service", target.Number)) // nolint:wrapcheck
		}

		err = s.availability.EnsureRoomAvailable(ctx, tx, target.ID, target.Number, room.StartDate, room.EffectiveEndDate(), room.ID)
		if err != nil {
			return err //nolint:wrapcheck
		}

		err = s.updateBookingRoom(ctx, tx, room.ID, map[string]any{
			model.FieldRoomID:   target.ID,
			model.FieldRoomName: target.Number,
		})
		if err != nil {
			return err
		}

		if err = s.setRoomStatus(ctx, tx, room.HotelID, room.RoomID, roomModel.StatusAvailable); err != nil {
			return err
		}

		if room.Status != model.RoomStatusCheckedIn {
			return nil
		}

		return s.setRoomStatus(ctx, tx, room.HotelID, target.ID, roomModel.StatusOccupied)
	})
	if err != nil {
		return s.txError(err, "failed to change room")
	}

	s.changed(ctx, event.TypeBookingUpdated, bookingOf(room))

	return nil
}

// MoveGuest moves a guest to another room of the same booking.
func (s *serviceImpl) MoveGuest(ctx context.Context, req dto.MoveGuestRequest, bookingRoomID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MoveGuest")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var source model.BookingRoom

	err = s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		var target model.BookingRoom

		source, target, err = s.lockPair(ctx, tx, bookingRoomID, req.TargetBookingRoomID)
		if err != nil {
			return err
		}

		if source.BookingID != target.BookingID {
			return failure.BadRequestFromString("rooms belong to different bookings") // nolint:wrapcheck
		}

		if err = ensureOpen(target); err != nil {
			return err
		}

		if _, err = s.linkedGuest(ctx, tx, source.ID, req.GuestID); err != nil {
			return err
		}

		fields := map[string]any{model.FieldBookingRoomID: target.ID}
		s.stamp(ctx, fields)

		if err = s.repos.Guest.UpdateTx(ctx, tx, fields, guestLinkFilter(source.ID, req.GuestID)); err != nil {
			return fmt.Errorf("failed to move guest: %w", err)
		}

		return nil
	})
	if err != nil {
		return s.txError(err, "failed to move guest")
	}

	s.changed(ctx, event.TypeBookingUpdated, bookingOf(source))

	return nil
}

// SwapGuests exchanges two guests between rooms of the same booking and room type.
func (s *serviceImpl) SwapGuests(ctx context.Context, req dto.SwapGuestsRequest, bookingRoomID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SwapGuests")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var source model.BookingRoom

	err = s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		var target model.BookingRoom

		source, target, err = s.lockPair(ctx, tx, bookingRoomID, req.TargetBookingRoomID)
		if err != nil {
			return err
		}

		if source.BookingID != target.BookingID {
			return failure.BadRequestFromString("rooms belong to different bookings") // nolint:wrapcheck
		}

		if source.BookingRoomTypeID != target.BookingRoomTypeID {
			return failure.BadRequestFromString("rooms belong to different room types") // nolint:wrapcheck
		}

		first, err := s.linkedGuest(ctx, tx, source.ID, req.GuestID)
		if err != nil {
			return err
		}

		second, err := s.linkedGuest(ctx, tx, target.ID, req.TargetGuestID)
		if err != nil {
			return err
		}

		for _, link := range []model.BookingGuest{first, second} {
			if err = s.repos.Guest.DeleteTx(ctx, tx, guestLinkFilter(link.BookingRoomID, link.GuestID)); err != nil {
				return fmt.Errorf("failed to unlink guest: %w", err)
			}
		}

		if err = s.link(ctx, tx, target.ID, first.GuestID); err != nil {
			return err
		}

		return s.link(ctx, tx, source.ID, second.GuestID)
	})
	if err != nil {
		return s.txError(err, "failed to swap guests")
	}

	s.changed(ctx, event.TypeBookingUpdated, bookingOf(source))

	return nil
}

func (s *serviceImpl) UpdateGuestInRoom(ctx context.Context, req guestDto.UpdateGuestRequest, bookingRoomID, guestID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateGuestInRoom")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req == (guestDto.UpdateGuestRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	var room model.BookingRoom

	err = s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		room, err = s.lockBookingRoom(ctx, tx, bookingRoomID)
		if err != nil {
			return err
		}

		if _, err = s.linkedGuest(ctx, tx, room.ID, guestID); err != nil {
			return err
		}

		user, _ := ctx.Value(constant.ContextKeyUserID).(string)

		fields := shared.TransformFields(req, user, s.clock.Now())
		if err = s.guestRepo.UpdateTx(ctx, tx, fields, shared.FilterByID(guestID, guestModel.FieldID, guestModel.TableName)); err != nil {
			return fmt.Errorf("failed to update guest: %w", err)
		}

		return nil
	})
	if err != nil {
		return s.txError(err, "failed to update guest in room")
	}

	s.changed(ctx, event.TypeBookingUpdated, bookingOf(room))

	return nil
}

func (s *serviceImpl) RemoveGuestFromRoom(ctx context.Context, bookingRoomID, guestID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RemoveGuestFromRoom")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var room model.BookingRoom

	err = s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		room, err = s.lockBookingRoom(ctx, tx, bookingRoomID)
		if err != nil {
			return err
		}

		if _, err = s.linkedGuest(ctx, tx, room.ID, guestID); err != nil {
			return err
		}

		if err = s.repos.Guest.DeleteTx(ctx, tx, guestLinkFilter(room.ID, guestID)); err != nil {
			return fmt.Errorf("failed to remove guest: %w", err)
		}

		return nil
	})
	if err != nil {
		return s.txError(err, "failed to remove guest from room")
	}

	s.changed(ctx, event.TypeBookingUpdated, bookingOf(room))

	return nil
}

// ExtendStay pushes the end of the selected rooms, or every staying room, to a later date.
func (s *serviceImpl) ExtendStay(ctx context.Context, req dto.ExtendStayRequest, bookingID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ExtendStay")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	newEnd, err := clock.ParseDate(req.NewEndDate)
	if err != nil {
		return failure.BadRequestFromString("invalid new end date") // nolint:wrapcheck
	}

	var booking model.Booking

	err = s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		booking, err = s.lockBooking(ctx, tx, bookingID)
		if err != nil {
			return err
		}

		if booking.IsTerminal() {
			return failure.BadRequestFromString(fmt.Sprintf("booking is %s", booking.Status)) // nolint:wrapcheck
		}

		rooms, err := s.roomsOf(ctx, tx, bookingID)
		if err != nil {
			return err
		}

		extended := 0
		delta := decimal.Zero

		for _, room := range rooms {
			if len(req.BookingRoomIDs) > 0 && !slices.Contains(req.BookingRoomIDs, room.ID) {
				continue
			}

			if room.Status != model.RoomStatusPending && room.Status != model.RoomStatusCheckedIn {
				if len(req.BookingRoomIDs) > 0 {
					return failure.BadRequestFromString(fmt.Sprintf("room %s is %s", room.RoomName, room.Status)) // nolint:wrapcheck
				}

				continue
			}

			amount, err := s.extend(ctx, tx, room, newEnd)
			if err != nil {
				return err
			}

			delta = delta.Add(amount)
			extended++
		}

		if extended == 0 {
			return failure.BadRequestFromString("no room to extend") // nolint:wrapcheck
		}

		return s.updateBooking(ctx, tx, bookingID, map[string]any{
			model.FieldTotalAmount: booking.TotalAmount.Add(delta),
			model.FieldLeftAmount:  booking.LeftAmount.Add(delta),
		})
	})
	if err != nil {
		return s.txError(err, "failed to extend stay")
	}

	s.changed(ctx, event.TypeBookingUpdated, booking)

	return nil
}

// extend checks [effective end, newEnd) and returns the price of the extra nights at the booked rate.
func (s *serviceImpl) extend(ctx context.Context, tx *sqlx.Tx, room model.BookingRoom, newEnd time.Time) (decimal.Decimal, error) {
	current := room.EffectiveEndDate()
	if !newEnd.After(current) {
		return decimal.Zero, failure.BadRequestFromString(fmt.Sprintf("new end date must be after %s", current.Format(constant.DateOnly))) // nolint:wrapcheck
	}

	if _, err := s.availability.LockRoom(ctx, tx, room.RoomID); err != nil {
		return decimal.Zero, err //nolint:wrapcheck
	}

	if err := s.availability.EnsureRoomAvailable(ctx, tx, room.RoomID, room.RoomName, current, newEnd, room.ID); err != nil {
		return decimal.Zero, err //nolint:wrapcheck
	}

	if err := s.updateBookingRoom(ctx, tx, room.ID, map[string]any{model.FieldExtendedDate: newEnd}); err != nil {
		return decimal.Zero, err
	}

	return room.Price.Mul(decimal.NewFromInt(int64(clock.Days(current, newEnd)))), nil
}

// CheckOut closes every staying room and settles the booking on the actual stay.
func (s *serviceImpl) CheckOut(ctx context.Context, req dto.CheckOutRequest, bookingID string) (res dto.CheckOutResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckOut")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var booking model.Booking

	err = s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		booking, res, err = s.checkOut(ctx, tx, req, bookingID)

		return err
	})
	if err != nil {
		return res, s.txError(err, "failed to check out")
	}

	s.CheckedOut(ctx, booking)

	return res, nil
}

// CheckOutTx checks the booking out inside tx. The caller calls CheckedOut once tx commits.
func (s *serviceImpl) CheckOutTx(ctx context.Context, tx *sqlx.Tx, req dto.CheckOutRequest, bookingID string) (res dto.CheckOutResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckOutTx")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	_, res, err = s.checkOut(ctx, tx, req, bookingID)

	return res, err
}

// CheckedOut invalidates cached bookings and publishes the check-out event.
func (s *serviceImpl) CheckedOut(ctx context.Context, booking model.Booking) {
	s.changed(ctx, event.TypeBookingCheckedOut, booking)
}

func (s *serviceImpl) checkOut(ctx context.Context, tx *sqlx.Tx, req dto.CheckOutRequest, bookingID string) (booking model.Booking, res dto.CheckOutResponse, err error) {
	at, err := parseTimestamp(req.CheckOutAt, s.clock.Now())
	if err != nil {
		return booking, res, err
	}

	booking, err = s.lockBooking(ctx, tx, bookingID)
	if err != nil {
		return booking, res, err
	}

	if booking.IsTerminal() {
		return booking, res, failure.BadRequestFromString(fmt.Sprintf("booking is %s", booking.Status)) // nolint:wrapcheck
	}

	rooms, err := s.roomsOf(ctx, tx, bookingID)
	if err != nil {
		return booking, res, err
	}

	if !slices.ContainsFunc(rooms, func(r model.BookingRoom) bool { return r.Status != model.RoomStatusCancelled }) {
		return booking, res, failure.BadRequestFromString("booking has no room to check out") // nolint:wrapcheck
	}

	for i, room := range rooms {
		if room.Status == model.RoomStatusCancelled || room.Status == model.RoomStatusCheckedOut {
			continue
		}

		err = s.updateBookingRoom(ctx, tx, room.ID, map[string]any{
			model.FieldStatus:           model.RoomStatusCheckedOut,
			model.FieldActualCheckOutAt: at,
		})
		if err != nil {
			return booking, res, err
		}

		if err = s.setRoomStatus(ctx, tx, booking.HotelID, room.RoomID, roomModel.StatusDirty); err != nil {
			return booking, res, err
		}

		rooms[i].Status = model.RoomStatusCheckedOut
		rooms[i].ActualCheckOutAt = &at
	}

	stayAmount, err := s.pricing.PriceBooking(ctx, stays(rooms))
	if err != nil {
		return booking, res, fmt.Errorf("failed to price booking: %w", err)
	}

	// additional booking amount stays out of the stay total
	res.TotalAmount = stayAmount.Add(booking.AdditionalAmount)
	res.LeftAmount = nonNegative(res.TotalAmount.Sub(booking.DepositAmount.Add(req.FinalPayment)))

	err = s.updateBooking(ctx, tx, bookingID, map[string]any{
		model.FieldTotalAmount: res.TotalAmount,
		model.FieldLeftAmount:  res.LeftAmount,
	})

	return booking, res, err
}

// lockPair locks two booking rooms in id order.
func (s *serviceImpl) lockPair(ctx context.Context, tx *sqlx.Tx, sourceID, targetID string) (source, target model.BookingRoom, err error) {
	if sourceID == targetID {
		return source, target, failure.BadRequestFromString("source and target rooms are the same") // nolint:wrapcheck
	}

	first, second := sourceID, targetID
	if second < first {
		first, second = second, first
	}

	locked := map[string]model.BookingRoom{}

	for _, id := range []string{first, second} {
		room, err := s.lockBookingRoom(ctx, tx, id)
		if err != nil {
			return source, target, err
		}

		locked[id] = room
	}

	return locked[sourceID], locked[targetID], nil
}

func (s *serviceImpl) roomGuests(ctx context.Context, tx *sqlx.Tx, bookingRoomID, guestID string) ([]model.BookingGuest, error) {
	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldBookingRoomID, Value: bookingRoomID, Operator: gDto.FilterOperatorEq, Table: model.GuestTableName},
		},
	}

	if guestID != "" {
		filter = guestLinkFilter(bookingRoomID, guestID)
	}

	guests, err := s.repos.Guest.GetAllTx(ctx, tx, gDto.QueryParams{}, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get room guests: %w", err)
	}

	return guests, nil
}

func (s *serviceImpl) linkedGuest(ctx context.Context, tx *sqlx.Tx, bookingRoomID, guestID string) (model.BookingGuest, error) {
	guests, err := s.roomGuests(ctx, tx, bookingRoomID, guestID)
	if err != nil {
		return model.BookingGuest{}, err
	}

	if len(guests) == 0 {
		return model.BookingGuest{}, failure.NotFound("guest is not in the room") // nolint:wrapcheck
	}

	return guests[0], nil
}

func (s *serviceImpl) link(ctx context.Context, tx *sqlx.Tx, bookingRoomID, guestID string) error {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	link := model.BookingGuest{
		BookingRoomID: bookingRoomID,
		GuestID:       guestID,
	}
	link.Metadata.CreatedAt, link.Metadata.ModifiedAt = s.clock.Now(), s.clock.Now()
	link.Metadata.CreatedBy, link.Metadata.ModifiedBy = user, user

	if err := s.repos.Guest.InsertTx(ctx, tx, link); err != nil {
		return fmt.Errorf("failed to link guest: %w", err)
	}

	return nil
}

func guestLinkFilter(bookingRoomID, guestID string) gDto.FilterGroup {
	return shared.FilterAnd(
		gDto.Filter{Field: model.FieldBookingRoomID, Value: bookingRoomID, Operator: gDto.FilterOperatorEq, Table: model.GuestTableName},
		gDto.Filter{Field: model.FieldGuestID, Value: guestID, Operator: gDto.FilterOperatorEq, Table: model.GuestTableName},
	)
}
