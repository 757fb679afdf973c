package service

import (
	"cmp"
	"context"
	"fmt"
	"hotel/internal/domains/booking/event"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	guestModel "hotel/internal/domains/guest/model"
	guestDto "hotel/internal/domains/guest/model/dto"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"slices"
	"time"

	"github.com/jmoiron/sqlx"
)

// Update applies booking, primary guest and room type changes in one transaction.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateBooking")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var booking model.Booking

	err = s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		booking, err = s.update(ctx, tx, req, id)

		return err
	})
	if err != nil {
		return s.txError(err, "failed to update booking")
	}

	s.changed(ctx, event.TypeBookingUpdated, booking)

	return nil
}

// UpdateTx applies the update inside tx. The caller announces the change once tx commits.
func (s *serviceImpl) UpdateTx(ctx context.Context, tx *sqlx.Tx, req dto.UpdateBookingRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateBookingTx")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	_, err = s.update(ctx, tx, req, id)

	return err
}

func (s *serviceImpl) update(ctx context.Context, tx *sqlx.Tx, req dto.UpdateBookingRequest, id string) (model.Booking, error) {
	booking, err := s.lockBooking(ctx, tx, id)
	if err != nil {
		return booking, err
	}

	if booking.IsTerminal() {
		return booking, failure.BadRequestFromString(fmt.Sprintf("booking is %s", booking.Status)) // nolint:wrapcheck
	}

	fields, dateChanged, err := bookingFields(req, &booking)
	if err != nil {
		return booking, err
	}

	if err = s.updatePrimaryGuest(ctx, tx, req.PrimaryGuest, booking.PrimaryGuestID); err != nil {
		return booking, err
	}

	if err = s.updateRoomTypes(ctx, tx, req.RoomTypes, booking, dateChanged); err != nil {
		return booking, err
	}

	return booking, s.updateBooking(ctx, tx, id, fields)
}

// bookingFields builds the booking column updates and moves booking to the requested dates.
func bookingFields(req dto.UpdateBookingRequest, booking *model.Booking) (map[string]any, bool, error) {
	fields := map[string]any{}

	start, end := booking.StartDate, booking.EndDate
	if req.StartDate != "" || req.EndDate != "" {
		var err error

		start, end, err = parseRange(orDefault(req.StartDate, booking.StartDate), orDefault(req.EndDate, booking.EndDate))
		if err != nil {
			return nil, false, err
		}
	}

	dateChanged := !start.Equal(booking.StartDate) || !end.Equal(booking.EndDate)
	if dateChanged {
		fields[model.FieldStartDate] = start
		fields[model.FieldEndDate] = end
		booking.StartDate, booking.EndDate = start, end
	}

	total, deposit := booking.TotalAmount, booking.DepositAmount

	if req.TotalAmount.Valid {
		total = req.TotalAmount.Decimal
		fields[model.FieldTotalAmount] = total
	}

	if req.DepositAmount.Valid {
		deposit = req.DepositAmount.Decimal
		fields[model.FieldDepositAmount] = deposit
	}

	if req.TotalAmount.Valid || req.DepositAmount.Valid {
		fields[model.FieldLeftAmount] = nonNegative(total.Sub(deposit))
	}

	if req.DiscountAmount.Valid {
		fields[model.FieldDiscountAmount] = req.DiscountAmount.Decimal
	}

	if req.AdditionalAmount.Valid {
		fields[model.FieldAdditionalAmount] = req.AdditionalAmount.Decimal
	}

	if req.AdditionalBookingAmount.Valid {
		fields[model.FieldAdditionalBookingAmount] = req.AdditionalBookingAmount.Decimal
	}

	for field, value := range map[string]*string{
		model.FieldPromotionCode:          req.PromotionCode,
		model.FieldAdditionalNotes:        req.AdditionalNotes,
		model.FieldAdditionalBookingNotes: req.AdditionalBookingNotes,
		model.FieldNotes:                  req.Notes,
	} {
		if value != nil {
			fields[field] = optional(*value)
		}
	}

	return fields, dateChanged, nil
}

func (s *serviceImpl) updatePrimaryGuest(ctx context.Context, tx *sqlx.Tx, req *guestDto.UpdateGuestRequest, guestID string) error {
	if req == nil || *req == (guestDto.UpdateGuestRequest{}) {
		return nil
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	fields := shared.TransformFields(*req, user, s.clock.Now())
	if err := s.guestRepo.UpdateTx(ctx, tx, fields, shared.FilterByID(guestID, guestModel.FieldID, guestModel.TableName)); err != nil {
		return fmt.Errorf("failed to update primary guest: %w", err)
	}

	return nil
}

func (s *serviceImpl) updateRoomTypes(ctx context.Context, tx *sqlx.Tx, reqs []dto.UpdateRoomTypeRequest, booking model.Booking, dateChanged bool) error {
	if len(reqs) == 0 && !dateChanged {
		return nil
	}

	roomTypes, err := s.repos.RoomType.GetAllTx(ctx, tx, gDto.QueryParams{}, filterByBooking(booking.ID, model.RoomTypeTableName))
	if err != nil {
		return fmt.Errorf("failed to get booking room types: %w", err)
	}

	rooms, err := s.roomsOf(ctx, tx, booking.ID)
	if err != nil {
		return err
	}

	guestCount, err := s.guestCount(ctx, tx, rooms)
	if err != nil {
		return err
	}

	handled := map[string]bool{}

	for _, req := range reqs {
		if req.ID == "" {
			if err = s.addRoomType(ctx, tx, req, booking); err != nil {
				return err
			}

			continue
		}

		idx := slices.IndexFunc(roomTypes, func(rt model.BookingRoomType) bool { return rt.ID == req.ID })
		if idx < 0 {
			return failure.NotFound("booking room type not found") // nolint:wrapcheck
		}

		roomType := roomTypes[idx]
		typeRooms := roomsOfType(rooms, roomType.ID)
		handled[roomType.ID] = true

		if req.Remove {
			if err = s.removeRoomType(ctx, tx, booking.HotelID, roomType, typeRooms); err != nil {
				return err
			}

			continue
		}

		if err = s.changeRoomType(ctx, tx, req, booking, roomType, typeRooms, guestCount, dateChanged); err != nil {
			return err
		}
	}

	if !dateChanged {
		return nil
	}

	for _, roomType := range roomTypes {
		if handled[roomType.ID] {
			continue
		}

		if err = s.moveRoomType(ctx, tx, roomType, roomsOfType(rooms, roomType.ID), booking.StartDate, booking.EndDate); err != nil {
			return err
		}
	}

	return nil
}

func (s *serviceImpl) addRoomType(ctx context.Context, tx *sqlx.Tx, req dto.UpdateRoomTypeRequest, booking model.Booking) error {
	create := dto.CreateRoomTypeRequest{
		RoomTypeID: req.RoomTypeID,
		Price:      req.Price,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
	}

	if req.TotalRoom != nil {
		create.TotalRoom = *req.TotalRoom
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	now := s.clock.Now()
	booking.CreatedBy, booking.CreatedAt = user, now
	booking.ModifiedBy, booking.ModifiedAt = user, now

	roomType, err := s.bookingRoomType(ctx, create, booking)
	if err != nil {
		return err
	}

	if err = s.repos.RoomType.InsertTx(ctx, tx, roomType); err != nil {
		return fmt.Errorf("failed to insert booking room type: %w", err)
	}

	return nil
}

// removeRoomType releases the pending rooms of a room type and deletes it; checked in rooms block removal.
func (s *serviceImpl) removeRoomType(ctx context.Context, tx *sqlx.Tx, hotelID string, roomType model.BookingRoomType, rooms []model.BookingRoom) error {
	for _, room := range rooms {
		switch room.Status {
		case model.RoomStatusCancelled:
		case model.RoomStatusPending:
			if err := s.cancelRoom(ctx, tx, hotelID, room); err != nil {
				return err
			}
		default:
			return failure.BadRequestFromString(fmt.Sprintf("room %s is already checked in", room.RoomName)) // nolint:wrapcheck
		}
	}

	if err := s.repos.RoomType.DeleteTx(ctx, tx, shared.FilterByID(roomType.ID, model.FieldID, model.RoomTypeTableName)); err != nil {
		return fmt.Errorf("failed to delete booking room type: %w", err)
	}

	return nil
}

func (s *serviceImpl) changeRoomType(
	ctx context.Context,
	tx *sqlx.Tx,
	req dto.UpdateRoomTypeRequest,
	booking model.Booking,
	roomType model.BookingRoomType,
	rooms []model.BookingRoom,
	guestCount map[string]int,
	dateChanged bool,
) error {
	fields := map[string]any{}

	if req.Price.Valid {
		fields[model.FieldPrice] = req.Price.Decimal
	}

	if req.TotalRoom != nil && *req.TotalRoom != roomType.TotalRoom {
		fields[model.FieldTotalRoom] = *req.TotalRoom

		if err := s.shrink(ctx, tx, booking.HotelID, rooms, guestCount, *req.TotalRoom); err != nil {
			return err
		}

		rooms = slices.DeleteFunc(slices.Clone(rooms), func(room model.BookingRoom) bool {
			return room.Status == model.RoomStatusCancelled
		})
	}

	start, end := roomType.StartDate, roomType.EndDate
	if dateChanged {
		start, end = booking.StartDate, booking.EndDate
	}

	if req.StartDate != "" || req.EndDate != "" {
		var err error

		start, end, err = parseRange(orDefault(req.StartDate, start), orDefault(req.EndDate, end))
		if err != nil {
			return err
		}
	}

	if !start.Equal(roomType.StartDate) || !end.Equal(roomType.EndDate) {
		if err := s.resetRoomDates(ctx, tx, rooms, start, end); err != nil {
			return err
		}

		fields[model.FieldStartDate] = start
		fields[model.FieldEndDate] = end
	}

	if len(fields) == 0 {
		return nil
	}

	return s.updateRoomType(ctx, tx, roomType.ID, fields)
}

// moveRoomType resets a room type and its rooms to new dates.
func (s *serviceImpl) moveRoomType(ctx context.Context, tx *sqlx.Tx, roomType model.BookingRoomType, rooms []model.BookingRoom, start, end time.Time) error {
	if start.Equal(roomType.StartDate) && end.Equal(roomType.EndDate) {
		return nil
	}

	if err := s.resetRoomDates(ctx, tx, rooms, start, end); err != nil {
		return err
	}

	return s.updateRoomType(ctx, tx, roomType.ID, map[string]any{
		model.FieldStartDate: start,
		model.FieldEndDate:   end,
	})
}

// shrink cancels pending rooms above target, fewest linked guests first.
func (s *serviceImpl) shrink(ctx context.Context, tx *sqlx.Tx, hotelID string, rooms []model.BookingRoom, guestCount map[string]int, target int) error {
	active, pending := []model.BookingRoom{}, []model.BookingRoom{}

	for _, room := range rooms {
		if room.Status == model.RoomStatusCancelled {
			continue
		}

		active = append(active, room)

		if room.Status == model.RoomStatusPending {
			pending = append(pending, room)
		}
	}

	excess := len(active) - target
	if excess <= 0 {
		return nil
	}

	if len(pending) < excess {
		return failure.BadRequestFromString("room count cannot go below the checked in rooms") // nolint:wrapcheck
	}

	slices.SortStableFunc(pending, func(a, b model.BookingRoom) int {
		return cmp.Compare(guestCount[a.ID], guestCount[b.ID])
	})

	for i := range excess {
		pending[i].Status = model.RoomStatusCancelled

		if err := s.cancelRoom(ctx, tx, hotelID, pending[i]); err != nil {
			return err
		}

		for j := range rooms {
			if rooms[j].ID == pending[i].ID {
				rooms[j].Status = model.RoomStatusCancelled
			}
		}
	}

	return nil
}

// resetRoomDates moves pending rooms to new dates, clearing extensions and re-checking availability.
func (s *serviceImpl) resetRoomDates(ctx context.Context, tx *sqlx.Tx, rooms []model.BookingRoom, start, end time.Time) error {
	for _, room := range rooms {
		switch room.Status {
		case model.RoomStatusCancelled:
			continue
		case model.RoomStatusPending:
		default:
			return failure.BadRequestFromString(fmt.Sprintf("room %s is already checked in", room.RoomName)) // nolint:wrapcheck
		}

		if err := s.reserve(ctx, tx, room, start, end); err != nil {
			return err
		}
	}

	return nil
}

// reserve locks the physical room of a booking room and moves the booking room to [start, end).
func (s *serviceImpl) reserve(ctx context.Context, tx *sqlx.Tx, room model.BookingRoom, start, end time.Time) error {
	if _, err := s.availability.LockRoom(ctx, tx, room.RoomID); err != nil {
		return err //nolint:wrapcheck
	}

	if err := s.availability.EnsureRoomAvailable(ctx, tx, room.RoomID, room.RoomName, start, end, room.ID); err != nil {
		return err //nolint:wrapcheck
	}

	return s.updateBookingRoom(ctx, tx, room.ID, map[string]any{
		model.FieldStartDate:    start,
		model.FieldEndDate:      end,
		model.FieldExtendedDate: nil,
	})
}

// UpdateRoomDates moves one booking room inside its room type dates.
func (s *serviceImpl) UpdateRoomDates(ctx context.Context, req dto.RoomDatesRequest, bookingRoomID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateBookingRoomDates")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	start, end, err := parseRange(req.StartDate, req.EndDate)
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

		roomType, err := s.repos.RoomType.GetTx(ctx, tx, shared.FilterByID(room.BookingRoomTypeID, model.FieldID, model.RoomTypeTableName))
		if err != nil {
			return fmt.Errorf("failed to get booking room type: %w", err)
		}

		if !within(start, end, roomType.StartDate, roomType.EndDate) {
			return failure.BadRequestFromString("room dates must be within the room type dates") // nolint:wrapcheck
		}

		return s.reserve(ctx, tx, room, start, end)
	})
	if err != nil {
		return s.txError(err, "failed to update booking room dates")
	}

	s.changed(ctx, event.TypeBookingUpdated, bookingOf(room))

	return nil
}

func (s *serviceImpl) guestCount(ctx context.Context, tx *sqlx.Tx, rooms []model.BookingRoom) (map[string]int, error) {
	res := map[string]int{}
	if len(rooms) == 0 {
		return res, nil
	}

	ids := make([]string, len(rooms))
	for i, room := range rooms {
		ids[i] = room.ID
	}

	guests, err := s.repos.Guest.GetAllTx(ctx, tx, gDto.QueryParams{}, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldBookingRoomID, Value: ids, Operator: gDto.FilterOperatorIn, Table: model.GuestTableName},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get booking guests: %w", err)
	}

	for _, guest := range guests {
		res[guest.BookingRoomID]++
	}

	return res, nil
}

func roomsOfType(rooms []model.BookingRoom, bookingRoomTypeID string) []model.BookingRoom {
	res := []model.BookingRoom{}

	for _, room := range rooms {
		if room.BookingRoomTypeID == bookingRoomTypeID {
			res = append(res, room)
		}
	}

	return res
}

// ensureOpen rejects changes to rooms of closed bookings or rooms that already left.
func ensureOpen(room model.BookingRoom) error {
	if room.BookingStatus == model.StatusCompleted || room.BookingStatus == model.StatusCancelled {
		return failure.BadRequestFromString(fmt.Sprintf("booking is %s", room.BookingStatus)) // nolint:wrapcheck
	}

	if room.Status == model.RoomStatusCheckedOut || room.Status == model.RoomStatusCancelled {
		return failure.BadRequestFromString(fmt.Sprintf("room %s is %s", room.RoomName, room.Status)) // nolint:wrapcheck
	}

	return nil
}

func bookingOf(room model.BookingRoom) model.Booking {
	return model.Booking{ID: room.BookingID, HotelID: room.HotelID}
}
