package service

import (
	"context"
	"fmt"
	"hotel/internal/domains/booking/event"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	guestModel "hotel/internal/domains/guest/model"
	roomModel "hotel/internal/domains/room/model"
	rtModel "hotel/internal/domains/roomtype/model"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	gModel "hotel/shared/model"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// plannedRoom is a validated room assignment waiting to be written.
type plannedRoom struct {
	room     model.BookingRoom
	guestIDs []string
}

// Create validates every room type and room, then writes the booking graph in one transaction.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateBooking")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	start, end, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return "", err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	now := s.clock.Now()
	hotelID := shared.HotelIDFromContext(ctx, req.HotelID)

	booking := model.Booking{
		ID:                      uuid.NewString(),
		HotelID:                 hotelID,
		Status:                  model.StatusPending,
		StartDate:               start,
		EndDate:                 end,
		DepositAmount:           req.DepositAmount,
		DiscountAmount:          req.DiscountAmount,
		AdditionalBookingAmount: req.AdditionalBookingAmount,
		AdditionalBookingNotes:  optional(req.AdditionalBookingNotes),
		PromotionCode:           optional(req.PromotionCode),
		Notes:                   optional(req.Notes),
		Metadata:                gModel.NewMetadata(user, now),
	}

	err = s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		primaryGuestID, err := s.primaryGuest(ctx, tx, req, hotelID)
		if err != nil {
			return err
		}

		booking.PrimaryGuestID = primaryGuestID

		roomTypes := make([]model.BookingRoomType, 0, len(req.RoomTypes))
		planned := []plannedRoom{}
		quote := decimal.Zero

		for _, rtReq := range req.RoomTypes {
			roomType, err := s.bookingRoomType(ctx, rtReq, booking)
			if err != nil {
				return err
			}

			rooms := make([]model.BookingRoom, 0, len(rtReq.Rooms))

			for _, roomReq := range rtReq.Rooms {
				room, err := s.planRoom(ctx, tx, roomReq, roomType, hotelID, "")
				if err != nil {
					return err
				}

				guestIDs := roomReq.GuestIDs
				if len(guestIDs) == 0 {
					guestIDs = []string{primaryGuestID}
				}

				rooms = append(rooms, room)
				planned = append(planned, plannedRoom{room: room, guestIDs: guestIDs})
			}

			amount, err := s.quote(ctx, roomType, rooms)
			if err != nil {
				return err
			}

			quote = quote.Add(amount)
			roomTypes = append(roomTypes, roomType)
		}

		booking.TotalAmount = quote
		if req.TotalAmount.Valid {
			booking.TotalAmount = req.TotalAmount.Decimal
		}

		booking.LeftAmount = nonNegative(booking.TotalAmount.Sub(booking.DepositAmount))

		return s.insertBooking(ctx, tx, booking, roomTypes, planned)
	})
	if err != nil {
		return "", s.txError(err, "failed to create booking")
	}

	s.changed(ctx, event.TypeBookingCreated, booking)

	return booking.ID, nil
}

func (s *serviceImpl) primaryGuest(ctx context.Context, tx *sqlx.Tx, req dto.CreateBookingRequest, hotelID string) (string, error) {
	if req.PrimaryGuestID != "" {
		filter := shared.FilterAnd(
			gDto.Filter{Field: guestModel.FieldID, Value: req.PrimaryGuestID, Operator: gDto.FilterOperatorEq, Table: guestModel.TableName},
			gDto.Filter{Field: guestModel.FieldHotelID, Value: hotelID, Operator: gDto.FilterOperatorEq, Table: guestModel.TableName},
		)

		guest, err := s.guestRepo.GetTx(ctx, tx, filter, guestModel.FieldID)
		if err != nil {
			return "", fmt.Errorf("failed to get primary guest: %w", err)
		}

		if guest.ID == "" {
			return "", failure.NotFound("primary guest not found") // nolint:wrapcheck
		}

		return guest.ID, nil
	}

	if req.PrimaryGuest == nil {
		return "", failure.BadRequestFromString("primary guest is required") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	guest := req.PrimaryGuest.ToModel(hotelID, user, s.clock.Now())
	if err := s.guestRepo.InsertTx(ctx, tx, guest); err != nil {
		return "", fmt.Errorf("failed to create primary guest: %w", err)
	}

	return guest.ID, nil
}

// bookingRoomType snapshots the hotel room type into a booking line.
func (s *serviceImpl) bookingRoomType(ctx context.Context, req dto.CreateRoomTypeRequest, booking model.Booking) (model.BookingRoomType, error) {
	var res model.BookingRoomType

	roomType, err := s.hotelRoomType(ctx, req.RoomTypeID, booking.HotelID)
	if err != nil {
		return res, err
	}

	start, end := booking.StartDate, booking.EndDate
	if req.StartDate != "" || req.EndDate != "" {
		start, end, err = parseRange(orDefault(req.StartDate, booking.StartDate), orDefault(req.EndDate, booking.EndDate))
		if err != nil {
			return res, err
		}
	}

	price := decimal.Zero
	if roomType.BasePrice.Valid {
		price = roomType.BasePrice.Decimal
	}

	if req.Price.Valid {
		price = req.Price.Decimal
	}

	return model.BookingRoomType{
		ID:           uuid.NewString(),
		BookingID:    booking.ID,
		RoomTypeID:   roomType.ID,
		RoomTypeName: roomType.Name,
		Capacity:     roomType.Capacity,
		Price:        price,
		StartDate:    start,
		EndDate:      end,
		TotalRoom:    max(req.TotalRoom, len(req.Rooms)),
		Metadata:     booking.Metadata,
	}, nil
}

func (s *serviceImpl) hotelRoomType(ctx context.Context, roomTypeID, hotelID string) (rtModel.RoomType, error) {
	filter := shared.FilterAnd(
		gDto.Filter{Field: rtModel.FieldID, Value: roomTypeID, Operator: gDto.FilterOperatorEq, Table: rtModel.TableName},
		gDto.Filter{Field: rtModel.FieldHotelID, Value: hotelID, Operator: gDto.FilterOperatorEq, Table: rtModel.TableName},
	)

	roomType, err := s.roomTypeRepo.Get(ctx, filter)
	if err != nil {
		return roomType, fmt.Errorf("failed to get room type: %w", err)
	}

	if roomType.ID == "" {
		return roomType, failure.BadRequestFromString(fmt.Sprintf("room type %s does not belong to the hotel", roomTypeID)) // nolint:wrapcheck
	}

	return roomType, nil
}

// planRoom locks the physical room and checks hotel, type, service state, interval and availability.
func (s *serviceImpl) planRoom(
	ctx context.Context,
	tx *sqlx.Tx,
	req dto.AssignRoomRequest,
	roomType model.BookingRoomType,
	hotelID, excludeID string,
) (model.BookingRoom, error) {
	var res model.BookingRoom

	start, end, err := parseRange(orDefault(req.StartDate, roomType.StartDate), orDefault(req.EndDate, roomType.EndDate))
	if err != nil {
		return res, err
	}

	if !within(start, end, roomType.StartDate, roomType.EndDate) {
		return res, failure.BadRequestFromString("room dates must be within the room type dates") // nolint:wrapcheck
	}

	room, err := s.availability.LockRoom(ctx, tx, req.RoomID)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if room.HotelID != hotelID || room.RoomTypeID != roomType.RoomTypeID {
		return res, failure.BadRequestFromString(fmt.Sprintf("room %s does not belong to the hotel and room type", room.Number)) // nolint:wrapcheck
	}

	if room.Status == roomModel.StatusOutOfService && (room.OutOfServiceUntil == nil || room.OutOfServiceUntil.After(start)) {
		return res, failure.BadRequestFromString(fmt.Sprintf("room %s is out of service", room.Number)) // nolint:wrapcheck
	}

	if err = s.availability.EnsureRoomAvailable(ctx, tx, room.ID, room.Number, start, end, excludeID); err != nil {
		return res, err //nolint:wrapcheck
	}

	return model.BookingRoom{
		ID:                uuid.NewString(),
		BookingRoomTypeID: roomType.ID,
		RoomID:            room.ID,
		RoomName:          room.Number,
		StartDate:         start,
		EndDate:           end,
		Status:            model.RoomStatusPending,
		BookingID:         roomType.BookingID,
		RoomTypeID:        roomType.RoomTypeID,
		Price:             roomType.Price,
		HotelID:           hotelID,
		Metadata:          gModel.NewMetadata(user, s.clock.Now()),
	}, nil
}

// quote prices assigned rooms, or the whole room type range when no room is assigned yet.
func (s *serviceImpl) quote(ctx context.Context, roomType model.BookingRoomType, rooms []model.BookingRoom) (decimal.Decimal, error) {
	if len(rooms) == 0 {
		amount, err := s.pricing.QuoteRange(ctx, roomType.RoomTypeID, roomType.Price, roomType.StartDate, roomType.EndDate, roomType.TotalRoom)
		if err != nil {
			return amount, fmt.Errorf("failed to quote room type: %w", err)
		}

		return amount, nil
	}

	amount, err := s.pricing.PriceBooking(ctx, stays(rooms))
	if err != nil {
		return amount, fmt.Errorf("failed to price rooms: %w", err)
	}

	return amount, nil
}

func (s *serviceImpl) insertBooking(
	ctx context.Context,
	tx *sqlx.Tx,
	booking model.Booking,
	roomTypes []model.BookingRoomType,
	planned []plannedRoom,
) error {
	if err := s.repos.Booking.InsertTx(ctx, tx, booking); err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}

	for _, roomType := range roomTypes {
		if err := s.repos.RoomType.InsertTx(ctx, tx, roomType); err != nil {
			return fmt.Errorf("failed to insert booking room type: %w", err)
		}
	}

	for _, plan := range planned {
		if err := s.insertRoom(ctx, tx, plan); err != nil {
			return err
		}
	}

	return nil
}

func (s *serviceImpl) insertRoom(ctx context.Context, tx *sqlx.Tx, plan plannedRoom) error {
	if err := s.repos.Room.InsertTx(ctx, tx, plan.room); err != nil {
		return fmt.Errorf("failed to insert booking room: %w", err)
	}

	for _, guestID := range plan.guestIDs {
		link := model.BookingGuest{
			BookingRoomID: plan.room.ID,
			GuestID:       guestID,
			Metadata:      plan.room.Metadata,
		}

		if err := s.repos.Guest.InsertTx(ctx, tx, link); err != nil {
			return fmt.Errorf("failed to link guest: %w", err)
		}
	}

	return nil
}

// AddRoom assigns one more physical room to an existing booking room type.
func (s *serviceImpl) AddRoom(ctx context.Context, req dto.AssignRoomRequest, bookingID, bookingRoomTypeID string) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AddBookingRoom")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var booking model.Booking

	err = s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		booking, err = s.lockBooking(ctx, tx, bookingID)
		if err != nil {
			return err
		}

		if booking.IsTerminal() {
			return failure.BadRequestFromString(fmt.Sprintf("booking is %s", booking.Status)) // nolint:wrapcheck
		}

		roomType, err := s.repos.RoomType.GetTx(ctx, tx, shared.FilterAnd(
			gDto.Filter{Field: model.FieldID, Value: bookingRoomTypeID, Operator: gDto.FilterOperatorEq, Table: model.RoomTypeTableName},
			gDto.Filter{Field: model.FieldBookingID, Value: bookingID, Operator: gDto.FilterOperatorEq, Table: model.RoomTypeTableName},
		))
		if err != nil {
			return fmt.Errorf("failed to get booking room type: %w", err)
		}

		if roomType.ID == "" {
			return failure.NotFound("booking room type not found") // nolint:wrapcheck
		}

		room, err := s.planRoom(ctx, tx, req, roomType, booking.HotelID, "")
		if err != nil {
			return err
		}

		guestIDs := req.GuestIDs
		if len(guestIDs) == 0 {
			guestIDs = []string{booking.PrimaryGuestID}
		}

		if err = s.insertRoom(ctx, tx, plannedRoom{room: room, guestIDs: guestIDs}); err != nil {
			return err
		}

		active, err := s.activeRooms(ctx, tx, roomType.ID)
		if err != nil {
			return err
		}

		id = room.ID

		if active <= roomType.TotalRoom {
			return nil
		}

		return s.updateRoomType(ctx, tx, roomType.ID, map[string]any{model.FieldTotalRoom: active})
	})
	if err != nil {
		return "", s.txError(err, "failed to add booking room")
	}

	s.changed(ctx, event.TypeBookingUpdated, booking)

	return id, nil
}

func (s *serviceImpl) activeRooms(ctx context.Context, tx *sqlx.Tx, bookingRoomTypeID string) (int, error) {
	rooms, err := s.repos.Room.GetAllTx(ctx, tx, gDto.QueryParams{}, shared.FilterAnd(
		gDto.Filter{Field: model.FieldBookingRoomTypeID, Value: bookingRoomTypeID, Operator: gDto.FilterOperatorEq, Table: model.RoomTableName},
		gDto.Filter{ArgName: "room_status", Field: model.FieldStatus, Value: model.RoomStatusCancelled, Operator: gDto.FilterOperatorNotEq, Table: model.RoomTableName},
	), model.FieldID)
	if err != nil {
		return 0, fmt.Errorf("failed to count booking rooms: %w", err)
	}

	return len(rooms), nil
}

func (s *serviceImpl) updateRoomType(ctx context.Context, tx *sqlx.Tx, id string, fields map[string]any) error {
	s.stamp(ctx, fields)

	if err := s.repos.RoomType.UpdateTx(ctx, tx, fields, shared.FilterByID(id, model.FieldID, model.RoomTypeTableName)); err != nil {
		return fmt.Errorf("failed to update booking room type: %w", err)
	}

	return nil
}

func orDefault(value string, fallback time.Time) string {
	if value == "" {
		return fallback.Format(time.DateOnly)
	}

	return value
}

func optional(value string) *string {
	if value == "" {
		return nil
	}

	return &value
}
