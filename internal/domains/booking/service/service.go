package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"hotel/config"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	availability "hotel/internal/domains/availability/service"
	"hotel/internal/domains/booking/event"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/repository"
	guestDto "hotel/internal/domains/guest/model/dto"
	guestRepo "hotel/internal/domains/guest/repository"
	pricing "hotel/internal/domains/pricing/service"
	roomModel "hotel/internal/domains/room/model"
	roomRepo "hotel/internal/domains/room/repository"
	rtRepo "hotel/internal/domains/roomtype/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/clock"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	cacheGetBooking    = constant.CachePrefixBooking + "get"
	cacheGetAllBooking = constant.CachePrefixBooking + "gets"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (string, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	GetActive(ctx context.Context, req gDto.QueryParams, hotelID string) (dto.GetBookingsResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) error
	UpdateTx(ctx context.Context, tx *sqlx.Tx, req dto.UpdateBookingRequest, id string) error
	Confirm(ctx context.Context, id string) error
	Cancel(ctx context.Context, id string) error
	Complete(ctx context.Context, id string) error

	CheckIn(ctx context.Context, req dto.CheckInRequest, bookingRoomID string) error
	UpdateRoomActualTimes(ctx context.Context, req dto.ActualTimesRequest, bookingRoomID string) error
	ChangeRoom(ctx context.Context, req dto.ChangeRoomRequest, bookingRoomID string) error
	MoveGuest(ctx context.Context, req dto.MoveGuestRequest, bookingRoomID string) error
	SwapGuests(ctx context.Context, req dto.SwapGuestsRequest, bookingRoomID string) error
	UpdateGuestInRoom(ctx context.Context, req guestDto.UpdateGuestRequest, bookingRoomID, guestID string) error
	RemoveGuestFromRoom(ctx context.Context, bookingRoomID, guestID string) error
	AddRoom(ctx context.Context, req dto.AssignRoomRequest, bookingID, bookingRoomTypeID string) (string, error)
	UpdateRoomDates(ctx context.Context, req dto.RoomDatesRequest, bookingRoomID string) error
	ExtendStay(ctx context.Context, req dto.ExtendStayRequest, bookingID string) error
	CheckOut(ctx context.Context, req dto.CheckOutRequest, bookingID string) (dto.CheckOutResponse, error)
	CheckOutTx(ctx context.Context, tx *sqlx.Tx, req dto.CheckOutRequest, bookingID string) (dto.CheckOutResponse, error)
	CheckedOut(ctx context.Context, booking model.Booking)

	CancelNoShows(ctx context.Context, req dto.SweepRequest) (dto.NoShowResponse, error)
	AutoCancel(ctx context.Context, req dto.SweepRequest) (dto.AutoCancelResponse, error)

	AddCallLog(ctx context.Context, req dto.CreateCallLogRequest, bookingID string) (string, error)
	GetCallLogs(ctx context.Context, bookingID string) ([]dto.CallLogResponse, error)
}

type serviceImpl struct {
	repos         repository.Repositories
	guestRepo     guestRepo.Guest
	roomRepo      roomRepo.Room
	statusLogRepo roomRepo.StatusLog
	roomTypeRepo  rtRepo.RoomType
	availability  availability.Availability
	pricing       pricing.Pricing
	publisher     event.Publisher
	tx            postgres.Transactor
	cfg           *config.Config
	cache         cache.RedisCache
	clock         clock.Clock
	otel          otel.Otel
}

func New(
	repos repository.Repositories,
	guestRepo guestRepo.Guest,
	roomRepo roomRepo.Room,
	statusLogRepo roomRepo.StatusLog,
	roomTypeRepo rtRepo.RoomType,
	availability availability.Availability,
	pricing pricing.Pricing,
	publisher event.Publisher,
	tx postgres.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	clk clock.Clock,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repos:         repos,
		guestRepo:     guestRepo,
		roomRepo:      roomRepo,
		statusLogRepo: statusLogRepo,
		roomTypeRepo:  roomTypeRepo,
		availability:  availability,
		pricing:       pricing,
		publisher:     publisher,
		tx:            tx,
		cfg:           cfg,
		cache:         cache,
		clock:         clk,
		otel:          otel,
	}
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetBooking")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	roomTypes, err := s.repos.RoomType.GetAll(ctx, gDto.QueryParams{}, filterByBooking(id, model.RoomTypeTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking room types")

		return res, fmt.Errorf("failed to get booking room types: %w", err)
	}

	rooms, err := s.repos.Room.GetAll(ctx, gDto.QueryParams{}, filterByBooking(id, model.RoomTypeTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking rooms")

		return res, fmt.Errorf("failed to get booking rooms: %w", err)
	}

	guests, err := s.guestsOf(ctx, rooms)
	if err != nil {
		return res, err
	}

	callLogs, err := s.repos.CallLog.GetAll(ctx, callLogParams(), filterByBooking(id, model.CallLogTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get call logs")

		return res, fmt.Errorf("failed to get call logs: %w", err)
	}

	res.FromModel(booking)
	res.WithDetails(roomTypes, rooms, guests, callLogs)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAllBookings")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter = shared.ScopeToHotel(ctx, filter, model.TableName)
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.repos.Booking.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	bookings, err := s.repos.Booking.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(bookings, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

// GetActive lists the pending and confirmed bookings that have not ended yet.
func (s *serviceImpl) GetActive(ctx context.Context, req gDto.QueryParams, hotelID string) (dto.GetBookingsResponse, error) {
	filters := []any{
		gDto.Filter{
			ArgName:  "active_status",
			Field:    model.FieldStatus,
			Value:    []string{model.StatusPending, model.StatusConfirmed},
			Operator: gDto.FilterOperatorIn,
			Table:    model.TableName,
		},
		gDto.Filter{
			ArgName:  "active_end",
			Field:    model.FieldEndDate,
			Value:    clock.Today(s.clock),
			Operator: gDto.FilterOperatorGreaterEq,
			Table:    model.TableName,
		},
	}

	if hotelID != "" {
		filters = append(filters, gDto.Filter{
			Field:    model.FieldHotelID,
			Value:    hotelID,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	return s.GetAll(ctx, req, shared.FilterAnd(filters...))
}

func (s *serviceImpl) Confirm(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ConfirmBooking")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var booking model.Booking

	err = s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		booking, err = s.lockBooking(ctx, tx, id)
		if err != nil {
			return err
		}

		if !booking.CanTransition(model.StatusConfirmed) {
			return failure.BadRequestFromString(fmt.Sprintf("booking cannot be confirmed from status %s", booking.Status)) // nolint:wrapcheck
		}

		return s.updateBooking(ctx, tx, id, map[string]any{model.FieldStatus: model.StatusConfirmed})
	})
	if err != nil {
		return s.txError(err, "failed to confirm booking")
	}

	s.changed(ctx, event.TypeBookingUpdated, booking)

	return nil
}

// Cancel cancels the booking and every pending room, releasing the physical rooms.
func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CancelBooking")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var booking model.Booking

	err = s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		booking, err = s.lockBooking(ctx, tx, id)
		if err != nil {
			return err
		}

		if !booking.CanTransition(model.StatusCancelled) {
			return failure.BadRequestFromString(fmt.Sprintf("booking cannot be cancelled from status %s", booking.Status)) // nolint:wrapcheck
		}

		rooms, err := s.roomsOf(ctx, tx, id)
		if err != nil {
			return err
		}

		for _, room := range rooms {
			switch room.Status {
			case model.RoomStatusCancelled:
				continue
			case model.RoomStatusPending:
			default:
				return failure.BadRequestFromString(fmt.Sprintf("room %s is already checked in", room.RoomName)) // nolint:wrapcheck
			}

			if err = s.cancelRoom(ctx, tx, booking.HotelID, room); err != nil {
				return err
			}
		}

		return s.updateBooking(ctx, tx, id, map[string]any{model.FieldStatus: model.StatusCancelled})
	})
	if err != nil {
		return s.txError(err, "failed to cancel booking")
	}

	s.changed(ctx, event.TypeBookingCancelled, booking)

	return nil
}

// Complete reprices the stay and closes the booking.
func (s *serviceImpl) Complete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CompleteBooking")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var booking model.Booking

	err = s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		booking, err = s.lockBooking(ctx, tx, id)
		if err != nil {
			return err
		}

		if !booking.CanTransition(model.StatusCompleted) {
			return failure.BadRequestFromString(fmt.Sprintf("booking cannot be completed from status %s", booking.Status)) // nolint:wrapcheck
		}

		rooms, err := s.roomsOf(ctx, tx, id)
		if err != nil {
			return err
		}

		total, err := s.pricing.PriceBooking(ctx, stays(rooms))
		if err != nil {
			return fmt.Errorf("failed to price booking: %w", err)
		}

		return s.updateBooking(ctx, tx, id, map[string]any{
			model.FieldStatus:      model.StatusCompleted,
			model.FieldTotalAmount: total,
			model.FieldLeftAmount:  nonNegative(total.Sub(booking.DepositAmount)),
		})
	})
	if err != nil {
		return s.txError(err, "failed to complete booking")
	}

	s.changed(ctx, event.TypeBookingCompleted, booking)

	return nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Booking, error) {
	filter := shared.ScopeToHotel(ctx, shared.FilterByID(id, model.FieldID, model.TableName), model.TableName)

	booking, err := s.repos.Booking.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == "" {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) lockBooking(ctx context.Context, tx *sqlx.Tx, id string) (model.Booking, error) {
	filter := shared.ScopeToHotel(ctx, shared.FilterByID(id, model.FieldID, model.TableName), model.TableName)

	booking, err := s.repos.Booking.GetForUpdateTx(ctx, tx, filter)
	if err != nil {
		return booking, fmt.Errorf("failed to lock booking: %w", err)
	}

	if booking.ID == "" {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) lockBookingRoom(ctx context.Context, tx *sqlx.Tx, id string) (model.BookingRoom, error) {
	filter := shared.ScopeToHotel(ctx, shared.FilterByID(id, model.FieldID, model.RoomTableName), model.TableName)

	room, err := s.repos.Room.GetForUpdateTx(ctx, tx, filter)
	if err != nil {
		return room, fmt.Errorf("failed to lock booking room: %w", err)
	}

	if room.ID == "" {
		return room, failure.NotFound("booking room not found") // nolint:wrapcheck
	}

	return room, nil
}

func (s *serviceImpl) roomsOf(ctx context.Context, tx *sqlx.Tx, bookingID string) ([]model.BookingRoom, error) {
	rooms, err := s.repos.Room.GetAllTx(ctx, tx, gDto.QueryParams{}, filterByBooking(bookingID, model.RoomTypeTableName))
	if err != nil {
		return nil, fmt.Errorf("failed to get booking rooms: %w", err)
	}

	return rooms, nil
}

func (s *serviceImpl) guestsOf(ctx context.Context, rooms []model.BookingRoom) ([]model.BookingGuest, error) {
	if len(rooms) == 0 {
		return nil, nil
	}

	ids := make([]string, len(rooms))
	for i, room := range rooms {
		ids[i] = room.ID
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldBookingRoomID,
				Value:    ids,
				Operator: gDto.FilterOperatorIn,
				Table:    model.GuestTableName,
			},
		},
	}

	guests, err := s.repos.Guest.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking guests")

		return nil, fmt.Errorf("failed to get booking guests: %w", err)
	}

	return guests, nil
}

func (s *serviceImpl) updateBooking(ctx context.Context, tx *sqlx.Tx, id string, fields map[string]any) error {
	s.stamp(ctx, fields)

	if err := s.repos.Booking.UpdateTx(ctx, tx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}

	return nil
}

func (s *serviceImpl) updateBookingRoom(ctx context.Context, tx *sqlx.Tx, id string, fields map[string]any) error {
	s.stamp(ctx, fields)

	if err := s.repos.Room.UpdateTx(ctx, tx, fields, shared.FilterByID(id, model.FieldID, model.RoomTableName)); err != nil {
		return fmt.Errorf("failed to update booking room: %w", err)
	}

	return nil
}

// cancelRoom cancels a pending booking room and frees its physical room.
func (s *serviceImpl) cancelRoom(ctx context.Context, tx *sqlx.Tx, hotelID string, room model.BookingRoom) error {
	if err := s.updateBookingRoom(ctx, tx, room.ID, map[string]any{model.FieldStatus: model.RoomStatusCancelled}); err != nil {
		return err
	}

	return s.setRoomStatus(ctx, tx, hotelID, room.RoomID, roomModel.StatusAvailable)
}

// setRoomStatus moves a physical room to status and appends the audit entry.
func (s *serviceImpl) setRoomStatus(ctx context.Context, tx *sqlx.Tx, hotelID, roomID, status string) error {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	now := s.clock.Now()

	fields := map[string]any{
		roomModel.FieldStatus:    status,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: user,
	}

	if err := s.roomRepo.UpdateTx(ctx, tx, fields, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName)); err != nil {
		return fmt.Errorf("failed to update room status: %w", err)
	}

	entry := roomModel.NewStatusLog(roomModel.HotelRoom{ID: roomID, HotelID: hotelID}, status, user, now)
	if err := s.statusLogRepo.InsertTx(ctx, tx, entry); err != nil {
		return fmt.Errorf("failed to log room status: %w", err)
	}

	return nil
}

func (s *serviceImpl) stamp(ctx context.Context, fields map[string]any) {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	fields[constant.FieldModifiedAt] = s.clock.Now()
	fields[constant.FieldModifiedBy] = user
}

// txError logs infrastructure failures and maps storage conflicts; domain failures pass through.
func (s *serviceImpl) txError(err error, msg string) error {
	var fail *failure.Failure
	if errors.As(err, &fail) {
		return err
	}

	switch {
	case shared.IsPqError(err, constant.PqErrorCodeExclusionViolation):
		return failure.Conflict("room is already booked for the selected dates") // nolint:wrapcheck
	case shared.IsPqError(err, constant.PqErrorCodeFkViolation):
		return failure.BadRequestFromString("referenced guest, room or room type does not exist") // nolint:wrapcheck
	case shared.IsPqError(err, constant.PqErrorCodeUniqueViolation):
		return failure.Conflict("guest is already assigned to the room") // nolint:wrapcheck
	}

	log.Error().Err(err).Msg(msg)

	return fmt.Errorf("%s: %w", msg, err)
}

// changed drops cached bookings and publishes the state change.
func (s *serviceImpl) changed(ctx context.Context, eventType string, bookings ...model.Booking) {
	events := make([]event.Event, len(bookings))
	for i, booking := range bookings {
		events[i] = event.Event{
			Type:       eventType,
			EntityID:   booking.ID,
			HotelID:    booking.HotelID,
			OccurredAt: s.clock.Now(),
		}
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, constant.CachePrefixBooking)
	}()

	s.publisher.Publish(ctx, events...)
}

func filterByBooking(bookingID, table string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldBookingID,
				Value:    bookingID,
				Operator: gDto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

func callLogParams() gDto.QueryParams {
	return gDto.QueryParams{SortBy: model.CallLogTableName + "." + model.FieldCallTime, SortDir: gDto.SortDirDesc}
}

func stays(rooms []model.BookingRoom) []pricing.Stay {
	res := make([]pricing.Stay, len(rooms))
	for i, room := range rooms {
		res[i] = stayOf(room)
	}

	return res
}

func stayOf(room model.BookingRoom) pricing.Stay {
	return pricing.Stay{
		RoomTypeID:     room.RoomTypeID,
		SnapshotPrice:  room.Price,
		StartDate:      room.StartDate,
		EndDate:        room.EndDate,
		ExtendedDate:   room.ExtendedDate,
		ActualCheckIn:  room.ActualCheckInAt,
		ActualCheckOut: room.ActualCheckOutAt,
		Cancelled:      room.Status == model.RoomStatusCancelled,
	}
}

func nonNegative(amount decimal.Decimal) decimal.Decimal {
	if amount.IsNegative() {
		return decimal.Zero
	}

	return amount
}

func parseRange(start, end string) (from, to time.Time, err error) {
	from, err = clock.ParseDate(start)
	if err != nil {
		return from, to, failure.BadRequestFromString("invalid start date") // nolint:wrapcheck
	}

	to, err = clock.ParseDate(end)
	if err != nil {
		return from, to, failure.BadRequestFromString("invalid end date") // nolint:wrapcheck
	}

	if !to.After(from) {
		return from, to, failure.BadRequestFromString("end date must be after start date") // nolint:wrapcheck
	}

	return from, to, nil
}

// parseTimestamp returns fallback for an empty value.
func parseTimestamp(value string, fallback time.Time) (time.Time, error) {
	if value == "" {
		return fallback, nil
	}

	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return parsed, failure.BadRequestFromString("invalid timestamp " + value) // nolint:wrapcheck
	}

	return parsed, nil
}

func within(start, end, outerStart, outerEnd time.Time) bool {
	return !start.Before(outerStart) && !end.After(outerEnd)
}
