package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotel/config"
	"hotel/infras/otel"
	availability "hotel/internal/domains/availability/service"
	"hotel/internal/domains/booking/event"
	bookingModel "hotel/internal/domains/booking/model"
	bookingRepo "hotel/internal/domains/booking/repository"
	"hotel/internal/domains/report/model"
	"hotel/internal/domains/report/model/dto"
	"hotel/internal/domains/report/repository"
	roomModel "hotel/internal/domains/room/model"
	roomRepo "hotel/internal/domains/room/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/clock"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	cacheRoomMap      = constant.CachePrefixReport + "room-map"
	cachePeakDays     = constant.CachePrefixReport + "peak-days"
	cacheBookedRooms  = constant.CachePrefixReport + "booked-rooms"
	cacheAvailability = constant.CachePrefixReport + "availability"

	maxMapDays  = 31
	maxPeakDays = 366
)

type Report interface {
	RoomMap(ctx context.Context, query dto.RoomMapQuery) ([]dto.RoomMapItem, error)
	RoomSchedule(ctx context.Context, query dto.RangeQuery, roomID string) ([]dto.StayInterval, error)
	RoomHistory(ctx context.Context, query dto.RangeQuery, roomID string) ([]dto.RoomHistoryItem, error)
	PeakDays(ctx context.Context, query dto.PeakDaysQuery) ([]dto.PeakDay, error)
	CurrentBooking(ctx context.Context, roomID string) (dto.CurrentBookingResponse, error)
	BookedRooms(ctx context.Context, query dto.BookedRoomsQuery) (dto.BookedRoomsResponse, error)
	Availability(ctx context.Context, query dto.AvailabilityQuery) (dto.AvailabilityResponse, error)
	HandleBookingEvent(ctx context.Context, evt event.Event) error
}

type serviceImpl struct {
	repo         repository.Report
	roomRepo     roomRepo.Room
	guestRepo    bookingRepo.BookingGuest
	availability availability.Availability
	cfg          *config.Config
	cache        cache.RedisCache
	clock        clock.Clock
	otel         otel.Otel
}

func New(
	repo repository.Report,
	roomRepo roomRepo.Room,
	guestRepo bookingRepo.BookingGuest,
	availability availability.Availability,
	cfg *config.Config,
	cache cache.RedisCache,
	clk clock.Clock,
	otel otel.Otel,
) Report {
	return &serviceImpl{
		repo:         repo,
		roomRepo:     roomRepo,
		guestRepo:    guestRepo,
		availability: availability,
		cfg:          cfg,
		cache:        cache,
		clock:        clk,
		otel:         otel,
	}
}

// RoomMap marks every room of the hotel occupied or available for each day of [From, To].
func (s *serviceImpl) RoomMap(ctx context.Context, query dto.RoomMapQuery) (res []dto.RoomMapItem, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RoomMap")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	hotelID, err := requireHotel(ctx, query.HotelID)
	if err != nil {
		return nil, err
	}

	from, to, err := parseRange(query.From, orDefault(query.To, query.From))
	if err != nil {
		return nil, err
	}

	if clock.Days(from, to) >= maxMapDays {
		return nil, failure.BadRequestFromString(fmt.Sprintf("room map covers at most %d days", maxMapDays)) // nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKey(cacheRoomMap, hotelID, query.From, query.To)
	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room map")

		return res, nil
	}

	params := gDto.QueryParams{SortBy: roomModel.TableName + "." + roomModel.FieldNumber, SortDir: gDto.SortDirAsc}
	filter := shared.FilterAnd(gDto.Filter{Field: roomModel.FieldHotelID, Value: hotelID, Operator: gDto.FilterOperatorEq, Table: roomModel.TableName})

	rooms, err := s.roomRepo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return nil, fmt.Errorf("failed to get rooms: %w", err)
	}

	end := clock.AddDays(to, 1)

	stays, err := s.repo.Stays(ctx, model.StayQuery{HotelID: hotelID, From: &from, To: &end})
	if err != nil {
		log.Error().Err(err).Msg("failed to get stays")

		return nil, fmt.Errorf("failed to get stays: %w", err)
	}

	byRoom := map[string][]model.Stay{}
	for _, stay := range stays {
		byRoom[stay.RoomID] = append(byRoom[stay.RoomID], stay)
	}

	res = make([]dto.RoomMapItem, len(rooms))
	for i, room := range rooms {
		res[i].FromModel(room)

		for day := from; day.Before(end); day = clock.AddDays(day, 1) {
			segment := dto.TimelineSegment{Date: day.Format(constant.DateOnly), Status: roomModel.StatusAvailable}

			for _, stay := range byRoom[room.ID] {
				if stay.Covers(day) {
					segment.Status = roomModel.StatusOccupied
					segment.BookingID = &stay.BookingID

					break
				}
			}

			res[i].Timeline = append(res[i].Timeline, segment)
		}
	}

	s.remember(ctx, cacheKey, res)

	return res, nil
}

// RoomSchedule lists the stays of a room intersecting [From, To).
func (s *serviceImpl) RoomSchedule(ctx context.Context, query dto.RangeQuery, roomID string) (res []dto.StayInterval, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RoomSchedule")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if query.From == "" || query.To == "" {
		return nil, failure.BadRequestFromString("from and to are required") // nolint:wrapcheck
	}

	from, to, err := parseRange(query.From, query.To)
	if err != nil {
		return nil, err
	}

	stays, err := s.repo.Stays(ctx, model.StayQuery{HotelID: shared.HotelIDFromContext(ctx, ""), RoomID: roomID, From: &from, To: &to})
	if err != nil {
		log.Error().Err(err).Msg("failed to get room schedule")

		return nil, fmt.Errorf("failed to get room schedule: %w", err)
	}

	res = make([]dto.StayInterval, len(stays))
	for i, stay := range stays {
		res[i].FromModel(stay)
	}

	return res, nil
}

// RoomHistory lists the stays of a room with their guests; missing bounds leave the range open.
func (s *serviceImpl) RoomHistory(ctx context.Context, query dto.RangeQuery, roomID string) (res []dto.RoomHistoryItem, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RoomHistory")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	stayQuery := model.StayQuery{HotelID: shared.HotelIDFromContext(ctx, ""), RoomID: roomID}

	if stayQuery.From, err = optionalDate(query.From); err != nil {
		return nil, err
	}

	if stayQuery.To, err = optionalDate(query.To); err != nil {
		return nil, err
	}

	stays, err := s.repo.Stays(ctx, stayQuery)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room history")

		return nil, fmt.Errorf("failed to get room history: %w", err)
	}

	res = make([]dto.RoomHistoryItem, len(stays))
	if len(stays) == 0 {
		return res, nil
	}

	ids := make([]string, len(stays))
	for i, stay := range stays {
		ids[i] = stay.BookingRoomID
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: bookingModel.FieldBookingRoomID, Value: ids, Operator: gDto.FilterOperatorIn, Table: bookingModel.GuestTableName},
		},
	}

	guests, err := s.guestRepo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get stay guests")

		return nil, fmt.Errorf("failed to get stay guests: %w", err)
	}

	for i, stay := range stays {
		res[i].FromModel(stay, guests)
	}

	return res, nil
}

// PeakDays returns the days of [From, To] whose occupancy reaches the configured threshold.
func (s *serviceImpl) PeakDays(ctx context.Context, query dto.PeakDaysQuery) (res []dto.PeakDay, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".PeakDays")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	hotelID, err := requireHotel(ctx, query.HotelID)
	if err != nil {
		return nil, err
	}

	from, to, err := parseRange(query.From, query.To)
	if err != nil {
		return nil, err
	}

	if clock.Days(from, to) >= maxPeakDays {
		return nil, failure.BadRequestFromString(fmt.Sprintf("peak days cover at most %d days", maxPeakDays)) // nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKey(cachePeakDays, hotelID, query.From, query.To)
	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for peak days")

		return res, nil
	}

	days, err := s.repo.DailyOccupancy(ctx, hotelID, from, to)
	if err != nil {
		log.Error().Err(err).Msg("failed to get daily occupancy")

		return nil, fmt.Errorf("failed to get daily occupancy: %w", err)
	}

	res = []dto.PeakDay{}
	for _, day := range days {
		if day.TotalRooms == 0 || day.Percentage() < s.cfg.Booking.PeakThreshold {
			continue
		}

		var peak dto.PeakDay
		peak.FromModel(day)
		res = append(res, peak)
	}

	s.remember(ctx, cacheKey, res)

	return res, nil
}

// CurrentBooking finds the booking occupying the room today; the latest start wins.
func (s *serviceImpl) CurrentBooking(ctx context.Context, roomID string) (res dto.CurrentBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CurrentBooking")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	today := clock.Today(s.clock)
	tomorrow := clock.AddDays(today, 1)

	stays, err := s.repo.Stays(ctx, model.StayQuery{HotelID: shared.HotelIDFromContext(ctx, ""), RoomID: roomID, From: &today, To: &tomorrow})
	if err != nil {
		log.Error().Err(err).Msg("failed to get current stay")

		return res, fmt.Errorf("failed to get current stay: %w", err)
	}

	var current *model.Stay

	for i, stay := range stays {
		if !stay.Covers(today) {
			continue
		}

		if current == nil || stay.StartDate.After(current.StartDate) {
			current = &stays[i]
		}
	}

	if current == nil {
		return res, failure.NotFound("no current booking for room") // nolint:wrapcheck
	}

	return dto.CurrentBookingResponse{BookingID: current.BookingID, BookingRoomID: current.BookingRoomID}, nil
}

// BookedRooms counts the rooms reserved by live bookings on Date against the hotel total.
func (s *serviceImpl) BookedRooms(ctx context.Context, query dto.BookedRoomsQuery) (res dto.BookedRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".BookedRooms")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	hotelID, err := requireHotel(ctx, query.HotelID)
	if err != nil {
		return res, err
	}

	date, err := clock.ParseDate(query.Date)
	if err != nil {
		return res, failure.BadRequestFromString("invalid date") // nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKey(cacheBookedRooms, hotelID, query.Date)
	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booked rooms")

		return res, nil
	}

	booked, err := s.repo.BookedRoomCount(ctx, hotelID, date)
	if err != nil {
		log.Error().Err(err).Msg("failed to count booked rooms")

		return res, fmt.Errorf("failed to count booked rooms: %w", err)
	}

	occupancy, err := s.availability.OccupancyOn(ctx, hotelID, date)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	res = dto.BookedRoomsResponse{Date: query.Date, BookedRooms: booked, TotalRooms: occupancy.TotalRooms}

	s.remember(ctx, cacheKey, res)

	return res, nil
}

// Availability counts the rooms still free over [From, To); From defaults to today and To to the next day.
func (s *serviceImpl) Availability(ctx context.Context, query dto.AvailabilityQuery) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Availability")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	hotelID, err := requireHotel(ctx, query.HotelID)
	if err != nil {
		return res, err
	}

	from := clock.Today(s.clock)
	if query.From != "" {
		if from, err = clock.ParseDate(query.From); err != nil {
			return res, failure.BadRequestFromString("invalid from date") // nolint:wrapcheck
		}
	}

	to := clock.AddDays(from, 1)
	if query.To != "" {
		if to, err = clock.ParseDate(query.To); err != nil {
			return res, failure.BadRequestFromString("invalid to date") // nolint:wrapcheck
		}
	}

	if !to.After(from) {
		return res, failure.BadRequestFromString("to date must be after from date") // nolint:wrapcheck
	}

	res.From, res.To = from.Format(constant.DateOnly), to.Format(constant.DateOnly)

	cacheKey := shared.BuildCacheKey(cacheAvailability, hotelID, query.RoomTypeID, res.From, res.To)
	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for availability")

		return res, nil
	}

	counts, err := s.repo.Availability(ctx, hotelID, query.RoomTypeID, from, to)
	if err != nil {
		log.Error().Err(err).Msg("failed to get availability")

		return res, fmt.Errorf("failed to get availability: %w", err)
	}

	res.FromModel(counts)

	s.remember(ctx, cacheKey, res)

	return res, nil
}

// HandleBookingEvent drops the cached reports once a booking or invoice changes.
func (s *serviceImpl) HandleBookingEvent(ctx context.Context, evt event.Event) error {
	if err := s.cache.Clear(ctx, constant.CachePrefixReport+constant.Asterix); err != nil {
		log.Error().Err(err).Str("type", evt.Type).Str("entity_id", evt.EntityID).Msg("failed to invalidate report caches")

		return fmt.Errorf("failed to invalidate report caches: %w", err)
	}

	log.Debug().Str("type", evt.Type).Str("entity_id", evt.EntityID).Msg("report caches invalidated")

	return nil
}

func (s *serviceImpl) remember(ctx context.Context, key string, value any) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, key, value, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Str("cacheKey", key).Msg("failed to save report to cache")
		}
	}()
}

func requireHotel(ctx context.Context, requested string) (string, error) {
	hotelID := shared.HotelIDFromContext(ctx, requested)
	if hotelID == "" {
		return "", failure.BadRequestFromString("hotel id is required") // nolint:wrapcheck
	}

	return hotelID, nil
}

// parseRange parses an inclusive day range.
func parseRange(fromValue, toValue string) (from, to time.Time, err error) {
	if from, err = clock.ParseDate(fromValue); err != nil {
		return from, to, failure.BadRequestFromString("invalid from date") // nolint:wrapcheck
	}

	if to, err = clock.ParseDate(toValue); err != nil {
		return from, to, failure.BadRequestFromString("invalid to date") // nolint:wrapcheck
	}

	if to.Before(from) {
		return from, to, failure.BadRequestFromString("to date must not be before from date") // nolint:wrapcheck
	}

	return from, to, nil
}

func optionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil //nolint:nilnil
	}

	day, err := clock.ParseDate(value)
	if err != nil {
		return nil, failure.BadRequestFromString(fmt.Sprintf("invalid date %s", value)) // nolint:wrapcheck
	}

	return &day, nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}

	return value
}
