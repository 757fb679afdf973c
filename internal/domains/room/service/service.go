package service

import (
	"context"
	"fmt"
	"hotel/config"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/model/dto"
	"hotel/internal/domains/room/repository"
	roomTypeModel "hotel/internal/domains/roomtype/model"
	roomTypeRepo "hotel/internal/domains/roomtype/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/clock"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetRoom    = constant.CachePrefixRoom + "get"
	cacheGetAllRoom = constant.CachePrefixRoom + "gets"
	cacheByTypeRoom = constant.CachePrefixRoom + "by_type"
)

type Room interface {
	Create(ctx context.Context, req dto.CreateRoomRequest) (string, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRoomsResponse, error)
	Get(ctx context.Context, id string) (dto.RoomResponse, error)
	GetByType(ctx context.Context, roomTypeID string) ([]dto.RoomResponse, error)
	Update(ctx context.Context, req dto.UpdateRoomRequest, id string) error
	Delete(ctx context.Context, id string) error
	ChangeStatus(ctx context.Context, req dto.ChangeStatusRequest, id string) error
	SetOutOfService(ctx context.Context, req dto.OutOfServiceRequest, id string) error
	GetStatusLogs(ctx context.Context, req gDto.QueryParams, id string) (dto.GetStatusLogsResponse, error)
}

type serviceImpl struct {
	repo         repository.Room
	logRepo      repository.StatusLog
	roomTypeRepo roomTypeRepo.RoomType
	tx           postgres.Transactor
	cfg          *config.Config
	cache        cache.RedisCache
	clock        clock.Clock
	otel         otel.Otel
}

func New(
	repo repository.Room,
	logRepo repository.StatusLog,
	roomTypeRepo roomTypeRepo.RoomType,
	tx postgres.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	clk clock.Clock,
	otel otel.Otel,
) Room {
	return &serviceImpl{
		repo:         repo,
		logRepo:      logRepo,
		roomTypeRepo: roomTypeRepo,
		tx:           tx,
		cfg:          cfg,
		cache:        cache,
		clock:        clk,
		otel:         otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateRoom")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.ensureRoomType(ctx, req.RoomTypeID, req.HotelID); err != nil {
		return "", err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	room := req.ToModel(user, s.clock.Now())

	if err = s.repo.Insert(ctx, room); err != nil {
		if shared.IsPqError(err, constant.PqErrorCodeUniqueViolation) {
			return "", failure.Conflict(fmt.Sprintf("room number %s already exists", req.Number)) // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create room")

		return "", fmt.Errorf("failed to create room: %w", err)
	}

	s.invalidate(ctx)

	return room.ID, nil
}

func (s *serviceImpl) ensureRoomType(ctx context.Context, roomTypeID, hotelID string) error {
	roomType, err := s.roomTypeRepo.Get(ctx, shared.FilterByID(roomTypeID, roomTypeModel.FieldID, roomTypeModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room type")

		return fmt.Errorf("failed to get room type: %w", err)
	}

	if roomType.ID == "" || roomType.HotelID != hotelID {
		return failure.BadRequestFromString("room type does not belong to the hotel") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAllRooms")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllRoom, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for rooms")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	rooms, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	res.FromModels(rooms, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save rooms to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetRoom")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetRoom, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil && res.ID != "" {
		if shared.HotelIDFromContext(ctx, res.HotelID) == res.HotelID {
			return res, nil
		}
	}

	room, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(room)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.HotelRoom, error) {
	filter := shared.ScopeToHotel(ctx, shared.FilterByID(id, model.FieldID, model.TableName), model.TableName)

	room, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return room, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == "" {
		return room, failure.NotFound("room not found") // nolint:wrapcheck
	}

	return room, nil
}

func (s *serviceImpl) GetByType(ctx context.Context, roomTypeID string) (res []dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetRoomsByType")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.ScopeToHotel(ctx, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldRoomTypeID,
				Value:    roomTypeID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}, model.TableName)

	params := gDto.QueryParams{SortBy: model.TableName + "." + model.FieldNumber, SortDir: gDto.SortDirAsc}
	cacheKey := shared.BuildCacheKeyWithQuery(cacheByTypeRoom, params, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	rooms, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms by type")

		return nil, fmt.Errorf("failed to get rooms by type: %w", err)
	}

	res = make([]dto.RoomResponse, len(rooms))
	for i, room := range rooms {
		res[i].FromModel(room)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save rooms by type to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateRoomRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateRoom")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req == (dto.UpdateRoomRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	room, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if req.RoomTypeID != "" && req.RoomTypeID != room.RoomTypeID {
		if err = s.ensureRoomType(ctx, req.RoomTypeID, room.HotelID); err != nil {
			return err
		}
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	updatedFields := shared.TransformFields(req, user, s.clock.Now())
	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		if shared.IsPqError(err, constant.PqErrorCodeUniqueViolation) {
			return failure.Conflict(fmt.Sprintf("room number %s already exists", req.Number)) // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to update room")

		return fmt.Errorf("failed to update room: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteRoom")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.find(ctx, id); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		if shared.IsPqError(err, constant.PqErrorCodeFkViolation) {
			return failure.Conflict("room has bookings and cannot be deleted") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to delete room")

		return fmt.Errorf("failed to delete room: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) ChangeStatus(ctx context.Context, req dto.ChangeStatusRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ChangeRoomStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	fields := map[string]any{
		model.FieldStatus:             req.Status,
		model.FieldOutOfServiceReason: nil,
		model.FieldOutOfServiceUntil:  nil,
	}

	return s.setStatus(ctx, id, req.Status, fields)
}

func (s *serviceImpl) SetOutOfService(ctx context.Context, req dto.OutOfServiceRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetRoomOutOfService")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	fields := map[string]any{
		model.FieldStatus:             model.StatusOutOfService,
		model.FieldOutOfServiceReason: req.Reason,
		model.FieldOutOfServiceUntil:  nil,
	}

	if req.Until != "" {
		until, err := clock.ParseDate(req.Until)
		if err != nil {
			return failure.BadRequestFromString("invalid out of service date") // nolint:wrapcheck
		}

		if until.Before(clock.Today(s.clock)) {
			return failure.BadRequestFromString("out of service date must not be in the past") // nolint:wrapcheck
		}

		fields[model.FieldOutOfServiceUntil] = until
	}

	return s.setStatus(ctx, id, model.StatusOutOfService, fields)
}

func (s *serviceImpl) setStatus(ctx context.Context, id, status string, fields map[string]any) error {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	now := s.clock.Now()

	fields[constant.FieldModifiedAt] = now
	fields[constant.FieldModifiedBy] = user

	err := s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		filter := shared.ScopeToHotel(ctx, shared.FilterByID(id, model.FieldID, model.TableName), model.TableName)

		room, err := s.repo.GetForUpdateTx(ctx, tx, filter)
		if err != nil {
			return fmt.Errorf("failed to lock room: %w", err)
		}

		if room.ID == "" {
			return failure.NotFound("room not found") // nolint:wrapcheck
		}

		if status == model.StatusOutOfService && room.Status == model.StatusOccupied {
			return failure.BadRequestFromString(fmt.Sprintf("room %s is occupied", room.Number)) // nolint:wrapcheck
		}

		if err := s.repo.UpdateTx(ctx, tx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			return fmt.Errorf("failed to update room status: %w", err)
		}

		if err := s.logRepo.InsertTx(ctx, tx, model.NewStatusLog(room, status, user, now)); err != nil {
			return fmt.Errorf("failed to insert room status log: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("room_id", id).Str("status", status).Msg("failed to change room status")

		return err
	}

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) GetStatusLogs(ctx context.Context, req gDto.QueryParams, id string) (res dto.GetStatusLogsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetRoomStatusLogs")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.find(ctx, id); err != nil {
		return res, err
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldRoomID, Value: id, Operator: gDto.FilterOperatorEq, Table: model.StatusLogTableName},
		},
	}

	total, err := s.logRepo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count room status logs")

		return res, fmt.Errorf("failed to count room status logs: %w", err)
	}

	if req.SortBy == "" {
		req.SortBy = model.FieldTimestamp
		req.SortDir = gDto.SortDirDesc
	}

	logs, err := s.logRepo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room status logs")

		return res, fmt.Errorf("failed to get room status logs: %w", err)
	}

	res.FromModels(logs, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, constant.CachePrefixRoom)
		shared.InvalidateCaches(c, s.cache, constant.CachePrefixReport)
	}()
}
