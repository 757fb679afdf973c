package service

import (
	"context"
	"fmt"
	"hotel/config"
	"hotel/infras/otel"
	"hotel/internal/domains/roomtype/model"
	"hotel/internal/domains/roomtype/model/dto"
	"hotel/internal/domains/roomtype/repository"
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
	cacheGetRoomType    = constant.CachePrefixRoomType + "get"
	cacheGetAllRoomType = constant.CachePrefixRoomType + "gets"
	cacheGetPrices      = constant.CachePrefixRoomType + "prices"
)

type RoomType interface {
	Create(ctx context.Context, req dto.CreateRoomTypeRequest) (string, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRoomTypesResponse, error)
	Get(ctx context.Context, id string) (dto.RoomTypeResponse, error)
	Update(ctx context.Context, req dto.UpdateRoomTypeRequest, id string) error
	Delete(ctx context.Context, id string) error
	GetPrices(ctx context.Context, id string, from, to time.Time) ([]dto.PriceResponse, error)
	SetPrices(ctx context.Context, req dto.SetPricesRequest, id string) error
	DeletePrices(ctx context.Context, id string, from, to time.Time) error
}

type serviceImpl struct {
	repo      repository.RoomType
	priceRepo repository.Price
	cfg       *config.Config
	cache     cache.RedisCache
	clock     clock.Clock
	otel      otel.Otel
}

func New(repo repository.RoomType, priceRepo repository.Price, cfg *config.Config, cache cache.RedisCache, clk clock.Clock, otel otel.Otel) RoomType {
	return &serviceImpl{
		repo:      repo,
		priceRepo: priceRepo,
		cfg:       cfg,
		cache:     cache,
		clock:     clk,
		otel:      otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomTypeRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateRoomType")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.BasePrice != nil && req.BasePrice.IsNegative() {
		return "", failure.BadRequestFromString("base price must not be negative") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	roomType := req.ToModel(user, s.clock.Now())

	if err = s.repo.Insert(ctx, roomType); err != nil {
		if shared.IsPqError(err, constant.PqErrorCodeUniqueViolation) {
			return "", failure.Conflict("room type name already exists") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create room type")

		return "", fmt.Errorf("failed to create room type: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllRoomType)
	}()

	return roomType.ID, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRoomTypesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAllRoomTypes")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllRoomType, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room types")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count room types")

		return res, fmt.Errorf("failed to count room types: %w", err)
	}

	roomTypes, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room types")

		return res, fmt.Errorf("failed to get room types: %w", err)
	}

	res.FromModels(roomTypes, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room types to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RoomTypeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetRoomType")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	roomType, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(roomType)

	return res, nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.RoomType, error) {
	cacheKey := shared.BuildCacheKey(cacheGetRoomType, id)

	var roomType model.RoomType
	if err := s.cache.Get(ctx, cacheKey, &roomType); err == nil && roomType.ID != "" {
		return s.checkHotel(ctx, roomType)
	}

	roomType, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room type")

		return roomType, fmt.Errorf("failed to get room type: %w", err)
	}

	if roomType.ID == "" {
		return roomType, failure.NotFound("room type not found") // nolint:wrapcheck
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, roomType, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room type to cache")
		}
	}()

	return s.checkHotel(ctx, roomType)
}

func (s *serviceImpl) checkHotel(ctx context.Context, roomType model.RoomType) (model.RoomType, error) {
	if hotelID := shared.HotelIDFromContext(ctx, roomType.HotelID); hotelID != roomType.HotelID {
		return model.RoomType{}, failure.NotFound("room type not found") // nolint:wrapcheck
	}

	return roomType, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateRoomTypeRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateRoomType")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req == (dto.UpdateRoomTypeRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	if req.BasePrice != nil && req.BasePrice.IsNegative() {
		return failure.BadRequestFromString("base price must not be negative") // nolint:wrapcheck
	}

	if _, err = s.find(ctx, id); err != nil {
		return err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	updatedFields := shared.TransformFields(req, user, s.clock.Now())
	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		if shared.IsPqError(err, constant.PqErrorCodeUniqueViolation) {
			return failure.Conflict("room type name already exists") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to update room type")

		return fmt.Errorf("failed to update room type: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteRoomType")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.find(ctx, id); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		if shared.IsPqError(err, constant.PqErrorCodeFkViolation) {
			return failure.Conflict("room type is still used by rooms or bookings") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to delete room type")

		return fmt.Errorf("failed to delete room type: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) GetPrices(ctx context.Context, id string, from, to time.Time) (res []dto.PriceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetRoomTypePrices")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !to.After(from) {
		return nil, failure.BadRequestFromString("end date must be after start date") // nolint:wrapcheck
	}

	if _, err = s.find(ctx, id); err != nil {
		return nil, err
	}

	cacheKey := shared.BuildCacheKey(cacheGetPrices, id, from.Format(constant.DateOnly), to.Format(constant.DateOnly))

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	filter := shared.FilterAnd(
		gDto.Filter{Field: model.FieldRoomTypeID, Value: id, Operator: gDto.FilterOperatorEq, Table: model.PriceTableName},
		gDto.Filter{ArgName: "date_from", Field: model.FieldDate, Value: from, Operator: gDto.FilterOperatorGreaterEq, Table: model.PriceTableName},
		gDto.Filter{ArgName: "date_to", Field: model.FieldDate, Value: to, Operator: gDto.FilterOperatorLess, Table: model.PriceTableName},
	)

	prices, err := s.priceRepo.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldDate, SortDir: gDto.SortDirAsc}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room type prices")

		return nil, fmt.Errorf("failed to get room type prices: %w", err)
	}

	res = make([]dto.PriceResponse, len(prices))
	for i, price := range prices {
		res[i].FromModel(price)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room type prices to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) SetPrices(ctx context.Context, req dto.SetPricesRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetRoomTypePrices")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.find(ctx, id); err != nil {
		return err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	prices, err := req.ToModels(id, user, s.clock.Now())
	if err != nil {
		return failure.BadRequest(err) // nolint:wrapcheck
	}

	if err = s.priceRepo.Upsert(ctx, prices); err != nil {
		log.Error().Err(err).Msg("failed to set room type prices")

		return fmt.Errorf("failed to set room type prices: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) DeletePrices(ctx context.Context, id string, from, to time.Time) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteRoomTypePrices")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !to.After(from) {
		return failure.BadRequestFromString("end date must be after start date") // nolint:wrapcheck
	}

	if _, err = s.find(ctx, id); err != nil {
		return err
	}

	filter := shared.FilterAnd(
		gDto.Filter{Field: model.FieldRoomTypeID, Value: id, Operator: gDto.FilterOperatorEq, Table: model.PriceTableName},
		gDto.Filter{ArgName: "date_from", Field: model.FieldDate, Value: from, Operator: gDto.FilterOperatorGreaterEq, Table: model.PriceTableName},
		gDto.Filter{ArgName: "date_to", Field: model.FieldDate, Value: to, Operator: gDto.FilterOperatorLess, Table: model.PriceTableName},
	)

	if err = s.priceRepo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete room type prices")

		return fmt.Errorf("failed to delete room type prices: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(cacheGetRoomType, id))
		shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(cacheGetPrices, id))
		shared.InvalidateCaches(c, s.cache, cacheGetAllRoomType)
	}()
}
