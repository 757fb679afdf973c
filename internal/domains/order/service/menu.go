package service

import (
	"context"
	"fmt"
	"hotel/internal/domains/order/model"
	"hotel/internal/domains/order/model/dto"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	gModel "hotel/shared/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

func (s *serviceImpl) CreateMenuItem(ctx context.Context, req dto.CreateMenuItemRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateMenuItem")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.UnitPrice.IsNegative() {
		return "", failure.BadRequestFromString("unit price must not be negative") // nolint:wrapcheck
	}

	item := model.MenuItem{
		ID:          uuid.NewString(),
		HotelID:     shared.HotelIDFromContext(ctx, req.HotelID),
		Name:        req.Name,
		Category:    dto.Optional(req.Category),
		Description: dto.Optional(req.Description),
		ImageURL:    dto.Optional(req.ImageURL),
		UnitPrice:   req.UnitPrice,
		IsActive:    true,
		Metadata:    gModel.NewMetadata(userFrom(ctx), s.clock.Now()),
	}

	if err = s.repos.MenuItem.Insert(ctx, item); err != nil {
		log.Error().Err(err).Msg("failed to create menu item")

		return "", fmt.Errorf("failed to create menu item: %w", err)
	}

	s.menuChanged(ctx)

	return item.ID, nil
}

func (s *serviceImpl) GetMenuItems(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetMenuItemsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMenuItems")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter = shared.ScopeToHotel(ctx, filter, model.MenuItemTableName)
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllMenu, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for menu items")

		return res, nil
	}

	total, err := s.repos.MenuItem.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count menu items")

		return res, fmt.Errorf("failed to count menu items: %w", err)
	}

	items, err := s.repos.MenuItem.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get menu items")

		return res, fmt.Errorf("failed to get menu items: %w", err)
	}

	res.FromModels(items, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save menu items to cache")
		}
	}()

	return res, nil
}

// UpdateMenuItem changes a menu entry; prices already copied onto order items stay as they are.
func (s *serviceImpl) UpdateMenuItem(ctx context.Context, req dto.UpdateMenuItemRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateMenuItem")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.UnitPrice != nil && req.UnitPrice.IsNegative() {
		return failure.BadRequestFromString("unit price must not be negative") // nolint:wrapcheck
	}

	filter := shared.ScopeToHotel(ctx, shared.FilterByID(id, model.FieldID, model.MenuItemTableName), model.MenuItemTableName)

	item, err := s.repos.MenuItem.Get(ctx, filter, model.FieldID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get menu item")

		return fmt.Errorf("failed to get menu item: %w", err)
	}

	if item.ID == "" {
		return failure.NotFound("menu item not found") // nolint:wrapcheck
	}

	if err = s.repos.MenuItem.Update(ctx, shared.TransformFields(req, userFrom(ctx), s.clock.Now()), filter); err != nil {
		log.Error().Err(err).Msg("failed to update menu item")

		return fmt.Errorf("failed to update menu item: %w", err)
	}

	s.menuChanged(ctx)

	return nil
}

func (s *serviceImpl) menuChanged(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, constant.CachePrefixMenu)
	}()
}
