package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"hotel/config"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	bookingModel "hotel/internal/domains/booking/model"
	bookingRepo "hotel/internal/domains/booking/repository"
	guestRepo "hotel/internal/domains/guest/repository"
	"hotel/internal/domains/order/model"
	"hotel/internal/domains/order/model/dto"
	"hotel/internal/domains/order/repository"
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
	cacheGetOrder     = constant.CachePrefixOrder + "get"
	cacheGetAllOrder  = constant.CachePrefixOrder + "gets"
	cacheGetAllMenu   = constant.CachePrefixMenu + "gets"
	orderNotFoundText = "order not found"
)

type Order interface {
	CreateWalkIn(ctx context.Context, req dto.CreateWalkInOrderRequest) (dto.OrderResponse, error)
	CreateForBooking(ctx context.Context, req dto.CreateBookingOrderRequest) (dto.OrderResponse, error)
	Get(ctx context.Context, id string) (dto.OrderResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetOrdersResponse, error)
	Update(ctx context.Context, req dto.UpdateOrderRequest, id string) (dto.OrderResponse, error)
	UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) (dto.OrderResponse, error)
	UpdatePromotion(ctx context.Context, req dto.UpdatePromotionRequest, id string) error

	AddItem(ctx context.Context, req dto.OrderItemRequest, orderID string) (dto.OrderResponse, error)
	UpdateItem(ctx context.Context, req dto.UpdateItemRequest, orderID, itemID string) (dto.OrderResponse, error)
	RemoveItem(ctx context.Context, orderID, itemID string) (dto.OrderResponse, error)
	ReplaceItem(ctx context.Context, req dto.ReplaceItemRequest, orderID, itemID string) (dto.OrderResponse, error)

	CreateMenuItem(ctx context.Context, req dto.CreateMenuItemRequest) (string, error)
	GetMenuItems(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetMenuItemsResponse, error)
	UpdateMenuItem(ctx context.Context, req dto.UpdateMenuItemRequest, id string) error
}

type serviceImpl struct {
	repos        repository.Repositories
	bookingRepos bookingRepo.Repositories
	guestRepo    guestRepo.Guest
	tx           postgres.Transactor
	cfg          *config.Config
	cache        cache.RedisCache
	clock        clock.Clock
	otel         otel.Otel
}

func New(
	repos repository.Repositories,
	bookingRepos bookingRepo.Repositories,
	guestRepo guestRepo.Guest,
	tx postgres.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	clk clock.Clock,
	otel otel.Otel,
) Order {
	return &serviceImpl{
		repos:        repos,
		bookingRepos: bookingRepos,
		guestRepo:    guestRepo,
		tx:           tx,
		cfg:          cfg,
		cache:        cache,
		clock:        clk,
		otel:         otel,
	}
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.OrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetOrder")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetOrder, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for order")

		return res, nil
	}

	if res, err = s.load(ctx, id); err != nil {
		return res, err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save order to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetOrdersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAllOrders")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter = shared.ScopeToHotel(ctx, filter, model.TableName)
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllOrder, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for orders")

		return res, nil
	}

	total, err := s.repos.Order.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count orders")

		return res, fmt.Errorf("failed to count orders: %w", err)
	}

	orders, err := s.repos.Order.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get orders")

		return res, fmt.Errorf("failed to get orders: %w", err)
	}

	items := map[string][]model.OrderItem{}

	if len(orders) > 0 {
		ids := make([]string, len(orders))
		for i, order := range orders {
			ids[i] = order.ID
		}

		filter := shared.FilterAnd(gDto.Filter{Field: model.FieldOrderID, Value: ids, Operator: gDto.FilterOperatorIn, Table: model.ItemTableName})

		all, err := s.repos.Item.GetAll(ctx, itemParams(), filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to get order items")

			return res, fmt.Errorf("failed to get order items: %w", err)
		}

		for _, item := range all {
			items[item.OrderID] = append(items[item.OrderID], item)
		}
	}

	res.FromModels(orders, items, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save orders to cache")
		}
	}()

	return res, nil
}

// UpdateStatus moves the order to a new status; notes are kept as the kitchen change request.
func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) (res dto.OrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateOrderStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	fields := map[string]any{
		model.FieldStatus:        req.Status,
		constant.FieldModifiedAt: s.clock.Now(),
		constant.FieldModifiedBy: userFrom(ctx),
	}

	if req.Notes != nil {
		fields[model.FieldChangeFoodRequest] = *req.Notes
	}

	if err = s.updateOrder(ctx, fields, id); err != nil {
		return res, err
	}

	return s.load(ctx, id)
}

func (s *serviceImpl) UpdatePromotion(ctx context.Context, req dto.UpdatePromotionRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateOrderPromotion")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.PromotionValue.IsNegative() {
		return failure.BadRequestFromString("promotion value must not be negative") // nolint:wrapcheck
	}

	fields := map[string]any{
		model.FieldPromotionCode:  dto.Optional(req.PromotionCode),
		model.FieldPromotionValue: req.PromotionValue,
		constant.FieldModifiedAt:  s.clock.Now(),
		constant.FieldModifiedBy:  userFrom(ctx),
	}

	return s.updateOrder(ctx, fields, id)
}

func (s *serviceImpl) updateOrder(ctx context.Context, fields map[string]any, id string) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}

	if err := s.repos.Order.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update order")

		return fmt.Errorf("failed to update order: %w", err)
	}

	s.changed(ctx)

	return nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Order, error) {
	filter := shared.ScopeToHotel(ctx, shared.FilterByID(id, model.FieldID, model.TableName), model.TableName)

	order, err := s.repos.Order.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get order")

		return order, fmt.Errorf("failed to get order: %w", err)
	}

	if order.ID == "" {
		return order, failure.NotFound(orderNotFoundText) // nolint:wrapcheck
	}

	return order, nil
}

// load reads the order with its items and replacement history, bypassing the cache.
func (s *serviceImpl) load(ctx context.Context, id string) (res dto.OrderResponse, err error) {
	order, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	items, err := s.repos.Item.GetAll(ctx, itemParams(), shared.FilterByID(id, model.FieldOrderID, model.ItemTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get order items")

		return res, fmt.Errorf("failed to get order items: %w", err)
	}

	histories, err := s.repos.History.GetAll(ctx, gDto.QueryParams{}, shared.FilterByID(id, model.FieldOrderID, model.HistoryTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get order item histories")

		return res, fmt.Errorf("failed to get order item histories: %w", err)
	}

	res.FromModel(order)
	res.WithItems(order, items)
	res.WithHistories(histories)

	return res, nil
}

func (s *serviceImpl) lockOrder(ctx context.Context, tx *sqlx.Tx, id string) (model.Order, error) {
	filter := shared.ScopeToHotel(ctx, shared.FilterByID(id, model.FieldID, model.TableName), model.TableName)

	order, err := s.repos.Order.GetForUpdateTx(ctx, tx, filter)
	if err != nil {
		return order, fmt.Errorf("failed to lock order: %w", err)
	}

	if order.ID == "" {
		return order, failure.NotFound(orderNotFoundText) // nolint:wrapcheck
	}

	return order, nil
}

// findBooking loads a booking of the hotel that can still take orders.
func (s *serviceImpl) findBooking(ctx context.Context, tx *sqlx.Tx, hotelID, bookingID string) (bookingModel.Booking, error) {
	filter := shared.FilterAnd(
		gDto.Filter{Field: bookingModel.FieldID, Value: bookingID, Operator: gDto.FilterOperatorEq, Table: bookingModel.TableName},
		gDto.Filter{Field: bookingModel.FieldHotelID, Value: hotelID, Operator: gDto.FilterOperatorEq, Table: bookingModel.TableName},
	)

	booking, err := s.bookingRepos.Booking.GetTx(ctx, tx, filter)
	if err != nil {
		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	switch {
	case booking.ID == "":
		return booking, failure.NotFound("booking not found in hotel") // nolint:wrapcheck
	case booking.IsTerminal():
		return booking, failure.BadRequestFromString(fmt.Sprintf("booking is %s", booking.Status)) // nolint:wrapcheck
	}

	return booking, nil
}

// changed drops cached orders.
func (s *serviceImpl) changed(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, constant.CachePrefixOrder)
	}()
}

// txError logs infrastructure failures; domain failures pass through.
func (s *serviceImpl) txError(err error, msg string) error {
	var fail *failure.Failure
	if errors.As(err, &fail) {
		return err
	}

	if shared.IsPqError(err, constant.PqErrorCodeFkViolation) {
		return failure.BadRequestFromString("referenced booking or menu item does not exist") // nolint:wrapcheck
	}

	log.Error().Err(err).Msg(msg)

	return fmt.Errorf("%s: %w", msg, err)
}

func itemParams() gDto.QueryParams {
	return gDto.QueryParams{SortBy: model.ItemTableName + "." + model.FieldCreatedAt, SortDir: gDto.SortDirAsc}
}

func userFrom(ctx context.Context) string {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	return user
}
