package order

import (
	"hotel/infras/otel"
	"hotel/internal/domains/order/model"
	"hotel/internal/domains/order/model/dto"
	"hotel/internal/domains/order/service"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/validator"
	"hotel/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Order
	otel    otel.Otel
}

func New(service service.Order, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/orders", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetOrders)
		routerGroup.Get("/active", handler.GetActiveOrders)
		routerGroup.Post("/walk-in", handler.CreateWalkInOrder)
		routerGroup.Post("/booking", handler.CreateBookingOrder)
		routerGroup.Get("/{id}", handler.GetOrderByID)
		routerGroup.Put("/{id}", handler.UpdateOrder)
		routerGroup.Patch("/{id}/status", handler.UpdateOrderStatus)
		routerGroup.Patch("/{id}/promotion", handler.UpdateOrderPromotion)
		routerGroup.Post("/{id}/items", handler.AddOrderItem)
		routerGroup.Patch("/{id}/items/{itemID}", handler.UpdateOrderItem)
		routerGroup.Delete("/{id}/items/{itemID}", handler.RemoveOrderItem)
		routerGroup.Post("/{id}/items/{itemID}/replace", handler.ReplaceOrderItem)
	})

	router.Route("/menu-items", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetMenuItems)
		routerGroup.Post("/", handler.CreateMenuItem)
		routerGroup.Patch("/{id}", handler.UpdateMenuItem)
	})
}

// GetOrders lists dining orders.
// @Summary List orders
// @Tags Order
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param sort_by query string false "Sort field (created_at, serving_date, status)"
// @Param sort_dir query string false "Sort direction (ASC, DESC)"
// @Param hotel_id query string false "Hotel ID"
// @Param booking_id query string false "Booking ID"
// @Param is_walk_in query bool false "Walk-in orders only"
// @Param status query string false "Order status"
// @Param search query string false "Customer name or phone"
// @Success 200 {object} response.Envelope{data=[]dto.OrderResponse,meta=response.Meta}
// @Failure 500 {object} response.Envelope
// @Router /v1/orders [get]
// @Security BearerAuth
func (handler *Handler) GetOrders(writer http.ResponseWriter, request *http.Request) {
	handler.listOrders(writer, request, false)
}

// GetActiveOrders lists the orders that are neither completed nor cancelled.
// @Summary List active orders
// @Tags Order
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param hotel_id query string false "Hotel ID"
// @Param booking_id query string false "Booking ID"
// @Param is_walk_in query bool false "Walk-in orders only"
// @Param search query string false "Customer name or phone"
// @Success 200 {object} response.Envelope{data=[]dto.OrderResponse,meta=response.Meta}
// @Failure 500 {object} response.Envelope
// @Router /v1/orders/active [get]
// @Security BearerAuth
func (handler *Handler) GetActiveOrders(writer http.ResponseWriter, request *http.Request) {
	handler.listOrders(writer, request, true)
}

func (handler *Handler) listOrders(writer http.ResponseWriter, request *http.Request, active bool) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOrders")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)
	queryParams.RestrictSort(model.TableName, model.FieldCreatedAt, model.FieldServingDate, model.FieldStatus)

	query := request.URL.Query()
	filterGroup := dto.ListOrdersQuery{
		HotelID:   shared.HotelIDFromContext(ctx, query.Get(constant.RequestParamHotelID)),
		BookingID: query.Get(model.FieldBookingID),
		WalkIn:    query.Get(model.FieldIsWalkIn),
		Status:    query.Get(model.FieldStatus),
		Search:    query.Get(constant.RequestParamSearch),
		Active:    active,
	}.ToFilter()

	orders, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get orders")
		response.WithError(writer, err)

		return
	}

	response.WithPaginated(writer, http.StatusOK, orders.Orders, response.NewMeta(queryParams, orders.TotalData))
}

// GetOrderByID retrieves an order with its items and replacement history.
// @Summary Get an order
// @Tags Order
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} response.Envelope{data=dto.OrderResponse}
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/orders/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetOrderByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOrderByID")
	defer scope.End()

	order, err := handler.service.Get(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get order")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, order)
}

// CreateWalkInOrder opens an order for a customer without a booking.
// @Summary Create a walk-in order
// @Tags Order
// @Accept json
// @Produce json
// @Param request body dto.CreateWalkInOrderRequest true "Customer and items"
// @Success 201 {object} response.Envelope{data=dto.OrderResponse}
// @Failure 400 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/orders/walk-in [post]
// @Security BearerAuth
func (handler *Handler) CreateWalkInOrder(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateWalkInOrder")
	defer scope.End()

	req := dto.CreateWalkInOrderRequest{HotelID: shared.HotelIDFromContext(ctx, "")}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")
		response.WithError(writer, err)

		return
	}

	order, err := handler.service.CreateWalkIn(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create walk-in order")
		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Walk-in order created successfully")
	response.WithJSON(writer, http.StatusCreated, order)
}

// CreateBookingOrder opens an order billed to a booking.
// @Summary Create a booking order
// @Tags Order
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingOrderRequest true "Booking and items"
// @Success 201 {object} response.Envelope{data=dto.OrderResponse}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/orders/booking [post]
// @Security BearerAuth
func (handler *Handler) CreateBookingOrder(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBookingOrder")
	defer scope.End()

	req := dto.CreateBookingOrderRequest{HotelID: shared.HotelIDFromContext(ctx, "")}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")
		response.WithError(writer, err)

		return
	}

	order, err := handler.service.CreateForBooking(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking order")
		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking order created successfully")
	response.WithJSON(writer, http.StatusCreated, order)
}

// UpdateOrder replaces the details and items of an order.
// @Summary Update an order
// @Tags Order
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body dto.UpdateOrderRequest true "Order details and items"
// @Success 200 {object} response.Envelope{data=dto.OrderResponse}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/orders/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateOrder(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateOrder")
	defer scope.End()

	req := dto.UpdateOrderRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")
		response.WithError(writer, err)

		return
	}

	order, err := handler.service.Update(ctx, req, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update order")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, order)
}

// UpdateOrderStatus moves an order to a new status.
// @Summary Update an order status
// @Tags Order
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body dto.UpdateStatusRequest true "New status"
// @Success 200 {object} response.Envelope{data=dto.OrderResponse}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/orders/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) UpdateOrderStatus(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateOrderStatus")
	defer scope.End()

	req := dto.UpdateStatusRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")
		response.WithError(writer, err)

		return
	}

	order, err := handler.service.UpdateStatus(ctx, req, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update order status")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, order)
}

// UpdateOrderPromotion records the promotion quoted on an order.
// @Summary Update an order promotion
// @Tags Order
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body dto.UpdatePromotionRequest true "Promotion"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/orders/{id}/promotion [patch]
// @Security BearerAuth
func (handler *Handler) UpdateOrderPromotion(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateOrderPromotion")
	defer scope.End()

	req := dto.UpdatePromotionRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")
		response.WithError(writer, err)

		return
	}

	if err := handler.service.UpdatePromotion(ctx, req, chi.URLParam(request, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update order promotion")
		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Order promotion updated successfully")
}

// AddOrderItem adds a menu item to an order.
// @Summary Add an order item
// @Tags Order
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body dto.OrderItemRequest true "Menu item and quantity"
// @Success 201 {object} response.Envelope{data=dto.OrderResponse}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/orders/{id}/items [post]
// @Security BearerAuth
func (handler *Handler) AddOrderItem(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddOrderItem")
	defer scope.End()

	req := dto.OrderItemRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")
		response.WithError(writer, err)

		return
	}

	order, err := handler.service.AddItem(ctx, req, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to add order item")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusCreated, order)
}

// UpdateOrderItem changes the quantity, status or proposed replacement of an item.
// @Summary Update an order item
// @Tags Order
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param itemID path string true "Order item ID"
// @Param request body dto.UpdateItemRequest true "Fields to update"
// @Success 200 {object} response.Envelope{data=dto.OrderResponse}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/orders/{id}/items/{itemID} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateOrderItem(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateOrderItem")
	defer scope.End()

	req := dto.UpdateItemRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")
		response.WithError(writer, err)

		return
	}

	order, err := handler.service.UpdateItem(ctx, req, chi.URLParam(request, constant.RequestParamID), chi.URLParam(request, constant.RequestParamItemID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update order item")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, order)
}

// RemoveOrderItem deletes an item that has not been served.
// @Summary Remove an order item
// @Tags Order
// @Produce json
// @Param id path string true "Order ID"
// @Param itemID path string true "Order item ID"
// @Success 200 {object} response.Envelope{data=dto.OrderResponse}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/orders/{id}/items/{itemID} [delete]
// @Security BearerAuth
func (handler *Handler) RemoveOrderItem(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RemoveOrderItem")
	defer scope.End()

	order, err := handler.service.RemoveItem(ctx, chi.URLParam(request, constant.RequestParamID), chi.URLParam(request, constant.RequestParamItemID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to remove order item")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, order)
}

// ReplaceOrderItem voids an item and adds another menu item in its place.
// @Summary Replace an order item
// @Tags Order
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param itemID path string true "Order item ID"
// @Param request body dto.ReplaceItemRequest true "Replacement"
// @Success 200 {object} response.Envelope{data=dto.OrderResponse}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/orders/{id}/items/{itemID}/replace [post]
// @Security BearerAuth
func (handler *Handler) ReplaceOrderItem(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ReplaceOrderItem")
	defer scope.End()

	req := dto.ReplaceItemRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")
		response.WithError(writer, err)

		return
	}

	order, err := handler.service.ReplaceItem(ctx, req, chi.URLParam(request, constant.RequestParamID), chi.URLParam(request, constant.RequestParamItemID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to replace order item")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, order)
}

// GetMenuItems lists the menu of a hotel.
// @Summary List menu items
// @Tags Menu
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param sort_by query string false "Sort field (name, category, unit_price)"
// @Param sort_dir query string false "Sort direction (ASC, DESC)"
// @Param hotel_id query string false "Hotel ID"
// @Param category query string false "Category"
// @Param name query string false "Name contains"
// @Param is_active query bool false "Active items only"
// @Success 200 {object} response.Envelope{data=[]dto.MenuItemResponse,meta=response.Meta}
// @Failure 500 {object} response.Envelope
// @Router /v1/menu-items [get]
// @Security BearerAuth
func (handler *Handler) GetMenuItems(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMenuItems")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)
	queryParams.RestrictSort(model.MenuItemTableName, model.FieldName, model.FieldCategory, "unit_price", model.FieldCreatedAt)

	query := request.URL.Query()
	filterGroup := dto.ListMenuItemsQuery{
		HotelID:  shared.HotelIDFromContext(ctx, query.Get(constant.RequestParamHotelID)),
		Category: query.Get(model.FieldCategory),
		Name:     query.Get(model.FieldName),
		Active:   query.Get(model.FieldIsActive),
	}.ToFilter()

	items, err := handler.service.GetMenuItems(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get menu items")
		response.WithError(writer, err)

		return
	}

	response.WithPaginated(writer, http.StatusOK, items.MenuItems, response.NewMeta(queryParams, items.TotalData))
}

// CreateMenuItem adds an item to the menu of a hotel.
// @Summary Create a menu item
// @Tags Menu
// @Accept json
// @Produce json
// @Param request body dto.CreateMenuItemRequest true "Menu item"
// @Success 201 {object} response.Envelope{data=string}
// @Failure 400 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/menu-items [post]
// @Security BearerAuth
func (handler *Handler) CreateMenuItem(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateMenuItem")
	defer scope.End()

	req := dto.CreateMenuItemRequest{HotelID: shared.HotelIDFromContext(ctx, "")}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")
		response.WithError(writer, err)

		return
	}

	id, err := handler.service.CreateMenuItem(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create menu item")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusCreated, id)
}

// UpdateMenuItem changes a menu item; deactivated items can no longer be ordered.
// @Summary Update a menu item
// @Tags Menu
// @Accept json
// @Produce json
// @Param id path string true "Menu item ID"
// @Param request body dto.UpdateMenuItemRequest true "Fields to update"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/menu-items/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateMenuItem(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateMenuItem")
	defer scope.End()

	req := dto.UpdateMenuItemRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")
		response.WithError(writer, err)

		return
	}

	if err := handler.service.UpdateMenuItem(ctx, req, chi.URLParam(request, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update menu item")
		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Menu item updated successfully")
}
