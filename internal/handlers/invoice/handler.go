package invoice

import (
	"hotel/infras/otel"
	"hotel/internal/domains/invoice/model"
	"hotel/internal/domains/invoice/model/dto"
	"hotel/internal/domains/invoice/service"
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
	service service.Invoice
	otel    otel.Otel
}

func New(service service.Invoice, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/invoices", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetInvoices)
		routerGroup.Get("/revenue", handler.GetRevenue)
		routerGroup.Post("/walk-in", handler.CreateWalkInInvoice)
		routerGroup.Post("/booking", handler.CreateBookingInvoice)
		routerGroup.Get("/{id}", handler.GetInvoiceByID)
	})

	router.Route("/promotions", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreatePromotion)
		routerGroup.Get("/", handler.GetPromotions)
		routerGroup.Delete("/{id}", handler.DeactivatePromotion)
	})

	router.Route("/surcharge-rules", func(routerGroup chi.Router) {
		routerGroup.Put("/", handler.SetSurchargeRule)
		routerGroup.Get("/", handler.GetSurchargeRules)
	})
}

// GetInvoices lists invoices.
// @Summary List invoices
// @Tags Invoice
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param sort_by query string false "Sort field (created_at, status)"
// @Param sort_dir query string false "Sort direction (ASC, DESC)"
// @Param hotel_id query string false "Hotel ID"
// @Param booking_id query string false "Booking ID"
// @Param status query string false "Invoice status"
// @Param is_walk_in query bool false "Walk-in invoices only"
// @Param from query string false "Created from (YYYY-MM-DD)"
// @Param to query string false "Created to, inclusive (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope{data=[]dto.InvoiceResponse,meta=response.Meta}
// @Failure 500 {object} response.Envelope
// @Router /v1/invoices [get]
// @Security BearerAuth
func (handler *Handler) GetInvoices(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetInvoices")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)
	queryParams.RestrictSort(model.TableName, model.FieldCreatedAt, model.FieldStatus)

	query := request.URL.Query()
	filterGroup := dto.ListInvoicesQuery{
		HotelID:   shared.HotelIDFromContext(ctx, query.Get(constant.RequestParamHotelID)),
		BookingID: query.Get(model.FieldBookingID),
		Status:    query.Get(model.FieldStatus),
		WalkIn:    query.Get(model.FieldIsWalkIn),
		From:      query.Get(constant.RequestParamFrom),
		To:        query.Get(constant.RequestParamTo),
	}.ToFilter()

	invoices, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get invoices")
		response.WithError(writer, err)

		return
	}

	response.WithPaginated(writer, http.StatusOK, invoices.Invoices, response.NewMeta(queryParams, invoices.TotalData))
}

// GetInvoiceByID retrieves an invoice with its lines.
// @Summary Get an invoice
// @Tags Invoice
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} response.Envelope{data=dto.InvoiceResponse}
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/invoices/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetInvoiceByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetInvoiceByID")
	defer scope.End()

	invoice, err := handler.service.Get(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get invoice")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, invoice)
}

// CreateBookingInvoice checks out a booking and issues its invoice.
// @Summary Invoice a booking
// @Tags Invoice
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingInvoiceRequest true "Booking and settlement details"
// @Success 201 {object} response.Envelope{data=dto.InvoiceResponse}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/invoices/booking [post]
// @Security BearerAuth
func (handler *Handler) CreateBookingInvoice(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBookingInvoice")
	defer scope.End()

	req := dto.CreateBookingInvoiceRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")
		response.WithError(writer, err)

		return
	}

	invoice, err := handler.service.CreateBookingInvoice(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking invoice")
		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking invoice created successfully")
	response.WithJSON(writer, http.StatusCreated, invoice)
}

// CreateWalkInInvoice bills the items of a walk-in order and completes the order.
// @Summary Invoice a walk-in order
// @Tags Invoice
// @Accept json
// @Produce json
// @Param request body dto.CreateWalkInInvoiceRequest true "Order to bill"
// @Success 201 {object} response.Envelope{data=dto.InvoiceResponse}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/invoices/walk-in [post]
// @Security BearerAuth
func (handler *Handler) CreateWalkInInvoice(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateWalkInInvoice")
	defer scope.End()

	req := dto.CreateWalkInInvoiceRequest{HotelID: shared.HotelIDFromContext(ctx, "")}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")
		response.WithError(writer, err)

		return
	}

	invoice, err := handler.service.CreateWalkInInvoice(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create walk-in invoice")
		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Walk-in invoice created successfully")
	response.WithJSON(writer, http.StatusCreated, invoice)
}

// GetRevenue sums issued invoices by source over a date range.
// @Summary Revenue report
// @Tags Invoice
// @Produce json
// @Param hotel_id query string false "Hotel ID"
// @Param from query string true "Range start (YYYY-MM-DD)"
// @Param to query string true "Range end, inclusive (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope{data=dto.RevenueResponse}
// @Failure 400 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/invoices/revenue [get]
// @Security BearerAuth
func (handler *Handler) GetRevenue(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRevenue")
	defer scope.End()

	query := request.URL.Query()
	req := dto.RevenueQuery{
		HotelID: shared.HotelIDFromContext(ctx, query.Get(constant.RequestParamHotelID)),
		From:    query.Get(constant.RequestParamFrom),
		To:      query.Get(constant.RequestParamTo),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	revenue, err := handler.service.Revenue(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get revenue")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, revenue)
}

// CreatePromotion creates a discount code.
// @Summary Create a promotion
// @Tags Promotion
// @Accept json
// @Produce json
// @Param request body dto.CreatePromotionRequest true "Promotion details"
// @Success 201 {object} response.Envelope{data=gDto.IDResponse}
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/promotions [post]
// @Security BearerAuth
func (handler *Handler) CreatePromotion(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreatePromotion")
	defer scope.End()

	req := dto.CreatePromotionRequest{HotelID: shared.HotelIDFromContext(ctx, "")}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")
		response.WithError(writer, err)

		return
	}

	id, err := handler.service.CreatePromotion(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create promotion")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusCreated, gDto.IDResponse{ID: id})
}

// GetPromotions lists promotions.
// @Summary List promotions
// @Tags Promotion
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param hotel_id query string false "Hotel ID"
// @Param scope query string false "Scope (booking, food)"
// @Param is_active query bool false "Active flag"
// @Success 200 {object} response.Envelope{data=[]dto.PromotionResponse,meta=response.Meta}
// @Failure 500 {object} response.Envelope
// @Router /v1/promotions [get]
// @Security BearerAuth
func (handler *Handler) GetPromotions(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPromotions")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)
	queryParams.RestrictSort(model.PromotionTableName, model.FieldCode, model.FieldStartDate, model.FieldEndDate)

	query := request.URL.Query()
	filterGroup := dto.ListPromotionsQuery{
		HotelID: shared.HotelIDFromContext(ctx, query.Get(constant.RequestParamHotelID)),
		Scope:   query.Get(model.FieldScope),
		Active:  query.Get(model.FieldIsActive),
	}.ToFilter()

	promotions, err := handler.service.GetPromotions(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get promotions")
		response.WithError(writer, err)

		return
	}

	response.WithPaginated(writer, http.StatusOK, promotions.Promotions, response.NewMeta(queryParams, promotions.TotalData))
}

// DeactivatePromotion switches a promotion off.
// @Summary Deactivate a promotion
// @Tags Promotion
// @Produce json
// @Param id path string true "Promotion ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/promotions/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeactivatePromotion(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeactivatePromotion")
	defer scope.End()

	if err := handler.service.DeactivatePromotion(ctx, chi.URLParam(request, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to deactivate promotion")
		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Promotion deactivated successfully")
}

// SetSurchargeRule creates or replaces the surcharge rule of a type.
// @Summary Set a surcharge rule
// @Tags SurchargeRule
// @Accept json
// @Produce json
// @Param request body dto.SetSurchargeRuleRequest true "Rule details"
// @Success 200 {object} response.Envelope{data=gDto.IDResponse}
// @Failure 400 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/surcharge-rules [put]
// @Security BearerAuth
func (handler *Handler) SetSurchargeRule(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetSurchargeRule")
	defer scope.End()

	req := dto.SetSurchargeRuleRequest{HotelID: shared.HotelIDFromContext(ctx, "")}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")
		response.WithError(writer, err)

		return
	}

	req.HotelID = shared.HotelIDFromContext(ctx, req.HotelID)

	id, err := handler.service.SetSurchargeRule(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to set surcharge rule")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, gDto.IDResponse{ID: id})
}

// GetSurchargeRules lists the surcharge rules of a hotel.
// @Summary List surcharge rules
// @Tags SurchargeRule
// @Produce json
// @Param hotel_id query string false "Hotel ID"
// @Success 200 {object} response.Envelope{data=[]dto.SurchargeRuleResponse}
// @Failure 400 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/surcharge-rules [get]
// @Security BearerAuth
func (handler *Handler) GetSurchargeRules(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSurchargeRules")
	defer scope.End()

	rules, err := handler.service.GetSurchargeRules(ctx, request.URL.Query().Get(constant.RequestParamHotelID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get surcharge rules")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, rules)
}
