package roomtype

import (
	"hotel/infras/otel"
	"hotel/internal/domains/roomtype/model"
	"hotel/internal/domains/roomtype/model/dto"
	"hotel/internal/domains/roomtype/service"
	"hotel/shared"
	"hotel/shared/clock"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/validator"
	"hotel/transport/http/response"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.RoomType
	otel    otel.Otel
}

func New(service service.RoomType, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/room-types", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateRoomType)
		routerGroup.Get("/", handler.GetRoomTypes)
		routerGroup.Get("/{id}", handler.GetRoomTypeByID)
		routerGroup.Patch("/{id}", handler.UpdateRoomType)
		routerGroup.Delete("/{id}", handler.DeleteRoomType)
		routerGroup.Get("/{id}/prices", handler.GetPrices)
		routerGroup.Put("/{id}/prices", handler.SetPrices)
		routerGroup.Delete("/{id}/prices", handler.DeletePrices)
	})
}

// CreateRoomType handles the creation of a new room type.
// @Summary Create a room type
// @Tags RoomType
// @Accept json
// @Produce json
// @Param request body dto.CreateRoomTypeRequest true "Room type details"
// @Success 201 {object} response.Envelope{data=gDto.IDResponse}
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/room-types [post]
// @Security BearerAuth
func (handler *Handler) CreateRoomType(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRoomType")
	defer scope.End()

	req := dto.CreateRoomTypeRequest{HotelID: shared.HotelIDFromContext(ctx, "")}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")
		response.WithError(writer, err)

		return
	}

	req.HotelID = shared.HotelIDFromContext(ctx, req.HotelID)

	id, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create room type")
		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Room type created successfully")
	response.WithJSON(writer, http.StatusCreated, gDto.IDResponse{ID: id})
}

// GetRoomTypes lists room types.
// @Summary List room types
// @Tags RoomType
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param sort_by query string false "Sort field (name, capacity, base_price)"
// @Param sort_dir query string false "Sort direction (ASC, DESC)"
// @Param hotel_id query string false "Hotel ID"
// @Param name query string false "Name (partial match)"
// @Success 200 {object} response.Envelope{data=[]dto.RoomTypeResponse,meta=response.Meta}
// @Failure 500 {object} response.Envelope
// @Router /v1/room-types [get]
// @Security BearerAuth
func (handler *Handler) GetRoomTypes(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomTypes")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)
	queryParams.RestrictSort(model.TableName, model.FieldName, model.FieldCapacity, model.FieldBasePrice)

	query := request.URL.Query()
	filterGroup := dto.ListRoomTypesQuery{
		HotelID: shared.HotelIDFromContext(ctx, query.Get(constant.RequestParamHotelID)),
		Name:    query.Get(model.FieldName),
	}.ToFilter()

	roomTypes, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get room types")
		response.WithError(writer, err)

		return
	}

	response.WithPaginated(writer, http.StatusOK, roomTypes.RoomTypes, response.NewMeta(queryParams, roomTypes.TotalData))
}

// GetRoomTypeByID retrieves a room type.
// @Summary Get a room type
// @Tags RoomType
// @Produce json
// @Param id path string true "Room type ID"
// @Success 200 {object} response.Envelope{data=dto.RoomTypeResponse}
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/room-types/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetRoomTypeByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomTypeByID")
	defer scope.End()

	roomType, err := handler.service.Get(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get room type")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, roomType)
}

// UpdateRoomType updates a room type.
// @Summary Update a room type
// @Tags RoomType
// @Accept json
// @Produce json
// @Param id path string true "Room type ID"
// @Param request body dto.UpdateRoomTypeRequest true "Fields to update"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/room-types/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateRoomType(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRoomType")
	defer scope.End()

	req := dto.UpdateRoomTypeRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")
		response.WithError(writer, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(request, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update room type")
		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Room type updated successfully")
}

// DeleteRoomType deletes a room type without rooms.
// @Summary Delete a room type
// @Tags RoomType
// @Produce json
// @Param id path string true "Room type ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/room-types/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteRoomType(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteRoomType")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(request, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete room type")
		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Room type deleted successfully")
}

// GetPrices lists the date prices of a room type in [from, to).
// @Summary List room type prices
// @Tags RoomType
// @Produce json
// @Param id path string true "Room type ID"
// @Param from query string true "Start date (YYYY-MM-DD)"
// @Param to query string true "End date, exclusive (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope{data=[]dto.PriceResponse}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/room-types/{id}/prices [get]
// @Security BearerAuth
func (handler *Handler) GetPrices(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomTypePrices")
	defer scope.End()

	from, to, err := dateRange(request)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	prices, err := handler.service.GetPrices(ctx, chi.URLParam(request, constant.RequestParamID), from, to)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get room type prices")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, prices)
}

// SetPrices upserts date prices of a room type.
// @Summary Set room type prices
// @Tags RoomType
// @Accept json
// @Produce json
// @Param id path string true "Room type ID"
// @Param request body dto.SetPricesRequest true "Prices per date"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/room-types/{id}/prices [put]
// @Security BearerAuth
func (handler *Handler) SetPrices(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetRoomTypePrices")
	defer scope.End()

	req := dto.SetPricesRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")
		response.WithError(writer, err)

		return
	}

	if err := handler.service.SetPrices(ctx, req, chi.URLParam(request, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to set room type prices")
		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Room type prices saved successfully")
}

// DeletePrices removes date prices of a room type in [from, to).
// @Summary Delete room type prices
// @Tags RoomType
// @Produce json
// @Param id path string true "Room type ID"
// @Param from query string true "Start date (YYYY-MM-DD)"
// @Param to query string true "End date, exclusive (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/room-types/{id}/prices [delete]
// @Security BearerAuth
func (handler *Handler) DeletePrices(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteRoomTypePrices")
	defer scope.End()

	from, to, err := dateRange(request)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	if err := handler.service.DeletePrices(ctx, chi.URLParam(request, constant.RequestParamID), from, to); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete room type prices")
		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Room type prices deleted successfully")
}

func dateRange(request *http.Request) (from, to time.Time, err error) {
	query := request.URL.Query()

	from, err = clock.ParseDate(query.Get(constant.RequestParamFrom))
	if err != nil {
		return from, to, failure.BadRequestFromString("from must be a date formatted YYYY-MM-DD") // nolint:wrapcheck
	}

	to, err = clock.ParseDate(query.Get(constant.RequestParamTo))
	if err != nil {
		return from, to, failure.BadRequestFromString("to must be a date formatted YYYY-MM-DD") // nolint:wrapcheck
	}

	return from, to, nil
}
