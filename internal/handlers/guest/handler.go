package guest

import (
	"hotel/infras/otel"
	"hotel/internal/domains/guest/model"
	"hotel/internal/domains/guest/model/dto"
	"hotel/internal/domains/guest/service"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/validator"
	"hotel/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const formFieldImage = "image"

type Handler struct {
	service service.Guest
	otel    otel.Otel
}

func New(service service.Guest, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/guests", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateGuest)
		routerGroup.Get("/", handler.GetGuests)
		routerGroup.Get("/{id}", handler.GetGuestByID)
		routerGroup.Patch("/{id}", handler.UpdateGuest)
		routerGroup.Delete("/{id}", handler.DeleteGuest)
		routerGroup.Post("/{id}/id-card", handler.UploadIDCard)
	})
}

// CreateGuest registers a guest.
// @Summary Create a guest
// @Tags Guest
// @Accept json
// @Produce json
// @Param request body dto.CreateGuestRequest true "Guest details"
// @Success 201 {object} response.Envelope{data=gDto.IDResponse}
// @Failure 400 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/guests [post]
// @Security BearerAuth
func (handler *Handler) CreateGuest(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateGuest")
	defer scope.End()

	req := dto.CreateGuestRequest{HotelID: shared.HotelIDFromContext(ctx, "")}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")
		response.WithError(writer, err)

		return
	}

	id, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create guest")
		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Guest created successfully")
	response.WithJSON(writer, http.StatusCreated, gDto.IDResponse{ID: id})
}

// GetGuests lists guests.
// @Summary List guests
// @Tags Guest
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param sort_by query string false "Sort field (full_name, created_at)"
// @Param sort_dir query string false "Sort direction (ASC, DESC)"
// @Param hotel_id query string false "Hotel ID"
// @Param full_name query string false "Name (partial match)"
// @Param phone query string false "Phone (partial match)"
// @Param id_card_number query string false "ID card number (partial match)"
// @Success 200 {object} response.Envelope{data=[]dto.GuestResponse,meta=response.Meta}
// @Failure 500 {object} response.Envelope
// @Router /v1/guests [get]
// @Security BearerAuth
func (handler *Handler) GetGuests(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetGuests")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)
	queryParams.RestrictSort(model.TableName, model.FieldFullName, constant.FieldCreatedAt)

	query := request.URL.Query()
	filterGroup := dto.ListGuestsQuery{
		HotelID:      shared.HotelIDFromContext(ctx, query.Get(constant.RequestParamHotelID)),
		FullName:     query.Get(model.FieldFullName),
		Phone:        query.Get(model.FieldPhone),
		IDCardNumber: query.Get(model.FieldIDCardNumber),
	}.ToFilter()

	guests, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get guests")
		response.WithError(writer, err)

		return
	}

	response.WithPaginated(writer, http.StatusOK, guests.Guests, response.NewMeta(queryParams, guests.TotalData))
}

// GetGuestByID retrieves a guest.
// @Summary Get a guest
// @Tags Guest
// @Produce json
// @Param id path string true "Guest ID"
// @Success 200 {object} response.Envelope{data=dto.GuestResponse}
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/guests/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetGuestByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetGuestByID")
	defer scope.End()

	guest, err := handler.service.Get(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get guest")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, guest)
}

// UpdateGuest updates a guest.
// @Summary Update a guest
// @Tags Guest
// @Accept json
// @Produce json
// @Param id path string true "Guest ID"
// @Param request body dto.UpdateGuestRequest true "Fields to update"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/guests/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateGuest(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateGuest")
	defer scope.End()

	req := dto.UpdateGuestRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")
		response.WithError(writer, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(request, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update guest")
		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Guest updated successfully")
}

// DeleteGuest deletes a guest that is not attached to any booking.
// @Summary Delete a guest
// @Tags Guest
// @Produce json
// @Param id path string true "Guest ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/guests/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteGuest(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteGuest")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(request, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete guest")
		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Guest deleted successfully")
}

// UploadIDCard stores a scan of one side of the guest's ID card.
// @Summary Upload a guest ID card image
// @Tags Guest
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Guest ID"
// @Param side formData string true "Card side (front, back)"
// @Param image formData file true "Card image (png, jpg, jpeg; max 2 MB)"
// @Success 200 {object} response.Envelope{data=dto.UploadIDCardResponse}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/guests/{id}/id-card [post]
// @Security BearerAuth
func (handler *Handler) UploadIDCard(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadIDCard")
	defer scope.End()

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(writer, failure.BadRequest(err))

		return
	}

	file, header, err := request.FormFile(formFieldImage)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, failure.BadRequestFromString("image is required"))

		return
	}
	defer file.Close()

	req := dto.UploadIDCardRequest{
		Side:      request.FormValue("side"),
		Image:     header,
		ImageFile: file,
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.UploadIDCard(ctx, req, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload id card")
		response.WithError(writer, err)

		return
	}

	scope.AddEvent("ID card uploaded successfully")
	response.WithJSON(writer, http.StatusOK, res)
}
