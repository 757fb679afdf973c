package report

import (
	"hotel/infras/otel"
	"hotel/internal/domains/report/model/dto"
	"hotel/internal/domains/report/service"
	"hotel/shared"
	"hotel/shared/constant"
	"hotel/shared/validator"
	"hotel/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Report
	otel    otel.Otel
}

func New(service service.Report, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reports", func(routerGroup chi.Router) {
		routerGroup.Get("/room-map", handler.GetRoomMap)
		routerGroup.Get("/room-schedule/{id}", handler.GetRoomSchedule)
		routerGroup.Get("/room-history/{id}", handler.GetRoomHistory)
		routerGroup.Get("/peak-days", handler.GetPeakDays)
		routerGroup.Get("/current-booking/{id}", handler.GetCurrentBooking)
		routerGroup.Get("/booked-rooms", handler.GetBookedRooms)
		routerGroup.Get("/availability", handler.GetAvailability)
	})
}

// GetRoomMap returns the day-by-day occupancy timeline of every room.
// @Summary Room map
// @Tags Report
// @Produce json
// @Param hotel_id query string false "Hotel ID"
// @Param from query string true "First day (YYYY-MM-DD)"
// @Param to query string false "Last day, inclusive (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope{data=[]dto.RoomMapItem}
// @Failure 400 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/reports/room-map [get]
// @Security BearerAuth
func (handler *Handler) GetRoomMap(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomMap")
	defer scope.End()

	query := request.URL.Query()
	req := dto.RoomMapQuery{
		HotelID: shared.HotelIDFromContext(ctx, query.Get(constant.RequestParamHotelID)),
		From:    query.Get(constant.RequestParamFrom),
		To:      query.Get(constant.RequestParamTo),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	items, err := handler.service.RoomMap(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get room map")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, items)
}

// GetRoomSchedule lists the stays of a room that overlap a range.
// @Summary Room schedule
// @Tags Report
// @Produce json
// @Param id path string true "Room ID"
// @Param from query string true "Range start (YYYY-MM-DD)"
// @Param to query string true "Range end, exclusive (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope{data=[]dto.StayInterval}
// @Failure 400 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/reports/room-schedule/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetRoomSchedule(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomSchedule")
	defer scope.End()

	req, err := rangeQuery(request)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	stays, err := handler.service.RoomSchedule(ctx, req, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get room schedule")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, stays)
}

// GetRoomHistory lists past and upcoming stays of a room with their guests.
// @Summary Room history
// @Tags Report
// @Produce json
// @Param id path string true "Room ID"
// @Param from query string false "Range start (YYYY-MM-DD)"
// @Param to query string false "Range end, exclusive (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope{data=[]dto.RoomHistoryItem}
// @Failure 400 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/reports/room-history/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetRoomHistory(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomHistory")
	defer scope.End()

	req, err := rangeQuery(request)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	history, err := handler.service.RoomHistory(ctx, req, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get room history")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, history)
}

// GetPeakDays lists days whose occupancy reaches the peak threshold.
// @Summary Peak days
// @Tags Report
// @Produce json
// @Param hotel_id query string false "Hotel ID"
// @Param from query string true "First day (YYYY-MM-DD)"
// @Param to query string true "Last day, inclusive (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope{data=[]dto.PeakDay}
// @Failure 400 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/reports/peak-days [get]
// @Security BearerAuth
func (handler *Handler) GetPeakDays(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPeakDays")
	defer scope.End()

	query := request.URL.Query()
	req := dto.PeakDaysQuery{
		HotelID: shared.HotelIDFromContext(ctx, query.Get(constant.RequestParamHotelID)),
		From:    query.Get(constant.RequestParamFrom),
		To:      query.Get(constant.RequestParamTo),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	days, err := handler.service.PeakDays(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get peak days")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, days)
}

// GetCurrentBooking returns the booking occupying a room today.
// @Summary Current booking of a room
// @Tags Report
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Envelope{data=dto.CurrentBookingResponse}
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/reports/current-booking/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetCurrentBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCurrentBooking")
	defer scope.End()

	booking, err := handler.service.CurrentBooking(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get current booking")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, booking)
}

// GetBookedRooms counts booked rooms against the hotel total on a date.
// @Summary Booked rooms on a date
// @Tags Report
// @Produce json
// @Param hotel_id query string false "Hotel ID"
// @Param date query string true "Day (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope{data=dto.BookedRoomsResponse}
// @Failure 400 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/reports/booked-rooms [get]
// @Security BearerAuth
func (handler *Handler) GetBookedRooms(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookedRooms")
	defer scope.End()

	query := request.URL.Query()
	req := dto.BookedRoomsQuery{
		HotelID: shared.HotelIDFromContext(ctx, query.Get(constant.RequestParamHotelID)),
		Date:    query.Get(constant.RequestParamDate),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.BookedRooms(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booked rooms")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetAvailability lists rooms free for a whole range.
// @Summary Room availability
// @Tags Report
// @Produce json
// @Param hotel_id query string false "Hotel ID"
// @Param room_type_id query string false "Room type ID"
// @Param from query string false "Arrival day, defaults to today (YYYY-MM-DD)"
// @Param to query string false "Departure day, defaults to the day after from (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope{data=dto.AvailabilityResponse}
// @Failure 400 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/reports/availability [get]
// @Security BearerAuth
func (handler *Handler) GetAvailability(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailability")
	defer scope.End()

	query := request.URL.Query()
	req := dto.AvailabilityQuery{
		HotelID:    shared.HotelIDFromContext(ctx, query.Get(constant.RequestParamHotelID)),
		RoomTypeID: query.Get("room_type_id"),
		From:       query.Get(constant.RequestParamFrom),
		To:         query.Get(constant.RequestParamTo),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Availability(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get availability")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

func rangeQuery(request *http.Request) (dto.RangeQuery, error) {
	query := request.URL.Query()
	req := dto.RangeQuery{
		From: query.Get(constant.RequestParamFrom),
		To:   query.Get(constant.RequestParamTo),
	}

	return req, validator.ValidateStruct(&req) //nolint:wrapcheck
}
