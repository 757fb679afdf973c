package booking

import (
	"context"
	"hotel/infras/otel"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/service"
	guestDto "hotel/internal/domains/guest/model/dto"
	invoiceDto "hotel/internal/domains/invoice/model/dto"
	invoiceService "hotel/internal/domains/invoice/service"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/validator"
	"hotel/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const dateOnlyTag = "omitempty,datetime=2006-01-02"

type Handler struct {
	service        service.Booking
	invoiceService invoiceService.Invoice
	otel           otel.Otel
}

func New(service service.Booking, invoiceService invoiceService.Invoice, otel otel.Otel) Handler {
	return Handler{
		service:        service,
		invoiceService: invoiceService,
		otel:           otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/active", handler.GetActiveBookings)
		routerGroup.Post("/sweeps/no-show", handler.CancelNoShows)
		routerGroup.Post("/sweeps/auto-cancel", handler.AutoCancel)

		routerGroup.Route("/rooms/{bookingRoomID}", func(roomGroup chi.Router) {
			roomGroup.Post("/check-in", handler.CheckIn)
			roomGroup.Patch("/actual-times", handler.UpdateActualTimes)
			roomGroup.Post("/change-room", handler.ChangeRoom)
			roomGroup.Post("/move-guest", handler.MoveGuest)
			roomGroup.Post("/swap-guests", handler.SwapGuests)
			roomGroup.Patch("/dates", handler.UpdateRoomDates)
			roomGroup.Patch("/guests/{guestID}", handler.UpdateGuestInRoom)
			roomGroup.Delete("/guests/{guestID}", handler.RemoveGuestFromRoom)
		})

		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Patch("/{id}", handler.UpdateBooking)
		routerGroup.Post("/{id}/confirm", handler.ConfirmBooking)
		routerGroup.Post("/{id}/cancel", handler.CancelBooking)
		routerGroup.Post("/{id}/complete", handler.CompleteBooking)
		routerGroup.Post("/{id}/check-out", handler.CheckOut)
		routerGroup.Post("/{id}/extend", handler.ExtendStay)
		routerGroup.Post("/{id}/room-types/{bookingRoomTypeID}/rooms", handler.AddRoom)
		routerGroup.Post("/{id}/call-logs", handler.AddCallLog)
		routerGroup.Get("/{id}/call-logs", handler.GetCallLogs)
		routerGroup.Get("/{id}/additional-charges", handler.GetAdditionalCharges)
		routerGroup.Get("/{id}/early-checkout-fee", handler.GetEarlyCheckoutFee)
	})
}

// CreateBooking handles the creation of a new booking.
// @Summary Create a booking
// @Description Create a booking with its room type lines and optional room assignments.
// @Description The primary guest is either an existing guest id or a new guest record.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Booking details"
// @Success 201 {object} response.Envelope{data=gDto.IDResponse}
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/bookings [post]
// @Security BearerAuth
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{HotelID: shared.HotelIDFromContext(ctx, "")}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")
		response.WithError(writer, err)

		return
	}

	id, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")
		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking created successfully by user " + user)

	response.WithJSON(writer, http.StatusCreated, gDto.IDResponse{ID: id})
}

// GetBookings lists bookings.
// @Summary List bookings
// @Description List bookings with pagination. from and to select bookings whose stay overlaps the range.
// @Tags Booking
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param sort_by query string false "Sort field (start_date, end_date, created_at, status)"
// @Param sort_dir query string false "Sort direction (ASC, DESC)"
// @Param hotel_id query string false "Hotel ID"
// @Param status query string false "Booking status"
// @Param from query string false "Range start (YYYY-MM-DD)"
// @Param to query string false "Range end (YYYY-MM-DD)"
// @Param guest_name query string false "Primary guest name (partial match)"
// @Param guest_phone query string false "Primary guest phone (partial match)"
// @Param room_number query string false "Assigned room number"
// @Success 200 {object} response.Envelope{data=[]dto.BookingResponse,meta=response.Meta}
// @Failure 400 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetBookings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)
	queryParams.RestrictSort(model.TableName, model.FieldStartDate, model.FieldEndDate, constant.FieldCreatedAt, model.FieldStatus)

	query := request.URL.Query()
	listQuery := dto.ListBookingsQuery{
		HotelID:    shared.HotelIDFromContext(ctx, query.Get(constant.RequestParamHotelID)),
		Status:     query.Get(model.FieldStatus),
		From:       query.Get(constant.RequestParamFrom),
		To:         query.Get(constant.RequestParamTo),
		GuestName:  query.Get("guest_name"),
		GuestPhone: query.Get("guest_phone"),
		RoomNumber: query.Get("room_number"),
	}

	for _, value := range []string{listQuery.From, listQuery.To} {
		if err := validator.ValidateVar(value, dateOnlyTag); err != nil {
			scope.TraceError(err)
			response.WithError(writer, err)

			return
		}
	}

	bookings, err := handler.service.GetAll(ctx, queryParams, listQuery.ToFilter())
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")
		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Bookings retrieved successfully")
	response.WithPaginated(writer, http.StatusOK, bookings.Bookings, response.NewMeta(queryParams, bookings.TotalData))
}

// GetActiveBookings lists bookings that are not completed or cancelled.
// @Summary List active bookings
// @Tags Booking
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param hotel_id query string false "Hotel ID"
// @Success 200 {object} response.Envelope{data=[]dto.BookingResponse,meta=response.Meta}
// @Failure 500 {object} response.Envelope
// @Router /v1/bookings/active [get]
// @Security BearerAuth
func (handler *Handler) GetActiveBookings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetActiveBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	hotelID := shared.HotelIDFromContext(ctx, request.URL.Query().Get(constant.RequestParamHotelID))

	bookings, err := handler.service.GetActive(ctx, queryParams, hotelID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get active bookings")
		response.WithError(writer, err)

		return
	}

	response.WithPaginated(writer, http.StatusOK, bookings.Bookings, response.NewMeta(queryParams, bookings.TotalData))
}

// GetBookingByID retrieves a booking with its room types, rooms and guests.
// @Summary Get a booking
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Envelope{data=dto.BookingResponse}
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	booking, err := handler.service.Get(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, booking)
}

// UpdateBooking updates the header and room type lines of a booking.
// @Summary Update a booking
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.UpdateBookingRequest true "Fields to update"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/bookings/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBooking")
	defer scope.End()

	req := dto.UpdateBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")
		response.WithError(writer, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(request, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update booking")
		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Booking updated successfully")
}

// ConfirmBooking moves a pending booking to confirmed.
// @Summary Confirm a booking
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/bookings/{id}/confirm [post]
// @Security BearerAuth
func (handler *Handler) ConfirmBooking(writer http.ResponseWriter, request *http.Request) {
	handler.transition(writer, request, "ConfirmBooking", handler.service.Confirm, "Booking confirmed successfully")
}

// CancelBooking cancels a booking and releases its rooms.
// @Summary Cancel a booking
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/bookings/{id}/cancel [post]
// @Security BearerAuth
func (handler *Handler) CancelBooking(writer http.ResponseWriter, request *http.Request) {
	handler.transition(writer, request, "CancelBooking", handler.service.Cancel, "Booking cancelled successfully")
}

// CompleteBooking marks a booking completed.
// @Summary Complete a booking
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/bookings/{id}/complete [post]
// @Security BearerAuth
func (handler *Handler) CompleteBooking(writer http.ResponseWriter, request *http.Request) {
	handler.transition(writer, request, "CompleteBooking", handler.service.Complete, "Booking completed successfully")
}

func (handler *Handler) transition(
	writer http.ResponseWriter,
	request *http.Request,
	name string,
	apply func(ctx context.Context, id string) error,
	message string,
) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+"."+name)
	defer scope.End()

	if err := apply(ctx, chi.URLParam(request, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("operation", name).Msg("failed to change booking status")
		response.WithError(writer, err)

		return
	}

	scope.AddEvent(message)
	response.WithMessage(writer, http.StatusOK, message)
}

// CheckOut checks out every checked-in room of a booking and settles the balance.
// @Summary Check out a booking
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.CheckOutRequest true "Check-out time and final payment"
// @Success 200 {object} response.Envelope{data=dto.CheckOutResponse}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/bookings/{id}/check-out [post]
// @Security BearerAuth
func (handler *Handler) CheckOut(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckOut")
	defer scope.End()

	req := dto.CheckOutRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.CheckOut(ctx, req, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check out booking")
		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking checked out successfully")
	response.WithJSON(writer, http.StatusOK, res)
}

// ExtendStay moves the end date of a booking and its rooms forward.
// @Summary Extend a stay
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.ExtendStayRequest true "New end date and optional rooms"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/bookings/{id}/extend [post]
// @Security BearerAuth
func (handler *Handler) ExtendStay(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ExtendStay")
	defer scope.End()

	req := dto.ExtendStayRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")
		response.WithError(writer, err)

		return
	}

	if err := handler.service.ExtendStay(ctx, req, chi.URLParam(request, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to extend stay")
		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Stay extended successfully")
}

// AddRoom assigns a physical room to a booking room type line.
// @Summary Assign a room
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param bookingRoomTypeID path string true "Booking room type ID"
// @Param request body dto.AssignRoomRequest true "Room and optional dates"
// @Success 201 {object} response.Envelope{data=gDto.IDResponse}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/bookings/{id}/room-types/{bookingRoomTypeID}/rooms [post]
// @Security BearerAuth
func (handler *Handler) AddRoom(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddRoom")
	defer scope.End()

	req := dto.AssignRoomRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")
		response.WithError(writer, err)

		return
	}

	id, err := handler.service.AddRoom(ctx, req,
		chi.URLParam(request, constant.RequestParamID), chi.URLParam(request, constant.RequestParamBookingRoomType))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to add room to booking")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusCreated, gDto.IDResponse{ID: id})
}

// CheckIn checks in a booked room, optionally registering its guests.
// @Summary Check in a room
// @Tags Booking
// @Accept json
// @Produce json
// @Param bookingRoomID path string true "Booking room ID"
// @Param request body dto.CheckInRequest true "Check-in time and guests"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/bookings/rooms/{bookingRoomID}/check-in [post]
// @Security BearerAuth
func (handler *Handler) CheckIn(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckIn")
	defer scope.End()

	req := dto.CheckInRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")
		response.WithError(writer, err)

		return
	}

	if err := handler.service.CheckIn(ctx, req, chi.URLParam(request, constant.RequestParamBookingRoomID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check in room")
		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Room checked in successfully")
	response.WithMessage(writer, http.StatusOK, "Room checked in successfully")
}

// UpdateActualTimes corrects the recorded check-in or check-out time of a room.
// @Summary Update actual check-in and check-out times
// @Tags Booking
// @Accept json
// @Produce json
// @Param bookingRoomID path string true "Booking room ID"
// @Param request body dto.ActualTimesRequest true "Actual times"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/bookings/rooms/{bookingRoomID}/actual-times [patch]
// @Security BearerAuth
func (handler *Handler) UpdateActualTimes(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateActualTimes")
	defer scope.End()

	req := dto.ActualTimesRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")
		response.WithError(writer, err)

		return
	}

	if err := handler.service.UpdateRoomActualTimes(ctx, req, chi.URLParam(request, constant.RequestParamBookingRoomID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update actual times")
		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Actual times updated successfully")
}

// ChangeRoom moves a booked room line to another physical room.
// @Summary Change the assigned room
// @Tags Booking
// @Accept json
// @Produce json
// @Param bookingRoomID path string true "Booking room ID"
// @Param request body dto.ChangeRoomRequest true "Target room"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/bookings/rooms/{bookingRoomID}/change-room [post]
// @Security BearerAuth
func (handler *Handler) ChangeRoom(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ChangeRoom")
	defer scope.End()

	req := dto.ChangeRoomRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")
		response.WithError(writer, err)

		return
	}

	if err := handler.service.ChangeRoom(ctx, req, chi.URLParam(request, constant.RequestParamBookingRoomID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to change room")
		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Room changed successfully")
}

// MoveGuest moves a guest to another room of the same booking.
// @Summary Move a guest
// @Tags Booking
// @Accept json
// @Produce json
// @Param bookingRoomID path string true "Source booking room ID"
// @Param request body dto.MoveGuestRequest true "Guest and target room"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/bookings/rooms/{bookingRoomID}/move-guest [post]
// @Security BearerAuth
func (handler *Handler) MoveGuest(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".MoveGuest")
	defer scope.End()

	req := dto.MoveGuestRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")
		response.WithError(writer, err)

		return
	}

	if err := handler.service.MoveGuest(ctx, req, chi.URLParam(request, constant.RequestParamBookingRoomID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to move guest")
		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Guest moved successfully")
}

// SwapGuests exchanges two guests between rooms of the same booking.
// @Summary Swap guests
// @Tags Booking
// @Accept json
// @Produce json
// @Param bookingRoomID path string true "Source booking room ID"
// @Param request body dto.SwapGuestsRequest true "Guests and target room"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/bookings/rooms/{bookingRoomID}/swap-guests [post]
// @Security BearerAuth
func (handler *Handler) SwapGuests(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SwapGuests")
	defer scope.End()

	req := dto.SwapGuestsRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")
		response.WithError(writer, err)

		return
	}

	if err := handler.service.SwapGuests(ctx, req, chi.URLParam(request, constant.RequestParamBookingRoomID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to swap guests")
		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Guests swapped successfully")
}

// UpdateRoomDates changes the stay dates of one booked room.
// @Summary Update room dates
// @Tags Booking
// @Accept json
// @Produce json
// @Param bookingRoomID path string true "Booking room ID"
// @Param request body dto.RoomDatesRequest true "New dates"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/bookings/rooms/{bookingRoomID}/dates [patch]
// @Security BearerAuth
func (handler *Handler) UpdateRoomDates(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRoomDates")
	defer scope.End()

	req := dto.RoomDatesRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")
		response.WithError(writer, err)

		return
	}

	if err := handler.service.UpdateRoomDates(ctx, req, chi.URLParam(request, constant.RequestParamBookingRoomID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update room dates")
		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Room dates updated successfully")
}

// UpdateGuestInRoom edits a guest staying in a booked room.
// @Summary Update a guest in a room
// @Tags Booking
// @Accept json
// @Produce json
// @Param bookingRoomID path string true "Booking room ID"
// @Param guestID path string true "Guest ID"
// @Param request body guestDto.UpdateGuestRequest true "Fields to update"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/bookings/rooms/{bookingRoomID}/guests/{guestID} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateGuestInRoom(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateGuestInRoom")
	defer scope.End()

	req := guestDto.UpdateGuestRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")
		response.WithError(writer, err)

		return
	}

	err := handler.service.UpdateGuestInRoom(ctx, req,
		chi.URLParam(request, constant.RequestParamBookingRoomID), chi.URLParam(request, constant.RequestParamGuestID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update guest in room")
		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Guest updated successfully")
}

// RemoveGuestFromRoom detaches a guest from a booked room.
// @Summary Remove a guest from a room
// @Tags Booking
// @Produce json
// @Param bookingRoomID path string true "Booking room ID"
// @Param guestID path string true "Guest ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/bookings/rooms/{bookingRoomID}/guests/{guestID} [delete]
// @Security BearerAuth
func (handler *Handler) RemoveGuestFromRoom(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RemoveGuestFromRoom")
	defer scope.End()

	err := handler.service.RemoveGuestFromRoom(ctx,
		chi.URLParam(request, constant.RequestParamBookingRoomID), chi.URLParam(request, constant.RequestParamGuestID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to remove guest from room")
		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Guest removed successfully")
}

// CancelNoShows cancels rooms whose guests never arrived.
// @Summary Cancel no-show rooms
// @Description Cancels pending rooms whose start date has passed. Bookings left without rooms are cancelled too.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.SweepRequest false "Hotel and reference date"
// @Success 200 {object} response.Envelope{data=dto.NoShowResponse}
// @Failure 400 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/bookings/sweeps/no-show [post]
// @Security BearerAuth
func (handler *Handler) CancelNoShows(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelNoShows")
	defer scope.End()

	req, err := sweepRequest(request)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.CancelNoShows(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel no-show rooms")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// AutoCancel cancels pending bookings that were never confirmed.
// @Summary Auto-cancel stale bookings
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.SweepRequest false "Hotel and reference date"
// @Success 200 {object} response.Envelope{data=dto.AutoCancelResponse}
// @Failure 400 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/bookings/sweeps/auto-cancel [post]
// @Security BearerAuth
func (handler *Handler) AutoCancel(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AutoCancel")
	defer scope.End()

	req, err := sweepRequest(request)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.AutoCancel(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to auto-cancel bookings")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

func sweepRequest(request *http.Request) (dto.SweepRequest, error) {
	req := dto.SweepRequest{}

	if request.ContentLength == 0 {
		return req, nil
	}

	if err := validator.Validate(request.Body, &req); err != nil {
		return req, err
	}

	return req, nil
}

// AddCallLog records a call made to the guest about a booking.
// @Summary Add a call log
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.CreateCallLogRequest true "Call details"
// @Success 201 {object} response.Envelope{data=gDto.IDResponse}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/bookings/{id}/call-logs [post]
// @Security BearerAuth
func (handler *Handler) AddCallLog(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddCallLog")
	defer scope.End()

	req := dto.CreateCallLogRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")
		response.WithError(writer, err)

		return
	}

	id, err := handler.service.AddCallLog(ctx, req, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to add call log")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusCreated, gDto.IDResponse{ID: id})
}

// GetCallLogs lists the call logs of a booking.
// @Summary List call logs
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Envelope{data=[]dto.CallLogResponse}
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/bookings/{id}/call-logs [get]
// @Security BearerAuth
func (handler *Handler) GetCallLogs(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCallLogs")
	defer scope.End()

	logs, err := handler.service.GetCallLogs(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get call logs")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, logs)
}

// GetAdditionalCharges previews the surcharges the booking would be invoiced for.
// @Summary Preview additional charges
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Envelope{data=invoiceDto.AdditionalChargesResponse}
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/bookings/{id}/additional-charges [get]
// @Security BearerAuth
func (handler *Handler) GetAdditionalCharges(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAdditionalCharges")
	defer scope.End()

	res, err := handler.invoiceService.AdditionalChargesPreview(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to preview additional charges")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetEarlyCheckoutFee quotes the fee for leaving before the booked end date.
// @Summary Quote the early check-out fee
// @Description The fee tier depends on hotel availability on the requested check-out date.
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Param checkout_date query string true "Planned check-out date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope{data=invoiceDto.EarlyCheckoutFeeResponse}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/bookings/{id}/early-checkout-fee [get]
// @Security BearerAuth
func (handler *Handler) GetEarlyCheckoutFee(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEarlyCheckoutFee")
	defer scope.End()

	req := invoiceDto.EarlyCheckoutFeeRequest{CheckoutDate: request.URL.Query().Get("checkout_date")}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	res, err := handler.invoiceService.EarlyCheckoutFee(ctx, req, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to quote early checkout fee")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}
