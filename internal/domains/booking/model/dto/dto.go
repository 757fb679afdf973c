package dto

import (
	"hotel/internal/domains/booking/model"
	guestDto "hotel/internal/domains/guest/model/dto"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"time"

	"github.com/shopspring/decimal"
)

type CreateBookingRequest struct {
	HotelID                 string                  `json:"hotel_id"                  validate:"required,uuid"`
	PrimaryGuestID          string                  `json:"primary_guest_id"          validate:"required_without=PrimaryGuest,omitempty,uuid"`
	PrimaryGuest            *guestDto.GuestRequest  `json:"primary_guest"             validate:"required_without=PrimaryGuestID,omitempty"`
	StartDate               string                  `json:"start_date"                validate:"required,datetime=2006-01-02"`
	EndDate                 string                  `json:"end_date"                  validate:"required,datetime=2006-01-02"`
	DepositAmount           decimal.Decimal         `json:"deposit_amount"            validate:"gte=0"`
	DiscountAmount          decimal.Decimal         `json:"discount_amount"           validate:"gte=0"`
	TotalAmount             decimal.NullDecimal     `json:"total_amount"`
	PromotionCode           string                  `json:"promotion_code"            validate:"omitempty,max=64"`
	AdditionalBookingAmount decimal.Decimal         `json:"additional_booking_amount" validate:"gte=0"`
	AdditionalBookingNotes  string                  `json:"additional_booking_notes"`
	Notes                   string                  `json:"notes"`
	RoomTypes               []CreateRoomTypeRequest `json:"room_types"                validate:"required,min=1,dive"`
}

type CreateRoomTypeRequest struct {
	RoomTypeID string              `json:"room_type_id" validate:"required,uuid"`
	Price      decimal.NullDecimal `json:"price"`
	StartDate  string              `json:"start_date"   validate:"omitempty,datetime=2006-01-02"`
	EndDate    string              `json:"end_date"     validate:"omitempty,datetime=2006-01-02"`
	TotalRoom  int                 `json:"total_room"   validate:"gte=0"`
	Rooms      []AssignRoomRequest `json:"rooms"        validate:"omitempty,dive"`
}

// AssignRoomRequest puts a physical room under a booking room type. Empty dates default to the room type dates.
type AssignRoomRequest struct {
	RoomID    string   `json:"room_id"    validate:"required,uuid"`
	StartDate string   `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string   `json:"end_date"   validate:"omitempty,datetime=2006-01-02"`
	GuestIDs  []string `json:"guest_ids"  validate:"omitempty,dive,uuid"`
}

type CreateBookingResponse struct {
	ID string `json:"id"`
}

type UpdateBookingRequest struct {
	StartDate               string                       `json:"start_date"                validate:"omitempty,datetime=2006-01-02"`
	EndDate                 string                       `json:"end_date"                  validate:"omitempty,datetime=2006-01-02"`
	DepositAmount           decimal.NullDecimal          `json:"deposit_amount"`
	DiscountAmount          decimal.NullDecimal          `json:"discount_amount"`
	TotalAmount             decimal.NullDecimal          `json:"total_amount"`
	PromotionCode           *string                      `json:"promotion_code"            validate:"omitempty,max=64"`
	AdditionalAmount        decimal.NullDecimal          `json:"additional_amount"`
	AdditionalNotes         *string                      `json:"additional_notes"`
	AdditionalBookingAmount decimal.NullDecimal          `json:"additional_booking_amount"`
	AdditionalBookingNotes  *string                      `json:"additional_booking_notes"`
	Notes                   *string                      `json:"notes"`
	PrimaryGuest            *guestDto.UpdateGuestRequest `json:"primary_guest"`
	RoomTypes               []UpdateRoomTypeRequest      `json:"room_types"                validate:"omitempty,dive"`
}

// UpdateRoomTypeRequest adds a room type when ID is empty, removes it when Remove is set and updates it otherwise.
type UpdateRoomTypeRequest struct {
	ID         string              `json:"id"           validate:"omitempty,uuid"`
	RoomTypeID string              `json:"room_type_id" validate:"required_without=ID,omitempty,uuid"`
	Price      decimal.NullDecimal `json:"price"`
	StartDate  string              `json:"start_date"   validate:"omitempty,datetime=2006-01-02"`
	EndDate    string              `json:"end_date"     validate:"omitempty,datetime=2006-01-02"`
	TotalRoom  *int                `json:"total_room"   validate:"omitempty,gte=0"`
	Remove     bool                `json:"remove"`
}

type CheckInRequest struct {
	CheckInAt string                  `json:"check_in_at" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Guests    []guestDto.GuestRequest `json:"guests"      validate:"omitempty,dive"`
}

type ActualTimesRequest struct {
	CheckInAt  string `json:"check_in_at"  validate:"required_without=CheckOutAt,omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	CheckOutAt string `json:"check_out_at" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

type ChangeRoomRequest struct {
	RoomID string `json:"room_id" validate:"required,uuid"`
}

type MoveGuestRequest struct {
	GuestID             string `json:"guest_id"               validate:"required,uuid"`
	TargetBookingRoomID string `json:"target_booking_room_id" validate:"required,uuid"`
}

type SwapGuestsRequest struct {
	GuestID             string `json:"guest_id"               validate:"required,uuid"`
	TargetBookingRoomID string `json:"target_booking_room_id" validate:"required,uuid"`
	TargetGuestID       string `json:"target_guest_id"        validate:"required,uuid"`
}

type RoomDatesRequest struct {
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date"   validate:"required,datetime=2006-01-02"`
}

type ExtendStayRequest struct {
	BookingRoomIDs []string `json:"booking_room_ids" validate:"omitempty,dive,uuid"`
	NewEndDate     string   `json:"new_end_date"     validate:"required,datetime=2006-01-02"`
}

type CheckOutRequest struct {
	CheckOutAt   string          `json:"check_out_at"  validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	FinalPayment decimal.Decimal `json:"final_payment"`
}

type CheckOutResponse struct {
	TotalAmount decimal.Decimal `json:"total_amount"`
	LeftAmount  decimal.Decimal `json:"left_amount"`
}

type SweepRequest struct {
	HotelID string `json:"hotel_id" validate:"omitempty,uuid"`
	Date    string `json:"date"     validate:"omitempty,datetime=2006-01-02"`
}

type NoShowResponse struct {
	CancelledRooms   int `json:"cancelled_rooms"`
	AffectedBookings int `json:"affected_bookings"`
}

type AutoCancelResponse struct {
	MissingBookings int `json:"missing_bookings"`
}

type CreateCallLogRequest struct {
	CallTime string `json:"call_time" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Result   string `json:"result"    validate:"required,oneof=answered no_answer busy wrong_number cancelled confirmed"`
	Notes    string `json:"notes"`
}

type CallLogResponse struct {
	ID          string `json:"id"`
	CallTime    string `json:"call_time"`
	Result      string `json:"result"`
	Notes       string `json:"notes,omitempty"`
	StaffUserID string `json:"staff_user_id"`
}

func (r *CallLogResponse) FromModel(model model.CallLog) {
	r.ID = model.ID
	r.CallTime = model.CallTime.Format(constant.DateFormat)
	r.Result = model.Result
	r.StaffUserID = model.StaffUserID

	if model.Notes != nil {
		r.Notes = *model.Notes
	}
}

type GuestResponse struct {
	GuestID  string  `json:"guest_id"`
	FullName string  `json:"full_name"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
}

type RoomResponse struct {
	ID               string          `json:"id"`
	RoomID           string          `json:"room_id"`
	RoomName         string          `json:"room_name"`
	StartDate        string          `json:"start_date"`
	EndDate          string          `json:"end_date"`
	ExtendedDate     *string         `json:"extended_date"`
	ActualCheckInAt  *string         `json:"actual_check_in_at"`
	ActualCheckOutAt *string         `json:"actual_check_out_at"`
	Status           string          `json:"status"`
	Guests           []GuestResponse `json:"guests"`
}

// FromModel reports the effective end date as the end date so an extension is visible to clients.
func (r *RoomResponse) FromModel(room model.BookingRoom, guests []model.BookingGuest) {
	r.ID = room.ID
	r.RoomID = room.RoomID
	r.RoomName = room.RoomName
	r.StartDate = room.StartDate.Format(constant.DateOnly)
	r.EndDate = room.EffectiveEndDate().Format(constant.DateOnly)
	r.ExtendedDate = formatTime(room.ExtendedDate, constant.DateOnly)
	r.ActualCheckInAt = formatTime(room.ActualCheckInAt, constant.DateFormat)
	r.ActualCheckOutAt = formatTime(room.ActualCheckOutAt, constant.DateFormat)
	r.Status = room.Status

	r.Guests = make([]GuestResponse, 0, len(guests))
	for _, guest := range guests {
		if guest.BookingRoomID != room.ID {
			continue
		}

		r.Guests = append(r.Guests, GuestResponse{
			GuestID:  guest.GuestID,
			FullName: guest.FullName,
			Phone:    guest.Phone,
			Email:    guest.Email,
		})
	}
}

type RoomTypeResponse struct {
	ID           string          `json:"id"`
	RoomTypeID   string          `json:"room_type_id"`
	RoomTypeName string          `json:"room_type_name"`
	Capacity     int             `json:"capacity"`
	Price        decimal.Decimal `json:"price"`
	StartDate    string          `json:"start_date"`
	EndDate      string          `json:"end_date"`
	TotalRoom    int             `json:"total_room"`
	Rooms        []RoomResponse  `json:"rooms"`
}

type BookingResponse struct {
	ID                      string              `json:"id"`
	HotelID                 string              `json:"hotel_id"`
	PrimaryGuestID          string              `json:"primary_guest_id"`
	PrimaryGuestName        string              `json:"primary_guest_name"`
	PrimaryGuestPhone       *string             `json:"primary_guest_phone"`
	Status                  string              `json:"status"`
	StartDate               string              `json:"start_date"`
	EndDate                 string              `json:"end_date"`
	DepositAmount           decimal.Decimal     `json:"deposit_amount"`
	DiscountAmount          decimal.Decimal     `json:"discount_amount"`
	TotalAmount             decimal.Decimal     `json:"total_amount"`
	LeftAmount              decimal.Decimal     `json:"left_amount"`
	PromotionCode           *string             `json:"promotion_code"`
	PromotionValue          decimal.NullDecimal `json:"promotion_value"`
	AdditionalAmount        decimal.Decimal     `json:"additional_amount"`
	AdditionalNotes         *string             `json:"additional_notes"`
	AdditionalBookingAmount decimal.Decimal     `json:"additional_booking_amount"`
	AdditionalBookingNotes  *string             `json:"additional_booking_notes"`
	Notes                   *string             `json:"notes"`
	RoomTypes               []RoomTypeResponse  `json:"room_types,omitempty"`
	CallLogs                []CallLogResponse   `json:"call_logs,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.HotelID = model.HotelID
	r.PrimaryGuestID = model.PrimaryGuestID
	r.PrimaryGuestName = model.PrimaryGuestName
	r.PrimaryGuestPhone = model.PrimaryGuestPhone
	r.Status = model.Status
	r.StartDate = model.StartDate.Format(constant.DateOnly)
	r.EndDate = model.EndDate.Format(constant.DateOnly)
	r.DepositAmount = model.DepositAmount
	r.DiscountAmount = model.DiscountAmount
	r.TotalAmount = model.TotalAmount
	r.LeftAmount = model.LeftAmount
	r.PromotionCode = model.PromotionCode
	r.PromotionValue = model.PromotionValue
	r.AdditionalAmount = model.AdditionalAmount
	r.AdditionalNotes = model.AdditionalNotes
	r.AdditionalBookingAmount = model.AdditionalBookingAmount
	r.AdditionalBookingNotes = model.AdditionalBookingNotes
	r.Notes = model.Notes
	r.Metadata.FromModel(model.Metadata)
}

// WithDetails attaches the room types, their rooms and guests, and the call logs.
func (r *BookingResponse) WithDetails(
	roomTypes []model.BookingRoomType,
	rooms []model.BookingRoom,
	guests []model.BookingGuest,
	callLogs []model.CallLog,
) {
	r.RoomTypes = make([]RoomTypeResponse, len(roomTypes))

	for i, rt := range roomTypes {
		res := RoomTypeResponse{
			ID:           rt.ID,
			RoomTypeID:   rt.RoomTypeID,
			RoomTypeName: rt.RoomTypeName,
			Capacity:     rt.Capacity,
			Price:        rt.Price,
			StartDate:    rt.StartDate.Format(constant.DateOnly),
			EndDate:      rt.EndDate.Format(constant.DateOnly),
			TotalRoom:    rt.TotalRoom,
			Rooms:        []RoomResponse{},
		}

		for _, room := range rooms {
			if room.BookingRoomTypeID != rt.ID {
				continue
			}

			var roomRes RoomResponse
			roomRes.FromModel(room, guests)
			res.Rooms = append(res.Rooms, roomRes)
		}

		r.RoomTypes[i] = res
	}

	r.CallLogs = make([]CallLogResponse, len(callLogs))
	for i, callLog := range callLogs {
		r.CallLogs[i].FromModel(callLog)
	}
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

func formatTime(value *time.Time, layout string) *string {
	if value == nil {
		return nil
	}

	formatted := value.Format(layout)

	return &formatted
}

// ListBookingsQuery holds the list filters accepted by the bookings endpoint.
type ListBookingsQuery struct {
	HotelID    string
	Status     string
	From       string
	To         string
	GuestName  string
	GuestPhone string
	RoomNumber string
}

const roomNumberQuery = "EXISTS (SELECT 1 FROM booking_room_types brt " +
	"JOIN booking_rooms br ON br.booking_room_type_id = brt.id " +
	"WHERE brt.booking_id = bookings.id AND br.room_name = :room_number)"

// ToFilter builds the filter group; From and To select bookings overlapping [From, To].
func (q ListBookingsQuery) ToFilter() gDto.FilterGroup {
	filters := []any{}

	if q.HotelID != "" {
		filters = append(filters, gDto.Filter{
			Field: model.FieldHotelID, Value: q.HotelID, Operator: gDto.FilterOperatorEq, Table: model.TableName,
		})
	}

	if q.Status != "" {
		filters = append(filters, gDto.Filter{
			Field: model.FieldStatus, Value: q.Status, Operator: gDto.FilterOperatorEq, Table: model.TableName,
		})
	}

	if q.From != "" {
		filters = append(filters, gDto.Filter{
			ArgName: "from_date", Field: model.FieldEndDate, Value: q.From, Operator: gDto.FilterOperatorGreater, Table: model.TableName,
		})
	}

	if q.To != "" {
		filters = append(filters, gDto.Filter{
			ArgName: "to_date", Field: model.FieldStartDate, Value: q.To, Operator: gDto.FilterOperatorLessEq, Table: model.TableName,
		})
	}

	if q.GuestName != "" {
		filters = append(filters, gDto.Filter{
			ArgName: "guest_name", Field: "full_name", Value: q.GuestName, Operator: gDto.FilterOperatorLike, Table: "guests",
		})
	}

	if q.GuestPhone != "" {
		filters = append(filters, gDto.Filter{
			ArgName: "guest_phone", Field: "phone", Value: q.GuestPhone, Operator: gDto.FilterOperatorLike, Table: "guests",
		})
	}

	if q.RoomNumber != "" {
		filters = append(filters, gDto.Filter{
			Operator: gDto.FilterPlainQuery,
			Value:    roomNumberQuery,
			Args:     map[string]any{"room_number": q.RoomNumber},
		})
	}

	return shared.FilterAnd(filters...)
}
