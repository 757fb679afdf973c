package model

import (
	"hotel/shared/model"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	RoomTypeTableName  = "booking_room_types"
	RoomTypeEntityName = "booking room type"

	RoomTableName  = "booking_rooms"
	RoomEntityName = "booking room"

	GuestTableName  = "booking_guests"
	GuestEntityName = "booking guest"

	CallLogTableName  = "booking_call_logs"
	CallLogEntityName = "call log"
)

const (
	FieldID                      = "id"
	FieldHotelID                 = "hotel_id"
	FieldPrimaryGuestID          = "primary_guest_id"
	FieldStatus                  = "status"
	FieldStartDate               = "start_date"
	FieldEndDate                 = "end_date"
	FieldDepositAmount           = "deposit_amount"
	FieldDiscountAmount          = "discount_amount"
	FieldTotalAmount             = "total_amount"
	FieldLeftAmount              = "left_amount"
	FieldPromotionCode           = "promotion_code"
	FieldPromotionValue          = "promotion_value"
	FieldAdditionalAmount        = "additional_amount"
	FieldAdditionalNotes         = "additional_notes"
	FieldAdditionalBookingAmount = "additional_booking_amount"
	FieldAdditionalBookingNotes  = "additional_booking_notes"
	FieldNotes                   = "notes"

	FieldBookingID         = "booking_id"
	FieldRoomTypeID        = "room_type_id"
	FieldPrice             = "price"
	FieldTotalRoom         = "total_room"
	FieldBookingRoomTypeID = "booking_room_type_id"
	FieldRoomID            = "room_id"
	FieldRoomName          = "room_name"
	FieldExtendedDate      = "extended_date"
	FieldActualCheckInAt   = "actual_check_in_at"
	FieldActualCheckOutAt  = "actual_check_out_at"
	FieldBookingRoomID     = "booking_room_id"
	FieldGuestID           = "guest_id"
	FieldCallTime          = "call_time"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusMissing   = "missing"
)

const (
	RoomStatusPending    = "pending"
	RoomStatusCheckedIn  = "checked_in"
	RoomStatusCheckedOut = "checked_out"
	RoomStatusCancelled  = "cancelled"
)

type Booking struct {
	ID                      string              `db:"id"`
	HotelID                 string              `db:"hotel_id"`
	PrimaryGuestID          string              `db:"primary_guest_id"`
	PrimaryGuestName        string              `column:"full_name"                 db:"primary_guest_name"  table:"guests"`
	PrimaryGuestPhone       *string             `column:"phone"                     db:"primary_guest_phone" table:"guests"`
	Status                  string              `db:"status"`
	StartDate               time.Time           `db:"start_date"`
	EndDate                 time.Time           `db:"end_date"`
	DepositAmount           decimal.Decimal     `db:"deposit_amount"`
	DiscountAmount          decimal.Decimal     `db:"discount_amount"`
	TotalAmount             decimal.Decimal     `db:"total_amount"`
	LeftAmount              decimal.Decimal     `db:"left_amount"`
	PromotionCode           *string             `db:"promotion_code"`
	PromotionValue          decimal.NullDecimal `db:"promotion_value"`
	AdditionalAmount        decimal.Decimal     `db:"additional_amount"`
	AdditionalNotes         *string             `db:"additional_notes"`
	AdditionalBookingAmount decimal.Decimal     `db:"additional_booking_amount"`
	AdditionalBookingNotes  *string             `db:"additional_booking_notes"`
	Notes                   *string             `db:"notes"`
	model.Metadata
}

func (Booking) GetJoinQuery() string {
	return "JOIN guests ON guests.id = bookings.primary_guest_id"
}

// IsTerminal reports whether no further transition is allowed.
func (b Booking) IsTerminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled
}

// CanTransition reports whether the booking may move to status.
func (b Booking) CanTransition(status string) bool {
	switch status {
	case StatusConfirmed:
		return b.Status == StatusPending
	case StatusCompleted:
		return b.Status == StatusPending || b.Status == StatusConfirmed
	case StatusCancelled:
		return b.Status == StatusPending || b.Status == StatusConfirmed || b.Status == StatusMissing
	case StatusMissing:
		return b.Status == StatusPending || b.Status == StatusConfirmed
	default:
		return false
	}
}

// BookingRoomType is the per room type line of a booking before rooms are assigned.
type BookingRoomType struct {
	ID           string          `db:"id"`
	BookingID    string          `db:"booking_id"`
	RoomTypeID   string          `db:"room_type_id"`
	RoomTypeName string          `db:"room_type_name"`
	Capacity     int             `db:"capacity"`
	Price        decimal.Decimal `db:"price"`
	StartDate    time.Time       `db:"start_date"`
	EndDate      time.Time       `db:"end_date"`
	TotalRoom    int             `db:"total_room"`
	model.Metadata
}

// Nights returns the scheduled nights of the room type line.
func (b BookingRoomType) Nights() int {
	return int(b.EndDate.Sub(b.StartDate).Hours() / 24) //nolint:mnd
}

// BookingRoom is a physical room assigned to a booking room type.
type BookingRoom struct {
	ID                string          `db:"id"`
	BookingRoomTypeID string          `db:"booking_room_type_id"`
	RoomID            string          `db:"room_id"`
	RoomName          string          `db:"room_name"`
	StartDate         time.Time       `db:"start_date"`
	EndDate           time.Time       `db:"end_date"`
	ExtendedDate      *time.Time      `db:"extended_date"`
	ActualCheckInAt   *time.Time      `db:"actual_check_in_at"`
	ActualCheckOutAt  *time.Time      `db:"actual_check_out_at"`
	Status            string          `db:"status"`
	BookingID         string          `db:"booking_id"                                    table:"booking_room_types"`
	RoomTypeID        string          `db:"room_type_id"                                  table:"booking_room_types"`
	Price             decimal.Decimal `column:"price"     db:"room_type_price"             table:"booking_room_types"`
	HotelID           string          `db:"hotel_id"                                      table:"bookings"`
	BookingStatus     string          `column:"status"    db:"booking_status"              table:"bookings"`
	model.Metadata
}

func (BookingRoom) GetJoinQuery() string {
	return "JOIN booking_room_types ON booking_room_types.id = booking_rooms.booking_room_type_id " +
		"JOIN bookings ON bookings.id = booking_room_types.booking_id"
}

// EffectiveEndDate is the last scheduled day (exclusive), honouring a stay extension.
func (b BookingRoom) EffectiveEndDate() time.Time {
	if b.ExtendedDate != nil {
		return *b.ExtendedDate
	}

	return b.EndDate
}

// BookingGuest links a guest to a booking room.
type BookingGuest struct {
	BookingRoomID string  `db:"booking_room_id"`
	GuestID       string  `db:"guest_id"`
	FullName      string  `db:"full_name"       table:"guests"`
	Phone         *string `db:"phone"           table:"guests"`
	Email         *string `db:"email"           table:"guests"`
	model.Metadata
}

func (BookingGuest) GetJoinQuery() string {
	return "JOIN guests ON guests.id = booking_guests.guest_id"
}

type CallLog struct {
	ID          string    `db:"id"`
	BookingID   string    `db:"booking_id"`
	CallTime    time.Time `db:"call_time"`
	Result      string    `db:"result"`
	Notes       *string   `db:"notes"`
	StaffUserID string    `db:"staff_user_id"`
	model.Metadata
}
