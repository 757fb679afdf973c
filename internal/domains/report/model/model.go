package model

import "time"

const (
	BookingRoomTableName     = "booking_rooms"
	BookingRoomTypeTableName = "booking_room_types"
	BookingTableName         = "bookings"
	GuestTableName           = "guests"
	RoomTableName            = "hotel_rooms"

	RoomStatusCancelled    = "cancelled"
	RoomStatusCheckedOut   = "checked_out"
	BookingStatusCancelled = "cancelled"
	BookingStatusMissing   = "missing"
	BookingStatusConfirmed = "confirmed"
	HotelRoomAvailable     = "available"
)

// Stay is one booked interval of a physical room; EndDate already honours an extension.
type Stay struct {
	BookingRoomID     string    `db:"booking_room_id"`
	RoomID            string    `db:"room_id"`
	BookingID         string    `db:"booking_id"`
	StartDate         time.Time `db:"start_date"`
	EndDate           time.Time `db:"end_date"`
	Status            string    `db:"status"`
	BookingStatus     string    `db:"booking_status"`
	PrimaryGuestName  *string   `db:"primary_guest_name"`
	PrimaryGuestPhone *string   `db:"primary_guest_phone"`
}

// Covers reports whether the stay occupies the room on day.
func (s Stay) Covers(day time.Time) bool {
	return !day.Before(s.StartDate) && day.Before(s.EndDate)
}

// StayQuery selects the stays of a hotel or a room; nil bounds leave that side open.
type StayQuery struct {
	HotelID string
	RoomID  string
	From    *time.Time
	To      *time.Time
}

// DayOccupancy is the number of rooms booked on one day.
type DayOccupancy struct {
	Day         time.Time `db:"day"`
	TotalRooms  int       `db:"total_rooms"`
	BookedRooms int       `db:"booked_rooms"`
}

func (d DayOccupancy) Percentage() float64 {
	if d.TotalRooms == 0 {
		return 0
	}

	return float64(d.BookedRooms) * 100 / float64(d.TotalRooms) //nolint:mnd
}

// AvailabilityCounts holds the room counts of a hotel for a date range.
type AvailabilityCounts struct {
	Rooms      int `db:"rooms"`
	Assigned   int `db:"assigned"`
	Unassigned int `db:"unassigned"`
}

// Available is the number of free rooms left once assigned and still unassigned reservations are taken.
func (a AvailabilityCounts) Available() int {
	return max(a.Rooms-a.Assigned-a.Unassigned, 0)
}
