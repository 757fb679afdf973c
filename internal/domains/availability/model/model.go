package model

import "time"

const (
	BookingRoomTableName = "booking_rooms"
	RoomTableName        = "hotel_rooms"

	StatusCancelled = "cancelled"
)

// Occupancy is the number of rooms of a hotel booked on a given day.
type Occupancy struct {
	TotalRooms  int `db:"total_rooms"`
	BookedRooms int `db:"booked_rooms"`
}

// AvailablePercentage returns the share of rooms still free, 0 when the hotel has no rooms.
func (o Occupancy) AvailablePercentage() float64 {
	if o.TotalRooms == 0 {
		return 0
	}

	free := o.TotalRooms - o.BookedRooms
	if free < 0 {
		free = 0
	}

	return float64(free) * 100 / float64(o.TotalRooms) //nolint:mnd
}

// BookedPercentage returns the share of rooms booked.
func (o Occupancy) BookedPercentage() float64 {
	if o.TotalRooms == 0 {
		return 0
	}

	return float64(o.BookedRooms) * 100 / float64(o.TotalRooms) //nolint:mnd
}

// LockedRoom is the physical room row held for the duration of a reservation.
type LockedRoom struct {
	ID                string     `db:"id"`
	HotelID           string     `db:"hotel_id"`
	RoomTypeID        string     `db:"room_type_id"`
	Number            string     `db:"number"`
	Status            string     `db:"status"`
	OutOfServiceUntil *time.Time `db:"out_of_service_until"`
}
