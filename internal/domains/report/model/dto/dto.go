package dto

import (
	bookingModel "hotel/internal/domains/booking/model"
	"hotel/internal/domains/report/model"
	roomModel "hotel/internal/domains/room/model"
	"hotel/shared/constant"
	"math"
)

type RoomMapQuery struct {
	HotelID string `validate:"omitempty,uuid"`
	From    string `validate:"required,datetime=2006-01-02"`
	To      string `validate:"omitempty,datetime=2006-01-02"`
}

type RangeQuery struct {
	From string `validate:"omitempty,datetime=2006-01-02"`
	To   string `validate:"omitempty,datetime=2006-01-02"`
}

type PeakDaysQuery struct {
	HotelID string `validate:"omitempty,uuid"`
	From    string `validate:"required,datetime=2006-01-02"`
	To      string `validate:"required,datetime=2006-01-02"`
}

type BookedRoomsQuery struct {
	HotelID string `validate:"omitempty,uuid"`
	Date    string `validate:"required,datetime=2006-01-02"`
}

type AvailabilityQuery struct {
	HotelID    string `validate:"omitempty,uuid"`
	RoomTypeID string `validate:"omitempty,uuid"`
	From       string `validate:"omitempty,datetime=2006-01-02"`
	To         string `validate:"omitempty,datetime=2006-01-02"`
}

type TimelineSegment struct {
	Date      string  `json:"date"`
	Status    string  `json:"status"`
	BookingID *string `json:"booking_id"`
}

type RoomMapItem struct {
	RoomID       string            `json:"room_id"`
	RoomNumber   string            `json:"room_number"`
	RoomTypeID   string            `json:"room_type_id"`
	RoomTypeName string            `json:"room_type_name"`
	Floor        int               `json:"floor"`
	Status       string            `json:"status"`
	Timeline     []TimelineSegment `json:"timeline"`
}

func (r *RoomMapItem) FromModel(room roomModel.HotelRoom) {
	r.RoomID = room.ID
	r.RoomNumber = room.Number
	r.RoomTypeID = room.RoomTypeID
	r.RoomTypeName = room.RoomTypeName
	r.Floor = room.Floor
	r.Status = room.Status
	r.Timeline = []TimelineSegment{}
}

type StayInterval struct {
	BookingID     string  `json:"booking_id"`
	BookingRoomID string  `json:"booking_room_id"`
	Start         string  `json:"start"`
	End           string  `json:"end"`
	Status        string  `json:"status"`
	GuestName     *string `json:"guest_name"`
}

func (s *StayInterval) FromModel(stay model.Stay) {
	s.BookingID = stay.BookingID
	s.BookingRoomID = stay.BookingRoomID
	s.Start = stay.StartDate.Format(constant.DateOnly)
	s.End = stay.EndDate.Format(constant.DateOnly)
	s.Status = stay.BookingStatus
	s.GuestName = stay.PrimaryGuestName
}

type StayGuest struct {
	GuestID  string  `json:"guest_id"`
	FullName string  `json:"full_name"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
}

type RoomHistoryItem struct {
	StayInterval
	RoomStatus        string      `json:"room_status"`
	PrimaryGuestPhone *string     `json:"primary_guest_phone"`
	Guests            []StayGuest `json:"guests"`
}

func (r *RoomHistoryItem) FromModel(stay model.Stay, guests []bookingModel.BookingGuest) {
	r.StayInterval.FromModel(stay)
	r.RoomStatus = stay.Status
	r.PrimaryGuestPhone = stay.PrimaryGuestPhone

	r.Guests = []StayGuest{}
	for _, guest := range guests {
		if guest.BookingRoomID != stay.BookingRoomID {
			continue
		}

		r.Guests = append(r.Guests, StayGuest{GuestID: guest.GuestID, FullName: guest.FullName, Phone: guest.Phone, Email: guest.Email})
	}
}

type PeakDay struct {
	Date        string  `json:"date"`
	TotalRooms  int     `json:"total_rooms"`
	BookedRooms int     `json:"booked_rooms"`
	Percentage  float64 `json:"percentage"`
}

func (p *PeakDay) FromModel(day model.DayOccupancy) {
	p.Date = day.Day.Format(constant.DateOnly)
	p.TotalRooms = day.TotalRooms
	p.BookedRooms = day.BookedRooms
	p.Percentage = math.Round(day.Percentage()*100) / 100 //nolint:mnd
}

type CurrentBookingResponse struct {
	BookingID     string `json:"booking_id"`
	BookingRoomID string `json:"booking_room_id"`
}

type BookedRoomsResponse struct {
	Date        string `json:"date"`
	BookedRooms int    `json:"booked_rooms"`
	TotalRooms  int    `json:"total_rooms"`
}

type AvailabilityResponse struct {
	From           string `json:"from"`
	To             string `json:"to"`
	AvailableRooms int    `json:"available_rooms"`
	Rooms          int    `json:"rooms"`
	Assigned       int    `json:"assigned"`
	Unassigned     int    `json:"unassigned"`
}

func (a *AvailabilityResponse) FromModel(counts model.AvailabilityCounts) {
	a.AvailableRooms = counts.Available()
	a.Rooms = counts.Rooms
	a.Assigned = counts.Assigned
	a.Unassigned = counts.Unassigned
}
