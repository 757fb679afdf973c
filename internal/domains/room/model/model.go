package model

import (
	"hotel/shared/model"
	"time"

	"github.com/google/uuid"
)

const (
	TableName  = "hotel_rooms"
	EntityName = "room"

	FieldID                 = "id"
	FieldHotelID            = "hotel_id"
	FieldRoomTypeID         = "room_type_id"
	FieldNumber             = "number"
	FieldFloor              = "floor"
	FieldStatus             = "status"
	FieldOutOfServiceReason = "out_of_service_reason"
	FieldOutOfServiceUntil  = "out_of_service_until"
)

const (
	StatusLogTableName  = "room_status_logs"
	StatusLogEntityName = "room status log"

	FieldRoomID    = "room_id"
	FieldTimestamp = "timestamp"
)

const (
	StatusAvailable    = "available"
	StatusOccupied     = "occupied"
	StatusDirty        = "dirty"
	StatusOutOfService = "out_of_service"
)

type HotelRoom struct {
	ID                 string     `db:"id"`
	HotelID            string     `db:"hotel_id"`
	RoomTypeID         string     `db:"room_type_id"`
	RoomTypeName       string     `column:"name"                 db:"room_type_name" table:"room_types"`
	Number             string     `db:"number"`
	Floor              int        `db:"floor"`
	Status             string     `db:"status"`
	OutOfServiceReason *string    `db:"out_of_service_reason"`
	OutOfServiceUntil  *time.Time `db:"out_of_service_until"`
	model.Metadata
}

func (HotelRoom) GetJoinQuery() string {
	return "JOIN room_types ON room_types.id = hotel_rooms.room_type_id"
}

// RoomStatusLog is an append-only audit entry of a room status change.
type RoomStatusLog struct {
	ID        string    `db:"id"`
	HotelID   string    `db:"hotel_id"`
	RoomID    string    `db:"room_id"`
	Status    string    `db:"status"`
	Timestamp time.Time `db:"timestamp"`
	model.Metadata
}

func NewStatusLog(room HotelRoom, status, user string, at time.Time) RoomStatusLog {
	return RoomStatusLog{
		ID:        uuid.NewString(),
		HotelID:   room.HotelID,
		RoomID:    room.ID,
		Status:    status,
		Timestamp: at,
		Metadata:  model.NewMetadata(user, at),
	}
}
