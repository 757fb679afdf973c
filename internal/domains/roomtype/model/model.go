package model

import (
	"hotel/shared/model"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "room_types"
	EntityName = "room type"

	FieldID        = "id"
	FieldHotelID   = "hotel_id"
	FieldName      = "name"
	FieldCapacity  = "capacity"
	FieldBasePrice = "base_price"
)

const (
	PriceTableName  = "room_type_prices"
	PriceEntityName = "room type price"

	FieldRoomTypeID = "room_type_id"
	FieldDate       = "date"
	FieldPrice      = "price"
)

type RoomType struct {
	ID        string              `db:"id"`
	HotelID   string              `db:"hotel_id"`
	Name      string              `db:"name"`
	Capacity  int                 `db:"capacity"`
	BasePrice decimal.NullDecimal `db:"base_price"`
	model.Metadata
}

// RoomTypePrice overrides the nightly rate of a room type on one calendar day.
type RoomTypePrice struct {
	ID         string          `db:"id"`
	RoomTypeID string          `db:"room_type_id"`
	Date       time.Time       `db:"date"`
	Price      decimal.Decimal `db:"price"`
	model.Metadata
}
