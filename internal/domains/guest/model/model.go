package model

import "hotel/shared/model"

const (
	TableName  = "guests"
	EntityName = "guest"

	FieldID             = "id"
	FieldHotelID        = "hotel_id"
	FieldFullName       = "full_name"
	FieldPhone          = "phone"
	FieldEmail          = "email"
	FieldIDCardType     = "id_card_type"
	FieldIDCardNumber   = "id_card_number"
	FieldIDCardFrontURL = "id_card_front_url"
	FieldIDCardBackURL  = "id_card_back_url"
)

const (
	IDCardSideFront = "front"
	IDCardSideBack  = "back"
)

type Guest struct {
	ID             string  `db:"id"`
	HotelID        string  `db:"hotel_id"`
	FullName       string  `db:"full_name"`
	Phone          *string `db:"phone"`
	Email          *string `db:"email"`
	IDCardType     *string `db:"id_card_type"`
	IDCardNumber   *string `db:"id_card_number"`
	IDCardFrontURL *string `db:"id_card_front_url"`
	IDCardBackURL  *string `db:"id_card_back_url"`
	model.Metadata
}
