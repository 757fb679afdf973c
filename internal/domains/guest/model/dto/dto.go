package dto

import (
	"hotel/internal/domains/guest/model"
	"hotel/shared"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"mime/multipart"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GuestRequest carries the guest fields shared by every endpoint that registers a guest.
type GuestRequest struct {
	FullName     string `json:"full_name"      validate:"required,max=255"`
	Phone        string `json:"phone"          validate:"omitempty,max=32"`
	Email        string `json:"email"          validate:"omitempty,email"`
	IDCardType   string `json:"id_card_type"   validate:"omitempty,max=32"`
	IDCardNumber string `json:"id_card_number" validate:"omitempty,max=64"`
}

func (g *GuestRequest) ToModel(hotelID, user string, now time.Time) model.Guest {
	return model.Guest{
		ID:           uuid.NewString(),
		HotelID:      hotelID,
		FullName:     strings.TrimSpace(g.FullName),
		Phone:        optional(g.Phone),
		Email:        optional(g.Email),
		IDCardType:   optional(g.IDCardType),
		IDCardNumber: optional(g.IDCardNumber),
		Metadata:     gModel.NewMetadata(user, now),
	}
}

// ToUpdate returns the columns to overwrite on an existing guest.
func (g *GuestRequest) ToUpdate() UpdateGuestRequest {
	return UpdateGuestRequest{
		FullName:     strings.TrimSpace(g.FullName),
		Phone:        g.Phone,
		Email:        g.Email,
		IDCardType:   g.IDCardType,
		IDCardNumber: g.IDCardNumber,
	}
}

func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	return &value
}

type CreateGuestRequest struct {
	HotelID string `json:"hotel_id" validate:"required,uuid"`
	GuestRequest
}

type UpdateGuestRequest struct {
	FullName     string `db:"full_name"      json:"full_name"      validate:"omitempty,max=255"`
	Phone        string `db:"phone"          json:"phone"          validate:"omitempty,max=32"`
	Email        string `db:"email"          json:"email"          validate:"omitempty,email"`
	IDCardType   string `db:"id_card_type"   json:"id_card_type"   validate:"omitempty,max=32"`
	IDCardNumber string `db:"id_card_number" json:"id_card_number" validate:"omitempty,max=64"`
}

type UploadIDCardRequest struct {
	Side      string                `json:"side"  validate:"required,oneof=front back"`
	Image     *multipart.FileHeader `json:"image" validate:"required,mimetypes=image/png image/jpg image/jpeg,maxfilesize=2"`
	ImageFile multipart.File        `json:"-"`
}

type UploadIDCardResponse struct {
	URL string `json:"url"`
}

type GuestResponse struct {
	ID             string  `json:"id"`
	HotelID        string  `json:"hotel_id"`
	FullName       string  `json:"full_name"`
	Phone          *string `json:"phone"`
	Email          *string `json:"email"`
	IDCardType     *string `json:"id_card_type"`
	IDCardNumber   *string `json:"id_card_number"`
	IDCardFrontURL *string `json:"id_card_front_url"`
	IDCardBackURL  *string `json:"id_card_back_url"`
	gDto.Metadata
}

func (r *GuestResponse) FromModel(model model.Guest) {
	r.ID = model.ID
	r.HotelID = model.HotelID
	r.FullName = model.FullName
	r.Phone = model.Phone
	r.Email = model.Email
	r.IDCardType = model.IDCardType
	r.IDCardNumber = model.IDCardNumber
	r.IDCardFrontURL = model.IDCardFrontURL
	r.IDCardBackURL = model.IDCardBackURL
	r.Metadata.FromModel(model.Metadata)
}

type GetGuestsResponse struct {
	Guests    []GuestResponse `json:"guests"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetGuestsResponse) FromModels(models []model.Guest, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Guests = make([]GuestResponse, len(models))
	for i, mod := range models {
		r.Guests[i].FromModel(mod)
	}
}

type ListGuestsQuery struct {
	HotelID      string
	FullName     string
	Phone        string
	IDCardNumber string
}

func (q ListGuestsQuery) ToFilter() gDto.FilterGroup {
	filters := []any{}

	if q.HotelID != "" {
		filters = append(filters, gDto.Filter{Field: model.FieldHotelID, Value: q.HotelID, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	for _, pair := range [][2]string{
		{model.FieldFullName, q.FullName},
		{model.FieldPhone, q.Phone},
		{model.FieldIDCardNumber, q.IDCardNumber},
	} {
		field, value := pair[0], pair[1]
		if value != "" {
			filters = append(filters, gDto.Filter{Field: field, Value: value, Operator: gDto.FilterOperatorLike, Table: model.TableName})
		}
	}

	return shared.FilterAnd(filters...)
}
