package dto

import (
	"fmt"
	"hotel/internal/domains/roomtype/model"
	"hotel/shared"
	"hotel/shared/clock"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateRoomTypeRequest struct {
	HotelID   string           `json:"hotel_id"   validate:"required,uuid"`
	Name      string           `json:"name"       validate:"required,max=255"`
	Capacity  int              `json:"capacity"   validate:"required,min=1"`
	BasePrice *decimal.Decimal `json:"base_price" swaggertype:"number"`
}

func (c *CreateRoomTypeRequest) ToModel(user string, now time.Time) model.RoomType {
	roomType := model.RoomType{
		ID:       uuid.NewString(),
		HotelID:  c.HotelID,
		Name:     c.Name,
		Capacity: c.Capacity,
		Metadata: gModel.NewMetadata(user, now),
	}

	if c.BasePrice != nil {
		roomType.BasePrice = decimal.NewNullDecimal(*c.BasePrice)
	}

	return roomType
}

type UpdateRoomTypeRequest struct {
	Name      string           `db:"name"       json:"name"       validate:"omitempty,max=255"`
	Capacity  *int             `db:"capacity"   json:"capacity"   validate:"omitempty,min=1"`
	BasePrice *decimal.Decimal `db:"base_price" json:"base_price" swaggertype:"number"`
}

type RoomTypeResponse struct {
	ID        string           `json:"id"`
	HotelID   string           `json:"hotel_id"`
	Name      string           `json:"name"`
	Capacity  int              `json:"capacity"`
	BasePrice *decimal.Decimal `json:"base_price" swaggertype:"number"`
	gDto.Metadata
}

func (r *RoomTypeResponse) FromModel(model model.RoomType) {
	r.ID = model.ID
	r.HotelID = model.HotelID
	r.Name = model.Name
	r.Capacity = model.Capacity
	r.BasePrice = nil

	if model.BasePrice.Valid {
		price := model.BasePrice.Decimal
		r.BasePrice = &price
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetRoomTypesResponse struct {
	RoomTypes []RoomTypeResponse `json:"room_types"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetRoomTypesResponse) FromModels(models []model.RoomType, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.RoomTypes = make([]RoomTypeResponse, len(models))
	for i, mod := range models {
		r.RoomTypes[i].FromModel(mod)
	}
}

type PriceItem struct {
	Date  string          `json:"date"  validate:"required,datetime=2006-01-02"`
	Price decimal.Decimal `json:"price" swaggertype:"number"`
}

type SetPricesRequest struct {
	Prices []PriceItem `json:"prices" validate:"required,min=1,dive"`
}

func (s *SetPricesRequest) ToModels(roomTypeID, user string, now time.Time) ([]model.RoomTypePrice, error) {
	prices := make([]model.RoomTypePrice, 0, len(s.Prices))

	for _, item := range s.Prices {
		date, err := clock.ParseDate(item.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid price date %s: %w", item.Date, err)
		}

		if item.Price.IsNegative() {
			return nil, fmt.Errorf("price for %s must not be negative", item.Date)
		}

		prices = append(prices, model.RoomTypePrice{
			ID:         uuid.NewString(),
			RoomTypeID: roomTypeID,
			Date:       date,
			Price:      item.Price,
			Metadata:   gModel.NewMetadata(user, now),
		})
	}

	return prices, nil
}

type PriceResponse struct {
	Date  string          `json:"date"`
	Price decimal.Decimal `json:"price" swaggertype:"number"`
}

func (p *PriceResponse) FromModel(model model.RoomTypePrice) {
	p.Date = model.Date.Format(constant.DateOnly)
	p.Price = model.Price
}

type ListRoomTypesQuery struct {
	HotelID string
	Name    string
}

func (q ListRoomTypesQuery) ToFilter() gDto.FilterGroup {
	filters := []any{}

	if q.HotelID != "" {
		filters = append(filters, gDto.Filter{Field: model.FieldHotelID, Value: q.HotelID, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if q.Name != "" {
		filters = append(filters, gDto.Filter{Field: model.FieldName, Value: q.Name, Operator: gDto.FilterOperatorLike, Table: model.TableName})
	}

	return shared.FilterAnd(filters...)
}
