package dto

import (
	"hotel/internal/domains/invoice/model"
	"hotel/shared"
	"hotel/shared/clock"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateBookingInvoiceRequest struct {
	BookingID               string              `json:"booking_id"                validate:"required,uuid"`
	DiscountCode            string              `json:"discount_code"             validate:"omitempty,max=64"`
	Notes                   string              `json:"notes"`
	AdditionalAmount        decimal.NullDecimal `json:"additional_amount"         swaggertype:"number" validate:"omitempty,gte=0"`
	AdditionalNotes         *string             `json:"additional_notes"`
	AdditionalBookingAmount decimal.NullDecimal `json:"additional_booking_amount" swaggertype:"number" validate:"omitempty,gte=0"`
	AdditionalBookingNotes  *string             `json:"additional_booking_notes"`
	FinalPayment            decimal.Decimal     `json:"final_payment"             swaggertype:"number" validate:"gte=0"`
	CheckOutAt              string              `json:"check_out_at"              validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

// CreateWalkInInvoiceRequest bills a walk-in dining order; the lines come from the order items.
type CreateWalkInInvoiceRequest struct {
	HotelID         string          `json:"hotel_id"         validate:"required,uuid"`
	OrderID         string          `json:"order_id"         validate:"required,uuid"`
	DiscountCode    string          `json:"discount_code"    validate:"omitempty,max=64"`
	AdditionalValue decimal.Decimal `json:"additional_value" swaggertype:"number" validate:"gte=0"`
	AdditionalNotes string          `json:"additional_notes"`
}

type LineResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"      swaggertype:"number"`
	SourceType  string          `json:"source_type"`
	SourceID    *string         `json:"source_id"`
}

func (r *LineResponse) FromModel(model model.InvoiceLine) {
	r.ID = model.ID
	r.Description = model.Description
	r.Amount = model.Amount
	r.SourceType = model.SourceType
	r.SourceID = model.SourceID
}

type InvoiceResponse struct {
	ID               string          `json:"id"`
	HotelID          string          `json:"hotel_id"`
	BookingID        *string         `json:"booking_id"`
	OrderID          *string         `json:"order_id"`
	IsWalkIn         bool            `json:"is_walk_in"`
	InvoiceNumber    string          `json:"invoice_number"`
	Status           string          `json:"status"`
	SubTotal         decimal.Decimal `json:"sub_total"         swaggertype:"number"`
	DiscountAmount   decimal.Decimal `json:"discount_amount"   swaggertype:"number"`
	TaxAmount        decimal.Decimal `json:"tax_amount"        swaggertype:"number"`
	TotalAmount      decimal.Decimal `json:"total_amount"      swaggertype:"number"`
	AdditionalAmount decimal.Decimal `json:"additional_amount" swaggertype:"number"`
	Notes            *string         `json:"notes"`
	VatIncluded      bool            `json:"vat_included"`
	Lines            []LineResponse  `json:"lines,omitempty"`
	gDto.Metadata
}

func (r *InvoiceResponse) FromModel(model model.Invoice) {
	r.ID = model.ID
	r.HotelID = model.HotelID
	r.BookingID = model.BookingID
	r.OrderID = model.OrderID
	r.IsWalkIn = model.IsWalkIn
	r.InvoiceNumber = model.InvoiceNumber
	r.Status = model.Status
	r.SubTotal = model.SubTotal
	r.DiscountAmount = model.DiscountAmount
	r.TaxAmount = model.TaxAmount
	r.TotalAmount = model.TotalAmount
	r.AdditionalAmount = model.AdditionalAmount
	r.Notes = model.Notes
	r.VatIncluded = model.VatIncluded
	r.Metadata.FromModel(model.Metadata)
}

func (r *InvoiceResponse) WithLines(lines []model.InvoiceLine) {
	r.Lines = make([]LineResponse, len(lines))
	for i, line := range lines {
		r.Lines[i].FromModel(line)
	}
}

type GetInvoicesResponse struct {
	Invoices  []InvoiceResponse `json:"invoices"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetInvoicesResponse) FromModels(models []model.Invoice, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Invoices = make([]InvoiceResponse, len(models))
	for i, mod := range models {
		r.Invoices[i].FromModel(mod)
	}
}

type ListInvoicesQuery struct {
	HotelID   string
	BookingID string
	Status    string
	WalkIn    string
	From      string
	To        string
}

// ToFilter builds the filter group; From and To bound the creation day, both inclusive.
func (q ListInvoicesQuery) ToFilter() gDto.FilterGroup {
	filters := []any{}

	for _, pair := range [][2]string{
		{model.FieldHotelID, q.HotelID},
		{model.FieldBookingID, q.BookingID},
		{model.FieldStatus, q.Status},
	} {
		field, value := pair[0], pair[1]
		if value != "" {
			filters = append(filters, gDto.Filter{Field: field, Value: value, Operator: gDto.FilterOperatorEq, Table: model.TableName})
		}
	}

	if q.WalkIn != "" {
		filters = append(filters, gDto.Filter{
			Field: model.FieldIsWalkIn, Value: q.WalkIn == "true", Operator: gDto.FilterOperatorEq, Table: model.TableName,
		})
	}

	if from, err := clock.ParseDate(q.From); err == nil {
		filters = append(filters, gDto.Filter{
			ArgName: "created_from", Field: model.FieldCreatedAt, Value: from, Operator: gDto.FilterOperatorGreaterEq, Table: model.TableName,
		})
	}

	if to, err := clock.ParseDate(q.To); err == nil {
		filters = append(filters, gDto.Filter{
			ArgName: "created_to", Field: model.FieldCreatedAt, Value: clock.AddDays(to, 1), Operator: gDto.FilterOperatorLess, Table: model.TableName,
		})
	}

	return shared.FilterAnd(filters...)
}

type RevenueQuery struct {
	HotelID string `validate:"omitempty,uuid"`
	From    string `validate:"required,datetime=2006-01-02"`
	To      string `validate:"required,datetime=2006-01-02"`
}

type SourceRevenue struct {
	SourceType string          `json:"source_type"`
	Amount     decimal.Decimal `json:"amount"      swaggertype:"number"`
	Lines      int             `json:"lines"`
}

type RevenueResponse struct {
	From           string          `json:"from"`
	To             string          `json:"to"`
	Invoices       int             `json:"invoices"`
	SubTotal       decimal.Decimal `json:"sub_total"       swaggertype:"number"`
	DiscountAmount decimal.Decimal `json:"discount_amount" swaggertype:"number"`
	TaxAmount      decimal.Decimal `json:"tax_amount"      swaggertype:"number"`
	TotalAmount    decimal.Decimal `json:"total_amount"    swaggertype:"number"`
	BySource       []SourceRevenue `json:"by_source"`
}

func (r *RevenueResponse) FromModels(totals model.RevenueTotals, sources []model.RevenueBySource) {
	r.Invoices = totals.Invoices
	r.SubTotal = totals.SubTotal
	r.DiscountAmount = totals.DiscountAmount
	r.TaxAmount = totals.TaxAmount
	r.TotalAmount = totals.TotalAmount

	r.BySource = make([]SourceRevenue, len(sources))
	for i, source := range sources {
		r.BySource[i] = SourceRevenue{SourceType: source.SourceType, Amount: source.Amount, Lines: source.Lines}
	}
}

type ChargeLine struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"      swaggertype:"number"`
	SourceType  string          `json:"source_type"`
}

type AdditionalChargesResponse struct {
	Lines []ChargeLine    `json:"lines"`
	Total decimal.Decimal `json:"total" swaggertype:"number"`
}

func (r *AdditionalChargesResponse) Add(description string, amount decimal.Decimal) {
	r.Lines = append(r.Lines, ChargeLine{Description: description, Amount: amount, SourceType: model.SourceSurcharge})
	r.Total = r.Total.Add(amount)
}

type EarlyCheckoutFeeRequest struct {
	CheckoutDate string `json:"checkout_date" validate:"required,datetime=2006-01-02"`
}

type EarlyCheckoutFeeResponse struct {
	AvailabilityPercent float64         `json:"availability_percent"`
	Tier                string          `json:"tier"`
	FeePercentage       float64         `json:"fee_percentage"`
	FeeAmount           decimal.Decimal `json:"fee_amount"           swaggertype:"number"`
}

type CreatePromotionRequest struct {
	HotelID   string          `json:"hotel_id"   validate:"required,uuid"`
	Code      string          `json:"code"       validate:"required,max=64"`
	Scope     string          `json:"scope"      validate:"required,oneof=booking food"`
	Value     decimal.Decimal `json:"value"      swaggertype:"number"`
	StartDate string          `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string          `json:"end_date"   validate:"required,datetime=2006-01-02"`
	IsActive  *bool           `json:"is_active"`
}

func (c *CreatePromotionRequest) ToModel(start, end time.Time, user string, now time.Time) model.Promotion {
	active := true
	if c.IsActive != nil {
		active = *c.IsActive
	}

	return model.Promotion{
		ID:        uuid.NewString(),
		HotelID:   c.HotelID,
		Code:      strings.TrimSpace(c.Code),
		Scope:     strings.ToLower(c.Scope),
		Value:     c.Value,
		StartDate: start,
		EndDate:   end,
		IsActive:  active,
		Metadata:  gModel.NewMetadata(user, now),
	}
}

type PromotionResponse struct {
	ID        string          `json:"id"`
	HotelID   string          `json:"hotel_id"`
	Code      string          `json:"code"`
	Scope     string          `json:"scope"`
	Value     decimal.Decimal `json:"value"      swaggertype:"number"`
	StartDate string          `json:"start_date"`
	EndDate   string          `json:"end_date"`
	IsActive  bool            `json:"is_active"`
	gDto.Metadata
}

func (r *PromotionResponse) FromModel(model model.Promotion) {
	r.ID = model.ID
	r.HotelID = model.HotelID
	r.Code = model.Code
	r.Scope = model.Scope
	r.Value = model.Value
	r.StartDate = model.StartDate.Format(constant.DateOnly)
	r.EndDate = model.EndDate.Format(constant.DateOnly)
	r.IsActive = model.IsActive
	r.Metadata.FromModel(model.Metadata)
}

type GetPromotionsResponse struct {
	Promotions []PromotionResponse `json:"promotions"`
	TotalPage  int                 `json:"total_page"`
	TotalData  int                 `json:"total_data"`
}

func (r *GetPromotionsResponse) FromModels(models []model.Promotion, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Promotions = make([]PromotionResponse, len(models))
	for i, mod := range models {
		r.Promotions[i].FromModel(mod)
	}
}

type SetSurchargeRuleRequest struct {
	HotelID      string          `json:"hotel_id"      validate:"required,uuid"`
	Type         string          `json:"type"          validate:"required,oneof=early_check_in late_check_out extra_guest"`
	Amount       decimal.Decimal `json:"amount"        swaggertype:"number"`
	IsPercentage bool            `json:"is_percentage"`
}

func (s *SetSurchargeRuleRequest) ToModel(user string, now time.Time) model.SurchargeRule {
	return model.SurchargeRule{
		ID:           uuid.NewString(),
		HotelID:      s.HotelID,
		Type:         s.Type,
		Amount:       s.Amount,
		IsPercentage: s.IsPercentage,
		Metadata:     gModel.NewMetadata(user, now),
	}
}

type SurchargeRuleResponse struct {
	ID           string          `json:"id"`
	HotelID      string          `json:"hotel_id"`
	Type         string          `json:"type"`
	Amount       decimal.Decimal `json:"amount"        swaggertype:"number"`
	IsPercentage bool            `json:"is_percentage"`
	gDto.Metadata
}

func (r *SurchargeRuleResponse) FromModel(model model.SurchargeRule) {
	r.ID = model.ID
	r.HotelID = model.HotelID
	r.Type = model.Type
	r.Amount = model.Amount
	r.IsPercentage = model.IsPercentage
	r.Metadata.FromModel(model.Metadata)
}

type ListPromotionsQuery struct {
	HotelID string
	Scope   string
	Active  string
}

func (q ListPromotionsQuery) ToFilter() gDto.FilterGroup {
	filters := []any{}

	for _, pair := range [][2]string{
		{model.FieldHotelID, q.HotelID},
		{model.FieldScope, q.Scope},
	} {
		field, value := pair[0], pair[1]
		if value != "" {
			filters = append(filters, gDto.Filter{Field: field, Value: value, Operator: gDto.FilterOperatorEq, Table: model.PromotionTableName})
		}
	}

	if q.Active != "" {
		filters = append(filters, gDto.Filter{Field: model.FieldIsActive, Value: q.Active == "true", Operator: gDto.FilterOperatorEq, Table: model.PromotionTableName})
	}

	return shared.FilterAnd(filters...)
}
