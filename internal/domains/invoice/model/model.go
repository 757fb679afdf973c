package model

import (
	"hotel/shared/model"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "invoices"
	EntityName = "invoice"

	LineTableName  = "invoice_lines"
	LineEntityName = "invoice line"

	PromotionTableName  = "promotions"
	PromotionEntityName = "promotion"

	SurchargeRuleTableName  = "surcharge_rules"
	SurchargeRuleEntityName = "surcharge rule"
)

const (
	FieldID         = "id"
	FieldHotelID    = "hotel_id"
	FieldBookingID  = "booking_id"
	FieldOrderID    = "order_id"
	FieldIsWalkIn   = "is_walk_in"
	FieldStatus     = "status"
	FieldInvoiceID  = "invoice_id"
	FieldSourceType = "source_type"
	FieldCreatedAt  = "created_at"

	FieldCode         = "code"
	FieldScope        = "scope"
	FieldIsActive     = "is_active"
	FieldStartDate    = "start_date"
	FieldEndDate      = "end_date"
	FieldType         = "type"
	FieldAmount       = "amount"
	FieldIsPercentage = "is_percentage"
)

const (
	StatusDraft  = "draft"
	StatusIssued = "issued"
	StatusPaid   = "paid"
	StatusVoid   = "void"
)

const (
	SourceRoomCharge = "room_charge"
	SourceSurcharge  = "surcharge"
	SourceDiscount   = "discount"
	SourceFnb        = "fnb"
)

const (
	ScopeBooking = "booking"
	ScopeFood    = "food"
)

const (
	SurchargeEarlyCheckIn = "early_check_in"
	SurchargeLateCheckOut = "late_check_out"
	SurchargeExtraGuest   = "extra_guest"
)

type Invoice struct {
	ID               string          `db:"id"`
	HotelID          string          `db:"hotel_id"`
	BookingID        *string         `db:"booking_id"`
	OrderID          *string         `db:"order_id"`
	IsWalkIn         bool            `db:"is_walk_in"`
	InvoiceNumber    string          `db:"invoice_number"`
	Status           string          `db:"status"`
	SubTotal         decimal.Decimal `db:"sub_total"`
	DiscountAmount   decimal.Decimal `db:"discount_amount"`
	TaxAmount        decimal.Decimal `db:"tax_amount"`
	TotalAmount      decimal.Decimal `db:"total_amount"`
	AdditionalAmount decimal.Decimal `db:"additional_amount"`
	Notes            *string         `db:"notes"`
	VatIncluded      bool            `db:"vat_included"`
	model.Metadata
}

// Totals sets subtotal, discount and tax from lines; tax is rounded to 2 decimals.
func (i *Invoice) Totals(lines []InvoiceLine, taxRate decimal.Decimal) {
	i.SubTotal, i.DiscountAmount = decimal.Zero, decimal.Zero

	for _, line := range lines {
		if line.Amount.IsPositive() {
			i.SubTotal = i.SubTotal.Add(line.Amount)
		} else {
			i.DiscountAmount = i.DiscountAmount.Add(line.Amount.Abs())
		}
	}

	i.TaxAmount = i.SubTotal.Mul(taxRate).Round(2) //nolint:mnd
}

type InvoiceLine struct {
	ID          string          `db:"id"`
	InvoiceID   string          `db:"invoice_id"`
	Description string          `db:"description"`
	Amount      decimal.Decimal `db:"amount"`
	SourceType  string          `db:"source_type"`
	SourceID    *string         `db:"source_id"`
	model.Metadata
}

type Promotion struct {
	ID        string          `db:"id"`
	HotelID   string          `db:"hotel_id"`
	Code      string          `db:"code"`
	Scope     string          `db:"scope"`
	Value     decimal.Decimal `db:"value"`
	StartDate time.Time       `db:"start_date"`
	EndDate   time.Time       `db:"end_date"`
	IsActive  bool            `db:"is_active"`
	model.Metadata
}

// ValidOn reports whether the promotion is active and day lies in [start, end].
func (p Promotion) ValidOn(day time.Time) bool {
	return p.IsActive && !day.Before(p.StartDate) && !day.After(p.EndDate)
}

// HasScope compares the scope case-insensitively.
func (p Promotion) HasScope(scope string) bool {
	return strings.EqualFold(strings.TrimSpace(p.Scope), scope)
}

// Discount returns the promotion share of amount, rounded to 2 decimals.
func (p Promotion) Discount(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(p.Value).Div(decimal.NewFromInt(100)).Round(2) //nolint:mnd
}

type SurchargeRule struct {
	ID           string          `db:"id"`
	HotelID      string          `db:"hotel_id"`
	Type         string          `db:"type"`
	Amount       decimal.Decimal `db:"amount"`
	IsPercentage bool            `db:"is_percentage"`
	model.Metadata
}

// FixedAmount is the charge of a fixed rule; percentage rules have no preview amount.
func (s SurchargeRule) FixedAmount() decimal.Decimal {
	if s.IsPercentage {
		return decimal.Zero
	}

	return s.Amount
}

// RevenueTotals aggregates the invoices of a period.
type RevenueTotals struct {
	Invoices       int             `db:"invoices"`
	SubTotal       decimal.Decimal `db:"sub_total"`
	DiscountAmount decimal.Decimal `db:"discount_amount"`
	TaxAmount      decimal.Decimal `db:"tax_amount"`
	TotalAmount    decimal.Decimal `db:"total_amount"`
}

// RevenueBySource is the line amount of a period for one source type.
type RevenueBySource struct {
	SourceType string          `db:"source_type"`
	Amount     decimal.Decimal `db:"amount"`
	Lines      int             `db:"lines"`
}
