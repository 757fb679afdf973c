package model

import (
	"hotel/shared/model"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "orders"
	EntityName = "order"

	ItemTableName  = "order_items"
	ItemEntityName = "order item"

	HistoryTableName  = "order_item_histories"
	HistoryEntityName = "order item history"

	MenuItemTableName  = "menu_items"
	MenuItemEntityName = "menu item"
)

const (
	FieldID                = "id"
	FieldHotelID           = "hotel_id"
	FieldBookingID         = "booking_id"
	FieldIsWalkIn          = "is_walk_in"
	FieldCustomerName      = "customer_name"
	FieldCustomerPhone     = "customer_phone"
	FieldStatus            = "status"
	FieldNotes             = "notes"
	FieldChangeFoodRequest = "change_food_request"
	FieldServingDate       = "serving_date"
	FieldGuests            = "guests"
	FieldPromotionCode     = "promotion_code"
	FieldPromotionValue    = "promotion_value"
	FieldAdditionalValue   = "additional_value"
	FieldAdditionalNotes   = "additional_notes"
	FieldCreatedAt         = "created_at"

	FieldOrderID                       = "order_id"
	FieldMenuItemID                    = "menu_item_id"
	FieldQuantity                      = "quantity"
	FieldProposedReplacementMenuItemID = "proposed_replacement_menu_item_id"
	FieldReplacementConfirmedByGuest   = "replacement_confirmed_by_guest"

	FieldName     = "name"
	FieldCategory = "category"
	FieldIsActive = "is_active"
)

const (
	StatusNeedConfirmed = "need_confirmed"
	StatusConfirmed     = "confirmed"
	StatusInProgress    = "in_progress"
	StatusCompleted     = "completed"
	StatusCancelled     = "cancelled"
)

const (
	ItemStatusPending = "pending"
	ItemStatusServed  = "served"
	ItemStatusVoided  = "voided"
)

type Order struct {
	ID                string              `db:"id"`
	HotelID           string              `db:"hotel_id"`
	BookingID         *string             `db:"booking_id"`
	IsWalkIn          bool                `db:"is_walk_in"`
	CustomerName      *string             `db:"customer_name"`
	CustomerPhone     *string             `db:"customer_phone"`
	Status            string              `db:"status"`
	Notes             *string             `db:"notes"`
	ChangeFoodRequest *string             `db:"change_food_request"`
	ServingDate       *time.Time          `db:"serving_date"`
	Guests            *int                `db:"guests"`
	PromotionCode     *string             `db:"promotion_code"`
	PromotionValue    decimal.NullDecimal `db:"promotion_value"`
	AdditionalValue   decimal.Decimal     `db:"additional_value"`
	AdditionalNotes   *string             `db:"additional_notes"`
	model.Metadata
}

// ItemsTotal is the billable amount of the order: items that are not voided plus the additional value.
func (o Order) ItemsTotal(items []OrderItem) decimal.Decimal {
	return ItemsAmount(items).Add(o.AdditionalValue)
}

// ItemsAmount sums the items that are not voided.
func ItemsAmount(items []OrderItem) decimal.Decimal {
	total := decimal.Zero

	for _, item := range items {
		if item.Status != ItemStatusVoided {
			total = total.Add(item.Amount())
		}
	}

	return total
}

// OpenStatuses lists the statuses of orders still being served.
func OpenStatuses() []string {
	return []string{StatusNeedConfirmed, StatusConfirmed, StatusInProgress}
}

// IsClosed reports whether the order no longer accepts item changes.
func (o Order) IsClosed() bool {
	return o.Status == StatusCompleted || o.Status == StatusCancelled
}

type OrderItem struct {
	ID                            string          `db:"id"`
	OrderID                       string          `db:"order_id"`
	MenuItemID                    string          `db:"menu_item_id"`
	Name                          string          `db:"name"`
	Quantity                      int             `db:"quantity"`
	UnitPrice                     decimal.Decimal `db:"unit_price"`
	Status                        string          `db:"status"`
	ProposedReplacementMenuItemID *string         `db:"proposed_replacement_menu_item_id"`
	ReplacementConfirmedByGuest   *bool           `db:"replacement_confirmed_by_guest"`
	model.Metadata
}

func (i OrderItem) Amount() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Removable reports whether the item has not been served yet.
func (i OrderItem) Removable() bool {
	return i.Status == ItemStatusPending || i.Status == ItemStatusVoided
}

type OrderItemHistory struct {
	ID             string  `db:"id"`
	OrderID        string  `db:"order_id"`
	OldOrderItemID string  `db:"old_order_item_id"`
	NewOrderItemID string  `db:"new_order_item_id"`
	OldMenuItemID  string  `db:"old_menu_item_id"`
	NewMenuItemID  string  `db:"new_menu_item_id"`
	Reason         *string `db:"reason"`
	model.Metadata
}

type MenuItem struct {
	ID          string          `db:"id"`
	HotelID     string          `db:"hotel_id"`
	Name        string          `db:"name"`
	Category    *string         `db:"category"`
	Description *string         `db:"description"`
	ImageURL    *string         `db:"image_url"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
	IsActive    bool            `db:"is_active"`
	model.Metadata
}
