package dto

import (
	"hotel/internal/domains/order/model"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type OrderItemRequest struct {
	MenuItemID string `json:"menu_item_id" validate:"required,uuid"`
	Quantity   int    `json:"quantity"     validate:"required,min=1"`
}

type CreateWalkInOrderRequest struct {
	HotelID       string             `json:"hotel_id"       validate:"required,uuid"`
	CustomerName  string             `json:"customer_name"  validate:"required,max=255"`
	CustomerPhone string             `json:"customer_phone" validate:"omitempty,max=32"`
	ServingDate   string             `json:"serving_date"   validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Notes         string             `json:"notes"`
	Guests        *int               `json:"guests"         validate:"omitempty,min=1"`
	Items         []OrderItemRequest `json:"items"          validate:"dive"`
}

type CreateBookingOrderRequest struct {
	HotelID     string             `json:"hotel_id"     validate:"required,uuid"`
	BookingID   string             `json:"booking_id"   validate:"required,uuid"`
	ServingDate string             `json:"serving_date" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Notes       string             `json:"notes"`
	Guests      *int               `json:"guests"       validate:"omitempty,min=1"`
	Items       []OrderItemRequest `json:"items"        validate:"dive"`
}

// UpdateOrderRequest replaces the details and the items of an order.
// BookingID moves a booking order to another booking; walk-in orders take the customer fields instead.
type UpdateOrderRequest struct {
	BookingID     string             `json:"booking_id"     validate:"omitempty,uuid"`
	CustomerName  string             `json:"customer_name"  validate:"omitempty,max=255"`
	CustomerPhone string             `json:"customer_phone" validate:"omitempty,max=32"`
	ServingDate   string             `json:"serving_date"   validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Status        string             `json:"status"         validate:"omitempty,oneof=need_confirmed confirmed in_progress completed cancelled"`
	Notes         string             `json:"notes"`
	Guests        *int               `json:"guests"         validate:"omitempty,min=1"`
	Items         []OrderItemRequest `json:"items"          validate:"dive"`
}

type UpdateItemRequest struct {
	Quantity                      *int   `json:"quantity"                          validate:"omitempty,min=1"`
	Status                        string `json:"status"                            validate:"omitempty,oneof=pending served voided"`
	ProposedReplacementMenuItemID string `json:"proposed_replacement_menu_item_id" validate:"omitempty,uuid"`
	ReplacementConfirmedByGuest   *bool  `json:"replacement_confirmed_by_guest"`
}

type ReplaceItemRequest struct {
	NewMenuItemID string `json:"new_menu_item_id" validate:"required,uuid"`
	Quantity      *int   `json:"quantity"`
	Reason        string `json:"reason"           validate:"omitempty,max=500"`
}

type UpdateStatusRequest struct {
	Status string  `json:"status" validate:"required,oneof=need_confirmed confirmed in_progress completed cancelled"`
	Notes  *string `json:"notes"`
}

type UpdatePromotionRequest struct {
	PromotionCode  string          `json:"promotion_code"  validate:"omitempty,max=64"`
	PromotionValue decimal.Decimal `json:"promotion_value" swaggertype:"number"`
}

type CreateMenuItemRequest struct {
	HotelID     string          `json:"hotel_id"    validate:"required,uuid"`
	Name        string          `json:"name"        validate:"required,max=255"`
	Category    string          `json:"category"    validate:"omitempty,max=64"`
	Description string          `json:"description"`
	ImageURL    string          `json:"image_url"   validate:"omitempty,url"`
	UnitPrice   decimal.Decimal `json:"unit_price"  swaggertype:"number" validate:"gte=0"`
}

type UpdateMenuItemRequest struct {
	Name        string           `db:"name"        json:"name"        validate:"omitempty,max=255"`
	Category    string           `db:"category"    json:"category"    validate:"omitempty,max=64"`
	Description string           `db:"description" json:"description"`
	ImageURL    string           `db:"image_url"   json:"image_url"   validate:"omitempty,url"`
	UnitPrice   *decimal.Decimal `db:"unit_price"  json:"unit_price"  swaggertype:"number" validate:"omitempty,gte=0"`
	IsActive    *bool            `db:"is_active"   json:"is_active"`
}

type ItemResponse struct {
	ID                            string          `json:"id"`
	MenuItemID                    string          `json:"menu_item_id"`
	Name                          string          `json:"name"`
	Quantity                      int             `json:"quantity"`
	UnitPrice                     decimal.Decimal `json:"unit_price"                        swaggertype:"number"`
	Amount                        decimal.Decimal `json:"amount"                            swaggertype:"number"`
	Status                        string          `json:"status"`
	ProposedReplacementMenuItemID *string         `json:"proposed_replacement_menu_item_id"`
	ReplacementConfirmedByGuest   *bool           `json:"replacement_confirmed_by_guest"`
}

func (r *ItemResponse) FromModel(item model.OrderItem) {
	r.ID = item.ID
	r.MenuItemID = item.MenuItemID
	r.Name = item.Name
	r.Quantity = item.Quantity
	r.UnitPrice = item.UnitPrice
	r.Amount = item.Amount()
	r.Status = item.Status
	r.ProposedReplacementMenuItemID = item.ProposedReplacementMenuItemID
	r.ReplacementConfirmedByGuest = item.ReplacementConfirmedByGuest
}

type HistoryResponse struct {
	OldOrderItemID string  `json:"old_order_item_id"`
	NewOrderItemID string  `json:"new_order_item_id"`
	OldMenuItemID  string  `json:"old_menu_item_id"`
	NewMenuItemID  string  `json:"new_menu_item_id"`
	Reason         *string `json:"reason"`
	ChangedAt      string  `json:"changed_at"`
	ChangedBy      string  `json:"changed_by"`
}

func (r *HistoryResponse) FromModel(history model.OrderItemHistory) {
	r.OldOrderItemID = history.OldOrderItemID
	r.NewOrderItemID = history.NewOrderItemID
	r.OldMenuItemID = history.OldMenuItemID
	r.NewMenuItemID = history.NewMenuItemID
	r.Reason = history.Reason
	r.ChangedAt = history.CreatedAt.Format(constant.DateFormat)
	r.ChangedBy = history.CreatedBy
}

type OrderResponse struct {
	ID                string            `json:"id"`
	HotelID           string            `json:"hotel_id"`
	BookingID         *string           `json:"booking_id"`
	IsWalkIn          bool              `json:"is_walk_in"`
	CustomerName      *string           `json:"customer_name"`
	CustomerPhone     *string           `json:"customer_phone"`
	Status            string            `json:"status"`
	Notes             *string           `json:"notes"`
	ChangeFoodRequest *string           `json:"change_food_request"`
	ServingDate       *string           `json:"serving_date"`
	Guests            *int              `json:"guests"`
	PromotionCode     *string           `json:"promotion_code"`
	PromotionValue    decimal.Decimal   `json:"promotion_value"  swaggertype:"number"`
	AdditionalValue   decimal.Decimal   `json:"additional_value" swaggertype:"number"`
	AdditionalNotes   *string           `json:"additional_notes"`
	ItemsCount        int               `json:"items_count"`
	ItemsTotal        decimal.Decimal   `json:"items_total"      swaggertype:"number"`
	Items             []ItemResponse    `json:"items,omitempty"`
	Histories         []HistoryResponse `json:"histories,omitempty"`
	gDto.Metadata
}

func (r *OrderResponse) FromModel(order model.Order) {
	r.ID = order.ID
	r.HotelID = order.HotelID
	r.BookingID = order.BookingID
	r.IsWalkIn = order.IsWalkIn
	r.CustomerName = order.CustomerName
	r.CustomerPhone = order.CustomerPhone
	r.Status = order.Status
	r.Notes = order.Notes
	r.ChangeFoodRequest = order.ChangeFoodRequest
	r.Guests = order.Guests
	r.PromotionCode = order.PromotionCode
	r.PromotionValue = order.PromotionValue.Decimal
	r.AdditionalValue = order.AdditionalValue
	r.AdditionalNotes = order.AdditionalNotes
	r.ItemsTotal = order.AdditionalValue
	r.Metadata.FromModel(order.Metadata)

	if order.ServingDate != nil {
		serving := order.ServingDate.Format(constant.DateFormat)
		r.ServingDate = &serving
	}
}

func (r *OrderResponse) WithItems(order model.Order, items []model.OrderItem) {
	r.ItemsCount = len(items)
	r.ItemsTotal = order.ItemsTotal(items)

	r.Items = make([]ItemResponse, len(items))
	for i, item := range items {
		r.Items[i].FromModel(item)
	}
}

func (r *OrderResponse) WithHistories(histories []model.OrderItemHistory) {
	r.Histories = make([]HistoryResponse, len(histories))
	for i, history := range histories {
		r.Histories[i].FromModel(history)
	}
}

type GetOrdersResponse struct {
	Orders    []OrderResponse `json:"orders"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

// FromModels maps a page of orders; items are grouped by order id.
func (r *GetOrdersResponse) FromModels(models []model.Order, items map[string][]model.OrderItem, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Orders = make([]OrderResponse, len(models))
	for i, mod := range models {
		r.Orders[i].FromModel(mod)
		r.Orders[i].WithItems(mod, items[mod.ID])
	}
}

type MenuItemResponse struct {
	ID          string          `json:"id"`
	HotelID     string          `json:"hotel_id"`
	Name        string          `json:"name"`
	Category    *string         `json:"category"`
	Description *string         `json:"description"`
	ImageURL    *string         `json:"image_url"`
	UnitPrice   decimal.Decimal `json:"unit_price"  swaggertype:"number"`
	IsActive    bool            `json:"is_active"`
	gDto.Metadata
}

func (r *MenuItemResponse) FromModel(item model.MenuItem) {
	r.ID = item.ID
	r.HotelID = item.HotelID
	r.Name = item.Name
	r.Category = item.Category
	r.Description = item.Description
	r.ImageURL = item.ImageURL
	r.UnitPrice = item.UnitPrice
	r.IsActive = item.IsActive
	r.Metadata.FromModel(item.Metadata)
}

type GetMenuItemsResponse struct {
	MenuItems []MenuItemResponse `json:"menu_items"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetMenuItemsResponse) FromModels(models []model.MenuItem, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.MenuItems = make([]MenuItemResponse, len(models))
	for i, mod := range models {
		r.MenuItems[i].FromModel(mod)
	}
}

// ListOrdersQuery holds the list filters accepted by the orders endpoint.
type ListOrdersQuery struct {
	HotelID   string
	BookingID string
	WalkIn    string
	Status    string
	Search    string
	// Active keeps the orders that are neither completed nor cancelled.
	Active bool
}

func (q ListOrdersQuery) ToFilter() gDto.FilterGroup {
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

	if walkIn := shared.ConvertStringToBool(q.WalkIn); walkIn != nil {
		filters = append(filters, gDto.Filter{Field: model.FieldIsWalkIn, Value: *walkIn, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if search := strings.TrimSpace(q.Search); search != "" {
		filters = append(filters, gDto.FilterGroup{
			Filters: []any{
				gDto.Filter{ArgName: "search_name", Field: model.FieldCustomerName, Value: search, Operator: gDto.FilterOperatorLike, Table: model.TableName},
				gDto.Filter{ArgName: "search_phone", Field: model.FieldCustomerPhone, Value: search, Operator: gDto.FilterOperatorLike, Table: model.TableName},
			},
			Operator: gDto.FilterGroupOperatorOr,
		})
	}

	if q.Active {
		filters = append(filters, gDto.Filter{
			ArgName:  "open_statuses",
			Field:    model.FieldStatus,
			Value:    model.OpenStatuses(),
			Operator: gDto.FilterOperatorIn,
			Table:    model.TableName,
		})
	}

	return shared.FilterAnd(filters...)
}

// ListMenuItemsQuery holds the list filters accepted by the menu endpoint.
type ListMenuItemsQuery struct {
	HotelID  string
	Category string
	Name     string
	Active   string
}

func (q ListMenuItemsQuery) ToFilter() gDto.FilterGroup {
	filters := []any{}

	if q.HotelID != "" {
		filters = append(filters, gDto.Filter{Field: model.FieldHotelID, Value: q.HotelID, Operator: gDto.FilterOperatorEq, Table: model.MenuItemTableName})
	}

	if q.Category != "" {
		filters = append(filters, gDto.Filter{Field: model.FieldCategory, Value: q.Category, Operator: gDto.FilterOperatorEq, Table: model.MenuItemTableName})
	}

	if q.Name != "" {
		filters = append(filters, gDto.Filter{Field: model.FieldName, Value: q.Name, Operator: gDto.FilterOperatorLike, Table: model.MenuItemTableName})
	}

	if active := shared.ConvertStringToBool(q.Active); active != nil {
		filters = append(filters, gDto.Filter{Field: model.FieldIsActive, Value: *active, Operator: gDto.FilterOperatorEq, Table: model.MenuItemTableName})
	}

	return shared.FilterAnd(filters...)
}

// ParseServingDate returns nil for an empty value; the value is validated as RFC 3339 beforehand.
func ParseServingDate(value string) *time.Time {
	if value == "" {
		return nil
	}

	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil
	}

	return &parsed
}

func Optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	return &value
}
