package service

import (
	"context"
	"fmt"
	guestModel "hotel/internal/domains/guest/model"
	"hotel/internal/domains/order/model"
	"hotel/internal/domains/order/model/dto"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	gModel "hotel/shared/model"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// CreateWalkIn opens an order for a customer without a booking and registers the customer as a hotel guest
// when the phone is not known yet.
func (s *serviceImpl) CreateWalkIn(ctx context.Context, req dto.CreateWalkInOrderRequest) (res dto.OrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateWalkInOrder")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	hotelID := shared.HotelIDFromContext(ctx, req.HotelID)
	order := s.newOrder(ctx, hotelID, req.ServingDate, req.Notes, req.Guests)
	order.IsWalkIn = true
	order.CustomerName = dto.Optional(req.CustomerName)
	order.CustomerPhone = dto.Optional(req.CustomerPhone)

	err = s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.repos.Order.InsertTx(ctx, tx, order); err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		if err := s.insertItems(ctx, tx, order, req.Items); err != nil {
			return err
		}

		return s.registerCustomer(ctx, tx, order)
	})
	if err != nil {
		return res, s.txError(err, "failed to create walk-in order")
	}

	s.changed(ctx)

	return s.load(ctx, order.ID)
}

// CreateForBooking opens an order billed to a booking; the customer is the booking's primary guest.
func (s *serviceImpl) CreateForBooking(ctx context.Context, req dto.CreateBookingOrderRequest) (res dto.OrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateBookingOrder")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	hotelID := shared.HotelIDFromContext(ctx, req.HotelID)
	order := s.newOrder(ctx, hotelID, req.ServingDate, req.Notes, req.Guests)

	err = s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		booking, err := s.findBooking(ctx, tx, hotelID, req.BookingID)
		if err != nil {
			return err
		}

		order.BookingID = &booking.ID
		order.CustomerName = dto.Optional(booking.PrimaryGuestName)
		order.CustomerPhone = booking.PrimaryGuestPhone

		if err = s.repos.Order.InsertTx(ctx, tx, order); err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		return s.insertItems(ctx, tx, order, req.Items)
	})
	if err != nil {
		return res, s.txError(err, "failed to create booking order")
	}

	s.changed(ctx)

	return s.load(ctx, order.ID)
}

// Update overwrites the order details and replaces all of its items.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateOrderRequest, id string) (res dto.OrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateOrder")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		order, err := s.lockOrder(ctx, tx, id)
		if err != nil {
			return err
		}

		if order.IsClosed() {
			return failure.BadRequestFromString(fmt.Sprintf("order is %s", order.Status)) // nolint:wrapcheck
		}

		fields := map[string]any{
			model.FieldNotes:         dto.Optional(req.Notes),
			model.FieldGuests:        req.Guests,
			constant.FieldModifiedAt: s.clock.Now(),
			constant.FieldModifiedBy: userFrom(ctx),
		}

		if serving := dto.ParseServingDate(req.ServingDate); serving != nil {
			fields[model.FieldServingDate] = *serving
		}

		if req.Status != "" {
			fields[model.FieldStatus] = req.Status
		}

		switch {
		case order.IsWalkIn:
			if name := dto.Optional(req.CustomerName); name != nil {
				fields[model.FieldCustomerName] = *name
			}

			fields[model.FieldCustomerPhone] = dto.Optional(req.CustomerPhone)
		case req.BookingID != "":
			booking, err := s.findBooking(ctx, tx, order.HotelID, req.BookingID)
			if err != nil {
				return err
			}

			fields[model.FieldBookingID] = booking.ID
			fields[model.FieldCustomerName] = booking.PrimaryGuestName
			fields[model.FieldCustomerPhone] = booking.PrimaryGuestPhone
		}

		if err = s.repos.Order.UpdateTx(ctx, tx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			return fmt.Errorf("failed to update order: %w", err)
		}

		if err = s.repos.Item.DeleteTx(ctx, tx, shared.FilterByID(id, model.FieldOrderID, model.ItemTableName)); err != nil {
			return fmt.Errorf("failed to delete order items: %w", err)
		}

		return s.insertItems(ctx, tx, order, req.Items)
	})
	if err != nil {
		return res, s.txError(err, "failed to update order")
	}

	s.changed(ctx)

	return s.load(ctx, id)
}

func (s *serviceImpl) AddItem(ctx context.Context, req dto.OrderItemRequest, orderID string) (res dto.OrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AddOrderItem")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		order, err := s.openOrder(ctx, tx, orderID)
		if err != nil {
			return err
		}

		return s.insertItems(ctx, tx, order, []dto.OrderItemRequest{req})
	})
	if err != nil {
		return res, s.txError(err, "failed to add order item")
	}

	s.changed(ctx)

	return s.load(ctx, orderID)
}

func (s *serviceImpl) UpdateItem(ctx context.Context, req dto.UpdateItemRequest, orderID, itemID string) (res dto.OrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateOrderItem")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := s.lockOrder(ctx, tx, orderID); err != nil {
			return err
		}

		item, err := s.findItem(ctx, tx, orderID, itemID)
		if err != nil {
			return err
		}

		fields := map[string]any{
			constant.FieldModifiedAt: s.clock.Now(),
			constant.FieldModifiedBy: userFrom(ctx),
		}

		if req.Quantity != nil {
			fields[model.FieldQuantity] = *req.Quantity
		}

		if req.Status != "" {
			fields[model.FieldStatus] = req.Status
		}

		if req.ProposedReplacementMenuItemID != "" {
			fields[model.FieldProposedReplacementMenuItemID] = req.ProposedReplacementMenuItemID
		}

		if req.ReplacementConfirmedByGuest != nil {
			fields[model.FieldReplacementConfirmedByGuest] = *req.ReplacementConfirmedByGuest
		}

		if err = s.repos.Item.UpdateTx(ctx, tx, fields, shared.FilterByID(item.ID, model.FieldID, model.ItemTableName)); err != nil {
			return fmt.Errorf("failed to update order item: %w", err)
		}

		return nil
	})
	if err != nil {
		return res, s.txError(err, "failed to update order item")
	}

	s.changed(ctx)

	return s.load(ctx, orderID)
}

// RemoveItem deletes an item that has not been served.
func (s *serviceImpl) RemoveItem(ctx context.Context, orderID, itemID string) (res dto.OrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RemoveOrderItem")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := s.lockOrder(ctx, tx, orderID); err != nil {
			return err
		}

		item, err := s.findItem(ctx, tx, orderID, itemID)
		if err != nil {
			return err
		}

		if !item.Removable() {
			return failure.BadRequestFromString("only pending or voided items can be removed") // nolint:wrapcheck
		}

		if err = s.repos.Item.DeleteTx(ctx, tx, shared.FilterByID(item.ID, model.FieldID, model.ItemTableName)); err != nil {
			return fmt.Errorf("failed to delete order item: %w", err)
		}

		return nil
	})
	if err != nil {
		return res, s.txError(err, "failed to remove order item")
	}

	s.changed(ctx)

	return s.load(ctx, orderID)
}

// ReplaceItem voids an item, adds the new menu item in its place and records the swap.
// The quantity defaults to the one of the voided item.
func (s *serviceImpl) ReplaceItem(ctx context.Context, req dto.ReplaceItemRequest, orderID, itemID string) (res dto.OrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ReplaceOrderItem")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		order, err := s.openOrder(ctx, tx, orderID)
		if err != nil {
			return err
		}

		old, err := s.findItem(ctx, tx, orderID, itemID)
		if err != nil {
			return err
		}

		if old.Status == model.ItemStatusVoided {
			return failure.BadRequestFromString("order item is already voided") // nolint:wrapcheck
		}

		menus, err := s.activeMenu(ctx, tx, order.HotelID, []string{req.NewMenuItemID})
		if err != nil {
			return err
		}

		quantity := old.Quantity
		if req.Quantity != nil {
			quantity = max(*req.Quantity, 1)
		}

		user, now := userFrom(ctx), s.clock.Now()
		replacement := newItem(order.ID, menus[req.NewMenuItemID], quantity, gModel.NewMetadata(user, now))

		fields := map[string]any{
			model.FieldStatus:        model.ItemStatusVoided,
			constant.FieldModifiedAt: now,
			constant.FieldModifiedBy: user,
		}

		if err = s.repos.Item.UpdateTx(ctx, tx, fields, shared.FilterByID(old.ID, model.FieldID, model.ItemTableName)); err != nil {
			return fmt.Errorf("failed to void order item: %w", err)
		}

		if err = s.repos.Item.InsertTx(ctx, tx, replacement); err != nil {
			return fmt.Errorf("failed to add replacement item: %w", err)
		}

		history := model.OrderItemHistory{
			ID:             uuid.NewString(),
			OrderID:        order.ID,
			OldOrderItemID: old.ID,
			NewOrderItemID: replacement.ID,
			OldMenuItemID:  old.MenuItemID,
			NewMenuItemID:  replacement.MenuItemID,
			Reason:         dto.Optional(req.Reason),
			Metadata:       gModel.NewMetadata(user, now),
		}

		if err = s.repos.History.InsertTx(ctx, tx, history); err != nil {
			return fmt.Errorf("failed to record item replacement: %w", err)
		}

		return nil
	})
	if err != nil {
		return res, s.txError(err, "failed to replace order item")
	}

	s.changed(ctx)

	return s.load(ctx, orderID)
}

func (s *serviceImpl) newOrder(ctx context.Context, hotelID, servingDate, notes string, guests *int) model.Order {
	return model.Order{
		ID:          uuid.NewString(),
		HotelID:     hotelID,
		Status:      model.StatusNeedConfirmed,
		Notes:       dto.Optional(notes),
		ServingDate: dto.ParseServingDate(servingDate),
		Guests:      guests,
		Metadata:    gModel.NewMetadata(userFrom(ctx), s.clock.Now()),
	}
}

// openOrder locks an order that still accepts item changes.
func (s *serviceImpl) openOrder(ctx context.Context, tx *sqlx.Tx, id string) (model.Order, error) {
	order, err := s.lockOrder(ctx, tx, id)
	if err != nil {
		return order, err
	}

	if order.IsClosed() {
		return order, failure.BadRequestFromString(fmt.Sprintf("order is %s", order.Status)) // nolint:wrapcheck
	}

	return order, nil
}

func (s *serviceImpl) findItem(ctx context.Context, tx *sqlx.Tx, orderID, itemID string) (model.OrderItem, error) {
	filter := shared.FilterAnd(
		gDto.Filter{Field: model.FieldID, Value: itemID, Operator: gDto.FilterOperatorEq, Table: model.ItemTableName},
		gDto.Filter{Field: model.FieldOrderID, Value: orderID, Operator: gDto.FilterOperatorEq, Table: model.ItemTableName},
	)

	item, err := s.repos.Item.GetTx(ctx, tx, filter)
	if err != nil {
		return item, fmt.Errorf("failed to get order item: %w", err)
	}

	if item.ID == "" {
		return item, failure.NotFound("order item not found") // nolint:wrapcheck
	}

	return item, nil
}

// insertItems prices the requested items from the active menu of the order's hotel.
func (s *serviceImpl) insertItems(ctx context.Context, tx *sqlx.Tx, order model.Order, reqs []dto.OrderItemRequest) error {
	if len(reqs) == 0 {
		return nil
	}

	ids := make([]string, len(reqs))
	for i, req := range reqs {
		ids[i] = req.MenuItemID
	}

	menus, err := s.activeMenu(ctx, tx, order.HotelID, ids)
	if err != nil {
		return err
	}

	metadata := gModel.NewMetadata(userFrom(ctx), s.clock.Now())

	items := make([]model.OrderItem, len(reqs))
	for i, req := range reqs {
		items[i] = newItem(order.ID, menus[req.MenuItemID], req.Quantity, metadata)
	}

	if err = s.repos.Item.InsertBulkTx(ctx, tx, items); err != nil {
		return fmt.Errorf("failed to create order items: %w", err)
	}

	return nil
}

// activeMenu loads the requested menu items; each must be active and belong to the hotel.
func (s *serviceImpl) activeMenu(ctx context.Context, tx *sqlx.Tx, hotelID string, ids []string) (map[string]model.MenuItem, error) {
	filter := shared.FilterAnd(
		gDto.Filter{Field: model.FieldID, Value: ids, Operator: gDto.FilterOperatorIn, Table: model.MenuItemTableName},
		gDto.Filter{Field: model.FieldHotelID, Value: hotelID, Operator: gDto.FilterOperatorEq, Table: model.MenuItemTableName},
		gDto.Filter{Field: model.FieldIsActive, Value: true, Operator: gDto.FilterOperatorEq, Table: model.MenuItemTableName},
	)

	found, err := s.repos.MenuItem.GetAllTx(ctx, tx, gDto.QueryParams{}, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get menu items: %w", err)
	}

	menus := make(map[string]model.MenuItem, len(found))
	for _, menu := range found {
		menus[menu.ID] = menu
	}

	for _, id := range ids {
		if _, ok := menus[id]; !ok {
			return nil, failure.BadRequestFromString(fmt.Sprintf("menu item %s not found or inactive", id)) // nolint:wrapcheck
		}
	}

	return menus, nil
}

// registerCustomer adds the walk-in customer to the hotel guests unless the phone is already known.
func (s *serviceImpl) registerCustomer(ctx context.Context, tx *sqlx.Tx, order model.Order) error {
	if order.CustomerPhone == nil || order.CustomerName == nil {
		return nil
	}

	filter := shared.FilterAnd(
		gDto.Filter{Field: guestModel.FieldPhone, Value: *order.CustomerPhone, Operator: gDto.FilterOperatorEq, Table: guestModel.TableName},
		gDto.Filter{Field: guestModel.FieldHotelID, Value: order.HotelID, Operator: gDto.FilterOperatorEq, Table: guestModel.TableName},
	)

	guest, err := s.guestRepo.GetTx(ctx, tx, filter, guestModel.FieldID)
	if err != nil {
		return fmt.Errorf("failed to find guest by phone: %w", err)
	}

	if guest.ID != "" {
		return nil
	}

	guest = guestModel.Guest{
		ID:       uuid.NewString(),
		HotelID:  order.HotelID,
		FullName: strings.TrimSpace(*order.CustomerName),
		Phone:    order.CustomerPhone,
		Metadata: order.Metadata,
	}

	if err = s.guestRepo.InsertTx(ctx, tx, guest); err != nil {
		return fmt.Errorf("failed to create guest: %w", err)
	}

	return nil
}

func newItem(orderID string, menu model.MenuItem, quantity int, metadata gModel.Metadata) model.OrderItem {
	return model.OrderItem{
		ID:         uuid.NewString(),
		OrderID:    orderID,
		MenuItemID: menu.ID,
		Name:       menu.Name,
		Quantity:   quantity,
		UnitPrice:  menu.UnitPrice,
		Status:     model.ItemStatusPending,
		Metadata:   metadata,
	}
}
