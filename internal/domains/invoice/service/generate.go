package service

import (
	"context"
	"fmt"
	bookingModel "hotel/internal/domains/booking/model"
	bookingDto "hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/invoice/model"
	"hotel/internal/domains/invoice/model/dto"
	orderModel "hotel/internal/domains/order/model"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	gModel "hotel/shared/model"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// CreateBookingInvoice checks the booking out and replaces its draft invoice with a freshly priced one.
func (s *serviceImpl) CreateBookingInvoice(ctx context.Context, req dto.CreateBookingInvoiceRequest) (res dto.InvoiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateBookingInvoice")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("booking.id", req.BookingID)

	booking, err := s.findBooking(ctx, req.BookingID)
	if err != nil {
		return res, err
	}

	var promo *model.Promotion

	if code := strings.TrimSpace(req.DiscountCode); code != "" {
		found, err := s.findPromotion(ctx, booking.HotelID, code, model.ScopeBooking)
		if err != nil {
			return res, err
		}

		promo = &found
	}

	var (
		invoice model.Invoice
		lines   []model.InvoiceLine
	)

	err = s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		if req.AdditionalAmount.Valid || req.AdditionalBookingAmount.Valid {
			update := bookingDto.UpdateBookingRequest{
				AdditionalAmount:        req.AdditionalAmount,
				AdditionalNotes:         req.AdditionalNotes,
				AdditionalBookingAmount: req.AdditionalBookingAmount,
				AdditionalBookingNotes:  req.AdditionalBookingNotes,
			}

			if err = s.booking.UpdateTx(ctx, tx, update, booking.ID); err != nil {
				return err //nolint:wrapcheck
			}
		}

		checkOut := bookingDto.CheckOutRequest{CheckOutAt: req.CheckOutAt, FinalPayment: req.FinalPayment}
		if _, err = s.booking.CheckOutTx(ctx, tx, checkOut, booking.ID); err != nil {
			return err //nolint:wrapcheck
		}

		filter := shared.FilterByID(booking.ID, bookingModel.FieldID, bookingModel.TableName)

		booking, err = s.bookingRepos.Booking.GetForUpdateTx(ctx, tx, filter)
		if err != nil {
			return fmt.Errorf("failed to lock booking: %w", err)
		}

		roomTypes, err := s.bookingRepos.RoomType.GetAllTx(ctx, tx, gDto.QueryParams{}, filterByBooking(booking.ID, bookingModel.RoomTypeTableName))
		if err != nil {
			return fmt.Errorf("failed to get booking room types: %w", err)
		}

		rooms, err := s.bookingRepos.Room.GetAllTx(ctx, tx, gDto.QueryParams{}, filterByBooking(booking.ID, bookingModel.RoomTypeTableName))
		if err != nil {
			return fmt.Errorf("failed to get booking rooms: %w", err)
		}

		invoice = s.newInvoice(ctx, booking.HotelID, req.Notes)
		invoice.BookingID = &booking.ID
		invoice.AdditionalAmount = booking.AdditionalAmount

		lines = bookingLines(invoice, booking, roomTypes, rooms, promo)
		invoice.Totals(lines, s.taxRate())
		invoice.TotalAmount = booking.TotalAmount

		draft := shared.FilterAnd(
			gDto.Filter{Field: model.FieldBookingID, Value: booking.ID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldStatus, Value: model.StatusDraft, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		)

		if err = s.save(ctx, tx, draft, invoice, lines); err != nil {
			return err
		}

		fields := map[string]any{
			bookingModel.FieldDiscountAmount: invoice.DiscountAmount,
			bookingModel.FieldPromotionCode:  nil,
			bookingModel.FieldPromotionValue: nil,
			constant.FieldModifiedAt:         invoice.ModifiedAt,
			constant.FieldModifiedBy:         invoice.ModifiedBy,
		}

		if promo != nil {
			fields[bookingModel.FieldPromotionCode] = promo.Code
			fields[bookingModel.FieldPromotionValue] = promo.Value
		}

		if err = s.bookingRepos.Booking.UpdateTx(ctx, tx, fields, filter); err != nil {
			return fmt.Errorf("failed to update booking promotion: %w", err)
		}

		return nil
	})
	if err != nil {
		return res, s.txError(err, "failed to create booking invoice")
	}

	s.booking.CheckedOut(ctx, booking)
	s.created(ctx, invoice)

	res.FromModel(invoice)
	res.WithLines(lines)

	return res, nil
}

// CreateWalkInInvoice bills a walk-in dining order and completes it.
func (s *serviceImpl) CreateWalkInInvoice(ctx context.Context, req dto.CreateWalkInInvoiceRequest) (res dto.InvoiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateWalkInInvoice")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	hotelID := shared.HotelIDFromContext(ctx, req.HotelID)

	if req.AdditionalValue.IsNegative() {
		return res, failure.BadRequestFromString("additional value must not be negative") // nolint:wrapcheck
	}

	scope.SetAttribute("order.id", req.OrderID)

	order, items, err := s.findWalkInOrder(ctx, hotelID, req.OrderID)
	if err != nil {
		return res, err
	}

	var promo *model.Promotion

	if code := strings.TrimSpace(req.DiscountCode); code != "" {
		found, err := s.findPromotion(ctx, hotelID, code, model.ScopeFood)
		if err != nil {
			return res, err
		}

		promo = &found
	}

	invoice := s.newInvoice(ctx, hotelID, req.AdditionalNotes)
	invoice.OrderID = &order.ID
	invoice.IsWalkIn = true
	invoice.AdditionalAmount = req.AdditionalValue

	lines := walkInLines(invoice, items, promo, req.AdditionalValue, req.AdditionalNotes)

	invoice.Totals(lines, s.taxRate())
	invoice.TotalAmount = invoice.SubTotal.Sub(invoice.DiscountAmount)
	scope.SetAttributes(map[string]any{"invoice.total": invoice.TotalAmount, "invoice.lines": len(lines)})

	err = s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		draft := shared.FilterAnd(
			gDto.Filter{Field: model.FieldHotelID, Value: hotelID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldOrderID, Value: order.ID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldStatus, Value: model.StatusDraft, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		)

		if err := s.save(ctx, tx, draft, invoice, lines); err != nil {
			return err
		}

		return s.completeOrder(ctx, tx, order.ID, promo, invoice.DiscountAmount, req)
	})
	if err != nil {
		return res, s.txError(err, "failed to create walk-in invoice")
	}

	s.created(ctx, invoice)

	res.FromModel(invoice)
	res.WithLines(lines)

	return res, nil
}

// findWalkInOrder loads a billable walk-in order of the hotel with its items.
func (s *serviceImpl) findWalkInOrder(ctx context.Context, hotelID, orderID string) (orderModel.Order, []orderModel.OrderItem, error) {
	filter := shared.FilterAnd(
		gDto.Filter{Field: orderModel.FieldID, Value: orderID, Operator: gDto.FilterOperatorEq, Table: orderModel.TableName},
		gDto.Filter{Field: orderModel.FieldHotelID, Value: hotelID, Operator: gDto.FilterOperatorEq, Table: orderModel.TableName},
	)

	order, err := s.orderRepos.Order.Get(ctx, filter)
	if err != nil {
		return order, nil, fmt.Errorf("failed to get order: %w", err)
	}

	switch {
	case order.ID == "":
		return order, nil, failure.NotFound("order not found") // nolint:wrapcheck
	case !order.IsWalkIn:
		return order, nil, failure.BadRequestFromString("order belongs to a booking and is billed with its invoice") // nolint:wrapcheck
	case order.Status == orderModel.StatusCancelled:
		return order, nil, failure.BadRequestFromString("order is cancelled") // nolint:wrapcheck
	}

	items, err := s.orderRepos.Item.GetAll(ctx, gDto.QueryParams{
		SortBy:  orderModel.ItemTableName + "." + orderModel.FieldCreatedAt,
		SortDir: gDto.SortDirAsc,
	}, shared.FilterByID(order.ID, orderModel.FieldOrderID, orderModel.ItemTableName))
	if err != nil {
		return order, nil, fmt.Errorf("failed to get order items: %w", err)
	}

	if orderModel.ItemsAmount(items).IsZero() {
		return order, nil, failure.BadRequestFromString("order has no billable items") // nolint:wrapcheck
	}

	return order, items, nil
}

// completeOrder stores the billed promotion and extras on the order and closes it.
func (s *serviceImpl) completeOrder(
	ctx context.Context,
	tx *sqlx.Tx,
	orderID string,
	promo *model.Promotion,
	discount decimal.Decimal,
	req dto.CreateWalkInInvoiceRequest,
) error {
	fields := map[string]any{
		orderModel.FieldStatus:          orderModel.StatusCompleted,
		orderModel.FieldPromotionCode:   nil,
		orderModel.FieldPromotionValue:  nil,
		orderModel.FieldAdditionalValue: req.AdditionalValue,
		constant.FieldModifiedAt:        s.clock.Now(),
		constant.FieldModifiedBy:        userFrom(ctx),
	}

	if promo != nil {
		fields[orderModel.FieldPromotionCode] = promo.Code
		fields[orderModel.FieldPromotionValue] = discount
	}

	if notes := strings.TrimSpace(req.AdditionalNotes); notes != "" {
		fields[orderModel.FieldAdditionalNotes] = notes
	}

	filter := shared.FilterByID(orderID, orderModel.FieldID, orderModel.TableName)

	if err := s.orderRepos.Order.UpdateTx(ctx, tx, fields, filter); err != nil {
		return fmt.Errorf("failed to complete order: %w", err)
	}

	return nil
}

// save removes the drafts matched by previous and stores invoice with its lines.
func (s *serviceImpl) save(ctx context.Context, tx *sqlx.Tx, previous gDto.FilterGroup, invoice model.Invoice, lines []model.InvoiceLine) error {
	if err := s.repos.Invoice.DeleteTx(ctx, tx, previous); err != nil {
		return fmt.Errorf("failed to delete draft invoice: %w", err)
	}

	if err := s.repos.Invoice.InsertTx(ctx, tx, invoice); err != nil {
		return fmt.Errorf("failed to create invoice: %w", err)
	}

	if err := s.repos.Line.InsertBulkTx(ctx, tx, lines); err != nil {
		return fmt.Errorf("failed to create invoice lines: %w", err)
	}

	return nil
}

func (s *serviceImpl) findBooking(ctx context.Context, id string) (bookingModel.Booking, error) {
	filter := shared.ScopeToHotel(ctx, shared.FilterByID(id, bookingModel.FieldID, bookingModel.TableName), bookingModel.TableName)

	booking, err := s.bookingRepos.Booking.Get(ctx, filter)
	if err != nil {
		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == "" {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) newInvoice(ctx context.Context, hotelID, notes string) model.Invoice {
	invoice := model.Invoice{
		ID:            uuid.NewString(),
		HotelID:       hotelID,
		InvoiceNumber: s.invoiceNumber(),
		Status:        model.StatusDraft,
		VatIncluded:   true,
		Metadata:      gModel.NewMetadata(userFrom(ctx), s.clock.Now()),
	}

	if notes = strings.TrimSpace(notes); notes != "" {
		invoice.Notes = &notes
	}

	return invoice
}

// bookingLines prices every booked room type, discounts the room charges and appends the extra charges of the booking.
func bookingLines(
	invoice model.Invoice,
	booking bookingModel.Booking,
	roomTypes []bookingModel.BookingRoomType,
	rooms []bookingModel.BookingRoom,
	promo *model.Promotion,
) []model.InvoiceLine {
	lines := make([]model.InvoiceLine, 0, len(roomTypes)+3) //nolint:mnd
	roomCharges := decimal.Zero

	for _, roomType := range roomTypes {
		count := max(activeRooms(rooms, roomType.ID), 1)
		nights := roomType.Nights()
		amount := roomType.Price.Mul(decimal.NewFromInt(int64(nights * count)))

		description := fmt.Sprintf("%s x%d, %d night(s)", roomType.RoomTypeName, count, nights)
		lines = append(lines, newLine(invoice, description, amount, model.SourceRoomCharge, &roomType.ID))
		roomCharges = roomCharges.Add(amount)
	}

	if promo != nil {
		if discount := promo.Discount(roomCharges); discount.IsPositive() {
			lines = append(lines, newLine(invoice, "Promotion "+promo.Code, discount.Neg(), model.SourceDiscount, &promo.ID))
		}
	}

	if !booking.AdditionalAmount.IsZero() {
		lines = append(lines, newLine(invoice, orText(booking.AdditionalNotes, "Additional charge"), booking.AdditionalAmount, model.SourceSurcharge, nil))
	}

	if !booking.AdditionalBookingAmount.IsZero() {
		lines = append(lines, newLine(invoice, orText(booking.AdditionalBookingNotes, "Additional booking charge"), booking.AdditionalBookingAmount, model.SourceSurcharge, nil))
	}

	return lines
}

// walkInLines bills every non-voided order item, discounts the food and appends the extra charge.
func walkInLines(
	invoice model.Invoice,
	items []orderModel.OrderItem,
	promo *model.Promotion,
	additional decimal.Decimal,
	additionalNotes string,
) []model.InvoiceLine {
	lines := make([]model.InvoiceLine, 0, len(items)+2) //nolint:mnd
	food := decimal.Zero

	for _, item := range items {
		if item.Status == orderModel.ItemStatusVoided {
			continue
		}

		description := fmt.Sprintf("%s x%d", item.Name, item.Quantity)
		lines = append(lines, newLine(invoice, description, item.Amount(), model.SourceFnb, &item.ID))
		food = food.Add(item.Amount())
	}

	if promo != nil {
		if discount := promo.Discount(food); discount.IsPositive() {
			lines = append(lines, newLine(invoice, "Promotion "+promo.Code, discount.Neg(), model.SourceDiscount, &promo.ID))
		}
	}

	if additional.IsPositive() {
		notes := strings.TrimSpace(additionalNotes)
		lines = append(lines, newLine(invoice, orText(&notes, "Additional charge"), additional, model.SourceSurcharge, nil))
	}

	return lines
}

func activeRooms(rooms []bookingModel.BookingRoom, bookingRoomTypeID string) int {
	count := 0

	for _, room := range rooms {
		if room.BookingRoomTypeID == bookingRoomTypeID && room.Status != bookingModel.RoomStatusCancelled {
			count++
		}
	}

	return count
}

func newLine(invoice model.Invoice, description string, amount decimal.Decimal, sourceType string, sourceID *string) model.InvoiceLine {
	return model.InvoiceLine{
		ID:          uuid.NewString(),
		InvoiceID:   invoice.ID,
		Description: description,
		Amount:      amount,
		SourceType:  sourceType,
		SourceID:    sourceID,
		Metadata:    invoice.Metadata,
	}
}

func filterByBooking(bookingID, table string) gDto.FilterGroup {
	return shared.FilterAnd(gDto.Filter{Field: bookingModel.FieldBookingID, Value: bookingID, Operator: gDto.FilterOperatorEq, Table: table})
}

func orText(value *string, fallback string) string {
	if value != nil && strings.TrimSpace(*value) != "" {
		return *value
	}

	return fallback
}
