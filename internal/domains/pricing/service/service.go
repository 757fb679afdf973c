package service

import (
	"context"
	"fmt"
	"hotel/infras/otel"
	rtModel "hotel/internal/domains/roomtype/model"
	rtRepo "hotel/internal/domains/roomtype/repository"
	"hotel/shared"
	"hotel/shared/clock"
	"hotel/shared/constant"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Stay is a booked room as seen by the pricing engine.
type Stay struct {
	RoomTypeID     string
	SnapshotPrice  decimal.Decimal
	StartDate      time.Time
	EndDate        time.Time
	ExtendedDate   *time.Time
	ActualCheckIn  *time.Time
	ActualCheckOut *time.Time
	Cancelled      bool
}

type Pricing interface {
	PriceStay(ctx context.Context, stay Stay) (decimal.Decimal, error)
	PriceBooking(ctx context.Context, stays []Stay) (decimal.Decimal, error)
	QuoteRange(ctx context.Context, roomTypeID string, snapshot decimal.Decimal, start, end time.Time, count int) (decimal.Decimal, error)
	NightlyRate(ctx context.Context, roomTypeID string, snapshot decimal.Decimal, day time.Time) (decimal.Decimal, error)
}

type serviceImpl struct {
	roomTypeRepo rtRepo.RoomType
	priceRepo    rtRepo.Price
	clock        clock.Clock
	otel         otel.Otel
}

func New(roomTypeRepo rtRepo.RoomType, priceRepo rtRepo.Price, clk clock.Clock, otel otel.Otel) Pricing {
	return &serviceImpl{
		roomTypeRepo: roomTypeRepo,
		priceRepo:    priceRepo,
		clock:        clk,
		otel:         otel,
	}
}

// rateCard resolves the nightly price of one room type over a date range.
type rateCard struct {
	base      decimal.NullDecimal
	snapshot  decimal.Decimal
	overrides map[string]decimal.Decimal
}

func (r rateCard) price(day time.Time) decimal.Decimal {
	if price, ok := r.overrides[day.Format(constant.DateOnly)]; ok {
		return price
	}

	if r.base.Valid {
		return r.base.Decimal
	}

	return r.snapshot
}

func (r rateCard) sum(from, to time.Time) decimal.Decimal {
	total := decimal.Zero

	for day := from; day.Before(to); day = clock.AddDays(day, 1) {
		total = total.Add(r.price(day))
	}

	return total
}

// Interval returns the nights a stay is charged for: [actual check-in ?? start, actual check-out ?? extended ?? end),
// widened to one night when empty.
func Interval(c clock.Clock, stay Stay) (from, to time.Time) {
	from = stay.StartDate
	if stay.ActualCheckIn != nil {
		from = clock.DateOf(c, *stay.ActualCheckIn)
	}

	to = stay.EndDate
	if stay.ExtendedDate != nil {
		to = *stay.ExtendedDate
	}

	if stay.ActualCheckOut != nil {
		to = clock.DateOf(c, *stay.ActualCheckOut)
	}

	if !to.After(from) {
		to = clock.AddDays(from, 1)
	}

	return from, to
}

func (s *serviceImpl) basePrice(ctx context.Context, roomTypeID string) decimal.NullDecimal {
	roomType, err := s.roomTypeRepo.Get(ctx, shared.FilterByID(roomTypeID, rtModel.FieldID, rtModel.TableName), rtModel.FieldID, rtModel.FieldBasePrice)
	if err != nil {
		log.Warn().Err(err).Str("room_type_id", roomTypeID).Msg("failed to get room type base price, using snapshot price")

		return decimal.NullDecimal{}
	}

	return roomType.BasePrice
}

func (s *serviceImpl) overrides(ctx context.Context, roomTypeID string, from, to time.Time) map[string]decimal.Decimal {
	prices, err := s.priceRepo.GetPrices(ctx, roomTypeID, from, to)
	if err != nil {
		log.Warn().Err(err).Str("room_type_id", roomTypeID).Msg("failed to get price overrides, using base price")

		return nil
	}

	return prices
}

func (s *serviceImpl) rateCard(ctx context.Context, roomTypeID string, snapshot decimal.Decimal, from, to time.Time) rateCard {
	return rateCard{
		base:      s.basePrice(ctx, roomTypeID),
		snapshot:  snapshot,
		overrides: s.overrides(ctx, roomTypeID, from, to),
	}
}

func (s *serviceImpl) PriceStay(ctx context.Context, stay Stay) (total decimal.Decimal, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".PriceStay")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = ctx.Err(); err != nil {
		return decimal.Zero, fmt.Errorf("failed to price stay: %w", err)
	}

	if stay.Cancelled {
		return decimal.Zero, nil
	}

	from, to := Interval(s.clock, stay)

	return s.rateCard(ctx, stay.RoomTypeID, stay.SnapshotPrice, from, to).sum(from, to), nil
}

func (s *serviceImpl) PriceBooking(ctx context.Context, stays []Stay) (total decimal.Decimal, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".PriceBooking")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	total = decimal.Zero

	for _, stay := range stays {
		price, err := s.PriceStay(ctx, stay)
		if err != nil {
			return decimal.Zero, err
		}

		total = total.Add(price)
	}

	return total, nil
}

func (s *serviceImpl) QuoteRange(ctx context.Context, roomTypeID string, snapshot decimal.Decimal, start, end time.Time, count int) (total decimal.Decimal, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".QuoteRange")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = ctx.Err(); err != nil {
		return decimal.Zero, fmt.Errorf("failed to quote range: %w", err)
	}

	if count <= 0 || !end.After(start) {
		return decimal.Zero, nil
	}

	nightly := s.rateCard(ctx, roomTypeID, snapshot, start, end).sum(start, end)

	return nightly.Mul(decimal.NewFromInt(int64(count))), nil
}

func (s *serviceImpl) NightlyRate(ctx context.Context, roomTypeID string, snapshot decimal.Decimal, day time.Time) (price decimal.Decimal, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".NightlyRate")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.rateCard(ctx, roomTypeID, snapshot, day, clock.AddDays(day, 1)).price(day), nil
}
