package service

import (
	"context"
	"fmt"
	bookingModel "hotel/internal/domains/booking/model"
	"hotel/internal/domains/invoice/model"
	"hotel/internal/domains/invoice/model/dto"
	"hotel/shared/clock"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type feeTier struct {
	upTo       float64
	label      string
	percentage float64
}

// earlyCheckoutTiers charge more the emptier the hotel is on the checkout day.
var earlyCheckoutTiers = []feeTier{
	{upTo: 40, label: "0-40", percentage: 50},    //nolint:mnd
	{upTo: 80, label: "41-80", percentage: 25},   //nolint:mnd
	{upTo: 100, label: "81-100", percentage: 10}, //nolint:mnd
}

// AdditionalChargesPreview lists the fixed surcharges the booking would incur.
func (s *serviceImpl) AdditionalChargesPreview(ctx context.Context, bookingID string) (res dto.AdditionalChargesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AdditionalChargesPreview")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return res, err
	}

	rules, err := s.repos.SurchargeRule.GetAll(ctx, gDto.QueryParams{}, filterByHotel(booking.HotelID, model.SurchargeRuleTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get surcharge rules")

		return res, fmt.Errorf("failed to get surcharge rules: %w", err)
	}

	byType := make(map[string]model.SurchargeRule, len(rules))
	for _, rule := range rules {
		byType[rule.Type] = rule
	}

	res.Lines = []dto.ChargeLine{}
	res.Total = decimal.Zero

	if rule, ok := byType[model.SurchargeEarlyCheckIn]; ok && !rule.FixedAmount().IsZero() {
		res.Add("Early check-in", rule.FixedAmount())
	}

	if rule, ok := byType[model.SurchargeLateCheckOut]; ok && !rule.FixedAmount().IsZero() {
		res.Add("Late check-out", rule.FixedAmount())
	}

	rule, ok := byType[model.SurchargeExtraGuest]
	if !ok || rule.FixedAmount().IsZero() {
		return res, nil
	}

	extra, err := s.extraGuests(ctx, bookingID)
	if err != nil {
		return res, err
	}

	if extra > 0 {
		res.Add(fmt.Sprintf("Extra guest x%d", extra), rule.FixedAmount().Mul(decimal.NewFromInt(int64(extra))))
	}

	return res, nil
}

// extraGuests counts the linked guests beyond the capacity of the booked rooms.
func (s *serviceImpl) extraGuests(ctx context.Context, bookingID string) (int, error) {
	roomTypes, err := s.bookingRepos.RoomType.GetAll(ctx, gDto.QueryParams{}, filterByBooking(bookingID, bookingModel.RoomTypeTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking room types")

		return 0, fmt.Errorf("failed to get booking room types: %w", err)
	}

	rooms, err := s.bookingRepos.Room.GetAll(ctx, gDto.QueryParams{}, filterByBooking(bookingID, bookingModel.RoomTypeTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking rooms")

		return 0, fmt.Errorf("failed to get booking rooms: %w", err)
	}

	capacity := 0
	for _, roomType := range roomTypes {
		capacity += roomType.Capacity * max(activeRooms(rooms, roomType.ID), 1)
	}

	ids := make([]string, 0, len(rooms))
	for _, room := range rooms {
		if room.Status != bookingModel.RoomStatusCancelled {
			ids = append(ids, room.ID)
		}
	}

	if len(ids) == 0 {
		return 0, nil
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: bookingModel.FieldBookingRoomID, Value: ids, Operator: gDto.FilterOperatorIn, Table: bookingModel.GuestTableName},
		},
	}

	guests, err := s.bookingRepos.Guest.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking guests")

		return 0, fmt.Errorf("failed to get booking guests: %w", err)
	}

	distinct := map[string]struct{}{}
	for _, guest := range guests {
		distinct[guest.GuestID] = struct{}{}
	}

	return max(len(distinct)-capacity, 0), nil
}

// EarlyCheckoutFee prices leaving before the scheduled end by the hotel availability on the checkout day.
func (s *serviceImpl) EarlyCheckoutFee(ctx context.Context, req dto.EarlyCheckoutFeeRequest, bookingID string) (res dto.EarlyCheckoutFeeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".EarlyCheckoutFee")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	date, err := clock.ParseDate(req.CheckoutDate)
	if err != nil {
		return res, failure.BadRequestFromString("invalid checkout date") // nolint:wrapcheck
	}

	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return res, err
	}

	occupancy, err := s.availability.OccupancyOn(ctx, booking.HotelID, date)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	res.AvailabilityPercent = 100
	if occupancy.TotalRooms > 0 {
		res.AvailabilityPercent = occupancy.AvailablePercentage()
	}

	tier := earlyCheckoutTiers[len(earlyCheckoutTiers)-1]
	for _, t := range earlyCheckoutTiers {
		if res.AvailabilityPercent <= t.upTo {
			tier = t

			break
		}
	}

	res.Tier = tier.label
	res.FeePercentage = tier.percentage

	rooms, err := s.bookingRepos.Room.GetAll(ctx, gDto.QueryParams{}, filterByBooking(bookingID, bookingModel.RoomTypeTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking rooms")

		return res, fmt.Errorf("failed to get booking rooms: %w", err)
	}

	pct := decimal.NewFromFloat(tier.percentage).Div(decimal.NewFromInt(100)) //nolint:mnd
	res.FeeAmount = decimal.Zero

	for _, room := range rooms {
		nights := remainingNights(room, date)
		if nights == 0 {
			continue
		}

		res.FeeAmount = res.FeeAmount.Add(room.Price.Mul(decimal.NewFromInt(int64(nights))).Mul(pct))
	}

	res.FeeAmount = res.FeeAmount.Round(2) //nolint:mnd

	return res, nil
}

// remainingNights counts the scheduled nights left after date of a room still in the house.
func remainingNights(room bookingModel.BookingRoom, date time.Time) int {
	if room.Status == bookingModel.RoomStatusCancelled || room.ActualCheckOutAt != nil {
		return 0
	}

	return max(clock.Days(date, room.EndDate), 0)
}
