package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"hotel/infras/otel/mocks"
	"hotel/internal/domains/pricing/service"
	roomTypeMocks "hotel/internal/domains/roomtype/mocks"
	rtModel "hotel/internal/domains/roomtype/model"
	"hotel/shared/clock"
)

var now = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func day(d int) time.Time {
	return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T {
	return &v
}

func price(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

type fixture struct {
	roomTypeRepo *roomTypeMocks.MockRoomType
	priceRepo    *roomTypeMocks.MockPrice
	svc          service.Pricing
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		roomTypeRepo: roomTypeMocks.NewMockRoomType(ctrl),
		priceRepo:    roomTypeMocks.NewMockPrice(ctrl),
	}
	f.svc = service.New(f.roomTypeRepo, f.priceRepo, clock.Fixed(now), mocks.NewOtel())

	return f
}

func (f fixture) expectBase(base decimal.NullDecimal) {
	f.roomTypeRepo.EXPECT().
		Get(gomock.Any(), gomock.Any(), rtModel.FieldID, rtModel.FieldBasePrice).
		Return(rtModel.RoomType{ID: "rt-1", BasePrice: base}, nil).
		AnyTimes()
}

func TestPricingService_PriceStay(t *testing.T) {
	tests := []struct {
		name      string
		stay      service.Stay
		setupMock func(f fixture)
		expected  decimal.Decimal
	}{
		{
			name: "two nights at base price",
			stay: service.Stay{RoomTypeID: "rt-1", SnapshotPrice: price(900000), StartDate: day(1), EndDate: day(3)},
			setupMock: func(f fixture) {
				f.expectBase(decimal.NewNullDecimal(price(1000000)))
				f.priceRepo.EXPECT().GetPrices(gomock.Any(), "rt-1", day(1), day(3)).Return(map[string]decimal.Decimal{}, nil)
			},
			expected: price(2000000),
		},
		{
			name: "override wins over base",
			stay: service.Stay{RoomTypeID: "rt-1", StartDate: day(1), EndDate: day(3)},
			setupMock: func(f fixture) {
				f.expectBase(decimal.NewNullDecimal(price(1000000)))
				f.priceRepo.EXPECT().GetPrices(gomock.Any(), "rt-1", day(1), day(3)).
					Return(map[string]decimal.Decimal{"2025-03-02": price(1500000)}, nil)
			},
			expected: price(2500000),
		},
		{
			name: "snapshot when no base price",
			stay: service.Stay{RoomTypeID: "rt-1", SnapshotPrice: price(700000), StartDate: day(1), EndDate: day(4)},
			setupMock: func(f fixture) {
				f.expectBase(decimal.NullDecimal{})
				f.priceRepo.EXPECT().GetPrices(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
			},
			expected: price(2100000),
		},
		{
			name: "override lookup failure falls back to base",
			stay: service.Stay{RoomTypeID: "rt-1", StartDate: day(1), EndDate: day(3)},
			setupMock: func(f fixture) {
				f.expectBase(decimal.NewNullDecimal(price(1000000)))
				f.priceRepo.EXPECT().GetPrices(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))
			},
			expected: price(2000000),
		},
		{
			name: "extension and actual times",
			stay: service.Stay{
				RoomTypeID:    "rt-1",
				StartDate:     day(1),
				EndDate:       day(3),
				ExtendedDate:  ptr(day(5)),
				ActualCheckIn: ptr(day(2).Add(14 * time.Hour)),
			},
			setupMock: func(f fixture) {
				f.expectBase(decimal.NewNullDecimal(price(800000)))
				f.priceRepo.EXPECT().GetPrices(gomock.Any(), "rt-1", day(2), day(5)).Return(nil, nil)
			},
			expected: price(2400000),
		},
		{
			name: "same day checkout is charged one night",
			stay: service.Stay{
				RoomTypeID:     "rt-1",
				StartDate:      day(1),
				EndDate:        day(3),
				ActualCheckIn:  ptr(day(1).Add(14 * time.Hour)),
				ActualCheckOut: ptr(day(1).Add(20 * time.Hour)),
			},
			setupMock: func(f fixture) {
				f.expectBase(decimal.NewNullDecimal(price(800000)))
				f.priceRepo.EXPECT().GetPrices(gomock.Any(), "rt-1", day(1), day(2)).Return(nil, nil)
			},
			expected: price(800000),
		},
		{
			name:      "cancelled room is free",
			stay:      service.Stay{RoomTypeID: "rt-1", StartDate: day(1), EndDate: day(3), Cancelled: true},
			setupMock: func(_ fixture) {},
			expected:  decimal.Zero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			total, err := f.svc.PriceStay(context.Background(), tt.stay)
			assert.NoError(t, err)
			assert.True(t, tt.expected.Equal(total), "expected %s, got %s", tt.expected, total)
		})
	}
}

func TestPricingService_PriceBooking(t *testing.T) {
	f := newFixture(t)
	f.expectBase(decimal.NewNullDecimal(price(1000000)))
	f.priceRepo.EXPECT().GetPrices(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)

	total, err := f.svc.PriceBooking(context.Background(), []service.Stay{
		{RoomTypeID: "rt-1", StartDate: day(1), EndDate: day(3)},
		{RoomTypeID: "rt-1", StartDate: day(1), EndDate: day(2)},
		{RoomTypeID: "rt-1", StartDate: day(1), EndDate: day(9), Cancelled: true},
	})
	assert.NoError(t, err)
	assert.True(t, price(3000000).Equal(total))
}

func TestPricingService_QuoteRange(t *testing.T) {
	f := newFixture(t)
	f.expectBase(decimal.NullDecimal{})
	f.priceRepo.EXPECT().GetPrices(gomock.Any(), "rt-1", day(1), day(3)).
		Return(map[string]decimal.Decimal{"2025-03-01": price(600000)}, nil)

	total, err := f.svc.QuoteRange(context.Background(), "rt-1", price(500000), day(1), day(3), 2)
	assert.NoError(t, err)
	assert.True(t, price(2200000).Equal(total))

	zero, err := f.svc.QuoteRange(context.Background(), "rt-1", price(500000), day(3), day(3), 2)
	assert.NoError(t, err)
	assert.True(t, zero.IsZero())
}

func TestInterval(t *testing.T) {
	from, to := service.Interval(clock.Fixed(now), service.Stay{StartDate: day(4), EndDate: day(6), ActualCheckOut: ptr(day(5).Add(10 * time.Hour))})
	assert.Equal(t, day(4), from)
	assert.Equal(t, day(5), to)
}
