package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"hotel/config"
	"hotel/infras/otel/mocks"
	roomTypeMocks "hotel/internal/domains/roomtype/mocks"
	"hotel/internal/domains/roomtype/model"
	"hotel/internal/domains/roomtype/model/dto"
	"hotel/internal/domains/roomtype/service"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/clock"
	"hotel/shared/constant"
	"hotel/shared/failure"
)

var (
	now     = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	errMiss = errors.New("cache miss")
)

type fixture struct {
	repo      *roomTypeMocks.MockRoomType
	priceRepo *roomTypeMocks.MockPrice
	cache     *cacheMocks.MockRedisCache
	svc       service.RoomType
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		repo:      roomTypeMocks.NewMockRoomType(ctrl),
		priceRepo: roomTypeMocks.NewMockPrice(ctrl),
		cache:     cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.svc = service.New(f.repo, f.priceRepo, cfg, f.cache, clock.Fixed(now), mocks.NewOtel())

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errMiss).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func TestRoomTypeService_Create(t *testing.T) {
	negative := decimal.NewFromInt(-1)
	price := decimal.NewFromInt(500000)

	tests := []struct {
		name      string
		req       dto.CreateRoomTypeRequest
		setupMock func(f fixture)
		wantCode  int
		wantErr   bool
	}{
		{
			name: "successful creation",
			req:  dto.CreateRoomTypeRequest{HotelID: "hotel-1", Name: "Deluxe", Capacity: 2, BasePrice: &price},
			setupMock: func(f fixture) {
				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, roomType model.RoomType) error {
						assert.True(t, roomType.BasePrice.Valid)
						assert.True(t, roomType.BasePrice.Decimal.Equal(price))
						assert.Equal(t, now, roomType.CreatedAt)

						return nil
					})
			},
		},
		{
			name:      "negative base price",
			req:       dto.CreateRoomTypeRequest{HotelID: "hotel-1", Name: "Deluxe", Capacity: 2, BasePrice: &negative},
			setupMock: func(_ fixture) {},
			wantErr:   true,
			wantCode:  400,
		},
		{
			name: "duplicate name",
			req:  dto.CreateRoomTypeRequest{HotelID: "hotel-1", Name: "Deluxe", Capacity: 2},
			setupMock: func(f fixture) {
				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation})
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name: "repository error",
			req:  dto.CreateRoomTypeRequest{HotelID: "hotel-1", Name: "Deluxe", Capacity: 2},
			setupMock: func(f fixture) {
				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr:  true,
			wantCode: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			id, err := f.svc.Create(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, id)
			}
		})
	}
}

func TestRoomTypeService_Get(t *testing.T) {
	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func(f fixture)
		wantCode  int
		wantErr   bool
	}{
		{
			name: "found",
			ctx:  context.Background(),
			setupMock: func(f fixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.RoomType{ID: "rt-1", HotelID: "hotel-1", Name: "Deluxe", Capacity: 2}, nil)
			},
		},
		{
			name: "not found",
			ctx:  context.Background(),
			setupMock: func(f fixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.RoomType{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "other hotel is hidden",
			ctx:  context.WithValue(context.Background(), constant.ContextKeyHotelID, "hotel-2"),
			setupMock: func(f fixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.RoomType{ID: "rt-1", HotelID: "hotel-1"}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Get(tt.ctx, "rt-1")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "Deluxe", res.Name)
				assert.Nil(t, res.BasePrice)
			}
		})
	}
}

func TestRoomTypeService_Update(t *testing.T) {
	capacity := 3

	tests := []struct {
		name      string
		req       dto.UpdateRoomTypeRequest
		setupMock func(f fixture)
		wantErr   bool
	}{
		{
			name: "successful update",
			req:  dto.UpdateRoomTypeRequest{Capacity: &capacity},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.RoomType{ID: "rt-1", HotelID: "hotel-1"}, nil)
				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
						assert.Equal(t, &capacity, fields[model.FieldCapacity])
						assert.Equal(t, now, fields[constant.FieldModifiedAt])

						return nil
					})
			},
		},
		{
			name:      "empty request",
			req:       dto.UpdateRoomTypeRequest{},
			setupMock: func(_ fixture) {},
			wantErr:   true,
		},
		{
			name: "update error",
			req:  dto.UpdateRoomTypeRequest{Name: "Suite"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.RoomType{ID: "rt-1", HotelID: "hotel-1"}, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.Update(context.Background(), tt.req, "rt-1")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRoomTypeService_Delete(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.RoomType{ID: "rt-1", HotelID: "hotel-1"}, nil)
	f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeFkViolation})

	err := f.svc.Delete(context.Background(), "rt-1")

	assert.Error(t, err)
	assert.Equal(t, 409, failure.GetCode(err))
}

func TestRoomTypeService_SetPrices(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.SetPricesRequest
		setupMock func(f fixture)
		wantErr   bool
	}{
		{
			name: "upserts every date",
			req: dto.SetPricesRequest{Prices: []dto.PriceItem{
				{Date: "2025-03-10", Price: decimal.NewFromInt(900000)},
				{Date: "2025-03-11", Price: decimal.NewFromInt(950000)},
			}},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.RoomType{ID: "rt-1", HotelID: "hotel-1"}, nil)
				f.priceRepo.EXPECT().
					Upsert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, prices []model.RoomTypePrice) error {
						assert.Len(t, prices, 2)
						assert.Equal(t, "rt-1", prices[0].RoomTypeID)
						assert.Equal(t, time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), prices[1].Date)

						return nil
					})
			},
		},
		{
			name: "negative price rejected",
			req: dto.SetPricesRequest{Prices: []dto.PriceItem{
				{Date: "2025-03-10", Price: decimal.NewFromInt(-5)},
			}},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.RoomType{ID: "rt-1", HotelID: "hotel-1"}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.SetPrices(context.Background(), tt.req, "rt-1")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRoomTypeService_GetPrices(t *testing.T) {
	from := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 3)

	t.Run("invalid range", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.GetPrices(context.Background(), "rt-1", to, from)

		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("lists overrides", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.RoomType{ID: "rt-1", HotelID: "hotel-1"}, nil)
		f.priceRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.RoomTypePrice{{RoomTypeID: "rt-1", Date: from, Price: decimal.NewFromInt(700000)}}, nil)

		res, err := f.svc.GetPrices(context.Background(), "rt-1", from, to)

		assert.NoError(t, err)
		assert.Len(t, res, 1)
		assert.Equal(t, "2025-03-10", res[0].Date)
	})
}
