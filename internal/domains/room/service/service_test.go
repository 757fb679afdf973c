package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"hotel/config"
	"hotel/infras/otel/mocks"
	txMocks "hotel/infras/postgres/mocks"
	roomMocks "hotel/internal/domains/room/mocks"
	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/model/dto"
	"hotel/internal/domains/room/service"
	roomTypeMocks "hotel/internal/domains/roomtype/mocks"
	roomTypeModel "hotel/internal/domains/roomtype/model"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/clock"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
)

var now = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

type fixture struct {
	repo         *roomMocks.MockRoom
	logRepo      *roomMocks.MockStatusLog
	roomTypeRepo *roomTypeMocks.MockRoomType
	tx           *txMocks.MockTransactor
	svc          service.Room
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		repo:         roomMocks.NewMockRoom(ctrl),
		logRepo:      roomMocks.NewMockStatusLog(ctrl),
		roomTypeRepo: roomTypeMocks.NewMockRoomType(ctrl),
		tx:           txMocks.NewMockTransactor(ctrl),
	}

	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.tx.EXPECT().
		WithTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fn func(*sqlx.Tx) error) error {
			return fn(nil)
		}).
		AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.svc = service.New(f.repo, f.logRepo, f.roomTypeRepo, f.tx, cfg, mockCache, clock.Fixed(now), mocks.NewOtel())

	return f
}

func TestRoomService_Create(t *testing.T) {
	req := dto.CreateRoomRequest{HotelID: "hotel-1", RoomTypeID: "rt-1", Number: "101", Floor: 1}

	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantCode  int
		wantErr   bool
	}{
		{
			name: "successful creation",
			setupMock: func(f fixture) {
				f.roomTypeRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomTypeModel.RoomType{ID: "rt-1", HotelID: "hotel-1"}, nil)
				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, room model.HotelRoom) error {
						assert.Equal(t, model.StatusAvailable, room.Status)
						assert.Equal(t, "101", room.Number)

						return nil
					})
			},
		},
		{
			name: "room type of another hotel",
			setupMock: func(f fixture) {
				f.roomTypeRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomTypeModel.RoomType{ID: "rt-1", HotelID: "hotel-2"}, nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name: "duplicate number",
			setupMock: func(f fixture) {
				f.roomTypeRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomTypeModel.RoomType{ID: "rt-1", HotelID: "hotel-1"}, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation})
			},
			wantErr:  true,
			wantCode: 409,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			id, err := f.svc.Create(context.Background(), req)

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

func TestRoomService_GetAll(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(11, nil)
	f.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.HotelRoom{{ID: "room-1", Number: "101", RoomTypeName: "Deluxe"}}, nil)

	res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

	assert.NoError(t, err)
	assert.Equal(t, 11, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
	assert.Equal(t, "Deluxe", res.Rooms[0].RoomTypeName)
}

func TestRoomService_SetOutOfService(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.OutOfServiceRequest
		setupMock func(f fixture)
		wantCode  int
		wantErr   bool
	}{
		{
			name: "marks room and logs",
			req:  dto.OutOfServiceRequest{Reason: "leaking pipe", Until: "2025-03-20"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(model.HotelRoom{ID: "room-1", HotelID: "hotel-1", Status: model.StatusAvailable}, nil)
				f.repo.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, model.StatusOutOfService, fields[model.FieldStatus])
						assert.Equal(t, time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC), fields[model.FieldOutOfServiceUntil])

						return nil
					})
				f.logRepo.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, entry model.RoomStatusLog) error {
						assert.Equal(t, model.StatusOutOfService, entry.Status)
						assert.Equal(t, now, entry.Timestamp)

						return nil
					})
			},
		},
		{
			name:      "date in the past",
			req:       dto.OutOfServiceRequest{Reason: "paint", Until: "2025-03-01"},
			setupMock: func(_ fixture) {},
			wantErr:   true,
			wantCode:  400,
		},
		{
			name: "occupied room",
			req:  dto.OutOfServiceRequest{Reason: "paint"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(model.HotelRoom{ID: "room-1", Number: "101", Status: model.StatusOccupied}, nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name: "room not found",
			req:  dto.OutOfServiceRequest{Reason: "paint"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(model.HotelRoom{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.SetOutOfService(context.Background(), tt.req, "room-1")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRoomService_ChangeStatus(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().
		GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(model.HotelRoom{ID: "room-1", Status: model.StatusDirty}, nil)
	f.repo.EXPECT().
		UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, model.StatusAvailable, fields[model.FieldStatus])
			assert.Nil(t, fields[model.FieldOutOfServiceReason])

			return nil
		})
	f.logRepo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("insert failed"))

	err := f.svc.ChangeStatus(context.Background(), dto.ChangeStatusRequest{Status: model.StatusAvailable}, "room-1")

	assert.Error(t, err)
}

func TestRoomService_Delete(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.HotelRoom{ID: "room-1"}, nil)
	f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeFkViolation})

	err := f.svc.Delete(context.Background(), "room-1")

	assert.Equal(t, 409, failure.GetCode(err))
}
