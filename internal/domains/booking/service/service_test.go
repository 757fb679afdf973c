package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"hotel/config"
	"hotel/infras/otel/mocks"
	txMocks "hotel/infras/postgres/mocks"
	availMocks "hotel/internal/domains/availability/mocks"
	availModel "hotel/internal/domains/availability/model"
	availability "hotel/internal/domains/availability/service"
	bookingMocks "hotel/internal/domains/booking/mocks"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/repository"
	"hotel/internal/domains/booking/service"
	guestMocks "hotel/internal/domains/guest/mocks"
	guestModel "hotel/internal/domains/guest/model"
	guestDto "hotel/internal/domains/guest/model/dto"
	pricing "hotel/internal/domains/pricing/service"
	roomMocks "hotel/internal/domains/room/mocks"
	roomModel "hotel/internal/domains/room/model"
	roomTypeMocks "hotel/internal/domains/roomtype/mocks"
	roomTypeModel "hotel/internal/domains/roomtype/model"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/clock"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
)

var now = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

type fixture struct {
	booking      *bookingMocks.MockBooking
	roomType     *bookingMocks.MockBookingRoomType
	room         *bookingMocks.MockBookingRoom
	guest        *bookingMocks.MockBookingGuest
	callLog      *bookingMocks.MockCallLog
	guestRepo    *guestMocks.MockGuest
	roomRepo     *roomMocks.MockRoom
	logRepo      *roomMocks.MockStatusLog
	roomTypeRepo *roomTypeMocks.MockRoomType
	priceRepo    *roomTypeMocks.MockPrice
	availRepo    *availMocks.MockAvailability
	tx           *txMocks.MockTransactor
	svc          service.Booking
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		booking:      bookingMocks.NewMockBooking(ctrl),
		roomType:     bookingMocks.NewMockBookingRoomType(ctrl),
		room:         bookingMocks.NewMockBookingRoom(ctrl),
		guest:        bookingMocks.NewMockBookingGuest(ctrl),
		callLog:      bookingMocks.NewMockCallLog(ctrl),
		guestRepo:    guestMocks.NewMockGuest(ctrl),
		roomRepo:     roomMocks.NewMockRoom(ctrl),
		logRepo:      roomMocks.NewMockStatusLog(ctrl),
		roomTypeRepo: roomTypeMocks.NewMockRoomType(ctrl),
		priceRepo:    roomTypeMocks.NewMockPrice(ctrl),
		availRepo:    availMocks.NewMockAvailability(ctrl),
		tx:           txMocks.NewMockTransactor(ctrl),
	}

	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	publisher := bookingMocks.NewMockPublisher(ctrl)
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).AnyTimes()

	f.tx.EXPECT().
		WithTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fn func(*sqlx.Tx) error) error {
			return fn(nil)
		}).
		AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	clk := clock.Fixed(now)
	otel := mocks.NewOtel()

	repos := repository.Repositories{
		Booking:  f.booking,
		RoomType: f.roomType,
		Room:     f.room,
		Guest:    f.guest,
		CallLog:  f.callLog,
	}

	f.svc = service.New(
		repos,
		f.guestRepo,
		f.roomRepo,
		f.logRepo,
		f.roomTypeRepo,
		availability.New(f.availRepo, otel),
		pricing.New(f.roomTypeRepo, f.priceRepo, clk, otel),
		publisher,
		f.tx,
		cfg,
		mockCache,
		clk,
		otel,
	)

	return f
}

// expectRoomStatus expects a physical room status change and its audit entry.
func (f fixture) expectRoomStatus(times int) {
	f.roomRepo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(times)
	f.logRepo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(times)
}

// expectSnapshotPricing makes pricing fall back to the booked snapshot price.
func (f fixture) expectSnapshotPricing() {
	f.roomTypeRepo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(roomTypeModel.RoomType{}, nil).AnyTimes()
	f.priceRepo.EXPECT().GetPrices(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(map[string]decimal.Decimal{}, nil).AnyTimes()
}

func date(value string) time.Time {
	d, _ := clock.ParseDate(value)

	return d
}

func amount(value int64) decimal.Decimal {
	return decimal.NewFromInt(value)
}

func guestRequest(name, phone string) guestDto.GuestRequest {
	return guestDto.GuestRequest{FullName: name, Phone: phone}
}

func filterValue(filter gDto.FilterGroup) any {
	return filter.Filters[0].(gDto.Filter).Value
}

func TestBookingService_Create(t *testing.T) {
	req := dto.CreateBookingRequest{
		HotelID:        "hotel-1",
		PrimaryGuestID: "guest-1",
		StartDate:      "2025-03-10",
		EndDate:        "2025-03-12",
		DepositAmount:  amount(500000),
		RoomTypes: []dto.CreateRoomTypeRequest{
			{RoomTypeID: "rt-1", Rooms: []dto.AssignRoomRequest{{RoomID: "room-1"}}},
		},
	}

	roomType := roomTypeModel.RoomType{
		ID:        "rt-1",
		HotelID:   "hotel-1",
		Name:      "Deluxe",
		BasePrice: decimal.NewNullDecimal(amount(1000000)),
	}
	locked := availModel.LockedRoom{ID: "room-1", HotelID: "hotel-1", RoomTypeID: "rt-1", Number: "101", Status: roomModel.StatusAvailable}

	tests := []struct {
		name      string
		req       dto.CreateBookingRequest
		setupMock func(f fixture)
		wantCode  int
		wantErr   bool
	}{
		{
			name: "successful creation",
			req:  req,
			setupMock: func(f fixture) {
				f.guestRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(guestModel.Guest{ID: "guest-1"}, nil)
				f.roomTypeRepo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(roomType, nil).AnyTimes()
				f.priceRepo.EXPECT().GetPrices(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
				f.availRepo.EXPECT().LockRoom(gomock.Any(), gomock.Any(), "room-1").Return(locked, nil)
				f.availRepo.EXPECT().
					CountOverlaps(gomock.Any(), gomock.Any(), "room-1", date("2025-03-10"), date("2025-03-12"), "").
					Return(0, nil)
				f.booking.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, booking model.Booking) error {
						assert.Equal(t, model.StatusPending, booking.Status)
						assert.Equal(t, "guest-1", booking.PrimaryGuestID)
						assert.True(t, amount(2000000).Equal(booking.TotalAmount), booking.TotalAmount.String())
						assert.True(t, amount(1500000).Equal(booking.LeftAmount), booking.LeftAmount.String())

						return nil
					})
				f.roomType.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, line model.BookingRoomType) error {
						assert.Equal(t, 1, line.TotalRoom)
						assert.True(t, amount(1000000).Equal(line.Price))

						return nil
					})
				f.room.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, room model.BookingRoom) error {
						assert.Equal(t, "101", room.RoomName)
						assert.Equal(t, model.RoomStatusPending, room.Status)

						return nil
					})
				f.guest.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, link model.BookingGuest) error {
						assert.Equal(t, "guest-1", link.GuestID)

						return nil
					})
			},
		},
		{
			name: "overlapping room rolls back before any insert",
			req:  req,
			setupMock: func(f fixture) {
				f.guestRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(guestModel.Guest{ID: "guest-1"}, nil)
				f.roomTypeRepo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(roomType, nil)
				f.availRepo.EXPECT().LockRoom(gomock.Any(), gomock.Any(), "room-1").Return(locked, nil)
				f.availRepo.EXPECT().CountOverlaps(gomock.Any(), gomock.Any(), "room-1", gomock.Any(), gomock.Any(), "").Return(1, nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name: "room of another room type",
			req:  req,
			setupMock: func(f fixture) {
				f.guestRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(guestModel.Guest{ID: "guest-1"}, nil)
				f.roomTypeRepo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(roomType, nil)
				f.availRepo.EXPECT().LockRoom(gomock.Any(), gomock.Any(), "room-1").
					Return(availModel.LockedRoom{ID: "room-1", HotelID: "hotel-1", RoomTypeID: "rt-2", Number: "101"}, nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name: "room type of another hotel",
			req:  req,
			setupMock: func(f fixture) {
				f.guestRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(guestModel.Guest{ID: "guest-1"}, nil)
				f.roomTypeRepo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(roomTypeModel.RoomType{}, nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name: "primary guest not found",
			req:  req,
			setupMock: func(f fixture) {
				f.guestRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(guestModel.Guest{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "end date before start date",
			req: dto.CreateBookingRequest{
				HotelID:        "hotel-1",
				PrimaryGuestID: "guest-1",
				StartDate:      "2025-03-12",
				EndDate:        "2025-03-10",
			},
			setupMock: func(_ fixture) {},
			wantErr:   true,
			wantCode:  400,
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

func TestBookingService_Get(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)
		f.booking.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		_, err := f.svc.Get(context.Background(), "booking-1")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("with rooms, guests and call logs", func(t *testing.T) {
		f := newFixture(t)
		f.booking.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(model.Booking{ID: "booking-1", Status: model.StatusConfirmed, StartDate: date("2025-03-10"), EndDate: date("2025-03-12")}, nil)
		f.roomType.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.BookingRoomType{{ID: "brt-1", BookingID: "booking-1", TotalRoom: 1}}, nil)
		f.room.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.BookingRoom{{ID: "br-1", BookingRoomTypeID: "brt-1", RoomName: "101"}}, nil)
		f.guest.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.BookingGuest{{BookingRoomID: "br-1", GuestID: "guest-1", FullName: "Budi"}}, nil)
		f.callLog.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.CallLog{{ID: "log-1", BookingID: "booking-1", Result: "answered"}}, nil)

		res, err := f.svc.Get(context.Background(), "booking-1")

		assert.NoError(t, err)
		assert.Equal(t, "booking-1", res.ID)
		assert.Len(t, res.RoomTypes, 1)
		assert.Len(t, res.CallLogs, 1)
	})
}

func TestBookingService_Cancel(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantCode  int
		wantErr   bool
	}{
		{
			name: "cancels pending rooms and releases them",
			setupMock: func(f fixture) {
				f.booking.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(model.Booking{ID: "booking-1", HotelID: "hotel-1", Status: model.StatusConfirmed}, nil)
				f.room.EXPECT().GetAllTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.BookingRoom{
						{ID: "br-1", RoomID: "room-1", Status: model.RoomStatusPending},
						{ID: "br-2", RoomID: "room-2", Status: model.RoomStatusCancelled},
					}, nil)
				f.room.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, filter gDto.FilterGroup) error {
						assert.Equal(t, "br-1", filterValue(filter))
						assert.Equal(t, model.RoomStatusCancelled, fields[model.FieldStatus])

						return nil
					})
				f.expectRoomStatus(1)
				f.booking.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, model.StatusCancelled, fields[model.FieldStatus])

						return nil
					})
			},
		},
		{
			name: "checked in room blocks cancel",
			setupMock: func(f fixture) {
				f.booking.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(model.Booking{ID: "booking-1", Status: model.StatusConfirmed}, nil)
				f.room.EXPECT().GetAllTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.BookingRoom{{ID: "br-1", RoomName: "101", Status: model.RoomStatusCheckedIn}}, nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name: "completed booking",
			setupMock: func(f fixture) {
				f.booking.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(model.Booking{ID: "booking-1", Status: model.StatusCompleted}, nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name: "not found",
			setupMock: func(f fixture) {
				f.booking.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.Cancel(context.Background(), "booking-1")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_Confirm(t *testing.T) {
	t.Run("pending to confirmed", func(t *testing.T) {
		f := newFixture(t)
		f.booking.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(model.Booking{ID: "booking-1", Status: model.StatusPending}, nil)
		f.booking.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		assert.NoError(t, f.svc.Confirm(context.Background(), "booking-1"))
	})

	t.Run("cancelled booking", func(t *testing.T) {
		f := newFixture(t)
		f.booking.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(model.Booking{ID: "booking-1", Status: model.StatusCancelled}, nil)

		err := f.svc.Confirm(context.Background(), "booking-1")

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})
}

func TestBookingService_CheckOut(t *testing.T) {
	checkIn := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	stayingRoom := model.BookingRoom{
		ID:              "br-1",
		RoomID:          "room-1",
		RoomTypeID:      "rt-1",
		Price:           amount(1000000),
		StartDate:       date("2025-03-10"),
		EndDate:         date("2025-03-12"),
		ActualCheckInAt: &checkIn,
		Status:          model.RoomStatusCheckedIn,
	}

	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantTotal decimal.Decimal
		wantLeft  decimal.Decimal
		wantCode  int
		wantErr   bool
	}{
		{
			name: "settles two nights against the deposit",
			setupMock: func(f fixture) {
				f.booking.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(model.Booking{ID: "booking-1", HotelID: "hotel-1", Status: model.StatusConfirmed, DepositAmount: amount(500000)}, nil)
				f.room.EXPECT().GetAllTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.BookingRoom{stayingRoom}, nil)
				f.room.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, model.RoomStatusCheckedOut, fields[model.FieldStatus])

						return nil
					})
				f.roomRepo.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, roomModel.StatusDirty, fields[roomModel.FieldStatus])

						return nil
					})
				f.logRepo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.expectSnapshotPricing()
				f.booking.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
			wantTotal: amount(2000000),
			wantLeft:  amount(1500000),
		},
		{
			name: "additional booking amount stays out of the total",
			setupMock: func(f fixture) {
				f.booking.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(model.Booking{
						ID:                      "booking-1",
						HotelID:                 "hotel-1",
						Status:                  model.StatusConfirmed,
						DepositAmount:           amount(500000),
						AdditionalAmount:        amount(100000),
						AdditionalBookingAmount: amount(300000),
					}, nil)
				f.room.EXPECT().GetAllTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.BookingRoom{stayingRoom}, nil)
				f.room.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.expectRoomStatus(1)
				f.expectSnapshotPricing()
				f.booking.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
						total, ok := fields[model.FieldTotalAmount].(decimal.Decimal)
						assert.True(t, ok)
						assert.True(t, amount(2100000).Equal(total), total.String())

						return nil
					})
			},
			wantTotal: amount(2100000),
			wantLeft:  amount(1600000),
		},
		{
			name: "completed booking",
			setupMock: func(f fixture) {
				f.booking.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(model.Booking{ID: "booking-1", Status: model.StatusCompleted}, nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name: "only cancelled rooms",
			setupMock: func(f fixture) {
				f.booking.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(model.Booking{ID: "booking-1", Status: model.StatusConfirmed}, nil)
				f.room.EXPECT().GetAllTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.BookingRoom{{ID: "br-1", Status: model.RoomStatusCancelled}}, nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.CheckOut(context.Background(), dto.CheckOutRequest{CheckOutAt: "2025-03-12T10:00:00Z"}, "booking-1")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
				assert.True(t, tt.wantTotal.Equal(res.TotalAmount), res.TotalAmount.String())
				assert.True(t, tt.wantLeft.Equal(res.LeftAmount), res.LeftAmount.String())
			}
		})
	}
}

func TestBookingService_ExtendStay(t *testing.T) {
	booking := model.Booking{
		ID:          "booking-1",
		HotelID:     "hotel-1",
		Status:      model.StatusConfirmed,
		TotalAmount: amount(1600000),
		LeftAmount:  amount(1100000),
	}
	room := model.BookingRoom{
		ID:        "br-1",
		RoomID:    "room-1",
		RoomName:  "101",
		Price:     amount(800000),
		StartDate: date("2025-03-10"),
		EndDate:   date("2025-03-12"),
		Status:    model.RoomStatusCheckedIn,
	}

	tests := []struct {
		name      string
		newEnd    string
		setupMock func(f fixture)
		wantCode  int
		wantErr   bool
	}{
		{
			name:   "two more nights",
			newEnd: "2025-03-14",
			setupMock: func(f fixture) {
				f.booking.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(booking, nil)
				f.room.EXPECT().GetAllTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.BookingRoom{room}, nil)
				f.availRepo.EXPECT().LockRoom(gomock.Any(), gomock.Any(), "room-1").Return(availModel.LockedRoom{ID: "room-1"}, nil)
				f.availRepo.EXPECT().
					CountOverlaps(gomock.Any(), gomock.Any(), "room-1", date("2025-03-12"), date("2025-03-14"), "br-1").
					Return(0, nil)
				f.room.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, date("2025-03-14"), fields[model.FieldExtendedDate])

						return nil
					})
				f.booking.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
						total, _ := fields[model.FieldTotalAmount].(decimal.Decimal)
						left, _ := fields[model.FieldLeftAmount].(decimal.Decimal)

						assert.True(t, amount(3200000).Equal(total), total.String())
						assert.True(t, amount(2700000).Equal(left), left.String())

						return nil
					})
			},
		},
		{
			name:   "room booked by someone else",
			newEnd: "2025-03-14",
			setupMock: func(f fixture) {
				f.booking.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(booking, nil)
				f.room.EXPECT().GetAllTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.BookingRoom{room}, nil)
				f.availRepo.EXPECT().LockRoom(gomock.Any(), gomock.Any(), "room-1").Return(availModel.LockedRoom{ID: "room-1"}, nil)
				f.availRepo.EXPECT().CountOverlaps(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(1, nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name:   "new end not after current end",
			newEnd: "2025-03-12",
			setupMock: func(f fixture) {
				f.booking.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(booking, nil)
				f.room.EXPECT().GetAllTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.BookingRoom{room}, nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name:      "invalid date",
			newEnd:    "14-03-2025",
			setupMock: func(_ fixture) {},
			wantErr:   true,
			wantCode:  400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.ExtendStay(context.Background(), dto.ExtendStayRequest{NewEndDate: tt.newEnd}, "booking-1")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_CancelNoShows(t *testing.T) {
	f := newFixture(t)

	due := []model.BookingRoom{
		{ID: "br-1", RoomID: "room-1", BookingID: "booking-1", HotelID: "hotel-1", Status: model.RoomStatusPending},
		{ID: "br-2", RoomID: "room-2", BookingID: "booking-1", HotelID: "hotel-1", Status: model.RoomStatusPending},
		{ID: "br-3", RoomID: "room-3", BookingID: "booking-2", HotelID: "hotel-1", Status: model.RoomStatusPending},
	}

	// every pending room due today without a check-in, whatever the booking status
	selection := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{ArgName: "room_status", Field: model.FieldStatus, Value: model.RoomStatusPending, Operator: gDto.FilterOperatorEq, Table: model.RoomTableName},
			gDto.Filter{Field: model.FieldActualCheckInAt, Operator: gDto.FilterIsNull, Table: model.RoomTableName},
			gDto.Filter{Field: model.FieldStartDate, Value: date("2025-03-10"), Operator: gDto.FilterOperatorEq, Table: model.RoomTableName},
		},
	}

	f.room.EXPECT().GetAllTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq(selection), gomock.Any()).Return(due, nil)
	f.room.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(3)
	f.expectRoomStatus(3)

	// booking-1 is left with cancelled rooms only, booking-2 still has a guest in house.
	f.room.EXPECT().GetAllTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.BookingRoom{
			{ID: "br-1", Status: model.RoomStatusCancelled},
			{ID: "br-2", Status: model.RoomStatusCancelled},
		}, nil)
	f.room.EXPECT().GetAllTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.BookingRoom{
			{ID: "br-3", Status: model.RoomStatusCancelled},
			{ID: "br-4", Status: model.RoomStatusCheckedIn},
		}, nil)
	f.booking.EXPECT().
		UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, filter gDto.FilterGroup) error {
			assert.Equal(t, "booking-1", filterValue(filter))
			assert.Equal(t, model.StatusCancelled, fields[model.FieldStatus])

			return nil
		})

	res, err := f.svc.CancelNoShows(context.Background(), dto.SweepRequest{Date: "2025-03-10"})

	assert.NoError(t, err)
	assert.Equal(t, 3, res.CancelledRooms)
	assert.Equal(t, 2, res.AffectedBookings)
}

func TestBookingService_AutoCancel(t *testing.T) {
	f := newFixture(t)
	checkIn := time.Date(2025, 3, 8, 13, 0, 0, 0, time.UTC)

	f.booking.EXPECT().GetAllTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Booking{
			{ID: "booking-1", HotelID: "hotel-1", Status: model.StatusConfirmed},
			{ID: "booking-2", HotelID: "hotel-1", Status: model.StatusPending},
		}, nil)
	f.room.EXPECT().GetAllTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.BookingRoom{{ID: "br-1", Status: model.RoomStatusPending}}, nil)
	f.room.EXPECT().GetAllTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.BookingRoom{{ID: "br-2", Status: model.RoomStatusCheckedIn, ActualCheckInAt: &checkIn}}, nil)
	f.booking.EXPECT().
		UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, filter gDto.FilterGroup) error {
			assert.Equal(t, "booking-1", filterValue(filter))
			assert.Equal(t, model.StatusMissing, fields[model.FieldStatus])

			return nil
		})

	res, err := f.svc.AutoCancel(context.Background(), dto.SweepRequest{})

	assert.NoError(t, err)
	assert.Equal(t, 1, res.MissingBookings)
}

func TestBookingService_UpdateShrinksRoomCount(t *testing.T) {
	one := 1
	req := dto.UpdateBookingRequest{RoomTypes: []dto.UpdateRoomTypeRequest{{ID: "brt-1", TotalRoom: &one}}}

	booking := model.Booking{
		ID:        "booking-1",
		HotelID:   "hotel-1",
		Status:    model.StatusConfirmed,
		StartDate: date("2025-03-10"),
		EndDate:   date("2025-03-12"),
	}
	line := model.BookingRoomType{
		ID:        "brt-1",
		BookingID: "booking-1",
		StartDate: date("2025-03-10"),
		EndDate:   date("2025-03-12"),
		TotalRoom: 2,
	}
	guests := []model.BookingGuest{
		{BookingRoomID: "br-1", GuestID: "guest-1"},
		{BookingRoomID: "br-1", GuestID: "guest-2"},
		{BookingRoomID: "br-2", GuestID: "guest-3"},
	}

	tests := []struct {
		name      string
		rooms     []model.BookingRoom
		setupMock func(f fixture)
		wantCode  int
		wantErr   bool
	}{
		{
			name: "cancels the room with the fewest guests",
			rooms: []model.BookingRoom{
				{ID: "br-1", BookingRoomTypeID: "brt-1", RoomID: "room-1", Status: model.RoomStatusPending},
				{ID: "br-2", BookingRoomTypeID: "brt-1", RoomID: "room-2", Status: model.RoomStatusPending},
			},
			setupMock: func(f fixture) {
				f.room.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, filter gDto.FilterGroup) error {
						assert.Equal(t, "br-2", filterValue(filter))
						assert.Equal(t, model.RoomStatusCancelled, fields[model.FieldStatus])

						return nil
					})
				f.expectRoomStatus(1)
				f.roomType.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, 1, fields[model.FieldTotalRoom])

						return nil
					})
				f.booking.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "checked in rooms cannot be dropped",
			rooms: []model.BookingRoom{
				{ID: "br-1", BookingRoomTypeID: "brt-1", Status: model.RoomStatusCheckedIn},
				{ID: "br-2", BookingRoomTypeID: "brt-1", Status: model.RoomStatusCheckedIn},
			},
			setupMock: func(_ fixture) {},
			wantErr:   true,
			wantCode:  400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.booking.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(booking, nil)
			f.roomType.EXPECT().GetAllTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
				Return([]model.BookingRoomType{line}, nil)
			f.room.EXPECT().GetAllTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(tt.rooms, nil)
			f.guest.EXPECT().GetAllTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(guests, nil)
			tt.setupMock(f)

			err := f.svc.Update(context.Background(), req, "booking-1")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_MoveGuest(t *testing.T) {
	source := model.BookingRoom{ID: "br-1", BookingID: "booking-1", BookingRoomTypeID: "brt-1", Status: model.RoomStatusCheckedIn}

	tests := []struct {
		name      string
		req       dto.MoveGuestRequest
		setupMock func(f fixture)
		wantCode  int
		wantErr   bool
	}{
		{
			name: "moves the guest",
			req:  dto.MoveGuestRequest{GuestID: "guest-1", TargetBookingRoomID: "br-2"},
			setupMock: func(f fixture) {
				f.room.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(source, nil)
				f.room.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(model.BookingRoom{ID: "br-2", BookingID: "booking-1", Status: model.RoomStatusPending}, nil)
				f.guest.EXPECT().GetAllTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.BookingGuest{{BookingRoomID: "br-1", GuestID: "guest-1"}}, nil)
				f.guest.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, "br-2", fields[model.FieldBookingRoomID])

						return nil
					})
			},
		},
		{
			name: "rooms of different bookings",
			req:  dto.MoveGuestRequest{GuestID: "guest-1", TargetBookingRoomID: "br-2"},
			setupMock: func(f fixture) {
				f.room.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(source, nil)
				f.room.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(model.BookingRoom{ID: "br-2", BookingID: "booking-2", Status: model.RoomStatusPending}, nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name: "guest is not in the source room",
			req:  dto.MoveGuestRequest{GuestID: "guest-9", TargetBookingRoomID: "br-2"},
			setupMock: func(f fixture) {
				f.room.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(source, nil)
				f.room.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(model.BookingRoom{ID: "br-2", BookingID: "booking-1", Status: model.RoomStatusPending}, nil)
				f.guest.EXPECT().GetAllTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name:      "same room",
			req:       dto.MoveGuestRequest{GuestID: "guest-1", TargetBookingRoomID: "br-1"},
			setupMock: func(_ fixture) {},
			wantErr:   true,
			wantCode:  400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.MoveGuest(context.Background(), tt.req, "br-1")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_SwapGuests(t *testing.T) {
	source := model.BookingRoom{ID: "br-1", BookingID: "booking-1", BookingRoomTypeID: "brt-1"}
	req := dto.SwapGuestsRequest{GuestID: "guest-1", TargetBookingRoomID: "br-2", TargetGuestID: "guest-2"}

	t.Run("swaps guests between rooms", func(t *testing.T) {
		f := newFixture(t)
		f.room.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(source, nil)
		f.room.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(model.BookingRoom{ID: "br-2", BookingID: "booking-1", BookingRoomTypeID: "brt-1"}, nil)
		f.guest.EXPECT().GetAllTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.BookingGuest{{BookingRoomID: "br-1", GuestID: "guest-1"}}, nil)
		f.guest.EXPECT().GetAllTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.BookingGuest{{BookingRoomID: "br-2", GuestID: "guest-2"}}, nil)
		f.guest.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)

		var links []model.BookingGuest

		f.guest.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, link model.BookingGuest) error {
				links = append(links, link)

				return nil
			}).
			Times(2)

		err := f.svc.SwapGuests(context.Background(), req, "br-1")

		assert.NoError(t, err)
		assert.Equal(t, []model.BookingGuest{
			{BookingRoomID: "br-2", GuestID: "guest-1"},
			{BookingRoomID: "br-1", GuestID: "guest-2"},
		}, []model.BookingGuest{
			{BookingRoomID: links[0].BookingRoomID, GuestID: links[0].GuestID},
			{BookingRoomID: links[1].BookingRoomID, GuestID: links[1].GuestID},
		})
	})

	t.Run("rooms of different room types", func(t *testing.T) {
		f := newFixture(t)
		f.room.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(source, nil)
		f.room.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(model.BookingRoom{ID: "br-2", BookingID: "booking-1", BookingRoomTypeID: "brt-2"}, nil)

		err := f.svc.SwapGuests(context.Background(), req, "br-1")

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})
}

func TestBookingService_CheckIn(t *testing.T) {
	room := model.BookingRoom{ID: "br-1", RoomID: "room-1", HotelID: "hotel-1", BookingID: "booking-1", Status: model.RoomStatusPending}

	t.Run("links an existing guest and occupies the room", func(t *testing.T) {
		f := newFixture(t)
		f.room.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(room, nil)
		f.guest.EXPECT().GetAllTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.BookingGuest{{BookingRoomID: "br-1", GuestID: "guest-1"}}, nil)
		f.guestRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(guestModel.Guest{ID: "guest-2"}, nil)
		f.guestRepo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.guest.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.room.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, model.RoomStatusCheckedIn, fields[model.FieldStatus])
				assert.Equal(t, now, fields[model.FieldActualCheckInAt])

				return nil
			})
		f.roomRepo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, roomModel.StatusOccupied, fields[roomModel.FieldStatus])

				return nil
			})
		f.logRepo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		req := dto.CheckInRequest{}
		req.Guests = append(req.Guests, guestRequest("Siti", "0812"))

		assert.NoError(t, f.svc.CheckIn(context.Background(), req, "br-1"))
	})

	t.Run("cancelled room", func(t *testing.T) {
		f := newFixture(t)
		cancelled := room
		cancelled.Status = model.RoomStatusCancelled
		f.room.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(cancelled, nil)

		err := f.svc.CheckIn(context.Background(), dto.CheckInRequest{}, "br-1")

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})
}

func TestBookingService_AddCallLog(t *testing.T) {
	f := newFixture(t)
	f.booking.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Booking{ID: "booking-1"}, nil)
	f.callLog.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, log model.CallLog) error {
			assert.Equal(t, "booking-1", log.BookingID)
			assert.Equal(t, "answered", log.Result)

			return nil
		})

	id, err := f.svc.AddCallLog(context.Background(), dto.CreateCallLogRequest{CallTime: "2025-03-09T10:00:00Z", Result: "answered"}, "booking-1")

	assert.NoError(t, err)
	assert.NotEmpty(t, id)
}

func TestBookingService_Complete(t *testing.T) {
	checkIn := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	checkOut := time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)
	rooms := []model.BookingRoom{
		{
			ID:               "br-1",
			RoomTypeID:       "rt-1",
			Price:            amount(1000000),
			StartDate:        date("2025-03-10"),
			EndDate:          date("2025-03-14"),
			ActualCheckInAt:  &checkIn,
			ActualCheckOutAt: &checkOut,
			Status:           model.RoomStatusCheckedOut,
		},
		{ID: "br-2", RoomTypeID: "rt-1", Price: amount(1000000), StartDate: date("2025-03-10"), EndDate: date("2025-03-14"), Status: model.RoomStatusCancelled},
	}

	tests := []struct {
		name      string
		booking   model.Booking
		wantTotal decimal.Decimal
		wantLeft  decimal.Decimal
		wantCode  int
		wantErr   bool
	}{
		{
			name:      "reprices on the actual stay",
			booking:   model.Booking{ID: "booking-1", HotelID: "hotel-1", Status: model.StatusConfirmed, DepositAmount: amount(500000), TotalAmount: amount(8000000)},
			wantTotal: amount(2000000),
			wantLeft:  amount(1500000),
		},
		{
			name:      "deposit above the total leaves nothing to pay",
			booking:   model.Booking{ID: "booking-1", HotelID: "hotel-1", Status: model.StatusPending, DepositAmount: amount(3000000)},
			wantTotal: amount(2000000),
			wantLeft:  decimal.Zero,
		},
		{
			name:     "already cancelled",
			booking:  model.Booking{ID: "booking-1", HotelID: "hotel-1", Status: model.StatusCancelled},
			wantErr:  true,
			wantCode: 400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.booking.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(tt.booking, nil)

			if !tt.wantErr {
				f.room.EXPECT().GetAllTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(rooms, nil)
				f.expectSnapshotPricing()
				f.booking.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
						total, _ := fields[model.FieldTotalAmount].(decimal.Decimal)
						left, _ := fields[model.FieldLeftAmount].(decimal.Decimal)

						assert.Equal(t, model.StatusCompleted, fields[model.FieldStatus])
						assert.True(t, tt.wantTotal.Equal(total), total.String())
						assert.True(t, tt.wantLeft.Equal(left), left.String())

						return nil
					})
			}

			err := f.svc.Complete(context.Background(), "booking-1")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_ChangeRoom(t *testing.T) {
	source := model.BookingRoom{
		ID:            "br-1",
		RoomID:        "room-1",
		RoomName:      "101",
		HotelID:       "hotel-1",
		BookingID:     "booking-1",
		BookingStatus: model.StatusConfirmed,
		Status:        model.RoomStatusCheckedIn,
		StartDate:     date("2025-03-10"),
		EndDate:       date("2025-03-12"),
	}
	target := availModel.LockedRoom{ID: "room-2", HotelID: "hotel-1", RoomTypeID: "rt-1", Number: "102", Status: roomModel.StatusAvailable}

	tests := []struct {
		name      string
		roomID    string
		setupMock func(f fixture)
		wantCode  int
		wantErr   bool
	}{
		{
			name:   "moves a checked in room and swaps the room states",
			roomID: "room-2",
			setupMock: func(f fixture) {
				f.availRepo.EXPECT().LockRoom(gomock.Any(), gomock.Any(), "room-2").Return(target, nil)
				f.availRepo.EXPECT().
					CountOverlaps(gomock.Any(), gomock.Any(), "room-2", date("2025-03-10"), date("2025-03-12"), "br-1").
					Return(0, nil)
				f.room.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, filter gDto.FilterGroup) error {
						assert.Equal(t, "br-1", filterValue(filter))
						assert.Equal(t, "room-2", fields[model.FieldRoomID])
						assert.Equal(t, "102", fields[model.FieldRoomName])

						return nil
					})
				gomock.InOrder(
					f.roomRepo.EXPECT().
						UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
						DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, filter gDto.FilterGroup) error {
							assert.Equal(t, "room-1", filterValue(filter))
							assert.Equal(t, roomModel.StatusAvailable, fields[roomModel.FieldStatus])

							return nil
						}),
					f.roomRepo.EXPECT().
						UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
						DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, filter gDto.FilterGroup) error {
							assert.Equal(t, "room-2", filterValue(filter))
							assert.Equal(t, roomModel.StatusOccupied, fields[roomModel.FieldStatus])

							return nil
						}),
				)
				f.logRepo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)
			},
		},
		{
			name:   "target booked over the stay",
			roomID: "room-2",
			setupMock: func(f fixture) {
				f.availRepo.EXPECT().LockRoom(gomock.Any(), gomock.Any(), "room-2").Return(target, nil)
				f.availRepo.EXPECT().CountOverlaps(gomock.Any(), gomock.Any(), "room-2", gomock.Any(), gomock.Any(), "br-1").Return(1, nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name:   "concurrent booking caught by the exclusion constraint",
			roomID: "room-2",
			setupMock: func(f fixture) {
				f.availRepo.EXPECT().LockRoom(gomock.Any(), gomock.Any(), "room-2").Return(target, nil)
				f.availRepo.EXPECT().CountOverlaps(gomock.Any(), gomock.Any(), "room-2", gomock.Any(), gomock.Any(), "br-1").Return(0, nil)
				f.room.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(&pq.Error{Code: "23P01"})
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name:   "target of another hotel",
			roomID: "room-9",
			setupMock: func(f fixture) {
				f.availRepo.EXPECT().LockRoom(gomock.Any(), gomock.Any(), "room-9").
					Return(availModel.LockedRoom{ID: "room-9", HotelID: "hotel-2", Number: "901", Status: roomModel.StatusAvailable}, nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name:      "same room",
			roomID:    "room-1",
			setupMock: func(_ fixture) {},
			wantErr:   true,
			wantCode:  400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.room.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(source, nil)
			tt.setupMock(f)

			err := f.svc.ChangeRoom(context.Background(), dto.ChangeRoomRequest{RoomID: tt.roomID}, "br-1")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_UpdateRoomDates(t *testing.T) {
	room := model.BookingRoom{
		ID:                "br-1",
		BookingRoomTypeID: "brt-1",
		RoomID:            "room-1",
		RoomName:          "101",
		HotelID:           "hotel-1",
		BookingID:         "booking-1",
		BookingStatus:     model.StatusConfirmed,
		Status:            model.RoomStatusPending,
		StartDate:         date("2025-03-10"),
		EndDate:           date("2025-03-12"),
	}
	roomType := model.BookingRoomType{ID: "brt-1", BookingID: "booking-1", StartDate: date("2025-03-10"), EndDate: date("2025-03-14")}

	tests := []struct {
		name      string
		req       dto.RoomDatesRequest
		setupMock func(f fixture)
		wantCode  int
		wantErr   bool
	}{
		{
			name: "moves inside the room type range",
			req:  dto.RoomDatesRequest{StartDate: "2025-03-12", EndDate: "2025-03-14"},
			setupMock: func(f fixture) {
				f.room.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(room, nil)
				f.roomType.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(roomType, nil)
				f.availRepo.EXPECT().LockRoom(gomock.Any(), gomock.Any(), "room-1").Return(availModel.LockedRoom{ID: "room-1"}, nil)
				f.availRepo.EXPECT().
					CountOverlaps(gomock.Any(), gomock.Any(), "room-1", date("2025-03-12"), date("2025-03-14"), "br-1").
					Return(0, nil)
				f.room.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, date("2025-03-12"), fields[model.FieldStartDate])
						assert.Equal(t, date("2025-03-14"), fields[model.FieldEndDate])
						assert.Nil(t, fields[model.FieldExtendedDate])

						return nil
					})
			},
		},
		{
			name: "overlaps another stay in the same room",
			req:  dto.RoomDatesRequest{StartDate: "2025-03-11", EndDate: "2025-03-14"},
			setupMock: func(f fixture) {
				f.room.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(room, nil)
				f.roomType.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(roomType, nil)
				f.availRepo.EXPECT().LockRoom(gomock.Any(), gomock.Any(), "room-1").Return(availModel.LockedRoom{ID: "room-1"}, nil)
				f.availRepo.EXPECT().
					CountOverlaps(gomock.Any(), gomock.Any(), "room-1", date("2025-03-11"), date("2025-03-14"), "br-1").
					Return(1, nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name: "outside the room type range",
			req:  dto.RoomDatesRequest{StartDate: "2025-03-13", EndDate: "2025-03-16"},
			setupMock: func(f fixture) {
				f.room.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(room, nil)
				f.roomType.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(roomType, nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name:      "end before start",
			req:       dto.RoomDatesRequest{StartDate: "2025-03-12", EndDate: "2025-03-11"},
			setupMock: func(_ fixture) {},
			wantErr:   true,
			wantCode:  400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.UpdateRoomDates(context.Background(), tt.req, "br-1")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_AddRoom(t *testing.T) {
	booking := model.Booking{ID: "booking-1", HotelID: "hotel-1", Status: model.StatusConfirmed, PrimaryGuestID: "guest-1"}
	roomType := model.BookingRoomType{
		ID:         "brt-1",
		BookingID:  "booking-1",
		RoomTypeID: "rt-1",
		Price:      amount(1000000),
		StartDate:  date("2025-03-10"),
		EndDate:    date("2025-03-12"),
		TotalRoom:  1,
	}
	free := availModel.LockedRoom{ID: "room-2", HotelID: "hotel-1", RoomTypeID: "rt-1", Number: "102", Status: roomModel.StatusAvailable}

	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantCode  int
		wantErr   bool
	}{
		{
			name: "links the primary guest and grows the room count",
			setupMock: func(f fixture) {
				f.roomType.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(roomType, nil)
				f.availRepo.EXPECT().LockRoom(gomock.Any(), gomock.Any(), "room-2").Return(free, nil)
				f.availRepo.EXPECT().
					CountOverlaps(gomock.Any(), gomock.Any(), "room-2", date("2025-03-10"), date("2025-03-12"), "").
					Return(0, nil)
				f.room.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, room model.BookingRoom) error {
						assert.Equal(t, "room-2", room.RoomID)
						assert.Equal(t, model.RoomStatusPending, room.Status)
						assert.True(t, amount(1000000).Equal(room.Price))

						return nil
					})
				f.guest.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, link model.BookingGuest) error {
						assert.Equal(t, "guest-1", link.GuestID)

						return nil
					})
				f.room.EXPECT().GetAllTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.BookingRoom{{ID: "br-1"}, {ID: "br-new"}}, nil)
				f.roomType.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, 2, fields[model.FieldTotalRoom])

						return nil
					})
			},
		},
		{
			name: "room already booked for the dates",
			setupMock: func(f fixture) {
				f.roomType.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(roomType, nil)
				f.availRepo.EXPECT().LockRoom(gomock.Any(), gomock.Any(), "room-2").Return(free, nil)
				f.availRepo.EXPECT().CountOverlaps(gomock.Any(), gomock.Any(), "room-2", gomock.Any(), gomock.Any(), "").Return(1, nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name: "room of another type",
			setupMock: func(f fixture) {
				other := free
				other.RoomTypeID = "rt-9"

				f.roomType.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(roomType, nil)
				f.availRepo.EXPECT().LockRoom(gomock.Any(), gomock.Any(), "room-2").Return(other, nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name: "unknown booking room type",
			setupMock: func(f fixture) {
				f.roomType.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.BookingRoomType{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.booking.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(booking, nil)
			tt.setupMock(f)

			id, err := f.svc.AddRoom(context.Background(), dto.AssignRoomRequest{RoomID: "room-2"}, "booking-1", "brt-1")

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

func TestBookingService_UpdateRoomActualTimes(t *testing.T) {
	checkIn := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	pending := model.BookingRoom{
		ID:            "br-1",
		RoomID:        "room-1",
		HotelID:       "hotel-1",
		BookingID:     "booking-1",
		BookingStatus: model.StatusConfirmed,
		Status:        model.RoomStatusPending,
		StartDate:     date("2025-03-10"),
		EndDate:       date("2025-03-12"),
	}
	staying := pending
	staying.Status = model.RoomStatusCheckedIn
	staying.ActualCheckInAt = &checkIn

	cancelled := pending
	cancelled.Status = model.RoomStatusCancelled

	tests := []struct {
		name      string
		room      model.BookingRoom
		req       dto.ActualTimesRequest
		setupMock func(t *testing.T, f fixture)
		wantCode  int
		wantErr   bool
	}{
		{
			name: "recorded arrival checks the room in",
			room: pending,
			req:  dto.ActualTimesRequest{CheckInAt: "2025-03-10T15:30:00Z"},
			setupMock: func(t *testing.T, f fixture) {
				f.room.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC), fields[model.FieldActualCheckInAt])
						assert.Equal(t, model.RoomStatusCheckedIn, fields[model.FieldStatus])

						return nil
					})
				f.roomRepo.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, roomModel.StatusOccupied, fields[roomModel.FieldStatus])

						return nil
					})
				f.logRepo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "recorded departure checks the room out",
			room: staying,
			req:  dto.ActualTimesRequest{CheckOutAt: "2025-03-12T09:00:00Z"},
			setupMock: func(t *testing.T, f fixture) {
				f.room.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, model.RoomStatusCheckedOut, fields[model.FieldStatus])

						return nil
					})
				f.roomRepo.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, roomModel.StatusDirty, fields[roomModel.FieldStatus])

						return nil
					})
				f.logRepo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "corrected arrival keeps the status",
			room: staying,
			req:  dto.ActualTimesRequest{CheckInAt: "2025-03-10T12:00:00Z"},
			setupMock: func(t *testing.T, f fixture) {
				f.room.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
						assert.NotContains(t, fields, model.FieldStatus)

						return nil
					})
			},
		},
		{
			name:      "arrival outside the booked dates",
			room:      pending,
			req:       dto.ActualTimesRequest{CheckInAt: "2025-03-14T10:00:00Z"},
			setupMock: func(_ *testing.T, _ fixture) {},
			wantErr:   true,
			wantCode:  400,
		},
		{
			name:      "departure before arrival",
			room:      staying,
			req:       dto.ActualTimesRequest{CheckOutAt: "2025-03-10T10:00:00Z"},
			setupMock: func(_ *testing.T, _ fixture) {},
			wantErr:   true,
			wantCode:  400,
		},
		{
			name:      "departure without arrival",
			room:      pending,
			req:       dto.ActualTimesRequest{CheckOutAt: "2025-03-12T10:00:00Z"},
			setupMock: func(_ *testing.T, _ fixture) {},
			wantErr:   true,
			wantCode:  400,
		},
		{
			name:      "cancelled room",
			room:      cancelled,
			req:       dto.ActualTimesRequest{CheckInAt: "2025-03-10T15:30:00Z"},
			setupMock: func(_ *testing.T, _ fixture) {},
			wantErr:   true,
			wantCode:  400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.room.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(tt.room, nil)
			tt.setupMock(t, f)

			err := f.svc.UpdateRoomActualTimes(context.Background(), tt.req, "br-1")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
