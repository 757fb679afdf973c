package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotel/config"
	"hotel/infras/otel/mocks"
	availMocks "hotel/internal/domains/availability/mocks"
	availModel "hotel/internal/domains/availability/model"
	availability "hotel/internal/domains/availability/service"
	"hotel/internal/domains/booking/event"
	bookingMocks "hotel/internal/domains/booking/mocks"
	bookingModel "hotel/internal/domains/booking/model"
	reportMocks "hotel/internal/domains/report/mocks"
	"hotel/internal/domains/report/model"
	"hotel/internal/domains/report/model/dto"
	"hotel/internal/domains/report/service"
	roomMocks "hotel/internal/domains/room/mocks"
	roomModel "hotel/internal/domains/room/model"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/clock"
	"hotel/shared/constant"
	"hotel/shared/failure"
)

var now = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

type fixture struct {
	repo      *reportMocks.MockReport
	room      *roomMocks.MockRoom
	guest     *bookingMocks.MockBookingGuest
	availRepo *availMocks.MockAvailability
	cache     *cacheMocks.MockRedisCache
	svc       service.Report
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		repo:      reportMocks.NewMockReport(ctrl),
		room:      roomMocks.NewMockRoom(ctrl),
		guest:     bookingMocks.NewMockBookingGuest(ctrl),
		availRepo: availMocks.NewMockAvailability(ctrl),
		cache:     cacheMocks.NewMockRedisCache(ctrl),
	}

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Booking.PeakThreshold = 75

	otel := mocks.NewOtel()

	f.svc = service.New(f.repo, f.room, f.guest, availability.New(f.availRepo, otel), cfg, f.cache, clock.Fixed(now), otel)

	return f
}

func date(value string) time.Time {
	d, _ := clock.ParseDate(value)

	return d
}

func hotelCtx() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyHotelID, "hotel-1")
}

func strPtr(s string) *string {
	return &s
}

func TestReportService_RoomMap(t *testing.T) {
	rooms := []roomModel.HotelRoom{
		{ID: "room-1", Number: "101", RoomTypeID: "rt-1", RoomTypeName: "Deluxe", Floor: 1, Status: roomModel.StatusAvailable},
		{ID: "room-2", Number: "102", RoomTypeID: "rt-1", RoomTypeName: "Deluxe", Floor: 1, Status: roomModel.StatusAvailable},
	}

	tests := []struct {
		name      string
		query     dto.RoomMapQuery
		setupMock func(f fixture)
		wantErr   bool
		wantCode  int
		check     func(t *testing.T, res []dto.RoomMapItem)
	}{
		{
			name:  "marks occupied days per room",
			query: dto.RoomMapQuery{From: "2025-03-10", To: "2025-03-12"},
			setupMock: func(f fixture) {
				f.room.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(rooms, nil)
				f.repo.EXPECT().Stays(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, q model.StayQuery) ([]model.Stay, error) {
						assert.Equal(t, "hotel-1", q.HotelID)
						assert.Equal(t, date("2025-03-10"), *q.From)
						assert.Equal(t, date("2025-03-13"), *q.To)

						return []model.Stay{
							{BookingRoomID: "br-1", RoomID: "room-1", BookingID: "b-1", StartDate: date("2025-03-09"), EndDate: date("2025-03-11")},
						}, nil
					})
			},
			check: func(t *testing.T, res []dto.RoomMapItem) {
				require.Len(t, res, 2)
				require.Len(t, res[0].Timeline, 3)
				assert.Equal(t, roomModel.StatusOccupied, res[0].Timeline[0].Status)
				assert.Equal(t, "b-1", *res[0].Timeline[0].BookingID)
				assert.Equal(t, roomModel.StatusAvailable, res[0].Timeline[1].Status)
				assert.Nil(t, res[0].Timeline[1].BookingID)
				for _, segment := range res[1].Timeline {
					assert.Equal(t, roomModel.StatusAvailable, segment.Status)
				}
			},
		},
		{
			name:  "single day when to is omitted",
			query: dto.RoomMapQuery{From: "2025-03-10"},
			setupMock: func(f fixture) {
				f.room.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(rooms[:1], nil)
				f.repo.EXPECT().Stays(gomock.Any(), gomock.Any()).Return([]model.Stay{}, nil)
			},
			check: func(t *testing.T, res []dto.RoomMapItem) {
				require.Len(t, res, 1)
				require.Len(t, res[0].Timeline, 1)
				assert.Equal(t, "2025-03-10", res[0].Timeline[0].Date)
			},
		},
		{
			name:      "to before from",
			query:     dto.RoomMapQuery{From: "2025-03-10", To: "2025-03-09"},
			setupMock: func(_ fixture) {},
			wantErr:   true,
			wantCode:  400,
		},
		{
			name:      "range too long",
			query:     dto.RoomMapQuery{From: "2025-03-01", To: "2025-05-01"},
			setupMock: func(_ fixture) {},
			wantErr:   true,
			wantCode:  400,
		},
		{
			name:  "rooms lookup fails",
			query: dto.RoomMapQuery{From: "2025-03-10"},
			setupMock: func(f fixture) {
				f.room.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))
			},
			wantErr:  true,
			wantCode: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.RoomMap(hotelCtx(), tt.query)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			tt.check(t, res)
		})
	}
}

func TestReportService_RoomMap_RequiresHotel(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.RoomMap(context.Background(), dto.RoomMapQuery{From: "2025-03-10"})
	require.Error(t, err)
	assert.Equal(t, 400, failure.GetCode(err))
}

func TestReportService_RoomSchedule(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Stays(gomock.Any(), model.StayQuery{
		HotelID: "hotel-1", RoomID: "room-1", From: ptrTime(date("2025-03-01")), To: ptrTime(date("2025-03-31")),
	}).Return([]model.Stay{
		{BookingRoomID: "br-1", BookingID: "b-1", StartDate: date("2025-03-02"), EndDate: date("2025-03-05"), BookingStatus: "checked_in", PrimaryGuestName: strPtr("Ana")},
	}, nil)

	res, err := f.svc.RoomSchedule(hotelCtx(), dto.RangeQuery{From: "2025-03-01", To: "2025-03-31"}, "room-1")
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "2025-03-02", res[0].Start)
	assert.Equal(t, "2025-03-05", res[0].End)
	assert.Equal(t, "Ana", *res[0].GuestName)

	_, err = f.svc.RoomSchedule(hotelCtx(), dto.RangeQuery{From: "2025-03-01"}, "room-1")
	require.Error(t, err)
	assert.Equal(t, 400, failure.GetCode(err))
}

func ptrTime(t time.Time) *time.Time {
	return &t
}

func TestReportService_RoomHistory(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Stays(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, q model.StayQuery) ([]model.Stay, error) {
			assert.Nil(t, q.From)
			assert.Nil(t, q.To)

			return []model.Stay{
				{BookingRoomID: "br-1", BookingID: "b-1", StartDate: date("2025-02-01"), EndDate: date("2025-02-03"), Status: "checked_out"},
				{BookingRoomID: "br-2", BookingID: "b-2", StartDate: date("2025-03-01"), EndDate: date("2025-03-04"), Status: "checked_in"},
			}, nil
		})
	f.guest.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return([]bookingModel.BookingGuest{
		{BookingRoomID: "br-1", GuestID: "g-1", FullName: "Ana"},
		{BookingRoomID: "br-2", GuestID: "g-2", FullName: "Budi"},
		{BookingRoomID: "br-2", GuestID: "g-3", FullName: "Citra"},
	}, nil)

	res, err := f.svc.RoomHistory(hotelCtx(), dto.RangeQuery{}, "room-1")
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Len(t, res[0].Guests, 1)
	assert.Len(t, res[1].Guests, 2)
	assert.Equal(t, "checked_in", res[1].RoomStatus)
}

func TestReportService_RoomHistory_NoStays(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Stays(gomock.Any(), gomock.Any()).Return([]model.Stay{}, nil)

	res, err := f.svc.RoomHistory(hotelCtx(), dto.RangeQuery{From: "2025-01-01"}, "room-1")
	require.NoError(t, err)
	assert.Empty(t, res)

	_, err = f.svc.RoomHistory(hotelCtx(), dto.RangeQuery{From: "bad"}, "room-1")
	require.Error(t, err)
	assert.Equal(t, 400, failure.GetCode(err))
}

func TestReportService_PeakDays(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().DailyOccupancy(gomock.Any(), "hotel-1", date("2025-03-01"), date("2025-03-04")).Return([]model.DayOccupancy{
		{Day: date("2025-03-01"), TotalRooms: 4, BookedRooms: 3},
		{Day: date("2025-03-02"), TotalRooms: 4, BookedRooms: 2},
		{Day: date("2025-03-03"), TotalRooms: 3, BookedRooms: 3},
		{Day: date("2025-03-04"), TotalRooms: 0, BookedRooms: 0},
	}, nil)

	res, err := f.svc.PeakDays(hotelCtx(), dto.PeakDaysQuery{From: "2025-03-01", To: "2025-03-04"})
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "2025-03-01", res[0].Date)
	assert.InDelta(t, 75.0, res[0].Percentage, 0.001)
	assert.InDelta(t, 100.0, res[1].Percentage, 0.001)
}

func TestReportService_CurrentBooking(t *testing.T) {
	tests := []struct {
		name     string
		stays    []model.Stay
		wantErr  bool
		wantCode int
		wantID   string
	}{
		{
			name: "latest start wins",
			stays: []model.Stay{
				{BookingRoomID: "br-1", BookingID: "b-1", StartDate: date("2025-03-05"), EndDate: date("2025-03-11")},
				{BookingRoomID: "br-2", BookingID: "b-2", StartDate: date("2025-03-10"), EndDate: date("2025-03-12")},
			},
			wantID: "b-2",
		},
		{
			name: "stay ending today is not current",
			stays: []model.Stay{
				{BookingRoomID: "br-1", BookingID: "b-1", StartDate: date("2025-03-05"), EndDate: date("2025-03-10")},
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name:     "no stays",
			stays:    []model.Stay{},
			wantErr:  true,
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.repo.EXPECT().Stays(gomock.Any(), gomock.Any()).Return(tt.stays, nil)

			res, err := f.svc.CurrentBooking(hotelCtx(), "room-1")
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantID, res.BookingID)
		})
	}
}

func TestReportService_BookedRooms(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().BookedRoomCount(gomock.Any(), "hotel-1", date("2025-03-10")).Return(6, nil)
	f.availRepo.EXPECT().OccupancyOn(gomock.Any(), "hotel-1", date("2025-03-10")).Return(availModel.Occupancy{TotalRooms: 10, BookedRooms: 5}, nil)

	res, err := f.svc.BookedRooms(hotelCtx(), dto.BookedRoomsQuery{Date: "2025-03-10"})
	require.NoError(t, err)
	assert.Equal(t, dto.BookedRoomsResponse{Date: "2025-03-10", BookedRooms: 6, TotalRooms: 10}, res)

	_, err = f.svc.BookedRooms(hotelCtx(), dto.BookedRoomsQuery{Date: "10-03-2025"})
	require.Error(t, err)
	assert.Equal(t, 400, failure.GetCode(err))
}

func TestReportService_Availability(t *testing.T) {
	t.Run("defaults to tonight", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Availability(gomock.Any(), "hotel-1", "", date("2025-03-10"), date("2025-03-11")).
			Return(model.AvailabilityCounts{Rooms: 10, Assigned: 4, Unassigned: 2}, nil)

		res, err := f.svc.Availability(hotelCtx(), dto.AvailabilityQuery{})
		require.NoError(t, err)
		assert.Equal(t, 4, res.AvailableRooms)
		assert.Equal(t, "2025-03-10", res.From)
		assert.Equal(t, "2025-03-11", res.To)
	})

	t.Run("never negative", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Availability(gomock.Any(), "hotel-1", "rt-1", date("2025-03-12"), date("2025-03-14")).
			Return(model.AvailabilityCounts{Rooms: 3, Assigned: 2, Unassigned: 4}, nil)

		res, err := f.svc.Availability(hotelCtx(), dto.AvailabilityQuery{RoomTypeID: "rt-1", From: "2025-03-12", To: "2025-03-14"})
		require.NoError(t, err)
		assert.Zero(t, res.AvailableRooms)
	})

	t.Run("empty range", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Availability(hotelCtx(), dto.AvailabilityQuery{From: "2025-03-12", To: "2025-03-12"})
		require.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})
}

func TestReportService_HandleBookingEvent(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Clear(gomock.Any(), constant.CachePrefixReport+constant.Asterix).Return(nil)
	require.NoError(t, f.svc.HandleBookingEvent(context.Background(), event.Event{Type: "booking.created", EntityID: "b-1"}))

	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))
	require.Error(t, f.svc.HandleBookingEvent(context.Background(), event.Event{Type: "booking.created", EntityID: "b-1"}))
}
