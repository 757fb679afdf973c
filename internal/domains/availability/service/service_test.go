package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"hotel/infras/otel/mocks"
	availabilityMocks "hotel/internal/domains/availability/mocks"
	"hotel/internal/domains/availability/model"
	"hotel/internal/domains/availability/service"
	"hotel/shared/failure"
)

func day(d int) time.Time {
	return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name           string
		s1, e1, s2, e2 time.Time
		expected       bool
	}{
		{"identical", day(1), day(3), day(1), day(3), true},
		{"partial head", day(1), day(3), day(2), day(5), true},
		{"contained", day(1), day(10), day(3), day(4), true},
		{"back to back", day(1), day(3), day(3), day(5), false},
		{"before", day(5), day(7), day(1), day(3), false},
		{"checkout on checkin day", day(3), day(5), day(1), day(3), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, service.Overlaps(tt.s1, tt.e1, tt.s2, tt.e2))
			assert.Equal(t, tt.expected, service.Overlaps(tt.s2, tt.e2, tt.s1, tt.e1))
		})
	}
}

func TestAvailabilityService_EnsureRoomAvailable(t *testing.T) {
	tests := []struct {
		name       string
		start, end time.Time
		setupMock  func(repo *availabilityMocks.MockAvailability)
		wantCode   int
		wantErr    bool
		wantMsg    string
	}{
		{
			name:  "free room",
			start: day(1),
			end:   day(3),
			setupMock: func(repo *availabilityMocks.MockAvailability) {
				repo.EXPECT().CountOverlaps(gomock.Any(), gomock.Any(), "room-1", day(1), day(3), "br-1").Return(0, nil)
			},
		},
		{
			name:  "overlapping booking",
			start: day(1),
			end:   day(3),
			setupMock: func(repo *availabilityMocks.MockAvailability) {
				repo.EXPECT().CountOverlaps(gomock.Any(), gomock.Any(), "room-1", day(1), day(3), "br-1").Return(1, nil)
			},
			wantErr:  true,
			wantCode: 400,
			wantMsg:  "room 101 is not available for selected dates",
		},
		{
			name:      "empty interval",
			start:     day(3),
			end:       day(3),
			setupMock: func(_ *availabilityMocks.MockAvailability) {},
			wantErr:   true,
			wantCode:  400,
		},
		{
			name:  "repository error",
			start: day(1),
			end:   day(3),
			setupMock: func(repo *availabilityMocks.MockAvailability) {
				repo.EXPECT().CountOverlaps(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(0, errors.New("db down"))
			},
			wantErr:  true,
			wantCode: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := availabilityMocks.NewMockAvailability(ctrl)
			tt.setupMock(repo)

			svc := service.New(repo, mocks.NewOtel())

			err := svc.EnsureRoomAvailable(context.Background(), nil, "room-1", "101", tt.start, tt.end, "br-1")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				if tt.wantMsg != "" {
					assert.EqualError(t, err, tt.wantMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAvailabilityService_LockRoom(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := availabilityMocks.NewMockAvailability(ctrl)
	svc := service.New(repo, mocks.NewOtel())

	repo.EXPECT().LockRoom(gomock.Any(), gomock.Any(), "room-1").Return(model.LockedRoom{ID: "room-1", Number: "101"}, nil)
	repo.EXPECT().LockRoom(gomock.Any(), gomock.Any(), "room-2").Return(model.LockedRoom{}, nil)

	room, err := svc.LockRoom(context.Background(), nil, "room-1")
	assert.NoError(t, err)
	assert.Equal(t, "101", room.Number)

	_, err = svc.LockRoom(context.Background(), nil, "room-2")
	assert.Equal(t, 404, failure.GetCode(err))
}

func TestOccupancy_Percentages(t *testing.T) {
	assert.InDelta(t, 20.0, model.Occupancy{TotalRooms: 10, BookedRooms: 8}.AvailablePercentage(), 0.001)
	assert.InDelta(t, 80.0, model.Occupancy{TotalRooms: 10, BookedRooms: 8}.BookedPercentage(), 0.001)
	assert.Zero(t, model.Occupancy{}.AvailablePercentage())
	assert.Zero(t, model.Occupancy{TotalRooms: 2, BookedRooms: 3}.AvailablePercentage())
}
