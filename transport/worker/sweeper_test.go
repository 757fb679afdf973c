package worker_test

import (
	"context"
	"errors"
	"hotel/config"
	otelMocks "hotel/infras/otel/mocks"
	"hotel/internal/domains/booking/model/dto"
	bookingMocks "hotel/internal/domains/booking/service/mocks"
	"hotel/transport/worker"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestSweeper_Run(t *testing.T) {
	tests := []struct {
		name      string
		hotels    []string
		setupMock func(booking *bookingMocks.MockBooking)
		wantErr   string
	}{
		{
			name: "all hotels when none configured",
			setupMock: func(booking *bookingMocks.MockBooking) {
				req := dto.SweepRequest{Date: "2025-03-10"}
				booking.EXPECT().CancelNoShows(gomock.Any(), req).Return(dto.NoShowResponse{CancelledRooms: 2, AffectedBookings: 1}, nil)
				booking.EXPECT().AutoCancel(gomock.Any(), req).Return(dto.AutoCancelResponse{MissingBookings: 1}, nil)
			},
		},
		{
			name:   "continues past a failing hotel",
			hotels: []string{"hotel-1", "hotel-2"},
			setupMock: func(booking *bookingMocks.MockBooking) {
				first := dto.SweepRequest{HotelID: "hotel-1", Date: "2025-03-10"}
				second := dto.SweepRequest{HotelID: "hotel-2", Date: "2025-03-10"}

				booking.EXPECT().CancelNoShows(gomock.Any(), first).Return(dto.NoShowResponse{}, errors.New("deadlock"))
				booking.EXPECT().AutoCancel(gomock.Any(), first).Return(dto.AutoCancelResponse{}, nil)
				booking.EXPECT().CancelNoShows(gomock.Any(), second).Return(dto.NoShowResponse{}, nil)
				booking.EXPECT().AutoCancel(gomock.Any(), second).Return(dto.AutoCancelResponse{}, nil)
			},
			wantErr: `no-show sweep for hotel "hotel-1": deadlock`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			booking := bookingMocks.NewMockBooking(ctrl)
			tt.setupMock(booking)

			cfg := &config.Config{}
			cfg.Booking.SweepHotelIDs = tt.hotels

			err := worker.NewSweeper(booking, cfg, otelMocks.NewOtel()).Run(context.Background(), "2025-03-10")
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)

				return
			}

			assert.NoError(t, err)
		})
	}
}
