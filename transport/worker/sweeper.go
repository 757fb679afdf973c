package worker

import (
	"context"
	"errors"
	"fmt"
	"hotel/config"
	"hotel/infras/otel"
	"hotel/internal/domains/booking/model/dto"
	bookingService "hotel/internal/domains/booking/service"
	"hotel/shared/constant"

	"github.com/rs/zerolog/log"
)

// Sweeper runs the no-show and auto-cancel sweeps once per configured hotel.
// With no hotels configured a single sweep covers every hotel.
type Sweeper struct {
	booking bookingService.Booking
	cfg     *config.Config
	otel    otel.Otel
}

func NewSweeper(booking bookingService.Booking, cfg *config.Config, otel otel.Otel) *Sweeper {
	return &Sweeper{
		booking: booking,
		cfg:     cfg,
		otel:    otel,
	}
}

// Run sweeps as of date (YYYY-MM-DD, empty for today) and keeps going past hotel failures.
func (s *Sweeper) Run(ctx context.Context, date string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Sweep")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	hotels := s.cfg.Booking.SweepHotelIDs
	if len(hotels) == 0 {
		hotels = []string{""}
	}

	var errs []error

	for _, hotelID := range hotels {
		req := dto.SweepRequest{HotelID: hotelID, Date: date}

		noShow, err := s.booking.CancelNoShows(ctx, req)
		if err != nil {
			log.Error().Err(err).Str("hotel_id", hotelID).Msg("failed to cancel no-show rooms")
			errs = append(errs, fmt.Errorf("no-show sweep for hotel %q: %w", hotelID, err))
		} else {
			log.Info().Str("hotel_id", hotelID).
				Int("cancelled_rooms", noShow.CancelledRooms).
				Int("affected_bookings", noShow.AffectedBookings).
				Msg("no-show sweep finished")
		}

		autoCancel, err := s.booking.AutoCancel(ctx, req)
		if err != nil {
			log.Error().Err(err).Str("hotel_id", hotelID).Msg("failed to auto-cancel bookings")
			errs = append(errs, fmt.Errorf("auto-cancel sweep for hotel %q: %w", hotelID, err))

			continue
		}

		log.Info().Str("hotel_id", hotelID).Int("missing_bookings", autoCancel.MissingBookings).Msg("auto-cancel sweep finished")
	}

	return errors.Join(errs...)
}
