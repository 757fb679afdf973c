package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/report/model"
	"hotel/shared/constant"
	"hotel/shared/logger"
	"time"
)

const effectiveEnd = "COALESCE(br.extended_date, br.end_date)"

var (
	staysQuery = fmt.Sprintf(`SELECT br.id AS booking_room_id, br.room_id, brt.booking_id, br.start_date,
	%[6]s AS end_date, br.status, b.status AS booking_status,
	g.full_name AS primary_guest_name, g.phone AS primary_guest_phone
FROM %[1]s br
JOIN %[2]s brt ON brt.id = br.booking_room_type_id
JOIN %[3]s b ON b.id = brt.booking_id
JOIN %[4]s hr ON hr.id = br.room_id
LEFT JOIN %[5]s g ON g.id = b.primary_guest_id
WHERE br.status <> '%[7]s'
	AND ($1 = '' OR hr.hotel_id::text = $1)
	AND ($2 = '' OR br.room_id::text = $2)
	AND ($3::date IS NULL OR %[6]s > $3::date)
	AND ($4::date IS NULL OR br.start_date < $4::date)
ORDER BY br.start_date, br.room_id`,
		model.BookingRoomTableName, model.BookingRoomTypeTableName, model.BookingTableName, model.RoomTableName,
		model.GuestTableName, effectiveEnd, model.RoomStatusCancelled)

	dailyOccupancyQuery = fmt.Sprintf(`SELECT d::date AS day,
	(SELECT COUNT(*) FROM %[1]s WHERE hotel_id = $1) AS total_rooms,
	(SELECT COUNT(DISTINCT br.room_id) FROM %[2]s br JOIN %[1]s hr ON hr.id = br.room_id
		WHERE hr.hotel_id = $1 AND br.status <> '%[3]s' AND br.start_date <= d::date AND %[4]s > d::date) AS booked_rooms
FROM generate_series($2::date, $3::date, interval '1 day') AS d
ORDER BY day`,
		model.RoomTableName, model.BookingRoomTableName, model.RoomStatusCancelled, effectiveEnd)

	bookedRoomCountQuery = fmt.Sprintf(`SELECT COALESCE(SUM(brt.total_room), 0) FROM %s brt
JOIN %s b ON b.id = brt.booking_id
WHERE b.hotel_id = $1 AND b.status NOT IN ('%s', '%s') AND b.start_date <= $2 AND b.end_date >= $2`,
		model.BookingRoomTypeTableName, model.BookingTableName, model.BookingStatusCancelled, model.BookingStatusMissing)

	availabilityQuery = fmt.Sprintf(`SELECT
	(SELECT COUNT(*) FROM %[1]s hr
		WHERE hr.hotel_id = $1 AND ($2 = '' OR hr.room_type_id::text = $2) AND hr.status = '%[5]s') AS rooms,
	(SELECT COUNT(DISTINCT br.room_id) FROM %[2]s br JOIN %[1]s hr ON hr.id = br.room_id
		WHERE hr.hotel_id = $1 AND ($2 = '' OR hr.room_type_id::text = $2) AND hr.status = '%[5]s'
		AND br.status NOT IN ('%[6]s', '%[7]s') AND br.start_date < $4 AND %[9]s > $3) AS assigned,
	(SELECT COALESCE(SUM(GREATEST(brt.total_room - (
			SELECT COUNT(*) FROM %[2]s br
			WHERE br.booking_room_type_id = brt.id AND br.start_date < $4 AND %[9]s > $3), 0)), 0)
		FROM %[3]s brt JOIN %[4]s b ON b.id = brt.booking_id
		WHERE b.hotel_id = $1 AND b.status = '%[8]s' AND ($2 = '' OR brt.room_type_id::text = $2)
		AND brt.start_date < $4 AND brt.end_date > $3) AS unassigned`,
		model.RoomTableName, model.BookingRoomTableName, model.BookingRoomTypeTableName, model.BookingTableName,
		model.HotelRoomAvailable, model.RoomStatusCancelled, model.RoomStatusCheckedOut, model.BookingStatusConfirmed, effectiveEnd)
)

type Report interface {
	Stays(ctx context.Context, query model.StayQuery) ([]model.Stay, error)
	DailyOccupancy(ctx context.Context, hotelID string, from, to time.Time) ([]model.DayOccupancy, error)
	BookedRoomCount(ctx context.Context, hotelID string, date time.Time) (int, error)
	Availability(ctx context.Context, hotelID, roomTypeID string, from, to time.Time) (model.AvailabilityCounts, error)
}

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Report {
	return &repositoryImpl{
		db:   db,
		otel: otel,
	}
}

// Stays lists the non-cancelled stays intersecting [From, To), oldest first.
func (r *repositoryImpl) Stays(ctx context.Context, query model.StayQuery) ([]model.Stay, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".report.Stays")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, staysQuery)

	stays := []model.Stay{}
	if err := r.db.Read.SelectContext(ctx, &stays, staysQuery, query.HotelID, query.RoomID, query.From, query.To); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get stays: %w", err)
	}

	return stays, nil
}

// DailyOccupancy returns one row per day of [from, to], both inclusive.
func (r *repositoryImpl) DailyOccupancy(ctx context.Context, hotelID string, from, to time.Time) ([]model.DayOccupancy, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".report.DailyOccupancy")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, dailyOccupancyQuery)

	days := []model.DayOccupancy{}
	if err := r.db.Read.SelectContext(ctx, &days, dailyOccupancyQuery, hotelID, from, to); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get daily occupancy: %w", err)
	}

	return days, nil
}

// BookedRoomCount sums the reserved rooms of the live bookings spanning date, end day included.
func (r *repositoryImpl) BookedRoomCount(ctx context.Context, hotelID string, date time.Time) (int, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".report.BookedRoomCount")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, bookedRoomCountQuery)

	var count int
	if err := r.db.Read.GetContext(ctx, &count, bookedRoomCountQuery, hotelID, date); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to count booked rooms: %w", err)
	}

	return count, nil
}

// Availability counts the available rooms and the reservations holding them over [from, to).
func (r *repositoryImpl) Availability(ctx context.Context, hotelID, roomTypeID string, from, to time.Time) (model.AvailabilityCounts, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".report.Availability")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, availabilityQuery)

	var counts model.AvailabilityCounts
	if err := r.db.Read.GetContext(ctx, &counts, availabilityQuery, hotelID, roomTypeID, from, to); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return counts, fmt.Errorf("failed to get availability: %w", err)
	}

	return counts, nil
}
