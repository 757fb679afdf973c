package clock

import (
	"hotel/config"
	"time"

	"github.com/rs/zerolog/log"
)

type Clock interface {
	Now() time.Time
	Location() *time.Location
}

type systemClock struct {
	location *time.Location
}

// New returns a clock reading the system time in the configured timezone.
func New(cfg *config.Config) Clock {
	name := cfg.App.Timezone
	if name == "" {
		log.Warn().Msg("No timezone configured, using UTC as default")

		return &systemClock{location: time.UTC}
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().
			Err(err).
			Str("timezone", name).
			Msg("Failed to load timezone, falling back to UTC. Please use standard timezone names like 'Asia/Jakarta', 'UTC', 'America/New_York'")

		return &systemClock{location: time.UTC}
	}

	log.Info().
		Str("timezone", name).
		Str("location", loc.String()).
		Msg("Application timezone initialized")

	return &systemClock{location: loc}
}

func (c *systemClock) Now() time.Time {
	return time.Now().In(c.location)
}

func (c *systemClock) Location() *time.Location {
	return c.location
}

type fixedClock struct {
	now time.Time
}

// Fixed returns a clock frozen at now.
func Fixed(now time.Time) Clock {
	return &fixedClock{now: now}
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

func (c *fixedClock) Location() *time.Location {
	return c.now.Location()
}

// DateOf returns the calendar day t falls on in the clock location.
// Calendar days are represented as midnight UTC, matching postgres date columns.
func DateOf(c Clock, t time.Time) time.Time {
	t = t.In(c.Location())

	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar day.
func Today(c Clock) time.Time {
	return DateOf(c, c.Now())
}

// ParseDate parses a YYYY-MM-DD value into a calendar day.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(time.DateOnly, value)
}

// Days returns the number of calendar days between two dates.
func Days(from, to time.Time) int {
	from = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	to = time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)

	return int(to.Sub(from).Hours() / 24) //nolint:mnd
}

// AddDays shifts a calendar day by n days.
func AddDays(day time.Time, n int) time.Time {
	return day.AddDate(0, 0, n)
}
