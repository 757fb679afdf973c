package clock_test

import (
	"hotel/config"
	"hotel/shared/clock"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.Timezone = "Asia/Ho_Chi_Minh"

	c := clock.New(cfg)
	assert.Equal(t, "Asia/Ho_Chi_Minh", c.Location().String())
	assert.False(t, c.Now().IsZero())

	cfg.App.Timezone = "Not/AZone"
	assert.Equal(t, time.UTC, clock.New(cfg).Location())

	cfg.App.Timezone = ""
	assert.Equal(t, time.UTC, clock.New(cfg).Location())
}

func TestFixedAndDates(t *testing.T) {
	now := time.Date(2024, 3, 10, 22, 30, 0, 0, time.UTC)
	c := clock.Fixed(now)

	assert.Equal(t, now, c.Now())
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), clock.Today(c))

	loc := time.FixedZone("UTC+7", 7*60*60)
	late := clock.Fixed(time.Date(2024, 3, 10, 20, 0, 0, 0, time.UTC).In(loc))
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), clock.Today(late))
	assert.Equal(t, time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC), clock.AddDays(clock.Today(late), 1))

	d, err := clock.ParseDate("2024-03-12")
	assert.NoError(t, err)
	assert.Equal(t, 2, clock.Days(clock.Today(c), d))

	_, err = clock.ParseDate("12/03/2024")
	assert.Error(t, err)
}

func TestDays(t *testing.T) {
	tests := []struct {
		name     string
		from, to time.Time
		expected int
	}{
		{"same day", time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), time.Date(2024, 1, 1, 23, 0, 0, 0, time.UTC), 0},
		{"two nights", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), 2},
		{"backwards", time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), -2},
		{"across dst-less month end", time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, clock.Days(tt.from, tt.to))
		})
	}
}
