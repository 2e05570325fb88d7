package clock_test

import (
	"testing"
	"time"

	"party-rental/internal/pkg/clock"

	"github.com/stretchr/testify/assert"
)

func TestRealClock(t *testing.T) {
	now := clock.NewRealClock().Now()
	assert.Equal(t, time.UTC, now.Location())
}

func TestMockClock(t *testing.T) {
	start := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)

	t.Run("fixed clock does not move", func(t *testing.T) {
		c := clock.NewMockClock(start)
		assert.Equal(t, start, c.Now())
		assert.Equal(t, start, c.Now())

		c.Add(time.Hour)
		assert.Equal(t, start.Add(time.Hour), c.Now())
	})

	t.Run("stepping clock advances after each read", func(t *testing.T) {
		c := clock.NewSteppingClock(start, time.Minute)
		assert.Equal(t, start, c.Now())
		assert.Equal(t, start.Add(time.Minute), c.Now())
		assert.Equal(t, start.Add(2*time.Minute), c.Now())
	})
}
