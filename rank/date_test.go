package rank

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateProximity(t *testing.T) {
	base := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("same instant scores one", func(t *testing.T) {
		assert.Equal(t, 1.0, DateProximity(base, base))
		assert.Equal(t, 1.0, DateProximity(time.Now(), time.Now().Truncate(0)))
	})

	t.Run("reference decay points", func(t *testing.T) {
		tests := []struct {
			days     int
			expected float64
		}{
			{1, 0.905},
			{7, 0.497},
			{30, 0.0498},
		}
		for _, tt := range tests {
			score := DateProximity(base.AddDate(0, 0, tt.days), base)
			assert.InDelta(t, tt.expected, score, 0.001, "days=%d", tt.days)
		}
	})

	t.Run("symmetric in direction", func(t *testing.T) {
		before := DateProximity(base.AddDate(0, 0, -3), base)
		after := DateProximity(base.AddDate(0, 0, 3), base)
		assert.Equal(t, before, after)
	})

	t.Run("fractional days from millisecond difference", func(t *testing.T) {
		halfDay := DateProximity(base.Add(12*time.Hour), base)
		fullDay := DateProximity(base.Add(24*time.Hour), base)
		assert.Greater(t, halfDay, fullDay)
		assert.InDelta(t, 0.951, halfDay, 0.001)
	})

	t.Run("monotonically non-increasing in distance", func(t *testing.T) {
		prev := 1.1
		for days := 0; days <= 120; days += 3 {
			score := DateProximity(base.AddDate(0, 0, days), base)
			assert.LessOrEqual(t, score, prev, "days=%d", days)
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 1.0)
			prev = score
		}
	})
}
