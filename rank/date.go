package rank

import (
	"math"
	"time"
)

// dateDecayDays is the exponential decay constant for date proximity:
// the score falls to 1/e at this many days of distance. A fixed design
// parameter, not user-configurable.
const dateDecayDays = 10.0

const millisPerDay = 86_400_000

// DateProximity computes a bounded [0,1] score that decays exponentially
// with the absolute distance between the document's creation time and the
// target date, measured in fractional days from the millisecond difference.
//
// Reference points: same instant 1.0, one day ~0.905, seven days ~0.497,
// thirty days ~0.0498.
func DateProximity(createdAt, target time.Time) float64 {
	millis := math.Abs(float64(createdAt.Sub(target).Milliseconds()))
	days := millis / millisPerDay
	return clamp01(math.Exp(-days / dateDecayDays))
}
