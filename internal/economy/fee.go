package economy

import (
	"math/rand"
	"time"
)

const (
	feePercentMin = 5
	feePercentMax = 15
)

// FeePercentForDay returns the transfer fee percentage for the calendar day
// of t. The draw is seeded from that day's 12:00 UTC, so every transfer on
// the same day sees the identical percentage no matter when or how often it
// is computed. Range is [5, 15] inclusive.
func FeePercentForDay(t time.Time) int {
	day := t.UTC()
	noon := time.Date(day.Year(), day.Month(), day.Day(), 12, 0, 0, 0, time.UTC)

	rng := rand.New(rand.NewSource(noon.Unix()))
	return feePercentMin + rng.Intn(feePercentMax-feePercentMin+1)
}
