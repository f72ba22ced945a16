package bookings

import (
	"math"
	"time"
)

// PriceFor charges by elapsed hours, rounded to cents.
func PriceFor(start, end time.Time, pricePerHour float64) float64 {
	if !start.Before(end) {
		return 0
	}
	hours := end.Sub(start).Hours()
	return math.Round(hours*pricePerHour*100) / 100
}
