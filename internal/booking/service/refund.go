package service

import (
	"time"

	"github.com/shopspring/decimal"
)

var half = decimal.NewFromFloat(0.5)

// ComputeRefund applies the cancellation window to the original amount:
// four or more calendar days before the start date the booking refunds in
// full, exactly three days refunds half, two or fewer refunds nothing.
// Rounding is half-up to two decimal places.
func ComputeRefund(startDate time.Time, originalAmount decimal.Decimal, today time.Time) decimal.Decimal {
	daysUntilStart := calendarDays(today, startDate)

	switch {
	case daysUntilStart >= 4:
		return originalAmount.Round(2)
	case daysUntilStart == 3:
		return originalAmount.Mul(half).Round(2)
	default:
		return decimal.Zero.Round(2)
	}
}

// calendarDays counts whole calendar days from a to b, ignoring the time of
// day on either side.
func calendarDays(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	start := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	end := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours() / 24)
}
