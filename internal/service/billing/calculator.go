// Package billing holds the pure charge computations. Everything here is
// side-effect free and works in whole currency units (int64) so rounding is
// exact and reproducible.
package billing

import (
	"time"

	"github.com/JonathanBek0501/auragameclub/internal/domain"
)

// Config holds the pricing configuration.
type Config struct {
	// HourlyRate is the room charge per hour in smallest currency units.
	HourlyRate int64
	Currency   string
}

// DefaultConfig returns the club's standard pricing.
func DefaultConfig() Config {
	return Config{
		HourlyRate: 10000,
		Currency:   "UZS",
	}
}

type Calculator struct {
	cfg Config
}

func NewCalculator(cfg Config) *Calculator {
	if cfg.HourlyRate <= 0 {
		cfg = DefaultConfig()
	}
	return &Calculator{cfg: cfg}
}

func (c *Calculator) Currency() string { return c.cfg.Currency }

func (c *Calculator) HourlyRate() int64 { return c.cfg.HourlyRate }

// TimeCharge is ceil(elapsed hours × hourly rate): any partial hour is
// rounded up to the next whole currency unit, so any positive elapsed time
// charges at least 1. Computed entirely in integers; the sub-hour remainder
// is under an hour in nanoseconds, so the cross-multiplication cannot
// overflow for any realistic rate.
func (c *Calculator) TimeCharge(elapsed time.Duration) int64 {
	if elapsed <= 0 {
		return 0
	}
	const nsPerHour = int64(time.Hour)
	hours := int64(elapsed / time.Hour)
	rem := int64(elapsed % time.Hour)

	charge := hours * c.cfg.HourlyRate
	if rem > 0 {
		charge += (rem*c.cfg.HourlyRate + nsPerHour - 1) / nsPerHour
	}
	return charge
}

// ItemsCharge sums unit price × quantity over the attached items. Quantities
// and prices are validated at attach time, not here.
func ItemsCharge(items []domain.LineItem) int64 {
	var sum int64
	for _, it := range items {
		sum += it.UnitPrice * int64(it.Quantity)
	}
	return sum
}

// SessionTotal is the amount owed for a session: time charge plus items.
func (c *Calculator) SessionTotal(elapsed time.Duration, items []domain.LineItem) int64 {
	return c.TimeCharge(elapsed) + ItemsCharge(items)
}
