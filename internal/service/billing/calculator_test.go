package billing

import (
	"testing"
	"time"

	"github.com/JonathanBek0501/auragameclub/internal/domain"
)

func newTestCalculator() *Calculator {
	return NewCalculator(Config{HourlyRate: 10000, Currency: "UZS"})
}

func TestTimeCharge_ZeroElapsed(t *testing.T) {
	calc := newTestCalculator()

	if got := calc.TimeCharge(0); got != 0 {
		t.Errorf("expected 0 for zero elapsed, got %d", got)
	}
	if got := calc.TimeCharge(-time.Minute); got != 0 {
		t.Errorf("expected 0 for negative elapsed, got %d", got)
	}
}

func TestTimeCharge_ExactHour(t *testing.T) {
	calc := newTestCalculator()

	if got := calc.TimeCharge(time.Hour); got != 10000 {
		t.Errorf("expected one full rate for exactly one hour, got %d", got)
	}
	if got := calc.TimeCharge(3 * time.Hour); got != 30000 {
		t.Errorf("expected 30000 for three hours, got %d", got)
	}
}

func TestTimeCharge_RoundsUp(t *testing.T) {
	calc := newTestCalculator()

	// 90 minutes = 1.5 hours -> ceil(1.5 × 10000)
	if got := calc.TimeCharge(90 * time.Minute); got != 15000 {
		t.Errorf("expected 15000 for 90 minutes, got %d", got)
	}
	// One second over an hour must round up by a whole unit share.
	if got := calc.TimeCharge(time.Hour + time.Second); got != 10003 {
		t.Errorf("expected 10003 for 1h1s, got %d", got)
	}
	// Any positive elapsed charges at least 1.
	if got := calc.TimeCharge(time.Nanosecond); got != 1 {
		t.Errorf("expected minimum charge 1 for 1ns, got %d", got)
	}
}

func TestTimeCharge_Monotonic(t *testing.T) {
	calc := newTestCalculator()

	durations := []time.Duration{
		0, time.Millisecond, time.Second, time.Minute,
		30 * time.Minute, time.Hour, 90 * time.Minute,
		2 * time.Hour, 24 * time.Hour,
	}
	var prev int64 = -1
	for _, d := range durations {
		got := calc.TimeCharge(d)
		if got < prev {
			t.Errorf("charge decreased at %v: %d < %d", d, got, prev)
		}
		prev = got
	}
}

func TestItemsCharge(t *testing.T) {
	items := []domain.LineItem{
		{ID: "a", Name: "Coca-Cola 0.5L", UnitPrice: 7000, Quantity: 2},
		{ID: "b", Name: "Hot-Dog", UnitPrice: 12000, Quantity: 1},
	}

	if got := ItemsCharge(items); got != 26000 {
		t.Errorf("expected 26000, got %d", got)
	}
	if got := ItemsCharge(nil); got != 0 {
		t.Errorf("expected 0 for no items, got %d", got)
	}
}

func TestSessionTotal(t *testing.T) {
	calc := newTestCalculator()
	items := []domain.LineItem{
		{ID: "a", Name: "Coca-Cola 0.5L", UnitPrice: 7000, Quantity: 2},
		{ID: "b", Name: "Hot-Dog", UnitPrice: 12000, Quantity: 1},
	}

	// ceil(1.5h × 10000) + 26000
	if got := calc.SessionTotal(90*time.Minute, items); got != 41000 {
		t.Errorf("expected 41000, got %d", got)
	}
	if got := calc.SessionTotal(0, nil); got != 0 {
		t.Errorf("expected 0 for empty session, got %d", got)
	}
}
