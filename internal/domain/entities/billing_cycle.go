package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthKeyLayout is the layout of a billing cycle identifier.
const MonthKeyLayout = "2006-01"

// BillingCycle is one period of water readings and their apportioned shares.
//
// Storage model (DynamoDB):
//   - PK: id (month key, e.g. "2025-03"), one cycle per month
//   - GSI1 (period_label-index): period_label
//
// Readings are embedded in the cycle item, so the cycle owns them: they are
// written and deleted together with it.
type BillingCycle struct {
	ID               string            `json:"id"`
	PeriodLabel      string            `json:"period_label"`
	CycleDate        time.Time         `json:"cycle_date"`
	InputTotals      []decimal.Decimal `json:"input_totals"`
	TotalAmount      decimal.Decimal   `json:"total_amount"`
	TotalConsumption decimal.Decimal   `json:"total_consumption"`
	UnitPrice        decimal.Decimal   `json:"unit_price"`
	Readings         []CycleReading    `json:"readings"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// CycleReading is a consumer's stored reading together with its derived share.
// Source readings carry zero derived values.
type CycleReading struct {
	ConsumerID      string          `json:"consumer_id"`
	CurrentReading  decimal.Decimal `json:"current_reading"`
	PreviousReading decimal.Decimal `json:"previous_reading"`
	Consumption     decimal.Decimal `json:"consumption"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	ShareExact      decimal.Decimal `json:"share_exact"`
	ShareRounded    int64           `json:"share_rounded"`
	Source          bool            `json:"source"`
}

// MonthKey returns the cycle identifier for a calendar date.
func MonthKey(t time.Time) string {
	return t.UTC().Format(MonthKeyLayout)
}

// ReadingFor returns the reading of the given consumer, if present.
func (c BillingCycle) ReadingFor(consumerID string) (CycleReading, bool) {
	for _, r := range c.Readings {
		if r.ConsumerID == consumerID {
			return r, true
		}
	}
	return CycleReading{}, false
}

// BilledReadings returns the non-source readings in stored order.
func (c BillingCycle) BilledReadings() []CycleReading {
	out := make([]CycleReading, 0, len(c.Readings))
	for _, r := range c.Readings {
		if !r.Source {
			out = append(out, r)
		}
	}
	return out
}

// RoundedTotal sums the billed (rounded) shares.
func (c BillingCycle) RoundedTotal() int64 {
	var total int64
	for _, r := range c.Readings {
		if !r.Source {
			total += r.ShareRounded
		}
	}
	return total
}
