// Package apportionment distributes a shared utility total across consumers
// proportionally to their metered consumption.
//
// The engine is pure: no I/O, no clock, no shared state. Callers validate the
// transport payload first and persist the returned allocation atomically.
package apportionment

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrInvalidInput is returned when the batch cannot be apportioned.
var ErrInvalidInput = errors.New("invalid apportionment input")

// shareScale is the number of decimal places kept in an exact share. Shares
// multiply before dividing, so a half-unit share is exact at any scale.
const shareScale = 16

// Reading is one consumer's raw meter values for a billing cycle.
//
// Source marks the aggregate (master) meter that supplies the total: it is
// validated like any other reading but never billed and never counted in the
// consumption denominator.
type Reading struct {
	ConsumerID string
	Current    decimal.Decimal
	Previous   decimal.Decimal
	Source     bool
}

// Share is the billable outcome for a single consumer.
type Share struct {
	ConsumerID   string
	Consumption  decimal.Decimal
	UnitPrice    decimal.Decimal
	ShareExact   decimal.Decimal
	ShareRounded int64
}

// Allocation is the full result of ComputeShares.
//
// RoundingDelta is RoundedTotal - TotalAmount. It is reported and never
// redistributed across consumers.
type Allocation struct {
	TotalAmount      decimal.Decimal
	TotalConsumption decimal.Decimal
	UnitPrice        decimal.Decimal
	Shares           []Share
	RoundedTotal     int64
	RoundingDelta    decimal.Decimal
}

// ComputeShares apportions totalAmount across the non-source readings.
//
// Negative deltas (meter rollback, typing errors) are clamped to zero usage.
// Output order follows input order with source readings removed.
func ComputeShares(totalAmount decimal.Decimal, readings []Reading) (Allocation, error) {
	if len(readings) == 0 {
		return Allocation{}, fmt.Errorf("%w: no readings", ErrInvalidInput)
	}
	if totalAmount.IsNegative() {
		return Allocation{}, fmt.Errorf("%w: negative total amount %s", ErrInvalidInput, totalAmount)
	}

	consumptions := make([]decimal.Decimal, len(readings))
	totalConsumption := decimal.Zero
	for i, r := range readings {
		if r.Current.IsNegative() || r.Previous.IsNegative() {
			return Allocation{}, fmt.Errorf("%w: negative reading for consumer %q", ErrInvalidInput, r.ConsumerID)
		}
		consumptions[i] = Consumption(r.Current, r.Previous)
		if !r.Source {
			totalConsumption = totalConsumption.Add(consumptions[i])
		}
	}

	unitPrice, err := ComputeUnitPrice(totalAmount, totalConsumption)
	if err != nil {
		return Allocation{}, err
	}

	shares := make([]Share, 0, len(readings))
	var roundedTotal int64
	for i, r := range readings {
		if r.Source {
			continue
		}
		exact := shareOf(consumptions[i], totalAmount, totalConsumption)
		rounded := RoundAmount(exact)
		roundedTotal += rounded
		shares = append(shares, Share{
			ConsumerID:   r.ConsumerID,
			Consumption:  consumptions[i],
			UnitPrice:    unitPrice,
			ShareExact:   exact,
			ShareRounded: rounded,
		})
	}

	return Allocation{
		TotalAmount:      totalAmount,
		TotalConsumption: totalConsumption,
		UnitPrice:        unitPrice,
		Shares:           shares,
		RoundedTotal:     roundedTotal,
		RoundingDelta:    decimal.NewFromInt(roundedTotal).Sub(totalAmount),
	}, nil
}

// ComputeUnitPrice returns totalAmount / totalConsumption, or zero when there
// is no positive consumption to divide by.
func ComputeUnitPrice(totalAmount, totalConsumption decimal.Decimal) (decimal.Decimal, error) {
	if totalAmount.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: negative total amount %s", ErrInvalidInput, totalAmount)
	}
	if totalConsumption.Sign() <= 0 {
		return decimal.Zero, nil
	}
	return totalAmount.Div(totalConsumption), nil
}

// shareOf returns consumption * totalAmount / totalConsumption. UnitPrice is
// reported as the rate but not used here: it is already rounded.
func shareOf(consumption, totalAmount, totalConsumption decimal.Decimal) decimal.Decimal {
	if totalConsumption.Sign() <= 0 {
		return decimal.Zero
	}
	return consumption.Mul(totalAmount).DivRound(totalConsumption, shareScale)
}

// Consumption is current - previous, clamped at zero.
func Consumption(current, previous decimal.Decimal) decimal.Decimal {
	delta := current.Sub(previous)
	if delta.IsNegative() {
		return decimal.Zero
	}
	return delta
}

// RoundAmount rounds half away from zero to whole currency units.
func RoundAmount(v decimal.Decimal) int64 {
	return v.Round(0).IntPart()
}

// SumTotals adds the source-meter totals that make up a cycle's distributable amount.
func SumTotals(values ...decimal.Decimal) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, v := range values {
		if v.IsNegative() {
			return decimal.Zero, fmt.Errorf("%w: negative source total %s", ErrInvalidInput, v)
		}
		sum = sum.Add(v)
	}
	return sum, nil
}
