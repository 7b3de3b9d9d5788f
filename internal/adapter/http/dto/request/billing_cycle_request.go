package request

import (
	"errors"
	"time"

	"ges_billing/internal/usecase"

	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

// ReadingRequest is one meter reading. previous_reading may be omitted; it is
// then taken from the consumer's latest earlier cycle (0 when none).
type ReadingRequest struct {
	ConsumerID      string           `json:"consumer_id" binding:"required"`
	CurrentReading  *decimal.Decimal `json:"current_reading" binding:"required" swaggertype:"number"`
	PreviousReading *decimal.Decimal `json:"previous_reading" swaggertype:"number"`
}

// BillingCycleRequest is the payload for creating, updating or previewing a cycle.
// Amounts accept JSON numbers or decimal strings.
type BillingCycleRequest struct {
	PeriodLabel string             `json:"period_label" binding:"required,max=50"`
	CycleDate   string             `json:"cycle_date" binding:"required,datetime=2006-01-02"`
	InputTotals []*decimal.Decimal `json:"input_totals" binding:"required,min=1,dive,required" swaggertype:"array,number"`
	Readings    []ReadingRequest   `json:"readings" binding:"required,min=1,dive"`
}

func (r BillingCycleRequest) ToInput() (usecase.CycleInput, error) {
	date, err := time.Parse(DateLayout, r.CycleDate)
	if err != nil {
		return usecase.CycleInput{}, ErrInvalidDate
	}

	totals := make([]decimal.Decimal, 0, len(r.InputTotals))
	for _, v := range r.InputTotals {
		if v != nil {
			totals = append(totals, *v)
		}
	}

	readings := make([]usecase.ReadingInput, len(r.Readings))
	for i, rd := range r.Readings {
		in := usecase.ReadingInput{ConsumerID: rd.ConsumerID}
		if rd.CurrentReading != nil {
			in.CurrentReading = *rd.CurrentReading
		}
		if rd.PreviousReading != nil {
			prev := *rd.PreviousReading
			in.PreviousReading = &prev
		}
		readings[i] = in
	}

	return usecase.CycleInput{
		PeriodLabel: r.PeriodLabel,
		CycleDate:   date,
		InputTotals: totals,
		Readings:    readings,
	}, nil
}
