package response

import (
	"time"

	"ges_billing/internal/domain/entities"
	"ges_billing/internal/usecase"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type ReadingResponse struct {
	ConsumerID      string          `json:"consumer_id"`
	DepartmentName  string          `json:"department_name,omitempty"`
	CurrentReading  decimal.Decimal `json:"current_reading" swaggertype:"string"`
	PreviousReading decimal.Decimal `json:"previous_reading" swaggertype:"string"`
	Consumption     decimal.Decimal `json:"consumption" swaggertype:"string"`
	UnitPrice       decimal.Decimal `json:"unit_price" swaggertype:"string"`
	ShareExact      decimal.Decimal `json:"share_exact" swaggertype:"string"`
	ShareRounded    int64           `json:"share_rounded"`
	Source          bool            `json:"source"`
}

type BillingCycleResponse struct {
	ID               string            `json:"id"`
	PeriodLabel      string            `json:"period_label"`
	CycleDate        string            `json:"cycle_date"`
	InputTotals      []decimal.Decimal `json:"input_totals" swaggertype:"array,string"`
	TotalAmount      decimal.Decimal   `json:"total_amount" swaggertype:"string"`
	TotalConsumption decimal.Decimal   `json:"total_consumption" swaggertype:"string"`
	UnitPrice        decimal.Decimal   `json:"unit_price" swaggertype:"string"`
	RoundedTotal     int64             `json:"rounded_total"`
	RoundingDelta    decimal.Decimal   `json:"rounding_delta" swaggertype:"string"`
	Readings         []ReadingResponse `json:"readings"`
	CreatedAt        *time.Time        `json:"created_at,omitempty"`
	UpdatedAt        *time.Time        `json:"updated_at,omitempty"`
}

// BillingCycleSummaryResponse is the list view of a cycle.
type BillingCycleSummaryResponse struct {
	ID           string          `json:"id"`
	PeriodLabel  string          `json:"period_label"`
	CycleDate    string          `json:"cycle_date"`
	TotalAmount  decimal.Decimal `json:"total_amount" swaggertype:"string"`
	UnitPrice    decimal.Decimal `json:"unit_price" swaggertype:"string"`
	RoundedTotal int64           `json:"rounded_total"`
	Readings     int             `json:"readings"`
}

type CycleReportResponse struct {
	ID               string            `json:"id"`
	PeriodLabel      string            `json:"period_label"`
	CycleDate        string            `json:"cycle_date"`
	TotalAmount      decimal.Decimal   `json:"total_amount" swaggertype:"string"`
	TotalConsumption decimal.Decimal   `json:"total_consumption" swaggertype:"string"`
	UnitPrice        decimal.Decimal   `json:"unit_price" swaggertype:"string"`
	RoundedTotal     int64             `json:"rounded_total"`
	RoundingDelta    decimal.Decimal   `json:"rounding_delta" swaggertype:"string"`
	Source           *ReadingResponse  `json:"source,omitempty"`
	Rows             []ReadingResponse `json:"rows"`
}

type PreviousReadingResponse struct {
	ConsumerID      string          `json:"consumer_id"`
	CycleID         string          `json:"cycle_id"`
	PreviousReading decimal.Decimal `json:"previous_reading" swaggertype:"string"`
}

func FromBillingCycle(c entities.BillingCycle) BillingCycleResponse {
	rounded := c.RoundedTotal()
	res := BillingCycleResponse{
		ID:               c.ID,
		PeriodLabel:      c.PeriodLabel,
		CycleDate:        c.CycleDate.Format(dateLayout),
		InputTotals:      c.InputTotals,
		TotalAmount:      c.TotalAmount,
		TotalConsumption: c.TotalConsumption,
		UnitPrice:        c.UnitPrice,
		RoundedTotal:     rounded,
		RoundingDelta:    decimal.NewFromInt(rounded).Sub(c.TotalAmount),
		Readings:         fromReadings(c.Readings),
	}
	// Previews are never stored and carry no timestamps.
	if !c.CreatedAt.IsZero() {
		created, updated := c.CreatedAt, c.UpdatedAt
		res.CreatedAt, res.UpdatedAt = &created, &updated
	}
	return res
}

func FromBillingCycles(cs []entities.BillingCycle) []BillingCycleSummaryResponse {
	out := make([]BillingCycleSummaryResponse, len(cs))
	for i, c := range cs {
		out[i] = BillingCycleSummaryResponse{
			ID:           c.ID,
			PeriodLabel:  c.PeriodLabel,
			CycleDate:    c.CycleDate.Format(dateLayout),
			TotalAmount:  c.TotalAmount,
			UnitPrice:    c.UnitPrice,
			RoundedTotal: c.RoundedTotal(),
			Readings:     len(c.Readings),
		}
	}
	return out
}

func FromCycleReport(r usecase.CycleReport) CycleReportResponse {
	res := CycleReportResponse{
		ID:               r.Cycle.ID,
		PeriodLabel:      r.Cycle.PeriodLabel,
		CycleDate:        r.Cycle.CycleDate.Format(dateLayout),
		TotalAmount:      r.Cycle.TotalAmount,
		TotalConsumption: r.Cycle.TotalConsumption,
		UnitPrice:        r.Cycle.UnitPrice,
		RoundedTotal:     r.RoundedTotal,
		RoundingDelta:    r.RoundingDelta,
		Rows:             fromReadings(r.Rows),
	}
	if r.Source != nil {
		src := fromReading(*r.Source)
		res.Source = &src
	}
	return res
}

func FromPreviousReading(p usecase.PreviousReading) PreviousReadingResponse {
	return PreviousReadingResponse{ConsumerID: p.ConsumerID, CycleID: p.CycleID, PreviousReading: p.PreviousReading}
}

func fromReadings(rs []entities.CycleReading) []ReadingResponse {
	out := make([]ReadingResponse, len(rs))
	for i, r := range rs {
		out[i] = fromReading(r)
	}
	return out
}

func fromReading(r entities.CycleReading) ReadingResponse {
	res := ReadingResponse{
		ConsumerID:      r.ConsumerID,
		CurrentReading:  r.CurrentReading,
		PreviousReading: r.PreviousReading,
		Consumption:     r.Consumption,
		UnitPrice:       r.UnitPrice,
		ShareExact:      r.ShareExact,
		ShareRounded:    r.ShareRounded,
		Source:          r.Source,
	}
	if d, ok := entities.FindDepartment(r.ConsumerID); ok {
		res.DepartmentName = d.Name
	}
	return res
}
