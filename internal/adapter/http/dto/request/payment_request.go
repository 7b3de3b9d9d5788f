package request

import (
	"encoding/json"
	"time"

	"ges_billing/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// MonthlyPaymentsRequest generates (or refreshes) the obligations of a month.
type MonthlyPaymentsRequest struct {
	Month          string           `json:"month" binding:"required,datetime=2006-01"`
	ExpensesAmount *decimal.Decimal `json:"expenses_amount" binding:"required" swaggertype:"number"`
}

func (r MonthlyPaymentsRequest) MonthDate() (time.Time, error) {
	t, err := time.Parse(entities.MonthKeyLayout, r.Month)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// RecordPaymentRequest sets the settlement state of an obligation.
type RecordPaymentRequest struct {
	Status      string           `json:"status" binding:"required,oneof=pending paid"`
	PaidAmount  *decimal.Decimal `json:"paid_amount" swaggertype:"number"`
	PaymentDate string           `json:"payment_date" binding:"omitempty,datetime=2006-01-02"`
}

func (r RecordPaymentRequest) Date() (*time.Time, error) {
	if r.PaymentDate == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, r.PaymentDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	return &t, nil
}

// CheckoutRequest is the payload for the online checkout route.
//
// `mp_payload` is forwarded as-is (raw JSON) to support varying Mercado Pago
// schemas; the body may also be the Mercado Pago payload itself.
type CheckoutRequest struct {
	MPPayload json.RawMessage `json:"mp_payload" swaggertype:"object"`
}
