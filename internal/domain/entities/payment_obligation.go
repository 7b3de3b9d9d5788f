package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the settlement state of a monthly obligation.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// Valid reports whether s is a known status.
func (s PaymentStatus) Valid() bool {
	return s == PaymentStatusPending || s == PaymentStatusPaid
}

// PaymentObligation is what a department owes for a month: the fixed
// building-expense share plus its rounded water share.
//
// Storage model (DynamoDB):
//   - PK: id ("<month>:<consumer>"), one obligation per department and month
//   - GSI1 (month-index): month
//
// Amounts are a snapshot taken when the obligation was created or refreshed.
// CycleID is a weak reference; it is cleared when the cycle is deleted.
type PaymentObligation struct {
	ID                string           `json:"id"`
	ConsumerID        string           `json:"consumer_id"`
	Month             string           `json:"month"`
	CycleID           string           `json:"cycle_id,omitempty"`
	ExpensesAmount    decimal.Decimal  `json:"expenses_amount"`
	WaterAmount       int64            `json:"water_amount"`
	TotalAmount       decimal.Decimal  `json:"total_amount"`
	PaidAmount        *decimal.Decimal `json:"paid_amount,omitempty"`
	Status            PaymentStatus    `json:"status"`
	PaymentDate       *time.Time       `json:"payment_date,omitempty"`
	ProviderPaymentID string           `json:"provider_payment_id,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// ObligationID builds the identifier of a department's obligation for a month.
func ObligationID(month, consumerID string) string {
	return month + ":" + consumerID
}
