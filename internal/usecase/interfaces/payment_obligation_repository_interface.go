package interfaces

import (
	"context"
	"ges_billing/internal/domain/entities"
	"time"

	"github.com/shopspring/decimal"
)

// ObligationRefresh carries the amounts of a created-or-refreshed obligation.
type ObligationRefresh struct {
	ConsumerID     string
	Month          string
	CycleID        string
	ExpensesAmount decimal.Decimal
	WaterAmount    int64
	TotalAmount    decimal.Decimal
	// ResetPayment sets the obligation back to pending and drops the recorded
	// payment. Used when a refresh changes the total of a paid obligation.
	ResetPayment bool
}

// PaymentRecord is the settlement state written by RecordPayment.
// Nil PaidAmount/PaymentDate clear the stored values.
type PaymentRecord struct {
	Status            entities.PaymentStatus
	PaidAmount        *decimal.Decimal
	PaymentDate       *time.Time
	ProviderPaymentID string
}

// IPaymentObligationRepository abstracts DynamoDB persistence for PaymentObligation.

type IPaymentObligationRepository interface {
	// Upsert creates the obligation or refreshes its amounts, keeping any recorded payment.
	Upsert(ctx context.Context, r ObligationRefresh) (entities.PaymentObligation, error)
	GetByID(ctx context.Context, id string) (entities.PaymentObligation, error)
	ListByMonth(ctx context.Context, month string) ([]entities.PaymentObligation, error)
	// RecordPayment returns a zero-value obligation when id does not exist.
	RecordPayment(ctx context.Context, id string, rec PaymentRecord) (entities.PaymentObligation, error)
	// Detach clears the cycle reference on the given obligations.
	Detach(ctx context.Context, ids []string) error
}
