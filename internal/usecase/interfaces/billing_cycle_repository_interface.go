package interfaces

import (
	"context"
	"ges_billing/internal/domain/entities"
)

// IBillingCycleRepository abstracts DynamoDB persistence for BillingCycle.
//
// A cycle is stored as one item with its readings embedded, so Create and
// Replace are all-or-nothing. Lookups return a zero-value cycle (ID == "")
// when nothing matches.

type IBillingCycleRepository interface {
	// Create fails with ErrConditionFailed when a cycle already exists for the month.
	Create(ctx context.Context, c entities.BillingCycle) (entities.BillingCycle, error)
	// Replace overwrites an existing cycle; it returns a zero-value cycle when none exists.
	Replace(ctx context.Context, c entities.BillingCycle) (entities.BillingCycle, error)
	GetByID(ctx context.Context, id string) (entities.BillingCycle, error)
	GetByPeriodLabel(ctx context.Context, label string) (entities.BillingCycle, error)
	List(ctx context.Context) ([]entities.BillingCycle, error)
	// Delete removes the cycle and clears cycle_id on the given obligations in
	// one transaction. It reports false, with nothing written, when the cycle
	// does not exist.
	Delete(ctx context.Context, id string, detachObligationIDs []string) (bool, error)
}
