package interfaces

import (
	"context"
	"ges_billing/internal/domain/entities"
)

// IExpenseRepository abstracts DynamoDB persistence for Expense.

type IExpenseRepository interface {
	Create(ctx context.Context, e entities.Expense) (entities.Expense, error)
	List(ctx context.Context) ([]entities.Expense, error)
	Delete(ctx context.Context, id string) (bool, error)
}
