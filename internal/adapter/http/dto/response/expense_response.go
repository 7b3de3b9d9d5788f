package response

import (
	"time"

	"ges_billing/internal/domain/entities"

	"github.com/shopspring/decimal"
)

type ExpenseResponse struct {
	ID            string          `json:"id"`
	Description   string          `json:"description"`
	InvoiceNumber string          `json:"invoice_number,omitempty"`
	Amount        decimal.Decimal `json:"amount" swaggertype:"string"`
	Date          string          `json:"date"`
	CreatedAt     time.Time       `json:"created_at"`
}

type ExpenseMonthResponse struct {
	Month string            `json:"month"`
	Total decimal.Decimal   `json:"total" swaggertype:"string"`
	Items []ExpenseResponse `json:"items"`
}

func FromExpense(e entities.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:            e.ID,
		Description:   e.Description,
		InvoiceNumber: e.InvoiceNumber,
		Amount:        e.Amount,
		Date:          e.Date.Format(dateLayout),
		CreatedAt:     e.CreatedAt,
	}
}

func FromExpenses(es []entities.Expense) []ExpenseResponse {
	out := make([]ExpenseResponse, len(es))
	for i, e := range es {
		out[i] = FromExpense(e)
	}
	return out
}
