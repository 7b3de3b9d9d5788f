package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a building expense (maintenance, cleaning, electricity, ...).
type Expense struct {
	ID            string          `json:"id"`
	Description   string          `json:"description"`
	InvoiceNumber string          `json:"invoice_number,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	CreatedAt     time.Time       `json:"created_at"`
}
