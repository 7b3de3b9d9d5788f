package request

import (
	"time"

	"ges_billing/internal/usecase"

	"github.com/shopspring/decimal"
)

type ExpenseRequest struct {
	Description   string           `json:"description" binding:"required,max=255"`
	InvoiceNumber string           `json:"invoice_number" binding:"omitempty,max=50"`
	Amount        *decimal.Decimal `json:"amount" binding:"required" swaggertype:"number"`
	Date          string           `json:"date" binding:"required,datetime=2006-01-02"`
}

func (r ExpenseRequest) ToInput() (usecase.ExpenseInput, error) {
	date, err := time.Parse(DateLayout, r.Date)
	if err != nil {
		return usecase.ExpenseInput{}, ErrInvalidDate
	}
	in := usecase.ExpenseInput{
		Description:   r.Description,
		InvoiceNumber: r.InvoiceNumber,
		Date:          date,
	}
	if r.Amount != nil {
		in.Amount = *r.Amount
	}
	return in, nil
}
