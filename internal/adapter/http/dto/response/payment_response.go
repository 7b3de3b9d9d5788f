package response

import (
	"time"

	"ges_billing/internal/domain/entities"

	"github.com/shopspring/decimal"
)

type PaymentObligationResponse struct {
	ID                string           `json:"id"`
	ConsumerID        string           `json:"consumer_id"`
	DepartmentName    string           `json:"department_name,omitempty"`
	Month             string           `json:"month"`
	CycleID           string           `json:"cycle_id,omitempty"`
	ExpensesAmount    decimal.Decimal  `json:"expenses_amount" swaggertype:"string"`
	WaterAmount       int64            `json:"water_amount"`
	TotalAmount       decimal.Decimal  `json:"total_amount" swaggertype:"string"`
	PaidAmount        *decimal.Decimal `json:"paid_amount,omitempty" swaggertype:"string"`
	Status            string           `json:"status"`
	PaymentDate       string           `json:"payment_date,omitempty"`
	ProviderPaymentID string           `json:"provider_payment_id,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

func FromPaymentObligation(p entities.PaymentObligation) PaymentObligationResponse {
	res := PaymentObligationResponse{
		ID:                p.ID,
		ConsumerID:        p.ConsumerID,
		Month:             p.Month,
		CycleID:           p.CycleID,
		ExpensesAmount:    p.ExpensesAmount,
		WaterAmount:       p.WaterAmount,
		TotalAmount:       p.TotalAmount,
		PaidAmount:        p.PaidAmount,
		Status:            string(p.Status),
		ProviderPaymentID: p.ProviderPaymentID,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
	if p.PaymentDate != nil {
		res.PaymentDate = p.PaymentDate.Format(dateLayout)
	}
	if d, ok := entities.FindDepartment(p.ConsumerID); ok {
		res.DepartmentName = d.Name
	}
	return res
}

func FromPaymentObligations(ps []entities.PaymentObligation) []PaymentObligationResponse {
	out := make([]PaymentObligationResponse, len(ps))
	for i, p := range ps {
		out[i] = FromPaymentObligation(p)
	}
	return out
}
