package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"ges_billing/internal/domain/entities"
	"ges_billing/internal/infrastructure/metrics"
	"ges_billing/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
)

var (
	ErrPaymentNotFound                = errors.New("payment obligation not found")
	ErrInvalidPaymentID               = errors.New("invalid payment id")
	ErrInvalidMonth                   = errors.New("invalid month, expected YYYY-MM")
	ErrInvalidExpensesAmount          = errors.New("invalid expenses amount")
	ErrInvalidPaymentStatus           = errors.New("invalid payment status")
	ErrInvalidPaidAmount              = errors.New("invalid paid amount")
	ErrPaymentAlreadyPaid             = errors.New("payment obligation already paid")
	ErrInvalidMPPayload               = errors.New("invalid mercado pago payload")
	ErrPaymentNotApproved             = errors.New("payment not approved by provider")
	ErrPaymentGatewayNotConfigured    = errors.New("payment gateway not configured")
	ErrPaymentGatewayBadRequest       = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized     = errors.New("payment gateway unauthorized")
	ErrPaymentGatewayInvalidUsers     = errors.New("payment gateway invalid users involved")
	ErrPaymentGatewayCustomerNotFound = errors.New("payment gateway customer not found")
)

// IPaymentUseCase manages the monthly payment obligations of each department.
//
//   - "Generar pagos del mes" => CreateMonthly()
//   - "Registrar pago" => RecordPayment()
//   - online settlement through Mercado Pago => Checkout()

type IPaymentUseCase interface {
	CreateMonthly(ctx context.Context, month time.Time, expensesAmount decimal.Decimal) ([]entities.PaymentObligation, error)
	ListByMonth(ctx context.Context, month string) ([]entities.PaymentObligation, error)
	GetByID(ctx context.Context, id string) (entities.PaymentObligation, error)
	RecordPayment(ctx context.Context, id string, status entities.PaymentStatus, paidAmount *decimal.Decimal, paymentDate *time.Time) (entities.PaymentObligation, error)
	Checkout(ctx context.Context, id string, mpPayload json.RawMessage) (entities.PaymentObligation, error)
}

type PaymentUseCase struct {
	repo    interfaces.IPaymentObligationRepository
	cycles  interfaces.IBillingCycleRepository
	gateway interfaces.IPaymentGateway
	now     func() time.Time
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

func NewPaymentUseCase(repo interfaces.IPaymentObligationRepository, cycles interfaces.IBillingCycleRepository, gateway interfaces.IPaymentGateway) *PaymentUseCase {
	return &PaymentUseCase{repo: repo, cycles: cycles, gateway: gateway, now: time.Now}
}

// CreateMonthly creates or refreshes one obligation per billed department of
// the month's cycle. Total = expensesAmount + rounded water share.
func (u *PaymentUseCase) CreateMonthly(ctx context.Context, month time.Time, expensesAmount decimal.Decimal) ([]entities.PaymentObligation, error) {
	if month.IsZero() {
		return nil, ErrInvalidMonth
	}
	if expensesAmount.IsNegative() {
		return nil, ErrInvalidExpensesAmount
	}
	key := entities.MonthKey(month)
	log.Printf("[payment][usecase] create-monthly start month=%s expenses=%s", key, expensesAmount)

	cycle, err := u.cycles.GetByID(ctx, key)
	if err != nil {
		log.Printf("[payment][usecase] failed loading cycle month=%s err=%v", key, err)
		return nil, err
	}
	if cycle.ID == "" {
		log.Printf("[payment][usecase] cycle not found month=%s", key)
		return nil, ErrCycleNotFound
	}

	existing, err := u.repo.ListByMonth(ctx, key)
	if err != nil {
		log.Printf("[payment][usecase] failed loading obligations month=%s err=%v", key, err)
		return nil, err
	}
	previous := make(map[string]entities.PaymentObligation, len(existing))
	for _, o := range existing {
		previous[o.ConsumerID] = o
	}

	rows := cycle.BilledReadings()
	billed := make(map[string]struct{}, len(rows))
	out := make([]entities.PaymentObligation, 0, len(rows))
	for _, r := range rows {
		billed[r.ConsumerID] = struct{}{}
		total := expensesAmount.Add(decimal.NewFromInt(r.ShareRounded))

		// A payment recorded against a different total no longer settles it.
		reset := false
		if prev, ok := previous[r.ConsumerID]; ok && prev.Status == entities.PaymentStatusPaid && !prev.TotalAmount.Equal(total) {
			log.Printf("[payment][usecase] total changed on paid obligation id=%s old=%s new=%s; back to pending", prev.ID, prev.TotalAmount, total)
			reset = true
		}

		o, err := u.repo.Upsert(ctx, interfaces.ObligationRefresh{
			ConsumerID:     r.ConsumerID,
			Month:          key,
			CycleID:        cycle.ID,
			ExpensesAmount: expensesAmount,
			WaterAmount:    r.ShareRounded,
			TotalAmount:    total,
			ResetPayment:   reset,
		})
		if err != nil {
			log.Printf("[payment][usecase] upsert failed month=%s consumer=%s err=%v", key, r.ConsumerID, err)
			return nil, err
		}
		out = append(out, o)
	}

	// Departments dropped from the cycle keep their obligation as a snapshot
	// but no longer point at the cycle.
	var stale []string
	for _, o := range existing {
		if _, ok := billed[o.ConsumerID]; !ok && o.CycleID != "" {
			stale = append(stale, o.ID)
		}
	}
	if len(stale) > 0 {
		if err := u.repo.Detach(ctx, stale); err != nil {
			log.Printf("[payment][usecase] detach stale obligations failed month=%s err=%v", key, err)
			return nil, err
		}
		log.Printf("[payment][usecase] detached stale obligations month=%s count=%d", key, len(stale))
	}
	log.Printf("[payment][usecase] create-monthly success month=%s obligations=%d", key, len(out))
	metrics.ObserveObligations("refresh", len(out))
	return out, nil
}

func (u *PaymentUseCase) ListByMonth(ctx context.Context, month string) ([]entities.PaymentObligation, error) {
	month = strings.TrimSpace(month)
	if _, err := time.Parse(entities.MonthKeyLayout, month); err != nil {
		return nil, ErrInvalidMonth
	}
	return u.repo.ListByMonth(ctx, month)
}

func (u *PaymentUseCase) GetByID(ctx context.Context, id string) (entities.PaymentObligation, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.PaymentObligation{}, ErrInvalidPaymentID
	}

	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.PaymentObligation{}, err
	}
	if p.ID == "" {
		return entities.PaymentObligation{}, ErrPaymentNotFound
	}
	return p, nil
}

// RecordPayment sets the settlement state. Marking as paid defaults the paid
// amount to the total and the date to today; pending clears both.
func (u *PaymentUseCase) RecordPayment(ctx context.Context, id string, status entities.PaymentStatus, paidAmount *decimal.Decimal, paymentDate *time.Time) (entities.PaymentObligation, error) {
	if !status.Valid() {
		return entities.PaymentObligation{}, ErrInvalidPaymentStatus
	}
	if paidAmount != nil && paidAmount.IsNegative() {
		return entities.PaymentObligation{}, ErrInvalidPaidAmount
	}

	current, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.PaymentObligation{}, err
	}

	rec := interfaces.PaymentRecord{Status: status, ProviderPaymentID: current.ProviderPaymentID}
	if status == entities.PaymentStatusPaid {
		amount := current.TotalAmount
		if paidAmount != nil {
			amount = *paidAmount
		}
		date := u.today()
		if paymentDate != nil {
			date = paymentDate.UTC()
		}
		rec.PaidAmount = &amount
		rec.PaymentDate = &date
	} else {
		rec.ProviderPaymentID = ""
	}

	return u.record(ctx, current.ID, rec)
}

// Checkout charges the obligation through the payment gateway and marks it
// paid when the provider approves it. The amount always comes from storage.
func (u *PaymentUseCase) Checkout(ctx context.Context, id string, mpPayload json.RawMessage) (entities.PaymentObligation, error) {
	log.Printf("[payment][usecase] checkout start raw_id=%q payload_len=%d", id, len(mpPayload))
	if u.gateway == nil {
		log.Printf("[payment][usecase] gateway not configured id=%s", id)
		return entities.PaymentObligation{}, ErrPaymentGatewayNotConfigured
	}
	if len(mpPayload) == 0 {
		mpPayload = json.RawMessage("{}")
	}
	var reqMap map[string]any
	if err := json.Unmarshal(mpPayload, &reqMap); err != nil || reqMap == nil {
		log.Printf("[payment][usecase] invalid payload (not-json-object) id=%s", id)
		return entities.PaymentObligation{}, ErrInvalidMPPayload
	}

	o, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.PaymentObligation{}, err
	}
	if o.Status == entities.PaymentStatusPaid {
		log.Printf("[payment][usecase] checkout rejected id=%s already paid", o.ID)
		return entities.PaymentObligation{}, ErrPaymentAlreadyPaid
	}

	// Mercado Pago uses external_reference to reconcile events.
	if _, ok := reqMap["external_reference"]; !ok {
		reqMap["external_reference"] = o.ID
	}
	if _, ok := reqMap["description"]; !ok {
		reqMap["description"] = fmt.Sprintf("Expensas %s %s", o.Month, o.ConsumerID)
	}
	reqMap["transaction_amount"] = o.TotalAmount.InexactFloat64()
	payload, err := json.Marshal(reqMap)
	if err != nil {
		return entities.PaymentObligation{}, err
	}

	log.Printf("[payment][usecase] calling payment gateway id=%s amount=%s", o.ID, o.TotalAmount)
	providerPaymentID, providerStatus, _, err := u.gateway.CreatePayment(ctx, payload)
	if err != nil {
		log.Printf("[payment][usecase] payment gateway failed id=%s err=%v", o.ID, err)
		metrics.ObserveCheckout(metrics.ResultError)
		return entities.PaymentObligation{}, mapGatewayError(err)
	}
	log.Printf("[payment][usecase] payment gateway answered id=%s provider_payment_id=%s provider_status=%s", o.ID, providerPaymentID, providerStatus)
	if !strings.EqualFold(providerStatus, "approved") {
		metrics.ObserveCheckout(metrics.ResultInvalid)
		return entities.PaymentObligation{}, fmt.Errorf("%w: status=%s", ErrPaymentNotApproved, providerStatus)
	}

	amount := o.TotalAmount
	date := u.today()
	paid, err := u.record(ctx, o.ID, interfaces.PaymentRecord{
		Status:            entities.PaymentStatusPaid,
		PaidAmount:        &amount,
		PaymentDate:       &date,
		ProviderPaymentID: providerPaymentID,
	})
	if err != nil {
		metrics.ObserveCheckout(metrics.ResultError)
		return entities.PaymentObligation{}, err
	}
	metrics.ObserveCheckout(metrics.ResultSuccess)
	return paid, nil
}

func (u *PaymentUseCase) record(ctx context.Context, id string, rec interfaces.PaymentRecord) (entities.PaymentObligation, error) {
	updated, err := u.repo.RecordPayment(ctx, id, rec)
	if err != nil {
		log.Printf("[payment][usecase] record payment failed id=%s err=%v", id, err)
		return entities.PaymentObligation{}, err
	}
	if updated.ID == "" {
		return entities.PaymentObligation{}, ErrPaymentNotFound
	}
	log.Printf("[payment][usecase] record payment success id=%s status=%s", updated.ID, updated.Status)
	return updated, nil
}

func (u *PaymentUseCase) today() time.Time {
	n := u.now().UTC()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
}

func mapGatewayError(err error) error {
	switch {
	case isGatewayCustomerNotFound(err):
		return ErrPaymentGatewayCustomerNotFound
	case isGatewayInvalidUsers(err):
		return ErrPaymentGatewayInvalidUsers
	case isGatewayUnauthorized(err):
		return ErrPaymentGatewayUnauthorized
	case isGatewayBadRequest(err):
		return ErrPaymentGatewayBadRequest
	}
	return err
}

func isGatewayBadRequest(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"bad_request\"") || strings.Contains(msg, "\"status\":400")
}

func isGatewayUnauthorized(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"unauthorized\"") || strings.Contains(msg, "\"status\":401")
}

func isGatewayInvalidUsers(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "invalid users involved") || strings.Contains(msg, "\"code\":2034")
}

func isGatewayCustomerNotFound(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "customer not found") || strings.Contains(msg, "\"code\":2002")
}
