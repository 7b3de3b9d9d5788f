package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	request "ges_billing/internal/adapter/http/dto/request"
	response "ges_billing/internal/adapter/http/dto/response"
	"ges_billing/internal/domain/entities"
	"ges_billing/internal/usecase"
	"ges_billing/pkg"

	"github.com/gin-gonic/gin"
)

// PaymentHandler handles HTTP requests for the monthly payment obligations.
type PaymentHandler struct {
	usecase usecase.IPaymentUseCase
}

func NewPaymentHandler(uc usecase.IPaymentUseCase) *PaymentHandler {
	return &PaymentHandler{usecase: uc}
}

// CreateMonthlyPayments generates one obligation per billed department of the month.
func (h *PaymentHandler) CreateMonthlyPayments(c *gin.Context) {
	var payload request.MonthlyPaymentsRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, bindingError(err))
		return
	}
	month, err := payload.MonthDate()
	if err != nil {
		respondError(c, errInvalidRequest.WithDetails(pkg.FieldError{Field: "month", Message: err.Error()}))
		return
	}

	log.Printf("[payment][handler] create-monthly start month=%s expenses=%s", payload.Month, payload.ExpensesAmount)
	created, err := h.usecase.CreateMonthly(c.Request.Context(), month, *payload.ExpensesAmount)
	if err != nil {
		log.Printf("[payment][handler] create-monthly failed month=%s err=%v", payload.Month, err)
		respondError(c, mapPaymentError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromPaymentObligations(created))
}

func (h *PaymentHandler) ListPaymentsByMonth(c *gin.Context) {
	payments, err := h.usecase.ListByMonth(c.Request.Context(), c.Param("month"))
	if err != nil {
		respondError(c, mapPaymentError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromPaymentObligations(payments))
}

func (h *PaymentHandler) GetPayment(c *gin.Context) {
	payment, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, mapPaymentError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromPaymentObligation(payment))
}

// RecordPayment marks an obligation as paid (or back to pending).
func (h *PaymentHandler) RecordPayment(c *gin.Context) {
	id := c.Param("id")
	var payload request.RecordPaymentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, bindingError(err))
		return
	}
	date, err := payload.Date()
	if err != nil {
		respondError(c, errInvalidRequest.WithDetails(pkg.FieldError{Field: "payment_date", Message: err.Error()}))
		return
	}

	payment, err := h.usecase.RecordPayment(c.Request.Context(), id, entities.PaymentStatus(payload.Status), payload.PaidAmount, date)
	if err != nil {
		log.Printf("[payment][handler] record failed id=%s err=%v", id, err)
		respondError(c, mapPaymentError(err))
		return
	}
	log.Printf("[payment][handler] record success id=%s status=%s", id, payment.Status)
	c.JSON(http.StatusOK, response.FromPaymentObligation(payment))
}

// Checkout settles an obligation through Mercado Pago.
func (h *PaymentHandler) Checkout(c *gin.Context) {
	id := c.Param("id")
	log.Printf("[payment][handler] checkout start id=%s", id)

	mpPayload, err := readMPPayload(c)
	if err != nil {
		log.Printf("[payment][handler] invalid payload id=%s err=%v", id, err)
		respondError(c, errInvalidRequest)
		return
	}

	payment, err := h.usecase.Checkout(c.Request.Context(), id, mpPayload)
	if err != nil {
		log.Printf("[payment][handler] checkout failed id=%s err=%v", id, err)
		respondError(c, mapPaymentError(err))
		return
	}
	log.Printf("[payment][handler] checkout success id=%s provider_id=%s", id, payment.ProviderPaymentID)
	c.JSON(http.StatusOK, response.FromPaymentObligation(payment))
}

// readMPPayload accepts either {"mp_payload": {...}} or the raw Mercado Pago
// payload as the request body. An empty body becomes "{}".
func readMPPayload(c *gin.Context) (json.RawMessage, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return json.RawMessage("{}"), nil
	}
	if !json.Valid(raw) {
		return nil, errors.New("request body is not valid json")
	}

	var envelope request.CheckoutRequest
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err == nil {
		if _, ok := keys["mp_payload"]; ok {
			_ = json.Unmarshal(raw, &envelope)
			wrapped := strings.TrimSpace(string(envelope.MPPayload))
			if wrapped == "" || wrapped == "null" {
				return nil, errors.New("mp_payload cannot be empty")
			}
			return envelope.MPPayload, nil
		}
	}

	return json.RawMessage(raw), nil
}

func mapPaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrPaymentAlreadyPaid):
		return pkg.NewDomainErrorSimple("PAYMENT_ALREADY_PAID", "Payment already paid", http.StatusConflict)
	case errors.Is(err, usecase.ErrPaymentNotApproved):
		return pkg.NewDomainError("PAYMENT_NOT_APPROVED", "Payment not approved by provider", err, http.StatusPaymentRequired)
	case errors.Is(err, usecase.ErrPaymentGatewayNotConfigured):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAVAILABLE", "Payment provider not configured", http.StatusServiceUnavailable)
	case errors.Is(err, usecase.ErrPaymentGatewayCustomerNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_CUSTOMER_NOT_FOUND", "Payer not found for this Mercado Pago test context", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayInvalidUsers):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_INVALID_USERS", "Invalid users involved between seller token and payer test user", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider unauthorized", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrCycleNotFound):
		return pkg.NewDomainErrorSimple("BILLING_CYCLE_NOT_FOUND", "No billing cycle for this month", http.StatusNotFound)
	case errors.Is(err, usecase.ErrInvalidPaymentID),
		errors.Is(err, usecase.ErrInvalidMonth),
		errors.Is(err, usecase.ErrInvalidExpensesAmount),
		errors.Is(err, usecase.ErrInvalidPaymentStatus),
		errors.Is(err, usecase.ErrInvalidPaidAmount),
		errors.Is(err, usecase.ErrInvalidMPPayload),
		errors.Is(err, usecase.ErrPaymentGatewayBadRequest):
		return errInvalidRequest.WithDetails(pkg.FieldError{Field: "request", Message: err.Error()})
	default:
		return internalError(err)
	}
}
