package handlers

import (
	"errors"
	"log"
	"net/http"

	request "ges_billing/internal/adapter/http/dto/request"
	response "ges_billing/internal/adapter/http/dto/response"
	"ges_billing/internal/domain/apportionment"
	"ges_billing/internal/usecase"
	"ges_billing/pkg"

	"github.com/gin-gonic/gin"
)

// BillingCycleHandler handles HTTP requests for billing cycles (water readings
// and their apportioned shares).

type BillingCycleHandler struct {
	usecase usecase.IBillingCycleUseCase
}

func NewBillingCycleHandler(uc usecase.IBillingCycleUseCase) *BillingCycleHandler {
	return &BillingCycleHandler{usecase: uc}
}

func (h *BillingCycleHandler) CreateCycle(c *gin.Context) {
	in, ok := bindCycleInput(c)
	if !ok {
		return
	}

	cycle, err := h.usecase.Create(c.Request.Context(), in)
	if err != nil {
		log.Printf("[cycle][handler] create failed err=%v", err)
		respondError(c, mapBillingCycleError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromBillingCycle(cycle))
}

func (h *BillingCycleHandler) UpdateCycle(c *gin.Context) {
	id := c.Param("id")
	in, ok := bindCycleInput(c)
	if !ok {
		return
	}

	cycle, err := h.usecase.Update(c.Request.Context(), id, in)
	if err != nil {
		log.Printf("[cycle][handler] update failed id=%s err=%v", id, err)
		respondError(c, mapBillingCycleError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromBillingCycle(cycle))
}

// PreviewCycle computes the shares without storing the cycle.
func (h *BillingCycleHandler) PreviewCycle(c *gin.Context) {
	in, ok := bindCycleInput(c)
	if !ok {
		return
	}

	cycle, err := h.usecase.Preview(c.Request.Context(), in)
	if err != nil {
		respondError(c, mapBillingCycleError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromBillingCycle(cycle))
}

func (h *BillingCycleHandler) DeleteCycle(c *gin.Context) {
	id := c.Param("id")
	if err := h.usecase.Delete(c.Request.Context(), id); err != nil {
		log.Printf("[cycle][handler] delete failed id=%s err=%v", id, err)
		respondError(c, mapBillingCycleError(err))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BillingCycleHandler) GetCycle(c *gin.Context) {
	cycle, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, mapBillingCycleError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromBillingCycle(cycle))
}

func (h *BillingCycleHandler) GetCycleByPeriod(c *gin.Context) {
	cycle, err := h.usecase.GetByPeriodLabel(c.Request.Context(), c.Param("period"))
	if err != nil {
		respondError(c, mapBillingCycleError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromBillingCycle(cycle))
}

func (h *BillingCycleHandler) ListCycles(c *gin.Context) {
	cycles, err := h.usecase.List(c.Request.Context())
	if err != nil {
		respondError(c, mapBillingCycleError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromBillingCycles(cycles))
}

func (h *BillingCycleHandler) GetCycleReport(c *gin.Context) {
	report, err := h.usecase.Report(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, mapBillingCycleError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromCycleReport(report))
}

func (h *BillingCycleHandler) GetPreviousReading(c *gin.Context) {
	prev, err := h.usecase.PreviousReading(c.Request.Context(), c.Param("consumer_id"))
	if err != nil {
		respondError(c, mapBillingCycleError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromPreviousReading(prev))
}

func bindCycleInput(c *gin.Context) (usecase.CycleInput, bool) {
	var payload request.BillingCycleRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, bindingError(err))
		return usecase.CycleInput{}, false
	}
	in, err := payload.ToInput()
	if err != nil {
		respondError(c, errInvalidRequest.WithDetails(pkg.FieldError{Field: "cycle_date", Message: err.Error()}))
		return usecase.CycleInput{}, false
	}
	return in, true
}

func mapBillingCycleError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrCycleNotFound):
		return pkg.NewDomainErrorSimple("BILLING_CYCLE_NOT_FOUND", "Billing cycle not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrCycleAlreadyExists):
		return pkg.NewDomainErrorSimple("BILLING_CYCLE_ALREADY_EXISTS", "A billing cycle already exists for this month", http.StatusConflict)
	case errors.Is(err, usecase.ErrPreviousReadingNotFound):
		return pkg.NewDomainErrorSimple("PREVIOUS_READING_NOT_FOUND", "No previous reading for this consumer", http.StatusNotFound)
	case errors.Is(err, usecase.ErrCycleMonthMismatch):
		return pkg.NewDomainErrorSimple("BILLING_CYCLE_MONTH_MISMATCH", "cycle_date must stay in the cycle month", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrUnknownConsumer), errors.Is(err, usecase.ErrDuplicateConsumer), errors.Is(err, usecase.ErrInvalidConsumerID):
		return pkg.NewDomainError("INVALID_CONSUMER", "Invalid consumer in readings", err, http.StatusBadRequest).
			WithDetails(pkg.FieldError{Field: "readings", Message: err.Error()})
	case errors.Is(err, usecase.ErrInvalidInputTotals), errors.Is(err, usecase.ErrInvalidReadings), errors.Is(err, apportionment.ErrInvalidInput):
		return pkg.NewDomainError("INVALID_APPORTIONMENT_INPUT", "Invalid apportionment input", err, http.StatusBadRequest).
			WithDetails(pkg.FieldError{Field: "readings", Message: err.Error()})
	case errors.Is(err, usecase.ErrInvalidCycleID), errors.Is(err, usecase.ErrInvalidPeriodLabel), errors.Is(err, usecase.ErrInvalidCycleDate):
		return errInvalidRequest
	default:
		return internalError(err)
	}
}
