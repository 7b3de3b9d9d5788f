package handlers

import (
	"errors"
	"log"
	"net/http"

	request "ges_billing/internal/adapter/http/dto/request"
	response "ges_billing/internal/adapter/http/dto/response"
	"ges_billing/internal/usecase"
	"ges_billing/pkg"

	"github.com/gin-gonic/gin"
)

type ExpenseHandler struct {
	usecase usecase.IExpenseUseCase
}

func NewExpenseHandler(uc usecase.IExpenseUseCase) *ExpenseHandler {
	return &ExpenseHandler{usecase: uc}
}

func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	var payload request.ExpenseRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, bindingError(err))
		return
	}
	in, err := payload.ToInput()
	if err != nil {
		respondError(c, errInvalidRequest.WithDetails(pkg.FieldError{Field: "date", Message: err.Error()}))
		return
	}

	expense, err := h.usecase.Create(c.Request.Context(), in)
	if err != nil {
		log.Printf("[expense][handler] create failed err=%v", err)
		respondError(c, mapExpenseError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromExpense(expense))
}

func (h *ExpenseHandler) ListExpenses(c *gin.Context) {
	items, err := h.usecase.List(c.Request.Context())
	if err != nil {
		respondError(c, mapExpenseError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromExpenses(items))
}

func (h *ExpenseHandler) ListExpensesByMonth(c *gin.Context) {
	month := c.Param("month")
	items, total, err := h.usecase.ListByMonth(c.Request.Context(), month)
	if err != nil {
		respondError(c, mapExpenseError(err))
		return
	}
	c.JSON(http.StatusOK, response.ExpenseMonthResponse{
		Month: month,
		Total: total,
		Items: response.FromExpenses(items),
	})
}

func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	id := c.Param("id")
	if err := h.usecase.Delete(c.Request.Context(), id); err != nil {
		log.Printf("[expense][handler] delete failed id=%s err=%v", id, err)
		respondError(c, mapExpenseError(err))
		return
	}
	c.Status(http.StatusNoContent)
}

func mapExpenseError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrExpenseNotFound):
		return pkg.NewDomainErrorSimple("EXPENSE_NOT_FOUND", "Expense not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrInvalidExpenseID),
		errors.Is(err, usecase.ErrInvalidDescription),
		errors.Is(err, usecase.ErrInvalidInvoiceNumber),
		errors.Is(err, usecase.ErrInvalidExpenseAmount),
		errors.Is(err, usecase.ErrInvalidExpenseDate),
		errors.Is(err, usecase.ErrInvalidMonth):
		return errInvalidRequest.WithDetails(pkg.FieldError{Field: "request", Message: err.Error()})
	default:
		return internalError(err)
	}
}
