package usecase

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"
	"time"

	"ges_billing/internal/domain/entities"
	"ges_billing/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrExpenseNotFound      = errors.New("expense not found")
	ErrInvalidExpenseID     = errors.New("invalid expense id")
	ErrInvalidDescription   = errors.New("invalid expense description")
	ErrInvalidInvoiceNumber = errors.New("invalid invoice number")
	ErrInvalidExpenseAmount = errors.New("invalid expense amount")
	ErrInvalidExpenseDate   = errors.New("invalid expense date")
)

const (
	maxDescriptionLen   = 255
	maxInvoiceNumberLen = 50
)

// ExpenseInput is the command behind Create.
type ExpenseInput struct {
	Description   string
	InvoiceNumber string
	Amount        decimal.Decimal
	Date          time.Time
}

// IExpenseUseCase manages the building expense ledger.

type IExpenseUseCase interface {
	Create(ctx context.Context, in ExpenseInput) (entities.Expense, error)
	List(ctx context.Context) ([]entities.Expense, error)
	ListByMonth(ctx context.Context, month string) ([]entities.Expense, decimal.Decimal, error)
	Delete(ctx context.Context, id string) error
}

type ExpenseUseCase struct {
	repo interfaces.IExpenseRepository
}

var _ IExpenseUseCase = (*ExpenseUseCase)(nil)

func NewExpenseUseCase(repo interfaces.IExpenseRepository) *ExpenseUseCase {
	return &ExpenseUseCase{repo: repo}
}

func (u *ExpenseUseCase) Create(ctx context.Context, in ExpenseInput) (entities.Expense, error) {
	in.Description = strings.TrimSpace(in.Description)
	in.InvoiceNumber = strings.TrimSpace(in.InvoiceNumber)
	if in.Description == "" || len(in.Description) > maxDescriptionLen {
		return entities.Expense{}, ErrInvalidDescription
	}
	if len(in.InvoiceNumber) > maxInvoiceNumberLen {
		return entities.Expense{}, ErrInvalidInvoiceNumber
	}
	if in.Amount.IsNegative() {
		return entities.Expense{}, ErrInvalidExpenseAmount
	}
	if in.Date.IsZero() {
		return entities.Expense{}, ErrInvalidExpenseDate
	}

	e := entities.Expense{
		ID:            uuid.NewString(),
		Description:   in.Description,
		InvoiceNumber: in.InvoiceNumber,
		Amount:        in.Amount,
		Date:          in.Date.UTC(),
		CreatedAt:     time.Now().UTC(),
	}
	created, err := u.repo.Create(ctx, e)
	if err != nil {
		log.Printf("[expense][usecase] create failed err=%v", err)
		return entities.Expense{}, err
	}
	log.Printf("[expense][usecase] create success id=%s amount=%s", created.ID, created.Amount)
	return created, nil
}

// List returns expenses by date, newest first; ties by creation time.
func (u *ExpenseUseCase) List(ctx context.Context) ([]entities.Expense, error) {
	items, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].Date.Equal(items[j].Date) {
			return items[i].Date.After(items[j].Date)
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

// ListByMonth returns the expenses dated in month (YYYY-MM) and their sum.
func (u *ExpenseUseCase) ListByMonth(ctx context.Context, month string) ([]entities.Expense, decimal.Decimal, error) {
	month = strings.TrimSpace(month)
	if _, err := time.Parse(entities.MonthKeyLayout, month); err != nil {
		return nil, decimal.Zero, ErrInvalidMonth
	}
	items, err := u.List(ctx)
	if err != nil {
		return nil, decimal.Zero, err
	}

	out := make([]entities.Expense, 0, len(items))
	total := decimal.Zero
	for _, e := range items {
		if entities.MonthKey(e.Date) == month {
			out = append(out, e)
			total = total.Add(e.Amount)
		}
	}
	return out, total, nil
}

func (u *ExpenseUseCase) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidExpenseID
	}
	deleted, err := u.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrExpenseNotFound
	}
	log.Printf("[expense][usecase] delete success id=%s", id)
	return nil
}
