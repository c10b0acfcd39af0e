package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/cafe-api/internal/domain/entity"
	"github.com/sangkips/cafe-api/internal/domain/repository"
	"github.com/sangkips/cafe-api/pkg/apperror"
	"github.com/sangkips/cafe-api/pkg/utils"
	"github.com/shopspring/decimal"
)

// ExpenseService handles monthly operating expenses
type ExpenseService struct {
	expenseRepo repository.ExpenseRepository
}

// NewExpenseService creates a new expense service
func NewExpenseService(expenseRepo repository.ExpenseRepository) *ExpenseService {
	return &ExpenseService{expenseRepo: expenseRepo}
}

// CreateExpenseInput represents the create expense input. Month must be the
// first day of a month (YYYY-MM-01).
type CreateExpenseInput struct {
	Month       string
	Description string
	Amount      decimal.Decimal
}

// CreateExpense books an expense against a month
func (s *ExpenseService) CreateExpense(ctx context.Context, input *CreateExpenseInput) (*entity.MonthlyExpense, error) {
	var fieldErrors []apperror.FieldError

	month := strings.TrimSpace(input.Month)
	date, err := utils.ParseDate(month)
	switch {
	case err != nil:
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "month", Message: err.Error()})
	case date.Day() != 1:
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "month", Message: "must be the first day of a month (YYYY-MM-01)"})
	}

	description := strings.TrimSpace(input.Description)
	if description == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "description", Message: "is required"})
	}
	if !input.Amount.IsPositive() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "amount", Message: "must be greater than zero"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	expense := &entity.MonthlyExpense{
		Month:       utils.MonthKey(date),
		Description: description,
		Amount:      input.Amount,
	}
	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, apperror.NewStoreError("create expense", err)
	}
	return expense, nil
}

// ListExpenses lists expenses newest month first. An empty month lists all.
func (s *ExpenseService) ListExpenses(ctx context.Context, month string) ([]entity.MonthlyExpense, error) {
	key := ""
	if strings.TrimSpace(month) != "" {
		t, err := utils.ParseMonth(month)
		if err != nil {
			return nil, apperror.NewBadRequestError(err.Error())
		}
		key = utils.MonthKey(t)
	}

	expenses, err := s.expenseRepo.List(ctx, key)
	if err != nil {
		return nil, apperror.NewStoreError("list expenses", err)
	}
	return expenses, nil
}

// DeleteExpense deletes an expense
func (s *ExpenseService) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	expense, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return apperror.NewStoreError("load expense", err)
	}
	if expense == nil {
		return apperror.NewNotFoundError("Expense")
	}

	if err := s.expenseRepo.Delete(ctx, expense.ID); err != nil {
		return apperror.NewStoreError("delete expense", err)
	}
	return nil
}
