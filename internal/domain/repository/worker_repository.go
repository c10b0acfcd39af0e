package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/cafe-api/internal/domain/entity"
	"github.com/sangkips/cafe-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// WorkerRepository defines the interface for staff data operations
type WorkerRepository interface {
	Create(ctx context.Context, worker *entity.Worker) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Worker, error)
	// List returns all workers, or only those with the given role
	List(ctx context.Context, role *enum.WorkerRole) ([]entity.Worker, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// SumSalaries totals the monthly salary of every current worker
	SumSalaries(ctx context.Context) (decimal.Decimal, error)
}

// ExpenseRepository defines the interface for monthly expense data operations
type ExpenseRepository interface {
	Create(ctx context.Context, expense *entity.MonthlyExpense) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.MonthlyExpense, error)
	// List returns expenses newest month first, optionally for one month key
	List(ctx context.Context, monthKey string) ([]entity.MonthlyExpense, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// SumByMonth totals the expenses whose month equals monthKey exactly
	SumByMonth(ctx context.Context, monthKey string) (decimal.Decimal, error)
}
