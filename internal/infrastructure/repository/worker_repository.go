package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/cafe-api/internal/domain/entity"
	"github.com/sangkips/cafe-api/internal/domain/enum"
	domainRepo "github.com/sangkips/cafe-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// sumResult receives a single aggregated money column
type sumResult struct {
	Total decimal.Decimal
}

type workerRepository struct {
	db *gorm.DB
}

// NewWorkerRepository creates a new worker repository
func NewWorkerRepository(db *gorm.DB) domainRepo.WorkerRepository {
	return &workerRepository{db: db}
}

func (r *workerRepository) Create(ctx context.Context, worker *entity.Worker) error {
	return conn(ctx, r.db).Create(worker).Error
}

func (r *workerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Worker, error) {
	var worker entity.Worker
	err := conn(ctx, r.db).First(&worker, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &worker, err
}

func (r *workerRepository) List(ctx context.Context, role *enum.WorkerRole) ([]entity.Worker, error) {
	var workers []entity.Worker
	query := conn(ctx, r.db).Model(&entity.Worker{})
	if role != nil {
		query = query.Where("role = ?", role.String())
	}
	err := query.Order("name ASC").Find(&workers).Error
	return workers, err
}

func (r *workerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Delete(&entity.Worker{}, "id = ?", id).Error
}

func (r *workerRepository) SumSalaries(ctx context.Context) (decimal.Decimal, error) {
	var result sumResult
	err := conn(ctx, r.db).Raw(`SELECT COALESCE(SUM(salary), 0) AS total FROM workers`).Scan(&result).Error
	return roundMoney(result.Total), err
}

type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new monthly expense repository
func NewExpenseRepository(db *gorm.DB) domainRepo.ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(ctx context.Context, expense *entity.MonthlyExpense) error {
	return conn(ctx, r.db).Create(expense).Error
}

func (r *expenseRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.MonthlyExpense, error) {
	var expense entity.MonthlyExpense
	err := conn(ctx, r.db).First(&expense, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &expense, err
}

func (r *expenseRepository) List(ctx context.Context, monthKey string) ([]entity.MonthlyExpense, error) {
	var expenses []entity.MonthlyExpense
	query := conn(ctx, r.db).Model(&entity.MonthlyExpense{})
	if monthKey != "" {
		query = query.Where("month = ?", monthKey)
	}
	err := query.Order("month DESC, created_at DESC").Find(&expenses).Error
	return expenses, err
}

func (r *expenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Delete(&entity.MonthlyExpense{}, "id = ?", id).Error
}

func (r *expenseRepository) SumByMonth(ctx context.Context, monthKey string) (decimal.Decimal, error) {
	var result sumResult
	err := conn(ctx, r.db).
		Raw(`SELECT COALESCE(SUM(amount), 0) AS total FROM monthly_expenses WHERE month = ?`, monthKey).
		Scan(&result).Error
	return roundMoney(result.Total), err
}
