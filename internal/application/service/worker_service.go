package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/cafe-api/internal/domain/entity"
	"github.com/sangkips/cafe-api/internal/domain/enum"
	"github.com/sangkips/cafe-api/internal/domain/repository"
	"github.com/sangkips/cafe-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// WorkerService handles staff records
type WorkerService struct {
	workerRepo repository.WorkerRepository
	orderRepo  repository.OrderRepository
}

// NewWorkerService creates a new worker service
func NewWorkerService(workerRepo repository.WorkerRepository, orderRepo repository.OrderRepository) *WorkerService {
	return &WorkerService{
		workerRepo: workerRepo,
		orderRepo:  orderRepo,
	}
}

// CreateWorkerInput represents the create worker input
type CreateWorkerInput struct {
	Name   string
	Role   string
	Salary decimal.Decimal
}

// CreateWorker creates a new worker
func (s *WorkerService) CreateWorker(ctx context.Context, input *CreateWorkerInput) (*entity.Worker, error) {
	var fieldErrors []apperror.FieldError

	name := strings.TrimSpace(input.Name)
	if name == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "is required"})
	}
	role, err := enum.ParseWorkerRole(input.Role)
	if err != nil {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "role", Message: err.Error()})
	}
	if input.Salary.IsNegative() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "salary", Message: "must not be negative"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	worker := &entity.Worker{
		Name:   name,
		Role:   role,
		Salary: input.Salary,
	}
	if err := s.workerRepo.Create(ctx, worker); err != nil {
		return nil, apperror.NewStoreError("create worker", err)
	}
	return worker, nil
}

// ListWorkers lists staff, optionally only those with the given role
func (s *WorkerService) ListWorkers(ctx context.Context, role string) ([]entity.Worker, error) {
	var filter *enum.WorkerRole
	if strings.TrimSpace(role) != "" {
		r, err := enum.ParseWorkerRole(role)
		if err != nil {
			return nil, apperror.NewBadRequestError(err.Error())
		}
		filter = &r
	}

	workers, err := s.workerRepo.List(ctx, filter)
	if err != nil {
		return nil, apperror.NewStoreError("list workers", err)
	}
	return workers, nil
}

// DeleteWorker deletes a worker who has no recorded orders
func (s *WorkerService) DeleteWorker(ctx context.Context, id uuid.UUID) error {
	worker, err := s.workerRepo.GetByID(ctx, id)
	if err != nil {
		return apperror.NewStoreError("load worker", err)
	}
	if worker == nil {
		return apperror.NewNotFoundError("Worker")
	}

	orders, err := s.orderRepo.CountByServer(ctx, worker.ID)
	if err != nil {
		return apperror.NewStoreError("count orders of worker", err)
	}
	if orders > 0 {
		return apperror.NewConflictError(fmt.Sprintf(
			"cannot delete %s: they are the server on %d recorded order(s)", worker.Name, orders))
	}

	if err := s.workerRepo.Delete(ctx, worker.ID); err != nil {
		return apperror.NewStoreError(fmt.Sprintf("delete %s", worker.Name), err)
	}
	return nil
}
