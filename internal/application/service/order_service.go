package service

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/sangkips/cafe-api/internal/domain/entity"
	"github.com/sangkips/cafe-api/internal/domain/repository"
	"github.com/sangkips/cafe-api/pkg/apperror"
	"github.com/sangkips/cafe-api/pkg/pagination"
)

// OrderService handles recorded sales batches after submission
type OrderService struct {
	orderRepo repository.OrderRepository
}

// NewOrderService creates a new order service
func NewOrderService(orderRepo repository.OrderRepository) *OrderService {
	return &OrderService{orderRepo: orderRepo}
}

// GetOrder retrieves an order with its server and line items
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, apperror.NewStoreError("load order", err)
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// ListOrders lists orders newest first with filtering
func (s *OrderService) ListOrders(ctx context.Context, params *repository.OrderFilterParams) (*pagination.PaginatedResult[entity.Order], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	if params.StartDate != nil && params.EndDate != nil && params.EndDate.Before(*params.StartDate) {
		return nil, apperror.NewBadRequestError("cannot list orders: end date is before start date")
	}

	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, apperror.NewStoreError("list orders", err)
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}

// DeleteOrder removes an order and its line items. Stock consumed by the
// order is not restored.
func (s *OrderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return apperror.NewStoreError("load order", err)
	}
	if order == nil {
		return apperror.NewNotFoundError("Order")
	}

	if err := s.orderRepo.Delete(ctx, order.ID); err != nil {
		return apperror.NewStoreError("delete order", err)
	}

	log.Printf("Deleted order %s sold at %s", order.ID, order.SoldAt.Format("2006-01-02"))
	return nil
}
