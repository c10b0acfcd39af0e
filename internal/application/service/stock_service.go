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

// StockService handles inventory operations
type StockService struct {
	stockRepo         repository.StockItemRepository
	recipes           *RecipeGraph
	costs             *CostCalculator
	lowStockThreshold decimal.Decimal
}

// NewStockService creates a new stock service
func NewStockService(
	stockRepo repository.StockItemRepository,
	recipes *RecipeGraph,
	costs *CostCalculator,
	lowStockThreshold int,
) *StockService {
	return &StockService{
		stockRepo:         stockRepo,
		recipes:           recipes,
		costs:             costs,
		lowStockThreshold: decimal.NewFromInt(int64(lowStockThreshold)),
	}
}

// CreateStockItemInput represents the create stock item input
type CreateStockItemInput struct {
	Name            string
	TrackingType    string
	CurrentQuantity decimal.Decimal
	UnitOfMeasure   string
	CostPerUnit     decimal.Decimal
}

// CreateStockItem creates a new stock item
func (s *StockService) CreateStockItem(ctx context.Context, input *CreateStockItemInput) (*entity.StockItem, error) {
	var fieldErrors []apperror.FieldError

	name := strings.TrimSpace(input.Name)
	if name == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "is required"})
	}
	trackingType, err := enum.ParseTrackingType(input.TrackingType)
	if err != nil {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "tracking_type", Message: err.Error()})
	}
	if input.CurrentQuantity.IsNegative() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "current_quantity", Message: "must not be negative"})
	}
	if input.CostPerUnit.IsNegative() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "cost_per_unit", Message: "must not be negative"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	item := &entity.StockItem{
		Name:            name,
		TrackingType:    trackingType,
		CurrentQuantity: input.CurrentQuantity,
		UnitOfMeasure:   strings.TrimSpace(input.UnitOfMeasure),
		CostPerUnit:     input.CostPerUnit,
	}

	if err := s.stockRepo.Create(ctx, item); err != nil {
		return nil, apperror.NewStoreError("create stock item", err)
	}
	return item, nil
}

// GetStockItem retrieves a stock item by ID
func (s *StockService) GetStockItem(ctx context.Context, id uuid.UUID) (*entity.StockItem, error) {
	item, err := s.stockRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NewStoreError("load stock item", err)
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Stock item")
	}
	return item, nil
}

// ListStockItems lists every stock item by name
func (s *StockService) ListStockItems(ctx context.Context) ([]entity.StockItem, error) {
	items, err := s.stockRepo.List(ctx)
	if err != nil {
		return nil, apperror.NewStoreError("list stock items", err)
	}
	return items, nil
}

// GetLowStockItems returns counted items below the configured threshold and
// MANUAL items marked as run out
func (s *StockService) GetLowStockItems(ctx context.Context) ([]entity.StockItem, error) {
	items, err := s.stockRepo.ListLowStock(ctx, s.lowStockThreshold)
	if err != nil {
		return nil, apperror.NewStoreError("list low stock items", err)
	}
	return items, nil
}

// LowStockThreshold returns the quantity below which counted items are low
func (s *StockService) LowStockThreshold() decimal.Decimal {
	return s.lowStockThreshold
}

// Restock adds amount to a counted item. MANUAL items have no count and are
// simply marked as in stock again.
func (s *StockService) Restock(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (*entity.StockItem, error) {
	item, err := s.GetStockItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if item.TrackingType == enum.TrackingManual {
		if err := s.stockRepo.SetQuantity(ctx, item.ID, decimal.NewFromInt(1)); err != nil {
			return nil, apperror.NewStoreError(fmt.Sprintf("restock %s", item.Name), err)
		}
		return s.GetStockItem(ctx, item.ID)
	}

	if !amount.IsPositive() {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "amount", Message: "must be greater than zero"},
		})
	}
	if err := s.stockRepo.AtomicIncrementQuantity(ctx, item.ID, amount); err != nil {
		return nil, apperror.NewStoreError(fmt.Sprintf("restock %s", item.Name), err)
	}
	return s.GetStockItem(ctx, item.ID)
}

// MarkRunOut flags a MANUAL item as out of stock
func (s *StockService) MarkRunOut(ctx context.Context, id uuid.UUID) (*entity.StockItem, error) {
	item, err := s.GetStockItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.TrackingType != enum.TrackingManual {
		return nil, apperror.NewBadRequestError(fmt.Sprintf(
			"cannot mark %s as run out: only %s items are tracked by hand", item.Name, enum.TrackingManual))
	}

	if err := s.stockRepo.SetQuantity(ctx, item.ID, decimal.Zero); err != nil {
		return nil, apperror.NewStoreError(fmt.Sprintf("mark %s as run out", item.Name), err)
	}
	return s.GetStockItem(ctx, item.ID)
}

// UpdateCost changes what one unit of a stock item costs. Cached costs of
// every menu item using it are dropped so the next sale snapshots the new
// price.
func (s *StockService) UpdateCost(ctx context.Context, id uuid.UUID, costPerUnit decimal.Decimal) (*entity.StockItem, error) {
	if costPerUnit.IsNegative() {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "cost_per_unit", Message: "must not be negative"},
		})
	}

	item, err := s.GetStockItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.stockRepo.UpdateCost(ctx, item.ID, costPerUnit); err != nil {
		return nil, apperror.NewStoreError(fmt.Sprintf("update cost of %s", item.Name), err)
	}
	if err := s.invalidateUsages(ctx, item.ID); err != nil {
		return nil, err
	}
	return s.GetStockItem(ctx, item.ID)
}

// DeleteStockItem deletes a stock item that no recipe uses
func (s *StockService) DeleteStockItem(ctx context.Context, id uuid.UUID) error {
	item, err := s.GetStockItem(ctx, id)
	if err != nil {
		return err
	}

	usages, err := s.recipes.UsagesOf(ctx, item.ID)
	if err != nil {
		return err
	}
	if len(usages) > 0 {
		return apperror.NewConflictError(fmt.Sprintf(
			"cannot delete %s: it is used in %d menu item recipe(s)", item.Name, len(usages)))
	}

	if err := s.stockRepo.Delete(ctx, item.ID); err != nil {
		return apperror.NewStoreError(fmt.Sprintf("delete %s", item.Name), err)
	}
	return nil
}

func (s *StockService) invalidateUsages(ctx context.Context, stockItemID uuid.UUID) error {
	menuItemIDs, err := s.recipes.UsagesOf(ctx, stockItemID)
	if err != nil {
		return err
	}
	s.costs.Invalidate(menuItemIDs...)
	return nil
}
