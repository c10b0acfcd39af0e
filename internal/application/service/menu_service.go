package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/cafe-api/internal/domain/entity"
	"github.com/sangkips/cafe-api/internal/domain/repository"
	"github.com/sangkips/cafe-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// MenuService handles menu item operations
type MenuService struct {
	tx            repository.Transactor
	menuRepo      repository.MenuItemRepository
	linkRepo      repository.RecipeLinkRepository
	orderItemRepo repository.OrderItemRepository
	recipes       *RecipeGraph
	costs         *CostCalculator
}

// NewMenuService creates a new menu service
func NewMenuService(
	tx repository.Transactor,
	menuRepo repository.MenuItemRepository,
	linkRepo repository.RecipeLinkRepository,
	orderItemRepo repository.OrderItemRepository,
	recipes *RecipeGraph,
	costs *CostCalculator,
) *MenuService {
	return &MenuService{
		tx:            tx,
		menuRepo:      menuRepo,
		linkRepo:      linkRepo,
		orderItemRepo: orderItemRepo,
		recipes:       recipes,
		costs:         costs,
	}
}

// MenuItemDetail is a menu item with its recipe and current unit cost
type MenuItemDetail struct {
	*entity.MenuItem
	Ingredients []Ingredient    `json:"ingredients"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	Margin      decimal.Decimal `json:"margin"`
}

// CreateMenuItemInput represents the create menu item input
type CreateMenuItemInput struct {
	Name      string
	SalePrice decimal.Decimal
}

// CreateMenuItem creates a new menu item with an empty recipe
func (s *MenuService) CreateMenuItem(ctx context.Context, input *CreateMenuItemInput) (*entity.MenuItem, error) {
	var fieldErrors []apperror.FieldError

	name := strings.TrimSpace(input.Name)
	if name == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "is required"})
	}
	if input.SalePrice.IsNegative() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "sale_price", Message: "must not be negative"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	item := &entity.MenuItem{
		Name:      name,
		SalePrice: input.SalePrice,
	}
	if err := s.menuRepo.Create(ctx, item); err != nil {
		return nil, apperror.NewStoreError("create menu item", err)
	}
	return item, nil
}

// GetMenuItem retrieves a menu item by ID
func (s *MenuService) GetMenuItem(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error) {
	item, err := s.menuRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NewStoreError("load menu item", err)
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Menu item")
	}
	return item, nil
}

// GetMenuItemDetail loads a menu item with its recipe and unit cost
func (s *MenuService) GetMenuItemDetail(ctx context.Context, id uuid.UUID) (*MenuItemDetail, error) {
	item, err := s.GetMenuItem(ctx, id)
	if err != nil {
		return nil, err
	}

	ingredients, err := s.recipes.IngredientsOf(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	cost, err := s.costs.CostOf(ctx, item.ID)
	if err != nil {
		return nil, err
	}

	return &MenuItemDetail{
		MenuItem:    item,
		Ingredients: ingredients,
		UnitCost:    cost,
		Margin:      item.SalePrice.Sub(cost),
	}, nil
}

// ListMenuItems lists every menu item by name
func (s *MenuService) ListMenuItems(ctx context.Context) ([]entity.MenuItem, error) {
	items, err := s.menuRepo.List(ctx)
	if err != nil {
		return nil, apperror.NewStoreError("list menu items", err)
	}
	return items, nil
}

// UpdatePrice changes the sale price used for future batches. Recorded
// sales keep their snapshot.
func (s *MenuService) UpdatePrice(ctx context.Context, id uuid.UUID, price decimal.Decimal) (*entity.MenuItem, error) {
	if price.IsNegative() {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "sale_price", Message: "must not be negative"},
		})
	}

	item, err := s.GetMenuItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.menuRepo.UpdatePrice(ctx, item.ID, price); err != nil {
		return nil, apperror.NewStoreError(fmt.Sprintf("update price of %s", item.Name), err)
	}
	return s.GetMenuItem(ctx, item.ID)
}

// CostOf returns the current ingredient cost of one unit of a menu item
func (s *MenuService) CostOf(ctx context.Context, id uuid.UUID) (decimal.Decimal, error) {
	item, err := s.GetMenuItem(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}
	return s.costs.CostOf(ctx, item.ID)
}

// DeleteMenuItem removes a menu item and its recipe links. Items that
// appear in recorded sales cannot be deleted.
func (s *MenuService) DeleteMenuItem(ctx context.Context, id uuid.UUID) error {
	item, err := s.GetMenuItem(ctx, id)
	if err != nil {
		return err
	}

	sold, err := s.orderItemRepo.CountByMenuItem(ctx, item.ID)
	if err != nil {
		return apperror.NewStoreError("count sales of menu item", err)
	}
	if sold > 0 {
		return apperror.NewConflictError(fmt.Sprintf(
			"cannot delete %s: it appears in %d recorded sale line(s)", item.Name, sold))
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.linkRepo.DeleteByMenuItem(ctx, item.ID); err != nil {
			return apperror.NewStoreError(fmt.Sprintf("remove recipe of %s", item.Name), err)
		}
		if err := s.menuRepo.Delete(ctx, item.ID); err != nil {
			return apperror.NewStoreError(fmt.Sprintf("delete %s", item.Name), err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.costs.Invalidate(item.ID)
	return nil
}
