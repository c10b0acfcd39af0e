package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sangkips/cafe-api/internal/domain/entity"
	"github.com/sangkips/cafe-api/internal/domain/repository"
	"github.com/sangkips/cafe-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// Ingredient is one edge of the recipe graph seen from the menu item side
type Ingredient struct {
	LinkID        uuid.UUID         `json:"link_id"`
	StockItemID   uuid.UUID         `json:"stock_item_id"`
	StockItemName string            `json:"stock_item_name"`
	UnitOfMeasure string            `json:"unit_of_measure"`
	QuantityUsed  decimal.Decimal   `json:"quantity_used"`
	StockItem     *entity.StockItem `json:"-"`
}

// RecipeGraph is the bipartite menu item → stock item relation. Edges only
// run from menu items to stock items.
type RecipeGraph struct {
	linkRepo  repository.RecipeLinkRepository
	menuRepo  repository.MenuItemRepository
	stockRepo repository.StockItemRepository
	costs     *CostCalculator
}

// NewRecipeGraph creates a new recipe graph service
func NewRecipeGraph(
	linkRepo repository.RecipeLinkRepository,
	menuRepo repository.MenuItemRepository,
	stockRepo repository.StockItemRepository,
	costs *CostCalculator,
) *RecipeGraph {
	return &RecipeGraph{
		linkRepo:  linkRepo,
		menuRepo:  menuRepo,
		stockRepo: stockRepo,
		costs:     costs,
	}
}

// IngredientsOf lists the stock items consumed per unit of a menu item
func (g *RecipeGraph) IngredientsOf(ctx context.Context, menuItemID uuid.UUID) ([]Ingredient, error) {
	links, err := g.linkRepo.ListByMenuItem(ctx, menuItemID)
	if err != nil {
		return nil, apperror.NewStoreError("load recipe", err)
	}

	ingredients := make([]Ingredient, 0, len(links))
	for _, link := range links {
		ing := Ingredient{
			LinkID:       link.ID,
			StockItemID:  link.StockItemID,
			QuantityUsed: link.QuantityUsed,
			StockItem:    link.StockItem,
		}
		if link.StockItem != nil {
			ing.StockItemName = link.StockItem.Name
			ing.UnitOfMeasure = link.StockItem.UnitOfMeasure
		}
		ingredients = append(ingredients, ing)
	}
	return ingredients, nil
}

// UsagesOf lists the menu items whose recipes consume a stock item
func (g *RecipeGraph) UsagesOf(ctx context.Context, stockItemID uuid.UUID) ([]uuid.UUID, error) {
	links, err := g.linkRepo.ListByStockItem(ctx, stockItemID)
	if err != nil {
		return nil, apperror.NewStoreError("load stock item usages", err)
	}

	seen := make(map[uuid.UUID]bool, len(links))
	menuItemIDs := make([]uuid.UUID, 0, len(links))
	for _, link := range links {
		if seen[link.MenuItemID] {
			continue
		}
		seen[link.MenuItemID] = true
		menuItemIDs = append(menuItemIDs, link.MenuItemID)
	}
	return menuItemIDs, nil
}

// AddIngredientInput describes a new recipe edge
type AddIngredientInput struct {
	MenuItemID   uuid.UUID
	StockItemID  uuid.UUID
	QuantityUsed decimal.Decimal
}

// AddIngredient links a stock item into a menu item's recipe
func (g *RecipeGraph) AddIngredient(ctx context.Context, input *AddIngredientInput) (*entity.RecipeLink, error) {
	if !input.QuantityUsed.IsPositive() {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "quantity_used", Message: "must be greater than zero"},
		})
	}

	menuItem, err := g.menuRepo.GetByID(ctx, input.MenuItemID)
	if err != nil {
		return nil, apperror.NewStoreError("load menu item", err)
	}
	if menuItem == nil {
		return nil, apperror.NewNotFoundError("Menu item")
	}

	stockItem, err := g.stockRepo.GetByID(ctx, input.StockItemID)
	if err != nil {
		return nil, apperror.NewStoreError("load stock item", err)
	}
	if stockItem == nil {
		return nil, apperror.NewNotFoundError("Stock item")
	}

	link := &entity.RecipeLink{
		MenuItemID:   menuItem.ID,
		StockItemID:  stockItem.ID,
		QuantityUsed: input.QuantityUsed,
	}
	if err := g.linkRepo.Create(ctx, link); err != nil {
		return nil, apperror.NewStoreError("add recipe ingredient", err)
	}
	g.costs.Invalidate(menuItem.ID)

	link.StockItem = stockItem
	return link, nil
}

// RemoveIngredient deletes a single recipe edge
func (g *RecipeGraph) RemoveIngredient(ctx context.Context, linkID uuid.UUID) error {
	link, err := g.linkRepo.GetByID(ctx, linkID)
	if err != nil {
		return apperror.NewStoreError("load recipe link", err)
	}
	if link == nil {
		return apperror.NewNotFoundError("Recipe link")
	}

	if err := g.linkRepo.Delete(ctx, link.ID); err != nil {
		return apperror.NewStoreError(fmt.Sprintf("remove ingredient from menu item %s", link.MenuItemID), err)
	}
	g.costs.Invalidate(link.MenuItemID)
	return nil
}
