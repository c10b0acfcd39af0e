package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/cafe-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// MenuItemRepository defines the interface for menu item data operations
type MenuItemRepository interface {
	Create(ctx context.Context, item *entity.MenuItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.MenuItem, error)
	List(ctx context.Context) ([]entity.MenuItem, error)
	UpdatePrice(ctx context.Context, id uuid.UUID, price decimal.Decimal) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// RecipeLinkRepository defines the interface for recipe link data operations
type RecipeLinkRepository interface {
	Create(ctx context.Context, link *entity.RecipeLink) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.RecipeLink, error)
	// ListByMenuItem returns a menu item's ingredients with their stock items loaded
	ListByMenuItem(ctx context.Context, menuItemID uuid.UUID) ([]entity.RecipeLink, error)
	ListByStockItem(ctx context.Context, stockItemID uuid.UUID) ([]entity.RecipeLink, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByMenuItem(ctx context.Context, menuItemID uuid.UUID) error
}
