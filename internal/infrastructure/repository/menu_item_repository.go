package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/cafe-api/internal/domain/entity"
	domainRepo "github.com/sangkips/cafe-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type menuItemRepository struct {
	db *gorm.DB
}

// NewMenuItemRepository creates a new menu item repository
func NewMenuItemRepository(db *gorm.DB) domainRepo.MenuItemRepository {
	return &menuItemRepository{db: db}
}

func (r *menuItemRepository) Create(ctx context.Context, item *entity.MenuItem) error {
	return conn(ctx, r.db).Omit("Recipe").Create(item).Error
}

func (r *menuItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error) {
	var item entity.MenuItem
	err := conn(ctx, r.db).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

// GetByIDs retrieves multiple menu items in a single query
func (r *menuItemRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.MenuItem, error) {
	if len(ids) == 0 {
		return []entity.MenuItem{}, nil
	}
	var items []entity.MenuItem
	err := conn(ctx, r.db).Where("id IN ?", ids).Find(&items).Error
	return items, err
}

func (r *menuItemRepository) List(ctx context.Context) ([]entity.MenuItem, error) {
	var items []entity.MenuItem
	err := conn(ctx, r.db).Order("name ASC").Find(&items).Error
	return items, err
}

func (r *menuItemRepository) UpdatePrice(ctx context.Context, id uuid.UUID, price decimal.Decimal) error {
	return conn(ctx, r.db).Model(&entity.MenuItem{}).
		Where("id = ?", id).
		Update("sale_price", price).Error
}

func (r *menuItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Delete(&entity.MenuItem{}, "id = ?", id).Error
}

type recipeLinkRepository struct {
	db *gorm.DB
}

// NewRecipeLinkRepository creates a new recipe link repository
func NewRecipeLinkRepository(db *gorm.DB) domainRepo.RecipeLinkRepository {
	return &recipeLinkRepository{db: db}
}

func (r *recipeLinkRepository) Create(ctx context.Context, link *entity.RecipeLink) error {
	return conn(ctx, r.db).Omit("MenuItem", "StockItem").Create(link).Error
}

func (r *recipeLinkRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.RecipeLink, error) {
	var link entity.RecipeLink
	err := conn(ctx, r.db).First(&link, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &link, err
}

func (r *recipeLinkRepository) ListByMenuItem(ctx context.Context, menuItemID uuid.UUID) ([]entity.RecipeLink, error) {
	var links []entity.RecipeLink
	err := conn(ctx, r.db).
		Preload("StockItem").
		Where("menu_item_id = ?", menuItemID).
		Order("created_at ASC, id ASC").
		Find(&links).Error
	return links, err
}

func (r *recipeLinkRepository) ListByStockItem(ctx context.Context, stockItemID uuid.UUID) ([]entity.RecipeLink, error) {
	var links []entity.RecipeLink
	err := conn(ctx, r.db).
		Where("stock_item_id = ?", stockItemID).
		Find(&links).Error
	return links, err
}

func (r *recipeLinkRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Delete(&entity.RecipeLink{}, "id = ?", id).Error
}

func (r *recipeLinkRepository) DeleteByMenuItem(ctx context.Context, menuItemID uuid.UUID) error {
	return conn(ctx, r.db).Delete(&entity.RecipeLink{}, "menu_item_id = ?", menuItemID).Error
}
