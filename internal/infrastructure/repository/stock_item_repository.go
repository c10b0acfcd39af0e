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
	"gorm.io/gorm/clause"
)

type stockItemRepository struct {
	db *gorm.DB
}

// NewStockItemRepository creates a new stock item repository
func NewStockItemRepository(db *gorm.DB) domainRepo.StockItemRepository {
	return &stockItemRepository{db: db}
}

func (r *stockItemRepository) Create(ctx context.Context, item *entity.StockItem) error {
	return conn(ctx, r.db).Create(item).Error
}

func (r *stockItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.StockItem, error) {
	var item entity.StockItem
	err := conn(ctx, r.db).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

// GetByIDs retrieves multiple stock items in a single query
func (r *stockItemRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.StockItem, error) {
	if len(ids) == 0 {
		return []entity.StockItem{}, nil
	}
	var items []entity.StockItem
	err := conn(ctx, r.db).Where("id IN ?", ids).Find(&items).Error
	return items, err
}

func (r *stockItemRepository) List(ctx context.Context) ([]entity.StockItem, error) {
	var items []entity.StockItem
	err := conn(ctx, r.db).Order("name ASC").Find(&items).Error
	return items, err
}

func (r *stockItemRepository) ListLowStock(ctx context.Context, threshold decimal.Decimal) ([]entity.StockItem, error) {
	var items []entity.StockItem
	err := conn(ctx, r.db).
		Where("(tracking_type IN ? AND current_quantity < ?) OR (tracking_type = ? AND current_quantity = 0)",
			[]string{enum.TrackingUnit.String(), enum.TrackingMultiUse.String()}, threshold, enum.TrackingManual.String()).
		Order("name ASC").
		Find(&items).Error
	return items, err
}

func (r *stockItemRepository) UpdateCost(ctx context.Context, id uuid.UUID, costPerUnit decimal.Decimal) error {
	return conn(ctx, r.db).Model(&entity.StockItem{}).
		Where("id = ?", id).
		Update("cost_per_unit", costPerUnit).Error
}

func (r *stockItemRepository) SetQuantity(ctx context.Context, id uuid.UUID, quantity decimal.Decimal) error {
	return conn(ctx, r.db).Model(&entity.StockItem{}).
		Where("id = ?", id).
		Update("current_quantity", quantity).Error
}

func (r *stockItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Delete(&entity.StockItem{}, "id = ?", id).Error
}

// AtomicDecrementQuantity atomically decrements stock only if sufficient quantity exists.
// Uses: UPDATE stock_items SET current_quantity = current_quantity - amount WHERE id = ? AND current_quantity >= amount
func (r *stockItemRepository) AtomicDecrementQuantity(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (bool, error) {
	result := conn(ctx, r.db).Model(&entity.StockItem{}).
		Where("id = ? AND current_quantity >= ?", id, amount).
		Update("current_quantity", gorm.Expr("current_quantity - ?", amount))

	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

// AtomicClampToZero empties the item only while it holds less than amount.
// The row is locked between reading the emptied quantity and zeroing it, so
// a concurrent decrement cannot change what is reported.
func (r *stockItemRepository) AtomicClampToZero(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (decimal.Decimal, bool, error) {
	var emptied decimal.Decimal
	var clamped bool

	err := conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		var item entity.StockItem
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "current_quantity").
			Where("id = ? AND current_quantity < ?", id, amount).
			Take(&item).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := tx.Model(&entity.StockItem{}).
			Where("id = ?", id).
			Update("current_quantity", decimal.Zero).Error; err != nil {
			return err
		}

		emptied = decimal.Max(item.CurrentQuantity, decimal.Zero)
		clamped = true
		return nil
	})
	if err != nil {
		return decimal.Zero, false, err
	}

	return emptied, clamped, nil
}

// AtomicIncrementQuantity adds to the stock in a single statement
func (r *stockItemRepository) AtomicIncrementQuantity(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error {
	return conn(ctx, r.db).Model(&entity.StockItem{}).
		Where("id = ?", id).
		Update("current_quantity", gorm.Expr("current_quantity + ?", amount)).Error
}
