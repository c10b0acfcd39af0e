package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/cafe-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// StockItemRepository defines the interface for stock item data operations
type StockItemRepository interface {
	Create(ctx context.Context, item *entity.StockItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.StockItem, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.StockItem, error)
	List(ctx context.Context) ([]entity.StockItem, error)
	// ListLowStock returns counted items below threshold and MANUAL items at zero
	ListLowStock(ctx context.Context, threshold decimal.Decimal) ([]entity.StockItem, error)
	UpdateCost(ctx context.Context, id uuid.UUID, costPerUnit decimal.Decimal) error
	SetQuantity(ctx context.Context, id uuid.UUID, quantity decimal.Decimal) error
	Delete(ctx context.Context, id uuid.UUID) error

	// AtomicDecrementQuantity subtracts amount only if at least amount is on
	// hand, in one statement. Returns false when nothing was changed.
	AtomicDecrementQuantity(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (bool, error)
	// AtomicClampToZero sets the quantity to zero only if less than amount is
	// on hand, holding the row while it does. Returns the quantity it emptied,
	// or false when nothing was changed.
	AtomicClampToZero(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (decimal.Decimal, bool, error)
	// AtomicIncrementQuantity adds amount in one statement
	AtomicIncrementQuantity(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error
}
