package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateMenuItemRequest represents a menu item creation request
type CreateMenuItemRequest struct {
	Name      string           `json:"name" binding:"required,max=255"`
	SalePrice *decimal.Decimal `json:"sale_price" binding:"required"`
}

// UpdatePriceRequest represents a sale price change
type UpdatePriceRequest struct {
	SalePrice *decimal.Decimal `json:"sale_price" binding:"required"`
}

// AddIngredientRequest links a stock item into a recipe
type AddIngredientRequest struct {
	StockItemID  uuid.UUID        `json:"stock_item_id" binding:"required"`
	QuantityUsed *decimal.Decimal `json:"quantity_used" binding:"required"`
}
