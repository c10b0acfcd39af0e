package request

import "github.com/shopspring/decimal"

// CreateStockItemRequest represents a stock item creation request
type CreateStockItemRequest struct {
	Name            string          `json:"name" binding:"required,max=255"`
	TrackingType    string          `json:"tracking_type" binding:"required"`
	CurrentQuantity decimal.Decimal `json:"current_quantity"`
	UnitOfMeasure   string          `json:"unit_of_measure" binding:"max=50"`
	CostPerUnit     decimal.Decimal `json:"cost_per_unit"`
}

// RestockRequest adds stock. Amount is ignored for MANUAL items.
type RestockRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// UpdateCostRequest represents a cost per unit change
type UpdateCostRequest struct {
	CostPerUnit *decimal.Decimal `json:"cost_per_unit" binding:"required"`
}
