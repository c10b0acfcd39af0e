package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SubmitSalesRequest is one server's end-of-day sales
type SubmitSalesRequest struct {
	ServerID  uuid.UUID          `json:"server_id" binding:"required"`
	SalesDate string             `json:"sales_date" binding:"required"`
	Items     []SalesItemRequest `json:"items" binding:"required,dive"`
}

// SalesItemRequest is the quantity sold of one menu item. SalePrice is the
// price shown when the batch was entered; omitted means the current menu price.
type SalesItemRequest struct {
	MenuItemID uuid.UUID        `json:"menu_item_id" binding:"required"`
	Quantity   int              `json:"quantity"`
	SalePrice  *decimal.Decimal `json:"sale_price"`
}

// OrderFilterRequest represents order list filter parameters
type OrderFilterRequest struct {
	ServerID  string `form:"server_id"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Page      string `form:"page"`
	PerPage   string `form:"per_page"`
}
