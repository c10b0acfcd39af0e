package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesTotals aggregates order lines whose order falls inside a window
type SalesTotals struct {
	Revenue    decimal.Decimal
	COGS       decimal.Decimal
	OrderCount int64
	ItemsSold  int64
}

// OrderTotalsResult is one order's revenue and cost, used for day buckets
type OrderTotalsResult struct {
	OrderID uuid.UUID
	SoldAt  time.Time
	Revenue decimal.Decimal
	COGS    decimal.Decimal
}

// TopMenuItemResult represents a menu item's sales performance
type TopMenuItemResult struct {
	MenuItemID   uuid.UUID
	MenuItemName string
	QuantitySold int64
	Revenue      decimal.Decimal
	COGS         decimal.Decimal
}

// AnalyticsRepository defines aggregation queries over recorded sales. All
// windows are inclusive on both ends.
type AnalyticsRepository interface {
	GetSalesTotals(ctx context.Context, start, end time.Time) (*SalesTotals, error)
	GetOrderTotals(ctx context.Context, start, end time.Time) ([]OrderTotalsResult, error)
	GetTopMenuItems(ctx context.Context, start, end time.Time, limit int) ([]TopMenuItemResult, error)
}
