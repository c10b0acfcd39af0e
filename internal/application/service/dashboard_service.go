package service

import (
	"context"
	"time"

	"github.com/sangkips/cafe-api/internal/domain/entity"
)

// DashboardService provides the back office landing page figures
type DashboardService struct {
	profit *ProfitService
	stock  *StockService
	now    func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(profit *ProfitService, stock *StockService) *DashboardService {
	return &DashboardService{
		profit: profit,
		stock:  stock,
		now:    time.Now,
	}
}

// DashboardStats represents dashboard statistics
type DashboardStats struct {
	Today         *ProfitReport        `json:"today"`
	CurrentMonth  *MonthlyProfitReport `json:"current_month"`
	LowStockCount int                  `json:"low_stock_count"`
	LowStockItems []entity.StockItem   `json:"low_stock_items"`
}

// GetDashboardStats returns today's and this month's figures with the items
// needing a restock
func (s *DashboardService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	now := s.now().UTC()

	today, err := s.profit.DailyReport(ctx, now)
	if err != nil {
		return nil, err
	}

	month, err := s.profit.MonthlyReport(ctx, now)
	if err != nil {
		return nil, err
	}

	lowStock, err := s.stock.GetLowStockItems(ctx)
	if err != nil {
		return nil, err
	}
	if lowStock == nil {
		lowStock = []entity.StockItem{}
	}

	return &DashboardStats{
		Today:         today,
		CurrentMonth:  month,
		LowStockCount: len(lowStock),
		LowStockItems: lowStock,
	}, nil
}
