package repository

import (
	"context"
	"time"

	domainRepo "github.com/sangkips/cafe-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// moneyScale matches the numeric(14,4) columns. SQLite sums REAL values, so
// totals are rounded back to the stored scale.
const moneyScale = 4

func roundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(moneyScale)
}

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) GetSalesTotals(ctx context.Context, start, end time.Time) (*domainRepo.SalesTotals, error) {
	var totals domainRepo.SalesTotals

	err := conn(ctx, r.db).Raw(`
		SELECT
			COALESCE(SUM(oi.quantity * oi.price_at_sale), 0) AS revenue,
			COALESCE(SUM(oi.quantity * oi.cost_at_sale), 0) AS cogs,
			COUNT(DISTINCT o.id) AS order_count,
			COALESCE(SUM(oi.quantity), 0) AS items_sold
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.sold_at >= ? AND o.sold_at <= ?
	`, start.UTC(), end.UTC()).Scan(&totals).Error

	if err != nil {
		return nil, err
	}

	totals.Revenue = roundMoney(totals.Revenue)
	totals.COGS = roundMoney(totals.COGS)
	return &totals, nil
}

func (r *analyticsRepository) GetOrderTotals(ctx context.Context, start, end time.Time) ([]domainRepo.OrderTotalsResult, error) {
	var results []domainRepo.OrderTotalsResult

	err := conn(ctx, r.db).Raw(`
		SELECT
			o.id AS order_id,
			o.sold_at AS sold_at,
			COALESCE(SUM(oi.quantity * oi.price_at_sale), 0) AS revenue,
			COALESCE(SUM(oi.quantity * oi.cost_at_sale), 0) AS cogs
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		WHERE o.sold_at >= ? AND o.sold_at <= ?
		GROUP BY o.id, o.sold_at
		ORDER BY o.sold_at ASC
	`, start.UTC(), end.UTC()).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	for i := range results {
		results[i].Revenue = roundMoney(results[i].Revenue)
		results[i].COGS = roundMoney(results[i].COGS)
	}
	return results, nil
}

func (r *analyticsRepository) GetTopMenuItems(ctx context.Context, start, end time.Time, limit int) ([]domainRepo.TopMenuItemResult, error) {
	var results []domainRepo.TopMenuItemResult

	err := conn(ctx, r.db).Raw(`
		SELECT
			m.id AS menu_item_id,
			m.name AS menu_item_name,
			COALESCE(SUM(oi.quantity), 0) AS quantity_sold,
			COALESCE(SUM(oi.quantity * oi.price_at_sale), 0) AS revenue,
			COALESCE(SUM(oi.quantity * oi.cost_at_sale), 0) AS cogs
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		JOIN menu_items m ON m.id = oi.menu_item_id
		WHERE o.sold_at >= ? AND o.sold_at <= ?
		GROUP BY m.id, m.name
		ORDER BY revenue DESC, quantity_sold DESC
		LIMIT ?
	`, start.UTC(), end.UTC(), limit).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	for i := range results {
		results[i].Revenue = roundMoney(results[i].Revenue)
		results[i].COGS = roundMoney(results[i].COGS)
	}
	return results, nil
}
