package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/cafe-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// OrderResponse is an order with its totals computed from the line snapshots
type OrderResponse struct {
	ID          uuid.UUID           `json:"id"`
	ServerID    uuid.UUID           `json:"server_id"`
	ServerName  string              `json:"server_name"`
	SoldAt      time.Time           `json:"sold_at"`
	SalesDate   string              `json:"sales_date"`
	Revenue     decimal.Decimal     `json:"revenue"`
	Cost        decimal.Decimal     `json:"cost"`
	GrossProfit decimal.Decimal     `json:"gross_profit"`
	Items       []OrderItemResponse `json:"items,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
}

// OrderItemResponse is one line of an order
type OrderItemResponse struct {
	ID           uuid.UUID       `json:"id"`
	MenuItemID   uuid.UUID       `json:"menu_item_id"`
	MenuItemName string          `json:"menu_item_name,omitempty"`
	Quantity     int             `json:"quantity"`
	PriceAtSale  decimal.Decimal `json:"price_at_sale"`
	CostAtSale   decimal.Decimal `json:"cost_at_sale"`
	Revenue      decimal.Decimal `json:"revenue"`
	Cost         decimal.Decimal `json:"cost"`
}

// NewOrderResponse builds the response for an order. Lines are included
// only when withItems is set.
func NewOrderResponse(order *entity.Order, withItems bool) OrderResponse {
	revenue, cost := order.Revenue(), order.Cost()
	resp := OrderResponse{
		ID:          order.ID,
		ServerID:    order.ServerID,
		SoldAt:      order.SoldAt,
		SalesDate:   order.SoldAt.UTC().Format("2006-01-02"),
		Revenue:     revenue,
		Cost:        cost,
		GrossProfit: revenue.Sub(cost),
		CreatedAt:   order.CreatedAt,
	}
	if order.Server != nil {
		resp.ServerName = order.Server.Name
	}

	if withItems {
		resp.Items = make([]OrderItemResponse, 0, len(order.Items))
		for i := range order.Items {
			item := &order.Items[i]
			line := OrderItemResponse{
				ID:          item.ID,
				MenuItemID:  item.MenuItemID,
				Quantity:    item.Quantity,
				PriceAtSale: item.PriceAtSale,
				CostAtSale:  item.CostAtSale,
				Revenue:     item.LineRevenue(),
				Cost:        item.LineCost(),
			}
			if item.MenuItem != nil {
				line.MenuItemName = item.MenuItem.Name
			}
			resp.Items = append(resp.Items, line)
		}
	}
	return resp
}

// NewOrderResponses maps a page of orders
func NewOrderResponses(orders []entity.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, NewOrderResponse(&orders[i], false))
	}
	return out
}
