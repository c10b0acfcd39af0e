package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order is one server's aggregate sales for one day
type Order struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ServerID  uuid.UUID `gorm:"type:uuid;not null;index" json:"server_id"`
	SoldAt    time.Time `gorm:"not null;index" json:"sold_at"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Server *Worker     `gorm:"foreignKey:ServerID" json:"server,omitempty"`
	Items  []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// Revenue sums price_at_sale × quantity over the loaded items
func (o *Order) Revenue() decimal.Decimal {
	total := decimal.Zero
	for i := range o.Items {
		total = total.Add(o.Items[i].LineRevenue())
	}
	return total
}

// Cost sums cost_at_sale × quantity over the loaded items
func (o *Order) Cost() decimal.Decimal {
	total := decimal.Zero
	for i := range o.Items {
		total = total.Add(o.Items[i].LineCost())
	}
	return total
}

// OrderItem is a line of an order. PriceAtSale and CostAtSale are per-unit
// snapshots taken when the batch was recorded and are never updated.
type OrderItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	MenuItemID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"menu_item_id"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	PriceAtSale decimal.Decimal `gorm:"type:numeric(14,4);not null;<-:create" json:"price_at_sale"`
	CostAtSale  decimal.Decimal `gorm:"type:numeric(14,4);not null;<-:create" json:"cost_at_sale"`
	CreatedAt   time.Time       `json:"created_at"`

	// Relationships
	Order    *Order    `gorm:"foreignKey:OrderID" json:"-"`
	MenuItem *MenuItem `gorm:"foreignKey:MenuItemID" json:"menu_item,omitempty"`
}

// BeforeCreate generates a UUID before creating a new order item
func (oi *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if oi.ID == uuid.Nil {
		oi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}

// LineRevenue returns price_at_sale × quantity
func (oi *OrderItem) LineRevenue() decimal.Decimal {
	return oi.PriceAtSale.Mul(decimal.NewFromInt(int64(oi.Quantity)))
}

// LineCost returns cost_at_sale × quantity
func (oi *OrderItem) LineCost() decimal.Decimal {
	return oi.CostAtSale.Mul(decimal.NewFromInt(int64(oi.Quantity)))
}
