package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MenuItem is something the café sells
type MenuItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name      string          `gorm:"size:255;not null" json:"name"`
	SalePrice decimal.Decimal `gorm:"type:numeric(14,4);not null;default:0" json:"sale_price"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	// Relationships
	Recipe []RecipeLink `gorm:"foreignKey:MenuItemID" json:"recipe,omitempty"`
}

// BeforeCreate generates a UUID before creating a new menu item
func (m *MenuItem) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the MenuItem model
func (MenuItem) TableName() string {
	return "menu_items"
}

// RecipeLink says how much of one stock item a single unit of a menu item
// consumes.
type RecipeLink struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	MenuItemID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"menu_item_id"`
	StockItemID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"stock_item_id"`
	QuantityUsed decimal.Decimal `gorm:"type:numeric(14,4);not null" json:"quantity_used"`
	CreatedAt    time.Time       `json:"created_at"`

	// Relationships
	MenuItem  *MenuItem  `gorm:"foreignKey:MenuItemID" json:"-"`
	StockItem *StockItem `gorm:"foreignKey:StockItemID" json:"stock_item,omitempty"`
}

// BeforeCreate generates a UUID before creating a new recipe link
func (r *RecipeLink) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the RecipeLink model
func (RecipeLink) TableName() string {
	return "recipe_links"
}
