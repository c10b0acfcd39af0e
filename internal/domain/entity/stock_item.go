package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/cafe-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StockItem is an ingredient or consumable held in inventory
type StockItem struct {
	ID              uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	Name            string            `gorm:"size:255;not null" json:"name"`
	TrackingType    enum.TrackingType `gorm:"size:20;not null" json:"tracking_type"`
	CurrentQuantity decimal.Decimal   `gorm:"type:numeric(14,4);not null;default:0" json:"current_quantity"`
	UnitOfMeasure   string            `gorm:"size:50" json:"unit_of_measure"`
	CostPerUnit     decimal.Decimal   `gorm:"type:numeric(14,4);not null;default:0" json:"cost_per_unit"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new stock item
func (s *StockItem) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StockItem model
func (StockItem) TableName() string {
	return "stock_items"
}

// IsLow reports whether the item needs restocking. MANUAL items are low only
// once marked as run out; counted items are low below the threshold.
func (s *StockItem) IsLow(threshold decimal.Decimal) bool {
	if s.TrackingType == enum.TrackingManual {
		return s.CurrentQuantity.IsZero()
	}
	return s.CurrentQuantity.LessThan(threshold)
}
