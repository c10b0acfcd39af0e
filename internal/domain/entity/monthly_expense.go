package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MonthlyExpense is an operating cost booked against a month. Month holds the
// YYYY-MM-01 key that reports match exactly.
type MonthlyExpense struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Month       string          `gorm:"size:10;not null;index" json:"month"`
	Description string          `gorm:"size:255;not null" json:"description"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,4);not null" json:"amount"`
	CreatedAt   time.Time       `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new expense
func (e *MonthlyExpense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the MonthlyExpense model
func (MonthlyExpense) TableName() string {
	return "monthly_expenses"
}
