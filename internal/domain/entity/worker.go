package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/cafe-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Worker is a staff member. Salary is a flat monthly amount.
type Worker struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name      string          `gorm:"size:255;not null" json:"name"`
	Role      enum.WorkerRole `gorm:"size:20;not null;index" json:"role"`
	Salary    decimal.Decimal `gorm:"type:numeric(14,4);not null;default:0" json:"salary"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new worker
func (w *Worker) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Worker model
func (Worker) TableName() string {
	return "workers"
}
