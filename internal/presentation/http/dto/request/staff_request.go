package request

import "github.com/shopspring/decimal"

// CreateWorkerRequest represents a worker creation request
type CreateWorkerRequest struct {
	Name   string          `json:"name" binding:"required,max=255"`
	Role   string          `json:"role" binding:"required"`
	Salary decimal.Decimal `json:"salary"`
}

// CreateExpenseRequest represents a monthly expense. Month is YYYY-MM-01.
type CreateExpenseRequest struct {
	Month       string           `json:"month" binding:"required"`
	Description string           `json:"description" binding:"required,max=255"`
	Amount      *decimal.Decimal `json:"amount" binding:"required"`
}
