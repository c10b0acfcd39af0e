package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sangkips/cafe-api/internal/config"
	"github.com/sangkips/cafe-api/internal/domain/repository"
	"github.com/sangkips/cafe-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// consumeAttempts bounds how often Consume retries when a concurrent restock
// lands between its decrement and clamp statements.
const consumeAttempts = 3

// StockWarning reports that a sale consumed more of an ingredient than was on
// hand. The quantity was clamped to zero.
type StockWarning struct {
	StockItemID   uuid.UUID       `json:"stock_item_id"`
	StockItemName string          `json:"stock_item_name"`
	Requested     decimal.Decimal `json:"requested"`
	Shortfall     decimal.Decimal `json:"shortfall"`
}

func (w StockWarning) String() string {
	return fmt.Sprintf("%s short by %s (needed %s)", w.StockItemName, w.Shortfall, w.Requested)
}

// ConsumeResult describes what Consume did to one stock item
type ConsumeResult struct {
	StockItemID   uuid.UUID
	StockItemName string
	Requested     decimal.Decimal
	Consumed      decimal.Decimal
	Shortfall     decimal.Decimal
	// Skipped is set for MANUAL items, which sales never decrement
	Skipped bool
}

// Warning returns the shortfall warning, if any
func (r *ConsumeResult) Warning() *StockWarning {
	if r == nil || !r.Shortfall.IsPositive() {
		return nil
	}
	return &StockWarning{
		StockItemID:   r.StockItemID,
		StockItemName: r.StockItemName,
		Requested:     r.Requested,
		Shortfall:     r.Shortfall,
	}
}

// StockDecrementer reduces stock for sold ingredients. Every change is a
// single conditional UPDATE so concurrent sales never lose a decrement.
type StockDecrementer struct {
	stockRepo repository.StockItemRepository
	policy    string
}

// NewStockDecrementer creates a decrementer with the given negative-stock
// policy (config.StockPolicyClamp or config.StockPolicyReject).
func NewStockDecrementer(stockRepo repository.StockItemRepository, policy string) *StockDecrementer {
	if policy != config.StockPolicyReject {
		policy = config.StockPolicyClamp
	}
	return &StockDecrementer{stockRepo: stockRepo, policy: policy}
}

// Policy returns the active negative-stock policy
func (d *StockDecrementer) Policy() string {
	return d.policy
}

// Consume takes amount of a stock item. Under the clamp policy an
// insufficient quantity is emptied and the gap reported as a shortfall;
// under the reject policy it fails with a conflict error.
func (d *StockDecrementer) Consume(ctx context.Context, stockItemID uuid.UUID, amount decimal.Decimal) (*ConsumeResult, error) {
	item, err := d.stockRepo.GetByID(ctx, stockItemID)
	if err != nil {
		return nil, apperror.NewStoreError("load stock item", err)
	}
	if item == nil {
		return nil, apperror.NewNotFoundError(fmt.Sprintf("Stock item %s", stockItemID))
	}

	result := &ConsumeResult{
		StockItemID:   item.ID,
		StockItemName: item.Name,
		Requested:     amount,
		Consumed:      decimal.Zero,
		Shortfall:     decimal.Zero,
	}

	if !item.TrackingType.IsDepletable() {
		result.Skipped = true
		return result, nil
	}
	if !amount.IsPositive() {
		return result, nil
	}

	for attempt := 0; attempt < consumeAttempts; attempt++ {
		ok, err := d.stockRepo.AtomicDecrementQuantity(ctx, item.ID, amount)
		if err != nil {
			return nil, apperror.NewStoreError(fmt.Sprintf("decrement stock of %s", item.Name), err)
		}
		if ok {
			result.Consumed = amount
			return result, nil
		}

		current, err := d.stockRepo.GetByID(ctx, item.ID)
		if err != nil {
			return nil, apperror.NewStoreError("reload stock item", err)
		}
		if current == nil {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Stock item %s", stockItemID))
		}

		if d.policy == config.StockPolicyReject {
			return nil, apperror.NewConflictError(fmt.Sprintf(
				"insufficient stock for %s: need %s %s, have %s",
				item.Name, amount, item.UnitOfMeasure, current.CurrentQuantity))
		}

		emptied, clamped, err := d.stockRepo.AtomicClampToZero(ctx, item.ID, amount)
		if err != nil {
			return nil, apperror.NewStoreError(fmt.Sprintf("clamp stock of %s", item.Name), err)
		}
		if clamped {
			result.Consumed = emptied
			result.Shortfall = amount.Sub(emptied)
			return result, nil
		}
		// restocked between the two statements, go round again
	}

	return nil, apperror.NewConflictError(fmt.Sprintf("stock of %s changed concurrently, retry the sale", item.Name))
}
