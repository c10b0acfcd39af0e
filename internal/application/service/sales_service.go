package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/cafe-api/internal/domain/entity"
	"github.com/sangkips/cafe-api/internal/domain/enum"
	"github.com/sangkips/cafe-api/internal/domain/repository"
	"github.com/sangkips/cafe-api/pkg/apperror"
	"github.com/sangkips/cafe-api/pkg/utils"
	"github.com/shopspring/decimal"
)

// SalesService records end-of-day sales batches
type SalesService struct {
	tx            repository.Transactor
	orderRepo     repository.OrderRepository
	orderItemRepo repository.OrderItemRepository
	menuRepo      repository.MenuItemRepository
	workerRepo    repository.WorkerRepository
	recipes       *RecipeGraph
	costs         *CostCalculator
	decrementer   *StockDecrementer
}

// NewSalesService creates a new sales service
func NewSalesService(
	tx repository.Transactor,
	orderRepo repository.OrderRepository,
	orderItemRepo repository.OrderItemRepository,
	menuRepo repository.MenuItemRepository,
	workerRepo repository.WorkerRepository,
	recipes *RecipeGraph,
	costs *CostCalculator,
	decrementer *StockDecrementer,
) *SalesService {
	return &SalesService{
		tx:            tx,
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		menuRepo:      menuRepo,
		workerRepo:    workerRepo,
		recipes:       recipes,
		costs:         costs,
		decrementer:   decrementer,
	}
}

// SaleLine is the aggregate quantity sold of one menu item. SalePrice is the
// price the operator saw when submitting; nil means the menu's current price.
type SaleLine struct {
	MenuItemID uuid.UUID
	Quantity   int
	SalePrice  *decimal.Decimal
}

// SubmitBatchInput is one server's sales for one day
type SubmitBatchInput struct {
	ServerID  uuid.UUID
	SalesDate time.Time
	Lines     []SaleLine
}

// BatchResult summarises a recorded batch
type BatchResult struct {
	OrderID       uuid.UUID       `json:"order_id"`
	SoldAt        time.Time       `json:"sold_at"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	LinesRecorded int             `json:"lines_recorded"`
	StockWarnings []StockWarning  `json:"stock_warnings"`
}

// SubmitBatch records a batch as one order and decrements stock through the
// recipes, all in one transaction. Lines with quantity zero are dropped.
//
// price_at_sale is the submitted price rather than the menu price at commit
// time, so the recorded revenue matches what the operator confirmed.
func (s *SalesService) SubmitBatch(ctx context.Context, input *SubmitBatchInput) (*BatchResult, error) {
	lines, err := s.validateLines(input)
	if err != nil {
		return nil, err
	}

	server, err := s.workerRepo.GetByID(ctx, input.ServerID)
	if err != nil {
		return nil, apperror.NewStoreError("load server", err)
	}
	if server == nil {
		return nil, apperror.NewBadRequestError(fmt.Sprintf("cannot record sales: server %s does not exist", input.ServerID))
	}
	if server.Role != enum.WorkerRoleServer {
		return nil, apperror.NewBadRequestError(fmt.Sprintf("cannot record sales: %s is a %s, not a server", server.Name, server.Role))
	}

	menuItems, err := s.loadMenuItems(ctx, lines)
	if err != nil {
		return nil, err
	}

	result := &BatchResult{
		SoldAt:        utils.SalesTimestamp(input.SalesDate),
		TotalRevenue:  decimal.Zero,
		TotalCost:     decimal.Zero,
		StockWarnings: []StockWarning{},
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		order := &entity.Order{
			ServerID: server.ID,
			SoldAt:   result.SoldAt,
		}
		if err := s.orderRepo.Create(ctx, order); err != nil {
			return apperror.NewStoreError("create order", err)
		}
		result.OrderID = order.ID

		for _, line := range lines {
			menuItem := menuItems[line.MenuItemID]
			if err := s.recordLine(ctx, order.ID, menuItem, line, result); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Recorded sales batch %s for %s on %s: %d lines, revenue %s, cost %s",
		result.OrderID, server.Name, result.SoldAt.Format(utils.DateLayout),
		result.LinesRecorded, result.TotalRevenue.StringFixed(2), result.TotalCost.StringFixed(2))
	for _, w := range result.StockWarnings {
		log.Printf("Warning: sales batch %s: %s", result.OrderID, w)
	}

	return result, nil
}

func (s *SalesService) recordLine(ctx context.Context, orderID uuid.UUID, menuItem *entity.MenuItem, line SaleLine, result *BatchResult) error {
	unitCost, err := s.costs.CostOf(ctx, menuItem.ID)
	if err != nil {
		return err
	}

	price := menuItem.SalePrice
	if line.SalePrice != nil {
		price = *line.SalePrice
	}

	item := &entity.OrderItem{
		OrderID:     orderID,
		MenuItemID:  menuItem.ID,
		Quantity:    line.Quantity,
		PriceAtSale: price,
		CostAtSale:  unitCost,
	}
	if err := s.orderItemRepo.Create(ctx, item); err != nil {
		return apperror.NewStoreError(fmt.Sprintf("record sale of %s", menuItem.Name), err)
	}

	result.TotalRevenue = result.TotalRevenue.Add(item.LineRevenue())
	result.TotalCost = result.TotalCost.Add(item.LineCost())
	result.LinesRecorded++

	ingredients, err := s.recipes.IngredientsOf(ctx, menuItem.ID)
	if err != nil {
		return err
	}
	sold := decimal.NewFromInt(int64(line.Quantity))
	for _, ing := range ingredients {
		consumed, err := s.decrementer.Consume(ctx, ing.StockItemID, ing.QuantityUsed.Mul(sold))
		if err != nil {
			return err
		}
		if w := consumed.Warning(); w != nil {
			result.StockWarnings = append(result.StockWarnings, *w)
		}
	}
	return nil
}

// validateLines rejects negative quantities and prices and duplicate menu
// items, drops zero quantities, and orders the rest by menu item id.
func (s *SalesService) validateLines(input *SubmitBatchInput) ([]SaleLine, error) {
	if input.SalesDate.IsZero() {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "sales_date", Message: "is required"},
		})
	}

	var fieldErrors []apperror.FieldError
	seen := make(map[uuid.UUID]bool, len(input.Lines))
	lines := make([]SaleLine, 0, len(input.Lines))

	for i, line := range input.Lines {
		field := fmt.Sprintf("items[%d]", i)
		if line.MenuItemID == uuid.Nil {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: field + ".menu_item_id", Message: "is required"})
			continue
		}
		if seen[line.MenuItemID] {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: field + ".menu_item_id", Message: "appears more than once in the batch"})
			continue
		}
		seen[line.MenuItemID] = true

		if line.Quantity < 0 {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: field + ".quantity", Message: "must not be negative"})
			continue
		}
		if line.SalePrice != nil && line.SalePrice.IsNegative() {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: field + ".sale_price", Message: "must not be negative"})
			continue
		}
		if line.Quantity == 0 {
			continue
		}
		lines = append(lines, line)
	}

	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}
	if len(lines) == 0 {
		return nil, apperror.NewBadRequestError("cannot record sales: the batch has no items with a quantity above zero")
	}

	sort.Slice(lines, func(i, j int) bool {
		return lines[i].MenuItemID.String() < lines[j].MenuItemID.String()
	})
	return lines, nil
}

func (s *SalesService) loadMenuItems(ctx context.Context, lines []SaleLine) (map[uuid.UUID]*entity.MenuItem, error) {
	ids := make([]uuid.UUID, len(lines))
	for i, line := range lines {
		ids[i] = line.MenuItemID
	}

	items, err := s.menuRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, apperror.NewStoreError("load menu items", err)
	}

	byID := make(map[uuid.UUID]*entity.MenuItem, len(items))
	for i := range items {
		byID[items[i].ID] = &items[i]
	}
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			return nil, apperror.NewBadRequestError(fmt.Sprintf("cannot record sales: menu item %s does not exist", id))
		}
	}
	return byID, nil
}
