package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/sangkips/cafe-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// fakeStockRepo keeps stock items in memory. The atomic methods hold the
// mutex for their whole check-and-set.
type fakeStockRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*entity.StockItem

	// beforeClamp runs once before the next AtomicClampToZero call
	beforeClamp func()
}

func newFakeStockRepo(items ...*entity.StockItem) *fakeStockRepo {
	r := &fakeStockRepo{items: make(map[uuid.UUID]*entity.StockItem)}
	for _, it := range items {
		if it.ID == uuid.Nil {
			it.ID = uuid.New()
		}
		r.items[it.ID] = it
	}
	return r
}

func (r *fakeStockRepo) quantity(id uuid.UUID) decimal.Decimal {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items[id].CurrentQuantity
}

func (r *fakeStockRepo) Create(ctx context.Context, item *entity.StockItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	r.items[item.ID] = item
	return nil
}

func (r *fakeStockRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.StockItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *fakeStockRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.StockItem, error) {
	var out []entity.StockItem
	for _, id := range ids {
		if it, _ := r.GetByID(ctx, id); it != nil {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (r *fakeStockRepo) List(ctx context.Context) ([]entity.StockItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.StockItem, 0, len(r.items))
	for _, it := range r.items {
		out = append(out, *it)
	}
	return out, nil
}

func (r *fakeStockRepo) ListLowStock(ctx context.Context, threshold decimal.Decimal) ([]entity.StockItem, error) {
	all, _ := r.List(ctx)
	var out []entity.StockItem
	for i := range all {
		if all[i].IsLow(threshold) {
			out = append(out, all[i])
		}
	}
	return out, nil
}

func (r *fakeStockRepo) UpdateCost(ctx context.Context, id uuid.UUID, costPerUnit decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[id].CostPerUnit = costPerUnit
	return nil
}

func (r *fakeStockRepo) SetQuantity(ctx context.Context, id uuid.UUID, quantity decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[id].CurrentQuantity = quantity
	return nil
}

func (r *fakeStockRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func (r *fakeStockRepo) AtomicDecrementQuantity(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it := r.items[id]
	if it.CurrentQuantity.LessThan(amount) {
		return false, nil
	}
	it.CurrentQuantity = it.CurrentQuantity.Sub(amount)
	return true, nil
}

func (r *fakeStockRepo) AtomicClampToZero(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (decimal.Decimal, bool, error) {
	if hook := r.beforeClamp; hook != nil {
		r.beforeClamp = nil
		hook()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	it := r.items[id]
	if !it.CurrentQuantity.LessThan(amount) {
		return decimal.Zero, false, nil
	}
	emptied := decimal.Max(it.CurrentQuantity, decimal.Zero)
	it.CurrentQuantity = decimal.Zero
	return emptied, true, nil
}

func (r *fakeStockRepo) AtomicIncrementQuantity(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	it := r.items[id]
	it.CurrentQuantity = it.CurrentQuantity.Add(amount)
	return nil
}

// fakeRecipeRepo serves recipe links with their stock items attached from
// a fakeStockRepo, so cost changes there are visible on the next load.
type fakeRecipeRepo struct {
	stock *fakeStockRepo
	links []entity.RecipeLink
	loads int

	// afterLoad runs once after the next ListByMenuItem has read its links
	afterLoad func()
}

func (r *fakeRecipeRepo) link(menuItemID uuid.UUID, stockItem *entity.StockItem, qty string) {
	r.links = append(r.links, entity.RecipeLink{
		ID:           uuid.New(),
		MenuItemID:   menuItemID,
		StockItemID:  stockItem.ID,
		QuantityUsed: dec(qty),
	})
}

func (r *fakeRecipeRepo) Create(ctx context.Context, link *entity.RecipeLink) error {
	if link.ID == uuid.Nil {
		link.ID = uuid.New()
	}
	r.links = append(r.links, *link)
	return nil
}

func (r *fakeRecipeRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.RecipeLink, error) {
	for i := range r.links {
		if r.links[i].ID == id {
			cp := r.links[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeRecipeRepo) ListByMenuItem(ctx context.Context, menuItemID uuid.UUID) ([]entity.RecipeLink, error) {
	r.loads++
	var out []entity.RecipeLink
	for _, l := range r.links {
		if l.MenuItemID != menuItemID {
			continue
		}
		l.StockItem, _ = r.stock.GetByID(ctx, l.StockItemID)
		out = append(out, l)
	}
	if hook := r.afterLoad; hook != nil {
		r.afterLoad = nil
		hook()
	}
	return out, nil
}

func (r *fakeRecipeRepo) ListByStockItem(ctx context.Context, stockItemID uuid.UUID) ([]entity.RecipeLink, error) {
	var out []entity.RecipeLink
	for _, l := range r.links {
		if l.StockItemID == stockItemID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeRecipeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	kept := r.links[:0]
	for _, l := range r.links {
		if l.ID != id {
			kept = append(kept, l)
		}
	}
	r.links = kept
	return nil
}

func (r *fakeRecipeRepo) DeleteByMenuItem(ctx context.Context, menuItemID uuid.UUID) error {
	kept := r.links[:0]
	for _, l := range r.links {
		if l.MenuItemID != menuItemID {
			kept = append(kept, l)
		}
	}
	r.links = kept
	return nil
}
