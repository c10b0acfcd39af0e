package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/cafe-api/internal/domain/repository"
	"github.com/sangkips/cafe-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// CostCalculator computes what one unit of a menu item costs in ingredients
// at current stock prices. Results are cached per menu item until the TTL
// lapses or the entry is invalidated.
type CostCalculator struct {
	recipeRepo repository.RecipeLinkRepository
	ttl        time.Duration
	now        func() time.Time

	mu      sync.RWMutex
	entries map[uuid.UUID]costEntry
	// generation moves on every invalidation; a load that started before
	// one is not cached
	generation uint64
}

type costEntry struct {
	cost     decimal.Decimal
	cachedAt time.Time
}

// NewCostCalculator creates a cost calculator. A ttl of zero disables caching.
func NewCostCalculator(recipeRepo repository.RecipeLinkRepository, ttl time.Duration) *CostCalculator {
	return &CostCalculator{
		recipeRepo: recipeRepo,
		ttl:        ttl,
		now:        time.Now,
		entries:    make(map[uuid.UUID]costEntry),
	}
}

// CostOf returns Σ quantity_used × cost_per_unit over the item's recipe, or
// zero when it has none.
func (c *CostCalculator) CostOf(ctx context.Context, menuItemID uuid.UUID) (decimal.Decimal, error) {
	cost, ok, generation := c.cached(menuItemID)
	if ok {
		return cost, nil
	}

	links, err := c.recipeRepo.ListByMenuItem(ctx, menuItemID)
	if err != nil {
		return decimal.Zero, apperror.NewStoreError("calculate menu item cost", err)
	}

	cost = decimal.Zero
	for _, link := range links {
		if link.StockItem == nil {
			continue
		}
		cost = cost.Add(link.QuantityUsed.Mul(link.StockItem.CostPerUnit))
	}

	c.store(menuItemID, cost, generation)
	return cost, nil
}

// Invalidate drops the cached cost of the given menu items
func (c *CostCalculator) Invalidate(menuItemIDs ...uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range menuItemIDs {
		delete(c.entries, id)
	}
	c.generation++
}

// InvalidateAll empties the cache
func (c *CostCalculator) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[uuid.UUID]costEntry)
	c.generation++
}

func (c *CostCalculator) cached(menuItemID uuid.UUID) (decimal.Decimal, bool, uint64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.ttl <= 0 {
		return decimal.Zero, false, c.generation
	}
	entry, ok := c.entries[menuItemID]
	if !ok || c.now().Sub(entry.cachedAt) >= c.ttl {
		return decimal.Zero, false, c.generation
	}
	return entry.cost, true, c.generation
}

func (c *CostCalculator) store(menuItemID uuid.UUID, cost decimal.Decimal, generation uint64) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generation != generation {
		return
	}
	c.entries[menuItemID] = costEntry{cost: cost, cachedAt: c.now()}
}
