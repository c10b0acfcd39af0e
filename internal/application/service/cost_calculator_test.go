package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/cafe-api/internal/domain/entity"
	"github.com/sangkips/cafe-api/internal/domain/enum"
)

func TestCostOfEmptyRecipeIsZero(t *testing.T) {
	recipes := &fakeRecipeRepo{stock: newFakeStockRepo()}
	calc := NewCostCalculator(recipes, time.Minute)

	cost, err := calc.CostOf(context.Background(), uuid.New())
	if err != nil {
		t.Fatal(err)
	}
	if !cost.IsZero() {
		t.Errorf("cost = %s, want 0", cost)
	}
}

func TestCostOfSumsIngredients(t *testing.T) {
	milk := &entity.StockItem{Name: "Milk", TrackingType: enum.TrackingMultiUse, CostPerUnit: dec("0.5")}
	beans := &entity.StockItem{Name: "Beans", TrackingType: enum.TrackingMultiUse, CostPerUnit: dec("0.02")}
	cup := &entity.StockItem{Name: "Cup", TrackingType: enum.TrackingUnit, CostPerUnit: dec("0.15")}
	stock := newFakeStockRepo(milk, beans, cup)

	latte := uuid.New()
	recipes := &fakeRecipeRepo{stock: stock}
	recipes.link(latte, milk, "200")
	recipes.link(latte, beans, "18")
	recipes.link(latte, cup, "1")
	// another item's recipe must not leak in
	recipes.link(uuid.New(), milk, "50")

	calc := NewCostCalculator(recipes, 0)
	cost, err := calc.CostOf(context.Background(), latte)
	if err != nil {
		t.Fatal(err)
	}
	// 200×0.5 + 18×0.02 + 1×0.15
	if want := dec("100.51"); !cost.Equal(want) {
		t.Errorf("cost = %s, want %s", cost, want)
	}
}

func TestCostCacheInvalidation(t *testing.T) {
	milk := &entity.StockItem{Name: "Milk", TrackingType: enum.TrackingMultiUse, CostPerUnit: dec("0.5")}
	stock := newFakeStockRepo(milk)
	latte := uuid.New()
	recipes := &fakeRecipeRepo{stock: stock}
	recipes.link(latte, milk, "10")

	now := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
	calc := NewCostCalculator(recipes, time.Minute)
	calc.now = func() time.Time { return now }
	ctx := context.Background()

	first, _ := calc.CostOf(ctx, latte)
	if !first.Equal(dec("5")) {
		t.Fatalf("cost = %s, want 5", first)
	}

	stock.UpdateCost(ctx, milk.ID, dec("0.8"))

	cached, _ := calc.CostOf(ctx, latte)
	if !cached.Equal(dec("5")) {
		t.Errorf("cost within ttl = %s, want cached 5", cached)
	}
	if recipes.loads != 1 {
		t.Errorf("recipe loads = %d, want 1", recipes.loads)
	}

	calc.Invalidate(latte)
	fresh, _ := calc.CostOf(ctx, latte)
	if !fresh.Equal(dec("8")) {
		t.Errorf("cost after invalidate = %s, want 8", fresh)
	}

	stock.UpdateCost(ctx, milk.ID, dec("1"))
	now = now.Add(time.Minute)
	expired, _ := calc.CostOf(ctx, latte)
	if !expired.Equal(dec("10")) {
		t.Errorf("cost after ttl = %s, want 10", expired)
	}

	stock.UpdateCost(ctx, milk.ID, dec("2"))
	calc.InvalidateAll()
	all, _ := calc.CostOf(ctx, latte)
	if !all.Equal(dec("20")) {
		t.Errorf("cost after invalidate all = %s, want 20", all)
	}
}

func TestCostLoadOverlappingInvalidationIsNotCached(t *testing.T) {
	milk := &entity.StockItem{Name: "Milk", TrackingType: enum.TrackingMultiUse, CostPerUnit: dec("0.5")}
	stock := newFakeStockRepo(milk)
	latte := uuid.New()
	recipes := &fakeRecipeRepo{stock: stock}
	recipes.link(latte, milk, "10")

	calc := NewCostCalculator(recipes, time.Hour)
	ctx := context.Background()

	// the cost changes after the recipe was read but before it is cached
	recipes.afterLoad = func() {
		stock.UpdateCost(ctx, milk.ID, dec("0.8"))
		calc.Invalidate(latte)
	}

	if stale, _ := calc.CostOf(ctx, latte); !stale.Equal(dec("5")) {
		t.Fatalf("cost = %s, want 5 from the first read", stale)
	}

	fresh, _ := calc.CostOf(ctx, latte)
	if !fresh.Equal(dec("8")) {
		t.Errorf("cost = %s, want 8", fresh)
	}
	if recipes.loads != 2 {
		t.Errorf("recipe loads = %d, want 2", recipes.loads)
	}
}

func TestCostCacheDisabledWithZeroTTL(t *testing.T) {
	milk := &entity.StockItem{Name: "Milk", TrackingType: enum.TrackingMultiUse, CostPerUnit: dec("1")}
	stock := newFakeStockRepo(milk)
	latte := uuid.New()
	recipes := &fakeRecipeRepo{stock: stock}
	recipes.link(latte, milk, "3")

	calc := NewCostCalculator(recipes, 0)
	ctx := context.Background()

	calc.CostOf(ctx, latte)
	stock.UpdateCost(ctx, milk.ID, dec("2"))
	cost, _ := calc.CostOf(ctx, latte)

	if !cost.Equal(dec("6")) {
		t.Errorf("cost = %s, want 6", cost)
	}
	if recipes.loads != 2 {
		t.Errorf("recipe loads = %d, want 2", recipes.loads)
	}
}
