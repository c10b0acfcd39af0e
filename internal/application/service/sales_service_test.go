package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/cafe-api/internal/config"
	"github.com/sangkips/cafe-api/internal/domain/entity"
	"github.com/sangkips/cafe-api/internal/domain/enum"
	domainRepo "github.com/sangkips/cafe-api/internal/domain/repository"
	"github.com/sangkips/cafe-api/internal/infrastructure/database"
	infraRepo "github.com/sangkips/cafe-api/internal/infrastructure/repository"
	"github.com/sangkips/cafe-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// testEnv wires every service against an in-memory SQLite store
type testEnv struct {
	db *gorm.DB

	stockRepo domainRepo.StockItemRepository
	orderRepo domainRepo.OrderRepository
	itemRepo  domainRepo.OrderItemRepository

	costs     *CostCalculator
	recipes   *RecipeGraph
	sales     *SalesService
	profit    *ProfitService
	stock     *StockService
	menu      *MenuService
	workers   *WorkerService
	expenses  *ExpenseService
	orders    *OrderService
	dashboard *DashboardService
}

func newTestEnv(t *testing.T, policy string) *testEnv {
	t.Helper()
	db, err := database.NewInMemorySQLite(t.Name())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	tx := infraRepo.NewTransactor(db)
	stockRepo := infraRepo.NewStockItemRepository(db)
	menuRepo := infraRepo.NewMenuItemRepository(db)
	linkRepo := infraRepo.NewRecipeLinkRepository(db)
	workerRepo := infraRepo.NewWorkerRepository(db)
	expenseRepo := infraRepo.NewExpenseRepository(db)
	orderRepo := infraRepo.NewOrderRepository(db)
	itemRepo := infraRepo.NewOrderItemRepository(db)
	analyticsRepo := infraRepo.NewAnalyticsRepository(db)

	costs := NewCostCalculator(linkRepo, time.Hour)
	recipes := NewRecipeGraph(linkRepo, menuRepo, stockRepo, costs)
	decrementer := NewStockDecrementer(stockRepo, policy)

	env := &testEnv{
		db:        db,
		stockRepo: stockRepo,
		orderRepo: orderRepo,
		itemRepo:  itemRepo,
		costs:     costs,
		recipes:   recipes,
		sales:     NewSalesService(tx, orderRepo, itemRepo, menuRepo, workerRepo, recipes, costs, decrementer),
		profit:    NewProfitService(analyticsRepo, workerRepo, expenseRepo),
		stock:     NewStockService(stockRepo, recipes, costs, 10),
		menu:      NewMenuService(tx, menuRepo, linkRepo, itemRepo, recipes, costs),
		workers:   NewWorkerService(workerRepo, orderRepo),
		expenses:  NewExpenseService(expenseRepo),
		orders:    NewOrderService(orderRepo),
	}
	env.dashboard = NewDashboardService(env.profit, env.stock)
	return env
}

func (e *testEnv) worker(t *testing.T, name, role, salary string) *entity.Worker {
	t.Helper()
	w, err := e.workers.CreateWorker(context.Background(), &CreateWorkerInput{Name: name, Role: role, Salary: dec(salary)})
	if err != nil {
		t.Fatalf("create worker %s: %v", name, err)
	}
	return w
}

func (e *testEnv) menuItem(t *testing.T, name, price string) *entity.MenuItem {
	t.Helper()
	m, err := e.menu.CreateMenuItem(context.Background(), &CreateMenuItemInput{Name: name, SalePrice: dec(price)})
	if err != nil {
		t.Fatalf("create menu item %s: %v", name, err)
	}
	return m
}

func (e *testEnv) stockItem(t *testing.T, name string, tracking enum.TrackingType, qty, cost string) *entity.StockItem {
	t.Helper()
	s, err := e.stock.CreateStockItem(context.Background(), &CreateStockItemInput{
		Name:            name,
		TrackingType:    string(tracking),
		CurrentQuantity: dec(qty),
		UnitOfMeasure:   "g",
		CostPerUnit:     dec(cost),
	})
	if err != nil {
		t.Fatalf("create stock item %s: %v", name, err)
	}
	return s
}

func (e *testEnv) ingredient(t *testing.T, menuItem *entity.MenuItem, stockItem *entity.StockItem, qty string) *entity.RecipeLink {
	t.Helper()
	link, err := e.recipes.AddIngredient(context.Background(), &AddIngredientInput{
		MenuItemID:   menuItem.ID,
		StockItemID:  stockItem.ID,
		QuantityUsed: dec(qty),
	})
	if err != nil {
		t.Fatalf("add ingredient: %v", err)
	}
	return link
}

func (e *testEnv) quantityOf(t *testing.T, id uuid.UUID) decimal.Decimal {
	t.Helper()
	s, err := e.stockRepo.GetByID(context.Background(), id)
	if err != nil || s == nil {
		t.Fatalf("load stock item: %v", err)
	}
	return s.CurrentQuantity
}

func (e *testEnv) countRows(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	if err := e.db.Model(model).Count(&n).Error; err != nil {
		t.Fatal(err)
	}
	return n
}

func price(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func assertCode(t *testing.T, err error, code int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %d, got nil", code)
	}
	if got := apperror.GetAppError(err).Code; got != code {
		t.Fatalf("code = %d (%v), want %d", got, err, code)
	}
}

var salesDay = time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC)

func TestSubmitBatchDropsZeroQuantityLines(t *testing.T) {
	env := newTestEnv(t, config.StockPolicyClamp)
	ctx := context.Background()
	server := env.worker(t, "Sam", "server", "0")
	a := env.menuItem(t, "Espresso", "5")
	b := env.menuItem(t, "Muffin", "3")

	res, err := env.sales.SubmitBatch(ctx, &SubmitBatchInput{
		ServerID:  server.ID,
		SalesDate: salesDay,
		Lines: []SaleLine{
			{MenuItemID: a.ID, Quantity: 2, SalePrice: price("5")},
			{MenuItemID: b.ID, Quantity: 0, SalePrice: price("3")},
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	if !res.TotalRevenue.Equal(dec("10")) {
		t.Errorf("revenue = %s, want 10", res.TotalRevenue)
	}
	if res.LinesRecorded != 1 {
		t.Errorf("lines = %d, want 1", res.LinesRecorded)
	}
	if n := env.countRows(t, &entity.Order{}); n != 1 {
		t.Errorf("orders = %d, want 1", n)
	}
	if n := env.countRows(t, &entity.OrderItem{}); n != 1 {
		t.Errorf("order items = %d, want 1", n)
	}

	want := time.Date(2024, 2, 14, 12, 0, 0, 0, time.UTC)
	if !res.SoldAt.Equal(want) {
		t.Errorf("sold at = %s, want %s", res.SoldAt, want)
	}
}

func TestSubmitBatchDecrementsThroughRecipe(t *testing.T) {
	env := newTestEnv(t, config.StockPolicyClamp)
	ctx := context.Background()
	server := env.worker(t, "Sam", "server", "0")
	cookie := env.menuItem(t, "Cookie", "2.5")
	sugar := env.stockItem(t, "Sugar", enum.TrackingMultiUse, "100", "0.01")
	napkins := env.stockItem(t, "Napkins", enum.TrackingManual, "1", "0")
	env.ingredient(t, cookie, sugar, "2")
	env.ingredient(t, cookie, napkins, "1")

	res, err := env.sales.SubmitBatch(ctx, &SubmitBatchInput{
		ServerID:  server.ID,
		SalesDate: salesDay,
		Lines:     []SaleLine{{MenuItemID: cookie.ID, Quantity: 3}},
	})
	if err != nil {
		t.Fatal(err)
	}

	if got := env.quantityOf(t, sugar.ID); !got.Equal(dec("94")) {
		t.Errorf("sugar = %s, want 94", got)
	}
	if got := env.quantityOf(t, napkins.ID); !got.Equal(dec("1")) {
		t.Errorf("manual napkins = %s, want untouched 1", got)
	}
	// no price given: the menu price is used
	if !res.TotalRevenue.Equal(dec("7.5")) {
		t.Errorf("revenue = %s, want 7.5", res.TotalRevenue)
	}
	if !res.TotalCost.Equal(dec("0.06")) {
		t.Errorf("cost = %s, want 0.06", res.TotalCost)
	}
	if len(res.StockWarnings) != 0 {
		t.Errorf("unexpected warnings %v", res.StockWarnings)
	}
}

func TestSubmitBatchLocksSubmittedPrice(t *testing.T) {
	env := newTestEnv(t, config.StockPolicyClamp)
	ctx := context.Background()
	server := env.worker(t, "Sam", "server", "0")
	latte := env.menuItem(t, "Latte", "4")

	res, err := env.sales.SubmitBatch(ctx, &SubmitBatchInput{
		ServerID:  server.ID,
		SalesDate: salesDay,
		Lines:     []SaleLine{{MenuItemID: latte.ID, Quantity: 2, SalePrice: price("3.5")}},
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := env.menu.UpdatePrice(ctx, latte.ID, dec("6")); err != nil {
		t.Fatal(err)
	}

	order, err := env.orders.GetOrder(ctx, res.OrderID)
	if err != nil {
		t.Fatal(err)
	}
	if !order.Items[0].PriceAtSale.Equal(dec("3.5")) {
		t.Errorf("price at sale = %s, want 3.5", order.Items[0].PriceAtSale)
	}
	if !order.Revenue().Equal(dec("7")) {
		t.Errorf("order revenue = %s, want 7", order.Revenue())
	}
}

func TestSubmitBatchClampsAndWarns(t *testing.T) {
	env := newTestEnv(t, config.StockPolicyClamp)
	ctx := context.Background()
	server := env.worker(t, "Sam", "server", "0")
	latte := env.menuItem(t, "Latte", "4")
	milk := env.stockItem(t, "Milk", enum.TrackingMultiUse, "300", "0.01")
	env.ingredient(t, latte, milk, "200")

	res, err := env.sales.SubmitBatch(ctx, &SubmitBatchInput{
		ServerID:  server.ID,
		SalesDate: salesDay,
		Lines:     []SaleLine{{MenuItemID: latte.ID, Quantity: 2}},
	})
	if err != nil {
		t.Fatal(err)
	}

	if got := env.quantityOf(t, milk.ID); !got.IsZero() {
		t.Errorf("milk = %s, want 0", got)
	}
	if len(res.StockWarnings) != 1 {
		t.Fatalf("warnings = %v, want 1", res.StockWarnings)
	}
	w := res.StockWarnings[0]
	if w.StockItemID != milk.ID || !w.Shortfall.Equal(dec("100")) || !w.Requested.Equal(dec("400")) {
		t.Errorf("warning = %+v, want 100 short of 400", w)
	}
}

func TestSubmitBatchRejectPolicyRollsBack(t *testing.T) {
	env := newTestEnv(t, config.StockPolicyReject)
	ctx := context.Background()
	server := env.worker(t, "Sam", "server", "0")
	latte := env.menuItem(t, "Latte", "4")
	cookie := env.menuItem(t, "Cookie", "2")
	milk := env.stockItem(t, "Milk", enum.TrackingMultiUse, "300", "0.01")
	flour := env.stockItem(t, "Flour", enum.TrackingMultiUse, "1000", "0.002")
	env.ingredient(t, latte, milk, "200")
	env.ingredient(t, cookie, flour, "50")

	_, err := env.sales.SubmitBatch(ctx, &SubmitBatchInput{
		ServerID:  server.ID,
		SalesDate: salesDay,
		Lines: []SaleLine{
			{MenuItemID: cookie.ID, Quantity: 4},
			{MenuItemID: latte.ID, Quantity: 2},
		},
	})
	assertCode(t, err, http.StatusConflict)

	if n := env.countRows(t, &entity.Order{}); n != 0 {
		t.Errorf("orders = %d, want 0 after rollback", n)
	}
	if n := env.countRows(t, &entity.OrderItem{}); n != 0 {
		t.Errorf("order items = %d, want 0 after rollback", n)
	}
	if got := env.quantityOf(t, milk.ID); !got.Equal(dec("300")) {
		t.Errorf("milk = %s, want 300", got)
	}
	if got := env.quantityOf(t, flour.ID); !got.Equal(dec("1000")) {
		t.Errorf("flour = %s, want 1000", got)
	}
}

func TestSubmitBatchSnapshotsCurrentCost(t *testing.T) {
	env := newTestEnv(t, config.StockPolicyClamp)
	ctx := context.Background()
	server := env.worker(t, "Sam", "server", "0")
	latte := env.menuItem(t, "Latte", "4")
	milk := env.stockItem(t, "Milk", enum.TrackingMultiUse, "10000", "0.01")
	env.ingredient(t, latte, milk, "100")

	first, err := env.sales.SubmitBatch(ctx, &SubmitBatchInput{
		ServerID: server.ID, SalesDate: salesDay,
		Lines: []SaleLine{{MenuItemID: latte.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := env.stock.UpdateCost(ctx, milk.ID, dec("0.02")); err != nil {
		t.Fatal(err)
	}

	second, err := env.sales.SubmitBatch(ctx, &SubmitBatchInput{
		ServerID: server.ID, SalesDate: salesDay.AddDate(0, 0, 1),
		Lines: []SaleLine{{MenuItemID: latte.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatal(err)
	}

	if !first.TotalCost.Equal(dec("1")) || !second.TotalCost.Equal(dec("2")) {
		t.Errorf("costs = %s then %s, want 1 then 2", first.TotalCost, second.TotalCost)
	}

	// the earlier snapshot is untouched
	order, err := env.orders.GetOrder(ctx, first.OrderID)
	if err != nil {
		t.Fatal(err)
	}
	if !order.Cost().Equal(dec("1")) {
		t.Errorf("first order cost = %s, want 1", order.Cost())
	}
}

func TestSubmitBatchRefusesMissingPrerequisites(t *testing.T) {
	env := newTestEnv(t, config.StockPolicyClamp)
	ctx := context.Background()
	server := env.worker(t, "Sam", "server", "0")
	barista := env.worker(t, "Bo", "barista", "0")
	latte := env.menuItem(t, "Latte", "4")

	tests := []struct {
		name  string
		input *SubmitBatchInput
		code  int
	}{
		{"unknown server", &SubmitBatchInput{ServerID: uuid.New(), SalesDate: salesDay, Lines: []SaleLine{{MenuItemID: latte.ID, Quantity: 1}}}, http.StatusBadRequest},
		{"barista is not a server", &SubmitBatchInput{ServerID: barista.ID, SalesDate: salesDay, Lines: []SaleLine{{MenuItemID: latte.ID, Quantity: 1}}}, http.StatusBadRequest},
		{"no lines", &SubmitBatchInput{ServerID: server.ID, SalesDate: salesDay}, http.StatusBadRequest},
		{"only zero lines", &SubmitBatchInput{ServerID: server.ID, SalesDate: salesDay, Lines: []SaleLine{{MenuItemID: latte.ID, Quantity: 0}}}, http.StatusBadRequest},
		{"unknown menu item", &SubmitBatchInput{ServerID: server.ID, SalesDate: salesDay, Lines: []SaleLine{{MenuItemID: uuid.New(), Quantity: 1}}}, http.StatusBadRequest},
		{"negative quantity", &SubmitBatchInput{ServerID: server.ID, SalesDate: salesDay, Lines: []SaleLine{{MenuItemID: latte.ID, Quantity: -1}}}, http.StatusUnprocessableEntity},
		{"negative price", &SubmitBatchInput{ServerID: server.ID, SalesDate: salesDay, Lines: []SaleLine{{MenuItemID: latte.ID, Quantity: 1, SalePrice: price("-1")}}}, http.StatusUnprocessableEntity},
		{"duplicate menu item", &SubmitBatchInput{ServerID: server.ID, SalesDate: salesDay, Lines: []SaleLine{{MenuItemID: latte.ID, Quantity: 1}, {MenuItemID: latte.ID, Quantity: 2}}}, http.StatusUnprocessableEntity},
		{"missing date", &SubmitBatchInput{ServerID: server.ID, Lines: []SaleLine{{MenuItemID: latte.ID, Quantity: 1}}}, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.sales.SubmitBatch(ctx, tt.input)
			assertCode(t, err, tt.code)
		})
	}

	if n := env.countRows(t, &entity.Order{}); n != 0 {
		t.Errorf("orders = %d, want 0", n)
	}
}
