package service

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/cafe-api/internal/domain/repository"
	"github.com/sangkips/cafe-api/pkg/apperror"
	"github.com/sangkips/cafe-api/pkg/spreadsheet"
	"github.com/sangkips/cafe-api/pkg/utils"
	"github.com/shopspring/decimal"
)

// topItemsLimit caps the best sellers listed in a monthly report
const topItemsLimit = 10

// ProfitService aggregates recorded sales into profit reports
type ProfitService struct {
	analyticsRepo repository.AnalyticsRepository
	workerRepo    repository.WorkerRepository
	expenseRepo   repository.ExpenseRepository
}

// NewProfitService creates a new profit service
func NewProfitService(
	analyticsRepo repository.AnalyticsRepository,
	workerRepo repository.WorkerRepository,
	expenseRepo repository.ExpenseRepository,
) *ProfitService {
	return &ProfitService{
		analyticsRepo: analyticsRepo,
		workerRepo:    workerRepo,
		expenseRepo:   expenseRepo,
	}
}

// ProfitReport is gross profit over an inclusive window
type ProfitReport struct {
	Start       time.Time       `json:"start"`
	End         time.Time       `json:"end"`
	Revenue     decimal.Decimal `json:"revenue"`
	COGS        decimal.Decimal `json:"cogs"`
	GrossProfit decimal.Decimal `json:"gross_profit"`
	OrderCount  int64           `json:"order_count"`
	ItemsSold   int64           `json:"items_sold"`
}

// DailyProfit is one calendar day of a monthly report
type DailyProfit struct {
	Date        string          `json:"date"`
	Revenue     decimal.Decimal `json:"revenue"`
	COGS        decimal.Decimal `json:"cogs"`
	GrossProfit decimal.Decimal `json:"gross_profit"`
	OrderCount  int             `json:"order_count"`
}

// TopMenuItem is a best seller by revenue
type TopMenuItem struct {
	MenuItemID   uuid.UUID       `json:"menu_item_id"`
	MenuItemName string          `json:"menu_item_name"`
	QuantitySold int64           `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
	COGS         decimal.Decimal `json:"cogs"`
	GrossProfit  decimal.Decimal `json:"gross_profit"`
}

// MonthlyProfitReport adds operating costs and net profit to a calendar
// month's gross profit.
type MonthlyProfitReport struct {
	ProfitReport
	Month          string          `json:"month"`
	MonthKey       string          `json:"month_key"`
	Salaries       decimal.Decimal `json:"salaries"`
	OtherExpenses  decimal.Decimal `json:"other_expenses"`
	OperatingCosts decimal.Decimal `json:"operating_costs"`
	NetProfit      decimal.Decimal `json:"net_profit"`
	Daily          []DailyProfit   `json:"daily"`
	TopItems       []TopMenuItem   `json:"top_items"`
}

// Report computes revenue, COGS and gross profit for orders sold within
// [start, end], both ends included.
func (s *ProfitService) Report(ctx context.Context, start, end time.Time) (*ProfitReport, error) {
	if end.Before(start) {
		return nil, apperror.NewBadRequestError("cannot build report: end is before start")
	}

	totals, err := s.analyticsRepo.GetSalesTotals(ctx, start, end)
	if err != nil {
		return nil, apperror.NewStoreError("load sales totals", err)
	}

	return &ProfitReport{
		Start:       start.UTC(),
		End:         end.UTC(),
		Revenue:     totals.Revenue,
		COGS:        totals.COGS,
		GrossProfit: totals.Revenue.Sub(totals.COGS),
		OrderCount:  totals.OrderCount,
		ItemsSold:   totals.ItemsSold,
	}, nil
}

// DailyReport covers the whole calendar day of date
func (s *ProfitService) DailyReport(ctx context.Context, date time.Time) (*ProfitReport, error) {
	start, end := utils.DayRange(date)
	return s.Report(ctx, start, end)
}

// MonthlyReport covers the calendar month containing anyDate. Salaries are
// the full current roster, not prorated; expenses match the month key exactly.
func (s *ProfitService) MonthlyReport(ctx context.Context, anyDate time.Time) (*MonthlyProfitReport, error) {
	start, end := utils.MonthRange(anyDate)

	gross, err := s.Report(ctx, start, end)
	if err != nil {
		return nil, err
	}

	salaries, err := s.workerRepo.SumSalaries(ctx)
	if err != nil {
		return nil, apperror.NewStoreError("sum salaries", err)
	}

	monthKey := utils.MonthKey(start)
	expenses, err := s.expenseRepo.SumByMonth(ctx, monthKey)
	if err != nil {
		return nil, apperror.NewStoreError("sum expenses for "+monthKey, err)
	}

	daily, err := s.dailyBreakdown(ctx, start, end)
	if err != nil {
		return nil, err
	}

	top, err := s.analyticsRepo.GetTopMenuItems(ctx, start, end, topItemsLimit)
	if err != nil {
		return nil, apperror.NewStoreError("load top menu items", err)
	}
	topItems := make([]TopMenuItem, 0, len(top))
	for _, t := range top {
		topItems = append(topItems, TopMenuItem{
			MenuItemID:   t.MenuItemID,
			MenuItemName: t.MenuItemName,
			QuantitySold: t.QuantitySold,
			Revenue:      t.Revenue,
			COGS:         t.COGS,
			GrossProfit:  t.Revenue.Sub(t.COGS),
		})
	}

	operating := salaries.Add(expenses)
	return &MonthlyProfitReport{
		ProfitReport:   *gross,
		Month:          start.Format(utils.MonthLayout),
		MonthKey:       monthKey,
		Salaries:       salaries,
		OtherExpenses:  expenses,
		OperatingCosts: operating,
		NetProfit:      gross.GrossProfit.Sub(operating),
		Daily:          daily,
		TopItems:       topItems,
	}, nil
}

// dailyBreakdown buckets order totals by day, with an entry for every day of
// the window even when nothing sold.
func (s *ProfitService) dailyBreakdown(ctx context.Context, start, end time.Time) ([]DailyProfit, error) {
	orders, err := s.analyticsRepo.GetOrderTotals(ctx, start, end)
	if err != nil {
		return nil, apperror.NewStoreError("load order totals", err)
	}

	days := make([]DailyProfit, 0, 31)
	index := make(map[string]int, 31)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(utils.DateLayout)
		index[key] = len(days)
		days = append(days, DailyProfit{
			Date:        key,
			Revenue:     decimal.Zero,
			COGS:        decimal.Zero,
			GrossProfit: decimal.Zero,
		})
	}

	for _, o := range orders {
		i, ok := index[o.SoldAt.UTC().Format(utils.DateLayout)]
		if !ok {
			continue
		}
		day := &days[i]
		day.Revenue = day.Revenue.Add(o.Revenue)
		day.COGS = day.COGS.Add(o.COGS)
		day.GrossProfit = day.Revenue.Sub(day.COGS)
		day.OrderCount++
	}
	return days, nil
}

// ExportMonthlyReport writes the monthly report as an XLSX workbook with
// summary, daily and top item sheets.
func (s *ProfitService) ExportMonthlyReport(ctx context.Context, anyDate time.Time, w io.Writer) error {
	report, err := s.MonthlyReport(ctx, anyDate)
	if err != nil {
		return err
	}

	summary := spreadsheet.Sheet{
		Name:    "Summary",
		Headers: []string{"Metric", "Value"},
		Rows: [][]interface{}{
			{"Month", report.Month},
			{"Orders", report.OrderCount},
			{"Items sold", report.ItemsSold},
			{"Revenue", report.Revenue},
			{"Cost of goods sold", report.COGS},
			{"Gross profit", report.GrossProfit},
			{"Salaries", report.Salaries},
			{"Other expenses", report.OtherExpenses},
			{"Operating costs", report.OperatingCosts},
			{"Net profit", report.NetProfit},
		},
	}

	daily := spreadsheet.Sheet{
		Name:    "Daily",
		Headers: []string{"Date", "Orders", "Revenue", "COGS", "Gross profit"},
	}
	for _, d := range report.Daily {
		daily.Rows = append(daily.Rows, []interface{}{d.Date, d.OrderCount, d.Revenue, d.COGS, d.GrossProfit})
	}

	top := spreadsheet.Sheet{
		Name:    "Top Items",
		Headers: []string{"Menu item", "Quantity sold", "Revenue", "COGS", "Gross profit"},
	}
	for _, t := range report.TopItems {
		top.Rows = append(top.Rows, []interface{}{t.MenuItemName, t.QuantitySold, t.Revenue, t.COGS, t.GrossProfit})
	}

	if err := spreadsheet.Write(w, summary, daily, top); err != nil {
		return apperror.NewStoreError("export monthly report", err)
	}
	return nil
}
