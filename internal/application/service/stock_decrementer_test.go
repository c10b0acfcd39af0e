package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/cafe-api/internal/config"
	"github.com/sangkips/cafe-api/internal/domain/entity"
	"github.com/sangkips/cafe-api/internal/domain/enum"
	"github.com/sangkips/cafe-api/pkg/apperror"
)

func TestConsume(t *testing.T) {
	tests := []struct {
		name          string
		tracking      enum.TrackingType
		onHand        string
		amount        string
		wantQuantity  string
		wantConsumed  string
		wantShortfall string
		wantSkipped   bool
	}{
		{"enough on hand", enum.TrackingMultiUse, "10", "6", "4", "6", "0", false},
		{"exactly enough", enum.TrackingUnit, "3", "3", "0", "3", "0", false},
		{"short is clamped", enum.TrackingMultiUse, "4", "10", "0", "4", "6", false},
		{"already empty", enum.TrackingUnit, "0", "2", "0", "0", "2", false},
		{"manual untouched", enum.TrackingManual, "1", "5", "1", "0", "0", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := &entity.StockItem{Name: "Milk", TrackingType: tt.tracking, CurrentQuantity: dec(tt.onHand), UnitOfMeasure: "ml"}
			repo := newFakeStockRepo(item)
			d := NewStockDecrementer(repo, config.StockPolicyClamp)

			res, err := d.Consume(context.Background(), item.ID, dec(tt.amount))
			if err != nil {
				t.Fatal(err)
			}

			if got := repo.quantity(item.ID); !got.Equal(dec(tt.wantQuantity)) {
				t.Errorf("quantity = %s, want %s", got, tt.wantQuantity)
			}
			if !res.Consumed.Equal(dec(tt.wantConsumed)) {
				t.Errorf("consumed = %s, want %s", res.Consumed, tt.wantConsumed)
			}
			if !res.Shortfall.Equal(dec(tt.wantShortfall)) {
				t.Errorf("shortfall = %s, want %s", res.Shortfall, tt.wantShortfall)
			}
			if res.Skipped != tt.wantSkipped {
				t.Errorf("skipped = %v, want %v", res.Skipped, tt.wantSkipped)
			}
			if w := res.Warning(); (w != nil) != res.Shortfall.IsPositive() {
				t.Errorf("warning = %v with shortfall %s", w, res.Shortfall)
			}
		})
	}
}

func TestConsumeRejectPolicy(t *testing.T) {
	item := &entity.StockItem{Name: "Milk", TrackingType: enum.TrackingMultiUse, CurrentQuantity: dec("4"), UnitOfMeasure: "ml"}
	repo := newFakeStockRepo(item)
	d := NewStockDecrementer(repo, config.StockPolicyReject)

	_, err := d.Consume(context.Background(), item.ID, dec("10"))
	if err == nil {
		t.Fatal("expected insufficient stock error")
	}
	if appErr := apperror.GetAppError(err); appErr.Code != http.StatusConflict {
		t.Errorf("code = %d, want %d", appErr.Code, http.StatusConflict)
	}
	if got := repo.quantity(item.ID); !got.Equal(dec("4")) {
		t.Errorf("quantity = %s, want 4 untouched", got)
	}
}

func TestConsumeRetriesAfterConcurrentRestock(t *testing.T) {
	item := &entity.StockItem{Name: "Cups", TrackingType: enum.TrackingUnit, CurrentQuantity: dec("4")}
	repo := newFakeStockRepo(item)
	repo.beforeClamp = func() {
		repo.AtomicIncrementQuantity(context.Background(), item.ID, dec("100"))
	}
	d := NewStockDecrementer(repo, config.StockPolicyClamp)

	res, err := d.Consume(context.Background(), item.ID, dec("10"))
	if err != nil {
		t.Fatal(err)
	}
	if !res.Consumed.Equal(dec("10")) || res.Shortfall.IsPositive() {
		t.Errorf("consumed %s shortfall %s, want 10 and 0", res.Consumed, res.Shortfall)
	}
	if got := repo.quantity(item.ID); !got.Equal(dec("94")) {
		t.Errorf("quantity = %s, want 94", got)
	}
}

func TestClampReportsWhatWasActuallyEmptied(t *testing.T) {
	item := &entity.StockItem{Name: "Oat milk", TrackingType: enum.TrackingMultiUse, CurrentQuantity: dec("4")}
	repo := newFakeStockRepo(item)
	// another sale takes 3 between the failed decrement and the clamp
	repo.beforeClamp = func() {
		repo.AtomicDecrementQuantity(context.Background(), item.ID, dec("3"))
	}
	d := NewStockDecrementer(repo, config.StockPolicyClamp)

	res, err := d.Consume(context.Background(), item.ID, dec("10"))
	if err != nil {
		t.Fatal(err)
	}
	if !res.Consumed.Equal(dec("1")) || !res.Shortfall.Equal(dec("9")) {
		t.Errorf("consumed %s shortfall %s, want 1 and 9", res.Consumed, res.Shortfall)
	}
	if got := repo.quantity(item.ID); !got.IsZero() {
		t.Errorf("quantity = %s, want 0", got)
	}
}

func TestConsumeUnknownItem(t *testing.T) {
	d := NewStockDecrementer(newFakeStockRepo(), "")
	if d.Policy() != config.StockPolicyClamp {
		t.Errorf("policy = %q, want clamp default", d.Policy())
	}

	_, err := d.Consume(context.Background(), uuid.New(), dec("1"))
	if appErr := apperror.GetAppError(err); err == nil || appErr.Code != http.StatusNotFound {
		t.Errorf("err = %v, want not found", err)
	}
}
