package engine_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fujipos/sales-import/internal/config"
	"github.com/fujipos/sales-import/internal/engine"
	"github.com/fujipos/sales-import/internal/types"
)

func testSettings() config.SynthesisSettings {
	return config.SynthesisSettings{
		PricePerItem: 20,
		MaxItems:     4,
		ItemPool:     10,
		TableMin:     1,
		TableMax:     19,
		ServerID:     "srv_001",
		Status:       "completed",
	}
}

func row(togo, dineIn, total, service, receipt float64) engine.TransactionRow {
	return engine.TransactionRow{
		Date:    time.Date(2022, 2, 7, 0, 0, 0, 0, time.UTC),
		ToGo:    decimal.NewFromFloat(togo),
		DineIn:  decimal.NewFromFloat(dineIn),
		Total:   decimal.NewFromFloat(total),
		Service: decimal.NewFromFloat(service),
		Receipt: decimal.NewFromFloat(receipt),
	}
}

func TestSynthesize_DineInWithGratuity(t *testing.T) {
	eng := engine.New(testSettings())
	seq := engine.NewSequence(1, 19)

	order, items, ok := eng.Synthesize(row(0, 50, 50, 0, 55), seq)
	if !ok {
		t.Fatalf("Synthesize ok=false, want true")
	}

	if order.Type != types.OrderDineIn {
		t.Fatalf("Type got=%s want=%s", order.Type, types.OrderDineIn)
	}
	if got := order.Subtotal.StringFixed(2); got != "50.00" {
		t.Fatalf("Subtotal got=%s want=50.00", got)
	}
	if got := order.Tax.StringFixed(2); got != "0.00" {
		t.Fatalf("Tax got=%s want=0.00", got)
	}
	if got := order.Gratuity.StringFixed(2); got != "5.00" {
		t.Fatalf("Gratuity got=%s want=5.00", got)
	}
	if got := order.Total.StringFixed(2); got != "55.00" {
		t.Fatalf("Total got=%s want=55.00", got)
	}
	if order.PaymentMethod != types.PaymentCash {
		t.Fatalf("PaymentMethod got=%s want=%s", order.PaymentMethod, types.PaymentCash)
	}
	if order.TableNumber == nil {
		t.Fatalf("TableNumber nil for dine-in order")
	}
	if len(items) != 2 {
		t.Fatalf("item count got=%d want=2", len(items))
	}
	for _, item := range items {
		if got := item.UnitPrice.StringFixed(2); got != "25.00" {
			t.Fatalf("UnitPrice got=%s want=25.00", got)
		}
	}
}

func TestSynthesize_TakeOutWithTax(t *testing.T) {
	eng := engine.New(testSettings())
	seq := engine.NewSequence(1, 19)

	order, items, ok := eng.Synthesize(row(30, 0, 35, 2, 37), seq)
	if !ok {
		t.Fatalf("Synthesize ok=false, want true")
	}

	if order.Type != types.OrderTakeOut {
		t.Fatalf("Type got=%s want=%s", order.Type, types.OrderTakeOut)
	}
	if got := order.Subtotal.StringFixed(2); got != "30.00" {
		t.Fatalf("Subtotal got=%s want=30.00", got)
	}
	if got := order.Tax.StringFixed(2); got != "5.00" {
		t.Fatalf("Tax got=%s want=5.00", got)
	}
	if got := order.Gratuity.StringFixed(2); got != "0.00" {
		t.Fatalf("Gratuity got=%s want=0.00", got)
	}
	if got := order.Total.StringFixed(2); got != "37.00" {
		t.Fatalf("Total got=%s want=37.00", got)
	}
	if order.PaymentMethod != types.PaymentCredit {
		t.Fatalf("PaymentMethod got=%s want=%s", order.PaymentMethod, types.PaymentCredit)
	}
	if order.TableNumber != nil {
		t.Fatalf("TableNumber got=%d want nil for take-out", *order.TableNumber)
	}
	if len(items) != 1 {
		t.Fatalf("item count got=%d want=1", len(items))
	}
	if got := items[0].UnitPrice.StringFixed(2); got != "30.00" {
		t.Fatalf("UnitPrice got=%s want=30.00", got)
	}
}

func TestSynthesize_RejectsNonPositiveTotal(t *testing.T) {
	eng := engine.New(testSettings())
	seq := engine.NewSequence(1, 19)

	_, _, ok := eng.Synthesize(row(0, 0, 0, 0, 0), seq)
	if ok {
		t.Fatalf("Synthesize ok=true for zero total, want false")
	}
	// A rejected row must not consume a counter value.
	if seq.Peek() != 1 {
		t.Fatalf("counter got=%d want=1 after rejection", seq.Peek())
	}

	order, _, ok := eng.Synthesize(row(0, 12, 12, 0, 0), seq)
	if !ok {
		t.Fatalf("Synthesize ok=false for valid row")
	}
	if order.ID != "ord_000001" {
		t.Fatalf("ID got=%s want=ord_000001", order.ID)
	}
}

func TestSynthesize_Invariants(t *testing.T) {
	eng := engine.New(testSettings())
	seq := engine.NewSequence(1, 19)

	// Sweep awkward subtotals; item prices must always sum back to the
	// subtotal and the count must stay within bounds.
	subtotals := []float64{0.01, 0.99, 10, 19.99, 20, 33.33, 40.01, 59.97, 80.02, 123.45, 500}

	for _, sub := range subtotals {
		order, items, ok := eng.Synthesize(row(0, sub, sub, 0, 0), seq)
		if !ok {
			t.Fatalf("Synthesize ok=false for subtotal %v", sub)
		}

		if order.Subtotal.IsNegative() || order.Tax.IsNegative() || order.Gratuity.IsNegative() {
			t.Fatalf("negative monetary field for subtotal %v: %+v", sub, order)
		}
		if !order.Total.IsPositive() {
			t.Fatalf("non-positive total for subtotal %v", sub)
		}
		if len(items) < 1 || len(items) > 4 {
			t.Fatalf("item count got=%d want in [1,4] for subtotal %v", len(items), sub)
		}

		sum := decimal.Zero
		for _, item := range items {
			if item.Quantity != 1 {
				t.Fatalf("Quantity got=%d want=1", item.Quantity)
			}
			sum = sum.Add(item.UnitPrice)
		}
		diff := sum.Sub(order.Subtotal).Abs()
		if diff.GreaterThan(decimal.NewFromFloat(0.01)) {
			t.Fatalf("items sum %s differs from subtotal %s by %s",
				sum.StringFixed(2), order.Subtotal.StringFixed(2), diff.String())
		}
	}
}

func TestSynthesize_IDsAndItemPool(t *testing.T) {
	eng := engine.New(testSettings())
	seq := engine.NewSequence(1, 19)

	order, items, ok := eng.Synthesize(row(0, 85, 85, 0, 0), seq)
	if !ok {
		t.Fatalf("Synthesize ok=false")
	}
	if order.ID != "ord_000001" {
		t.Fatalf("order ID got=%s want=ord_000001", order.ID)
	}
	if len(items) != 4 {
		t.Fatalf("item count got=%d want=4", len(items))
	}
	wantIDs := []string{"oit_000001_00", "oit_000001_01", "oit_000001_02", "oit_000001_03"}
	wantItems := []string{"menu_item_01", "menu_item_02", "menu_item_03", "menu_item_04"}
	for i, item := range items {
		if item.ID != wantIDs[i] {
			t.Fatalf("item ID got=%s want=%s", item.ID, wantIDs[i])
		}
		if item.ItemID != wantItems[i] {
			t.Fatalf("ItemID got=%s want=%s", item.ItemID, wantItems[i])
		}
		if item.OrderID != order.ID {
			t.Fatalf("OrderID got=%s want=%s", item.OrderID, order.ID)
		}
	}
}

func TestSequence_TableRoundRobin(t *testing.T) {
	seq := engine.NewSequence(1, 3)

	got := []int{seq.NextTable(), seq.NextTable(), seq.NextTable(), seq.NextTable(), seq.NextTable()}
	want := []int{1, 2, 3, 1, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("NextTable[%d] got=%d want=%d", i, got[i], want[i])
		}
	}
}

func TestSynthesize_DeterministicTables(t *testing.T) {
	eng := engine.New(testSettings())

	run := func() []int {
		seq := engine.NewSequence(1, 19)
		var tables []int
		for i := 0; i < 25; i++ {
			order, _, ok := eng.Synthesize(row(0, 40, 40, 0, 0), seq)
			if !ok {
				t.Fatalf("Synthesize ok=false")
			}
			tables = append(tables, *order.TableNumber)
		}
		return tables
	}

	first := run()
	second := run()
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("table assignment not reproducible at %d: %d != %d", i, first[i], second[i])
		}
	}
	// Tables must stay inside the configured range and wrap.
	if first[0] != 1 || first[19] != 1 {
		t.Fatalf("round robin got first=%d wrap=%d want 1 and 1", first[0], first[19])
	}
}
