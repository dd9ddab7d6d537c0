// =============================================================================
// Sales Import - Aggregate Reconciliation & Synthesis Engine
// =============================================================================
//
// This module is the core of the importer. The historical workbooks record
// each sale as a handful of aggregate monetary fields (to-go amount, dine-in
// amount, register total, card service charge, receipt total) and nothing
// else: no tax line, no gratuity line, no itemized breakdown. The engine
// reverse-engineers a full transaction from those aggregates:
//
//   - tax is the gap between register total and subtotal
//   - gratuity is what remains of the receipt above total and service charge
//   - payment method follows the service charge (card processors charge one)
//   - line items are fabricated at a plausible average price so every order
//     carries between one and four items summing to its subtotal
//
// Decision order matters: later derivations depend on earlier ones, so the
// steps in Synthesize must not be reordered.
//
// =============================================================================

package engine

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fujipos/sales-import/internal/config"
	"github.com/fujipos/sales-import/internal/types"
)

// TransactionRow is one classified transactional row with normalized
// monetary fields. Absent workbook columns arrive as zero.
type TransactionRow struct {
	Date    time.Time
	ToGo    decimal.Decimal
	DineIn  decimal.Decimal
	Total   decimal.Decimal
	Service decimal.Decimal
	Receipt decimal.Decimal
}

// Engine synthesizes order records from transaction rows. It is configured
// once per run and carries no state of its own; all run state lives in the
// Sequence passed to Synthesize.
type Engine struct {
	pricePerItem decimal.Decimal
	maxItems     int
	itemPool     int
	serverID     string
	status       string
}

// New builds an engine from the synthesis settings.
func New(s config.SynthesisSettings) *Engine {
	return &Engine{
		pricePerItem: decimal.NewFromFloat(s.PricePerItem),
		maxItems:     s.MaxItems,
		itemPool:     s.ItemPool,
		serverID:     s.ServerID,
		status:       s.Status,
	}
}

// Synthesize reconstructs an order and its line items from one transaction
// row. It returns ok=false without consuming a counter value when the row's
// total is not positive; such rows are structural noise, not sales.
func (e *Engine) Synthesize(row TransactionRow, seq *Sequence) (types.OrderRecord, []types.OrderItemRecord, bool) {
	// Step 1: rows with a non-positive total are never materialized.
	if !row.Total.IsPositive() {
		return types.OrderRecord{}, nil, false
	}

	// Step 2: any to-go amount marks the whole order as take-out.
	orderType := types.OrderDineIn
	if row.ToGo.IsPositive() {
		orderType = types.OrderTakeOut
	}

	// Step 3: the channel amounts are the subtotal when present; otherwise
	// the register total stands in for it.
	subtotal := row.ToGo.Add(row.DineIn)
	if !subtotal.IsPositive() {
		subtotal = row.Total
	}

	// Step 4: tax is whatever the register total adds above the subtotal.
	tax := clampNonNegative(row.Total.Sub(subtotal))

	// Step 5: gratuity is what the receipt adds above total and service
	// charge, and only when the receipt actually exceeds the total.
	gratuity := decimal.Zero
	if row.Receipt.GreaterThan(row.Total) {
		gratuity = clampNonNegative(row.Receipt.Sub(row.Total).Sub(row.Service))
	}

	// Step 6: the receipt is the authoritative order total when present.
	orderTotal := row.Total
	if row.Receipt.IsPositive() {
		orderTotal = row.Receipt
	}

	// Step 7: a service charge implies a card payment.
	payment := types.PaymentCash
	if row.Service.IsPositive() {
		payment = types.PaymentCredit
	}

	n := seq.Next()

	order := types.OrderRecord{
		ID:            OrderID(n),
		OrderDate:     row.Date.Format("2006-01-02"),
		Type:          orderType,
		ServerID:      e.serverID,
		Status:        e.status,
		Subtotal:      subtotal.Round(2),
		Tax:           tax.Round(2),
		Gratuity:      gratuity.Round(2),
		Total:         orderTotal.Round(2),
		PaymentMethod: payment,
	}

	// Step 8: take-out orders have no table; dine-in tables are assigned
	// round-robin from the run sequence.
	if orderType == types.OrderDineIn {
		table := seq.NextTable()
		order.TableNumber = &table
	}

	items := e.synthesizeItems(n, order.ID, subtotal)
	return order, items, true
}

// synthesizeItems fabricates the line items for an order. The item count is
// subtotal divided by the assumed average item price, clamped to [1, max];
// each item takes the rounded even share of the subtotal and the last item
// absorbs the rounding remainder, so the items always sum back to the
// subtotal exactly.
func (e *Engine) synthesizeItems(n int, orderID string, subtotal decimal.Decimal) []types.OrderItemRecord {
	count := int(subtotal.Div(e.pricePerItem).IntPart())
	if count < 1 {
		count = 1
	}
	if count > e.maxItems {
		count = e.maxItems
	}

	countDec := decimal.NewFromInt(int64(count))
	share := subtotal.Div(countDec).Round(2)

	items := make([]types.OrderItemRecord, 0, count)
	for idx := 0; idx < count; idx++ {
		price := share
		if idx == count-1 {
			price = subtotal.Sub(share.Mul(countDec.Sub(decimal.NewFromInt(1)))).Round(2)
		}
		items = append(items, types.OrderItemRecord{
			ID:                  OrderItemID(n, idx),
			OrderID:             orderID,
			ItemID:              MenuItemID(idx, e.itemPool),
			Quantity:            1,
			UnitPrice:           price,
			Modifiers:           "{}",
			SpecialInstructions: "",
		})
	}
	return items
}

// clampNonNegative floors a derived amount at zero. Reconciliation gaps can
// go negative when a clerk keyed a correction; negative tax or gratuity is
// meaningless in output.
func clampNonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
