// =============================================================================
// Sales Import - Run Sequence Context
// =============================================================================
//
// A Sequence is the single piece of mutable state threaded through a run. It
// owns the order ID counter and the round-robin table assignment, and is
// passed explicitly through the call chain so that independent runs (and
// tests) never share state through a package-level counter.
//
// =============================================================================

package engine

import "fmt"

// Sequence generates order IDs and table numbers for one run. Row processing
// order determines ID order, which is user-observable output, so a Sequence
// must only ever be used from a single pass over the sheets.
type Sequence struct {
	next     int
	tables   int
	tableMin int
	tableMax int
}

// NewSequence returns a sequence whose counter starts at 1 and whose table
// numbers cycle over [tableMin, tableMax].
func NewSequence(tableMin, tableMax int) *Sequence {
	if tableMax < tableMin {
		tableMax = tableMin
	}
	return &Sequence{next: 1, tableMin: tableMin, tableMax: tableMax}
}

// Next consumes and returns the next counter value. Callers must only invoke
// it when an order is actually emitted: rejected rows do not consume a value.
func (s *Sequence) Next() int {
	n := s.next
	s.next++
	return n
}

// Peek returns the value Next would return, without consuming it.
func (s *Sequence) Peek() int {
	return s.next
}

// NextTable returns the next dine-in table number, cycling round-robin over
// the configured range. Deterministic by design: reruns over the same input
// produce identical output.
func (s *Sequence) NextTable() int {
	span := s.tableMax - s.tableMin + 1
	t := s.tableMin + s.tables%span
	s.tables++
	return t
}

// OrderID formats the order ID for counter value n.
func OrderID(n int) string {
	return fmt.Sprintf("ord_%06d", n)
}

// OrderItemID formats the line-item ID for counter value n and item index
// idx within the order.
func OrderItemID(n, idx int) string {
	return fmt.Sprintf("oit_%06d_%02d", n, idx)
}

// MenuItemID formats the placeholder menu-item ID for item index idx,
// cycling through a pool of poolSize placeholders.
func MenuItemID(idx, poolSize int) string {
	if poolSize < 1 {
		poolSize = 1
	}
	return fmt.Sprintf("menu_item_%02d", idx%poolSize+1)
}
