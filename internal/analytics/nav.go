package analytics

import (
	"sync"

	"washpos/backend/internal/domain"
)

// maxWeeksBack bounds how far the weekly detail view can page into the
// past. Month and year views are unbounded.
const maxWeeksBack = 3

// CanGoBack reports whether paging one more period into the past is
// allowed from the given offset.
func CanGoBack(kind domain.PeriodKind, offset int) bool {
	if kind == domain.PeriodWeek {
		return offset > -maxWeeksBack
	}
	return true
}

// CanGoForward reports whether paging toward the present is allowed.
// Offset never goes positive: future periods are never shown.
func CanGoForward(offset int) bool {
	return offset < 0
}

// ClampOffset snaps an out-of-range offset to the nearest legal value.
func ClampOffset(kind domain.PeriodKind, offset int) int {
	if offset > 0 {
		return 0
	}
	if kind == domain.PeriodWeek && offset < -maxWeeksBack {
		return -maxWeeksBack
	}
	return offset
}

// Navigator tracks which period the sales detail view is showing. Paging
// past a bound is a no-op, and switching period kind snaps back to the
// current period.
type Navigator struct {
	mu     sync.Mutex
	kind   domain.PeriodKind
	offset int
}

func NewNavigator() *Navigator {
	return &Navigator{kind: domain.PeriodWeek}
}

// Reset selects a period kind and returns to offset 0.
func (n *Navigator) Reset(kind domain.PeriodKind) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.kind = kind
	n.offset = 0
}

// PageBack moves one period into the past. It reports whether the offset
// actually changed.
func (n *Navigator) PageBack() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if !CanGoBack(n.kind, n.offset) {
		return false
	}
	n.offset--
	return true
}

// PageForward moves one period toward the present. It reports whether
// the offset actually changed.
func (n *Navigator) PageForward() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if !CanGoForward(n.offset) {
		return false
	}
	n.offset++
	return true
}

// Position returns the currently selected period kind and offset.
func (n *Navigator) Position() (domain.PeriodKind, int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.kind, n.offset
}
