// Package testfixtures provides mock implementations and test utilities for TUI testing.
//
// This file contains mock implementations for common dependencies used in TUI tests:
//   - MockSource: controllable metrics.Source with call counters
//
// All mocks are thread-safe and provide verification methods for assertions in tests.
//
// Example usage:
//
//	func TestMyComponent(t *testing.T) {
//	    src := testfixtures.NewMockSource()
//	    src.SalesRows = nil
//
//	    // Use the source in your test...
//	    // Later verify calls:
//	    require.Equal(t, 1, src.Calls("Sales"))
//	}
package testfixtures

import (
	"sync"
	"time"

	"github.com/mark3labs/insightr/internal/metrics"
)

// MockSource is a metrics.Source whose series are plain fields.
type MockSource struct {
	mu sync.Mutex

	CardList       []metrics.Card
	RevenueSeries  []metrics.Point
	CategoryShares []metrics.Point
	CustomerGroups []metrics.GroupedPoint
	ConversionRate []metrics.Point
	SalesRows      []metrics.SaleRow

	calls map[string]int
}

var _ metrics.Source = (*MockSource)(nil)

// NewMockSource creates a mock filled with the sample dashboard data at FixedTime.
func NewMockSource() *MockSource {
	snap := metrics.Snap(metrics.NewSampleSource(FixedSeed, FixedTime))
	return &MockSource{
		CardList:       snap.Cards,
		RevenueSeries:  snap.Revenue,
		CategoryShares: snap.Categories,
		CustomerGroups: snap.Customers,
		ConversionRate: snap.Conversion,
		SalesRows:      snap.Sales,
		calls:          map[string]int{},
	}
}

// EmptySource returns a mock with no data in any series.
func EmptySource() *MockSource {
	return &MockSource{calls: map[string]int{}}
}

// FixedSales returns deterministic rows for table assertions.
func FixedSales() []metrics.SaleRow {
	return []metrics.SaleRow{
		{Client: "Acme Corp", LTV: 12500, AvgTicket: 250.5, DaysActive: 120, LastPurchase: FixedTime},
		{Client: "Globex", LTV: 830.25, AvgTicket: 41.5, DaysActive: 9, LastPurchase: FixedTime.Add(-48 * time.Hour)},
	}
}

func (m *MockSource) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = map[string]int{}
	}
	m.calls[name]++
}

// Calls returns how many times the named method was called.
func (m *MockSource) Calls(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[name]
}

// Cards returns CardList.
func (m *MockSource) Cards() []metrics.Card {
	m.record("Cards")
	return m.CardList
}

// Revenue returns RevenueSeries.
func (m *MockSource) Revenue() []metrics.Point {
	m.record("Revenue")
	return m.RevenueSeries
}

// Categories returns CategoryShares.
func (m *MockSource) Categories() []metrics.Point {
	m.record("Categories")
	return m.CategoryShares
}

// Customers returns CustomerGroups.
func (m *MockSource) Customers() []metrics.GroupedPoint {
	m.record("Customers")
	return m.CustomerGroups
}

// Conversion returns ConversionRate.
func (m *MockSource) Conversion() []metrics.Point {
	m.record("Conversion")
	return m.ConversionRate
}

// Sales returns SalesRows.
func (m *MockSource) Sales() []metrics.SaleRow {
	m.record("Sales")
	return m.SalesRows
}
