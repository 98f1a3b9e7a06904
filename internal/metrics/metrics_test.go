package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)

func TestSampleSource_SalesStableAcrossCalls(t *testing.T) {
	t.Parallel()

	src := NewSampleSource(42, fixedNow)
	first := src.Sales()
	second := src.Sales()
	require.Equal(t, first, second)
	require.Len(t, first, 5)

	// Mutating a returned slice must not leak into the source
	first[0].Client = "changed"
	require.Equal(t, "Client 1", src.Sales()[0].Client)
}

func TestSampleSource_SeedDeterminesRows(t *testing.T) {
	t.Parallel()

	a := NewSampleSource(7, fixedNow).Sales()
	b := NewSampleSource(7, fixedNow).Sales()
	c := NewSampleSource(8, fixedNow).Sales()
	require.Equal(t, a, b)
	require.NotEqual(t, a, c)
}

func TestSampleSource_SalesRanges(t *testing.T) {
	t.Parallel()

	for i, row := range NewSampleSource(1, fixedNow).Sales() {
		require.GreaterOrEqual(t, row.LTV, 0.0, "row %d", i)
		require.LessOrEqual(t, row.LTV, 10000.0, "row %d", i)
		require.GreaterOrEqual(t, row.AvgTicket, 0.0, "row %d", i)
		require.LessOrEqual(t, row.AvgTicket, 1000.0, "row %d", i)
		require.GreaterOrEqual(t, row.DaysActive, 0, "row %d", i)
		require.Less(t, row.DaysActive, 365, "row %d", i)
		require.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), row.LastPurchase)
	}
}

func TestSampleSource_Cards(t *testing.T) {
	t.Parallel()

	cards := NewSampleSource(42, fixedNow).Cards()
	require.Len(t, cards, 6)

	want := []string{"$2,456,789", "$892,345", "$1,564,444", "24,589", "3,456", "89,766"}
	for i, c := range cards {
		require.Equal(t, want[i], c.Display(), c.Title)
	}
	require.Equal(t, "+12.3% from last month", cards[0].SubValue)
	require.Equal(t, "+2,345 this month", cards[3].SubValue)
}

func TestSampleSource_Series(t *testing.T) {
	t.Parallel()

	src := NewSampleSource(42, fixedNow)
	require.Len(t, src.Revenue(), 6)
	require.Len(t, src.Categories(), 4)
	require.Len(t, src.Customers(), 6)
	require.Len(t, src.Conversion(), 7)
	require.Equal(t, 75.0, src.Conversion()[6].Value)
	require.Equal(t, GroupedPoint{"Apr", 450, 430}, src.Customers()[3])

	snap := Snap(src)
	require.Equal(t, src.Categories(), snap.Categories)
	require.Equal(t, src.Sales(), snap.Sales)
}

func TestFormatCurrency(t *testing.T) {
	t.Parallel()

	require.Equal(t, "$2,456,789", FormatCurrency(2456789))
	require.Equal(t, "$1,234.50", FormatCurrency(1234.5))
	require.Equal(t, "$0", FormatCurrency(0))
	require.Equal(t, "-$12.25", FormatCurrency(-12.25))
}

func TestFormatCount(t *testing.T) {
	t.Parallel()

	require.Equal(t, "24,589", FormatCount(24589))
	require.Equal(t, "7", FormatCount(7))
}
