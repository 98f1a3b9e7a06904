package testfixtures

import (
	"strings"
	"sync"
	"testing"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/mark3labs/insightr/internal/analysis"
	"github.com/stretchr/testify/require"
)

// --- MockSource Tests ---

func TestMockSource_SampleData(t *testing.T) {
	t.Parallel()

	src := NewMockSource()
	require.Len(t, src.Cards(), 6)
	require.Len(t, src.Revenue(), 6)
	require.Len(t, src.Sales(), 5)
	require.Equal(t, 1, src.Calls("Cards"))
	require.Equal(t, 0, src.Calls("Conversion"))
}

func TestMockSource_Empty(t *testing.T) {
	t.Parallel()

	src := EmptySource()
	require.Empty(t, src.Cards())
	require.Empty(t, src.Sales())
	require.Equal(t, 1, src.Calls("Sales"))
}

func TestMockSource_ConcurrentCalls(t *testing.T) {
	t.Parallel()

	src := NewMockSource()
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			src.Sales()
		}()
	}
	wg.Wait()
	require.Equal(t, 10, src.Calls("Sales"))
}

// --- Fixture Tests ---

func TestFixtures(t *testing.T) {
	t.Parallel()

	require.Empty(t, analysis.Validate(SampleCriteria()))
	require.Len(t, analysis.Validate(InvalidCriteria()), 2)
	require.Equal(t, SampleCriteria(), SampleAnalysis().Criteria)
}

func TestRenderCanvas(t *testing.T) {
	t.Parallel()

	out := RenderCanvas(func(scr uv.Screen, area uv.Rectangle) {
		uv.NewStyledString("\x1b[1mhello\x1b[0m").Draw(scr, area)
	})
	require.True(t, strings.HasPrefix(out, "hello"))
}
