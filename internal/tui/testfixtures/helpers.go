package testfixtures

import (
	"context"
	"testing"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/colorprofile"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"
	"github.com/mark3labs/insightr/internal/nats"
	"github.com/mark3labs/insightr/internal/store"
	"github.com/stretchr/testify/require"
)

// Initialize test environment
func init() {
	// Ascii profile keeps printed output free of color across CI/platforms
	lipgloss.Writer.Profile = colorprofile.Ascii
}

// Canonical terminal size for all tests
const (
	TestTermWidth  = 120
	TestTermHeight = 40
)

// Timeouts for store round trips in tests
const (
	DefaultWaitDuration = 5 * time.Second
)

// NewStore starts an embedded NATS server under t.TempDir() and returns an
// analysis store on it. Everything is torn down with the test.
func NewStore(t *testing.T) *store.Store {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), DefaultWaitDuration)
	defer cancel()

	ns, _, err := nats.StartEmbeddedNATS(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(ns.Shutdown)

	nc, err := nats.ConnectInProcess(ns)
	require.NoError(t, err)
	t.Cleanup(nc.Close)

	js, err := nats.CreateJetStream(nc)
	require.NoError(t, err)

	stream, err := nats.SetupStream(ctx, js)
	require.NoError(t, err)

	return store.NewStore(js, stream)
}

// Plain strips ANSI sequences so assertions see only the text.
func Plain(s string) string {
	return ansi.Strip(s)
}

// RenderCanvas draws into a TestTermWidth x TestTermHeight screen buffer and
// returns the plain text.
func RenderCanvas(draw func(scr uv.Screen, area uv.Rectangle)) string {
	canvas := uv.NewScreenBuffer(TestTermWidth, TestTermHeight)
	draw(canvas, canvas.Bounds())
	return Plain(canvas.Render())
}
