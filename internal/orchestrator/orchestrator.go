// Package orchestrator wires the dashboard together: embedded NATS, the
// analysis store, the MCP server and the TUI program.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/mark3labs/insightr/internal/hooks"
	"github.com/mark3labs/insightr/internal/logger"
	"github.com/mark3labs/insightr/internal/mcpserver"
	"github.com/mark3labs/insightr/internal/metrics"
	"github.com/mark3labs/insightr/internal/store"
	"github.com/mark3labs/insightr/internal/tui"
)

// Config holds configuration for the orchestrator.
type Config struct {
	DataDir    string // Data directory for NATS storage and UI state
	ExportDir  string // Directory receiving exports
	MCP        bool   // Serve the MCP endpoint while the dashboard runs
	Validate   bool   // Reject invalid criteria
	SampleSeed int64  // Seed for the sample metrics source
	WorkDir    string // Directory holding .insightr.hooks.yml
}

// Orchestrator manages the dashboard lifecycle.
type Orchestrator struct {
	cfg        Config
	link       *Link
	source     metrics.Source
	hooks      *hooks.Watcher
	mcp        *mcpserver.Server
	tuiApp     *tui.App
	tuiProgram atomic.Pointer[tea.Program] // read by MCP submit callbacks
	ctx        context.Context
	cancel     context.CancelFunc
	stopOnce   sync.Once
	stopErr    error
}

// New creates a new Orchestrator with the given configuration.
func New(cfg Config) *Orchestrator {
	if cfg.DataDir == "" {
		cfg.DataDir = ".insightr"
	}
	if cfg.ExportDir == "" {
		cfg.ExportDir = "."
	}
	if cfg.WorkDir == "" {
		cfg.WorkDir = "."
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Orchestrator{
		cfg:    cfg,
		source: metrics.NewSampleSource(cfg.SampleSeed, time.Now()),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start connects to the store, starts the MCP server when enabled and
// prepares the TUI program.
func (o *Orchestrator) Start() error {
	logger.Info("Starting dashboard in %s", o.cfg.DataDir)

	hw, err := hooks.NewWatcher(o.cfg.WorkDir)
	if err != nil {
		return fmt.Errorf("failed to load hooks: %w", err)
	}
	if err := hw.Start(); err != nil {
		return fmt.Errorf("failed to watch hooks: %w", err)
	}
	o.hooks = hw

	link, err := Connect(o.ctx, o.cfg.DataDir)
	if err != nil {
		logger.Error("Failed to connect to store: %v", err)
		return err
	}
	o.link = link

	mcpURL := ""
	if o.cfg.MCP {
		if err := o.startMCP(); err != nil {
			return err
		}
		mcpURL = o.mcp.URL()
	}

	o.tuiApp = tui.NewApp(o.ctx, o.link.Store, o.source, tui.Options{
		DataDir:     o.cfg.DataDir,
		ExportDir:   o.cfg.ExportDir,
		Validate:    o.cfg.Validate,
		MCPURL:      mcpURL,
		OnSubmitted: o.runHooks,
	})
	o.tuiProgram.Store(tea.NewProgram(o.tuiApp, tea.WithContext(o.ctx)))

	logger.Info("Dashboard started")
	return nil
}

func (o *Orchestrator) startMCP() error {
	o.mcp = mcpserver.New(o.link.Store, o.source, o.cfg.Validate)
	o.mcp.OnSubmit(func(a *store.Analysis) {
		o.runHooks(a)
		if p := o.tuiProgram.Load(); p != nil {
			p.Send(tui.AnalysisSubmittedMsg{Analysis: a})
		}
	})
	port, err := o.mcp.Start(o.ctx)
	if err != nil {
		logger.Error("Failed to start MCP server: %v", err)
		return fmt.Errorf("failed to start MCP server: %w", err)
	}
	logger.Info("MCP server listening on port %d", port)
	return nil
}

// runHooks runs the on_submit hooks for a and logs their output.
func (o *Orchestrator) runHooks(a *store.Analysis) {
	out, err := hooks.RunOnSubmit(o.ctx, o.hooks.Config(), o.cfg.WorkDir, a)
	if err != nil {
		logger.Warn("on_submit hooks for %s: %v", a.ID, err)
		return
	}
	if out != "" {
		logger.Info("on_submit hooks for %s:\n%s", a.ID, out)
	}
}

// Run blocks until the TUI exits.
func (o *Orchestrator) Run() error {
	p := o.tuiProgram.Load()
	if p == nil {
		return errors.New("orchestrator not started")
	}
	_, err := p.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// Stop shuts everything down and returns the combined shutdown errors.
// Multiple and concurrent calls are safe.
func (o *Orchestrator) Stop() error {
	o.stopOnce.Do(func() {
		o.stopErr = o.stop()
	})
	return o.stopErr
}

func (o *Orchestrator) stop() error {
	logger.Info("Stopping dashboard")
	var errs []error

	// Cancelling the context also ends a running TUI program
	o.cancel()

	if o.hooks != nil {
		if err := o.hooks.Stop(); err != nil {
			errs = append(errs, err)
		}
	}
	if o.mcp != nil {
		if err := o.mcp.Stop(); err != nil {
			errs = append(errs, err)
		}
	}
	if o.link != nil {
		if err := o.link.Close(); err != nil {
			logger.Error("NATS shutdown failed: %v", err)
			errs = append(errs, err)
		}
	}

	logger.Info("Dashboard stopped")
	return errors.Join(errs...)
}
