package orchestrator

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/mark3labs/insightr/internal/logger"
	"github.com/mark3labs/insightr/internal/nats"
	"github.com/mark3labs/insightr/internal/store"
	natsserver "github.com/nats-io/nats-server/v2/server"
	natsgo "github.com/nats-io/nats.go"
)

// Link is a connection to the analysis stream. When no other insightr
// process is serving dataDir, the link owns an embedded server.
type Link struct {
	Store *store.Store

	ns      *natsserver.Server // nil in node mode
	nc      *natsgo.Conn
	natsDir string
	closed  bool
}

// Connect joins the NATS server of a running dashboard for dataDir, or
// starts an embedded one when none answers.
func Connect(ctx context.Context, dataDir string) (*Link, error) {
	l := &Link{natsDir: filepath.Join(dataDir, "nats")}

	if nc := nats.TryConnectExisting(l.natsDir); nc != nil {
		logger.Info("Connected to existing NATS server (node mode)")
		l.nc = nc
	} else {
		logger.Info("Starting NATS server (primary mode)")
		ns, _, err := nats.StartEmbeddedNATS(l.natsDir)
		if err != nil {
			return nil, fmt.Errorf("failed to start NATS server: %w", err)
		}
		nc, err := nats.ConnectInProcess(ns)
		if err != nil {
			ns.Shutdown()
			nats.RemovePortFile(l.natsDir)
			return nil, fmt.Errorf("failed to connect to NATS: %w", err)
		}
		l.ns = ns
		l.nc = nc
	}

	js, err := nats.CreateJetStream(l.nc)
	if err != nil {
		_ = l.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}
	stream, err := nats.SetupStream(ctx, js)
	if err != nil {
		_ = l.Close()
		return nil, fmt.Errorf("failed to setup stream: %w", err)
	}

	l.Store = store.NewStore(js, stream)
	return l, nil
}

// Primary reports whether this link owns the NATS server.
func (l *Link) Primary() bool {
	return l.ns != nil
}

// Close closes the connection, and the server too in primary mode.
// Multiple calls are safe.
func (l *Link) Close() error {
	if l.closed {
		return nil
	}
	l.closed = true

	if l.ns == nil {
		// Node mode: leave the other process's server running
		if l.nc != nil {
			l.nc.Close()
		}
		return nil
	}

	logger.Debug("Shutting down NATS server (primary mode)")
	nats.RemovePortFile(l.natsDir)
	if err := nats.Shutdown(l.nc, l.ns); err != nil {
		return fmt.Errorf("NATS shutdown failed: %w", err)
	}
	return nil
}
