// Package mcpserver exposes submitted analyses and dashboard metrics to
// external tools over MCP streamable HTTP.
package mcpserver

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/mark3labs/insightr/internal/logger"
	"github.com/mark3labs/insightr/internal/metrics"
	"github.com/mark3labs/insightr/internal/store"
	"github.com/mark3labs/mcp-go/server"
)

// Server manages an embedded MCP HTTP server. It is started alongside the
// dashboard and shares its store and metrics source.
type Server struct {
	store      *store.Store
	source     metrics.Source
	validate   bool
	onSubmit   func(*store.Analysis)
	mcpServer  *server.MCPServer
	httpServer *server.StreamableHTTPServer
	stdServer  *http.Server // Standard HTTP server that uses the listener
	port       int
	mu         sync.Mutex
}

// New creates a new MCP server. When validate is true, submit-analysis
// rejects criteria that fail analysis.Validate.
// The server is not started until Start() is called.
func New(st *store.Store, source metrics.Source, validate bool) *Server {
	return &Server{
		store:    st,
		source:   source,
		validate: validate,
	}
}

// OnSubmit registers a callback invoked after each successful submit-analysis.
func (s *Server) OnSubmit(fn func(*store.Analysis)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onSubmit = fn
}

func (s *Server) submitted(a *store.Analysis) {
	s.mu.Lock()
	fn := s.onSubmit
	s.mu.Unlock()
	if fn != nil {
		fn(a)
	}
}

// Start starts the MCP HTTP server on a random available port.
// Returns the port number or an error if startup fails.
func (s *Server) Start(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stdServer != nil {
		return 0, fmt.Errorf("server already started")
	}

	s.mcpServer = server.NewMCPServer(
		"insightr",
		"1.0.0",
		server.WithToolCapabilities(true),
	)
	s.registerTools()

	// Find a random available port by creating a listener
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, fmt.Errorf("failed to find available port: %w", err)
	}
	s.port = listener.Addr().(*net.TCPAddr).Port

	// Pass the listener directly so the port cannot be taken in between
	mux := http.NewServeMux()
	mcpHandler := server.NewStreamableHTTPServer(
		s.mcpServer,
		server.WithStateLess(true),
	)
	mux.Handle("/mcp", mcpHandler)

	s.stdServer = &http.Server{
		Handler: mux,
	}
	s.httpServer = mcpHandler

	logger.Debug("Starting MCP server on port %d", s.port)

	stdServer := s.stdServer
	go func() {
		if err := stdServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Error("MCP server error: %v", err)
		}
	}()

	logger.Debug("MCP server ready on port %d", s.port)
	return s.port, nil
}

// Stop stops the MCP HTTP server and cleans up resources.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stdServer == nil {
		return nil // Already stopped
	}

	logger.Debug("Stopping MCP server")
	if err := s.stdServer.Shutdown(context.Background()); err != nil {
		logger.Warn("Error stopping MCP server: %v", err)
		return fmt.Errorf("failed to stop server: %w", err)
	}

	s.httpServer = nil
	s.stdServer = nil
	s.mcpServer = nil
	logger.Debug("MCP server stopped")
	return nil
}

// URL returns the HTTP URL for the MCP server endpoint.
func (s *Server) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("http://localhost:%d/mcp", s.port)
}
