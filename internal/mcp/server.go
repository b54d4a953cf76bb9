// ABOUTME: MCP server setup for trainerlog weekly progress reports.
// ABOUTME: Wraps the MCP server around a read-only session reader.
package mcp

import (
	"context"
	"time"

	"github.com/harperreed/trainerlog/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"
)

const defaultQueryTimeout = 5 * time.Second

// Server wraps the MCP server with session store access.
type Server struct {
	mcpServer    *mcp.Server
	reader       storage.SessionReader
	log          logrus.FieldLogger
	queryTimeout time.Duration
	now          func() time.Time
}

// Option configures a Server.
type Option func(*Server)

func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Server) {
		s.log = log
	}
}

// WithQueryTimeout bounds each store read made by a tool call.
func WithQueryTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.queryTimeout = d
		}
	}
}

// NewServer creates a new MCP server reading from the given store.
func NewServer(reader storage.SessionReader, opts ...Option) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "trainerlog",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer:    mcpServer,
		reader:       reader,
		log:          logrus.StandardLogger(),
		queryTimeout: defaultQueryTimeout,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	s.log.Info("serving MCP over stdio")
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
