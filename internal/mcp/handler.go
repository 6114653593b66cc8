package mcp

import (
	"net/http"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/brukhabtu/places-mcp/internal/common"
	"github.com/brukhabtu/places-mcp/internal/tools"
)

// Handler is the HTTP handler for the MCP endpoint.
// It wraps mcp-go's StreamableHTTPServer and delegates to it.
type Handler struct {
	streamable *mcpserver.StreamableHTTPServer
	registry   *tools.Registry
	logger     *common.Logger
}

// NewHandler wraps an MCP server in a stateless streamable HTTP handler.
func NewHandler(s *mcpserver.MCPServer, reg *tools.Registry, logger *common.Logger) *Handler {
	streamable := mcpserver.NewStreamableHTTPServer(s,
		mcpserver.WithStateLess(true),
	)

	return &Handler{
		streamable: streamable,
		registry:   reg,
		logger:     logger,
	}
}

// Registry returns the tool registry backing this handler.
func (h *Handler) Registry() *tools.Registry {
	return h.registry
}

// ServeHTTP delegates to the mcp-go StreamableHTTPServer.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.streamable.ServeHTTP(w, r)
}
