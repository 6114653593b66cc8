// Package mcp exposes the compiled tool registry over the Model Context
// Protocol, registering one MCP tool per descriptor and routing tool calls
// through the invoker.
package mcp

import (
	"context"
	"encoding/base64"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/brukhabtu/places-mcp/internal/common"
	"github.com/brukhabtu/places-mcp/internal/invoke"
	"github.com/brukhabtu/places-mcp/internal/tools"
)

// NewServer creates an MCP server and registers every descriptor in the
// registry plus the built-in get_version tool.
func NewServer(name string, reg *tools.Registry, inv *invoke.Invoker, logger *common.Logger) *server.MCPServer {
	s := server.NewMCPServer(
		name,
		common.GetVersion(),
		server.WithToolCapabilities(true),
	)

	count := RegisterTools(s, reg, inv)
	s.AddTool(VersionTool(), VersionToolHandler(reg))

	logger.Info().Int("tools", count).Msg("MCP server initialized")

	return s
}

// RegisterTools registers MCP tools from the registry. Returns the number
// of tools registered.
func RegisterTools(s *server.MCPServer, reg *tools.Registry, inv *invoke.Invoker) int {
	descriptors := reg.List()
	for _, d := range descriptors {
		s.AddTool(BuildTool(d), ToolHandler(inv, d))
	}
	return len(descriptors)
}

// BuildTool converts a descriptor into an mcp.Tool with the matching
// input schema.
func BuildTool(d *tools.Descriptor) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(d.Description)}
	for _, name := range d.ArgNames() {
		opts = append(opts, buildArgOption(name, d.Args[name]))
	}
	return mcp.NewTool(d.Name, opts...)
}

// buildArgOption maps an argument spec to the appropriate mcp-go tool option.
func buildArgOption(name string, spec tools.ArgSpec) mcp.ToolOption {
	var opts []mcp.PropertyOption
	if spec.Description != "" {
		opts = append(opts, mcp.Description(spec.Description))
	}
	if spec.Required {
		opts = append(opts, mcp.Required())
	}

	switch spec.Type {
	case "number", "integer":
		return mcp.WithNumber(name, opts...)
	case "boolean":
		return mcp.WithBoolean(name, opts...)
	case "array":
		opts = append([]mcp.PropertyOption{mcp.WithStringItems()}, opts...)
		return mcp.WithArray(name, opts...)
	default:
		// string, object, or unknown — all passed as string
		return mcp.WithString(name, opts...)
	}
}

// ToolHandler creates a handler that routes an MCP tool call through the
// invoker. Invocation failures come back as MCP error results, never as
// protocol errors, so the calling model can read and correct them.
func ToolHandler(inv *invoke.Invoker, d *tools.Descriptor) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := inv.Invoke(ctx, d, r.GetArguments())
		if err != nil {
			return errorResult("Error: " + err.Error()), nil
		}
		return successResult(result), nil
	}
}

// successResult renders an invocation result as MCP content: image bodies
// become image content, everything else text.
func successResult(result *invoke.Result) *mcp.CallToolResult {
	if strings.HasPrefix(result.ContentType, "image/") {
		return &mcp.CallToolResult{
			Content: []mcp.Content{mcp.ImageContent{
				Type:     "image",
				Data:     base64.StdEncoding.EncodeToString(result.Body),
				MIMEType: result.ContentType,
			}},
		}
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(string(result.Body))},
	}
}

// errorResult creates an MCP error result.
func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(message),
		},
		IsError: true,
	}
}
