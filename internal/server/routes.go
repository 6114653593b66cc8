package server

import (
	"encoding/json"
	"net/http"

	"github.com/brukhabtu/places-mcp/internal/common"
	"github.com/brukhabtu/places-mcp/internal/openapi"
)

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// MCP endpoint (JSON-RPC over HTTP)
	if s.mcpHandler != nil {
		mux.Handle("/mcp", s.mcpHandler)
	}

	// API routes
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)
	mux.HandleFunc("/api/tools", s.handleTools)

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.handleNotFound)

	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"version":    common.GetVersion(),
		"build":      common.GetBuild(),
		"git_commit": common.GetGitCommit(),
	})
}

// toolInfo is the tool-listing wire format: enough for a hosting process
// to advertise available operations before any invocation.
type toolInfo struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Method      string             `json:"method"`
	Path        string             `json:"path"`
	Args        map[string]argInfo `json:"args"`
}

type argInfo struct {
	Type        string           `json:"type"`
	Description string           `json:"description,omitempty"`
	Required    bool             `json:"required"`
	In          openapi.Location `json:"in"`
}

func (s *Server) handleTools(w http.ResponseWriter, r *http.Request) {
	if s.mcpHandler == nil {
		writeJSON(w, http.StatusOK, []toolInfo{})
		return
	}

	descriptors := s.mcpHandler.Registry().List()
	out := make([]toolInfo, 0, len(descriptors))
	for _, d := range descriptors {
		info := toolInfo{
			Name:        d.Name,
			Description: d.Description,
			Method:      d.Method,
			Path:        d.Path,
			Args:        make(map[string]argInfo, len(d.Args)),
		}
		for name, spec := range d.Args {
			info.Args[name] = argInfo{
				Type:        spec.Type,
				Description: spec.Description,
				Required:    spec.Required,
				In:          spec.In,
			}
		}
		out = append(out, info)
	}

	writeJSON(w, http.StatusOK, out)
}

// handleNotFound returns a JSON 404 for unmatched API routes.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"error":"Not Found","message":"The requested endpoint does not exist"}`))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
