// Package invoke executes compiled tool descriptors against the shared
// transport: it validates arguments, partitions them by placement, issues
// exactly one HTTP request, and maps the response to a structured result
// or a typed error.
package invoke

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/brukhabtu/places-mcp/internal/common"
	"github.com/brukhabtu/places-mcp/internal/openapi"
	"github.com/brukhabtu/places-mcp/internal/tools"
	"github.com/brukhabtu/places-mcp/internal/transport"
)

// Invoker dispatches tool calls through a shared transport. Stateless and
// safe for concurrent use.
type Invoker struct {
	transport *transport.Transport
	logger    *common.Logger
}

// Result is a successful invocation outcome. Value holds the decoded JSON
// body; it is nil for non-JSON responses, where Body carries the raw bytes.
type Result struct {
	Status      int
	ContentType string
	Body        []byte
	Value       any
}

// New creates an invoker bound to the given transport.
func New(t *transport.Transport, logger *common.Logger) *Invoker {
	return &Invoker{transport: t, logger: logger}
}

// Invoke validates the arguments against the descriptor's input schema and
// executes one HTTP request. Validation failures return before any request
// is sent. Retry, caching, and rate limiting are deliberately absent;
// those are caller or transport concerns.
func (inv *Invoker) Invoke(ctx context.Context, desc *tools.Descriptor, args map[string]any) (*Result, error) {
	logger := inv.logger.WithCorrelationId(uuid.New().String())

	resolved, err := validate(desc, args)
	if err != nil {
		return nil, err
	}

	path := desc.Path
	query := url.Values{}
	header := http.Header{}
	bodyFields := map[string]any{}

	for _, name := range desc.ArgNames() {
		spec := desc.Args[name]
		val, ok := resolved[name]
		if !ok {
			continue
		}
		switch spec.In {
		case openapi.LocationPath:
			str := stringify(val)
			if strings.Contains(str, "/") {
				return nil, &PathSubstitutionError{Param: name, Value: str}
			}
			path = strings.ReplaceAll(path, "{"+name+"}", url.PathEscape(str))
		case openapi.LocationQuery:
			if str := stringify(val); str != "" {
				query.Set(name, str)
			}
		case openapi.LocationHeader:
			header.Set(name, stringify(val))
		case openapi.LocationBody:
			bodyFields[name] = val
		}
	}

	var body []byte
	contentType := ""
	if len(bodyFields) > 0 {
		contentType = desc.ContentType
		if contentType == "" {
			contentType = "application/json"
		}
		body, err = json.Marshal(bodyFields)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	logger.Debug().Str("tool", desc.Name).Str("method", desc.Method).Str("path", path).Msg("invoking tool")

	resp, err := inv.transport.Do(ctx, desc.Method, path, query, header, body, contentType)
	if err != nil {
		return nil, err
	}

	if !desc.Success(resp.Status) {
		return nil, &RemoteError{Status: resp.Status, Body: resp.Body}
	}

	result := &Result{
		Status:      resp.Status,
		ContentType: resp.ContentType,
		Body:        resp.Body,
	}

	if !isJSON(resp.ContentType, desc.ResponseTypes[resp.Status]) {
		// Declared non-JSON content (e.g. photo bytes) is returned raw.
		return result, nil
	}

	if len(resp.Body) > 0 {
		if err := json.Unmarshal(resp.Body, &result.Value); err != nil {
			return nil, &DecodeError{RawBody: resp.Body, Err: err}
		}
	}

	return result, nil
}

// validate checks required arguments and type compatibility, drops unknown
// arguments, and fills declared defaults for absent optional arguments.
func validate(desc *tools.Descriptor, args map[string]any) (map[string]any, error) {
	fields := map[string]string{}
	resolved := make(map[string]any, len(args))

	for _, name := range desc.ArgNames() {
		spec := desc.Args[name]
		val, present := args[name]
		if !present || val == nil {
			if spec.Required {
				fields[name] = "required argument missing"
			} else if spec.Default != nil {
				resolved[name] = spec.Default
			}
			continue
		}
		if !compatible(spec.Type, val) {
			fields[name] = fmt.Sprintf("expected %s, got %T", spec.Type, val)
			continue
		}
		resolved[name] = val
	}

	if len(fields) > 0 {
		return nil, &ValidationError{Tool: desc.Name, Fields: fields}
	}
	return resolved, nil
}

// compatible reports whether a decoded JSON value matches a declared type.
func compatible(declared string, val any) bool {
	switch declared {
	case "number", "integer":
		switch val.(type) {
		case float64, float32, int, int32, int64, json.Number:
			return true
		}
		return false
	case "boolean":
		_, ok := val.(bool)
		return ok
	case "array":
		_, ok := val.([]any)
		return ok
	case "object":
		_, ok := val.(map[string]any)
		return ok
	default:
		_, ok := val.(string)
		return ok
	}
}

// stringify renders an argument for path, query, or header placement.
// Arrays use comma separation, matching the Places API convention for
// multi-valued parameters such as fields.
func stringify(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = stringify(item)
		}
		return strings.Join(parts, ",")
	case float64:
		// Avoid 1e+06-style notation for integral values.
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%v", v)
	default:
		return fmt.Sprint(v)
	}
}

// isJSON reports whether the response should be decoded as JSON, using the
// actual content type when present and the declared one as fallback.
func isJSON(actual, declared string) bool {
	ct := actual
	if ct == "" {
		ct = declared
	}
	if ct == "" {
		return true
	}
	return strings.Contains(ct, "json")
}
