package invoke

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError reports arguments that fail the tool's input schema.
// No request is sent when validation fails.
type ValidationError struct {
	Tool   string
	Fields map[string]string // field name -> reason
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, name := range sortedKeys(e.Fields) {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}
	return fmt.Sprintf("invalid arguments for %s (%s)", e.Tool, strings.Join(parts, "; "))
}

// PathSubstitutionError reports a path argument whose value would alter
// the path template's segment structure. No request is sent.
type PathSubstitutionError struct {
	Param string
	Value string
}

func (e *PathSubstitutionError) Error() string {
	return fmt.Sprintf("path parameter %q: value %q would alter the path segment count", e.Param, e.Value)
}

// RemoteError is a non-success HTTP status from the upstream API. The raw
// body is preserved for the caller; nothing is retried here.
type RemoteError struct {
	Status int
	Body   []byte
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote returned %d: %s", e.Status, string(e.Body))
}

// DecodeError reports a success response whose body does not parse against
// the declared schema. The raw body is still surfaced for diagnostics.
type DecodeError struct {
	RawBody []byte
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode response body: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
