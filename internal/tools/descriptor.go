// Package tools compiles loaded operations into callable tool descriptors
// and maintains the read-only registry the server exposes.
package tools

import (
	"sort"
	"strconv"
	"strings"

	"github.com/brukhabtu/places-mcp/internal/openapi"
)

// ArgSpec describes one input argument of a tool.
type ArgSpec struct {
	Type        string // string, number, boolean, array, object
	Description string
	Required    bool
	Default     any
	In          openapi.Location
}

// Descriptor is the externally invocable unit derived from an Operation.
// Immutable once built; safe for concurrent use.
type Descriptor struct {
	Name        string
	Description string
	Method      string
	Path        string
	ContentType string // body content type, empty when the operation has no body
	Args        map[string]ArgSpec
	// SuccessCodes are the status codes the document declares as success.
	// Empty means any 2xx is accepted.
	SuccessCodes []int
	// ResponseTypes maps declared status codes to their content types.
	ResponseTypes map[int]string
}

// ArgNames returns the argument names in sorted order.
func (d *Descriptor) ArgNames() []string {
	names := make([]string, 0, len(d.Args))
	for n := range d.Args {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Success reports whether the given status code counts as a success for
// this tool.
func (d *Descriptor) Success(status int) bool {
	if len(d.SuccessCodes) == 0 {
		return status >= 200 && status < 300
	}
	for _, c := range d.SuccessCodes {
		if c == status {
			return true
		}
	}
	return false
}

// Compile derives a tool descriptor from an operation. It is a pure
// function: the same operation always yields an identical descriptor.
//
// Parameters without an explicit placement default to query for read
// methods (GET, HEAD, DELETE, OPTIONS) and body for write methods (POST,
// PUT, PATCH). An explicit placement in the document always wins.
func Compile(op openapi.Operation) (*Descriptor, error) {
	d := &Descriptor{
		Name:          op.Name,
		Description:   description(op),
		Method:        op.Method,
		Path:          op.Path,
		Args:          make(map[string]ArgSpec),
		ResponseTypes: make(map[int]string),
	}

	for _, p := range op.Parameters {
		in := p.In
		if in == openapi.LocationUnspecified {
			in = defaultPlacement(op.Method)
		}
		if err := addArg(d, op.Name, p, in); err != nil {
			return nil, err
		}
	}

	if op.Body != nil {
		d.ContentType = op.Body.ContentType
		for _, f := range op.Body.Fields {
			if err := addArg(d, op.Name, f, openapi.LocationBody); err != nil {
				return nil, err
			}
		}
	}

	for _, r := range op.Responses {
		code, err := strconv.Atoi(r.Status)
		if err != nil {
			// "default" and range patterns don't name a success code.
			continue
		}
		d.ResponseTypes[code] = r.ContentType
		if code >= 200 && code < 300 {
			d.SuccessCodes = append(d.SuccessCodes, code)
		}
	}
	sort.Ints(d.SuccessCodes)

	return d, nil
}

// addArg inserts one argument, rejecting two declarations of the same name
// with different placements.
func addArg(d *Descriptor, opName string, p openapi.Parameter, in openapi.Location) error {
	if existing, ok := d.Args[p.Name]; ok {
		if existing.In != in {
			return &ParameterConflictError{Operation: opName, Param: p.Name}
		}
	}
	d.Args[p.Name] = ArgSpec{
		Type:        p.Type,
		Description: p.Description,
		Required:    p.Required,
		Default:     p.Default,
		In:          in,
	}
	return nil
}

// defaultPlacement picks the placement for parameters the document leaves
// unplaced: query for read operations, body for write operations.
func defaultPlacement(method string) openapi.Location {
	switch strings.ToUpper(method) {
	case "POST", "PUT", "PATCH":
		return openapi.LocationBody
	}
	return openapi.LocationQuery
}

func description(op openapi.Operation) string {
	if op.Description != "" {
		return op.Description
	}
	return op.Summary
}
