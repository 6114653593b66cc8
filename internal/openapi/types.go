// Package openapi loads OpenAPI 3 documents into an in-memory operation
// model. The loader only parses the supplied bytes; fetching or caching the
// document is the caller's responsibility.
package openapi

// Location identifies where a parameter is serialized in an HTTP request.
type Location string

const (
	// LocationUnspecified means the document did not declare a placement.
	// The compiler picks a default based on the HTTP method.
	LocationUnspecified Location = ""
	LocationPath        Location = "path"
	LocationQuery       Location = "query"
	LocationHeader      Location = "header"
	LocationBody        Location = "body"
)

// Operation is one HTTP-method + path-template pair derived from the
// specification document. Immutable once built.
type Operation struct {
	Name        string
	Method      string // uppercase HTTP method
	Path        string // template with {placeholder} segments
	Summary     string
	Description string
	Parameters  []Parameter
	Body        *RequestBody
	Responses   []Response
}

// Parameter describes one declared input for an operation.
type Parameter struct {
	Name        string
	Type        string // string, number, boolean, array, object
	In          Location
	Description string
	Required    bool
	Default     any
}

// RequestBody describes the declared request body of a write operation.
type RequestBody struct {
	ContentType string
	Required    bool
	Fields      []Parameter
}

// Response maps one declared status code to its content type.
type Response struct {
	Status      string // "200", "403", "default"
	ContentType string
	SchemaType  string // declared top-level schema type, if any
}
