package openapi

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// Document is the loaded, immutable view of a specification document.
// Skipped holds the malformed path entries that were dropped; one bad
// entry never prevents the rest of the document from loading.
type Document struct {
	Title      string
	Version    string
	BaseURL    string // first declared server URL, if any
	Operations []Operation
	Skipped    []*MalformedSpecError
}

// Load parses an OpenAPI 3 document into a set of operations.
// It returns an error for unparseable documents and for global name
// collisions (DuplicateOperationError); per-entry problems are collected
// on Document.Skipped instead.
func Load(data []byte) (*Document, error) {
	var raw rawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse specification document: %w", err)
	}
	if len(raw.Paths) == 0 {
		return nil, fmt.Errorf("specification document declares no paths")
	}

	doc := &Document{
		Title:   raw.Info.Title,
		Version: raw.Info.Version,
	}
	if len(raw.Servers) > 0 {
		doc.BaseURL = raw.Servers[0].URL
	}

	// Sort paths so load order (and synthesized names) is deterministic.
	paths := make([]string, 0, len(raw.Paths))
	for p := range raw.Paths {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	seen := make(map[string]bool)
	for _, path := range paths {
		item := raw.Paths[path]
		for _, mo := range item.operations() {
			op, err := buildOperation(&raw, path, mo.method, mo.op, item.Parameters)
			if err != nil {
				doc.Skipped = append(doc.Skipped, err)
				continue
			}
			if seen[op.Name] {
				return nil, &DuplicateOperationError{Name: op.Name}
			}
			seen[op.Name] = true
			doc.Operations = append(doc.Operations, *op)
		}
	}

	return doc, nil
}

// buildOperation derives one Operation from a raw path entry.
func buildOperation(doc *rawDocument, path, method string, raw *rawOperation, inherited []rawParameter) (*Operation, *MalformedSpecError) {
	malformed := func(format string, args ...any) *MalformedSpecError {
		return &MalformedSpecError{Path: path, Method: method, Reason: fmt.Sprintf(format, args...)}
	}

	if len(raw.Responses) == 0 {
		return nil, malformed("no response schema declared")
	}

	name := raw.OperationID
	if name == "" {
		name = snakeName(method, path)
	}

	op := &Operation{
		Name:        name,
		Method:      method,
		Path:        path,
		Summary:     raw.Summary,
		Description: raw.Description,
	}

	// Path-level parameters apply to every operation on the path;
	// operation-level declarations with the same (name, in) override them.
	params := make([]Parameter, 0, len(inherited)+len(raw.Parameters))
	index := make(map[string]int)
	for _, rp := range append(append([]rawParameter{}, inherited...), raw.Parameters...) {
		resolved, ok := doc.resolveParameter(rp)
		if !ok {
			return nil, malformed("unresolvable parameter reference %q", rp.Ref)
		}
		if resolved.Name == "" {
			return nil, malformed("parameter with empty name")
		}
		p := Parameter{
			Name:        resolved.Name,
			Type:        schemaType(resolved.Schema),
			In:          paramLocation(resolved.In),
			Description: resolved.Description,
			Required:    resolved.Required,
		}
		if resolved.Schema != nil {
			p.Default = resolved.Schema.Default
		}
		key := resolved.Name + "\x00" + resolved.In
		if i, dup := index[key]; dup {
			params[i] = p
			continue
		}
		index[key] = len(params)
		params = append(params, p)
	}
	op.Parameters = params

	// Every path placeholder needs exactly one corresponding path parameter.
	for _, ph := range placeholders(path) {
		if !hasPathParam(params, ph) {
			return nil, malformed("path placeholder {%s} has no matching parameter declaration", ph)
		}
	}
	for _, p := range params {
		if p.In == LocationPath && !containsString(placeholders(path), p.Name) {
			return nil, malformed("path parameter %q has no placeholder in template", p.Name)
		}
	}

	if raw.RequestBody != nil {
		body, err := buildRequestBody(doc, raw.RequestBody)
		if err != "" {
			return nil, malformed("%s", err)
		}
		op.Body = body
	}

	statuses := make([]string, 0, len(raw.Responses))
	for status := range raw.Responses {
		statuses = append(statuses, status)
	}
	sort.Strings(statuses)
	for _, status := range statuses {
		resolved, ok := doc.resolveResponse(raw.Responses[status])
		if !ok {
			return nil, malformed("unresolvable response reference for status %s", status)
		}
		resp := Response{Status: status}
		for contentType, media := range resolved.Content {
			resp.ContentType = contentType
			if s, ok := doc.resolveSchema(media.Schema); ok {
				resp.SchemaType = s.Type
			}
			break
		}
		op.Responses = append(op.Responses, resp)
	}

	return op, nil
}

// buildRequestBody extracts body fields from the declared JSON content
// schema. Non-object body schemas carry no named fields; the content type
// is still recorded so the invoker can set it.
func buildRequestBody(doc *rawDocument, raw *rawRequestBody) (*RequestBody, string) {
	contentType := "application/json"
	media, ok := raw.Content[contentType]
	if !ok {
		for ct, m := range raw.Content {
			contentType, media = ct, m
			break
		}
		if len(raw.Content) == 0 {
			return nil, "request body declares no content"
		}
	}

	body := &RequestBody{ContentType: contentType, Required: raw.Required}

	schema, ok := doc.resolveSchema(media.Schema)
	if !ok || schema == nil {
		return body, ""
	}

	required := make(map[string]bool, len(schema.Required))
	for _, r := range schema.Required {
		required[r] = true
	}

	names := make([]string, 0, len(schema.Properties))
	for n := range schema.Properties {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		prop, _ := doc.resolveSchema(schema.Properties[n])
		body.Fields = append(body.Fields, Parameter{
			Name:     n,
			Type:     schemaType(prop),
			In:       LocationBody,
			Required: required[n],
		})
	}

	return body, ""
}

// paramLocation maps an OpenAPI "in" value onto a Location. Cookie
// parameters are not supported and fall through to unspecified.
func paramLocation(in string) Location {
	switch in {
	case "path":
		return LocationPath
	case "query":
		return LocationQuery
	case "header":
		return LocationHeader
	case "body":
		return LocationBody
	}
	return LocationUnspecified
}

// schemaType returns the declared type of a schema, defaulting to string.
func schemaType(s *rawSchema) string {
	if s == nil || s.Type == "" {
		return "string"
	}
	return s.Type
}

// placeholders returns the {name} segments of a path template in order.
func placeholders(path string) []string {
	var out []string
	for {
		open := strings.IndexByte(path, '{')
		if open < 0 {
			return out
		}
		end := strings.IndexByte(path[open:], '}')
		if end < 0 {
			return out
		}
		out = append(out, path[open+1:open+end])
		path = path[open+end+1:]
	}
}

func hasPathParam(params []Parameter, name string) bool {
	for _, p := range params {
		if p.In == LocationPath && p.Name == name {
			return true
		}
	}
	return false
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// snakeName synthesizes an operation name from the method and path when the
// document omits operationId, e.g. GET /place/details -> get_place_details.
func snakeName(method, path string) string {
	var b strings.Builder
	b.WriteString(strings.ToLower(method))
	for _, r := range path {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
		case r == '{' || r == '}':
		default:
			b.WriteByte('_')
		}
	}
	out := b.String()
	for strings.Contains(out, "__") {
		out = strings.ReplaceAll(out, "__", "_")
	}
	return strings.Trim(out, "_")
}
