package openapi

// Raw wire model for an OpenAPI 3 document. Only the subset needed to derive
// operations is decoded; everything else in the document is ignored.

type rawDocument struct {
	OpenAPI    string                 `json:"openapi"`
	Info       rawInfo                `json:"info"`
	Servers    []rawServer            `json:"servers"`
	Paths      map[string]rawPathItem `json:"paths"`
	Components *rawComponents         `json:"components"`
}

type rawInfo struct {
	Title   string `json:"title"`
	Version string `json:"version"`
}

type rawServer struct {
	URL string `json:"url"`
}

type rawPathItem struct {
	Parameters []rawParameter `json:"parameters"`
	Get        *rawOperation  `json:"get"`
	Put        *rawOperation  `json:"put"`
	Post       *rawOperation  `json:"post"`
	Delete     *rawOperation  `json:"delete"`
	Options    *rawOperation  `json:"options"`
	Head       *rawOperation  `json:"head"`
	Patch      *rawOperation  `json:"patch"`
}

// operations returns the declared operations keyed by uppercase method,
// in a fixed method order for deterministic loading.
func (p rawPathItem) operations() []methodOperation {
	candidates := []methodOperation{
		{"GET", p.Get},
		{"PUT", p.Put},
		{"POST", p.Post},
		{"DELETE", p.Delete},
		{"OPTIONS", p.Options},
		{"HEAD", p.Head},
		{"PATCH", p.Patch},
	}
	var out []methodOperation
	for _, c := range candidates {
		if c.op != nil {
			out = append(out, c)
		}
	}
	return out
}

type methodOperation struct {
	method string
	op     *rawOperation
}

type rawOperation struct {
	OperationID string                 `json:"operationId"`
	Summary     string                 `json:"summary"`
	Description string                 `json:"description"`
	Parameters  []rawParameter         `json:"parameters"`
	RequestBody *rawRequestBody        `json:"requestBody"`
	Responses   map[string]rawResponse `json:"responses"`
}

type rawParameter struct {
	Ref         string     `json:"$ref"`
	Name        string     `json:"name"`
	In          string     `json:"in"`
	Description string     `json:"description"`
	Required    bool       `json:"required"`
	Schema      *rawSchema `json:"schema"`
}

type rawSchema struct {
	Ref        string                `json:"$ref"`
	Type       string                `json:"type"`
	Default    any                   `json:"default"`
	Required   []string              `json:"required"`
	Properties map[string]*rawSchema `json:"properties"`
	Items      *rawSchema            `json:"items"`
}

type rawRequestBody struct {
	Required bool                `json:"required"`
	Content  map[string]rawMedia `json:"content"`
}

type rawMedia struct {
	Schema *rawSchema `json:"schema"`
}

type rawResponse struct {
	Ref         string              `json:"$ref"`
	Description string              `json:"description"`
	Content     map[string]rawMedia `json:"content"`
}

type rawComponents struct {
	Parameters map[string]rawParameter `json:"parameters"`
	Schemas    map[string]*rawSchema   `json:"schemas"`
	Responses  map[string]rawResponse  `json:"responses"`
}

// maxRefDepth bounds chained $ref resolution to reject reference cycles.
const maxRefDepth = 8

// resolveParameter follows local #/components/parameters refs.
func (d *rawDocument) resolveParameter(p rawParameter) (rawParameter, bool) {
	for depth := 0; p.Ref != ""; depth++ {
		if depth >= maxRefDepth || d.Components == nil {
			return p, false
		}
		name, ok := localRef(p.Ref, "#/components/parameters/")
		if !ok {
			return p, false
		}
		target, ok := d.Components.Parameters[name]
		if !ok {
			return p, false
		}
		p = target
	}
	if p.Schema != nil {
		if s, ok := d.resolveSchema(p.Schema); ok {
			p.Schema = s
		}
	}
	return p, true
}

// resolveSchema follows local #/components/schemas refs.
func (d *rawDocument) resolveSchema(s *rawSchema) (*rawSchema, bool) {
	for depth := 0; s != nil && s.Ref != ""; depth++ {
		if depth >= maxRefDepth || d.Components == nil {
			return s, false
		}
		name, ok := localRef(s.Ref, "#/components/schemas/")
		if !ok {
			return s, false
		}
		target, ok := d.Components.Schemas[name]
		if !ok {
			return s, false
		}
		s = target
	}
	return s, s != nil
}

// resolveResponse follows local #/components/responses refs.
func (d *rawDocument) resolveResponse(r rawResponse) (rawResponse, bool) {
	for depth := 0; r.Ref != ""; depth++ {
		if depth >= maxRefDepth || d.Components == nil {
			return r, false
		}
		name, ok := localRef(r.Ref, "#/components/responses/")
		if !ok {
			return r, false
		}
		target, ok := d.Components.Responses[name]
		if !ok {
			return r, false
		}
		r = target
	}
	return r, true
}

// localRef extracts the component name from a local $ref with the given
// prefix. External refs are not supported.
func localRef(ref, prefix string) (string, bool) {
	if len(ref) <= len(prefix) || ref[:len(prefix)] != prefix {
		return "", false
	}
	return ref[len(prefix):], true
}
