// Package openapi builds the service's OpenAPI 3.0 document by reflecting
// on the response types of registered endpoints.
package openapi

import (
	"encoding/json"
	"net/http"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

// =============================================================================
// Generator
// =============================================================================

// Generator produces an OpenAPI document from registered endpoints.
type Generator struct {
	title       string
	version     string
	description string
	servers     []string
	endpoints   []EndpointInfo
	mu          sync.RWMutex
	cachedSpec  *openapi3.T
}

// EndpointInfo describes one GET endpoint.
type EndpointInfo struct {
	Path        string
	OperationID string
	Summary     string
	Description string
	Tag         string
	Params      []ParamInfo
	// Responses maps a status code to its response.
	Responses map[int]ResponseInfo
}

// ParamInfo describes a query parameter.
type ParamInfo struct {
	Name        string
	Description string
	Type        string // "string" (default) or "integer"
	Default     any
	Enum        []any
	Required    bool
}

// ResponseInfo describes a response body. Model is a struct whose JSON
// fields become the schema, registered under Schema in the components.
type ResponseInfo struct {
	Description string
	Schema      string
	Model       any
}

// Option configures the generator.
type Option func(*Generator)

// WithTitle sets the API title.
func WithTitle(title string) Option {
	return func(g *Generator) {
		g.title = title
	}
}

// WithVersion sets the API version.
func WithVersion(version string) Option {
	return func(g *Generator) {
		g.version = version
	}
}

// WithDescription sets the API description.
func WithDescription(description string) Option {
	return func(g *Generator) {
		g.description = description
	}
}

// WithServer adds a server URL.
func WithServer(url string) Option {
	return func(g *Generator) {
		g.servers = append(g.servers, url)
	}
}

// NewGenerator creates a new OpenAPI generator.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		title:   "API",
		version: "0.0.1",
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// RegisterEndpoint adds an endpoint to the document.
func (g *Generator) RegisterEndpoint(info EndpointInfo) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.endpoints = append(g.endpoints, info)
	g.cachedSpec = nil
}

// Generate produces the OpenAPI document.
func (g *Generator) Generate() *openapi3.T {
	g.mu.RLock()
	if g.cachedSpec != nil {
		spec := g.cachedSpec
		g.mu.RUnlock()
		return spec
	}
	g.mu.RUnlock()

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.cachedSpec != nil {
		return g.cachedSpec
	}

	spec := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       g.title,
			Version:     g.version,
			Description: g.description,
		},
		Servers: make(openapi3.Servers, 0, len(g.servers)),
		Paths:   &openapi3.Paths{},
		Components: &openapi3.Components{
			Schemas: make(openapi3.Schemas),
		},
	}

	for _, url := range g.servers {
		spec.Servers = append(spec.Servers, &openapi3.Server{URL: url})
	}

	for _, ep := range g.endpoints {
		g.addEndpointToSpec(spec, ep)
	}

	g.cachedSpec = spec
	return spec
}

// Handler returns an HTTP handler that serves the document.
func (g *Generator) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		spec := g.Generate()

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(spec); err != nil {
			http.Error(w, "Failed to encode OpenAPI document", http.StatusInternalServerError)
		}
	}
}

// =============================================================================
// Paths
// =============================================================================

func (g *Generator) addEndpointToSpec(spec *openapi3.T, ep EndpointInfo) {
	op := &openapi3.Operation{
		OperationID: ep.OperationID,
		Summary:     ep.Summary,
		Description: ep.Description,
		Responses:   &openapi3.Responses{},
	}
	if ep.Tag != "" {
		op.Tags = []string{ep.Tag}
	}

	for _, p := range ep.Params {
		op.Parameters = append(op.Parameters, &openapi3.ParameterRef{Value: paramToSpec(p)})
	}

	codes := make([]int, 0, len(ep.Responses))
	for code := range ep.Responses {
		codes = append(codes, code)
	}
	sort.Ints(codes)

	for _, code := range codes {
		res := ep.Responses[code]
		resp := openapi3.NewResponse().WithDescription(res.Description)
		if res.Model != nil {
			name := res.Schema
			if name == "" {
				name = reflect.Indirect(reflect.ValueOf(res.Model)).Type().Name()
			}
			if _, ok := spec.Components.Schemas[name]; !ok {
				spec.Components.Schemas[name] = g.extractSchema(res.Model)
			}
			resp = resp.WithJSONSchemaRef(&openapi3.SchemaRef{Ref: "#/components/schemas/" + name})
		}
		op.Responses.Set(strconv.Itoa(code), &openapi3.ResponseRef{Value: resp})
	}

	item := spec.Paths.Value(ep.Path)
	if item == nil {
		item = &openapi3.PathItem{}
		spec.Paths.Set(ep.Path, item)
	}
	item.Get = op
}

func paramToSpec(p ParamInfo) *openapi3.Parameter {
	typ := p.Type
	if typ == "" {
		typ = "string"
	}
	return &openapi3.Parameter{
		Name:        p.Name,
		In:          "query",
		Description: p.Description,
		Required:    p.Required,
		Schema: &openapi3.SchemaRef{
			Value: &openapi3.Schema{
				Type:    &openapi3.Types{typ},
				Default: p.Default,
				Enum:    p.Enum,
			},
		},
	}
}

// =============================================================================
// Schema Generation
// =============================================================================

// extractSchema extracts an OpenAPI schema from a Go struct.
func (g *Generator) extractSchema(model any) *openapi3.SchemaRef {
	t := reflect.TypeOf(model)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	schema := &openapi3.Schema{
		Type:       &openapi3.Types{"object"},
		Properties: make(openapi3.Schemas),
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}

		name := field.Name
		omitempty := false
		if jsonTag != "" {
			parts := strings.Split(jsonTag, ",")
			if parts[0] != "" {
				name = parts[0]
			}
			for _, opt := range parts[1:] {
				if opt == "omitempty" {
					omitempty = true
				}
			}
		}

		propSchema := g.goTypeToSchema(field.Type)
		if desc := field.Tag.Get("doc"); desc != "" {
			propSchema.Value.Description = desc
		}
		schema.Properties[name] = propSchema
		if !omitempty {
			schema.Required = append(schema.Required, name)
		}
	}

	return &openapi3.SchemaRef{Value: schema}
}

// goTypeToSchema converts a field type of a document model to an OpenAPI
// schema. Models hold strings, ints, slices and nested structs; anything
// else gets an unconstrained schema.
func (g *Generator) goTypeToSchema(t reflect.Type) *openapi3.SchemaRef {
	switch t.Kind() {
	case reflect.String:
		return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"string"}}}

	case reflect.Int:
		return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"integer"}}}

	case reflect.Slice:
		return &openapi3.SchemaRef{
			Value: &openapi3.Schema{
				Type:  &openapi3.Types{"array"},
				Items: g.goTypeToSchema(t.Elem()),
			},
		}

	case reflect.Struct:
		return g.extractSchema(reflect.New(t).Interface())

	default:
		return &openapi3.SchemaRef{Value: &openapi3.Schema{}}
	}
}
