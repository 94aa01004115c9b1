// Package registry implements the Component Registry (§3 DATA MODEL,
// COMPONENT DESIGN): it resolves `$ref` into the five shared namespaces and
// detects the reference cycles the Schema Translator must break.
package registry

import (
	"fmt"
	"strings"

	"github.com/amer8/apigen/pkg/codegen/diag"
	"github.com/amer8/apigen/pkg/model"
)

// Registry owns the resolved OpenAPI AST for the duration of one generation
// run (§5 "the registry, read-only"). It never mutates the API it was built
// from.
type Registry struct {
	api *model.API

	schemaOrder []string
	backEdges   map[edge]bool
}

type edge struct{ from, to string }

// New builds a Registry over api, computing the schema-reference graph and
// its back-edges up front: a depth-first walk (cycles.go) marks each edge
// that closes a cycle, without computing strongly connected components.
func New(api *model.API) *Registry {
	r := &Registry{
		api:         api,
		schemaOrder: api.Components.OrderedSchemaNames(),
	}
	r.backEdges = detectBackEdges(api.Components.Schemas, r.schemaOrder)
	return r
}

// API returns the underlying document, for translators that need to walk
// paths/operations directly.
func (r *Registry) API() *model.API { return r.api }

// SchemaOrder returns component schema names in deterministic document
// order.
func (r *Registry) SchemaOrder() []string { return r.schemaOrder }

const (
	prefixSchemas       = "#/components/schemas/"
	prefixParameters    = "#/components/parameters/"
	prefixHeaders       = "#/components/headers/"
	prefixResponses     = "#/components/responses/"
	prefixRequestBodies = "#/components/requestBodies/"
)

// ComponentName extracts the local name from a `$ref` under any of the five
// namespaces, returning ok=false for anything else (external refs, malformed
// pointers).
func ComponentName(ref string) (namespace, name string, ok bool) {
	switch {
	case strings.HasPrefix(ref, prefixSchemas):
		return "schemas", strings.TrimPrefix(ref, prefixSchemas), true
	case strings.HasPrefix(ref, prefixParameters):
		return "parameters", strings.TrimPrefix(ref, prefixParameters), true
	case strings.HasPrefix(ref, prefixHeaders):
		return "headers", strings.TrimPrefix(ref, prefixHeaders), true
	case strings.HasPrefix(ref, prefixResponses):
		return "responses", strings.TrimPrefix(ref, prefixResponses), true
	case strings.HasPrefix(ref, prefixRequestBodies):
		return "requestBodies", strings.TrimPrefix(ref, prefixRequestBodies), true
	default:
		return "", "", false
	}
}

// ResolveSchema resolves a `$ref` to a component schema.
func (r *Registry) ResolveSchema(ref string) (*model.Schema, string, bool) {
	ns, name, ok := ComponentName(ref)
	if !ok || ns != "schemas" {
		return nil, "", false
	}
	s, found := r.api.Components.Schemas[name]
	return s, name, found
}

// ResolveParameter resolves a `$ref` to a component parameter.
func (r *Registry) ResolveParameter(ref string) (model.Parameter, string, bool) {
	ns, name, ok := ComponentName(ref)
	if !ok || ns != "parameters" {
		return model.Parameter{}, "", false
	}
	p, found := r.api.Components.Parameters[name]
	return p, name, found
}

// ResolveHeader resolves a `$ref` to a component header.
func (r *Registry) ResolveHeader(ref string) (model.Header, string, bool) {
	ns, name, ok := ComponentName(ref)
	if !ok || ns != "headers" {
		return model.Header{}, "", false
	}
	h, found := r.api.Components.Headers[name]
	return h, name, found
}

// ResolveResponse resolves a `$ref` to a component response.
func (r *Registry) ResolveResponse(ref string) (model.Response, string, bool) {
	ns, name, ok := ComponentName(ref)
	if !ok || ns != "responses" {
		return model.Response{}, "", false
	}
	resp, found := r.api.Components.Responses[name]
	return resp, name, found
}

// ResolveRequestBody resolves a `$ref` to a component request body.
func (r *Registry) ResolveRequestBody(ref string) (model.RequestBody, string, bool) {
	ns, name, ok := ComponentName(ref)
	if !ok || ns != "requestBodies" {
		return model.RequestBody{}, "", false
	}
	rb, found := r.api.Components.RequestBodies[name]
	return rb, name, found
}

// IsBackEdge reports whether the schema reference from component `from` to
// component `to` was selected as the cycle-breaking back-edge (§4.2). The
// Schema Translator marks the variant referencing `to` as heap-indirect
// when the enclosing declaration is a sum type.
func (r *Registry) IsBackEdge(from, to string) bool {
	return r.backEdges[edge{from, to}]
}

// IsBoxed reports whether component `name` is the target of any back-edge,
// meaning its own product-type declaration must store its fields behind
// boxed storage (§4.2: "when emitting the product type on that edge, wraps
// the product's fields behind a single indirect heap-allocated container").
func (r *Registry) IsBoxed(name string) bool {
	for e := range r.backEdges {
		if e.to == name {
			return true
		}
	}
	return false
}

// ValidateReferences walks every component schema and emits an
// unresolved-reference error (§7) for each `$ref` that doesn't resolve
// within the registry. It does not walk paths/operations — the Parameter
// and Operation Translators validate their own `$ref`s as they go, since
// those can point at any of the five namespaces.
func (r *Registry) ValidateReferences(sink diag.Sink) {
	for _, name := range r.schemaOrder {
		s := r.api.Components.Schemas[name]
		r.walkSchemaRefs(s, fmt.Sprintf("#/components/schemas/%s", name), sink)
	}
}

func (r *Registry) walkSchemaRefs(s *model.Schema, path string, sink diag.Sink) {
	if s == nil {
		return
	}
	if s.Ref != "" {
		if _, _, ok := r.ResolveSchema(s.Ref); !ok {
			sink.Emit(diag.Diagnostic{
				Severity: diag.Error,
				Path:     path,
				Message:  fmt.Sprintf("unresolved reference %q", s.Ref),
			})
		}
		return
	}
	for _, name := range sortedKeys(s.Properties) {
		r.walkSchemaRefs(s.Properties[name], path+"/properties/"+name, sink)
	}
	if s.Items != nil {
		r.walkSchemaRefs(s.Items, path+"/items", sink)
	}
	for i, child := range s.AllOf {
		r.walkSchemaRefs(child, fmt.Sprintf("%s/allOf/%d", path, i), sink)
	}
	for i, child := range s.AnyOf {
		r.walkSchemaRefs(child, fmt.Sprintf("%s/anyOf/%d", path, i), sink)
	}
	for i, child := range s.OneOf {
		r.walkSchemaRefs(child, fmt.Sprintf("%s/oneOf/%d", path, i), sink)
	}
	if schema, ok := s.AdditionalProperties.(*model.Schema); ok {
		r.walkSchemaRefs(schema, path+"/additionalProperties", sink)
	}
}
