// Package operation implements the Operation Translator (§4.5): for every
// OpenAPI operation it assembles an Input/Output envelope pair plus the
// four serializer/deserializer blocks that move data between that envelope
// and the wire.
package operation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/amer8/apigen/pkg/codegen/diag"
	"github.com/amer8/apigen/pkg/codegen/mangle"
	"github.com/amer8/apigen/pkg/codegen/param"
	"github.com/amer8/apigen/pkg/codegen/registry"
	"github.com/amer8/apigen/pkg/codegen/schema"
	"github.com/amer8/apigen/pkg/codegen/typeast"
	"github.com/amer8/apigen/pkg/model"
)

// Translator implements the Operation Translator. It owns the Operations
// namespace identifiers, claimed from each operation's operationId (or a
// method+path fallback when one is absent).
type Translator struct {
	reg  *registry.Registry
	sc   *schema.Translator
	sink diag.Sink
	ns   *mangle.Namespace
}

// NewTranslator builds a Translator sharing the Schema Translator sc (so
// request/response bodies and parameter schemas reuse the same Schemas
// namespace and back-edge information).
func NewTranslator(reg *registry.Registry, sc *schema.Translator, sink diag.Sink, mangler *mangle.Mangler) *Translator {
	if mangler == nil {
		mangler = mangle.Default
	}
	return &Translator{reg: reg, sc: sc, sink: sink, ns: mangle.NewNamespace(mangler)}
}

// methodSlot pairs an HTTP method with its accessor on PathItem. Paths
// themselves have no declared order in the resolved model (model.API.Paths
// is a map), so TranslateAll walks them sorted lexically and, within one
// path, in this fixed method order — a deterministic substitute for
// "declaration order" where the source format doesn't preserve one (see
// DESIGN.md).
var methodSlots = []struct {
	name string
	get  func(*model.PathItem) *model.Operation
}{
	{"GET", func(p *model.PathItem) *model.Operation { return p.Get }},
	{"PUT", func(p *model.PathItem) *model.Operation { return p.Put }},
	{"POST", func(p *model.PathItem) *model.Operation { return p.Post }},
	{"DELETE", func(p *model.PathItem) *model.Operation { return p.Delete }},
	{"OPTIONS", func(p *model.PathItem) *model.Operation { return p.Options }},
	{"HEAD", func(p *model.PathItem) *model.Operation { return p.Head }},
	{"PATCH", func(p *model.PathItem) *model.Operation { return p.Patch }},
	{"TRACE", func(p *model.PathItem) *model.Operation { return p.Trace }},
}

// TranslateAll walks every path and method, returning the Operations
// namespace declarations (Input structs, Output sums, and any nested
// declarations they needed) alongside the ordered list of OperationDecls
// the Orchestrator assembles into client/server surfaces.
func (t *Translator) TranslateAll(api *model.API) ([]typeast.Decl, []*typeast.OperationDecl) {
	var decls []typeast.Decl
	var ops []*typeast.OperationDecl

	paths := make([]string, 0, len(api.Paths))
	for p := range api.Paths {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, pathPattern := range paths {
		item := api.Paths[pathPattern]
		for _, slot := range methodSlots {
			op := slot.get(&item)
			if op == nil {
				continue
			}
			var aux []typeast.Decl
			opDecl := t.translateOperation(pathPattern, slot.name, item, op, &aux)
			decls = append(decls, opDecl.Input, opDecl.Output)
			decls = append(decls, aux...)
			ops = append(ops, opDecl)
		}
	}
	return decls, ops
}

func (t *Translator) translateOperation(pathPattern, method string, item model.PathItem, op *model.Operation, aux *[]typeast.Decl) *typeast.OperationDecl {
	name := t.ns.Claim(operationName(op, method, pathPattern))
	ctx := schema.NewContext(name, fmt.Sprintf("#/paths/%s/%s", pathPattern, strings.ToLower(method)))

	if op.Deprecated {
		t.sink.Emit(diag.Diagnostic{Severity: diag.Note, Path: ctx.JSONPath, Message: "deprecated: " + name})
	}

	params := mergeParameters(item.Parameters, op.Parameters)
	grouped := map[model.ParameterLocation][]param.Resolved{}
	for _, p := range params {
		if p.Deprecated {
			t.sink.Emit(diag.Diagnostic{Severity: diag.Note, Path: ctx.JSONPath + "/parameters/" + p.Name, Message: "deprecated: " + p.Name})
		}
		r := param.Translate(t.sc, ctx.Child(string(p.In)), p, aux)
		grouped[p.In] = append(grouped[p.In], r)
	}

	rewrittenPath, placeholderOrder := param.RewritePathTemplate(pathPattern)

	input := t.buildInput(ctx, name, op, grouped, aux)
	output := t.buildOutput(ctx, name, op, aux)

	decl := &typeast.OperationDecl{
		Name:        name,
		Doc:         op.Description,
		Method:      method,
		PathPattern: rewrittenPath,
		Input:       input,
		Output:      output,
	}
	decl.ClientSerialize = clientSerializeBlock(grouped, placeholderOrder, input)
	decl.ServerDeserialize = serverDeserializeBlock(grouped, placeholderOrder, input)
	decl.ServerSerialize = serverSerializeBlock(output)
	decl.ClientDeserialize = clientDeserializeBlock(output)
	return decl
}

// operationName derives the Operations-namespace identifier: the
// operationId when present, else a method+path fallback (§3 doesn't name
// this explicitly, but every operation needs one; see DESIGN.md).
func operationName(op *model.Operation, method, pathPattern string) string {
	if op.OperationID != "" {
		return op.OperationID
	}
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, pathPattern)
	return strings.ToLower(method) + "_" + strings.Trim(slug, "_")
}

// mergeParameters combines path-item-level parameters with operation-level
// ones; an operation parameter with the same (name, in) pair overrides the
// path-item's, per the OpenAPI Path Item Object's own merge rule.
func mergeParameters(pathLevel, opLevel []model.Parameter) []model.Parameter {
	type key struct {
		name string
		in   model.ParameterLocation
	}
	seen := make(map[key]bool, len(opLevel))
	for _, p := range opLevel {
		seen[key{p.Name, p.In}] = true
	}
	merged := make([]model.Parameter, 0, len(pathLevel)+len(opLevel))
	for _, p := range pathLevel {
		if !seen[key{p.Name, p.In}] {
			merged = append(merged, p)
		}
	}
	merged = append(merged, opLevel...)
	return merged
}

// orderedContentKeys returns a content map's media-type keys in a
// deterministic order. model.MediaType maps carry no declaration order, so
// this falls back to a lexical sort (see DESIGN.md).
func orderedContentKeys(content map[string]model.MediaType) []string {
	keys := make([]string, 0, len(content))
	for k := range content {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func resolvedFieldsOf(group []param.Resolved) []typeast.Field {
	fields := make([]typeast.Field, len(group))
	for i, r := range group {
		fields[i] = r.Field
	}
	return fields
}
