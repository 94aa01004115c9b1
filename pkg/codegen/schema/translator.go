// Package schema implements the Schema Translator (§4.2): it turns any
// resolved OpenAPI schema node into a Type-AST declaration, following the
// translation table, nullability-propagation, and recursion-breaking rules
// of the specification.
package schema

import (
	"fmt"

	"github.com/amer8/apigen/pkg/codegen/diag"
	"github.com/amer8/apigen/pkg/codegen/mangle"
	"github.com/amer8/apigen/pkg/codegen/registry"
	"github.com/amer8/apigen/pkg/codegen/typeast"
	"github.com/amer8/apigen/pkg/model"
)

// Context carries the naming/diagnostic state threaded through one schema
// node's translation: the enclosing component name and the chain of
// property/child segments walked to reach this node (§4.2 "a path of
// enclosing property names used to synthesize nested type names").
type Context struct {
	ComponentName string
	Path          []string
	JSONPath      string
}

func (c Context) child(segment, jsonSeg string) Context {
	path := make([]string, len(c.Path), len(c.Path)+1)
	copy(path, c.Path)
	path = append(path, segment)
	return Context{ComponentName: c.ComponentName, Path: path, JSONPath: c.JSONPath + jsonSeg}
}

// Child is the exported form of child, for other translator packages
// (content, param, operation) that walk into a schema node from their own
// envelope context.
func (c Context) Child(segment string) Context {
	return c.child(segment, "/"+segment)
}

// NewContext starts a fresh translation context rooted at componentName
// (typically an operation or envelope name), for translator packages other
// than schema that need to name nested declarations consistently.
func NewContext(componentName, jsonPath string) Context {
	return Context{ComponentName: componentName, JSONPath: jsonPath}
}

// syntheticName derives the name for a nested declaration (inline object,
// inline enum, inline composition) from the path walked to reach it. With an
// empty path the node IS the top-level component itself. Note this is a
// straight concatenation, not a case transform: "foo" yields "fooPayload"
// while an already-capitalized "Foo" yields "FooPayload" and a synthetic
// positional segment "Value1" yields "Value1Payload" (§4.2's own examples).
func (c Context) syntheticName() string {
	if len(c.Path) == 0 {
		return c.ComponentName
	}
	return mangle.Mangle(c.Path[len(c.Path)-1]) + "Payload"
}

// Translator implements the Schema Translator. It owns the Schemas
// namespace: every top-level component and every nested declaration
// synthesized along the way claims its name here, so the whole namespace is
// collision-free (§4.1's "last resort" numeric suffixing covers any leftover
// clash after naming rules like discriminator mapping have had their say).
type Translator struct {
	reg     *registry.Registry
	sink    diag.Sink
	ns      *mangle.Namespace
	mangler *mangle.Mangler
	opts    Options

	// names maps an original component schema key to its claimed identifier,
	// computed once up front so `$ref` resolution is stable regardless of
	// translation order (forward references included).
	names map[string]string
}

// NewTranslator builds a Translator over reg, pre-claiming identifiers for
// every component schema in document order.
func NewTranslator(reg *registry.Registry, sink diag.Sink, mangler *mangle.Mangler, opts Options) *Translator {
	if mangler == nil {
		mangler = mangle.Default
	}
	ns := mangle.NewNamespace(mangler)
	names := make(map[string]string, len(reg.SchemaOrder()))
	for _, name := range reg.SchemaOrder() {
		names[name] = ns.Claim(name)
	}
	return &Translator{reg: reg, sink: sink, ns: ns, mangler: mangler, opts: opts, names: names}
}

// NameFor returns the claimed identifier for a component schema's original
// key, falling back to a fresh mangle for names outside the pre-claimed set
// (defensive; every valid `$ref` target is pre-claimed).
func (t *Translator) NameFor(localName string) string {
	if n, ok := t.names[localName]; ok {
		return n
	}
	return t.mangler.Mangle(localName)
}

// TranslateAll translates every component schema in document order,
// returning the full Schemas-namespace declaration list (§3 invariant 2:
// deterministic given the same input, since SchemaOrder and every naming
// rule below are deterministic).
func (t *Translator) TranslateAll() []typeast.Decl {
	var decls []typeast.Decl
	for _, name := range t.reg.SchemaOrder() {
		s := t.reg.API().Components.Schemas[name]
		decls = append(decls, t.TranslateComponent(name, s)...)
	}
	return decls
}

// TranslateComponent translates one top-level component schema, returning
// its declaration followed by any auxiliary nested declarations it needed.
func (t *Translator) TranslateComponent(name string, s *model.Schema) []typeast.Decl {
	ctx := Context{ComponentName: t.NameFor(name), JSONPath: "#/components/schemas/" + name}
	var aux []typeast.Decl
	decl := t.translateNamed(ctx, ctx.ComponentName, s, &aux)
	return append([]typeast.Decl{decl}, aux...)
}

// translateNamed builds the declaration for a schema that IS a named
// top-level or nested declaration (as opposed to an inline reference used
// directly as a field's TypeRef). declName is the identifier already
// claimed for this node.
func (t *Translator) translateNamed(ctx Context, declName string, s *model.Schema, aux *[]typeast.Decl) typeast.Decl {
	switch {
	case s == nil:
		return &typeast.AliasDecl{Name: declName, Target: typeast.Prim(typeast.PrimAnyValue), Access: typeast.AccessPublic}
	case s.Ref != "":
		target, localName, ok := t.reg.ResolveSchema(s.Ref)
		if !ok {
			t.sink.Emit(diag.Diagnostic{Severity: diag.Error, Path: ctx.JSONPath, Message: fmt.Sprintf("unresolved reference %q", s.Ref)})
			return &typeast.AliasDecl{Name: declName, Target: typeast.Prim(typeast.PrimAnyValue), Access: typeast.AccessPublic}
		}
		_ = target
		return &typeast.AliasDecl{Name: declName, Target: typeast.Named(t.NameFor(localName)), Access: typeast.AccessPublic}
	case len(s.Enum) > 0:
		return t.buildEnum(ctx, declName, s)
	case len(s.AllOf) > 0:
		return t.buildAllOf(ctx, declName, s, aux)
	case len(s.AnyOf) > 0:
		return t.buildAnyOf(ctx, declName, s, aux)
	case len(s.OneOf) > 0:
		return t.buildOneOf(ctx, declName, s, aux)
	case s.Type == model.TypeObject || (s.Type == "" && (len(s.Properties) > 0 || s.AdditionalProperties != nil)):
		return t.buildObject(ctx, declName, s, aux)
	case s.Type == model.TypeArray:
		elem := t.translateArrayElem(ctx, s, aux)
		return &typeast.AliasDecl{Name: declName, Target: typeast.Array(elem), Access: typeast.AccessPublic}
	default:
		return &typeast.AliasDecl{Name: declName, Target: t.primitiveRef(s), Access: typeast.AccessPublic}
	}
}

// TranslateNode translates an inline schema node used directly at a field,
// array-item, or composition-child site. It returns the base TypeRef for
// that node (nullability is the caller's concern — see §9 Open Question 1,
// "nullability is a property of the use site") and appends any nested
// declarations it had to synthesize to aux.
func (t *Translator) TranslateNode(ctx Context, s *model.Schema, aux *[]typeast.Decl) typeast.TypeRef {
	switch {
	case s == nil:
		return typeast.Prim(typeast.PrimAnyValue)
	case s.Ref != "":
		_, localName, ok := t.reg.ResolveSchema(s.Ref)
		if !ok {
			t.sink.Emit(diag.Diagnostic{Severity: diag.Error, Path: ctx.JSONPath, Message: fmt.Sprintf("unresolved reference %q", s.Ref)})
			return typeast.Prim(typeast.PrimAnyValue)
		}
		target := t.NameFor(localName)
		if t.reg.IsBackEdge(ctx.ComponentName, localName) {
			return typeast.Box(typeast.Named(target))
		}
		return typeast.Named(target)
	case len(s.Enum) > 0:
		name := t.ns.Claim(ctx.syntheticName())
		*aux = append(*aux, t.buildEnum(ctx, name, s))
		return typeast.Named(name)
	case len(s.AllOf) > 0:
		name := t.ns.Claim(ctx.syntheticName())
		*aux = append(*aux, t.buildAllOf(ctx, name, s, aux))
		return typeast.Named(name)
	case len(s.AnyOf) > 0:
		name := t.ns.Claim(ctx.syntheticName())
		*aux = append(*aux, t.buildAnyOf(ctx, name, s, aux))
		return typeast.Named(name)
	case len(s.OneOf) > 0:
		name := t.ns.Claim(ctx.syntheticName())
		*aux = append(*aux, t.buildOneOf(ctx, name, s, aux))
		return typeast.Named(name)
	case s.Type == model.TypeObject || (s.Type == "" && (len(s.Properties) > 0 || s.AdditionalProperties != nil)):
		name := t.ns.Claim(ctx.syntheticName())
		*aux = append(*aux, t.buildObject(ctx, name, s, aux))
		return typeast.Named(name)
	case s.Type == model.TypeArray:
		return typeast.Array(t.translateArrayElem(ctx, s, aux))
	default:
		return t.primitiveRef(s)
	}
}

// translateArrayElem translates an array schema's Items node, wrapping it in
// Option when the item schema is itself nullable (§4.2 "Array items: an
// item schema that is nullable becomes Option<T> inside the sequence").
func (t *Translator) translateArrayElem(ctx Context, s *model.Schema, aux *[]typeast.Decl) typeast.TypeRef {
	itemCtx := ctx.child("Value", "/items")
	elem := t.TranslateNode(itemCtx, s.Items, aux)
	if s.Items != nil && s.Items.Nullable && !elem.IsOption() {
		elem = typeast.Option(elem)
	}
	return elem
}

// primitiveRef maps a primitive schema (optionally carrying format /
// contentEncoding) to its bottom-out TypeRef per §4.2's translation table.
func (t *Translator) primitiveRef(s *model.Schema) typeast.TypeRef {
	if s == nil {
		return typeast.Prim(typeast.PrimAnyValue)
	}
	switch s.Type {
	case model.TypeString:
		switch {
		case s.Format == "date-time":
			return typeast.Prim(typeast.PrimDateTime)
		case s.Format == "binary":
			return typeast.Prim(typeast.PrimByteBlob)
		case s.Format == "byte" || s.ContentEncoding == "base64":
			if t.opts.EnableBase64 {
				return typeast.Prim(typeast.PrimBase64)
			}
			return typeast.Prim(typeast.PrimString)
		default:
			return typeast.Prim(typeast.PrimString)
		}
	case model.TypeInteger:
		if s.Format == "int64" {
			return typeast.Prim(typeast.PrimInt64)
		}
		return typeast.Prim(typeast.PrimInt)
	case model.TypeNumber:
		return typeast.Prim(typeast.PrimFloat64)
	case model.TypeBoolean:
		return typeast.Prim(typeast.PrimBool)
	default:
		// Empty fragment `{}`: no type, no properties, no composition, no
		// enum — the universal value container (§4.2 "`{}` (empty fragment)").
		return typeast.Prim(typeast.PrimAnyValue)
	}
}
