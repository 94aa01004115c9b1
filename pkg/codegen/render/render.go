// Package render is a minimal reference renderer for the Type AST
// (pkg/codegen/typeast). It emits Go-flavored pseudo source, purely as a
// smoke-test aid for asserting human-readable snapshots of a Program — it
// is not a target-language compiler and carries no semantic weight (see
// spec.md §1: pretty-printing is out of scope of the translation pipeline
// itself).
package render

import (
	"fmt"
	"strings"

	"github.com/amer8/apigen/pkg/codegen/typeast"
)

// Program renders every declaration in p, namespace by namespace, as
// Go-flavored pseudo source.
func Program(p *typeast.Program) string {
	var b strings.Builder
	for _, ns := range []typeast.Namespace{
		typeast.NamespaceSchemas, typeast.NamespaceParameters, typeast.NamespaceHeaders,
		typeast.NamespaceResponses, typeast.NamespaceRequestBodies, typeast.NamespaceOperations,
	} {
		decls := p.Namespaces[ns]
		if len(decls) == 0 {
			continue
		}
		fmt.Fprintf(&b, "// --- %s ---\n", ns)
		for _, d := range decls {
			b.WriteString(Decl(d))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Decl renders one declaration.
func Decl(d typeast.Decl) string {
	switch v := d.(type) {
	case *typeast.StructDecl:
		return renderStruct(v)
	case *typeast.SumDecl:
		return renderSum(v)
	case *typeast.EnumDecl:
		return renderEnum(v)
	case *typeast.AliasDecl:
		return renderAlias(v)
	default:
		return fmt.Sprintf("// unknown decl %T\n", d)
	}
}

func renderStruct(s *typeast.StructDecl) string {
	var b strings.Builder
	if s.Boxed {
		fmt.Fprintf(&b, "type %s struct { // boxed\n", s.Name)
	} else {
		fmt.Fprintf(&b, "type %s struct {\n", s.Name)
	}
	for _, f := range s.Fields {
		fmt.Fprintf(&b, "\t%s %s", f.Name, TypeRef(f.Type))
		if f.Optional {
			b.WriteString(" // optional")
		}
		b.WriteString("\n")
	}
	if s.AdditionalProperties != nil {
		fmt.Fprintf(&b, "\t%s %s // additionalProperties\n", s.AdditionalProperties.Name, TypeRef(s.AdditionalProperties.Type))
	}
	if s.ClosedNoUnknownKeys {
		b.WriteString("\t// closed: no unknown keys\n")
	}
	b.WriteString("}\n")
	return b.String()
}

func renderSum(s *typeast.SumDecl) string {
	var b strings.Builder
	fmt.Fprintf(&b, "type %s sum { // strategy=%s\n", s.Name, s.Strategy)
	for _, v := range s.Variants {
		payload := "()"
		if v.Payload != nil {
			payload = TypeRef(*v.Payload)
		}
		fmt.Fprintf(&b, "\t%s%s", v.Name, payload)
		switch {
		case v.StatusCode != "":
			fmt.Fprintf(&b, " // status=%s", v.StatusCode)
		case v.MediaType != "":
			fmt.Fprintf(&b, " // media=%s", v.MediaType)
		case v.DiscriminatorValue != "":
			fmt.Fprintf(&b, " // discriminator=%s", v.DiscriminatorValue)
		}
		if v.Indirect {
			b.WriteString(" // indirect")
		}
		if v.Undocumented {
			b.WriteString(" // undocumented")
		}
		b.WriteString("\n")
	}
	b.WriteString("}\n")
	return b.String()
}

func renderEnum(e *typeast.EnumDecl) string {
	var b strings.Builder
	fmt.Fprintf(&b, "type %s enum(%s) {\n", e.Name, e.Base)
	for _, m := range e.Members {
		fmt.Fprintf(&b, "\t%s = %q\n", m.Name, m.Literal)
	}
	b.WriteString("}\n")
	return b.String()
}

func renderAlias(a *typeast.AliasDecl) string {
	return fmt.Sprintf("type %s = %s\n", a.Name, TypeRef(a.Target))
}

// TypeRef renders a TypeRef as a Go-flavored type expression.
func TypeRef(t typeast.TypeRef) string {
	switch t.Kind {
	case typeast.RefPrimitive:
		return string(t.Primitive)
	case typeast.RefNamed:
		return t.Name
	case typeast.RefOption:
		return "Option<" + TypeRef(*t.Elem) + ">"
	case typeast.RefArray:
		return "[]" + TypeRef(*t.Elem)
	case typeast.RefMap:
		return "map[" + TypeRef(*t.Key) + "]" + TypeRef(*t.Value)
	case typeast.RefBox:
		return "Box<" + TypeRef(*t.Elem) + ">"
	default:
		return "any"
	}
}
