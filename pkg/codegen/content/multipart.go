package content

import (
	"sort"

	"github.com/amer8/apigen/pkg/codegen/diag"
	"github.com/amer8/apigen/pkg/codegen/schema"
	"github.com/amer8/apigen/pkg/codegen/typeast"
	"github.com/amer8/apigen/pkg/model"
)

// translateMultipart translates a `multipart/form-data` media type entry
// (§4.3.1): every property of the object schema becomes a named part, and
// the unknown-part handling follows `additionalProperties`.
func translateMultipart(sc *schema.Translator, sink diag.Sink, ctx schema.Context, media model.MediaType, aux *[]typeast.Decl) typeast.TypeRef {
	name := ctx.ComponentName + "MultipartBody"
	decl := &typeast.SumDecl{Name: name, Access: typeast.AccessPublic, Strategy: typeast.StrategyMultipartPart}

	s := media.Schema
	if s == nil {
		*aux = append(*aux, decl)
		return typeast.Named(name)
	}

	required := make(map[string]bool, len(s.Required))
	for _, r := range s.Required {
		required[r] = true
	}

	for _, propName := range sortedSchemaKeys(s.Properties) {
		propSchema := s.Properties[propName]
		partCtx := ctx.Child(propName)

		isArray := propSchema != nil && propSchema.Type == model.TypeArray
		reqd := required[propName]

		var multiplicity typeast.Multiplicity
		switch {
		case reqd && !isArray:
			multiplicity = typeast.MultiplicityRequiredOnce
		case reqd && isArray:
			multiplicity = typeast.MultiplicityRequiredAtLeastOnce
		case !reqd && !isArray:
			multiplicity = typeast.MultiplicityAtMostOnce
		default:
			multiplicity = typeast.MultiplicityZeroOrMore
		}

		body := partBodyType(sc, partCtx, propSchema, aux)

		var headers *typeast.TypeRef
		if enc, ok := media.Encoding[propName]; ok && len(enc.Headers) > 0 {
			headerType := buildPartHeaders(sc, partCtx, enc, aux)
			headers = &headerType
		}

		decl.Variants = append(decl.Variants, typeast.Variant{
			Name:         sc.NameFor(propName),
			Payload:      &body,
			Multiplicity: multiplicity,
			Headers:      headers,
		})
	}

	switch ap := s.AdditionalProperties.(type) {
	case nil, bool:
		if allow, _ := ap.(bool); ap == nil || allow {
			decl.Variants = append(decl.Variants, typeast.Variant{
				Name:         "undocumented",
				Payload:      typeRefPtr(typeast.Prim(typeast.PrimAnyValue)),
				Undocumented: true,
			})
		}
	case *model.Schema:
		apCtx := ctx.Child("additionalProperties")
		body := partBodyType(sc, apCtx, ap, aux)
		decl.Variants = append(decl.Variants, typeast.Variant{
			Name:    "additionalProperties",
			Payload: &body,
		})
	}

	*aux = append(*aux, decl)
	return typeast.Named(name)
}

// partBodyType maps a part's schema to its body representation (§4.3.1):
// primitive strings are opaque byte streams (text/plain inferred), base64
// strings use the Base64 container (handled naturally by the Schema
// Translator), and objects decode as JSON. An array-typed part schema
// describes repetition (the multiplicity class), not the wire shape of one
// occurrence, so the element schema is what gets translated.
func partBodyType(sc *schema.Translator, ctx schema.Context, s *model.Schema, aux *[]typeast.Decl) typeast.TypeRef {
	effective := s
	if s != nil && s.Type == model.TypeArray {
		effective = s.Items
	}
	if effective != nil && effective.Type == model.TypeString && effective.Ref == "" &&
		effective.Format != "byte" && effective.ContentEncoding != "base64" {
		return typeast.Prim(typeast.PrimByteBlob)
	}
	return sc.TranslateNode(ctx, effective, aux)
}

func buildPartHeaders(sc *schema.Translator, ctx schema.Context, enc model.Encoding, aux *[]typeast.Decl) typeast.TypeRef {
	name := ctx.ComponentName + "Headers"
	decl := &typeast.StructDecl{Name: name, Access: typeast.AccessPublic}
	for _, headerName := range sortedHeaderKeys(enc.Headers) {
		h := enc.Headers[headerName]
		headerCtx := ctx.Child(headerName)
		base := sc.TranslateNode(headerCtx, h.Schema, aux)
		typ := base
		if !h.Required && !typ.IsOption() {
			typ = typeast.Option(typ)
		}
		decl.Fields = append(decl.Fields, typeast.Field{
			Name:     sc.NameFor(headerName),
			WireName: headerName,
			Type:     typ,
			Optional: !h.Required,
		})
	}
	*aux = append(*aux, decl)
	return typeast.Named(name)
}

func sortedHeaderKeys(m map[string]model.Header) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedSchemaKeys(m map[string]*model.Schema) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func typeRefPtr(t typeast.TypeRef) *typeast.TypeRef { return &t }
