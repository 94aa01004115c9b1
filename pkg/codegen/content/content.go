// Package content implements the Content Translator (§4.3): classifying a
// media type into one of the closed, ordered variant labels and producing
// the matching body shape for a request or response content map.
package content

import (
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/amer8/apigen/pkg/codegen/diag"
	"github.com/amer8/apigen/pkg/codegen/mangle"
	"github.com/amer8/apigen/pkg/codegen/schema"
	"github.com/amer8/apigen/pkg/codegen/typeast"
	"github.com/amer8/apigen/pkg/model"
)

// Kind is one of the five canonical body representations (§4.3's table).
type Kind string

const (
	KindJSON           Kind = "json"
	KindURLEncodedForm Kind = "urlEncodedForm"
	KindMultipartForm  Kind = "multipartForm"
	KindPlainText      Kind = "plainText"
	KindBinary         Kind = "binary"
)

// mediaTypePattern splits a media type into type, subtype, and the raw
// parameter tail. A hand-rolled `regexp` pattern would need an awkward
// non-capturing alternation to make the `; params` tail optional while still
// tolerating quoted parameter values (`; foo="bar;baz"`); regexp2's .NET-style
// engine expresses that directly with named groups: the subtype group runs up
// to the first `;` or whitespace, and the optional params group takes the
// rest, so translators reach for it instead (see DESIGN.md).
var mediaTypePattern = regexp2.MustCompile(`^\s*(?<type>[^/;\s]+)/(?<subtype>[^;\s]+)\s*(?:;\s*(?<params>.*))?$`, regexp2.None)

// Classify parses a raw media type string into its type/subtype and ordered
// parameter list.
func Classify(mediaType string) (kind Kind, typ, subtype string, params []Param) {
	m, err := mediaTypePattern.FindStringMatch(mediaType)
	if err != nil || m == nil {
		return KindBinary, "", "", nil
	}
	typ = strings.ToLower(m.GroupByName("type").String())
	subtype = strings.ToLower(m.GroupByName("subtype").String())
	params = parseParams(m.GroupByName("params").String())

	switch {
	case typ == "application" && subtype == "json":
		kind = KindJSON
	case typ == "application" && subtype == "x-www-form-urlencoded":
		kind = KindURLEncodedForm
	case typ == "multipart" && subtype == "form-data":
		kind = KindMultipartForm
	case typ == "text":
		kind = KindPlainText
	default:
		kind = KindBinary
	}
	return kind, typ, subtype, params
}

// Param is one `; key=value` media-type parameter, in declaration order.
type Param struct {
	Key   string
	Value string
}

func parseParams(raw string) []Param {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var params []Param
	for _, part := range strings.Split(raw, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			continue
		}
		key := strings.TrimSpace(kv[0])
		val := strings.Trim(strings.TrimSpace(kv[1]), `"`)
		params = append(params, Param{Key: key, Value: val})
	}
	return params
}

// Label computes the variant label for a classified media type (§4.3):
// bare JSON/plainText/binary collapse to their canonical label; a
// parameterized media type (of any kind that carries distinguishing
// parameters) gets a mangled label built from its type/subtype/params so
// multiple declarations of the same base media type stay unique (§4.3 "when
// more than one JSON-parameterized entry exists"; extended per
// SPEC_FULL.md to every kind, not just JSON).
func Label(kind Kind, typ, subtype string, params []Param) string {
	if len(params) == 0 {
		return string(kind)
	}
	var b strings.Builder
	b.WriteString(typ)
	b.WriteString("_")
	b.WriteString(subtype)
	for _, p := range params {
		b.WriteString("_")
		b.WriteString(p.Key)
		b.WriteString("_")
		b.WriteString(p.Value)
	}
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, b.String())
	return mangle.Mangle(slug)
}

// Translate produces the Body sum for a content map (§4.3, §4.5): one
// variant per declared media type, in the order given by order, plus the
// multipart-part decomposition (§4.3.1) when the content map contains a
// multipart body. ctx names the enclosing operation/envelope for nested
// declaration naming. model content maps are Go maps and keep no
// declaration order; the Operation Translator passes the keys sorted
// lexically, so variants follow that order, not the document's.
func Translate(sc *schema.Translator, sink diag.Sink, ctx schema.Context, content map[string]model.MediaType, order []string, aux *[]typeast.Decl) *typeast.SumDecl {
	decl := &typeast.SumDecl{
		Name:     ctx.ComponentName + "Body",
		Access:   typeast.AccessPublic,
		Strategy: typeast.StrategyContentType,
	}
	for _, mt := range order {
		media, ok := content[mt]
		if !ok {
			continue
		}
		kind, typ, subtype, params := Classify(mt)
		label := Label(kind, typ, subtype, params)

		variant := typeast.Variant{Name: label, MediaType: mt}
		switch kind {
		case KindMultipartForm:
			payload := translateMultipart(sc, sink, ctx.Child(label), media, aux)
			variant.Payload = &payload
		case KindPlainText, KindBinary:
			payload := typeast.Prim(typeast.PrimByteBlob)
			variant.Payload = &payload
		default:
			payload := bodyPayloadType(sc, ctx.Child(label), media, aux)
			variant.Payload = &payload
		}
		decl.Variants = append(decl.Variants, variant)
	}
	return decl
}

// bodyPayloadType translates the schema backing a (non-multipart) media
// type entry to its Type-AST representation. JSON bodies decode/encode the
// schema directly; plain-text and binary bodies are opaque byte streams
// regardless of their declared schema (§4.3's table); url-encoded forms
// decode the schema as a struct payload.
func bodyPayloadType(sc *schema.Translator, ctx schema.Context, media model.MediaType, aux *[]typeast.Decl) typeast.TypeRef {
	if media.Schema == nil {
		return typeast.Prim(typeast.PrimAnyValue)
	}
	return sc.TranslateNode(ctx.Child("body"), media.Schema, aux)
}

