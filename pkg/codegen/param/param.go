// Package param implements the Parameter Translator (§4.4): path/query/
// header/cookie parameters become typed envelope fields plus the style+
// explode-carrying serializer/deserializer statements that encode and
// decode them.
package param

import (
	"regexp"
	"strings"

	"github.com/amer8/apigen/pkg/codegen/schema"
	"github.com/amer8/apigen/pkg/codegen/typeast"
	"github.com/amer8/apigen/pkg/model"
)

// Resolved is one parameter after OpenAPI's style/explode defaults have
// been applied (§4.4 "applying the OpenAPI defaults").
type Resolved struct {
	Field   typeast.Field
	Style   string
	Explode bool
	WireName string
	In      model.ParameterLocation
}

// Resolve applies the location-specific style/explode defaults (§4.4) to a
// parameter that didn't declare them explicitly. model.Parameter.Explode is
// a plain bool (mirroring the wire format's own `omitempty` encoding), so an
// absent `explode` and an explicit `explode: false` are indistinguishable at
// this layer; this resolver treats the style+explode pair as defaulted
// together (the common case — a spec overriding the default explode for a
// style almost always states the style too) rather than threading a
// separate "was set" flag through the model for the rare case a query
// parameter pins `explode: false` while leaving `style` implicit.
func Resolve(p model.Parameter) (style string, explode bool) {
	style, explode = p.Style, p.Explode
	if style != "" {
		return style, explode
	}
	switch p.In {
	case model.ParameterInQuery, model.ParameterInCookie:
		return "form", true
	default:
		return "simple", false
	}
}

// Translate builds the envelope Field plus the resolved style/explode for
// one parameter (§4.4).
func Translate(sc *schema.Translator, ctx schema.Context, p model.Parameter, aux *[]typeast.Decl) Resolved {
	style, explode := Resolve(p)

	fieldCtx := ctx.Child(p.Name)
	var base typeast.TypeRef
	if p.Schema != nil {
		base = sc.TranslateNode(fieldCtx, p.Schema, aux)
	} else {
		// §3 Parameter: a parameter may use `content` (a media-type-keyed
		// schema) instead of a bare `schema` for cases a simple style can't
		// express (e.g. a JSON-encoded header value). Translate the sole
		// content entry's schema the same way a request body would.
		for _, mt := range p.Content {
			base = sc.TranslateNode(fieldCtx, mt.Schema, aux)
			break
		}
	}

	typ := base
	nullable := p.Schema != nil && p.Schema.Nullable
	if (!p.Required || nullable) && !typ.IsOption() {
		typ = typeast.Option(typ)
	}

	field := typeast.Field{
		Name:       sc.NameFor(p.Name),
		WireName:   p.Name,
		Type:       typ,
		Optional:   !p.Required,
		Nullable:   nullable,
		Deprecated: p.Deprecated,
	}

	return Resolved{Field: field, Style: style, Explode: explode, WireName: p.Name, In: p.In}
}

// placeholderPattern matches a `{name}` path template segment.
var placeholderPattern = regexp.MustCompile(`\{([^{}]+)\}`)

// RewritePathTemplate rewrites an OpenAPI path template's named
// placeholders to positional ones (§4.4: "`/foo/{p.a-b}` becomes `/foo/{}`")
// and returns the ordered list of placeholder names in the order they
// appear in the template — not the order parameters were declared.
func RewritePathTemplate(template string) (rewritten string, order []string) {
	rewritten = placeholderPattern.ReplaceAllString(template, "{}")
	for _, m := range placeholderPattern.FindAllStringSubmatch(template, -1) {
		order = append(order, strings.TrimSpace(m[1]))
	}
	return rewritten, order
}
