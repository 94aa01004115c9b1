package operation

import (
	"sort"
	"strconv"

	"github.com/amer8/apigen/pkg/codegen/content"
	"github.com/amer8/apigen/pkg/codegen/param"
	"github.com/amer8/apigen/pkg/codegen/schema"
	"github.com/amer8/apigen/pkg/codegen/typeast"
	"github.com/amer8/apigen/pkg/model"
)

// buildInput constructs the Input product (§4.5 step 1): one field per
// non-empty parameter group plus, when a request body is declared, a Body
// field. A group with no parameters is omitted entirely rather than emitted
// empty.
func (t *Translator) buildInput(ctx schema.Context, name string, op *model.Operation, grouped map[model.ParameterLocation][]param.Resolved, aux *[]typeast.Decl) *typeast.StructDecl {
	decl := &typeast.StructDecl{Name: name + "Input", Access: typeast.AccessPublic}

	groupField := func(loc model.ParameterLocation, fieldName, groupSuffix string) {
		group := grouped[loc]
		if len(group) == 0 {
			return
		}
		sub := &typeast.StructDecl{Name: name + groupSuffix, Access: typeast.AccessPublic, Fields: resolvedFieldsOf(group)}
		*aux = append(*aux, sub)
		decl.Fields = append(decl.Fields, typeast.Field{Name: fieldName, Type: typeast.Named(sub.Name)})
	}
	groupField(model.ParameterInPath, "path", "Path")
	groupField(model.ParameterInQuery, "query", "Query")
	groupField(model.ParameterInHeader, "headers", "Headers")
	groupField(model.ParameterInCookie, "cookies", "Cookies")

	if op.RequestBody != nil && len(op.RequestBody.Content) > 0 {
		bodyCtx := ctx.Child("requestBody")
		bodyDecl := content.Translate(t.sc, t.sink, bodyCtx, op.RequestBody.Content, orderedContentKeys(op.RequestBody.Content), aux)
		*aux = append(*aux, bodyDecl)
		typ := typeast.TypeRef(typeast.Named(bodyDecl.Name))
		if !op.RequestBody.Required {
			typ = typeast.Option(typ)
		}
		decl.Fields = append(decl.Fields, typeast.Field{Name: "body", Type: typ, Optional: !op.RequestBody.Required})
	}

	return decl
}

// buildOutput constructs the Output sum (§4.5 step 2): one variant per
// documented response status plus a trailing `undocumented(status,
// payload)` catch-all. Each variant carries the response's Headers and
// Body.
func (t *Translator) buildOutput(ctx schema.Context, name string, op *model.Operation, aux *[]typeast.Decl) *typeast.SumDecl {
	decl := &typeast.SumDecl{Name: name + "Output", Access: typeast.AccessPublic, Strategy: typeast.StrategyStatusCode}

	for _, status := range orderedStatusCodes(op.Responses) {
		resp := op.Responses[status]
		// A fresh root context per status, not ctx.Child(status): Child only
		// grows the nested-naming Path while keeping ComponentName fixed, which
		// would make every status's Body decl collide on "<name>Body".
		statusCtx := schema.NewContext(name+"_"+status, ctx.JSONPath+"/responses/"+status)

		variant := typeast.Variant{Name: statusVariantName(status), StatusCode: status}
		if len(resp.Content) > 0 {
			bodyDecl := content.Translate(t.sc, t.sink, statusCtx, resp.Content, orderedContentKeys(resp.Content), aux)
			*aux = append(*aux, bodyDecl)
			payload := typeast.Named(bodyDecl.Name)
			variant.Payload = &payload
		}
		if len(resp.Headers) > 0 {
			headers := buildResponseHeaders(t.sc, statusCtx, resp.Headers, aux)
			variant.Headers = &headers
		}
		decl.Variants = append(decl.Variants, variant)
	}

	decl.Variants = append(decl.Variants, typeast.Variant{
		Name:         "undocumented",
		Undocumented: true,
		Payload:      typeRefPtr(typeast.Prim(typeast.PrimAnyValue)),
	})
	return decl
}

func buildResponseHeaders(sc *schema.Translator, ctx schema.Context, headers map[string]model.Header, aux *[]typeast.Decl) typeast.TypeRef {
	name := ctx.ComponentName + "ResponseHeaders"
	decl := &typeast.StructDecl{Name: name, Access: typeast.AccessPublic}
	for _, hname := range sortedHeaderNames(headers) {
		h := headers[hname]
		headerCtx := ctx.Child(hname)
		base := sc.TranslateNode(headerCtx, h.Schema, aux)
		typ := base
		if !h.Required && !typ.IsOption() {
			typ = typeast.Option(typ)
		}
		decl.Fields = append(decl.Fields, typeast.Field{
			Name:       sc.NameFor(hname),
			WireName:   hname,
			Type:       typ,
			Optional:   !h.Required,
			Deprecated: h.Deprecated,
		})
	}
	*aux = append(*aux, decl)
	return typeast.Named(name)
}

func sortedHeaderNames(m map[string]model.Header) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// orderedStatusCodes sorts response statuses numerically, with "default"
// pushed to the end so it acts as a fallback ahead of only the synthetic
// undocumented variant (model.Responses carries no declaration order; see
// DESIGN.md).
func orderedStatusCodes(responses model.Responses) []string {
	codes := make([]string, 0, len(responses))
	for c := range responses {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool {
		ni, oki := statusSortKey(codes[i])
		nj, okj := statusSortKey(codes[j])
		if oki != okj {
			return oki
		}
		if oki {
			return ni < nj
		}
		return codes[i] < codes[j]
	})
	return codes
}

func statusSortKey(code string) (int, bool) {
	if code == "default" {
		return 0, false
	}
	n, err := strconv.Atoi(code)
	if err != nil {
		return 0, false
	}
	return n, true
}

func statusVariantName(status string) string {
	if status == "default" {
		return "default"
	}
	return "status" + status
}

func typeRefPtr(t typeast.TypeRef) *typeast.TypeRef { return &t }
