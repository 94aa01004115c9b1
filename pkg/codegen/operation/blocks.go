package operation

import (
	"github.com/amer8/apigen/pkg/codegen/param"
	"github.com/amer8/apigen/pkg/codegen/typeast"
	"github.com/amer8/apigen/pkg/model"
)

// clientSerializeBlock builds the outbound HTTP request from Input (§4.5
// step 3): path placeholders in template-occurrence order, then query,
// header, and cookie items, then the body encoded per its content type.
func clientSerializeBlock(grouped map[model.ParameterLocation][]param.Resolved, placeholderOrder []string, input *typeast.StructDecl) typeast.Block {
	var b typeast.Block
	b = append(b, pathPlaceholderStmts(grouped[model.ParameterInPath], placeholderOrder)...)
	b = append(b, itemStmts(grouped[model.ParameterInQuery], typeast.StmtSetQueryItem)...)
	b = append(b, itemStmts(grouped[model.ParameterInHeader], typeast.StmtSetHeaderItem)...)
	b = append(b, itemStmts(grouped[model.ParameterInCookie], typeast.StmtSetCookieItem)...)
	if hasBodyField(input) {
		b = append(b, typeast.Stmt{Kind: typeast.StmtEncodeBody})
	}
	b = append(b, typeast.Stmt{Kind: typeast.StmtSetAcceptHeader})
	return b
}

// serverDeserializeBlock is the inverse of clientSerializeBlock (§4.5 step
// 4): the same groups, read from the inbound request instead of written to
// an outbound one.
func serverDeserializeBlock(grouped map[model.ParameterLocation][]param.Resolved, placeholderOrder []string, input *typeast.StructDecl) typeast.Block {
	var b typeast.Block
	b = append(b, pathPlaceholderGetStmts(grouped[model.ParameterInPath], placeholderOrder)...)
	b = append(b, itemStmts(grouped[model.ParameterInQuery], typeast.StmtGetQueryItem)...)
	b = append(b, itemStmts(grouped[model.ParameterInHeader], typeast.StmtGetHeaderItem)...)
	b = append(b, itemStmts(grouped[model.ParameterInCookie], typeast.StmtGetCookieItem)...)
	if hasBodyField(input) {
		b = append(b, typeast.Stmt{Kind: typeast.StmtDecodeBody})
	}
	return b
}

// serverSerializeBlock writes Output to the outbound response (§4.5 step
// 5): a status switch whose arms each encode that variant's body per its
// declared content type (the content negotiation performed by
// best-content-type against the request's Accept header, per §4.5's closing
// paragraph).
func serverSerializeBlock(output *typeast.SumDecl) typeast.Block {
	var cases []typeast.Case
	for _, v := range output.Variants {
		match := v.StatusCode
		if v.Undocumented {
			match = ""
		}
		var body typeast.Block
		if v.Payload != nil {
			body = append(body, typeast.Stmt{Kind: typeast.StmtEncodeBody})
		}
		cases = append(cases, typeast.Case{Match: match, Body: body})
	}
	return typeast.Block{{Kind: typeast.StmtSwitchStatus, Cases: cases}}
}

// clientDeserializeBlock extracts Output from the inbound response,
// symmetric to serverSerializeBlock: dispatch on the response's actual
// status code, falling through to the undocumented arm for anything not
// declared.
func clientDeserializeBlock(output *typeast.SumDecl) typeast.Block {
	var cases []typeast.Case
	for _, v := range output.Variants {
		match := v.StatusCode
		if v.Undocumented {
			match = ""
		}
		var body typeast.Block
		if v.Payload != nil {
			body = append(body, typeast.Stmt{Kind: typeast.StmtDecodeBody})
		}
		cases = append(cases, typeast.Case{Match: match, Body: body})
	}
	return typeast.Block{{Kind: typeast.StmtSwitchStatus, Cases: cases}}
}

func pathPlaceholderStmts(group []param.Resolved, order []string) typeast.Block {
	byWireName := make(map[string]param.Resolved, len(group))
	for _, r := range group {
		byWireName[r.WireName] = r
	}
	var b typeast.Block
	for _, name := range order {
		r, ok := byWireName[name]
		if !ok {
			continue
		}
		b = append(b, typeast.Stmt{Kind: typeast.StmtSetPathPlaceholder, Field: r.Field.Name, Style: r.Style, Explode: r.Explode})
	}
	return b
}

func pathPlaceholderGetStmts(group []param.Resolved, order []string) typeast.Block {
	byWireName := make(map[string]param.Resolved, len(group))
	for _, r := range group {
		byWireName[r.WireName] = r
	}
	var b typeast.Block
	for _, name := range order {
		r, ok := byWireName[name]
		if !ok {
			continue
		}
		b = append(b, typeast.Stmt{Kind: typeast.StmtGetPathPlaceholder, Field: r.Field.Name, Style: r.Style, Explode: r.Explode})
	}
	return b
}

func itemStmts(group []param.Resolved, kind typeast.StmtKind) typeast.Block {
	var b typeast.Block
	for _, r := range group {
		b = append(b, typeast.Stmt{Kind: kind, Field: r.Field.Name, Style: r.Style, Explode: r.Explode})
	}
	return b
}

func hasBodyField(input *typeast.StructDecl) bool {
	for _, f := range input.Fields {
		if f.Name == "body" {
			return true
		}
	}
	return false
}
