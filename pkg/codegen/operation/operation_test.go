package operation

import (
	"testing"

	"github.com/amer8/apigen/pkg/codegen/diag"
	"github.com/amer8/apigen/pkg/codegen/mangle"
	"github.com/amer8/apigen/pkg/codegen/registry"
	"github.com/amer8/apigen/pkg/codegen/schema"
	"github.com/amer8/apigen/pkg/codegen/typeast"
	"github.com/amer8/apigen/pkg/model"
)

func newTestTranslator(t *testing.T, api *model.API) *Translator {
	t.Helper()
	reg := registry.New(api)
	sink := diag.NewCollector("test")
	sc := schema.NewTranslator(reg, sink, mangle.Default, schema.DefaultOptions())
	return NewTranslator(reg, sc, sink, mangle.Default)
}

// E4 Request with three query parameters of varying explode: the client
// serializer preserves each parameter's resolved explode value, and the
// server deserializer mirrors it symmetrically.
func TestTranslateAllThreeQueryParametersExplode(t *testing.T) {
	api := model.NewAPI()
	stringSchema := &model.Schema{Type: model.TypeString}
	arraySchema := &model.Schema{Type: model.TypeArray, Items: stringSchema}

	op := &model.Operation{
		OperationID: "listThings",
		Parameters: []model.Parameter{
			{Name: "single", In: model.ParameterInQuery, Schema: stringSchema},
			{Name: "manyExploded", In: model.ParameterInQuery, Style: "form", Explode: true, Schema: arraySchema},
			{Name: "manyUnexploded", In: model.ParameterInQuery, Style: "form", Explode: false, Schema: arraySchema},
		},
		Responses: model.Responses{
			"200": {},
		},
	}
	api.Paths["/foo"] = model.PathItem{Get: op}

	tr := newTestTranslator(t, api)
	decls, ops := tr.TranslateAll(api)
	if len(ops) != 1 {
		t.Fatalf("len(ops) = %d, want 1", len(ops))
	}
	if len(decls) < 2 {
		t.Fatalf("len(decls) = %d, want at least Input+Output", len(decls))
	}

	opDecl := ops[0]
	if opDecl.Method != "GET" {
		t.Errorf("Method = %q, want GET", opDecl.Method)
	}

	// Three query client-serialize statements in parameter declaration order,
	// each carrying its own explode value.
	var queryStmts []typeast.Stmt
	for _, s := range opDecl.ClientSerialize {
		if s.Kind == typeast.StmtSetQueryItem {
			queryStmts = append(queryStmts, s)
		}
	}
	if len(queryStmts) != 3 {
		t.Fatalf("len(query client-serialize stmts) = %d, want 3", len(queryStmts))
	}
	wantExplode := []bool{true, true, false}
	for i, want := range wantExplode {
		if queryStmts[i].Explode != want {
			t.Errorf("queryStmts[%d].Explode = %v, want %v", i, queryStmts[i].Explode, want)
		}
	}

	// The server deserializer mirrors the same three parameters symmetrically.
	var getStmts []typeast.Stmt
	for _, s := range opDecl.ServerDeserialize {
		if s.Kind == typeast.StmtGetQueryItem {
			getStmts = append(getStmts, s)
		}
	}
	if len(getStmts) != 3 {
		t.Fatalf("len(query server-deserialize stmts) = %d, want 3", len(getStmts))
	}
	for i, want := range wantExplode {
		if getStmts[i].Explode != want {
			t.Errorf("getStmts[%d].Explode = %v, want %v", i, getStmts[i].Explode, want)
		}
		if getStmts[i].Field != queryStmts[i].Field {
			t.Errorf("getStmts[%d].Field = %q, client has %q", i, getStmts[i].Field, queryStmts[i].Field)
		}
	}

	// Input carries a Query group field; no path/header/cookie groups exist.
	hasQuery := false
	for _, f := range opDecl.Input.Fields {
		if f.Name == "query" {
			hasQuery = true
		}
		if f.Name == "path" || f.Name == "headers" || f.Name == "cookies" {
			t.Errorf("unexpected Input field %q: operation declares no such parameters", f.Name)
		}
	}
	if !hasQuery {
		t.Error("Input has no query field")
	}
}

func TestBuildOutputStatusOrderingAndUndocumented(t *testing.T) {
	api := model.NewAPI()
	op := &model.Operation{
		OperationID: "getThing",
		Responses: model.Responses{
			"404":     {},
			"200":     {Content: map[string]model.MediaType{"application/json": {Schema: &model.Schema{Type: model.TypeInteger}}}},
			"default": {},
		},
	}
	api.Paths["/thing"] = model.PathItem{Get: op}

	tr := newTestTranslator(t, api)
	_, ops := tr.TranslateAll(api)
	output := ops[0].Output

	wantNames := []string{"status200", "status404", "default", "undocumented"}
	if len(output.Variants) != len(wantNames) {
		t.Fatalf("len(Variants) = %d, want %d: %+v", len(output.Variants), len(wantNames), output.Variants)
	}
	for i, want := range wantNames {
		if output.Variants[i].Name != want {
			t.Errorf("Variants[%d].Name = %q, want %q", i, output.Variants[i].Name, want)
		}
	}
	last := output.Variants[len(output.Variants)-1]
	if !last.Undocumented {
		t.Error("final variant is not marked Undocumented")
	}
}

func TestOperationNameFallsBackToMethodAndPath(t *testing.T) {
	op := &model.Operation{Responses: model.Responses{"200": {}}}
	name := operationName(op, "GET", "/foo/{id}")
	if name != "get_foo__id" {
		t.Errorf("operationName = %q, want get_foo__id", name)
	}
}

func TestMergeParametersOperationOverridesPathItem(t *testing.T) {
	pathLevel := []model.Parameter{{Name: "id", In: model.ParameterInPath, Required: true}}
	opLevel := []model.Parameter{{Name: "id", In: model.ParameterInPath, Required: false}}
	merged := mergeParameters(pathLevel, opLevel)
	if len(merged) != 1 {
		t.Fatalf("len(merged) = %d, want 1", len(merged))
	}
	if merged[0].Required {
		t.Error("operation-level parameter did not override path-item-level parameter")
	}
}
