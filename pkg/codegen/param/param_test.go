package param

import (
	"reflect"
	"testing"

	"github.com/amer8/apigen/pkg/codegen/diag"
	"github.com/amer8/apigen/pkg/codegen/mangle"
	"github.com/amer8/apigen/pkg/codegen/registry"
	"github.com/amer8/apigen/pkg/codegen/schema"
	"github.com/amer8/apigen/pkg/codegen/typeast"
	"github.com/amer8/apigen/pkg/model"
)

func TestResolveDefaults(t *testing.T) {
	tests := []struct {
		name        string
		p           model.Parameter
		wantStyle   string
		wantExplode bool
	}{
		{"query defaults", model.Parameter{In: model.ParameterInQuery}, "form", true},
		{"cookie defaults", model.Parameter{In: model.ParameterInCookie}, "form", true},
		{"path defaults", model.Parameter{In: model.ParameterInPath}, "simple", false},
		{"header defaults", model.Parameter{In: model.ParameterInHeader}, "simple", false},
		{"explicit style wins", model.Parameter{In: model.ParameterInQuery, Style: "spaceDelimited", Explode: false}, "spaceDelimited", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			style, explode := Resolve(tt.p)
			if style != tt.wantStyle || explode != tt.wantExplode {
				t.Errorf("Resolve(%+v) = (%q, %v), want (%q, %v)", tt.p, style, explode, tt.wantStyle, tt.wantExplode)
			}
		})
	}
}

func newSchemaTranslator(t *testing.T) *schema.Translator {
	t.Helper()
	api := model.NewAPI()
	reg := registry.New(api)
	sink := diag.NewCollector("test")
	return schema.NewTranslator(reg, sink, mangle.Default, schema.DefaultOptions())
}

// E4 Request with three query parameters of varying explode.
func TestTranslateThreeQueryParametersVaryingExplode(t *testing.T) {
	sc := newSchemaTranslator(t)
	ctx := schema.NewContext("listThings", "#/paths/~1foo/get")

	single := model.Parameter{Name: "single", In: model.ParameterInQuery, Schema: &model.Schema{Type: model.TypeString}}
	manyExploded := model.Parameter{
		Name: "manyExploded", In: model.ParameterInQuery, Explode: true, Style: "form",
		Schema: &model.Schema{Type: model.TypeArray, Items: &model.Schema{Type: model.TypeString}},
	}
	manyUnexploded := model.Parameter{
		Name: "manyUnexploded", In: model.ParameterInQuery, Explode: false, Style: "form",
		Schema: &model.Schema{Type: model.TypeArray, Items: &model.Schema{Type: model.TypeString}},
	}

	var aux []typeast.Decl
	rSingle := Translate(sc, ctx, single, &aux)
	rMany := Translate(sc, ctx, manyExploded, &aux)
	rManyUn := Translate(sc, ctx, manyUnexploded, &aux)

	if rSingle.Style != "form" || !rSingle.Explode {
		t.Errorf("single = %+v, want style=form explode=true (default)", rSingle)
	}
	if rMany.Style != "form" || !rMany.Explode {
		t.Errorf("manyExploded = %+v, want style=form explode=true", rMany)
	}
	if rManyUn.Style != "form" || rManyUn.Explode {
		t.Errorf("manyUnexploded = %+v, want style=form explode=false", rManyUn)
	}

	for _, r := range []Resolved{rSingle, rMany, rManyUn} {
		if r.In != model.ParameterInQuery {
			t.Errorf("In = %q, want query", r.In)
		}
		if !r.Field.Optional {
			t.Errorf("field %q Optional = false, want true (parameter not required)", r.Field.WireName)
		}
	}

	if reflect.DeepEqual(rMany, rManyUn) {
		t.Fatal("manyExploded and manyUnexploded resolved identically, explode distinction lost")
	}
}

func TestRewritePathTemplate(t *testing.T) {
	rewritten, order := RewritePathTemplate("/foo/{id}/bar/{sub-id}")
	if rewritten != "/foo/{}/bar/{}" {
		t.Errorf("rewritten = %q, want /foo/{}/bar/{}", rewritten)
	}
	if !reflect.DeepEqual(order, []string{"id", "sub-id"}) {
		t.Errorf("order = %v, want [id sub-id]", order)
	}
}
