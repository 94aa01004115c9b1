package schema

import (
	"testing"

	"github.com/amer8/apigen/pkg/codegen/diag"
	"github.com/amer8/apigen/pkg/codegen/mangle"
	"github.com/amer8/apigen/pkg/codegen/registry"
	"github.com/amer8/apigen/pkg/codegen/typeast"
	"github.com/amer8/apigen/pkg/model"
)

func schemaAPI(schemas map[string]*model.Schema, order []string) *model.API {
	api := model.NewAPI()
	api.Components.Schemas = schemas
	api.Components.SchemaOrder = order
	return api
}

func fieldByName(fields []typeast.Field, name string) (typeast.Field, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f, true
		}
	}
	return typeast.Field{}, false
}

// E1 Object with mixed optional/required/nullable.
func TestObjectMixedOptionalRequiredNullable(t *testing.T) {
	myObj := &model.Schema{
		Type: model.TypeObject,
		Properties: map[string]*model.Schema{
			"a": {Type: model.TypeString},
			"b": {Type: model.TypeString},
			"c": {Type: model.TypeString, Nullable: true},
			"d": {Type: model.TypeString, Nullable: true},
		},
		Required: []string{"b", "d"},
	}
	api := schemaAPI(map[string]*model.Schema{"MyObj": myObj}, []string{"MyObj"})
	reg := registry.New(api)
	sink := diag.NewCollector("test")
	tr := NewTranslator(reg, sink, mangle.Default, DefaultOptions())

	decls := tr.TranslateComponent("MyObj", myObj)
	if len(decls) != 1 {
		t.Fatalf("TranslateComponent returned %d decls, want 1", len(decls))
	}
	obj, ok := decls[0].(*typeast.StructDecl)
	if !ok {
		t.Fatalf("decls[0] is %T, want *typeast.StructDecl", decls[0])
	}
	if len(obj.Fields) != 4 {
		t.Fatalf("len(Fields) = %d, want 4", len(obj.Fields))
	}

	cases := []struct {
		name     string
		optional bool
		nullable bool
	}{
		{"a", true, false},
		{"b", false, false},
		{"c", true, true},
		{"d", false, true},
	}
	for _, c := range cases {
		f, ok := fieldByName(obj.Fields, c.name)
		if !ok {
			t.Fatalf("field %q not found", c.name)
		}
		if f.Optional != c.optional {
			t.Errorf("field %q Optional = %v, want %v", c.name, f.Optional, c.optional)
		}
		if f.Nullable != c.nullable {
			t.Errorf("field %q Nullable = %v, want %v", c.name, f.Nullable, c.nullable)
		}
		wantOption := c.optional || c.nullable
		if f.Type.IsOption() != wantOption {
			t.Errorf("field %q Type.IsOption() = %v, want %v", c.name, f.Type.IsOption(), wantOption)
		}
		inner := f.Type
		if wantOption {
			inner = *f.Type.Elem
		}
		if inner.Kind != typeast.RefPrimitive || inner.Primitive != typeast.PrimString {
			t.Errorf("field %q base type = %+v, want string primitive", c.name, inner)
		}
	}
}

// E2 oneOf with discriminator + mapping.
func TestOneOfDiscriminatorMapping(t *testing.T) {
	a := &model.Schema{Type: model.TypeObject, Properties: map[string]*model.Schema{"which": {Type: model.TypeString}}}
	b := &model.Schema{Type: model.TypeObject, Properties: map[string]*model.Schema{"which": {Type: model.TypeString}}}
	c := &model.Schema{Type: model.TypeObject, Properties: map[string]*model.Schema{"which": {Type: model.TypeString}}}
	root := &model.Schema{
		OneOf: []*model.Schema{
			{Ref: "#/components/schemas/A"},
			{Ref: "#/components/schemas/B"},
			{Ref: "#/components/schemas/C"},
		},
		Discriminator: &model.Discriminator{
			PropertyName: "which",
			Mapping: []model.DiscriminatorEntry{
				{Value: "a", Ref: "A"},
				{Value: "a2", Ref: "A"},
				{Value: "b", Ref: "#/components/schemas/B"},
			},
		},
	}
	schemas := map[string]*model.Schema{"A": a, "B": b, "C": c, "Root": root}
	api := schemaAPI(schemas, []string{"A", "B", "C", "Root"})
	reg := registry.New(api)
	sink := diag.NewCollector("test")
	tr := NewTranslator(reg, sink, mangle.Default, DefaultOptions())

	decls := tr.TranslateComponent("Root", root)
	sum, ok := decls[0].(*typeast.SumDecl)
	if !ok {
		t.Fatalf("decls[0] is %T, want *typeast.SumDecl", decls[0])
	}
	if sum.Strategy != typeast.StrategyDiscriminator {
		t.Fatalf("Strategy = %q, want discriminator", sum.Strategy)
	}
	if sum.Discriminator == nil || sum.Discriminator.PropertyName != "which" {
		t.Fatalf("Discriminator = %+v, want PropertyName=which", sum.Discriminator)
	}

	wantNames := []string{"a", "a2", "b", "C"}
	if len(sum.Variants) != len(wantNames) {
		t.Fatalf("len(Variants) = %d, want %d", len(sum.Variants), len(wantNames))
	}
	for i, want := range wantNames {
		if sum.Variants[i].Name != want {
			t.Errorf("Variants[%d].Name = %q, want %q", i, sum.Variants[i].Name, want)
		}
	}
	if sum.Variants[0].DiscriminatorValue != "a" || sum.Variants[0].Payload.Name != "A" {
		t.Errorf("variant a = %+v", sum.Variants[0])
	}
	if sum.Variants[1].DiscriminatorValue != "a2" || sum.Variants[1].Payload.Name != "A" {
		t.Errorf("variant a2 = %+v", sum.Variants[1])
	}
	if sum.Variants[2].DiscriminatorValue != "b" || sum.Variants[2].Payload.Name != "B" {
		t.Errorf("variant b = %+v", sum.Variants[2])
	}
	if sum.Variants[3].Payload.Name != "C" {
		t.Errorf("variant C = %+v", sum.Variants[3])
	}
}

// E3 self-referential node.
func TestSelfReferentialNode(t *testing.T) {
	node := &model.Schema{
		Type: model.TypeObject,
		Properties: map[string]*model.Schema{
			"parent": {Ref: "#/components/schemas/Node"},
		},
	}
	api := schemaAPI(map[string]*model.Schema{"Node": node}, []string{"Node"})
	reg := registry.New(api)
	sink := diag.NewCollector("test")
	tr := NewTranslator(reg, sink, mangle.Default, DefaultOptions())

	decls := tr.TranslateComponent("Node", node)
	obj, ok := decls[0].(*typeast.StructDecl)
	if !ok {
		t.Fatalf("decls[0] is %T, want *typeast.StructDecl", decls[0])
	}
	if !obj.Boxed {
		t.Error("Node struct is not Boxed, want Boxed true for a self-referential component")
	}

	parent, ok := fieldByName(obj.Fields, "parent")
	if !ok {
		t.Fatal("field parent not found")
	}
	if !parent.Type.IsOption() {
		t.Fatalf("parent.Type = %+v, want an Option wrapper", parent.Type)
	}
	boxed := *parent.Type.Elem
	if boxed.Kind != typeast.RefBox {
		t.Fatalf("parent.Type.Elem = %+v, want RefBox", boxed)
	}
	if boxed.Elem == nil || boxed.Elem.Name != "Node" {
		t.Fatalf("parent box target = %+v, want Named(Node)", boxed.Elem)
	}
}
