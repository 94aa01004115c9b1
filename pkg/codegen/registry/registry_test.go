package registry

import (
	"testing"

	"github.com/amer8/apigen/pkg/codegen/diag"
	"github.com/amer8/apigen/pkg/model"
)

func schemaAPI(schemas map[string]*model.Schema, order []string) *model.API {
	api := model.NewAPI()
	api.Components.Schemas = schemas
	api.Components.SchemaOrder = order
	return api
}

func TestResolveSchema(t *testing.T) {
	pet := &model.Schema{Type: model.TypeObject}
	api := schemaAPI(map[string]*model.Schema{"Pet": pet}, []string{"Pet"})
	r := New(api)

	got, name, ok := r.ResolveSchema("#/components/schemas/Pet")
	if !ok || name != "Pet" || got != pet {
		t.Fatalf("ResolveSchema = %v, %q, %v", got, name, ok)
	}

	if _, _, ok := r.ResolveSchema("#/components/schemas/Missing"); ok {
		t.Fatal("expected Missing to be unresolved")
	}
}

func TestValidateReferencesUnresolved(t *testing.T) {
	pet := &model.Schema{
		Type: model.TypeObject,
		Properties: map[string]*model.Schema{
			"owner": {Ref: "#/components/schemas/Owner"},
		},
	}
	api := schemaAPI(map[string]*model.Schema{"Pet": pet}, []string{"Pet"})
	r := New(api)

	c := diag.NewCollector("test")
	r.ValidateReferences(c)

	if !c.HasErrors() {
		t.Fatal("expected an unresolved-reference error")
	}
}

func TestSelfReferenceIsBoxed(t *testing.T) {
	node := &model.Schema{
		Type: model.TypeObject,
		Properties: map[string]*model.Schema{
			"parent": {Ref: "#/components/schemas/Node"},
		},
	}
	api := schemaAPI(map[string]*model.Schema{"Node": node}, []string{"Node"})
	r := New(api)

	if !r.IsBoxed("Node") {
		t.Fatal("expected Node to be boxed (self-reference)")
	}
	if !r.IsBackEdge("Node", "Node") {
		t.Fatal("expected Node->Node to be the back-edge")
	}
}

func TestTwoNodeCycleExactlyOneBackEdge(t *testing.T) {
	a := &model.Schema{
		Type:       model.TypeObject,
		Properties: map[string]*model.Schema{"b": {Ref: "#/components/schemas/B"}},
	}
	b := &model.Schema{
		Type:       model.TypeObject,
		Properties: map[string]*model.Schema{"a": {Ref: "#/components/schemas/A"}},
	}
	api := schemaAPI(map[string]*model.Schema{"A": a, "B": b}, []string{"A", "B"})
	r := New(api)

	backCount := 0
	if r.IsBackEdge("A", "B") {
		backCount++
	}
	if r.IsBackEdge("B", "A") {
		backCount++
	}
	if backCount != 1 {
		t.Fatalf("expected exactly one back-edge in a 2-node cycle, got %d", backCount)
	}

	// Exactly one of A/B should be boxed, matching the back-edge target.
	boxedCount := 0
	if r.IsBoxed("A") {
		boxedCount++
	}
	if r.IsBoxed("B") {
		boxedCount++
	}
	if boxedCount != 1 {
		t.Fatalf("expected exactly one boxed component, got %d", boxedCount)
	}
}

func TestAcyclicNoBoxing(t *testing.T) {
	a := &model.Schema{
		Type:       model.TypeObject,
		Properties: map[string]*model.Schema{"b": {Ref: "#/components/schemas/B"}},
	}
	b := &model.Schema{Type: model.TypeObject}
	api := schemaAPI(map[string]*model.Schema{"A": a, "B": b}, []string{"A", "B"})
	r := New(api)

	if r.IsBoxed("A") || r.IsBoxed("B") {
		t.Fatal("expected no boxing in an acyclic graph")
	}
}
