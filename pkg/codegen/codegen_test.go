package codegen

import (
	"testing"

	"github.com/amer8/apigen/pkg/codegen/typeast"
	"github.com/amer8/apigen/pkg/model"
)

func sampleAPI() *model.API {
	api := model.NewAPI()

	pet := &model.Schema{
		Type: model.TypeObject,
		Properties: map[string]*model.Schema{
			"id":   {Type: model.TypeInteger},
			"name": {Type: model.TypeString},
		},
		Required: []string{"id"},
	}
	api.Components.Schemas["Pet"] = pet
	api.Components.SchemaOrder = []string{"Pet"}

	getPet := &model.Operation{
		OperationID: "getPet",
		Parameters: []model.Parameter{
			{Name: "id", In: model.ParameterInPath, Required: true, Schema: &model.Schema{Type: model.TypeString}},
		},
		Responses: model.Responses{
			"200": {Content: map[string]model.MediaType{
				"application/json": {Schema: &model.Schema{Ref: "#/components/schemas/Pet"}},
			}},
		},
	}
	api.Paths["/pets/{id}"] = model.PathItem{Get: getPet}

	return api
}

func TestGenerateProducesSchemasAndOperations(t *testing.T) {
	g := NewWithOptions(WithMode(ModeTypes), WithAccess(typeast.AccessPublic))
	result, err := g.Generate(sampleAPI())
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if result.Program == nil {
		t.Fatal("Program is nil")
	}

	schemas := result.Program.Namespaces[typeast.NamespaceSchemas]
	if len(schemas) != 1 || schemas[0].DeclName() != "Pet" {
		t.Fatalf("Schemas namespace = %+v, want a single Pet declaration", schemas)
	}

	ops := result.Program.Namespaces[typeast.NamespaceOperations]
	if len(ops) == 0 {
		t.Fatal("Operations namespace is empty")
	}
	if len(result.Operations) != 1 || result.Operations[0].Name != "getPet" {
		t.Fatalf("Operations = %+v, want a single getPet operation", result.Operations)
	}

	for _, d := range result.Program.All() {
		var access typeast.Access
		switch v := d.(type) {
		case *typeast.StructDecl:
			access = v.Access
		case *typeast.SumDecl:
			access = v.Access
		case *typeast.EnumDecl:
			access = v.Access
		case *typeast.AliasDecl:
			access = v.Access
		}
		if access != typeast.AccessPublic {
			t.Errorf("declaration %q has access %q, want public", d.DeclName(), access)
		}
	}

	for _, d := range result.Diagnostics {
		if d.Severity == "error" {
			t.Errorf("unexpected error diagnostic: %+v", d)
		}
	}
}

// §8 property 1: translating the same input twice produces an identical
// declaration shape (Program.All()'s name sequence is stable).
func TestGenerateIsDeterministic(t *testing.T) {
	api := sampleAPI()
	first, err := NewWithOptions().Generate(api)
	if err != nil {
		t.Fatalf("first Generate returned error: %v", err)
	}
	second, err := NewWithOptions().Generate(api)
	if err != nil {
		t.Fatalf("second Generate returned error: %v", err)
	}

	firstNames := declNames(first.Program)
	secondNames := declNames(second.Program)
	if len(firstNames) != len(secondNames) {
		t.Fatalf("decl count differs across runs: %d vs %d", len(firstNames), len(secondNames))
	}
	for i := range firstNames {
		if firstNames[i] != secondNames[i] {
			t.Errorf("decl[%d] = %q on first run, %q on second run", i, firstNames[i], secondNames[i])
		}
	}
}

func declNames(p *typeast.Program) []string {
	var names []string
	for _, d := range p.All() {
		names = append(names, d.DeclName())
	}
	return names
}

// §8 property 2: no duplicate top-level identifiers within a namespace.
func TestGenerateNamespaceUniqueness(t *testing.T) {
	result, err := NewWithOptions().Generate(sampleAPI())
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	for ns, decls := range result.Program.Namespaces {
		seen := make(map[string]bool, len(decls))
		for _, d := range decls {
			if seen[d.DeclName()] {
				t.Errorf("namespace %s has a duplicate identifier %q", ns, d.DeclName())
			}
			seen[d.DeclName()] = true
		}
	}
}

func TestGenerateFailsOnUnresolvedReference(t *testing.T) {
	api := model.NewAPI()
	api.Components.Schemas["Broken"] = &model.Schema{
		Type:       model.TypeObject,
		Properties: map[string]*model.Schema{"other": {Ref: "#/components/schemas/Missing"}},
	}
	api.Components.SchemaOrder = []string{"Broken"}

	result, err := NewWithOptions().Generate(api)
	if err == nil {
		t.Fatal("expected an error for an unresolved reference")
	}
	if result.Program != nil {
		t.Error("Program is non-nil on a failed run, want none of the file emitted")
	}
	found := false
	for _, d := range result.Diagnostics {
		if d.Severity == "error" {
			found = true
		}
	}
	if !found {
		t.Error("no error-severity diagnostic recorded for the unresolved reference")
	}
}

func TestSummaryFormat(t *testing.T) {
	result, err := NewWithOptions().Generate(sampleAPI())
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	summary := result.Summary()
	if summary == "" {
		t.Fatal("Summary() returned an empty string")
	}
}
