package typeast

import "testing"

func TestTypeRefConstructors(t *testing.T) {
	prim := Prim(PrimString)
	if prim.Kind != RefPrimitive || prim.Primitive != PrimString {
		t.Errorf("Prim(PrimString) = %+v", prim)
	}

	named := Named("Pet")
	if named.Kind != RefNamed || named.Name != "Pet" {
		t.Errorf("Named(Pet) = %+v", named)
	}

	opt := Option(named)
	if opt.Kind != RefOption || opt.Elem == nil || opt.Elem.Name != "Pet" {
		t.Errorf("Option(Named(Pet)) = %+v", opt)
	}
	if !opt.IsOption() {
		t.Error("Option(...).IsOption() = false")
	}
	if named.IsOption() {
		t.Error("Named(...).IsOption() = true")
	}

	arr := Array(prim)
	if arr.Kind != RefArray || arr.Elem == nil || arr.Elem.Primitive != PrimString {
		t.Errorf("Array(Prim(string)) = %+v", arr)
	}

	m := MapOf(Prim(PrimString), named)
	if m.Kind != RefMap || m.Key.Primitive != PrimString || m.Value.Name != "Pet" {
		t.Errorf("MapOf(string, Pet) = %+v", m)
	}

	box := Box(named)
	if box.Kind != RefBox || box.Elem == nil || box.Elem.Name != "Pet" {
		t.Errorf("Box(Named(Pet)) = %+v", box)
	}
}

func TestProgramAppendAndAll(t *testing.T) {
	p := NewProgram()
	schemaDecl := &AliasDecl{Name: "Pet", Target: Prim(PrimString)}
	opDecl := &StructDecl{Name: "getPetInput"}

	p.Append(NamespaceSchemas, schemaDecl)
	p.Append(NamespaceOperations, opDecl)

	all := p.All()
	if len(all) != 2 {
		t.Fatalf("len(All()) = %d, want 2", len(all))
	}
	// All() walks namespaces in a fixed order: Schemas before Operations,
	// regardless of append order.
	if all[0].DeclName() != "Pet" {
		t.Errorf("All()[0] = %q, want Pet", all[0].DeclName())
	}
	if all[1].DeclName() != "getPetInput" {
		t.Errorf("All()[1] = %q, want getPetInput", all[1].DeclName())
	}
}

func TestDeclNameByConcreteType(t *testing.T) {
	var decls = []Decl{
		&StructDecl{Name: "S"},
		&SumDecl{Name: "U"},
		&EnumDecl{Name: "E"},
		&AliasDecl{Name: "A"},
	}
	want := []string{"S", "U", "E", "A"}
	for i, d := range decls {
		if got := d.DeclName(); got != want[i] {
			t.Errorf("decls[%d].DeclName() = %q, want %q", i, got, want[i])
		}
	}
}
