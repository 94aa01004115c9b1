package mangle

import "testing"

func TestMangle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: "_empty"},
		{name: "simple", input: "Pet", want: "Pet"},
		{name: "hyphen", input: "x-api-key", want: "x_hyphen_api_hyphen_key"},
		{name: "dot", input: "a.b.c", want: "a_period_b_period_c"},
		{name: "dollar", input: "$ref", want: "_dollar_ref"},
		{name: "slash", input: "a/b", want: "a_sol_b"},
		{name: "leading digit", input: "200", want: "_200"},
		{name: "leading digit then word", input: "404NotFound", want: "_404NotFound"},
		{name: "reserved word", input: "struct", want: "_struct"},
		{name: "underscore only", input: "_", want: "_"},
		{name: "space separated header", input: "X Log Type", want: "X_space_Log_space_Type"},
	}

	m := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Mangle(tt.input)
			if got != tt.want {
				t.Errorf("Mangle(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMangleNeverEmpty(t *testing.T) {
	m := New()
	inputs := []string{"", "-", ".", "$", "///"}
	for _, in := range inputs {
		if got := m.Mangle(in); got == "" {
			t.Errorf("Mangle(%q) returned empty string", in)
		}
	}
}

func TestMangleDeterministic(t *testing.T) {
	m := New()
	for _, in := range []string{"x-log-type", "Pet.Name", "200"} {
		first := m.Mangle(in)
		second := m.Mangle(in)
		if first != second {
			t.Errorf("Mangle(%q) not deterministic: %q vs %q", in, first, second)
		}
	}
}

func TestNamespaceCollision(t *testing.T) {
	ns := NewNamespace(New())

	a := ns.Claim("foo")
	b := ns.Claim("foo")
	c := ns.Claim("foo")

	if a != "foo" {
		t.Fatalf("first claim = %q, want foo", a)
	}
	if b == a || c == a || b == c {
		t.Fatalf("collisions not resolved uniquely: %q, %q, %q", a, b, c)
	}
	if b != "foo1" {
		t.Fatalf("second claim = %q, want foo1", b)
	}
}

func TestNamespaceDistinctInputsStayDistinct(t *testing.T) {
	ns := NewNamespace(New())
	a := ns.Claim("a-b")
	b := ns.Claim("a_hyphen_b") // mangles to the same literal as "a-b"
	if a == b {
		t.Fatalf("expected distinct names, got %q for both", a)
	}
}

func TestWithReserved(t *testing.T) {
	m := New(WithReserved([]string{"widget"}))
	if got := m.Mangle("widget"); got != "_widget" {
		t.Errorf("Mangle(widget) = %q, want _widget", got)
	}
	if got := m.Mangle("struct"); got != "struct" {
		t.Errorf("custom reserved set should not treat 'struct' as reserved, got %q", got)
	}
}
