package schema

import (
	"sort"

	"github.com/amer8/apigen/pkg/codegen/diag"
	"github.com/amer8/apigen/pkg/codegen/typeast"
	"github.com/amer8/apigen/pkg/model"
)

// buildObject translates an object schema to a StructDecl: one field per
// property, plus the additionalProperties variant named by §4.2's table,
// plus recursion boxing (§4.2 "Recursion handling") when this component is
// the target of a back-edge.
func (t *Translator) buildObject(ctx Context, declName string, s *model.Schema, aux *[]typeast.Decl) *typeast.StructDecl {
	decl := &typeast.StructDecl{
		Name:   declName,
		Access: typeast.AccessPublic,
		Boxed:  t.reg.IsBoxed(ctx.ComponentName),
	}

	required := make(map[string]bool, len(s.Required))
	for _, r := range s.Required {
		required[r] = true
	}

	fieldNS := t.mangler

	for _, propName := range sortedPropertyNames(s.Properties) {
		propSchema := s.Properties[propName]

		if propSchema != nil && propSchema.Ref == "" && propSchema.Type == model.TypeString && propSchema.Format == "binary" {
			// §4.6/§7 unsupported-construct: binary inside object properties
			// produces a warning and the element is skipped.
			t.sink.Emit(diag.Diagnostic{
				Severity: diag.Warning,
				Path:     ctx.JSONPath + "/properties/" + propName,
				Message:  "unsupported-construct: binary format inside object properties is skipped",
			})
			continue
		}

		propCtx := ctx.child(propName, "/properties/"+propName)
		base := t.TranslateNode(propCtx, propSchema, aux)

		isRequired := required[propName]
		nullable := propSchema != nil && propSchema.Nullable
		fieldType := base
		if (!isRequired || nullable) && !fieldType.IsOption() {
			fieldType = typeast.Option(fieldType)
		}

		var def *typeast.Literal
		if !isRequired && propSchema != nil {
			def = literalFromDefault(propSchema.Default)
		}

		if propSchema != nil && propSchema.Deprecated {
			t.sink.Emit(diag.Diagnostic{Severity: diag.Note, Path: propCtx.JSONPath, Message: "deprecated: " + propName})
		}

		decl.Fields = append(decl.Fields, typeast.Field{
			Name:       fieldNS.Mangle(propName),
			WireName:   propName,
			Type:       fieldType,
			Optional:   !isRequired,
			Nullable:   nullable,
			Default:    def,
			Deprecated: propSchema != nil && propSchema.Deprecated,
		})
	}

	// §7 invalid-schema: a required name with no matching property — warn
	// and infer the name out (i.e. simply do not synthesize a field for it).
	for _, r := range s.Required {
		if _, ok := s.Properties[r]; !ok {
			t.sink.Emit(diag.Diagnostic{
				Severity: diag.Warning,
				Path:     ctx.JSONPath + "/required",
				Message:  "invalid-schema: required property " + r + " has no matching schema; ignored",
			})
		}
	}

	switch ap := s.AdditionalProperties.(type) {
	case nil:
		// absent: no constraint, nothing to add.
	case bool:
		if !ap {
			decl.ClosedNoUnknownKeys = true
		} else {
			f := typeast.Field{Name: fieldNS.Mangle("additionalProperties"), WireName: "additionalProperties", Type: typeast.Prim(typeast.PrimJSONValue), Optional: true}
			decl.AdditionalProperties = &f
		}
	case *model.Schema:
		apCtx := ctx.child("additionalProperties", "/additionalProperties")
		valueType := t.TranslateNode(apCtx, ap, aux)
		f := typeast.Field{
			Name:     fieldNS.Mangle("additionalProperties"),
			WireName: "additionalProperties",
			Type:     typeast.MapOf(typeast.Prim(typeast.PrimString), valueType),
			Optional: true,
		}
		decl.AdditionalProperties = &f
	}

	return decl
}

func sortedPropertyNames(props map[string]*model.Schema) []string {
	names := make([]string, 0, len(props))
	for n := range props {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func literalFromDefault(v interface{}) *typeast.Literal {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		return &typeast.Literal{Kind: typeast.LiteralString, Str: val}
	case bool:
		return &typeast.Literal{Kind: typeast.LiteralBool, Bool: val}
	case float64:
		return &typeast.Literal{Kind: typeast.LiteralNumber, Num: val}
	case int:
		return &typeast.Literal{Kind: typeast.LiteralNumber, Num: float64(val)}
	default:
		return nil
	}
}
