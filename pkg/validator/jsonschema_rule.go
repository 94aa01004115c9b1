package validator

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/amer8/apigen/pkg/format"
	"github.com/amer8/apigen/pkg/model"
)

// JSONSchemaMetaRule compiles every component schema's JSON-Schema-shaped
// constraints against the library's built-in 2020-12 meta-schema, catching
// structurally malformed keywords (e.g. `enum` that isn't an array,
// `required` entries that aren't strings, a `$ref` the compiler itself
// can't resolve within the document) that the hand-written structural
// checks in rules.go don't look for.
type JSONSchemaMetaRule struct{}

// Name returns the rule's identifier.
func (r *JSONSchemaMetaRule) Name() string { return "jsonschema-meta" }

// Level returns the severity JSONSchemaMetaRule reports at.
func (r *JSONSchemaMetaRule) Level() format.ValidationLevel { return format.LevelError }

// Validate compiles each component schema in isolation against the
// jsonschema/v6 2020-12 meta-schema.
func (r *JSONSchemaMetaRule) Validate(api *model.API) []format.ValidationError {
	var errs []format.ValidationError
	for _, name := range api.Components.OrderedSchemaNames() {
		s := api.Components.Schemas[name]
		doc, err := schemaToJSONDoc(s)
		if err != nil {
			errs = append(errs, format.ValidationError{
				Path:    fmt.Sprintf("components/schemas/%s", name),
				Message: fmt.Sprintf("schema could not be serialized for meta-schema validation: %v", err),
				Level:   r.Level(),
			})
			continue
		}

		compiler := jsonschema.NewCompiler()
		url := "mem://schemas/" + name + ".json"
		if err := compiler.AddResource(url, doc); err != nil {
			errs = append(errs, format.ValidationError{
				Path:    fmt.Sprintf("components/schemas/%s", name),
				Message: fmt.Sprintf("not a valid JSON Schema document: %v", err),
				Level:   r.Level(),
			})
			continue
		}
		if _, err := compiler.Compile(url); err != nil {
			errs = append(errs, format.ValidationError{
				Path:    fmt.Sprintf("components/schemas/%s", name),
				Message: fmt.Sprintf("meta-schema validation failed: %v", err),
				Level:   r.Level(),
			})
		}
	}
	return errs
}

// schemaToJSONDoc renders a model.Schema to the generic `any` shape
// jsonschema/v6's compiler.AddResource expects (the result of
// json.Unmarshal into `any`), reusing encoding/json rather than hand-walking
// the struct so nested schemas, numbers, and slices all get the same
// representation the compiler would see from a raw document.
func schemaToJSONDoc(s *model.Schema) (any, error) {
	raw, err := json.Marshal(schemaToMap(s))
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func schemaToMap(s *model.Schema) map[string]any {
	if s == nil {
		return map[string]any{}
	}
	m := map[string]any{}
	if s.Ref != "" {
		m["$ref"] = s.Ref
		return m
	}
	if s.Type != "" {
		m["type"] = string(s.Type)
	}
	if s.Format != "" {
		m["format"] = s.Format
	}
	if len(s.Enum) > 0 {
		m["enum"] = s.Enum
	}
	if len(s.Required) > 0 {
		m["required"] = s.Required
	}
	if len(s.Properties) > 0 {
		props := map[string]any{}
		for k, v := range s.Properties {
			props[k] = schemaToMap(v)
		}
		m["properties"] = props
	}
	if s.Items != nil {
		m["items"] = schemaToMap(s.Items)
	}
	if len(s.AllOf) > 0 {
		m["allOf"] = schemaList(s.AllOf)
	}
	if len(s.AnyOf) > 0 {
		m["anyOf"] = schemaList(s.AnyOf)
	}
	if len(s.OneOf) > 0 {
		m["oneOf"] = schemaList(s.OneOf)
	}
	switch ap := s.AdditionalProperties.(type) {
	case bool:
		m["additionalProperties"] = ap
	case *model.Schema:
		m["additionalProperties"] = schemaToMap(ap)
	}
	return m
}

func schemaList(schemas []*model.Schema) []any {
	out := make([]any, len(schemas))
	for i, s := range schemas {
		out[i] = schemaToMap(s)
	}
	return out
}
