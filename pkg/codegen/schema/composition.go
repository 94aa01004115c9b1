package schema

import (
	"fmt"
	"strconv"

	"github.com/amer8/apigen/pkg/codegen/mangle"
	"github.com/amer8/apigen/pkg/codegen/typeast"
	"github.com/amer8/apigen/pkg/model"
)

// buildAllOf translates `allOf` to a product with one field `valueK` per
// child (§4.2's translation table entry for allOf).
func (t *Translator) buildAllOf(ctx Context, declName string, s *model.Schema, aux *[]typeast.Decl) *typeast.StructDecl {
	decl := &typeast.StructDecl{Name: declName, Access: typeast.AccessPublic, Boxed: t.reg.IsBoxed(ctx.ComponentName)}
	for i, child := range s.AllOf {
		childCtx := ctx.child("Value"+strconv.Itoa(i), fmt.Sprintf("/allOf/%d", i))
		typ := t.TranslateNode(childCtx, child, aux)
		if child != nil && child.Nullable && !typ.IsOption() {
			typ = typeast.Option(typ)
		}
		decl.Fields = append(decl.Fields, typeast.Field{
			Name: t.mangler.Mangle("value" + strconv.Itoa(i)),
			Type: typ,
		})
	}
	return decl
}

// buildAnyOf translates `anyOf` to a product with one optional field per
// child; decode tries every child independently and at least one must
// succeed (§4.2).
func (t *Translator) buildAnyOf(ctx Context, declName string, s *model.Schema, aux *[]typeast.Decl) *typeast.StructDecl {
	decl := &typeast.StructDecl{Name: declName, Access: typeast.AccessPublic, Boxed: t.reg.IsBoxed(ctx.ComponentName)}
	for i, child := range s.AnyOf {
		childCtx := ctx.child("Value"+strconv.Itoa(i), fmt.Sprintf("/anyOf/%d", i))
		typ := t.TranslateNode(childCtx, child, aux)
		if !typ.IsOption() {
			typ = typeast.Option(typ)
		}
		decl.Fields = append(decl.Fields, typeast.Field{
			Name:     t.mangler.Mangle("value" + strconv.Itoa(i)),
			Type:     typ,
			Optional: true,
		})
	}
	return decl
}

// buildOneOf translates `oneOf`, dispatching to the discriminated or
// undiscriminated form (§4.2).
func (t *Translator) buildOneOf(ctx Context, declName string, s *model.Schema, aux *[]typeast.Decl) *typeast.SumDecl {
	if s.Discriminator != nil && s.Discriminator.PropertyName != "" {
		return t.buildOneOfDiscriminated(ctx, declName, s, aux)
	}
	return t.buildOneOfPlain(ctx, declName, s, aux)
}

// buildOneOfPlain translates a discriminator-less `oneOf`: a sum with one
// variant per child, decoded by trying each in document order and taking
// the first success (§4.2, §9 Open Question 2: document order, not
// specificity-ranked).
func (t *Translator) buildOneOfPlain(ctx Context, declName string, s *model.Schema, aux *[]typeast.Decl) *typeast.SumDecl {
	decl := &typeast.SumDecl{Name: declName, Access: typeast.AccessPublic, Strategy: typeast.StrategyFirstMatch}
	variantNS := mangle.NewNamespace(t.mangler)
	for i, child := range s.OneOf {
		childCtx := ctx.child("Value"+strconv.Itoa(i), fmt.Sprintf("/oneOf/%d", i))
		name := variantLocalName(t, child, i)
		variantName := variantNS.Claim(name)
		typ := t.TranslateNode(childCtx, child, aux)
		indirect := child != nil && child.Ref != "" && func() bool {
			_, local, ok := t.reg.ResolveSchema(child.Ref)
			return ok && t.reg.IsBackEdge(ctx.ComponentName, local)
		}()
		decl.Variants = append(decl.Variants, typeast.Variant{
			Name:     variantName,
			Payload:  &typ,
			Indirect: indirect,
		})
	}
	return decl
}

// buildOneOfDiscriminated translates a `oneOf` with a discriminator: variants
// are named from the ordered `mapping` entries, plus one variant per
// referenced schema the mapping doesn't cover (§4.2 E2).
func (t *Translator) buildOneOfDiscriminated(ctx Context, declName string, s *model.Schema, aux *[]typeast.Decl) *typeast.SumDecl {
	decl := &typeast.SumDecl{
		Name:          declName,
		Access:        typeast.AccessPublic,
		Strategy:      typeast.StrategyDiscriminator,
		Discriminator: &typeast.DiscriminatorInfo{PropertyName: s.Discriminator.PropertyName},
	}
	variantNS := mangle.NewNamespace(t.mangler)

	covered := make(map[string]bool) // local schema name -> covered by a mapping entry
	for _, entry := range s.Discriminator.Mapping {
		// mapping entries may be bare local names ("A") or full refs
		// ("#/components/schemas/A"); normalize to the local name either way.
		localName, resolved := t.resolveMappingTarget(entry.Ref)
		if !resolved {
			localName = entry.Ref
		}
		covered[localName] = true

		variantName := variantNS.Claim(entry.Value)
		typ := typeast.Named(t.NameFor(localName))
		indirect := t.reg.IsBackEdge(ctx.ComponentName, localName)
		decl.Variants = append(decl.Variants, typeast.Variant{
			Name:               variantName,
			Payload:            &typ,
			DiscriminatorValue: entry.Value,
			Indirect:           indirect,
		})
	}

	for _, child := range s.OneOf {
		if child == nil || child.Ref == "" {
			continue
		}
		local, ok := t.resolveMappingTarget(child.Ref)
		if !ok || covered[local] {
			continue
		}
		variantName := variantNS.Claim(local)
		typ := typeast.Named(t.NameFor(local))
		decl.Variants = append(decl.Variants, typeast.Variant{
			Name:                          variantName,
			Payload:                       &typ,
			DiscriminatorValue:            local,
			AdditionalDiscriminatorValues: []string{"#/components/schemas/" + local},
			Indirect:                      t.reg.IsBackEdge(ctx.ComponentName, local),
		})
	}

	return decl
}

// resolveMappingTarget normalizes a discriminator mapping entry's ref (which
// may be a bare component name or a full `$ref` path) to its local schema
// name.
func (t *Translator) resolveMappingTarget(ref string) (string, bool) {
	if _, local, ok := t.reg.ResolveSchema(ref); ok {
		return local, true
	}
	if _, local, ok := t.reg.ResolveSchema("#/components/schemas/" + ref); ok {
		return local, true
	}
	return "", false
}

func variantLocalName(t *Translator, child *model.Schema, index int) string {
	if child != nil && child.Ref != "" {
		if _, local, ok := t.reg.ResolveSchema(child.Ref); ok {
			return local
		}
	}
	return "Value" + strconv.Itoa(index)
}
