package schema

import (
	"fmt"

	"github.com/amer8/apigen/pkg/codegen/mangle"
	"github.com/amer8/apigen/pkg/codegen/typeast"
	"github.com/amer8/apigen/pkg/model"
)

// buildEnum translates a primitive+enum schema to a closed EnumDecl (§4.2
// "string + enum"): one frozen variant per allowed literal.
func (t *Translator) buildEnum(ctx Context, declName string, s *model.Schema) *typeast.EnumDecl {
	decl := &typeast.EnumDecl{
		Name:   declName,
		Access: typeast.AccessPublic,
		Base:   enumBase(s),
	}

	memberNS := mangle.NewNamespace(t.mangler)
	for _, v := range s.Enum {
		literal := fmt.Sprint(v)
		decl.Members = append(decl.Members, typeast.EnumMember{
			Name:    memberNS.Claim(literal),
			Literal: literal,
		})
	}
	return decl
}

func enumBase(s *model.Schema) typeast.PrimitiveKind {
	switch s.Type {
	case model.TypeInteger:
		if s.Format == "int64" {
			return typeast.PrimInt64
		}
		return typeast.PrimInt
	case model.TypeNumber:
		return typeast.PrimFloat64
	case model.TypeBoolean:
		return typeast.PrimBool
	default:
		return typeast.PrimString
	}
}
