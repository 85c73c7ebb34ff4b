package parser

import (
	"strings"

	"github.com/cmmoran/flugen/internal/model"
)

const nullableSigil = "?"

// vocabulary maps primitive keywords to their kinds.
var vocabulary = map[string]model.PrimitiveKind{
	"int":      model.KindInt,
	"double":   model.KindDouble,
	"bool":     model.KindBool,
	"String":   model.KindString,
	"dynamic":  model.KindDynamic,
	"DateTime": model.KindDateTime,
}

// Resolve classifies a raw field type. It never fails: anything that is not a
// list, a primitive or a forced enum is a custom reference.
func Resolve(raw string, opts *model.FieldOptions) model.Type {
	text, nullable := stripNullable(raw)
	if inner, ok := matchList(text); ok {
		return model.ListOf{
			Elem:     resolveScalar(inner, opts),
			Nullable: nullable,
		}
	}
	return resolveScalar(raw, opts)
}

// resolveScalar classifies a non-list token. Nested lists are not supported
// and degrade to a custom reference named after the full token.
func resolveScalar(raw string, opts *model.FieldOptions) model.Scalar {
	name, nullable := stripNullable(raw)

	if opts != nil && opts.ForceEnum {
		return model.EnumRef{Name: name, Nullable: nullable}
	}
	if kind, ok := vocabulary[name]; ok {
		if kind == model.KindDynamic {
			nullable = false
		}
		return model.Primitive{Kind: kind, Nullable: nullable}
	}
	return model.CustomRef{Name: name, Nullable: nullable}
}

func stripNullable(raw string) (string, bool) {
	text := strings.TrimSpace(raw)
	if strings.HasSuffix(text, nullableSigil) {
		return strings.TrimSpace(strings.TrimSuffix(text, nullableSigil)), true
	}
	return text, false
}
