package emitter

import (
	"fmt"

	"github.com/cmmoran/flugen/internal/model"
)

func nullMark(nullable bool) string {
	if nullable {
		return "?"
	}
	return ""
}

// typeString renders a type as declared on a field, nullability included.
func typeString(t model.Type) string {
	switch t := t.(type) {
	case model.Primitive:
		return t.Kind.String() + nullMark(t.Nullable && t.Kind != model.KindDynamic)
	case model.EnumRef:
		return t.Name + nullMark(t.Nullable)
	case model.CustomRef:
		return t.Name + nullMark(t.Nullable)
	case model.ListOf:
		return "List<" + typeString(t.Elem) + ">" + nullMark(t.Nullable)
	}
	return "dynamic"
}

// nonNullTypeString drops the outer nullability only; list elements keep theirs.
func nonNullTypeString(t model.Type) string {
	switch t := t.(type) {
	case model.Primitive:
		return t.Kind.String()
	case model.EnumRef:
		return t.Name
	case model.CustomRef:
		return t.Name
	case model.ListOf:
		return "List<" + typeString(t.Elem) + ">"
	}
	return "dynamic"
}

func isDynamic(t model.Type) bool {
	p, ok := t.(model.Primitive)
	return ok && p.Kind == model.KindDynamic
}

func nullGuard(src string, nullable bool) string {
	if nullable {
		return src + " == null ? null : "
	}
	return ""
}

// decodeExpr reads a field of type t out of the JSON value expression src.
func decodeExpr(t model.Type, src string) string {
	switch t := t.(type) {
	case model.ListOf:
		q := nullMark(t.Nullable)
		return fmt.Sprintf("(%s as List%s)%s.map((e) => %s).toList()", src, q, q, decodeExpr(t.Elem, "e"))
	case model.CustomRef:
		return nullGuard(src, t.Nullable) + fmt.Sprintf("%s.fromJson(%s as Map<String, dynamic>)", t.Name, src)
	case model.EnumRef:
		return nullGuard(src, t.Nullable) + fmt.Sprintf("%s.values.singleWhere((v) => v.name == %s as String)", t.Name, src)
	case model.Primitive:
		q := nullMark(t.Nullable)
		switch t.Kind {
		case model.KindInt:
			return fmt.Sprintf("(%s as num%s)%s.toInt()", src, q, q)
		case model.KindDouble:
			return fmt.Sprintf("(%s as num%s)%s.toDouble()", src, q, q)
		case model.KindDateTime:
			return nullGuard(src, t.Nullable) + fmt.Sprintf("DateTime.parse(%s as String)", src)
		case model.KindDynamic:
			return src
		default:
			return src + " as " + typeString(t)
		}
	}
	return src
}

// encodeExpr turns the value expression src of type t into a JSON value.
func encodeExpr(t model.Type, src string) string {
	switch t := t.(type) {
	case model.ListOf:
		if !needsTransform(t.Elem) {
			return src
		}
		return fmt.Sprintf("%s%s.map((e) => %s).toList()", src, nullMark(t.Nullable), encodeExpr(t.Elem, "e"))
	case model.CustomRef:
		return src + nullMark(t.Nullable) + ".toJson()"
	case model.EnumRef:
		return src + nullMark(t.Nullable) + ".name"
	case model.Primitive:
		if t.Kind == model.KindDateTime {
			return src + nullMark(t.Nullable) + ".toIso8601String()"
		}
	}
	return src
}

// needsTransform reports whether list elements of type s must be mapped
// through their own encoder instead of passing the list through.
func needsTransform(s model.Scalar) bool {
	switch s := s.(type) {
	case model.CustomRef, model.EnumRef:
		return true
	case model.Primitive:
		return s.Kind == model.KindDateTime
	}
	return false
}
