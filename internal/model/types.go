package model

// PrimitiveKind enumerates the built-in field types the resolver knows.
type PrimitiveKind int

const (
	KindInt      PrimitiveKind = iota // int
	KindDouble                        // double
	KindBool                          // bool
	KindString                        // String
	KindDynamic                       // dynamic, accepts absence on its own
	KindDateTime                      // DateTime, ISO-8601 on the wire
)

var primitiveNames = [...]string{
	KindInt:      "int",
	KindDouble:   "double",
	KindBool:     "bool",
	KindString:   "String",
	KindDynamic:  "dynamic",
	KindDateTime: "DateTime",
}

// String returns the source keyword of the kind.
func (k PrimitiveKind) String() string {
	if k < 0 || int(k) >= len(primitiveNames) {
		return "invalid"
	}
	return primitiveNames[k]
}

// Type is the closed set of field type descriptors:
// Primitive, EnumRef, CustomRef and ListOf.
type Type interface {
	IsNullable() bool
	isType()
}

// Scalar is any Type that may appear as a list element.
type Scalar interface {
	Type
	isScalar()
}

// Primitive is a built-in type.
type Primitive struct {
	Kind     PrimitiveKind
	Nullable bool
}

// EnumRef is an enum decoded and encoded by case name.
type EnumRef struct {
	Name     string
	Nullable bool
}

// CustomRef is another model exposing fromJson/toJson.
type CustomRef struct {
	Name     string
	Nullable bool
}

// ListOf wraps a single level of scalar elements. The list and its elements
// carry independent nullability.
type ListOf struct {
	Elem     Scalar
	Nullable bool
}

func (p Primitive) IsNullable() bool { return p.Nullable }
func (e EnumRef) IsNullable() bool   { return e.Nullable }
func (c CustomRef) IsNullable() bool { return c.Nullable }
func (l ListOf) IsNullable() bool    { return l.Nullable }

func (Primitive) isType() {}
func (EnumRef) isType()   {}
func (CustomRef) isType() {}
func (ListOf) isType()    {}

func (Primitive) isScalar() {}
func (EnumRef) isScalar()   {}
func (CustomRef) isScalar() {}
