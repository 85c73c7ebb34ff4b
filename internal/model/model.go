package model

// File is one parsed unit: the logical identifier it was read from and the
// annotated classes found in it, in source order.
type File struct {
	Source  string   // logical identifier, e.g. "lib/user.dart"
	Classes []*Class // recognized declarations, may be empty
}

// Class is a recognized `abstract class _Name {` declaration.
type Class struct {
	Name             string   // base name without the leading underscore
	ConstConstructor bool     // body contains `const _Name();`
	Fields           []*Field // declaration order
}

// HasLists reports whether any field is a list.
func (c *Class) HasLists() bool {
	for _, f := range c.Fields {
		if _, ok := f.Type.(ListOf); ok {
			return true
		}
	}
	return false
}

// Field is a getter-only member `<type> get <name>;`.
type Field struct {
	Name    string
	Type    Type
	Options *FieldOptions // nil when no option comment precedes the field
}

// JSONKey is the serialization key, the field name unless overridden.
func (f *Field) JSONKey() string {
	if f.Options != nil && f.Options.Key != "" {
		return f.Options.Key
	}
	return f.Name
}

// FieldOptions are the directives of a `// @flu ...` comment.
type FieldOptions struct {
	Key       string // explicit serialization key, "" when absent
	ForceEnum bool   // classify the type as an enum reference
}
