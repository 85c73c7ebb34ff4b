package parser

import "regexp"

// Marker is the line that must precede an annotated class header.
const Marker = "// @flu"

// Patterns are compiled once and shared read-only by every Parse call.
var (
	headerPattern      = regexp.MustCompile(`^abstract class _(\w+) \{`)
	constructorPattern = regexp.MustCompile(`^  const _(\w+)\(\);$`)
	fieldPattern       = regexp.MustCompile(`^\s\s([A-Za-z_].*) get (\w+);$`)
	optionPattern      = regexp.MustCompile(`^  // @flu:? (.*)$`)
	optionTokenPattern = regexp.MustCompile(`(?P<key>\w+)(?:=(?P<value>"[^"]+"|\S+))?`)
	listPattern        = regexp.MustCompile(`^List<([A-Za-z_].*)>$`)
)

// matchMarker reports whether raw is the trigger marker, verbatim.
func matchMarker(raw string) bool {
	return raw == Marker
}

// matchOption returns the directive payload of a field option comment.
func matchOption(raw string) (string, bool) {
	m := optionPattern.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// matchHeader returns the base name of `abstract class _Name {`.
func matchHeader(text string) (string, bool) {
	m := headerPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// matchConstructor returns the base name of `  const _Name();`.
func matchConstructor(text string) (string, bool) {
	m := constructorPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// matchField returns the raw type and name of `  <type> get <name>;`.
func matchField(text string) (typ, name string, ok bool) {
	m := fieldPattern.FindStringSubmatch(text)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// matchList returns the element text of `List<...>`.
func matchList(text string) (string, bool) {
	m := listPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}
