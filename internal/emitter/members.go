package emitter

import (
	"fmt"
	"strings"

	"github.com/cmmoran/flugen/internal/model"
)

// lines accumulates output; entries are joined with "\n".
type lines []string

func (l *lines) add(format string, args ...any) {
	if len(args) == 0 {
		*l = append(*l, format)
		return
	}
	*l = append(*l, fmt.Sprintf(format, args...))
}

// renderClass writes one generated class, members in fixed order.
func renderClass(c *model.Class, out *lines) {
	out.add("\nclass %s extends _%s {", c.Name, c.Name)
	addConstructor(c, out)
	addFromJSON(c, out)
	addFields(c, out)
	addToJSON(c, out)
	addCopyWith(c, out)
	addToString(c, out)
	addEquals(c, out)
	addHashCode(c, out)
	if c.HasLists() {
		addListEquals(out)
	}
	out.add("}\n")
}

func addConstructor(c *model.Class, out *lines) {
	constKey := ""
	if c.ConstConstructor {
		constKey = "const "
	}
	if len(c.Fields) == 0 {
		out.add("  %s%s();", constKey, c.Name)
		return
	}
	out.add("  %s%s({", constKey, c.Name)
	for _, f := range c.Fields {
		out.add("    required this.%s,", f.Name)
	}
	out.add("  });")
}

func addFromJSON(c *model.Class, out *lines) {
	out.add("\n  factory %s.fromJson(Map<String, dynamic> json) {", c.Name)
	out.add("    return %s(", c.Name)
	for _, f := range c.Fields {
		out.add("      %s: %s,", f.Name, decodeExpr(f.Type, fmt.Sprintf("json['%s']", f.JSONKey())))
	}
	out.add("    );")
	out.add("  }")
}

func addFields(c *model.Class, out *lines) {
	for _, f := range c.Fields {
		out.add("\n  @override\n  final %s %s;", typeString(f.Type), f.Name)
	}
}

func addToJSON(c *model.Class, out *lines) {
	out.add("\n  Map<String, dynamic> toJson() => {")
	for _, f := range c.Fields {
		out.add("    '%s': %s,", f.JSONKey(), encodeExpr(f.Type, f.Name))
	}
	out.add("  };")
}

func addCopyWith(c *model.Class, out *lines) {
	if len(c.Fields) == 0 {
		out.add("\n  %s copyWith() => %s();", c.Name, c.Name)
		return
	}
	out.add("\n  %s copyWith({", c.Name)
	for _, f := range c.Fields {
		mark := "?"
		if isDynamic(f.Type) {
			mark = ""
		}
		out.add("    %s%s %s,", nonNullTypeString(f.Type), mark, f.Name)
	}
	out.add("  }) => %s(", c.Name)
	for _, f := range c.Fields {
		out.add("    %s: %s ?? this.%s,", f.Name, f.Name, f.Name)
	}
	out.add("  );")
}

func addToString(c *model.Class, out *lines) {
	out.add("\n  @override\n  String toString() => '%s('", c.Name)
	for _, f := range c.Fields {
		out.add("    '%s: $%s '", f.Name, f.Name)
	}
	out.add("    ')';")
}

func addEquals(c *model.Class, out *lines) {
	out.add("\n  @override\n  bool operator ==(Object other) {")
	out.add("    if (identical(this, other)) return true;")
	if len(c.Fields) == 0 {
		out.add("    return other is %s;", c.Name)
	} else {
		out.add("    return other is %s", c.Name)
		equals := make([]string, 0, len(c.Fields))
		for _, f := range c.Fields {
			if _, ok := f.Type.(model.ListOf); ok {
				equals = append(equals, fmt.Sprintf("      && _listEquals(other.%s, %s)", f.Name, f.Name))
				continue
			}
			equals = append(equals, fmt.Sprintf("      && other.%s == %s", f.Name, f.Name))
		}
		out.add("%s;", strings.Join(equals, "\n"))
	}
	out.add("  }")
}

func addHashCode(c *model.Class, out *lines) {
	out.add("\n  @override")
	if len(c.Fields) == 0 {
		out.add("  int get hashCode => super.hashCode;")
		return
	}
	out.add("  int get hashCode => Object.hashAll([")
	for _, f := range c.Fields {
		l, ok := f.Type.(model.ListOf)
		switch {
		case ok && l.Nullable:
			out.add("    Object.hashAll(%s ?? const []),", f.Name)
		case ok:
			out.add("    Object.hashAll(%s),", f.Name)
		default:
			out.add("    %s.hashCode,", f.Name)
		}
	}
	out.add("  ]);")
}

// addListEquals writes the element-wise comparison used for list fields.
func addListEquals(out *lines) {
	out.add("\n  static bool _listEquals<T>(List<T>? a, List<T>? b) {")
	out.add("    if (identical(a, b)) return true;")
	out.add("    if (a == null || b == null || a.length != b.length) return false;")
	out.add("    for (var i = 0; i < a.length; i++) {")
	out.add("      if (a[i] != b[i]) return false;")
	out.add("    }")
	out.add("    return true;")
	out.add("  }")
}
