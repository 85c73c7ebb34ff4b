package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexLine(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Node
	}{
		{
			name: "marker",
			raw:  "// @flu",
			want: Node{Kind: NodeMarker},
		},
		{
			name: "indented marker is only a comment",
			raw:  "  // @flu",
			want: Node{Kind: NodeBlank},
		},
		{
			name: "option comment",
			raw:  `  // @flu key="user_name" enum`,
			want: Node{Kind: NodeOption, Payload: `key="user_name" enum`},
		},
		{
			name: "option comment with colon",
			raw:  "  // @flu: enum",
			want: Node{Kind: NodeOption, Payload: "enum"},
		},
		{
			name: "header",
			raw:  "abstract class _User {",
			want: Node{Kind: NodeHeader, Text: "abstract class _User {", Name: "User", Opens: 1},
		},
		{
			name: "single line header",
			raw:  "abstract class _Empty {}",
			want: Node{Kind: NodeHeader, Text: "abstract class _Empty {}", Name: "Empty", Opens: 1, Closes: 1},
		},
		{
			name: "const constructor",
			raw:  "  const _User();",
			want: Node{Kind: NodeConstructor, Text: "  const _User();", Name: "User"},
		},
		{
			name: "field with trailing comment",
			raw:  "  int? get age; // years",
			want: Node{Kind: NodeField, Text: "  int? get age;", Type: "int?", Name: "age"},
		},
		{
			name: "generic field",
			raw:  "  List<Item>? get items;",
			want: Node{Kind: NodeField, Text: "  List<Item>? get items;", Type: "List<Item>?", Name: "items"},
		},
		{
			name: "deeper indentation is code",
			raw:  "    int get age;",
			want: Node{Kind: NodeCode, Text: "    int get age;"},
		},
		{
			name: "method opening a block",
			raw:  "  bool get isAdult {",
			want: Node{Kind: NodeCode, Text: "  bool get isAdult {", Opens: 1},
		},
		{
			name: "braces inside strings are ignored",
			raw:  "    return '{${name}}'; // }",
			want: Node{Kind: NodeCode, Text: "    return '{${name}}';"},
		},
		{
			name: "slashes inside strings are kept",
			raw:  "  static const url = 'https://example.com'; // {",
			want: Node{Kind: NodeCode, Text: "  static const url = 'https://example.com';"},
		},
		{
			name: "comment only",
			raw:  "  // just a note {",
			want: Node{Kind: NodeBlank},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := lexLine(7, tt.raw)
			tt.want.Line = 7
			tt.want.Raw = tt.raw
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLex(t *testing.T) {
	nodes := Lex("// @flu\r\nabstract class _A {\r\n}\r\n")
	require.Len(t, nodes, 3)
	assert.Equal(t, NodeMarker, nodes[0].Kind)
	assert.Equal(t, NodeHeader, nodes[1].Kind)
	assert.Equal(t, NodeCode, nodes[2].Kind)
	assert.Equal(t, -1, nodes[2].Depth())
	assert.Equal(t, 3, nodes[2].Line)
}

func TestNodeKindString(t *testing.T) {
	assert.Equal(t, "field", NodeField.String())
	assert.Equal(t, "invalid", NodeKind(42).String())
}
