package parser

import "strings"

// NodeKind tags a lexed line with the construct it matched.
type NodeKind int

const (
	NodeBlank       NodeKind = iota // empty once comments are stripped
	NodeMarker                      // the trigger marker
	NodeOption                      // a field option comment
	NodeHeader                      // abstract class _Name {
	NodeConstructor                 // const _Name();
	NodeField                       // <type> get <name>;
	NodeCode                        // anything else
)

var nodeKindNames = [...]string{
	NodeBlank:       "blank",
	NodeMarker:      "marker",
	NodeOption:      "option",
	NodeHeader:      "header",
	NodeConstructor: "constructor",
	NodeField:       "field",
	NodeCode:        "code",
}

func (k NodeKind) String() string {
	if k < 0 || int(k) >= len(nodeKindNames) {
		return "invalid"
	}
	return nodeKindNames[k]
}

// Node is one classified source line. Every line carries its brace counts so
// the parser can keep depth no matter how the line was classified.
type Node struct {
	Kind    NodeKind
	Line    int    // 1-based line number
	Raw     string // line as read, without the line terminator
	Text    string // Raw with the trailing comment removed and right-trimmed
	Name    string // header, constructor or field identifier
	Type    string // raw field type text
	Payload string // option directive list
	Opens   int    // '{' outside strings and comments
	Closes  int    // '}' outside strings and comments
}

// Depth is the net brace change contributed by the line.
func (n Node) Depth() int {
	return n.Opens - n.Closes
}

// Lex splits content into lines and classifies each one independently.
func Lex(content string) []Node {
	lines := strings.Split(content, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	nodes := make([]Node, 0, len(lines))
	for i, raw := range lines {
		nodes = append(nodes, lexLine(i+1, strings.TrimSuffix(raw, "\r")))
	}
	return nodes
}

func lexLine(num int, raw string) Node {
	n := Node{Line: num, Raw: raw}
	n.Text, n.Opens, n.Closes = scanCode(raw)

	switch {
	case matchMarker(raw):
		n.Kind = NodeMarker
	case isOption(raw, &n):
		n.Kind = NodeOption
	case n.Text == "":
		n.Kind = NodeBlank
	default:
		if name, ok := matchHeader(n.Text); ok {
			n.Kind, n.Name = NodeHeader, name
		} else if name, ok := matchConstructor(n.Text); ok {
			n.Kind, n.Name = NodeConstructor, name
		} else if typ, name, ok := matchField(n.Text); ok {
			n.Kind, n.Type, n.Name = NodeField, typ, name
		} else {
			n.Kind = NodeCode
		}
	}
	return n
}

func isOption(raw string, n *Node) bool {
	payload, ok := matchOption(raw)
	if ok {
		n.Payload = payload
		n.Opens, n.Closes = 0, 0
	}
	return ok
}

// scanCode cuts raw at the first `//` that is outside a string literal and
// counts the braces before it. String literals are delimited by ' or " with
// backslash escapes; a literal left open at end of line ends there.
func scanCode(raw string) (text string, opens, closes int) {
	var quote byte
	end := len(raw)
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if quote != 0 {
			switch c {
			case '\\':
				i++
			case quote:
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
		case '/':
			if i+1 < len(raw) && raw[i+1] == '/' {
				end = i
				i = len(raw)
			}
		case '{':
			opens++
		case '}':
			closes++
		}
	}
	return strings.TrimRight(raw[:end], " \t"), opens, closes
}
