package parser

import (
	"github.com/cmmoran/flugen/internal/model"
)

type state int

const (
	seeking  state = iota // looking for the marker
	inHeader              // marker seen, expecting the class header
	inBody                // inside a recognized class block
)

// Parser holds the state of a single Parse run.
type Parser struct {
	nodes   []Node
	state   state
	depth   int
	current *model.Class
	classes []*model.Class
}

// Parse extracts every annotated class from content, in source order.
// Malformed or unterminated blocks are dropped without error.
func Parse(source, content string) *model.File {
	p := &Parser{nodes: Lex(content)}
	p.run()
	return &model.File{Source: source, Classes: p.classes}
}

// ParseNodes runs the state machine over pre-lexed nodes.
func ParseNodes(nodes []Node) []*model.Class {
	p := &Parser{nodes: nodes}
	p.run()
	return p.classes
}

func (p *Parser) run() {
	if p.classes == nil {
		p.classes = make([]*model.Class, 0)
	}
	for i := range p.nodes {
		switch p.state {
		case seeking:
			p.seek(i)
		case inHeader:
			p.header(i)
		case inBody:
			p.body(i)
		}
	}
	// a class still open at end of input is abandoned
	p.current = nil
}

func (p *Parser) seek(i int) {
	if p.nodes[i].Kind == NodeMarker {
		p.state = inHeader
	}
}

func (p *Parser) header(i int) {
	n := p.nodes[i]
	switch n.Kind {
	case NodeBlank, NodeMarker, NodeOption:
		return
	case NodeHeader:
		p.current = &model.Class{Name: n.Name, Fields: make([]*model.Field, 0)}
		if n.Depth() <= 0 {
			p.close()
			return
		}
		p.depth = n.Depth()
		p.state = inBody
	default:
		p.state = seeking
	}
}

func (p *Parser) body(i int) {
	n := p.nodes[i]
	switch n.Kind {
	case NodeBlank, NodeMarker, NodeOption:
		return
	case NodeConstructor:
		if p.depth == 1 && n.Name == p.current.Name {
			p.current.ConstConstructor = true
			return
		}
	case NodeField:
		if p.depth == 1 {
			p.current.Fields = append(p.current.Fields, p.field(i))
			return
		}
	}

	p.depth += n.Depth()
	if p.depth <= 0 {
		p.close()
	}
}

// field builds a Field from nodes[i], reading options from the line directly
// above it.
func (p *Parser) field(i int) *model.Field {
	n := p.nodes[i]
	var opts *model.FieldOptions
	if i > 0 && p.nodes[i-1].Kind == NodeOption {
		opts = ParseOptions(p.nodes[i-1].Payload)
	}
	return &model.Field{
		Name:    n.Name,
		Type:    Resolve(n.Type, opts),
		Options: opts,
	}
}

func (p *Parser) close() {
	p.classes = append(p.classes, p.current)
	p.current = nil
	p.depth = 0
	p.state = seeking
}
