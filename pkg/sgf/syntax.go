package sgf

import (
	"fmt"
	"strings"

	"github.com/aretw0/goban/pkg/gametree"
)

// RawNode is a node as written in the file: an ordered list of properties.
type RawNode struct {
	Properties []gametree.Property
}

// Get returns the values of the first property named ident.
func (n RawNode) Get(ident string) ([]string, bool) {
	for _, p := range n.Properties {
		if p.Ident == ident {
			return p.Values, true
		}
	}
	return nil, false
}

// RawTree is the syntactic form of an SGF game tree: a node sequence followed
// by zero or more variations.
type RawTree struct {
	Nodes      []RawNode
	Variations []*RawTree
}

// SyntaxError reports where parsing stopped and what the parser expected there.
type SyntaxError struct {
	Offset   int    // byte offset into the input
	Line     int    // 1-based
	Column   int    // 1-based, in bytes
	Expected string // e.g. "'('", "property value"
	Found    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("sgf: syntax error at line %d, column %d: expected %s, found %s", e.Line, e.Column, e.Expected, e.Found)
}

// parser is a recursive descent parser over the SGF grammar:
//
//	Collection = GameTree { GameTree }
//	GameTree   = "(" Sequence { GameTree } ")"
//	Sequence   = Node { Node }
//	Node       = ";" { Property }
//	Property   = PropIdent PropValue { PropValue }
//	PropIdent  = UcLetter { UcLetter }
//	PropValue  = "[" CValueType "]"
type parser struct {
	src  string
	pos  int
	line int
	col  int
}

// ParseRaw parses a collection into its syntactic form without interpreting
// any property.
func ParseRaw(text string) ([]*RawTree, error) {
	p := &parser{src: strings.TrimPrefix(text, "\ufeff"), line: 1, col: 1}
	return p.collection()
}

func (p *parser) errorf(expected string) *SyntaxError {
	found := "end of input"
	if p.pos < len(p.src) {
		found = fmt.Sprintf("%q", p.src[p.pos])
	}
	return &SyntaxError{Offset: p.pos, Line: p.line, Column: p.col, Expected: expected, Found: found}
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) peek() byte { return p.src[p.pos] }

func (p *parser) advance() byte {
	c := p.src[p.pos]
	p.pos++
	if c == '\n' {
		p.line++
		p.col = 1
	} else {
		p.col++
	}
	return c
}

func (p *parser) skipSpace() {
	for !p.eof() {
		switch p.peek() {
		case ' ', '\t', '\r', '\n', '\v', '\f':
			p.advance()
		default:
			return
		}
	}
}

func (p *parser) expect(c byte) error {
	p.skipSpace()
	if p.eof() || p.peek() != c {
		return p.errorf(fmt.Sprintf("%q", c))
	}
	p.advance()
	return nil
}

func (p *parser) collection() ([]*RawTree, error) {
	var trees []*RawTree
	for {
		p.skipSpace()
		if p.eof() && len(trees) > 0 {
			return trees, nil
		}
		if p.eof() || p.peek() != '(' {
			if len(trees) == 0 {
				return nil, p.errorf("'('")
			}
			return nil, p.errorf("'(' or end of input")
		}
		t, err := p.gameTree()
		if err != nil {
			return nil, err
		}
		trees = append(trees, t)
	}
}

func (p *parser) gameTree() (*RawTree, error) {
	if err := p.expect('('); err != nil {
		return nil, err
	}
	t := &RawTree{}
	for {
		p.skipSpace()
		if p.eof() || p.peek() != ';' {
			break
		}
		p.advance()
		n, err := p.node()
		if err != nil {
			return nil, err
		}
		t.Nodes = append(t.Nodes, n)
	}
	if len(t.Nodes) == 0 {
		return nil, p.errorf("';'")
	}
	for {
		p.skipSpace()
		if p.eof() {
			return nil, p.errorf("')'")
		}
		switch p.peek() {
		case '(':
			v, err := p.gameTree()
			if err != nil {
				return nil, err
			}
			t.Variations = append(t.Variations, v)
		case ')':
			p.advance()
			return t, nil
		default:
			return nil, p.errorf("'(', ')' or ';'")
		}
	}
}

func (p *parser) node() (RawNode, error) {
	var n RawNode
	for {
		p.skipSpace()
		if p.eof() || !isUpper(p.peek()) {
			return n, nil
		}
		prop, err := p.property()
		if err != nil {
			return n, err
		}
		n.Properties = append(n.Properties, prop)
	}
}

func (p *parser) property() (gametree.Property, error) {
	start := p.pos
	for !p.eof() && isUpper(p.peek()) {
		p.advance()
	}
	prop := gametree.Property{Ident: p.src[start:p.pos]}
	for {
		p.skipSpace()
		if p.eof() || p.peek() != '[' {
			break
		}
		v, err := p.value()
		if err != nil {
			return prop, err
		}
		prop.Values = append(prop.Values, v)
	}
	if len(prop.Values) == 0 {
		return prop, p.errorf("property value '['")
	}
	return prop, nil
}

// value reads a bracketed value. A backslash escapes the next character; a
// backslash before a line break removes both (a soft line break).
func (p *parser) value() (string, error) {
	p.advance() // '['
	var sb strings.Builder
	for {
		if p.eof() {
			return "", p.errorf("']'")
		}
		c := p.advance()
		switch c {
		case ']':
			return sb.String(), nil
		case '\\':
			if p.eof() {
				return "", p.errorf("escaped character")
			}
			e := p.advance()
			switch e {
			case '\n':
				if !p.eof() && p.peek() == '\r' {
					p.advance()
				}
			case '\r':
				if !p.eof() && p.peek() == '\n' {
					p.advance()
				}
			default:
				sb.WriteByte(e)
			}
		default:
			sb.WriteByte(c)
		}
	}
}

func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }

// escape quotes the characters that terminate or escape a value.
func escape(s string) string {
	if !strings.ContainsAny(s, `\]`) {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' || s[i] == ']' {
			sb.WriteByte('\\')
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

// WriteRaw renders trees in SGF syntax. Variations start on a new line.
func WriteRaw(trees []*RawTree) string {
	var sb strings.Builder
	for i, t := range trees {
		if i > 0 {
			sb.WriteByte('\n')
		}
		writeTree(&sb, t)
	}
	sb.WriteByte('\n')
	return sb.String()
}

func writeTree(sb *strings.Builder, t *RawTree) {
	sb.WriteByte('(')
	for _, n := range t.Nodes {
		sb.WriteByte(';')
		for _, prop := range n.Properties {
			sb.WriteString(prop.Ident)
			for _, v := range prop.Values {
				sb.WriteByte('[')
				sb.WriteString(escape(v))
				sb.WriteByte(']')
			}
		}
	}
	for _, v := range t.Variations {
		sb.WriteByte('\n')
		writeTree(sb, v)
	}
	sb.WriteByte(')')
}
