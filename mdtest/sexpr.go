// Package mdtest extracts compiler test cases from Markdown documents.
// A test case is a "### Test: name" heading followed by one input code
// fence (streamlang-program or streamlang-expr) and one or more
// assertion fences (ast, asm, execute, compile-error). AST assertions
// are written as s-expressions and compared structurally.
package mdtest

import (
	"fmt"
	"strings"
	"unicode"
)

// NodeType represents the type of an s-expression Node
type NodeType int

const (
	NodeSymbol NodeType = iota
	NodeString
	NodeInteger
	NodeList
)

// Node represents one s-expression datum.
type Node struct {
	Type  NodeType
	Text  string  // NodeSymbol, NodeString, NodeInteger
	Items []*Node // NodeList
}

// String renders the node in canonical form: one space between list
// items, strings quoted with \" and \\ escapes.
func (n *Node) String() string {
	switch n.Type {
	case NodeSymbol:
		return n.Text
	case NodeString:
		escaped := strings.ReplaceAll(n.Text, "\\", "\\\\")
		escaped = strings.ReplaceAll(escaped, "\"", "\\\"")
		return fmt.Sprintf("\"%s\"", escaped)
	case NodeInteger:
		return n.Text
	case NodeList:
		var parts []string
		for _, item := range n.Items {
			parts = append(parts, item.String())
		}
		return fmt.Sprintf("(%s)", strings.Join(parts, " "))
	default:
		return fmt.Sprintf("UNKNOWN_NODE_TYPE_%d", n.Type)
	}
}

func NewSymbol(name string) *Node {
	return &Node{Type: NodeSymbol, Text: name}
}

func NewString(value string) *Node {
	return &Node{Type: NodeString, Text: value}
}

func NewInteger(text string) *Node {
	return &Node{Type: NodeInteger, Text: text}
}

func NewList(items []*Node) *Node {
	return &Node{Type: NodeList, Items: items}
}

type parser struct {
	lexer        *lexer
	currentToken token
}

// Parse parses the entire input and returns the top-level datum.
func Parse(input string) (*Node, error) {
	p := &parser{lexer: newLexer(input)}
	p.nextToken()

	result, err := p.parseDatum()
	if len(p.lexer.errors) > 0 {
		// Lexer errors take priority because they might cause confusing parser errors.
		return nil, fmt.Errorf("%s", p.lexer.errors[0])
	}
	if err != nil {
		return nil, err
	}

	if p.currentToken.Type != tokenEOF {
		return nil, fmt.Errorf("expected EOF but got %s", p.currentToken.Type)
	}

	return result, nil
}

func (p *parser) nextToken() {
	p.currentToken = p.lexer.nextToken()
}

func (p *parser) parseDatum() (*Node, error) {
	switch p.currentToken.Type {
	case tokenSymbol:
		node := NewSymbol(p.currentToken.Value)
		p.nextToken()
		return node, nil
	case tokenString:
		node := NewString(p.currentToken.Value)
		p.nextToken()
		return node, nil
	case tokenInteger:
		node := NewInteger(p.currentToken.Value)
		p.nextToken()
		return node, nil
	case tokenLParen:
		return p.parseList()
	default:
		return nil, fmt.Errorf("unexpected token: %s", p.currentToken.Type)
	}
}

func (p *parser) parseList() (*Node, error) {
	var items []*Node
	p.nextToken() // consume '('

	for p.currentToken.Type != tokenRParen && p.currentToken.Type != tokenEOF {
		item, err := p.parseDatum()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if p.currentToken.Type != tokenRParen {
		return nil, fmt.Errorf("expected ')' but got %s", p.currentToken.Type)
	}
	p.nextToken() // consume ')'

	return NewList(items), nil
}

type tokenType int

const (
	tokenEOF tokenType = iota
	tokenSymbol
	tokenString
	tokenInteger
	tokenLParen
	tokenRParen
)

func (t tokenType) String() string {
	switch t {
	case tokenEOF:
		return "EOF"
	case tokenSymbol:
		return "symbol"
	case tokenString:
		return "string"
	case tokenInteger:
		return "integer"
	case tokenLParen:
		return "'('"
	case tokenRParen:
		return "')'"
	default:
		return fmt.Sprintf("unknown token %d", int(t))
	}
}

type token struct {
	Type  tokenType
	Value string
}

type lexer struct {
	input    string
	position int
	current  rune
	errors   []string
}

func newLexer(input string) *lexer {
	l := &lexer{input: input}
	l.readChar()
	return l
}

func (l *lexer) readChar() {
	if l.position >= len(l.input) {
		l.current = 0
	} else {
		l.current = rune(l.input[l.position])
	}
	l.position++
}

func (l *lexer) peekChar() rune {
	if l.position >= len(l.input) {
		return 0
	}
	return rune(l.input[l.position])
}

func (l *lexer) skipWhitespace() {
	for unicode.IsSpace(l.current) {
		l.readChar()
	}
}

func (l *lexer) skipComment() {
	for l.current != '\n' && l.current != '\r' && l.current != 0 {
		l.readChar()
	}
}

func (l *lexer) readSymbol() string {
	start := l.position - 1
	for isSymbolChar(l.current) {
		l.readChar()
	}
	return l.input[start : l.position-1]
}

func (l *lexer) readString() (string, error) {
	var result strings.Builder
	l.readChar() // skip opening quote

	for l.current != '"' && l.current != 0 {
		if l.current == '\\' {
			l.readChar()
			switch l.current {
			case '"':
				result.WriteByte('"')
			case '\\':
				result.WriteByte('\\')
			default:
				return "", fmt.Errorf("invalid escape sequence: \\%c", l.current)
			}
		} else {
			result.WriteRune(l.current)
		}
		l.readChar()
	}

	if l.current != '"' {
		return "", fmt.Errorf("unterminated string")
	}
	l.readChar() // skip closing quote

	return result.String(), nil
}

func (l *lexer) readInteger() string {
	start := l.position - 1
	if l.current == '-' {
		l.readChar()
	}
	for unicode.IsDigit(l.current) {
		l.readChar()
	}
	return l.input[start : l.position-1]
}

func (l *lexer) nextToken() token {
	for {
		l.skipWhitespace()

		switch {
		case l.current == 0:
			return token{Type: tokenEOF}
		case l.current == ';':
			l.skipComment()
			continue
		case l.current == '(':
			l.readChar()
			return token{Type: tokenLParen, Value: "("}
		case l.current == ')':
			l.readChar()
			return token{Type: tokenRParen, Value: ")"}
		case l.current == '"':
			str, err := l.readString()
			if err != nil {
				l.errors = append(l.errors, err.Error())
				return token{Type: tokenEOF}
			}
			return token{Type: tokenString, Value: str}
		case unicode.IsLetter(l.current):
			return token{Type: tokenSymbol, Value: l.readSymbol()}
		case unicode.IsDigit(l.current) || (l.current == '-' && unicode.IsDigit(l.peekChar())):
			return token{Type: tokenInteger, Value: l.readInteger()}
		default:
			l.errors = append(l.errors, fmt.Sprintf("unexpected character %q", l.current))
			return token{Type: tokenEOF}
		}
	}
}

func isSymbolChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_'
}
