package main

import (
	"testing"

	"github.com/nalgeon/be"
)

func parseExprString(t *testing.T, input string) string {
	t.Helper()
	l := NewLexer([]byte(input + "\x00"))
	l.NextToken()
	ast := ParseExpression(l)
	be.Err(t, l.Errors.Err(), nil)
	return ToSExpr(ast)
}

func TestParseLiterals(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"42", "(number 42)"},
		{"0", "(number 0)"},
		{"pos", "(ident \"pos\")"},
	}

	for _, test := range tests {
		be.Equal(t, parseExprString(t, test.input), test.expected)
	}
}

func TestParseBinaryOperations(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1 + 2", "(binary \"+\" (number 1) (number 2))"},
		{"a - b", "(binary \"-\" (ident \"a\") (ident \"b\"))"},
		{"3 * x", "(binary \"*\" (number 3) (ident \"x\"))"},
		{"x / 2", "(binary \"/\" (ident \"x\") (number 2))"},
		{"x == y", "(binary \"==\" (ident \"x\") (ident \"y\"))"},
		{"x != 0", "(binary \"!=\" (ident \"x\") (number 0))"},
		{"x < 10", "(binary \"<\" (ident \"x\") (number 10))"},
		{"x <= 10", "(binary \"<=\" (ident \"x\") (number 10))"},
		{"x > 10", "(binary \">\" (ident \"x\") (number 10))"},
		{"x >= 10", "(binary \">=\" (ident \"x\") (number 10))"},
	}

	for _, test := range tests {
		be.Equal(t, parseExprString(t, test.input), test.expected)
	}
}

func TestParseOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1 + 2 * 3", "(binary \"+\" (number 1) (binary \"*\" (number 2) (number 3)))"},
		{"(1 + 2) * 3", "(binary \"*\" (binary \"+\" (number 1) (number 2)) (number 3))"},
		{"1 < 2 + 3", "(binary \"<\" (number 1) (binary \"+\" (number 2) (number 3)))"},
		{"1 == 2 < 3", "(binary \"==\" (number 1) (binary \"<\" (number 2) (number 3)))"},
		{"a + b == c", "(binary \"==\" (binary \"+\" (ident \"a\") (ident \"b\")) (ident \"c\"))"},
	}

	for _, test := range tests {
		be.Equal(t, parseExprString(t, test.input), test.expected)
	}
}

func TestParseLeftAssociativity(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1 - 2 - 3", "(binary \"-\" (binary \"-\" (number 1) (number 2)) (number 3))"},
		{"8 / 4 / 2", "(binary \"/\" (binary \"/\" (number 8) (number 4)) (number 2))"},
		{"1 < 2 < 3", "(binary \"<\" (binary \"<\" (number 1) (number 2)) (number 3))"},
	}

	for _, test := range tests {
		be.Equal(t, parseExprString(t, test.input), test.expected)
	}
}

func TestParseUnaryNegation(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"-5", "(neg (number 5))"},
		{"-x", "(neg (ident \"x\"))"},
		// Negation binds tighter than multiplication.
		{"-2 * 3", "(binary \"*\" (neg (number 2)) (number 3))"},
		{"2 * -3", "(binary \"*\" (number 2) (neg (number 3)))"},
		{"-(1 + 2)", "(neg (binary \"+\" (number 1) (number 2)))"},
		{"1 - -2", "(binary \"-\" (number 1) (neg (number 2)))"},
	}

	for _, test := range tests {
		be.Equal(t, parseExprString(t, test.input), test.expected)
	}
}

func TestParseSensorReads(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"position()", "(position)"},
		{"duration()", "(duration)"},
		{"ended()", "(ended)"},
		{"is_playing()", "(is_playing)"},
		{"position() < duration()", "(binary \"<\" (position) (duration))"},
		{"ended() == 0", "(binary \"==\" (ended) (number 0))"},
	}

	for _, test := range tests {
		be.Equal(t, parseExprString(t, test.input), test.expected)
	}
}

func TestParseExpressionErrors(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1 +", "line 1: expected expression, found end of input"},
		{"(1 + 2", "line 1: expected ')', found end of input"},
		{"\"title\"", "line 1: string literal is not allowed in an expression"},
		{"position(", "line 1: expected ')', found end of input"},
		{"* 2", "line 1: expected expression, found '*'"},
	}

	for _, test := range tests {
		l := NewLexer([]byte(test.input + "\x00"))
		l.NextToken()
		ParseExpression(l)

		be.True(t, l.Errors.HasErrors())
		be.Equal(t, l.Errors.Err().Error(), test.expected)
	}
}

func TestParseExpressionReportsOnlyFirstError(t *testing.T) {
	l := NewLexer([]byte("1 + + +\x00"))
	l.NextToken()
	ParseExpression(l)

	be.Equal(t, l.Errors.Len(), 1)
}
