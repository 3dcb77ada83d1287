package mdtest

import (
	"strings"
	"testing"

	"github.com/nalgeon/be"
)

func TestParseSymbol(t *testing.T) {
	node, err := Parse("pause")
	be.Err(t, err, nil)
	be.Equal(t, node.Type, NodeSymbol)
	be.Equal(t, node.Text, "pause")
	be.Equal(t, node.String(), "pause")
}

func TestParseSymbolWithHyphenAndUnderscore(t *testing.T) {
	tests := []string{"int-decl", "str-decl", "is_playing", "compile-error"}

	for _, input := range tests {
		node, err := Parse(input)
		be.Err(t, err, nil)
		be.Equal(t, node.Type, NodeSymbol)
		be.Equal(t, node.Text, input)
	}
}

func TestParseString(t *testing.T) {
	node, err := Parse(`"hello world"`)
	be.Err(t, err, nil)
	be.Equal(t, node.Type, NodeString)
	be.Equal(t, node.Text, "hello world")
	be.Equal(t, node.String(), `"hello world"`)
}

func TestParseStringEscapes(t *testing.T) {
	node, err := Parse(`"say \"hi\" \\ twice"`)
	be.Err(t, err, nil)
	be.Equal(t, node.Type, NodeString)
	be.Equal(t, node.Text, `say "hi" \ twice`)
	be.Equal(t, node.String(), `"say \"hi\" \\ twice"`)
}

func TestParseInteger(t *testing.T) {
	tests := []string{"0", "42", "-7", "180"}

	for _, input := range tests {
		node, err := Parse(input)
		be.Err(t, err, nil)
		be.Equal(t, node.Type, NodeInteger)
		be.Equal(t, node.Text, input)
		be.Equal(t, node.String(), input)
	}
}

func TestParseEmptyList(t *testing.T) {
	node, err := Parse("()")
	be.Err(t, err, nil)
	be.Equal(t, node.Type, NodeList)
	be.Equal(t, len(node.Items), 0)
	be.Equal(t, node.String(), "()")
}

func TestParseFlatList(t *testing.T) {
	node, err := Parse(`(binary "+" 1 2)`)
	be.Err(t, err, nil)
	be.Equal(t, node.Type, NodeList)
	be.Equal(t, len(node.Items), 4)
	be.Equal(t, node.Items[0].Type, NodeSymbol)
	be.Equal(t, node.Items[0].Text, "binary")
	be.Equal(t, node.Items[1].Type, NodeString)
	be.Equal(t, node.Items[1].Text, "+")
	be.Equal(t, node.Items[2].Type, NodeInteger)
	be.Equal(t, node.Items[3].Type, NodeInteger)
}

func TestParseNestedList(t *testing.T) {
	node, err := Parse(`(if (binary ">" (ident "x") (number 0)) (pause))`)
	be.Err(t, err, nil)
	be.Equal(t, node.Type, NodeList)
	be.Equal(t, len(node.Items), 3)
	be.Equal(t, node.Items[0].Text, "if")
	be.Equal(t, node.Items[1].Type, NodeList)
	be.Equal(t, node.Items[2].String(), "(pause)")
}

func TestParseNormalizesWhitespace(t *testing.T) {
	// Multi-line assertions render back in canonical single-line form.
	node, err := Parse("(binary \"+\"\n  (number 1)\n  (number 2))")
	be.Err(t, err, nil)
	be.Equal(t, node.String(), `(binary "+" (number 1) (number 2))`)
}

func TestParseSkipsComments(t *testing.T) {
	node, err := Parse("; leading comment\n(pause) ; trailing")
	be.Err(t, err, nil)
	be.Equal(t, node.String(), "(pause)")
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"(unclosed list", "expected ')' but got EOF"},
		{`"unterminated`, "unterminated string"},
		{`"bad \n escape"`, `invalid escape sequence: \n`},
		{"(pause) extra", "expected EOF but got symbol"},
		{"", "unexpected token: EOF"},
	}

	for _, test := range tests {
		_, err := Parse(test.input)
		be.True(t, err != nil)
		be.True(t, strings.Contains(err.Error(), test.expected))
	}
}

func TestParseUnexpectedCharacter(t *testing.T) {
	_, err := Parse("(pause @)")
	be.True(t, err != nil)
	be.True(t, strings.Contains(err.Error(), "unexpected character"))
}

func TestStringRoundTrip(t *testing.T) {
	inputs := []string{
		"(program (int-decl \"a\" (number 2)) (print (ident \"a\")))",
		"(while (binary \"==\" (ended) (number 0)) (block (wait (number 10))))",
		"(neg (number 5))",
		"(open (string \"Trailer 1\"))",
	}

	for _, input := range inputs {
		node, err := Parse(input)
		be.Err(t, err, nil)
		be.Equal(t, node.String(), input)
	}
}
