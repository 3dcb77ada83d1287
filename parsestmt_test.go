package main

import (
	"testing"

	"github.com/nalgeon/be"
)

func parseStmtString(t *testing.T, input string) string {
	t.Helper()
	l := NewLexer([]byte(input + "\x00"))
	l.NextToken()
	ast := ParseStatement(l)
	be.Err(t, l.Errors.Err(), nil)
	return ToSExpr(ast)
}

func TestParseDeclarations(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"int x;", "(int-decl \"x\")"},
		{"int x = 5;", "(int-decl \"x\" (number 5))"},
		{"int x = a + 1;", "(int-decl \"x\" (binary \"+\" (ident \"a\") (number 1)))"},
		{"string title;", "(str-decl \"title\")"},
		{"string title = \"Intro\";", "(str-decl \"title\" (string \"Intro\"))"},
	}

	for _, test := range tests {
		be.Equal(t, parseStmtString(t, test.input), test.expected)
	}
}

func TestParseAssignment(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"x = 5;", "(assign (ident \"x\") (number 5))"},
		{"x = y * 2;", "(assign (ident \"x\") (binary \"*\" (ident \"y\") (number 2)))"},
		{"x = \"literal\";", "(assign (ident \"x\") (string \"literal\"))"},
		{"x = position();", "(assign (ident \"x\") (position))"},
	}

	for _, test := range tests {
		be.Equal(t, parseStmtString(t, test.input), test.expected)
	}
}

func TestParseIfStatement(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{
			"if (x > 0) pause();",
			"(if (binary \">\" (ident \"x\") (number 0)) (pause))",
		},
		{
			"if (x > 0) pause(); else stop();",
			"(if (binary \">\" (ident \"x\") (number 0)) (pause) (stop))",
		},
		{
			"if (x) { pause(); stop(); }",
			"(if (ident \"x\") (block (pause) (stop)))",
		},
	}

	for _, test := range tests {
		be.Equal(t, parseStmtString(t, test.input), test.expected)
	}
}

func TestParseDanglingElse(t *testing.T) {
	// else binds to the nearest unmatched if
	result := parseStmtString(t, "if (1) if (2) pause(); else stop();")

	be.Equal(t, result, "(if (number 1) (if (number 2) (pause) (stop)))")
}

func TestParseWhileStatement(t *testing.T) {
	result := parseStmtString(t, "while (ended() == 0) { wait(1); }")

	be.Equal(t, result, "(while (binary \"==\" (ended) (number 0)) (block (wait (number 1))))")
}

func TestParseBlocks(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"{}", "(block)"},
		{"{ pause(); }", "(block (pause))"},
		{"{ { play(); } }", "(block (block (play)))"},
	}

	for _, test := range tests {
		be.Equal(t, parseStmtString(t, test.input), test.expected)
	}
}

func TestParsePrintStatement(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"print(x);", "(print (ident \"x\"))"},
		{"print(a + b);", "(print (binary \"+\" (ident \"a\") (ident \"b\")))"},
		{"print(\"done\");", "(print (string \"done\"))"},
		{"print(position());", "(print (position))"},
	}

	for _, test := range tests {
		be.Equal(t, parseStmtString(t, test.input), test.expected)
	}
}

func TestParseStreamingCommands(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"open(\"Trailer 1\");", "(open (string \"Trailer 1\"))"},
		{"open(42);", "(open (number 42))"},
		{"open(id + 1);", "(open (binary \"+\" (ident \"id\") (number 1)))"},
		{"play();", "(play)"},
		{"play(2);", "(play (number 2))"},
		{"play(speed * 2);", "(play (binary \"*\" (ident \"speed\") (number 2)))"},
		{"pause();", "(pause)"},
		{"stop();", "(stop)"},
		{"seek(30);", "(seek (number 30))"},
		{"forward(10);", "(forward (number 10))"},
		{"rewind(x);", "(rewind (ident \"x\"))"},
		{"wait(duration());", "(wait (duration))"},
	}

	for _, test := range tests {
		be.Equal(t, parseStmtString(t, test.input), test.expected)
	}
}

func TestParseEmptyStatement(t *testing.T) {
	be.Equal(t, parseStmtString(t, ";"), "(empty)")
}

func TestParseProgramRoot(t *testing.T) {
	source := "int a = 2;\nint b = 3;\nprint(a + b);"
	l := NewLexer([]byte(source + "\x00"))
	l.NextToken()
	ast := ParseProgram(l)
	be.Err(t, l.Errors.Err(), nil)

	be.Equal(t, ast.Kind, NodeProgram)
	be.Equal(t, len(ast.Children), 3)
	be.Equal(t, ToSExpr(ast),
		"(program (int-decl \"a\" (number 2)) (int-decl \"b\" (number 3)) (print (binary \"+\" (ident \"a\") (ident \"b\"))))")
}

func TestParseStatementLineNumbers(t *testing.T) {
	source := "int a = 1;\nwhile (a < 3)\n  a = a + 1;"
	l := NewLexer([]byte(source + "\x00"))
	l.NextToken()
	ast := ParseProgram(l)
	be.Err(t, l.Errors.Err(), nil)

	be.Equal(t, ast.Children[0].Line, 1)
	be.Equal(t, ast.Children[1].Line, 2)
	be.Equal(t, ast.Children[1].Children[1].Line, 3) // loop body
}

func TestParseStatementErrors(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"int x = 5", "line 1: expected ';', found end of input"},
		{"int 5;", "line 1: expected identifier, found number"},
		{"x + 1;", "line 1: expected '=', found '+'"},
		{"if x > 0 pause();", "line 1: expected '(', found identifier"},
		{"while (1) pause()", "line 1: expected ';', found end of input"},
		{"pause;", "line 1: expected '(', found ';'"},
		{"seek();", "line 1: expected expression, found ')'"},
		{"play(2;", "line 1: expected ')', found ';'"},
		{"{ pause();", "line 1: expected '}', found end of input"},
		{"else pause();", "line 1: unexpected 'else' at start of statement"},
		{"int x = \"text\";", "line 1: string literal is not allowed in an expression"},
		{"open(\"a\" + \"b\");", "line 1: expected ')', found '+'"},
	}

	for _, test := range tests {
		l := NewLexer([]byte(test.input + "\x00"))
		l.NextToken()
		ParseProgram(l)

		be.True(t, l.Errors.HasErrors())
		be.Equal(t, l.Errors.Err().Error(), test.expected)
	}
}

func TestParseErrorLineNumber(t *testing.T) {
	source := "int a = 1;\nint b = 2;\nint c = ;"
	l := NewLexer([]byte(source + "\x00"))
	l.NextToken()
	ParseProgram(l)

	be.True(t, l.Errors.HasErrors())
	be.Equal(t, l.Errors.Err().Error(), "line 3: expected expression, found ';'")
}
