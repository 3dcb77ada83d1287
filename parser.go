package main

// Recursive descent parser for StreamLang. All parse functions share
// the contract that the first syntax error is recorded in l.Errors and
// the lexer is fast-forwarded to EOF, so parsing unwinds without
// producing further diagnostics.

// ParseProgram parses an entire source buffer into a single program
// root. Callers must check l.Errors before using the result.
func ParseProgram(l *Lexer) *ASTNode {
	root := &ASTNode{Kind: NodeProgram, Line: l.CurrLine}
	for l.CurrTokenType != EOF {
		root.Children = append(root.Children, ParseStatement(l))
		if l.Errors.HasErrors() {
			break
		}
	}
	return root
}

// expect consumes the current token if it matches, otherwise reports
// the first error and aborts the lexer.
func expect(l *Lexer, expected TokenType) {
	if l.Errors.HasErrors() {
		return
	}
	if l.CurrTokenType != expected {
		l.Errors.Add(l.CurrLine, "expected %s, found %s", tokenName(expected), tokenName(l.CurrTokenType))
		l.abort()
		return
	}
	l.NextToken()
}

func tokenName(t TokenType) string {
	switch t {
	case IDENT:
		return "identifier"
	case NUMBER:
		return "number"
	case STRING_LIT:
		return "string literal"
	case EOF:
		return "end of input"
	case INT, STRING, IF, ELSE, WHILE, PRINT, OPEN, PLAY, PAUSE, STOP,
		SEEK, FORWARD, REWIND, WAIT, POSITION, DURATION, ENDED, IS_PLAYING:
		return "'" + keywordSpelling(t) + "'"
	default:
		return "'" + string(t) + "'"
	}
}

func keywordSpelling(t TokenType) string {
	for word, tt := range keywords {
		if tt == t {
			return word
		}
	}
	return string(t)
}

// ParseStatement parses a statement and returns an AST node
func ParseStatement(l *Lexer) *ASTNode {
	line := l.CurrLine

	switch l.CurrTokenType {
	case INT:
		expect(l, INT)
		name := l.CurrLiteral
		expect(l, IDENT)
		node := &ASTNode{Kind: NodeIntDecl, Line: line, String: name}
		if l.CurrTokenType == ASSIGN {
			expect(l, ASSIGN)
			node.Children = append(node.Children, ParseExpression(l))
		}
		expect(l, SEMICOLON)
		return node

	case STRING:
		expect(l, STRING)
		name := l.CurrLiteral
		expect(l, IDENT)
		node := &ASTNode{Kind: NodeStrDecl, Line: line, String: name}
		if l.CurrTokenType == ASSIGN {
			expect(l, ASSIGN)
			lit := &ASTNode{Kind: NodeString, Line: l.CurrLine, String: l.CurrLiteral}
			expect(l, STRING_LIT)
			node.Children = append(node.Children, lit)
		}
		expect(l, SEMICOLON)
		return node

	case IDENT:
		target := &ASTNode{Kind: NodeIdent, Line: line, String: l.CurrLiteral}
		expect(l, IDENT)
		expect(l, ASSIGN)
		var value *ASTNode
		if l.CurrTokenType == STRING_LIT {
			value = &ASTNode{Kind: NodeString, Line: l.CurrLine, String: l.CurrLiteral}
			expect(l, STRING_LIT)
		} else {
			value = ParseExpression(l)
		}
		expect(l, SEMICOLON)
		return &ASTNode{Kind: NodeAssign, Line: line, Children: []*ASTNode{target, value}}

	case IF:
		expect(l, IF)
		expect(l, LPAREN)
		cond := ParseExpression(l)
		expect(l, RPAREN)
		then := ParseStatement(l)
		children := []*ASTNode{cond, then}
		// else binds to the nearest unmatched if
		if l.CurrTokenType == ELSE {
			expect(l, ELSE)
			children = append(children, ParseStatement(l))
		}
		return &ASTNode{Kind: NodeIf, Line: line, Children: children}

	case WHILE:
		expect(l, WHILE)
		expect(l, LPAREN)
		cond := ParseExpression(l)
		expect(l, RPAREN)
		body := ParseStatement(l)
		return &ASTNode{Kind: NodeWhile, Line: line, Children: []*ASTNode{cond, body}}

	case LBRACE:
		expect(l, LBRACE)
		node := &ASTNode{Kind: NodeBlock, Line: line}
		for l.CurrTokenType != RBRACE && l.CurrTokenType != EOF {
			node.Children = append(node.Children, ParseStatement(l))
			if l.Errors.HasErrors() {
				return node
			}
		}
		expect(l, RBRACE)
		return node

	case PRINT:
		expect(l, PRINT)
		expect(l, LPAREN)
		node := &ASTNode{Kind: NodePrint, Line: line}
		if l.CurrTokenType == STRING_LIT {
			node.String = l.CurrLiteral
			expect(l, STRING_LIT)
		} else {
			node.Children = append(node.Children, ParseExpression(l))
		}
		expect(l, RPAREN)
		expect(l, SEMICOLON)
		return node

	case OPEN:
		expect(l, OPEN)
		expect(l, LPAREN)
		node := &ASTNode{Kind: NodeOpen, Line: line}
		if l.CurrTokenType == STRING_LIT {
			title := &ASTNode{Kind: NodeString, Line: l.CurrLine, String: l.CurrLiteral}
			expect(l, STRING_LIT)
			node.Children = append(node.Children, title)
		} else {
			node.Children = append(node.Children, ParseExpression(l))
		}
		expect(l, RPAREN)
		expect(l, SEMICOLON)
		return node

	case PLAY:
		expect(l, PLAY)
		expect(l, LPAREN)
		node := &ASTNode{Kind: NodePlay, Line: line}
		if l.CurrTokenType != RPAREN {
			node.Children = append(node.Children, ParseExpression(l))
		}
		expect(l, RPAREN)
		expect(l, SEMICOLON)
		return node

	case PAUSE:
		return parseNullaryCommand(l, NodePause, PAUSE)

	case STOP:
		return parseNullaryCommand(l, NodeStop, STOP)

	case SEEK:
		return parseUnaryCommand(l, NodeSeek, SEEK)

	case FORWARD:
		return parseUnaryCommand(l, NodeForward, FORWARD)

	case REWIND:
		return parseUnaryCommand(l, NodeRewind, REWIND)

	case WAIT:
		return parseUnaryCommand(l, NodeWait, WAIT)

	case SEMICOLON:
		expect(l, SEMICOLON)
		return &ASTNode{Kind: NodeEmpty, Line: line}

	default:
		if !l.Errors.HasErrors() {
			l.Errors.Add(line, "unexpected %s at start of statement", tokenName(l.CurrTokenType))
			l.abort()
		}
		return &ASTNode{Kind: NodeEmpty, Line: line}
	}
}

// parseNullaryCommand parses `pause();` / `stop();`.
func parseNullaryCommand(l *Lexer, kind NodeKind, keyword TokenType) *ASTNode {
	line := l.CurrLine
	expect(l, keyword)
	expect(l, LPAREN)
	expect(l, RPAREN)
	expect(l, SEMICOLON)
	return &ASTNode{Kind: kind, Line: line}
}

// parseUnaryCommand parses `seek(e);` / `forward(e);` / `rewind(e);` /
// `wait(e);`, all of which require exactly one expression argument.
func parseUnaryCommand(l *Lexer, kind NodeKind, keyword TokenType) *ASTNode {
	line := l.CurrLine
	expect(l, keyword)
	expect(l, LPAREN)
	arg := ParseExpression(l)
	expect(l, RPAREN)
	expect(l, SEMICOLON)
	return &ASTNode{Kind: kind, Line: line, Children: []*ASTNode{arg}}
}

// Binary operator precedence, lowest to highest. Unary minus sits
// above multiplication and is handled in the prefix position.
const (
	precEquality       = 1 // == !=
	precRelational     = 2 // < <= > >=
	precAdditive       = 3 // + -
	precMultiplicative = 4 // * /
	precUnary          = 5
)

func precedence(tokenType TokenType) int {
	switch tokenType {
	case EQ, NOT_EQ:
		return precEquality
	case LT, LE, GT, GE:
		return precRelational
	case PLUS, MINUS:
		return precAdditive
	case ASTERISK, SLASH:
		return precMultiplicative
	default:
		return 0 // not an operator
	}
}

func isOperator(tokenType TokenType) bool {
	return precedence(tokenType) > 0
}

// ParseExpression parses an expression and returns an AST node
func ParseExpression(l *Lexer) *ASTNode {
	return parseExpressionWithPrecedence(l, 0)
}

// parseExpressionWithPrecedence implements precedence climbing
func parseExpressionWithPrecedence(l *Lexer, minPrec int) *ASTNode {
	var left *ASTNode

	if l.CurrTokenType == MINUS {
		line := l.CurrLine
		expect(l, MINUS)
		operand := parseExpressionWithPrecedence(l, precUnary)
		left = &ASTNode{Kind: NodeUnary, Line: line, Children: []*ASTNode{operand}}
	} else {
		left = parsePrimary(l)
	}

	for isOperator(l.CurrTokenType) && precedence(l.CurrTokenType) >= minPrec {
		op := l.CurrLiteral
		line := l.CurrLine
		prec := precedence(l.CurrTokenType)
		l.NextToken()

		right := parseExpressionWithPrecedence(l, prec+1) // left-associative
		left = &ASTNode{
			Kind:     NodeBinary,
			Line:     line,
			String:   op,
			Children: []*ASTNode{left, right},
		}
	}

	return left
}

// parsePrimary handles primary expressions: literals, identifiers,
// parenthesized expressions, and the zero-argument sensor reads.
func parsePrimary(l *Lexer) *ASTNode {
	line := l.CurrLine

	switch l.CurrTokenType {
	case NUMBER:
		node := &ASTNode{Kind: NodeNumber, Line: line, Integer: l.CurrIntValue}
		expect(l, NUMBER)
		return node

	case IDENT:
		node := &ASTNode{Kind: NodeIdent, Line: line, String: l.CurrLiteral}
		expect(l, IDENT)
		return node

	case LPAREN:
		expect(l, LPAREN)
		expr := parseExpressionWithPrecedence(l, 0)
		expect(l, RPAREN)
		return expr

	case POSITION:
		return parseSensorRead(l, NodePosition, POSITION)

	case DURATION:
		return parseSensorRead(l, NodeDuration, DURATION)

	case ENDED:
		return parseSensorRead(l, NodeEnded, ENDED)

	case IS_PLAYING:
		return parseSensorRead(l, NodeIsPlaying, IS_PLAYING)

	case STRING_LIT:
		l.Errors.Add(line, "string literal is not allowed in an expression")
		l.abort()
		return &ASTNode{Kind: NodeEmpty, Line: line}

	default:
		if !l.Errors.HasErrors() {
			l.Errors.Add(line, "expected expression, found %s", tokenName(l.CurrTokenType))
			l.abort()
		}
		return &ASTNode{Kind: NodeEmpty, Line: line}
	}
}

func parseSensorRead(l *Lexer, kind NodeKind, keyword TokenType) *ASTNode {
	line := l.CurrLine
	expect(l, keyword)
	expect(l, LPAREN)
	expect(l, RPAREN)
	return &ASTNode{Kind: kind, Line: line}
}
