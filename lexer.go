package main

// TokenType is the type of token (identifier, operator, literal, etc.).
type TokenType string

// Definition of token types
const (
	// Special tokens
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"

	// Identifiers + literals
	IDENT      = "IDENT"      // x, counter, _speed
	NUMBER     = "NUMBER"     // 12345
	STRING_LIT = "STRING_LIT" // "Trailer 1"

	// Operators
	ASSIGN   = "="
	PLUS     = "+"
	MINUS    = "-"
	ASTERISK = "*"
	SLASH    = "/"

	EQ     = "=="
	NOT_EQ = "!="
	LT     = "<"
	GT     = ">"
	LE     = "<="
	GE     = ">="

	// Delimiters
	SEMICOLON = ";"
	LPAREN    = "("
	RPAREN    = ")"
	LBRACE    = "{"
	RBRACE    = "}"

	// Keywords
	INT        = "INT"
	STRING     = "STRING"
	IF         = "IF"
	ELSE       = "ELSE"
	WHILE      = "WHILE"
	PRINT      = "PRINT"
	OPEN       = "OPEN"
	PLAY       = "PLAY"
	PAUSE      = "PAUSE"
	STOP       = "STOP"
	SEEK       = "SEEK"
	FORWARD    = "FORWARD"
	REWIND     = "REWIND"
	WAIT       = "WAIT"
	POSITION   = "POSITION"
	DURATION   = "DURATION"
	ENDED      = "ENDED"
	IS_PLAYING = "IS_PLAYING"
)

var keywords = map[string]TokenType{
	"int":        INT,
	"string":     STRING,
	"if":         IF,
	"else":       ELSE,
	"while":      WHILE,
	"print":      PRINT,
	"open":       OPEN,
	"play":       PLAY,
	"pause":      PAUSE,
	"stop":       STOP,
	"seek":       SEEK,
	"forward":    FORWARD,
	"rewind":     REWIND,
	"wait":       WAIT,
	"position":   POSITION,
	"duration":   DURATION,
	"ended":      ENDED,
	"is_playing": IS_PLAYING,
}

// Lexer scans a NUL-terminated source buffer one token at a time. The
// "current token" fields are public so the parser can inspect them
// directly between NextToken calls.
type Lexer struct {
	input []byte
	pos   int // current reading position in input
	line  int // 1-based line of the current reading position

	CurrTokenType TokenType
	CurrLiteral   string
	CurrIntValue  int64 // only meaningful when CurrTokenType == NUMBER
	CurrLine      int   // line the current token started on

	Errors *ErrorList
}

// NewLexer creates a lexer for the given input (must end with a 0 byte).
func NewLexer(input []byte) *Lexer {
	return &Lexer{
		input:  input,
		line:   1,
		Errors: NewErrorList(),
	}
}

// abort records nothing itself; it fast-forwards the lexer to EOF so
// that a single reported error terminates the whole compilation.
func (l *Lexer) abort() {
	l.pos = len(l.input) - 1
	l.CurrTokenType = EOF
	l.CurrLiteral = ""
}

// NextToken scans the next token into the Curr* fields.
// Call repeatedly until CurrTokenType == EOF.
func (l *Lexer) NextToken() {
	l.skipWhitespace()

	c := l.input[l.pos]
	l.CurrIntValue = 0 // reset for non-NUMBER tokens
	l.CurrLine = l.line

	if c == '=' {
		if l.input[l.pos+1] == '=' {
			l.CurrTokenType = EQ
			l.CurrLiteral = "=="
			l.pos += 2
		} else {
			l.CurrTokenType = ASSIGN
			l.CurrLiteral = string(c)
			l.pos++
		}

	} else if c == '!' {
		if l.input[l.pos+1] == '=' {
			l.CurrTokenType = NOT_EQ
			l.CurrLiteral = "!="
			l.pos += 2
		} else {
			l.Errors.Add(l.line, "unexpected character '!'")
			l.abort()
			return
		}

	} else if c == '<' {
		if l.input[l.pos+1] == '=' {
			l.CurrTokenType = LE
			l.CurrLiteral = "<="
			l.pos += 2
		} else {
			l.CurrTokenType = LT
			l.CurrLiteral = string(c)
			l.pos++
		}

	} else if c == '>' {
		if l.input[l.pos+1] == '=' {
			l.CurrTokenType = GE
			l.CurrLiteral = ">="
			l.pos += 2
		} else {
			l.CurrTokenType = GT
			l.CurrLiteral = string(c)
			l.pos++
		}

	} else if c == '+' {
		l.CurrTokenType = PLUS
		l.CurrLiteral = string(c)
		l.pos++

	} else if c == '-' {
		l.CurrTokenType = MINUS
		l.CurrLiteral = string(c)
		l.pos++

	} else if c == '*' {
		l.CurrTokenType = ASTERISK
		l.CurrLiteral = string(c)
		l.pos++

	} else if c == '/' {
		nxt := l.input[l.pos+1]
		if nxt == '/' {
			l.skipLineComment()
			l.NextToken()
			return
		} else if nxt == '*' {
			if !l.skipBlockComment() {
				return
			}
			l.NextToken()
			return
		} else {
			l.CurrTokenType = SLASH
			l.CurrLiteral = string(c)
			l.pos++
		}

	} else if c == ';' {
		l.CurrTokenType = SEMICOLON
		l.CurrLiteral = string(c)
		l.pos++

	} else if c == '(' {
		l.CurrTokenType = LPAREN
		l.CurrLiteral = string(c)
		l.pos++

	} else if c == ')' {
		l.CurrTokenType = RPAREN
		l.CurrLiteral = string(c)
		l.pos++

	} else if c == '{' {
		l.CurrTokenType = LBRACE
		l.CurrLiteral = string(c)
		l.pos++

	} else if c == '}' {
		l.CurrTokenType = RBRACE
		l.CurrLiteral = string(c)
		l.pos++

	} else if c == '"' {
		lit, ok := l.readString()
		if !ok {
			return
		}
		l.CurrTokenType = STRING_LIT
		l.CurrLiteral = lit

	} else if c == 0 {
		l.CurrTokenType = EOF
		l.CurrLiteral = ""

	} else if isLetter(c) {
		lit := l.readIdentifier()
		if kw, ok := keywords[lit]; ok {
			l.CurrTokenType = kw
		} else {
			l.CurrTokenType = IDENT
		}
		l.CurrLiteral = lit

	} else if isDigit(c) {
		lit, val := l.readNumber()
		l.CurrTokenType = NUMBER
		l.CurrLiteral = lit
		l.CurrIntValue = val

	} else {
		l.Errors.Add(l.line, "unexpected character %q", string(c))
		l.abort()
	}
}

func (l *Lexer) skipWhitespace() {
	for {
		c := l.input[l.pos]
		if c == '\n' {
			l.line++
		} else if c != ' ' && c != '\t' && c != '\r' {
			return
		}
		l.pos++
	}
}

func (l *Lexer) skipLineComment() {
	for l.input[l.pos] != '\n' && l.input[l.pos] != 0 {
		l.pos++
	}
	if l.input[l.pos] == '\n' {
		l.line++
		l.pos++
	}
}

// skipBlockComment returns false if the comment never terminates,
// having reported the error.
func (l *Lexer) skipBlockComment() bool {
	startLine := l.line
	l.pos += 2 // skip /*
	for l.input[l.pos] != 0 && !(l.input[l.pos] == '*' && l.input[l.pos+1] == '/') {
		if l.input[l.pos] == '\n' {
			l.line++
		}
		l.pos++
	}
	if l.input[l.pos] == 0 {
		l.Errors.Add(startLine, "unterminated block comment")
		l.abort()
		return false
	}
	l.pos += 2 // skip */
	return true
}

func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isLetter(l.input[l.pos]) || isDigit(l.input[l.pos]) {
		l.pos++
	}
	return string(l.input[start:l.pos])
}

func (l *Lexer) readNumber() (string, int64) {
	start := l.pos
	var val int64
	for isDigit(l.input[l.pos]) {
		val = val*10 + int64(l.input[l.pos]-'0')
		l.pos++
	}
	return string(l.input[start:l.pos]), val
}

// readString reads a quoted string literal. Strings may not span lines.
func (l *Lexer) readString() (string, bool) {
	startLine := l.line
	l.pos++ // skip opening "
	start := l.pos
	for l.input[l.pos] != '"' {
		if l.input[l.pos] == 0 || l.input[l.pos] == '\n' {
			l.Errors.Add(startLine, "unterminated string literal")
			l.abort()
			return "", false
		}
		l.pos++
	}
	lit := string(l.input[start:l.pos])
	l.pos++
	return lit, true
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || c == '_'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
