// Package lexer turns source text into the flat token slice consumed by the
// parser and the semantic analyzer.
package lexer

import (
	"unicode"

	"minic/pkg/diag"
)

// keywords maps source text to its keyword TokenType.
var keywords = map[string]TokenType{
	"main":     MAINTK,
	"const":    CONSTTK,
	"int":      INTTK,
	"char":     CHARTK,
	"void":     VOIDTK,
	"break":    BREAKTK,
	"continue": CONTINUETK,
	"if":       IFTK,
	"else":     ELSETK,
	"for":      FORTK,
	"getint":   GETINTTK,
	"getchar":  GETCHARTK,
	"printf":   PRINTFTK,
	"return":   RETURNTK,
}

// Lexer holds all mutable state for a single scanning pass over src.
type Lexer struct {
	src  []rune
	pos  int // index of the next rune to consume
	line int // current 1-based source line
	errs *diag.Sink
}

func newLexer(src string, errs *diag.Sink) *Lexer {
	if errs == nil {
		errs = diag.NewSink()
	}
	return &Lexer{src: []rune(src), pos: 0, line: 1, errs: errs}
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.src)
}

// peek returns the rune at the current position without advancing.
func (l *Lexer) peek() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

// peek2 returns the rune one position ahead of the current position.
func (l *Lexer) peek2() rune {
	if l.pos+1 >= len(l.src) {
		return 0
	}
	return l.src[l.pos+1]
}

// advance consumes one rune and returns it.
func (l *Lexer) advance() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	r := l.src[l.pos]
	l.pos++
	if r == '\n' {
		l.line++
	}
	return r
}

func (l *Lexer) skipWhitespace() {
	for !l.atEnd() && unicode.IsSpace(l.peek()) {
		l.advance()
	}
}

// skipLineComment discards everything from the current position to end-of-line.
// The opening "//" must already have been consumed.
func (l *Lexer) skipLineComment() {
	for !l.atEnd() && l.peek() != '\n' {
		l.advance()
	}
}

// skipBlockComment discards everything up to and including the closing "*/".
// The opening "/*" must already have been consumed; startLine is where it was.
func (l *Lexer) skipBlockComment(startLine int) {
	for !l.atEnd() {
		if l.peek() == '*' && l.peek2() == '/' {
			l.advance() // *
			l.advance() // /
			return
		}
		l.advance()
	}
	l.errs.Report(startLine, diag.IllegalSymbol)
}

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || isDigit(r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// scanIdent collects a full identifier or keyword token.
// The first character (letter or '_') must still be at l.peek().
func (l *Lexer) scanIdent() Token {
	line := l.line
	start := l.pos
	for !l.atEnd() && isIdentPart(l.peek()) {
		l.advance()
	}
	lexeme := string(l.src[start:l.pos])
	tt := IDENFR
	if kw, ok := keywords[lexeme]; ok {
		tt = kw
	}
	return Token{Type: tt, Lexeme: lexeme, Line: line}
}

// scanInt collects a decimal integer literal.
func (l *Lexer) scanInt() Token {
	line := l.line
	start := l.pos
	for !l.atEnd() && isDigit(l.peek()) {
		l.advance()
	}
	return Token{Type: INTCON, Lexeme: string(l.src[start:l.pos]), Line: line}
}

// scanChar collects a character literal 'c'. Escapes stay in their source
// form, so '\n' yields the two-rune lexeme `\n`. An empty or unterminated
// literal is reported and still yields a CHRCON with whatever was read.
func (l *Lexer) scanChar() Token {
	line := l.line
	l.advance() // consume opening '
	start := l.pos

	switch {
	case l.peek() == '\\':
		l.advance()
		if !l.atEnd() && l.peek() != '\n' {
			l.advance()
		}
	case l.peek() != '\'' && l.peek() != '\n' && !l.atEnd():
		l.advance()
	}
	lexeme := string(l.src[start:l.pos])

	if l.peek() != '\'' || lexeme == "" {
		l.errs.Report(line, diag.IllegalSymbol)
	}
	if l.peek() == '\'' {
		l.advance() // consume closing '
	}
	return Token{Type: CHRCON, Lexeme: lexeme, Line: line}
}

// scanString collects a string literal "...". The literal may not span lines;
// one that runs into a newline or end of input is reported and cut short.
func (l *Lexer) scanString() Token {
	line := l.line
	l.advance() // consume opening "
	start := l.pos

	for !l.atEnd() && l.peek() != '"' && l.peek() != '\n' {
		if l.peek() == '\\' && l.peek2() == '"' {
			l.advance()
		}
		l.advance()
	}
	lexeme := string(l.src[start:l.pos])

	if l.peek() == '"' {
		l.advance() // consume closing "
	} else {
		l.errs.Report(line, diag.IllegalSymbol)
	}
	return Token{Type: STRCON, Lexeme: lexeme, Line: line}
}

// nextToken skips whitespace/comments and returns the next Token. ok is false
// when the current character was illegal and has been skipped.
func (l *Lexer) nextToken() (tok Token, ok bool) {
	// Skip whitespace and both comment styles in a loop so that
	// a comment followed immediately by more whitespace is handled.
	for {
		l.skipWhitespace()
		if l.atEnd() {
			return Token{Type: EOF, Lexeme: "", Line: l.line}, true
		}
		if l.peek() == '/' && l.peek2() == '/' {
			l.advance()
			l.advance()
			l.skipLineComment()
			continue
		}
		if l.peek() == '/' && l.peek2() == '*' {
			start := l.line
			l.advance()
			l.advance()
			l.skipBlockComment(start)
			continue
		}
		break
	}

	ch := l.peek()
	line := l.line

	if isIdentStart(ch) {
		return l.scanIdent(), true
	}
	if isDigit(ch) {
		return l.scanInt(), true
	}
	if ch == '"' {
		return l.scanString(), true
	}
	if ch == '\'' {
		return l.scanChar(), true
	}

	l.advance() // consume the character before the switch
	switch ch {
	case '{':
		return Token{LBRACE, "{", line}, true
	case '}':
		return Token{RBRACE, "}", line}, true
	case '(':
		return Token{LPARENT, "(", line}, true
	case ')':
		return Token{RPARENT, ")", line}, true
	case '[':
		return Token{LBRACK, "[", line}, true
	case ']':
		return Token{RBRACK, "]", line}, true
	case ';':
		return Token{SEMICN, ";", line}, true
	case ',':
		return Token{COMMA, ",", line}, true
	case '+':
		return Token{PLUS, "+", line}, true
	case '-':
		return Token{MINU, "-", line}, true
	case '*':
		return Token{MULT, "*", line}, true
	case '/':
		return Token{DIV, "/", line}, true
	case '%':
		return Token{MOD, "%", line}, true
	case '&':
		// a lone '&' is reported but read as "&&" so parsing can go on
		if l.peek() == '&' {
			l.advance()
		} else {
			l.errs.Report(line, diag.IllegalSymbol)
		}
		return Token{AND, "&&", line}, true
	case '|':
		if l.peek() == '|' {
			l.advance()
		} else {
			l.errs.Report(line, diag.IllegalSymbol)
		}
		return Token{OR, "||", line}, true
	case '!':
		if l.peek() == '=' {
			l.advance()
			return Token{NEQ, "!=", line}, true
		}
		return Token{NOT, "!", line}, true
	case '<':
		if l.peek() == '=' {
			l.advance()
			return Token{LEQ, "<=", line}, true
		}
		return Token{LSS, "<", line}, true
	case '>':
		if l.peek() == '=' {
			l.advance()
			return Token{GEQ, ">=", line}, true
		}
		return Token{GRE, ">", line}, true
	case '=':
		if l.peek() == '=' { // lookahead: distinguish = vs ==
			l.advance()
			return Token{EQL, "==", line}, true
		}
		return Token{ASSIGN, "=", line}, true
	default:
		l.errs.Report(line, diag.IllegalSymbol)
		return Token{}, false
	}
}

// Lex tokenises src. Lexical errors are recorded in errs (which may be nil)
// and never stop the scan. The returned slice always ends with an EOF token.
func Lex(src string, errs *diag.Sink) []Token {
	l := newLexer(src, errs)
	var tokens []Token
	for {
		tok, ok := l.nextToken()
		if !ok {
			continue
		}
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens
		}
	}
}
