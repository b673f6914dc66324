package lexer

import "fmt"

// TokenType identifies the category of a lexed token.
type TokenType int

const (
	EOF TokenType = iota // sentinel: end of input

	// Literals
	IDENFR // identifier
	INTCON // decimal integer literal
	STRCON // string literal "..."
	CHRCON // character literal 'c'

	// Keywords
	MAINTK     // "main"
	CONSTTK    // "const"
	INTTK      // "int"
	CHARTK     // "char"
	VOIDTK     // "void"
	BREAKTK    // "break"
	CONTINUETK // "continue"
	IFTK       // "if"
	ELSETK     // "else"
	FORTK      // "for"
	GETINTTK   // "getint"
	GETCHARTK  // "getchar"
	PRINTFTK   // "printf"
	RETURNTK   // "return"

	// Logical operators
	NOT // !
	AND // &&
	OR  // ||

	// Arithmetic operators
	PLUS // +
	MINU // -
	MULT // *
	DIV  // /
	MOD  // %

	// Comparison
	LSS // <
	LEQ // <=
	GRE // >
	GEQ // >=
	EQL // ==
	NEQ // !=

	ASSIGN // =

	// Punctuation
	SEMICN // ;
	COMMA  // ,

	// Paired delimiters
	LPARENT // (
	RPARENT // )
	LBRACK  // [
	RBRACK  // ]
	LBRACE  // {
	RBRACE  // }
)

// tokenNames is indexed by TokenType. The names double as the kind column of
// the token listing and the parse trace.
var tokenNames = [...]string{
	EOF:        "EOF",
	IDENFR:     "IDENFR",
	INTCON:     "INTCON",
	STRCON:     "STRCON",
	CHRCON:     "CHRCON",
	MAINTK:     "MAINTK",
	CONSTTK:    "CONSTTK",
	INTTK:      "INTTK",
	CHARTK:     "CHARTK",
	VOIDTK:     "VOIDTK",
	BREAKTK:    "BREAKTK",
	CONTINUETK: "CONTINUETK",
	IFTK:       "IFTK",
	ELSETK:     "ELSETK",
	FORTK:      "FORTK",
	GETINTTK:   "GETINTTK",
	GETCHARTK:  "GETCHARTK",
	PRINTFTK:   "PRINTFTK",
	RETURNTK:   "RETURNTK",
	NOT:        "NOT",
	AND:        "AND",
	OR:         "OR",
	PLUS:       "PLUS",
	MINU:       "MINU",
	MULT:       "MULT",
	DIV:        "DIV",
	MOD:        "MOD",
	LSS:        "LSS",
	LEQ:        "LEQ",
	GRE:        "GRE",
	GEQ:        "GEQ",
	EQL:        "EQL",
	NEQ:        "NEQ",
	ASSIGN:     "ASSIGN",
	SEMICN:     "SEMICN",
	COMMA:      "COMMA",
	LPARENT:    "LPARENT",
	RPARENT:    "RPARENT",
	LBRACK:     "LBRACK",
	RBRACK:     "RBRACK",
	LBRACE:     "LBRACE",
	RBRACE:     "RBRACE",
}

func (tt TokenType) String() string {
	if int(tt) >= 0 && int(tt) < len(tokenNames) {
		return tokenNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// IsBaseType reports whether tt starts a base type (int or char).
func (tt TokenType) IsBaseType() bool {
	return tt == INTTK || tt == CHARTK
}

// StartsExp reports whether an expression may begin with tt.
func (tt TokenType) StartsExp() bool {
	switch tt {
	case IDENFR, INTCON, CHRCON, LPARENT, PLUS, MINU, NOT:
		return true
	}
	return false
}

// Token is a single lexical unit produced by the Lexer.
type Token struct {
	Type   TokenType
	Lexeme string // raw text; literals exclude their quotes
	Line   int    // 1-based source line
}

// String renders the token the way it appears in the token listing and the
// parse trace: "KIND lexeme", with string and char literals re-quoted.
func (t Token) String() string {
	switch t.Type {
	case STRCON:
		return fmt.Sprintf("%s \"%s\"", t.Type, t.Lexeme)
	case CHRCON:
		return fmt.Sprintf("%s '%s'", t.Type, t.Lexeme)
	}
	return fmt.Sprintf("%s %s", t.Type, t.Lexeme)
}
