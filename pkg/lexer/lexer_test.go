package lexer

import (
	"reflect"
	"testing"

	"minic/pkg/diag"
)

func TestLex(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Token
	}{
		{
			name:  "Empty",
			input: "",
			expected: []Token{
				{Type: EOF, Lexeme: "", Line: 1},
			},
		},
		{
			name:  "Operators",
			input: "+ - * / % ! && || < <= > >= == != = ; , ( ) [ ] { }",
			expected: []Token{
				{PLUS, "+", 1}, {MINU, "-", 1}, {MULT, "*", 1}, {DIV, "/", 1},
				{MOD, "%", 1}, {NOT, "!", 1}, {AND, "&&", 1}, {OR, "||", 1},
				{LSS, "<", 1}, {LEQ, "<=", 1}, {GRE, ">", 1}, {GEQ, ">=", 1},
				{EQL, "==", 1}, {NEQ, "!=", 1}, {ASSIGN, "=", 1}, {SEMICN, ";", 1},
				{COMMA, ",", 1}, {LPARENT, "(", 1}, {RPARENT, ")", 1},
				{LBRACK, "[", 1}, {RBRACK, "]", 1}, {LBRACE, "{", 1}, {RBRACE, "}", 1},
				{EOF, "", 1},
			},
		},
		{
			name:  "Keywords and Identifiers",
			input: "int main const char void if else for break continue return getint getchar printf mainx _a1",
			expected: []Token{
				{INTTK, "int", 1}, {MAINTK, "main", 1}, {CONSTTK, "const", 1},
				{CHARTK, "char", 1}, {VOIDTK, "void", 1}, {IFTK, "if", 1},
				{ELSETK, "else", 1}, {FORTK, "for", 1}, {BREAKTK, "break", 1},
				{CONTINUETK, "continue", 1}, {RETURNTK, "return", 1},
				{GETINTTK, "getint", 1}, {GETCHARTK, "getchar", 1},
				{PRINTFTK, "printf", 1}, {IDENFR, "mainx", 1}, {IDENFR, "_a1", 1},
				{EOF, "", 1},
			},
		},
		{
			name:  "Literals",
			input: `12 'a' '\n' "x = %d\n"`,
			expected: []Token{
				{INTCON, "12", 1}, {CHRCON, "a", 1}, {CHRCON, `\n`, 1},
				{STRCON, `x = %d\n`, 1}, {EOF, "", 1},
			},
		},
		{
			name:  "Comments and Lines",
			input: "a // line\n/* block\n comment */ b\n\nc",
			expected: []Token{
				{IDENFR, "a", 1}, {IDENFR, "b", 3}, {IDENFR, "c", 5}, {EOF, "", 5},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := diag.NewSink()
			got := Lex(tt.input, errs)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Lex(%q)\n got:  %v\n want: %v", tt.input, got, tt.expected)
			}
			if errs.HasErrors() {
				t.Errorf("unexpected lexical errors: %v", errs.Records())
			}
		})
	}
}

func TestLexIllegalSymbols(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Token
		errLines []int
	}{
		{
			name:     "Single Ampersand",
			input:    "a & b",
			expected: []Token{{IDENFR, "a", 1}, {AND, "&&", 1}, {IDENFR, "b", 1}, {EOF, "", 1}},
			errLines: []int{1},
		},
		{
			name:     "Single Pipe",
			input:    "a\n| b",
			expected: []Token{{IDENFR, "a", 1}, {OR, "||", 2}, {IDENFR, "b", 2}, {EOF, "", 2}},
			errLines: []int{2},
		},
		{
			name:     "Unknown Character Skipped",
			input:    "a # b",
			expected: []Token{{IDENFR, "a", 1}, {IDENFR, "b", 1}, {EOF, "", 1}},
			errLines: []int{1},
		},
		{
			name:     "Empty Char",
			input:    "''",
			expected: []Token{{CHRCON, "", 1}, {EOF, "", 1}},
			errLines: []int{1},
		},
		{
			name:     "Unterminated Char",
			input:    "'a\nb",
			expected: []Token{{CHRCON, "a", 1}, {IDENFR, "b", 2}, {EOF, "", 2}},
			errLines: []int{1},
		},
		{
			name:     "Unterminated String",
			input:    "\"abc\nx",
			expected: []Token{{STRCON, "abc", 1}, {IDENFR, "x", 2}, {EOF, "", 2}},
			errLines: []int{1},
		},
		{
			name:     "Unterminated Block Comment",
			input:    "a\n/* never\nclosed",
			expected: []Token{{IDENFR, "a", 1}, {EOF, "", 3}},
			errLines: []int{2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := diag.NewSink()
			got := Lex(tt.input, errs)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Lex(%q)\n got:  %v\n want: %v", tt.input, got, tt.expected)
			}
			var lines []int
			for _, r := range errs.Records() {
				if r.Code != diag.IllegalSymbol {
					t.Errorf("unexpected code %s", r.Code)
				}
				lines = append(lines, r.Line)
			}
			if !reflect.DeepEqual(lines, tt.errLines) {
				t.Errorf("error lines: got %v, want %v", lines, tt.errLines)
			}
		})
	}
}

func TestLexNilSink(t *testing.T) {
	toks := Lex("a & b", nil)
	if len(toks) != 4 {
		t.Fatalf("expected 4 tokens, got %d", len(toks))
	}
}

func TestTokenString(t *testing.T) {
	tests := []struct {
		tok  Token
		want string
	}{
		{Token{IDENFR, "x", 1}, "IDENFR x"},
		{Token{STRCON, "%d\\n", 1}, `STRCON "%d\n"`},
		{Token{CHRCON, "a", 1}, "CHRCON 'a'"},
		{Token{LBRACE, "{", 1}, "LBRACE {"},
	}
	for _, tt := range tests {
		if got := tt.tok.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
	if got := TokenType(999).String(); got != "TokenType(999)" {
		t.Errorf("unexpected fallback name %q", got)
	}
}
