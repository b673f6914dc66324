// Package parser checks the syntax of a token stream and records a post-order
// parse trace.
package parser

import (
	"log/slog"

	"minic/pkg/diag"
	"minic/pkg/lexer"
)

// DefaultMaxDepth bounds the recursion of the descent.
const DefaultMaxDepth = 1000

// Parser consumes the flat token slice produced by the lexer and records a
// trace of matched terminals and completed productions.
//
// Grammar:
//
//	CompUnit     = {Decl} {FuncDef} MainFuncDef
//	Decl         = ConstDecl | VarDecl
//	ConstDecl    = "const" BType ConstDef {"," ConstDef} ";"
//	ConstDef     = Ident ["[" ConstExp "]"] "=" ConstInitVal
//	ConstInitVal = ConstExp | "{" [ConstExp {"," ConstExp}] "}" | StringConst
//	VarDecl      = BType VarDef {"," VarDef} ";"
//	VarDef       = Ident ["[" ConstExp "]"] ["=" InitVal]
//	InitVal      = Exp | "{" [Exp {"," Exp}] "}" | StringConst
//	FuncDef      = FuncType Ident "(" [FuncFParams] ")" Block
//	MainFuncDef  = "int" "main" "(" ")" Block
//	FuncFParams  = FuncFParam {"," FuncFParam}
//	FuncFParam   = BType Ident ["[" "]"]
//	Block        = "{" {Decl | Stmt} "}"
//	Stmt         = LVal "=" Exp ";" | [Exp] ";" | Block
//	             | "if" "(" Cond ")" Stmt ["else" Stmt]
//	             | "for" "(" [ForStmt] ";" [Cond] ";" [ForStmt] ")" Stmt
//	             | "break" ";" | "continue" ";" | "return" [Exp] ";"
//	             | LVal "=" ("getint" | "getchar") "(" ")" ";"
//	             | "printf" "(" StringConst {"," Exp} ")" ";"
//	ForStmt      = LVal "=" Exp
//	Exp          = AddExp
//	Cond         = LOrExp
//	LVal         = Ident ["[" Exp "]"]
//	PrimaryExp   = "(" Exp ")" | LVal | Number | Character
//	UnaryExp     = PrimaryExp | Ident "(" [FuncRParams] ")" | UnaryOp UnaryExp
//	MulExp       = UnaryExp {("*" | "/" | "%") UnaryExp}
//	AddExp       = MulExp {("+" | "-") MulExp}
//	RelExp       = AddExp {("<" | ">" | "<=" | ">=") AddExp}
//	EqExp        = RelExp {("==" | "!=") RelExp}
//	LAndExp      = EqExp {"&&" EqExp}
//	LOrExp       = LAndExp {"||" LAndExp}
//	ConstExp     = AddExp
type Parser struct {
	tokens   []lexer.Token
	pos      int
	trace    Trace
	errs     *diag.Sink
	depth    int
	maxDepth int
	log      *slog.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithMaxDepth sets the recursion ceiling. Values below 1 are ignored.
func WithMaxDepth(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.maxDepth = n
		}
	}
}

// WithLogger sets the logger used for recovery diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.log = l
		}
	}
}

// New returns a Parser over tokens that records syntax errors in errs.
func New(tokens []lexer.Token, errs *diag.Sink, opts ...Option) *Parser {
	if errs == nil {
		errs = diag.NewSink()
	}
	p := &Parser{
		tokens:   tokens,
		errs:     errs,
		maxDepth: DefaultMaxDepth,
		log:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse is shorthand for New(tokens, errs, opts...).Parse().
func Parse(tokens []lexer.Token, errs *diag.Sink, opts ...Option) Trace {
	return New(tokens, errs, opts...).Parse()
}

// Parse walks the whole program. A depth bailout that no rule absorbed ends
// the walk and the trace built so far is returned; any other panic is
// propagated to the caller.
func (p *Parser) Parse() (trace Trace) {
	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			p.log.Error("parse aborted", "rule", b.rule, "line", b.line)
			p.pos = len(p.tokens)
			trace = p.trace
		}
	}()
	p.compUnit()
	return p.trace
}

// peek returns the current token without consuming it.
func (p *Parser) peek() lexer.Token {
	return p.peekAt(0)
}

// peekAt returns the token at the given offset from the current position.
func (p *Parser) peekAt(offset int) lexer.Token {
	if p.pos+offset >= len(p.tokens) {
		line := 0
		if n := len(p.tokens); n > 0 {
			line = p.tokens[n-1].Line
		}
		return lexer.Token{Type: lexer.EOF, Line: line}
	}
	return p.tokens[p.pos+offset]
}

func (p *Parser) check(tt lexer.TokenType) bool {
	return p.peek().Type == tt
}

func (p *Parser) atEOF() bool {
	return p.check(lexer.EOF)
}

// advance consumes the current token without tracing it.
func (p *Parser) advance() lexer.Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

// match consumes and traces the current token if it is tt. A mismatched token
// is left in place for the caller's recovery.
func (p *Parser) match(tt lexer.TokenType) bool {
	if !p.check(tt) {
		return false
	}
	p.trace = append(p.trace, p.advance().String())
	return true
}

// mark records a completed production.
func (p *Parser) mark(tag string) {
	p.trace = append(p.trace, "<"+tag+">")
}

// semicolon matches the ';' that ends a construct starting at line.
func (p *Parser) semicolon(line int) {
	if !p.match(lexer.SEMICN) {
		p.errs.Report(line, diag.MissingSemicolon)
	}
}

// rparen matches the ')' paired with a '(' on line.
func (p *Parser) rparen(line int) bool {
	if p.match(lexer.RPARENT) {
		return true
	}
	p.errs.Report(line, diag.MissingRParen)
	return false
}

// rbrack matches the ']' paired with a '[' on line.
func (p *Parser) rbrack(line int) {
	if !p.match(lexer.RBRACK) {
		p.errs.Report(line, diag.MissingRBracket)
	}
}

// skipTo advances until the current token is one of stops or EOF.
func (p *Parser) skipTo(stops ...lexer.TokenType) {
	for !p.atEOF() {
		for _, tt := range stops {
			if p.check(tt) {
				return
			}
		}
		p.advance()
	}
}
