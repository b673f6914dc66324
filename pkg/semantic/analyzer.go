// Package semantic checks the static semantics of a token stream: scoping,
// name resolution, call compatibility, constness, loop control and return
// completeness. It walks the grammar on its own cursor, independently of the
// parser, and produces the symbol table dump.
package semantic

import (
	"log/slog"

	"minic/pkg/diag"
	"minic/pkg/lexer"
)

// DefaultMaxDepth bounds the recursion of the walk.
const DefaultMaxDepth = 1000

// funcState tracks the function whose body is being walked.
type funcState struct {
	ret        Type // declared return type; Unknown outside functions
	needReturn bool // no unconditional return seen yet
	inBranch   bool // inside an if/else or loop body
}

// Analyzer holds all mutable state for one semantic pass.
type Analyzer struct {
	tokens   []lexer.Token
	pos      int
	errs     *diag.Sink
	table    *SymbolTable
	fn       funcState
	loops    int // loop nesting depth
	depth    int
	maxDepth int
	log      *slog.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithMaxDepth sets the recursion ceiling. Values below 1 are ignored.
func WithMaxDepth(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.maxDepth = n
		}
	}
}

// WithLogger sets the logger used for recovery diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.log = l
		}
	}
}

// New returns an Analyzer over tokens that records errors in errs.
func New(tokens []lexer.Token, errs *diag.Sink, opts ...Option) *Analyzer {
	if errs == nil {
		errs = diag.NewSink()
	}
	a := &Analyzer{
		tokens:   tokens,
		errs:     errs,
		table:    NewSymbolTable(),
		maxDepth: DefaultMaxDepth,
		log:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze is shorthand for New(tokens, errs, opts...).Analyze().
func Analyze(tokens []lexer.Token, errs *diag.Sink, opts ...Option) []Entry {
	return New(tokens, errs, opts...).Analyze()
}

// Analyze walks the whole program and returns the symbol dump. A depth
// bailout that no rule absorbed ends the walk and the symbols collected so
// far are dumped; any other panic is propagated to the caller.
func (a *Analyzer) Analyze() (entries []Entry) {
	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			a.log.Error("analysis aborted", "rule", b.rule, "line", b.line)
			a.pos = len(a.tokens)
			entries = a.table.Dump()
		}
	}()
	a.compUnit()
	return a.table.Dump()
}

// Table exposes the symbol table, including scopes already closed.
func (a *Analyzer) Table() *SymbolTable {
	return a.table
}

func (a *Analyzer) peek() lexer.Token {
	return a.peekAt(0)
}

func (a *Analyzer) peekAt(offset int) lexer.Token {
	return a.tokenAt(a.pos + offset)
}

func (a *Analyzer) tokenAt(i int) lexer.Token {
	if i < 0 || i >= len(a.tokens) {
		line := 0
		if n := len(a.tokens); n > 0 {
			line = a.tokens[n-1].Line
		}
		return lexer.Token{Type: lexer.EOF, Line: line}
	}
	return a.tokens[i]
}

func (a *Analyzer) check(tt lexer.TokenType) bool {
	return a.peek().Type == tt
}

func (a *Analyzer) atEOF() bool {
	return a.check(lexer.EOF)
}

func (a *Analyzer) advance() lexer.Token {
	tok := a.peek()
	if a.pos < len(a.tokens) {
		a.pos++
	}
	return tok
}

// expect consumes the current token if it is tt.
func (a *Analyzer) expect(tt lexer.TokenType) bool {
	if !a.check(tt) {
		return false
	}
	a.advance()
	return true
}

// prevLine is the line of the last consumed token.
func (a *Analyzer) prevLine() int {
	return a.tokenAt(a.pos - 1).Line
}

func (a *Analyzer) semicolon(line int) {
	if !a.expect(lexer.SEMICN) {
		a.errs.Report(line, diag.MissingSemicolon)
	}
}

func (a *Analyzer) rparen(line int) bool {
	if a.expect(lexer.RPARENT) {
		return true
	}
	a.errs.Report(line, diag.MissingRParen)
	return false
}

func (a *Analyzer) rbrack(line int) {
	if !a.expect(lexer.RBRACK) {
		a.errs.Report(line, diag.MissingRBracket)
	}
}

func (a *Analyzer) skipTo(stops ...lexer.TokenType) {
	for !a.atEOF() {
		for _, tt := range stops {
			if a.check(tt) {
				return
			}
		}
		a.advance()
	}
}

// bailout unwinds the walk when it gets deeper than maxDepth.
type bailout struct {
	rule string
	line int
}

var (
	expBoundary  = []lexer.TokenType{lexer.SEMICN, lexer.RPARENT, lexer.RBRACK, lexer.COMMA, lexer.ASSIGN, lexer.RBRACE}
	stmtBoundary = []lexer.TokenType{lexer.SEMICN, lexer.RBRACE}
)

func (a *Analyzer) enter(rule string) {
	if a.depth >= a.maxDepth {
		line := a.peek().Line
		a.log.Warn("recursion depth exceeded", "rule", rule, "line", line, "max", a.maxDepth)
		panic(bailout{rule: rule, line: line})
	}
	a.depth++
}

func (a *Analyzer) leave() {
	a.depth--
}

// resync must be deferred directly. It swallows a bailout and skips to the
// next of stops; any other panic keeps unwinding.
func (a *Analyzer) resync(stops ...lexer.TokenType) {
	r := recover()
	if r == nil {
		return
	}
	b, ok := r.(bailout)
	if !ok {
		panic(r)
	}
	a.skipTo(stops...)
	a.log.Debug("resynchronized", "rule", b.rule, "from", b.line, "at", a.peek().Line)
}
