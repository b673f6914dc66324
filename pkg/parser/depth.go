package parser

import "minic/pkg/lexer"

// bailout is panicked when the descent gets deeper than maxDepth. It is
// recovered at the nearest expression or statement and turned into a skip.
type bailout struct {
	rule string
	line int
}

// expBoundary lists the tokens an abandoned expression resumes at.
var expBoundary = []lexer.TokenType{
	lexer.SEMICN, lexer.RPARENT, lexer.RBRACK, lexer.COMMA, lexer.ASSIGN, lexer.RBRACE,
}

// stmtBoundary lists the tokens an abandoned statement resumes at.
var stmtBoundary = []lexer.TokenType{lexer.SEMICN, lexer.RBRACE}

// enter accounts for one more level of recursion in rule. Every successful
// enter is paired with a deferred leave.
func (p *Parser) enter(rule string) {
	if p.depth >= p.maxDepth {
		line := p.peek().Line
		p.log.Warn("recursion depth exceeded", "rule", rule, "line", line, "max", p.maxDepth)
		panic(bailout{rule: rule, line: line})
	}
	p.depth++
}

func (p *Parser) leave() {
	p.depth--
}

// resync must be deferred directly. It swallows a bailout and skips to the
// next of stops; any other panic keeps unwinding.
func (p *Parser) resync(stops ...lexer.TokenType) {
	r := recover()
	if r == nil {
		return
	}
	b, ok := r.(bailout)
	if !ok {
		panic(r)
	}
	p.skipTo(stops...)
	p.log.Debug("resynchronized", "rule", b.rule, "from", b.line, "at", p.peek().Line)
}
