package parser

import "minic/pkg/lexer"

func (p *Parser) block() {
	p.match(lexer.LBRACE)
	for !p.check(lexer.RBRACE) && !p.atEOF() {
		start := p.pos
		p.blockItem()
		if p.pos == start {
			tok := p.advance()
			p.log.Debug("skipped stray token", "token", tok.String(), "line", tok.Line)
		}
	}
	p.match(lexer.RBRACE)
	p.mark("Block")
}

func (p *Parser) blockItem() {
	if p.check(lexer.CONSTTK) || p.peek().Type.IsBaseType() {
		p.decl()
		return
	}
	p.stmt()
}

func (p *Parser) stmt() {
	defer p.resync(stmtBoundary...)
	p.enter("Stmt")
	defer p.leave()

	tok := p.peek()
	switch tok.Type {
	case lexer.LBRACE:
		p.block()

	case lexer.IFTK:
		p.match(lexer.IFTK)
		line := p.peek().Line
		p.match(lexer.LPARENT)
		p.cond()
		p.rparen(line)
		p.stmt()
		if p.match(lexer.ELSETK) {
			p.stmt()
		}

	case lexer.FORTK:
		p.forLoop()

	case lexer.BREAKTK, lexer.CONTINUETK:
		p.match(tok.Type)
		p.semicolon(tok.Line)

	case lexer.RETURNTK:
		p.match(lexer.RETURNTK)
		if p.peek().Type.StartsExp() {
			p.exp()
		}
		p.semicolon(tok.Line)

	case lexer.PRINTFTK:
		p.match(lexer.PRINTFTK)
		line := p.peek().Line
		p.match(lexer.LPARENT)
		p.match(lexer.STRCON)
		for p.match(lexer.COMMA) {
			p.exp()
		}
		p.rparen(line)
		p.semicolon(tok.Line)

	case lexer.SEMICN:
		p.match(lexer.SEMICN)

	default:
		switch {
		case p.isAssignment():
			p.assignment()
		case tok.Type.StartsExp():
			p.exp()
			p.semicolon(tok.Line)
		default:
			// nothing here can start a statement; the block skips it
			return
		}
	}
	p.mark("Stmt")
}

// isAssignment reports whether the statement at the cursor is an assignment.
func (p *Parser) isAssignment() bool {
	return lexer.IsAssignment(p.tokens, p.pos)
}

// assignment parses "LVal = Exp ;" and "LVal = getint ( ) ;" and their
// getchar twin.
func (p *Parser) assignment() {
	line := p.peek().Line
	p.lVal()
	p.match(lexer.ASSIGN)
	if p.check(lexer.GETINTTK) || p.check(lexer.GETCHARTK) {
		p.match(p.peek().Type)
		lp := p.peek().Line
		p.match(lexer.LPARENT)
		p.rparen(lp)
	} else {
		p.exp()
	}
	p.semicolon(line)
}

func (p *Parser) forLoop() {
	p.match(lexer.FORTK)
	line := p.peek().Line
	p.match(lexer.LPARENT)
	if !p.check(lexer.SEMICN) {
		p.forStmt()
	}
	p.match(lexer.SEMICN)
	if !p.check(lexer.SEMICN) {
		p.cond()
	}
	p.match(lexer.SEMICN)
	if p.check(lexer.IDENFR) {
		p.forStmt()
	}
	p.rparen(line)
	p.stmt()
}

func (p *Parser) forStmt() {
	p.lVal()
	p.match(lexer.ASSIGN)
	p.exp()
	p.mark("ForStmt")
}
