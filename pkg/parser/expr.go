package parser

import (
	"minic/pkg/diag"
	"minic/pkg/lexer"
)

func (p *Parser) exp() {
	defer p.resync(expBoundary...)
	p.enter("Exp")
	defer p.leave()

	p.addExp()
	p.mark("Exp")
}

func (p *Parser) constExp() {
	defer p.resync(expBoundary...)
	p.enter("ConstExp")
	defer p.leave()

	p.addExp()
	p.mark("ConstExp")
}

func (p *Parser) cond() {
	defer p.resync(expBoundary...)
	p.enter("Cond")
	defer p.leave()

	p.lOrExp()
	p.mark("Cond")
}

func (p *Parser) lVal() {
	p.enter("LVal")
	defer p.leave()

	p.match(lexer.IDENFR)
	if p.check(lexer.LBRACK) {
		line := p.peek().Line
		p.match(lexer.LBRACK)
		if p.check(lexer.ASSIGN) {
			p.errs.Report(line, diag.MissingRBracket)
		} else {
			p.exp()
			p.rbrack(line)
		}
	}
	p.mark("LVal")
}

func (p *Parser) primaryExp() {
	switch p.peek().Type {
	case lexer.LPARENT:
		line := p.peek().Line
		p.match(lexer.LPARENT)
		p.exp()
		p.rparen(line)
	case lexer.IDENFR:
		p.lVal()
	case lexer.INTCON:
		p.match(lexer.INTCON)
		p.mark("Number")
	case lexer.CHRCON:
		p.match(lexer.CHRCON)
		p.mark("Character")
	}
	p.mark("PrimaryExp")
}

func (p *Parser) unaryExp() {
	p.enter("UnaryExp")
	defer p.leave()

	switch tt := p.peek().Type; {
	case tt == lexer.IDENFR && p.peekAt(1).Type == lexer.LPARENT:
		p.match(lexer.IDENFR)
		line := p.peek().Line
		p.match(lexer.LPARENT)
		if p.peek().Type.StartsExp() {
			p.funcRParams()
		}
		p.rparen(line)
	case tt == lexer.PLUS || tt == lexer.MINU || tt == lexer.NOT:
		p.match(tt)
		p.mark("UnaryOp")
		p.unaryExp()
	default:
		p.primaryExp()
	}
	p.mark("UnaryExp")
}

func (p *Parser) funcRParams() {
	p.exp()
	for p.match(lexer.COMMA) {
		p.exp()
	}
	p.mark("FuncRParams")
}

func (p *Parser) mulExp() {
	p.enter("MulExp")
	defer p.leave()

	p.unaryExp()
	p.mark("MulExp")
	for p.match(lexer.MULT) || p.match(lexer.DIV) || p.match(lexer.MOD) {
		p.unaryExp()
		p.mark("MulExp")
	}
}

func (p *Parser) addExp() {
	p.enter("AddExp")
	defer p.leave()

	p.mulExp()
	p.mark("AddExp")
	for p.match(lexer.PLUS) || p.match(lexer.MINU) {
		p.mulExp()
		p.mark("AddExp")
	}
}

func (p *Parser) relExp() {
	p.addExp()
	p.mark("RelExp")
	for p.match(lexer.LSS) || p.match(lexer.GRE) || p.match(lexer.LEQ) || p.match(lexer.GEQ) {
		p.addExp()
		p.mark("RelExp")
	}
}

func (p *Parser) eqExp() {
	p.relExp()
	p.mark("EqExp")
	for p.match(lexer.EQL) || p.match(lexer.NEQ) {
		p.relExp()
		p.mark("EqExp")
	}
}

func (p *Parser) lAndExp() {
	p.eqExp()
	p.mark("LAndExp")
	for p.match(lexer.AND) {
		p.eqExp()
		p.mark("LAndExp")
	}
}

func (p *Parser) lOrExp() {
	p.lAndExp()
	p.mark("LOrExp")
	for p.match(lexer.OR) {
		p.lAndExp()
		p.mark("LOrExp")
	}
}
