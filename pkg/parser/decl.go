package parser

import (
	"minic/pkg/diag"
	"minic/pkg/lexer"
)

func (p *Parser) compUnit() {
	for p.isDecl() {
		p.decl()
	}
	for p.isFuncDef() {
		p.funcDef()
	}
	p.mainFuncDef()
	p.mark("CompUnit")
}

// isDecl looks past the base type so that "int main" and "int f(" are left
// for the function rules.
func (p *Parser) isDecl() bool {
	switch {
	case p.check(lexer.CONSTTK):
		return true
	case p.peek().Type.IsBaseType():
		next := p.peekAt(1).Type
		if next == lexer.MAINTK {
			return false
		}
		return !(next == lexer.IDENFR && p.peekAt(2).Type == lexer.LPARENT)
	}
	return false
}

func (p *Parser) isFuncDef() bool {
	if p.check(lexer.VOIDTK) {
		return true
	}
	return p.peek().Type.IsBaseType() &&
		p.peekAt(1).Type == lexer.IDENFR &&
		p.peekAt(2).Type == lexer.LPARENT
}

func (p *Parser) decl() {
	if p.check(lexer.CONSTTK) {
		p.constDecl()
	} else {
		p.varDecl()
	}
}

func (p *Parser) bType() {
	if !p.match(lexer.INTTK) {
		p.match(lexer.CHARTK)
	}
}

func (p *Parser) constDecl() {
	line := p.peek().Line
	p.match(lexer.CONSTTK)
	p.bType()
	p.constDef()
	for p.match(lexer.COMMA) {
		p.constDef()
	}
	p.semicolon(line)
	p.mark("ConstDecl")
}

func (p *Parser) constDef() {
	p.enter("ConstDef")
	defer p.leave()

	p.match(lexer.IDENFR)
	p.dimension()
	p.match(lexer.ASSIGN)
	p.constInitVal()
	p.mark("ConstDef")
}

// dimension parses an optional "[ ConstExp ]" suffix of a definition.
func (p *Parser) dimension() {
	if !p.check(lexer.LBRACK) {
		return
	}
	line := p.peek().Line
	p.match(lexer.LBRACK)
	if p.check(lexer.ASSIGN) {
		p.errs.Report(line, diag.MissingRBracket)
		return
	}
	p.constExp()
	p.rbrack(line)
}

func (p *Parser) constInitVal() {
	switch {
	case p.match(lexer.LBRACE):
		if !p.check(lexer.RBRACE) {
			p.constExp()
			for p.match(lexer.COMMA) {
				p.constExp()
			}
		}
		p.match(lexer.RBRACE)
	case p.match(lexer.STRCON):
	default:
		p.constExp()
	}
	p.mark("ConstInitVal")
}

func (p *Parser) varDecl() {
	line := p.peek().Line
	p.bType()
	p.varDef()
	for p.match(lexer.COMMA) {
		p.varDef()
	}
	p.semicolon(line)
	p.mark("VarDecl")
}

func (p *Parser) varDef() {
	p.enter("VarDef")
	defer p.leave()

	p.match(lexer.IDENFR)
	p.dimension()
	if p.match(lexer.ASSIGN) {
		p.initVal()
	}
	p.mark("VarDef")
}

func (p *Parser) initVal() {
	switch {
	case p.match(lexer.LBRACE):
		if !p.check(lexer.RBRACE) {
			p.exp()
			for p.match(lexer.COMMA) {
				p.exp()
			}
		}
		p.match(lexer.RBRACE)
	case p.match(lexer.STRCON):
	default:
		p.exp()
	}
	p.mark("InitVal")
}

func (p *Parser) funcDef() {
	p.funcType()
	p.match(lexer.IDENFR)
	line := p.peek().Line
	if p.match(lexer.LPARENT) {
		if p.peek().Type.IsBaseType() {
			p.funcFParams()
		}
		if !p.rparen(line) {
			p.skipTo(lexer.LBRACE, lexer.SEMICN)
		}
	}
	p.body()
	p.mark("FuncDef")
}

func (p *Parser) funcType() {
	if !p.match(lexer.VOIDTK) && !p.match(lexer.INTTK) {
		p.match(lexer.CHARTK)
	}
	p.mark("FuncType")
}

func (p *Parser) funcFParams() {
	p.funcFParam()
	for p.match(lexer.COMMA) {
		if !p.peek().Type.IsBaseType() {
			p.skipTo(lexer.RPARENT, lexer.SEMICN, lexer.LBRACE)
			break
		}
		p.funcFParam()
	}
	p.mark("FuncFParams")
}

func (p *Parser) funcFParam() {
	p.bType()
	p.match(lexer.IDENFR)
	if p.check(lexer.LBRACK) {
		line := p.peek().Line
		p.match(lexer.LBRACK)
		p.rbrack(line)
	}
	p.mark("FuncFParam")
}

func (p *Parser) mainFuncDef() {
	p.match(lexer.INTTK)
	p.match(lexer.MAINTK)
	line := p.peek().Line
	if p.match(lexer.LPARENT) && !p.rparen(line) {
		p.skipTo(lexer.LBRACE, lexer.SEMICN)
	}
	p.body()
	p.mark("MainFuncDef")
}

// body parses a function body, or skips to the next top-level definition
// when the body is missing.
func (p *Parser) body() {
	if p.check(lexer.LBRACE) {
		p.block()
		return
	}
	p.skipTo(lexer.VOIDTK, lexer.INTTK, lexer.CHARTK, lexer.CONSTTK)
}
