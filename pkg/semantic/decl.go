package semantic

import (
	"minic/pkg/diag"
	"minic/pkg/lexer"
)

func (a *Analyzer) compUnit() {
	for !a.atEOF() {
		start := a.pos
		switch {
		case a.isDecl():
			a.decl()
		case a.isFuncDef():
			a.funcDef()
		case a.check(lexer.INTTK) && a.peekAt(1).Type == lexer.MAINTK:
			a.mainFuncDef()
		}
		if a.pos == start {
			tok := a.advance()
			a.log.Debug("skipped stray token", "token", tok.String(), "line", tok.Line)
		}
	}
}

func (a *Analyzer) isDecl() bool {
	switch {
	case a.check(lexer.CONSTTK):
		return true
	case a.peek().Type.IsBaseType():
		next := a.peekAt(1).Type
		if next == lexer.MAINTK {
			return false
		}
		return !(next == lexer.IDENFR && a.peekAt(2).Type == lexer.LPARENT)
	}
	return false
}

func (a *Analyzer) isFuncDef() bool {
	if a.check(lexer.VOIDTK) {
		return true
	}
	return a.peek().Type.IsBaseType() &&
		a.peekAt(1).Type == lexer.IDENFR &&
		a.peekAt(2).Type == lexer.LPARENT
}

// bType consumes int or char and returns its base type.
func (a *Analyzer) bType() Type {
	switch {
	case a.expect(lexer.INTTK):
		return Int
	case a.expect(lexer.CHARTK):
		return Char
	}
	return Unknown
}

func (a *Analyzer) decl() {
	line := a.peek().Line
	isConst := a.expect(lexer.CONSTTK)
	base := a.bType()
	a.def(base, isConst)
	for a.expect(lexer.COMMA) {
		a.def(base, isConst)
	}
	a.semicolon(line)
}

// def handles one ConstDef or VarDef. The name is in scope from its
// declarator on, so an initializer may refer to it.
func (a *Analyzer) def(base Type, isConst bool) {
	a.enter("Def")
	defer a.leave()

	name := a.peek()
	if !a.expect(lexer.IDENFR) {
		a.skipTo(lexer.COMMA, lexer.SEMICN, lexer.RBRACE)
		return
	}

	isArray := false
	if a.check(lexer.LBRACK) {
		isArray = true
		line := a.advance().Line
		if a.check(lexer.ASSIGN) {
			a.errs.Report(line, diag.MissingRBracket)
		} else {
			a.exp()
			a.rbrack(line)
		}
	}

	v := NewVariable(name.Lexeme, base, isConst, isArray, a.table.Current().ID, name.Line)
	if !a.table.Define(v) {
		a.errs.Report(name.Line, diag.Redefined)
	}

	if a.expect(lexer.ASSIGN) {
		a.initVal()
	}
}

// initVal accepts one level of braces, the same as the grammar.
func (a *Analyzer) initVal() {
	switch {
	case a.expect(lexer.LBRACE):
		if !a.check(lexer.RBRACE) {
			a.element()
			for a.expect(lexer.COMMA) {
				a.element()
			}
		}
		a.expect(lexer.RBRACE)
	case a.expect(lexer.STRCON):
	case a.peek().Type.StartsExp():
		a.exp()
	}
}

func (a *Analyzer) element() {
	if a.peek().Type.StartsExp() {
		a.exp()
	}
}

func (a *Analyzer) funcType() Type {
	switch {
	case a.expect(lexer.VOIDTK):
		return Void
	case a.expect(lexer.INTTK):
		return Int
	case a.expect(lexer.CHARTK):
		return Char
	}
	return Unknown
}

func (a *Analyzer) funcDef() {
	ret := a.funcType()
	name := a.peek()
	var fn *Function
	if a.expect(lexer.IDENFR) {
		fn = NewFunction(name.Lexeme, ret, a.table.Current().ID, name.Line)
		if !a.table.Define(fn) {
			a.errs.Report(name.Line, diag.Redefined)
		}
	}
	a.function(ret, fn)
}

// mainFuncDef walks the entry function. It gets a scope and return checks
// like any int function but is never defined as a symbol.
func (a *Analyzer) mainFuncDef() {
	a.advance() // int
	a.advance() // main
	a.function(Int, nil)
}

// function walks a parameter list and body in a fresh scope shared by the
// parameters and the outermost block. fn may be nil.
func (a *Analyzer) function(ret Type, fn *Function) {
	a.fn = funcState{ret: ret, needReturn: ret != Void}
	defer func() { a.fn = funcState{} }()

	a.table.EnterScope()
	defer a.table.ExitScope()

	// a malformed header turns the return check off
	if !a.paramList(fn) {
		a.fn.needReturn = false
	}
	if !a.check(lexer.LBRACE) {
		a.fn.needReturn = false
		a.skipTo(lexer.VOIDTK, lexer.INTTK, lexer.CHARTK, lexer.CONSTTK)
		return
	}
	closing := a.block()
	if a.fn.needReturn {
		a.errs.Report(closing, diag.MissingReturn)
	}
}

// paramList walks "( [FuncFParams] )" and reports whether it was complete.
func (a *Analyzer) paramList(fn *Function) bool {
	line := a.peek().Line
	if !a.expect(lexer.LPARENT) {
		a.skipTo(lexer.LBRACE, lexer.SEMICN)
		return false
	}
	if a.peek().Type.IsBaseType() {
		a.params(fn)
	}
	if !a.rparen(line) {
		a.skipTo(lexer.LBRACE, lexer.SEMICN)
		return false
	}
	return true
}

func (a *Analyzer) params(fn *Function) {
	a.param(fn)
	for a.expect(lexer.COMMA) {
		if !a.peek().Type.IsBaseType() {
			a.skipTo(lexer.RPARENT, lexer.SEMICN, lexer.LBRACE)
			return
		}
		a.param(fn)
	}
}

// param defines one formal parameter in the function's scope and appends it
// to fn's signature, even when the name is a duplicate.
func (a *Analyzer) param(fn *Function) {
	base := a.bType()
	name := a.peek()
	if !a.expect(lexer.IDENFR) {
		return
	}
	isArray := false
	if a.check(lexer.LBRACK) {
		isArray = true
		line := a.advance().Line
		a.rbrack(line)
	}

	v := NewVariable(name.Lexeme, base, false, isArray, a.table.Current().ID, name.Line)
	if fn != nil {
		fn.Params = append(fn.Params, v)
	}
	if !a.table.Define(v) {
		a.errs.Report(name.Line, diag.Redefined)
	}
}
