package semantic

import (
	"minic/pkg/diag"
	"minic/pkg/lexer"
)

// block walks "{ {BlockItem} }" in the current scope and returns the line of
// its closing brace.
func (a *Analyzer) block() int {
	a.expect(lexer.LBRACE)
	for !a.check(lexer.RBRACE) && !a.atEOF() {
		start := a.pos
		a.blockItem()
		if a.pos == start {
			tok := a.advance()
			a.log.Debug("skipped stray token", "token", tok.String(), "line", tok.Line)
		}
	}
	a.expect(lexer.RBRACE)
	return a.prevLine()
}

// nestedBlock walks a block statement in a scope of its own.
func (a *Analyzer) nestedBlock() {
	a.table.EnterScope()
	defer a.table.ExitScope()
	a.block()
}

func (a *Analyzer) blockItem() {
	if a.check(lexer.CONSTTK) || a.peek().Type.IsBaseType() {
		a.decl()
		return
	}
	a.stmt()
}

func (a *Analyzer) stmt() {
	defer a.resync(stmtBoundary...)
	a.enter("Stmt")
	defer a.leave()

	tok := a.peek()
	switch tok.Type {
	case lexer.LBRACE:
		a.nestedBlock()

	case lexer.SEMICN:
		a.advance()

	case lexer.IFTK:
		a.ifStmt()

	case lexer.FORTK:
		a.forStmt()

	case lexer.BREAKTK, lexer.CONTINUETK:
		a.advance()
		if a.loops == 0 {
			a.errs.Report(tok.Line, diag.MisplacedLoopCtrl)
		}
		a.semicolon(tok.Line)

	case lexer.RETURNTK:
		a.returnStmt()

	case lexer.PRINTFTK:
		a.printfStmt()

	default:
		switch {
		case lexer.IsAssignment(a.tokens, a.pos):
			a.assignment()
		case tok.Type.StartsExp():
			a.exp()
			a.semicolon(tok.Line)
		}
	}
}

// branch walks a statement whose execution is conditional. A return inside it
// does not count towards return completeness.
func (a *Analyzer) branch() {
	saved := a.fn.inBranch
	a.fn.inBranch = true
	defer func() { a.fn.inBranch = saved }()
	a.stmt()
}

func (a *Analyzer) ifStmt() {
	a.advance() // if
	line := a.peek().Line
	a.expect(lexer.LPARENT)
	a.cond()
	a.rparen(line)
	a.branch()
	if a.expect(lexer.ELSETK) {
		a.branch()
	}
}

func (a *Analyzer) forStmt() {
	a.advance() // for
	line := a.peek().Line
	a.expect(lexer.LPARENT)
	if !a.check(lexer.SEMICN) {
		a.forAssign()
	}
	a.expect(lexer.SEMICN)
	if !a.check(lexer.SEMICN) {
		a.cond()
	}
	a.expect(lexer.SEMICN)
	if a.check(lexer.IDENFR) {
		a.forAssign()
	}
	a.rparen(line)

	a.loops++
	defer func() { a.loops-- }()
	a.branch()
}

// forAssign walks the "LVal = Exp" of a for header.
func (a *Analyzer) forAssign() {
	if !a.check(lexer.IDENFR) {
		a.skipTo(lexer.SEMICN, lexer.RPARENT)
		return
	}
	a.target()
	a.expect(lexer.ASSIGN)
	a.exp()
}

func (a *Analyzer) returnStmt() {
	tok := a.advance()
	hasValue := a.peek().Type.StartsExp()
	if hasValue {
		a.exp()
	}
	switch {
	case a.fn.ret == Void && hasValue:
		a.errs.Report(tok.Line, diag.VoidReturnValue)
	case a.fn.ret != Void && !a.fn.inBranch:
		a.fn.needReturn = false
	}
	a.semicolon(tok.Line)
}

func (a *Analyzer) printfStmt() {
	tok := a.advance()
	line := a.peek().Line
	a.expect(lexer.LPARENT)
	format := ""
	if a.check(lexer.STRCON) {
		format = a.advance().Lexeme
	}
	args := 0
	for a.expect(lexer.COMMA) {
		args++
		a.exp()
	}
	if countSpecifiers(format) != args {
		a.errs.Report(tok.Line, diag.FormatMismatch)
	}
	a.rparen(line)
	a.semicolon(tok.Line)
}

// countSpecifiers counts %d and %c in a format literal. A backslash escapes
// the character after it.
func countSpecifiers(format string) int {
	n := 0
	for i := 0; i < len(format); i++ {
		switch format[i] {
		case '\\':
			i++
		case '%':
			if i+1 < len(format) && (format[i+1] == 'd' || format[i+1] == 'c') {
				n++
				i++
			}
		}
	}
	return n
}

// assignment walks "LVal = Exp ;" and the getint/getchar forms.
func (a *Analyzer) assignment() {
	line := a.peek().Line
	a.target()
	a.expect(lexer.ASSIGN)
	if a.check(lexer.GETINTTK) || a.check(lexer.GETCHARTK) {
		a.advance()
		lp := a.peek().Line
		a.expect(lexer.LPARENT)
		a.rparen(lp)
	} else {
		a.exp()
	}
	a.semicolon(line)
}

// target walks the left-hand side of an assignment, which must not be const.
func (a *Analyzer) target() {
	tok := a.peek()
	if sym, ok := a.table.Lookup(tok.Lexeme); ok {
		if v, ok := sym.(*Variable); ok && v.IsConst() {
			a.errs.Report(tok.Line, diag.ConstAssign)
		}
	}
	a.lVal()
}
