package semantic

import (
	"minic/pkg/diag"
	"minic/pkg/lexer"
)

func (a *Analyzer) exp() {
	defer a.resync(expBoundary...)
	a.enter("Exp")
	defer a.leave()

	a.addExp()
}

func (a *Analyzer) cond() {
	defer a.resync(expBoundary...)
	a.enter("Cond")
	defer a.leave()

	a.binary(lexer.OR, func() {
		a.binary(lexer.AND, func() {
			a.binary(lexer.EQL, a.relExp, lexer.NEQ)
		})
	})
}

func (a *Analyzer) relExp() {
	a.binary(lexer.LSS, a.addExp, lexer.GRE, lexer.LEQ, lexer.GEQ)
}

func (a *Analyzer) addExp() {
	a.enter("AddExp")
	defer a.leave()

	a.binary(lexer.PLUS, a.mulExp, lexer.MINU)
}

func (a *Analyzer) mulExp() {
	a.enter("MulExp")
	defer a.leave()

	a.binary(lexer.MULT, a.unaryExp, lexer.DIV, lexer.MOD)
}

// binary walks operand {op operand} for the operator op and any of more.
func (a *Analyzer) binary(op lexer.TokenType, operand func(), more ...lexer.TokenType) {
	operand()
	for a.isOneOf(op, more...) {
		a.advance()
		operand()
	}
}

func (a *Analyzer) isOneOf(tt lexer.TokenType, more ...lexer.TokenType) bool {
	cur := a.peek().Type
	if cur == tt {
		return true
	}
	for _, m := range more {
		if cur == m {
			return true
		}
	}
	return false
}

func (a *Analyzer) unaryExp() {
	a.enter("UnaryExp")
	defer a.leave()

	switch tt := a.peek().Type; {
	case tt == lexer.IDENFR && a.peekAt(1).Type == lexer.LPARENT:
		a.call()
	case tt == lexer.PLUS || tt == lexer.MINU || tt == lexer.NOT:
		a.advance()
		a.unaryExp()
	default:
		a.primaryExp()
	}
}

func (a *Analyzer) primaryExp() {
	switch a.peek().Type {
	case lexer.LPARENT:
		line := a.advance().Line
		a.exp()
		a.rparen(line)
	case lexer.IDENFR:
		a.lVal()
	case lexer.INTCON, lexer.CHRCON:
		a.advance()
	}
}

// lVal walks "Ident [ '[' Exp ']' ]" and resolves the name.
func (a *Analyzer) lVal() {
	a.enter("LVal")
	defer a.leave()

	tok := a.peek()
	if !a.expect(lexer.IDENFR) {
		return
	}
	if _, ok := a.table.Lookup(tok.Lexeme); !ok {
		a.errs.Report(tok.Line, diag.Undefined)
	}
	if a.check(lexer.LBRACK) {
		line := a.advance().Line
		if a.check(lexer.ASSIGN) {
			a.errs.Report(line, diag.MissingRBracket)
			return
		}
		if a.peek().Type.StartsExp() {
			a.exp()
		}
		a.rbrack(line)
	}
}

// call walks "Ident ( [FuncRParams] )" and checks it against the callee's
// signature. Arity and argument types are only checked when the call is
// closed by its ')'.
func (a *Analyzer) call() {
	name := a.advance()
	line := a.advance().Line // (

	sym, _ := a.table.Lookup(name.Lexeme)
	fn, isFunc := sym.(*Function)
	if !isFunc {
		a.errs.Report(name.Line, diag.Undefined)
	}

	var args []Type
	if a.peek().Type.StartsExp() {
		args = append(args, a.argument())
		for a.expect(lexer.COMMA) {
			args = append(args, a.argument())
		}
	}
	closed := a.rparen(line)

	if isFunc && closed {
		a.checkArgs(fn, args, name.Line)
	}
}

// argument infers the type of the argument at the cursor, then walks it.
func (a *Analyzer) argument() Type {
	t := a.argType()
	a.exp()
	return t
}

func (a *Analyzer) checkArgs(fn *Function, args []Type, line int) {
	if len(args) != len(fn.Params) {
		a.errs.Report(line, diag.ArgCount)
		return
	}
	for i, p := range fn.Params {
		if mismatch(p.Type(), args[i]) {
			a.errs.Report(line, diag.ArgType)
			return
		}
	}
}

// mismatch compares a formal parameter type with an inferred argument type.
// Unknown arguments never mismatch; their names were already reported.
func mismatch(param, arg Type) bool {
	if arg == Unknown || param.Base() == Unknown {
		return false
	}
	if param.IsArray() != arg.IsArray() {
		return true
	}
	pb, ab := param.Base(), arg.Base()
	if pb == Void || ab == Void {
		return false
	}
	return pb != ab
}

// argType classifies the argument starting at the cursor without consuming
// it. Only a lone operand is looked at: a literal, a name, an indexed name or
// a call. Anything more complex is taken to be Int.
func (a *Analyzer) argType() Type {
	i := a.pos
	tok := a.tokenAt(i)
	var t Type

	switch tok.Type {
	case lexer.INTCON:
		t, i = Int, i+1
	case lexer.CHRCON:
		t, i = Char, i+1
	case lexer.IDENFR:
		sym, _ := a.table.Lookup(tok.Lexeme)
		t = Unknown
		switch a.tokenAt(i + 1).Type {
		case lexer.LPARENT:
			if fn, ok := sym.(*Function); ok {
				t = fn.Return
			}
			i = a.skipGroup(i+1, lexer.LPARENT, lexer.RPARENT)
		case lexer.LBRACK:
			if v, ok := sym.(*Variable); ok {
				t = v.Type().Base()
			}
			i = a.skipGroup(i+1, lexer.LBRACK, lexer.RBRACK)
		default:
			if v, ok := sym.(*Variable); ok {
				t = VarType(v.Type().Base(), false, v.IsArray())
			}
			i++
		}
	default:
		return Int
	}

	switch a.tokenAt(i).Type {
	case lexer.COMMA, lexer.RPARENT, lexer.SEMICN, lexer.RBRACE, lexer.EOF:
		return t
	}
	return Int
}

// skipGroup returns the index just past the close token matching the open
// token at tokens[i], or the index of the ';' or '}' that cut it short.
func (a *Analyzer) skipGroup(i int, open, close lexer.TokenType) int {
	depth := 0
	for ; ; i++ {
		switch a.tokenAt(i).Type {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i + 1
			}
		case lexer.SEMICN, lexer.RBRACE, lexer.EOF:
			return i
		}
	}
}
