package semantic

// Symbol is a named declaration recorded in a scope.
type Symbol interface {
	Name() string
	Type() Type
	Scope() int // id of the owning scope
	Line() int  // declaration line
	IsArray() bool
}

type symbol struct {
	name  string
	typ   Type
	scope int
	line  int
}

func (s *symbol) Name() string { return s.name }
func (s *symbol) Type() Type   { return s.typ }
func (s *symbol) Scope() int   { return s.scope }
func (s *symbol) Line() int    { return s.line }

// Variable is a scalar or array, possibly const. Function parameters are
// Variables too.
type Variable struct {
	symbol
}

func NewVariable(name string, base Type, isConst, isArray bool, scope, line int) *Variable {
	return &Variable{symbol{name: name, typ: VarType(base, isConst, isArray), scope: scope, line: line}}
}

func (v *Variable) IsArray() bool { return v.typ.IsArray() }
func (v *Variable) IsConst() bool { return v.typ.IsConst() }

// Function carries its declared return type and its formal parameters in
// declaration order.
type Function struct {
	symbol
	Return Type
	Params []*Variable
}

func NewFunction(name string, ret Type, scope, line int) *Function {
	return &Function{symbol: symbol{name: name, typ: FuncType(ret), scope: scope, line: line}, Return: ret}
}

func (f *Function) IsArray() bool { return false }
