package semantic

import (
	"testing"
)

func TestSymbolTable(t *testing.T) {
	t.Run("GlobalScope", func(t *testing.T) {
		s := NewSymbolTable()
		if s.Current().ID != 1 {
			t.Errorf("global scope id: expected 1, got %d", s.Current().ID)
		}
		s.ExitScope()
		if s.Depth() != 1 {
			t.Errorf("global scope must stay open, depth %d", s.Depth())
		}
	})

	t.Run("NestedLookup", func(t *testing.T) {
		s := NewSymbolTable()
		s.Define(NewVariable("g", Int, false, false, 1, 1))
		inner := s.EnterScope()
		if inner.ID != 2 || inner.Parent != 1 {
			t.Fatalf("inner scope: got id %d parent %d", inner.ID, inner.Parent)
		}
		s.Define(NewVariable("l", Char, false, true, inner.ID, 2))

		if _, ok := s.Lookup("g"); !ok {
			t.Error("g should be visible from the inner scope")
		}
		if _, ok := s.LookupLocal("g"); ok {
			t.Error("g is not local to the inner scope")
		}
		sym, ok := s.Lookup("l")
		if !ok || sym.Type() != CharArray {
			t.Errorf("l: got %v, %v", sym, ok)
		}

		s.ExitScope()
		if _, ok := s.Lookup("l"); ok {
			t.Error("l should be gone after leaving its scope")
		}
		if len(s.Scopes()) != 2 {
			t.Errorf("closed scopes must stay registered, got %d", len(s.Scopes()))
		}
	})

	t.Run("Redefinition", func(t *testing.T) {
		s := NewSymbolTable()
		if !s.Define(NewVariable("a", Int, false, false, 1, 1)) {
			t.Fatal("first definition rejected")
		}
		if s.Define(NewVariable("a", Char, true, false, 1, 2)) {
			t.Fatal("second definition accepted")
		}
		sym, _ := s.Lookup("a")
		if sym.Line() != 1 || sym.Type() != Int {
			t.Errorf("first definition should win, got line %d type %s", sym.Line(), sym.Type())
		}
	})

	t.Run("SequentialIDs", func(t *testing.T) {
		s := NewSymbolTable()
		s.EnterScope()
		s.EnterScope()
		s.ExitScope()
		s.ExitScope()
		s.EnterScope()
		for i, sc := range s.Scopes() {
			if sc.ID != i+1 {
				t.Errorf("scope %d: expected id %d, got %d", i, i+1, sc.ID)
			}
		}
	})

	t.Run("Dump", func(t *testing.T) {
		s := NewSymbolTable()
		s.Define(NewFunction("f", Char, 1, 3))
		s.Define(NewVariable("b", Int, true, true, 1, 1))
		s.Define(NewFunction("main", Int, 1, 9))
		s.EnterScope()
		s.ExitScope()
		sc := s.EnterScope()
		s.Define(NewVariable("7", Int, false, false, sc.ID, 4))
		s.Define(NewVariable("x", Char, false, false, sc.ID, 5))

		want := "1 b ConstIntArray\n1 f CharFunc\n3 x Char\n"
		if got := s.String(); got != want {
			t.Errorf("dump:\n got: %q\nwant: %q", got, want)
		}
	})
}

func TestTypes(t *testing.T) {
	tests := []struct {
		base           Type
		isConst, isArr bool
		want           Type
	}{
		{Int, false, false, Int},
		{Int, true, false, ConstInt},
		{Int, false, true, IntArray},
		{Int, true, true, ConstIntArray},
		{Char, false, false, Char},
		{Char, true, false, ConstChar},
		{Char, false, true, CharArray},
		{Char, true, true, ConstCharArray},
		{Void, false, false, Unknown},
	}
	for _, tt := range tests {
		got := VarType(tt.base, tt.isConst, tt.isArr)
		if got != tt.want {
			t.Errorf("VarType(%s, %v, %v) = %s, want %s", tt.base, tt.isConst, tt.isArr, got, tt.want)
		}
		if tt.want != Unknown && got.Base() != tt.base {
			t.Errorf("%s.Base() = %s, want %s", got, got.Base(), tt.base)
		}
		if got.IsConst() != (tt.isConst && tt.want != Unknown) {
			t.Errorf("%s.IsConst() = %v", got, got.IsConst())
		}
	}

	if FuncType(Int) != IntFunc || FuncType(Char) != CharFunc || FuncType(Void) != VoidFunc {
		t.Error("FuncType mapping broken")
	}
	if !VoidFunc.IsFunc() || VoidFunc.Base() != Void || IntFunc.IsArray() {
		t.Error("function kind helpers broken")
	}
	if Type(42).String() != "Type(42)" {
		t.Errorf("unexpected fallback %q", Type(42).String())
	}
}
