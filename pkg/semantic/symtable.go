package semantic

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"
)

// Scope is one lexical region. Symbols keep their insertion order.
type Scope struct {
	ID     int
	Parent int // 0 for the global scope

	symbols map[string]Symbol
	order   []Symbol
}

// Symbols returns the scope's symbols in insertion order.
func (s *Scope) Symbols() []Symbol {
	return s.order
}

// SymbolTable owns every scope ever entered (the arena) plus the stack of
// scopes that are currently open. Scope ids start at 1 for the global scope
// and index the arena; the stack only holds ids.
type SymbolTable struct {
	scopes []*Scope
	stack  []int
}

// NewSymbolTable returns a table with the global scope already open.
func NewSymbolTable() *SymbolTable {
	t := &SymbolTable{}
	t.EnterScope()
	return t
}

// EnterScope opens a new scope nested in the current one.
func (t *SymbolTable) EnterScope() *Scope {
	parent := 0
	if len(t.stack) > 0 {
		parent = t.stack[len(t.stack)-1]
	}
	s := &Scope{
		ID:      len(t.scopes) + 1,
		Parent:  parent,
		symbols: make(map[string]Symbol),
	}
	t.scopes = append(t.scopes, s)
	t.stack = append(t.stack, s.ID)
	return s
}

// ExitScope closes the current scope. The global scope is never closed.
func (t *SymbolTable) ExitScope() {
	if len(t.stack) > 1 {
		t.stack = t.stack[:len(t.stack)-1]
	}
}

// Depth returns the number of open scopes.
func (t *SymbolTable) Depth() int {
	return len(t.stack)
}

func (t *SymbolTable) scope(id int) *Scope {
	if id < 1 || id > len(t.scopes) {
		return nil
	}
	return t.scopes[id-1]
}

// Current returns the innermost open scope.
func (t *SymbolTable) Current() *Scope {
	return t.scope(t.stack[len(t.stack)-1])
}

// Define adds sym to the current scope. It returns false, leaving the first
// definition in place, when the name is already taken there.
func (t *SymbolTable) Define(sym Symbol) bool {
	cur := t.Current()
	if _, ok := cur.symbols[sym.Name()]; ok {
		return false
	}
	cur.symbols[sym.Name()] = sym
	cur.order = append(cur.order, sym)
	return true
}

// LookupLocal searches only the current scope.
func (t *SymbolTable) LookupLocal(name string) (Symbol, bool) {
	sym, ok := t.Current().symbols[name]
	return sym, ok
}

// Lookup searches the current scope and then each enclosing scope.
func (t *SymbolTable) Lookup(name string) (Symbol, bool) {
	for s := t.Current(); s != nil; s = t.scope(s.Parent) {
		if sym, ok := s.symbols[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// Scopes returns every scope created so far, ordered by id.
func (t *SymbolTable) Scopes() []*Scope {
	return t.scopes
}

// Entry is one line of the symbol dump.
type Entry struct {
	Scope int
	Name  string
	Type  Type
	Line  int
}

func (e Entry) String() string {
	return fmt.Sprintf("%d %s %s", e.Scope, e.Name, e.Type)
}

var numericName = regexp.MustCompile(`^\d+$`)

// hidden reports whether sym is left out of the dump: the entry function and
// numeric placeholder names.
func hidden(sym Symbol) bool {
	if _, ok := sym.(*Function); ok && sym.Name() == "main" {
		return true
	}
	return numericName.MatchString(sym.Name())
}

// Dump lists every retained symbol of every scope, ordered by scope and then
// declaration line. Scope ids are assigned in opening order with no gaps, so
// they serve as the output numbering directly; empty scopes keep their number.
func (t *SymbolTable) Dump() []Entry {
	var entries []Entry
	for _, s := range t.scopes {
		for _, sym := range s.order {
			if hidden(sym) {
				continue
			}
			entries = append(entries, Entry{
				Scope: sym.Scope(),
				Name:  sym.Name(),
				Type:  sym.Type(),
				Line:  sym.Line(),
			})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Scope != entries[j].Scope {
			return entries[i].Scope < entries[j].Scope
		}
		return entries[i].Line < entries[j].Line
	})
	return entries
}

// String renders the dump, one "scope name Type" line per symbol.
func (t *SymbolTable) String() string {
	var sb strings.Builder
	_ = WriteDump(&sb, t.Dump())
	return sb.String()
}

// WriteDump writes entries one per line.
func WriteDump(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		if _, err := fmt.Fprintln(bw, e); err != nil {
			return err
		}
	}
	return bw.Flush()
}
