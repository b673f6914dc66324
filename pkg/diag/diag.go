// Package diag collects compiler errors as (line, code) records.
package diag

import (
	"bufio"
	"fmt"
	"io"
	"sort"
)

// Code is the one-letter classification of a compiler error.
type Code string

const (
	IllegalSymbol     Code = "a" // illegal lexical symbol
	Redefined         Code = "b" // name already defined in the current scope
	Undefined         Code = "c" // undefined name, or a non-function called
	ArgCount          Code = "d" // call argument count differs from parameter count
	ArgType           Code = "e" // call argument type differs from parameter type
	VoidReturnValue   Code = "f" // return with a value in a void function
	MissingReturn     Code = "g" // non-void function without an unconditional return
	ConstAssign       Code = "h" // assignment to a const
	MissingSemicolon  Code = "i" // missing ';'
	MissingRParen     Code = "j" // missing ')'
	MissingRBracket   Code = "k" // missing ']'
	FormatMismatch    Code = "l" // printf specifier count differs from argument count
	MisplacedLoopCtrl Code = "m" // break/continue outside a loop

	Crash Code = "CRASH" // unrecovered internal failure
)

var descriptions = map[Code]string{
	IllegalSymbol:     "illegal symbol",
	Redefined:         "name redefined in the same scope",
	Undefined:         "undefined name",
	ArgCount:          "wrong number of arguments",
	ArgType:           "argument type mismatch",
	VoidReturnValue:   "void function returns a value",
	MissingReturn:     "missing return at end of function",
	ConstAssign:       "assignment to constant",
	MissingSemicolon:  "missing ';'",
	MissingRParen:     "missing ')'",
	MissingRBracket:   "missing ']'",
	FormatMismatch:    "printf argument count does not match format",
	MisplacedLoopCtrl: "break or continue outside a loop",
	Crash:             "internal compiler failure",
}

func (c Code) String() string { return string(c) }

// Describe returns a short human-readable explanation of c.
func (c Code) Describe() string {
	if d, ok := descriptions[c]; ok {
		return d
	}
	return fmt.Sprintf("unknown error %q", string(c))
}

// IsSyntax reports whether c is a missing-token code that both the parser and
// the semantic analyzer detect.
func (c Code) IsSyntax() bool {
	return c == MissingSemicolon || c == MissingRParen || c == MissingRBracket
}

// Record is a single recorded error.
type Record struct {
	Line int
	Code Code
}

func (r Record) String() string {
	return fmt.Sprintf("%d %s", r.Line, r.Code)
}

// Sink is an append-only collector of error records. The zero value is ready
// to use. A Sink is not safe for concurrent use; give each goroutine its own.
type Sink struct {
	records []Record
}

// NewSink returns an empty Sink.
func NewSink() *Sink {
	return &Sink{}
}

// Report records an error of the given code at line.
func (s *Sink) Report(line int, code Code) {
	s.records = append(s.records, Record{Line: line, Code: code})
}

// Len returns the number of recorded errors.
func (s *Sink) Len() int {
	if s == nil {
		return 0
	}
	return len(s.records)
}

// HasErrors reports whether anything was recorded.
func (s *Sink) HasErrors() bool {
	return s.Len() > 0
}

// Records returns a copy of the records in insertion order.
func (s *Sink) Records() []Record {
	if s.Len() == 0 {
		return nil
	}
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// Sorted returns the records ordered by line. Records on the same line keep
// their insertion order.
func (s *Sink) Sorted() []Record {
	out := s.Records()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Line < out[j].Line
	})
	return out
}

// WriteTo writes the sorted records, one "line code" pair per line.
func (s *Sink) WriteTo(w io.Writer) (int64, error) {
	return WriteRecords(w, s.Sorted())
}

// WriteRecords writes recs in the given order, one per line.
func WriteRecords(w io.Writer, recs []Record) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	for _, r := range recs {
		m, err := fmt.Fprintln(bw, r)
		n += int64(m)
		if err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}

// Merge combines the records of the syntax pass and the semantic pass into a
// new Sink. Missing-token records (i, j, k) found by both passes at the same
// line are kept once; every other record is kept as is.
func Merge(syntax, semantic *Sink) *Sink {
	out := &Sink{records: syntax.Records()}

	pending := make(map[Record]int)
	for _, r := range out.records {
		if r.Code.IsSyntax() {
			pending[r]++
		}
	}

	for _, r := range semantic.Records() {
		if r.Code.IsSyntax() && pending[r] > 0 {
			pending[r]--
			continue
		}
		out.records = append(out.records, r)
	}
	return out
}
