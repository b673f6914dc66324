// Package compiler runs the front end: lexing, then the parser and the
// semantic analyzer over the same tokens, then merges their errors.
package compiler

import (
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"minic/pkg/diag"
	"minic/pkg/lexer"
	"minic/pkg/parser"
	"minic/pkg/semantic"
)

// Options tunes a compile run. The zero value is usable.
type Options struct {
	MaxDepth int          // recursion ceiling for both phases; 0 means the default
	Parallel bool         // run the parser and the analyzer concurrently
	Logger   *slog.Logger // nil discards
}

// Result holds everything a compile run produced.
type Result struct {
	Tokens  []lexer.Token
	Trace   parser.Trace
	Symbols []semantic.Entry

	Lexical  *diag.Sink // lexer records
	Syntax   *diag.Sink // parser records
	Semantic *diag.Sink // analyzer records
	Crashed  bool       // a phase failed outside its own recovery

	// Errors is every record of the run, missing-token duplicates between the
	// parser and the analyzer removed, sorted by line.
	Errors []diag.Record
}

// HasErrors reports whether any error was recorded.
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// LexClean reports whether the lexer recorded nothing.
func (r *Result) LexClean() bool {
	return !r.Crashed && !r.Lexical.HasErrors()
}

// SyntaxClean reports whether neither the lexer nor the parser recorded
// anything, which is when the parse trace is meaningful.
func (r *Result) SyntaxClean() bool {
	return r.LexClean() && !r.Syntax.HasErrors()
}

func (r *Result) collect() {
	all := diag.Merge(diag.Merge(r.Lexical, r.Syntax), r.Semantic)
	if r.Crashed {
		all.Report(0, diag.Crash)
	}
	r.Errors = all.Sorted()
}

// Compile runs the whole front end over src. It never panics; an internal
// failure is logged and recorded as a CRASH error at line 0.
func Compile(src string, opts Options) (res *Result) {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	res = &Result{
		Lexical:  diag.NewSink(),
		Syntax:   diag.NewSink(),
		Semantic: diag.NewSink(),
	}
	defer func() {
		if r := recover(); r != nil {
			log.Error("compilation crashed", "panic", r)
			res.Crashed = true
		}
		res.collect()
	}()

	res.Tokens = lexer.Lex(src, res.Lexical)
	log.Debug("lexed", "tokens", len(res.Tokens), "errors", res.Lexical.Len())

	parse := guard("parse", func() {
		res.Trace = parser.Parse(res.Tokens, res.Syntax,
			parser.WithMaxDepth(opts.MaxDepth), parser.WithLogger(log))
	})
	analyze := guard("analyze", func() {
		res.Symbols = semantic.Analyze(res.Tokens, res.Semantic,
			semantic.WithMaxDepth(opts.MaxDepth), semantic.WithLogger(log))
	})

	var err error
	if opts.Parallel {
		var g errgroup.Group
		g.Go(parse)
		g.Go(analyze)
		err = g.Wait()
	} else {
		err = parse()
		if aerr := analyze(); err == nil {
			err = aerr
		}
	}
	if err != nil {
		log.Error("compilation crashed", "err", err)
		res.Crashed = true
	}

	log.Debug("compiled",
		"syntax_errors", res.Syntax.Len(),
		"semantic_errors", res.Semantic.Len(),
		"symbols", len(res.Symbols))
	return res
}

// guard turns a panic in fn into an error so that it can cross a goroutine.
func guard(phase string, fn func()) func() error {
	return func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%s phase panicked: %v", phase, r)
			}
		}()
		fn()
		return nil
	}
}

// CompileFile reads path and compiles it. The error is non-nil only when the
// file cannot be read.
func CompileFile(path string, opts Options) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	return Compile(string(data), opts), nil
}
