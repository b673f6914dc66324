package compiler

import (
	"fmt"
	"io"

	"minic/pkg/config"
	"minic/pkg/diag"
	"minic/pkg/lexer"
	"minic/pkg/semantic"
	"minic/pkg/utils"
)

// WriteTokens writes the token listing, one "KIND lexeme" line per token.
func (r *Result) WriteTokens(w io.Writer) error {
	for _, tok := range r.Tokens {
		if tok.Type == lexer.EOF {
			break
		}
		if _, err := fmt.Fprintln(w, tok); err != nil {
			return err
		}
	}
	return nil
}

// WriteTrace writes the parse trace.
func (r *Result) WriteTrace(w io.Writer) error {
	_, err := r.Trace.WriteTo(w)
	return err
}

// WriteSymbols writes the symbol dump.
func (r *Result) WriteSymbols(w io.Writer) error {
	return semantic.WriteDump(w, r.Symbols)
}

// WriteErrors writes the merged error list.
func (r *Result) WriteErrors(w io.Writer) error {
	_, err := diag.WriteRecords(w, r.Errors)
	return err
}

// WriteArtifacts writes the output files named by out. The token listing is
// written when the lexer was clean, the parse trace when the lexer and the
// parser were clean, the symbol dump always, and the error list when anything
// was recorded. A file that is not written this run is removed so that no
// stale output survives.
func (r *Result) WriteArtifacts(out config.Outputs) error {
	artifacts := []struct {
		name  string
		want  bool
		write func(io.Writer) error
	}{
		{out.Lexer, r.LexClean(), r.WriteTokens},
		{out.Parser, r.SyntaxClean(), r.WriteTrace},
		{out.Symbols, true, r.WriteSymbols},
		{out.Errors, r.HasErrors(), r.WriteErrors},
	}

	for _, a := range artifacts {
		if a.name == "" {
			continue
		}
		path := out.Path(a.name)
		if !a.want {
			if err := utils.RemoveIfExists(path); err != nil {
				return err
			}
			continue
		}
		if err := utils.WriteFile(path, a.write); err != nil {
			return err
		}
	}
	return nil
}
