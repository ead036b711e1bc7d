// Package loxbrew wires the lexer, parser, resolver, and interp packages
// into the full pipeline: source text in, either a completed run or a
// list of diagnostics out. Grounded on
// original_source/src/lib.rs's run_file/run_source_code, adapted from
// Rust's Result<(), LoxError> to a Go Diagnostics aggregate since a
// single pipeline run can surface many diagnostics, not just one.
package loxbrew

import (
	"fmt"
	"io"
	"os"

	"github.com/loxbrew/loxbrew/ast"
	"github.com/loxbrew/loxbrew/interp"
	"github.com/loxbrew/loxbrew/lexer"
	"github.com/loxbrew/loxbrew/parser"
	"github.com/loxbrew/loxbrew/resolver"
)

// Diagnostics collects every error a pipeline stage produced. Stages run
// in order and a stage with errors halts the pipeline before the next
// one runs (spec.md §2, §7): lex errors prevent parsing, parse errors
// prevent resolving, resolve errors prevent evaluation.
type Diagnostics struct {
	Lex      []*lexer.Error
	Parse    []*parser.Error
	Resolve  []*resolver.Error
	Runtime  error
	Stmts    []ast.Stmt // set once lexing succeeds: the parser's output, even if it reported errors
}

// Empty reports whether the pipeline produced no diagnostic at all.
func (d *Diagnostics) Empty() bool {
	return len(d.Lex) == 0 && len(d.Parse) == 0 && len(d.Resolve) == 0 && d.Runtime == nil
}

// Run lexes, parses, resolves, and evaluates source, writing `print`
// output to out. It always returns a non-nil Diagnostics; check Empty()
// to tell a clean run from one that produced a diagnostic.
func Run(source string, out io.Writer) *Diagnostics {
	diags := &Diagnostics{}

	tokens, lexErr := lexer.Tokenize(source)
	if lexErr != nil {
		diags.Lex = []*lexer.Error{lexErr}
		return diags
	}

	p := parser.New(tokens)
	stmts := p.Parse()
	diags.Stmts = stmts
	if errs := p.Errors(); len(errs) > 0 {
		diags.Parse = errs
		return diags
	}

	res := resolver.New()
	res.Resolve(stmts)
	if errs := res.Errors(); len(errs) > 0 {
		diags.Resolve = errs
		return diags
	}

	in := interp.New(res)
	in.SetOutput(out)
	if err := in.Interpret(stmts); err != nil {
		diags.Runtime = err
	}
	return diags
}

// Check runs the pipeline through the resolver only, never evaluating —
// used by the CLI's `check` subcommand.
func Check(source string) *Diagnostics {
	diags := &Diagnostics{}

	tokens, lexErr := lexer.Tokenize(source)
	if lexErr != nil {
		diags.Lex = []*lexer.Error{lexErr}
		return diags
	}

	p := parser.New(tokens)
	stmts := p.Parse()
	diags.Stmts = stmts
	if errs := p.Errors(); len(errs) > 0 {
		diags.Parse = errs
		return diags
	}

	res := resolver.New()
	res.Resolve(stmts)
	diags.Resolve = res.Errors()
	return diags
}

// Parse runs the pipeline through the parser only, for the CLI's `ast`
// subcommand — no resolving or evaluation.
func Parse(source string) ([]ast.Stmt, []*lexer.Error, []*parser.Error) {
	tokens, lexErr := lexer.Tokenize(source)
	if lexErr != nil {
		return nil, []*lexer.Error{lexErr}, nil
	}
	p := parser.New(tokens)
	stmts := p.Parse()
	return stmts, nil, p.Errors()
}

// RunFile reads path and runs it, mirroring original_source's run_file:
// an unreadable file is an I/O error surfaced at this boundary, kept
// separate from the filesystem-free core pipeline (spec.md §7).
func RunFile(path string, out io.Writer) (*Diagnostics, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read file %q: %w", path, err)
	}
	return Run(string(content), out), nil
}
