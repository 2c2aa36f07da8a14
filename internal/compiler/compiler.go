// Package compiler wires the pipeline stages — identifier table, lexer,
// parser, IR generator, and backend — into the single entry point the CLI
// and end-to-end tests call.
package compiler

import (
	"github.com/llir/llvm/ir"

	"aotc/internal/backend"
	"aotc/internal/codegen"
	"aotc/internal/ident"
	"aotc/internal/lexer"
	"aotc/internal/parser"
	"aotc/internal/report"
	"aotc/internal/token"
)

// Result is everything a caller might want out of a successful compile: the
// generated module and the identifier table it was named against (for
// anything downstream that wants to re-render identifiers, e.g. a future
// disassembler).
type Result struct {
	Module *ir.Module
	Idents *ident.Table
}

// Compile runs the full pipeline over a NUL-terminated source buffer (see
// internal/source) and returns a verified LLVM module. Every stage's error
// is normalized to *report.CompileError so callers have one type to switch
// on.
func Compile(src []byte) (*Result, error) {
	tab := ident.NewTable()
	token.RegisterKeywords(tab)

	lex := lexer.New(src, tab)
	p := parser.New(lex, tab)

	prog, err := p.Parse()
	if err != nil {
		return nil, normalizeSyntaxError(err)
	}

	gen := codegen.New(tab)
	mod, err := gen.Generate(prog)
	if err != nil {
		return nil, err
	}

	if err := backend.Verify(mod); err != nil {
		return nil, report.New(report.TagInternalError, report.Span{}, "%s", err.Error())
	}

	return &Result{Module: mod, Idents: tab}, nil
}

// normalizeSyntaxError turns a lexer.Error or parser.Error — both of which
// carry only a line/col, not report.Span's full range — into a
// report.CompileError with a point span at the failure site.
func normalizeSyntaxError(err error) error {
	switch e := err.(type) {
	case *lexer.Error:
		tag := report.TagLexBadChar
		if e.Kind == "overflow" {
			tag = report.TagLexOverflow
		}
		return report.New(tag, report.PointSpan(e.Line, e.Col), "%s", e.Msg)

	case *parser.Error:
		return report.New(report.TagParseUnexpected, report.PointSpan(e.Line, e.Col), "%s", e.Msg)

	default:
		return err
	}
}
