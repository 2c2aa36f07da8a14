// Package codegen implements the IR generator: it walks a parsed Program,
// resolves symbols through internal/symtab, and emits typed SSA
// instructions into an LLVM module via github.com/llir/llvm — the real,
// external IR library the specification delegates verification and
// bitcode serialization to.
//
// Grounded on the source corpus's generate.Generator, trimmed of package
// imports, generics, and user-defined types: this language has exactly one
// implicit `main` function and one scalar type, i32.
package codegen

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"

	"aotc/internal/ast"
	"aotc/internal/ident"
	"aotc/internal/report"
	"aotc/internal/symtab"
)

// blockTarget pairs the two stacks of basic-block handles a Loop pushes:
// where `continue` and `break` jump to.
type blockTarget struct {
	continueTo *ir.Block
	breakTo    *ir.Block
}

// Generator walks a Program and builds a single-function LLVM module.
type Generator struct {
	tab  *ident.Table
	syms *symtab.Table

	mod     *ir.Module
	mainFn  *ir.Func
	printFn *ir.Func
	block   *ir.Block

	formats map[string]*ir.Global
	loops   []blockTarget
}

// New creates a Generator. tab is the identifier table the lexer/parser
// used to intern names; the generator needs it purely for error messages
// (spelling out identifiers in diagnostics).
func New(tab *ident.Table) *Generator {
	return &Generator{
		tab:     tab,
		syms:    symtab.New(),
		formats: make(map[string]*ir.Global),
	}
}

// Generate lowers prog into a complete LLVM module: a `main` function
// returning i32, an external `printf` declaration, and one basic block per
// control-flow branch/merge point the program's statements produce.
//
// After lowering every top-level statement, if the entry function's
// current block lacks a terminator, Generate appends `ret i32 0`.
func (g *Generator) Generate(prog *ast.Program) (mod *ir.Module, err error) {
	defer func() {
		if r := recover(); r != nil {
			if cerr, ok := r.(*report.CompileError); ok {
				err = cerr
				return
			}
			panic(r)
		}
	}()

	g.mod = ir.NewModule()
	g.setup()

	for _, stmt := range prog.Stmts {
		if g.closed() {
			break
		}
		g.genStmt(stmt)
	}

	if !g.closed() {
		g.block.NewRet(constant.NewInt(types.I32, 0))
	}

	return g.mod, nil
}

// setup declares `main` and the external `printf` primitive and positions
// the builder at main's entry block.
func (g *Generator) setup() {
	g.mainFn = g.mod.NewFunc("main", types.I32)
	entry := g.mainFn.NewBlock("entry")
	g.block = entry

	fmtParam := ir.NewParam("", types.NewPointer(types.I8))
	g.printFn = g.mod.NewFunc("printf", types.I32, fmtParam)
	g.printFn.Sig.Variadic = true
	g.printFn.Linkage = 0 // external declaration: no body is ever attached
}

// closed reports whether the current block already ends with a terminator.
// Per spec's per-block terminator discipline, statement lowering is a
// no-op once the current block is closed.
func (g *Generator) closed() bool {
	return g.block.Term != nil
}

// appendBlock creates a new, unattached-to-control-flow block in main. The
// caller is responsible for branching into it.
func (g *Generator) appendBlock() *ir.Block {
	return g.mainFn.NewBlock("")
}

// fmtString returns the interned global constant for a NUL-terminated
// format string, creating it on first use. Currently only "%d\n" is ever
// requested, but the cache is keyed by content so future format strings
// fall out for free.
func (g *Generator) fmtString(s string) *ir.Global {
	if gv, ok := g.formats[s]; ok {
		return gv
	}

	data := constant.NewCharArrayFromString(s + "\x00")
	gv := g.mod.NewGlobalDef("", data)
	gv.Immutable = true
	g.formats[s] = gv
	return gv
}

// ice raises an InternalError: a violation of one of the generator's own
// invariants, not a user-facing language error.
func (g *Generator) ice(format string, args ...interface{}) {
	panic(report.New(report.TagInternalError, report.Span{}, format, args...))
}
