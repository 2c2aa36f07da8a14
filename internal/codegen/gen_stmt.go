package codegen

import (
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"aotc/internal/ast"
	"aotc/internal/report"
	"aotc/internal/symtab"
)

// genStmt dispatches on the concrete statement type. Per the per-block
// terminator discipline, callers must never invoke genStmt once the current
// block is already closed; genBlockScoped (and Generate, at top level)
// enforces this by stopping the moment a nested statement closes the block.
func (g *Generator) genStmt(s ast.Stmt) {
	switch v := s.(type) {
	case *ast.Block:
		g.genBlockScoped(v)
	case *ast.Nop:
		// no-op
	case *ast.Let:
		g.genLet(v)
	case *ast.Assign:
		g.genAssign(v)
	case *ast.ExprStmt:
		g.genExprStmt(v)
	case *ast.Return:
		g.genReturn(v)
	case *ast.If:
		g.genIf(v)
	case *ast.Loop:
		g.genLoop(v)
	case *ast.Break:
		g.genBreak()
	case *ast.Continue:
		g.genContinue()
	default:
		g.ice("unhandled statement node %T", s)
	}
}

// genBlockScoped opens a new lexical scope, lowers b's statements in order,
// and closes the scope again. Statement lowering after the block's builder
// position closes (e.g. a `return`, `break`, or `continue` fired mid-block)
// is dead and is not emitted, mirroring the corpus's own dead-code-after-
// terminator elision.
func (g *Generator) genBlockScoped(b *ast.Block) {
	g.syms.PushScope()
	defer g.syms.PopScope()

	for _, stmt := range b.Stmts {
		if g.closed() {
			return
		}
		g.genStmt(stmt)
	}
}

// genLet allocates storage for a new scalar or array binding at the
// *current* insertion block — never hoisted to the function entry, per the
// allocation-site invariant — and declares it in the innermost scope.
func (g *Generator) genLet(l *ast.Let) {
	var storage value.Value
	var kind symtab.Kind
	var size int32

	switch l.Kind {
	case ast.ScalarVar:
		storage = g.block.NewAlloca(types.I32)
		kind = symtab.Scalar

	case ast.ArrayVar:
		lit, ok := l.Size.(*ast.IntLiteral)
		if !ok {
			panic(report.New(report.TagBadArraySize, report.Span{}, "array size must be a literal integer"))
		}
		if lit.Value <= 0 {
			panic(report.New(report.TagBadArraySize, report.Span{}, "array size must be a positive literal, got %d", lit.Value))
		}
		storage = g.block.NewAlloca(types.NewArray(uint64(lit.Value), types.I32))
		kind = symtab.Array
		size = lit.Value

	default:
		g.ice("unhandled Let.Kind %v", l.Kind)
	}

	if err := g.syms.Declare(l.Name, storage, kind, size); err != nil {
		panic(report.New(report.TagInternalError, report.Span{}, "%s: %v", g.spelling(l.Name), err))
	}
}

// genAssign evaluates the right-hand side, resolves the left-hand side, and
// stores. A kind mismatch (assigning through a scalar id that was declared
// as an array, or vice versa) aborts with KindMismatch.
func (g *Generator) genAssign(a *ast.Assign) {
	rhs := g.genExpr(a.RHS)

	switch lhs := a.LHS.(type) {
	case *ast.Variable:
		sym := g.resolve(lhs.Name)
		if sym.Kind != symtab.Scalar {
			g.kindMismatch("%s is an array, not a scalar", g.spelling(lhs.Name))
		}
		g.block.NewStore(rhs, sym.Storage.(value.Value))

	case *ast.ArrayAccess:
		addr := g.arrayElemAddr(lhs)
		g.block.NewStore(rhs, addr)

	default:
		panic(report.New(report.TagBadAssignTarget, report.Span{}, "assignment target must be a variable or array element"))
	}
}

// genExprStmt lowers a bare expression statement and prints its value: every
// ExprStmt is an implicit `print(expr)`.
func (g *Generator) genExprStmt(e *ast.ExprStmt) {
	v := g.genExpr(e.Expr)
	fmtGV := g.fmtString("%d\n")
	fmtPtr := g.block.NewBitCast(fmtGV, types.I8Ptr)

	g.block.NewCall(g.printFn, fmtPtr, v)
}

// genReturn evaluates its operand and emits `ret i32 <value>`, closing the
// current block. A top-level Return behaves identically to reaching the end
// of the program: both close main with a return value.
func (g *Generator) genReturn(r *ast.Return) {
	v := g.genExpr(r.Expr)
	g.block.NewRet(v)
}
