package codegen

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"aotc/internal/ast"
	"aotc/internal/ident"
	"aotc/internal/report"
	"aotc/internal/symtab"
	"aotc/internal/token"
)

// asBool converts an i32 to i1: x != 0.
func (g *Generator) asBool(x value.Value) value.Value {
	return g.block.NewICmp(enum.IPredNE, x, constant.NewInt(types.I32, 0))
}

// fromBool zero-extends an i1 back to i32.
func (g *Generator) fromBool(x value.Value) value.Value {
	return g.block.NewZExt(x, types.I32)
}

// genExpr lowers e to an i32 SSA value, per the lowering table in spec §4.5.
func (g *Generator) genExpr(e ast.Expr) value.Value {
	switch v := e.(type) {
	case *ast.IntLiteral:
		return constant.NewInt(types.I32, int64(v.Value))

	case *ast.Variable:
		sym := g.resolve(v.Name)
		if sym.Kind != symtab.Scalar {
			g.kindMismatch("%s is an array, not a scalar", g.spelling(v.Name))
		}
		return g.block.NewLoad(types.I32, sym.Storage.(value.Value))

	case *ast.ArrayAccess:
		addr := g.arrayElemAddr(v)
		return g.block.NewLoad(types.I32, addr)

	case *ast.MathOp:
		return g.genMathOp(v)
	}

	g.ice("unhandled expression node %T", e)
	panic("unreachable")
}

// arrayElemAddr resolves an ArrayAccess to the address of its element:
// base + index*4, expressed as a typed GEP over the array's element type.
func (g *Generator) arrayElemAddr(a *ast.ArrayAccess) value.Value {
	sym := g.resolve(a.Name)
	if sym.Kind != symtab.Array {
		g.kindMismatch("%s is a scalar, not an array", g.spelling(a.Name))
	}

	idx := g.genExpr(a.Index)
	arrTy := types.NewArray(uint64(sym.Size), types.I32)
	zero := constant.NewInt(types.I32, 0)
	return g.block.NewGetElementPtr(arrTy, sym.Storage.(value.Value), zero, idx)
}

// genMathOp dispatches unary and binary operators. Short-circuit && and ||
// are handled separately since they need explicit branches rather than a
// single instruction.
func (g *Generator) genMathOp(m *ast.MathOp) value.Value {
	op := token.Kind(m.Op)

	if op == token.AND || op == token.OR {
		return g.genShortCircuit(op, m.Operands[0], m.Operands[1])
	}

	if len(m.Operands) == 1 {
		return g.genUnary(op, m.Operands[0])
	}
	return g.genBinary(op, m.Operands[0], m.Operands[1])
}

func (g *Generator) genUnary(op token.Kind, operand ast.Expr) value.Value {
	x := g.genExpr(operand)

	switch op {
	case token.Kind('+'):
		return x
	case token.Kind('-'):
		return g.block.NewSub(constant.NewInt(types.I32, 0), x)
	case token.Kind('~'):
		return g.block.NewXor(x, constant.NewInt(types.I32, -1))
	case token.Kind('!'):
		return g.fromBool(g.block.NewICmp(enum.IPredEQ, x, constant.NewInt(types.I32, 0)))
	}

	g.ice("unhandled unary operator %v", op)
	panic("unreachable")
}

func (g *Generator) genBinary(op token.Kind, lhsExpr, rhsExpr ast.Expr) value.Value {
	lhs := g.genExpr(lhsExpr)
	rhs := g.genExpr(rhsExpr)

	switch op {
	case token.Kind('+'):
		return g.block.NewAdd(lhs, rhs)
	case token.Kind('-'):
		return g.block.NewSub(lhs, rhs)
	case token.Kind('*'):
		return g.block.NewMul(lhs, rhs)
	case token.Kind('/'):
		return g.block.NewSDiv(lhs, rhs)
	case token.Kind('%'):
		return g.block.NewSRem(lhs, rhs)
	case token.LSHIFT:
		return g.block.NewShl(lhs, rhs)
	case token.RSHIFT:
		return g.block.NewAShr(lhs, rhs)
	case token.Kind('&'):
		return g.block.NewAnd(lhs, rhs)
	case token.Kind('|'):
		return g.block.NewOr(lhs, rhs)
	case token.Kind('^'):
		return g.block.NewXor(lhs, rhs)

	case token.Kind('<'):
		return g.fromBool(g.block.NewICmp(enum.IPredSLT, lhs, rhs))
	case token.Kind('>'):
		return g.fromBool(g.block.NewICmp(enum.IPredSGT, lhs, rhs))
	case token.LE:
		return g.fromBool(g.block.NewICmp(enum.IPredSLE, lhs, rhs))
	case token.GE:
		return g.fromBool(g.block.NewICmp(enum.IPredSGE, lhs, rhs))
	case token.EQ:
		return g.fromBool(g.block.NewICmp(enum.IPredEQ, lhs, rhs))
	case token.NE:
		return g.fromBool(g.block.NewICmp(enum.IPredNE, lhs, rhs))
	}

	g.ice("unhandled binary operator %v", op)
	panic("unreachable")
}

// genShortCircuit lowers && and || via explicit branches and a phi, exactly
// per spec §4.5: the right-hand side is only evaluated in its own block,
// reached conditionally from the left's result, and the phi's second
// incoming edge is the *actual* predecessor block after evaluating the
// right-hand side — which may differ from rBlock if evaluating rhsExpr
// itself splits the control-flow graph (e.g. it contains a nested && or
// short-circuiting sub-expression).
func (g *Generator) genShortCircuit(op token.Kind, lhsExpr, rhsExpr ast.Expr) value.Value {
	lhs := g.genExpr(lhsExpr)
	lhsBlock := g.block
	lhsBool := g.asBool(lhs)

	rBlock := g.appendBlock()
	mergeBlock := g.appendBlock()

	if op == token.OR {
		g.block.NewCondBr(lhsBool, mergeBlock, rBlock)
	} else {
		g.block.NewCondBr(lhsBool, rBlock, mergeBlock)
	}

	g.block = rBlock
	rhs := g.genExpr(rhsExpr)
	rhsBool := g.asBool(rhs)
	rTail := g.block
	g.block.NewBr(mergeBlock)

	g.block = mergeBlock
	phi := g.block.NewPhi(
		ir.NewIncoming(lhsBool, lhsBlock),
		ir.NewIncoming(rhsBool, rTail),
	)

	return g.fromBool(phi)
}

// resolve looks up id and turns an UndeclaredIdentifier failure into a
// fatal report.CompileError, spelling the identifier out for the message.
func (g *Generator) resolve(id ident.ID) *symtab.Symbol {
	sym, err := g.syms.Resolve(id)
	if err != nil {
		panic(report.New(report.TagUndeclaredIdentifier, report.Span{}, "%s used before declaration", g.spelling(id)))
	}
	return sym
}

// spelling looks up id's source text for diagnostics, falling back to the
// raw id if the table (which should never happen in practice) doesn't know
// it.
func (g *Generator) spelling(id ident.ID) string {
	s, err := g.tab.Lookup(id)
	if err != nil {
		return fmt.Sprintf("<id %d>", id)
	}
	return s
}

func (g *Generator) kindMismatch(format string, args ...interface{}) {
	panic(report.New(report.TagKindMismatch, report.Span{}, format, args...))
}
