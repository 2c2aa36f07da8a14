package codegen

import (
	"aotc/internal/ast"
	"aotc/internal/report"
)

// genIf lowers `if cond then (else)?` exactly per the algorithm: branch on
// cond into then_block/else_block, lower each arm, patch any open tail with
// an unconditional branch to merge_block, and position the builder at
// merge_block on exit — even if both arms terminated and merge_block ends
// up unreachable. An unreachable-but-terminated block is valid IR.
func (g *Generator) genIf(n *ast.If) {
	cond := g.asBool(g.genExpr(n.Cond))

	thenBlock := g.appendBlock()
	mergeBlock := g.appendBlock()

	var elseBlock = mergeBlock
	if n.Else != nil {
		elseBlock = g.appendBlock()
	}

	g.block.NewCondBr(cond, thenBlock, elseBlock)

	g.block = thenBlock
	g.genBlockScoped(n.Then)
	if !g.closed() {
		g.block.NewBr(mergeBlock)
	}

	if n.Else != nil {
		g.block = elseBlock
		g.genBlockScoped(n.Else)
		if !g.closed() {
			g.block.NewBr(mergeBlock)
		}
	}

	g.block = mergeBlock
}

// genLoop lowers `loop body` per the algorithm: an unconditional edge into a
// dedicated loop block, a tight back-edge on fallthrough, and continue/break
// targets pushed for the body's duration.
func (g *Generator) genLoop(n *ast.Loop) {
	loopBlock := g.appendBlock()
	mergeBlock := g.appendBlock()

	g.block.NewBr(loopBlock)

	g.loops = append(g.loops, blockTarget{continueTo: loopBlock, breakTo: mergeBlock})
	defer func() {
		g.loops = g.loops[:len(g.loops)-1]
	}()

	g.block = loopBlock
	g.genBlockScoped(n.Body)
	if !g.closed() {
		g.block.NewBr(loopBlock)
	}

	g.block = mergeBlock
}

// genBreak branches to the innermost enclosing loop's merge block. Outside
// any loop, this is a fatal BreakOutsideLoop.
func (g *Generator) genBreak() {
	if len(g.loops) == 0 {
		panic(report.New(report.TagBreakOutsideLoop, report.Span{}, "break used outside a loop"))
	}
	g.block.NewBr(g.loops[len(g.loops)-1].breakTo)
}

// genContinue branches to the innermost enclosing loop's own block. Outside
// any loop, this is a fatal ContinueOutsideLoop.
func (g *Generator) genContinue() {
	if len(g.loops) == 0 {
		panic(report.New(report.TagContinueOutsideLoop, report.Span{}, "continue used outside a loop"))
	}
	g.block.NewBr(g.loops[len(g.loops)-1].continueTo)
}
