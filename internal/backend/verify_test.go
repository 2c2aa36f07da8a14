package backend

import (
	"testing"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
)

func TestVerifyAcceptsClosedModule(t *testing.T) {
	mod := ir.NewModule()
	fn := mod.NewFunc("main", types.I32)
	block := fn.NewBlock("entry")
	block.NewRet(constant.NewInt(types.I32, 0))

	if err := Verify(mod); err != nil {
		t.Fatalf("Verify rejected a well-formed module: %v", err)
	}
}

func TestVerifyRejectsOpenBlock(t *testing.T) {
	mod := ir.NewModule()
	fn := mod.NewFunc("main", types.I32)
	fn.NewBlock("entry") // no terminator

	err := Verify(mod)
	if err == nil {
		t.Fatal("expected Verify to reject a block with no terminator")
	}
	if verr, ok := err.(*VerifyError); !ok || verr.Block != "entry" {
		t.Fatalf("expected a VerifyError naming block %q, got %v", "entry", err)
	}
}
