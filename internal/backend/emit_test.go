package backend

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
)

func TestWriteBitcodeEmitIR(t *testing.T) {
	mod := ir.NewModule()
	fn := mod.NewFunc("main", types.I32)
	block := fn.NewBlock("entry")
	block.NewRet(constant.NewInt(types.I32, 0))

	dir := t.TempDir()
	outPath := filepath.Join(dir, "prog")

	llPath, err := WriteBitcode(mod, outPath, EmitIR)
	if err != nil {
		t.Fatalf("WriteBitcode(EmitIR) failed: %v", err)
	}
	if !strings.HasSuffix(llPath, ".ll") {
		t.Fatalf("expected a .ll path, got %s", llPath)
	}

	data, err := os.ReadFile(llPath)
	if err != nil {
		t.Fatalf("reading written IR: %v", err)
	}
	if !strings.Contains(string(data), "define i32 @main()") {
		t.Fatalf("written IR missing main definition:\n%s", data)
	}
}
