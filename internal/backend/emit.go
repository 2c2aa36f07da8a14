package backend

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/llir/llvm/ir"
)

// EmitFormat selects what WriteBitcode leaves on disk.
type EmitFormat int

const (
	// EmitIR writes the module's textual LLVM IR (.ll) and stops there —
	// useful for inspection and for the --emit-ir CLI flag.
	EmitIR EmitFormat = iota
	// EmitBitcode additionally assembles the .ll into bitcode (.bc) via
	// llvm-as, or, if llvm-as isn't on PATH, into a native object file via
	// `clang -c -x ir`, written to the same output path.
	EmitBitcode
)

// WriteBitcode renders mod to LLVM's textual IR and, unless format is
// EmitIR, hands that text to the real toolchain to assemble. outPath's
// extension is respected; a bare stem gets ".ll" or ".bc" appended
// depending on format.
//
// This never links a final executable — the specification's IR Generator
// scope ends at a verified, serialized module.
func WriteBitcode(mod *ir.Module, outPath string, format EmitFormat) (string, error) {
	llText := mod.String()

	llPath := outPath
	if format == EmitIR && filepath.Ext(llPath) == "" {
		llPath += ".ll"
	}
	if format == EmitBitcode {
		llPath = strings.TrimSuffix(outPath, filepath.Ext(outPath)) + ".ll"
	}

	if err := os.WriteFile(llPath, []byte(llText), 0o644); err != nil {
		return "", fmt.Errorf("writing IR to %s: %w", llPath, err)
	}
	if format == EmitIR {
		return llPath, nil
	}

	bcPath := outPath
	if filepath.Ext(bcPath) == "" {
		bcPath += ".bc"
	}
	if err := assemble(llPath, bcPath); err != nil {
		return "", err
	}
	return bcPath, nil
}

// assemble converts llPath's textual IR into bcPath, preferring llvm-as
// (produces real bitcode) and falling back to clang's `-c -x ir` mode
// (produces a native object file) when llvm-as isn't installed — the same
// fallback shape the corpus's own build pipeline uses for the reverse
// direction (clang first, llc second).
func assemble(llPath, bcPath string) error {
	if _, err := exec.LookPath("llvm-as"); err == nil {
		cmd := exec.Command("llvm-as", llPath, "-o", bcPath)
		if out, err := cmd.CombinedOutput(); err != nil {
			return fmt.Errorf("llvm-as failed: %w\n%s", err, out)
		}
		return nil
	}

	if _, err := exec.LookPath("clang"); err == nil {
		cmd := exec.Command("clang", "-c", "-x", "ir", llPath, "-o", bcPath)
		if out, err := cmd.CombinedOutput(); err != nil {
			return fmt.Errorf("clang fallback failed: %w\n%s", err, out)
		}
		return nil
	}

	return fmt.Errorf("neither llvm-as nor clang found on PATH; install LLVM to assemble bitcode")
}

// HostTriple asks clang for the host target triple. No other package calls
// it, and assembly itself doesn't need it
// since llvm-as/clang infer the target from the IR's own datalayout, which
// this generator never sets.
func HostTriple() string {
	out, err := exec.Command("clang", "-dumpmachine").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
