package codegen

import (
	"strings"
	"testing"

	"aotc/internal/ident"
	"aotc/internal/lexer"
	"aotc/internal/parser"
	"aotc/internal/report"
	"aotc/internal/source"
	"aotc/internal/token"
)

func generate(t *testing.T, src string) string {
	t.Helper()
	tab := ident.NewTable()
	token.RegisterKeywords(tab)

	lex := lexer.New(source.FromString(src), tab)
	p := parser.New(lex, tab)
	prog, err := p.Parse()
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	mod, err := New(tab).Generate(prog)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	return mod.String()
}

func generateErr(t *testing.T, src string) error {
	t.Helper()
	tab := ident.NewTable()
	token.RegisterKeywords(tab)

	lex := lexer.New(source.FromString(src), tab)
	p := parser.New(lex, tab)
	prog, err := p.Parse()
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	_, err = New(tab).Generate(prog)
	return err
}

// Every basic block in the generated module ends with exactly one
// terminator — spec's block-closure invariant (testable property #4).
func TestGenerateEveryBlockHasOneTerminator(t *testing.T) {
	src := "let i; i = 0; loop { if i >= 3 { break; } i = i + 1; }"
	code := generate(t, src)

	if strings.Count(code, "ret i32") != 1 {
		t.Fatalf("expected exactly one ret in main, got:\n%s", code)
	}

	tab := ident.NewTable()
	token.RegisterKeywords(tab)
	prog, err := parser.New(lexer.New(source.FromString(src), tab), tab).Parse()
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	mod, err := New(tab).Generate(prog)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	for _, fn := range mod.Funcs {
		for _, block := range fn.Blocks {
			if block.Term == nil {
				t.Fatalf("block %s of %s has no terminator:\n%s", block.Name(), fn.Name(), code)
			}
		}
	}
}

func TestGenerateShortCircuitAndSkipsRHSWhenLHSFalse(t *testing.T) {
	code := generate(t, "let x; x = 0; if x != 0 && 1 / x > 1 { 1; } else { 2; }")
	assertContains(t, code, "phi i1")
	assertContains(t, code, "br i1")
}

func TestGenerateArrayAllocatesElementCount(t *testing.T) {
	code := generate(t, "let a[5]; a[0] = 1;")
	assertContains(t, code, "alloca [5 x i32]")
}

func TestGenerateUndeclaredIdentifierIsFatal(t *testing.T) {
	err := generateErr(t, "x;")
	cerr, ok := err.(*report.CompileError)
	if !ok || cerr.Tag != report.TagUndeclaredIdentifier {
		t.Fatalf("expected UndeclaredIdentifier, got %v", err)
	}
}

func TestGenerateArrayUsedAsScalarIsKindMismatch(t *testing.T) {
	err := generateErr(t, "let a[2]; a;")
	cerr, ok := err.(*report.CompileError)
	if !ok || cerr.Tag != report.TagKindMismatch {
		t.Fatalf("expected KindMismatch, got %v", err)
	}
}

func TestGenerateBreakOutsideLoopIsFatal(t *testing.T) {
	err := generateErr(t, "break;")
	cerr, ok := err.(*report.CompileError)
	if !ok || cerr.Tag != report.TagBreakOutsideLoop {
		t.Fatalf("expected BreakOutsideLoop, got %v", err)
	}
}

func TestGenerateContinueOutsideLoopIsFatal(t *testing.T) {
	err := generateErr(t, "continue;")
	cerr, ok := err.(*report.CompileError)
	if !ok || cerr.Tag != report.TagContinueOutsideLoop {
		t.Fatalf("expected ContinueOutsideLoop, got %v", err)
	}
}

// A top-level statement following one that already closed the block (a
// direct `return`) must be dropped, matching genBlockScoped's dead-code-
// after-terminator elision one level up.
func TestGenerateTopLevelStatementAfterReturnIsDropped(t *testing.T) {
	code := generate(t, "return 1; 2;")

	if strings.Count(code, "ret i32") != 1 {
		t.Fatalf("expected exactly one ret in main, got:\n%s", code)
	}
	if strings.Contains(code, "call i32 (i8*, ...) @printf") {
		t.Fatalf("expected no printf call for the dead statement after return, got:\n%s", code)
	}
}

func TestGenerateArraySizeMustBeLiteralIsBadArraySize(t *testing.T) {
	err := generateErr(t, "let n; let a[n];")
	cerr, ok := err.(*report.CompileError)
	if !ok || cerr.Tag != report.TagBadArraySize {
		t.Fatalf("expected BadArraySize, got %v", err)
	}
}

func TestGenerateAllocationSiteIsCurrentBlockNotEntry(t *testing.T) {
	// The alloca for `y` lives inside the `if` arm's own block, reached
	// only after the entry block's conditional branch — not hoisted to
	// main's entry block ahead of it.
	code := generate(t, "if 1 { let y; y = 5; y; }")

	branchLine := strings.Index(code, "br i1")
	allocaLine := strings.Index(code, "alloca i32")
	if branchLine == -1 || allocaLine == -1 {
		t.Fatalf("expected both a conditional branch and an alloca in:\n%s", code)
	}
	if allocaLine < branchLine {
		t.Fatalf("alloca appears before the branch into its block, suggesting hoisting to entry:\n%s", code)
	}
}

func assertContains(t *testing.T, code, want string) {
	t.Helper()
	if !strings.Contains(code, want) {
		t.Fatalf("expected generated IR to contain %q; got:\n%s", want, code)
	}
}
