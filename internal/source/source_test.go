package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFromStringAppendsNUL(t *testing.T) {
	buf := FromString("let x;")
	if buf[len(buf)-1] != 0 {
		t.Fatalf("expected a trailing NUL byte, got %v", buf)
	}
	if string(buf[:len(buf)-1]) != "let x;" {
		t.Fatalf("unexpected buffer contents: %q", buf)
	}
}

func TestLoadReadsFileAndAppendsNUL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.src")
	if err := os.WriteFile(path, []byte("1;"), 0o644); err != nil {
		t.Fatal(err)
	}

	buf, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if buf[len(buf)-1] != 0 {
		t.Fatalf("expected a trailing NUL byte, got %v", buf)
	}
	if string(buf[:len(buf)-1]) != "1;" {
		t.Fatalf("unexpected buffer contents: %q", buf)
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.src")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
