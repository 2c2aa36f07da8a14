package symtab

import "testing"

func TestShadowingAndRestoration(t *testing.T) {
	tab := New()

	outer := "outer-storage"
	if err := tab.Declare(1, outer, Scalar, 0); err != nil {
		t.Fatal(err)
	}

	tab.PushScope()
	inner := "inner-storage"
	if err := tab.Declare(1, inner, Scalar, 0); err != nil {
		t.Fatalf("shadowing an outer declaration should be permitted: %v", err)
	}

	sym, err := tab.Resolve(1)
	if err != nil {
		t.Fatal(err)
	}
	if sym.Storage != inner {
		t.Fatalf("Resolve returned %v, want the inner shadow", sym.Storage)
	}

	tab.PopScope()

	sym, err = tab.Resolve(1)
	if err != nil {
		t.Fatal(err)
	}
	if sym.Storage != outer {
		t.Fatalf("Resolve after pop returned %v, want the outer declaration restored", sym.Storage)
	}
}

func TestResolveUndeclared(t *testing.T) {
	tab := New()
	if _, err := tab.Resolve(42); err == nil {
		t.Fatal("expected UndeclaredError")
	}
}

func TestDeclareRedeclarationInSameScopeFails(t *testing.T) {
	tab := New()
	if err := tab.Declare(1, "a", Scalar, 0); err != nil {
		t.Fatal(err)
	}
	if err := tab.Declare(1, "b", Scalar, 0); err == nil {
		t.Fatal("expected RedeclaredError")
	}
}

func TestPopGlobalScopePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic when popping the global scope")
		}
	}()
	New().PopScope()
}
