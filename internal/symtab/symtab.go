// Package symtab implements the IR generator's symbol table: a stack of
// lexical scopes mapping identifier ids to storage handles. Grounded on the
// source corpus's depm.SymbolTable scope-stack shape, trimmed of package and
// import resolution — this compiler has exactly one compilation unit.
package symtab

import (
	"fmt"

	"aotc/internal/ident"
)

// Kind distinguishes a scalar symbol from an array symbol.
type Kind int

const (
	Scalar Kind = iota
	Array
)

// Storage is an opaque handle to wherever the IR generator allocated a
// symbol's backing storage (an LLVM value.Value in practice). symtab does
// not interpret it.
type Storage interface{}

// Symbol is a declared name: its storage handle, its kind, and (for arrays)
// its element count.
type Symbol struct {
	Storage Storage
	Kind    Kind
	Size    int32 // element count, meaningful only when Kind == Array
}

type scope map[ident.ID]*Symbol

// RedeclaredError is returned by Declare when id is already declared in the
// current (innermost) scope.
type RedeclaredError struct {
	ID ident.ID
}

func (e *RedeclaredError) Error() string {
	return fmt.Sprintf("identifier %d redeclared in the same scope", e.ID)
}

// UndeclaredError is returned by Resolve when id is not visible in any open
// scope.
type UndeclaredError struct {
	ID ident.ID
}

func (e *UndeclaredError) Error() string {
	return fmt.Sprintf("identifier %d used before declaration", e.ID)
}

// Table is a stack of scopes. It always contains at least one scope: the
// global scope, implicitly pushed by New.
type Table struct {
	scopes []scope
}

// New creates a symbol table with its global scope already pushed.
func New() *Table {
	return &Table{scopes: []scope{make(scope)}}
}

// PushScope opens a new, empty innermost scope.
func (t *Table) PushScope() {
	t.scopes = append(t.scopes, make(scope))
}

// PopScope closes the innermost scope. It panics if called when only the
// global scope remains — every push must be matched by a pop on every exit
// path, including generator aborts, but since every abort in this compiler
// is fatal-to-the-process, unbalanced pops after an abort are harmless (see
// spec's resource-model note on scoped acquisition).
func (t *Table) PopScope() {
	if len(t.scopes) == 1 {
		panic("symtab: cannot pop the global scope")
	}
	t.scopes = t.scopes[:len(t.scopes)-1]
}

// Declare adds id to the innermost scope. Redeclaring an id already present
// in that same scope is an error — shadowing an outer scope's declaration
// remains permitted, since it lands in a different scope map.
func (t *Table) Declare(id ident.ID, storage Storage, kind Kind, size int32) error {
	top := t.scopes[len(t.scopes)-1]
	if _, ok := top[id]; ok {
		return &RedeclaredError{ID: id}
	}
	top[id] = &Symbol{Storage: storage, Kind: kind, Size: size}
	return nil
}

// Resolve walks the scope stack innermost-first and returns the first
// matching symbol.
func (t *Table) Resolve(id ident.ID) (*Symbol, error) {
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if sym, ok := t.scopes[i][id]; ok {
			return sym, nil
		}
	}
	return nil, &UndeclaredError{ID: id}
}

// Depth reports how many scopes are currently open, including the global
// scope. It exists mainly for tests asserting push/pop balance.
func (t *Table) Depth() int {
	return len(t.scopes)
}
