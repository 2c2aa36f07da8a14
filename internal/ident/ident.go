// Package ident implements the process-wide identifier table: a bijective
// mapping between identifier spellings and dense, monotonically increasing
// integer ids. Keywords are pre-registered so keyword dispatch can be an
// id-indexed table lookup rather than a string comparison.
package ident

import "fmt"

// ID is a dense, non-negative identifier id. The mapping name <-> id is
// stable for the life of the process.
type ID int32

// Table owns the backing storage for interned identifier spellings.
//
// Once interned, a spelling's string header never moves: Go strings are
// immutable and the backing array is never mutated in place, so appending to
// spellings (a slice of strings) never invalidates a spelling already handed
// out via Lookup.
type Table struct {
	spellings []string
	ids       map[string]ID
}

// NewTable creates an empty identifier table.
func NewTable() *Table {
	return &Table{ids: make(map[string]ID, 64)}
}

// Intern returns the id for name, allocating a new one if name has not been
// seen before. Intern(x) == Intern(y) iff x and y are byte-equal.
func (t *Table) Intern(name string) ID {
	if id, ok := t.ids[name]; ok {
		return id
	}

	id := ID(len(t.spellings))
	t.spellings = append(t.spellings, name)
	t.ids[name] = id
	return id
}

// Lookup returns the spelling registered for id. It returns an error if id
// is out of range: callers within the compiler should only ever look up ids
// they (or the lexer) produced.
func (t *Table) Lookup(id ID) (string, error) {
	if id < 0 || int(id) >= len(t.spellings) {
		return "", fmt.Errorf("ident: id %d out of range (table holds %d entries)", id, len(t.spellings))
	}
	return t.spellings[id], nil
}

// Len returns the number of distinct spellings interned so far.
func (t *Table) Len() int {
	return len(t.spellings)
}
