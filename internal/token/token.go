// Package token defines the lexical token kinds produced by internal/lexer
// and consumed by internal/parser.
//
// A token's Kind is either the token's own ASCII byte (for mono-character
// punctuation, and 0/NUL for end-of-input), a packed tag for a multi-
// character operator, a keyword tag, or one of INT/ID.
package token

import "aotc/internal/ident"

// Kind identifies the lexical class of a token.
type Kind int32

// EOF is the NUL byte, matching the terminator of the source buffer.
const EOF Kind = 0

// Multi-character operators and keywords live above the ASCII range so they
// never collide with a mono-character punctuation token.
const (
	firstMultiByte Kind = 256 + iota
	LSHIFT              // <<
	RSHIFT              // >>
	LE                  // <=
	GE                  // >=
	EQ                  // ==
	NE                  // !=
	AND                 // &&
	OR                  // ||

	INT // integer literal
	ID  // identifier

	firstKeyword
	LET
	BREAK
	CONTINUE
	RETURN
	LOOP
	IF
	ELSE
)

var kindNames = map[Kind]string{
	EOF:      "EOF",
	LSHIFT:   "<<",
	RSHIFT:   ">>",
	LE:       "<=",
	GE:       ">=",
	EQ:       "==",
	NE:       "!=",
	AND:      "&&",
	OR:       "||",
	INT:      "INT",
	ID:       "ID",
	LET:      "let",
	BREAK:    "break",
	CONTINUE: "continue",
	RETURN:   "return",
	LOOP:     "loop",
	IF:       "if",
	ELSE:     "else",
}

// String renders a Kind for diagnostics.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	if k >= 0 && k < 256 {
		return string(rune(k))
	}
	return "<unknown token>"
}

// keywordSpellings lists every keyword in the language, in the order their
// tags are declared above (LET, BREAK, CONTINUE, RETURN, LOOP, IF, ELSE).
var keywordSpellings = []string{"let", "break", "continue", "return", "loop", "if", "else"}

// Keywords maps a pre-registered identifier id to its keyword Kind. It is
// populated by RegisterKeywords, which must run before any source is lexed.
var Keywords = map[ident.ID]Kind{}

// RegisterKeywords interns every keyword spelling into tab and records the
// id -> keyword Kind mapping in Keywords, so that lexing an identifier is a
// single map lookup keyed on the interned id rather than a second string
// comparison against a keyword list.
func RegisterKeywords(tab *ident.Table) {
	for i, spelling := range keywordSpellings {
		id := tab.Intern(spelling)
		Keywords[id] = firstKeyword + 1 + Kind(i)
	}
}

// Token is a single lexical token. Value carries the operand payload for
// INT (the parsed 32-bit signed value) and ID (the interned identifier id)
// tokens; it is meaningless for every other Kind.
type Token struct {
	Kind  Kind
	Value int32
	Line  int
	Col   int
}
