// Package source loads compiler input: a fully-resident, NUL-terminated
// byte buffer, matching spec §6's "any byte buffer is acceptable" input
// model and §5's "fully resident" resource note.
package source

import "os"

// Load reads path fully into memory and appends the NUL terminator the
// lexer requires. The lexer treats the buffer as raw bytes and performs no
// encoding validation.
func Load(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return append(data, 0), nil
}

// FromString NUL-terminates an in-memory source string. Used by tests and
// by any embedded default source.
func FromString(src string) []byte {
	return append([]byte(src), 0)
}
