package report

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
)

// displaySourceExcerpt prints the source lines covered by span with a
// caret-underlined range beneath them, mirroring the corpus's
// displaySourceText algorithm (minimum-indent trimming, per-line caret
// prefix/suffix accounting) but reading from an in-memory buffer instead of
// re-opening the source file.
func displaySourceExcerpt(source []byte, span Span) {
	var lines []string
	sc := bufio.NewScanner(bytes.NewReader(source))
	for ln := 0; sc.Scan(); ln++ {
		if span.StartLine <= ln && ln <= span.EndLine {
			lines = append(lines, strings.ReplaceAll(sc.Text(), "\t", "    "))
		}
	}
	if len(lines) == 0 {
		return
	}

	minIndent := len(lines[0])
	for _, line := range lines {
		indent := 0
		for _, c := range line {
			if c != ' ' {
				break
			}
			indent++
		}
		if indent < minIndent {
			minIndent = indent
		}
	}

	maxLineNumLen := len(strconv.Itoa(span.EndLine + 1))
	lineNumFmt := "%-" + strconv.Itoa(maxLineNumLen) + "v | "

	for i, line := range lines {
		fmt.Printf(lineNumFmt, i+span.StartLine+1)
		trimmed := line
		if minIndent <= len(line) {
			trimmed = line[minIndent:]
		}
		fmt.Println(trimmed)

		fmt.Print(strings.Repeat(" ", maxLineNumLen), " | ")

		var caretPrefix int
		if i == 0 {
			caretPrefix = span.StartCol - minIndent
		}
		var caretSuffix int
		if i == len(lines)-1 {
			caretSuffix = len(line) - span.EndCol
		}

		caretLen := len(line) - caretSuffix - caretPrefix - minIndent
		if caretLen < 1 {
			caretLen = 1
		}
		if caretPrefix < 0 {
			caretPrefix = 0
		}

		fmt.Print(strings.Repeat(" ", caretPrefix))
		pterm.FgRed.Println(strings.Repeat("^", caretLen))
	}
	fmt.Println()
}
