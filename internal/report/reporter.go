package report

import (
	"fmt"
	"os"
	"sync"

	"github.com/pterm/pterm"
)

// Log levels, matching the corpus's report.LogLevel* enumeration.
const (
	LogLevelSilent = iota
	LogLevelError
	LogLevelWarn
	LogLevelVerbose
)

// Reporter formats and emits diagnostics. It carries a mutex even though
// the compiler itself is single-threaded (spec §5): the corpus's own
// reporter is synchronized on the theory that diagnostics is the one
// component most likely to gain concurrent callers first (parallel test
// runs, a future incremental driver).
type Reporter struct {
	mu       sync.Mutex
	logLevel int
	source   []byte
	path     string
}

// NewReporter creates a Reporter at the given log level. source and path
// are used to render caret-underlined source snippets; source may be nil if
// that isn't available (e.g. a REPL).
func NewReporter(logLevel int, path string, source []byte) *Reporter {
	return &Reporter{logLevel: logLevel, path: path, source: source}
}

// Fatal prints err (colorized, with a source-span excerpt if err carries
// one) and terminates the process with exit code 1, per spec §7: every
// error is fatal and there is no recovery.
func (r *Reporter) Fatal(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.logLevel > LogLevelSilent {
		r.display(err)
	}
	os.Exit(1)
}

// Warn prints a non-fatal warning if the log level permits it.
func (r *Reporter) Warn(format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.logLevel >= LogLevelWarn {
		pterm.Warning.Println(fmt.Sprintf(format, args...))
	}
}

// Info prints a purely informational message, shown only at
// LogLevelVerbose — matching the corpus's "aesthetic" reporting functions
// that stay silent below verbose.
func (r *Reporter) Info(format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.logLevel == LogLevelVerbose {
		pterm.Info.Println(fmt.Sprintf(format, args...))
	}
}

func (r *Reporter) display(err error) {
	if cerr, ok := err.(*CompileError); ok {
		r.displayCompileError(cerr)
		return
	}
	pterm.Error.Printfln("fatal error: %s", err.Error())
}

func (r *Reporter) displayCompileError(cerr *CompileError) {
	pterm.Error.Printfln("%s:%d:%d: %s: %s", r.path, cerr.Span.StartLine+1, cerr.Span.StartCol+1, cerr.Tag, cerr.Message)

	if r.source != nil {
		displaySourceExcerpt(r.source, cerr.Span)
	}
}
