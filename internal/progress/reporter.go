package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// Reporter provides progress feedback while pages are rendered.
type Reporter interface {
	Start(total int)
	Update(current int, message string)
	Finish()
}

// NewReporter returns a CIReporter when running under CI, a Nop reporter
// when quiet is set, and a TerminalReporter otherwise.
func NewReporter(quiet bool) Reporter {
	switch {
	case quiet:
		return Nop{}
	case os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "":
		return &CIReporter{w: os.Stderr}
	default:
		return &TerminalReporter{}
	}
}

// TerminalReporter displays a progress bar in the terminal.
type TerminalReporter struct {
	bar *progressbar.ProgressBar
}

func (r *TerminalReporter) Start(total int) {
	r.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Rendering pages"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *TerminalReporter) Update(current int, message string) {
	if r.bar != nil {
		r.bar.Describe(message)
		_ = r.bar.Set(current)
	}
}

func (r *TerminalReporter) Finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}

// CIReporter prints one line per page, suitable for CI logs.
type CIReporter struct {
	w     io.Writer
	total int
}

// NewCIReporter returns a CIReporter writing to w.
func NewCIReporter(w io.Writer) *CIReporter { return &CIReporter{w: w} }

func (r *CIReporter) Start(total int) {
	r.total = total
	fmt.Fprintf(r.w, "Rendering %d pages\n", total)
}

func (r *CIReporter) Update(current int, message string) {
	fmt.Fprintf(r.w, "[%d/%d] %s\n", current, r.total, message)
}

func (r *CIReporter) Finish() {
	fmt.Fprintln(r.w, "Site build complete")
}

// Nop discards all progress.
type Nop struct{}

func (Nop) Start(int)          {}
func (Nop) Update(int, string) {}
func (Nop) Finish()            {}
