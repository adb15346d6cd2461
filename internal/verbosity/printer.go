package verbosity

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/gookit/color"
)

// Printer writes color-coded progress lines to an io.Writer, one per
// observed sequence/task lifecycle transition.
type Printer struct {
	w     io.Writer
	start time.Time
}

// NewPrinter creates a Printer writing to stdout, offsetting every line
// from start.
func NewPrinter(start time.Time) *Printer {
	return NewPrinterTo(os.Stdout, start)
}

// NewPrinterTo creates a Printer writing to w, offsetting every line from
// start. Tests use this to capture output instead of writing to stdout.
func NewPrinterTo(w io.Writer, start time.Time) *Printer {
	return &Printer{w: w, start: start}
}

// Info prints a blue info line.
func (p *Printer) Info(at time.Time, msg string, kv ...any) {
	p.line(at, color.FgBlue, "INFO", msg, kv...)
}

// Success prints a green success line.
func (p *Printer) Success(at time.Time, msg string, kv ...any) {
	p.line(at, color.FgGreen, "SUCCESS", msg, kv...)
}

// Warning prints a yellow warning line.
func (p *Printer) Warning(at time.Time, msg string, kv ...any) {
	p.line(at, color.FgYellow, "WARN", msg, kv...)
}

// Error prints a red error line.
func (p *Printer) Error(at time.Time, msg string, kv ...any) {
	p.line(at, color.FgRed, "ERROR", msg, kv...)
}

func (p *Printer) line(at time.Time, c color.Color, level, msg string, kv ...any) {
	delta := at.Sub(p.start).Seconds()
	var fields strings.Builder
	for i := 0; i+1 < len(kv); i += 2 {
		fmt.Fprintf(&fields, " %v=%v", kv[i], kv[i+1])
	}
	prefix := c.Render(fmt.Sprintf("[%s]", level))
	fmt.Fprintf(p.w, "%s %s +%.3fs %s%s\n", prefix, at.Format(time.RFC3339), delta, msg, fields.String())
}
