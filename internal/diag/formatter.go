package diag

import (
	"fmt"
	"io"
	"strings"
)

// Formatter renders diagnostics with source snippets and caret
// underlines. It is handed the source text directly; the front end is
// single-file, so there is no per-filename cache.
type Formatter struct {
	out io.Writer
	src string
}

// NewFormatter creates a formatter writing to out, underlining against src.
func NewFormatter(out io.Writer, src string) *Formatter {
	return &Formatter{out: out, src: src}
}

// Format prints a single diagnostic.
func (f *Formatter) Format(d Diagnostic) {
	f.printHeader(d)

	if !d.Span.IsValid() {
		f.printHelp(d)
		return
	}

	fmt.Fprintf(f.out, "  --> %s\n", d.Span.String())

	lines := strings.Split(f.src, "\n")
	if d.Span.Line >= 1 && d.Span.Line <= len(lines) {
		lineContent := lines[d.Span.Line-1]
		lineNumStr := fmt.Sprintf("%d", d.Span.Line)
		pad := strings.Repeat(" ", len(lineNumStr))

		fmt.Fprintf(f.out, " %s |\n", pad)
		fmt.Fprintf(f.out, " %s | %s\n", lineNumStr, lineContent)
		fmt.Fprintf(f.out, " %s | %s\n", pad, underline(lineContent, d.Span))
	}

	f.printHelp(d)
}

// FormatAll prints each diagnostic in order.
func (f *Formatter) FormatAll(ds []Diagnostic) {
	for _, d := range ds {
		f.Format(d)
	}
}

// printHeader prints the error header (severity[CODE]: message).
func (f *Formatter) printHeader(d Diagnostic) {
	severity := string(d.Severity)
	if severity == "" {
		severity = "error"
	}

	if d.Code != "" {
		fmt.Fprintf(f.out, "%s[%s]: %s\n", severity, d.Code, d.Message)
	} else {
		fmt.Fprintf(f.out, "%s: %s\n", severity, d.Message)
	}
}

func (f *Formatter) printHelp(d Diagnostic) {
	for _, note := range d.Notes {
		fmt.Fprintf(f.out, "  = note: %s\n", note)
	}
	if d.Help != "" {
		fmt.Fprintf(f.out, "help: %s\n", d.Help)
	}
}

// underline builds a '^' run under the span's columns on its line.
func underline(lineContent string, span Span) string {
	width := span.End - span.Start
	if width < 1 {
		width = 1
	}
	start := span.Column - 1
	if start < 0 {
		start = 0
	}
	if start > len(lineContent) {
		start = len(lineContent)
	}
	if start+width > len(lineContent)+1 {
		width = len(lineContent) + 1 - start
		if width < 1 {
			width = 1
		}
	}
	return strings.Repeat(" ", start) + strings.Repeat("^", width)
}
