package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Printer writes diagnostics followed by the offending source line and a caret.
type Printer struct {
	w io.Writer

	header  lipgloss.Style
	code    lipgloss.Style
	gutter  lipgloss.Style
	caret   lipgloss.Style
	warning lipgloss.Style
}

func NewPrinter(w io.Writer, color bool) *Printer {
	r := lipgloss.NewRenderer(w)
	if color {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Printer{
		w:       w,
		header:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#EF4444")),
		warning: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#F59E0B")),
		code:    r.NewStyle().Foreground(lipgloss.Color("#6B7280")),
		gutter:  r.NewStyle().Foreground(lipgloss.Color("#6B7280")),
		caret:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#10B981")),
	}
}

// Print renders d against src. A range outside src prints the header only.
func (p *Printer) Print(path, src string, d Diagnostic) error {
	sev := p.header
	if d.Severity != SeverityError {
		sev = p.warning
	}
	head := sev.Render(d.Severity.String())
	if d.Code != "" {
		head += " " + p.code.Render(d.Code)
	}
	if _, err := fmt.Fprintf(p.w, "%s:%d:%d: %s: %s\n", path, d.Range.Line, d.Range.Col, head, d.Message); err != nil {
		return err
	}

	line, ok := sourceLine(src, d.Range.Line)
	if !ok {
		return nil
	}
	num := fmt.Sprintf("%4d", d.Range.Line)
	pad := strings.Repeat(" ", len(num))
	col := d.Range.Col
	if col < 1 {
		col = 1
	}
	if col > len(line)+1 {
		col = len(line) + 1
	}
	length := d.Range.Length
	if length < 1 {
		length = 1
	}

	var b strings.Builder
	b.WriteString(p.gutter.Render(num + " | "))
	b.WriteString(line)
	b.WriteByte('\n')
	b.WriteString(p.gutter.Render(pad + " | "))
	b.WriteString(caretIndent(line, col))
	b.WriteString(p.caret.Render(strings.Repeat("^", length)))
	b.WriteByte('\n')
	_, err := io.WriteString(p.w, b.String())
	return err
}

func sourceLine(src string, line int) (string, bool) {
	if line < 1 {
		return "", false
	}
	lines := strings.Split(src, "\n")
	if line > len(lines) {
		return "", false
	}
	return strings.TrimRight(lines[line-1], "\r"), true
}

// caretIndent keeps tabs so the caret lines up under tab-indented code.
func caretIndent(line string, col int) string {
	var b strings.Builder
	for i := 0; i < col-1 && i < len(line); i++ {
		if line[i] == '\t' {
			b.WriteByte('\t')
			continue
		}
		b.WriteByte(' ')
	}
	return b.String()
}
