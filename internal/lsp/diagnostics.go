package lsp

import (
	"tlang/internal/diag"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

const diagnosticSource = "tlang"

// Diagnostics returns the document's diagnostics. The front end stops at the
// first error, so there is at most one.
func Diagnostics(doc *Document) []protocol.Diagnostic {
	if doc == nil || doc.Err == nil {
		return []protocol.Diagnostic{}
	}
	d, _ := diag.FromError(doc.Err)
	return ToLspDiagnostics(doc.Text, []diag.Diagnostic{d})
}

// ToLspDiagnostics converts 1-based byte ranges to 0-based UTF-16 ranges.
func ToLspDiagnostics(text string, ds []diag.Diagnostic) []protocol.Diagnostic {
	lines := splitLines(text)
	out := make([]protocol.Diagnostic, 0, len(ds))
	for _, d := range ds {
		lineText := ""
		if d.Range.Line >= 1 && d.Range.Line <= len(lines) {
			lineText = lines[d.Range.Line-1]
		}
		length := d.Range.Length
		if length < 1 {
			length = 1
		}
		line := uint32(0)
		if d.Range.Line > 0 {
			line = uint32(d.Range.Line - 1)
		}
		start := protocol.Position{Line: line, Character: byteColToUTF16(lineText, d.Range.Col)}
		end := protocol.Position{Line: line, Character: byteColToUTF16(lineText, d.Range.Col+length)}
		if end.Character <= start.Character {
			end.Character = start.Character + 1
		}

		severity := protocol.DiagnosticSeverityError
		switch d.Severity {
		case diag.SeverityWarning:
			severity = protocol.DiagnosticSeverityWarning
		case diag.SeverityInfo:
			severity = protocol.DiagnosticSeverityInformation
		}

		pd := protocol.Diagnostic{
			Range:    protocol.Range{Start: start, End: end},
			Severity: &severity,
			Source:   ptrString(diagnosticSource),
			Message:  d.Message,
		}
		if d.Code != "" {
			code := protocol.IntegerOrString{Value: d.Code}
			pd.Code = &code
		}
		out = append(out, pd)
	}
	return out
}

func ptrString(s string) *string { return &s }
