package diag

import (
	"errors"
	"fmt"
)

type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "info"
	}
}

// Diagnostic codes produced by the front end.
const (
	CodeLex        = "TL0001"
	CodeSyntax     = "TP0001"
	CodeNestingMax = "TP0002"
)

type Range struct {
	Line   int // 1-based
	Col    int // 1-based
	Length int // best-effort; can be 1 if unknown
}

type Diagnostic struct {
	Code     string
	Message  string
	Severity Severity
	Range    Range
}

func (d Diagnostic) Format(path string) string {
	if d.Code != "" {
		return fmt.Sprintf("%s:%d:%d: %s %s: %s", path, d.Range.Line, d.Range.Col, d.Severity.String(), d.Code, d.Message)
	}
	return fmt.Sprintf("%s:%d:%d: %s: %s", path, d.Range.Line, d.Range.Col, d.Severity.String(), d.Message)
}

// Reporter is implemented by errors that can describe themselves as a diagnostic.
type Reporter interface {
	error
	Diagnostic() Diagnostic
}

// FromError unwraps err looking for a Reporter. Errors without position
// information become a diagnostic anchored at 1:1.
func FromError(err error) (Diagnostic, bool) {
	if err == nil {
		return Diagnostic{}, false
	}
	var r Reporter
	if errors.As(err, &r) {
		return r.Diagnostic(), true
	}
	return Diagnostic{
		Message:  err.Error(),
		Severity: SeverityError,
		Range:    Range{Line: 1, Col: 1, Length: 1},
	}, false
}
