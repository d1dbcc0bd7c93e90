package numlit

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrRange reports a literal that does not fit its target type.
var ErrRange = errors.New("literal out of range")

// ParseSigned converts a negative-integer lexeme ("-12") to int64.
func ParseSigned(lit string) (int64, error) {
	v, err := strconv.ParseInt(lit, 10, 64)
	if err != nil {
		return 0, convError("integer", lit, err)
	}
	return v, nil
}

// ParseUnsigned converts an integer lexeme to uint64.
func ParseUnsigned(lit string) (uint64, error) {
	v, err := strconv.ParseUint(lit, 10, 64)
	if err != nil {
		return 0, convError("integer", lit, err)
	}
	return v, nil
}

// ParseFloat converts a float lexeme to float64. Lexemes with an empty
// fractional part ("7.") or no integer part (".5") are accepted.
func ParseFloat(lit string) (float64, error) {
	v, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return 0, convError("float", lit, err)
	}
	return v, nil
}

func convError(kind, lit string, err error) error {
	var numErr *strconv.NumError
	if errors.As(err, &numErr) && numErr.Err == strconv.ErrRange {
		return fmt.Errorf("%s literal %s: %w", kind, lit, ErrRange)
	}
	return fmt.Errorf("invalid %s literal %q", kind, lit)
}
