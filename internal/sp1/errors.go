package sp1

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyInput reports input with no non-blank lines.
var ErrEmptyInput = errors.New("no data in input")

// MissingColumnsError reports a CSV header row lacking one or more of the
// required ID, X and Y columns.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Columns, ", "))
}

// CoordinateParseError reports a coordinate value that is not a number. It is
// returned only by the strict parse variants; the default readers keep the
// lenient behavior and store NaN instead.
type CoordinateParseError struct {
	Line  int    // 1-based line in the input
	Field string // "x" or "y"
	Value string
}

func (e *CoordinateParseError) Error() string {
	return fmt.Sprintf("line %d: cannot parse %s coordinate %q", e.Line, e.Field, e.Value)
}
