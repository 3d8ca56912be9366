package converter

import (
	"errors"
	"fmt"
)

// ErrOneDay is returned by ConvertRecord for single-day entries when
// Options.SkipOneDay is set.
var ErrOneDay = errors.New("one-day entry")

// RecordError identifies a source row and field that could not be converted.
type RecordError struct {
	Line  int
	Field string
	Value string
	Err   error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("line %d: %s %q: %v", e.Line, e.Field, e.Value, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}
