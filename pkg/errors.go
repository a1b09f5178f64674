package bump

import (
	"errors"
	"fmt"
)

var (
	// ErrOverflow is returned when a version component is already at the
	// largest value a uint64 can hold and cannot be incremented.
	ErrOverflow = errors.New("version component is too big to bump")

	// ErrInvalidLevel is returned for a bump level other than major, minor or patch.
	ErrInvalidLevel = errors.New("invalid bump level")

	// ErrLineTooLong is returned when an input line exceeds the configured limit.
	ErrLineTooLong = errors.New("line exceeds maximum length")

	// ErrNoInput is returned when there is nothing to process.
	ErrNoInput = errors.New("input file not specified")
)

// Error describes a failed bump of a confirmed version match. It carries the
// offending text and where it starts in the input line.
type Error struct {
	Op     string // Operation that failed, e.g. "bump".
	Offset int    // Byte offset of Text in the input line, or -1 when unknown.
	Text   string // Matched version text, as it appeared in the input.
	Err    error  // ErrOverflow or ErrInvalidLevel.
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Text == "":
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	case e.Offset < 0:
		return fmt.Sprintf("%s %q: %v", e.Op, e.Text, e.Err)
	default:
		return fmt.Sprintf("%s %q at offset %d: %v", e.Op, e.Text, e.Offset, e.Err)
	}
}

// Unwrap returns the underlying sentinel for errors.Is and errors.As support.
func (e *Error) Unwrap() error {
	return e.Err
}
