package bump

import (
	"errors"
	"math"
)

// MinVersionLength is the length of the shortest version the scanner can
// match, "0.0.0". Shorter lines are passed through untouched.
const MinVersionLength = len("0.0.0")

// Match records a version that the scanner confirmed and rewrote.
type Match struct {
	Start       int     // Offset of the version in the input line.
	End         int     // Offset just past the version in the input line.
	OutputStart int     // Offset of the rewritten version in the output line.
	Old         Version // Version as found.
	New         Version // Version after the bump.
}

// Scanner rewrites versions in a single line of text.
//
// The input is consumed left to right. Everything the scanner does not
// rewrite is copied to the output byte for byte. Each call to Next rewrites at
// most one version, so a line is normally handled with a single call; calling
// Next again resumes right after the previous match.
type Scanner struct {
	in  []byte
	pos int
	out []byte
}

// NewScanner returns a Scanner reading line. The line must not contain its
// terminator.
func NewScanner(line []byte) *Scanner {
	return &Scanner{
		in:  line,
		out: make([]byte, 0, len(line)+4),
	}
}

// Offset returns the position of the scanner in the input line.
func (s *Scanner) Offset() int {
	return s.pos
}

// Done reports whether the whole line has been scanned.
func (s *Scanner) Done() bool {
	return s.pos >= len(s.in)
}

// Bytes returns the rewritten line: the output produced so far followed by the
// part of the input not yet scanned. The slice is only valid until the next
// call to Next.
func (s *Scanner) Bytes() []byte {
	return append(s.out, s.in[s.pos:]...)
}

// Next scans forward for the next MAJOR.MINOR.PATCH version, bumps it by
// level and writes it to the output. It returns nil when the end of the line
// is reached without a match.
//
// On error the scanner is left positioned at the start of the offending
// version and nothing of it has been written.
func (s *Scanner) Next(level Level) (*Match, error) {
	if !level.IsValid() {
		return nil, &Error{Op: "scan", Offset: -1, Text: level.String(), Err: ErrInvalidLevel}
	}
	if len(s.in) < MinVersionLength {
		s.out = append(s.out, s.in[s.pos:]...)
		s.pos = len(s.in)
		return nil, nil
	}

	for s.pos < len(s.in) {
		if !isDigit(s.in[s.pos]) {
			s.out = append(s.out, s.in[s.pos])
			s.pos++
			continue
		}
		m, err := s.candidate(level)
		if m != nil || err != nil {
			return m, err
		}
	}
	return nil, nil
}

// candidate consumes the digit run under the cursor plus anything after it
// that can still belong to a version. Text that turns out not to be a version
// is copied verbatim. A non-nil Match is returned once a version is rewritten.
func (s *Scanner) candidate(level Level) (*Match, error) {
	start := s.pos

	major, ok := s.number()
	if !ok || !s.dotThenDigit() {
		s.emit(start)
		return nil, nil
	}
	minor, ok := s.number()
	if !ok || !s.dotThenDigit() {
		s.emit(start)
		return nil, nil
	}
	patch, ok := s.number()
	if !ok {
		s.emit(start)
		return nil, nil
	}
	if s.pos < len(s.in) && s.in[s.pos] == '.' {
		// Four or more components: not a version. Next copies the dot and
		// resumes scanning after it.
		s.emit(start)
		return nil, nil
	}

	old := NewVersion(major, minor, patch)
	v := old
	if err := v.Bump(level); err != nil {
		var be *Error
		if errors.As(err, &be) {
			be.Offset = start
			be.Text = string(s.in[start:s.pos])
		}
		s.pos = start
		return nil, err
	}

	m := &Match{
		Start:       start,
		End:         s.pos,
		OutputStart: len(s.out),
		Old:         old,
		New:         v,
	}
	s.out = v.AppendTo(s.out)
	return m, nil
}

// number parses the digit run under the cursor and moves past it. ok is false
// when the run does not fit in a uint64; the run is consumed either way.
func (s *Scanner) number() (n uint64, ok bool) {
	ok = true
	for s.pos < len(s.in) && isDigit(s.in[s.pos]) {
		d := uint64(s.in[s.pos] - '0')
		if ok && n > (math.MaxUint64-d)/10 {
			ok = false
		}
		if ok {
			n = n*10 + d
		}
		s.pos++
	}
	return n, ok
}

// dotThenDigit consumes a '.' under the cursor and reports whether a digit
// follows it. Nothing is consumed when the cursor is not on a '.'.
func (s *Scanner) dotThenDigit() bool {
	if s.pos >= len(s.in) || s.in[s.pos] != '.' {
		return false
	}
	s.pos++
	return s.pos < len(s.in) && isDigit(s.in[s.pos])
}

// emit copies the input from start up to the cursor.
func (s *Scanner) emit(start int) {
	s.out = append(s.out, s.in[start:s.pos]...)
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// BumpLine rewrites the first version in line by level and returns the new
// line along with the match. When line holds no version it is returned
// unchanged and the match is nil. On error no line is returned.
func BumpLine(line []byte, level Level) ([]byte, *Match, error) {
	s := NewScanner(line)
	m, err := s.Next(level)
	if err != nil {
		return nil, nil, err
	}
	return s.Bytes(), m, nil
}
