package bump

import (
	"math"
	"strconv"

	"golang.org/x/mod/semver"
)

// maxComponent is reserved: a component holding it cannot be bumped.
const maxComponent = math.MaxUint64

// Version is a MAJOR.MINOR.PATCH triple as found in scanned text.
type Version struct {
	Major uint64
	Minor uint64
	Patch uint64
}

// NewVersion returns the version major.minor.patch. The components are not
// validated until the version is bumped.
func NewVersion(major, minor, patch uint64) Version {
	return Version{Major: major, Minor: minor, Patch: patch}
}

// check reports the first component sitting on the overflow sentinel.
func (v Version) check() error {
	switch {
	case v.Major == maxComponent:
		return &Error{Op: "bump major component of", Offset: -1, Text: v.String(), Err: ErrOverflow}
	case v.Minor == maxComponent:
		return &Error{Op: "bump minor component of", Offset: -1, Text: v.String(), Err: ErrOverflow}
	case v.Patch == maxComponent:
		return &Error{Op: "bump patch component of", Offset: -1, Text: v.String(), Err: ErrOverflow}
	}
	return nil
}

// Bump increments the component selected by level and zeroes the less
// significant ones. v is left unchanged when an error is returned.
func (v *Version) Bump(level Level) error {
	if !level.IsValid() {
		return &Error{Op: "bump", Offset: -1, Text: level.String(), Err: ErrInvalidLevel}
	}
	if err := v.check(); err != nil {
		return err
	}

	switch level {
	case LevelMajor:
		v.Major++
		v.Minor = 0
		v.Patch = 0
	case LevelMinor:
		v.Minor++
		v.Patch = 0
	case LevelPatch:
		v.Patch++
	}
	return nil
}

// AppendTo appends the canonical "major.minor.patch" form of v to dst.
func (v Version) AppendTo(dst []byte) []byte {
	dst = strconv.AppendUint(dst, v.Major, 10)
	dst = append(dst, '.')
	dst = strconv.AppendUint(dst, v.Minor, 10)
	dst = append(dst, '.')
	return strconv.AppendUint(dst, v.Patch, 10)
}

// String returns "major.minor.patch" without leading zeros.
func (v Version) String() string {
	var buf [3*20 + 2]byte
	return string(v.AppendTo(buf[:0]))
}

// Canonical returns v in the "v"-prefixed form used by golang.org/x/mod/semver.
func (v Version) Canonical() string {
	return "v" + v.String()
}

// Compare returns -1, 0 or +1 depending on whether v sorts before, equal to,
// or after w in semantic version order.
func (v Version) Compare(w Version) int {
	return semver.Compare(v.Canonical(), w.Canonical())
}
