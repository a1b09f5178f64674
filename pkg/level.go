package bump

import "fmt"

// Level selects which version component a bump increments.
type Level int

const (
	LevelPatch Level = iota
	LevelMinor
	LevelMajor
)

// String returns the lowercase name of the level.
func (l Level) String() string {
	switch l {
	case LevelMajor:
		return "major"
	case LevelMinor:
		return "minor"
	case LevelPatch:
		return "patch"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

// IsValid reports whether l is one of the three bump levels.
func (l Level) IsValid() bool {
	return l == LevelMajor || l == LevelMinor || l == LevelPatch
}

// ParseLevel resolves "major", "minor" or "patch" to a Level.
// Any other value returns ErrInvalidLevel.
func ParseLevel(s string) (Level, error) {
	switch s {
	case "major":
		return LevelMajor, nil
	case "minor":
		return LevelMinor, nil
	case "patch":
		return LevelPatch, nil
	default:
		return 0, fmt.Errorf("%w: %q (valid levels are major, minor, patch)", ErrInvalidLevel, s)
	}
}

// Levels lists the bump levels from most to least significant.
func Levels() []Level {
	return []Level{LevelMajor, LevelMinor, LevelPatch}
}
