// Package bump finds semantic versions in arbitrary text and bumps them.
//
// It provides:
//   - A Version value (MAJOR.MINOR.PATCH as uint64s) that can be bumped by a
//     Level (major, minor or patch) and rendered back to text.
//   - A single-pass line Scanner that locates the first version on a line,
//     rewrites it and copies every other byte through unchanged. Plain
//     numbers, two-component values such as "2.5", the leading triple of
//     a dotted run with four or more components such as "1.2.3.4" and
//     numbers too large for a uint64 are left alone.
//   - Stream and file helpers that apply the scanner to every line, edit files
//     in place through a temporary file, and render dry runs as unified diffs.
//   - Optional release steps: committing and tagging the result with git, and
//     keeping the major version suffix of a go.mod module path in step.
//
// Usage Example:
//
//	line, _, err := bump.BumpLine([]byte(`"version": "1.4.9",`), bump.LevelMinor)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(string(line)) // "version": "1.5.0",
//
// For the command-line tool, see the bump command at the root of this module.
package bump
