package bump

import (
	"bytes"
	"path/filepath"

	"github.com/sourcegraph/go-diff/diff"
)

// lineChange is a rewritten line kept for the dry-run diff.
type lineChange struct {
	line   int
	before []byte
	after  []byte
}

// unifiedDiff renders changes as a unified diff of path. Scanning never adds
// or removes lines, so each change becomes its own single-line hunk.
func unifiedDiff(path string, changes []lineChange) ([]byte, error) {
	if len(changes) == 0 {
		return nil, nil
	}

	name := filepath.ToSlash(path)
	fd := &diff.FileDiff{OrigName: "a/" + name, NewName: "b/" + name}
	if filepath.IsAbs(path) {
		fd.OrigName, fd.NewName = name, name
	}
	for _, c := range changes {
		var body bytes.Buffer
		body.WriteByte('-')
		body.Write(c.before)
		body.WriteByte('\n')
		body.WriteByte('+')
		body.Write(c.after)
		body.WriteByte('\n')

		fd.Hunks = append(fd.Hunks, &diff.Hunk{
			OrigStartLine: int32(c.line),
			OrigLines:     1,
			NewStartLine:  int32(c.line),
			NewLines:      1,
			Body:          body.Bytes(),
		})
	}
	return diff.PrintFileDiff(fd)
}
