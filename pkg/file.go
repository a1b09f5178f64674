package bump

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
)

// DefaultMaxLineLength is the longest line accepted when Options.MaxLineLength is zero.
const DefaultMaxLineLength = 1 << 20

// Options controls how streams and files are bumped.
type Options struct {
	Level         Level
	MaxLineLength int      // Longest accepted line in bytes, terminator excluded.
	DryRun        bool     // Compute the result and a diff without writing anything.
	Metrics       *Metrics // Optional.
}

func (o Options) maxLineLength() int {
	if o.MaxLineLength <= 0 {
		return DefaultMaxLineLength
	}
	return o.MaxLineLength
}

// LineMatch is a version rewritten on a given line.
type LineMatch struct {
	Line   int // 1-based line number.
	Column int // 1-based byte column of the version.
	Old    Version
	New    Version
}

// Result describes the outcome of bumping one stream or file.
type Result struct {
	Path    string
	Lines   int
	Matches []LineMatch
	Diff    []byte // Unified diff of the changes, dry runs only.
}

// Changed reports whether any version was rewritten.
func (r *Result) Changed() bool {
	return len(r.Matches) > 0
}

// scanLinesWithEOL is a bufio.SplitFunc like bufio.ScanLines that keeps the
// line terminator so it can be written back unchanged.
func scanLinesWithEOL(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return i + 1, data[:i+1], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// splitEOL separates a token from scanLinesWithEOL into the line and its
// terminator: "\r\n", "\n" or nothing for a final unterminated line.
func splitEOL(token []byte) (line, eol []byte) {
	switch {
	case bytes.HasSuffix(token, []byte("\r\n")):
		return token[:len(token)-2], token[len(token)-2:]
	case bytes.HasSuffix(token, []byte("\n")):
		return token[:len(token)-1], token[len(token)-1:]
	default:
		return token, nil
	}
}

// eachLine calls fn for every line of r with its 1-based number.
func eachLine(ctx context.Context, r io.Reader, maxLen int, fn func(n int, line, eol []byte) error) error {
	limit := maxLen + len("\r\n")
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, min(64*1024, limit)), limit)
	sc.Split(scanLinesWithEOL)

	n := 0
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		n++
		line, eol := splitEOL(sc.Bytes())
		if err := fn(n, line, eol); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return fmt.Errorf("line %d: %w (limit %d bytes)", n+1, ErrLineTooLong, maxLen)
		}
		return fmt.Errorf("reading line %d: %w", n+1, err)
	}
	return nil
}

// bumpStream is BumpStream that also collects the rewritten lines when
// changes is not nil.
func bumpStream(ctx context.Context, r io.Reader, w io.Writer, opts Options, changes *[]lineChange) (*Result, error) {
	res := &Result{}
	bw := bufio.NewWriter(w)

	err := eachLine(ctx, r, opts.maxLineLength(), func(n int, line, eol []byte) error {
		out, m, err := BumpLine(line, opts.Level)
		if err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
		res.Lines = n
		if m != nil {
			res.Matches = append(res.Matches, LineMatch{
				Line:   n,
				Column: m.Start + 1,
				Old:    m.Old,
				New:    m.New,
			})
			if changes != nil {
				*changes = append(*changes, lineChange{
					line:   n,
					before: bytes.Clone(line),
					after:  bytes.Clone(out),
				})
			}
		}
		if _, err := bw.Write(out); err != nil {
			return err
		}
		_, err = bw.Write(eol)
		return err
	})
	if err != nil {
		return res, err
	}
	return res, bw.Flush()
}

// BumpStream copies r to w line by line, rewriting the first version on each
// line by opts.Level. Line terminators are preserved, so w receives r
// unchanged apart from the rewritten versions.
func BumpStream(ctx context.Context, r io.Reader, w io.Writer, opts Options) (*Result, error) {
	return bumpStream(ctx, r, w, opts, nil)
}

// Scan reports every version the scanner confirms in r, including the ones
// after the first on a line that a bump would leave alone. Nothing is written.
//
// Only a failure on the first version of a line is an error, since that is
// the one a bump would touch. Later versions that cannot be bumped end the
// report for that line with a warning.
func Scan(ctx context.Context, r io.Reader, opts Options) ([]LineMatch, error) {
	var matches []LineMatch
	err := eachLine(ctx, r, opts.maxLineLength(), func(n int, line, _ []byte) error {
		s := NewScanner(line)
		for found := 0; !s.Done(); found++ {
			m, err := s.Next(opts.Level)
			if err != nil {
				if found == 0 {
					return fmt.Errorf("line %d: %w", n, err)
				}
				slog.Warn("skipping version that cannot be bumped", "line", n, "error", err)
				break
			}
			if m == nil {
				break
			}
			matches = append(matches, LineMatch{Line: n, Column: m.Start + 1, Old: m.Old, New: m.New})
		}
		return nil
	})
	return matches, err
}

// BumpFile rewrites the first version on each line of the file at in and
// writes the result to out. An empty out, or out equal to in, edits the file
// in place.
//
// The output is written to a temporary file in the destination directory and
// renamed over out only once every line has been processed, so a failure
// leaves the destination untouched. An in-place edit that changes nothing
// does not rewrite the file. With opts.DryRun nothing is written and the
// result carries a unified diff instead.
func BumpFile(ctx context.Context, in, out string, opts Options) (res *Result, err error) {
	defer func() { opts.Metrics.observe(res, opts.Level, err) }()

	info, err := os.Stat(in)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", in, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("reading file %s: is a directory", in)
	}
	if out == "" {
		out = in
	}
	inPlace := filepath.Clean(out) == filepath.Clean(in)

	if opts.DryRun {
		return dryRunFile(ctx, in, opts)
	}

	err = writeFileAtomic(out, info.Mode().Perm(), func(w io.Writer) (bool, error) {
		src, err := os.Open(in)
		if err != nil {
			return false, fmt.Errorf("reading file %s: %w", in, err)
		}
		defer src.Close()

		res, err = BumpStream(ctx, src, w, opts)
		if err != nil {
			return false, fmt.Errorf("bumping %s: %w", in, err)
		}
		return res.Changed() || !inPlace, nil
	})
	if err != nil {
		return nil, err
	}
	res.Path = in
	slog.Debug("bumped file", "path", in, "output", out, "lines", res.Lines, "matches", len(res.Matches))
	return res, nil
}

func dryRunFile(ctx context.Context, path string, opts Options) (*Result, error) {
	src, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	defer src.Close()

	var changes []lineChange
	res, err := bumpStream(ctx, src, io.Discard, opts, &changes)
	if err != nil {
		return nil, fmt.Errorf("bumping %s: %w", path, err)
	}
	res.Path = path
	if res.Diff, err = unifiedDiff(path, changes); err != nil {
		return nil, fmt.Errorf("rendering diff for %s: %w", path, err)
	}
	return res, nil
}

// BumpFiles bumps each of paths in place, processing up to workers files at
// once. Results are returned in the order of paths. The first failure cancels
// the files not yet started.
func BumpFiles(ctx context.Context, paths []string, opts Options, workers int) ([]*Result, error) {
	if len(paths) == 0 {
		return nil, ErrNoInput
	}
	if workers < 1 {
		workers = 1
	}

	results := make([]*Result, len(paths))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, p := range paths {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			res, err := BumpFile(gCtx, p, "", opts)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// writeFileAtomic creates path through a temporary file in the same directory.
// write fills the temporary file and reports whether it should replace path;
// when it does not, or on any error, the temporary file is removed.
func writeFileAtomic(path string, perm fs.FileMode, write func(io.Writer) (bool, error)) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".bump-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	keep, err := write(tmp)
	if err != nil {
		tmp.Close()
		return err
	}
	if !keep {
		return tmp.Close()
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpPath, err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("chmod %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename %s: %w", tmpPath, err)
	}

	success = true
	return nil
}
