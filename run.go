package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/urfave/cli/v3"

	"github.com/bcomnes/bump/internal/logging"
	bump "github.com/bcomnes/bump/pkg"
)

// setup loads the config file, resolves the settings of the run and
// installs the logger.
func setup(cmd *cli.Command) (*settings, error) {
	if cmd.Args().Present() {
		return nil, fmt.Errorf("unexpected argument %q, name files with --input", cmd.Args().First())
	}
	cfg, err := loadConfig(cmd.String("config"))
	if err != nil {
		return nil, err
	}
	s, err := resolveSettings(cmd, cfg)
	if err != nil {
		return nil, err
	}

	logging.SetDefaultStructuredLoggerWithLevel(name, Version, s.logLevel)
	slog.Debug("starting",
		"inputs", s.inputs,
		"level", s.level.String(),
		"dry", s.dry,
		"workers", s.workers)
	return s, nil
}

func runBump(ctx context.Context, cmd *cli.Command) error {
	s, err := setup(cmd)
	if err != nil {
		return err
	}
	if len(s.inputs) == 0 {
		if !interactive() {
			return bump.ErrNoInput
		}
		if err := prompt(ctx, s); err != nil {
			return err
		}
	}
	if err := s.validate(); err != nil {
		return err
	}

	var metrics *bump.Metrics
	if s.metricsFile != "" {
		metrics = bump.NewMetrics()
		defer writeMetrics(metrics, s.metricsFile)
	}
	opts := s.options(metrics)
	w := cmd.Root().Writer

	if s.stdin() {
		res, err := bump.BumpStream(ctx, os.Stdin, w, opts)
		if err != nil {
			return fmt.Errorf("bumping stdin: %w", err)
		}
		slog.Debug("bumped stdin", "lines", res.Lines, "matches", len(res.Matches))
		return nil
	}

	// Files that end up holding the result, and so go into the commit.
	files := slices.Clone(s.inputs)
	if s.output != "" {
		files = []string{s.output}
	}
	if s.commit {
		if err := bump.CheckGit(ctx); err != nil {
			return err
		}
		allowed := slices.Clone(files)
		if s.goMod != "" {
			allowed = append(allowed, filepath.Join(s.goMod, "go.mod"))
		}
		if err := bump.CheckClean(ctx, "", allowed); err != nil {
			return err
		}
	}

	var results []*bump.Result
	if len(s.inputs) == 1 {
		res, err := bump.BumpFile(ctx, s.inputs[0], s.output, opts)
		if err != nil {
			return err
		}
		results = []*bump.Result{res}
	} else {
		if results, err = bump.BumpFiles(ctx, s.inputs, opts, s.workers); err != nil {
			return err
		}
	}

	if err := printSummary(w, s, results); err != nil {
		return err
	}
	if s.dry {
		return nil
	}
	return release(ctx, w, s, results, files)
}

// printSummary lists each rewritten version, and in dry runs the diff of
// every file.
func printSummary(w io.Writer, s *settings, results []*bump.Result) error {
	found := false
	for _, res := range results {
		if s.dry && len(res.Diff) > 0 {
			if _, err := w.Write(res.Diff); err != nil {
				return err
			}
		}
		for _, m := range res.Matches {
			found = true
			fmt.Fprintf(w, "%s: %s → %s (line %d)\n", res.Path, m.Old, m.New, m.Line)
		}
	}
	if !found {
		fmt.Fprintln(w, "No versions found.")
	}
	fmt.Fprintf(w, "Bump Type: %s\n", s.level)
	if s.dry {
		fmt.Fprintln(w, "Dry run complete; no files were modified.")
	}
	return nil
}

// release runs the steps that follow a successful bump: keeping go.mod in
// step on major bumps, then committing and tagging. The version used is the
// first one rewritten.
func release(ctx context.Context, w io.Writer, s *settings, results []*bump.Result, files []string) error {
	first := firstMatch(results)
	if first == nil {
		if s.commit {
			slog.Warn("no version was bumped, nothing to commit")
		}
		return nil
	}

	if s.goMod != "" && s.level == bump.LevelMajor {
		changed, err := bump.SyncModulePath(s.goMod, first.New)
		if err != nil {
			return err
		}
		if changed {
			modFile := filepath.Join(s.goMod, "go.mod")
			files = append(files, modFile)
			fmt.Fprintf(w, "Updated module path in %s\n", modFile)
		}
	}

	if !s.commit {
		return nil
	}
	if err := bump.Commit(ctx, "", first.New, files, s.tag); err != nil {
		return err
	}
	fmt.Fprintf(w, "Committed %s\n", first.New)
	if s.tag {
		fmt.Fprintf(w, "Tagged %s\n", first.New.Canonical())
	}
	return nil
}

func firstMatch(results []*bump.Result) *bump.LineMatch {
	for _, res := range results {
		if len(res.Matches) > 0 {
			return &res.Matches[0]
		}
	}
	return nil
}

func writeMetrics(m *bump.Metrics, path string) {
	if err := m.WriteTextfile(path); err != nil {
		slog.Warn("failed to write metrics", "path", path, "error", err)
	}
}

func runScan(ctx context.Context, cmd *cli.Command) error {
	s, err := setup(cmd)
	if err != nil {
		return err
	}
	if len(s.inputs) == 0 {
		return bump.ErrNoInput
	}

	w := cmd.Root().Writer
	total := 0
	for _, in := range s.inputs {
		matches, err := scanInput(ctx, in, s.options(nil))
		if err != nil {
			return err
		}
		for _, m := range matches {
			fmt.Fprintf(w, "%s:%d:%d: %s → %s\n", in, m.Line, m.Column, m.Old, m.New)
		}
		total += len(matches)
	}
	if total == 0 {
		fmt.Fprintln(w, "No versions found.")
	}
	return nil
}

func scanInput(ctx context.Context, path string, opts bump.Options) ([]bump.LineMatch, error) {
	if path == "-" {
		return bump.Scan(ctx, os.Stdin, opts)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	defer f.Close()

	matches, err := bump.Scan(ctx, f, opts)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}
	return matches, nil
}
