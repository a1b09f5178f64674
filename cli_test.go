package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	bump "github.com/bcomnes/bump/pkg"
)

// resolve parses args with the real command definition and returns the
// settings they resolve to against cfg.
func resolve(t *testing.T, cfg *Config, args ...string) *settings {
	t.Helper()
	var got *settings
	cmd := newCommand()
	cmd.Action = func(_ context.Context, c *cli.Command) error {
		var err error
		got, err = resolveSettings(c, cfg)
		return err
	}
	require.NoError(t, cmd.Run(context.Background(), append([]string{name}, args...)))
	require.NotNil(t, got)
	return got
}

func TestResolveSettingsDefaults(t *testing.T) {
	s := resolve(t, &Config{})
	assert.Empty(t, s.inputs)
	assert.Equal(t, bump.LevelPatch, s.level)
	assert.Equal(t, defaultWorkers, s.workers)
	assert.Equal(t, bump.DefaultMaxLineLength, s.maxLineLength)
	assert.Equal(t, "warn", s.logLevel)
	assert.False(t, s.commit)
	assert.False(t, s.tag)
}

func TestResolveSettingsPrecedence(t *testing.T) {
	cfg := &Config{
		Level:         "minor",
		Inputs:        []string{"VERSION"},
		Workers:       8,
		MaxLineLength: 4096,
		LogLevel:      "info",
		MetricsFile:   "cfg.prom",
		Git:           GitConfig{Commit: true, Tag: true},
		GoMod:         ".",
	}

	s := resolve(t, cfg)
	assert.Equal(t, []string{"VERSION"}, s.inputs)
	assert.Equal(t, bump.LevelMinor, s.level)
	assert.Equal(t, 8, s.workers)
	assert.Equal(t, 4096, s.maxLineLength)
	assert.Equal(t, "info", s.logLevel)
	assert.Equal(t, "cfg.prom", s.metricsFile)
	assert.True(t, s.commit)
	assert.True(t, s.tag)
	assert.Equal(t, ".", s.goMod)

	s = resolve(t, cfg, "-i", "a", "-i", "b", "-l", "M", "--workers", "2", "--commit=false", "--log-level", "error")
	assert.Equal(t, []string{"a", "b"}, s.inputs)
	assert.Equal(t, bump.LevelMajor, s.level)
	assert.Equal(t, 2, s.workers)
	assert.False(t, s.commit)
	assert.True(t, s.tag)
	assert.Equal(t, "error", s.logLevel)
}

func TestResolveSettingsEnvironment(t *testing.T) {
	t.Setenv("BUMP_LEVEL", "major")
	t.Setenv("LOG_LEVEL", "debug")

	s := resolve(t, &Config{Level: "minor", LogLevel: "info"})
	assert.Equal(t, bump.LevelMajor, s.level)
	assert.Equal(t, "debug", s.logLevel)

	s = resolve(t, &Config{Level: "minor"}, "-l", "patch")
	assert.Equal(t, bump.LevelPatch, s.level)
}

func TestParseLevelAliases(t *testing.T) {
	tests := []struct {
		input string
		want  bump.Level
	}{
		{"major", bump.LevelMajor},
		{"MAJOR", bump.LevelMajor},
		{"M", bump.LevelMajor},
		{"minor", bump.LevelMinor},
		{"Minor", bump.LevelMinor},
		{"m", bump.LevelMinor},
		{"patch", bump.LevelPatch},
		{"p", bump.LevelPatch},
		{"P", bump.LevelPatch},
	}
	for _, tt := range tests {
		got, err := parseLevel(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}

	for _, bad := range []string{"", "x", "mm", "premajor", "1"} {
		_, err := parseLevel(bad)
		assert.ErrorIs(t, err, bump.ErrInvalidLevel, bad)
	}
}

func TestSettingsValidate(t *testing.T) {
	valid := func() *settings {
		return &settings{inputs: []string{"a"}, workers: 1, maxLineLength: 64}
	}
	assert.NoError(t, valid().validate())

	tests := []struct {
		name   string
		modify func(*settings)
		msg    string
	}{
		{"output with many inputs", func(s *settings) { s.inputs = []string{"a", "b"}; s.output = "c" }, "--output"},
		{"tag without commit", func(s *settings) { s.tag = true }, "--tag requires --commit"},
		{"commit with dry", func(s *settings) { s.commit, s.dry = true, true }, "--dry"},
		{"commit with stdin", func(s *settings) { s.commit = true; s.inputs = []string{"-"} }, "stdin"},
		{"stdin with files", func(s *settings) { s.inputs = []string{"-", "a"} }, "stdin"},
		{"no workers", func(s *settings) { s.workers = 0 }, "--workers"},
		{"tiny line limit", func(s *settings) { s.maxLineLength = 4 }, "--max-line-length"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.modify(s)
			err := s.validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	cfg, err := loadConfig("")
	require.NoError(t, err, "a missing default config is not an error")
	assert.Equal(t, &Config{}, cfg)

	_, err = loadConfig("missing.yaml")
	require.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, os.WriteFile(defaultConfigFile, []byte(`level: major
inputs:
  - VERSION
  - package.json
workers: 2
git:
  commit: true
`), 0o644))
	cfg, err = loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "major", cfg.Level)
	assert.Equal(t, []string{"VERSION", "package.json"}, cfg.Inputs)
	assert.Equal(t, 2, cfg.Workers)
	assert.True(t, cfg.Git.Commit)
	assert.False(t, cfg.Git.Tag)

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	cfg, err = loadConfig(empty)
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("git:\n  push: true\n"), 0o644))
	_, err = loadConfig(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "push")
}

func TestFirstMatch(t *testing.T) {
	assert.Nil(t, firstMatch(nil))
	assert.Nil(t, firstMatch([]*bump.Result{{Path: "a"}}))

	results := []*bump.Result{
		{Path: "a"},
		{Path: "b", Matches: []bump.LineMatch{{Line: 2, New: bump.NewVersion(1, 0, 1)}, {Line: 3, New: bump.NewVersion(9, 9, 9)}}},
	}
	m := firstMatch(results)
	require.NotNil(t, m)
	assert.Equal(t, bump.NewVersion(1, 0, 1), m.New)
}
