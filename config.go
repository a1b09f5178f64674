package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	bump "github.com/bcomnes/bump/pkg"
)

const (
	defaultConfigFile = ".bump.yaml"
	defaultWorkers    = 4
)

// Config is the content of a .bump.yaml file. Flags and environment
// variables take precedence over it.
type Config struct {
	Level         string    `yaml:"level"`
	Inputs        []string  `yaml:"inputs"`
	Workers       int       `yaml:"workers"`
	MaxLineLength int       `yaml:"max_line_length"`
	LogLevel      string    `yaml:"log_level"`
	MetricsFile   string    `yaml:"metrics_file"`
	Git           GitConfig `yaml:"git"`
	GoMod         string    `yaml:"go_mod"`
}

// GitConfig holds the release steps run after the files are rewritten.
type GitConfig struct {
	Commit bool `yaml:"commit"`
	Tag    bool `yaml:"tag"`
}

// loadConfig reads the config file at path. When path is empty the default
// file is used if it exists. Unknown keys are rejected.
func loadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	cfg := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, nil
}

// settings is the resolved configuration of one run.
type settings struct {
	inputs        []string
	level         bump.Level
	output        string
	dry           bool
	workers       int
	maxLineLength int
	commit        bool
	tag           bool
	goMod         string
	metricsFile   string
	logLevel      string
}

// resolveSettings merges flags, environment and config file, in that order of
// precedence, over the defaults.
func resolveSettings(cmd *cli.Command, cfg *Config) (*settings, error) {
	s := &settings{
		inputs:        cfg.Inputs,
		output:        cmd.String("output"),
		dry:           cmd.Bool("dry"),
		workers:       pickInt(cmd, "workers", cfg.Workers),
		maxLineLength: pickInt(cmd, "max-line-length", cfg.MaxLineLength),
		commit:        pickBool(cmd, "commit", cfg.Git.Commit),
		tag:           pickBool(cmd, "tag", cfg.Git.Tag),
		goMod:         pickString(cmd, "go-mod", cfg.GoMod),
		metricsFile:   pickString(cmd, "metrics-file", cfg.MetricsFile),
		logLevel:      pickString(cmd, "log-level", cfg.LogLevel),
	}
	if cmd.IsSet("input") {
		s.inputs = cmd.StringSlice("input")
	}

	level, err := parseLevel(pickString(cmd, "level", cfg.Level))
	if err != nil {
		return nil, err
	}
	s.level = level
	return s, nil
}

// parseLevel accepts a case-insensitive level name or the single-letter
// forms M (major), m (minor) and p or P (patch).
func parseLevel(s string) (bump.Level, error) {
	switch s {
	case "M":
		return bump.LevelMajor, nil
	case "m":
		return bump.LevelMinor, nil
	case "p", "P":
		return bump.LevelPatch, nil
	}
	return bump.ParseLevel(strings.ToLower(s))
}

// validate rejects flag combinations that cannot be honoured.
func (s *settings) validate() error {
	switch {
	case s.output != "" && len(s.inputs) > 1:
		return errors.New("--output can only be used with a single input")
	case s.tag && !s.commit:
		return errors.New("--tag requires --commit")
	case s.commit && s.dry:
		return errors.New("--commit cannot be combined with --dry")
	case s.commit && s.stdin():
		return errors.New("--commit cannot be used when reading stdin")
	case s.stdin() && len(s.inputs) > 1:
		return errors.New("stdin input \"-\" cannot be combined with other inputs")
	case s.workers < 1:
		return fmt.Errorf("--workers must be at least 1, got %d", s.workers)
	case s.maxLineLength < bump.MinVersionLength:
		return fmt.Errorf("--max-line-length must be at least %d, got %d", bump.MinVersionLength, s.maxLineLength)
	}
	return nil
}

func (s *settings) stdin() bool {
	for _, in := range s.inputs {
		if in == "-" {
			return true
		}
	}
	return false
}

func (s *settings) options(metrics *bump.Metrics) bump.Options {
	return bump.Options{
		Level:         s.level,
		MaxLineLength: s.maxLineLength,
		DryRun:        s.dry,
		Metrics:       metrics,
	}
}

func pickString(cmd *cli.Command, flag, cfg string) string {
	if cmd.IsSet(flag) || cfg == "" {
		return cmd.String(flag)
	}
	return cfg
}

func pickInt(cmd *cli.Command, flag string, cfg int) int {
	if cmd.IsSet(flag) || cfg == 0 {
		return cmd.Int(flag)
	}
	return cfg
}

func pickBool(cmd *cli.Command, flag string, cfg bool) bool {
	if cmd.IsSet(flag) {
		return cmd.Bool(flag)
	}
	return cfg
}
