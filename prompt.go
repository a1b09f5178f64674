package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"

	bump "github.com/bcomnes/bump/pkg"
)

// interactive reports whether stdin is a terminal a form can be shown on.
func interactive() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// prompt asks for the input file, the level and where to write the result.
func prompt(ctx context.Context, s *settings) error {
	var (
		input   string
		output  string
		level   = s.level
		inPlace = true
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Input file").
				Value(&input).
				Validate(existingFile),
			huh.NewSelect[bump.Level]().
				Title("Bump level").
				Options(
					huh.NewOption("patch", bump.LevelPatch),
					huh.NewOption("minor", bump.LevelMinor),
					huh.NewOption("major", bump.LevelMajor),
				).
				Value(&level),
			huh.NewConfirm().
				Title("Modify the input file?").
				Affirmative("Yes").
				Negative("No").
				Value(&inPlace),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Output file").
				Value(&output).
				Validate(func(p string) error {
					if strings.TrimSpace(p) == "" {
						return errors.New("output file is required")
					}
					return nil
				}),
		).WithHideFunc(func() bool { return inPlace }),
	)
	if err := form.RunWithContext(ctx); err != nil {
		return fmt.Errorf("interactive input: %w", err)
	}

	s.inputs = []string{strings.TrimSpace(input)}
	s.level = level
	if !inPlace {
		s.output = strings.TrimSpace(output)
	}
	return nil
}

func existingFile(p string) error {
	p = strings.TrimSpace(p)
	if p == "" {
		return errors.New("input file is required")
	}
	info, err := os.Stat(p)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", p)
	}
	return nil
}
