package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/kriansa/mountline/internal/mounttab"
	"github.com/kriansa/mountline/internal/render"
)

func lineCommand() *cli.Command {
	return &cli.Command{
		Name:      "line",
		Usage:     "Parse each argument as a single mount table line",
		ArgsUsage: "LINE...",
		Flags:     tableFlags(),
		Action:    runLine,
	}
}

func runLine(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() == 0 {
		return errors.New("at least one line is required")
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	parser := cfg.Parser()

	var (
		mounts []mounttab.Mount
		failed int
	)
	for i, line := range cmd.Args().Slice() {
		m, err := parser.Parse(line)
		if err != nil {
			failed++
			writeDiagnostic(cmd.Root().ErrWriter, i+1, line, err)
			continue
		}
		mounts = append(mounts, m)
	}

	if err := render.Write(cmd.Root().Writer, cfg.Format, mounts); err != nil {
		return err
	}
	if failed > 0 && !cfg.SkipInvalid {
		return fmt.Errorf("%d of %d lines failed to parse", failed, cmd.NArg())
	}
	return nil
}

// writeDiagnostic prints a parse error with a caret under the failing column
func writeDiagnostic(w io.Writer, n int, line string, err error) {
	if w == nil {
		return
	}
	fmt.Fprintf(w, "line %d: %v\n", n, err)

	var perr *mounttab.ParseError
	if !errors.As(err, &perr) {
		return
	}
	fmt.Fprintf(w, "  %s\n  %s^\n", line, caretPad(line[:perr.Offset]))
}

// caretPad blanks out prefix while keeping tabs, so the caret lines up
func caretPad(prefix string) string {
	return strings.Map(func(r rune) rune {
		if r == '\t' {
			return r
		}
		return ' '
	}, prefix)
}
