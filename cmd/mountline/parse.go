package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/kriansa/mountline/internal/config"
	"github.com/kriansa/mountline/internal/log"
	"github.com/kriansa/mountline/internal/procmounts"
	"github.com/kriansa/mountline/internal/render"
)

func parseCommand() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "Parse a mount table file and print its entries",
		ArgsUsage: "[FILE]  (default " + procmounts.FstabPath + ", - for stdin)",
		Flags:     tableFlags(),
		Action:    runParse,
	}
}

func runParse(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	path := cmd.Args().First()
	if path == "" {
		path = procmounts.FstabPath
	}

	table, err := readTable(path, cfg)
	if err != nil {
		return err
	}

	log.Debug("parsed mount table", "path", path, "entries", len(table))
	return render.Write(cmd.Root().Writer, cfg.Format, table)
}

// readTable reads the mount table at path, or stdin when path is "-"
func readTable(path string, cfg *config.Config) (procmounts.Table, error) {
	opts := []procmounts.Option{procmounts.WithParser(cfg.Parser())}
	if cfg.SkipInvalid {
		opts = append(opts, procmounts.WithSkipInvalid(nil))
	}

	if path == "-" {
		table, err := procmounts.ReadAll(os.Stdin, opts...)
		if err != nil {
			return nil, fmt.Errorf("parse stdin: %w", err)
		}
		return table, nil
	}
	return procmounts.ParseFile(path, opts...)
}
