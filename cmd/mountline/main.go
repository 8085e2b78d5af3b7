package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/kriansa/mountline/internal/config"
	"github.com/kriansa/mountline/internal/log"
	"github.com/kriansa/mountline/internal/version"
)

func main() {
	cmd := newCommand()
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:   version.Name,
		Usage:  "Parse fstab and /proc/mounts style mount tables",
		Writer: os.Stdout,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Configuration file path",
				Value:   config.DefaultConfigPath,
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable debug logging",
			},
			&cli.BoolFlag{
				Name:    "version",
				Aliases: []string{"V"},
				Usage:   "Print version information",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			log.Setup(cmd.Bool("verbose"))
			return ctx, nil
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Bool("version") {
				fmt.Fprintln(cmd.Root().Writer, version.String())
				return nil
			}
			return errors.New("no command given (see --help)")
		},
		Commands: []*cli.Command{
			parseCommand(),
			lineCommand(),
			findCommand(),
		},
	}
}

// tableFlags are the flags shared by the commands that parse mount lines
func tableFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format: text, json or yaml",
		},
		&cli.StringFlag{
			Name:  "counters",
			Usage: "Dump/pass grammar: strict (literal 0 0) or digits",
		},
		&cli.BoolFlag{
			Name:  "skip-invalid",
			Usage: "Skip lines that fail to parse instead of aborting",
		},
	}
}

// loadConfig loads the config file and merges the command's flags into it
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	// Load config file
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	// Merge CLI flags (CLI takes precedence)
	cfg.Merge(
		cmd.String("counters"),
		cmd.String("format"),
		cmd.Bool("skip-invalid"),
	)

	// Apply defaults
	cfg.ApplyDefaults()

	// Validate config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	log.Debug("configuration loaded",
		"counters", cfg.Counters,
		"format", cfg.Format,
		"skip_invalid", cfg.SkipInvalid,
	)
	return cfg, nil
}
