package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/kriansa/mountline/internal/log"
	"github.com/kriansa/mountline/internal/mounttab"
	"github.com/kriansa/mountline/internal/procmounts"
	"github.com/kriansa/mountline/internal/render"
)

func findCommand() *cli.Command {
	flags := append(tableFlags(),
		&cli.StringFlag{
			Name:    "mount-point",
			Aliases: []string{"m"},
			Usage:   "Find the entry mounted on this path",
		},
		&cli.StringFlag{
			Name:    "device",
			Aliases: []string{"d"},
			Usage:   "Find the entries for this device",
		},
	)

	return &cli.Command{
		Name:      "find",
		Usage:     "Look up entries in a mount table",
		ArgsUsage: "[FILE]  (default " + procmounts.ProcMountsPath + ")",
		Flags:     flags,
		Action:    runFind,
	}
}

func runFind(ctx context.Context, cmd *cli.Command) error {
	mountPoint, device := cmd.String("mount-point"), cmd.String("device")
	if mountPoint == "" && device == "" {
		return errors.New("one of --mount-point or --device is required")
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	path := cmd.Args().First()
	if path == "" {
		path = procmounts.ProcMountsPath
	}
	table, err := readTable(path, cfg)
	if err != nil {
		return err
	}

	found := table
	if mountPoint != "" {
		absTarget, err := filepath.Abs(mountPoint)
		if err != nil {
			return fmt.Errorf("get absolute path: %w", err)
		}
		m, ok := found.ByMountPoint(absTarget)
		if !ok {
			return fmt.Errorf("nothing is mounted on %s", absTarget)
		}
		found = procmounts.Table{m}
	}
	if device != "" {
		found = found.ByDevice(device)
		if len(found) == 0 {
			return fmt.Errorf("device %s not found", device)
		}
	}

	log.Debug("lookup matched", "mount_point", mountPoint, "device", device, "entries", len(found))
	return render.Write(cmd.Root().Writer, cfg.Format, []mounttab.Mount(found))
}
