// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"
	"path/filepath"

	"github.com/apex/log"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/cyphar/tcow"
	"github.com/cyphar/tcow/pkg/vpath"
)

var extractCommand = cli.Command{
	Name:      "extract",
	Usage:     "materialize a container's union view onto the host filesystem",
	ArgsUsage: `<container.tcow> <dest-dir>`,
	Action:    extract,
}

func extract(ctx *cli.Context) error {
	if ctx.NArg() != 2 {
		return errors.Errorf("invalid number of positional arguments: expected 2")
	}

	c, err := tcow.Open(ctx.Args()[0])
	if err != nil {
		return errors.Wrap(err, "open container")
	}
	destDir := ctx.Args()[1]

	for _, entry := range c.List("") {
		target := filepath.Join(destDir, filepath.FromSlash(vpath.CleanPath(entry.Path)))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return errors.Wrapf(err, "create parent directories for %q", entry.Path)
		}
		if err := os.WriteFile(target, entry.Entry.Data, 0o644); err != nil {
			return errors.Wrapf(err, "write %q", entry.Path)
		}
	}

	log.WithFields(log.Fields{"dest": destDir, "files": c.VisibleCount()}).Infof("extracted container")
	return nil
}
