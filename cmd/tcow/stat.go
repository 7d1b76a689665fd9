// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/docker/go-units"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/cyphar/tcow"
)

var statCommand = cli.Command{
	Name:      "stat",
	Usage:     "show the resolved origin layer, size and mtime of a single virtual path",
	ArgsUsage: `<container.tcow> <vpath>`,
	Action:    stat,
}

func stat(ctx *cli.Context) error {
	if ctx.NArg() != 2 {
		return errors.Errorf("invalid number of positional arguments: expected 2")
	}

	c, err := tcow.Open(ctx.Args()[0])
	if err != nil {
		return errors.Wrap(err, "open container")
	}

	entry, layerIdx, ok := c.Resolve(ctx.Args()[1])
	if !ok {
		return errors.Wrapf(tcow.ErrNotFound, "path %q", ctx.Args()[1])
	}

	fmt.Fprintf(ctx.App.Writer, "layer: %d\n", layerIdx)
	fmt.Fprintf(ctx.App.Writer, "size:  %s\n", units.HumanSize(float64(entry.Size)))
	fmt.Fprintf(ctx.App.Writer, "mtime: %d\n", entry.Mtime)
	return nil
}
