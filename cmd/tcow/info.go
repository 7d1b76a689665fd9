// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/docker/go-units"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/cyphar/tcow"
)

var infoCommand = cli.Command{
	Name:      "info",
	Usage:     "display summary information about a container",
	ArgsUsage: `<container.tcow>`,
	Action:    info,
}

func info(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.Errorf("invalid number of positional arguments: expected 1")
	}

	c, err := tcow.Open(ctx.Args()[0])
	if err != nil {
		return errors.Wrap(err, "open container")
	}

	var size uint64
	for _, entry := range c.UnionView() {
		size += entry.Size
	}

	fmt.Fprintf(ctx.App.Writer, "path:          %s\n", c.Path())
	fmt.Fprintf(ctx.App.Writer, "layers:        %d\n", c.LayerCount())
	fmt.Fprintf(ctx.App.Writer, "visible files: %d\n", c.VisibleCount())
	fmt.Fprintf(ctx.App.Writer, "visible size:  %s\n", units.HumanSize(float64(size)))
	fmt.Fprintf(ctx.App.Writer, "last modified: %s\n", c.LastModified())
	if label := c.Label(); label != nil {
		fmt.Fprintf(ctx.App.Writer, "label:         %s\n", *label)
	}
	return nil
}
