// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/docker/go-units"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/cyphar/tcow"
)

var layersCommand = cli.Command{
	Name:      "layers",
	Usage:     "enumerate the container's layer stack",
	ArgsUsage: `<container.tcow>`,
	Action:    layers,
}

func layers(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.Errorf("invalid number of positional arguments: expected 1")
	}

	c, err := tcow.Open(ctx.Args()[0])
	if err != nil {
		return errors.Wrap(err, "open container")
	}

	for i := 0; i < c.LayerCount(); i++ {
		entries, err := c.LayerEntries(i)
		if err != nil {
			return errors.Wrapf(err, "read layer %d", i)
		}
		var size int
		for _, entry := range entries {
			size += len(entry.Data)
		}
		fmt.Fprintf(ctx.App.Writer, "layer %d: %d entries, %s\n", i, len(entries), units.HumanSize(float64(size)))
	}
	return nil
}
