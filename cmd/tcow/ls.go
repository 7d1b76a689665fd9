// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/docker/go-units"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/cyphar/tcow"
)

var lsCommand = cli.Command{
	Name:      "ls",
	Usage:     "list visible files under a path prefix",
	ArgsUsage: `<container.tcow> [prefix]`,
	Action:    ls,
}

func ls(ctx *cli.Context) error {
	if ctx.NArg() != 1 && ctx.NArg() != 2 {
		return errors.Errorf("invalid number of positional arguments: expected 1 or 2")
	}

	c, err := tcow.Open(ctx.Args()[0])
	if err != nil {
		return errors.Wrap(err, "open container")
	}

	var prefix string
	if ctx.NArg() == 2 {
		prefix = ctx.Args()[1]
	}

	for _, entry := range c.List(prefix) {
		fmt.Fprintf(ctx.App.Writer, "%-10s %s\n", units.HumanSize(float64(entry.Entry.Size)), entry.Path)
	}
	return nil
}
