// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/cyphar/tcow"
)

var catCommand = cli.Command{
	Name:      "cat",
	Usage:     "print the resolved content of a single virtual path to stdout",
	ArgsUsage: `<container.tcow> <vpath>`,
	Action:    cat,
}

func cat(ctx *cli.Context) error {
	if ctx.NArg() != 2 {
		return errors.Errorf("invalid number of positional arguments: expected 2")
	}

	c, err := tcow.Open(ctx.Args()[0])
	if err != nil {
		return errors.Wrap(err, "open container")
	}

	entry, _, ok := c.Resolve(ctx.Args()[1])
	if !ok {
		return errors.Wrapf(tcow.ErrNotFound, "path %q", ctx.Args()[1])
	}

	_, err = ctx.App.Writer.Write(entry.Data)
	return errors.Wrap(err, "write content")
}
