// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/apex/log"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/cyphar/tcow"
)

var compactCommand = cli.Command{
	Name:      "compact",
	Usage:     "collapse a container's layer stack into a single base layer",
	ArgsUsage: `<container.tcow> [dest.tcow]`,
	Flags: []cli.Flag{
		cli.BoolFlag{
			Name:  "in-place",
			Usage: "replace the source container instead of writing a new one",
		},
	},
	Action: compact,
}

func compact(ctx *cli.Context) error {
	src := ""
	dst := ""
	inPlace := ctx.Bool("in-place")

	switch {
	case inPlace && ctx.NArg() == 1:
		src = ctx.Args()[0]
	case !inPlace && ctx.NArg() == 2:
		src, dst = ctx.Args()[0], ctx.Args()[1]
	default:
		return errors.Errorf("invalid positional arguments: expected <src> with --in-place, or <src> <dst> otherwise")
	}

	c, err := tcow.Compact(src, dst, inPlace)
	if err != nil {
		return errors.Wrap(err, "compact container")
	}

	log.WithFields(log.Fields{"src": src, "dst": c.Path(), "visible_count": c.VisibleCount()}).Infof("compacted container")
	return nil
}
