// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/cyphar/tcow"
)

var verifyCommand = cli.Command{
	Name:      "verify",
	Usage:     "check every layer's content digest against the trailer",
	ArgsUsage: `<container.tcow>`,
	Flags: []cli.Flag{
		cli.BoolFlag{
			Name:  "fix-missing",
			Usage: "fill in digests that the trailer recorded as absent",
		},
	},
	Action: verify,
}

func verify(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.Errorf("invalid number of positional arguments: expected 1")
	}

	report, err := tcow.Verify(ctx.Args()[0], ctx.Bool("fix-missing"))
	if report != nil {
		for _, result := range report.Results {
			fmt.Fprintf(ctx.App.Writer, "layer %d: %s (%s)\n", result.LayerIdx, result.Status, result.Computed)
		}
	}
	if err != nil {
		return errors.Wrap(err, "verify container")
	}
	return nil
}
