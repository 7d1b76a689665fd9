// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/apex/log"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/cyphar/tcow"
)

var deleteCommand = cli.Command{
	Name:      "delete",
	Usage:     "record a whiteout for a virtual path in a new delta layer",
	ArgsUsage: `<container.tcow> <vpath>`,
	Action:    deleteAction,
}

func deleteAction(ctx *cli.Context) error {
	if ctx.NArg() != 2 {
		return errors.Errorf("invalid number of positional arguments: expected 2")
	}

	containerPath := ctx.Args()[0]
	vpath := ctx.Args()[1]

	if _, err := tcow.Delete(containerPath, vpath); err != nil {
		return errors.Wrap(err, "delete path")
	}

	log.WithFields(log.Fields{"container": containerPath, "vpath": vpath}).Infof("deleted path")
	return nil
}
