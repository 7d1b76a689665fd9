// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/apex/log"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/cyphar/tcow"
	"github.com/cyphar/tcow/layer"
)

var snapshotCommand = cli.Command{
	Name:      "snapshot",
	Usage:     "append an empty delta layer as a timestamped marker",
	ArgsUsage: `<container.tcow>`,
	Action:    snapshot,
}

func snapshot(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.Errorf("invalid number of positional arguments: expected 1")
	}

	containerPath := ctx.Args()[0]
	c, err := tcow.AppendDelta(containerPath, []layer.Entry{}, []string{})
	if err != nil {
		return errors.Wrap(err, "append snapshot marker")
	}

	log.WithFields(log.Fields{"container": containerPath, "layer_count": c.LayerCount()}).Infof("snapshot recorded")
	return nil
}
