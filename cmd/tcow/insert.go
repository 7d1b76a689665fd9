// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"

	"github.com/apex/log"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/cyphar/tcow"
)

var insertCommand = cli.Command{
	Name:      "insert",
	Usage:     "insert a host file's content into a container at a virtual path",
	ArgsUsage: `<container.tcow> <source-file> <vpath>`,
	Action:    insert,
}

func insert(ctx *cli.Context) error {
	if ctx.NArg() != 3 {
		return errors.Errorf("invalid number of positional arguments: expected 3")
	}

	containerPath := ctx.Args()[0]
	sourcePath := ctx.Args()[1]
	vpath := ctx.Args()[2]

	data, err := os.ReadFile(sourcePath)
	if err != nil {
		return errors.Wrap(err, "read source file")
	}

	if _, err := tcow.Insert(containerPath, vpath, data); err != nil {
		return errors.Wrap(err, "insert content")
	}

	log.WithFields(log.Fields{"container": containerPath, "vpath": vpath}).Infof("inserted content")
	return nil
}
