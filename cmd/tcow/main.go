// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"

	"github.com/apex/log"
	logcli "github.com/apex/log/handlers/cli"
	"github.com/urfave/cli"
)

const usage = `tcow manages single-file, layered copy-on-write containers`

func main() {
	app := cli.NewApp()
	app.Name = "tcow"
	app.Usage = usage
	app.Version = "0.1.0"

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "debug",
			Usage: "set log level to debug",
		},
	}

	app.Before = func(ctx *cli.Context) error {
		log.SetHandler(logcli.New(os.Stderr))
		if ctx.GlobalBool("debug") {
			log.SetLevel(log.DebugLevel)
		}
		return nil
	}

	app.Commands = []cli.Command{
		infoCommand,
		lsCommand,
		catCommand,
		statCommand,
		insertCommand,
		deleteCommand,
		extractCommand,
		snapshotCommand,
		compactCommand,
		verifyCommand,
		layersCommand,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err.Error())
	}
}
