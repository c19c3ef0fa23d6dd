// seehuhn.de/go/ishihara - colour vision test plates
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Command ishihara renders colour vision test plates.
//
// Usage:
//
//	ishihara render --text 74 --seed 1 --out plate.png
//	ishihara batch --dir out/ --jobs 4
//	ishihara presets --json
//
// Defaults for all plates, and the jobs run by "batch", are read from an
// INI file (ishihara.ini unless --config is given).
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/urfave/cli/v2"

	"seehuhn.de/go/ishihara"
)

// conf holds the configuration file loaded before any command runs.
var conf *config

func main() {
	app := cli.NewApp()
	app.HideHelpCommand = true
	app.Name = "ishihara"
	app.Usage = "render pseudo-isochromatic colour vision test plates"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Value:   defaultConfigFile,
			Usage:   "INI file with plate defaults and batch jobs",
			EnvVars: []string{"ISHIHARA_CONFIG"},
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "log debugging information to stderr",
		},
	}

	app.Before = func(c *cli.Context) error {
		level := slog.LevelWarn
		if c.Bool("verbose") {
			level = slog.LevelDebug
		}
		ishihara.SetLogger(slog.New(slog.NewTextHandler(os.Stderr,
			&slog.HandlerOptions{Level: level})))

		var err error
		conf, err = loadConfig(c.String("config"), c.IsSet("config"))
		return err
	}

	app.Commands = []*cli.Command{
		renderCommand,
		batchCommand,
		presetsCommand,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := app.RunContext(ctx, os.Args)
	stop()
	if err != nil {
		switch value := err.(type) {
		case cli.ExitCoder:
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(value.ExitCode())
		default:
			fmt.Fprintln(os.Stderr, value.Error())
			os.Exit(1)
		}
	}
}
