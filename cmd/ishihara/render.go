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

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"seehuhn.de/go/ishihara"
	"seehuhn.de/go/ishihara/presets"
)

var renderCommand = &cli.Command{
	Name:  "render",
	Usage: "render a single plate",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "preset", Usage: "start from a preset (see \"presets\")"},
		&cli.StringFlag{Name: "text", Aliases: []string{"t"}, Usage: "text hidden in the plate"},
		&cli.IntFlag{Name: "size", Usage: "image size in pixels"},
		&cli.IntFlag{Name: "dots", Usage: "number of dots to place"},
		&cli.Float64Flag{Name: "min-radius", Usage: "smallest dot radius"},
		&cli.Float64Flag{Name: "max-radius", Usage: "largest dot radius"},
		&cli.Float64Flag{Name: "spacing", Usage: "minimal dot distance as a multiple of r1+r2"},
		&cli.StringSliceFlag{Name: "number-color", Usage: "number palette colour, as #rrggbb (repeatable)"},
		&cli.StringSliceFlag{Name: "background-color", Usage: "background palette colour, as #rrggbb (repeatable)"},
		&cli.IntFlag{Name: "number-count", Usage: "use the first `N` built-in number swatches"},
		&cli.IntFlag{Name: "background-count", Usage: "use the first `N` built-in background swatches"},
		&cli.Uint64Flag{Name: "seed", Usage: "random seed, for reproducible plates"},
		&cli.BoolFlag{Name: "keep-margin", Usage: "keep the white space around the plate"},
		&cli.BoolFlag{Name: "invert", Usage: "swap number and background palettes"},
		&cli.StringFlag{Name: "format", Usage: "output format, png or pdf"},
		&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output file (default ishihara_<text>.<format>)"},
	},
	Action: func(c *cli.Context) error {
		req, format, err := conf.defaults()
		if err != nil {
			return err
		}
		if name := c.String("preset"); name != "" {
			p, err := presets.Lookup(name)
			if err != nil {
				return cli.Exit(err, 2)
			}
			req = p.Request
		}
		if err := applyFlags(c, &req); err != nil {
			return cli.Exit(err, 2)
		}

		out := c.String("out")
		if c.IsSet("format") {
			format = c.String("format")
		} else if format == "" && strings.EqualFold(filepath.Ext(out), ".pdf") {
			format = "pdf"
		}
		if format == "" {
			format = "png"
		}
		if out == "" {
			out = outputName(req.Content, format)
		}
		return renderOne(c.Context, c.App.Writer, req, format, out)
	},
}

// applyFlags overrides the fields of req given on the command line.
func applyFlags(c *cli.Context, req *ishihara.Request) error {
	if c.IsSet("text") {
		req.Content = c.String("text")
	}
	if c.IsSet("size") {
		req.Size = c.Int("size")
	}
	if c.IsSet("dots") {
		req.NumDots = c.Int("dots")
	}
	if c.IsSet("min-radius") {
		req.RadiusMin = c.Float64("min-radius")
	}
	if c.IsSet("max-radius") {
		req.RadiusMax = c.Float64("max-radius")
	}
	if c.IsSet("spacing") {
		req.Spacing = c.Float64("spacing")
	}
	if c.IsSet("number-count") {
		pal, err := swatches(ishihara.NumberSwatches, c.Int("number-count"))
		if err != nil {
			return err
		}
		req.NumberPalette = pal
	}
	if c.IsSet("background-count") {
		pal, err := swatches(ishihara.BackgroundSwatches, c.Int("background-count"))
		if err != nil {
			return err
		}
		req.BackgroundPalette = pal
	}
	if c.IsSet("number-color") {
		pal, err := parsePalette(c.StringSlice("number-color"))
		if err != nil {
			return err
		}
		req.NumberPalette = pal
	}
	if c.IsSet("background-color") {
		pal, err := parsePalette(c.StringSlice("background-color"))
		if err != nil {
			return err
		}
		req.BackgroundPalette = pal
	}
	if c.IsSet("seed") {
		seed := c.Uint64("seed")
		req.Seed = &seed
	}
	if c.IsSet("keep-margin") {
		req.KeepMargin = c.Bool("keep-margin")
	}
	if c.IsSet("invert") {
		req.Invert = c.Bool("invert")
	}
	return nil
}

func swatches(hex []string, n int) ([]ishihara.Color, error) {
	if n < 1 || n > len(hex) {
		return nil, fmt.Errorf("swatch count %d not in 1..%d", n, len(hex))
	}
	return parsePalette(hex[:n])
}

// outputName returns the default file name for a plate.
func outputName(content, format string) string {
	return "ishihara_" + safeName(content) + "." + format
}

// safeName replaces every rune except ASCII letters and digits by '_'.
func safeName(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, s)
}

func renderOne(ctx context.Context, w io.Writer, req ishihara.Request, format, out string) error {
	switch format {
	case "png":
		p, err := ishihara.Render(ctx, req)
		if err != nil {
			return err
		}
		if err := os.WriteFile(out, p.Data, 0o644); err != nil {
			return err
		}
		fmt.Fprintf(w, "%s: %d×%d, %s, seed %d\n",
			out, p.Width, p.Height, dotSummary(len(p.Layout.Dots), p.Layout.Target), p.Seed)
	case "pdf":
		l, err := ishihara.RenderPDF(ctx, req, out)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s: %s\n", out, dotSummary(len(l.Dots), l.Target))
	default:
		return cli.Exit(fmt.Sprintf("unsupported format %q", format), 2)
	}
	return nil
}

func dotSummary(placed, target int) string {
	if placed < target {
		return fmt.Sprintf("%d of %d dots placed", placed, target)
	}
	return fmt.Sprintf("%d dots", placed)
}
