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
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/urfave/cli/v2"

	"seehuhn.de/go/ishihara"
	"seehuhn.de/go/ishihara/presets"
)

var presetsCommand = &cli.Command{
	Name:  "presets",
	Usage: "list the built-in plates",
	Flags: []cli.Flag{
		&cli.BoolFlag{Name: "json", Usage: "print the full requests as JSON"},
	},
	Action: func(c *cli.Context) error {
		if c.Bool("json") {
			return writePresetsJSON(c.App.Writer)
		}
		for _, name := range presets.Names() {
			p, err := presets.Lookup(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "%-24s %q\n", name, p.Request.Content)
		}
		return nil
	},
}

type jsonPreset struct {
	Name             string   `json:"name"`
	Content          string   `json:"content"`
	Size             int      `json:"size"`
	Dots             int      `json:"dots"`
	RadiusMin        float64  `json:"min_radius"`
	RadiusMax        float64  `json:"max_radius"`
	Spacing          float64  `json:"spacing,omitempty"`
	NumberColors     []string `json:"number_colors"`
	BackgroundColors []string `json:"background_colors"`
	Invert           bool     `json:"invert,omitempty"`
}

func writePresetsJSON(w io.Writer) error {
	var out struct {
		Presets []jsonPreset `json:"presets"`
	}
	for _, category := range slices.Sorted(maps.Keys(presets.All)) {
		for _, p := range presets.All[category] {
			out.Presets = append(out.Presets, toJSON(category, p))
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func toJSON(category string, p presets.Preset) jsonPreset {
	r := p.Request
	return jsonPreset{
		Name:             category + "/" + p.Name,
		Content:          r.Content,
		Size:             r.Size,
		Dots:             r.NumDots,
		RadiusMin:        r.RadiusMin,
		RadiusMax:        r.RadiusMax,
		Spacing:          r.Spacing,
		NumberColors:     hexList(r.NumberPalette),
		BackgroundColors: hexList(r.BackgroundPalette),
		Invert:           r.Invert,
	}
}

func hexList(pal []ishihara.Color) []string {
	res := make([]string, len(pal))
	for i, c := range pal {
		res[i] = c.Hex()
	}
	return res
}
