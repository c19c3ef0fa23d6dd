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

// Package presets provides ready-made plate requests.
package presets

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"seehuhn.de/go/ishihara"
)

// Preset is a named plate request.
type Preset struct {
	Name    string // lowercase a-z, 0-9 and _ only
	Request ishihara.Request
}

// All lists the presets by category.
var All = map[string][]Preset{
	"numbers": numberPresets,
	"letters": letterPresets,
	"stress":  stressPresets,
}

// Lookup finds a preset by its full name "category/name".
func Lookup(name string) (Preset, error) {
	category, short, ok := strings.Cut(name, "/")
	if !ok {
		return Preset{}, fmt.Errorf("preset %q: expected category/name", name)
	}
	for _, p := range All[category] {
		if p.Name == short {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("preset %q not found", name)
}

// Names returns the full names of all presets in sorted order.
func Names() []string {
	var names []string
	for _, category := range slices.Sorted(maps.Keys(All)) {
		for _, p := range All[category] {
			names = append(names, category+"/"+p.Name)
		}
	}
	return names
}

func hex(s ...string) []ishihara.Color {
	res := make([]ishihara.Color, len(s))
	for i, h := range s {
		c, err := ishihara.ParseHex(h)
		if err != nil {
			panic(err)
		}
		res[i] = c
	}
	return res
}

// plate returns a request with the default geometry.
func plate(content string, number, background []ishihara.Color) ishihara.Request {
	r := ishihara.DefaultRequest()
	r.Content = content
	r.NumberPalette = number
	r.BackgroundPalette = background
	return r
}

var (
	redGreenNumber     = hex("#ff6666", "#ff9999", "#ff3333")
	redGreenBackground = hex("#33cc33", "#66ff66", "#009933")

	// orange on yellow-green, close in luminance
	orangeNumber     = hex("#e8a33d", "#d98c2b", "#f0b050")
	olivesBackground = hex("#9cb84a", "#b5c95a", "#8aa83f")

	// blue-yellow pair for tritan screening
	blueNumber     = hex("#6b8fd6", "#5577cc", "#86a3e0")
	greyBackground = hex("#a6a08a", "#b8b29c", "#958f7a")
)
