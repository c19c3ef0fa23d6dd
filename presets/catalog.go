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

package presets

import "seehuhn.de/go/ishihara"

var numberPresets = []Preset{
	{
		Name:    "twelve",
		Request: plate("12", redGreenNumber, redGreenBackground),
	},
	{
		Name:    "eight",
		Request: plate("8", redGreenNumber, redGreenBackground),
	},
	{
		Name:    "twenty_nine",
		Request: plate("29", orangeNumber, olivesBackground),
	},
	{
		Name:    "seventy_four",
		Request: plate("74", orangeNumber, olivesBackground),
	},
	{
		Name:    "five_tritan",
		Request: plate("5", blueNumber, greyBackground),
	},
	{
		Name: "fine_dots",
		Request: func() ishihara.Request {
			r := plate("6", redGreenNumber, redGreenBackground)
			r.RadiusMin = 2
			r.RadiusMax = 4
			r.NumDots = 9000
			return r
		}(),
	},
	{
		Name: "inverted",
		Request: func() ishihara.Request {
			r := plate("3", redGreenNumber, redGreenBackground)
			r.Invert = true
			return r
		}(),
	},
}

var letterPresets = []Preset{
	{
		Name:    "a",
		Request: plate("A", redGreenNumber, redGreenBackground),
	},
	{
		Name:    "k",
		Request: plate("K", orangeNumber, olivesBackground),
	},
	{
		Name: "ok_large",
		Request: func() ishihara.Request {
			r := plate("OK", redGreenNumber, redGreenBackground)
			r.Size = 800
			r.RadiusMin = 5
			r.RadiusMax = 10
			r.NumDots = 4000
			return r
		}(),
	},
}

// stressPresets exercise the limits of the dot packer.
var stressPresets = []Preset{
	{
		Name: "overfull",
		Request: func() ishihara.Request {
			r := plate("8", redGreenNumber, redGreenBackground)
			r.Size = 200
			r.NumDots = 100000
			return r
		}(),
	},
	{
		Name: "uniform_radius",
		Request: func() ishihara.Request {
			r := plate("0", redGreenNumber, redGreenBackground)
			r.RadiusMin = 6
			r.RadiusMax = 6
			return r
		}(),
	},
	{
		Name: "wide_spacing",
		Request: func() ishihara.Request {
			r := plate("7", redGreenNumber, redGreenBackground)
			r.Spacing = 1.5
			return r
		}(),
	},
	{
		Name:    "single_colour",
		Request: plate("4", hex("#ff6666"), hex("#33cc33")),
	},
	{
		Name: "tiny",
		Request: func() ishihara.Request {
			r := plate("1", redGreenNumber, redGreenBackground)
			r.Size = 40
			r.RadiusMin = 1
			r.RadiusMax = 2
			r.NumDots = 300
			return r
		}(),
	},
}
