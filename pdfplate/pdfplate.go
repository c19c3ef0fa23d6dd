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

// Package pdfplate writes packed plates as vector PDF files.
//
// Each dot becomes a filled circle made of four Bézier curves, so the
// plate can be printed at any resolution.
package pdfplate

import (
	"fmt"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/ishihara/plate"
)

// kappa for cubic Bézier approximation of a quarter circle
const kappa = 0.5522847498307936

// Write stores the layout as a single-page PDF file.  One pixel of the
// layout corresponds to one PDF point.
func Write(fname string, l *plate.Layout, background plate.Color) error {
	size := float64(l.Size)
	paper := &pdf.Rectangle{URx: size, URy: size}

	page, err := document.CreateSinglePage(fname, paper, pdf.V1_7, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", fname, err)
	}

	page.SetFillColor(rgb(background))
	page.Rectangle(0, 0, size, size)
	page.Fill()

	// Layout coordinates have y pointing down.
	page.Transform(matrix.Matrix{1, 0, 0, -1, 0, size})

	// Dots never overlap, so all dots of one colour can share a path.
	for _, g := range groupByColor(l.Dots) {
		page.SetFillColor(rgb(g.color))
		for _, d := range g.dots {
			circle(page, float64(d.X), float64(d.Y), d.Radius)
		}
		page.Fill()
	}

	if err := page.Close(); err != nil {
		return fmt.Errorf("%s: %w", fname, err)
	}
	return nil
}

type colorGroup struct {
	color plate.Color
	dots  []plate.Dot
}

// groupByColor collects the dots of each colour, in order of first use.
func groupByColor(dots []plate.Dot) []colorGroup {
	var groups []colorGroup
	index := make(map[plate.Color]int)
	for _, d := range dots {
		i, ok := index[d.Color]
		if !ok {
			i = len(groups)
			index[d.Color] = i
			groups = append(groups, colorGroup{color: d.Color})
		}
		groups[i].dots = append(groups[i].dots, d)
	}
	return groups
}

func rgb(c plate.Color) color.Color {
	return color.DeviceRGB{c.R, c.G, c.B}
}

type pathBuilder interface {
	MoveTo(x, y float64)
	CurveTo(x1, y1, x2, y2, x3, y3 float64)
	ClosePath()
}

func circle(page pathBuilder, cx, cy, r float64) {
	k := kappa * r
	page.MoveTo(cx, cy-r)
	page.CurveTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	page.CurveTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
	page.CurveTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
	page.CurveTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
	page.ClosePath()
}
