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

// Package glyph renders text into the boolean mask which decides the colour
// class of every dot on a plate.
//
// Glyphs come from a [Face].  Faces are obtained from a prioritised list of
// [Provider]s; when none of them works, a built-in bitmap face is used, so
// that a mask can always be built.
package glyph

import (
	"image"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Face can measure and draw a string of text.
//
// Coordinates are in pixels, with y growing downwards.  The pen origin is
// on the baseline at the left end of the text.  px is the font size in
// pixels per em.
type Face interface {
	// Name identifies the face in log messages.
	Name() string

	// Bounds returns the bounding box of the ink of text, relative to the
	// pen origin.  If exact is false, the box is an estimate derived from
	// nominal font metrics.
	Bounds(text string, px float64) (box rect.Rect, exact bool)

	// Draw paints the text in black onto dst, with the pen origin at the
	// given position.
	Draw(dst *image.Gray, text string, px float64, origin vec.Vec2)
}

func width(r rect.Rect) float64  { return r.URx - r.LLx }
func height(r rect.Rect) float64 { return r.URy - r.LLy }
