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

package glyph

import (
	"image"
	"math"
	"unicode/utf8"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// BitmapFace is the built-in fallback face.  It draws the fixed 7×13 pixel
// X11 font and scales it to the requested size, which gives blocky glyphs.
// Its bounds are derived from the nominal cell size and are not exact.
type BitmapFace struct {
	face *basicfont.Face
}

// NewBitmapFace returns the built-in fallback face.
func NewBitmapFace() *BitmapFace {
	return &BitmapFace{face: basicfont.Face7x13}
}

// Name implements the [Face] interface.
func (f *BitmapFace) Name() string {
	return "builtin 7x13"
}

// scale maps the requested size in pixels per em to a magnification of
// the native cell, taking the cell height as one em.
func (f *BitmapFace) scale(px float64) float64 {
	return px / float64(f.face.Height)
}

// Bounds implements the [Face] interface.  The result is the box of all
// character cells, so exact is always false.
func (f *BitmapFace) Bounds(text string, px float64) (rect.Rect, bool) {
	n := utf8.RuneCountInString(text)
	s := f.scale(px)
	return rect.Rect{
		LLx: 0,
		LLy: -float64(f.face.Ascent) * s,
		URx: float64(n*f.face.Advance) * s,
		URy: float64(f.face.Descent) * s,
	}, false
}

// Draw implements the [Face] interface.
func (f *BitmapFace) Draw(dst *image.Gray, text string, px float64, origin vec.Vec2) {
	n := utf8.RuneCountInString(text)
	s := f.scale(px)
	if n == 0 || s <= 0 {
		return
	}

	// draw at native size into an alpha mask
	cell := image.NewAlpha(image.Rect(0, 0, n*f.face.Advance, f.face.Height))
	d := font.Drawer{
		Dst:  cell,
		Src:  image.Opaque,
		Face: f.face,
		Dot:  fixed.P(0, f.face.Ascent),
	}
	d.DrawString(text)

	// magnify and stamp black ink through the mask
	x0 := int(math.Round(origin.X))
	y0 := int(math.Round(origin.Y - float64(f.face.Ascent)*s))
	dr := image.Rect(x0, y0,
		x0+int(math.Round(float64(cell.Rect.Dx())*s)),
		y0+int(math.Round(float64(cell.Rect.Dy())*s)))
	if dr.Empty() {
		return
	}
	big := image.NewAlpha(dr)
	draw.NearestNeighbor.Scale(big, dr, cell, cell.Rect, draw.Src, nil)
	draw.DrawMask(dst, dr, image.Black, image.Point{}, big, dr.Min, draw.Over)
}
