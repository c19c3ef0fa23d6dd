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

package raster

import (
	"image"
	"image/color"

	"seehuhn.de/go/geom/rect"
)

// Bounds converts an image rectangle into a clip rectangle.
func Bounds(r image.Rectangle) rect.Rect {
	return rect.Rect{
		LLx: float64(r.Min.X),
		LLy: float64(r.Min.Y),
		URx: float64(r.Max.X),
		URy: float64(r.Max.Y),
	}
}

// PaintRGBA returns an EmitFunc which composites the colour c over dst,
// using the coverage as additional opacity.
func PaintRGBA(dst *image.RGBA, c color.NRGBA) EmitFunc {
	a := float32(c.A) / 255
	sr := float32(c.R) * a
	sg := float32(c.G) * a
	sb := float32(c.B) * a
	sa := float32(c.A)

	return func(y, xMin int, coverage []float32) {
		if y < dst.Rect.Min.Y || y >= dst.Rect.Max.Y {
			return
		}
		for i, cov := range coverage {
			x := xMin + i
			if x < dst.Rect.Min.X || x >= dst.Rect.Max.X {
				continue
			}
			o := dst.PixOffset(x, y)
			px := dst.Pix[o : o+4 : o+4]
			keep := 1 - a*cov
			px[0] = clampByte(sr*cov + float32(px[0])*keep)
			px[1] = clampByte(sg*cov + float32(px[1])*keep)
			px[2] = clampByte(sb*cov + float32(px[2])*keep)
			px[3] = clampByte(sa*cov + float32(px[3])*keep)
		}
	}
}

// PaintGray returns an EmitFunc which blends the grey value ink into dst
// in proportion to the coverage.
func PaintGray(dst *image.Gray, ink uint8) EmitFunc {
	target := float32(ink)
	return func(y, xMin int, coverage []float32) {
		if y < dst.Rect.Min.Y || y >= dst.Rect.Max.Y {
			return
		}
		for i, cov := range coverage {
			x := xMin + i
			if x < dst.Rect.Min.X || x >= dst.Rect.Max.X {
				continue
			}
			o := dst.PixOffset(x, y)
			v := float32(dst.Pix[o])
			dst.Pix[o] = clampByte(v + (target-v)*cov)
		}
	}
}

func clampByte(v float32) uint8 {
	v += 0.5
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v)
	}
}
