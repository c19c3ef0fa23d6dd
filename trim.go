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

package ishihara

import (
	"image"
)

// trim crops img to the smallest rectangle containing every pixel which
// differs from the background colour.  If all pixels match, img is
// returned unchanged.
func trim(img *image.RGBA, bg Color) *image.RGBA {
	c := bg.NRGBA() // opaque, so NRGBA and RGBA agree
	want := [4]uint8{c.R, c.G, c.B, c.A}

	b := img.Bounds()
	minX, minY := b.Max.X, b.Max.Y
	maxX, maxY := b.Min.X, b.Min.Y
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):img.PixOffset(b.Max.X, y)]
		for i := 0; i < len(row); i += 4 {
			if [4]uint8(row[i:i+4]) == want {
				continue
			}
			x := b.Min.X + i/4
			minX = min(minX, x)
			maxX = max(maxX, x+1)
			minY = min(minY, y)
			maxY = max(maxY, y+1)
		}
	}
	if minX >= maxX {
		return img
	}
	return img.SubImage(image.Rect(minX, minY, maxX, maxY)).(*image.RGBA)
}
