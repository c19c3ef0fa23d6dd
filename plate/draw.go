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

package plate

import (
	"image"
	"image/draw"
	"sync"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/ishihara/raster"
)

// rasterizers keeps edge buffers alive between plates.
var rasterizers = sync.Pool{
	New: func() any { return raster.NewRasterizer(rect.Rect{}) },
}

// Draw renders the layout onto a new Size×Size image filled with the
// background colour.  Dots are drawn as anti-aliased filled circles
// without outline.  Since dots never overlap, the drawing order does not
// matter.
func Draw(l *Layout, background Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, l.Size, l.Size))
	draw.Draw(img, img.Bounds(), image.NewUniform(background.NRGBA()), image.Point{}, draw.Src)

	r := rasterizers.Get().(*raster.Rasterizer)
	defer rasterizers.Put(r)
	r.Reset(raster.Bounds(img.Rect))

	p := &path.Data{}
	for _, d := range l.Dots {
		p.Cmds = p.Cmds[:0]
		p.Coords = p.Coords[:0]
		raster.AppendCircle(p, float64(d.X), float64(d.Y), d.Radius)
		r.Fill(p, raster.NonZero, raster.PaintRGBA(img, d.Color.NRGBA()))
	}
	return img
}
