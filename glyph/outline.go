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
	"fmt"
	"image"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/ishihara/raster"
)

// OutlineFace is a scalable TrueType or OpenType font.  Glyph outlines are
// filled with the anti-aliasing rasterizer of package raster.
//
// An OutlineFace is safe for concurrent use.
type OutlineFace struct {
	name string
	font *sfnt.Font
}

// NewOutlineFace parses a TrueType or OpenType font.
func NewOutlineFace(name string, data []byte) (*OutlineFace, error) {
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &OutlineFace{name: name, font: f}, nil
}

// Name implements the [Face] interface.
func (f *OutlineFace) Name() string {
	return f.name
}

// Bounds implements the [Face] interface.  The box encloses all outline
// points, including the off-curve control points, and thus contains the
// ink.
func (f *OutlineFace) Bounds(text string, px float64) (rect.Rect, bool) {
	p := f.outline(text, px, vec.Vec2{})
	if len(p.Coords) == 0 {
		return rect.Rect{}, true
	}
	box := rect.Rect{
		LLx: math.Inf(1), LLy: math.Inf(1),
		URx: math.Inf(-1), URy: math.Inf(-1),
	}
	for _, c := range p.Coords {
		box.LLx = min(box.LLx, c.X)
		box.LLy = min(box.LLy, c.Y)
		box.URx = max(box.URx, c.X)
		box.URy = max(box.URy, c.Y)
	}
	return box, true
}

// Draw implements the [Face] interface.
func (f *OutlineFace) Draw(dst *image.Gray, text string, px float64, origin vec.Vec2) {
	p := f.outline(text, px, origin)
	r := raster.NewRasterizer(raster.Bounds(dst.Rect))
	r.Fill(p, raster.NonZero, raster.PaintGray(dst, 0))
}

// outline lays out text on a single line and returns the glyph outlines
// as one path.  Glyphs which cannot be loaded are skipped.
func (f *OutlineFace) outline(text string, px float64, origin vec.Vec2) *path.Data {
	var buf sfnt.Buffer
	ppem := fixed.Int26_6(math.Round(px * 64))
	p := &path.Data{}
	if ppem <= 0 {
		return p
	}

	pen := origin.X
	var prev sfnt.GlyphIndex
	for i, r := range []rune(text) {
		gid, err := f.font.GlyphIndex(&buf, r)
		if err != nil {
			continue
		}
		if i > 0 {
			if k, err := f.font.Kern(&buf, prev, gid, ppem, font.HintingNone); err == nil {
				pen += toFloat(k)
			}
		}
		prev = gid

		segs, err := f.font.LoadGlyph(&buf, gid, ppem, nil)
		if err == nil {
			appendSegments(p, segs, vec.Vec2{X: pen, Y: origin.Y})
		}
		if adv, err := f.font.GlyphAdvance(&buf, gid, ppem, font.HintingNone); err == nil {
			pen += toFloat(adv)
		}
	}
	return p
}

func appendSegments(p *path.Data, segs sfnt.Segments, offset vec.Vec2) {
	pt := func(q fixed.Point26_6) vec.Vec2 {
		return vec.Vec2{X: offset.X + toFloat(q.X), Y: offset.Y + toFloat(q.Y)}
	}
	for _, s := range segs {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			p.Cmds = append(p.Cmds, path.CmdMoveTo)
			p.Coords = append(p.Coords, pt(s.Args[0]))
		case sfnt.SegmentOpLineTo:
			p.Cmds = append(p.Cmds, path.CmdLineTo)
			p.Coords = append(p.Coords, pt(s.Args[0]))
		case sfnt.SegmentOpQuadTo:
			p.Cmds = append(p.Cmds, path.CmdQuadTo)
			p.Coords = append(p.Coords, pt(s.Args[0]), pt(s.Args[1]))
		case sfnt.SegmentOpCubeTo:
			p.Cmds = append(p.Cmds, path.CmdCubeTo)
			p.Coords = append(p.Coords, pt(s.Args[0]), pt(s.Args[1]), pt(s.Args[2]))
		}
	}
}

func toFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
