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
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// kappa is the control point distance for a cubic Bézier approximation
// of a quarter circle of radius 1.
const kappa = 0.5522847498307936

// Circle returns a closed path approximating the circle with centre
// (cx, cy) and radius r by four cubic Bézier segments.
func Circle(cx, cy, r float64) *path.Data {
	return AppendCircle(&path.Data{}, cx, cy, r)
}

// AppendCircle adds a circle as a new closed subpath to p and returns p.
// The circle is traversed clockwise in a y-down coordinate system.
func AppendCircle(p *path.Data, cx, cy, r float64) *path.Data {
	k := kappa * r
	pt := func(x, y float64) vec.Vec2 { return vec.Vec2{X: cx + x, Y: cy + y} }

	p.Cmds = append(p.Cmds,
		path.CmdMoveTo,
		path.CmdCubeTo, path.CmdCubeTo, path.CmdCubeTo, path.CmdCubeTo,
		path.CmdClose)
	p.Coords = append(p.Coords,
		pt(0, -r),
		pt(k, -r), pt(r, -k), pt(r, 0),
		pt(r, k), pt(k, r), pt(0, r),
		pt(-k, r), pt(-r, k), pt(-r, 0),
		pt(-r, -k), pt(-k, -r), pt(0, -r))
	return p
}
