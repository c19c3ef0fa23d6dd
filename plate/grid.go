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

import "math"

// grid is a uniform bucket grid over the plate.  The cell edge is at least
// the largest possible forbidden centre distance, so any conflicting dot
// lies in the 3×3 block of cells around a candidate.
type grid struct {
	cell  float64
	n     int
	cells [][]int32 // dot indices per cell, row-major
}

func newGrid(size, cell float64) *grid {
	// Centres are integers, so cells below one pixel only cost memory.
	cell = max(cell, 1)
	n := int(math.Ceil(size/cell)) + 1
	return &grid{
		cell:  cell,
		n:     n,
		cells: make([][]int32, n*n),
	}
}

func (g *grid) coord(v int) int {
	c := int(float64(v) / g.cell)
	return min(max(c, 0), g.n-1)
}

func (g *grid) insert(x, y, i int) {
	k := g.coord(y)*g.n + g.coord(x)
	g.cells[k] = append(g.cells[k], int32(i))
}

// collides reports whether a dot of radius r at (x, y) would come closer
// than spacing*(r+r') to any dot already in the grid.
func (g *grid) collides(dots []Dot, x, y int, r, spacing float64) bool {
	cx, cy := g.coord(x), g.coord(y)
	for j := max(cy-1, 0); j <= min(cy+1, g.n-1); j++ {
		for i := max(cx-1, 0); i <= min(cx+1, g.n-1); i++ {
			for _, k := range g.cells[j*g.n+i] {
				d := &dots[k]
				dx := float64(x - d.X)
				dy := float64(y - d.Y)
				sep := spacing * (r + d.Radius)
				if dx*dx+dy*dy < sep*sep {
					return true
				}
			}
		}
	}
	return false
}
