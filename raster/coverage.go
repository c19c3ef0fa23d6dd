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

import "math"

// Coverage model
//
// Every pixel of a scanline keeps two accumulators.  "cover" holds the
// signed vertical extent of all edge pieces inside the pixel column, and
// "area" holds the same amount weighted by the fraction of the pixel which
// lies to the right of the edge.  Integrating from left to right,
//
//	coverage[i] = sum(cover[0:i]) + area[i],
//
// gives the signed area of the path inside pixel i.  Edges left of the
// buffer are folded into pixel 0 so that the winding count is preserved.

// accumulate adds the part of e inside scanline [y, y+1) to the cover and
// area buffers, which represent pixels xMin, ..., xMax-1.
func accumulate(e *edge, y int, cover, area []float32, xMin, xMax int) {
	lo, hi := e.yRange()
	top := max(float64(y), lo)
	bottom := min(float64(y+1), hi)
	if bottom <= top {
		return
	}

	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	xa, xb := e.xAt(top), e.xAt(bottom)
	if xa > xb {
		xa, xb = xb, xa
	}
	left := int(math.Floor(xa))
	right := int(math.Floor(xb))

	switch {
	case right < xMin:
		c := sign * float32(bottom-top)
		cover[0] += c
		area[0] += c
		return
	case left >= xMax:
		return
	case left == right:
		deposit(e, top, bottom, sign, left, cover, area, xMin, xMax)
		return
	}

	// The edge crosses several pixel columns: split it at every column
	// boundary and deposit each piece separately.
	dydx := 1 / e.dxdy
	for pix := left; pix <= right; pix++ {
		ya := e.y0 + dydx*(float64(pix)-e.x0)
		yb := e.y0 + dydx*(float64(pix+1)-e.x0)
		segTop := max(min(ya, yb), top)
		segBottom := min(max(ya, yb), bottom)
		if segBottom <= segTop {
			continue
		}
		deposit(e, segTop, segBottom, sign, pix, cover, area, xMin, xMax)
	}
}

// deposit records the piece of e between heights top and bottom, which
// lies entirely inside pixel column pix.
func deposit(e *edge, top, bottom float64, sign float32, pix int, cover, area []float32, xMin, xMax int) {
	c := sign * float32(bottom-top)
	if pix < xMin {
		cover[0] += c
		area[0] += c
		return
	}
	if pix >= xMax {
		return
	}

	frac := e.xAt((top+bottom)/2) - float64(pix)
	i := pix - xMin
	cover[i] += c
	area[i] += c * float32(1-frac)
}

// integrate turns the accumulated cover and area values of one scanline
// into coverage values in [0, 1].  The result overwrites cover.
func integrate(cover, area []float32, rule Rule) {
	var acc float32
	for i := range cover {
		raw := acc + area[i]
		acc += cover[i]
		if raw < 0 {
			raw = -raw
		}
		if rule == EvenOdd {
			raw -= 2 * float32(int(raw/2))
			if raw > 1 {
				raw = 2 - raw
			}
		} else if raw > 1 {
			raw = 1
		}
		cover[i] = raw
	}
}

// trimZeros strips leading and trailing zero coverage.  It returns nil if
// the whole slice is zero.
func trimZeros(coverage []float32) ([]float32, int) {
	lo, hi := 0, len(coverage)
	for lo < hi && coverage[lo] == 0 {
		lo++
	}
	if lo == hi {
		return nil, 0
	}
	for coverage[hi-1] == 0 {
		hi--
	}
	return coverage[lo:hi], lo
}
