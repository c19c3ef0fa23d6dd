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

// Package raster turns filled vector paths into anti-aliased pixel coverage.
//
// The plate renderer uses it for two things: filling glyph outlines when the
// text mask is built, and filling the coloured dots of the final plate.
// Coverage is computed exactly from the signed area of the path inside each
// pixel, so no supersampling is needed.
package raster

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Rule selects how the interior of a path is determined.
type Rule int

const (
	// NonZero fills points with a nonzero winding number.
	NonZero Rule = iota
	// EvenOdd fills points with an odd number of crossings.
	EvenOdd
)

func (r Rule) String() string {
	switch r {
	case NonZero:
		return "nonzero"
	case EvenOdd:
		return "evenodd"
	default:
		return "unknown"
	}
}

// EmitFunc receives the coverage of one scanline.  The slice holds the
// coverage of pixels xMin, xMin+1, ... and is only valid during the call.
type EmitFunc func(y, xMin int, coverage []float32)

// edge is a line segment in device coordinates.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64 // (x1-x0)/(y1-y0)
}

func (e *edge) yRange() (float64, float64) {
	if e.y0 < e.y1 {
		return e.y0, e.y1
	}
	return e.y1, e.y0
}

// xAt returns the x coordinate of the edge's supporting line at height y.
func (e *edge) xAt(y float64) float64 {
	return e.x0 + e.dxdy*(y-e.y0)
}

// Rasterizer converts filled paths into per-pixel coverage values between 0
// (outside) and 1 (inside).  One instance can be reused for many paths; its
// buffers grow as needed and are never released.
//
// A Rasterizer is not safe for concurrent use.
type Rasterizer struct {
	// CTM maps user space to device space.  Must be non-singular.
	CTM matrix.Matrix

	// Clip restricts the output to this device rectangle.
	// The coordinates must be integers.
	Clip rect.Rect

	// Flatness is the maximal distance, in device pixels, between a curve
	// and the line segments approximating it.
	Flatness float64

	// smallPathThreshold is the bounding box area (in pixels) below which
	// whole-path 2D buffers are used.  Larger paths are processed one
	// scanline at a time using an active edge list.
	smallPathThreshold int

	cover     []float32
	area      []float32
	edges     []edge
	activeIdx []int
	rowUsed   []bool

	bboxEmpty          bool
	bboxXMin, bboxXMax float64
	bboxYMin, bboxYMax float64
}

// NewRasterizer returns a Rasterizer for the given clip rectangle, using
// the identity transformation.
func NewRasterizer(clip rect.Rect) *Rasterizer {
	return &Rasterizer{
		CTM:                matrix.Identity,
		Clip:               clip,
		Flatness:           defaultFlatness,
		smallPathThreshold: smallPathThreshold,
	}
}

// Reset prepares the Rasterizer for a new clip rectangle and restores the
// default parameters.  Buffer capacity is kept.
func (r *Rasterizer) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.Flatness = defaultFlatness
	r.edges = r.edges[:0]
	r.activeIdx = r.activeIdx[:0]
}

// Fill rasterizes the interior of p according to rule and hands the
// coverage to emit, one scanline at a time, in increasing y order.
// Scanlines without any coverage are skipped.
func (r *Rasterizer) Fill(p *path.Data, rule Rule, emit EmitFunc) {
	xMin, xMax, yMin, yMax, ok := r.collectEdges(p)
	if !ok {
		return
	}
	if (xMax-xMin)*(yMax-yMin) < r.smallPathThreshold {
		r.fillSmall(xMin, xMax, yMin, yMax, rule, emit)
	} else {
		r.fillLarge(xMin, xMax, yMin, yMax, rule, emit)
	}
}

// device maps a user space point to device space.
func (r *Rasterizer) device(p vec.Vec2) vec.Vec2 {
	m := r.CTM
	return vec.Vec2{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// deviceLength returns the device space length of the user space vector v,
// ignoring the translation part of the CTM.
func (r *Rasterizer) deviceLength(v vec.Vec2) float64 {
	m := r.CTM
	return vec.Vec2{X: m[0]*v.X + m[2]*v.Y, Y: m[1]*v.X + m[3]*v.Y}.Length()
}

// collectEdges flattens p into r.edges and returns the device bounding box
// of the edges, clamped to the clip rectangle.
func (r *Rasterizer) collectEdges(p *path.Data) (xMin, xMax, yMin, yMax int, ok bool) {
	r.edges = r.edges[:0]
	r.bboxEmpty = true

	var cur, start vec.Vec2
	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			if cur != start {
				r.addEdge(cur, start) // implicit close
			}
			cur = p.Coords[k]
			start = cur
			k++
		case path.CmdLineTo:
			r.addEdge(cur, p.Coords[k])
			cur = p.Coords[k]
			k++
		case path.CmdQuadTo:
			r.flattenQuad(cur, p.Coords[k], p.Coords[k+1])
			cur = p.Coords[k+1]
			k += 2
		case path.CmdCubeTo:
			r.flattenCube(cur, p.Coords[k], p.Coords[k+1], p.Coords[k+2])
			cur = p.Coords[k+2]
			k += 3
		case path.CmdClose:
			if cur != start {
				r.addEdge(cur, start)
			}
			cur = start
		}
	}
	if cur != start {
		r.addEdge(cur, start)
	}

	if len(r.edges) == 0 {
		return 0, 0, 0, 0, false
	}

	xMin = max(int(math.Floor(r.bboxXMin)), int(r.Clip.LLx))
	xMax = min(int(math.Floor(r.bboxXMax))+1, int(r.Clip.URx))
	yMin = max(int(math.Floor(r.bboxYMin)), int(r.Clip.LLy))
	yMax = min(int(math.Floor(r.bboxYMax))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return 0, 0, 0, 0, false
	}
	return xMin, xMax, yMin, yMax, true
}

// addEdge appends the user space segment p0-p1 to the edge list.
func (r *Rasterizer) addEdge(p0, p1 vec.Vec2) {
	d0 := r.device(p0)
	d1 := r.device(p1)

	dy := d1.Y - d0.Y
	if math.Abs(dy) < horizontalEdgeThreshold {
		return // horizontal edges carry no coverage
	}
	r.edges = append(r.edges, edge{
		x0: d0.X, y0: d0.Y,
		x1: d1.X, y1: d1.Y,
		dxdy: (d1.X - d0.X) / dy,
	})

	lx, hx := min(d0.X, d1.X), max(d0.X, d1.X)
	ly, hy := min(d0.Y, d1.Y), max(d0.Y, d1.Y)
	if r.bboxEmpty {
		r.bboxXMin, r.bboxXMax = lx, hx
		r.bboxYMin, r.bboxYMax = ly, hy
		r.bboxEmpty = false
		return
	}
	r.bboxXMin = min(r.bboxXMin, lx)
	r.bboxXMax = max(r.bboxXMax, hx)
	r.bboxYMin = min(r.bboxYMin, ly)
	r.bboxYMax = max(r.bboxYMax, hy)
}

// flattenQuad approximates a quadratic Bézier curve by line segments.
func (r *Rasterizer) flattenQuad(p0, p1, p2 vec.Vec2) {
	// The deviation from the chord is bounded by |p0 - 2p1 + p2| / 4.
	dev := r.deviceLength(p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25))
	n := 1
	if dev > r.Flatness {
		n = int(math.Ceil(math.Sqrt(dev / r.Flatness)))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s).Add(p1.Mul(2 * s * t)).Add(p2.Mul(t * t))
		r.addEdge(prev, pt)
		prev = pt
	}
}

// flattenCube approximates a cubic Bézier curve by line segments, choosing
// the number of segments with Wang's formula.
func (r *Rasterizer) flattenCube(p0, p1, p2, p3 vec.Vec2) {
	dev := max(
		r.deviceLength(p0.Sub(p1.Mul(2)).Add(p2)),
		r.deviceLength(p1.Sub(p2.Mul(2)).Add(p3)),
	)
	n := 1
	if dev > 0 {
		if m := math.Sqrt(3 * dev / (4 * r.Flatness)); m > 1 {
			n = int(math.Ceil(m))
		}
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s * s).
			Add(p1.Mul(3 * s * s * t)).
			Add(p2.Mul(3 * s * t * t)).
			Add(p3.Mul(t * t * t))
		r.addEdge(prev, pt)
		prev = pt
	}
}

// fillSmall rasterizes the whole bounding box into 2D buffers at once.
func (r *Rasterizer) fillSmall(xMin, xMax, yMin, yMax int, rule Rule, emit EmitFunc) {
	width := xMax - xMin
	height := yMax - yMin

	n := width * height
	r.cover = slices.Grow(r.cover[:0], n)[:n]
	r.area = slices.Grow(r.area[:0], n)[:n]
	clear(r.cover)
	clear(r.area)
	r.rowUsed = slices.Grow(r.rowUsed[:0], height)[:height]
	clear(r.rowUsed)

	for i := range r.edges {
		e := &r.edges[i]
		lo, hi := e.yRange()
		y0 := max(int(math.Floor(lo)), yMin)
		y1 := min(int(math.Floor(hi))+1, yMax)
		for y := y0; y < y1; y++ {
			row := y - yMin
			off := row * width
			accumulate(e, y, r.cover[off:off+width], r.area[off:off+width], xMin, xMax)
			r.rowUsed[row] = true
		}
	}

	for row := range height {
		if !r.rowUsed[row] {
			continue
		}
		off := row * width
		cov := r.cover[off : off+width]
		integrate(cov, r.area[off:off+width], rule)
		if trimmed, lo := trimZeros(cov); trimmed != nil {
			emit(yMin+row, xMin+lo, trimmed)
		}
	}
}

// fillLarge rasterizes one scanline at a time, keeping a list of the edges
// which intersect the current scanline.
func (r *Rasterizer) fillLarge(xMin, xMax, yMin, yMax int, rule Rule, emit EmitFunc) {
	width := xMax - xMin
	r.cover = slices.Grow(r.cover[:0], width)[:width]
	r.area = slices.Grow(r.area[:0], width)[:width]

	slices.SortFunc(r.edges, func(a, b edge) int {
		aLo, _ := a.yRange()
		bLo, _ := b.yRange()
		return cmp.Compare(aLo, bLo)
	})

	r.activeIdx = r.activeIdx[:0]
	next := 0
	for y := yMin; y < yMax; y++ {
		top := float64(y)
		bottom := float64(y + 1)

		for next < len(r.edges) {
			if lo, _ := r.edges[next].yRange(); lo >= bottom {
				break
			}
			r.activeIdx = append(r.activeIdx, next)
			next++
		}
		if len(r.activeIdx) == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)
		used := false
		for i := 0; i < len(r.activeIdx); {
			e := &r.edges[r.activeIdx[i]]
			lo, hi := e.yRange()
			if hi <= top {
				last := len(r.activeIdx) - 1
				r.activeIdx[i] = r.activeIdx[last]
				r.activeIdx = r.activeIdx[:last]
				continue
			}
			accumulate(e, y, r.cover, r.area, xMin, xMax)
			if min(bottom, hi) > max(top, lo) {
				used = true
			}
			i++
		}
		if !used {
			continue
		}

		integrate(r.cover, r.area, rule)
		if trimmed, lo := trimZeros(r.cover); trimmed != nil {
			emit(y, xMin+lo, trimmed)
		}
	}
}

const (
	// defaultFlatness is the default curve tolerance in device pixels.
	defaultFlatness = 0.25

	// horizontalEdgeThreshold is the minimum vertical extent of an edge.
	horizontalEdgeThreshold = 1e-10

	// smallPathThreshold is the largest bounding box area, in pixels, for
	// which whole-path buffers are used.  All plate dots fall below it.
	smallPathThreshold = 65536
)
