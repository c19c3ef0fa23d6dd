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
	"log/slog"

	"golang.org/x/image/draw"

	"seehuhn.de/go/geom/vec"
)

// Mask is a square boolean grid.  A true cell belongs to the glyph.
type Mask struct {
	Size int
	Bits []bool // row-major, Size*Size entries
}

// NewMask returns an all-false mask.
func NewMask(size int) *Mask {
	size = max(size, 0)
	return &Mask{Size: size, Bits: make([]bool, size*size)}
}

// At reports whether the cell in the given row and column belongs to the
// glyph.  Cells outside the grid never do.
func (m *Mask) At(row, col int) bool {
	if row < 0 || col < 0 || row >= m.Size || col >= m.Size {
		return false
	}
	return m.Bits[row*m.Size+col]
}

// Count returns the number of glyph cells.
func (m *Mask) Count() int {
	n := 0
	for _, b := range m.Bits {
		if b {
			n++
		}
	}
	return n
}

// Equal reports whether both masks have the same size and cells.
func (m *Mask) Equal(other *Mask) bool {
	if m.Size != other.Size {
		return false
	}
	for i, b := range m.Bits {
		if other.Bits[i] != b {
			return false
		}
	}
	return true
}

// Image renders the mask as black glyph cells on white.
func (m *Mask) Image() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, m.Size, m.Size))
	for i, b := range m.Bits {
		if !b {
			img.Pix[i] = 0xff
		}
	}
	return img
}

// Builder turns text into glyph masks.
type Builder struct {
	Face Face

	// TargetRatio is the fraction of the plate diameter the glyph should
	// span.
	TargetRatio float64

	// SafetyScale enlarges the target, measured on the oversampled canvas,
	// to compensate for faces whose reported extent is too small.
	SafetyScale float64

	// Oversample is the factor by which the working canvas exceeds the
	// mask size.
	Oversample int

	Logger *slog.Logger
}

// Default builder parameters.
const (
	DefaultTargetRatio = 2.0 / 3.0
	DefaultSafetyScale = 3.5
	DefaultOversample  = 4
)

// maxFootprint limits the glyph to this fraction of the working canvas.
const maxFootprint = 0.95

// NewBuilder returns a Builder with default parameters.
func NewBuilder(face Face) *Builder {
	return &Builder{
		Face:        face,
		TargetRatio: DefaultTargetRatio,
		SafetyScale: DefaultSafetyScale,
		Oversample:  DefaultOversample,
	}
}

// Build renders text centred on a size×size mask.
//
// The text is first measured, then scaled so that the longer side of its
// bounding box equals TargetRatio*SafetyScale*size pixels on a canvas
// Oversample times larger than the mask, centred, drawn, and reduced to the
// mask size with a Catmull-Rom filter.  Cells darker than mid-grey belong
// to the glyph.
//
// If the text has no ink, the mask is empty.  Build never fails.
func (b *Builder) Build(size int, text string) *Mask {
	m := NewMask(size)
	if size <= 0 || text == "" {
		return m
	}
	logger := b.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	face := b.Face
	if face == nil {
		face = NewBitmapFace()
	}
	over := b.Oversample
	if over < 1 {
		over = DefaultOversample
	}

	work := over * size
	target := min(b.TargetRatio*b.SafetyScale*float64(size), maxFootprint*float64(work))

	// measure at a nominal size, then rescale
	px := target
	box, _ := face.Bounds(text, px)
	extent := max(width(box), height(box))
	if width(box) <= 0 || height(box) <= 0 {
		logger.Debug("glyph has no extent", "text", text, "face", face.Name())
		return m
	}
	px *= target / extent

	box, exact := face.Bounds(text, px)
	if width(box) <= 0 || height(box) <= 0 {
		return m
	}
	if !exact {
		logger.Debug("glyph bounds are approximate", "face", face.Name())
	}

	half := float64(work) / 2
	origin := vec.Vec2{
		X: half - (box.LLx+box.URx)/2,
		Y: half - (box.LLy+box.URy)/2,
	}
	canvas := image.NewGray(image.Rect(0, 0, work, work))
	for i := range canvas.Pix {
		canvas.Pix[i] = 0xff
	}
	face.Draw(canvas, text, px, origin)

	small := image.NewGray(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(small, small.Rect, canvas, canvas.Rect, draw.Src, nil)
	for i, v := range small.Pix {
		m.Bits[i] = v < 128
	}

	logger.Debug("glyph mask built",
		"text", text, "face", face.Name(), "size", size,
		"px", px, "cells", m.Count())
	return m
}
