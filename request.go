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
	"errors"
	"fmt"

	"seehuhn.de/go/ishihara/plate"
)

// ErrInvalidRequest is returned when a request cannot describe a plate.
// The wrapped message gives the reason.
var ErrInvalidRequest = errors.New("invalid request")

// Color is an RGB colour with components in [0, 1].
type Color = plate.Color

// ParseHex parses a colour such as "#ff6666" or "#f66".
func ParseHex(s string) (Color, error) {
	return plate.ParseHex(s)
}

// Palettes used when a request leaves a palette unset.
var (
	DefaultNumberPalette = []Color{
		{R: 1.0, G: 0.4, B: 0.4},
		{R: 1.0, G: 0.6, B: 0.6},
		{R: 0.9, G: 0.3, B: 0.3},
	}
	DefaultBackgroundPalette = []Color{
		{R: 0.2, G: 0.8, B: 0.2},
		{R: 0.3, G: 0.7, B: 0.3},
		{R: 0.4, G: 0.9, B: 0.4},
	}
)

// Swatches offered by the command line tool.  The first three of each list
// are the tool's default palettes.
var (
	NumberSwatches = []string{
		"#ff6666", "#ff9999", "#ff3333", "#e05050", "#ff8080", "#cc4444",
	}
	BackgroundSwatches = []string{
		"#33cc33", "#66ff66", "#009933", "#4dd24d", "#80e680", "#267326",
	}
)

// Request describes a plate to render.
type Request struct {
	Size      int     // edge length of the square image, in pixels
	Content   string  // text hidden in the plate
	RadiusMin float64 // smallest dot radius, in pixels
	RadiusMax float64 // largest dot radius, in pixels
	NumDots   int     // number of dots to attempt to place

	// Spacing is the minimal distance between dot centres as a multiple of
	// the sum of their radii.  Zero means 1, so that dots may touch.
	Spacing float64

	NumberPalette     []Color
	BackgroundPalette []Color

	// Background is the colour outside the dots.  Nil means white.
	Background *Color

	// Seed fixes the random layout.  Nil means a fresh random seed.
	Seed *uint64

	// Invert colours the glyph with the background palette and the
	// surrounding field with the number palette.
	Invert bool

	// KeepMargin keeps the full Size×Size canvas.  By default the image is
	// cropped to the area which differs from the background.
	KeepMargin bool
}

// DefaultRequest returns the request rendered when no parameters are given.
func DefaultRequest() Request {
	return Request{
		Size:              500,
		Content:           "12",
		RadiusMin:         4,
		RadiusMax:         8,
		NumDots:           2500,
		Spacing:           1,
		NumberPalette:     DefaultNumberPalette,
		BackgroundPalette: DefaultBackgroundPalette,
	}
}

// WithDefaults returns a copy of r in which zero-valued fields are replaced
// by the corresponding fields of [DefaultRequest].  Palettes are only
// replaced when nil; an empty non-nil palette is kept and later rejected
// by validation.
func (r Request) WithDefaults() Request {
	d := DefaultRequest()
	if r.Size == 0 {
		r.Size = d.Size
	}
	if r.Content == "" {
		r.Content = d.Content
	}
	if r.RadiusMin == 0 {
		r.RadiusMin = d.RadiusMin
	}
	if r.RadiusMax == 0 {
		r.RadiusMax = max(d.RadiusMax, r.RadiusMin)
	}
	if r.NumDots == 0 {
		r.NumDots = d.NumDots
	}
	if r.Spacing == 0 {
		r.Spacing = d.Spacing
	}
	if r.NumberPalette == nil {
		r.NumberPalette = d.NumberPalette
	}
	if r.BackgroundPalette == nil {
		r.BackgroundPalette = d.BackgroundPalette
	}
	return r
}

// Validate checks r.  All errors wrap [ErrInvalidRequest].
func (r *Request) Validate() error {
	if r.Content == "" {
		return fmt.Errorf("%w: empty content", ErrInvalidRequest)
	}
	if r.NumDots <= 0 {
		return fmt.Errorf("%w: dot count %d is not positive", ErrInvalidRequest, r.NumDots)
	}
	for _, c := range r.NumberPalette {
		if !c.Valid() {
			return fmt.Errorf("%w: number colour %v out of range", ErrInvalidRequest, c)
		}
	}
	for _, c := range r.BackgroundPalette {
		if !c.Valid() {
			return fmt.Errorf("%w: background colour %v out of range", ErrInvalidRequest, c)
		}
	}
	if r.Background != nil && !r.Background.Valid() {
		return fmt.Errorf("%w: canvas colour %v out of range", ErrInvalidRequest, *r.Background)
	}
	p := r.params()
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	return nil
}

func (r *Request) params() plate.Params {
	return plate.Params{
		Size:              r.Size,
		RadiusMin:         r.RadiusMin,
		RadiusMax:         r.RadiusMax,
		NumDots:           r.NumDots,
		Spacing:           r.Spacing,
		NumberPalette:     r.NumberPalette,
		BackgroundPalette: r.BackgroundPalette,
		Invert:            r.Invert,
	}
}

func (r *Request) background() Color {
	if r.Background != nil {
		return *r.Background
	}
	return Color{R: 1, G: 1, B: 1}
}
