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

// Package plate packs coloured dots into the circular field of a colour
// vision test plate.
//
// Dots are placed by rejection sampling: candidates with random radius and
// position are generated one after another and are discarded if they leave
// the inscribed circle or come too close to an earlier dot.  Every accepted
// dot takes its colour class from the glyph mask at its centre.
package plate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
)

// ErrInvalidParams is returned by Pack when the parameters cannot describe
// a plate.
var ErrInvalidParams = errors.New("invalid plate parameters")

// Mask tells whether a pixel belongs to the glyph.  Rows index the vertical
// axis, with row 0 at the top of the plate.
type Mask interface {
	At(row, col int) bool
}

// Class is the colour class of a dot.
type Class uint8

const (
	// ClassBackground dots take their colour from the background palette.
	ClassBackground Class = iota
	// ClassGlyph dots take their colour from the number palette.
	ClassGlyph
)

func (c Class) String() string {
	if c == ClassGlyph {
		return "glyph"
	}
	return "background"
}

// Dot is a placed dot.  X and Y are pixel coordinates of the centre.
type Dot struct {
	X, Y   int
	Radius float64
	Class  Class
	Color  Color
}

// Params describes the geometry and palettes of a plate.
type Params struct {
	Size      int     // edge length of the square plate, in pixels
	RadiusMin float64 // smallest dot radius
	RadiusMax float64 // largest dot radius
	NumDots   int     // number of dots to place
	Spacing   float64 // minimal centre distance, as a multiple of r1+r2; 0 means 1

	NumberPalette     []Color
	BackgroundPalette []Color

	// MaxAttempts bounds the number of candidate dots.  Zero means
	// 10*NumDots.
	MaxAttempts int

	// Invert swaps the two colour classes, so that mask pixels receive
	// background colours.
	Invert bool
}

// Validate checks that p describes a plate which can be packed.
func (p *Params) Validate() error {
	// The comparisons are written so that NaN fails them.
	switch {
	case p.Size <= 0:
		return fmt.Errorf("%w: size %d is not positive", ErrInvalidParams, p.Size)
	case !(p.RadiusMin > 0):
		return fmt.Errorf("%w: minimum radius %g is not positive", ErrInvalidParams, p.RadiusMin)
	case !(p.RadiusMax >= p.RadiusMin):
		return fmt.Errorf("%w: maximum radius %g is less than minimum radius %g",
			ErrInvalidParams, p.RadiusMax, p.RadiusMin)
	case !(float64(p.Size) > 2*p.RadiusMax):
		return fmt.Errorf("%w: size %d does not exceed twice the maximum radius %g",
			ErrInvalidParams, p.Size, p.RadiusMax)
	case p.NumDots < 0:
		return fmt.Errorf("%w: negative dot count %d", ErrInvalidParams, p.NumDots)
	case p.Spacing != 0 && !(p.Spacing >= 1 && p.Spacing <= math.MaxFloat64):
		return fmt.Errorf("%w: spacing factor %g is not a finite number >= 1", ErrInvalidParams, p.Spacing)
	case p.MaxAttempts < 0:
		return fmt.Errorf("%w: negative attempt limit %d", ErrInvalidParams, p.MaxAttempts)
	case len(p.NumberPalette) == 0:
		return fmt.Errorf("%w: empty number palette", ErrInvalidParams)
	case len(p.BackgroundPalette) == 0:
		return fmt.Errorf("%w: empty background palette", ErrInvalidParams)
	}
	return nil
}

func (p *Params) spacing() float64 {
	if p.Spacing == 0 {
		return 1
	}
	return p.Spacing
}

func (p *Params) budget() int {
	if p.MaxAttempts > 0 {
		return p.MaxAttempts
	}
	return 10 * p.NumDots
}

// Layout is the result of packing a plate.
type Layout struct {
	Size     int
	Dots     []Dot // in placement order
	Target   int   // requested number of dots
	Attempts int   // candidate dots generated
}

// Incomplete reports whether fewer dots than requested could be placed.
// This is a normal outcome for dense requests.
func (l *Layout) Incomplete() bool {
	return len(l.Dots) < l.Target
}

// Stats summarises a layout.
type Stats struct {
	Glyph      int
	Background int
	// FillRatio is the fraction of the inscribed circle covered by dots.
	FillRatio float64
}

// Stats counts the dots per class and the covered area.
func (l *Layout) Stats() Stats {
	var s Stats
	var area float64
	for _, d := range l.Dots {
		if d.Class == ClassGlyph {
			s.Glyph++
		} else {
			s.Background++
		}
		area += d.Radius * d.Radius
	}
	if l.Size > 0 {
		half := float64(l.Size) / 2
		s.FillRatio = area / (half * half)
	}
	return s
}

// checkInterval is the number of attempts between context checks.
const checkInterval = 1024

// Pack places up to p.NumDots dots inside the circle inscribed in the
// p.Size×p.Size square.
//
// For every candidate the random values are drawn in a fixed order: radius,
// x, y and, for accepted dots only, the palette index.  Packing with
// identically seeded generators therefore gives identical layouts.
//
// Pack stops when the target is reached or the attempt budget is used up.
// If ctx is cancelled first, the partial layout is returned together with
// the context's error.  Parameter errors are reported before any random
// numbers are drawn.
func Pack(ctx context.Context, mask Mask, p Params, rng *rand.Rand, logger *slog.Logger) (*Layout, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	spacing := p.spacing()
	budget := p.budget()
	size := float64(p.Size)
	centre := size / 2
	limit := centre - p.RadiusMax
	limit2 := limit * limit

	l := &Layout{
		Size:   p.Size,
		Target: p.NumDots,
		Dots:   make([]Dot, 0, p.NumDots),
	}
	idx := newGrid(size, 2*spacing*p.RadiusMax)

	for len(l.Dots) < p.NumDots && l.Attempts < budget {
		if l.Attempts%checkInterval == 0 {
			if err := ctx.Err(); err != nil {
				return l, err
			}
		}
		l.Attempts++

		r := p.RadiusMin + rng.Float64()*(p.RadiusMax-p.RadiusMin)
		lo := int(r)
		span := p.Size - 2*lo
		x := lo + rng.IntN(span)
		y := lo + rng.IntN(span)

		dx := float64(x) - centre
		dy := float64(y) - centre
		if dx*dx+dy*dy > limit2 {
			continue
		}
		if idx.collides(l.Dots, x, y, r, spacing) {
			continue
		}

		class := ClassBackground
		if mask.At(y, x) != p.Invert {
			class = ClassGlyph
		}
		palette := p.BackgroundPalette
		if class == ClassGlyph {
			palette = p.NumberPalette
		}
		col := palette[rng.IntN(len(palette))]

		idx.insert(x, y, len(l.Dots))
		l.Dots = append(l.Dots, Dot{X: x, Y: y, Radius: r, Class: class, Color: col})
	}

	if l.Incomplete() {
		logger.Debug("packing incomplete",
			"placed", len(l.Dots), "target", l.Target, "attempts", l.Attempts)
	}
	return l, nil
}
