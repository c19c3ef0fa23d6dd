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

// Package ishihara renders pseudo-isochromatic colour vision test plates.
//
// A plate is a disc of coloured dots.  Dots whose centre falls inside a
// hidden glyph take colours from the number palette, all others from the
// background palette, so that the glyph can only be read by telling the two
// palettes apart.
//
// [Render] produces a PNG image and [RenderPDF] a vector version of the
// same layout.  The sub-packages expose the individual stages: [glyph]
// builds the mask, [plate] packs and draws the dots, [raster] fills paths.
package ishihara

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"seehuhn.de/go/ishihara/glyph"
	"seehuhn.de/go/ishihara/pdfplate"
	"seehuhn.de/go/ishihara/plate"
)

// ErrEncoding is returned when the rendered image cannot be encoded.
var ErrEncoding = errors.New("encoding failed")

// Plate is a rendered plate.
type Plate struct {
	Data   []byte // PNG image
	Width  int
	Height int
	Seed   uint64 // seed which reproduces this plate
	Layout *plate.Layout
}

// Reader returns a reader for the PNG data, positioned at the start.
func (p *Plate) Reader() *bytes.Reader {
	return bytes.NewReader(p.Data)
}

// Option changes how a plate is rendered.
type Option func(*settings)

type settings struct {
	face        glyph.Face
	logger      *slog.Logger
	maxAttempts int
	compression png.CompressionLevel
}

// WithFace sets the font face used to draw the hidden text.  By default the
// first available face of [glyph.DefaultProviders] is used.
func WithFace(f glyph.Face) Option {
	return func(s *settings) { s.face = f }
}

// WithLogger sets the logger for a single call, overriding [SetLogger].
//
// The default face is loaded once per process, so font fallback warnings
// go to the logger active during the first call.  Every call logs the face
// in use at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithMaxAttempts limits the number of candidate dots.  The default is ten
// times the requested dot count.
func WithMaxAttempts(n int) Option {
	return func(s *settings) { s.maxAttempts = n }
}

// WithPNGCompression sets the compression level of the PNG encoder.
func WithPNGCompression(level png.CompressionLevel) Option {
	return func(s *settings) { s.compression = level }
}

func newSettings(opts []Option) *settings {
	s := &settings{}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = Logger()
	}
	if s.face == nil {
		s.face = defaultFace(s.logger)
	}
	return s
}

var (
	defaultFaceOnce sync.Once
	defaultFaceVal  glyph.Face
)

func defaultFace(logger *slog.Logger) glyph.Face {
	defaultFaceOnce.Do(func() {
		defaultFaceVal = glyph.LoadFace(logger, glyph.DefaultProviders()...)
	})
	return defaultFaceVal
}

// Render draws the plate described by req and encodes it as PNG.
//
// Placing fewer dots than requested is not an error; the returned layout
// reports this through [plate.Layout.Incomplete].  If ctx is cancelled
// while dots are placed, Render returns ctx.Err().
func Render(ctx context.Context, req Request, opts ...Option) (*Plate, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	s := newSettings(opts)

	start := time.Now()
	layout, seed, err := pack(ctx, &req, s)
	if err != nil {
		return nil, err
	}

	bg := req.background()
	var img image.Image = plate.Draw(layout, bg)
	if !req.KeepMargin {
		img = trim(img.(*image.RGBA), bg)
	}

	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: s.compression}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncoding, err)
	}

	b := img.Bounds()
	st := layout.Stats()
	s.logger.Info("plate rendered",
		"content", req.Content,
		"size", req.Size,
		"dots", len(layout.Dots),
		"target", layout.Target,
		"glyph_dots", st.Glyph,
		"attempts", layout.Attempts,
		"incomplete", layout.Incomplete(),
		"bytes", buf.Len(),
		"elapsed", time.Since(start))

	return &Plate{
		Data:   buf.Bytes(),
		Width:  b.Dx(),
		Height: b.Dy(),
		Seed:   seed,
		Layout: layout,
	}, nil
}

// RenderPDF writes the plate described by req to a PDF file.  The page is
// always req.Size points square.
func RenderPDF(ctx context.Context, req Request, fname string, opts ...Option) (*plate.Layout, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	s := newSettings(opts)

	layout, _, err := pack(ctx, &req, s)
	if err != nil {
		return nil, err
	}
	if err := pdfplate.Write(fname, layout, req.background()); err != nil {
		return nil, err
	}
	s.logger.Info("plate written",
		"file", fname,
		"content", req.Content,
		"dots", len(layout.Dots),
		"incomplete", layout.Incomplete())
	return layout, nil
}

// pack builds the glyph mask and places the dots.
func pack(ctx context.Context, req *Request, s *settings) (*plate.Layout, uint64, error) {
	seed := rand.Uint64()
	if req.Seed != nil {
		seed = *req.Seed
	}

	b := glyph.NewBuilder(s.face)
	b.Logger = s.logger
	mask := b.Build(req.Size, req.Content)
	s.logger.Debug("glyph mask built",
		"face", s.face.Name(),
		"size", mask.Size,
		"ink", mask.Count())

	p := req.params()
	p.MaxAttempts = s.maxAttempts
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	layout, err := plate.Pack(ctx, mask, p, rng, s.logger)
	if err != nil {
		return nil, 0, err
	}
	return layout, seed, nil
}
