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
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"seehuhn.de/go/ishihara/glyph"
	"seehuhn.de/go/ishihara/plate"
)

func seed(v uint64) *uint64 { return &v }

func TestRenderLetter(t *testing.T) {
	req := Request{
		Size:              500,
		Content:           "A",
		RadiusMin:         4,
		RadiusMax:         8,
		NumDots:           2500,
		NumberPalette:     DefaultNumberPalette,
		BackgroundPalette: DefaultBackgroundPalette,
		Seed:              seed(1),
	}
	p, err := Render(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	// Cropping removes at most the gap between the dot field and the
	// canvas edge.
	const tolerance = 4 * 8
	if p.Width > 500 || p.Width < 500-tolerance || p.Height > 500 || p.Height < 500-tolerance {
		t.Errorf("plate is %d×%d, want about 500×500", p.Width, p.Height)
	}
	img, err := png.Decode(p.Reader())
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != p.Width || b.Dy() != p.Height {
		t.Errorf("decoded image is %v, plate says %d×%d", b, p.Width, p.Height)
	}
	if n := len(p.Layout.Dots); n == 0 || n > 2500 {
		t.Errorf("%d dots placed", n)
	}
	st := p.Layout.Stats()
	if st.Glyph == 0 || st.Background == 0 {
		t.Errorf("expected dots of both classes, got %+v", st)
	}

	// The corners lie outside the dot field.
	white := color.NRGBAModel.Convert(color.White)
	if c := color.NRGBAModel.Convert(img.At(0, 0)); c != white {
		t.Errorf("corner pixel %v, want white", c)
	}
}

func TestRenderAbsurdDotCount(t *testing.T) {
	req := Request{
		Size:              200,
		Content:           "8",
		RadiusMin:         4,
		RadiusMax:         8,
		NumDots:           100000,
		NumberPalette:     DefaultNumberPalette,
		BackgroundPalette: DefaultBackgroundPalette,
		Seed:              seed(7),
	}
	p, err := Render(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	l := p.Layout
	if !l.Incomplete() {
		t.Errorf("expected an incomplete layout")
	}
	if l.Attempts != 10*req.NumDots {
		t.Errorf("%d attempts, want %d", l.Attempts, 10*req.NumDots)
	}
	if _, err := png.Decode(p.Reader()); err != nil {
		t.Error(err)
	}
}

func TestRenderInvalid(t *testing.T) {
	base := DefaultRequest()
	cases := []struct {
		name   string
		modify func(*Request)
	}{
		{"empty background palette", func(r *Request) { r.BackgroundPalette = []Color{} }},
		{"empty number palette", func(r *Request) { r.NumberPalette = nil }},
		{"empty content", func(r *Request) { r.Content = "" }},
		{"zero size", func(r *Request) { r.Size = 0 }},
		{"radius too large", func(r *Request) { r.Size = 16 }},
		{"radii swapped", func(r *Request) { r.RadiusMin, r.RadiusMax = 8, 4 }},
		{"no dots", func(r *Request) { r.NumDots = 0 }},
		{"spacing below one", func(r *Request) { r.Spacing = 0.5 }},
		{"colour out of range", func(r *Request) { r.NumberPalette = []Color{{R: 1.5}} }},
		{"canvas out of range", func(r *Request) { r.Background = &Color{B: -1} }},
		{"NaN spacing", func(r *Request) { r.Spacing = math.NaN() }},
		{"NaN max radius", func(r *Request) { r.RadiusMax = math.NaN() }},
		{"infinite max radius", func(r *Request) { r.RadiusMax = math.Inf(1) }},
		{"infinite spacing", func(r *Request) { r.Spacing = math.Inf(1) }},
		{"NaN colour", func(r *Request) { r.BackgroundPalette = []Color{{G: math.NaN()}} }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := base
			c.modify(&req)
			p, err := Render(context.Background(), req)
			if !errors.Is(err, ErrInvalidRequest) {
				t.Errorf("got error %v, want ErrInvalidRequest", err)
			}
			if p != nil {
				t.Errorf("got a plate for an invalid request")
			}
		})
	}
}

func TestRenderDeterministic(t *testing.T) {
	req := DefaultRequest()
	req.Size = 200
	req.NumDots = 600
	req.Seed = seed(42)

	face := glyph.NewBitmapFace()
	p1, err := Render(context.Background(), req, WithFace(face))
	if err != nil {
		t.Fatal(err)
	}
	p2, err := Render(context.Background(), req, WithFace(face))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(p1.Data, p2.Data) {
		t.Error("same seed gave different images")
	}
	if p1.Seed != 42 {
		t.Errorf("seed %d, want 42", p1.Seed)
	}

	req.Seed = seed(43)
	p3, err := Render(context.Background(), req, WithFace(face))
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(p1.Data, p3.Data) {
		t.Error("different seeds gave identical images")
	}
}

func TestRenderRandomSeed(t *testing.T) {
	req := DefaultRequest()
	req.Size = 120
	req.NumDots = 100

	p, err := Render(context.Background(), req, WithFace(glyph.NewBitmapFace()))
	if err != nil {
		t.Fatal(err)
	}
	req.Seed = &p.Seed
	q, err := Render(context.Background(), req, WithFace(glyph.NewBitmapFace()))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(p.Data, q.Data) {
		t.Error("reported seed does not reproduce the plate")
	}
}

func TestRenderCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Render(ctx, DefaultRequest(), WithFace(glyph.NewBitmapFace()))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

func TestRenderMaxAttempts(t *testing.T) {
	req := DefaultRequest()
	req.Seed = seed(3)
	p, err := Render(context.Background(), req,
		WithFace(glyph.NewBitmapFace()), WithMaxAttempts(50))
	if err != nil {
		t.Fatal(err)
	}
	if p.Layout.Attempts != 50 {
		t.Errorf("%d attempts, want 50", p.Layout.Attempts)
	}
}

func TestRenderTrim(t *testing.T) {
	req := DefaultRequest()
	req.Size = 300
	req.NumDots = 900
	req.Seed = seed(5)

	p, err := Render(context.Background(), req, WithFace(glyph.NewBitmapFace()))
	if err != nil {
		t.Fatal(err)
	}
	if p.Width > 300 || p.Height > 300 {
		t.Errorf("trimmed plate is %d×%d", p.Width, p.Height)
	}
	img, err := png.Decode(p.Reader())
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != p.Width || b.Dy() != p.Height {
		t.Errorf("decoded %v, plate says %d×%d", b, p.Width, p.Height)
	}
}

func TestRenderKeepMargin(t *testing.T) {
	req := DefaultRequest()
	req.Size = 200
	req.NumDots = 40
	req.Seed = seed(5)
	req.KeepMargin = true

	p, err := Render(context.Background(), req, WithFace(glyph.NewBitmapFace()))
	if err != nil {
		t.Fatal(err)
	}
	if p.Width != 200 || p.Height != 200 {
		t.Errorf("plate is %d×%d, want 200×200", p.Width, p.Height)
	}

	req.KeepMargin = false
	q, err := Render(context.Background(), req, WithFace(glyph.NewBitmapFace()))
	if err != nil {
		t.Fatal(err)
	}
	if q.Width > p.Width || q.Height > p.Height {
		t.Errorf("cropped plate %d×%d is larger than the canvas", q.Width, q.Height)
	}
}

func TestRenderPDF(t *testing.T) {
	req := DefaultRequest()
	req.Size = 200
	req.NumDots = 300
	req.Seed = seed(9)

	fname := filepath.Join(t.TempDir(), "plate.pdf")
	l, err := RenderPDF(context.Background(), req, fname, WithFace(glyph.NewBitmapFace()))
	if err != nil {
		t.Fatal(err)
	}
	if len(l.Dots) == 0 {
		t.Error("no dots placed")
	}
	data, err := os.ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("missing PDF header")
	}
}

func TestTrim(t *testing.T) {
	white := Color{R: 1, G: 1, B: 1}
	img := plate.Draw(&plate.Layout{Size: 40}, white)

	if got := trim(img, white); got.Bounds() != img.Bounds() {
		t.Errorf("blank image trimmed to %v", got.Bounds())
	}

	img.Set(10, 20, color.Black)
	img.Set(14, 21, color.Black)
	got := trim(img, white)
	want := image.Rect(10, 20, 15, 22)
	if got.Bounds() != want {
		t.Errorf("trimmed to %v, want %v", got.Bounds(), want)
	}
}

func TestWithDefaults(t *testing.T) {
	r := Request{Content: "7", NumDots: 10}.WithDefaults()
	d := DefaultRequest()
	if r.Content != "7" || r.NumDots != 10 {
		t.Errorf("explicit fields were overwritten: %+v", r)
	}
	if r.Size != d.Size || r.RadiusMin != d.RadiusMin || r.RadiusMax != d.RadiusMax {
		t.Errorf("geometry not defaulted: %+v", r)
	}
	if len(r.NumberPalette) == 0 || len(r.BackgroundPalette) == 0 {
		t.Error("palettes not defaulted")
	}

	r = Request{BackgroundPalette: []Color{}}.WithDefaults()
	if err := r.Validate(); !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("explicit empty palette: got %v", err)
	}

	r = Request{RadiusMin: 12}.WithDefaults()
	if r.RadiusMax < r.RadiusMin {
		t.Errorf("radius range %g..%g", r.RadiusMin, r.RadiusMax)
	}
}

func TestSwatches(t *testing.T) {
	for _, s := range append(NumberSwatches[:len(NumberSwatches):len(NumberSwatches)], BackgroundSwatches...) {
		c, err := ParseHex(s)
		if err != nil {
			t.Error(err)
			continue
		}
		if c.Hex() != s {
			t.Errorf("%s parsed as %s", s, c.Hex())
		}
	}
}
