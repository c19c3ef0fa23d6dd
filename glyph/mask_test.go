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
	"errors"
	"image"
	"image/draw"
	"math"
	"os"
	"path/filepath"
	"testing"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// boxFace draws every string as a solid black rectangle, 0.6 em wide per
// character and 1 em high, sitting on the baseline.
type boxFace struct{}

func (boxFace) Name() string { return "box" }

func (boxFace) Bounds(text string, px float64) (rect.Rect, bool) {
	return rect.Rect{LLx: 0, LLy: -px, URx: 0.6 * px * float64(len(text)), URy: 0}, true
}

func (f boxFace) Draw(dst *image.Gray, text string, px float64, origin vec.Vec2) {
	b, _ := f.Bounds(text, px)
	r := image.Rect(
		int(math.Round(origin.X+b.LLx)), int(math.Round(origin.Y+b.LLy)),
		int(math.Round(origin.X+b.URx)), int(math.Round(origin.Y+b.URy)))
	draw.Draw(dst, r, image.Black, image.Point{}, draw.Src)
}

// emptyFace has no ink at all.
type emptyFace struct{}

func (emptyFace) Name() string                                { return "empty" }
func (emptyFace) Bounds(string, float64) (rect.Rect, bool)    { return rect.Rect{}, true }
func (emptyFace) Draw(*image.Gray, string, float64, vec.Vec2) {}

func corners(m *Mask) [][2]int {
	n := m.Size - 1
	return [][2]int{{0, 0}, {0, n}, {n, 0}, {n, n}}
}

// extent returns the bounding box of the glyph cells.
func extent(m *Mask) image.Rectangle {
	var r image.Rectangle
	for row := range m.Size {
		for col := range m.Size {
			if m.At(row, col) {
				r = r.Union(image.Rect(col, row, col+1, row+1))
			}
		}
	}
	return r
}

func TestBuildBox(t *testing.T) {
	m := NewBuilder(boxFace{}).Build(100, "XX")

	if !m.At(50, 50) {
		t.Error("centre cell is not part of the glyph")
	}
	for _, c := range corners(m) {
		if m.At(c[0], c[1]) {
			t.Errorf("corner %v is part of the glyph", c)
		}
	}

	// the longer side spans 2/3 * 3.5 * 100 pixels of the 400 pixel canvas,
	// i.e. about 58 mask cells
	e := extent(m)
	if e.Dx() < 55 || e.Dx() > 61 {
		t.Errorf("glyph width %d, want about 58", e.Dx())
	}
	if e.Dy() < 46 || e.Dy() > 51 {
		t.Errorf("glyph height %d, want about 49", e.Dy())
	}
	cx := float64(e.Min.X+e.Max.X) / 2
	cy := float64(e.Min.Y+e.Max.Y) / 2
	if math.Abs(cx-50) > 1 || math.Abs(cy-50) > 1 {
		t.Errorf("glyph centred at (%g, %g), want (50, 50)", cx, cy)
	}
}

func TestBuildEmpty(t *testing.T) {
	cases := []struct {
		name string
		face Face
		size int
		text string
	}{
		{"no ink", emptyFace{}, 50, "A"},
		{"no text", boxFace{}, 50, ""},
		{"space", loadGoBold(t), 50, " "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := NewBuilder(tc.face).Build(tc.size, tc.text)
			if m.Size != tc.size || len(m.Bits) != tc.size*tc.size {
				t.Fatalf("mask size %d with %d cells", m.Size, len(m.Bits))
			}
			if n := m.Count(); n != 0 {
				t.Errorf("%d glyph cells, want 0", n)
			}
		})
	}

	if m := NewBuilder(boxFace{}).Build(0, "A"); m.Size != 0 || len(m.Bits) != 0 {
		t.Errorf("zero size mask: %+v", m)
	}
}

func loadGoBold(t *testing.T) Face {
	t.Helper()
	face, err := EmbeddedProvider{}.Load()
	if err != nil {
		t.Fatal(err)
	}
	return face
}

func TestBuildLetterA(t *testing.T) {
	const size = 500
	m := NewBuilder(loadGoBold(t)).Build(size, "A")

	for _, c := range corners(m) {
		if m.At(c[0], c[1]) {
			t.Errorf("corner %v is part of the glyph", c)
		}
	}

	e := extent(m)
	if e.Empty() {
		t.Fatal("empty mask")
	}
	long := max(e.Dx(), e.Dy())
	if long < 270 || long > 310 {
		t.Errorf("glyph extent %v, longer side %d, want about 292", e, long)
	}
	cx := float64(e.Min.X+e.Max.X) / 2
	cy := float64(e.Min.Y+e.Max.Y) / 2
	if math.Abs(cx-size/2) > 3 || math.Abs(cy-size/2) > 3 {
		t.Errorf("glyph centred at (%g, %g)", cx, cy)
	}

	// the apex of the A is in the top half, its feet in the bottom half
	if !m.At(e.Max.Y-2, e.Min.X+2) || !m.At(e.Max.Y-2, e.Max.X-3) {
		t.Error("feet of the A are missing")
	}
	if m.At(e.Min.Y+1, e.Min.X+1) {
		t.Error("top left of the bounding box should be empty")
	}
}

// TestBuildCentreStem checks that a centred glyph covers the mask centre.
// "I" is used because the centre of a bold "A" may fall into its counter;
// TestBuildLetterA checks the placement and extent of "A" instead.
func TestBuildCentreStem(t *testing.T) {
	m := NewBuilder(loadGoBold(t)).Build(300, "I")
	if !m.At(150, 150) {
		t.Error("centre of I is not part of the glyph")
	}
}

func TestBuildDeterministic(t *testing.T) {
	b := NewBuilder(loadGoBold(t))
	m1 := b.Build(200, "12")
	m2 := b.Build(200, "12")
	if !m1.Equal(m2) {
		t.Error("building the same mask twice gave different results")
	}
	if m1.Equal(b.Build(200, "13")) {
		t.Error("different text gave the same mask")
	}
}

func TestBuildBitmapFallback(t *testing.T) {
	m := NewBuilder(NewBitmapFace()).Build(200, "7")
	if m.Count() == 0 {
		t.Fatal("bitmap face produced an empty mask")
	}
	for _, c := range corners(m) {
		if m.At(c[0], c[1]) {
			t.Errorf("corner %v is part of the glyph", c)
		}
	}
}

type failingProvider struct{ err error }

func (p failingProvider) Name() string        { return "failing" }
func (p failingProvider) Load() (Face, error) { return nil, p.err }

func TestLoadFace(t *testing.T) {
	missing := FileProvider{Path: filepath.Join(t.TempDir(), "missing.ttf")}

	face := LoadFace(nil, missing, EmbeddedProvider{})
	if face.Name() != "Go Bold" {
		t.Errorf("got face %q, want Go Bold", face.Name())
	}

	face = LoadFace(nil, missing, failingProvider{ErrFaceUnavailable})
	if _, ok := face.(*BitmapFace); !ok {
		t.Errorf("got %T, want the bitmap fallback", face)
	}

	face = LoadFace(nil)
	if _, ok := face.(*BitmapFace); !ok {
		t.Errorf("empty chain: got %T, want the bitmap fallback", face)
	}
}

func TestFileProvider(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.ttf")
	if err := os.WriteFile(garbage, []byte("not a font"), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, p := range []FileProvider{{Path: garbage}, {Path: filepath.Join(dir, "none.ttf")}} {
		if _, err := p.Load(); !errors.Is(err, ErrFaceUnavailable) {
			t.Errorf("%s: err = %v, want ErrFaceUnavailable", p.Path, err)
		}
	}
}

func TestMaskAt(t *testing.T) {
	m := NewMask(3)
	m.Bits[4] = true
	if !m.At(1, 1) {
		t.Error("centre cell not set")
	}
	for _, c := range [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 3}} {
		if m.At(c[0], c[1]) {
			t.Errorf("out of range cell %v reported as glyph", c)
		}
	}
	img := m.Image()
	if img.GrayAt(1, 1).Y != 0 || img.GrayAt(0, 0).Y != 0xff {
		t.Error("mask image has wrong colours")
	}
}
