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

package presets

import (
	"context"
	"regexp"
	"testing"

	"seehuhn.de/go/ishihara"
	"seehuhn.de/go/ishihara/glyph"
)

var validName = regexp.MustCompile(`^[a-z0-9_]+$`)

func TestPresetsValid(t *testing.T) {
	seen := make(map[string]bool)
	for category, list := range All {
		for _, p := range list {
			full := category + "/" + p.Name
			if !validName.MatchString(p.Name) {
				t.Errorf("%s: invalid name", full)
			}
			if seen[full] {
				t.Errorf("%s: duplicate", full)
			}
			seen[full] = true
			if err := p.Request.Validate(); err != nil {
				t.Errorf("%s: %v", full, err)
			}
		}
	}
}

func TestLookup(t *testing.T) {
	p, err := Lookup("numbers/twelve")
	if err != nil {
		t.Fatal(err)
	}
	if p.Request.Content != "12" {
		t.Errorf("content %q, want \"12\"", p.Request.Content)
	}

	for _, name := range []string{"twelve", "numbers/none", "nope/twelve", ""} {
		if _, err := Lookup(name); err == nil {
			t.Errorf("Lookup(%q) succeeded", name)
		}
	}

	names := Names()
	if len(names) != len(numberPresets)+len(letterPresets)+len(stressPresets) {
		t.Errorf("Names returned %d entries", len(names))
	}
	for _, name := range names {
		if _, err := Lookup(name); err != nil {
			t.Error(err)
		}
	}
}

func TestStressRender(t *testing.T) {
	face := glyph.NewBitmapFace()
	for _, p := range stressPresets {
		t.Run(p.Name, func(t *testing.T) {
			req := p.Request
			seed := uint64(1)
			req.Seed = &seed
			_, err := ishihara.Render(context.Background(), req, ishihara.WithFace(face))
			if err != nil {
				t.Fatal(err)
			}
		})
	}
}
