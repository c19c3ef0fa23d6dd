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
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/image/font/gofont/gobold"
)

// ErrFaceUnavailable is returned by a [Provider] which cannot supply a face.
var ErrFaceUnavailable = errors.New("font face unavailable")

// Provider supplies a [Face], typically by loading a font file.
type Provider interface {
	Name() string
	Load() (Face, error)
}

// FileProvider loads a TrueType or OpenType font from the file system.
type FileProvider struct {
	Path string
}

// Name implements the [Provider] interface.
func (p FileProvider) Name() string {
	return p.Path
}

// Load implements the [Provider] interface.
func (p FileProvider) Load() (Face, error) {
	data, err := os.ReadFile(p.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFaceUnavailable, err)
	}
	face, err := NewOutlineFace(filepath.Base(p.Path), data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFaceUnavailable, err)
	}
	return face, nil
}

// EmbeddedProvider supplies the Go Bold font compiled into the binary.
type EmbeddedProvider struct{}

// Name implements the [Provider] interface.
func (EmbeddedProvider) Name() string {
	return "Go Bold (embedded)"
}

// Load implements the [Provider] interface.
func (EmbeddedProvider) Load() (Face, error) {
	face, err := NewOutlineFace("Go Bold", gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFaceUnavailable, err)
	}
	return face, nil
}

// Well-known font locations, tried in this order by [DefaultProviders].
const (
	BundledFontPath = "fonts/arial.ttf"
	SystemFontPath  = "/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf"
)

// DefaultProviders returns the standard provider chain: a font bundled
// with the application, a common system font, and the embedded Go Bold.
func DefaultProviders() []Provider {
	return []Provider{
		FileProvider{Path: BundledFontPath},
		FileProvider{Path: SystemFontPath},
		EmbeddedProvider{},
	}
}

// LoadFace returns the face of the first provider which succeeds.  If all
// providers fail, the built-in [BitmapFace] is returned.  LoadFace never
// fails.  Missing font files are logged at debug level, other provider
// errors at warning level.
func LoadFace(logger *slog.Logger, providers ...Provider) Face {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	for _, p := range providers {
		face, err := p.Load()
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug("font not found", "provider", p.Name())
			continue
		} else if err != nil {
			logger.Warn("font provider failed", "provider", p.Name(), "error", err)
			continue
		}
		logger.Debug("font loaded", "provider", p.Name(), "face", face.Name())
		return face
	}

	face := NewBitmapFace()
	logger.Warn("no scalable font available, using built-in bitmap font",
		"face", face.Name())
	return face
}
