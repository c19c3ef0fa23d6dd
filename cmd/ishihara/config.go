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

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/ini.v1"

	"seehuhn.de/go/ishihara"
)

const (
	defaultConfigFile = "ishihara.ini"

	// plateSection holds defaults; its child sections "plate.<name>"
	// describe batch jobs.
	plateSection = "plate"
)

// Colours are written as "#rrggbb", so "#" cannot start inline comments.
var loadOptions = ini.LoadOptions{IgnoreInlineComment: true}

type config struct {
	file *ini.File
}

// loadConfig reads the configuration file.  A missing file is only an
// error if its name was given explicitly.
func loadConfig(fname string, explicit bool) (*config, error) {
	f, err := ini.LoadSources(loadOptions, fname)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return &config{file: ini.Empty(loadOptions)}, nil
	} else if err != nil {
		return nil, fmt.Errorf("config %s: %w", fname, err)
	}
	return &config{file: f}, nil
}

// job is one plate of a batch run.
type job struct {
	Name    string
	Format  string
	Request ishihara.Request
}

// defaults returns the request described by the [plate] section, on top of
// the built-in defaults.
func (c *config) defaults() (ishihara.Request, string, error) {
	req := ishihara.DefaultRequest()
	format, err := applySection(&req, c.file.Section(plateSection))
	if err != nil {
		return req, "", err
	}
	return req, format, nil
}

// jobs returns one job per [plate.<name>] section, in file order.  Keys
// missing from a job fall back to the [plate] section.
func (c *config) jobs() ([]job, error) {
	var res []job
	for _, sec := range c.file.ChildSections(plateSection) {
		req, format, err := c.defaults()
		if err != nil {
			return nil, err
		}
		f, err := applySection(&req, sec)
		if err != nil {
			return nil, err
		}
		if f != "" {
			format = f
		}
		res = append(res, job{
			Name:    strings.TrimPrefix(sec.Name(), plateSection+"."),
			Format:  format,
			Request: req,
		})
	}
	return res, nil
}

// applySection overrides the fields of req which are set in sec.  It
// returns the output format, if one is given.
func applySection(req *ishihara.Request, sec *ini.Section) (string, error) {
	wrap := func(key string, err error) error {
		return fmt.Errorf("[%s] %s: %w", sec.Name(), key, err)
	}

	var err error
	if sec.HasKey("size") {
		if req.Size, err = sec.Key("size").Int(); err != nil {
			return "", wrap("size", err)
		}
	}
	if sec.HasKey("text") {
		req.Content = sec.Key("text").String()
	}
	if sec.HasKey("dots") {
		if req.NumDots, err = sec.Key("dots").Int(); err != nil {
			return "", wrap("dots", err)
		}
	}
	if sec.HasKey("min_radius") {
		if req.RadiusMin, err = sec.Key("min_radius").Float64(); err != nil {
			return "", wrap("min_radius", err)
		}
	}
	if sec.HasKey("max_radius") {
		if req.RadiusMax, err = sec.Key("max_radius").Float64(); err != nil {
			return "", wrap("max_radius", err)
		}
	}
	if sec.HasKey("spacing") {
		if req.Spacing, err = sec.Key("spacing").Float64(); err != nil {
			return "", wrap("spacing", err)
		}
	}
	if sec.HasKey("seed") {
		seed, err := sec.Key("seed").Uint64()
		if err != nil {
			return "", wrap("seed", err)
		}
		req.Seed = &seed
	}
	if sec.HasKey("number_colors") {
		if req.NumberPalette, err = parsePalette(sec.Key("number_colors").Strings(",")); err != nil {
			return "", wrap("number_colors", err)
		}
	}
	if sec.HasKey("background_colors") {
		if req.BackgroundPalette, err = parsePalette(sec.Key("background_colors").Strings(",")); err != nil {
			return "", wrap("background_colors", err)
		}
	}
	if sec.HasKey("keep_margin") {
		if req.KeepMargin, err = sec.Key("keep_margin").Bool(); err != nil {
			return "", wrap("keep_margin", err)
		}
	}
	if sec.HasKey("invert") {
		if req.Invert, err = sec.Key("invert").Bool(); err != nil {
			return "", wrap("invert", err)
		}
	}

	var format string
	if sec.HasKey("format") {
		format = sec.Key("format").In("", []string{"png", "pdf"})
		if format == "" {
			return "", wrap("format", fmt.Errorf("unsupported format %q", sec.Key("format").String()))
		}
	}
	return format, nil
}

func parsePalette(hex []string) ([]ishihara.Color, error) {
	res := make([]ishihara.Color, 0, len(hex))
	for _, h := range hex {
		c, err := ishihara.ParseHex(h)
		if err != nil {
			return nil, err
		}
		res = append(res, c)
	}
	return res, nil
}
