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
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

var batchCommand = &cli.Command{
	Name:  "batch",
	Usage: "render every [plate.<name>] section of the configuration file",
	Flags: []cli.Flag{
		&cli.IntFlag{Name: "jobs", Aliases: []string{"j"}, Value: 4, Usage: "number of plates rendered concurrently"},
		&cli.StringFlag{Name: "dir", Aliases: []string{"d"}, Value: ".", Usage: "output directory"},
	},
	Action: func(c *cli.Context) error {
		jobs, err := conf.jobs()
		if err != nil {
			return err
		}
		if len(jobs) == 0 {
			return cli.Exit("no [plate.<name>] sections in the configuration file", 1)
		}

		dir := c.String("dir")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}

		w := &syncWriter{w: c.App.Writer}
		g, ctx := errgroup.WithContext(c.Context)
		g.SetLimit(max(c.Int("jobs"), 1))
		for _, j := range jobs {
			format := j.Format
			if format == "" {
				format = "png"
			}
			out := filepath.Join(dir, safeName(j.Name)+"."+format)
			g.Go(func() error {
				if err := renderOne(ctx, w, j.Request, format, out); err != nil {
					return fmt.Errorf("%s: %w", j.Name, err)
				}
				return nil
			})
		}
		return g.Wait()
	},
}

// syncWriter serializes writes from concurrent jobs.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
