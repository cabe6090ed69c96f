// map-generator - contour layers for orienteering maps
// Copyright (C) 2026  The map-generator authors
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

// Package tile splits a map extent into tiles and renders the contour
// layer of each tile.
//
// Every tile has its own directory holding its contour dataset and the
// rendered layers.  Tiles share no state, so any number of them can be
// rendered in parallel.
package tile

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"github.com/paulmach/orb"

	"github.com/NicoRio42/map-generator/render"
)

// Default tile geometry, in map units.
const (
	DefaultSize   = 1000
	DefaultBuffer = 200
)

// Tile is a square part of the map.  The contour layer of a tile covers
// the tile plus a buffer on every side, so that lines crossing the tile
// border are drawn identically in neighbouring tiles.
type Tile struct {
	MinX, MinY, MaxX, MaxY float64
	Buffer                 float64

	// Dir is the directory holding the tile's input and output files.
	Dir string
}

// Name identifies the tile by its top left corner.
func (t Tile) Name() string {
	return fmt.Sprintf("%07d_%07d", int64(t.MinX), int64(t.MaxY))
}

// Bound returns the area covered by the tile's layers, buffer included.
func (t Tile) Bound() orb.Bound {
	b := orb.Bound{
		Min: orb.Point{t.MinX, t.MinY},
		Max: orb.Point{t.MaxX, t.MaxY},
	}
	return b.Pad(t.Buffer)
}

// ImageSize returns the pixel size of the tile's layers at dpi.
func (t Tile) ImageSize(dpi float64) (width, height int) {
	b := t.Bound()
	width = int((b.Max[0] - b.Min[0]) * dpi / render.Inch)
	height = int((b.Max[1] - b.Min[1]) * dpi / render.Inch)
	return width, height
}

// Grid covers extent with tiles of the given size, aligned to multiples
// of size.  Tile directories are created below outDir by the caller.
func Grid(extent orb.Bound, size, buffer float64, outDir string) []Tile {
	if !(size > 0) || extent.IsEmpty() {
		return nil
	}

	x0 := math.Floor(extent.Min[0]/size) * size
	y0 := math.Floor(extent.Min[1]/size) * size

	var res []Tile
	for x := x0; x < extent.Max[0]; x += size {
		for y := y0; y < extent.Max[1]; y += size {
			t := Tile{
				MinX:   x,
				MinY:   y,
				MaxX:   x + size,
				MaxY:   y + size,
				Buffer: buffer,
			}
			t.Dir = filepath.Join(outDir, t.Name())
			res = append(res, t)
		}
	}
	return res
}

// Discover returns the tiles whose directories already exist in outDir.
// Tile directories are recognized by their name; other entries are
// ignored.
func Discover(outDir string, size, buffer float64) ([]Tile, error) {
	entries, err := os.ReadDir(outDir)
	if err != nil {
		return nil, err
	}

	var res []Tile
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		xs, ys, ok := strings.Cut(e.Name(), "_")
		if !ok {
			continue
		}
		minX, err := strconv.ParseInt(xs, 10, 64)
		if err != nil {
			continue
		}
		maxY, err := strconv.ParseInt(ys, 10, 64)
		if err != nil {
			continue
		}
		t := Tile{
			MinX:   float64(minX),
			MinY:   float64(maxY) - size,
			MaxX:   float64(minX) + size,
			MaxY:   float64(maxY),
			Buffer: buffer,
			Dir:    filepath.Join(outDir, e.Name()),
		}
		if t.Name() != e.Name() {
			continue
		}
		res = append(res, t)
	}
	return res, nil
}

// Run calls job for every tile, using the given number of goroutines
// (runtime.NumCPU() if workers < 1).  The returned slice holds the
// failures, in tile order.
func Run(tiles []Tile, workers int, job func(Tile) error) []error {
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	errs := make([]error, len(tiles))
	jobs := make(chan int, 100)

	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			for i := range jobs {
				if err := job(tiles[i]); err != nil {
					errs[i] = fmt.Errorf("tile %s: %w", tiles[i].Name(), err)
				}
			}
		}()
	}

	for i := range tiles {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	var res []error
	for _, err := range errs {
		if err != nil {
			res = append(res, err)
		}
	}
	return res
}
