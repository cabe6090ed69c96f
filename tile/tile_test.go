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

package tile

import (
	"bytes"
	"errors"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync/atomic"
	"testing"

	"github.com/paulmach/orb"

	"github.com/NicoRio42/map-generator/config"
	"github.com/NicoRio42/map-generator/contour"
	"github.com/NicoRio42/map-generator/dataset"
)

func TestGrid(t *testing.T) {
	extent := orb.Bound{Min: orb.Point{600500, 5200100}, Max: orb.Point{602000, 5201000}}
	tiles := Grid(extent, 1000, 200, "out")

	var names []string
	for _, tl := range tiles {
		names = append(names, tl.Name())
		if tl.Buffer != 200 || tl.MaxX-tl.MinX != 1000 || tl.MaxY-tl.MinY != 1000 {
			t.Errorf("tile %s has wrong geometry: %+v", tl.Name(), tl)
		}
		if tl.Dir != filepath.Join("out", tl.Name()) {
			t.Errorf("tile %s has directory %s", tl.Name(), tl.Dir)
		}
	}
	want := []string{"0600000_5201000", "0601000_5201000"}
	if !slices.Equal(names, want) {
		t.Errorf("got tiles %v, want %v", names, want)
	}

	if got := Grid(extent, 0, 200, "out"); got != nil {
		t.Errorf("zero tile size gave %d tiles", len(got))
	}
}

func TestBoundAndImageSize(t *testing.T) {
	tl := Tile{MinX: 1000, MinY: 2000, MaxX: 2000, MaxY: 3000, Buffer: 200}

	b := tl.Bound()
	if b.Min != (orb.Point{800, 1800}) || b.Max != (orb.Point{2200, 3200}) {
		t.Errorf("got bound %v", b)
	}

	w, h := tl.ImageSize(254)
	if w != 1400 || h != 1400 {
		t.Errorf("at 254 dpi: got %dx%d, want 1400x1400", w, h)
	}
	w, h = tl.ImageSize(600)
	if w != 3307 || h != 3307 {
		t.Errorf("at 600 dpi: got %dx%d, want 3307x3307", w, h)
	}
}

func TestRun(t *testing.T) {
	tiles := Grid(orb.Bound{Max: orb.Point{5000, 2000}}, 1000, 0, "")
	if len(tiles) != 10 {
		t.Fatalf("got %d tiles, want 10", len(tiles))
	}

	errBroken := errors.New("broken")
	var calls atomic.Int32
	errs := Run(tiles, 3, func(tl Tile) error {
		calls.Add(1)
		if tl.MinX == 2000 && tl.MinY == 1000 {
			return errBroken
		}
		return nil
	})

	if calls.Load() != 10 {
		t.Errorf("job ran %d times, want 10", calls.Load())
	}
	if len(errs) != 1 || !errors.Is(errs[0], errBroken) {
		t.Errorf("got errors %v", errs)
	}
}

// writeTile creates a 100×100 tile at the origin whose dataset has one
// contour of every tier.  The form line at 7.5 has no neighbour below and
// is therefore drawn whole.
func writeTile(t *testing.T) Tile {
	t.Helper()

	tl := Tile{MaxX: 100, MaxY: 100, Buffer: 20, Dir: t.TempDir()}
	contours := []contour.Contour{
		{Elevation: 25, Line: contour.Polyline{{0, 50}, {50, 50}, {100, 50}}},
		{Elevation: 10, Line: contour.Polyline{{0, 20}, {50, 20}, {100, 20}}},
		{Elevation: 7.5, Line: contour.Polyline{{0, 80}, {50, 80}, {100, 80}}},
		{Elevation: 10, Line: contour.Polyline{{0, 0}}},
	}
	if err := dataset.WriteGeoJSON(filepath.Join(tl.Dir, "contours.geojson"), contours); err != nil {
		t.Fatal(err)
	}
	return tl
}

func testLayer() ContourLayer {
	cfg := config.Default()
	cfg.DPIResolution = 254
	return ContourLayer{
		Config: cfg,
		Log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestContourLayer(t *testing.T) {
	tl := writeTile(t)
	l := testLayer()
	l.Config.Output.Formats = []string{"png", "tiff"}
	l.Config.Output.DumpSegments = true

	res, err := l.Render(tl)
	if err != nil {
		t.Fatal(err)
	}
	if res.Master != 1 || res.Normal != 1 || res.Form != 1 || res.Segments != 1 || res.Skipped != 1 {
		t.Errorf("unexpected stats %+v", res.Stats)
	}

	data, err := os.ReadFile(filepath.Join(tl.Dir, "contours.png"))
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 140 || b.Dy() != 140 {
		t.Fatalf("image is %dx%d, want 140x140", b.Dx(), b.Dy())
	}

	// The master contour at y=50 lies on pixel row 140-70.
	if _, _, _, a := img.At(70, 70).RGBA(); a == 0 {
		t.Error("master contour not drawn")
	}
	if _, _, _, a := img.At(70, 5).RGBA(); a != 0 {
		t.Error("pixel outside every contour is painted")
	}

	if _, err := os.Stat(filepath.Join(tl.Dir, "contours.tiff")); err != nil {
		t.Error(err)
	}

	dump, err := dataset.Load(filepath.Join(tl.Dir, FormLinesName))
	if err != nil {
		t.Fatal(err)
	}
	if len(dump) != 1 || dump[0].Elevation != 7.5 || len(dump[0].Line) != 3 {
		t.Errorf("unexpected form line dump %v", dump)
	}
}

func TestContourLayerPDF(t *testing.T) {
	tl := writeTile(t)
	l := testLayer()
	l.Config.Output.Formats = nil
	l.Config.Output.PDF = true

	if _, err := l.Render(tl); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(tl.Dir, "contours.pdf"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("output is not a PDF file")
	}
	if _, err := os.Stat(filepath.Join(tl.Dir, "contours.png")); !errors.Is(err, os.ErrNotExist) {
		t.Error("raster output written although no format is configured")
	}
}

func TestContourLayerMissingDataset(t *testing.T) {
	tl := Tile{MaxX: 100, MaxY: 100, Dir: t.TempDir()}
	if _, err := testLayer().Render(tl); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("got error %v, want a missing file", err)
	}
}

func TestContourLayerBadDataset(t *testing.T) {
	tl := Tile{MaxX: 100, MaxY: 100, Dir: t.TempDir()}
	data := `{"type":"FeatureCollection","features":[{"type":"Feature","properties":{},` +
		`"geometry":{"type":"LineString","coordinates":[[0,0],[1,1]]}}]}`
	if err := os.WriteFile(filepath.Join(tl.Dir, "contours.geojson"), []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := testLayer().Render(tl); !errors.Is(err, dataset.ErrMissingElevation) {
		t.Errorf("got error %v, want a missing elevation", err)
	}
}

func TestDiscover(t *testing.T) {
	out := t.TempDir()
	for _, name := range []string{"0600000_5201000", "0601000_5202000", "600000_5201000", "notes", "0600000_5201000_old"} {
		if err := os.Mkdir(filepath.Join(out, name), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(out, "0602000_5201000"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	tiles, err := Discover(out, 1000, 200)
	if err != nil {
		t.Fatal(err)
	}
	want := []Tile{
		{MinX: 600000, MinY: 5200000, MaxX: 601000, MaxY: 5201000, Buffer: 200, Dir: filepath.Join(out, "0600000_5201000")},
		{MinX: 601000, MinY: 5201000, MaxX: 602000, MaxY: 5202000, Buffer: 200, Dir: filepath.Join(out, "0601000_5202000")},
	}
	if !slices.Equal(tiles, want) {
		t.Errorf("got %+v, want %+v", tiles, want)
	}

	if _, err := Discover(filepath.Join(out, "missing"), 1000, 200); err == nil {
		t.Error("expected an error for a missing directory")
	}
}
