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

package canvas

import (
	"bytes"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/tiff"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"github.com/NicoRio42/map-generator/render"
)

func horizontal(y float64) []vec.Vec2 {
	return []vec.Vec2{{X: 0, Y: y}, {X: 20, Y: y}}
}

func TestDrawPolyline(t *testing.T) {
	c := New(20, 10)
	c.SetStrokeColor(render.Brown)
	c.SetStrokeWidth(2)
	c.DrawPolyline(horizontal(5))

	for _, y := range []int{4, 5} {
		if got := c.Image.RGBAAt(10, y); got != render.Brown {
			t.Errorf("pixel (10,%d) = %v, want %v", y, got, render.Brown)
		}
	}
	for _, y := range []int{0, 2, 7, 9} {
		if got := c.Image.RGBAAt(10, y); got != (color.RGBA{}) {
			t.Errorf("pixel (10,%d) = %v, want transparent", y, got)
		}
	}
}

func TestSourceOver(t *testing.T) {
	c := New(20, 10)
	c.SetStrokeColor(color.RGBA{A: 128})
	c.SetStrokeWidth(2)
	c.DrawPolyline(horizontal(5))
	first := c.Image.RGBAAt(10, 5).A
	c.DrawPolyline(horizontal(5))
	second := c.Image.RGBAAt(10, 5).A

	if first != 128 {
		t.Errorf("after one stroke: alpha %d, want 128", first)
	}
	if second < 190 || second > 194 {
		t.Errorf("after two strokes: alpha %d, want about 192", second)
	}
}

func TestDashedCurve(t *testing.T) {
	c := New(40, 10)
	c.SetStrokeWidth(1)
	c.SetDash(4, 4)
	c.DrawSmoothedCurve([]vec.Vec2{{X: 0, Y: 5.5}, {X: 20, Y: 5.5}, {X: 40, Y: 5.5}})

	if c.Image.RGBAAt(1, 5).A != 255 {
		t.Error("first dash not drawn")
	}
	if c.Image.RGBAAt(6, 5).A != 0 {
		t.Error("first gap drawn")
	}

	c.ClearDash()
	c.DrawPolyline([]vec.Vec2{{X: 0, Y: 2.5}, {X: 40, Y: 2.5}})
	if c.Image.RGBAAt(6, 2).A != 255 {
		t.Error("solid line after ClearDash has a gap")
	}
}

func TestDegenerateInput(t *testing.T) {
	c := New(10, 10)
	c.SetLineCap(graphics.LineCapRound)
	c.SetStrokeWidth(4)
	c.DrawPolyline([]vec.Vec2{{X: 5, Y: 5}})
	c.DrawSmoothedCurve(nil)

	for i, v := range c.Image.Pix {
		if v != 0 {
			t.Fatalf("byte %d set by a degenerate stroke", i)
		}
	}
}

func TestEncode(t *testing.T) {
	c := New(16, 8)
	c.SetStrokeColor(render.Brown)
	c.SetStrokeWidth(2)
	c.DrawPolyline([]vec.Vec2{{X: 0, Y: 4}, {X: 16, Y: 4}})

	var buf bytes.Buffer
	if err := c.Encode(&buf, PNG); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds() != c.Image.Bounds() {
		t.Errorf("png bounds %v, want %v", img.Bounds(), c.Image.Bounds())
	}

	buf.Reset()
	if err := c.Encode(&buf, TIFF); err != nil {
		t.Fatal(err)
	}
	img, err = tiff.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, _, a := img.At(8, 4).RGBA(); a != 0xffff {
		t.Errorf("tiff pixel alpha %#x, want opaque", a)
	}

	if err := c.Encode(&buf, Format("bmp")); err == nil {
		t.Error("expected an error for an unknown format")
	}
}

func TestSave(t *testing.T) {
	c := New(4, 4)
	name := filepath.Join(t.TempDir(), "contours.png")
	if err := c.SavePNG(name); err != nil {
		t.Fatal(err)
	}
	if fi, err := os.Stat(name); err != nil || fi.Size() == 0 {
		t.Errorf("no image written: %v", err)
	}

	if err := c.SavePNG(filepath.Join(t.TempDir(), "missing", "x.png")); err == nil {
		t.Error("expected an error for a missing directory")
	}
}

func TestParseFormat(t *testing.T) {
	for name, want := range map[string]Format{"png": PNG, "tiff": TIFF, "tif": TIFF} {
		if got, err := ParseFormat(name); err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v", name, got, err)
		}
	}
	if _, err := ParseFormat("jpeg"); err == nil {
		t.Error("expected an error for jpeg")
	}
}
