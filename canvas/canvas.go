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

// Package canvas implements a raster [render.Surface] on top of an
// [image.RGBA].
package canvas

import (
	"image"
	"image/color"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"github.com/NicoRio42/map-generator/raster"
	"github.com/NicoRio42/map-generator/render"
)

var _ render.Surface = (*Canvas)(nil)

// Canvas is a transparent image that strokes are composited onto.
// A Canvas is not safe for concurrent use.
type Canvas struct {
	Image *image.RGBA

	r     *raster.Rasterizer
	color color.RGBA // premultiplied
}

// New returns a transparent canvas of the given size.
func New(width, height int) *Canvas {
	clip := rect.Rect{URx: float64(width), URy: float64(height)}
	return &Canvas{
		Image: image.NewRGBA(image.Rect(0, 0, width, height)),
		r:     raster.NewRasterizer(clip),
		color: color.RGBA{A: 255},
	}
}

// Width returns the width of the canvas in pixels.
func (c *Canvas) Width() int { return c.Image.Rect.Dx() }

// Height returns the height of the canvas in pixels.
func (c *Canvas) Height() int { return c.Image.Rect.Dy() }

// SetStrokeColor sets the colour of subsequent strokes.
func (c *Canvas) SetStrokeColor(col color.Color) {
	c.color = color.RGBAModel.Convert(col).(color.RGBA)
}

// SetStrokeWidth sets the line width in device pixels.
func (c *Canvas) SetStrokeWidth(w float64) {
	c.r.Width = w
}

// SetLineCap sets the shape of open line ends.
func (c *Canvas) SetLineCap(style graphics.LineCapStyle) {
	c.r.Cap = style
}

// SetDash makes subsequent strokes dashed, restarting the pattern at
// the start of every stroke.
func (c *Canvas) SetDash(length, gap float64) {
	c.r.Dash = []float64{length, gap}
	c.r.DashPhase = 0
}

// ClearDash makes subsequent strokes solid.
func (c *Canvas) ClearDash() {
	c.r.Dash = nil
}

// DrawPolyline strokes the straight segments through pts.
func (c *Canvas) DrawPolyline(pts []vec.Vec2) {
	if len(pts) < 2 {
		return
	}
	c.stroke(render.PolylinePath(pts))
}

// DrawSmoothedCurve strokes a smooth curve through pts.
func (c *Canvas) DrawSmoothedCurve(pts []vec.Vec2) {
	if len(pts) < 2 {
		return
	}
	c.stroke(render.SmoothPath(pts))
}

func (c *Canvas) stroke(p path.Path) {
	c.r.Stroke(p, c.composite)
}

// composite paints the current colour over one row of pixels, scaled by
// coverage (Porter-Duff source over, premultiplied alpha).
func (c *Canvas) composite(y, xMin int, coverage []float32) {
	img := c.Image
	off := img.PixOffset(xMin, y)
	pix := img.Pix[off : off+4*len(coverage)]

	sr, sg, sb, sa := float32(c.color.R), float32(c.color.G), float32(c.color.B), float32(c.color.A)
	for i, cov := range coverage {
		if cov <= 0 {
			continue
		}
		k := 1 - sa*cov/255
		p := pix[4*i : 4*i+4 : 4*i+4]
		p[0] = uint8(sr*cov + float32(p[0])*k + 0.5)
		p[1] = uint8(sg*cov + float32(p[1])*k + 0.5)
		p[2] = uint8(sb*cov + float32(p[2])*k + 0.5)
		p[3] = uint8(sa*cov + float32(p[3])*k + 0.5)
	}
}
