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

// Package pdfcanvas implements a vector [render.Surface] that writes a
// single page PDF file.
//
// Drawing coordinates are device pixels, as for the raster canvas.  The
// page has the physical size of the raster image at the given resolution,
// so that the PDF can be printed at map scale.
package pdfcanvas

import (
	"image/color"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics"
	pdfcolor "seehuhn.de/go/pdf/graphics/color"

	"github.com/NicoRio42/map-generator/render"
)

var _ render.Surface = (*Canvas)(nil)

// pointsPerInch is the PDF unit of length.
const pointsPerInch = 72

// Canvas draws onto one PDF page.  Close must be called to write the file.
type Canvas struct {
	page *document.Page
}

// Create starts a PDF file for a width×height pixel image at dpi.
func Create(name string, width, height int, dpi float64) (*Canvas, error) {
	s := pointsPerInch / dpi
	paper := &pdf.Rectangle{
		URx: float64(width) * s,
		URy: float64(height) * s,
	}

	page, err := document.CreateSinglePage(name, paper, pdf.V1_7, nil)
	if err != nil {
		return nil, err
	}

	// PDF origin is bottom-left and one unit is a point; drawing
	// coordinates are top-left pixels.
	page.Transform(matrix.Matrix{s, 0, 0, -s, 0, paper.URy})
	page.SetLineJoin(graphics.LineJoinRound)

	return &Canvas{page: page}, nil
}

// Close finishes the page and writes the file.
func (c *Canvas) Close() error {
	return c.page.Close()
}

// SetStrokeColor sets the colour of subsequent strokes.
func (c *Canvas) SetStrokeColor(col color.Color) {
	n := color.NRGBAModel.Convert(col).(color.NRGBA)
	c.page.SetStrokeColor(pdfcolor.DeviceRGB{
		float64(n.R) / 255,
		float64(n.G) / 255,
		float64(n.B) / 255,
	})
}

// SetStrokeWidth sets the line width in device pixels.  The page
// transformation scales it to points.
func (c *Canvas) SetStrokeWidth(w float64) {
	c.page.SetLineWidth(w)
}

// SetLineCap sets the shape of open line ends.
func (c *Canvas) SetLineCap(style graphics.LineCapStyle) {
	c.page.SetLineCap(style)
}

// SetDash makes subsequent strokes dashed, restarting the pattern at
// the start of every stroke.
func (c *Canvas) SetDash(length, gap float64) {
	c.page.SetLineDash([]float64{length, gap}, 0)
}

// ClearDash makes subsequent strokes solid.
func (c *Canvas) ClearDash() {
	c.page.SetLineDash(nil, 0)
}

// DrawPolyline strokes the straight segments through pts.
func (c *Canvas) DrawPolyline(pts []vec.Vec2) {
	if len(pts) < 2 {
		return
	}
	c.stroke(render.PolylinePath(pts))
}

// DrawSmoothedCurve strokes a smooth curve through pts as cubic
// Bézier segments.
func (c *Canvas) DrawSmoothedCurve(pts []vec.Vec2) {
	if len(pts) < 2 {
		return
	}
	c.stroke(render.SmoothPath(pts))
}

func (c *Canvas) stroke(p path.Path) {
	for cmd, pts := range p.ToCubic() {
		switch cmd {
		case path.CmdMoveTo:
			c.page.MoveTo(pts[0].X, pts[0].Y)
		case path.CmdLineTo:
			c.page.LineTo(pts[0].X, pts[0].Y)
		case path.CmdCubeTo:
			c.page.CurveTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y)
		case path.CmdClose:
			c.page.ClosePath()
		}
	}
	c.page.Stroke()
}
