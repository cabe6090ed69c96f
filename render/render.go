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

// Package render draws classified contours onto a [Surface].
//
// Master and normal contours are drawn whole as smooth curves.  Form lines
// are first reduced to their meaningful parts by a [contour.Selector] and
// then drawn dashed.  Map coordinates are converted to device pixels by a
// [Transform]; stroke widths and dash lengths are given in millimetres on
// paper and scaled with the output resolution.
package render

import (
	"github.com/NicoRio42/map-generator/contour"
	"seehuhn.de/go/pdf/graphics"
)

// Renderer draws the contours of one tile.
// A Renderer must not be shared between tiles that render concurrently.
type Renderer struct {
	Surface   Surface
	Transform Transform
	DPI       float64
	Styles    Styles
	Selector  contour.Selector

	// Workers is the number of goroutines used for form line selection.
	// If this is zero, runtime.NumCPU() goroutines are used.
	Workers int
}

// NewRenderer returns a renderer with the default styles, intervals and
// form line options.
func NewRenderer(s Surface, t Transform, dpi float64) *Renderer {
	return &Renderer{
		Surface:   s,
		Transform: t,
		DPI:       dpi,
		Styles:    DefaultStyles(),
		Selector:  contour.NewSelector(),
	}
}

// Stats counts what a call to Render drew.
type Stats struct {
	Master, Normal, Form int // contours with at least two points, per tier
	Segments             int // form line segments drawn
	Skipped              int // contours with fewer than two points
}

// Result is the outcome of Render.
type Result struct {
	Stats

	// FormLines holds the form line segments that were drawn, each with the
	// elevation of its form contour.
	FormLines []contour.Contour
}

// Render draws all contours in their input order.
func (r *Renderer) Render(contours []contour.Contour) Result {
	var res Result

	selected := r.Selector.SelectAll(contours, r.Workers)
	r.Surface.SetLineCap(graphics.LineCapRound)

	for i, c := range contours {
		if !c.Drawable() {
			res.Skipped++
			continue
		}

		tier := r.Selector.Intervals.Tier(c)
		r.setStyle(r.Styles.For(tier))

		switch tier {
		case contour.Master:
			res.Master++
			r.Surface.DrawSmoothedCurve(r.Transform.ApplyAll(c.Line))
		case contour.Normal:
			res.Normal++
			r.Surface.DrawSmoothedCurve(r.Transform.ApplyAll(c.Line))
		case contour.Form:
			res.Form++
			for _, seg := range selected[i] {
				if len(seg) < 2 {
					continue
				}
				res.Segments++
				res.FormLines = append(res.FormLines, contour.Contour{Elevation: c.Elevation, Line: seg})
				r.Surface.DrawSmoothedCurve(r.Transform.ApplyAll(seg))
			}
		}
	}
	r.Surface.ClearDash()

	return res
}

func (r *Renderer) setStyle(s Style) {
	r.Surface.SetStrokeColor(s.Color)
	r.Surface.SetStrokeWidth(MMToPixels(s.WidthMM, r.DPI))
	if s.Dashed() {
		r.Surface.SetDash(MMToPixels(s.DashMM, r.DPI), MMToPixels(s.GapMM, r.DPI))
	} else {
		r.Surface.ClearDash()
	}
}
