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

// Package raster converts stroked paths into anti-aliased pixel coverage.
//
// All geometry is given in device coordinates: x grows to the right and y
// grows downwards, one unit per pixel.  Coverage is delivered row by row
// through an [EmitFunc] so that the caller decides how to composite it.
package raster

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// EmitFunc receives the coverage of one pixel row, starting at column xMin.
// The slice is only valid for the duration of the call.
type EmitFunc func(y, xMin int, coverage []float32)

// edge is a polygon edge in device coordinates.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64 // (x1-x0)/(y1-y0)
}

// Rasterizer turns stroke outlines into coverage values between 0 and 1.
// Create one instance per canvas and reuse it; internal buffers grow as
// needed but never shrink.
//
// A Rasterizer is not safe for concurrent use.
type Rasterizer struct {
	// Clip bounds output to this device rectangle.
	// Coordinates must be integer-aligned.
	Clip rect.Rect

	// Flatness controls the accuracy of curves and round caps, in pixels.
	Flatness float64

	// Width is the stroke width in pixels.
	Width float64

	// Cap is the style used at the two ends of every stroked run.
	// Joins between segments are always round.
	Cap graphics.LineCapStyle

	// Dash holds alternating on/off lengths in pixels.
	// Nil means a solid stroke.
	Dash []float64

	// DashPhase offsets into the dash pattern, in pixels.
	DashPhase float64

	cover     []float32
	area      []float32
	edges     []edge
	active    []int
	crossings []float64

	polys       []vec.Vec2 // outline vertices of all polygons, contiguous
	polyOffsets []int      // start of each polygon in polys

	segs        []segment
	runOffsets  []int
	dashed      []segment
	dashOffsets []int

	bboxEmpty    bool
	bxMin, bxMax float64
	byMin, byMax float64
}

// NewRasterizer returns a Rasterizer for the given clip rectangle with a
// one pixel wide, butt capped, solid stroke.
func NewRasterizer(clip rect.Rect) *Rasterizer {
	return &Rasterizer{
		Clip:     clip,
		Flatness: defaultFlatness,
		Width:    1,
		Cap:      graphics.LineCapButt,
	}
}

// Reset restores the default stroke parameters and sets a new clip
// rectangle, keeping the capacity of all internal buffers.
func (r *Rasterizer) Reset(clip rect.Rect) {
	r.Clip = clip
	r.Flatness = defaultFlatness
	r.Width = 1
	r.Cap = graphics.LineCapButt
	r.Dash = nil
	r.DashPhase = 0
}

// fillPolygons rasterizes all outlines collected in r.polys with the nonzero
// winding rule, so that overlapping pieces of one stroke are painted once.
func (r *Rasterizer) fillPolygons(emit EmitFunc) {
	xMin, xMax, yMin, yMax, ok := r.collectEdges()
	if !ok {
		return
	}
	width := xMax - xMin
	r.cover = slices.Grow(r.cover[:0], width)[:width]
	r.area = slices.Grow(r.area[:0], width)[:width]

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(min(a.y0, a.y1), min(b.y0, b.y1))
	})

	r.active = r.active[:0]
	next := 0
	for y := yMin; y < yMax; y++ {
		yTop := float64(y)
		yBot := float64(y + 1)

		for next < len(r.edges) && min(r.edges[next].y0, r.edges[next].y1) < yBot {
			r.active = append(r.active, next)
			next++
		}
		if len(r.active) == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)
		touched := false
		for i := 0; i < len(r.active); {
			e := &r.edges[r.active[i]]
			if max(e.y0, e.y1) <= yTop {
				r.active[i] = r.active[len(r.active)-1]
				r.active = r.active[:len(r.active)-1]
				continue
			}
			if r.accumulateEdge(e, y, xMin, xMax) {
				touched = true
			}
			i++
		}
		if !touched {
			continue
		}

		integrateNonZero(r.cover, r.area)
		if trimmed, offset := trimZeros(r.cover); trimmed != nil {
			emit(y, xMin+offset, trimmed)
		}
	}
}

// collectEdges builds the edge list from r.polys and returns the bounding
// box of the edges, clamped to the clip rectangle.
func (r *Rasterizer) collectEdges() (xMin, xMax, yMin, yMax int, ok bool) {
	r.edges = r.edges[:0]
	r.bboxEmpty = true

	for i, start := range r.polyOffsets {
		end := len(r.polys)
		if i+1 < len(r.polyOffsets) {
			end = r.polyOffsets[i+1]
		}
		poly := r.polys[start:end]
		if len(poly) < 3 {
			continue
		}
		for j := 1; j < len(poly); j++ {
			r.addEdge(poly[j-1], poly[j])
		}
		r.addEdge(poly[len(poly)-1], poly[0])
	}
	if len(r.edges) == 0 {
		return 0, 0, 0, 0, false
	}

	xMin = max(int(math.Floor(r.bxMin)), int(r.Clip.LLx))
	xMax = min(int(math.Floor(r.bxMax))+1, int(r.Clip.URx))
	yMin = max(int(math.Floor(r.byMin)), int(r.Clip.LLy))
	yMax = min(int(math.Floor(r.byMax))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return 0, 0, 0, 0, false
	}
	return xMin, xMax, yMin, yMax, true
}

func (r *Rasterizer) addEdge(p0, p1 vec.Vec2) {
	dy := p1.Y - p0.Y
	if dy > -horizontalEdgeThreshold && dy < horizontalEdgeThreshold {
		return
	}
	r.edges = append(r.edges, edge{
		x0: p0.X, y0: p0.Y,
		x1: p1.X, y1: p1.Y,
		dxdy: (p1.X - p0.X) / dy,
	})

	if r.bboxEmpty {
		r.bxMin, r.bxMax = min(p0.X, p1.X), max(p0.X, p1.X)
		r.byMin, r.byMax = min(p0.Y, p1.Y), max(p0.Y, p1.Y)
		r.bboxEmpty = false
		return
	}
	r.bxMin = min(r.bxMin, p0.X, p1.X)
	r.bxMax = max(r.bxMax, p0.X, p1.X)
	r.byMin = min(r.byMin, p0.Y, p1.Y)
	r.byMax = max(r.byMax, p0.Y, p1.Y)
}

// Coverage accumulation model:
//
// Every pixel of the current row keeps two values.  cover is the signed
// vertical extent of the edges crossing the pixel column, area is the same
// extent weighted by how far left inside the pixel the crossing happens.
// integrateNonZero turns them into the signed area of the polygons inside
// each pixel by carrying cover from left to right.

// accumulateEdge adds the part of e inside row y to r.cover and r.area.
// It reports whether the edge contributed to the row.
func (r *Rasterizer) accumulateEdge(e *edge, y, xMin, xMax int) bool {
	yTop := max(float64(y), min(e.y0, e.y1))
	yBot := min(float64(y+1), max(e.y0, e.y1))
	if yBot <= yTop {
		return false
	}

	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	xa := e.x0 + e.dxdy*(yTop-e.y0)
	xb := e.x0 + e.dxdy*(yBot-e.y0)
	pixLeft := int(math.Floor(min(xa, xb)))
	pixRight := int(math.Floor(max(xa, xb)))

	if pixRight < xMin {
		v := sign * float32(yBot-yTop)
		r.cover[0] += v
		r.area[0] += v
		return true
	}
	if pixLeft >= xMax {
		return false
	}

	if pixLeft == pixRight {
		r.addPiece(e, yTop, yBot, sign, pixLeft, xMin, xMax)
		return true
	}

	// split the edge where it crosses vertical pixel boundaries
	dydx := 1 / e.dxdy
	r.crossings = append(r.crossings[:0], yTop, yBot)
	for x := pixLeft + 1; x <= pixRight; x++ {
		yx := e.y0 + dydx*(float64(x)-e.x0)
		if yx > yTop && yx < yBot {
			r.crossings = append(r.crossings, yx)
		}
	}
	slices.Sort(r.crossings)

	for i := range len(r.crossings) - 1 {
		y0, y1 := r.crossings[i], r.crossings[i+1]
		if y1 <= y0 {
			continue
		}
		xMid := e.x0 + e.dxdy*((y0+y1)/2-e.y0)
		r.addPiece(e, y0, y1, sign, int(math.Floor(xMid)), xMin, xMax)
	}
	return true
}

// addPiece adds a part of an edge that stays within pixel column pix.
func (r *Rasterizer) addPiece(e *edge, yTop, yBot float64, sign float32, pix, xMin, xMax int) {
	v := sign * float32(yBot-yTop)
	if pix < xMin {
		r.cover[0] += v
		r.area[0] += v
		return
	}
	if pix >= xMax {
		return
	}
	xMid := e.x0 + e.dxdy*((yTop+yBot)/2-e.y0)
	frac := xMid - float64(pix)
	idx := pix - xMin
	r.cover[idx] += v
	r.area[idx] += v * float32(1-frac)
}

// integrateNonZero converts cover and area into coverage in place, using
// the nonzero winding rule.
func integrateNonZero(cover, area []float32) {
	var accum float32
	for i := range cover {
		raw := accum + area[i]
		accum += cover[i]
		if raw < 0 {
			raw = -raw
		}
		cover[i] = min(raw, 1)
	}
}

// trimZeros returns the non-zero part of coverage and its offset.
func trimZeros(coverage []float32) (trimmed []float32, offset int) {
	lo, hi := 0, len(coverage)
	for lo < hi && coverage[lo] == 0 {
		lo++
	}
	if lo == hi {
		return nil, 0
	}
	for coverage[hi-1] == 0 {
		hi--
	}
	return coverage[lo:hi], lo
}

const (
	// defaultFlatness is the default curve tolerance in pixels; 0.25 is
	// below what the eye can see.
	defaultFlatness = 0.25

	// horizontalEdgeThreshold is the minimum vertical extent for an edge to
	// contribute to coverage.
	horizontalEdgeThreshold = 1e-10

	// zeroLengthThreshold is the minimum length of a stroke segment.
	zeroLengthThreshold = 1e-10
)
