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

package raster

import (
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// segment is a flattened piece of a stroked path.
type segment struct {
	A, B vec.Vec2
	T    vec.Vec2 // unit tangent, A→B
	N    vec.Vec2 // unit normal, 90° CCW from T
}

// Stroke renders p as a stroke using Width, Cap, Dash and DashPhase.
//
// The outline of a stroke is the union of one rectangle per flattened
// segment and one disc per interior vertex, which gives round joins.  All
// pieces share the same orientation and are filled together with the
// nonzero rule, so overlaps are painted once.
func (r *Rasterizer) Stroke(p path.Path, emit EmitFunc) {
	if r.Width <= 0 {
		return
	}

	r.polys = r.polys[:0]
	r.polyOffsets = r.polyOffsets[:0]

	closed := r.flatten(p)

	if len(r.Dash) > 0 && r.applyDash() {
		for i := range r.dashOffsets {
			r.strokeRun(runAt(r.dashed, r.dashOffsets, i), false)
		}
	} else {
		for i := range r.runOffsets {
			r.strokeRun(runAt(r.segs, r.runOffsets, i), closed[i])
		}
	}

	r.fillPolygons(emit)
}

func runAt(segs []segment, offsets []int, i int) []segment {
	end := len(segs)
	if i+1 < len(offsets) {
		end = offsets[i+1]
	}
	return segs[offsets[i]:end]
}

// flatten walks p, turns curves into line segments and stores the result in
// r.segs, one run per subpath.  A subpath that draws but has no length is
// kept as a single zero-length segment so that round caps can turn it into a
// dot.  The returned slice tells which runs are closed.
func (r *Rasterizer) flatten(p path.Path) []bool {
	r.segs = r.segs[:0]
	r.runOffsets = r.runOffsets[:0]
	var closed []bool

	var cur, start vec.Vec2
	runStart := 0
	open := false
	drew := false

	finish := func(isClosed bool) {
		if !open || !drew {
			return
		}
		if len(r.segs) == runStart {
			r.segs = append(r.segs, segment{A: start, B: start, T: vec.Vec2{X: 1}, N: vec.Vec2{Y: 1}})
		}
		r.runOffsets = append(r.runOffsets, runStart)
		closed = append(closed, isClosed)
	}

	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			finish(false)
			cur, start = pts[0], pts[0]
			runStart = len(r.segs)
			open, drew = true, false

		case path.CmdLineTo:
			if !open {
				continue
			}
			drew = true
			r.addSegment(cur, pts[0])
			cur = pts[0]

		case path.CmdQuadTo:
			if !open {
				continue
			}
			drew = true
			r.flattenQuadratic(cur, pts[0], pts[1])
			cur = pts[1]

		case path.CmdCubeTo:
			if !open {
				continue
			}
			drew = true
			r.flattenCubic(cur, pts[0], pts[1], pts[2])
			cur = pts[2]

		case path.CmdClose:
			if !open {
				continue
			}
			if cur != start {
				r.addSegment(cur, start)
			}
			drew = true
			finish(true)
			cur = start
			open = false
		}
	}
	finish(false)
	return closed
}

func (r *Rasterizer) addSegment(a, b vec.Vec2) {
	d := b.Sub(a)
	length := d.Length()
	if length < zeroLengthThreshold {
		return
	}
	t := d.Mul(1 / length)
	r.segs = append(r.segs, segment{A: a, B: b, T: t, N: vec.Vec2{X: -t.Y, Y: t.X}})
}

// flattenQuadratic approximates the quadratic Bézier p0, p1, p2 by line
// segments deviating at most Flatness pixels from the curve.
func (r *Rasterizer) flattenQuadratic(p0, p1, p2 vec.Vec2) {
	e := p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25)
	n := 1
	if dev := e.Length(); dev > r.Flatness {
		n = int(math.Ceil(math.Sqrt(dev / r.Flatness)))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		u := 1 - t
		pt := p0.Mul(u * u).Add(p1.Mul(2 * u * t)).Add(p2.Mul(t * t))
		r.addSegment(prev, pt)
		prev = pt
	}
}

// flattenCubic approximates a cubic Bézier by line segments, choosing the
// number of segments with Wang's formula.
func (r *Rasterizer) flattenCubic(p0, p1, p2, p3 vec.Vec2) {
	d1 := p0.Sub(p1.Mul(2)).Add(p2)
	d2 := p1.Sub(p2.Mul(2)).Add(p3)
	n := 1
	if m := max(d1.Length(), d2.Length()); m > 0 {
		if k := math.Sqrt(3 * m / (4 * r.Flatness)); k > 1 {
			n = int(math.Ceil(k))
		}
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		u := 1 - t
		pt := p0.Mul(u * u * u).
			Add(p1.Mul(3 * u * u * t)).
			Add(p2.Mul(3 * u * t * t)).
			Add(p3.Mul(t * t * t))
		r.addSegment(prev, pt)
		prev = pt
	}
}

// applyDash cuts the runs in r.segs into dashes, stored in r.dashed and
// r.dashOffsets.  It returns false if the pattern has no positive length,
// in which case the stroke is drawn solid.
func (r *Rasterizer) applyDash() bool {
	r.dashed = r.dashed[:0]
	r.dashOffsets = r.dashOffsets[:0]

	pattern := r.Dash
	n := len(pattern)
	total := 0.0
	for _, d := range pattern {
		if d < 0 {
			return false
		}
		total += d
	}
	if n%2 == 1 {
		total *= 2
	}
	if total <= 0 {
		return false
	}
	phase := math.Mod(r.DashPhase, total)
	if phase < 0 {
		phase += total
	}

	for i := range r.runOffsets {
		idx := 0
		rem := pattern[0]
		for skip := phase; skip > 0; {
			if skip < rem {
				rem -= skip
				break
			}
			skip -= rem
			idx++
			rem = pattern[idx%n]
		}
		on := idx%2 == 0
		dashStart := len(r.dashed)

		for _, s := range runAt(r.segs, r.runOffsets, i) {
			length := s.B.Sub(s.A).Length()
			pos := 0.0
			for length-pos > rem {
				if on {
					r.addDashPiece(s, pos, pos+rem, dashStart)
					if len(r.dashed) > dashStart {
						r.dashOffsets = append(r.dashOffsets, dashStart)
					}
				}
				pos += rem
				idx++
				rem = pattern[idx%n]
				on = idx%2 == 0
				dashStart = len(r.dashed)
			}
			if on {
				r.addDashPiece(s, pos, length, dashStart)
			}
			rem -= length - pos
		}
		if on && len(r.dashed) > dashStart {
			r.dashOffsets = append(r.dashOffsets, dashStart)
		}
	}
	return true
}

// addDashPiece appends the part of s between arc positions t0 and t1.
// Zero-length pieces are only kept when they are the whole dash, so that
// round and square caps can draw them as dots.
func (r *Rasterizer) addDashPiece(s segment, t0, t1 float64, dashStart int) {
	if t1-t0 < zeroLengthThreshold && len(r.dashed) > dashStart {
		return
	}
	r.dashed = append(r.dashed, segment{
		A: s.A.Add(s.T.Mul(t0)),
		B: s.A.Add(s.T.Mul(t1)),
		T: s.T,
		N: s.N,
	})
}

// strokeRun adds the outline pieces of one run of connected segments.
func (r *Rasterizer) strokeRun(segs []segment, closed bool) {
	if len(segs) == 0 {
		return
	}
	d := r.Width / 2

	if len(segs) == 1 && segs[0].B.Sub(segs[0].A).Length() < zeroLengthThreshold {
		switch r.Cap {
		case graphics.LineCapRound:
			r.addDisc(segs[0].A, d)
		case graphics.LineCapSquare:
			r.addSquare(segs[0].A, segs[0].T, d)
		}
		return
	}

	last := len(segs) - 1
	for i, s := range segs {
		a, b := s.A, s.B
		if !closed && r.Cap == graphics.LineCapSquare {
			if i == 0 {
				a = a.Sub(s.T.Mul(d))
			}
			if i == last {
				b = b.Add(s.T.Mul(d))
			}
		}
		r.addQuad(a, b, s.N, d)
		if i > 0 {
			r.addDisc(s.A, d)
		}
	}

	switch {
	case closed:
		r.addDisc(segs[0].A, d)
	case r.Cap == graphics.LineCapRound:
		r.addDisc(segs[0].A, d)
		r.addDisc(segs[last].B, d)
	}
}

// addQuad adds the rectangle of half width d around the segment a→b.
func (r *Rasterizer) addQuad(a, b, n vec.Vec2, d float64) {
	off := n.Mul(d)
	r.polyOffsets = append(r.polyOffsets, len(r.polys))
	r.polys = append(r.polys, a.Add(off), b.Add(off), b.Sub(off), a.Sub(off))
}

// addSquare adds a square of side 2d centred on c and aligned with t.
func (r *Rasterizer) addSquare(c, t vec.Vec2, d float64) {
	n := vec.Vec2{X: -t.Y, Y: t.X}
	r.polyOffsets = append(r.polyOffsets, len(r.polys))
	r.polys = append(r.polys,
		c.Add(t.Mul(d)).Add(n.Mul(d)),
		c.Add(t.Mul(d)).Sub(n.Mul(d)),
		c.Sub(t.Mul(d)).Sub(n.Mul(d)),
		c.Sub(t.Mul(d)).Add(n.Mul(d)),
	)
}

// addDisc adds a polygonal disc of the given radius.  The vertices run in
// the same rotational sense as the rectangles built by addQuad.
func (r *Rasterizer) addDisc(c vec.Vec2, radius float64) {
	n := minArcSteps
	if radius > r.Flatness {
		step := 2 * math.Acos(1-r.Flatness/radius)
		if step > 0 && !math.IsNaN(step) {
			n = max(n, int(math.Ceil(2*math.Pi/step)))
		}
	}

	r.polyOffsets = append(r.polyOffsets, len(r.polys))
	for i := range n {
		angle := -2 * math.Pi * float64(i) / float64(n)
		r.polys = append(r.polys, vec.Vec2{
			X: c.X + radius*math.Cos(angle),
			Y: c.Y + radius*math.Sin(angle),
		})
	}
}

// minArcSteps is the smallest number of vertices used for a disc.
const minArcSteps = 8
