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

package render

import (
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// SmoothPath returns a curve through all of pts, made of one cubic Bézier
// segment per pair of consecutive points.
//
// The tangent at each interior point is parallel to the chord between its
// neighbours, as in a uniform Catmull-Rom spline.  At the ends of an open
// line the missing neighbour is replaced by the end point itself.  If the
// first and last points coincide, the curve is closed and the tangents
// wrap around.
//
// Fewer than two points give an empty path.
func SmoothPath(pts []vec.Vec2) path.Path {
	n := len(pts)
	if n < 2 {
		return (&path.Data{}).Iter()
	}

	closed := n > 3 && pts[0] == pts[n-1]
	at := func(i int) vec.Vec2 {
		switch {
		case i < 0 && closed:
			return pts[n-2]
		case i >= n && closed:
			return pts[1]
		}
		return pts[min(max(i, 0), n-1)]
	}

	d := &path.Data{}
	d.MoveTo(pts[0])
	for i := range n - 1 {
		p0, p1, p2, p3 := at(i-1), pts[i], pts[i+1], at(i+2)
		c1 := p1.Add(p2.Sub(p0).Mul(1.0 / 6))
		c2 := p2.Sub(p3.Sub(p1).Mul(1.0 / 6))
		d.CubeTo(c1, c2, p2)
	}
	if closed {
		d.Close()
	}
	return d.Iter()
}

// PolylinePath returns the straight segments between consecutive points.
func PolylinePath(pts []vec.Vec2) path.Path {
	d := &path.Data{}
	for i, p := range pts {
		if i == 0 {
			d.MoveTo(p)
		} else {
			d.LineTo(p)
		}
	}
	return d.Iter()
}
