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

package contour

import "math"

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return math.Hypot(b[0]-a[0], b[1]-a[1])
}

// DistanceToSegment returns the distance from p to the segment a-b.
//
// If the projection of p onto the line through a and b falls before a or
// after b, the distance to that endpoint is returned.  Otherwise the
// perpendicular distance is computed from the cross product, which unlike
// the difference of squared lengths cannot go negative.
func DistanceToSegment(p, a, b Point) float64 {
	dx, dy := b[0]-a[0], b[1]-a[1]
	px, py := p[0]-a[0], p[1]-a[1]

	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return Distance(p, a)
	}

	r := (dx*px + dy*py) / l2
	switch {
	case r < 0:
		return Distance(p, a)
	case r > 1:
		return Distance(p, b)
	}
	return math.Abs(dx*py-dy*px) / math.Sqrt(l2)
}

// DistanceToPolyline returns the smallest distance from p to any segment of
// line.  For a single point line this is the distance to that point.
//
// DistanceToPolyline panics if line is empty: callers must filter out
// empty polylines before asking for distances.
func DistanceToPolyline(p Point, line Polyline) float64 {
	if len(line) == 0 {
		panic("contour: distance to an empty polyline")
	}

	d := Distance(p, line[0])
	for i := 1; i < len(line); i++ {
		d = min(d, DistanceToSegment(p, line[i-1], line[i]))
	}
	return d
}

// Length returns the arc length of line, zero for fewer than two points.
func Length(line Polyline) float64 {
	var l float64
	for i := 1; i < len(line); i++ {
		l += Distance(line[i-1], line[i])
	}
	return l
}
