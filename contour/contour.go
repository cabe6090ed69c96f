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

// Package contour classifies elevation contours and generalizes form lines.
//
// Contours are polylines of constant elevation in projected map units.  Each
// contour belongs to one [Tier]: master and normal contours are always
// drawn, while form lines (intermediate contours half an interval between
// two normal contours) are only drawn where they reveal terrain detail that
// the normal contours miss.  [Selector] decides which parts of a form line
// survive.
package contour

import "github.com/paulmach/orb"

// Point is a planar position in map units.
type Point = orb.Point

// Polyline is an ordered sequence of points.
type Polyline = orb.LineString

// Contour is one connected part of an elevation line.
// Contours are never modified after they have been read.
type Contour struct {
	Elevation float64
	Line      Polyline
}

// Drawable reports whether the contour has enough points to form a line.
func (c Contour) Drawable() bool {
	return len(c.Line) >= 2
}
