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
	"image/color"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// Surface is a drawing target for contour strokes.
//
// Coordinates are device pixels with the origin in the top left corner.
// Stroke parameters stay in effect until they are changed.
type Surface interface {
	SetStrokeColor(c color.Color)
	SetStrokeWidth(w float64)
	SetLineCap(c graphics.LineCapStyle)

	// SetDash makes subsequent strokes dashed, with dashes of the given
	// length separated by gaps of the given length.
	SetDash(length, gap float64)

	// ClearDash makes subsequent strokes solid.
	ClearDash()

	// DrawPolyline strokes the straight segments between consecutive points.
	DrawPolyline(pts []vec.Vec2)

	// DrawSmoothedCurve strokes a smooth curve through the points.
	DrawSmoothedCurve(pts []vec.Vec2)
}
