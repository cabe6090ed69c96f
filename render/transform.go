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
	"github.com/paulmach/orb"
	"seehuhn.de/go/geom/vec"
)

// Inch is the length of an inch in tenths of a millimetre.
//
// At the 1:10 000 scale of orienteering maps one metre on the ground is a
// tenth of a millimetre on paper, so a resolution of dpi pixels per inch
// is dpi/Inch pixels per metre.
const Inch = 254.0

// MMToPixels converts a length on paper to device pixels.
func MMToPixels(mm, dpi float64) float64 {
	return mm * dpi * 10 / Inch
}

// Transform maps projected map coordinates to device pixels.
type Transform struct {
	OriginX, OriginY float64 // map coordinates of the bottom left pixel corner
	Scale            float64 // pixels per map unit
	Height           float64 // device height in pixels
}

// NewTransform returns the transform for an image of the given height
// whose bottom left corner is at origin.
func NewTransform(origin orb.Point, dpi float64, height int) Transform {
	return Transform{
		OriginX: origin[0],
		OriginY: origin[1],
		Scale:   dpi / Inch,
		Height:  float64(height),
	}
}

// Apply maps p to device pixels.  The y axis is flipped, since map y grows
// northward and device rows grow downward.
func (t Transform) Apply(p orb.Point) vec.Vec2 {
	return vec.Vec2{
		X: (p[0] - t.OriginX) * t.Scale,
		Y: t.Height - (p[1]-t.OriginY)*t.Scale,
	}
}

// ApplyAll maps every point of line.
func (t Transform) ApplyAll(line orb.LineString) []vec.Vec2 {
	res := make([]vec.Vec2, len(line))
	for i, p := range line {
		res[i] = t.Apply(p)
	}
	return res
}
