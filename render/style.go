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

	"github.com/NicoRio42/map-generator/contour"
)

// Brown is the contour colour.
var Brown = color.RGBA{R: 209, G: 92, B: 0, A: 255}

// Style describes how contours of one tier are stroked.
// Lengths are in millimetres on paper.  A zero DashMM means a solid line.
type Style struct {
	Color   color.RGBA
	WidthMM float64
	DashMM  float64
	GapMM   float64
}

// Dashed reports whether the style uses a dash pattern.
func (s Style) Dashed() bool {
	return s.DashMM > 0 && s.GapMM > 0
}

// Styles holds the stroke style of every tier.
type Styles struct {
	Master Style
	Normal Style
	Form   Style
}

// DefaultStyles returns the ISOM contour symbols.
func DefaultStyles() Styles {
	return Styles{
		Master: Style{Color: Brown, WidthMM: 0.25},
		Normal: Style{Color: Brown, WidthMM: 0.14},
		Form:   Style{Color: Brown, WidthMM: 0.1, DashMM: 2.5, GapMM: 0.25},
	}
}

// For returns the style of the given tier.
func (s Styles) For(t contour.Tier) Style {
	switch t {
	case contour.Master:
		return s.Master
	case contour.Normal:
		return s.Normal
	case contour.Form:
		return s.Form
	}
	panic("render: unknown tier " + t.String())
}
