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

import (
	"fmt"
	"math"
)

// Tier is the cartographic class of a contour.
type Tier int

const (
	Master Tier = iota
	Normal
	Form
)

func (t Tier) String() string {
	switch t {
	case Master:
		return "master"
	case Normal:
		return "normal"
	case Form:
		return "form"
	default:
		return fmt.Sprintf("Tier(%d)", int(t))
	}
}

// Default contour intervals, in map units.
const (
	DefaultNormalInterval = 5.0
	DefaultMasterInterval = 25.0
)

// elevationTolerance absorbs floating point noise in elevation values read
// from datasets, e.g. 12.499999999 for a 12.5 m form line.
const elevationTolerance = 1e-6

// Intervals holds the contour intervals of a map.
// Master must be a multiple of Normal.
type Intervals struct {
	Normal float64 `json:"normal"`
	Master float64 `json:"master"`
}

// DefaultIntervals returns the usual 5 m / 25 m orienteering intervals.
func DefaultIntervals() Intervals {
	return Intervals{Normal: DefaultNormalInterval, Master: DefaultMasterInterval}
}

// Half returns the elevation offset between a form line and its neighbours.
func (iv Intervals) Half() float64 {
	return iv.Normal / 2
}

// Classify returns the tier of a contour at the given elevation.
// The master check takes priority, so an elevation that is a multiple of
// both intervals is a master contour.
func (iv Intervals) Classify(elevation float64) Tier {
	switch {
	case isMultiple(elevation, iv.Master):
		return Master
	case isMultiple(elevation, iv.Normal):
		return Normal
	default:
		return Form
	}
}

// Tier returns the tier of c.
func (iv Intervals) Tier(c Contour) Tier {
	return iv.Classify(c.Elevation)
}

func isMultiple(x, interval float64) bool {
	if interval <= 0 {
		return false
	}
	return math.Abs(math.Remainder(x, interval)) < elevationTolerance
}

func sameElevation(a, b float64) bool {
	return math.Abs(a-b) < elevationTolerance
}
