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
	"math"
	"runtime"
	"sync"
)

// FormLineOptions controls which parts of a form line are drawn.
// All distances are in map units.
type FormLineOptions struct {
	// Threshold is the minimum normalized asymmetry |dA-dB|/min(dA,dB)
	// for a vertex to be kept.
	Threshold float64 `json:"threshold"`

	// MinDistanceToContour disqualifies the asymmetry test for vertices
	// this close to either neighbour.
	MinDistanceToContour float64 `json:"min_distance_to_contour"`

	// MaxDistanceToContour keeps every vertex that is further than this
	// from one of its neighbours.
	MaxDistanceToContour float64 `json:"max_distance_to_contour"`

	// MinLength drops extracted segments shorter than this.
	// Zero keeps every segment.
	MinLength float64 `json:"min_length"`

	// MinGapLength is the arc length below which a run of discarded
	// vertices is bridged.
	MinGapLength float64 `json:"min_gap_length"`

	// AdditionalTailLength is how far kept runs are extended into the
	// neighbouring discarded runs.
	AdditionalTailLength float64 `json:"additional_tail_length"`
}

// DefaultFormLineOptions returns the default form line thresholds.
func DefaultFormLineOptions() FormLineOptions {
	return FormLineOptions{
		Threshold:            0.05,
		MinDistanceToContour: 5,
		MaxDistanceToContour: 100,
		MinLength:            10,
		MinGapLength:         50,
		AdditionalTailLength: 15,
	}
}

// minRatioDenominator is the smallest neighbour distance for which the
// asymmetry ratio is evaluated.  Below this, only the far neighbour escape
// can keep a vertex.
const minRatioDenominator = 1e-9

// Keep reports whether a vertex at distance dAbove from the contour above
// and dBelow from the contour below is worth drawing.
func (o FormLineOptions) Keep(dAbove, dBelow float64) bool {
	if dAbove > o.MaxDistanceToContour || dBelow > o.MaxDistanceToContour {
		return true
	}
	if dAbove <= o.MinDistanceToContour || dBelow <= o.MinDistanceToContour {
		return false
	}

	closest := min(dAbove, dBelow)
	if closest < minRatioDenominator {
		return false
	}
	return math.Abs(dAbove-dBelow)/closest > o.Threshold
}

// TaggedPoint is a form line vertex together with its keep decision.
type TaggedPoint struct {
	Point Point
	Keep  bool
}

// Selector decides which parts of form lines are drawn.
type Selector struct {
	Intervals Intervals
	Options   FormLineOptions
}

// NewSelector returns a selector using the default intervals and options.
func NewSelector() Selector {
	return Selector{
		Intervals: DefaultIntervals(),
		Options:   DefaultFormLineOptions(),
	}
}

// Neighbours returns the polylines half an interval above and below form.
// Polylines with fewer than two points are left out.
func (s Selector) Neighbours(form Contour, all []Contour) (above, below []Polyline) {
	half := s.Intervals.Half()
	for _, c := range all {
		if !c.Drawable() {
			continue
		}
		switch {
		case sameElevation(c.Elevation, form.Elevation+half):
			above = append(above, c.Line)
		case sameElevation(c.Elevation, form.Elevation-half):
			below = append(below, c.Line)
		}
	}
	return above, below
}

// Tag computes the keep decision for every vertex of line.
// Both above and below must be non-empty.
func (s Selector) Tag(line Polyline, above, below []Polyline) []TaggedPoint {
	tagged := make([]TaggedPoint, len(line))
	for i, p := range line {
		tagged[i] = TaggedPoint{
			Point: p,
			Keep:  s.Options.Keep(nearest(p, above), nearest(p, below)),
		}
	}
	return tagged
}

func nearest(p Point, lines []Polyline) float64 {
	d := math.Inf(1)
	for _, l := range lines {
		d = min(d, DistanceToPolyline(p, l))
	}
	return d
}

// Select returns the parts of the form contour that should be drawn.
//
// A form contour lacking a neighbour on either side cannot be generalized
// and is returned whole.  Contours with fewer than two points yield no
// segments.
func (s Selector) Select(form Contour, all []Contour) []Polyline {
	if !form.Drawable() {
		return nil
	}

	above, below := s.Neighbours(form, all)
	if len(above) == 0 || len(below) == 0 {
		return []Polyline{form.Line.Clone()}
	}

	tagged := s.Tag(form.Line, above, below)
	RemoveGaps(tagged, s.Options.MinGapLength)
	AddTails(tagged, s.Options.AdditionalTailLength)

	segs := Segments(tagged)
	if s.Options.MinLength <= 0 {
		return segs
	}
	kept := segs[:0]
	for _, seg := range segs {
		if Length(seg) >= s.Options.MinLength {
			kept = append(kept, seg)
		}
	}
	return kept
}

// SelectAll runs Select for every form contour in contours, using the
// given number of goroutines (runtime.NumCPU() if workers < 1).
// The result is indexed like contours; entries of master and normal
// contours are nil.
func (s Selector) SelectAll(contours []Contour, workers int) [][]Polyline {
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	res := make([][]Polyline, len(contours))
	jobs := make(chan int, 100)

	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			for i := range jobs {
				res[i] = s.Select(contours[i], contours)
			}
		}()
	}

	for i, c := range contours {
		if s.Intervals.Tier(c) == Form && c.Drawable() {
			jobs <- i
		}
	}
	close(jobs)
	wg.Wait()

	return res
}

// RemoveGaps bridges short runs of discarded vertices.
//
// A gap starts at the vertex before the first discarded one (or at index
// 0) and ends at the next kept vertex.  A kept vertex with discarded
// vertices on both sides belongs to the surrounding gap.  If the arc length
// of a closed gap is below minGapLength, all its vertices are kept.  A gap
// running to the end of the line is never bridged.
func RemoveGaps(tagged []TaggedPoint, minGapLength float64) {
	start := -1
	for i := range tagged {
		if !tagged[i].Keep || isolated(tagged, i) {
			if start < 0 {
				start = max(i-1, 0)
			}
			continue
		}

		if start >= 0 && arcLength(tagged[start:i+1]) < minGapLength {
			for j := start; j <= i; j++ {
				tagged[j].Keep = true
			}
		}
		start = -1
	}
}

func isolated(tagged []TaggedPoint, i int) bool {
	return tagged[i].Keep &&
		i > 0 && i < len(tagged)-1 &&
		!tagged[i-1].Keep && !tagged[i+1].Keep
}

// AddTails extends every kept run by up to tailLength into the discarded
// vertices next to it.
//
// Edges are the first and last vertices of kept runs of at least two
// vertices, taken before any tail is added.  A tail walks outward from its
// edge, keeping vertices until the accumulated length exceeds tailLength.
// It passes over vertices that are already kept.  The first and last
// vertices of the line are never reached by a tail.
func AddTails(tagged []TaggedPoint, tailLength float64) {
	n := len(tagged)
	kept := make([]bool, n)
	for i, tp := range tagged {
		kept[i] = tp.Keep
	}

	for i := 1; i < n-1; i++ {
		if !kept[i] {
			continue
		}
		switch {
		case !kept[i-1] && kept[i+1]:
			extendTail(tagged, i, -1, tailLength)
		case kept[i-1] && !kept[i+1]:
			extendTail(tagged, i, 1, tailLength)
		}
	}
}

func extendTail(tagged []TaggedPoint, edge, step int, tailLength float64) {
	var l float64
	prev := tagged[edge].Point
	for j := edge + step; j > 0 && j < len(tagged)-1; j += step {
		if l > tailLength {
			return
		}
		tagged[j].Keep = true
		l += Distance(prev, tagged[j].Point)
		prev = tagged[j].Point
	}
}

// Segments splits tagged into its maximal runs of kept vertices.
// All segments share one backing array.
func Segments(tagged []TaggedPoint) []Polyline {
	buf := make(Polyline, 0, len(tagged))
	var segs []Polyline

	start := -1
	for _, tp := range tagged {
		if !tp.Keep {
			if start >= 0 {
				segs = append(segs, buf[start:len(buf):len(buf)])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = len(buf)
		}
		buf = append(buf, tp.Point)
	}
	if start >= 0 {
		segs = append(segs, buf[start:])
	}
	return segs
}

func arcLength(tagged []TaggedPoint) float64 {
	var l float64
	for i := 1; i < len(tagged); i++ {
		l += Distance(tagged[i-1].Point, tagged[i].Point)
	}
	return l
}
