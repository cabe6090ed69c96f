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

import "testing"

func TestClassify(t *testing.T) {
	iv := DefaultIntervals()

	cases := []struct {
		elev float64
		want Tier
	}{
		{0, Master},
		{25, Master},
		{-25, Master},
		{2300, Master},
		{5, Normal},
		{10, Normal},
		{20, Normal},
		{-5, Normal},
		{2.5, Form},
		{7.5, Form},
		{-2.5, Form},
		{2307.5, Form},
		{0.5, Form},
		{24.4999999999, Form},
		{24.9999999999, Master},
		{12.5000000001, Form},
	}
	for _, tc := range cases {
		if got := iv.Classify(tc.elev); got != tc.want {
			t.Errorf("Classify(%v) = %v, want %v", tc.elev, got, tc.want)
		}
	}
}

func TestClassifyCustomIntervals(t *testing.T) {
	iv := Intervals{Normal: 2, Master: 10}

	for elev, want := range map[float64]Tier{
		10: Master,
		4:  Normal,
		5:  Form,
		1:  Form,
	} {
		if got := iv.Classify(elev); got != want {
			t.Errorf("Classify(%v) = %v, want %v", elev, got, want)
		}
	}
	if h := iv.Half(); h != 1 {
		t.Errorf("Half() = %v, want 1", h)
	}
}

func TestTierString(t *testing.T) {
	for tier, want := range map[Tier]string{
		Master:  "master",
		Normal:  "normal",
		Form:    "form",
		Tier(7): "Tier(7)",
	} {
		if got := tier.String(); got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	}
}
