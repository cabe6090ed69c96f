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
	"testing"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

type pathCmd struct {
	cmd path.Command
	pts []vec.Vec2
}

func collect(p path.Path) []pathCmd {
	var res []pathCmd
	for cmd, pts := range p {
		res = append(res, pathCmd{cmd, append([]vec.Vec2(nil), pts...)})
	}
	return res
}

func TestSmoothPathInterpolates(t *testing.T) {
	pts := []vec.Vec2{{X: 0, Y: 0}, {X: 10, Y: 5}, {X: 20, Y: 0}, {X: 30, Y: 8}}
	cmds := collect(SmoothPath(pts))

	if len(cmds) != len(pts) {
		t.Fatalf("got %d commands, want %d", len(cmds), len(pts))
	}
	if cmds[0].cmd != path.CmdMoveTo || cmds[0].pts[0] != pts[0] {
		t.Errorf("path starts with %v", cmds[0])
	}
	for i, c := range cmds[1:] {
		if c.cmd != path.CmdCubeTo {
			t.Fatalf("command %d is %v, want a cubic", i+1, c.cmd)
		}
		if c.pts[2] != pts[i+1] {
			t.Errorf("segment %d ends at %v, want %v", i+1, c.pts[2], pts[i+1])
		}
	}

	// The tangent at pts[1] is parallel to pts[2]-pts[0].
	in := pts[1].Sub(cmds[1].pts[1])
	out := cmds[2].pts[0].Sub(pts[1])
	chord := pts[2].Sub(pts[0])
	for _, v := range []vec.Vec2{in, out} {
		if cross := v.X*chord.Y - v.Y*chord.X; !near(cross, 0) {
			t.Errorf("tangent %v not parallel to %v", v, chord)
		}
	}
}

func TestSmoothPathTwoPoints(t *testing.T) {
	a, b := vec.Vec2{X: 1, Y: 1}, vec.Vec2{X: 7, Y: 4}
	cmds := collect(SmoothPath([]vec.Vec2{a, b}))
	if len(cmds) != 2 {
		t.Fatalf("got %d commands, want 2", len(cmds))
	}
	d := b.Sub(a)
	for _, c := range cmds[1].pts {
		v := c.Sub(a)
		if cross := v.X*d.Y - v.Y*d.X; !near(cross, 0) {
			t.Errorf("control point %v off the straight line", c)
		}
	}
}

func TestSmoothPathClosed(t *testing.T) {
	pts := []vec.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}, {X: 0, Y: 0}}
	cmds := collect(SmoothPath(pts))
	if last := cmds[len(cmds)-1]; last.cmd != path.CmdClose {
		t.Fatalf("closed ring ends with %v", last.cmd)
	}

	// The tangent at the closing point is continuous.
	in := pts[0].Sub(cmds[len(cmds)-2].pts[1])
	out := cmds[1].pts[0].Sub(pts[0])
	if cross := in.X*out.Y - in.Y*out.X; !near(cross, 0) {
		t.Errorf("kink at the closing point: in %v, out %v", in, out)
	}
}

func TestSmoothPathDegenerate(t *testing.T) {
	for _, pts := range [][]vec.Vec2{nil, {{X: 1, Y: 2}}} {
		if cmds := collect(SmoothPath(pts)); len(cmds) != 0 {
			t.Errorf("%v: got %d commands, want none", pts, len(cmds))
		}
	}
}

func TestPolylinePath(t *testing.T) {
	pts := []vec.Vec2{{X: 0, Y: 0}, {X: 3, Y: 4}, {X: 6, Y: 0}}
	cmds := collect(PolylinePath(pts))
	if len(cmds) != 3 || cmds[0].cmd != path.CmdMoveTo || cmds[2].cmd != path.CmdLineTo || cmds[2].pts[0] != pts[2] {
		t.Errorf("got %v", cmds)
	}
}
