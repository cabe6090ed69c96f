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

package dataset

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jonas-p/go-shp"

	"github.com/NicoRio42/map-generator/contour"
)

// LoadShapefile reads contours from an ESRI shapefile.
// The attribute table must be next to the .shp file.
func LoadShapefile(name string) ([]contour.Contour, error) {
	r, err := shp.Open(name)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	field, err := elevationField(r.Fields())
	if err != nil {
		return nil, err
	}

	var res []contour.Contour
	for r.Next() {
		row, shape := r.Shape()

		elev, err := parseElevation(r.ReadAttribute(row, field))
		if err != nil {
			return nil, fmt.Errorf("feature %d: %w", row, err)
		}

		var parts []int32
		var points []shp.Point
		switch s := shape.(type) {
		case *shp.PolyLine:
			parts, points = s.Parts, s.Points
		case *shp.PolyLineZ:
			parts, points = s.Parts, s.Points
		case *shp.PolyLineM:
			parts, points = s.Parts, s.Points
		case *shp.Null:
			continue
		default:
			return nil, fmt.Errorf("feature %d: %w %T", row, ErrUnsupportedGeometry, shape)
		}

		for i, start := range parts {
			end := int32(len(points))
			if i+1 < len(parts) {
				end = parts[i+1]
			}
			line := make(contour.Polyline, 0, end-start)
			for _, p := range points[start:end] {
				line = append(line, contour.Point{p.X, p.Y})
			}
			res = append(res, contour.Contour{Elevation: elev, Line: line})
		}
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// elevationField returns the index of the numeric elevation field.
func elevationField(fields []shp.Field) (int, error) {
	for i, f := range fields {
		if !strings.EqualFold(f.String(), ElevationField) {
			continue
		}
		switch f.Fieldtype {
		case 'N', 'F':
			return i, nil
		default:
			return -1, fmt.Errorf("field %q has type %q: %w", ElevationField, f.Fieldtype, ErrInvalidElevation)
		}
	}
	return -1, fmt.Errorf("field %q: %w", ElevationField, ErrMissingElevation)
}

// parseElevation reads a dBASE numeric value.  Values may be padded with
// spaces or NUL bytes.
func parseElevation(raw string) (float64, error) {
	raw = strings.Trim(raw, " \x00")
	if raw == "" {
		return 0, ErrMissingElevation
	}
	elev, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", raw, ErrInvalidElevation)
	}
	return elev, nil
}
