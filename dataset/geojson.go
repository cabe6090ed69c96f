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
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/NicoRio42/map-generator/contour"
)

// LoadGeoJSON reads contours from a GeoJSON feature collection of
// LineString and MultiLineString features.
func LoadGeoJSON(name string) ([]contour.Contour, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, err
	}

	var res []contour.Contour
	for i, f := range fc.Features {
		elev, err := featureElevation(f)
		if err != nil {
			return nil, fmt.Errorf("feature %d: %w", i, err)
		}

		switch g := f.Geometry.(type) {
		case orb.LineString:
			res = append(res, contour.Contour{Elevation: elev, Line: g})
		case orb.MultiLineString:
			for _, part := range g {
				res = append(res, contour.Contour{Elevation: elev, Line: part})
			}
		case nil:
		default:
			return nil, fmt.Errorf("feature %d: %w %s", i, ErrUnsupportedGeometry, g.GeoJSONType())
		}
	}
	return res, nil
}

func featureElevation(f *geojson.Feature) (float64, error) {
	v, ok := f.Properties[ElevationField]
	if !ok || v == nil {
		return 0, ErrMissingElevation
	}
	elev, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("%v: %w", v, ErrInvalidElevation)
	}
	return elev, nil
}

// WriteGeoJSON writes contours as a GeoJSON feature collection of
// LineString features with an elevation property.
func WriteGeoJSON(name string, contours []contour.Contour) error {
	fc := geojson.NewFeatureCollection()
	for _, c := range contours {
		f := geojson.NewFeature(c.Line)
		f.Properties[ElevationField] = c.Elevation
		fc.Append(f)
	}

	data, err := fc.MarshalJSON()
	if err != nil {
		return err
	}
	return os.WriteFile(name, data, 0o644)
}
