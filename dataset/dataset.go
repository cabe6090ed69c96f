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

// Package dataset reads contour lines from vector files.
//
// Every feature of a contour dataset is a (multi-part) polyline with a
// numeric "elev" attribute.  Each part becomes one [contour.Contour].  A
// feature without a usable elevation makes the whole dataset unusable.
package dataset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/NicoRio42/map-generator/contour"
)

// ElevationField is the name of the elevation attribute.
const ElevationField = "elev"

var (
	// ErrMissingElevation is returned when a dataset has no elevation
	// attribute, or a feature has no value for it.
	ErrMissingElevation = errors.New("missing elevation attribute")

	// ErrInvalidElevation is returned when an elevation is not a number.
	ErrInvalidElevation = errors.New("elevation is not a number")

	// ErrUnsupportedGeometry is returned for features that are not lines.
	ErrUnsupportedGeometry = errors.New("unsupported geometry")
)

// BaseName is the file name, without extension, of the contour dataset of
// a tile.
const BaseName = "contours"

// Extensions lists the supported file name extensions, in order of
// preference.
var Extensions = []string{".shp", ".geojson", ".json"}

// Load reads all contours from the named file.
// The format is chosen by the file name extension.
func Load(name string) ([]contour.Contour, error) {
	var (
		res []contour.Contour
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".shp":
		res, err = LoadShapefile(name)
	case ".geojson", ".json":
		res, err = LoadGeoJSON(name)
	default:
		return nil, fmt.Errorf("%s: unknown dataset format %q", name, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return res, nil
}

// Find returns the path of the contour dataset in dir.
func Find(dir string) (string, error) {
	for _, ext := range Extensions {
		name := filepath.Join(dir, BaseName+ext)
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}
	}
	return "", fmt.Errorf("%s: no %s dataset found: %w", dir, BaseName, os.ErrNotExist)
}
