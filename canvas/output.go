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

package canvas

import (
	"fmt"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/tiff"
)

// Format is a raster file format.
type Format string

const (
	PNG  Format = "png"
	TIFF Format = "tiff"
)

// ParseFormat returns the format with the given name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(name); f {
	case PNG, TIFF:
		return f, nil
	case "tif":
		return TIFF, nil
	}
	return "", fmt.Errorf("unknown image format %q", name)
}

// Ext returns the file name extension of the format, including the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// Encode writes the canvas to w.
func (c *Canvas) Encode(w io.Writer, f Format) error {
	switch f {
	case PNG:
		return png.Encode(w, c.Image)
	case TIFF:
		return tiff.Encode(w, c.Image, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	}
	return fmt.Errorf("unknown image format %q", string(f))
}

// Save writes the canvas to the named file.
func (c *Canvas) Save(name string, f Format) (err error) {
	out, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()
	return c.Encode(out, f)
}

// SavePNG writes the canvas to the named file in PNG format.
func (c *Canvas) SavePNG(name string) error {
	return c.Save(name, PNG)
}
