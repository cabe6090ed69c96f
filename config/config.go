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

// Package config holds the settings of a map generation run.
//
// Settings are read from a JSON file.  Every field is optional: absent
// fields keep their default value, also inside nested objects.  A few
// settings can be overridden from the environment.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/NicoRio42/map-generator/canvas"
	"github.com/NicoRio42/map-generator/contour"
)

// DefaultFile is the configuration file read when none is given.
const DefaultFile = "config.json"

// DefaultDPI is the default output resolution.
const DefaultDPI = 600

// Environment variables overriding the configuration file.
const (
	EnvDPI     = "MAPGEN_DPI"
	EnvWorkers = "MAPGEN_WORKERS"
)

// Output selects the files written for every tile.
type Output struct {
	// Formats lists the raster formats of the contour layer
	// ("png", "tiff").
	Formats []string `json:"formats"`

	// PDF also writes the contour layer as a vector PDF.
	PDF bool `json:"pdf"`

	// DumpSegments writes the drawn form line segments as GeoJSON.
	DumpSegments bool `json:"dump_segments"`
}

// Config is the configuration of a run.
type Config struct {
	DPIResolution    float64                 `json:"dpi_resolution"`
	ContourIntervals contour.Intervals       `json:"contour_intervals"`
	FormLines        contour.FormLineOptions `json:"form_lines"`
	Output           Output                  `json:"output"`

	// Workers is the number of tiles rendered in parallel.
	// Zero means one per CPU.
	Workers int `json:"workers"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		DPIResolution:    DefaultDPI,
		ContourIntervals: contour.DefaultIntervals(),
		FormLines:        contour.DefaultFormLineOptions(),
		Output: Output{
			Formats: []string{string(canvas.PNG)},
		},
	}
}

// Load reads the configuration from the named file.
// A missing file gives the default configuration.
func Load(name string) (Config, error) {
	data, err := os.ReadFile(name)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	} else if err != nil {
		return Config{}, err
	}

	c, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", name, err)
	}
	return c, nil
}

// Parse decodes a JSON configuration on top of the defaults.
func Parse(data []byte) (Config, error) {
	c := Default()
	if err := json.Unmarshal(data, &c); err != nil {
		return Config{}, err
	}
	return c, nil
}

// ApplyEnv overrides settings from environment variables.
// lookup is normally os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvDPI); ok && v != "" {
		dpi, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDPI, err)
		}
		c.DPIResolution = dpi
	}
	if v, ok := lookup(EnvWorkers); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvWorkers, err)
		}
		c.Workers = n
	}
	return nil
}

// Formats returns the configured raster formats.
func (c Config) Formats() ([]canvas.Format, error) {
	res := make([]canvas.Format, 0, len(c.Output.Formats))
	for _, name := range c.Output.Formats {
		f, err := canvas.ParseFormat(name)
		if err != nil {
			return nil, err
		}
		res = append(res, f)
	}
	return res, nil
}

// Validate reports every setting that cannot be used.
func (c Config) Validate() error {
	var errs []error

	if !(c.DPIResolution > 0) {
		errs = append(errs, fmt.Errorf("dpi_resolution must be positive, got %g", c.DPIResolution))
	}

	iv := c.ContourIntervals
	switch {
	case !(iv.Normal > 0) || !(iv.Master > 0):
		errs = append(errs, fmt.Errorf("contour intervals must be positive, got %g and %g", iv.Normal, iv.Master))
	case math.Abs(math.Remainder(iv.Master, iv.Normal)) > 1e-9:
		errs = append(errs, fmt.Errorf("master interval %g is not a multiple of the normal interval %g", iv.Master, iv.Normal))
	}

	fl := c.FormLines
	for name, v := range map[string]float64{
		"threshold":               fl.Threshold,
		"min_distance_to_contour": fl.MinDistanceToContour,
		"max_distance_to_contour": fl.MaxDistanceToContour,
		"min_length":              fl.MinLength,
		"min_gap_length":          fl.MinGapLength,
		"additional_tail_length":  fl.AdditionalTailLength,
	} {
		if v < 0 || math.IsNaN(v) {
			errs = append(errs, fmt.Errorf("form_lines.%s must not be negative, got %g", name, v))
		}
	}

	if _, err := c.Formats(); err != nil {
		errs = append(errs, err)
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}

	return errors.Join(errs...)
}
