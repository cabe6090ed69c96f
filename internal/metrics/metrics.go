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

// Package metrics exposes Prometheus counters for map generation runs.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	TilesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mapgen_tiles_total",
		Help: "Total number of tiles processed, by outcome",
	}, []string{"status"})
	ContoursTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mapgen_contours_total",
		Help: "Total number of contours drawn, by tier",
	}, []string{"tier"})
	FormSegmentsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mapgen_form_segments_total",
		Help: "Total number of form line segments drawn",
	})
	SkippedContoursTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mapgen_skipped_contours_total",
		Help: "Total number of contours with fewer than two points",
	})
	TileDurationSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "mapgen_tile_duration_seconds",
		Help:    "Time spent rendering the contour layer of one tile",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
	})
)

func init() {
	prometheus.MustRegister(TilesTotal, ContoursTotal, FormSegmentsTotal, SkippedContoursTotal, TileDurationSeconds)
}

// Handler serves the registered metrics.
func Handler() http.Handler { return promhttp.Handler() }
