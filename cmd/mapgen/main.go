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

// Mapgen renders the contour layer of every tile of a map.
//
// Each tile directory below -out must hold a contours dataset
// (contours.shp or contours.geojson).  With -extent, the tiles covering
// the extent are rendered; otherwise every tile directory found in -out.
package main

import (
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/paulmach/orb"

	"github.com/NicoRio42/map-generator/config"
	"github.com/NicoRio42/map-generator/internal/logger"
	"github.com/NicoRio42/map-generator/internal/metrics"
	"github.com/NicoRio42/map-generator/tile"
)

var (
	configFile  = flag.String("config", config.DefaultFile, "configuration file")
	outDir      = flag.String("out", "out", "directory holding the tile directories")
	extentFlag  = flag.String("extent", "", "area to render, as minx,miny,maxx,maxy")
	tileSize    = flag.Float64("tile-size", tile.DefaultSize, "tile size in map units")
	buffer      = flag.Float64("buffer", tile.DefaultBuffer, "buffer around every tile in map units")
	workers     = flag.Int("workers", 0, "tiles rendered in parallel (0: from the configuration)")
	metricsAddr = flag.String("metrics-addr", "", "serve Prometheus metrics on this address while running")
)

func main() {
	_ = godotenv.Load(".env")
	l := logger.Setup()
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		l.Error("config_load_error", "err", err)
		os.Exit(1)
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		l.Error("config_env_error", "err", err)
		os.Exit(1)
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}
	if err := cfg.Validate(); err != nil {
		l.Error("config_invalid", "err", err)
		os.Exit(1)
	}
	l.Debug("config_ok", "file", *configFile, "dpi", cfg.DPIResolution, "workers", cfg.Workers)

	var tiles []tile.Tile
	if *extentFlag != "" {
		extent, err := parseExtent(*extentFlag)
		if err != nil {
			l.Error("extent_invalid", "err", err)
			os.Exit(1)
		}
		tiles = tile.Grid(extent, *tileSize, *buffer, *outDir)
	} else {
		tiles, err = tile.Discover(*outDir, *tileSize, *buffer)
		if err != nil {
			l.Error("tile_discover_error", "err", err)
			os.Exit(1)
		}
	}
	if len(tiles) == 0 {
		l.Warn("no_tiles", "out", *outDir)
		return
	}

	if *metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		go func() {
			err := http.ListenAndServe(*metricsAddr, mux)
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				l.Error("metrics_server_error", "err", err)
			}
		}()
		l.Info("metrics_server_start", "addr", *metricsAddr)
	}

	layer := tile.ContourLayer{Config: cfg, Log: l}
	start := time.Now()
	l.Info("run_start", "tiles", len(tiles))
	errs := tile.Run(tiles, cfg.Workers, func(t tile.Tile) error {
		_, err := layer.Render(t)
		return err
	})
	for _, err := range errs {
		l.Error("tile_render_error", "err", err)
	}
	l.Info("run_done",
		"tiles", len(tiles),
		"failed", len(errs),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	if len(errs) > 0 {
		os.Exit(1)
	}
}

// parseExtent reads a bounding box given as minx,miny,maxx,maxy.
func parseExtent(s string) (orb.Bound, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return orb.Bound{}, fmt.Errorf("extent %q: want minx,miny,maxx,maxy", s)
	}
	var v [4]float64
	for i, p := range parts {
		x, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return orb.Bound{}, fmt.Errorf("extent %q: %w", s, err)
		}
		v[i] = x
	}
	if v[0] >= v[2] || v[1] >= v[3] {
		return orb.Bound{}, fmt.Errorf("extent %q is empty", s)
	}
	return orb.Bound{Min: orb.Point{v[0], v[1]}, Max: orb.Point{v[2], v[3]}}, nil
}
