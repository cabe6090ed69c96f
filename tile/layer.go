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

package tile

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/NicoRio42/map-generator/canvas"
	"github.com/NicoRio42/map-generator/config"
	"github.com/NicoRio42/map-generator/contour"
	"github.com/NicoRio42/map-generator/dataset"
	"github.com/NicoRio42/map-generator/internal/logger"
	"github.com/NicoRio42/map-generator/internal/metrics"
	"github.com/NicoRio42/map-generator/pdfcanvas"
	"github.com/NicoRio42/map-generator/render"
)

// File names inside a tile directory.
const (
	LayerName     = "contours"
	FormLinesName = "form_lines.geojson"
)

// ContourLayer renders the contour layer of tiles.
type ContourLayer struct {
	Config config.Config

	// Log receives progress events.  If this is nil, logger.L() is used.
	Log *slog.Logger
}

// Render draws the contour layer of t and writes every configured output
// into the tile directory.
func (l ContourLayer) Render(t Tile) (render.Result, error) {
	log := l.Log
	if log == nil {
		log = logger.L()
	}
	log = log.With("tile", t.Name())

	start := time.Now()
	res, err := l.render(t, log)
	metrics.TileDurationSeconds.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.TilesTotal.WithLabelValues("error").Inc()
		return render.Result{}, err
	}

	metrics.TilesTotal.WithLabelValues("ok").Inc()
	metrics.ContoursTotal.WithLabelValues(contour.Master.String()).Add(float64(res.Master))
	metrics.ContoursTotal.WithLabelValues(contour.Normal.String()).Add(float64(res.Normal))
	metrics.ContoursTotal.WithLabelValues(contour.Form.String()).Add(float64(res.Form))
	metrics.FormSegmentsTotal.Add(float64(res.Segments))
	metrics.SkippedContoursTotal.Add(float64(res.Skipped))

	log.Info("tile_render_done",
		"master", res.Master,
		"normal", res.Normal,
		"form", res.Form,
		"segments", res.Segments,
		"skipped", res.Skipped,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return res, nil
}

func (l ContourLayer) render(t Tile, log *slog.Logger) (render.Result, error) {
	formats, err := l.Config.Formats()
	if err != nil {
		return render.Result{}, err
	}

	name, err := dataset.Find(t.Dir)
	if err != nil {
		return render.Result{}, err
	}
	contours, err := dataset.Load(name)
	if err != nil {
		return render.Result{}, err
	}
	log.Debug("tile_render_start", "dataset", name, "contours", len(contours))

	dpi := l.Config.DPIResolution
	width, height := t.ImageSize(dpi)

	c := canvas.New(width, height)
	res := l.draw(c, t, height, contours)
	for _, f := range formats {
		out := filepath.Join(t.Dir, LayerName+f.Ext())
		if err := c.Save(out, f); err != nil {
			return render.Result{}, fmt.Errorf("save %s: %w", out, err)
		}
	}

	if l.Config.Output.PDF {
		out := filepath.Join(t.Dir, LayerName+".pdf")
		pc, err := pdfcanvas.Create(out, width, height, dpi)
		if err != nil {
			return render.Result{}, err
		}
		l.draw(pc, t, height, contours)
		if err := pc.Close(); err != nil {
			return render.Result{}, fmt.Errorf("save %s: %w", out, err)
		}
	}

	if l.Config.Output.DumpSegments {
		out := filepath.Join(t.Dir, FormLinesName)
		if err := dataset.WriteGeoJSON(out, res.FormLines); err != nil {
			return render.Result{}, fmt.Errorf("save %s: %w", out, err)
		}
	}

	return res, nil
}

func (l ContourLayer) draw(s render.Surface, t Tile, height int, contours []contour.Contour) render.Result {
	dpi := l.Config.DPIResolution
	r := render.NewRenderer(s, render.NewTransform(t.Bound().Min, dpi, height), dpi)
	r.Selector = contour.Selector{
		Intervals: l.Config.ContourIntervals,
		Options:   l.Config.FormLines,
	}
	return r.Render(contours)
}
