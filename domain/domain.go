// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

// Package domain runs the contour map pipeline: read a GRAL result raster,
// classify it, trace its contours and assemble the map object.
package domain

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/gralgui/go-contour/classify"
	"github.com/gralgui/go-contour/contour"
	"github.com/gralgui/go-contour/drawing"
	"github.com/gralgui/go-contour/geospatialfiles/raster"
)

var (
	// ErrRasterDecode wraps every failure to read the raster file.
	ErrRasterDecode = errors.New("raster decode failed")
	ErrBlankDataset = contour.ErrBlankDataset
)

// ResolveSourceKind maps the GRAL and GRAMM result file names to their
// source kind. Unknown names are Generic.
func ResolveSourceKind(path string) classify.SourceKind {
	name := filepath.Base(path)
	switch {
	case name == "building_heights.txt":
		return classify.Buildings
	case strings.Contains(name, "TPI_STDI.txt"):
		return classify.TpiCombined
	case strings.Contains(name, "steady_state.txt"):
		return classify.SteadyState
	case strings.Contains(name, "PrognosticSubDomainAreas.txt"):
		return classify.SubDomainAreas
	case strings.Contains(name, "RoughnessLengthsGral.txt"):
		return classify.RoughnessLength
	case strings.Contains(name, "TPI_Base.txt"):
		return classify.TpiBase
	case strings.Contains(name, "TPI_SlopeMax.txt"), strings.Contains(name, "TPI_SlopeMin.txt"):
		return classify.TpiSlope
	}
	return classify.Generic
}

// Options controls a pipeline run. The zero value resolves the kind from the
// file name and draws cumulative regions on a 1000 x 800 canvas.
type Options struct {
	// Kind overrides the kind resolved from the file name.
	Kind    *classify.SourceKind
	Canvas  classify.Canvas
	Mode    contour.Mode
	Workers int
	// Recolor replaces the generic yellow to red scale with a Ramp gradient.
	Recolor bool
	Ramp    classify.Ramp
	// Logger receives progress messages; nil is silent.
	Logger *log.Logger
}

var defaultCanvas = classify.Canvas{Width: 1000, Height: 800}

func (o *Options) logf(format string, args ...interface{}) {
	if o.Logger != nil {
		o.Logger.Printf(format, args...)
	}
}

// CreateContourMap builds the map object of one raster file.
func CreateContourMap(path string, opts Options) (drawing.Object, error) {
	start := time.Now()
	r, err := raster.CreateRasterFromFile(path)
	if err != nil {
		return drawing.Object{}, fmt.Errorf("%w: %s: %w", ErrRasterDecode, path, err)
	}
	return contourMap(path, r, opts, start)
}

// CreateContourMapFromRaster runs the pipeline on a raster already in memory.
// path names the object and drives kind and unit resolution.
func CreateContourMapFromRaster(path string, r *raster.Raster, opts Options) (drawing.Object, error) {
	return contourMap(path, r, opts, time.Now())
}

func contourMap(path string, r *raster.Raster, opts Options, start time.Time) (drawing.Object, error) {
	kind := ResolveSourceKind(path)
	if opts.Kind != nil {
		kind = *opts.Kind
	}
	min, max := r.GetMinimumValue(), r.GetMaximumValue()
	categorical := kind == classify.SubDomainAreas
	if !categorical && !(max-min >= contour.FlatTolerance) {
		opts.logf("%s: blank raster dataset (min %v, max %v)", path, min, max)
		return drawing.Object{}, fmt.Errorf("%s: %w", path, ErrBlankDataset)
	}

	canvas := opts.Canvas
	if canvas.Width <= 0 || canvas.Height <= 0 {
		canvas = defaultCanvas
	}
	h := r.GetHeader()
	c := classify.Classify(min, max, classify.Header{
		Rows:                     h.Rows,
		Columns:                  h.Columns,
		Unit:                     h.Unit,
		VerticalConcentrationMap: h.VerticalConcentrationMap,
		FileName:                 path,
	}, kind, canvas)
	if opts.Recolor && c.Kind == classify.Generic {
		c.Recolor(c.FillColors[0], c.FillColors[len(c.FillColors)-1], opts.Ramp)
	}
	opts.logf("%s: %s map, %d breaks from %v to %v", path, c.Kind, len(c.Breaks), c.Breaks[0], c.Breaks[len(c.Breaks)-1])

	set, err := contour.Build(r, c.Breaks, contour.Options{
		Mode:        opts.Mode,
		Filter:      c.Style.Filter,
		Categorical: categorical,
		Workers:     opts.Workers,
	})
	if err != nil {
		return drawing.Object{}, fmt.Errorf("%s: %w", path, err)
	}
	opts.logf("%s: %d rings traced in %v", path, set.RingCount(), time.Since(start))
	return drawing.Assemble(path, c, set), nil
}

// AddContourMap builds the map object of path and inserts it at the front
// of the list. The list is unchanged when the build fails.
func AddContourMap(l *drawing.List, path string, opts Options) (drawing.Object, error) {
	o, err := CreateContourMap(path, opts)
	if err != nil {
		return drawing.Object{}, err
	}
	l.InsertFront(o)
	return o, nil
}
