// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

// Package contour turns a raster and a sequence of break values into closed
// polygon rings, one set of rings per break, ready to be filled from the
// lowest to the highest break.
//
// Rings follow cell edges. A cell value equal to a break belongs to that
// break's region, nodata cells belong to no region and regions touching the
// grid edge are closed along it. Outer rings run counter-clockwise and holes
// clockwise in world coordinates (y pointing north).
package contour

import (
	"errors"
	"fmt"
	"math"
	"runtime"

	"github.com/paulmach/orb"
	"golang.org/x/sync/errgroup"
)

// FlatTolerance is the smallest value range (max - min) a raster must span
// before it is contoured, unless its values are categorical.
const FlatTolerance = 1e-12

var (
	// ErrBlankDataset is returned for rasters whose values do not vary.
	ErrBlankDataset = errors.New("contour: blank raster dataset")
	ErrNoBreaks     = errors.New("contour: no break values")
	ErrBreakOrder   = errors.New("contour: break values must not decrease")
	ErrInvalidGrid  = errors.New("contour: invalid grid")
)

// Grid is the read-only raster the builder works on. Row 0 is the northern
// row. *raster.Raster satisfies it.
type Grid interface {
	Dims() (rows, columns int)
	Value(row, column int) float64
	NoData() float64
	CellSize() float64
	LowerLeft() (x, y float64)
}

// Mode selects which cells belong to a break's region.
type Mode int

const (
	// Cumulative regions hold every cell with value >= break.
	Cumulative Mode = iota
	// Banded regions hold cells with break <= value < next break; the last
	// band is open above.
	Banded
)

func (m Mode) String() string {
	if m == Banded {
		return "banded"
	}
	return "cumulative"
}

// ParseMode accepts "cumulative" and "banded".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "cumulative", "Cumulative":
		return Cumulative, nil
	case "banded", "Banded":
		return Banded, nil
	}
	return Cumulative, fmt.Errorf("contour: unknown fill mode %q", s)
}

type Options struct {
	Mode Mode
	// Filter simplifies ring boundaries; raw cell-edge traces are kept otherwise.
	Filter bool
	// Categorical skips the blank dataset check, for rasters whose values are
	// class labels such as sub domain areas.
	Categorical bool
	// Workers bounds the number of breaks traced concurrently; 0 means
	// one per CPU.
	Workers int
}

// Ring is one closed boundary (first point == last point) of a break's region.
type Ring struct {
	Break  int
	Hole   bool
	Points orb.Ring
}

// Set holds the rings of every break. Rings of one break are kept in raster
// scan order of their first vertex.
type Set struct {
	breaks []float64
	mode   Mode
	rings  [][]Ring
}

// Len returns the number of breaks.
func (s *Set) Len() int {
	return len(s.breaks)
}

// Breaks returns a copy of the break values.
func (s *Set) Breaks() []float64 {
	return append([]float64(nil), s.breaks...)
}

func (s *Set) Mode() Mode {
	return s.mode
}

// Rings returns the rings of break i.
func (s *Set) Rings(i int) []Ring {
	if i < 0 || i >= len(s.rings) {
		return nil
	}
	return s.rings[i]
}

// All returns every ring in drawing order: ascending break index, so that
// higher breaks paint over lower ones.
func (s *Set) All() []Ring {
	var out []Ring
	for _, r := range s.rings {
		out = append(out, r...)
	}
	return out
}

// RingCount returns the total number of rings.
func (s *Set) RingCount() int {
	n := 0
	for _, r := range s.rings {
		n += len(r)
	}
	return n
}

// Build traces the region boundaries of every break. Breaks are traced
// concurrently; the result does not depend on scheduling.
func Build(g Grid, breaks []float64, opts Options) (*Set, error) {
	rows, columns := g.Dims()
	cellSize := g.CellSize()
	if rows <= 0 || columns <= 0 || !(cellSize > 0) || math.IsInf(cellSize, 0) {
		return nil, fmt.Errorf("%w: %d x %d cells of size %v", ErrInvalidGrid, rows, columns, cellSize)
	}
	if len(breaks) == 0 {
		return nil, ErrNoBreaks
	}
	for i := 1; i < len(breaks); i++ {
		if !(breaks[i] >= breaks[i-1]) {
			return nil, fmt.Errorf("%w: break %d is %v after %v", ErrBreakOrder, i, breaks[i], breaks[i-1])
		}
	}

	values := snapshot(g, rows, columns)
	nodata := g.NoData()
	if !opts.Categorical {
		min, max := valueRange(values, nodata)
		if !(max-min >= FlatTolerance) {
			return nil, ErrBlankDataset
		}
	}

	west, south := g.LowerLeft()
	tr := tracer{
		values:   values,
		rows:     rows,
		columns:  columns,
		nodata:   nodata,
		west:     west,
		south:    south,
		cellSize: cellSize,
		filter:   opts.Filter,
	}

	set := &Set{
		breaks: append([]float64(nil), breaks...),
		mode:   opts.Mode,
		rings:  make([][]Ring, len(breaks)),
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	var eg errgroup.Group
	eg.SetLimit(workers)
	for i := range breaks {
		i := i
		lo, hi, bounded := breaks[i], 0.0, false
		if opts.Mode == Banded && i+1 < len(breaks) {
			hi, bounded = breaks[i+1], true
		}
		eg.Go(func() error {
			set.rings[i] = tr.traceBreak(i, lo, hi, bounded)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return set, nil
}

func snapshot(g Grid, rows, columns int) []float64 {
	values := make([]float64, rows*columns)
	for row := 0; row < rows; row++ {
		for col := 0; col < columns; col++ {
			values[row*columns+col] = g.Value(row, col)
		}
	}
	return values
}

// valueRange skips nodata and NaN. Without valid cells min exceeds max.
func valueRange(values []float64, nodata float64) (min, max float64) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if v == nodata || math.IsNaN(v) {
			continue
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}
