// Copyright 2014 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

// Package raster provides support for reading and creating the ESRI ASCII
// grids written by GRAL and GRAMM (concentration, deposition, building
// heights, steady state and TPI result files).
package raster

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"
)

type rasterData interface {
	FileName() string
	Header() Header
	MinimumValue() float64
	MaximumValue() float64
	Value(index int) float64
	Data() []float64
	Save(fileName string) error
}

// DefaultNoData is the ESRI nodata value, used when a grid declares none.
const DefaultNoData = -9999.0

// Header describes the geometry and GRAL specific annotations of a grid.
// NoData is always compared against cell values, so headers built in memory
// should come from NewHeader or set it explicitly.
type Header struct {
	Columns, Rows int
	// West and South are the coordinates of the lower-left grid corner.
	West, South float64
	CellSize    float64
	NoData      float64
	// Unit is the optional unit annotation GRAL writes into result files.
	Unit string
	// VerticalConcentrationMap marks vertical slices through a concentration field.
	VerticalConcentrationMap bool
	// CellCenterMode is set when the origin was given as xllcenter/yllcenter.
	CellCenterMode bool
}

// NewHeader returns the header of a grid with the default nodata value.
func NewHeader(rows, columns int, west, south, cellSize float64) Header {
	return Header{
		Rows:     rows,
		Columns:  columns,
		West:     west,
		South:    south,
		CellSize: cellSize,
		NoData:   DefaultNoData,
	}
}

// North returns the coordinate of the northern grid edge.
func (h Header) North() float64 {
	return h.South + float64(h.Rows)*h.CellSize
}

// East returns the coordinate of the eastern grid edge.
func (h Header) East() float64 {
	return h.West + float64(h.Columns)*h.CellSize
}

// NumberOfCells returns rows * columns.
func (h Header) NumberOfCells() int {
	return h.Rows * h.Columns
}

// Validate checks the header invariants.
func (h Header) Validate() error {
	if h.Columns <= 0 || h.Rows <= 0 {
		return fmt.Errorf("%w: grid has %d rows and %d columns", InvalidHeaderError, h.Rows, h.Columns)
	}
	if !(h.CellSize > 0) || math.IsInf(h.CellSize, 0) {
		return fmt.Errorf("%w: cell size %v", InvalidHeaderError, h.CellSize)
	}
	return nil
}

// Raster is a read-only grid of float64 cell values. Row 0 is the northern
// row. A Raster is never modified after it has been created and may be
// shared between goroutines.
type Raster struct {
	Rows, Columns            int
	NumberofCells            int
	North, South, East, West float64
	NoDataValue              float64
	FileName                 string
	FileExtension            string
	RasterFormat             RasterType
	rd                       rasterData
}

// CreateRasterFromFile reads a raster file. The format is determined from
// the file name and, for ambiguous extensions, from the file header.
func CreateRasterFromFile(fileName string) (*Raster, error) {
	var r Raster
	r.FileName = fileName
	r.FileExtension = strings.ToLower(filepath.Ext(r.FileName))

	rt, err := DetermineRasterFormat(fileName)
	if err != nil {
		return nil, err
	}
	r.RasterFormat = rt

	switch rt {
	case RT_ArcGisAsciiRaster:
		myArcRaster := new(arcGisAsciiRaster)
		if err = myArcRaster.SetFileName(fileName); err != nil {
			return nil, err
		}
		r.rd = myArcRaster
	default:
		return nil, UnsupportedRasterFormatError
	}

	setVariablesFromRasterData(&r, r.rd)
	return &r, nil
}

// CreateRasterFromGrid creates an in-memory raster. values are row-major,
// northern row first, and are copied.
func CreateRasterFromGrid(header Header, values []float64) (*Raster, error) {
	if err := header.Validate(); err != nil {
		return nil, err
	}
	if len(values) != header.NumberOfCells() {
		return nil, fmt.Errorf("%w: %d values for %d cells", DataSetError, len(values), header.NumberOfCells())
	}
	mr := newMemoryRaster(header, values)
	r := Raster{RasterFormat: RT_MemoryRaster, rd: mr}
	setVariablesFromRasterData(&r, r.rd)
	return &r, nil
}

// Value retrieves an individual cell value. Cells outside the grid are
// reported as nodata.
func (r *Raster) Value(row, column int) float64 {
	if column >= 0 && column < r.Columns && row >= 0 && row < r.Rows {
		return r.rd.Value(row*r.Columns + column)
	}
	return r.NoDataValue
}

// Dims returns the number of rows and columns.
func (r *Raster) Dims() (rows, columns int) {
	return r.Rows, r.Columns
}

// NoData returns the nodata value.
func (r *Raster) NoData() float64 {
	return r.NoDataValue
}

// CellSize returns the edge length of a (square) cell.
func (r *Raster) CellSize() float64 {
	return r.rd.Header().CellSize
}

// LowerLeft returns the coordinates of the south-west grid corner.
func (r *Raster) LowerLeft() (x, y float64) {
	return r.West, r.South
}

// GetHeader returns a copy of the grid header.
func (r *Raster) GetHeader() Header {
	return r.rd.Header()
}

// Unit returns the unit annotation of the file, or "".
func (r *Raster) Unit() string {
	return r.rd.Header().Unit
}

// IsVerticalConcentrationMap reports whether the file is a vertical slice.
func (r *Raster) IsVerticalConcentrationMap() bool {
	return r.rd.Header().VerticalConcentrationMap
}

// GetMinimumValue returns the smallest valid cell value.
func (r *Raster) GetMinimumValue() float64 {
	return r.rd.MinimumValue()
}

// GetMaximumValue returns the largest valid cell value.
func (r *Raster) GetMaximumValue() float64 {
	return r.rd.MaximumValue()
}

// Data returns a copy of the cell values.
func (r *Raster) Data() []float64 {
	src := r.rd.Data()
	out := make([]float64, len(src))
	copy(out, src)
	return out
}

// Save writes the raster as an ESRI ASCII grid.
func (r *Raster) Save(fileName string) error {
	return r.rd.Save(fileName)
}

func setVariablesFromRasterData(r *Raster, rd rasterData) {
	h := rd.Header()
	r.Columns = h.Columns
	r.Rows = h.Rows
	r.West = h.West
	r.South = h.South
	r.North = h.North()
	r.East = h.East()
	r.NoDataValue = h.NoData
	r.NumberofCells = h.NumberOfCells()
	if r.FileName == "" {
		r.FileName = rd.FileName()
	}
}

// findMinAndMaxVals scans values, skipping nodata. When there are no valid
// cells the returned minimum exceeds the maximum.
func findMinAndMaxVals(values []float64, nodata float64) (minVal float64, maxVal float64) {
	minVal = math.MaxFloat64
	maxVal = -math.MaxFloat64
	for _, v := range values {
		if v != nodata && !math.IsNaN(v) {
			if v > maxVal {
				maxVal = v
			}
			if v < minVal {
				minVal = v
			}
		}
	}
	return minVal, maxVal
}
