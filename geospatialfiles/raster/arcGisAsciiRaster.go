// Copyright 2014 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

// This file was originally created by John Lindsay<jlindsay@uoguelph.ca>,
// Nov. 2014.

package raster

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// maxLineLength bounds a single grid row; GRAL writes one raster row per line.
const maxLineLength = 64 * 1024 * 1024

// Used to manipulate an ESRI ASCII raster file as written by GRAL.
type arcGisAsciiRaster struct {
	fileName     string
	data         []float64
	header       Header
	minimumValue float64
	maximumValue float64
}

// Retrieve the file name of this ArcGIS ASCII raster file.
func (r *arcGisAsciiRaster) FileName() string {
	return r.fileName
}

// Set the file name of this ArcGIS ASCII raster file and read it.
func (r *arcGisAsciiRaster) SetFileName(value string) (err error) {
	r.fileName = value
	if _, err = os.Stat(r.fileName); err != nil {
		return FileDoesNotExistError
	}
	return r.ReadFile()
}

func (r *arcGisAsciiRaster) Header() Header {
	return r.header
}

// Retrieve the raster's minimum value
func (r *arcGisAsciiRaster) MinimumValue() float64 {
	return r.minimumValue
}

// Retrieve the raster's maximum value
func (r *arcGisAsciiRaster) MaximumValue() float64 {
	return r.maximumValue
}

// Returns the value within data
func (r *arcGisAsciiRaster) Value(index int) float64 {
	return r.data[index]
}

func (r *arcGisAsciiRaster) Data() []float64 {
	return r.data
}

func (r *arcGisAsciiRaster) Save(fileName string) error {
	return writeAsciiGrid(fileName, r.header, r.data)
}

// Reads the file
func (r *arcGisAsciiRaster) ReadFile() error {
	if r.fileName == "" {
		return FileReadingError
	}
	f, err := os.Open(r.fileName)
	if err != nil {
		return FileOpeningError
	}
	defer f.Close()

	h, data, err := decodeAsciiGrid(f)
	if err != nil {
		return err
	}
	r.header = h
	r.data = data
	r.minimumValue, r.maximumValue = findMinAndMaxVals(r.data, r.header.NoData)
	return nil
}

type asciiHeaderState struct {
	header                   Header
	xll, yll                 float64
	haveXCorner, haveYCorner bool
	haveXCenter, haveYCenter bool
}

// decodeAsciiGrid reads the header block followed by row-major cell values.
// The header ends at the first line whose first field is a number.
func decodeAsciiGrid(rd io.Reader) (Header, []float64, error) {
	var st asciiHeaderState
	st.header.NoData = DefaultNoData
	var data []float64
	inHeader := true
	cellNum := 0
	lineNum := 0

	scanner := bufio.NewScanner(rd)
	scanner.Buffer(make([]byte, 64*1024), maxLineLength)
	for scanner.Scan() {
		lineNum++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if inHeader {
			if _, err := strconv.ParseFloat(fields[0], 64); err != nil {
				if err := st.parseLine(fields, lineNum); err != nil {
					return Header{}, nil, err
				}
				continue
			}
			// it's the first data line
			inHeader = false
			if err := st.finish(); err != nil {
				return Header{}, nil, err
			}
			data = make([]float64, st.header.NumberOfCells())
		}
		for _, v := range fields {
			if cellNum >= len(data) {
				return Header{}, nil, fmt.Errorf("%w: line %d: more than %d values", FileIsNotProperlyFormated, lineNum, len(data))
			}
			val, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return Header{}, nil, fmt.Errorf("%w: line %d: %q is not a number", FileIsNotProperlyFormated, lineNum, v)
			}
			data[cellNum] = val
			cellNum++
		}
	}
	if err := scanner.Err(); err != nil {
		return Header{}, nil, fmt.Errorf("%w: %v", FileReadingError, err)
	}
	if inHeader {
		return Header{}, nil, fmt.Errorf("%w: no grid values", FileIsNotProperlyFormated)
	}
	if cellNum != len(data) {
		return Header{}, nil, fmt.Errorf("%w: read %d of %d values", FileIsNotProperlyFormated, cellNum, len(data))
	}
	return st.header, data, nil
}

func (st *asciiHeaderState) parseLine(fields []string, lineNum int) error {
	key := strings.ToLower(fields[0])
	if strings.HasPrefix(key, "vertical") {
		st.header.VerticalConcentrationMap = true
		return nil
	}
	if strings.HasPrefix(key, "unit") {
		st.header.Unit, _ = unitAnnotation(fields)
		return nil
	}

	if len(fields) < 2 {
		return fmt.Errorf("%w: line %d: header entry %q has no value", FileIsNotProperlyFormated, lineNum, fields[0])
	}
	var err error
	switch key {
	case "ncols":
		st.header.Columns, err = strconv.Atoi(fields[1])
	case "nrows":
		st.header.Rows, err = strconv.Atoi(fields[1])
	case "xllcorner":
		st.xll, err = strconv.ParseFloat(fields[1], 64)
		st.haveXCorner = true
	case "yllcorner":
		st.yll, err = strconv.ParseFloat(fields[1], 64)
		st.haveYCorner = true
	case "xllcenter":
		st.xll, err = strconv.ParseFloat(fields[1], 64)
		st.haveXCenter = true
	case "yllcenter":
		st.yll, err = strconv.ParseFloat(fields[1], 64)
		st.haveYCenter = true
	case "cellsize":
		st.header.CellSize, err = strconv.ParseFloat(fields[1], 64)
	case "nodata_value", "nodata":
		st.header.NoData, err = strconv.ParseFloat(fields[1], 64)
		if unit, ok := unitAnnotation(fields[2:]); ok {
			st.header.Unit = unit
		}
	default:
		// unknown header entries are ignored
	}
	if err != nil {
		return fmt.Errorf("%w: line %d: bad value for %s", FileIsNotProperlyFormated, lineNum, fields[0])
	}
	return nil
}

func (st *asciiHeaderState) finish() error {
	h := &st.header
	if err := h.Validate(); err != nil {
		return err
	}
	if st.haveXCorner != st.haveYCorner || st.haveXCenter != st.haveYCenter ||
		(st.haveXCorner && st.haveXCenter) {
		return fmt.Errorf("%w: mixed or incomplete origin entries", InvalidHeaderError)
	}
	if st.haveXCenter {
		h.CellCenterMode = true
		h.West = st.xll - 0.5*h.CellSize
		h.South = st.yll - 0.5*h.CellSize
	} else {
		h.West = st.xll
		h.South = st.yll
	}
	return nil
}

// unitAnnotation finds a "Unit:" token and returns the rest of the line.
// "Unit: µg/m³", "Unit µg/m³" and "Unit:µg/m³" are all accepted.
func unitAnnotation(fields []string) (string, bool) {
	for i, f := range fields {
		lower := strings.ToLower(f)
		if !strings.HasPrefix(lower, "unit") {
			continue
		}
		rest := fields[i+1:]
		if idx := strings.Index(f, ":"); idx >= 0 && idx < len(f)-1 {
			rest = append([]string{f[idx+1:]}, rest...)
		}
		return strings.Join(rest, " "), true
	}
	return "", false
}

// writeAsciiGrid writes header and data; an existing file is replaced.
func writeAsciiGrid(fileName string, h Header, data []float64) error {
	f, err := os.Create(fileName)
	if err != nil {
		return FileWritingError
	}
	defer f.Close()
	w := bufio.NewWriter(f)

	var b strings.Builder
	b.WriteString("NCOLS         " + strconv.Itoa(h.Columns) + "\n")
	b.WriteString("NROWS         " + strconv.Itoa(h.Rows) + "\n")
	if h.CellCenterMode {
		b.WriteString("XLLCENTER     " + strconv.FormatFloat(h.West+h.CellSize/2.0, 'f', -1, 64) + "\n")
		b.WriteString("YLLCENTER     " + strconv.FormatFloat(h.South+h.CellSize/2.0, 'f', -1, 64) + "\n")
	} else {
		b.WriteString("XLLCORNER     " + strconv.FormatFloat(h.West, 'f', -1, 64) + "\n")
		b.WriteString("YLLCORNER     " + strconv.FormatFloat(h.South, 'f', -1, 64) + "\n")
	}
	b.WriteString("CELLSIZE      " + strconv.FormatFloat(h.CellSize, 'f', -1, 64) + "\n")
	b.WriteString("NODATA_VALUE  " + strconv.FormatFloat(h.NoData, 'f', -1, 64))
	if h.Unit != "" {
		b.WriteString("\tUnit:\t" + h.Unit)
	}
	b.WriteString("\n")
	if h.VerticalConcentrationMap {
		b.WriteString("VerticalConcentrationMap\n")
	}
	if _, err = w.WriteString(b.String()); err != nil {
		return FileWritingError
	}

	cellNum := 0
	for row := 0; row < h.Rows; row++ {
		b.Reset()
		for col := 0; col < h.Columns; col++ {
			if col > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(strconv.FormatFloat(data[cellNum], 'f', -1, 64))
			cellNum++
		}
		b.WriteByte('\n')
		if _, err = w.WriteString(b.String()); err != nil {
			return FileWritingError
		}
	}
	if err = w.Flush(); err != nil {
		return FileWritingError
	}
	return nil
}
