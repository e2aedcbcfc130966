// Copyright 2014 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package raster

// memoryRaster holds a grid built by the caller rather than read from disk.
type memoryRaster struct {
	data         []float64
	header       Header
	minimumValue float64
	maximumValue float64
}

func newMemoryRaster(h Header, values []float64) *memoryRaster {
	data := make([]float64, len(values))
	copy(data, values)
	r := &memoryRaster{data: data, header: h}
	r.minimumValue, r.maximumValue = findMinAndMaxVals(r.data, h.NoData)
	return r
}

func (r *memoryRaster) FileName() string {
	return ""
}

func (r *memoryRaster) Header() Header {
	return r.header
}

func (r *memoryRaster) MinimumValue() float64 {
	return r.minimumValue
}

func (r *memoryRaster) MaximumValue() float64 {
	return r.maximumValue
}

func (r *memoryRaster) Value(index int) float64 {
	return r.data[index]
}

func (r *memoryRaster) Data() []float64 {
	return r.data
}

func (r *memoryRaster) Save(fileName string) error {
	return writeAsciiGrid(fileName, r.header, r.data)
}
