// Copyright 2014 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package raster

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// RasterType is used to specify a data format of a raster
type RasterType int

const (
	RT_UnknownRaster RasterType = iota
	RT_ArcGisAsciiRaster
	RT_MemoryRaster
)

var rasterTypeList = []string{
	"UnknownRaster",
	"ArcGisAsciiRaster",
	"MemoryRaster",
}

// String returns the English name of the RasterType.
func (rt RasterType) String() string {
	if int(rt) < 0 || int(rt) >= len(rasterTypeList) {
		return rasterTypeList[0]
	}
	return rasterTypeList[rt]
}

// GRAL writes its result grids with .txt, .dat or .asc extensions.
var asciiExtensions = []string{".txt", ".dat", ".asc"}

// GetMapOfFormatsAndExtensions returns the readable formats and their file
// extensions.
func GetMapOfFormatsAndExtensions() map[string]string {
	return map[string]string{
		RT_ArcGisAsciiRaster.String(): strings.Join(asciiExtensions, ", "),
	}
}

// IsSupportedRasterFileExtension reports whether the extension of fileName
// belongs to a readable format.
func IsSupportedRasterFileExtension(fileName string) bool {
	fileExtension := strings.ToLower(filepath.Ext(fileName))
	for _, ext := range asciiExtensions {
		if fileExtension == ext {
			return true
		}
	}
	return false
}

// DetermineRasterFormat attempts to determine the raster format of an
// existing file from its name and its first lines.
func DetermineRasterFormat(fileName string) (RasterType, error) {
	if !IsSupportedRasterFileExtension(fileName) {
		return RT_UnknownRaster, UnsupportedRasterFormatError
	}
	f, err := os.Open(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return RT_UnknownRaster, FileDoesNotExistError
		}
		return RT_UnknownRaster, FileOpeningError
	}
	defer f.Close()

	// read in the first six lines of the file
	contents := ""
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineLength)
	j := 0
	for scanner.Scan() {
		contents += strings.ToLower(scanner.Text()) + "\n"
		j++
		if j == 6 {
			break
		}
	}

	if strings.Contains(contents, "ncols") &&
		strings.Contains(contents, "nrows") &&
		strings.Contains(contents, "xll") &&
		strings.Contains(contents, "yll") {
		return RT_ArcGisAsciiRaster, nil
	}
	return RT_UnknownRaster, UnsupportedRasterFormatError
}
