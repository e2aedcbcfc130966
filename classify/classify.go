// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

// Package classify derives the legend of a contour map: the break values, the
// fill and line colour per break, legend title and unit, and the initial
// drawing style. Special GRAL/GRAMM result files use fixed presets, every
// other raster gets a geometric scale between its minimum and maximum.
package classify

import (
	"fmt"
	"image/color"
	"math"
	"path/filepath"
	"strings"
)

const (
	// DensityThreshold is the cell count above which contour lines are
	// suppressed and the map is filled.
	DensityThreshold = 200000
	// GenericBreakCount is the number of breaks of the generic scale.
	GenericBreakCount = 9
	// DefaultTransparency is fully opaque.
	DefaultTransparency = 255

	UnitConcentration = "µg/m³"
	UnitDeposition    = "mg/m²"
)

// Header carries the raster properties the classification depends on.
type Header struct {
	Rows, Columns            int
	Unit                     string
	VerticalConcentrationMap bool
	// FileName is only consulted for the generic unit when Unit is empty.
	FileName string
}

// Canvas is the size of the drawing surface in pixels.
type Canvas struct {
	Width, Height int
}

type Legend struct {
	Title string `yaml:"title"`
	Unit  string `yaml:"unit"`
}

// FixedScale positions the colour scale when the map is too dense for
// contour lines.
type FixedScale struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Step   int `yaml:"step"`
}

type Style struct {
	Fill         bool        `yaml:"fill"`
	Filter       bool        `yaml:"filter"`
	LineWidth    int         `yaml:"line_width"`
	Transparency int         `yaml:"transparency"`
	Scale        *FixedScale `yaml:"scale,omitempty"`
}

// Classification is the legend of one contour map. Breaks, FillColors and
// LineColors always have the same length and Breaks never decrease.
type Classification struct {
	Kind       SourceKind   `yaml:"kind"`
	Breaks     []float64    `yaml:"breaks"`
	FillColors []color.RGBA `yaml:"fill_colors"`
	LineColors []color.RGBA `yaml:"line_colors"`
	Legend     Legend       `yaml:"legend"`
	Style      Style        `yaml:"style"`
}

// Classify never fails; kinds without a preset are treated as Generic.
func Classify(min, max float64, h Header, kind SourceKind, canvas Canvas) Classification {
	if kind < 0 || int(kind) >= len(sourceKindNames) {
		kind = Generic
	}
	c := Classification{Kind: kind}
	c.Style.Transparency = DefaultTransparency

	if p, ok := presets[kind]; ok {
		c.applyPreset(p)
	} else {
		c.applyGeneric(min, max, h, canvas)
	}
	c.Style.Fill = fillEnabled(kind, h)

	if err := c.Validate(); err != nil {
		panic(err)
	}
	return c
}

func (c *Classification) applyPreset(p *preset) {
	c.Breaks = append([]float64(nil), p.breaks...)
	c.FillColors = append([]color.RGBA(nil), p.fillColors...)
	if p.lineColors != nil {
		c.LineColors = append([]color.RGBA(nil), p.lineColors...)
	} else {
		c.LineColors = append([]color.RGBA(nil), p.fillColors...)
	}
	c.Legend = Legend{Title: p.title, Unit: p.unit}
	c.Style.Filter = false
	c.Style.LineWidth = 0
	c.Style.Transparency = p.transparency
}

func (c *Classification) applyGeneric(min, max float64, h Header, canvas Canvas) {
	c.Breaks = GeometricBreaks(min, max, GenericBreakCount)
	c.FillColors = genericColors()
	c.LineColors = genericColors()

	c.Legend.Title = "Title"
	if h.VerticalConcentrationMap {
		c.Legend.Title = "Vertical Concentration"
	}
	c.Legend.Unit = genericUnit(h, c.Kind)

	// GRAMM roughness maps are drawn unsmoothed
	grammRoughness := strings.Contains(filepath.Base(h.FileName), "roughness.txt")
	c.Style.Filter = !(c.Kind == TpiBase || h.VerticalConcentrationMap || grammRoughness)
	if h.Rows*h.Columns <= DensityThreshold {
		c.Style.LineWidth = 1
	} else {
		c.Style.LineWidth = 0
		c.Style.Scale = &FixedScale{Width: canvas.Width - 150, Height: canvas.Height - 200, Step: 1}
	}
}

// GeometricBreaks returns n breaks approaching max geometrically:
// breaks[i] = min + (max-min)/2^(n-1-i), with the last break exactly max.
func GeometricBreaks(min, max float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	breaks := make([]float64, n)
	for i := 0; i < n-1; i++ {
		breaks[i] = min + (max-min)/math.Pow(2, float64(n-1-i))
	}
	breaks[n-1] = max
	return breaks
}

// genericColors steps from yellow towards red in tenths of the channel
// difference, truncating like the legend files written so far. The last
// break is pure red.
func genericColors() []color.RGBA {
	out := make([]color.RGBA, GenericBreakCount)
	out[0] = Yellow
	for i := 1; i < GenericBreakCount-1; i++ {
		out[i] = rgb(tenthStep(Yellow.R, Red.R, i), tenthStep(Yellow.G, Red.G, i), tenthStep(Yellow.B, Red.B, i))
	}
	out[GenericBreakCount-1] = Red
	return out
}

func tenthStep(from, to uint8, i int) uint8 {
	return uint8(int(from) + (int(to)-int(from))/10*i)
}

func genericUnit(h Header, kind SourceKind) string {
	if h.Unit != "" {
		return h.Unit
	}
	switch kind {
	case TpiBase:
		return "m"
	case TpiSlope:
		return "°"
	}
	name := strings.ToUpper(filepath.Base(h.FileName))
	switch {
	case strings.Contains(name, "ODOUR"):
		return "%"
	case strings.Contains(name, "WINDSPEED") && strings.Contains(name, "TXT"):
		return "m/s"
	case strings.Contains(name, "DEPOSITION"):
		return UnitDeposition
	}
	return UnitConcentration
}

func fillEnabled(kind SourceKind, h Header) bool {
	switch kind {
	case Buildings, SteadyState, SubDomainAreas, RoughnessLength:
		return true
	}
	return kind.isTpi() || h.Rows*h.Columns > DensityThreshold
}

// Validate checks the structural invariants of a classification.
func (c *Classification) Validate() error {
	if len(c.FillColors) != len(c.Breaks) || len(c.LineColors) != len(c.Breaks) {
		return fmt.Errorf("classify: %d breaks with %d fill and %d line colours",
			len(c.Breaks), len(c.FillColors), len(c.LineColors))
	}
	for i := 1; i < len(c.Breaks); i++ {
		if !(c.Breaks[i] >= c.Breaks[i-1]) {
			return fmt.Errorf("classify: break %d (%v) is below break %d (%v)", i, c.Breaks[i], i-1, c.Breaks[i-1])
		}
	}
	return nil
}
