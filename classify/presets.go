// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package classify

import "image/color"

// preset is a fixed legend scale. The values are shown to users as legend
// entries and must not be recomputed.
type preset struct {
	breaks       []float64
	fillColors   []color.RGBA
	lineColors   []color.RGBA // nil means same as fillColors
	title        string
	unit         string
	transparency int
}

func rgb(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

var (
	Yellow = rgb(255, 255, 0)
	Red    = rgb(255, 0, 0)
	Aqua   = rgb(0, 255, 255)
	Blue   = rgb(0, 0, 255)
)

// building heights: 3 m steps, bluish greys getting darker
var buildingsPreset = preset{
	breaks: []float64{3, 6, 9, 12, 15, 18},
	fillColors: []color.RGBA{
		rgb(222, 222, 243), rgb(189, 189, 231), rgb(156, 156, 219),
		rgb(123, 123, 207), rgb(90, 90, 195), rgb(57, 57, 183),
	},
	title:        "Buildings",
	unit:         "m",
	transparency: DefaultTransparency,
}

// combined terrain position index classes 0..8
var tpiPreset = preset{
	breaks: []float64{0, 1, 2, 3, 4, 5, 6, 7, 8},
	fillColors: []color.RGBA{
		rgb(0, 255, 255), rgb(0, 180, 180), rgb(128, 128, 255),
		rgb(16, 16, 16), rgb(32, 32, 32), rgb(255, 128, 64),
		rgb(208, 67, 0), rgb(235, 93, 93), rgb(219, 26, 26),
	},
	title:        "TPI Map",
	unit:         "TPI",
	transparency: DefaultTransparency,
}

// GRAMM steady state error classes
var steadyStatePreset = preset{
	breaks: []float64{-0.1, 0.9, 1.9, 2.9, 3.9, 4.9, 5.9, 6.9},
	fillColors: []color.RGBA{
		rgb(255, 0, 0), rgb(0, 32, 223), rgb(0, 64, 191), rgb(0, 96, 159),
		rgb(0, 128, 127), rgb(0, 160, 95), rgb(0, 192, 63), rgb(0, 224, 31),
	},
	title:        "SteadyStateError",
	unit:         "er",
	transparency: DefaultTransparency,
}

// prognostic sub domain areas are categorical: 0 outside, 1 inside
var subDomainPreset = preset{
	breaks:       []float64{0.1, 1},
	fillColors:   []color.RGBA{Aqua, Red},
	lineColors:   []color.RGBA{Blue, Red},
	title:        "GRAL Sub Domain Areas",
	unit:         " ",
	transparency: 160,
}

// Roughness length breaks are (i+1)*0.2 evaluated in float64, which is why
// some entries carry rounding noise. The title spelling matches existing
// project files.
var roughnessPreset = preset{
	breaks: []float64{0.2, 0.4, 0.6000000000000001, 0.8, 1, 1.2000000000000002, 1.4000000000000001, 1.6},
	fillColors: []color.RGBA{
		rgb(255, 255, 255), rgb(223, 223, 223), rgb(191, 191, 191), rgb(159, 159, 159),
		rgb(127, 127, 127), rgb(95, 95, 95), rgb(63, 63, 63), rgb(31, 31, 31),
	},
	title:        "GRAL Roughness Lenghts",
	unit:         "m",
	transparency: 160,
}

var presets = map[SourceKind]*preset{
	Buildings:       &buildingsPreset,
	TpiCombined:     &tpiPreset,
	SteadyState:     &steadyStatePreset,
	SubDomainAreas:  &subDomainPreset,
	RoughnessLength: &roughnessPreset,
}
