// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package classify

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	hsluv "github.com/hsluv/hsluv-go"
)

// Ramp selects the colour space a legend gradient is interpolated in.
type Ramp int

const (
	// RampRGB interpolates each channel linearly.
	RampRGB Ramp = iota
	// RampHSLuv interpolates hue, saturation and lightness in HSLuv, which
	// gives steps of even perceived contrast.
	RampHSLuv
)

func (r Ramp) String() string {
	if r == RampHSLuv {
		return "hsluv"
	}
	return "rgb"
}

// ParseRamp accepts "rgb" and "hsluv".
func ParseRamp(s string) (Ramp, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "rgb":
		return RampRGB, nil
	case "hsluv":
		return RampHSLuv, nil
	}
	return RampRGB, fmt.Errorf("unknown colour ramp %q", s)
}

// Gradient returns n colours from start to end inclusive.
func Gradient(start, end color.RGBA, n int, ramp Ramp) []color.RGBA {
	if n <= 0 {
		return nil
	}
	out := make([]color.RGBA, n)
	if n == 1 {
		out[0] = start
		return out
	}
	var h1, s1, l1, h2, s2, l2 float64
	if ramp == RampHSLuv {
		h1, s1, l1 = hsluv.HsluvFromRGB(unit(start.R), unit(start.G), unit(start.B))
		h2, s2, l2 = hsluv.HsluvFromRGB(unit(end.R), unit(end.G), unit(end.B))
		// greys have no hue, borrow the other end's
		if s1 < 1e-6 {
			h1 = h2
		}
		if s2 < 1e-6 {
			h2 = h1
		}
		// shortest way round the hue circle
		if h2-h1 > 180 {
			h2 -= 360
		} else if h1-h2 > 180 {
			h2 += 360
		}
	}
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n-1)
		switch ramp {
		case RampHSLuv:
			h := math.Mod(h1+(h2-h1)*t+360, 360)
			r, g, b := hsluv.HsluvToRGB(h, s1+(s2-s1)*t, l1+(l2-l1)*t)
			out[i] = rgb(channel(r), channel(g), channel(b))
		default:
			out[i] = rgb(lerp(start.R, end.R, t), lerp(start.G, end.G, t), lerp(start.B, end.B, t))
		}
	}
	out[0] = start
	out[n-1] = end
	return out
}

// Recolor replaces fill and line colours with a gradient over all breaks.
func (c *Classification) Recolor(start, end color.RGBA, ramp Ramp) {
	c.FillColors = Gradient(start, end, len(c.Breaks), ramp)
	c.LineColors = append([]color.RGBA(nil), c.FillColors...)
}

func unit(v uint8) float64 {
	return float64(v) / 255
}

func channel(v float64) uint8 {
	v = math.Round(v * 255)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}
