// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package contour

import (
	"math"

	"github.com/gralgui/go-contour/structures"
	"github.com/paulmach/orb"
)

// Boundary edges are unit cell edges between a member and a non-member cell,
// directed so that the member cell lies on their left. They are stored by
// their start vertex as direction bits. Vertex (x, y) is the grid corner at
// column x counted from the west and row y counted from the south.
const (
	dirEast = iota
	dirNorth
	dirWest
	dirSouth
)

var (
	dx = [4]int{1, 0, -1, 0}
	dy = [4]int{0, 1, 0, -1}
)

type tracer struct {
	values        []float64
	rows, columns int
	nodata        float64
	west, south   float64
	cellSize      float64
	filter        bool
}

func (t *tracer) member(v, lo, hi float64, bounded bool) bool {
	if v == t.nodata || math.IsNaN(v) {
		return false
	}
	return v >= lo && (!bounded || v < hi)
}

func (t *tracer) mask(lo, hi float64, bounded bool) *structures.RectangularArrayBool {
	m := structures.NewRectangularArrayBool(t.rows, t.columns)
	for row := 0; row < t.rows; row++ {
		for col := 0; col < t.columns; col++ {
			if t.member(t.values[row*t.columns+col], lo, hi, bounded) {
				m.SetValue(row, col, true)
			}
		}
	}
	return m
}

// edges marks every boundary edge of the region. Cells outside the grid are
// non-members, which closes regions along the grid edge.
func (t *tracer) edges(m *structures.RectangularArrayBool) *structures.RectangularArrayByte {
	flags := structures.NewRectangularArrayByte(t.rows+1, t.columns+1)
	for row := 0; row < t.rows; row++ {
		bottom := t.rows - 1 - row
		top := bottom + 1
		for col := 0; col < t.columns; col++ {
			if !m.Value(row, col) {
				continue
			}
			if !m.Value(row+1, col) {
				flags.SetBits(bottom, col, 1<<dirEast)
			}
			if !m.Value(row, col+1) {
				flags.SetBits(bottom, col+1, 1<<dirNorth)
			}
			if !m.Value(row-1, col) {
				flags.SetBits(top, col+1, 1<<dirWest)
			}
			if !m.Value(row, col-1) {
				flags.SetBits(top, col, 1<<dirSouth)
			}
		}
	}
	return flags
}

func (t *tracer) traceBreak(index int, lo, hi float64, bounded bool) []Ring {
	flags := t.edges(t.mask(lo, hi, bounded))
	var rings []Ring
	for y := 0; y <= t.rows; y++ {
		for x := 0; x <= t.columns; x++ {
			for {
				bits := flags.Value(y, x)
				if bits == 0 {
					break
				}
				dir := lowestDirection(bits)
				rings = append(rings, t.ring(index, walk(flags, x, y, dir)))
			}
		}
	}
	return rings
}

func lowestDirection(bits byte) int {
	for d := dirEast; d <= dirSouth; d++ {
		if bits&(1<<d) != 0 {
			return d
		}
	}
	return -1
}

// walk follows boundary edges from vertex (x, y) until it is back on the
// starting edge, clearing every edge it passes. At each vertex it turns left
// if it can, goes straight otherwise and turns right last, so regions
// touching only at a corner are traced as separate rings.
func walk(flags *structures.RectangularArrayByte, x, y, dir int) [][2]int {
	startX, startY, startDir := x, y, dir
	path := [][2]int{{x, y}}
	for {
		flags.ClearBits(y, x, 1<<dir)
		x += dx[dir]
		y += dy[dir]
		path = append(path, [2]int{x, y})

		atStart := x == startX && y == startY
		bits := flags.Value(y, x)
		if atStart {
			bits |= 1 << startDir
		}
		next := -1
		for _, turn := range [3]int{1, 0, 3} {
			d := (dir + turn) % 4
			if bits&(1<<d) != 0 {
				next = d
				break
			}
		}
		if next < 0 || (atStart && next == startDir) {
			return path
		}
		dir = next
	}
}

func (t *tracer) ring(index int, path [][2]int) Ring {
	pts := make(orb.Ring, len(path))
	for i, p := range path {
		pts[i] = orb.Point{
			t.west + float64(p[0])*t.cellSize,
			t.south + float64(p[1])*t.cellSize,
		}
	}
	r := Ring{
		Break:  index,
		Hole:   signedArea(path) < 0,
		Points: pts,
	}
	if t.filter {
		r.Points = simplifyRing(pts, 0.5*t.cellSize)
	}
	return r
}

// signedArea is twice the shoelace area in vertex units; positive for
// counter-clockwise paths.
func signedArea(path [][2]int) int {
	a := 0
	for i := 0; i+1 < len(path); i++ {
		a += path[i][0]*path[i+1][1] - path[i+1][0]*path[i][1]
	}
	return a
}
