// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package contour

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/simplify"
)

// simplifyRing smooths the cell staircase with Douglas-Peucker. A ring that
// would collapse below four points or to zero area keeps its raw trace.
func simplifyRing(r orb.Ring, tolerance float64) orb.Ring {
	s := simplify.DouglasPeucker(tolerance).Ring(r.Clone())
	if len(s) > 0 && !s[0].Equal(s[len(s)-1]) {
		s = append(s, s[0])
	}
	if len(s) < 4 || math.Abs(planar.Area(s)) == 0 {
		return r
	}
	return s
}

// Polygons groups the rings of break i into polygons: each outer ring
// followed by the holes it encloses. A hole is attached to the smallest outer
// ring containing it.
func (s *Set) Polygons(i int) []orb.Polygon {
	rings := s.Rings(i)
	var (
		polygons []orb.Polygon
		areas    []float64
	)
	for _, r := range rings {
		if !r.Hole {
			polygons = append(polygons, orb.Polygon{r.Points})
			areas = append(areas, math.Abs(planar.Area(r.Points)))
		}
	}
	for _, r := range rings {
		if !r.Hole || len(r.Points) == 0 {
			continue
		}
		probe := r.Points[0]
		best := -1
		for j, p := range polygons {
			if !planar.RingContains(p[0], probe) {
				continue
			}
			if best < 0 || areas[j] < areas[best] {
				best = j
			}
		}
		if best >= 0 {
			polygons[best] = append(polygons[best], r.Points)
		}
	}
	return polygons
}

// Bound returns the bounding box of every ring in the set.
func (s *Set) Bound() orb.Bound {
	var b orb.Bound
	first := true
	for _, r := range s.All() {
		rb := r.Points.Bound()
		if first {
			b, first = rb, false
			continue
		}
		b = b.Union(rb)
	}
	return b
}
