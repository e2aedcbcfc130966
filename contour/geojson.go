// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package contour

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	geojson "github.com/paulmach/go.geojson"
)

// Feature property names of the GeoJSON encoding.
const (
	PropertyBreakIndex = "break_index"
	PropertyBreakValue = "break_value"
	PropertyHole       = "hole"
)

var ErrGeoJSON = errors.New("contour: malformed contour GeoJSON")

// MarshalGeoJSON encodes every ring as one polygon feature, in drawing order.
func (s *Set) MarshalGeoJSON() ([]byte, error) {
	fc := geojson.NewFeatureCollection()
	for _, r := range s.All() {
		coords := make([][]float64, len(r.Points))
		for i, p := range r.Points {
			coords[i] = []float64{p[0], p[1]}
		}
		f := geojson.NewPolygonFeature([][][]float64{coords})
		f.SetProperty(PropertyBreakIndex, r.Break)
		f.SetProperty(PropertyBreakValue, s.breaks[r.Break])
		f.SetProperty(PropertyHole, r.Hole)
		fc.AddFeature(f)
	}
	if len(fc.Features) > 0 {
		b := s.Bound()
		fc.BoundingBox = []float64{b.Min[0], b.Min[1], b.Max[0], b.Max[1]}
	}
	return fc.MarshalJSON()
}

// UnmarshalGeoJSON rebuilds a set from MarshalGeoJSON output. The break
// values are not part of the features and must be supplied; breaks without
// rings are legal.
func UnmarshalGeoJSON(data []byte, breaks []float64, mode Mode) (*Set, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeoJSON, err)
	}
	set := &Set{
		breaks: append([]float64(nil), breaks...),
		mode:   mode,
		rings:  make([][]Ring, len(breaks)),
	}
	for n, f := range fc.Features {
		if f.Geometry == nil || !f.Geometry.IsPolygon() || len(f.Geometry.Polygon) != 1 {
			return nil, fmt.Errorf("%w: feature %d is not a single ring polygon", ErrGeoJSON, n)
		}
		index, err := f.PropertyFloat64(PropertyBreakIndex)
		if err != nil {
			return nil, fmt.Errorf("%w: feature %d: %v", ErrGeoJSON, n, err)
		}
		i := int(index)
		if float64(i) != index || i < 0 || i >= len(breaks) {
			return nil, fmt.Errorf("%w: feature %d has break index %v of %d breaks", ErrGeoJSON, n, index, len(breaks))
		}
		hole, err := f.PropertyBool(PropertyHole)
		if err != nil {
			return nil, fmt.Errorf("%w: feature %d: %v", ErrGeoJSON, n, err)
		}
		coords := f.Geometry.Polygon[0]
		pts := make(orb.Ring, len(coords))
		for k, c := range coords {
			if len(c) < 2 {
				return nil, fmt.Errorf("%w: feature %d has a short position", ErrGeoJSON, n)
			}
			pts[k] = orb.Point{c[0], c[1]}
		}
		if !pts.Closed() {
			return nil, fmt.Errorf("%w: feature %d ring is not closed", ErrGeoJSON, n)
		}
		set.rings[i] = append(set.rings[i], Ring{Break: i, Hole: hole, Points: pts})
	}
	return set, nil
}
