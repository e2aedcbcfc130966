// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package classify

import (
	"fmt"
	"strings"
)

// SourceKind is the semantic category of a raster file. It is resolved once
// by whoever loads the file and selects the classification preset.
type SourceKind int

const (
	Generic SourceKind = iota
	Buildings
	TpiCombined
	TpiBase
	TpiSlope
	SteadyState
	SubDomainAreas
	RoughnessLength
)

var sourceKindNames = []string{
	"Generic",
	"Buildings",
	"TpiCombined",
	"TpiBase",
	"TpiSlope",
	"SteadyState",
	"SubDomainAreas",
	"RoughnessLength",
}

// String returns the English name of the kind. Unknown values print as Generic.
func (k SourceKind) String() string {
	if k < 0 || int(k) >= len(sourceKindNames) {
		return sourceKindNames[Generic]
	}
	return sourceKindNames[k]
}

// ParseSourceKind is the inverse of String; matching ignores case.
func ParseSourceKind(s string) (SourceKind, error) {
	s = strings.TrimSpace(s)
	for i, name := range sourceKindNames {
		if strings.EqualFold(s, name) {
			return SourceKind(i), nil
		}
	}
	return Generic, fmt.Errorf("unknown source kind %q", s)
}

// MarshalYAML stores the kind by name.
func (k SourceKind) MarshalYAML() (interface{}, error) {
	return k.String(), nil
}

// UnmarshalYAML reads a kind stored by name.
func (k *SourceKind) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	v, err := ParseSourceKind(s)
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// isTpi reports whether k is one of the terrain position index kinds.
func (k SourceKind) isTpi() bool {
	return k == TpiCombined || k == TpiBase || k == TpiSlope
}
