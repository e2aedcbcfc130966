// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package drawing

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gralgui/go-contour/classify"
	"github.com/gralgui/go-contour/contour"
	yaml "gopkg.in/yaml.v2"
)

// SettingsFile is the project settings file inside a project directory.
const SettingsFile = "Settings.yaml"

const settingsVersion = 1

var ErrProjectFormat = errors.New("drawing: malformed project settings")

type settings struct {
	Version int           `yaml:"version"`
	Objects []objectEntry `yaml:"objects"`
}

type objectEntry struct {
	Name           string                  `yaml:"name"`
	File           string                  `yaml:"file"`
	Mode           string                  `yaml:"mode,omitempty"`
	Rings          string                  `yaml:"rings,omitempty"`
	Classification classify.Classification `yaml:"classification"`
}

const sidecarPattern = "contour_*.geojson"

func sidecarName(i int) string {
	return fmt.Sprintf("contour_%03d.geojson", i)
}

// SaveProject writes the settings of every object in list order, and one
// GeoJSON sidecar per object holding its rings.
func SaveProject(dir string, l *List) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	s := settings{Version: settingsVersion}
	written := make(map[string]bool)
	for i, o := range l.items {
		e := objectEntry{
			Name:           o.Name,
			File:           o.ContourFilename,
			Classification: o.Classification,
		}
		if o.Contours != nil {
			data, err := o.Contours.MarshalGeoJSON()
			if err != nil {
				return fmt.Errorf("drawing: encoding rings of %s: %w", o.Name, err)
			}
			e.Rings = sidecarName(i)
			e.Mode = o.Contours.Mode().String()
			if err := os.WriteFile(filepath.Join(dir, e.Rings), data, 0o644); err != nil {
				return err
			}
			written[e.Rings] = true
		}
		s.Objects = append(s.Objects, e)
	}
	out, err := yaml.Marshal(&s)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, SettingsFile), out, 0o644); err != nil {
		return err
	}
	return removeSidecars(dir, written)
}

// removeSidecars deletes ring files of objects no longer in the list.
func removeSidecars(dir string, keep map[string]bool) error {
	names, err := filepath.Glob(filepath.Join(dir, sidecarPattern))
	if err != nil {
		return err
	}
	for _, name := range names {
		if keep[filepath.Base(name)] {
			continue
		}
		if err := os.Remove(name); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

// LoadProject rebuilds the object list saved by SaveProject without reading
// the raster files again.
func LoadProject(dir string) (*List, error) {
	data, err := os.ReadFile(filepath.Join(dir, SettingsFile))
	if err != nil {
		return nil, err
	}
	var s settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProjectFormat, err)
	}
	if s.Version != settingsVersion {
		return nil, fmt.Errorf("%w: version %d", ErrProjectFormat, s.Version)
	}

	l := new(List)
	for _, e := range s.Objects {
		if err := e.Classification.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrProjectFormat, e.Name, err)
		}
		o := Object{Name: e.Name, ContourFilename: e.File, Classification: e.Classification}
		if e.Rings != "" {
			mode, err := contour.ParseMode(e.Mode)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrProjectFormat, e.Name, err)
			}
			raw, err := os.ReadFile(filepath.Join(dir, e.Rings))
			if err != nil {
				return nil, err
			}
			o.Contours, err = contour.UnmarshalGeoJSON(raw, e.Classification.Breaks, mode)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", e.Name, err)
			}
		}
		l.append(o)
	}
	return l, nil
}
