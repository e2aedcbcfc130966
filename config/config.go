// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

// Package config reads the optional TOML settings file of the command line
// front end.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gralgui/go-contour/classify"
	"github.com/gralgui/go-contour/contour"
	"github.com/gralgui/go-contour/domain"
	"github.com/gralgui/go-contour/drawing"
	"github.com/gralgui/go-contour/receptors"
)

// DefaultFileName is looked up in the working directory.
const DefaultFileName = "go-contour.toml"

var ErrUnknownKey = errors.New("config: unknown key")

type Canvas struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

type Config struct {
	Canvas Canvas `toml:"canvas"`
	// FillMode is "cumulative" or "banded".
	FillMode string `toml:"fill_mode"`
	// Ramp is "rgb" or "hsluv"; Recolor applies it to generic maps.
	Ramp    string `toml:"ramp"`
	Recolor bool   `toml:"recolor"`
	// Workers bounds concurrent contour tracing, 0 is one per CPU.
	Workers           int     `toml:"workers"`
	ProjectDir        string  `toml:"project_dir"`
	MinReceptorHeight float64 `toml:"min_receptor_height"`
	// ProjectLocked makes receptor editing read-only.
	ProjectLocked bool `toml:"project_locked"`
}

func Default() Config {
	return Config{
		Canvas:     Canvas{Width: 1000, Height: 800},
		FillMode:   contour.Cumulative.String(),
		Ramp:       classify.RampRGB.String(),
		ProjectDir: ".",
	}
}

// Load reads fileName over the defaults. A missing file yields the defaults.
func Load(fileName string) (Config, error) {
	c := Default()
	md, err := toml.DecodeFile(fileName, &c)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("config: %s: %w", fileName, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%w in %s: %s", ErrUnknownKey, fileName, strings.Join(keys, ", "))
	}
	if _, err := c.PipelineOptions(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", fileName, err)
	}
	return c, nil
}

// PipelineOptions converts the settings for domain.CreateContourMap.
func (c Config) PipelineOptions() (domain.Options, error) {
	mode, err := contour.ParseMode(c.FillMode)
	if err != nil {
		return domain.Options{}, err
	}
	ramp, err := classify.ParseRamp(c.Ramp)
	if err != nil {
		return domain.Options{}, err
	}
	return domain.Options{
		Canvas:  classify.Canvas{Width: c.Canvas.Width, Height: c.Canvas.Height},
		Mode:    mode,
		Workers: c.Workers,
		Recolor: c.Recolor,
		Ramp:    ramp,
	}, nil
}

// SettingsDir is where the project keeps its map objects.
func (c Config) SettingsDir() string {
	return filepath.Join(c.ProjectDir, "Settings")
}

// SettingsFile is the project settings file of the map objects.
func (c Config) SettingsFile() string {
	return filepath.Join(c.SettingsDir(), drawing.SettingsFile)
}

// ReceptorFile is the receptor file of the project.
func (c Config) ReceptorFile() string {
	return filepath.Join(c.ProjectDir, receptors.FileName)
}
