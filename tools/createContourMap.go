// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package tools

import (
	"log"
	"time"

	"github.com/gralgui/go-contour/classify"
	"github.com/gralgui/go-contour/contour"
	"github.com/gralgui/go-contour/domain"
	"github.com/gralgui/go-contour/drawing"
)

type CreateContourMap struct {
	inputFile   string
	kind        *classify.SourceKind
	mode        *contour.Mode
	toolManager *PluginToolManager
}

func (this *CreateContourMap) GetName() string {
	s := "CreateContourMap"
	return getFormattedToolName(s)
}

// Returns a short description of the tool.
func (this *CreateContourMap) GetDescription() string {
	s := "Contours a GRAL result raster and adds it to the project"
	return getFormattedToolDescription(s)
}

func (this *CreateContourMap) GetHelpDocumentation() string {
	ret := `Reads an ESRI ASCII raster written by GRAL or GRAMM, derives its legend
from the file name (building heights, steady state error, TPI, sub domain areas,
roughness lengths or a generic concentration scale), traces the contour rings
of every legend break and adds the map at the front of the project's map list.
A flat raster is rejected as a blank dataset.`
	return ret
}

func (this *CreateContourMap) SetToolManager(tm *PluginToolManager) {
	this.toolManager = tm
}

func (this *CreateContourMap) GetArgDescriptions() [][]string {
	numArgs := 3

	ret := make([][]string, numArgs)
	for i := range ret {
		ret[i] = make([]string, 3)
	}
	ret[0][0] = "InputFile"
	ret[0][1] = "string"
	ret[0][2] = "The input raster file name, with directory and file extension"

	ret[1][0] = "SourceKind"
	ret[1][1] = "string"
	ret[1][2] = "Legend preset (optional), e.g. Buildings; resolved from the file name if not specified"

	ret[2][0] = "FillMode"
	ret[2][1] = "string"
	ret[2][2] = "Region fill mode (optional), cumulative or banded"

	return ret
}

func (this *CreateContourMap) ParseArguments(args []string) error {
	if len(args) < 1 || len(args) > 3 {
		return &ArgumentError{this.GetName(), "list", "has the wrong number of entries"}
	}
	this.inputFile = this.toolManager.resolvePath(args[0])
	if this.inputFile == "" {
		return &ArgumentError{this.GetName(), "InputFile", "is missing"}
	}

	this.kind = nil
	if len(args) > 1 && !optionalArg(args[1]) {
		kind, err := classify.ParseSourceKind(args[1])
		if err != nil {
			return &ArgumentError{this.GetName(), "SourceKind", err.Error()}
		}
		this.kind = &kind
	}

	this.mode = nil
	if len(args) > 2 && !optionalArg(args[2]) {
		mode, err := contour.ParseMode(args[2])
		if err != nil {
			return &ArgumentError{this.GetName(), "FillMode", err.Error()}
		}
		this.mode = &mode
	}

	return this.Run()
}

func (this *CreateContourMap) CollectArguments() error {
	args, err := this.toolManager.collect(this)
	if err != nil {
		return err
	}
	return this.ParseArguments(args)
}

func (this *CreateContourMap) Run() error {
	start := time.Now()

	opts, err := this.toolManager.Config.PipelineOptions()
	if err != nil {
		return err
	}
	opts.Kind = this.kind
	if this.mode != nil {
		opts.Mode = *this.mode
	}
	opts.Logger = log.New(Output, "", 0)

	objects, err := this.toolManager.Objects()
	if err != nil {
		return err
	}
	printf("Reading %s...\n", this.inputFile)
	o, err := domain.AddContourMap(objects, this.inputFile, opts)
	if err != nil {
		return err
	}
	if err = this.toolManager.saveObjects(); err != nil {
		objects.Remove(o.Name)
		return err
	}

	printObject(o)
	println("Elapsed time (total):", time.Since(start))
	return nil
}

func printObject(o drawing.Object) {
	c := o.Classification
	printf("%s (%s, %s)\n", o.Name, c.Kind, o.ContourFilename)
	printf("Legend: %s [%s], fill %v, lines %v\n", c.Legend.Title, c.Legend.Unit, o.ShowFill(), o.ShowLines())
	for i, b := range c.Breaks {
		rings := 0
		if o.Contours != nil {
			rings = len(o.Contours.Rings(i))
		}
		col := c.FillColors[i]
		printf("  %2d  %-14.6g #%02x%02x%02x  %d rings\n", i, b, col.R, col.G, col.B, rings)
	}
}
