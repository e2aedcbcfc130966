// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package tools

import (
	"fmt"
	"os"
	"strings"

	"github.com/gralgui/go-contour/drawing"
)

type ListContourMaps struct {
	toolManager *PluginToolManager
}

func (this *ListContourMaps) GetName() string {
	s := "ListContourMaps"
	return getFormattedToolName(s)
}

func (this *ListContourMaps) GetDescription() string {
	s := "Lists the contour maps of the project"
	return getFormattedToolDescription(s)
}

func (this *ListContourMaps) GetHelpDocumentation() string {
	return "Prints the contour maps of the project in drawing list order, with their legends."
}

func (this *ListContourMaps) SetToolManager(tm *PluginToolManager) {
	this.toolManager = tm
}

func (this *ListContourMaps) GetArgDescriptions() [][]string {
	return [][]string{}
}

func (this *ListContourMaps) ParseArguments(args []string) error {
	return this.Run()
}

func (this *ListContourMaps) CollectArguments() error {
	return this.Run()
}

func (this *ListContourMaps) Run() error {
	objects, err := this.toolManager.Objects()
	if err != nil {
		return err
	}
	printf("The project holds %d contour maps:\n", objects.Len())
	for _, o := range objects.Items() {
		printObject(o)
	}
	return nil
}

type RemoveContourMap struct {
	name        string
	toolManager *PluginToolManager
}

func (this *RemoveContourMap) GetName() string {
	s := "RemoveContourMap"
	return getFormattedToolName(s)
}

func (this *RemoveContourMap) GetDescription() string {
	s := "Removes a contour map from the project"
	return getFormattedToolDescription(s)
}

func (this *RemoveContourMap) GetHelpDocumentation() string {
	return "Removes the contour map with the given name (e.g. 'CM: Mean_NOx_101' or just 'Mean_NOx_101') from the project."
}

func (this *RemoveContourMap) SetToolManager(tm *PluginToolManager) {
	this.toolManager = tm
}

func (this *RemoveContourMap) GetArgDescriptions() [][]string {
	return [][]string{
		{"Name", "string", "The name of the contour map"},
	}
}

func (this *RemoveContourMap) ParseArguments(args []string) error {
	if len(args) != 1 || optionalArg(args[0]) {
		return &ArgumentError{this.GetName(), "Name", "is missing"}
	}
	this.name = objectName(args[0])
	return this.Run()
}

func (this *RemoveContourMap) CollectArguments() error {
	args, err := this.toolManager.collect(this)
	if err != nil {
		return err
	}
	return this.ParseArguments(args)
}

func (this *RemoveContourMap) Run() error {
	objects, err := this.toolManager.Objects()
	if err != nil {
		return err
	}
	if !objects.Remove(this.name) {
		return fmt.Errorf("no contour map named %q", this.name)
	}
	if err := this.toolManager.saveObjects(); err != nil {
		return err
	}
	printf("Removed %s\n", this.name)
	return nil
}

type ExportContours struct {
	name        string
	outputFile  string
	toolManager *PluginToolManager
}

func (this *ExportContours) GetName() string {
	s := "ExportContours"
	return getFormattedToolName(s)
}

func (this *ExportContours) GetDescription() string {
	s := "Writes the contour rings of a map as GeoJSON"
	return getFormattedToolDescription(s)
}

func (this *ExportContours) GetHelpDocumentation() string {
	return `Writes every contour ring of the named map as one GeoJSON polygon feature,
in drawing order, with the properties break_index, break_value and hole.`
}

func (this *ExportContours) SetToolManager(tm *PluginToolManager) {
	this.toolManager = tm
}

func (this *ExportContours) GetArgDescriptions() [][]string {
	return [][]string{
		{"Name", "string", "The name of the contour map"},
		{"OutputFile", "string", "The output GeoJSON file name, with directory and file extension"},
	}
}

func (this *ExportContours) ParseArguments(args []string) error {
	if len(args) != 2 {
		return &ArgumentError{this.GetName(), "list", "has the wrong number of entries"}
	}
	if optionalArg(args[0]) {
		return &ArgumentError{this.GetName(), "Name", "is missing"}
	}
	this.name = objectName(args[0])
	this.outputFile = this.toolManager.resolvePath(args[1])
	if this.outputFile == "" {
		return &ArgumentError{this.GetName(), "OutputFile", "is missing"}
	}
	if !strings.HasSuffix(strings.ToLower(this.outputFile), ".geojson") {
		this.outputFile += ".geojson"
	}
	return this.Run()
}

func (this *ExportContours) CollectArguments() error {
	args, err := this.toolManager.collect(this)
	if err != nil {
		return err
	}
	return this.ParseArguments(args)
}

func (this *ExportContours) Run() error {
	objects, err := this.toolManager.Objects()
	if err != nil {
		return err
	}
	o, ok := objects.Find(this.name)
	if !ok || o.Contours == nil {
		return fmt.Errorf("no contours for %q", this.name)
	}
	data, err := o.Contours.MarshalGeoJSON()
	if err != nil {
		return err
	}
	if err := os.WriteFile(this.outputFile, data, 0644); err != nil {
		return err
	}
	printf("Wrote %d rings to %s\n", o.Contours.RingCount(), this.outputFile)
	return nil
}

// objectName accepts map names with or without the "CM: " prefix.
func objectName(s string) string {
	prefix := strings.TrimSpace(drawing.NamePrefix)
	s = strings.TrimSpace(s)
	return drawing.NamePrefix + strings.TrimSpace(strings.TrimPrefix(s, prefix))
}
