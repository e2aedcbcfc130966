// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

// Package drawing holds the contour map objects handed to the renderer and
// their persistence in a project directory.
package drawing

import (
	"path/filepath"
	"strings"

	"github.com/gralgui/go-contour/classify"
	"github.com/gralgui/go-contour/contour"
)

// NamePrefix marks contour map objects in the object list.
const NamePrefix = "CM: "

// Object is one contour map: its legend, style and rings, and the raster
// file it was built from.
type Object struct {
	Name            string
	ContourFilename string
	Classification  classify.Classification
	Contours        *contour.Set
}

// Assemble combines a classification and its rings into a map object named
// after the raster file.
func Assemble(fileName string, c classify.Classification, set *contour.Set) Object {
	return Object{
		Name:            ObjectName(fileName),
		ContourFilename: fileName,
		Classification:  c,
		Contours:        set,
	}
}

// ObjectName is NamePrefix followed by the file name without directory and
// extension.
func ObjectName(fileName string) string {
	base := filepath.Base(fileName)
	return NamePrefix + strings.TrimSuffix(base, filepath.Ext(base))
}

func (o *Object) Kind() classify.SourceKind {
	return o.Classification.Kind
}

// ShowFill reports whether the regions are painted.
func (o *Object) ShowFill() bool {
	return o.Classification.Style.Fill
}

// ShowLines reports whether contour lines are drawn.
func (o *Object) ShowLines() bool {
	return o.Classification.Style.LineWidth > 0
}

// List is the ordered set of active map objects. The first item is the most
// recently added one.
type List struct {
	items []Object
}

func (l *List) Len() int {
	return len(l.items)
}

func (l *List) InsertFront(o Object) {
	l.items = append(l.items, Object{})
	copy(l.items[1:], l.items)
	l.items[0] = o
}

func (l *List) append(o Object) {
	l.items = append(l.items, o)
}

// Remove deletes the first object with the given name.
func (l *List) Remove(name string) bool {
	for i := range l.items {
		if l.items[i].Name == name {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return true
		}
	}
	return false
}

// Find returns the first object with the given name.
func (l *List) Find(name string) (Object, bool) {
	for _, o := range l.items {
		if o.Name == name {
			return o, true
		}
	}
	return Object{}, false
}

// Items returns the objects in list order. The slice is a copy.
func (l *List) Items() []Object {
	return append([]Object(nil), l.items...)
}
