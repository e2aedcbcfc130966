// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package receptors

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/gralgui/go-contour/structures"
)

const (
	MaxHeight       = 999
	MaxDisplayValue = 1e6
)

var (
	ErrProjectLocked   = errors.New("receptors: project is locked")
	ErrInvalidReceptor = errors.New("receptors: invalid receptor")
)

// Form is the user input for one receptor. Coordinates are text as typed.
type Form struct {
	Name         string
	X, Y         string
	Height       float64
	DisplayValue float64
}

// Editor edits the receptor list of a project one item at a time. Positions
// run from 1 to Slots(); a position past the last item is a fresh slot for
// a new receptor.
type Editor struct {
	// MinHeight is the lowest receptor height accepted.
	MinHeight float64
	// Locked projects can be browsed but not changed.
	Locked bool

	fileName string
	items    []Receptor
	current  int
	slots    int
}

// NewEditor loads the receptors of fileName. A missing file is an empty list.
func NewEditor(fileName string, minHeight float64) (*Editor, error) {
	e := &Editor{MinHeight: minHeight, fileName: fileName}
	if err := e.Reset(); err != nil {
		return nil, err
	}
	return e, nil
}

// Reset discards all edits and reloads the receptor file.
func (e *Editor) Reset() error {
	items, err := Load(e.fileName)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	e.items = items
	e.slots = max(len(e.items), 1)
	e.current = min(e.current, e.slots-1)
	return nil
}

// Commit writes the receptor list to the receptor file.
func (e *Editor) Commit() error {
	if e.Locked {
		return ErrProjectLocked
	}
	return Save(e.fileName, e.items)
}

func (e *Editor) Len() int {
	return len(e.items)
}

// Items returns a copy of the receptor list.
func (e *Editor) Items() []Receptor {
	return append([]Receptor(nil), e.items...)
}

// Position returns the 1-based position of the current item.
func (e *Editor) Position() int {
	return e.current + 1
}

// Slots returns the number of selectable positions.
func (e *Editor) Slots() int {
	return e.slots
}

// Current returns the receptor at the current position. A fresh slot shows
// a copy of the last receptor, or a zero receptor for an empty list; isNew
// is true then. Height and display value are clamped to the editable range.
func (e *Editor) Current() (r Receptor, isNew bool) {
	switch {
	case e.current < len(e.items):
		r = e.items[e.current]
	case len(e.items) > 0:
		r, isNew = e.items[len(e.items)-1], true
	default:
		isNew = true
	}
	r.Height = float32(clamp(float64(r.Height), e.MinHeight, MaxHeight))
	r.DisplayValue = float32(clamp(float64(r.DisplayValue), -MaxDisplayValue, MaxDisplayValue))
	return r, isNew
}

// Save stores the form at the current position, replacing the item there or
// appending a new one in a fresh slot. The name must not be empty and both
// coordinates must be numbers.
func (e *Editor) Save(f Form) error {
	if e.Locked {
		return ErrProjectLocked
	}
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("%w: no name", ErrInvalidReceptor)
	}
	x, errX := strconv.ParseFloat(strings.TrimSpace(f.X), 64)
	y, errY := strconv.ParseFloat(strings.TrimSpace(f.Y), 64)
	if errX != nil || errY != nil {
		return fmt.Errorf("%w: coordinates %q, %q", ErrInvalidReceptor, f.X, f.Y)
	}
	r := Receptor{
		Name:         RemoveInvalidChars(f.Name),
		X:            x,
		Y:            y,
		Height:       float32(clamp(f.Height, e.MinHeight, MaxHeight)),
		DisplayValue: float32(clamp(f.DisplayValue, -MaxDisplayValue, MaxDisplayValue)),
	}
	if e.current < len(e.items) {
		e.items[e.current] = r
	} else {
		e.items = append(e.items, r)
		e.current = len(e.items) - 1
	}
	return nil
}

// Add saves the form and moves to a fresh slot. Forms without an x
// coordinate are ignored.
func (e *Editor) Add(f Form) error {
	if e.Locked {
		return ErrProjectLocked
	}
	if f.X == "" {
		return nil
	}
	if err := e.Save(f); err != nil {
		return err
	}
	e.slots = len(e.items) + 1
	e.current = len(e.items)
	return nil
}

// Append stores the form as a new receptor after the last one and selects it.
func (e *Editor) Append(f Form) error {
	if e.Locked {
		return ErrProjectLocked
	}
	saved := e.current
	e.current = len(e.items)
	if err := e.Save(f); err != nil {
		e.current = saved
		return err
	}
	e.slots = max(e.slots, len(e.items))
	return nil
}

// Next moves to the following position, if any.
func (e *Editor) Next() bool {
	return e.Select(e.current + 2)
}

// Previous moves to the preceding position, if any.
func (e *Editor) Previous() bool {
	return e.Select(e.current)
}

// Select moves to the 1-based position n.
func (e *Editor) Select(n int) bool {
	if n < 1 || n > e.slots {
		return false
	}
	e.current = n - 1
	return true
}

// RemoveCurrent deletes the receptor at the current position and shows the
// one that moves into its place, or the new last one.
func (e *Editor) RemoveCurrent() error {
	if e.Locked {
		return ErrProjectLocked
	}
	if e.current >= len(e.items) {
		return nil
	}
	e.items = append(e.items[:e.current], e.items[e.current+1:]...)
	if e.slots > 1 {
		e.slots--
	}
	e.current = min(e.current, e.slots-1)
	return nil
}

// RemoveAll deletes every receptor.
func (e *Editor) RemoveAll() error {
	if e.Locked {
		return ErrProjectLocked
	}
	e.items = nil
	e.slots = 1
	e.current = 0
	return nil
}

// Nearest returns the index of the receptor closest to (x, y) within radius.
func (e *Editor) Nearest(x, y, radius float64) (int, bool) {
	points := make([]structures.Point, len(e.items))
	for i, r := range e.items {
		points[i] = structures.Point{r.X, r.Y}
	}
	n := structures.NewKDTree(points).Nearest(structures.Point{x, y}, radius)
	if n == nil {
		return -1, false
	}
	return n.Index, true
}

// RemoveInvalidChars drops characters that would break the receptor file:
// separators, quotes and control characters.
func RemoveInvalidChars(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) || strings.ContainsRune(",;\"'", r) {
			return -1
		}
		return r
	}, strings.TrimSpace(s))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
