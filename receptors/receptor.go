// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

// Package receptors manages the receptor points of a GRAL project: named
// locations where concentrations are evaluated, stored in
// Computation/Receptor.dat.
package receptors

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// FileName is the receptor file relative to the project directory.
var FileName = filepath.Join("Computation", "Receptor.dat")

var ErrReceptorFile = errors.New("receptors: malformed receptor file")

// Receptor is one evaluation point. Height is above ground.
type Receptor struct {
	Name         string
	X, Y         float64
	Height       float32
	DisplayValue float32
}

// Load reads a receptor file: the number of receptors on the first line,
// then one "name,x,y,height,displayValue" line per receptor.
func Load(fileName string) ([]Receptor, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decode(f)
}

func decode(r io.Reader) ([]Receptor, error) {
	cr := csv.NewReader(bufio.NewReader(r))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	first, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReceptorFile, err)
	}
	count, err := strconv.Atoi(strings.TrimSpace(first[0]))
	if err != nil || len(first) != 1 || count < 0 {
		return nil, fmt.Errorf("%w: line 1: bad receptor count %q", ErrReceptorFile, strings.Join(first, ","))
	}

	items := make([]Receptor, 0, count)
	for i := 0; i < count; i++ {
		rec, err := cr.Read()
		if err == io.EOF {
			return nil, fmt.Errorf("%w: %d of %d receptors", ErrReceptorFile, i, count)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrReceptorFile, err)
		}
		item, err := parseRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrReceptorFile, i+2, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func parseRecord(rec []string) (Receptor, error) {
	if len(rec) != 5 {
		return Receptor{}, fmt.Errorf("%d fields", len(rec))
	}
	var (
		v   [4]float64
		err error
	)
	for i := range v {
		bits := 64
		if i >= 2 {
			bits = 32
		}
		if v[i], err = strconv.ParseFloat(strings.TrimSpace(rec[i+1]), bits); err != nil {
			return Receptor{}, err
		}
	}
	return Receptor{
		Name:         rec[0],
		X:            v[0],
		Y:            v[1],
		Height:       float32(v[2]),
		DisplayValue: float32(v[3]),
	}, nil
}

// Save writes items in the format read by Load, creating the directory.
func Save(fileName string, items []Receptor) error {
	if err := os.MkdirAll(filepath.Dir(fileName), 0755); err != nil {
		return err
	}
	f, err := os.Create(fileName)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err := encode(w, items); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func encode(w io.Writer, items []Receptor) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{strconv.Itoa(len(items))}); err != nil {
		return err
	}
	for _, r := range items {
		rec := []string{
			r.Name,
			strconv.FormatFloat(r.X, 'f', -1, 64),
			strconv.FormatFloat(r.Y, 'f', -1, 64),
			strconv.FormatFloat(float64(r.Height), 'f', -1, 32),
			strconv.FormatFloat(float64(r.DisplayValue), 'f', -1, 32),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
