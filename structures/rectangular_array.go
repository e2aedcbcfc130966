// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

// This file was originally created by John Lindsay<jlindsay@uoguelph.ca>,
// March. 2015.
package structures

// A rectangular shaped array (matrix) of bool type, stored row-major in a
// single allocation. Cells outside the matrix read as false. The array is
// not thread-safe.
type RectangularArrayBool struct {
	data          []bool
	rows, columns int
}

func NewRectangularArrayBool(rows, columns int) *RectangularArrayBool {
	r := RectangularArrayBool{rows: rows, columns: columns}
	r.data = make([]bool, rows*columns)
	return &r
}

// Retrives an individual cell value in the matrix.
func (r *RectangularArrayBool) Value(row, column int) bool {
	if column >= 0 && column < r.columns && row >= 0 && row < r.rows {
		return r.data[row*r.columns+column]
	}
	return false
}

// Sets an individual cell value in the matrix.
func (r *RectangularArrayBool) SetValue(row, column int, value bool) {
	if column >= 0 && column < r.columns && row >= 0 && row < r.rows {
		r.data[row*r.columns+column] = value
	} // else do nothing, the cell is outside the bounds of the matrix
}

// A rectangular shaped array (matrix) of byte type used as a set of bit
// flags per cell. The array is not thread-safe.
type RectangularArrayByte struct {
	data          []byte
	rows, columns int
}

func NewRectangularArrayByte(rows, columns int) *RectangularArrayByte {
	r := RectangularArrayByte{rows: rows, columns: columns}
	r.data = make([]byte, rows*columns)
	return &r
}

// Retrives an individual cell value in the matrix. Cells outside the
// matrix read as 0.
func (r *RectangularArrayByte) Value(row, column int) byte {
	if column >= 0 && column < r.columns && row >= 0 && row < r.rows {
		return r.data[row*r.columns+column]
	}
	return 0
}

// SetBits ors mask into a cell.
func (r *RectangularArrayByte) SetBits(row, column int, mask byte) {
	if column >= 0 && column < r.columns && row >= 0 && row < r.rows {
		r.data[row*r.columns+column] |= mask
	}
}

// ClearBits removes mask from a cell.
func (r *RectangularArrayByte) ClearBits(row, column int, mask byte) {
	if column >= 0 && column < r.columns && row >= 0 && row < r.rows {
		r.data[row*r.columns+column] &^= mask
	}
}
