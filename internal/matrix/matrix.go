// Package matrix provides a bounds-checked, row-major view over a flat
// point-major float64 buffer.
//
// The view aliases the caller's slice: writes through Row or Zero are
// visible in the caller's buffer. Indexing outside the (rows, cols) shape
// panics instead of silently reading a neighbouring row.
package matrix

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ErrShape is returned when a buffer does not match the requested shape.
var ErrShape = errors.New("matrix: buffer does not match shape")

// Matrix is a rows x cols view over a flat buffer.
type Matrix struct {
	dense *mat.Dense
	rows  int
	cols  int
}

// New wraps data as a rows x cols matrix without copying.
// data must hold exactly rows*cols values and both dimensions must be positive.
func New(rows, cols int, data []float64) (*Matrix, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrShape, rows, cols)
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("%w: %dx%d needs %d values, got %d", ErrShape, rows, cols, rows*cols, len(data))
	}
	return &Matrix{
		dense: mat.NewDense(rows, cols, data),
		rows:  rows,
		cols:  cols,
	}, nil
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.cols }

// Row returns row i as a slice aliasing the underlying buffer.
func (m *Matrix) Row(i int) []float64 {
	return m.dense.RawRowView(i)
}

// At returns the value at (i, j).
func (m *Matrix) At(i, j int) float64 {
	return m.dense.At(i, j)
}

// Zero sets every element to zero.
func (m *Matrix) Zero() {
	m.dense.Zero()
}

// Raw returns the underlying flat buffer.
func (m *Matrix) Raw() []float64 {
	return m.dense.RawMatrix().Data
}
