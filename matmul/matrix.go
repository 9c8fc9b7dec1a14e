// Copyright 2025 matmul-bench Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package matmul

import (
	"fmt"

	"github.com/nkusla/matmul-bench/base"
	"github.com/nkusla/matmul-bench/common/floats"
)

// Matrix is a dense matrix stored in contiguous column-major memory: element
// (i, j) lives at offset j*rows+i. A Matrix owns its backing storage
// exclusively; submatrices are independent copies, never views.
type Matrix struct {
	rows int
	cols int
	data []float64
}

// NewMatrix creates a zero-filled matrix with the given dimensions.
func NewMatrix(rows, cols int) *Matrix {
	return &Matrix{
		rows: rows,
		cols: cols,
		data: make([]float64, rows*cols),
	}
}

// NewRandomMatrix creates a matrix with elements drawn uniformly from [0, 1).
func NewRandomMatrix(rng base.RandomGenerator, rows, cols int) *Matrix {
	return &Matrix{
		rows: rows,
		cols: cols,
		data: rng.UnitVector(rows * cols),
	}
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int {
	return m.rows
}

// Cols returns the number of columns.
func (m *Matrix) Cols() int {
	return m.cols
}

// At returns the element at (i, j). Bounds are caller-guaranteed.
func (m *Matrix) At(i, j int) float64 {
	return m.data[j*m.rows+i]
}

// Set writes the element at (i, j). Bounds are caller-guaranteed.
func (m *Matrix) Set(i, j int, v float64) {
	m.data[j*m.rows+i] = v
}

// col returns the backing slice of column j.
func (m *Matrix) col(j int) []float64 {
	return m.data[j*m.rows : (j+1)*m.rows]
}

// Clone returns a deep copy.
func (m *Matrix) Clone() *Matrix {
	data := make([]float64, len(m.data))
	copy(data, m.data)
	return &Matrix{rows: m.rows, cols: m.cols, data: data}
}

// Submatrix copies the half-open region [rowStart, rowEnd) x [colStart, colEnd)
// into a new matrix.
func (m *Matrix) Submatrix(rowStart, rowEnd, colStart, colEnd int) *Matrix {
	result := NewMatrix(rowEnd-rowStart, colEnd-colStart)
	for j := 0; j < result.cols; j++ {
		src := m.col(colStart + j)
		copy(result.col(j), src[rowStart:rowEnd])
	}
	return result
}

// pad returns a zero-extended copy with the given dimensions.
func (m *Matrix) pad(rows, cols int) *Matrix {
	result := NewMatrix(rows, cols)
	for j := 0; j < m.cols; j++ {
		copy(result.col(j), m.col(j))
	}
	return result
}

// Add adds another matrix in place and returns the receiver for chaining.
// Panics if shapes differ.
func (m *Matrix) Add(other *Matrix) *Matrix {
	m.assertSameShape(other)
	floats.Add(m.data, other.data)
	return m
}

// Sub subtracts another matrix in place and returns the receiver for chaining.
// Panics if shapes differ.
func (m *Matrix) Sub(other *Matrix) *Matrix {
	m.assertSameShape(other)
	floats.Sub(m.data, other.data)
	return m
}

func (m *Matrix) assertSameShape(other *Matrix) {
	if m.rows != other.rows || m.cols != other.cols {
		panic(fmt.Sprintf("matmul: matrix shapes must agree: %dx%d and %dx%d",
			m.rows, m.cols, other.rows, other.cols))
	}
}

// CombineQuadrants assembles four quadrants into a single matrix. It is the
// exact inverse of the quadrant split performed with Submatrix. Panics if the
// quadrant shapes are inconsistent.
func CombineQuadrants(c11, c12, c21, c22 *Matrix) *Matrix {
	if c11.rows != c12.rows || c21.rows != c22.rows ||
		c11.cols != c21.cols || c12.cols != c22.cols {
		panic(fmt.Sprintf("matmul: quadrant shapes must agree: %dx%d, %dx%d, %dx%d, %dx%d",
			c11.rows, c11.cols, c12.rows, c12.cols, c21.rows, c21.cols, c22.rows, c22.cols))
	}
	rowsTop := c11.rows
	colsLeft := c11.cols
	result := NewMatrix(c11.rows+c21.rows, c11.cols+c12.cols)
	for j := 0; j < colsLeft; j++ {
		dst := result.col(j)
		copy(dst[:rowsTop], c11.col(j))
		copy(dst[rowsTop:], c21.col(j))
	}
	for j := 0; j < c12.cols; j++ {
		dst := result.col(colsLeft + j)
		copy(dst[:rowsTop], c12.col(j))
		copy(dst[rowsTop:], c22.col(j))
	}
	return result
}

// FrobeniusDistance returns the Frobenius norm of a-b. Panics if shapes
// differ.
func FrobeniusDistance(a, b *Matrix) float64 {
	a.assertSameShape(b)
	return floats.Euclidean(a.data, b.data)
}
