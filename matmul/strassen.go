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
	"github.com/juju/errors"

	"github.com/nkusla/matmul-bench/common/parallel"
)

// Strassen computes C = A*B with Strassen's 7-multiplication recursion:
//
//	M1 = (A11+A22)(B11+B22)   M2 = (A21+A22)*B11        M3 = A11*(B12-B22)
//	M4 = A22*(B21-B11)        M5 = (A11+A12)*B22        M6 = (A21-A11)(B11+B12)
//	M7 = (A12-A22)(B21+B22)
//	C11 = M1+M4-M5+M7   C12 = M3+M5   C21 = M2+M4   C22 = M1-M2+M3+M6
//
// The combination order follows the formulas exactly; Strassen's scheme is
// only correct for this specific combination. Base case and parallel dispatch
// match DivideConquer. Odd dimensions are zero-padded per recursion level so
// that the quadrant sums are well-formed.
func Strassen(a, b *Matrix, opts *Options) (*Matrix, error) {
	if opts == nil {
		opts = NewOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	if err := validateDimensions(a, b); err != nil {
		return nil, errors.Trace(err)
	}
	pool, err := opts.pool()
	if err != nil {
		return nil, errors.Trace(err)
	}
	return strassen(a, b, opts.Threshold, pool)
}

func strassen(a, b *Matrix, threshold int, pool parallel.Pool) (*Matrix, error) {
	m, n, p := a.rows, a.cols, b.cols
	if m <= threshold || n <= threshold || p <= threshold {
		return iterative(a, b), nil
	}

	// Strassen's quadrant sums require equal-shaped quadrants. Odd
	// dimensions are zero-padded to even, multiplied, and the product is
	// trimmed back: the padded row and column contribute nothing.
	if m%2 != 0 || n%2 != 0 || p%2 != 0 {
		mPad, nPad, pPad := m+m%2, n+n%2, p+p%2
		c, err := strassen(a.pad(mPad, nPad), b.pad(nPad, pPad), threshold, pool)
		if err != nil {
			return nil, errors.Trace(err)
		}
		return c.Submatrix(0, m, 0, p), nil
	}

	mHalf, nHalf, pHalf := m/2, n/2, p/2

	a11 := a.Submatrix(0, mHalf, 0, nHalf)
	a12 := a.Submatrix(0, mHalf, nHalf, n)
	a21 := a.Submatrix(mHalf, m, 0, nHalf)
	a22 := a.Submatrix(mHalf, m, nHalf, n)

	b11 := b.Submatrix(0, nHalf, 0, pHalf)
	b12 := b.Submatrix(0, nHalf, pHalf, p)
	b21 := b.Submatrix(nHalf, n, 0, pHalf)
	b22 := b.Submatrix(nHalf, n, pHalf, p)

	// Each operand pair is materialized before dispatch so that every
	// sub-multiplication exclusively owns its inputs.
	operands := [7][2]*Matrix{
		{a11.Clone().Add(a22), b11.Clone().Add(b22)}, // M1
		{a21.Clone().Add(a22), b11.Clone()},          // M2
		{a11.Clone(), b12.Clone().Sub(b22)},          // M3
		{a22.Clone(), b21.Clone().Sub(b11)},          // M4
		{a11.Clone().Add(a12), b22.Clone()},          // M5
		{a21.Clone().Sub(a11), b11.Clone().Add(b12)}, // M6
		{a12.Clone().Sub(a22), b21.Clone().Add(b22)}, // M7
	}
	products := make([]*Matrix, len(operands))
	tasks := make([]parallel.Task, len(operands))
	for i := range operands {
		i := i
		tasks[i] = func() error {
			var err error
			products[i], err = strassen(operands[i][0], operands[i][1], threshold, pool)
			return errors.Trace(err)
		}
	}
	if err := pool.Join(tasks...); err != nil {
		return nil, errors.Trace(err)
	}

	m1, m2, m3, m4 := products[0], products[1], products[2], products[3]
	m5, m6, m7 := products[4], products[5], products[6]
	c11 := m1.Clone().Add(m4).Sub(m5).Add(m7)
	c12 := m3.Clone().Add(m5)
	c21 := m2.Clone().Add(m4)
	c22 := m1.Clone().Sub(m2).Add(m3).Add(m6)
	return CombineQuadrants(c11, c12, c21, c22), nil
}
