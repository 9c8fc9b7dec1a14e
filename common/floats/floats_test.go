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

package floats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdd(t *testing.T) {
	a := []float64{1, 2, 3}
	Add(a, []float64{10, 20, 30})
	assert.Equal(t, []float64{11, 22, 33}, a)
	assert.Panics(t, func() { Add(a, []float64{1}) })
}

func TestSub(t *testing.T) {
	a := []float64{11, 22, 33}
	Sub(a, []float64{1, 2, 3})
	assert.Equal(t, []float64{10, 20, 30}, a)
	assert.Panics(t, func() { Sub(a, []float64{1}) })
}

func TestAddTo(t *testing.T) {
	dst := make([]float64, 3)
	AddTo([]float64{1, 2, 3}, []float64{4, 5, 6}, dst)
	assert.Equal(t, []float64{5, 7, 9}, dst)
	assert.Panics(t, func() { AddTo([]float64{1}, []float64{1, 2}, dst) })
}

func TestSubTo(t *testing.T) {
	dst := make([]float64, 3)
	SubTo([]float64{4, 5, 6}, []float64{1, 2, 3}, dst)
	assert.Equal(t, []float64{3, 3, 3}, dst)
	assert.Panics(t, func() { SubTo([]float64{1}, []float64{1, 2}, dst) })
}

func TestMulConstAdd(t *testing.T) {
	dst := []float64{1, 1, 1}
	MulConstAdd([]float64{1, 2, 3}, 2, dst)
	assert.Equal(t, []float64{3, 5, 7}, dst)
	assert.Panics(t, func() { MulConstAdd([]float64{1}, 2, dst) })
}

func TestDot(t *testing.T) {
	assert.Equal(t, 32.0, Dot([]float64{1, 2, 3}, []float64{4, 5, 6}))
	assert.Panics(t, func() { Dot([]float64{1}, []float64{1, 2}) })
}

func TestEuclidean(t *testing.T) {
	assert.Equal(t, 5.0, Euclidean([]float64{0, 0}, []float64{3, 4}))
	assert.Zero(t, Euclidean([]float64{1, 2}, []float64{1, 2}))
	assert.Panics(t, func() { Euclidean([]float64{1}, []float64{1, 2}) })
}
