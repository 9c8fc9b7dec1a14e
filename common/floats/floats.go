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

// Package floats provides dense float64 vector kernels shared by the matrix
// operations and the multiplication engines.
package floats

import (
	"math"

	gfloats "gonum.org/v1/gonum/floats"
)

// Add two vectors: dst = dst + s
func Add(dst, s []float64) {
	if len(dst) != len(s) {
		panic("floats: slice lengths do not match")
	}
	for i := range dst {
		dst[i] += s[i]
	}
}

// Sub one vector by another: dst = dst - s
func Sub(dst, s []float64) {
	if len(dst) != len(s) {
		panic("floats: slice lengths do not match")
	}
	for i := range dst {
		dst[i] -= s[i]
	}
}

// AddTo adds two vectors and saves the result in dst: dst = a + b
func AddTo(a, b, dst []float64) {
	if len(a) != len(b) || len(a) != len(dst) {
		panic("floats: slice lengths do not match")
	}
	for i := range a {
		dst[i] = a[i] + b[i]
	}
}

// SubTo subtracts one vector by another and saves the result in dst: dst = a - b
func SubTo(a, b, dst []float64) {
	if len(a) != len(b) || len(a) != len(dst) {
		panic("floats: slice lengths do not match")
	}
	for i := range a {
		dst[i] = a[i] - b[i]
	}
}

// MulConstAdd multiplies a vector by a const, then adds to dst: dst = dst + a * c
func MulConstAdd(a []float64, c float64, dst []float64) {
	if len(a) != len(dst) {
		panic("floats: slice lengths do not match")
	}
	gfloats.AddScaled(dst, c, a)
}

// Dot computes the dot product of two vectors.
func Dot(a, b []float64) float64 {
	if len(a) != len(b) {
		panic("floats: slice lengths do not match")
	}
	return gfloats.Dot(a, b)
}

// Euclidean computes the Euclidean distance between two vectors.
func Euclidean(a, b []float64) float64 {
	if len(a) != len(b) {
		panic("floats: slice lengths do not match")
	}
	var ret float64
	for i := range a {
		ret += (a[i] - b[i]) * (a[i] - b[i])
	}
	return math.Sqrt(ret)
}
