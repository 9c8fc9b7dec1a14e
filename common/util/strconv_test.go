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

package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "1.50", FormatFloat(1.5, 2))
	assert.Equal(t, "0.33", FormatFloat(1.0/3.0, 2))
	assert.Equal(t, "2", FormatFloat(float32(2), 0))
}

func TestFormatInt(t *testing.T) {
	assert.Equal(t, "64", FormatInt(64))
	assert.Equal(t, "-3", FormatInt(int8(-3)))
}
