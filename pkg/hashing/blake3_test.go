// Copyright 2025 KrakLabs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package hashing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashDeterministic(t *testing.T) {
	a := Hash([]byte("print('a')\n"))
	b := Hash([]byte("print('a')\n"))
	assert.Equal(t, a, b)
	assert.Len(t, string(a), 64)
}

func TestHashSensitivity(t *testing.T) {
	a := Hash([]byte("print('a1')\n"))
	b := Hash([]byte("print('a2')\n"))
	assert.NotEqual(t, a, b)
}

func TestHashEmpty(t *testing.T) {
	a := Hash(nil)
	b := Hash([]byte{})
	assert.Equal(t, a, b)
	assert.Equal(t, Empty, a)
}

func TestDigestValid(t *testing.T) {
	d := Hash([]byte("x"))
	require.True(t, d.Valid())
	assert.False(t, Digest("too-short").Valid())
	assert.False(t, Digest("").Valid())
	assert.False(t, Digest("ZZ"+string(d)[2:]).Valid())
}

func TestDigestOrdering(t *testing.T) {
	a := Digest("aaaa")
	b := Digest("bbbb")
	assert.True(t, a.Less(b))
	assert.False(t, b.Less(a))
}
