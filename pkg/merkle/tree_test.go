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

package merkle

import (
	"testing"

	"github.com/kraklabs/ccg/pkg/hashing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildEmpty(t *testing.T) {
	tree := NewBuilder(2).Build()
	assert.Equal(t, hashing.Empty, tree.Root)
	assert.Empty(t, tree.Leaves)
}

func TestBuildSingleFileNoCombining(t *testing.T) {
	b := NewBuilder(2)
	content := []byte("print('a')\n")
	b.Add("a.py", content)
	tree := b.Build()

	require.Len(t, tree.Leaves, 1)
	leafDigest := hashing.Hash(content)
	assert.Equal(t, leafDigest, tree.Leaves[0].Digest)
	// Single leaf: root equals the leaf digest, no combining step.
	assert.Equal(t, leafDigest, tree.Root)
}

func TestBuildDeterministicRegardlessOfInsertionOrder(t *testing.T) {
	pairs := map[string][]byte{
		"a.py":         []byte("print('a')\n"),
		"b.py":         []byte("print('b')\n"),
		"pkg/c.py":     []byte("print('c')\n"),
		"pkg/d/e.py":   []byte("print('e')\n"),
		"zzz_last.txt": []byte("z"),
	}

	order1 := NewBuilder(2)
	for path, content := range pairs {
		order1.Add(path, content)
	}
	tree1 := order1.Build()

	order2 := NewBuilder(2)
	keys := []string{"zzz_last.txt", "b.py", "pkg/d/e.py", "a.py", "pkg/c.py"}
	for _, k := range keys {
		order2.Add(k, pairs[k])
	}
	tree2 := order2.Build()

	assert.Equal(t, tree1.Root, tree2.Root)
}

func TestBuildSensitiveToByteChange(t *testing.T) {
	b1 := NewBuilder(4)
	b1.Add("a.py", []byte("print('a1')\n"))
	b1.Add("b.py", []byte("print('b')\n"))
	tree1 := b1.Build()

	b2 := NewBuilder(4)
	b2.Add("a.py", []byte("print('a2')\n"))
	b2.Add("b.py", []byte("print('b')\n"))
	tree2 := b2.Build()

	assert.NotEqual(t, tree1.Root, tree2.Root)

	diff := tree1.Diff(tree2)
	assert.Contains(t, diff.ChangedPaths, "a.py")
	assert.NotContains(t, diff.ChangedPaths, "b.py")
}

func TestDiffAddedRemovedChanged(t *testing.T) {
	before := NewBuilder(2)
	before.Add("a.py", []byte("print('a1')\n"))
	before.Add("b.py", []byte("print('b')\n"))
	treeBefore := before.Build()

	after := NewBuilder(2)
	after.Add("a.py", []byte("print('a2')\n"))
	after.Add("c.py", []byte("print('c')\n"))
	treeAfter := after.Build()

	diff := treeBefore.Diff(treeAfter)
	assert.Contains(t, diff.ChangedPaths, "a.py")
	assert.Contains(t, diff.ChangedPaths, "b.py")
	assert.Contains(t, diff.ChangedPaths, "c.py")
	assert.Len(t, diff.ChangedPaths, 3)
}

func TestBuildRespectsFanout(t *testing.T) {
	small := NewBuilder(2)
	large := NewBuilder(64)
	for i := 0; i < 5; i++ {
		p := string(rune('a' + i))
		small.Add(p, []byte(p))
		large.Add(p, []byte(p))
	}
	// Different fanout over the same leaves must produce different roots
	// whenever more than one combining round happens (fanout=2 needs
	// multiple rounds for 5 leaves; fanout=64 collapses in one round).
	assert.NotEqual(t, small.Build().Root, large.Build().Root)
}

func TestLenTracksDistinctPaths(t *testing.T) {
	b := NewBuilder(2)
	b.Add("a.py", []byte("1"))
	b.Add("a.py", []byte("2"))
	b.Add("b.py", []byte("3"))
	assert.Equal(t, 2, b.Len())
}

func TestFastEqual(t *testing.T) {
	build := func() Tree {
		b := NewBuilder(2)
		b.Add("a.py", []byte("1"))
		b.Add("b.py", []byte("2"))
		return b.Build()
	}

	assert.True(t, build().FastEqual(build()))

	other := NewBuilder(2)
	other.Add("a.py", []byte("1"))
	other.Add("b.py", []byte("DIFFERENT"))
	assert.False(t, build().FastEqual(other.Build()))
}
