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

// Package merkle builds a deterministic Merkle tree over a set of
// (path, bytes) pairs, sorted by path, so that two ingestions of the
// same file set always produce the same root regardless of traversal
// order.
//
// The combining step is intentionally unusual: each level is collapsed
// by concatenating the *hex representations* of child digests (not the
// raw bytes) before hashing. This is normative — any reimplementation
// must match it exactly, or roots will diverge across versions.
package merkle

import (
	"sort"

	"github.com/kraklabs/ccg/pkg/hashing"
)

// DefaultFanout is the number of children combined at each level when
// the caller does not specify one.
const DefaultFanout = 16

// Leaf is a single (path, content-digest) pair in the tree.
type Leaf struct {
	Path   string
	Digest hashing.Digest
}

// Tree is the computed result of a Builder: the sorted leaves plus the
// root digest that summarizes them.
type Tree struct {
	Root   hashing.Digest
	Leaves []Leaf
}

// Builder accumulates (path, bytes) pairs and computes a Tree from them.
type Builder struct {
	fanout  int
	entries map[string][]byte
}

// NewBuilder creates a Builder with the given fanout (F >= 2). A fanout
// less than 2 is replaced with DefaultFanout.
func NewBuilder(fanout int) *Builder {
	if fanout < 2 {
		fanout = DefaultFanout
	}
	return &Builder{
		fanout:  fanout,
		entries: make(map[string][]byte),
	}
}

// Add records the bytes for path, overwriting any previous bytes
// recorded for the same path (last write wins, matching a single-pass
// directory walk that never revisits a path).
func (b *Builder) Add(path string, content []byte) {
	// Copy to avoid aliasing caller-owned buffers across the builder's
	// lifetime.
	cp := make([]byte, len(content))
	copy(cp, content)
	b.entries[path] = cp
}

// Len returns the number of distinct paths added so far.
func (b *Builder) Len() int {
	return len(b.entries)
}

// Build computes the Tree: leaves sorted by path, and the root digest
// obtained by iteratively collapsing the leaf digests in groups of up
// to fanout until a single digest remains. An empty builder yields the
// digest of the empty byte sequence as its root.
func (b *Builder) Build() Tree {
	leaves := make([]Leaf, 0, len(b.entries))
	for path, content := range b.entries {
		leaves = append(leaves, Leaf{Path: path, Digest: hashing.Hash(content)})
	}
	sort.Slice(leaves, func(i, j int) bool { return leaves[i].Path < leaves[j].Path })

	if len(leaves) == 0 {
		return Tree{Root: hashing.Empty, Leaves: leaves}
	}

	level := make([]hashing.Digest, len(leaves))
	for i, l := range leaves {
		level[i] = l.Digest
	}

	for len(level) > 1 {
		level = collapse(level, b.fanout)
	}

	return Tree{Root: level[0], Leaves: leaves}
}

// collapse groups consecutive digests into chunks of up to fanout,
// concatenating the hex text of each digest in the chunk (not its raw
// bytes) and hashing the result to produce the next level up.
func collapse(level []hashing.Digest, fanout int) []hashing.Digest {
	next := make([]hashing.Digest, 0, (len(level)+fanout-1)/fanout)
	for i := 0; i < len(level); i += fanout {
		end := i + fanout
		if end > len(level) {
			end = len(level)
		}
		var buf []byte
		for _, d := range level[i:end] {
			buf = append(buf, []byte(string(d))...)
		}
		next = append(next, hashing.Hash(buf))
	}
	return next
}

// DiffResult reports every path that differs between two leaf sets:
// present on only one side, or present on both with different digests.
type DiffResult struct {
	ChangedPaths []string
}

// FastEqual reports whether t and other share the same root digest —
// a single comparison that lets a caller skip the full per-path Diff
// entirely when two trees are already known to be identical.
func (t Tree) FastEqual(other Tree) bool {
	return t.Root == other.Root
}

// Diff performs a linear merge over the two path-sorted leaf lists and
// reports every path present in exactly one side, plus every path
// present in both sides whose digest differs. Output order follows the
// merge order of the two sorted leaf lists.
func (t Tree) Diff(other Tree) DiffResult {
	var result DiffResult

	i, j := 0, 0
	for i < len(t.Leaves) && j < len(other.Leaves) {
		a, c := t.Leaves[i], other.Leaves[j]
		switch {
		case a.Path < c.Path:
			result.ChangedPaths = append(result.ChangedPaths, a.Path)
			i++
		case a.Path > c.Path:
			result.ChangedPaths = append(result.ChangedPaths, c.Path)
			j++
		default:
			if a.Digest != c.Digest {
				result.ChangedPaths = append(result.ChangedPaths, a.Path)
			}
			i++
			j++
		}
	}
	for ; i < len(t.Leaves); i++ {
		result.ChangedPaths = append(result.ChangedPaths, t.Leaves[i].Path)
	}
	for ; j < len(other.Leaves); j++ {
		result.ChangedPaths = append(result.ChangedPaths, other.Leaves[j].Path)
	}

	return result
}
