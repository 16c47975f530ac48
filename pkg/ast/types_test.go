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

package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOtherFormatsGrammarKind(t *testing.T) {
	assert.Equal(t, NodeType("Other(decorated_definition)"), Other("decorated_definition"))
}

func TestWalkVisitsPreOrder(t *testing.T) {
	root := &Node{
		Type: Program,
		Children: []*Node{
			{Type: ClassDeclaration, Name: "Foo", Children: []*Node{
				{Type: MethodDeclaration, Name: "bar"},
			}},
			{Type: FunctionDeclaration, Name: "baz"},
		},
	}

	var visited []string
	Walk(root, func(n *Node) bool {
		visited = append(visited, string(n.Type)+":"+n.Name)
		return true
	})

	assert.Equal(t, []string{
		"Program:",
		"ClassDeclaration:Foo",
		"MethodDeclaration:bar",
		"FunctionDeclaration:baz",
	}, visited)
}

func TestWalkStopsEarly(t *testing.T) {
	root := &Node{
		Type: Program,
		Children: []*Node{
			{Type: ClassDeclaration, Name: "Foo"},
			{Type: FunctionDeclaration, Name: "baz"},
		},
	}

	var visited int
	Walk(root, func(n *Node) bool {
		visited++
		return n.Type != ClassDeclaration
	})
	assert.Equal(t, 2, visited)
}

func TestWalkNilIsNoop(t *testing.T) {
	assert.NotPanics(t, func() {
		Walk(nil, func(n *Node) bool { return true })
	})
}

func TestFindFirstChildOfTypes(t *testing.T) {
	root := &Node{
		Type: ClassDeclaration,
		Children: []*Node{
			{Type: Decorator, Name: "dec"},
			{Type: Identifier, Name: "Foo"},
			{Type: BlockStatement},
		},
	}

	found := FindFirstChildOfTypes(root, Identifier, MemberExpression)
	assert.NotNil(t, found)
	assert.Equal(t, "Foo", found.Name)

	assert.Nil(t, FindFirstChildOfTypes(root, Lambda))
	assert.Nil(t, FindFirstChildOfTypes(nil, Identifier))
}
