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

package graphquery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cast "github.com/kraklabs/ccg/pkg/ast"
	"github.com/kraklabs/ccg/pkg/detect"
)

func TestGenerateNilTreeEmitsOnlyFileStatement(t *testing.T) {
	stmts := Generate(nil, "pkg/a.py")
	require.Len(t, stmts, 1)
	assert.Equal(t, "MERGE (f:File { path: 'pkg/a.py' })", stmts[0])
}

func TestGenerateEmitsClassFunctionImport(t *testing.T) {
	tree := &cast.SimplifiedAST{
		Language: detect.Python,
		Root: &cast.Node{
			Type: cast.Module,
			Children: []*cast.Node{
				{Type: cast.ImportDeclaration, Name: "os"},
				{Type: cast.ClassDeclaration, Name: "Greeter", Children: []*cast.Node{
					{Type: cast.MethodDeclaration, Name: "greet"},
				}},
				{Type: cast.FunctionDeclaration, Name: "standalone"},
			},
		},
	}

	stmts := Generate(tree, "pkg/a.py")

	assert.Contains(t, stmts, "MERGE (f:File { path: 'pkg/a.py' })")
	assert.Contains(t, stmts, "MERGE (cls:Class { name: 'Greeter' })")
	assert.Contains(t, stmts, "MERGE (f)-[:CONTAINS]->(cls)")
	assert.Contains(t, stmts, "MERGE (fn:Function { name: 'greet' })")
	assert.Contains(t, stmts, "MERGE (fn:Function { name: 'standalone' })")
	assert.Contains(t, stmts, "MERGE (f)-[:CONTAINS]->(fn)")
	assert.Contains(t, stmts, "MERGE (m:Module { name: 'os' })")
	assert.Contains(t, stmts, "MERGE (f)-[:IMPORTS]->(m)")

	assert.True(t, HasFunctionOrModuleStatement(stmts))
}

func TestGenerateEscapesQuotesInNames(t *testing.T) {
	tree := &cast.SimplifiedAST{
		Root: &cast.Node{
			Type: cast.Module,
			Children: []*cast.Node{
				{Type: cast.ClassDeclaration, Name: "O'Brien"},
			},
		},
	}
	stmts := Generate(tree, "a.py")
	assert.Contains(t, stmts, `MERGE (cls:Class { name: 'O\'Brien' })`)
}

func TestGenerateNormalizesPathSeparators(t *testing.T) {
	stmts := Generate(nil, `pkg\windows\a.py`)
	assert.Equal(t, "MERGE (f:File { path: 'pkg/windows/a.py' })", stmts[0])
}

func TestGenerateEmitsPackageAsModuleContains(t *testing.T) {
	tree := &cast.SimplifiedAST{
		Root: &cast.Node{
			Type: cast.Program,
			Children: []*cast.Node{
				{
					Type: cast.Other("package_declaration"),
					Metadata: cast.Metadata{
						GrammarKind: "package_declaration",
						SourceText:  "package com.example;",
					},
				},
				{Type: cast.ClassDeclaration, Name: "Greeter"},
			},
		},
	}
	stmts := Generate(tree, "com/example/Greeter.java")
	assert.Contains(t, stmts, "MERGE (pkg:Module { name: 'com.example' })")
	assert.Contains(t, stmts, "MERGE (f)-[:CONTAINS]->(pkg)")
}

func TestHasFunctionOrModuleStatementFalseWhenAbsent(t *testing.T) {
	stmts := []string{
		"MERGE (f:File { path: 'a.py' })",
		"MERGE (cls:Class { name: 'Foo' })",
		"MERGE (f)-[:CONTAINS]->(cls)",
	}
	assert.False(t, HasFunctionOrModuleStatement(stmts))
}
