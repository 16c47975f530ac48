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

// Package graphquery turns a Simplified AST (or, failing that, a raw
// byte scan) into an ordered sequence of Cypher-like MERGE statements
// describing a file's File/Class/Function/Module nodes and their
// CONTAINS/IMPORTS relations. The statement shapes are a bit-exact
// contract: callers diffing generator output across versions rely on
// the exact text, not just its semantic content.
package graphquery

import (
	"fmt"
	"strings"

	cast "github.com/kraklabs/ccg/pkg/ast"
)

// packageNodeKinds are the grammar kinds (surviving lowering as
// Other(kind) since they are outside the closed vocabulary) carrying a
// file's own package/module name.
var packageNodeKinds = map[string]bool{
	"package_declaration": true, // Java
	"package_header":      true, // Kotlin
}

// Generate emits the ordered MERGE statement sequence for tree, rooted
// at the file identified by path (normalized to forward slashes). If
// tree is nil, or the language had no registered parser, only the
// file-node statement is returned — callers are expected to layer
// fallback-scanner output on top in that case.
func Generate(tree *cast.SimplifiedAST, path string) []string {
	normalized := normalizePath(path)
	statements := []string{fileStatement(normalized)}

	if tree == nil || tree.Root == nil {
		return statements
	}

	var classNames, functionNames, importNames, packageNames []string

	cast.Walk(tree.Root, func(n *cast.Node) bool {
		switch n.Type {
		case cast.ClassDeclaration:
			if n.Name != "" {
				classNames = append(classNames, n.Name)
			}
		case cast.FunctionDeclaration, cast.MethodDeclaration:
			if n.Name != "" {
				functionNames = append(functionNames, n.Name)
			}
		case cast.ImportDeclaration:
			if n.Name != "" {
				importNames = append(importNames, n.Name)
			}
		default:
			if packageNodeKinds[n.Metadata.GrammarKind] {
				if name := packageName(n); name != "" {
					packageNames = append(packageNames, name)
				}
			}
		}
		return true
	})

	for _, name := range classNames {
		statements = append(statements,
			mergeNode("cls", "Class", name),
			mergeEdge("f", "cls", "CONTAINS"),
		)
	}
	for _, name := range functionNames {
		statements = append(statements,
			mergeNode("fn", "Function", name),
			mergeEdge("f", "fn", "CONTAINS"),
		)
	}
	for _, name := range importNames {
		statements = append(statements,
			mergeNode("m", "Module", name),
			mergeEdge("f", "m", "IMPORTS"),
		)
	}
	for _, name := range packageNames {
		statements = append(statements,
			mergeNode("pkg", "Module", name),
			mergeEdge("f", "pkg", "CONTAINS"),
		)
	}

	return statements
}

// HasFunctionOrModuleStatement reports whether statements (as produced
// by Generate) mentions a Function or Module node anywhere — the
// trigger condition for falling back to the byte-level scanner.
func HasFunctionOrModuleStatement(statements []string) bool {
	for _, s := range statements {
		if strings.Contains(s, ":Function ") || strings.Contains(s, ":Module ") {
			return true
		}
	}
	return false
}

func fileStatement(path string) string {
	return fmt.Sprintf("MERGE (f:File { path: '%s' })", escapeName(path))
}

func mergeNode(alias, label, name string) string {
	return fmt.Sprintf("MERGE (%s:%s { name: '%s' })", alias, label, escapeName(name))
}

func mergeEdge(from, to, relation string) string {
	return fmt.Sprintf("MERGE (%s)-[:%s]->(%s)", from, relation, to)
}

// escapeName single-quote-escapes name for embedding in a statement
// literal: ' becomes \'.
func escapeName(name string) string {
	return strings.ReplaceAll(name, "'", `\'`)
}

// normalizePath converts path separators to forward slashes, matching
// the contract's "paths use forward slashes" rule.
func normalizePath(path string) string {
	return strings.ReplaceAll(path, "\\", "/")
}

// packageName extracts a package/module name from a package
// declaration node's own captured source text, e.g. "package
// com.example;" -> "com.example".
func packageName(n *cast.Node) string {
	text := n.Metadata.SourceText
	if text == "" {
		return ""
	}
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "package")
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, ";")
	return strings.TrimSpace(text)
}
