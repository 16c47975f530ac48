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

// Package ast defines the Simplified AST: a normalized reduction of
// grammar-specific tree-sitter output to a small, closed vocabulary of
// node kinds shared across every supported language. It deliberately
// lowers full parse-tree fidelity in exchange for a representation the
// graph query generator (and any future consumer) can walk without
// knowing which grammar produced it.
package ast

import "github.com/kraklabs/ccg/pkg/detect"

// NodeType is the closed set of canonical node kinds every grammar's
// parse tree is lowered into. Other carries the grammar's own kind
// string for nodes that don't map to anything more specific — it is the
// one open arm in an otherwise closed vocabulary.
type NodeType string

const (
	Program              NodeType = "Program"
	Module               NodeType = "Module"
	ClassDeclaration     NodeType = "ClassDeclaration"
	FunctionDeclaration  NodeType = "FunctionDeclaration"
	MethodDeclaration    NodeType = "MethodDeclaration"
	VariableDeclaration  NodeType = "VariableDeclaration"
	ImportDeclaration    NodeType = "ImportDeclaration"
	InterfaceDeclaration NodeType = "InterfaceDeclaration"
	EnumDeclaration      NodeType = "EnumDeclaration"
	CallExpression       NodeType = "CallExpression"
	MemberExpression     NodeType = "MemberExpression"
	Identifier           NodeType = "Identifier"
	Literal              NodeType = "Literal"
	IfStatement          NodeType = "IfStatement"
	ForStatement         NodeType = "ForStatement"
	WhileStatement       NodeType = "WhileStatement"
	ReturnStatement      NodeType = "ReturnStatement"
	BlockStatement       NodeType = "BlockStatement"
	Decorator            NodeType = "Decorator"
	Annotation           NodeType = "Annotation"
	Lambda               NodeType = "Lambda"
	Comprehension        NodeType = "Comprehension"
)

// Other builds the one open arm of NodeType, carrying the grammar's own
// node kind string for anything that doesn't map onto the closed
// vocabulary above.
func Other(grammarKind string) NodeType {
	return NodeType("Other(" + grammarKind + ")")
}

// Location is a node's span in both line/column and byte-offset terms.
// Lines are 1-based; columns and byte offsets are 0-based, matching the
// convention tree-sitter itself uses internally.
type Location struct {
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
	StartByte uint32
	EndByte   uint32
}

// Node is one entry in the Simplified AST. Metadata references to other
// nodes (base classes, interfaces implemented, etc.) are stored as name
// strings, never as pointers or indices — the tree has no back-edges.
type Node struct {
	Type     NodeType
	Name     string
	Location Location
	Children []*Node
	Metadata Metadata
}

// Metadata carries the per-node enrichments described in the lowering
// rules: grammar provenance, small-span source text, and the
// per-language decoration lists (decorators, base classes, modifiers,
// extends/implements targets, async/generator flags).
type Metadata struct {
	GrammarKind string
	IsNamed     bool
	Language    detect.Language

	// SourceText holds the node's own source text when its span is
	// small enough (<100 bytes) to be worth keeping inline.
	SourceText string

	Decorators  []string
	BaseClasses []string
	Modifiers   []string
	Implements  []string
	Extends     []string
	Async       bool
	Generator   bool
	Suspend     bool
}

// SimplifiedAST is the full output of parsing one file: its lowered
// node tree, the language it was parsed as, and the content digest of
// the source it was built from (used for cache/change-detection keys
// by callers, not consulted by the AST itself).
type SimplifiedAST struct {
	Root         *Node
	Language     detect.Language
	SourceDigest string
}

// Walk performs a pre-order traversal of the tree rooted at n, calling
// visit for every node including n itself. Traversal stops early if
// visit returns false.
func Walk(n *Node, visit func(*Node) bool) {
	walk(n, visit)
}

// walk is Walk's recursion; it reports false once visit has returned
// false, so that every enclosing level stops as well.
func walk(n *Node, visit func(*Node) bool) bool {
	if n == nil {
		return true
	}
	if !visit(n) {
		return false
	}
	for _, c := range n.Children {
		if !walk(c, visit) {
			return false
		}
	}
	return true
}

// FindFirstChildOfTypes searches n's immediate children (not
// grandchildren) for the first one whose Type is in types, returning
// nil if none match. This mirrors the lowering rule for naming
// declaration nodes: search immediate children for an identifier-like
// node before recursing further.
func FindFirstChildOfTypes(n *Node, types ...NodeType) *Node {
	if n == nil {
		return nil
	}
	want := make(map[NodeType]bool, len(types))
	for _, t := range types {
		want[t] = true
	}
	for _, c := range n.Children {
		if want[c.Type] {
			return c
		}
	}
	return nil
}
