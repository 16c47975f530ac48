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

package parser

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	cast "github.com/kraklabs/ccg/pkg/ast"
	"github.com/kraklabs/ccg/pkg/detect"
)

// maxInlineSourceBytes is the span threshold under which a node's own
// source text is captured into Metadata.SourceText.
const maxInlineSourceBytes = 100

// punctuationKinds are dropped unconditionally, regardless of the
// per-language unnamed-node allow-list.
var punctuationKinds = map[string]bool{
	"(": true, ")": true, "{": true, "}": true,
	";": true, ",": true, ".": true, ":": true,
}

// identifierKinds is searched, in child order, when naming a
// declaration node.
var identifierKinds = map[string]bool{
	"identifier":        true,
	"name":              true,
	"type_identifier":   true,
	"simple_identifier": true,
}

// importNameKinds is searched, in child order, when naming an import.
var importNameKinds = map[string]bool{
	"dotted_name":       true,
	"module_name":       true,
	"scoped_identifier": true,
	"identifier":        true,
	"string_literal":    true,
}

// lowerConfig parameterizes the shared recursive lowering walk with
// everything that differs between grammars.
type lowerConfig struct {
	language detect.Language

	// mapKind translates a grammar node kind into a canonical NodeType.
	// ok is false when the kind has no canonical mapping; the node is
	// then kept as Other(kind). Dropping nodes is shouldKeep's job.
	mapKind func(kind string, named bool) (typ cast.NodeType, ok bool)

	// unnamedAllowList is the per-language set of unnamed token kinds
	// (keywords) kept despite not being named grammar nodes.
	unnamedAllowList map[string]bool

	// enrich runs after a node has been built from n, letting the
	// per-language binding attach decorators, modifiers, base classes,
	// and async/generator/suspend flags.
	enrich func(n *sitter.Node, content []byte, out *cast.Node)
}

// isCommentKind reports whether kind looks like a comment node kind
// across the grammars bound here (each spells it slightly differently).
func isCommentKind(kind string) bool {
	return strings.Contains(kind, "comment")
}

// shouldKeep reports whether a grammar node should produce a
// Simplified AST node at all.
func (cfg *lowerConfig) shouldKeep(n *sitter.Node) bool {
	kind := n.Type()
	if isCommentKind(kind) {
		return false
	}
	if punctuationKinds[kind] {
		return false
	}
	if n.IsNamed() {
		return true
	}
	return cfg.unnamedAllowList[kind]
}

// lowerTree walks root and produces the Simplified AST node tree,
// applying filtering, kind mapping, naming, location capture, and
// per-language enrichment uniformly across every grammar binding.
func lowerTree(root *sitter.Node, content []byte, cfg *lowerConfig) *cast.Node {
	return lowerNode(root, content, cfg)
}

func lowerNode(n *sitter.Node, content []byte, cfg *lowerConfig) *cast.Node {
	if n == nil {
		return nil
	}

	typ, ok := cfg.mapKind(n.Type(), n.IsNamed())
	if !ok {
		typ = cast.Other(n.Type())
	}

	out := &cast.Node{
		Type:     typ,
		Location: locationOf(n),
		Metadata: cast.Metadata{
			GrammarKind: n.Type(),
			IsNamed:     n.IsNamed(),
			Language:    cfg.language,
		},
	}

	if span := n.EndByte() - n.StartByte(); span < maxInlineSourceBytes {
		out.Metadata.SourceText = n.Content(content)
	}

	out.Name = nameFor(n, content, typ)

	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		child := n.Child(i)
		if child == nil || !cfg.shouldKeep(child) {
			continue
		}
		if lowered := lowerNode(child, content, cfg); lowered != nil {
			out.Children = append(out.Children, lowered)
		}
	}

	if cfg.enrich != nil {
		cfg.enrich(n, content, out)
	}

	return out
}

// nameFor implements the naming rule: declaration-like nodes search
// their immediate children for the first identifier-like child (or, for
// imports, the first import-name-like child); Identifier nodes name
// themselves from their own text.
func nameFor(n *sitter.Node, content []byte, typ cast.NodeType) string {
	if typ == cast.Identifier {
		return n.Content(content)
	}

	wantSet := identifierKinds
	if typ == cast.ImportDeclaration {
		wantSet = importNameKinds
	}

	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		if wantSet[child.Type()] {
			text := child.Content(content)
			if typ == cast.ImportDeclaration && child.Type() == "string_literal" {
				text = strings.Trim(text, `"'`)
			}
			return text
		}
	}

	// Recurse one more level for grammars that wrap the identifier in an
	// intermediate node (e.g. Java's declarator nodes).
	for i := 0; i < count; i++ {
		child := n.Child(i)
		if child == nil || !child.IsNamed() {
			continue
		}
		if name := nameFor(child, content, typ); name != "" {
			return name
		}
	}

	return ""
}

func locationOf(n *sitter.Node) cast.Location {
	start := n.StartPoint()
	end := n.EndPoint()
	return cast.Location{
		StartLine: int(start.Row) + 1,
		StartCol:  int(start.Column),
		EndLine:   int(end.Row) + 1,
		EndCol:    int(end.Column),
		StartByte: n.StartByte(),
		EndByte:   n.EndByte(),
	}
}

// childrenOfType returns the source text of n's direct children (named
// or not) whose grammar kind equals kind.
func childrenOfType(n *sitter.Node, content []byte, kind string) []string {
	var out []string
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		child := n.Child(i)
		if child == nil || child.Type() != kind {
			continue
		}
		out = append(out, child.Content(content))
	}
	return out
}

// hasChildOfType reports whether n has a direct child (named or not)
// whose grammar kind equals kind — used for async/generator token
// detection.
func hasChildOfType(n *sitter.Node, kind string) bool {
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		if child := n.Child(i); child != nil && child.Type() == kind {
			return true
		}
	}
	return false
}
