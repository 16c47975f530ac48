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
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"

	cast "github.com/kraklabs/ccg/pkg/ast"
	"github.com/kraklabs/ccg/pkg/detect"
)

var javaUnnamedAllowList = map[string]bool{
	"public": true, "private": true, "static": true, "final": true,
	"abstract": true, "class": true, "interface": true, "enum": true,
}

var javaModifierKeywords = map[string]bool{
	"public": true, "private": true, "protected": true,
	"static": true, "final": true, "abstract": true, "synchronized": true,
}

func javaMapKind(kind string, named bool) (cast.NodeType, bool) {
	switch kind {
	case "program":
		return cast.Program, true
	case "class_declaration":
		return cast.ClassDeclaration, true
	case "interface_declaration":
		return cast.InterfaceDeclaration, true
	case "enum_declaration":
		return cast.EnumDeclaration, true
	case "method_declaration", "constructor_declaration":
		return cast.MethodDeclaration, true
	case "import_declaration":
		return cast.ImportDeclaration, true
	case "local_variable_declaration", "field_declaration":
		return cast.VariableDeclaration, true
	case "method_invocation":
		return cast.CallExpression, true
	case "field_access":
		return cast.MemberExpression, true
	case "identifier", "type_identifier":
		return cast.Identifier, true
	case "if_statement":
		return cast.IfStatement, true
	case "for_statement", "enhanced_for_statement":
		return cast.ForStatement, true
	case "while_statement":
		return cast.WhileStatement, true
	case "return_statement":
		return cast.ReturnStatement, true
	case "block":
		return cast.BlockStatement, true
	case "marker_annotation", "annotation":
		return cast.Annotation, true
	case "string_literal", "decimal_integer_literal", "decimal_floating_point_literal", "true", "false", "null_literal":
		return cast.Literal, true
	default:
		return "", false
	}
}

// javaEnrich collects modifier keywords and extends/implements clause
// names for class-, interface-, and method-like declarations.
func javaEnrich(n *sitter.Node, content []byte, out *cast.Node) {
	switch n.Type() {
	case "class_declaration", "interface_declaration", "method_declaration", "constructor_declaration", "field_declaration":
		out.Metadata.Modifiers = append(out.Metadata.Modifiers, modifierTokens(n, content)...)
	}

	switch n.Type() {
	case "class_declaration":
		if super := fieldByKind(n, content, "superclass"); super != "" {
			out.Metadata.Extends = append(out.Metadata.Extends, super)
		}
		out.Metadata.Implements = append(out.Metadata.Implements, interfaceList(n, content, "super_interfaces")...)
	case "interface_declaration":
		out.Metadata.Extends = append(out.Metadata.Extends, interfaceList(n, content, "extends_interfaces")...)
	}
}

// modifierTokens scans n's direct children for Java modifier keyword
// tokens (public, private, protected, static, final, abstract,
// synchronized).
func modifierTokens(n *sitter.Node, content []byte) []string {
	var out []string
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		if child.Type() == "modifiers" {
			inner := int(child.ChildCount())
			for j := 0; j < inner; j++ {
				m := child.Child(j)
				if m != nil && javaModifierKeywords[m.Type()] {
					out = append(out, m.Content(content))
				}
			}
			continue
		}
		if javaModifierKeywords[child.Type()] {
			out = append(out, child.Content(content))
		}
	}
	return out
}

// fieldByKind returns the text of the first direct child whose grammar
// kind equals kind.
func fieldByKind(n *sitter.Node, content []byte, kind string) string {
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		child := n.Child(i)
		if child != nil && child.Type() == kind {
			return child.Content(content)
		}
	}
	return ""
}

// interfaceList finds the direct child named kind (e.g.
// super_interfaces) and returns the text of every type_identifier
// nested beneath it.
func interfaceList(n *sitter.Node, content []byte, kind string) []string {
	target := findChildByType(n, kind)
	if target == nil {
		return nil
	}
	var out []string
	var visit func(*sitter.Node)
	visit = func(sn *sitter.Node) {
		if sn == nil {
			return
		}
		if sn.Type() == "type_identifier" {
			out = append(out, sn.Content(content))
		}
		count := int(sn.ChildCount())
		for i := 0; i < count; i++ {
			visit(sn.Child(i))
		}
	}
	visit(target)
	return out
}

func findChildByType(n *sitter.Node, kind string) *sitter.Node {
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		if child := n.Child(i); child != nil && child.Type() == kind {
			return child
		}
	}
	return nil
}

type javaParser struct {
	lang *sitter.Language
}

func newJavaParser() *javaParser {
	return &javaParser{lang: java.GetLanguage()}
}

func (p *javaParser) Language() detect.Language { return detect.Java }

func (p *javaParser) Parse(ctx context.Context, source []byte) (*cast.SimplifiedAST, error) {
	sp := sitter.NewParser()
	sp.SetLanguage(p.lang)

	tree, err := sp.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, fmt.Errorf("tree-sitter produced no root node")
	}

	cfg := &lowerConfig{
		language:         detect.Java,
		mapKind:          javaMapKind,
		unnamedAllowList: javaUnnamedAllowList,
		enrich:           javaEnrich,
	}

	return &cast.SimplifiedAST{
		Root:     lowerTree(root, source, cfg),
		Language: detect.Java,
	}, nil
}
