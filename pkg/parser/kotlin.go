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
	"github.com/smacker/go-tree-sitter/kotlin"

	cast "github.com/kraklabs/ccg/pkg/ast"
	"github.com/kraklabs/ccg/pkg/detect"
)

func kotlinMapKind(kind string, named bool) (cast.NodeType, bool) {
	switch kind {
	case "source_file":
		return cast.Program, true
	case "class_declaration", "object_declaration":
		return cast.ClassDeclaration, true
	case "function_declaration":
		return cast.FunctionDeclaration, true
	case "import_header":
		return cast.ImportDeclaration, true
	case "property_declaration":
		return cast.VariableDeclaration, true
	case "call_expression":
		return cast.CallExpression, true
	case "navigation_expression":
		return cast.MemberExpression, true
	case "simple_identifier", "type_identifier":
		return cast.Identifier, true
	case "if_expression":
		return cast.IfStatement, true
	case "for_statement":
		return cast.ForStatement, true
	case "while_statement":
		return cast.WhileStatement, true
	case "jump_expression":
		return cast.ReturnStatement, true
	case "function_body", "statements":
		return cast.BlockStatement, true
	case "annotation":
		return cast.Annotation, true
	case "lambda_literal":
		return cast.Lambda, true
	case "string_literal", "integer_literal", "real_literal", "boolean_literal", "null_literal":
		return cast.Literal, true
	default:
		return "", false
	}
}

// kotlinEnrich tags object_declaration nodes (folded into
// ClassDeclaration) with is_object, and reads the suspend modifier as
// the async-equivalent flag.
func kotlinEnrich(n *sitter.Node, content []byte, out *cast.Node) {
	if n.Type() == "object_declaration" {
		out.Metadata.Modifiers = append(out.Metadata.Modifiers, "is_object")
	}
	if n.Type() == "function_declaration" {
		out.Metadata.Suspend = hasModifierToken(n, content, "suspend")
	}
}

// hasModifierToken reports whether n has a modifiers child containing a
// token whose text equals want.
func hasModifierToken(n *sitter.Node, content []byte, want string) bool {
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		child := n.Child(i)
		if child == nil || child.Type() != "modifiers" {
			continue
		}
		inner := int(child.ChildCount())
		for j := 0; j < inner; j++ {
			m := child.Child(j)
			if m != nil && m.Content(content) == want {
				return true
			}
		}
	}
	return false
}

type kotlinParser struct {
	lang *sitter.Language
}

func newKotlinParser() *kotlinParser {
	return &kotlinParser{lang: kotlin.GetLanguage()}
}

func (p *kotlinParser) Language() detect.Language { return detect.Kotlin }

func (p *kotlinParser) Parse(ctx context.Context, source []byte) (*cast.SimplifiedAST, error) {
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
		language: detect.Kotlin,
		mapKind:  kotlinMapKind,
		unnamedAllowList: map[string]bool{
			"fun": true, "val": true, "var": true, "class": true,
			"object": true, "interface": true, "suspend": true,
		},
		enrich: kotlinEnrich,
	}

	return &cast.SimplifiedAST{
		Root:     lowerTree(root, source, cfg),
		Language: detect.Kotlin,
	}, nil
}
