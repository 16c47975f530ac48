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
	"github.com/smacker/go-tree-sitter/python"

	cast "github.com/kraklabs/ccg/pkg/ast"
	"github.com/kraklabs/ccg/pkg/detect"
)

var pythonUnnamedAllowList = map[string]bool{
	"def": true, "class": true, "import": true, "from": true,
	"async": true, "await": true,
}

func pythonMapKind(kind string, named bool) (cast.NodeType, bool) {
	switch kind {
	case "module":
		return cast.Module, true
	case "class_definition":
		return cast.ClassDeclaration, true
	case "function_definition":
		return cast.FunctionDeclaration, true
	case "import_statement", "import_from_statement":
		return cast.ImportDeclaration, true
	case "decorated_definition":
		return cast.Decorator, true
	case "lambda":
		return cast.Lambda, true
	case "list_comprehension", "dictionary_comprehension", "set_comprehension", "generator_expression":
		return cast.Comprehension, true
	case "call":
		return cast.CallExpression, true
	case "attribute":
		return cast.MemberExpression, true
	case "identifier":
		return cast.Identifier, true
	case "if_statement":
		return cast.IfStatement, true
	case "for_statement":
		return cast.ForStatement, true
	case "while_statement":
		return cast.WhileStatement, true
	case "return_statement":
		return cast.ReturnStatement, true
	case "block":
		return cast.BlockStatement, true
	case "string", "integer", "float", "true", "false", "none":
		return cast.Literal, true
	default:
		return "", false
	}
}

// pythonEnrich reclassifies function_definition as MethodDeclaration
// when it is nested directly inside a class body, and collects
// decorator text from any wrapping decorated_definition sibling.
func pythonEnrich(n *sitter.Node, content []byte, out *cast.Node) {
	if n.Type() != "function_definition" {
		return
	}
	if parent := n.Parent(); parent != nil && parent.Type() == "block" {
		if grandparent := parent.Parent(); grandparent != nil && grandparent.Type() == "class_definition" {
			out.Type = cast.MethodDeclaration
		}
	}
	if parent := n.Parent(); parent != nil && parent.Type() == "decorated_definition" {
		count := int(parent.ChildCount())
		for i := 0; i < count; i++ {
			child := parent.Child(i)
			if child != nil && child.Type() == "decorator" {
				out.Metadata.Decorators = append(out.Metadata.Decorators, child.Content(content))
			}
		}
	}
}

type pythonParser struct {
	lang *sitter.Language
}

func newPythonParser() *pythonParser {
	return &pythonParser{lang: python.GetLanguage()}
}

func (p *pythonParser) Language() detect.Language { return detect.Python }

func (p *pythonParser) Parse(ctx context.Context, source []byte) (*cast.SimplifiedAST, error) {
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
		language:         detect.Python,
		mapKind:          pythonMapKind,
		unnamedAllowList: pythonUnnamedAllowList,
		enrich:           pythonEnrich,
	}

	return &cast.SimplifiedAST{
		Root:     lowerTree(root, source, cfg),
		Language: detect.Python,
	}, nil
}
