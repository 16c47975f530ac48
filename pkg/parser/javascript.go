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
	"github.com/smacker/go-tree-sitter/javascript"

	cast "github.com/kraklabs/ccg/pkg/ast"
	"github.com/kraklabs/ccg/pkg/detect"
)

func javascriptMapKind(kind string, named bool) (cast.NodeType, bool) {
	switch kind {
	case "program":
		return cast.Program, true
	case "class_declaration":
		return cast.ClassDeclaration, true
	case "function_declaration", "function", "generator_function_declaration", "generator_function":
		return cast.FunctionDeclaration, true
	case "method_definition":
		return cast.MethodDeclaration, true
	case "arrow_function":
		return cast.Lambda, true
	case "import_statement":
		return cast.ImportDeclaration, true
	case "variable_declaration", "lexical_declaration":
		return cast.VariableDeclaration, true
	case "call_expression":
		return cast.CallExpression, true
	case "member_expression":
		return cast.MemberExpression, true
	case "identifier", "property_identifier", "shorthand_property_identifier":
		return cast.Identifier, true
	case "if_statement":
		return cast.IfStatement, true
	case "for_statement", "for_in_statement":
		return cast.ForStatement, true
	case "while_statement":
		return cast.WhileStatement, true
	case "return_statement":
		return cast.ReturnStatement, true
	case "statement_block":
		return cast.BlockStatement, true
	case "decorator":
		return cast.Decorator, true
	case "string", "number", "true", "false", "null", "undefined", "template_string":
		return cast.Literal, true
	default:
		return "", false
	}
}

// javascriptEnrich reads async/generator flags off the node's own child
// tokens (the literal keyword "async" and the "*" generator marker).
func javascriptEnrich(n *sitter.Node, content []byte, out *cast.Node) {
	switch n.Type() {
	case "function_declaration", "function", "generator_function_declaration",
		"generator_function", "arrow_function", "method_definition":
		out.Metadata.Async = hasChildOfType(n, "async")
		out.Metadata.Generator = hasChildOfType(n, "*")
	}
}

type javascriptParser struct {
	lang *sitter.Language
}

func newJavaScriptParser() *javascriptParser {
	return &javascriptParser{lang: javascript.GetLanguage()}
}

func (p *javascriptParser) Language() detect.Language { return detect.JavaScript }

func (p *javascriptParser) Parse(ctx context.Context, source []byte) (*cast.SimplifiedAST, error) {
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
		language:         detect.JavaScript,
		mapKind:          javascriptMapKind,
		unnamedAllowList: map[string]bool{},
		enrich:           javascriptEnrich,
	}

	return &cast.SimplifiedAST{
		Root:     lowerTree(root, source, cfg),
		Language: detect.JavaScript,
	}, nil
}
