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

// Package parser lowers source text into the Simplified AST (pkg/ast)
// using tree-sitter grammars, one LanguageParser per supported
// language. The registry itself carries no per-language logic —
// recursion, field lookup, punctuation/comment filtering, and
// small-span source-text capture live once in lower.go and are reused
// by every grammar binding.
package parser

import (
	"context"
	"fmt"

	cast "github.com/kraklabs/ccg/pkg/ast"
	"github.com/kraklabs/ccg/pkg/detect"
	"github.com/kraklabs/ccg/pkg/hashing"
)

// ParserError reports a total failure to produce any tree at all.
// Tree-sitter's own error-recovery output (a tree with error nodes)
// is NOT a ParserError — only the absence of a tree is.
type ParserError struct {
	Path     string
	Language detect.Language
	Cause    error
}

func (e *ParserError) Error() string {
	return fmt.Sprintf("parse %s as %s: %v", e.Path, e.Language, e.Cause)
}

func (e *ParserError) Unwrap() error { return e.Cause }

// LanguageParser lowers source bytes for one language into a
// SimplifiedAST.
type LanguageParser interface {
	Language() detect.Language
	Parse(ctx context.Context, source []byte) (*cast.SimplifiedAST, error)
}

// Registry dispatches to the LanguageParser registered for a given
// detect.Language.
type Registry struct {
	parsers map[detect.Language]LanguageParser
}

// NewRegistry builds a Registry with the four grammar bindings wired
// in: Python, Java, JavaScript, Kotlin.
func NewRegistry() *Registry {
	r := &Registry{parsers: make(map[detect.Language]LanguageParser)}
	r.Register(newPythonParser())
	r.Register(newJavaParser())
	r.Register(newJavaScriptParser())
	r.Register(newKotlinParser())
	return r
}

// Register adds or replaces the parser for its own Language().
func (r *Registry) Register(p LanguageParser) {
	r.parsers[p.Language()] = p
}

// Lookup returns the parser registered for lang, and whether one was
// found.
func (r *Registry) Lookup(lang detect.Language) (LanguageParser, bool) {
	p, ok := r.parsers[lang]
	return p, ok
}

// Parse dispatches to the registered parser for lang and stamps the
// resulting SimplifiedAST with the source digest. Returns a
// *ParserError wrapping any error from a registered parser, or when no
// parser is registered for lang at all.
func (r *Registry) Parse(ctx context.Context, lang detect.Language, source []byte) (*cast.SimplifiedAST, error) {
	p, ok := r.parsers[lang]
	if !ok {
		return nil, &ParserError{Language: lang, Cause: fmt.Errorf("no parser registered for language %q", lang)}
	}

	tree, err := p.Parse(ctx, source)
	if err != nil {
		return nil, &ParserError{Language: lang, Cause: err}
	}
	tree.SourceDigest = hashing.Hash(source).String()
	return tree, nil
}
