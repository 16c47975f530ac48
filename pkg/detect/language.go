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

// Package detect maps a file path (and, as a fallback, its content) to a
// Language tag. Detection is pure: no I/O, no caching of results keyed
// to a particular file on disk.
package detect

import (
	"path/filepath"
	"strings"
)

// Language is a closed enumeration of the languages CCG understands.
type Language string

const (
	Python     Language = "python"
	Java       Language = "java"
	Kotlin     Language = "kotlin"
	JavaScript Language = "javascript"
	TypeScript Language = "typescript"
	Unknown    Language = "unknown"
)

// extensionTable maps lowercase extensions (without the dot) to a
// Language. Kept as a single source of truth so the parser registry and
// the ingestion driver's language allow-list agree on supported
// extensions.
var extensionTable = map[string]Language{
	"py":   Python,
	"java": Java,
	"kt":   Kotlin,
	"kts":  Kotlin,
	"js":   JavaScript,
	"mjs":  JavaScript,
	"ts":   TypeScript,
}

// FromPath returns the Language implied by path's extension, case
// insensitively. Returns Unknown if the extension is unrecognized or
// absent.
func FromPath(path string) Language {
	ext := filepath.Ext(path)
	if ext == "" {
		return Unknown
	}
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if lang, ok := extensionTable[ext]; ok {
		return lang
	}
	return Unknown
}

// contentSignal is one keyword/pattern check contributing to a content
// heuristic score for a single language.
type contentSignal struct {
	lang    Language
	needles []string
}

// contentSignals is scored entry by entry; the language with the most
// needles present in the text wins, and on a tied score the entry
// listed earlier wins. Order therefore matters only for ties (e.g. a
// Kotlin file using `fun` alongside `class`, which also looks vaguely
// Java-ish) — Kotlin's entry is listed before Java's.
var contentSignals = []contentSignal{
	{lang: Python, needles: []string{"def ", "import ", "elif ", "self."}},
	{lang: Kotlin, needles: []string{"fun ", "val ", "when (", "companion object"}},
	{lang: Java, needles: []string{"public class ", "import java.", "package "}},
	{lang: JavaScript, needles: []string{"function ", "const ", "require(", "=>"}},
}

// FromContent applies keyword heuristics to text and returns the
// Language whose signals match most. Callers should only use this when
// FromPath returned Unknown — content detection never overrides a
// successful extension match.
func FromContent(text string) Language {
	best := Unknown
	bestScore := 0

	for _, signal := range contentSignals {
		score := 0
		for _, needle := range signal.needles {
			if strings.Contains(text, needle) {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			best = signal.lang
		}
	}

	return best
}

// Detect resolves path's language via extension, falling back to content
// heuristics only when the extension is unrecognized.
func Detect(path string, content []byte) Language {
	if lang := FromPath(path); lang != Unknown {
		return lang
	}
	return FromContent(string(content))
}

// Supported reports whether lang has a registered parser in this build
// (the four languages named in the purpose/scope: Python, Java,
// JavaScript, Kotlin). TypeScript is detected but is not one of the
// four languages the Simplified AST pipeline targets; files detected as
// TypeScript fall through to the heuristic scanner, same as Unknown.
func Supported(lang Language) bool {
	switch lang {
	case Python, Java, Kotlin, JavaScript:
		return true
	default:
		return false
	}
}
