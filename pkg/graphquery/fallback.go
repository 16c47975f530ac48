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

import "strings"

// Fallback runs the byte-level substring scanner over source and
// returns the statements it produces, appended to existing (the
// statements already emitted by Generate, possibly just the file-node
// statement). Fallback statements merge idempotently with existing
// since every statement is MERGE-based.
//
// Fallback applies when the file's language is unsupported, or when
// the AST-driven statements contain neither a Function nor a Module
// node — callers decide which condition applies via
// HasFunctionOrModuleStatement before calling this.
func Fallback(existing []string, path string, source []byte) []string {
	statements := existing
	if len(statements) == 0 {
		statements = append(statements, fileStatement(normalizePath(path)))
	}

	text := string(source)
	for _, name := range scanFunctionNames(text) {
		statements = append(statements,
			mergeNode("fn", "Function", name),
			mergeEdge("f", "fn", "CONTAINS"),
		)
	}
	for _, name := range scanImportTargets(text) {
		statements = append(statements,
			mergeNode("m", "Module", name),
			mergeEdge("f", "m", "IMPORTS"),
		)
	}

	return statements
}

// scanFunctionNames detects function declarations by locating "def "
// followed by an identifier up to "(", a space, or ":".
func scanFunctionNames(text string) []string {
	var names []string
	const marker = "def "

	for idx := 0; idx < len(text); {
		pos := strings.Index(text[idx:], marker)
		if pos < 0 {
			break
		}
		start := idx + pos + len(marker)
		end := start
		for end < len(text) && text[end] != '(' && text[end] != ' ' && text[end] != ':' && text[end] != '\n' {
			end++
		}
		if name := strings.TrimSpace(text[start:end]); name != "" {
			names = append(names, name)
		}
		idx = start
	}

	return names
}

// scanImportTargets detects imports by line-prefix matches on "import
// <mod>" and "from <mod> import ...", taking the first comma- or
// whitespace-bounded token as the module name.
func scanImportTargets(text string) []string {
	var names []string

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(trimmed, "from "):
			rest := strings.TrimSpace(strings.TrimPrefix(trimmed, "from "))
			if mod := firstToken(rest); mod != "" {
				names = append(names, mod)
			}
		case strings.HasPrefix(trimmed, "import "):
			rest := strings.TrimSpace(strings.TrimPrefix(trimmed, "import "))
			if mod := firstToken(rest); mod != "" {
				names = append(names, mod)
			}
		}
	}

	return names
}

// firstToken returns the first comma- or whitespace-bounded token in s.
func firstToken(s string) string {
	end := 0
	for end < len(s) {
		c := s[end]
		if c == ',' || c == ' ' || c == '\t' {
			break
		}
		end++
	}
	return strings.TrimSuffix(s[:end], ";")
}
