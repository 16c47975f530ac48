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

package ingestion

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/kraklabs/ccg/pkg/detect"
)

// discoveredFile is one kept file surfaced by walkTree: its
// slash-normalized path relative to the walk root, its absolute path
// on disk, and its already-read content.
type discoveredFile struct {
	RelPath string
	AbsPath string
	Content []byte
}

// walkTree walks rootPath depth-first using an explicit directory
// stack (never recursion, so traversal depth never grows the Go call
// stack), applying the ignore/size/language filters described in the
// ingestion driver's walk step. It returns every kept file with its
// content already read.
//
// A rootPath that names a regular file is handled as a degenerate
// single-entry walk: the file itself is the only candidate, addressed
// by its own base name.
func walkTree(rootPath string, ignorePatterns []string, maxFileSizeBytes int64, allowLanguages map[detect.Language]bool, logger *slog.Logger) ([]discoveredFile, error) {
	info, err := os.Stat(rootPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		content, err := os.ReadFile(rootPath)
		if err != nil {
			return nil, err
		}
		return []discoveredFile{{RelPath: filepath.ToSlash(filepath.Base(rootPath)), AbsPath: rootPath, Content: content}}, nil
	}

	var kept []discoveredFile
	stack := []string{rootPath}

	for len(stack) > 0 {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := os.ReadDir(dir)
		if err != nil {
			logger.Warn("skipping unreadable directory", "path", dir, "error", err)
			continue
		}

		for _, entry := range entries {
			name := entry.Name()
			if name == ".ccg" {
				continue
			}
			if ignoreMatch(name, ignorePatterns) {
				continue
			}

			full := filepath.Join(dir, name)

			if entry.IsDir() {
				stack = append(stack, full)
				continue
			}

			fi, err := entry.Info()
			if err != nil {
				continue // unreadable file metadata: silent skip
			}
			if fi.Size() > maxFileSizeBytes {
				continue
			}

			content, err := os.ReadFile(full)
			if err != nil {
				continue // unreadable file: silent skip
			}

			if ignoreMatch(name, ignorePatterns) {
				continue // redundant-safe second pass
			}

			if len(allowLanguages) > 0 {
				lang := detect.Detect(full, content)
				if !allowLanguages[lang] {
					continue
				}
			}

			rel, err := filepath.Rel(rootPath, full)
			if err != nil {
				rel = full
			}

			kept = append(kept, discoveredFile{
				RelPath: filepath.ToSlash(rel),
				AbsPath: full,
				Content: content,
			})
		}
	}

	return kept, nil
}
