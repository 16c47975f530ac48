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

import "time"

// Result is everything a single Run call reports back to its caller:
// the counts printed to the terminal, plus enough detail to decide
// whether the parse-error rate was acceptable.
type Result struct {
	Root         string
	FilesIndexed int
	TotalBytes   int64
	Duration     time.Duration

	// ParseErrorsByLanguage counts, per language, how many kept files
	// fell through to the fallback scanner: because no parser is
	// registered for that language, because the registered parser
	// returned a *parser.ParserError, or because the statements
	// generated from the parsed AST named neither a Function nor a
	// Module.
	ParseErrorsByLanguage map[string]int

	// FilesByLanguage counts every kept file by its detected language,
	// regardless of whether it parsed cleanly.
	FilesByLanguage map[string]int
}

// ParseErrorRate returns the fraction of kept files that fell back to
// the heuristic scanner, in [0, 1]. Returns 0 when FilesIndexed is 0.
func (r Result) ParseErrorRate() float64 {
	if r.FilesIndexed == 0 {
		return 0
	}
	var total int
	for _, n := range r.ParseErrorsByLanguage {
		total += n
	}
	return float64(total) / float64(r.FilesIndexed)
}
