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
	"encoding/json"
	"os"
	"path/filepath"
)

// metricsSummary is the JSON shape written to <workspace>/metrics.json
// after every run. It is overwritten on each call and never read back
// by the core — additive telemetry for operators, not a durable entity
// with its own identity the way a snapshot record is.
type metricsSummary struct {
	FilesIndexed          int            `json:"files_indexed"`
	TotalBytes            int64          `json:"total_bytes"`
	DurationSeconds       float64        `json:"duration_seconds"`
	ParseErrorRate        float64        `json:"parse_error_rate"`
	ParseErrorsByLanguage map[string]int `json:"parse_errors_by_language"`
	FilesByLanguage       map[string]int `json:"files_by_language"`
}

// writeMetricsSummary serializes result as <workspace>/metrics.json.
func writeMetricsSummary(workspace string, result *Result) error {
	summary := metricsSummary{
		FilesIndexed:          result.FilesIndexed,
		TotalBytes:            result.TotalBytes,
		DurationSeconds:       result.Duration.Seconds(),
		ParseErrorRate:        result.ParseErrorRate(),
		ParseErrorsByLanguage: result.ParseErrorsByLanguage,
		FilesByLanguage:       result.FilesByLanguage,
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(workspace, 0o755); err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(workspace, "metrics.json"), data, 0o644)
}
