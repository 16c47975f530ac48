// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"context"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	ccgerrors "github.com/kraklabs/ccg/internal/errors"
	"github.com/kraklabs/ccg/internal/output"
	"github.com/kraklabs/ccg/internal/progress"
	"github.com/kraklabs/ccg/internal/ui"
	"github.com/kraklabs/ccg/pkg/config"
	"github.com/kraklabs/ccg/pkg/ingestion"
)

// analyzeJSON is the --json output shape for the analyze command.
type analyzeJSON struct {
	Root         string `json:"root"`
	FilesIndexed int    `json:"files_indexed"`
	TotalBytes   int64  `json:"total_bytes"`
}

func runAnalyze(args []string) {
	fs := newFlagSet("analyze")
	path := fs.String("path", ".", "Repository root to analyze")
	languages := fs.String("languages", "", "Comma-separated language allow-list (default: configured languages)")
	message := fs.String("message", "", "Optional commit message stored on the snapshot record")
	configPath := fs.String("config", "", "Path to a YAML config file (default: built-in defaults)")
	enableMetrics := fs.Bool("metrics", false, "Collect Prometheus metrics internally (no HTTP exporter in this build)")
	jsonOut := fs.Bool("json", false, "Emit JSON instead of human-readable output")
	noColor := fs.Bool("no-color", false, "Disable colored output")
	quiet := fs.Bool("quiet", false, "Suppress diagnostic lines")

	if err := fs.Parse(args); err != nil {
		exitOnParseError(fs, err)
	}
	ui.InitColors(*noColor)

	opts := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fail(ccgerrors.NewConfigError("Cannot load configuration", err.Error(), "Check the --config path and YAML syntax", err), *jsonOut)
		}
		opts = loaded
	}

	var reg *prometheus.Registry
	if *enableMetrics {
		reg = prometheus.NewRegistry()
	}

	driver, err := ingestion.New(opts, reg)
	if err != nil {
		fail(ccgerrors.NewConfigError("Cannot construct ingestion driver", err.Error(), "Check falkordb.url and cas.storage_path", err), *jsonOut)
	}

	var allowList []string
	if *languages != "" {
		allowList = splitCSV(*languages)
	}

	var msgPtr *string
	if *message != "" {
		msgPtr = message
	}

	pcfg := progress.NewConfig(progress.Flags{JSON: *jsonOut, Quiet: *quiet, NoColor: *noColor})
	spinner := progress.NewSpinner(pcfg, progress.PhaseDescription("walk"))
	if spinner == nil && !*quiet && !*jsonOut {
		ui.Probef("Analyzing %s", *path)
	}

	result, err := driver.Run(context.Background(), *path, allowList, msgPtr)
	if spinner != nil {
		_ = spinner.Finish()
	}
	if err != nil {
		fail(ccgerrors.NewIoError("Ingestion run failed", err.Error(), "Check that the path exists and is readable", err), *jsonOut)
	}

	if *jsonOut {
		_ = output.JSON(analyzeJSON{Root: result.Root, FilesIndexed: result.FilesIndexed, TotalBytes: result.TotalBytes})
		return
	}

	if !*quiet {
		ui.Donef("Analysis complete: %d files, %d bytes, root %s", result.FilesIndexed, result.TotalBytes, result.Root)
	}
}

// fail prints err (JSON or human-readable per jsonOut) and exits with
// its exit code. Never returns.
func fail(err *ccgerrors.UserError, jsonOut bool) {
	ccgerrors.FatalError(err, jsonOut)
}

// splitCSV splits a comma-separated flag value into trimmed, non-empty
// tokens.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
