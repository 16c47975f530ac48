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

// Package progress builds terminal progress bars and spinners for the
// ccg CLI, gated on TTY detection and the --json/--quiet flags.
package progress

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// Flags carries the subset of global CLI flags that influence whether
// and how progress is displayed.
type Flags struct {
	// JSON indicates --json output mode; implies Quiet.
	JSON bool

	// Quiet indicates -q/--quiet was passed.
	Quiet bool

	// NoColor indicates --no-color was passed.
	NoColor bool
}

// Config determines if and how progress should be displayed.
type Config struct {
	// Enabled indicates whether progress bars should be shown.
	// Disabled when --json, -q are used, or stderr is not a TTY.
	Enabled bool

	// Writer is where progress output goes (always os.Stderr).
	Writer io.Writer

	// NoColor disables colored output in progress bars.
	NoColor bool
}

// NewConfig derives a Config from CLI flags and TTY detection.
//
// Progress is disabled when:
//   - --json is set (quiet is implied)
//   - -q/--quiet is set
//   - stderr is not a TTY (piped output, CI, a recording-graph run)
func NewConfig(flags Flags) Config {
	enabled := !flags.Quiet && !flags.JSON && isatty.IsTerminal(os.Stderr.Fd())
	return Config{Enabled: enabled, Writer: os.Stderr, NoColor: flags.NoColor}
}

// NewBar creates a progress bar with consistent styling for a
// known-length operation (e.g. walking N discovered files).
// Returns nil if progress is disabled — callers can safely call methods
// on a nil *progressbar.ProgressBar, which are no-ops.
func NewBar(cfg Config, total int64, description string) *progressbar.ProgressBar {
	if !cfg.Enabled {
		return nil
	}

	return progressbar.NewOptions64(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(cfg.Writer),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionEnableColorCodes(!cfg.NoColor),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

// NewSpinner creates an indeterminate spinner for operations where the
// total is unknown ahead of time (e.g. the initial filesystem walk).
// Returns nil if progress is disabled.
func NewSpinner(cfg Config, description string) *progressbar.ProgressBar {
	if !cfg.Enabled {
		return nil
	}

	return progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(cfg.Writer),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionEnableColorCodes(!cfg.NoColor),
	)
}

// PhaseDescription maps an ingestion phase identifier to the
// human-readable label shown before its progress bar. Unknown phases
// pass through unchanged so new phases never need a registry entry to
// display something.
func PhaseDescription(phase string) string {
	switch phase {
	case "walk":
		return "Walking filesystem"
	case "hash":
		return "Hashing blobs"
	case "parse":
		return "Parsing files"
	case "graph":
		return "Emitting graph statements"
	case "merkle":
		return "Building Merkle tree"
	default:
		return phase
	}
}
