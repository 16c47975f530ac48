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

// Package main implements the ccg CLI: a thin dispatcher over the
// ingestion driver and the snapshot catalog.
//
// Usage:
//
//	ccg analyze --path P [--languages L,...] [--message M]
//	ccg version list|show|diff --path P [--id I | --from A --to B] [--limit N]
//	ccg viz class --path P --out O [--format md|html] [--filter-class C,...]
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	ccgerrors "github.com/kraklabs/ccg/internal/errors"
)

// version is set via ldflags during release builds.
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(ccgerrors.ExitInput)
	}

	switch os.Args[1] {
	case "analyze":
		runAnalyze(os.Args[2:])
	case "version":
		runVersion(os.Args[2:])
	case "viz":
		runViz(os.Args[2:])
	case "--version":
		fmt.Printf("ccg version %s\n", version)
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "ccg: unknown command %q\n", os.Args[1])
		usage()
		os.Exit(ccgerrors.ExitInput)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `ccg - Code Context Graph CLI

Usage:
  ccg analyze --path P [--languages L,...] [--message M]
  ccg version list|show|diff --path P [--id I | --from A --to B] [--limit N]
  ccg viz class --path P --out O [--format md|html] [--filter-class C,...]

Output flags:
  --json       Emit machine-readable JSON instead of human-readable text (analyze, version)
  --no-color   Disable colored output (analyze)
  --quiet      Suppress progress bars and diagnostic lines (analyze)

Run 'ccg <command> --help' for flag details on a specific command.
`)
}

// newFlagSet returns a pflag.FlagSet configured with ContinueOnError
// parsing: Parse returns the error, and callers pass it to
// exitOnParseError, which prints it with the flag defaults and exits
// ExitInput. This matches the
// teacher's per-subcommand flag.NewFlagSet convention but built on
// pflag for GNU-style long/short flag parity.
func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	return fs
}

func exitOnParseError(fs *pflag.FlagSet, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "ccg: %v\n", err)
	fs.PrintDefaults()
	os.Exit(ccgerrors.ExitInput)
}
