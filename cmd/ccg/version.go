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

package main

import (
	"fmt"
	"os"

	ccgerrors "github.com/kraklabs/ccg/internal/errors"
	"github.com/kraklabs/ccg/internal/output"
	"github.com/kraklabs/ccg/internal/ui"
	"github.com/kraklabs/ccg/pkg/config"
	"github.com/kraklabs/ccg/pkg/ingestion"
	"github.com/kraklabs/ccg/pkg/snapshot"
)

// runVersion dispatches `ccg version list|show|diff`, each operating on
// the snapshot catalog under the workspace resolved from --path.
func runVersion(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "ccg version: expected a subcommand (list, show, diff)")
		os.Exit(ccgerrors.ExitInput)
	}

	sub, rest := args[0], args[1:]
	switch sub {
	case "list":
		runVersionList(rest)
	case "show":
		runVersionShow(rest)
	case "diff":
		runVersionDiff(rest)
	default:
		fmt.Fprintf(os.Stderr, "ccg version: unknown subcommand %q\n", sub)
		os.Exit(ccgerrors.ExitInput)
	}
}

// openCatalog resolves the workspace under path per the same layout
// rule the ingestion driver uses, and opens its snapshot catalog.
func openCatalog(path string) *snapshot.Catalog {
	opts := config.Default()
	workspace, _ := ingestion.ResolveWorkspace(path, opts.CAS.StoragePath)

	catalog, err := snapshot.NewCatalog(workspace)
	if err != nil {
		fail(ccgerrors.NewIoError("Cannot open snapshot catalog", err.Error(), "Run 'ccg analyze --path "+path+"' at least once first", err), false)
	}
	return catalog
}

func runVersionList(args []string) {
	fs := newFlagSet("version list")
	path := fs.String("path", ".", "Repository root whose workspace holds the snapshot catalog")
	languages := fs.String("languages", "", "Comma-separated language filter")
	limit := fs.Int("limit", 0, "Maximum number of records to print (0 = all)")
	jsonOut := fs.Bool("json", false, "Emit JSON instead of human-readable output")

	if err := fs.Parse(args); err != nil {
		exitOnParseError(fs, err)
	}

	catalog := openCatalog(*path)

	var allowList []string
	if *languages != "" {
		allowList = splitCSV(*languages)
	}

	summaries, err := catalog.List(*limit, allowList)
	if err != nil {
		fail(ccgerrors.NewIoError("Cannot list snapshot catalog", err.Error(), "Check that the workspace's snapshots directory is readable", err), *jsonOut)
	}

	if *jsonOut {
		_ = output.JSON(summaries)
		return
	}

	for _, s := range summaries {
		fmt.Println(s.Line())
	}
}

func runVersionShow(args []string) {
	fs := newFlagSet("version show")
	path := fs.String("path", ".", "Repository root whose workspace holds the snapshot catalog")
	id := fs.String("id", "", "Snapshot root to show (required)")
	jsonOut := fs.Bool("json", false, "Emit JSON instead of human-readable output")

	if err := fs.Parse(args); err != nil {
		exitOnParseError(fs, err)
	}
	if *id == "" {
		fail(ccgerrors.NewInputError("Missing required --id flag", "", "Pass --id <root> (see 'ccg version list' for available roots)"), *jsonOut)
	}

	catalog := openCatalog(*path)

	rec, found, err := catalog.Show(*id)
	if err != nil {
		fail(ccgerrors.NewIoError("Cannot read snapshot record", err.Error(), "Check that the record file is valid JSON", err), *jsonOut)
	}
	if !found {
		ui.Warningf("No snapshot found with id %s", *id)
		return
	}

	if *jsonOut {
		_ = output.JSON(rec)
		return
	}

	fmt.Printf("root:        %s\n", rec.Root)
	fmt.Printf("total_files: %d\n", rec.TotalFiles)
	fmt.Printf("total_bytes: %d\n", rec.TotalBytes)
	fmt.Printf("timestamp:   %s\n", rec.Timestamp.Format("2006-01-02T15:04:05Z07:00"))
	if rec.Message != nil {
		fmt.Printf("message:     %s\n", *rec.Message)
	}
}

func runVersionDiff(args []string) {
	fs := newFlagSet("version diff")
	path := fs.String("path", ".", "Repository root whose workspace holds the snapshot catalog")
	from := fs.String("from", "", "Earlier snapshot root (required)")
	to := fs.String("to", "", "Later snapshot root (required)")
	jsonOut := fs.Bool("json", false, "Emit JSON instead of human-readable output")

	if err := fs.Parse(args); err != nil {
		exitOnParseError(fs, err)
	}
	if *from == "" || *to == "" {
		fail(ccgerrors.NewInputError("Missing required --from/--to flags", "", "Pass both --from <root> and --to <root>"), *jsonOut)
	}

	catalog := openCatalog(*path)

	diff, err := catalog.Diff(*from, *to)
	if err != nil {
		fail(ccgerrors.NewIoError("Cannot diff snapshot records", err.Error(), "Check that both --from and --to roots exist", err), *jsonOut)
	}

	if *jsonOut {
		_ = output.JSON(diff)
		return
	}

	printSection := func(label string, paths []string) {
		fmt.Printf("%s (%d):\n", label, len(paths))
		for _, p := range paths {
			fmt.Printf("  %s\n", p)
		}
	}
	printSection("added", diff.Added)
	printSection("removed", diff.Removed)
	printSection("changed", diff.Changed)
}
