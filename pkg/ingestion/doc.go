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

// Package ingestion is the single entry point that walks a source
// tree, hashes and stores every kept file's bytes, parses it into
// graph statements, and writes a snapshot record summarizing the run.
//
// # Quick start
//
//	opts := config.Default()
//	driver, err := ingestion.New(opts, nil)
//	if err != nil {
//	    return err
//	}
//	result, err := driver.Run(ctx, "/path/to/repo", nil, nil)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("Indexed %d files, root %s\n", result.FilesIndexed, result.Root)
//
// The driver is single-threaded and cooperative by default: it walks,
// parses, and persists in strict sequence per file. Setting
// config.Options.Concurrency.ParseWorkers above 1 switches the
// parse-and-emit stage onto a bounded worker pool; the Merkle tree is
// always rebuilt from a path-sorted view afterward regardless of which
// mode produced the per-file results, so the resulting root is
// independent of processing order either way.
package ingestion
