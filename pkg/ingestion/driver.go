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
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kraklabs/ccg/internal/ui"
	"github.com/kraklabs/ccg/pkg/cas"
	"github.com/kraklabs/ccg/pkg/config"
	"github.com/kraklabs/ccg/pkg/detect"
	"github.com/kraklabs/ccg/pkg/graphexec"
	"github.com/kraklabs/ccg/pkg/graphquery"
	"github.com/kraklabs/ccg/pkg/merkle"
	"github.com/kraklabs/ccg/pkg/parser"
	"github.com/kraklabs/ccg/pkg/snapshot"
)

// Driver is the single entry point that walks a source tree, stores and
// parses every kept file, and writes a snapshot record. Construct one
// with New and call Run once per ingestion.
type Driver struct {
	opts    config.Options
	metrics *metrics
	logger  *slog.Logger
}

// New builds a Driver from opts. reg may be nil, in which case the
// driver's collectors are created but never registered anywhere, so
// nothing is published — the core stays usable as an embedded library
// with no ambient global state.
func New(opts config.Options, reg *prometheus.Registry) (*Driver, error) {
	return &Driver{
		opts:    opts,
		metrics: newMetrics(reg),
		logger:  slog.Default(),
	}, nil
}

// fileOutcome is the per-file result of the parse-and-emit stage,
// collected by both the sequential and worker-pool code paths before
// being folded, in walk order, into the Merkle tree and the executor.
type fileOutcome struct {
	file       discoveredFile
	language   detect.Language
	statements []string
	fellBack   bool
}

// Run performs one full ingestion pass over rootPath and returns its
// Result. languageAllowList, when non-empty, restricts which languages
// are kept during the walk; it overrides opts.Engine.Languages for this
// call only. message, when non-nil, is stored as the snapshot record's
// commit message.
func (d *Driver) Run(ctx context.Context, rootPath string, languageAllowList []string, message *string) (*Result, error) {
	start := time.Now()

	workspace, casRoot := resolveWorkspace(rootPath, d.opts.CAS.StoragePath)

	store, err := cas.New(casRoot)
	if err != nil {
		return nil, fmt.Errorf("construct cas store: %w", err)
	}

	executor, err := graphexec.NewFromEnv(d.opts.FalkorDB.URL)
	if err != nil {
		return nil, fmt.Errorf("construct graph executor: %w", err)
	}
	defer executor.Close()

	builder := merkle.NewBuilder(d.opts.Versioning.MerkleTreeFanout)
	registry := parser.NewRegistry()

	allowLanguages := languageAllowSet(languageAllowList)
	if allowLanguages == nil {
		allowLanguages = languageAllowSet(d.opts.Engine.Languages)
	}

	maxFileSizeBytes := int64(d.opts.Parser.MaxFileSizeKB) * 1024

	files, err := walkTree(rootPath, d.opts.Parser.IgnorePatterns, maxFileSizeBytes, allowLanguages, d.logger)
	if err != nil {
		return nil, fmt.Errorf("walk tree: %w", err)
	}

	var outcomes []fileOutcome
	if d.opts.Concurrency.ParseWorkers > 1 {
		outcomes = d.parseAndEmitParallel(ctx, files, registry, d.opts.Concurrency.ParseWorkers)
	} else {
		outcomes = d.parseAndEmitSequential(ctx, files, registry)
	}

	graphName := d.opts.FalkorDB.GraphName
	var entries []snapshot.FileEntry
	var totalBytes int64
	filesByLanguage := make(map[string]int)
	parseErrorsByLanguage := make(map[string]int)

	for _, outcome := range outcomes {
		builder.Add(outcome.file.RelPath, outcome.file.Content)
		totalBytes += int64(len(outcome.file.Content))
		filesByLanguage[string(outcome.language)]++
		if outcome.fellBack {
			parseErrorsByLanguage[string(outcome.language)]++
		}
		d.metrics.fileIndexed(int64(len(outcome.file.Content)))

		statementStart := time.Now()
		for _, statement := range outcome.statements {
			if _, err := executor.Query(ctx, graphName, statement); err != nil {
				d.logger.Warn("graph statement rejected", "path", outcome.file.RelPath, "error", err)
			}
		}
		d.metrics.observeGraphStatement(time.Since(statementStart).Seconds())

		casStart := time.Now()
		digest, err := store.Put(outcome.file.Content)
		d.metrics.observeCASPut(time.Since(casStart).Seconds())
		if err != nil {
			d.logger.Warn("cas put failed, file counted but not recorded", "path", outcome.file.RelPath, "error", err)
			continue
		}
		entries = append(entries, snapshot.FileEntry{Path: outcome.file.RelPath, Hash: digest.String()})
	}

	tree := builder.Build()
	root := tree.Root.String()

	ui.Donef("Indexed files: %d", len(outcomes))
	ui.Donef("Total bytes: %d", totalBytes)
	ui.Donef("root: %s", root)

	catalog, err := snapshot.NewCatalog(workspace)
	if err != nil {
		return nil, fmt.Errorf("open snapshot catalog: %w", err)
	}

	if err := catalog.Write(snapshot.Record{
		Root:       root,
		TotalFiles: uint64(len(outcomes)),
		TotalBytes: uint64(totalBytes),
		Timestamp:  time.Now(),
		User:       nil,
		Message:    message,
		Files:      entries,
	}); err != nil {
		return nil, fmt.Errorf("write snapshot record: %w", err)
	}

	result := &Result{
		Root:                  root,
		FilesIndexed:          len(outcomes),
		TotalBytes:            totalBytes,
		Duration:              time.Since(start),
		ParseErrorsByLanguage: parseErrorsByLanguage,
		FilesByLanguage:       filesByLanguage,
	}

	if err := writeMetricsSummary(workspace, result); err != nil {
		d.logger.Warn("failed to write metrics summary", "error", err)
	}

	return result, nil
}

// parseAndEmitSequential processes files in walk order, one at a time —
// the default, single-threaded-cooperative path described by the
// concurrency model.
func (d *Driver) parseAndEmitSequential(ctx context.Context, files []discoveredFile, registry *parser.Registry) []fileOutcome {
	outcomes := make([]fileOutcome, 0, len(files))
	for _, f := range files {
		outcomes = append(outcomes, d.parseAndEmitOne(ctx, f, registry))
	}
	return outcomes
}

// parseAndEmitParallel fans the same per-file work out over a bounded
// worker pool of min(runtime.NumCPU(), 8, workers) goroutines (at
// least one). Results are collected in a slice indexed by the file's
// position in files, so the caller observes the same walk order as the
// sequential path regardless of which worker finished first. The
// caller executes graph statements in that order; the Merkle root does
// not depend on it, since the builder re-sorts by path internally.
func (d *Driver) parseAndEmitParallel(ctx context.Context, files []discoveredFile, registry *parser.Registry, workers int) []fileOutcome {
	numWorkers := runtime.NumCPU()
	if numWorkers > 8 {
		numWorkers = 8
	}
	if workers < numWorkers {
		numWorkers = workers
	}
	if numWorkers < 1 {
		numWorkers = 1
	}

	jobs := make(chan int, len(files))
	outcomes := make([]fileOutcome, len(files))

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				outcomes[i] = d.parseAndEmitOne(ctx, files[i], registry)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return outcomes
}

// parseAndEmitOne detects the language of f, attempts a parse, and
// produces the ordered graph statement sequence for it: AST-driven
// statements first, then fallback-scanner statements layered on top
// whenever the language is unsupported or the AST output named neither
// a Function nor a Module.
func (d *Driver) parseAndEmitOne(ctx context.Context, f discoveredFile, registry *parser.Registry) fileOutcome {
	language := detect.Detect(f.AbsPath, f.Content)

	parseStart := time.Now()
	var statements []string
	fellBack := false

	if detect.Supported(language) {
		tree, err := registry.Parse(ctx, language, f.Content)
		if err != nil {
			d.metrics.parseError(string(language))
			fellBack = true
			statements = graphquery.Fallback(nil, f.RelPath, f.Content)
		} else {
			statements = graphquery.Generate(tree, f.RelPath)
			if !graphquery.HasFunctionOrModuleStatement(statements) {
				fellBack = true
				statements = graphquery.Fallback(statements, f.RelPath, f.Content)
			}
		}
	} else {
		fellBack = true
		statements = graphquery.Fallback(nil, f.RelPath, f.Content)
	}
	d.metrics.observeParse(time.Since(parseStart).Seconds())

	return fileOutcome{file: f, language: language, statements: statements, fellBack: fellBack}
}

// languageAllowSet converts a list of language names into the set form
// walkTree expects. Returns nil for an empty list, meaning "no
// restriction" — distinct from a non-nil empty set, which would keep
// nothing.
func languageAllowSet(names []string) map[detect.Language]bool {
	if len(names) == 0 {
		return nil
	}
	set := make(map[detect.Language]bool, len(names))
	for _, name := range names {
		set[detect.Language(name)] = true
	}
	return set
}
