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

// Package config defines the options consumed by the core pipeline and
// loads them from an optional YAML file, applying defaults for
// anything the file omits. Every option is optional; a zero-value
// Options loaded with Default() is a valid configuration on its own.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Options is the flat configuration surface every core component
// reads from. Field groups mirror the dotted option names in the
// external interface (parser.*, cas.*, versioning.*, engine.*,
// falkordb.*).
type Options struct {
	Parser      ParserOptions      `yaml:"parser"`
	CAS         CASOptions         `yaml:"cas"`
	Versioning  VersioningOptions  `yaml:"versioning"`
	Engine      EngineOptions      `yaml:"engine"`
	FalkorDB    FalkorDBOptions    `yaml:"falkordb"`
	Concurrency ConcurrencyOptions `yaml:"concurrency"`
}

// ParserOptions bounds what the ingestion driver will attempt to parse
// at all.
type ParserOptions struct {
	MaxFileSizeKB  int      `yaml:"max_file_size_kb"`
	IgnorePatterns []string `yaml:"ignore_patterns"`
}

// CASOptions configures the content-addressed store's on-disk location.
type CASOptions struct {
	StoragePath string `yaml:"storage_path"`
}

// VersioningOptions configures the Merkle tree builder.
type VersioningOptions struct {
	MerkleTreeFanout int `yaml:"merkle_tree_fanout"`
}

// EngineOptions configures which languages the driver will attempt to
// parse with the registry, rather than falling straight to the
// fallback scanner.
type EngineOptions struct {
	Languages []string `yaml:"languages"`
}

// FalkorDBOptions configures the live graph executor's target.
type FalkorDBOptions struct {
	URL       string `yaml:"url"`
	GraphName string `yaml:"graph_name"`
}

// ConcurrencyOptions enables the optional worker-pool parallelism
// variant of the ingestion driver. ParseWorkers <= 1 (the default)
// keeps the core single-threaded and cooperative; ParseWorkers > 1
// switches per-file parse+graph-statement work onto a bounded worker
// pool, with the Merkle re-sort always performed by the caller after
// all workers join.
type ConcurrencyOptions struct {
	ParseWorkers int `yaml:"parse_workers"`
}

// Default returns the documented default configuration.
func Default() Options {
	return Options{
		Parser: ParserOptions{
			MaxFileSizeKB:  1024,
			IgnorePatterns: []string{"*_test.py", "*.min.js"},
		},
		CAS: CASOptions{
			StoragePath: "./cas_store",
		},
		Versioning: VersioningOptions{
			MerkleTreeFanout: 16,
		},
		Engine: EngineOptions{
			Languages: []string{"python", "javascript", "java", "kotlin"},
		},
		FalkorDB: FalkorDBOptions{
			URL:       "redis://127.0.0.1:6379",
			GraphName: "ccg",
		},
		Concurrency: ConcurrencyOptions{
			ParseWorkers: 1,
		},
	}
}

// Load reads a YAML file at path, overlaying its contents onto
// Default(). A missing file is not an error: Load returns the defaults
// unmodified. Unknown keys are tolerated (yaml.v3's default decode
// behavior); fields the file omits keep their default values because
// decoding targets the already-defaulted Options value in place.
func Load(path string) (Options, error) {
	opts := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return opts, nil
		}
		return opts, err
	}

	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, err
	}

	return opts, nil
}
