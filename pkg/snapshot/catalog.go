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

package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Catalog is the snapshots/ directory under one workspace root.
type Catalog struct {
	dir string
}

// NewCatalog opens the catalog at <workspace>/snapshots, creating the
// directory if it does not exist.
func NewCatalog(workspace string) (*Catalog, error) {
	dir := filepath.Join(workspace, "snapshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create snapshots dir: %w", err)
	}
	return &Catalog{dir: dir}, nil
}

// Write serializes rec to <root>.json, writing to a temp file in the
// same directory first and renaming into place so readers never
// observe a torn write.
func (c *Catalog) Write(rec Record) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot record: %w", err)
	}

	final := filepath.Join(c.dir, rec.Root+".json")
	tmp, err := os.CreateTemp(c.dir, "*.json.tmp")
	if err != nil {
		return fmt.Errorf("create temp snapshot file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp snapshot file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp snapshot file: %w", err)
	}
	if err := os.Rename(tmpPath, final); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename snapshot file: %w", err)
	}
	return nil
}

// Summary is one line of list() output.
type Summary struct {
	Root       string
	TotalFiles uint64
	TotalBytes uint64
}

// Line formats a Summary as "<root> <total_files> files <total_bytes>
// bytes", matching the documented list() output line.
func (s Summary) Line() string {
	return fmt.Sprintf("%s %d files %d bytes", s.Root, s.TotalFiles, s.TotalBytes)
}

// List reads every *.json record under the catalog, sorts them by
// timestamp descending, and returns at most limit (or all, when limit
// <= 0). When languages is non-empty, only records with at least one
// file extension in languages survive the filter — a pure read-side
// convenience layered on top of the durable schema.
func (c *Catalog) List(limit int, languages []string) ([]Summary, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return nil, fmt.Errorf("read snapshots dir: %w", err)
	}

	var records []Record
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(c.dir, e.Name()))
		if err != nil {
			continue // missing/unreadable individual records never fail list
		}
		var rec Record
		if err := json.Unmarshal(data, &rec); err != nil {
			continue // malformed individual records never fail list
		}
		if len(languages) > 0 && !recordMatchesLanguages(rec, languages) {
			continue
		}
		records = append(records, rec)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Timestamp.After(records[j].Timestamp)
	})

	if limit > 0 && limit < len(records) {
		records = records[:limit]
	}

	summaries := make([]Summary, len(records))
	for i, rec := range records {
		summaries[i] = Summary{Root: rec.Root, TotalFiles: rec.TotalFiles, TotalBytes: rec.TotalBytes}
	}
	return summaries, nil
}

// recordMatchesLanguages reports whether any file in rec has an
// extension (without the dot, lowercased) present in languages.
func recordMatchesLanguages(rec Record, languages []string) bool {
	want := make(map[string]bool, len(languages))
	for _, l := range languages {
		want[strings.ToLower(l)] = true
	}
	extToLang := map[string]string{
		"py": "python", "js": "javascript", "mjs": "javascript",
		"java": "java", "kt": "kotlin", "kts": "kotlin",
	}
	for _, f := range rec.Files {
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(f.Path), "."))
		if lang, ok := extToLang[ext]; ok && want[lang] {
			return true
		}
	}
	return false
}

// Show reads the record named id. found is false (with a nil error) if
// the record does not exist on disk — callers should print a warning
// and continue, never fail the command.
func (c *Catalog) Show(id string) (rec Record, found bool, err error) {
	data, err := os.ReadFile(filepath.Join(c.dir, id+".json"))
	if err != nil {
		if os.IsNotExist(err) {
			return Record{}, false, nil
		}
		return Record{}, false, err
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, false, err
	}
	return rec, true, nil
}

// DiffResult reports the three path sets a Catalog diff produces.
type DiffResult struct {
	Added   []string
	Removed []string
	Changed []string
}

// pathIndex is an in-memory hash index from path to its FileEntry,
// bucketed by xxhash of the path rather than Go's built-in map hash —
// a fast, non-cryptographic key for lookups only; it has no bearing on
// blob identity, which is Blake3 throughout the CAS and Merkle layers.
type pathIndex struct {
	buckets map[uint64][]FileEntry
}

func newPathIndex(files []FileEntry) *pathIndex {
	idx := &pathIndex{buckets: make(map[uint64][]FileEntry, len(files))}
	for _, f := range files {
		key := xxhash.Sum64String(f.Path)
		idx.buckets[key] = append(idx.buckets[key], f)
	}
	return idx
}

func (idx *pathIndex) get(path string) (FileEntry, bool) {
	for _, f := range idx.buckets[xxhash.Sum64String(path)] {
		if f.Path == path {
			return f, true
		}
	}
	return FileEntry{}, false
}

// Diff reads the two named records and computes added/removed/changed
// path sets between them, sorted lexicographically within each
// section (the spec permits any order beyond set membership; sorting
// keeps output deterministic for tests and for humans).
func (c *Catalog) Diff(fromID, toID string) (DiffResult, error) {
	from, foundFrom, err := c.Show(fromID)
	if err != nil {
		return DiffResult{}, err
	}
	to, foundTo, err := c.Show(toID)
	if err != nil {
		return DiffResult{}, err
	}
	if !foundFrom {
		from = Record{}
	}
	if !foundTo {
		to = Record{}
	}

	fromIdx := newPathIndex(from.Files)
	toIdx := newPathIndex(to.Files)

	var result DiffResult
	for _, f := range to.Files {
		if _, ok := fromIdx.get(f.Path); !ok {
			result.Added = append(result.Added, f.Path)
		}
	}
	for _, f := range from.Files {
		toEntry, ok := toIdx.get(f.Path)
		if !ok {
			result.Removed = append(result.Removed, f.Path)
			continue
		}
		if toEntry.Hash != f.Hash {
			result.Changed = append(result.Changed, f.Path)
		}
	}

	sort.Strings(result.Added)
	sort.Strings(result.Removed)
	sort.Strings(result.Changed)

	return result, nil
}
