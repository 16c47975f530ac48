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

// Package cas implements a content-addressed blob store on the local
// filesystem. Blobs are keyed by their Blake3 digest and laid out as
// <root>/<xx>/<rest> where xx is the first two hex characters of the
// digest. Writes are atomic: bytes land in a sibling temp file first and
// are renamed into place, so concurrent puts of identical content always
// converge on a single, uncorrupted object.
package cas

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kraklabs/ccg/pkg/hashing"
)

// ConfigError indicates a Store was misconfigured (e.g. empty root).
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("cas: config error: %s", e.Reason)
}

// InvalidDigestError indicates an operation was given a digest that is
// too short to address any object in the store.
type InvalidDigestError struct {
	Digest hashing.Digest
}

func (e *InvalidDigestError) Error() string {
	return fmt.Sprintf("cas: invalid digest %q", string(e.Digest))
}

// StorageError wraps an I/O failure encountered while accessing the
// store, carrying the path involved for diagnostics.
type StorageError struct {
	Path  string
	Cause error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("cas: storage error at %s: %v", e.Path, e.Cause)
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}

// Store is a content-addressed blob store rooted at a local directory.
type Store struct {
	root string
}

// New creates a Store rooted at root, creating the directory tree if it
// does not yet exist. Returns a ConfigError if root is empty.
func New(root string) (*Store, error) {
	if root == "" {
		return nil, &ConfigError{Reason: "root path must not be empty"}
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, &StorageError{Path: root, Cause: err}
	}
	return &Store{root: root}, nil
}

// Root returns the store's root directory.
func (s *Store) Root() string {
	return s.root
}

// bucketPath returns the directory and full object path for a digest.
func (s *Store) bucketPath(digest hashing.Digest) (dir, path string, err error) {
	d := string(digest)
	if len(d) < 2 {
		return "", "", &InvalidDigestError{Digest: digest}
	}
	dir = filepath.Join(s.root, d[:2])
	path = filepath.Join(dir, d[2:])
	return dir, path, nil
}

// Put stores b in the CAS and returns its digest. If an object with the
// same digest already exists, Put returns immediately without writing
// (content-addressed deduplication) — this also makes concurrent Puts of
// identical content safe: whichever writer loses the rename race simply
// finds the target already present and treats that as success.
func (s *Store) Put(b []byte) (hashing.Digest, error) {
	digest := hashing.Hash(b)

	dir, path, err := s.bucketPath(digest)
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(path); err == nil {
		return digest, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &StorageError{Path: dir, Cause: err}
	}

	tmp, err := os.CreateTemp(dir, "*.tmp")
	if err != nil {
		return "", &StorageError{Path: dir, Cause: err}
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", &StorageError{Path: tmpPath, Cause: err}
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", &StorageError{Path: tmpPath, Cause: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", &StorageError{Path: tmpPath, Cause: err}
	}

	if err := os.Rename(tmpPath, path); err != nil {
		// Another writer may have already landed the same content;
		// a present target is success, not a conflict.
		if _, statErr := os.Stat(path); statErr == nil {
			os.Remove(tmpPath)
			return digest, nil
		}
		os.Remove(tmpPath)
		return "", &StorageError{Path: path, Cause: err}
	}

	return digest, nil
}

// Get returns the bytes stored under digest, or ok=false if no such
// object exists.
func (s *Store) Get(digest hashing.Digest) (data []byte, ok bool, err error) {
	_, path, err := s.bucketPath(digest)
	if err != nil {
		return nil, false, err
	}

	data, err = os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, &StorageError{Path: path, Cause: err}
	}
	return data, true, nil
}

// Has reports whether an object with digest exists, without reading it.
func (s *Store) Has(digest hashing.Digest) bool {
	_, path, err := s.bucketPath(digest)
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}
