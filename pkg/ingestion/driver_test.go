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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/ccg/pkg/config"
	"github.com/kraklabs/ccg/pkg/graphexec"
)

func newTestOptions(t *testing.T) config.Options {
	t.Helper()
	opts := config.Default()
	opts.CAS.StoragePath = "" // use the <root>/.ccg default layout
	t.Setenv(graphexec.EnvVarName(), filepath.Join(t.TempDir(), "graph.log"))
	return opts
}

func TestDriver_Run_IndexesAndWritesSnapshot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "app.py"), []byte("def handler():\n    import os\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "App.java"), []byte("package com.example;\nclass App {}\n"), 0o644))

	opts := newTestOptions(t)
	driver, err := New(opts, nil)
	require.NoError(t, err)

	result, err := driver.Run(context.Background(), root, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, result.FilesIndexed)
	assert.NotEmpty(t, result.Root)
	assert.Greater(t, result.TotalBytes, int64(0))

	snapshotPath := filepath.Join(root, ".ccg", "snapshots", result.Root+".json")
	assert.FileExists(t, snapshotPath)
}

func TestDriver_Run_HonorsLanguageAllowList(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "app.py"), []byte("def handler():\n    pass\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "App.java"), []byte("class App {}\n"), 0o644))

	opts := newTestOptions(t)
	driver, err := New(opts, nil)
	require.NoError(t, err)

	result, err := driver.Run(context.Background(), root, []string{"python"}, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, result.FilesIndexed)
	assert.Equal(t, 1, result.FilesByLanguage["python"])
}

func TestDriver_Run_SingleFileInput(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "solo.py")
	require.NoError(t, os.WriteFile(file, []byte("x = 1\n"), 0o644))

	opts := newTestOptions(t)
	driver, err := New(opts, nil)
	require.NoError(t, err)

	result, err := driver.Run(context.Background(), file, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, result.FilesIndexed)
}

func TestDriver_Run_StoresCommitMessage(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.py"), []byte("x = 1\n"), 0o644))

	opts := newTestOptions(t)
	driver, err := New(opts, nil)
	require.NoError(t, err)

	message := "initial ingest"
	result, err := driver.Run(context.Background(), root, nil, &message)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Root)
}

func TestDriver_Run_WorkerPoolMatchesSequentialFileCount(t *testing.T) {
	root := t.TempDir()
	for i := 0; i < 5; i++ {
		name := filepath.Join(root, "f"+string(rune('a'+i))+".py")
		require.NoError(t, os.WriteFile(name, []byte("def f():\n    pass\n"), 0o644))
	}

	opts := newTestOptions(t)
	opts.Concurrency.ParseWorkers = 4
	driver, err := New(opts, nil)
	require.NoError(t, err)

	result, err := driver.Run(context.Background(), root, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, result.FilesIndexed)
}

func TestResult_ParseErrorRate(t *testing.T) {
	r := Result{
		FilesIndexed:          4,
		ParseErrorsByLanguage: map[string]int{"python": 1},
	}
	assert.Equal(t, 0.25, r.ParseErrorRate())
}

func TestResult_ParseErrorRate_NoFiles(t *testing.T) {
	r := Result{}
	assert.Equal(t, float64(0), r.ParseErrorRate())
}
