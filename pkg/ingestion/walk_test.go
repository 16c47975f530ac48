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
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/ccg/pkg/detect"
)

func relPaths(files []discoveredFile) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.RelPath
	}
	sort.Strings(out)
	return out
}

func TestWalkTree_SkipsCCGDirectory(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".ccg", "snapshots"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".ccg", "snapshots", "deadbeef.json"), []byte("{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.py"), []byte("def f():\n    pass\n"), 0o644))

	files, err := walkTree(root, nil, 1<<20, nil, slog.Default())
	require.NoError(t, err)
	assert.Equal(t, []string{"main.py"}, relPaths(files))
}

func TestWalkTree_AppliesIgnorePatterns(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "app.py"), []byte("x = 1\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "app_test.py"), []byte("x = 1\n"), 0o644))

	files, err := walkTree(root, []string{"*_test.py"}, 1<<20, nil, slog.Default())
	require.NoError(t, err)
	assert.Equal(t, []string{"app.py"}, relPaths(files))
}

func TestWalkTree_EnforcesSizeLimit(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "small.py"), []byte("x = 1\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "big.py"), make([]byte, 2048), 0o644))

	files, err := walkTree(root, nil, 100, nil, slog.Default())
	require.NoError(t, err)
	assert.Equal(t, []string{"small.py"}, relPaths(files))
}

func TestWalkTree_AppliesLanguageAllowList(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "app.py"), []byte("x = 1\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "App.java"), []byte("class App {}\n"), 0o644))

	allow := map[detect.Language]bool{detect.Python: true}
	files, err := walkTree(root, nil, 1<<20, allow, slog.Default())
	require.NoError(t, err)
	assert.Equal(t, []string{"app.py"}, relPaths(files))
}

func TestWalkTree_RecursesNestedDirectories(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "pkg", "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "top.py"), []byte("x = 1\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "pkg", "mid.py"), []byte("x = 1\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "pkg", "sub", "deep.py"), []byte("x = 1\n"), 0o644))

	files, err := walkTree(root, nil, 1<<20, nil, slog.Default())
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.ToSlash(filepath.Join("pkg", "mid.py")),
		filepath.ToSlash(filepath.Join("pkg", "sub", "deep.py")),
		"top.py",
	}, relPaths(files))
}

func TestWalkTree_SingleFileRoot(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "solo.py")
	require.NoError(t, os.WriteFile(path, []byte("x = 1\n"), 0o644))

	files, err := walkTree(path, nil, 1<<20, nil, slog.Default())
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "solo.py", files[0].RelPath)
}

func TestWalkTree_MissingRootReturnsError(t *testing.T) {
	_, err := walkTree(filepath.Join(t.TempDir(), "missing"), nil, 1<<20, nil, slog.Default())
	assert.Error(t, err)
}
