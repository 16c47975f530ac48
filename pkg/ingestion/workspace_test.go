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

package ingestion

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveWorkspace(t *testing.T) {
	tests := []struct {
		name          string
		rootPath      string
		configuredCAS string
		wantWorkspace string
		wantCASRoot   string
	}{
		{
			name:          "empty configured path defaults to repo/.ccg",
			rootPath:      "/repo",
			configuredCAS: "",
			wantWorkspace: filepath.Join("/repo", ".ccg"),
			wantCASRoot:   filepath.Join("/repo", ".ccg", "cas"),
		},
		{
			name:          "configured path ending in cas uses parent as workspace",
			rootPath:      "/repo",
			configuredCAS: "/repo/.ccg/cas",
			wantWorkspace: "/repo/.ccg",
			wantCASRoot:   "/repo/.ccg/cas",
		},
		{
			name:          "configured path not ending in cas is its own workspace",
			rootPath:      "/repo",
			configuredCAS: "/var/lib/ccg-store",
			wantWorkspace: "/var/lib/ccg-store",
			wantCASRoot:   "/var/lib/ccg-store",
		},
		{
			name:          "relative configured path resolves against rootPath",
			rootPath:      "/repo",
			configuredCAS: "./cas_store",
			wantWorkspace: filepath.Join("/repo", "cas_store"),
			wantCASRoot:   filepath.Join("/repo", "cas_store"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			workspace, casRoot := resolveWorkspace(tt.rootPath, tt.configuredCAS)
			assert.NotEmpty(t, workspace)
			assert.NotEmpty(t, casRoot)
			assert.Equal(t, tt.wantWorkspace, workspace)
			assert.Equal(t, tt.wantCASRoot, casRoot)
		})
	}
}

func TestResolveWorkspace_DefaultLayout(t *testing.T) {
	workspace, casRoot := resolveWorkspace("/repo", "")
	assert.Equal(t, filepath.Join("/repo", ".ccg"), workspace)
	assert.Equal(t, filepath.Join("/repo", ".ccg", "cas"), casRoot)
}

func TestResolveWorkspace_CASBasenameDerivesParent(t *testing.T) {
	workspace, casRoot := resolveWorkspace("/repo", "/repo/.ccg/cas")
	assert.Equal(t, "/repo/.ccg", workspace)
	assert.Equal(t, "/repo/.ccg/cas", casRoot)
}

func TestResolveWorkspace_NonCASBasenameIsOwnWorkspace(t *testing.T) {
	workspace, casRoot := resolveWorkspace("/repo", "/var/lib/ccg-store")
	assert.Equal(t, "/var/lib/ccg-store", workspace)
	assert.Equal(t, "/var/lib/ccg-store", casRoot)
}

func TestResolveWorkspace_RelativePathJoinsRoot(t *testing.T) {
	workspace, casRoot := resolveWorkspace("/repo", "cas_store")
	assert.Equal(t, filepath.Join("/repo", "cas_store"), workspace)
	assert.Equal(t, filepath.Join("/repo", "cas_store"), casRoot)
}
