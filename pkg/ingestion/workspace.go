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

import "path/filepath"

// resolveWorkspace computes the workspace directory (which holds
// snapshots/ and, conventionally, the CAS root) and the CAS store root
// from the repository root and the configured CAS storage path.
//
// An empty configuredCASPath means "no CAS path was explicitly
// configured": the workspace defaults to <rootPath>/.ccg and the CAS
// root to <workspace>/cas. Otherwise the configured path drives the
// resolution: if its last path component is literally "cas", the
// workspace is its parent directory (the common case, matching the
// default layout); any other configured path is itself the workspace,
// and also the CAS root.
// ResolveWorkspace exposes resolveWorkspace for callers outside this
// package — the CLI needs the same layout rule to locate an existing
// workspace's snapshot catalog without re-running ingestion.
func ResolveWorkspace(rootPath, configuredCASPath string) (workspace, casRoot string) {
	return resolveWorkspace(rootPath, configuredCASPath)
}

func resolveWorkspace(rootPath, configuredCASPath string) (workspace, casRoot string) {
	if configuredCASPath == "" {
		workspace = filepath.Join(rootPath, ".ccg")
		return workspace, filepath.Join(workspace, "cas")
	}

	if !filepath.IsAbs(configuredCASPath) {
		configuredCASPath = filepath.Join(rootPath, configuredCASPath)
	}

	if filepath.Base(configuredCASPath) == "cas" {
		workspace = filepath.Dir(configuredCASPath)
	} else {
		workspace = configuredCASPath
	}
	return workspace, configuredCASPath
}
