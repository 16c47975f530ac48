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

import "github.com/bmatcuk/doublestar/v4"

// ignoreMatch reports whether name (a bare file or directory name, not
// a path) matches any of patterns. Matching is restricted to bare
// names deliberately: a pattern is matched against the entry's own
// name, never against the full relative path, so "*.ext" and
// "*literal" suffix patterns and exact-name patterns all behave the
// same way regardless of how deep the entry sits. This also makes
// ".git" match at any depth without special-casing it, since every
// directory entry is tested by its own name alone.
func ignoreMatch(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}
