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

// Package graphexec is the narrow boundary between the ingestion
// driver and whatever stores the property graph. Executors are
// stateless with respect to previous statements: all correctness comes
// from the MERGE idempotency of the statements graphquery produces, not
// from anything the executor remembers.
package graphexec

import "context"

// Executor issues a single statement against a named graph and returns
// whatever value the backend replies with.
type Executor interface {
	Query(ctx context.Context, graphName, statement string) (any, error)
	Close() error
}

// recordGraphEnvVar names the environment variable that, when set,
// selects RecordingExecutor over RedisExecutor: its value is the file
// path statements are appended to. Read once at driver construction —
// never consulted again afterward, keeping the one piece of global
// mutable state this package has confined to a single read site.
const recordGraphEnvVar = "CCG_RECORD_GRAPH"

// EnvVarName returns the name of the environment variable executor
// selection is keyed on, for callers (the ingestion driver, tests) that
// need to read or set it without hardcoding the string twice.
func EnvVarName() string { return recordGraphEnvVar }
