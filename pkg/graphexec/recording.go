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

package graphexec

import (
	"context"
	"fmt"
	"os"
	"sync"
)

// okSentinel is the reply every RecordingExecutor.Query call returns.
const okSentinel = "Ok"

// RecordingExecutor appends every statement it is asked to run to a
// file, one per line, instead of executing it anywhere. It exists for
// deterministic dry-runs and tests that want to assert on exactly what
// would have been sent to the graph without standing up a server.
type RecordingExecutor struct {
	mu   sync.Mutex
	file *os.File
}

// NewRecordingExecutor opens (creating or appending to) path for
// recording.
func NewRecordingExecutor(path string) (*RecordingExecutor, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open record file: %w", err)
	}
	return &RecordingExecutor{file: f}, nil
}

// Query appends "statement\n" to the recording file. graphName is
// ignored: the recording file is a flat statement log, not partitioned
// by graph.
func (e *RecordingExecutor) Query(_ context.Context, _ string, statement string) (any, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.file.WriteString(statement + "\n"); err != nil {
		return nil, fmt.Errorf("record statement: %w", err)
	}
	return okSentinel, nil
}

// Close closes the underlying recording file.
func (e *RecordingExecutor) Close() error {
	return e.file.Close()
}

// NewFromEnv selects RecordingExecutor when recordGraphEnvVar is set
// (its value is the recording file path), falling back to
// RedisExecutor dialing redisURL otherwise. The environment variable is
// read exactly once, at driver construction.
func NewFromEnv(redisURL string) (Executor, error) {
	if path := os.Getenv(recordGraphEnvVar); path != "" {
		return NewRecordingExecutor(path)
	}
	return NewRedisExecutor(redisURL), nil
}
