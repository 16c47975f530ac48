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
	"time"

	"github.com/gomodule/redigo/redis"
)

// RedisExecutor issues GRAPH.QUERY commands over a pooled connection to
// a FalkorDB/RedisGraph-compatible server. One connection per call is
// acceptable; the pool exists to avoid paying dial cost on every
// statement during a long ingestion run.
type RedisExecutor struct {
	pool *redis.Pool
}

// NewRedisExecutor dials lazily: no connection is opened until the
// first Query call borrows one from the pool.
func NewRedisExecutor(url string) *RedisExecutor {
	pool := &redis.Pool{
		MaxIdle:     3,
		IdleTimeout: 240 * time.Second,
		Dial: func() (redis.Conn, error) {
			return redis.DialURL(url)
		},
	}
	return &RedisExecutor{pool: pool}
}

// Query issues GRAPH.QUERY <graphName> <statement> over a connection
// borrowed from the pool and returns the raw reply.
func (e *RedisExecutor) Query(ctx context.Context, graphName, statement string) (any, error) {
	conn, err := e.pool.GetContext(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	return conn.Do("GRAPH.QUERY", graphName, statement)
}

// Close releases every idle connection held by the pool.
func (e *RedisExecutor) Close() error {
	return e.pool.Close()
}
