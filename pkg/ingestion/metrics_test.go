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
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics_NilRegistryDisablesRegistration(t *testing.T) {
	m := newMetrics(nil)
	require.NotNil(t, m)

	// Methods on a metrics backed by a nil registry still work; they
	// just don't publish anywhere.
	m.fileIndexed(100)
	m.parseError("python")
	m.observeParse(0.01)
	m.observeGraphStatement(0.01)
	m.observeCASPut(0.01)
}

func TestNewMetrics_RegistersAgainstProvidedRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := newMetrics(reg)
	require.NotNil(t, m)

	m.fileIndexed(42)

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestMetrics_NilReceiverIsSafe(t *testing.T) {
	var m *metrics
	assert.NotPanics(t, func() {
		m.fileIndexed(1)
		m.parseError("python")
		m.observeParse(0.1)
		m.observeGraphStatement(0.1)
		m.observeCASPut(0.1)
	})
}
