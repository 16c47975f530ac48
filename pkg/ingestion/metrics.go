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
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// metrics holds the Prometheus collectors for one driver run. Unlike a
// CLI-only tool, the core is usable as a library, so it never reaches
// for prometheus.DefaultRegisterer the way a standalone binary would: a
// nil *prometheus.Registry passed to newMetrics disables metrics
// entirely rather than falling back to global registration.
type metrics struct {
	once sync.Once

	filesIndexed prometheus.Counter
	bytesIndexed prometheus.Counter

	parseErrorsByLanguage *prometheus.CounterVec

	parseDuration          prometheus.Histogram
	graphStatementDuration prometheus.Histogram
	casPutDuration         prometheus.Histogram
}

// newMetrics builds a metrics instance and, if reg is non-nil,
// registers its collectors against reg. Callers own reg's lifecycle;
// constructing two drivers against the same registry panics on the
// second registration, same as any other set of prometheus collectors.
func newMetrics(reg *prometheus.Registry) *metrics {
	m := &metrics{}
	m.once.Do(func() {
		buckets := []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}

		m.filesIndexed = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ccg_ingestion_files_indexed_total", Help: "Files kept and indexed by the ingestion driver",
		})
		m.bytesIndexed = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ccg_ingestion_bytes_indexed_total", Help: "Bytes of file content indexed by the ingestion driver",
		})
		m.parseErrorsByLanguage = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ccg_ingestion_parse_errors_total", Help: "Parser failures that fell back to the heuristic scanner, by language",
		}, []string{"language"})
		m.parseDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name: "ccg_ingestion_parse_seconds", Help: "Per-file parse duration", Buckets: buckets,
		})
		m.graphStatementDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name: "ccg_ingestion_graph_statement_seconds", Help: "Per-file graph statement emission duration", Buckets: buckets,
		})
		m.casPutDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name: "ccg_ingestion_cas_put_seconds", Help: "Per-file CAS put duration", Buckets: buckets,
		})

		if reg != nil {
			reg.MustRegister(
				m.filesIndexed, m.bytesIndexed,
				m.parseErrorsByLanguage,
				m.parseDuration, m.graphStatementDuration, m.casPutDuration,
			)
		}
	})
	return m
}

func (m *metrics) fileIndexed(size int64) {
	if m == nil {
		return
	}
	m.filesIndexed.Inc()
	m.bytesIndexed.Add(float64(size))
}

func (m *metrics) parseError(language string) {
	if m == nil {
		return
	}
	m.parseErrorsByLanguage.WithLabelValues(language).Inc()
}

func (m *metrics) observeParse(seconds float64) {
	if m == nil {
		return
	}
	m.parseDuration.Observe(seconds)
}

func (m *metrics) observeGraphStatement(seconds float64) {
	if m == nil {
		return
	}
	m.graphStatementDuration.Observe(seconds)
}

func (m *metrics) observeCASPut(seconds float64) {
	if m == nil {
		return
	}
	m.casPutDuration.Observe(seconds)
}
