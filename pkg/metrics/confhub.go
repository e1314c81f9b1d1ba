// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "confhub"

// Outcome label values.
const (
	OutcomeSuccess  = "success"
	OutcomeFailure  = "failure"
	OutcomeFallback = "fallback"
)

var (
	// ResolutionsTotal counts configuration and feature-set resolutions by kind and result
	ResolutionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolutions_total",
			Help:      "Total number of effective configuration and feature set resolutions",
		},
		[]string{"kind", "outcome"},
	)

	ResolutionDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "resolution_duration_seconds",
			Help:      "Duration of resolutions in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14), // 0.5ms to ~4s
		},
		[]string{"kind"},
	)

	// UploadRowsTotal counts settings rows written or rejected by ApplyUpload
	UploadRowsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upload_rows_total",
			Help:      "Total number of upload rows processed",
		},
		[]string{"outcome"},
	)

	UploadRollbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upload_rollbacks_total",
			Help:      "Total number of upload rollbacks",
		},
		[]string{"outcome"},
	)

	// SecretResolutionsTotal: fallback means the raw stored value was served
	SecretResolutionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "secret_resolutions_total",
			Help:      "Total number of secret-backed setting resolutions",
		},
		[]string{"outcome"},
	)

	ChangeEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "change_events_total",
			Help:      "Total number of published change events",
		},
		[]string{"kind"},
	)

	WebsocketClients = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "websocket_clients",
			Help:      "Number of connected change-stream clients",
		},
	)
)

// RegisterConfhubMetrics registers all collectors on registry. Collectors
// already present are skipped.
func RegisterConfhubMetrics(registry prometheus.Registerer) {
	for _, c := range []prometheus.Collector{
		ResolutionsTotal,
		ResolutionDurationSeconds,
		UploadRowsTotal,
		UploadRollbacksTotal,
		SecretResolutionsTotal,
		ChangeEventsTotal,
		WebsocketClients,
	} {
		if err := registry.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if !errors.As(err, &are) {
				panic(err)
			}
		}
	}
}

// RecordResolution records one resolution of kind ("configuration" or "featureset").
func RecordResolution(kind string, started time.Time, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	ResolutionsTotal.WithLabelValues(kind, outcome).Inc()
	ResolutionDurationSeconds.WithLabelValues(kind).Observe(time.Since(started).Seconds())
}

func RecordUploadRows(succeeded, failed int) {
	UploadRowsTotal.WithLabelValues(OutcomeSuccess).Add(float64(succeeded))
	UploadRowsTotal.WithLabelValues(OutcomeFailure).Add(float64(failed))
}

func RecordRollback(err error) {
	if err != nil {
		UploadRollbacksTotal.WithLabelValues(OutcomeFailure).Inc()
		return
	}
	UploadRollbacksTotal.WithLabelValues(OutcomeSuccess).Inc()
}

func RecordSecretResolution(outcome string) {
	SecretResolutionsTotal.WithLabelValues(outcome).Inc()
}

func RecordChangeEvent(kind string) {
	ChangeEventsTotal.WithLabelValues(kind).Inc()
}
