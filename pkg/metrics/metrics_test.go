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
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(c prometheus.Counter) float64 {
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		return -1
	}
	return m.GetCounter().GetValue()
}

func TestRecordResolution(t *testing.T) {
	before := counterValue(ResolutionsTotal.WithLabelValues("configuration", OutcomeFailure))
	RecordResolution("configuration", time.Now(), errors.New("x"))
	after := counterValue(ResolutionsTotal.WithLabelValues("configuration", OutcomeFailure))
	assert.Equal(t, before+1, after)
}

func TestRecordUploadRows(t *testing.T) {
	ok := counterValue(UploadRowsTotal.WithLabelValues(OutcomeSuccess))
	bad := counterValue(UploadRowsTotal.WithLabelValues(OutcomeFailure))
	RecordUploadRows(3, 1)
	assert.Equal(t, ok+3, counterValue(UploadRowsTotal.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, bad+1, counterValue(UploadRowsTotal.WithLabelValues(OutcomeFailure)))
}

func TestServerHandlerExposesMetrics(t *testing.T) {
	s := NewMetricsServer(&MetricsConfig{})
	RecordChangeEvent("setting")

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "confhub_change_events_total")
}

func TestStartDisabled(t *testing.T) {
	s := NewServer(MetricsConfig{})
	assert.NoError(t, s.Start())
	assert.NoError(t, s.Stop(t.Context()))
}
