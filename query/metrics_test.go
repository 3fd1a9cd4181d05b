// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package query_test

import (
	"context"
	"errors"
	"testing"

	"code.hybscloud.com/coro/query"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Aggregation {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	out := make(map[string]metricdata.Aggregation)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m.Data
		}
	}
	return out
}

func TestExecuteMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	tr := octocat()
	ex := newExecutor(tr)
	ex.Meter = mp.Meter("test")

	if _, err := query.Execute(context.Background(), ex, lookupUser("octocat")); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	tr.fail = errors.New("connection reset")
	if _, err := query.Execute(context.Background(), ex, lookupUser("octocat")); err == nil {
		t.Fatal("Execute succeeded")
	}

	data := collectMetrics(t, reader)

	runs, ok := data["coro.query.runs"].(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("coro.query.runs missing: %v", data)
	}
	byStatus := make(map[string]int64)
	for _, dp := range runs.DataPoints {
		status, _ := dp.Attributes.Value("coro.status")
		byStatus[status.AsString()] += dp.Value
	}
	if byStatus["ok"] != 1 || byStatus["error"] != 1 {
		t.Fatalf("runs by status got %v", byStatus)
	}

	requests, ok := data["coro.query.requests"].(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("coro.query.requests missing: %v", data)
	}
	var sent int64
	for _, dp := range requests.DataPoints {
		sent += dp.Value
	}
	// Two requests for the first run, one failed request for the second.
	if sent != 3 {
		t.Fatalf("requests got %d, want 3", sent)
	}

	if _, ok := data["coro.query.duration"].(metricdata.Histogram[float64]); !ok {
		t.Fatalf("coro.query.duration missing: %v", data)
	}
}
