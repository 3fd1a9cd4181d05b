// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package query

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// metrics holds the instruments recorded for every run.
type metrics struct {
	runs     metric.Int64Counter
	requests metric.Int64Counter
	duration metric.Float64Histogram
}

func newMetrics(meter metric.Meter) (*metrics, error) {
	runs, err := meter.Int64Counter("coro.query.runs",
		metric.WithDescription("Completed query runs"),
	)
	if err != nil {
		return nil, fmt.Errorf("query: creating coro.query.runs counter: %w", err)
	}
	requests, err := meter.Int64Counter("coro.query.requests",
		metric.WithDescription("Requests sent to transports"),
	)
	if err != nil {
		return nil, fmt.Errorf("query: creating coro.query.requests counter: %w", err)
	}
	duration, err := meter.Float64Histogram("coro.query.duration",
		metric.WithDescription("Duration of query runs in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("query: creating coro.query.duration histogram: %w", err)
	}
	return &metrics{runs: runs, requests: requests, duration: duration}, nil
}

// instruments returns the executor's metric instruments, creating them on
// first use. Instruments that cannot be created are replaced by no-ops.
func (ex *Executor[Req, Resp]) instruments(log zerolog.Logger) *metrics {
	ex.once.Do(func() {
		meter := ex.Meter
		if meter == nil {
			meter = otel.Meter(tracerName)
		}
		m, err := newMetrics(meter)
		if err != nil {
			log.Warn().Err(err).Msg("metrics disabled")
			m, _ = newMetrics(noop.NewMeterProvider().Meter(tracerName))
		}
		ex.metrics = m
	})
	return ex.metrics
}

func (m *metrics) record(ctx context.Context, op, transport string, requests int, elapsed time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	attrs := metric.WithAttributes(
		attribute.String("coro.operation", op),
		attribute.String("coro.transport", transport),
		attribute.String("coro.status", status),
	)
	m.runs.Add(ctx, 1, attrs)
	m.requests.Add(ctx, int64(requests), metric.WithAttributes(
		attribute.String("coro.operation", op),
		attribute.String("coro.transport", transport),
	))
	m.duration.Record(ctx, elapsed.Seconds(), attrs)
}
