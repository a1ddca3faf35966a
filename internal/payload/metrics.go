package payload

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const metricNamespace = "top10animes.net/rank-web/internal/payload"

// Load outcomes recorded on the payload.loads counter.
const (
	outcomeCacheHit = "cache_hit"
	outcomeFetched  = "fetched"
	outcomeMissing  = "missing"
	outcomeError    = "error"
)

type instruments struct {
	loads          metric.Int64Counter
	loadsEnabled   bool
	latency        metric.Float64Histogram
	latencyEnabled bool
}

func newInstruments(meter metric.Meter) instruments {
	if meter == nil {
		meter = otel.GetMeterProvider().Meter(metricNamespace)
	}
	loads, loadsErr := meter.Int64Counter(
		"payload.loads",
		metric.WithDescription("Payload document loads by file and outcome"),
	)
	latency, latencyErr := meter.Float64Histogram(
		"payload.fetch.latency",
		metric.WithUnit("ms"),
		metric.WithDescription("Latency in milliseconds for uncached payload reads"),
	)
	return instruments{
		loads:          loads,
		loadsEnabled:   loadsErr == nil,
		latency:        latency,
		latencyEnabled: latencyErr == nil,
	}
}

func (i instruments) recordLoad(ctx context.Context, name, outcome string) {
	if !i.loadsEnabled {
		return
	}
	i.loads.Add(ctx, 1, metric.WithAttributes(
		attribute.String("file", name),
		attribute.String("outcome", outcome),
	))
}

func (i instruments) recordLatency(ctx context.Context, name string, d time.Duration) {
	if !i.latencyEnabled {
		return
	}
	i.latency.Record(ctx, float64(d)/float64(time.Millisecond), metric.WithAttributes(attribute.String("file", name)))
}
