package payload

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func loadsByOutcome(t *testing.T, reader *sdkmetric.ManualReader) map[string]int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "payload.loads" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "payload.loads is an int64 sum")
			for _, dp := range sum.DataPoints {
				v, _ := dp.Attributes.Value(attribute.Key("outcome"))
				out[v.AsString()] += dp.Value
			}
		}
	}
	return out
}

func TestSourceRecordsLoadOutcomes(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	dir := t.TempDir()
	src := NewSource(dir, time.Minute)
	src.SetMeter(provider.Meter("test"))
	ctx := context.Background()

	_, err := src.FetchEpisodes(ctx)
	require.Error(t, err)

	writeFile(t, dir, EpisodesFile, episodesJSON)
	writeFile(t, dir, AnticipatedFile, `{"animes": [`)
	_, err = src.FetchEpisodes(ctx)
	require.NoError(t, err)
	_, err = src.FetchEpisodes(ctx)
	require.NoError(t, err)
	_, err = src.FetchAnticipated(ctx)
	require.Error(t, err)

	require.Equal(t, map[string]int64{
		outcomeMissing:  1,
		outcomeFetched:  1,
		outcomeCacheHit: 1,
		outcomeError:    1,
	}, loadsByOutcome(t, reader))
}
