package telemetry

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestPrometheusCollectorCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewPrometheusCollector(reg)
	require.NoError(t, err)

	c.IncBatchFlushed(3)
	c.IncBatchFlushed(2)
	c.IncBatchFailed()
	c.IncFallbackWrite()
	c.IncFallbackWrite()
	c.IncDroppedKey()

	require.Equal(t, 2.0, testutil.ToFloat64(c.batches))
	require.Equal(t, 5.0, testutil.ToFloat64(c.batchEntries))
	require.Equal(t, 1.0, testutil.ToFloat64(c.batchFailures))
	require.Equal(t, 2.0, testutil.ToFloat64(c.fallbackWrites))
	require.Equal(t, 1.0, testutil.ToFloat64(c.droppedKeys))
}

func TestPrometheusCollectorReusesRegisteredCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewPrometheusCollector(reg)
	require.NoError(t, err)
	second, err := NewPrometheusCollector(reg)
	require.NoError(t, err)

	first.IncDroppedKey()
	second.IncDroppedKey()
	require.Equal(t, 2.0, testutil.ToFloat64(first.droppedKeys))
}

func TestNoopCollector(t *testing.T) {
	c := Noop()
	require.NotPanics(t, func() {
		c.IncBatchFlushed(1)
		c.IncBatchFailed()
		c.IncFallbackWrite()
		c.IncDroppedKey()
	})
}
