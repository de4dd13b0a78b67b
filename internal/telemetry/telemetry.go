// Package telemetry counts write-coalescing events.
package telemetry

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector captures write-coalescing events.
//
// Hooks run inline with flushes, so implementations should be cheap.
type Collector interface {
	IncBatchFlushed(entries int)
	IncBatchFailed()
	IncFallbackWrite()
	IncDroppedKey()
}

type noopCollector struct{}

// Noop returns a collector that discards all metrics.
func Noop() Collector {
	return noopCollector{}
}

func (noopCollector) IncBatchFlushed(int) {}
func (noopCollector) IncBatchFailed()     {}
func (noopCollector) IncFallbackWrite()   {}
func (noopCollector) IncDroppedKey()      {}

// PrometheusCollector exposes coalescer counters via Prometheus.
type PrometheusCollector struct {
	batches        prometheus.Counter
	batchEntries   prometheus.Counter
	batchFailures  prometheus.Counter
	fallbackWrites prometheus.Counter
	droppedKeys    prometheus.Counter
}

// NewPrometheusCollector registers the counters with reg. Counters that are
// already registered are reused.
func NewPrometheusCollector(reg prometheus.Registerer) (*PrometheusCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	c := &PrometheusCollector{}
	var err error
	if c.batches, err = registerCounter(reg, "vocab_kv_batches_flushed_total", "Number of batched multi-key writes that succeeded."); err != nil {
		return nil, err
	}
	if c.batchEntries, err = registerCounter(reg, "vocab_kv_batch_entries_total", "Number of keys persisted through batched writes."); err != nil {
		return nil, err
	}
	if c.batchFailures, err = registerCounter(reg, "vocab_kv_batch_failures_total", "Number of batched writes that failed and fell back to per-key writes."); err != nil {
		return nil, err
	}
	if c.fallbackWrites, err = registerCounter(reg, "vocab_kv_fallback_writes_total", "Number of per-key fallback writes that succeeded."); err != nil {
		return nil, err
	}
	if c.droppedKeys, err = registerCounter(reg, "vocab_kv_dropped_keys_total", "Number of keys whose fallback write failed."); err != nil {
		return nil, err
	}
	return c, nil
}

func registerCounter(reg prometheus.Registerer, name, help string) (prometheus.Counter, error) {
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: name, Help: help})
	if err := reg.Register(counter); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
		}
		return nil, err
	}
	return counter, nil
}

// IncBatchFlushed implements Collector.
func (c *PrometheusCollector) IncBatchFlushed(entries int) {
	c.batches.Inc()
	c.batchEntries.Add(float64(entries))
}

// IncBatchFailed implements Collector.
func (c *PrometheusCollector) IncBatchFailed() { c.batchFailures.Inc() }

// IncFallbackWrite implements Collector.
func (c *PrometheusCollector) IncFallbackWrite() { c.fallbackWrites.Inc() }

// IncDroppedKey implements Collector.
func (c *PrometheusCollector) IncDroppedKey() { c.droppedKeys.Inc() }
