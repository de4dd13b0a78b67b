package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// logMetrics writes the final value of every counter in g as one log line.
func logMetrics(logger zerolog.Logger, g prometheus.Gatherer) {
	families, err := g.Gather()
	if err != nil {
		logger.Warn().Err(err).Msg("gather metrics failed")
		return
	}
	event := logger.Info()
	for _, mf := range families {
		var total float64
		for _, m := range mf.GetMetric() {
			if c := m.GetCounter(); c != nil {
				total += c.GetValue()
			}
		}
		event = event.Float64(mf.GetName(), total)
	}
	event.Msg("kv write stats")
}
