// Package reporters provides metrics.Reporter implementations: a logging
// reporter that emits one structured log line per metric event, and a
// buffered reporter that batches metric snapshots and flushes them on a
// timer.
package reporters

import (
	"github.com/rs/xid"

	"github.com/xraph/sensormetrics/log"
	"github.com/xraph/sensormetrics/metrics"
)

// LoggingReporter emits one structured log line per metric lifecycle event.
// Each Init call gets its own correlation id so a batch of startup metrics
// can be grepped together; MetricChange and MetricRemoval get a fresh one
// per call, since each is already a single, independently meaningful event.
type LoggingReporter struct {
	logger log.Logger
}

// NewLoggingReporter builds a LoggingReporter writing through logger.
func NewLoggingReporter(logger log.Logger) *LoggingReporter {
	return &LoggingReporter{logger: logger}
}

// Init implements metrics.Reporter.
func (r *LoggingReporter) Init(initial []*metrics.Metric) {
	correlationID := xid.New().String()

	r.logger.Info("metrics reporter attached",
		log.String("correlation_id", correlationID),
		log.Int("metric_count", len(initial)),
	)

	for _, m := range initial {
		r.logger.Debug("metric present at attach",
			log.String("correlation_id", correlationID),
			log.String("metric", m.Name()),
			log.Float64("value", m.Value()),
		)
	}
}

// MetricChange implements metrics.Reporter.
func (r *LoggingReporter) MetricChange(metric *metrics.Metric) {
	r.logger.Info("metric registered",
		log.String("correlation_id", xid.New().String()),
		log.String("metric", metric.Name()),
	)
}

// MetricRemoval implements metrics.Reporter.
func (r *LoggingReporter) MetricRemoval(metric *metrics.Metric) {
	r.logger.Info("metric removed",
		log.String("correlation_id", xid.New().String()),
		log.String("metric", metric.Name()),
	)
}

// Close implements metrics.Reporter. LoggingReporter holds no resources to
// release, but logs its own shutdown for symmetry with Init.
func (r *LoggingReporter) Close() {
	r.logger.Info("metrics reporter detached", log.String("correlation_id", xid.New().String()))
}
