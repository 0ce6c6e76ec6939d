package reporters

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/xraph/sensormetrics/log"
	"github.com/xraph/sensormetrics/metrics"
)

// FlushFunc receives a point-in-time snapshot of every metric the
// BufferedReporter currently tracks, keyed by metric name.
type FlushFunc func(snapshot map[string]float64)

// BufferedReporter batches metric registrations and removals in memory and
// hands a full value snapshot to a FlushFunc on a fixed interval, rather than
// reacting to every individual MetricChange call. Useful when the sink a
// caller wants to drive (a stats line, a periodic log, a push-gateway call)
// is naturally pull-based rather than event-based.
type BufferedReporter struct {
	interval time.Duration
	flush    FlushFunc
	logger   log.Logger

	mu      sync.RWMutex
	tracked map[string]*metrics.Metric

	ctx    context.Context //nolint:containedctx // needed to cancel the flush loop from Close
	cancel context.CancelFunc
	wg     sync.WaitGroup

	started atomic.Bool
}

// NewBufferedReporter builds a BufferedReporter that calls flush every
// interval with the current snapshot, once started via Init.
func NewBufferedReporter(interval time.Duration, flush FlushFunc, logger log.Logger) *BufferedReporter {
	ctx, cancel := context.WithCancel(context.Background())

	return &BufferedReporter{
		interval: interval,
		flush:    flush,
		logger:   logger,
		tracked:  make(map[string]*metrics.Metric),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Init implements metrics.Reporter: it seeds the tracked set with the
// metrics already registered and starts the periodic flush loop.
func (b *BufferedReporter) Init(initial []*metrics.Metric) {
	b.mu.Lock()
	for _, m := range initial {
		b.tracked[m.Name()] = m
	}
	b.mu.Unlock()

	if b.started.Swap(true) {
		return
	}

	b.wg.Add(1)

	go b.flushLoop()
}

// MetricChange implements metrics.Reporter.
func (b *BufferedReporter) MetricChange(metric *metrics.Metric) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.tracked[metric.Name()] = metric
}

// MetricRemoval implements metrics.Reporter.
func (b *BufferedReporter) MetricRemoval(metric *metrics.Metric) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.tracked, metric.Name())
}

// Close implements metrics.Reporter: it stops the flush loop, waits for it to
// exit, and performs one final flush so nothing recorded just before
// shutdown is lost.
func (b *BufferedReporter) Close() {
	if b.started.Swap(false) {
		b.cancel()
		b.wg.Wait()
	}

	b.flushOnce()
}

func (b *BufferedReporter) flushLoop() {
	defer b.wg.Done()

	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		select {
		case <-b.ctx.Done():
			return
		case <-ticker.C:
			b.flushOnce()
		}
	}
}

func (b *BufferedReporter) flushOnce() {
	b.mu.RLock()
	snapshot := make(map[string]float64, len(b.tracked))

	for name, m := range b.tracked {
		snapshot[name] = m.Value()
	}
	b.mu.RUnlock()

	if b.flush == nil {
		return
	}

	monitor := log.NewPerformanceMonitor(b.logger, "buffered_reporter_flush").
		WithField(log.Int("metric_count", len(snapshot)))

	defer func() {
		if rec := recover(); rec != nil {
			monitor.WithField(log.Stack("stacktrace")).FinishWithError(fmt.Errorf("flush panicked: %v", rec))

			return
		}

		monitor.Finish()
	}()

	b.flush(snapshot)
}
