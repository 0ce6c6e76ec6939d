package metrics

// Measurable is the capability a Metric binds to: it produces a current
// value from a config and the current time. Satisfied by every Stat, and by
// any free-standing value a caller registers directly with the registry via
// Registry.AddMetric.
type Measurable interface {
	Measure(cfg MetricConfig, nowMs int64) float64
}

// MeasurableFunc adapts a plain function to Measurable, for free-standing
// gauges that don't need the windowing machinery — e.g. "queue depth right
// now".
type MeasurableFunc func(cfg MetricConfig, nowMs int64) float64

// Measure calls f.
func (f MeasurableFunc) Measure(cfg MetricConfig, nowMs int64) float64 {
	return f(cfg, nowMs)
}

// Stat is a Measurable that also accepts observations. Every windowed stat
// in §4.2 (Avg, Max, Min, SampledCount, Total, Rate, OccurrenceRate) and the
// Percentiles compound stat implement it; per §9's design notes this is a
// plain interface, not an inheritance hierarchy, with the shared
// rotation/purge mechanics composed in via sampledStat rather than exposed.
type Stat interface {
	Measurable

	// Record folds one observation into the stat at nowMs.
	Record(cfg MetricConfig, value float64, nowMs int64)
}

// Metric is a named, read-only view over a Measurable bound at a fixed
// MetricConfig. Created when added to a sensor or directly to the registry;
// destroyed only with the registry that owns it.
type Metric struct {
	name       string
	measurable Measurable
	config     MetricConfig
	clock      Clock
}

// newMetric builds a Metric. Unexported: metrics are only ever produced by
// Sensor.Add / Registry.AddMetric, which own the uniqueness check.
func newMetric(name string, measurable Measurable, config MetricConfig, clock Clock) *Metric {
	return &Metric{name: name, measurable: measurable, config: config, clock: clock}
}

// Name returns the metric's globally unique name.
func (m *Metric) Name() string {
	return m.name
}

// Config returns the metric's effective config.
func (m *Metric) Config() MetricConfig {
	return m.config
}

// Value computes the metric's current value by calling measure(config,
// clock.NowMs()) on its bound Measurable.
func (m *Metric) Value() float64 {
	return m.measurable.Measure(m.config, m.clock.NowMs())
}

// Measurable exposes the metric's underlying capability, e.g. for a reporter
// that wants to call Measure with a time other than "now".
func (m *Metric) Measurable() Measurable {
	return m.measurable
}
