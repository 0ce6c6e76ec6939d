package metrics

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/xraph/sensormetrics/log"
)

// Metrics is the process-wide registry: every Sensor and every Metric lives
// under exactly one Metrics instance, and every reporter attached to it sees
// the full set of metrics the registry currently knows about. It implements
// di.Service and di.HealthChecker so it can be started and stopped alongside
// the rest of an application's managed components.
type Metrics struct {
	id uuid.UUID

	mu       sync.RWMutex
	sensors  map[string]*Sensor
	metrics  map[string]*Metric
	reporters []Reporter

	clock  Clock
	logger log.Logger

	started bool
}

// RegistryOption configures a Metrics registry at construction time.
type RegistryOption func(*Metrics)

// WithClock overrides the registry's clock, e.g. with a MockClock in tests.
func WithClock(c Clock) RegistryOption {
	return func(m *Metrics) { m.clock = c }
}

// WithLogger overrides the registry's logger. Defaults to a no-op logger.
func WithLogger(l log.Logger) RegistryOption {
	return func(m *Metrics) { m.logger = l }
}

// WithReporters attaches one or more reporters at construction time,
// equivalent to calling AddReporter after NewRegistry.
func WithReporters(reporters ...Reporter) RegistryOption {
	return func(m *Metrics) { m.reporters = append(m.reporters, reporters...) }
}

// NewRegistry builds an empty Metrics registry.
func NewRegistry(opts ...RegistryOption) *Metrics {
	m := &Metrics{
		id:      uuid.New(),
		sensors: make(map[string]*Sensor),
		metrics: make(map[string]*Metric),
		clock:   NewSystemClock(),
		logger:  log.NewNoopLogger(),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// ID returns the registry's instance id, used to correlate its log lines and
// reported events across a process that may run more than one registry.
func (m *Metrics) ID() uuid.UUID {
	return m.id
}

// Name implements di.Service.
func (m *Metrics) Name() string {
	return "metrics-registry"
}

// Start implements di.Service. It notifies every attached reporter of the
// metrics already registered at startup.
func (m *Metrics) Start(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.started = true

	initial := make([]*Metric, 0, len(m.metrics))
	for _, mt := range m.metrics {
		initial = append(initial, mt)
	}

	for _, r := range m.reporters {
		r.Init(initial)
	}

	m.logger.Info("metrics registry started",
		log.String("registry_id", m.id.String()),
		log.Int("metric_count", len(initial)),
	)

	return nil
}

// Stop implements di.Service, closing every attached reporter.
func (m *Metrics) Stop(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.started = false

	for _, r := range m.reporters {
		r.Close()
	}

	m.logger.Info("metrics registry stopped", log.String("registry_id", m.id.String()))

	return nil
}

// Health implements di.HealthChecker. The registry is healthy as long as it
// has been started and not yet stopped.
func (m *Metrics) Health(_ context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.started {
		return ErrInvalidConfig("metrics registry is not started", nil)
	}

	return nil
}

// AddReporter attaches a reporter. If the registry is already running, the
// new reporter is immediately sent an Init call with the current metric set
// so it never misses metrics registered before it was attached.
func (m *Metrics) AddReporter(r Reporter) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.reporters = append(m.reporters, r)

	if m.started {
		initial := make([]*Metric, 0, len(m.metrics))
		for _, mt := range m.metrics {
			initial = append(initial, mt)
		}

		r.Init(initial)
	}
}

// Sensor returns the named sensor, creating it with the given parents and
// config if it does not already exist. A second call with the same name is
// idempotent as long as the requested parents and config match what the
// sensor already has; if they differ, it returns ErrDuplicateMetricName — a
// sensor's identity is fixed by its first successful creation, not
// overwritten by a later, conflicting request (§9).
func (m *Metrics) Sensor(name string, parents []*Sensor, cfg MetricConfig) (*Sensor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.sensors[name]; ok {
		if !sameParents(existing.Parents(), parents) || existing.Config() != cfg {
			return nil, ErrDuplicateMetricName(name)
		}

		return existing, nil
	}

	if err := validateParents(name, parents); err != nil {
		return nil, err
	}

	s := newSensor(name, parents, cfg, m.clock)
	m.sensors[name] = s

	return s, nil
}

// GetSensor returns the named sensor, or nil if it does not exist.
func (m *Metrics) GetSensor(name string) *Sensor {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.sensors[name]
}

// RegisterMetric adds a Metric that a sensor just created to the registry's
// global name->Metric map and notifies reporters. It is the single choke
// point every path that creates a Metric (sensor stats, free-standing
// gauges) must go through, so the registry's view never drifts from what a
// sensor privately owns.
func (m *Metrics) RegisterMetric(metric *Metric) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.metrics[metric.Name()]; exists {
		return ErrDuplicateMetricName(metric.Name())
	}

	m.metrics[metric.Name()] = metric

	for _, r := range m.reporters {
		r.MetricChange(metric)
	}

	return nil
}

// AddSensorMetric creates stat under sensor as a named Metric and registers
// it in the registry, atomically: if the registry already has a metric by
// that name, the sensor is left unchanged.
func (m *Metrics) AddSensorMetric(sensor *Sensor, name string, stat Stat) (*Metric, error) {
	m.mu.Lock()

	if _, exists := m.metrics[name]; exists {
		m.mu.Unlock()

		return nil, ErrDuplicateMetricName(name)
	}

	m.mu.Unlock()

	metric, err := sensor.Add(name, stat)
	if err != nil {
		return nil, err
	}

	if err := m.RegisterMetric(metric); err != nil {
		return nil, err
	}

	return metric, nil
}

// AddSensorPercentiles creates a Percentiles histogram and its per-quantile
// views under sensor, registering all of them in the registry atomically:
// either every metric is added, or none are.
func (m *Metrics) AddSensorPercentiles(sensor *Sensor, name string, p *Percentiles) ([]*Metric, error) {
	m.mu.Lock()

	names := make([]string, 0, len(p.Specs())+1)
	names = append(names, name)

	for _, spec := range p.Specs() {
		names = append(names, spec.Name)
	}

	for _, n := range names {
		if _, exists := m.metrics[n]; exists {
			m.mu.Unlock()

			return nil, ErrDuplicateMetricName(n)
		}
	}

	m.mu.Unlock()

	created, err := sensor.AddPercentiles(name, p)
	if err != nil {
		return nil, err
	}

	for _, metric := range created {
		if err := m.RegisterMetric(metric); err != nil {
			return nil, err
		}
	}

	return created, nil
}

// AddMetric registers a free-standing Measurable directly with the registry,
// not attached to any sensor — e.g. a gauge sampled from external state.
func (m *Metrics) AddMetric(name string, measurable Measurable, cfg MetricConfig) (*Metric, error) {
	metric := newMetric(name, measurable, cfg, m.clock)

	if err := m.RegisterMetric(metric); err != nil {
		return nil, err
	}

	return metric, nil
}

// GetMetric returns the named metric, or ErrMetricNotFound.
func (m *Metrics) GetMetric(name string) (*Metric, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	metric, ok := m.metrics[name]
	if !ok {
		return nil, ErrMetricNotFound(name)
	}

	return metric, nil
}

// RemoveMetric drops a metric from the registry and notifies reporters.
// Sensors keep owning the underlying stat; only the registry's global
// visibility (and reporter subscriptions) are affected.
func (m *Metrics) RemoveMetric(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	metric, ok := m.metrics[name]
	if !ok {
		return ErrMetricNotFound(name)
	}

	delete(m.metrics, name)

	for _, r := range m.reporters {
		r.MetricRemoval(metric)
	}

	return nil
}

// Metrics returns a snapshot of every metric currently registered, keyed by
// name. Mutating the returned map does not affect the registry.
func (m *Metrics) Metrics() map[string]*Metric {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]*Metric, len(m.metrics))
	for k, v := range m.metrics {
		out[k] = v
	}

	return out
}

func sameParents(a, b []*Sensor) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
