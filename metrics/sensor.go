package metrics

import "sync"

// sensorEntry pairs a published Metric with the Stat backing it, so Record
// can drive the stat directly without re-resolving it through the metric's
// Measurable each time.
type sensorEntry struct {
	metric *Metric
	stat   Stat
}

// Sensor is a named recording endpoint: recorded values flow into its own
// stats and then, depth-first, into every parent sensor (§4.5), so a child
// sensor's activity is automatically reflected in any rollup it feeds. A
// sensor never outlives the registry that created it.
type Sensor struct {
	name    string
	parents []*Sensor
	config  MetricConfig
	clock   Clock

	mu           sync.Mutex
	entries      []sensorEntry
	byName       map[string]*Metric
	lastRecordMs int64
}

// newSensor constructs a Sensor. Unexported: sensors are only ever produced
// by Registry.Sensor, which owns name uniqueness and parent validation.
func newSensor(name string, parents []*Sensor, cfg MetricConfig, clock Clock) *Sensor {
	return &Sensor{
		name:    name,
		parents: parents,
		config:  cfg,
		clock:   clock,
		byName:  make(map[string]*Metric),
	}
}

// Name returns the sensor's name.
func (s *Sensor) Name() string {
	return s.name
}

// Parents returns the sensor's parent sensors, in the order given at
// creation.
func (s *Sensor) Parents() []*Sensor {
	return s.parents
}

// Config returns the sensor's effective MetricConfig, applied to every stat
// it owns.
func (s *Sensor) Config() MetricConfig {
	return s.config
}

// LastRecordMs returns the clock time of the most recent Record call that
// reached this sensor, directly or through a child, or 0 if it has never
// recorded.
func (s *Sensor) LastRecordMs() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastRecordMs
}

// Metrics returns the metrics this sensor owns directly, in add order. It
// does not include metrics owned by parent sensors.
func (s *Sensor) Metrics() []*Metric {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*Metric, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.metric
	}

	return out
}

// Add binds stat to name under this sensor's config and registers it as one
// of the sensor's owned metrics. Returns ErrDuplicateMetricName if name is
// already owned by this sensor.
func (s *Sensor) Add(name string, stat Stat) (*Metric, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byName[name]; exists {
		return nil, ErrDuplicateMetricName(name)
	}

	m := newMetric(name, stat, s.config, s.clock)
	s.entries = append(s.entries, sensorEntry{metric: m, stat: stat})
	s.byName[name] = m

	return m, nil
}

// AddPercentiles registers a Percentiles histogram under name, together with
// one sub-metric per quantile in p.Views(), under their own names. Either all
// of these metrics are registered or none are: if any name collides with one
// this sensor already owns, the whole call fails and nothing is added.
func (s *Sensor) AddPercentiles(name string, p *Percentiles) ([]*Metric, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	views := p.Views()

	names := make([]string, 0, len(views)+1)
	names = append(names, name)

	for _, v := range views {
		names = append(names, v.Name)
	}

	for _, n := range names {
		if _, exists := s.byName[n]; exists {
			return nil, ErrDuplicateMetricName(n)
		}
	}

	result := make([]*Metric, 0, len(names))

	m := newMetric(name, p, s.config, s.clock)
	s.entries = append(s.entries, sensorEntry{metric: m, stat: p})
	s.byName[name] = m
	result = append(result, m)

	for _, v := range views {
		vm := newMetric(v.Name, v.Measurable, s.config, s.clock)
		s.byName[v.Name] = vm
		result = append(result, vm)
	}

	return result, nil
}

// Record folds an implicit occurrence (value 1.0) into this sensor and every
// ancestor it feeds. Used for event-counting sensors where the recorded
// value itself is uninteresting.
func (s *Sensor) Record() error {
	return s.RecordValue(1.0)
}

// RecordValue folds value into this sensor's own stats, then propagates it
// depth-first into every parent sensor, each visited at most once even if
// reachable through more than one path. Quota checks run after the value has
// been persisted everywhere it applies; if any bound is violated, the first
// violation encountered is returned, but every reachable sensor still
// receives the value regardless.
func (s *Sensor) RecordValue(value float64) error {
	now := s.clock.NowMs()

	violations := s.recordAt(value, now, make(map[*Sensor]struct{}))
	if len(violations) > 0 {
		return violations[0]
	}

	return nil
}

func (s *Sensor) recordAt(value float64, nowMs int64, visited map[*Sensor]struct{}) []*QuotaViolation {
	if _, ok := visited[s]; ok {
		return nil
	}

	visited[s] = struct{}{}

	var violations []*QuotaViolation

	s.mu.Lock()
	s.lastRecordMs = nowMs

	for _, e := range s.entries {
		e.stat.Record(s.config, value, nowMs)
	}

	if s.config.Quota != nil {
		for _, e := range s.entries {
			actual := e.stat.Measure(s.config, nowMs)
			if !s.config.Quota.Acceptable(actual) {
				violations = append(violations, NewQuotaViolation(e.metric.Name(), *s.config.Quota, actual))
			}
		}
	}

	s.mu.Unlock()

	for _, parent := range s.parents {
		violations = append(violations, parent.recordAt(value, nowMs, visited)...)
	}

	return violations
}

// ancestors returns the set of sensors reachable from s by following parent
// links, including s itself.
func ancestors(s *Sensor) map[*Sensor]struct{} {
	seen := map[*Sensor]struct{}{s: {}}
	stack := []*Sensor{s}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, p := range cur.parents {
			if _, ok := seen[p]; ok {
				continue
			}

			seen[p] = struct{}{}

			stack = append(stack, p)
		}
	}

	return seen
}

// validateParents checks that no two of the given parent sensors share a
// common ancestor (§4.5): without this, recording would reach the same
// upstream sensor through two different paths that our per-Record dedup
// would silently collapse into one, masking what the caller likely intended
// as two independent contributions.
func validateParents(sensorName string, parents []*Sensor) error {
	ancestorSets := make([]map[*Sensor]struct{}, len(parents))
	for i, p := range parents {
		ancestorSets[i] = ancestors(p)
	}

	for i := range parents {
		for j := i + 1; j < len(parents); j++ {
			for anc := range ancestorSets[i] {
				if _, shared := ancestorSets[j][anc]; shared {
					return ErrIllegalSensorHierarchy(sensorName, anc.name)
				}
			}
		}
	}

	return nil
}
