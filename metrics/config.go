package metrics

import (
	"fmt"
	"math"
	"time"

	"github.com/xraph/sensormetrics/val"
)

const (
	// DefaultSamples is the default number of rotating samples per stat.
	DefaultSamples = 2

	// DefaultTimeWindowMs is the default per-sample time window (30s).
	DefaultTimeWindowMs = int64(30_000)

	// DefaultEventWindow is the default per-sample event window: effectively
	// unbounded, matching the reference Long.MAX_VALUE default.
	DefaultEventWindow = int64(math.MaxInt64)

	// DefaultRateUnit is the unit Rate normalizes to when none is given.
	DefaultRateUnit = time.Second
)

// MetricConfig is an immutable configuration bundle shared by the stats
// attached to a sensor. Build one with NewMetricConfig and the With*
// functional options; changing a sensor's config later does not retroactively
// resize sample arrays already allocated by its stats — new stats allocate
// against the config in effect when they are added.
type MetricConfig struct {
	// EventWindow bounds event_count per sample; rotation/purge triggers once
	// reached. Positive, default unbounded.
	EventWindow int64 `validate:"required,gt=0"`

	// TimeWindowMs bounds the wall-clock span of a single sample. Positive,
	// default 30_000.
	TimeWindowMs int64 `validate:"required,gt=0"`

	// Samples is the number of rotating samples held per stat. Positive,
	// default 2.
	Samples int `validate:"required,gt=0"`

	// Quota is an optional post-record bound; nil means unconstrained.
	Quota *Quota

	// Unit is the duration unit Rate-family stats normalize against.
	Unit time.Duration
}

// configOptions accumulates functional-option state before validation and
// freezing into a MetricConfig.
type configOptions struct {
	eventWindow  int64
	timeWindowMs int64
	samples      int
	quota        *Quota
	unit         time.Duration
}

// MetricConfigOption configures a MetricConfig under construction.
type MetricConfigOption func(*configOptions)

// WithEventWindow bounds the number of events per sample.
func WithEventWindow(n int64) MetricConfigOption {
	return func(o *configOptions) { o.eventWindow = n }
}

// WithTimeWindow bounds the wall-clock span of a single sample.
func WithTimeWindow(d time.Duration) MetricConfigOption {
	return func(o *configOptions) { o.timeWindowMs = d.Milliseconds() }
}

// WithTimeWindowMs bounds the wall-clock span of a single sample, in
// milliseconds — convenient when composing with Clock.NowMs arithmetic.
func WithTimeWindowMs(ms int64) MetricConfigOption {
	return func(o *configOptions) { o.timeWindowMs = ms }
}

// WithSamples sets the number of rotating samples held per stat.
func WithSamples(n int) MetricConfigOption {
	return func(o *configOptions) { o.samples = n }
}

// WithQuota attaches a post-record quota bound.
func WithQuota(q Quota) MetricConfigOption {
	return func(o *configOptions) { o.quota = &q }
}

// WithRateUnit sets the duration unit Rate-family stats normalize against.
func WithRateUnit(unit time.Duration) MetricConfigOption {
	return func(o *configOptions) { o.unit = unit }
}

// NewMetricConfig builds a MetricConfig from the given options, applying
// package defaults for anything left unset, then validates it. Returns
// ErrInvalidConfig (code CodeInvalidConfig) if validation fails.
func NewMetricConfig(opts ...MetricConfigOption) (MetricConfig, error) {
	o := &configOptions{
		eventWindow:  DefaultEventWindow,
		timeWindowMs: DefaultTimeWindowMs,
		samples:      DefaultSamples,
		unit:         DefaultRateUnit,
	}

	for _, opt := range opts {
		opt(o)
	}

	cfg := MetricConfig{
		EventWindow:  o.eventWindow,
		TimeWindowMs: o.timeWindowMs,
		Samples:      o.samples,
		Quota:        o.quota,
		Unit:         o.unit,
	}

	if ve := val.Validate(&cfg); ve.HasErrors() {
		return MetricConfig{}, ErrInvalidConfig(ve.Error(), ve)
	}

	return cfg, nil
}

// MustMetricConfig is like NewMetricConfig but panics on invalid config. Meant
// for package-level defaults and tests, never for config built from
// caller-supplied values.
func MustMetricConfig(opts ...MetricConfigOption) MetricConfig {
	cfg, err := NewMetricConfig(opts...)
	if err != nil {
		panic(err)
	}

	return cfg
}

// defaultMetricConfig is the zero-option MetricConfig, used whenever a sensor
// or stat is created without an explicit config.
func defaultMetricConfig() MetricConfig {
	return MustMetricConfig()
}

// QuotaBoundKind distinguishes an upper bound from a lower bound.
type QuotaBoundKind int

const (
	// UpperBoundKind is violated when the measured value exceeds the limit.
	UpperBoundKind QuotaBoundKind = iota
	// LowerBoundKind is violated when the measured value falls below the limit.
	LowerBoundKind
)

// Quota is a post-record predicate over a metric's current value. Equality at
// the boundary never violates.
type Quota struct {
	Kind  QuotaBoundKind
	Limit float64
}

// UpperBound builds a Quota violated when value > limit.
func UpperBound(limit float64) Quota {
	return Quota{Kind: UpperBoundKind, Limit: limit}
}

// LowerBound builds a Quota violated when value < limit.
func LowerBound(limit float64) Quota {
	return Quota{Kind: LowerBoundKind, Limit: limit}
}

// Acceptable reports whether value satisfies the quota.
func (q Quota) Acceptable(value float64) bool {
	switch q.Kind {
	case UpperBoundKind:
		return value <= q.Limit
	case LowerBoundKind:
		return value >= q.Limit
	default:
		return true
	}
}

// String renders the quota for error messages and logs.
func (q Quota) String() string {
	switch q.Kind {
	case UpperBoundKind:
		return fmt.Sprintf("upper bound %v", q.Limit)
	case LowerBoundKind:
		return fmt.Sprintf("lower bound %v", q.Limit)
	default:
		return "unknown quota"
	}
}
