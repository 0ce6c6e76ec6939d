package metrics

import "math"

// Avg is a windowed running average: each sample accumulates a sum, and
// combine divides the total sum by the total event count across surviving
// samples.
type Avg struct {
	ss *sampledStat
}

// NewAvg builds an Avg stat allocating its sample ring against cfg.
func NewAvg(cfg MetricConfig, nowMs int64) *Avg {
	return &Avg{ss: newSampledStat(avgKind{}, cfg, nowMs)}
}

// Record folds value into the stat.
func (a *Avg) Record(cfg MetricConfig, value float64, nowMs int64) {
	a.ss.record(cfg, value, nowMs)
}

// Measure returns the current average, or 0 if every sample has been purged.
func (a *Avg) Measure(cfg MetricConfig, nowMs int64) float64 {
	return a.ss.measure(cfg, nowMs)
}

type avgKind struct{}

func (avgKind) identity() float64 { return 0 }

func (avgKind) updateSample(s *sample, _ MetricConfig, value float64, _ int64) {
	s.value += value
}

func (avgKind) combine(samples []sample, _ MetricConfig, _ int64) float64 {
	var sum float64

	var count int64

	for i := range samples {
		sum += samples[i].value
		count += samples[i].eventCount
	}

	if count == 0 {
		return 0
	}

	return sum / float64(count)
}

// Max is a windowed running maximum; its identity is -Inf so an
// all-purged window reports -Inf rather than a misleading 0.
type Max struct {
	ss *sampledStat
}

// NewMax builds a Max stat allocating its sample ring against cfg.
func NewMax(cfg MetricConfig, nowMs int64) *Max {
	return &Max{ss: newSampledStat(maxKind{}, cfg, nowMs)}
}

// Record folds value into the stat.
func (m *Max) Record(cfg MetricConfig, value float64, nowMs int64) {
	m.ss.record(cfg, value, nowMs)
}

// Measure returns the current maximum, or -Inf if every sample has been purged.
func (m *Max) Measure(cfg MetricConfig, nowMs int64) float64 {
	return m.ss.measure(cfg, nowMs)
}

type maxKind struct{}

func (maxKind) identity() float64 { return math.Inf(-1) }

func (maxKind) updateSample(s *sample, _ MetricConfig, value float64, _ int64) {
	if value > s.value {
		s.value = value
	}
}

func (maxKind) combine(samples []sample, _ MetricConfig, _ int64) float64 {
	result := math.Inf(-1)
	for i := range samples {
		if samples[i].value > result {
			result = samples[i].value
		}
	}

	return result
}

// Min is a windowed running minimum; its identity is +Inf.
type Min struct {
	ss *sampledStat
}

// NewMin builds a Min stat allocating its sample ring against cfg.
func NewMin(cfg MetricConfig, nowMs int64) *Min {
	return &Min{ss: newSampledStat(minKind{}, cfg, nowMs)}
}

// Record folds value into the stat.
func (m *Min) Record(cfg MetricConfig, value float64, nowMs int64) {
	m.ss.record(cfg, value, nowMs)
}

// Measure returns the current minimum, or +Inf if every sample has been purged.
func (m *Min) Measure(cfg MetricConfig, nowMs int64) float64 {
	return m.ss.measure(cfg, nowMs)
}

type minKind struct{}

func (minKind) identity() float64 { return math.Inf(1) }

func (minKind) updateSample(s *sample, _ MetricConfig, value float64, _ int64) {
	if value < s.value {
		s.value = value
	}
}

func (minKind) combine(samples []sample, _ MetricConfig, _ int64) float64 {
	result := math.Inf(1)
	for i := range samples {
		if samples[i].value < result {
			result = samples[i].value
		}
	}

	return result
}

// SampledCount counts events within the window; combine sums event counts
// across surviving samples (its per-sample value is unused).
type SampledCount struct {
	ss *sampledStat
}

// NewSampledCount builds a SampledCount stat allocating its sample ring against cfg.
func NewSampledCount(cfg MetricConfig, nowMs int64) *SampledCount {
	return &SampledCount{ss: newSampledStat(sampledCountKind{}, cfg, nowMs)}
}

// Record folds one event into the stat. The value itself is ignored — only
// its occurrence counts.
func (c *SampledCount) Record(cfg MetricConfig, value float64, nowMs int64) {
	c.ss.record(cfg, value, nowMs)
}

// Measure returns the total event count across surviving samples.
func (c *SampledCount) Measure(cfg MetricConfig, nowMs int64) float64 {
	return c.ss.measure(cfg, nowMs)
}

type sampledCountKind struct{}

func (sampledCountKind) identity() float64 { return 0 }

func (sampledCountKind) updateSample(*sample, MetricConfig, float64, int64) {}

func (sampledCountKind) combine(samples []sample, _ MetricConfig, _ int64) float64 {
	var count int64
	for i := range samples {
		count += samples[i].eventCount
	}

	return float64(count)
}

// Total is a non-sampled running sum over the sensor's lifetime, unaffected
// by windowing — it ignores MetricConfig's window entirely.
type Total struct {
	sum float64
}

// NewTotal builds a Total stat starting at 0.
func NewTotal() *Total {
	return &Total{}
}

// Record adds value to the running sum.
func (t *Total) Record(_ MetricConfig, value float64, _ int64) {
	t.sum += value
}

// Measure returns the running sum.
func (t *Total) Measure(_ MetricConfig, _ int64) float64 {
	return t.sum
}

// Rate divides an underlying SampledStat's combined value by the elapsed
// window duration, expressed in Unit. By default the underlying stat is a
// running sum of recorded values (a plain Avg-style additive accumulator).
type Rate struct {
	unit       int64 // unit duration in milliseconds
	underlying Stat
	ss         *sampledStat // only used when underlying is nil, for the default sum
}

// NewRate builds a Rate over a default running-sum accumulator, normalizing
// to cfg.Unit.
func NewRate(cfg MetricConfig, nowMs int64) *Rate {
	return &Rate{unit: cfg.Unit.Milliseconds(), ss: newSampledStat(sumKind{}, cfg, nowMs)}
}

// NewRateOver builds a Rate over a caller-supplied underlying Stat, e.g.
// NewRateOver(NewSampledCount(cfg, now), cfg) for OccurrenceRate.
func NewRateOver(underlying Stat, cfg MetricConfig) *Rate {
	return &Rate{unit: cfg.Unit.Milliseconds(), underlying: underlying}
}

// Record folds value into the underlying stat.
func (r *Rate) Record(cfg MetricConfig, value float64, nowMs int64) {
	if r.underlying != nil {
		r.underlying.Record(cfg, value, nowMs)
		return
	}

	r.ss.record(cfg, value, nowMs)
}

// Measure divides the underlying stat's combined value by the elapsed
// window duration (§4.2): max(time_window_ms*samples, now-oldest_window_start),
// converted to Unit. This floor keeps the denominator stable and prevents
// rate spikes while only a fraction of the window has elapsed.
func (r *Rate) Measure(cfg MetricConfig, nowMs int64) float64 {
	var value float64

	var oldestStart int64

	if r.underlying != nil {
		value = r.underlying.Measure(cfg, nowMs)
		oldestStart = r.oldestWindowStart(nowMs)
	} else {
		value = r.ss.measure(cfg, nowMs)
		oldestStart = r.ss.oldestWindowStartMs()
	}

	elapsedMs := cfg.TimeWindowMs * int64(cfg.Samples)
	if observed := nowMs - oldestStart; observed > elapsedMs {
		elapsedMs = observed
	}

	if elapsedMs <= 0 || r.unit <= 0 {
		return 0
	}

	elapsedUnits := float64(elapsedMs) / float64(r.unit)
	if elapsedUnits == 0 {
		return 0
	}

	return value / elapsedUnits
}

// oldestWindowStart reports the oldest sample window start of the underlying
// stat, when it exposes one (SampledCount does). Stats without sample-ring
// introspection (e.g. Avg, or a custom Stat) fall back to nowMs, which
// degrades to the config-derived elapsed floor only.
func (r *Rate) oldestWindowStart(nowMs int64) int64 {
	type sampledBacked interface {
		oldestWindowStartMs() int64
	}

	if sb, ok := any(r.underlying).(sampledBacked); ok {
		return sb.oldestWindowStartMs()
	}

	return nowMs
}

type sumKind struct{}

func (sumKind) identity() float64 { return 0 }

func (sumKind) updateSample(s *sample, _ MetricConfig, value float64, _ int64) {
	s.value += value
}

func (sumKind) combine(samples []sample, _ MetricConfig, _ int64) float64 {
	var sum float64
	for i := range samples {
		sum += samples[i].value
	}

	return sum
}

// oldestWindowStartMs lets SampledCount participate in Rate's
// sampledBacked introspection.
func (c *SampledCount) oldestWindowStartMs() int64 {
	return c.ss.oldestWindowStartMs()
}

// NewOccurrenceRate builds a Rate over a SampledCount, i.e. "events per
// unit time" rather than "sum of recorded values per unit time".
func NewOccurrenceRate(cfg MetricConfig, nowMs int64) *Rate {
	return NewRateOver(NewSampledCount(cfg, nowMs), cfg)
}
