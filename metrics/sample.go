package metrics

// sample is one cell of a stat's rotating buffer: a running value, the
// number of events folded into it, and the timestamp its window opened.
type sample struct {
	value         float64
	eventCount    int64
	windowStartMs int64
}

// resetSample reinitializes s in place to identity for the given window
// start, as happens on rotation and on purge.
func resetSample(s *sample, identity float64, nowMs int64) {
	s.value = identity
	s.eventCount = 0
	s.windowStartMs = nowMs
}

// expiredForPurge reports whether a sample (current or not) is old enough to
// be discarded: at least `samples` whole windows old, per §4.2's purge
// predicate (distinct from the narrower rotation predicate below).
func expiredForPurge(s *sample, cfg MetricConfig, nowMs int64) bool {
	return nowMs-s.windowStartMs > cfg.TimeWindowMs*int64(cfg.Samples) || s.eventCount >= cfg.EventWindow
}

// expiredForRotation reports whether the current sample has filled up and
// recording should advance to the next one, per §4.2's narrower,
// single-window rotation predicate.
func expiredForRotation(s *sample, cfg MetricConfig, nowMs int64) bool {
	return s.eventCount >= cfg.EventWindow || nowMs-s.windowStartMs >= cfg.TimeWindowMs
}

// statKind identifies the windowed-stat specialization driving a
// sampledStat's identity value and per-sample update/combine behavior. Kept
// as a tagged value rather than an exported interface hierarchy so the
// shared rotation/purge mechanics in sampledStat stay in exactly one place.
type statKind interface {
	// identity is the value a freshly rotated/purged sample carries.
	identity() float64

	// updateSample folds value into the current sample (already rotated if
	// needed) for one record call.
	updateSample(s *sample, cfg MetricConfig, value float64, nowMs int64)

	// combine reduces the surviving (non-purged) samples to the stat's
	// current measurement.
	combine(samples []sample, cfg MetricConfig, nowMs int64) float64
}

// sampledStat is the shared rotation/purge engine behind every windowed stat
// in §4.2: a fixed-length ring of samples plus an index into the one
// currently accepting records. Each stat holds it by pointer, built through
// newSampledStat; it is never referenced through an interface.
type sampledStat struct {
	kind    statKind
	samples []sample
	current int
}

// newSampledStat allocates a sampledStat with cfg.Samples cells, all
// initialized to kind's identity. Allocation is sized to the config in
// effect at construction time — later config changes on the owning sensor do
// not resize it, per §3's MetricConfig invariant.
func newSampledStat(kind statKind, cfg MetricConfig, nowMs int64) *sampledStat {
	ss := &sampledStat{
		kind:    kind,
		samples: make([]sample, cfg.Samples),
	}

	for i := range ss.samples {
		resetSample(&ss.samples[i], kind.identity(), nowMs)
	}

	return ss
}

// currentSample returns the sample record is about to target, rotating to
// the next cell first if the current one has filled up.
func (ss *sampledStat) currentSample(cfg MetricConfig, nowMs int64) *sample {
	cur := &ss.samples[ss.current]
	if expiredForRotation(cur, cfg, nowMs) {
		ss.current = (ss.current + 1) % len(ss.samples)
		cur = &ss.samples[ss.current]
		resetSample(cur, ss.kind.identity(), nowMs)
	}

	return cur
}

// record applies one observation: select (and if needed rotate) the current
// sample, then delegate the stat-specific update to kind.
func (ss *sampledStat) record(cfg MetricConfig, value float64, nowMs int64) {
	cur := ss.currentSample(cfg, nowMs)
	if cur.eventCount == 0 {
		cur.windowStartMs = nowMs
	}

	ss.kind.updateSample(cur, cfg, value, nowMs)
	cur.eventCount++
}

// purge resets every sample — current or not — that has aged out of the
// whole-window span back to identity. Unlike rotation, purge is unconditional
// on sample index: a current sample nobody has recorded into for a long time
// is just as purgeable as a retired one, which is what lets an idle stat settle
// to its identity value (§4.2's all-samples-purged edge case) instead of
// holding a stale reading forever.
func (ss *sampledStat) purge(cfg MetricConfig, nowMs int64) {
	for i := range ss.samples {
		if expiredForPurge(&ss.samples[i], cfg, nowMs) {
			resetSample(&ss.samples[i], ss.kind.identity(), nowMs)
		}
	}
}

// measure purges stale samples then combines what's left via the
// stat-specific combine. Safe to call repeatedly with the same nowMs and no
// intervening record — it is a pure read once purge has settled.
func (ss *sampledStat) measure(cfg MetricConfig, nowMs int64) float64 {
	ss.purge(cfg, nowMs)

	return ss.kind.combine(ss.samples, cfg, nowMs)
}

// oldestWindowStartMs returns the earliest windowStartMs among the current
// samples, used by Rate to size its elapsed-duration denominator.
func (ss *sampledStat) oldestWindowStartMs() int64 {
	oldest := ss.samples[0].windowStartMs
	for i := 1; i < len(ss.samples); i++ {
		if ss.samples[i].windowStartMs < oldest {
			oldest = ss.samples[i].windowStartMs
		}
	}

	return oldest
}
