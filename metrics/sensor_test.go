package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSensor(t *testing.T, name string, parents []*Sensor, cfg MetricConfig) *Sensor {
	t.Helper()

	require.NoError(t, validateParents(name, parents))

	return newSensor(name, parents, cfg, NewMockClock(0))
}

func TestSensor_AddRejectsDuplicateName(t *testing.T) {
	cfg := MustMetricConfig()
	s := newTestSensor(t, "requests", nil, cfg)

	_, err := s.Add("count", NewTotal())
	require.NoError(t, err)

	_, err = s.Add("count", NewTotal())
	require.Error(t, err)
}

func TestSensor_RecordPropagatesToParent(t *testing.T) {
	cfg := MustMetricConfig(WithSamples(2), WithTimeWindowMs(1000))

	parent := newTestSensor(t, "all-requests", nil, cfg)
	_, err := parent.Add("count", NewTotal())
	require.NoError(t, err)

	child := newTestSensor(t, "get-requests", []*Sensor{parent}, cfg)
	_, err = child.Add("count", NewTotal())
	require.NoError(t, err)

	require.NoError(t, child.RecordValue(1))
	require.NoError(t, child.RecordValue(1))

	childMetric := child.Metrics()[0]
	parentMetric := parent.Metrics()[0]

	assert.Equal(t, 2.0, childMetric.Value())
	assert.Equal(t, 2.0, parentMetric.Value())
}

func TestSensor_RecordDedupsASensorListedAsItsOwnParentTwice(t *testing.T) {
	cfg := MustMetricConfig()

	root := newTestSensor(t, "root", nil, cfg)
	_, err := root.Add("count", NewTotal())
	require.NoError(t, err)

	// newSensor itself (unlike Registry.Sensor) does not run hierarchy
	// validation, so this construction is only for exercising recordAt's
	// dedup directly: a sensor that names the same parent twice must still
	// only contribute its value to that parent once.
	leaf := newSensor("leaf", []*Sensor{root, root}, cfg, NewMockClock(0))
	require.NoError(t, leaf.RecordValue(1))

	assert.Equal(t, 1.0, root.Metrics()[0].Value())
}

func TestValidateParents_RejectsSharedAncestor(t *testing.T) {
	cfg := MustMetricConfig()

	root := newTestSensor(t, "root", nil, cfg)
	branchA := newTestSensor(t, "branch-a", []*Sensor{root}, cfg)
	branchB := newTestSensor(t, "branch-b", []*Sensor{root}, cfg)

	err := validateParents("leaf", []*Sensor{branchA, branchB})
	require.Error(t, err)
}

func TestSensor_RecordRaisesQuotaViolationAfterPersisting(t *testing.T) {
	cfg := MustMetricConfig(WithQuota(UpperBound(5)))
	s := newTestSensor(t, "bounded", nil, cfg)

	metric, err := s.Add("total", NewTotal())
	require.NoError(t, err)

	require.NoError(t, s.RecordValue(3))

	err = s.RecordValue(10)
	require.Error(t, err)

	var violation *QuotaViolation

	require.ErrorAs(t, err, &violation)
	assert.Equal(t, "total", violation.MetricName())
	assert.Equal(t, 13.0, violation.Actual())

	// The value that violated the quota was still persisted.
	assert.Equal(t, 13.0, metric.Value())
}

func TestSensor_AddPercentilesIsAllOrNothing(t *testing.T) {
	cfg := MustMetricConfig(WithSamples(1), WithTimeWindowMs(1_000_000))
	s := newTestSensor(t, "latency", nil, cfg)

	_, err := s.Add("p50", NewTotal())
	require.NoError(t, err)

	p, err := NewPercentiles(cfg, 10, 0, 100, ConstantBucketSizing, []Percentile{{Name: "p50", Quantile: 50}}, 0)
	require.NoError(t, err)

	// "p50" collides with the already-registered metric above, so the whole
	// compound registration must fail without adding the histogram either.
	_, err = s.AddPercentiles("latency.hist", p)
	require.Error(t, err)

	assert.Len(t, s.Metrics(), 1)
}
