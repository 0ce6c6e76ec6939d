package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xraph/sensormetrics/errs"
)

func TestNewMetricConfig_Defaults(t *testing.T) {
	cfg, err := NewMetricConfig()
	require.NoError(t, err)

	assert.Equal(t, DefaultSamples, cfg.Samples)
	assert.Equal(t, DefaultTimeWindowMs, cfg.TimeWindowMs)
	assert.Equal(t, DefaultEventWindow, cfg.EventWindow)
	assert.Equal(t, DefaultRateUnit, cfg.Unit)
	assert.Nil(t, cfg.Quota)
}

func TestNewMetricConfig_Overrides(t *testing.T) {
	cfg, err := NewMetricConfig(
		WithSamples(4),
		WithTimeWindow(time.Second),
		WithEventWindow(100),
		WithQuota(UpperBound(10)),
		WithRateUnit(time.Minute),
	)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Samples)
	assert.Equal(t, int64(1000), cfg.TimeWindowMs)
	assert.Equal(t, int64(100), cfg.EventWindow)
	require.NotNil(t, cfg.Quota)
	assert.Equal(t, UpperBoundKind, cfg.Quota.Kind)
	assert.Equal(t, time.Minute, cfg.Unit)
}

func TestNewMetricConfig_RejectsNonPositiveSamples(t *testing.T) {
	_, err := NewMetricConfig(WithSamples(0))
	require.Error(t, err)

	var coded errs.CodedError

	require.ErrorAs(t, err, &coded)
	assert.Equal(t, CodeInvalidConfig, coded.GetCode())
}

func TestMustMetricConfig_PanicsOnInvalid(t *testing.T) {
	assert.Panics(t, func() {
		MustMetricConfig(WithTimeWindowMs(-1))
	})
}

func TestQuota_Acceptable(t *testing.T) {
	upper := UpperBound(10)
	assert.True(t, upper.Acceptable(10))
	assert.True(t, upper.Acceptable(5))
	assert.False(t, upper.Acceptable(10.01))

	lower := LowerBound(10)
	assert.True(t, lower.Acceptable(10))
	assert.True(t, lower.Acceptable(20))
	assert.False(t, lower.Acceptable(9.99))
}
