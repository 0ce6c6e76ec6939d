package reporters_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xraph/sensormetrics/log"
	"github.com/xraph/sensormetrics/metrics"
	"github.com/xraph/sensormetrics/reporters"
)

func TestLoggingReporter_ImplementsReporter(t *testing.T) {
	var _ metrics.Reporter = (*reporters.LoggingReporter)(nil)
}

func TestLoggingReporter_LifecycleEmitsExpectedLogLines(t *testing.T) {
	testLogger := log.NewTestLogger()
	r := reporters.NewLoggingReporter(testLogger)

	cfg := metrics.MustMetricConfig()
	clock := metrics.NewMockClock(0)
	reg := metrics.NewRegistry(metrics.WithClock(clock), metrics.WithReporters(r))

	sensor, err := reg.Sensor("requests", nil, cfg)
	assert.NoError(t, err)

	_, err = reg.AddSensorMetric(sensor, "requests.count", metrics.NewTotal())
	assert.NoError(t, err)

	assert.NoError(t, reg.Start(t.Context()))
	assert.NoError(t, sensor.RecordValue(1))
	assert.NoError(t, reg.RemoveMetric("requests.count"))
	assert.NoError(t, reg.Stop(t.Context()))

	assert.True(t, testLogger.AssertHasLog("INFO", "metrics reporter attached"))
	assert.True(t, testLogger.AssertHasLog("INFO", "metric removed"))
	assert.True(t, testLogger.AssertHasLog("INFO", "metrics reporter detached"))
	assert.Equal(t, 1, testLogger.CountLogs("DEBUG"))

	// logs[0] is the "metric registered" line from AddSensorMetric, which
	// runs before Start; the attach line from Init follows it.
	logs := testLogger.GetLogs()
	require.NotEmpty(t, logs)
	assert.Equal(t, int64(1), logs[1].Fields["metric_count"])
}
