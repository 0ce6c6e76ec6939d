package log_test

import (
	"errors"
	"testing"
	"time"

	"github.com/xraph/sensormetrics/log"
)

// BenchmarkLogger compares performance between different logger implementations.
func BenchmarkLogger(b *testing.B) {
	testFields := []log.Field{
		log.String("operation", "benchmark_test"),
		log.Int("iteration", 1000),
		log.Duration("elapsed", 100*time.Millisecond),
		log.Bool("success", true),
	}

	b.Run("NoopLogger", func(b *testing.B) {
		noopLog := log.NewNoopLogger()

		b.ResetTimer()

		for range b.N {
			noopLog.Info("Benchmark test message", testFields...)
			noopLog.Error("Benchmark error message", append(testFields, log.Error(errors.New("test error")))...)
		}
	})

	b.Run("ProductionLogger", func(b *testing.B) {
		prodLog := log.NewProductionLogger()

		b.ResetTimer()

		for range b.N {
			prodLog.Info("Benchmark test message", testFields...)
			prodLog.Error("Benchmark error message", append(testFields, log.Error(errors.New("test error")))...)
		}

		prodLog.Sync()
	})
}

// TestNoopLogger ensures noop logger implements interface correctly.
func TestNoopLogger(t *testing.T) {
	noopLog := log.NewNoopLogger()

	// Verify it implements the Logger interface
	var _ log.Logger = noopLog

	// Test all methods don't panic
	t.Run("BasicLogging", func(t *testing.T) {
		noopLog.Debug("debug message")
		noopLog.Info("info message")
		noopLog.Warn("warn message")
		noopLog.Error("error message")
		// Skip Fatal as it would terminate test

		noopLog.Debugf("debug %s", "formatted")
		noopLog.Infof("info %d", 42)
		noopLog.Warnf("warn %v", true)
		noopLog.Errorf("error %s", "test")
	})

	t.Run("WithMethods", func(t *testing.T) {
		withFieldsLog := noopLog.With(log.String("key", "value"))
		namedLog := noopLog.Named("test")

		var (
			_ log.Logger = withFieldsLog
			_ log.Logger = namedLog
		)

		chainedLog := noopLog.With(log.String("k1", "v1")).
			Named("chained").
			With(log.String("k2", "v2"))

		chainedLog.Info("This won't log anything")
	})

	t.Run("Sugar", func(t *testing.T) {
		sugar := noopLog.Sugar()

		var _ log.SugarLogger = sugar

		sugar.Infow("info with fields", "key1", "value1", "key2", 42)
		sugar.Errorw("error with fields", "error", "test error")

		chainedSugar := sugar.With("persistent", "field")
		chainedSugar.Debugw("debug message", "additional", "field")
	})

	t.Run("Sync", func(t *testing.T) {
		err := noopLog.Sync()
		if err != nil {
			t.Errorf("Sync should not return error, got: %v", err)
		}
	})
}

// TestLoggerInterface ensures all logger implementations satisfy the interface.
func TestLoggerInterface(t *testing.T) {
	testCases := []struct {
		name   string
		logger log.Logger
	}{
		{"NoopLogger", log.NewNoopLogger()},
		{"DevelopmentLogger", log.NewDevelopmentLogger()},
		{"ProductionLogger", log.NewProductionLogger()},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Verify interface compliance
			var _ log.Logger = tc.logger

			// Test that methods don't panic (except Fatal)
			tc.logger.Debug("test debug")
			tc.logger.Info("test info")
			tc.logger.Warn("test warn")
			tc.logger.Error("test error")

			tc.logger.Debugf("test debug %s", "formatted")
			tc.logger.Infof("test info %d", 42)
			tc.logger.Warnf("test warn %v", true)
			tc.logger.Errorf("test error %s", "formatted")

			// Test With methods
			withFields := tc.logger.With(log.String("test", "value"))

			var _ log.Logger = withFields

			named := tc.logger.Named("test")

			var _ log.Logger = named

			// Test Sugar
			sugar := tc.logger.Sugar()

			var _ log.SugarLogger = sugar

			// Test Sync
			err := tc.logger.Sync()
			// Only check error for non-noop loggers
			if tc.name != "NoopLogger" && err != nil {
				t.Logf("Sync returned error (may be expected): %v", err)
			}
		})
	}
}

// TestPerformanceMonitor tests performance monitoring with noop log.
func TestPerformanceMonitor(t *testing.T) {
	noopLog := log.NewNoopLogger()

	t.Run("BasicMonitoring", func(t *testing.T) {
		pm := log.NewPerformanceMonitor(noopLog, "test_operation")
		pm.WithField(log.String("test", "value"))

		time.Sleep(10 * time.Millisecond)

		// Should not panic
		pm.Finish()
	})

	t.Run("ErrorMonitoring", func(t *testing.T) {
		pm := log.NewPerformanceMonitor(noopLog, "test_operation_with_error")

		time.Sleep(5 * time.Millisecond)

		// Should not panic
		pm.FinishWithError(errors.New("test error"))
	})
}

// TestTestLogger exercises the in-memory logger used to assert on log output
// in reporters' own tests.
func TestTestLogger(t *testing.T) {
	testLogger := log.NewTestLogger()

	var _ log.Logger = testLogger

	testLogger.Info("first", log.String("k", "v"))
	testLogger.Error("second")
	testLogger.Info("third")

	if got := testLogger.CountLogs("INFO"); got != 2 {
		t.Errorf("CountLogs(INFO) = %d, want 2", got)
	}

	if !testLogger.AssertHasLog("ERROR", "second") {
		t.Error("expected ERROR log 'second' to be recorded")
	}

	logs := testLogger.GetLogs()
	if len(logs) != 3 {
		t.Fatalf("GetLogs() returned %d entries, want 3", len(logs))
	}

	if logs[0].Fields["k"] != "v" {
		t.Errorf("first log field k = %v, want v", logs[0].Fields["k"])
	}

	testLogger.Clear()

	if len(testLogger.GetLogs()) != 0 {
		t.Error("expected logs to be empty after Clear")
	}
}

// BenchmarkFieldCreation compares field creation performance.
func BenchmarkFieldCreation(b *testing.B) {
	b.Run("BasicFields", func(b *testing.B) {
		for i := range b.N {
			fields := []log.Field{
				log.String("operation", "benchmark"),
				log.Int("iteration", i),
				log.Bool("success", true),
				log.Duration("elapsed", time.Millisecond),
			}
			_ = fields
		}
	})

	b.Run("LazyFields", func(b *testing.B) {
		for i := range b.N {
			fields := []log.Field{
				log.Lazy("timestamp", func() any {
					return time.Now().Unix()
				}),
				log.Lazy("random", func() any {
					return i * 42
				}),
			}
			_ = fields
		}
	})

	b.Run("ConditionalFields", func(b *testing.B) {
		for i := range b.N {
			fields := []log.Field{
				log.Conditional(i%2 == 0, "even", true),
				log.Conditional(i%3 == 0, "divisible_by_three", true),
				log.Nullable("value", func() any {
					if i > 100 {
						return i
					}

					return nil
				}()),
			}
			_ = fields
		}
	})
}
