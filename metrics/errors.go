package metrics

import (
	"fmt"

	"github.com/xraph/sensormetrics/errs"
)

// Domain error codes. Each is a code of its own, distinct from errs's generic
// codes: errs.Is(err, target) matches on them, while the generic helpers such
// as errs.IsNotFound / errs.IsAlreadyExists do not match these errors.
const (
	CodeDuplicateMetricName = "METRIC_DUPLICATE_NAME"
	CodeQuotaViolation      = "METRIC_QUOTA_VIOLATION"
	CodeIllegalHierarchy    = "METRIC_ILLEGAL_HIERARCHY"
	CodeMetricNotFound      = "METRIC_NOT_FOUND"
	CodeInvalidConfig       = "METRIC_INVALID_CONFIG"
)

// ErrDuplicateMetricName is raised by Sensor.Add / Registry.AddMetric when the
// requested name is already registered anywhere in the registry. The registry
// is left unchanged.
func ErrDuplicateMetricName(name string) *errs.Error {
	return errs.NewError(CodeDuplicateMetricName, fmt.Sprintf("metric %q is already registered", name), nil).
		WithContext("metric", name).(*errs.Error)
}

// ErrIllegalSensorHierarchy is raised by Registry.Sensor when the requested
// parent set would introduce a diamond with a non-root shared ancestor.
func ErrIllegalSensorHierarchy(sensor string, sharedAncestor string) *errs.Error {
	return errs.NewError(CodeIllegalHierarchy,
		fmt.Sprintf("sensor %q: parents share a common ancestor %q", sensor, sharedAncestor), nil).
		WithContext("sensor", sensor).
		WithContext("shared_ancestor", sharedAncestor).(*errs.Error)
}

// ErrMetricNotFound is raised by Registry.GetMetric for unknown names.
func ErrMetricNotFound(name string) *errs.Error {
	return errs.NewError(CodeMetricNotFound, fmt.Sprintf("metric %q not found", name), nil).
		WithContext("metric", name).(*errs.Error)
}

// ErrInvalidConfig is raised by config/Percentiles construction when a
// MetricConfig or bucket layout fails validation.
func ErrInvalidConfig(reason string, cause error) *errs.Error {
	return errs.NewError(CodeInvalidConfig, "invalid metric config: "+reason, cause)
}

// QuotaViolation is raised by Sensor.Record after the value has already been
// recorded (the core's documented, intentionally non-transactional quota
// semantics — spec §7/§9). It carries the violating metric name, the bound
// that was crossed, and the value that crossed it.
type QuotaViolation struct {
	*errs.Error

	metricName string
	bound      Quota
	actual     float64
}

// NewQuotaViolation builds a QuotaViolation error for the given metric.
func NewQuotaViolation(metricName string, bound Quota, actual float64) *QuotaViolation {
	base := errs.NewError(CodeQuotaViolation,
		fmt.Sprintf("metric %q violated its quota: %s, actual=%v", metricName, bound, actual), nil).
		WithContext("metric", metricName).
		WithContext("bound", bound.String()).
		WithContext("actual", actual).(*errs.Error)

	return &QuotaViolation{Error: base, metricName: metricName, bound: bound, actual: actual}
}

// MetricName returns the name of the metric whose quota was violated.
func (e *QuotaViolation) MetricName() string {
	return e.metricName
}

// Bound returns the quota that was violated.
func (e *QuotaViolation) Bound() Quota {
	return e.bound
}

// Actual returns the value that crossed the bound.
func (e *QuotaViolation) Actual() float64 {
	return e.actual
}
