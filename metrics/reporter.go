package metrics

// Reporter is the registry's notification contract (§7): it learns about the
// metrics already present when it is attached, about every metric added or
// removed afterward, and is given a chance to flush and release resources
// when the registry stops. A reporter must not block the registry for long —
// Metrics.RegisterMetric and friends call these methods synchronously while
// holding the registry's lock, so a slow reporter delays every other registry
// operation as well as whichever goroutine triggered the change.
type Reporter interface {
	// Init is called with every metric registered so far: by Metrics.Start
	// for each attached reporter, and by AddReporter when the reporter is
	// attached to a registry that has already started.
	Init(initial []*Metric)

	// MetricChange is called whenever a new metric is registered.
	MetricChange(metric *Metric)

	// MetricRemoval is called whenever a metric is removed from the registry.
	MetricRemoval(metric *Metric)

	// Close is called once, when the registry stops. A reporter should flush
	// any buffered state and release its resources here.
	Close()
}
