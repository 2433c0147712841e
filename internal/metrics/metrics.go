// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Oracle metrics
	IncFortuneGenerated()
	IncClarificationGenerated()
	IncOracleFailure()
	ObserveOracleDuration(duration time.Duration)

	// Vibe lifecycle metrics
	IncVibeCreated()
	IncVibeReset()
	IncVibeUpdated()
	IncStoreFailure()
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
