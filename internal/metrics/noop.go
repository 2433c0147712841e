package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

func (n *NoopRecorder) IncFortuneGenerated()                         {}
func (n *NoopRecorder) IncClarificationGenerated()                   {}
func (n *NoopRecorder) IncOracleFailure()                            {}
func (n *NoopRecorder) ObserveOracleDuration(duration time.Duration) {}
func (n *NoopRecorder) IncVibeCreated()                              {}
func (n *NoopRecorder) IncVibeReset()                                {}
func (n *NoopRecorder) IncVibeUpdated()                              {}
func (n *NoopRecorder) IncStoreFailure()                             {}
