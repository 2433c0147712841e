package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	FortunesGenerated       uint64
	ClarificationsGenerated uint64
	OracleFailures          uint64
	OracleDurationCount     uint64
	OracleDurationTotalNs   int64
	VibesCreated            uint64
	VibesReset              uint64
	VibesUpdated            uint64
	StoreFailures           uint64
}

// InMemoryRecorder keeps counters in memory. It backs the /metrics endpoint.
type InMemoryRecorder struct {
	fortunesGenerated       atomic.Uint64
	clarificationsGenerated atomic.Uint64
	oracleFailures          atomic.Uint64
	oracleDurationCount     atomic.Uint64
	oracleDurationTotalNs   atomic.Int64
	vibesCreated            atomic.Uint64
	vibesReset              atomic.Uint64
	vibesUpdated            atomic.Uint64
	storeFailures           atomic.Uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		FortunesGenerated:       m.fortunesGenerated.Load(),
		ClarificationsGenerated: m.clarificationsGenerated.Load(),
		OracleFailures:          m.oracleFailures.Load(),
		OracleDurationCount:     m.oracleDurationCount.Load(),
		OracleDurationTotalNs:   m.oracleDurationTotalNs.Load(),
		VibesCreated:            m.vibesCreated.Load(),
		VibesReset:              m.vibesReset.Load(),
		VibesUpdated:            m.vibesUpdated.Load(),
		StoreFailures:           m.storeFailures.Load(),
	}
}

func (m *InMemoryRecorder) IncFortuneGenerated()       { m.fortunesGenerated.Add(1) }
func (m *InMemoryRecorder) IncClarificationGenerated() { m.clarificationsGenerated.Add(1) }
func (m *InMemoryRecorder) IncOracleFailure()          { m.oracleFailures.Add(1) }

// ObserveOracleDuration records the latency of one oracle call.
func (m *InMemoryRecorder) ObserveOracleDuration(duration time.Duration) {
	m.oracleDurationCount.Add(1)
	m.oracleDurationTotalNs.Add(duration.Nanoseconds())
}

func (m *InMemoryRecorder) IncVibeCreated()  { m.vibesCreated.Add(1) }
func (m *InMemoryRecorder) IncVibeReset()    { m.vibesReset.Add(1) }
func (m *InMemoryRecorder) IncVibeUpdated()  { m.vibesUpdated.Add(1) }
func (m *InMemoryRecorder) IncStoreFailure() { m.storeFailures.Add(1) }
