package metrics

import (
	"sync"
	"testing"
	"time"
)

func TestInMemoryRecorder_Snapshot(t *testing.T) {
	t.Parallel()

	m := NewInMemory()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.IncFortuneGenerated()
			m.ObserveOracleDuration(2 * time.Millisecond)
		}()
	}
	wg.Wait()

	m.IncClarificationGenerated()
	m.IncOracleFailure()
	m.IncVibeCreated()
	m.IncVibeReset()
	m.IncVibeUpdated()
	m.IncVibeUpdated()
	m.IncStoreFailure()

	snap := m.Snapshot()
	if snap.FortunesGenerated != 10 {
		t.Errorf("FortunesGenerated = %d, want 10", snap.FortunesGenerated)
	}
	if snap.OracleDurationCount != 10 || snap.OracleDurationTotalNs != int64(20*time.Millisecond) {
		t.Errorf("unexpected oracle duration: count=%d total=%d", snap.OracleDurationCount, snap.OracleDurationTotalNs)
	}
	if snap.ClarificationsGenerated != 1 || snap.OracleFailures != 1 {
		t.Errorf("unexpected oracle counters: %+v", snap)
	}
	if snap.VibesCreated != 1 || snap.VibesReset != 1 || snap.VibesUpdated != 2 || snap.StoreFailures != 1 {
		t.Errorf("unexpected vibe counters: %+v", snap)
	}
}

func TestNoop_SatisfiesRecorder(t *testing.T) {
	t.Parallel()

	var r Recorder = NewNoop()
	r.IncFortuneGenerated()
	r.ObserveOracleDuration(time.Second)
}
