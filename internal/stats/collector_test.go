package stats

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/aldertree/beacon/internal/engine"
	"github.com/aldertree/beacon/internal/policy"
)

func TestCollector_StartsEmpty(t *testing.T) {
	snap := NewCollector().Snapshot()

	if snap.Turns != 0 {
		t.Fatalf("expected 0 turns, got %d", snap.Turns)
	}
	if snap.HasData() {
		t.Fatal("expected HasData to be false")
	}
	if snap.AvgInputRunes() != 0 || snap.AvgOutputRunes() != 0 {
		t.Fatalf("expected zero averages, got %.1f / %.1f", snap.AvgInputRunes(), snap.AvgOutputRunes())
	}
}

func TestCollector_RecordUpdatesCounters(t *testing.T) {
	c := NewCollector()

	c.Record(Observation{
		Mode: engine.ModeAnswer, Decision: policy.Allow,
		InputRunes: 10, OutputRunes: 100, EstimatedTokens: 20,
		Elapsed: 10 * time.Millisecond,
	})
	c.Record(Observation{
		Mode: engine.ModeAnswer, Decision: policy.Refuse,
		InputRunes: 20, OutputRunes: 200, EstimatedTokens: 30,
		Elapsed: 30 * time.Millisecond,
	})
	c.Record(Observation{
		Mode: engine.ModeCoaching, Decision: policy.Allow,
		InputRunes: 30, OutputRunes: 300, EstimatedTokens: 40,
		Elapsed: 20 * time.Millisecond,
	})

	snap := c.Snapshot()

	if snap.Turns != 3 {
		t.Fatalf("expected 3 turns, got %d", snap.Turns)
	}
	if snap.PerMode[engine.ModeAnswer] != 2 || snap.PerMode[engine.ModeCoaching] != 1 {
		t.Fatalf("unexpected mode counts: %v", snap.PerMode)
	}
	if snap.PerDecision[policy.Allow] != 2 || snap.PerDecision[policy.Refuse] != 1 {
		t.Fatalf("unexpected decision counts: %v", snap.PerDecision)
	}
	if snap.TotalTokens != 90 {
		t.Fatalf("expected 90 tokens, got %d", snap.TotalTokens)
	}
	if got := snap.AvgInputRunes(); got != 20 {
		t.Fatalf("expected avg input 20, got %.2f", got)
	}
	if got := snap.AvgOutputRunes(); got != 200 {
		t.Fatalf("expected avg output 200, got %.2f", got)
	}
	if snap.UpdatedAt.IsZero() {
		t.Fatal("expected UpdatedAt to be set")
	}
}

func TestCollector_LatencyTracking(t *testing.T) {
	c := NewCollector()
	c.Record(Observation{Mode: engine.ModeAnswer, Decision: policy.Allow, Elapsed: 10 * time.Millisecond})
	c.Record(Observation{Mode: engine.ModeAnswer, Decision: policy.Allow, Elapsed: 30 * time.Millisecond})

	snap := c.Snapshot()
	if snap.Latency.LastMs != 30 {
		t.Fatalf("expected last 30ms, got %.1f", snap.Latency.LastMs)
	}
	if snap.Latency.MinMs != 10 || snap.Latency.MaxMs != 30 {
		t.Fatalf("unexpected min/max: %.1f / %.1f", snap.Latency.MinMs, snap.Latency.MaxMs)
	}

	// EMA seeded at 10, then 0.9*10 + 0.1*30 = 12.
	if got := snap.Latency.AvgEMAMs; math.Abs(got-12) > 0.001 {
		t.Fatalf("expected EMA 12ms, got %.4f", got)
	}
}

func TestCollector_SnapshotIsACopy(t *testing.T) {
	c := NewCollector()
	c.Record(Observation{Mode: engine.ModeAnswer, Decision: policy.Allow})

	snap := c.Snapshot()
	snap.PerMode[engine.ModeAnswer] = 99

	if c.Snapshot().PerMode[engine.ModeAnswer] != 1 {
		t.Fatal("mutating a snapshot leaked into the collector")
	}
}

func TestCollector_Reset(t *testing.T) {
	c := NewCollector()
	c.Record(Observation{Mode: engine.ModeSummary, Decision: policy.SafeRespond, InputRunes: 5, OutputRunes: 7, EstimatedTokens: 3})

	c.Reset()
	snap := c.Snapshot()

	if snap.Turns != 0 || snap.TotalTokens != 0 {
		t.Fatalf("expected zeroed counters, got %+v", snap)
	}
	if len(snap.PerMode) != 0 || len(snap.PerDecision) != 0 {
		t.Fatalf("expected empty maps, got %v / %v", snap.PerMode, snap.PerDecision)
	}
	if snap.Latency != (LatencyStats{}) {
		t.Fatalf("expected zero latency stats, got %+v", snap.Latency)
	}
}

func TestCollector_ConcurrentRecords(t *testing.T) {
	c := NewCollector()

	const workers = 8
	const perWorker = 250

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				c.Record(Observation{Mode: engine.ModeCoaching, Decision: policy.Allow, InputRunes: 1, OutputRunes: 1})
			}
		}()
	}
	wg.Wait()

	snap := c.Snapshot()
	if snap.Turns != workers*perWorker {
		t.Fatalf("expected %d turns, got %d", workers*perWorker, snap.Turns)
	}
	if snap.PerMode[engine.ModeCoaching] != workers*perWorker {
		t.Fatalf("expected %d coaching turns, got %d", workers*perWorker, snap.PerMode[engine.ModeCoaching])
	}
}

func TestSatAdd_SaturatesInsteadOfWrapping(t *testing.T) {
	if got := satAdd(math.MaxUint64, 5); got != math.MaxUint64 {
		t.Fatalf("expected saturation at max, got %d", got)
	}
	if got := satAdd(40, 2); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
}
