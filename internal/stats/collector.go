package stats

import (
	"math"
	"sync"
	"time"

	"github.com/aldertree/beacon/internal/engine"
	"github.com/aldertree/beacon/internal/policy"
)

// EMA alpha for latency: reactive but not too noisy.
const latencyEMAAlpha = 0.1

// LatencyStats tracks per-turn pipeline latency in milliseconds.
type LatencyStats struct {
	LastMs   float64
	AvgEMAMs float64
	MinMs    float64
	MaxMs    float64
}

// Snapshot is a consistent point-in-time copy of session counters.
type Snapshot struct {
	UpdatedAt time.Time
	Turns     uint64

	PerMode     map[engine.Mode]uint64
	PerDecision map[policy.DecisionKind]uint64

	TotalInputRunes  uint64
	TotalOutputRunes uint64
	TotalTokens      uint64

	Latency LatencyStats
}

// AvgInputRunes returns the mean input length, 0 when no turns were recorded.
func (s Snapshot) AvgInputRunes() float64 {
	if s.Turns == 0 {
		return 0
	}
	return float64(s.TotalInputRunes) / float64(s.Turns)
}

// AvgOutputRunes returns the mean output length, 0 when no turns were recorded.
func (s Snapshot) AvgOutputRunes() float64 {
	if s.Turns == 0 {
		return 0
	}
	return float64(s.TotalOutputRunes) / float64(s.Turns)
}

// HasData reports whether any turn was recorded.
func (s Snapshot) HasData() bool { return s.Turns > 0 }

// Observation is the plain per-turn value passed to Record. The collector
// knows nothing about how these values were produced.
type Observation struct {
	Mode            engine.Mode
	Decision        policy.DecisionKind
	InputRunes      int
	OutputRunes     int
	EstimatedTokens int
	Elapsed         time.Duration
}

// Collector aggregates per-session pipeline observations. Record and Reset
// are serialized; Snapshot observes a consistent state. Counters saturate
// instead of wrapping.
type Collector struct {
	mu sync.Mutex

	turns       uint64
	perMode     map[engine.Mode]uint64
	perDecision map[policy.DecisionKind]uint64

	inputRunes  uint64
	outputRunes uint64
	tokens      uint64

	latency   LatencyStats
	updatedAt time.Time
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{
		perMode:     make(map[engine.Mode]uint64),
		perDecision: make(map[policy.DecisionKind]uint64),
	}
}

// Record registers one pipeline turn.
func (c *Collector) Record(obs Observation) {
	latencyMs := float64(obs.Elapsed) / float64(time.Millisecond)
	if latencyMs < 0 {
		latencyMs = 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.turns = satAdd(c.turns, 1)
	c.perMode[obs.Mode] = satAdd(c.perMode[obs.Mode], 1)
	c.perDecision[obs.Decision] = satAdd(c.perDecision[obs.Decision], 1)

	c.inputRunes = satAdd(c.inputRunes, clampNonNegative(obs.InputRunes))
	c.outputRunes = satAdd(c.outputRunes, clampNonNegative(obs.OutputRunes))
	c.tokens = satAdd(c.tokens, clampNonNegative(obs.EstimatedTokens))

	c.latency.LastMs = latencyMs
	if c.turns == 1 {
		c.latency.AvgEMAMs = latencyMs
		c.latency.MinMs = latencyMs
		c.latency.MaxMs = latencyMs
	} else {
		c.latency.AvgEMAMs = (1-latencyEMAAlpha)*c.latency.AvgEMAMs + latencyEMAAlpha*latencyMs
		if latencyMs < c.latency.MinMs {
			c.latency.MinMs = latencyMs
		}
		if latencyMs > c.latency.MaxMs {
			c.latency.MaxMs = latencyMs
		}
	}

	c.updatedAt = time.Now().UTC()
}

// Snapshot returns a read-only copy of the current counters.
func (c *Collector) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	perMode := make(map[engine.Mode]uint64, len(c.perMode))
	for mode, count := range c.perMode {
		perMode[mode] = count
	}
	perDecision := make(map[policy.DecisionKind]uint64, len(c.perDecision))
	for kind, count := range c.perDecision {
		perDecision[kind] = count
	}

	return Snapshot{
		UpdatedAt:        c.updatedAt,
		Turns:            c.turns,
		PerMode:          perMode,
		PerDecision:      perDecision,
		TotalInputRunes:  c.inputRunes,
		TotalOutputRunes: c.outputRunes,
		TotalTokens:      c.tokens,
		Latency:          c.latency,
	}
}

// Reset returns every counter to zero.
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.turns = 0
	c.perMode = make(map[engine.Mode]uint64)
	c.perDecision = make(map[policy.DecisionKind]uint64)
	c.inputRunes = 0
	c.outputRunes = 0
	c.tokens = 0
	c.latency = LatencyStats{}
	c.updatedAt = time.Time{}
}

func satAdd(a, b uint64) uint64 {
	if a > math.MaxUint64-b {
		return math.MaxUint64
	}
	return a + b
}

func clampNonNegative(n int) uint64 {
	if n < 0 {
		return 0
	}
	return uint64(n)
}
