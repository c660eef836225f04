package pipeline

import (
	"context"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/aldertree/beacon/internal/engine"
	"github.com/aldertree/beacon/internal/policy"
	"github.com/aldertree/beacon/internal/stats"
)

// Turn is the result of one full pipeline invocation.
type Turn struct {
	RequestID string
	Input     string
	Output    engine.Output
	Decision  policy.Decision
	Elapsed   time.Duration
}

// Pipeline wires the reply engine, the policy gate, and the stats collector.
// The engine and the gate are pure; the collector is the only mutable state.
type Pipeline struct {
	engine    engine.Engine
	gate      policy.Evaluator
	collector *stats.Collector
}

// New composes a pipeline from its three stages.
func New(eng engine.Engine, gate policy.Evaluator, collector *stats.Collector) *Pipeline {
	return &Pipeline{engine: eng, gate: gate, collector: collector}
}

// Stats returns the collector owned by this pipeline's session.
func (p *Pipeline) Stats() *stats.Collector { return p.collector }

// HandleTurn runs generate, evaluate and record for one line of input.
// It never fails: every input maps to a valid output and decision.
func (p *Pipeline) HandleTurn(ctx context.Context, input string) Turn {
	requestID := RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = NewRequestID()
	}

	start := time.Now()
	out := p.engine.Generate(input)
	decision := p.gate.Evaluate(input, out.Text)
	elapsed := time.Since(start)

	p.collector.Record(stats.Observation{
		Mode:            out.Mode,
		Decision:        decision.Kind,
		InputRunes:      utf8.RuneCountInString(input),
		OutputRunes:     utf8.RuneCountInString(out.Text),
		EstimatedTokens: out.EstimatedTokens,
		Elapsed:         elapsed,
	})

	slog.Debug("pipeline turn",
		"request_id", requestID,
		"mode", string(out.Mode),
		"decision", decision.Kind.String(),
		"category", decision.Category,
		"estimated_tokens", out.EstimatedTokens,
		"elapsed_ms", elapsed.Milliseconds(),
	)

	return Turn{
		RequestID: requestID,
		Input:     input,
		Output:    out,
		Decision:  decision,
		Elapsed:   elapsed,
	}
}
