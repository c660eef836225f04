package engine

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Mode is the reply strategy selected for an input.
type Mode string

const (
	// ModeEmpty is reserved for blank input; it never overlaps with the
	// other modes.
	ModeEmpty Mode = "empty"
	// ModeAnswer handles question-shaped input.
	ModeAnswer Mode = "answer"
	// ModeSummary condenses long input.
	ModeSummary Mode = "summary"
	// ModeCoaching handles everything else with practical nudges.
	ModeCoaching Mode = "coaching"
)

// Modes returns all modes in a fixed display order.
func Modes() []Mode {
	return []Mode{ModeEmpty, ModeAnswer, ModeSummary, ModeCoaching}
}

// Config holds the immutable generation settings.
type Config struct {
	// MaxOutputChars caps generated text, counted in runes.
	MaxOutputChars int
	// LongInputThreshold is the input rune count at which input is
	// treated as long and summarized.
	LongInputThreshold int
	// ShortInputThreshold is the input rune count under which coaching
	// replies use the compact variant. Must be below LongInputThreshold.
	ShortInputThreshold int
	// MaxBullets caps the bullet list in summary replies.
	MaxBullets int
	// AssistantName is how the engine introduces itself.
	AssistantName string
}

// DefaultConfig returns generation settings with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxOutputChars:      2000,
		LongInputThreshold:  400,
		ShortInputThreshold: 40,
		MaxBullets:          5,
		AssistantName:       "Beacon",
	}
}

// Validate rejects malformed settings at construction time.
func (c Config) Validate() error {
	if c.MaxOutputChars <= 0 {
		return fmt.Errorf("engine: max output chars must be positive, got %d", c.MaxOutputChars)
	}
	if c.LongInputThreshold <= 0 {
		return fmt.Errorf("engine: long input threshold must be positive, got %d", c.LongInputThreshold)
	}
	if c.ShortInputThreshold <= 0 {
		return fmt.Errorf("engine: short input threshold must be positive, got %d", c.ShortInputThreshold)
	}
	if c.ShortInputThreshold >= c.LongInputThreshold {
		return fmt.Errorf("engine: short input threshold (%d) must be below long input threshold (%d)",
			c.ShortInputThreshold, c.LongInputThreshold)
	}
	if c.MaxBullets <= 0 {
		return fmt.Errorf("engine: max bullets must be positive, got %d", c.MaxBullets)
	}
	if strings.TrimSpace(c.AssistantName) == "" {
		return fmt.Errorf("engine: assistant name must not be blank")
	}
	return nil
}

// Output is one generated reply.
type Output struct {
	Text string
	Mode Mode
	// EstimatedTokens is a coarse word-count proxy over input plus
	// output, reproducible bit-for-bit for the same input.
	EstimatedTokens int
}

// Engine generates bounded deterministic replies. It holds no mutable
// state and is safe for concurrent use.
type Engine struct {
	cfg Config
}

// New builds an engine, rejecting invalid settings.
func New(cfg Config) (Engine, error) {
	if err := cfg.Validate(); err != nil {
		return Engine{}, err
	}
	return Engine{cfg: cfg}, nil
}

// Config returns the engine settings.
func (e Engine) Config() Config { return e.cfg }

// Generate produces a deterministic reply for input. Identical input always
// yields an identical Output; the text never exceeds MaxOutputChars runes.
// Mode selection, first match wins: blank input, long input, question mark,
// everything else.
func (e Engine) Generate(input string) Output {
	trimmed := strings.TrimSpace(input)

	var raw string
	var mode Mode
	switch {
	case trimmed == "":
		raw, mode = e.welcomeReply(), ModeEmpty
	case e.isLong(trimmed):
		raw, mode = e.summaryReply(trimmed), ModeSummary
	case strings.Contains(trimmed, "?"):
		raw, mode = e.answerReply(trimmed), ModeAnswer
	default:
		raw, mode = e.coachingReply(trimmed), ModeCoaching
	}

	text := truncateRunes(raw, e.cfg.MaxOutputChars)
	return Output{
		Text:            text,
		Mode:            mode,
		EstimatedTokens: estimateTokens(trimmed, text),
	}
}

// isLong treats input as long by rune count or by spanning many lines.
func (e Engine) isLong(trimmed string) bool {
	if utf8.RuneCountInString(trimmed) >= e.cfg.LongInputThreshold {
		return true
	}
	return strings.Count(trimmed, "\n") >= 5
}

// estimateTokens counts whitespace-delimited words of input and output.
// It is an estimate, not a tokenizer.
func estimateTokens(input, output string) int {
	return len(strings.Fields(input)) + len(strings.Fields(output))
}
