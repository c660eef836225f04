package policy

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultStrictMaxOutputRunes is the strict-mode output length tolerance
// applied when Config.StrictMaxOutputRunes is zero.
const DefaultStrictMaxOutputRunes = 10000

// cardLikeRe approximates payment-card digit runs, optionally grouped by
// spaces or dashes. It is a structural heuristic, not a validator.
var cardLikeRe = regexp.MustCompile(`\b(?:\d[ -]*?){13,16}\b`)

// Evaluator performs pure, deterministic safety decisions.
type Evaluator struct {
	cfg        Config
	categories []Category
}

// NewEvaluator builds a side-effect free evaluator over the built-in
// rule table.
func NewEvaluator(cfg Config) (Evaluator, error) {
	return NewEvaluatorWithCategories(cfg, DefaultCategories())
}

// NewEvaluatorWithCategories builds an evaluator over a custom rule table.
// Phrases are normalized (lower-cased, trimmed) once here; empty phrases are
// dropped. Category order is preserved and fixes the severity tie-break.
func NewEvaluatorWithCategories(cfg Config, categories []Category) (Evaluator, error) {
	if cfg.StrictMaxOutputRunes == 0 {
		cfg.StrictMaxOutputRunes = DefaultStrictMaxOutputRunes
	}
	if err := cfg.Validate(); err != nil {
		return Evaluator{}, err
	}
	if err := validateCategories(categories); err != nil {
		return Evaluator{}, err
	}

	normalized := make([]Category, 0, len(categories))
	for _, cat := range categories {
		phrases := make([]string, 0, len(cat.Phrases))
		for _, phrase := range cat.Phrases {
			phrase = strings.ToLower(strings.TrimSpace(phrase))
			if phrase == "" {
				continue
			}
			phrases = append(phrases, phrase)
		}
		normalized = append(normalized, Category{
			Name:     strings.TrimSpace(cat.Name),
			Severity: cat.Severity,
			Phrases:  phrases,
		})
	}

	return Evaluator{cfg: cfg, categories: normalized}, nil
}

// Evaluate inspects a user input and a generated output and returns one
// verdict: the highest severity among all matching categories, Allow when
// nothing matches. Identical arguments always yield an identical Decision.
func (e Evaluator) Evaluate(input, output string) Decision {
	if strings.TrimSpace(output) == "" {
		return Decision{Kind: Refuse, Category: CategoryEmptyOutput, Reason: "empty or blank output"}
	}

	loweredInput := strings.ToLower(strings.TrimSpace(input))
	loweredOutput := strings.ToLower(strings.TrimSpace(output))

	best := Decision{Kind: Allow, Reason: "no rule matched"}
	matched := false

	for _, cat := range e.categories {
		if !matchesAny(cat.Phrases, loweredInput, loweredOutput) {
			continue
		}
		kind := e.escalate(cat.Severity)
		if !matched || kind.MoreSevere(best.Kind) {
			best = Decision{Kind: kind, Category: cat.Name, Reason: "matched " + cat.Name + " phrase"}
			matched = true
		}
	}

	if cardLikeRe.MatchString(input) || cardLikeRe.MatchString(output) {
		kind := e.escalate(SafeRespond)
		if !matched || kind.MoreSevere(best.Kind) {
			best = Decision{Kind: kind, Category: CategorySensitiveData, Reason: "card-like digit sequence"}
			matched = true
		}
	}

	if e.cfg.Strict && best.Kind == Allow && utf8.RuneCountInString(output) > e.cfg.StrictMaxOutputRunes {
		return Decision{Kind: SafeRespond, Category: CategoryOutputLength, Reason: "output exceeds strict length tolerance"}
	}

	return best
}

// escalate applies the strict-mode augmentation: SafeRespond becomes Refuse.
// Strict mode never reduces severity.
func (e Evaluator) escalate(kind DecisionKind) DecisionKind {
	if e.cfg.Strict && kind == SafeRespond {
		return Refuse
	}
	return kind
}

// Validate rejects malformed policy settings at construction time.
func (c Config) Validate() error {
	if c.StrictMaxOutputRunes < 0 {
		return fmt.Errorf("policy: strict max output runes must not be negative, got %d", c.StrictMaxOutputRunes)
	}
	return nil
}

func matchesAny(phrases []string, texts ...string) bool {
	for _, phrase := range phrases {
		for _, text := range texts {
			if strings.Contains(text, phrase) {
				return true
			}
		}
	}
	return false
}
