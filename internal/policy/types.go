package policy

// DecisionKind is the safety verdict for an (input, output) pair.
// Values are ordered by severity: Refuse > SafeRespond > Allow.
type DecisionKind int

const (
	// Allow means the output can be returned as-is.
	Allow DecisionKind = iota
	// SafeRespond means the output should be softened or replaced with a
	// protective answer.
	SafeRespond
	// Refuse means the output must not be returned at all.
	Refuse
)

// String returns the wire/display name of the kind.
func (k DecisionKind) String() string {
	switch k {
	case Allow:
		return "allow"
	case SafeRespond:
		return "safe_respond"
	case Refuse:
		return "refuse"
	default:
		return "unknown"
	}
}

// MoreSevere reports whether k outranks other.
func (k DecisionKind) MoreSevere(other DecisionKind) bool { return k > other }

// Kinds returns all decision kinds in ascending severity order.
func Kinds() []DecisionKind {
	return []DecisionKind{Allow, SafeRespond, Refuse}
}

// Decision is the deterministic policy result for one turn.
type Decision struct {
	Kind DecisionKind
	// Category names the highest-severity rule category that fired.
	// Empty when no rule matched.
	Category string
	// Reason is a short human-readable motivation, for logging only.
	Reason string
}

// Config contains policy settings required by the evaluator.
type Config struct {
	// Strict escalates SafeRespond categories to Refuse and adds a
	// length tolerance rule on generated output.
	Strict bool
	// StrictMaxOutputRunes is the output length (in runes) above which
	// strict mode downgrades Allow to SafeRespond. Zero selects the
	// default.
	StrictMaxOutputRunes int
}

// Fixed category names used by the built-in rule table.
const (
	CategorySelfHarm      = "self_harm"
	CategoryHacking       = "hacking"
	CategorySensitiveData = "sensitive_data"
	CategoryEmptyOutput   = "empty_output"
	CategoryOutputLength  = "output_length"
)
