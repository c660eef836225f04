package policy

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Category is one phrase-match rule group. A phrase matching either the
// normalized input or output yields Severity as the candidate verdict.
// Slice order fixes the tie-break between categories of equal severity.
type Category struct {
	Name     string       `yaml:"name"`
	Severity DecisionKind `yaml:"severity"`
	Phrases  []string     `yaml:"phrases"`
}

// UnmarshalYAML decodes a severity given by name (allow, safe_respond, refuse).
func (k *DecisionKind) UnmarshalYAML(value *yaml.Node) error {
	switch strings.ToLower(strings.TrimSpace(value.Value)) {
	case "allow":
		*k = Allow
	case "safe_respond":
		*k = SafeRespond
	case "refuse":
		*k = Refuse
	default:
		return fmt.Errorf("policy: unknown severity %q", value.Value)
	}
	return nil
}

// MarshalYAML encodes a severity by name.
func (k DecisionKind) MarshalYAML() (any, error) {
	return k.String(), nil
}

// DefaultCategories returns the built-in rule table. The sensitive-data
// check is structural (digit runs) and lives in the evaluator, not here.
func DefaultCategories() []Category {
	return []Category{
		{
			Name:     CategorySelfHarm,
			Severity: SafeRespond,
			Phrases: []string{
				"voglio uccidermi",
				"farla finita",
				"i want to kill myself",
				"end my life",
				"hurt myself",
			},
		},
		{
			Name:     CategoryHacking,
			Severity: Refuse,
			Phrases: []string{
				"ddos",
				"denial-of-service",
				"sql injection",
				"come bucare",
				"exploit 0day",
				"zero-day",
				"ransomware",
			},
		},
	}
}

type ruleFile struct {
	Categories []Category `yaml:"categories"`
}

// LoadCategories parses a YAML rule table. Categories keep the file order,
// which also fixes the severity tie-break order.
func LoadCategories(data []byte) ([]Category, error) {
	var rf ruleFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("policy: decode rule table: %w", err)
	}
	if len(rf.Categories) == 0 {
		return nil, fmt.Errorf("policy: rule table has no categories")
	}
	if err := validateCategories(rf.Categories); err != nil {
		return nil, err
	}
	return rf.Categories, nil
}

func validateCategories(categories []Category) error {
	seen := make(map[string]struct{}, len(categories))
	for i, cat := range categories {
		name := strings.TrimSpace(cat.Name)
		if name == "" {
			return fmt.Errorf("policy: category %d has no name", i)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("policy: duplicate category %q", name)
		}
		seen[name] = struct{}{}
		if len(cat.Phrases) == 0 {
			return fmt.Errorf("policy: category %q has no phrases", name)
		}
	}
	return nil
}
