package render

import (
	"fmt"
	"strings"

	"github.com/aldertree/beacon/internal/pipeline"
	"github.com/aldertree/beacon/internal/policy"
)

// Renderer renders a markdown body for terminal display. Satisfied by
// glamour's TermRenderer.
type Renderer interface {
	Render(string) (string, error)
}

// DecisionBanner returns a one-line banner describing a policy decision.
func DecisionBanner(d policy.Decision) string {
	switch d.Kind {
	case policy.Refuse:
		return "refused (" + categoryOrUnknown(d) + ")"
	case policy.SafeRespond:
		return "safe-respond (" + categoryOrUnknown(d) + ")"
	default:
		return "allowed"
	}
}

// PlainTurn formats a turn for plain (non-TUI) terminal output.
func PlainTurn(t pipeline.Turn) string {
	var sb strings.Builder
	sb.WriteString(t.Output.Text)
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("[%s | mode: %s | ~%d tokens]",
		DecisionBanner(t.Decision), t.Output.Mode, t.Output.EstimatedTokens))
	return sb.String()
}

// Body runs text through the renderer, falling back to the raw text when
// rendering fails.
func Body(text string, r Renderer) string {
	if r == nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}

func categoryOrUnknown(d policy.Decision) string {
	if strings.TrimSpace(d.Category) == "" {
		return "uncategorized"
	}
	return d.Category
}
