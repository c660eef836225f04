package commands

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/aldertree/beacon/internal/pipeline"
	"github.com/aldertree/beacon/internal/policy"
	"github.com/aldertree/beacon/internal/render"
)

var (
	allowBannerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	safeBannerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	refuseBannerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	userLineStyle     = lipgloss.NewStyle().Bold(true)
)

// renderTurnParts renders the markdown body and the decision banner for one
// turn. Rendering failures fall back to the raw text.
func renderTurnParts(turn pipeline.Turn, r render.Renderer) (body, banner string) {
	body = render.Body(turn.Output.Text, r)
	banner = render.DecisionBanner(turn.Decision)
	return body, banner
}

func bannerStyle(kind policy.DecisionKind) lipgloss.Style {
	switch kind {
	case policy.Refuse:
		return refuseBannerStyle
	case policy.SafeRespond:
		return safeBannerStyle
	default:
		return allowBannerStyle
	}
}
