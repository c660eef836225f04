package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/aldertree/beacon/internal/command"
	"github.com/aldertree/beacon/internal/config"
	"github.com/aldertree/beacon/internal/pipeline"
	"github.com/aldertree/beacon/internal/render"
	"github.com/aldertree/beacon/internal/session"
)

const (
	textareaHeight = 3
	footerHeight   = 1
)

var footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

type turnMsg pipeline.Turn

type cmdResultMsg string

type model struct {
	pipe     *pipeline.Pipeline
	sess     *session.Session
	registry *command.Registry
	env      command.Env

	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model
	renderer render.Renderer

	transcript []string
	thinking   bool
	ready      bool
	width      int
}

func newChatModel(cfg *config.Config, pipe *pipeline.Pipeline, sess *session.Session, registry *command.Registry) model {
	ta := textarea.New()
	ta.Placeholder = "Send a message..."
	ta.Prompt = "| "
	ta.SetHeight(textareaHeight)
	ta.ShowLineNumbers = false
	ta.KeyMap.InsertNewline.SetEnabled(false)
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(80))
	var r render.Renderer
	if err == nil {
		r = renderer
	}

	return model{
		pipe:     pipe,
		sess:     sess,
		registry: registry,
		env: command.Env{
			Session:      sess,
			Config:       cfg,
			ListCommands: registry.List,
		},
		textarea:   ta,
		spinner:    sp,
		renderer:   r,
		transcript: []string{fmt.Sprintf("%s ready. Type /help for commands.", cfg.Engine.AssistantName)},
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.spinner.Tick)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		taCmd tea.Cmd
		vpCmd tea.Cmd
		spCmd tea.Cmd
	)

	m.textarea, taCmd = m.textarea.Update(msg)
	m.viewport, vpCmd = m.viewport.Update(msg)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.textarea.SetWidth(msg.Width)
		vpHeight := msg.Height - textareaHeight - footerHeight - 2
		if vpHeight < 1 {
			vpHeight = 1
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = vpHeight
		}
		m.refreshViewport()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		}

	case turnMsg:
		turn := pipeline.Turn(msg)
		m.sess.Append(turn)
		body, banner := renderTurnParts(turn, m.renderer)
		m.transcript = append(m.transcript, body, bannerStyle(turn.Decision.Kind).Render("["+banner+"]"))
		m.thinking = false
		m.refreshViewport()

	case cmdResultMsg:
		m.transcript = append(m.transcript, render.Body(string(msg), m.renderer))
		m.refreshViewport()

	case spinner.TickMsg:
		if m.thinking {
			m.spinner, spCmd = m.spinner.Update(msg)
		}
	}

	return m, tea.Batch(taCmd, vpCmd, spCmd)
}

func (m model) submit() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.textarea.Value())
	if input == "" {
		return m, nil
	}
	if isQuit(input) {
		return m, tea.Quit
	}

	m.textarea.Reset()
	m.transcript = append(m.transcript, userLineStyle.Render("> "+input))

	if cmd, args, ok := m.registry.Lookup(input); ok {
		result := cmd.Execute(context.Background(), args, m.env)
		m.refreshViewport()
		return m, func() tea.Msg { return cmdResultMsg(result.Content) }
	}

	m.thinking = true
	m.refreshViewport()
	pipe := m.pipe
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		return turnMsg(pipe.HandleTurn(context.Background(), input))
	})
}

func (m *model) refreshViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(strings.Join(m.transcript, "\n\n"))
	m.viewport.GotoBottom()
}

func (m model) View() string {
	var status string
	if m.thinking {
		status = m.spinner.View() + " thinking"
	}

	footer := footerStyle.Render("Enter Send • /stats Stats • /reset_stats Reset • Esc Quit")

	return fmt.Sprintf("%s\n\n%s\n%s %s",
		m.viewport.View(),
		m.textarea.View(),
		footer,
		status,
	)
}

func runChatTUI(cfg *config.Config, pipe *pipeline.Pipeline, sess *session.Session, registry *command.Registry) error {
	p := tea.NewProgram(newChatModel(cfg, pipe, sess, registry), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("chat ui: %w", err)
	}
	return nil
}
