package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ReplyFunc answers one query. ok is false for internal failures.
type ReplyFunc func(query string) (reply string, ok bool)

// AskModel is an interactive prompt: queries go in at the bottom and the
// conversation scrolls above.
type AskModel struct {
	reply    ReplyFunc
	input    textinput.Model
	log      viewport.Model
	history  []string
	quitting bool
}

// NewAskModel creates the prompt.
func NewAskModel(reply ReplyFunc) *AskModel {
	ti := textinput.New()
	ti.Placeholder = "ace king suited 3"
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 60
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.Prompt = "> "

	vp := viewport.New(60, 12)
	return &AskModel{
		reply: reply,
		input: ti,
		log:   vp,
		history: []string{
			InfoStyle.Render("Send RANK RANK SUITING OTHER_PLAYERS, `examples`, or ctrl+c to quit."),
		},
	}
}

// History returns the rendered conversation lines.
func (m *AskModel) History() []string {
	return m.history
}

// Init implements tea.Model.
func (m *AskModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *AskModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.log.Width = msg.Width
		m.log.Height = max(msg.Height-3, 1)
		m.input.Width = max(msg.Width-4, 10)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			query := strings.TrimSpace(m.input.Value())
			if query != "" {
				m.ask(query)
			}
			m.input.SetValue("")
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.log, cmd = m.log.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *AskModel) ask(query string) {
	reply, ok := m.reply(query)
	style := HandStyle
	if !ok || strings.HasPrefix(reply, "Error!") {
		style = ErrorStyle
	}
	m.history = append(m.history, "> "+query, style.Render(reply), "")
	m.log.SetContent(strings.Join(m.history, "\n"))
	m.log.GotoBottom()
}

// View implements tea.Model.
func (m *AskModel) View() string {
	if m.quitting {
		return ""
	}
	m.log.SetContent(strings.Join(m.history, "\n"))
	return m.log.View() + "\n" + m.input.View()
}
