package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lox/pokertexter/internal/lookuptable"
)

// ProgressMsg reports one finished class to the progress view.
type ProgressMsg lookuptable.Progress

// DoneMsg ends the progress view.
type DoneMsg struct {
	Path string
	Err  error
}

// GenerateModel renders table generation as a progress bar.
type GenerateModel struct {
	bar       progress.Model
	opponents int
	cancel    context.CancelFunc

	last     lookuptable.Progress
	path     string
	err      error
	finished bool
	quitting bool
}

// NewGenerateModel creates a progress view for one table. cancel is called
// when the user interrupts.
func NewGenerateModel(opponents int, cancel context.CancelFunc) *GenerateModel {
	return &GenerateModel{
		bar:       progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		opponents: opponents,
		cancel:    cancel,
	}
}

// Init implements tea.Model.
func (m *GenerateModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *GenerateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ProgressMsg:
		m.last = lookuptable.Progress(msg)

	case DoneMsg:
		m.finished = true
		m.path = msg.Path
		m.err = msg.Err
		return m, tea.Quit

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			m.quitting = true
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.bar.Width = min(max(msg.Width-20, 10), 60)
	}
	return m, nil
}

// Fraction returns how much of the table is done.
func (m *GenerateModel) Fraction() float64 {
	if m.last.Total == 0 {
		return 0
	}
	return float64(m.last.Done) / float64(m.last.Total)
}

// View implements tea.Model.
func (m *GenerateModel) View() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(fmt.Sprintf("lookup-table-%d", m.opponents)))
	b.WriteString("\n\n")
	b.WriteString(m.bar.ViewAs(m.Fraction()))
	b.WriteString("\n")

	switch {
	case m.finished && m.err != nil:
		b.WriteString(ErrorStyle.Render("Failed: " + m.err.Error()))
	case m.finished:
		b.WriteString(WinStyle.Render("Wrote " + m.path))
	case m.quitting:
		b.WriteString(InfoStyle.Render("Cancelling..."))
	case m.last.Total > 0:
		b.WriteString(fmt.Sprintf("Simulated %d / %d ", m.last.Done, m.last.Total))
		b.WriteString(HandStyle.Render(m.last.Class.String()))
		b.WriteString(InfoStyle.Render(" " + m.last.Elapsed.Round(time.Second).String()))
	default:
		b.WriteString(InfoStyle.Render("Starting..."))
	}
	b.WriteString("\n")
	return b.String()
}

// GenerateFunc produces a table, reporting each class through onProgress.
type GenerateFunc func(ctx context.Context, onProgress lookuptable.ProgressFunc) (string, error)

// RunGenerate runs generate behind the progress view and returns its result.
// Interrupting the view cancels generate and waits for it to return.
func RunGenerate(ctx context.Context, opponents int, out io.Writer, generate GenerateFunc, opts ...tea.ProgramOption) (string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts = append([]tea.ProgramOption{tea.WithOutput(out)}, opts...)
	p := tea.NewProgram(NewGenerateModel(opponents, cancel), opts...)

	type result struct {
		path string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		path, err := generate(ctx, func(pr lookuptable.Progress) {
			p.Send(ProgressMsg(pr))
		})
		done <- result{path, err}
		p.Send(DoneMsg{Path: path, Err: err})
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		<-done
		return "", fmt.Errorf("progress display: %w", err)
	}
	res := <-done
	return res.path, res.err
}

// LogProgress reports each class as a log line.
func LogProgress(logger *log.Logger) lookuptable.ProgressFunc {
	return func(p lookuptable.Progress) {
		logger.Info(fmt.Sprintf("Simulated %d / %d", p.Done, p.Total),
			"class", p.Class.String(),
			"elapsed", p.Elapsed.Round(time.Millisecond))
	}
}

// PrintProgress writes one plain "Simulated N / 169" line per class.
func PrintProgress(w io.Writer) lookuptable.ProgressFunc {
	return func(p lookuptable.Progress) {
		fmt.Fprintf(w, "Simulated %d / %d\n", p.Done, p.Total)
	}
}
