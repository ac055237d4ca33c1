package main

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lox/pokertexter/internal/lookuptable"
	"github.com/lox/pokertexter/internal/texter"
	"github.com/lox/pokertexter/internal/tui"
)

// AskCmd answers queries from lookup tables on disk, without a server.
type AskCmd struct {
	Query     []string `arg:"" optional:"" help:"Query such as 'ace king suited 3'; omit for an interactive prompt"`
	TablesDir string   `short:"d" help:"Directory holding lookup tables (overrides config)"`
}

func (c *AskCmd) Run(g *Globals) error {
	cfg, logger, err := g.setup()
	if err != nil {
		return err
	}

	dir := cfg.Server.TablesDir
	if c.TablesDir != "" {
		dir = c.TablesDir
	}
	store, err := lookuptable.Load(dir)
	if err != nil {
		return err
	}
	logger.Debug("Loaded lookup tables", "dir", dir, "opponents", store.Opponents())
	responder := texter.NewResponder(store)

	if len(c.Query) == 0 {
		_, err := tea.NewProgram(tui.NewAskModel(responder.Reply), tea.WithOutput(g.out())).Run()
		return err
	}

	text := strings.Join(c.Query, " ")
	if texter.IsExamplesRequest(text) {
		_, err := fmt.Fprintln(g.out(), texter.Examples)
		return err
	}

	ans, err := responder.Answer(text)
	var userErr texter.Error
	if errors.As(err, &userErr) {
		_, err = fmt.Fprintln(g.out(), tui.ErrorStyle.Render(userErr.Error()))
		return err
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(g.out(), tui.RenderAnswer(ans))
	return err
}
