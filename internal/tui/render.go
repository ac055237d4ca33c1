package tui

import (
	"fmt"
	"strings"

	"github.com/lox/pokertexter/internal/equity"
	"github.com/lox/pokertexter/internal/handclass"
	"github.com/lox/pokertexter/internal/texter"
)

// RenderStats formats a fresh simulation for the equity command.
func RenderStats(class handclass.Class, opponents int, stats equity.Stats) string {
	lo, hi := stats.ConfidenceInterval()

	var b strings.Builder
	b.WriteString(HeaderStyle.Render(fmt.Sprintf("%s vs %d", class, opponents)))
	b.WriteString(" ")
	b.WriteString(InfoStyle.Render(fmt.Sprintf("%s, %d trials", class.Category(), stats.Trials)))
	b.WriteString("\n")
	row(&b, "Win", WinStyle.Render(fmt.Sprintf("%.2f%%", stats.WinProbability()*100))+
		InfoStyle.Render(fmt.Sprintf("  95%% CI %.2f%% - %.2f%%", lo*100, hi*100)))
	row(&b, "Tie", TieStyle.Render(fmt.Sprintf("%.2f%%", stats.TieProbability()*100)))
	row(&b, "Lose", LossStyle.Render(fmt.Sprintf("%.2f%%", stats.LossProbability()*100)))
	row(&b, "Equity", fmt.Sprintf("%.2f%%", stats.Equity()*100))
	row(&b, "Unit gain", GainStyle.Render(fmt.Sprintf("%+.4f", stats.ExpectedGain(opponents))))
	return b.String()
}

// RenderAnswer formats a table lookup for the ask command.
func RenderAnswer(a texter.Answer) string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(fmt.Sprintf("%s vs %d", a.Query.Class, a.Query.Opponents)))
	b.WriteString("\n")
	for _, line := range strings.Split(a.String(), "\n") {
		label, value, _ := strings.Cut(line, ": ")
		row(&b, label, HandStyle.Render(value))
	}
	return b.String()
}

func row(b *strings.Builder, label, value string) {
	b.WriteString(LabelStyle.Render(label))
	b.WriteString(value)
	b.WriteString("\n")
}
