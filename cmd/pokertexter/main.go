package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/lox/pokertexter/cmd/pokertexter/shared"
	"github.com/lox/pokertexter/internal/config"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command.
type Globals struct {
	Config   string `short:"c" default:"${config_file}" help:"Path to HCL configuration file"`
	LogLevel string `short:"l" help:"Log level: debug, info, warn or error (overrides config)"`
	NoColor  bool   `help:"Disable colored output"`

	stdout io.Writer
	stderr io.Writer
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Generate GenerateCmd      `cmd:"" help:"Simulate every starting hand and write a lookup table"`
	Equity   EquityCmd        `cmd:"" help:"Estimate equity for one starting hand"`
	Ask      AskCmd           `cmd:"" help:"Answer a text query from lookup tables"`
	Serve    ServeCmd         `cmd:"" help:"Answer text queries over HTTP"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pokertexter"),
		kong.Description("Preflop win, tie and expected gain for every starting hand"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version":     version,
			"config_file": config.DefaultFile,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

// setup loads the config file, applies global overrides and builds the logger.
func (g *Globals) setup() (*config.Config, *log.Logger, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, nil, err
	}
	if g.LogLevel != "" {
		cfg.LogLevel = g.LogLevel
		if err := cfg.Validate(); err != nil {
			return nil, nil, err
		}
	}

	logger, err := shared.SetupLogger(g.errOut(), cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	if g.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
		logger.SetColorProfile(termenv.Ascii)
	}
	return cfg, logger, nil
}

func (g *Globals) out() io.Writer {
	if g.stdout == nil {
		return os.Stdout
	}
	return g.stdout
}

func (g *Globals) errOut() io.Writer {
	if g.stderr == nil {
		return os.Stderr
	}
	return g.stderr
}
