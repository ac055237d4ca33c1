package main

import (
	"context"
	"time"

	"github.com/lox/pokertexter/cmd/pokertexter/shared"
	"github.com/lox/pokertexter/internal/lookuptable"
	"github.com/lox/pokertexter/internal/server"
	"github.com/lox/pokertexter/internal/texter"
)

// ServeCmd answers SMS webhooks and WebSocket queries from lookup tables.
type ServeCmd struct {
	Addr      string `short:"a" help:"Address to bind to, host:port (overrides config)"`
	TablesDir string `short:"d" help:"Directory holding lookup tables (overrides config)"`
}

func (c *ServeCmd) Run(g *Globals) error {
	cfg, logger, err := g.setup()
	if err != nil {
		return err
	}

	addr := cfg.ServerAddress()
	if c.Addr != "" {
		addr = c.Addr
	}
	dir := cfg.Server.TablesDir
	if c.TablesDir != "" {
		dir = c.TablesDir
	}
	idle, err := cfg.IdleTimeout()
	if err != nil {
		return err
	}

	store, err := lookuptable.Load(dir)
	if err != nil {
		return err
	}
	logger.Info("Loaded lookup tables", "dir", dir, "opponents", store.Opponents())

	s := server.NewServer(addr, texter.NewResponder(store), logger, server.WithIdleTimeout(idle))

	// Setup graceful shutdown
	ctx, cancel := shared.SetupSignalHandler(context.Background(), logger)
	defer cancel()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- s.Start()
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	case err := <-serverErr:
		return err
	}
}
