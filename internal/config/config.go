// Package config loads pokertexter.hcl.
package config

import (
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/pokertexter/internal/equity"
	"github.com/lox/pokertexter/internal/oracle"
)

// DefaultFile is the config file read when none is given.
const DefaultFile = "pokertexter.hcl"

// Config is the complete configuration file.
type Config struct {
	LogLevel string            `hcl:"log_level,optional"`
	Generate *GenerateSettings `hcl:"generate,block"`
	Server   *ServerSettings   `hcl:"server,block"`
}

// GenerateSettings controls table generation.
type GenerateSettings struct {
	Trials    int    `hcl:"trials,optional"`
	Workers   int    `hcl:"workers,optional"`
	Seed      int64  `hcl:"seed,optional"`
	OutputDir string `hcl:"output_dir,optional"`
	Oracle    string `hcl:"oracle,optional"`
}

// ServerSettings controls the lookup server.
type ServerSettings struct {
	Address     string `hcl:"address,optional"`
	Port        int    `hcl:"port,optional"`
	TablesDir   string `hcl:"tables_dir,optional"`
	IdleTimeout string `hcl:"idle_timeout,optional"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads filename. A missing file yields Default().
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	if c.Generate == nil {
		c.Generate = &GenerateSettings{}
	}
	if c.Generate.Trials == 0 {
		c.Generate.Trials = equity.DefaultTrials
	}
	if c.Generate.OutputDir == "" {
		c.Generate.OutputDir = "lookup-tables"
	}
	if c.Generate.Oracle == "" {
		c.Generate.Oracle = oracle.NameNative
	}

	if c.Server == nil {
		c.Server = &ServerSettings{}
	}
	if c.Server.Address == "" {
		c.Server.Address = "localhost"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 5000
	}
	if c.Server.TablesDir == "" {
		c.Server.TablesDir = c.Generate.OutputDir
	}
	if c.Server.IdleTimeout == "" {
		c.Server.IdleTimeout = "60s"
	}
}

// Validate checks values that defaults cannot repair.
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	if err := equity.ValidateTrials(c.Generate.Trials); err != nil {
		return err
	}
	if c.Generate.Workers < 0 {
		return fmt.Errorf("generate: workers must not be negative, got %d", c.Generate.Workers)
	}
	if !slices.Contains(oracle.Names(), c.Generate.Oracle) {
		return fmt.Errorf("generate: unknown oracle %q (available: %v)", c.Generate.Oracle, oracle.Names())
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if _, err := c.IdleTimeout(); err != nil {
		return err
	}
	return nil
}

// ServerAddress returns host:port for the lookup server.
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// IdleTimeout parses server.idle_timeout.
func (c *Config) IdleTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.Server.IdleTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid idle_timeout %q: %w", c.Server.IdleTimeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("idle_timeout must be positive, got %s", d)
	}
	return d, nil
}
