package main

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/toolindex/toolindex"
	"github.com/toolindex/toolindex/crawl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx          context.Context
	Stdout       io.Writer
	Stderr       io.Writer
	Config       toolindex.Config
	Logger       zerolog.Logger
	Orchestrator *crawl.Orchestrator
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Category CategoryCmd `cmd:"" help:"Scrape a single category"`
	All      AllCmd      `cmd:"" help:"Scrape every category listed in a CSV file"`

	Verbose bool `short:"v" help:"Enable debug logging"`
	Render  bool `help:"Fetch pages through a headless browser"`
}

// CategoryCmd is the "category" subcommand.
type CategoryCmd struct {
	Category string `arg:"" help:"Category name, slug, or full listing URL"`
	Workers  int    `short:"w" default:"4" help:"Concurrent enrichment limit"`
}

// AllCmd is the "all" subcommand.
type AllCmd struct {
	File    string `arg:"" optional:"" default:"categories.csv" help:"CSV file with a Category column"`
	Workers int    `short:"w" default:"4" help:"Concurrent enrichment limit"`
}
