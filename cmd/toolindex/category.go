package main

import (
	"fmt"

	"github.com/toolindex/toolindex"
	"github.com/toolindex/toolindex/crawl"
)

// Run executes the category command.
func (c *CategoryCmd) Run(deps *Dependencies) error {
	if c.Workers > 0 {
		deps.Orchestrator.Workers = c.Workers
	}

	categoryURL := crawl.CategoryURL(deps.Config.BaseURL, c.Category)
	fmt.Fprintf(deps.Stdout, "Scraping %s\n", categoryURL)

	ok, err := deps.Orchestrator.RunCategory(deps.Ctx, categoryURL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", toolindex.ErrorMessage(err))
		return err
	}
	if !ok {
		return fmt.Errorf("category %q yielded no tools", c.Category)
	}

	fmt.Fprintf(deps.Stdout, "Done. Records in %s, CSV in %s\n", deps.Config.ToolsDir, deps.Config.DataDir)
	return nil
}
