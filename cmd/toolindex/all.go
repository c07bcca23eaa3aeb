package main

import (
	"fmt"

	"github.com/toolindex/toolindex"
	"github.com/toolindex/toolindex/crawl"
)

// Run executes the all command.
func (c *AllCmd) Run(deps *Dependencies) error {
	categories, err := crawl.LoadCategories(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", toolindex.ErrorMessage(err))
		if toolindex.ErrorCode(err) == toolindex.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "Hint: Provide a CSV file with a Category column of names or listing URLs\n")
		}
		return err
	}
	if len(categories) == 0 {
		return fmt.Errorf("no categories found in %q", c.File)
	}

	if c.Workers > 0 {
		deps.Orchestrator.Workers = c.Workers
	}

	fmt.Fprintf(deps.Stdout, "Scraping %d categories\n", len(categories))

	summary := deps.Orchestrator.RunAll(deps.Ctx, deps.Config.BaseURL, categories)

	fmt.Fprintf(deps.Stdout, "Done: %d/%d categories succeeded\n", summary.Succeeded(), len(summary.Results))
	for _, category := range summary.Failed() {
		fmt.Fprintf(deps.Stdout, "  failed: %s\n", category)
	}

	if summary.Succeeded() == 0 {
		return fmt.Errorf("all %d categories failed", len(summary.Results))
	}
	return nil
}
