package crawl

import "context"

// CategoryResult is the outcome of one category in a multi-category run.
type CategoryResult struct {
	Category string
	OK       bool
	Err      error
}

// Summary aggregates a multi-category run.
type Summary struct {
	Results []CategoryResult
}

// Succeeded counts successful categories.
func (s *Summary) Succeeded() int {
	n := 0
	for _, r := range s.Results {
		if r.OK {
			n++
		}
	}
	return n
}

// Failed returns the categories that did not succeed.
func (s *Summary) Failed() []string {
	var failed []string
	for _, r := range s.Results {
		if !r.OK {
			failed = append(failed, r.Category)
		}
	}
	return failed
}

// RunAll drives the orchestrator over multiple categories strictly
// sequentially: each category completes, including its CSV write, before
// the next begins. A failing category is recorded and never stops the run.
func (o *Orchestrator) RunAll(ctx context.Context, baseURL string, categories []string) *Summary {
	summary := &Summary{}

	for i, input := range categories {
		categoryURL := CategoryURL(baseURL, input)

		o.Logger.Info().
			Int("index", i+1).
			Int("total", len(categories)).
			Str("category", input).
			Str("url", categoryURL).
			Msg("processing category")

		ok, err := o.RunCategory(ctx, categoryURL)
		if err != nil {
			o.Logger.Error().Str("category", input).Err(err).Msg("category run failed")
			ok = false
		}
		summary.Results = append(summary.Results, CategoryResult{Category: input, OK: ok, Err: err})

		if ctx.Err() != nil {
			break
		}
	}

	failed := summary.Failed()
	o.Logger.Info().
		Int("total", len(summary.Results)).
		Int("succeeded", summary.Succeeded()).
		Int("failed", len(failed)).
		Msg("run summary")
	for _, category := range failed {
		o.Logger.Warn().Str("category", category).Msg("category failed")
	}

	return summary
}
