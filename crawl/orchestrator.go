package crawl

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/toolindex/toolindex"
	tgq "github.com/toolindex/toolindex/goquery"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers is the default enrichment worker pool size.
const DefaultWorkers = 4

// Orchestrator runs whole categories: listing, bounded-concurrency
// enrichment of unseen tools, per-completion persistence, and the final
// CSV export assembled from disk.
type Orchestrator struct {
	Paginator *Paginator
	Enricher  *Enricher
	Store     toolindex.RecordStore
	Workers   int
	Logger    zerolog.Logger
}

// RunCategory processes one category end to end. It returns false only
// when the listing yields zero tools; individual per-tool failures are
// logged and excluded without failing the run.
func (o *Orchestrator) RunCategory(ctx context.Context, categoryURL string) (bool, error) {
	logger := o.Logger.With().
		Str("run_id", uuid.NewString()).
		Str("category", categoryURL).
		Logger()

	logger.Info().Msg("starting category")

	refs, err := o.Paginator.ListAllTools(ctx, categoryURL)
	if err != nil {
		return false, err
	}
	if len(refs) == 0 {
		logger.Warn().Msg("category listed zero tools")
		return false, nil
	}

	// Cross-page dedup by identity; the paginator only dedupes per page.
	refs = dedupeBySlug(refs)

	var toProcess []toolindex.ToolReference
	for _, ref := range refs {
		if !o.Store.Seen(ref.Slug) {
			toProcess = append(toProcess, ref)
		}
	}

	logger.Info().
		Int("found", len(refs)).
		Int("to_process", len(toProcess)).
		Int("already_seen", len(refs)-len(toProcess)).
		Msg("partitioned tools")

	if len(toProcess) > 0 {
		o.enrichAll(ctx, logger, toProcess)
	}

	records := o.collectRecords(refs)

	category := tgq.SlugFromURL(categoryURL)
	if err := o.Store.WriteCategoryCSV(category, records); err != nil {
		return true, err
	}

	logger.Info().
		Int("records", len(records)).
		Str("category_name", category).
		Msg("category complete")

	return true, nil
}

// enrichAll fans the unseen tools out over the worker pool. Each task's
// outcome is independent: a failure is logged with its slug and never
// aborts sibling tasks. Successful records are persisted as each task
// completes, not batched at the end.
func (o *Orchestrator) enrichAll(ctx context.Context, logger zerolog.Logger, refs []toolindex.ToolReference) {
	workers := o.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	var g errgroup.Group
	g.SetLimit(workers)

	for _, ref := range refs {
		ref := ref
		g.Go(func() error {
			record, err := o.Enricher.EnrichTool(ctx, ref)
			if err != nil {
				logger.Error().Str("slug", ref.Slug).Err(err).Msg("tool enrichment failed")
				return nil
			}
			if err := o.Store.Save(record); err != nil {
				logger.Error().Str("slug", ref.Slug).Err(err).Msg("failed to persist record")
				return nil
			}
			logger.Info().Str("slug", ref.Slug).Msg("saved tool record")
			return nil
		})
	}

	_ = g.Wait()
}

// collectRecords re-reads every listed tool's persisted record from disk,
// including records that predate this run, for the CSV export.
func (o *Orchestrator) collectRecords(refs []toolindex.ToolReference) []*toolindex.ToolRecord {
	var records []*toolindex.ToolRecord
	for _, ref := range refs {
		record, err := o.Store.Load(ref.Slug)
		if err != nil {
			continue
		}
		records = append(records, record)
	}
	return records
}
