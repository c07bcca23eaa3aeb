package toolindex

// RecordStore persists tool records keyed by slug and exports per-category
// CSV projections.
//
// The store is the resume keystore: Save is write-once and an existing
// record is immutable truth, so re-running a category never overwrites
// previously persisted tools. Implementations must be safe for concurrent
// use by the enrichment worker pool.
type RecordStore interface {
	// Load retrieves a persisted record by slug.
	// Returns ENOTFOUND if no record exists.
	Load(slug string) (*ToolRecord, error)

	// Save persists a record under its slug. Saving a slug that already
	// exists is a no-op: the existing record wins.
	Save(record *ToolRecord) error

	// Seen reports whether a record for slug has been persisted.
	Seen(slug string) bool

	// WriteCategoryCSV writes the category export for the given records,
	// fully overwriting any prior CSV for that category.
	WriteCategoryCSV(category string, records []*ToolRecord) error
}
