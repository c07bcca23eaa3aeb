package mock

import "github.com/toolindex/toolindex"

var _ toolindex.RecordStore = (*RecordStore)(nil)

// RecordStore is a mock implementation of toolindex.RecordStore.
type RecordStore struct {
	LoadFn             func(slug string) (*toolindex.ToolRecord, error)
	SaveFn             func(record *toolindex.ToolRecord) error
	SeenFn             func(slug string) bool
	WriteCategoryCSVFn func(category string, records []*toolindex.ToolRecord) error
}

func (s *RecordStore) Load(slug string) (*toolindex.ToolRecord, error) {
	return s.LoadFn(slug)
}

func (s *RecordStore) Save(record *toolindex.ToolRecord) error {
	return s.SaveFn(record)
}

func (s *RecordStore) Seen(slug string) bool {
	return s.SeenFn(slug)
}

func (s *RecordStore) WriteCategoryCSV(category string, records []*toolindex.ToolRecord) error {
	return s.WriteCategoryCSVFn(category, records)
}
