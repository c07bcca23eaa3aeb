package fs

import (
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/toolindex/toolindex"
)

// csvHeader is the fixed category export schema.
var csvHeader = []string{
	"slug",
	"title_en",
	"title_es",
	"short_description_en",
	"short_description_es",
	"category",
	"app_type",
	"pricing_en",
	"pricing_es",
	"image_url",
	"redirect_url",
	"tags_en",
	"tags_es",
	"search_index_en",
	"search_index_es",
}

// WriteCategoryCSV writes the per-category export, fully overwriting any
// prior CSV for the category. Rows are flattened projections of each
// record's en/es translations plus identifying fields.
func (s *Store) WriteCategoryCSV(category string, records []*toolindex.ToolRecord) error {
	path := filepath.Join(s.dataDir, category+"_tools.csv")

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return err
	}

	for _, record := range records {
		en := record.Translations["en"]
		es := record.Translations["es"]
		row := []string{
			record.Slug,
			en.Title,
			es.Title,
			en.ShortDescription,
			es.ShortDescription,
			en.Category,
			en.AppType,
			en.PricingInfo,
			es.PricingInfo,
			record.ImageURL,
			record.RedirectURL,
			en.Tags,
			es.Tags,
			record.SearchIndexEn,
			record.SearchIndexEs,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
