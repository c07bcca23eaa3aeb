package toolindex

// Languages is the full set of locales carried by every persisted record.
var Languages = []string{"es", "pt", "en", "fr", "de"}

// TargetLanguages is the set of locales produced by translation from the
// English base entry.
var TargetLanguages = []string{"es", "pt", "fr", "de"}

// DefaultTechnicalRequirements is the fixed requirements string stamped on
// every new record.
const DefaultTechnicalRequirements = "Navegador web moderno, conexión a internet estable"

// ToolReference identifies a tool discovered on a category listing page.
// It is ephemeral: the paginator produces it and the enrichment pipeline
// consumes it, but it is never persisted directly.
type ToolReference struct {
	Name             string `json:"name"`
	URL              string `json:"url"`
	Slug             string `json:"slug"`
	ImageURL         string `json:"image_url"`
	ShortDescription string `json:"short_description"`
	Category         string `json:"category"`
}

// Validate returns an error if the reference contains invalid fields.
func (r *ToolReference) Validate() error {
	if r.Slug == "" {
		return Errorf(EINVALID, "tool reference slug required")
	}
	if r.URL == "" {
		return Errorf(EINVALID, "tool reference URL required")
	}
	return nil
}

// Translation is the per-locale field bundle carried by a record.
type Translation struct {
	Title            string `json:"title"`
	ShortDescription string `json:"shortDescription"`
	LongDescription  string `json:"longDescription"`
	Tags             string `json:"tags"`
	PricingInfo      string `json:"pricingInfo"`
	Category         string `json:"category"`
	AppType          string `json:"appType"`
}

// Fields returns the bundle as a flat map, the shape consumed by the
// translation client.
func (t Translation) Fields() map[string]string {
	return map[string]string{
		"title":            t.Title,
		"shortDescription": t.ShortDescription,
		"longDescription":  t.LongDescription,
		"tags":             t.Tags,
		"pricingInfo":      t.PricingInfo,
		"category":         t.Category,
		"appType":          t.AppType,
	}
}

// TranslationFromFields builds a Translation from a flat field map.
// Missing keys become empty strings.
func TranslationFromFields(fields map[string]string) Translation {
	return Translation{
		Title:            fields["title"],
		ShortDescription: fields["shortDescription"],
		LongDescription:  fields["longDescription"],
		Tags:             fields["tags"],
		PricingInfo:      fields["pricingInfo"],
		Category:         fields["category"],
		AppType:          fields["appType"],
	}
}

// ToolRecord is the persisted unit, keyed by slug. Once written a record is
// immutable truth for resume purposes: re-scraping never overwrites it.
type ToolRecord struct {
	Slug                  string                 `json:"slug"`
	ImageURL              string                 `json:"image_url"`
	RedirectURL           string                 `json:"redirect_url"`
	DemoURL               string                 `json:"demo_url"`
	TechnicalRequirements string                 `json:"technical_requirements"`
	SearchIndexEn         string                 `json:"searchIndexEn"`
	SearchIndexEs         string                 `json:"searchIndexEs"`
	Translations          map[string]Translation `json:"translations"`
}

// NewToolRecord builds a fresh record with explicit field defaults and an
// entry for every supported locale.
func NewToolRecord(slug string) *ToolRecord {
	translations := make(map[string]Translation, len(Languages))
	for _, lang := range Languages {
		translations[lang] = Translation{}
	}
	return &ToolRecord{
		Slug:                  slug,
		TechnicalRequirements: DefaultTechnicalRequirements,
		Translations:          translations,
	}
}

// Validate returns an error if the record contains invalid fields.
func (r *ToolRecord) Validate() error {
	if r.Slug == "" {
		return Errorf(EINVALID, "tool record slug required")
	}
	for _, lang := range Languages {
		if _, ok := r.Translations[lang]; !ok {
			return Errorf(EINVALID, "tool record missing %q translation entry", lang)
		}
	}
	return nil
}

// DetailExtraction is the normalized output of either extraction strategy,
// before being folded into a ToolRecord.
type DetailExtraction struct {
	Title    string
	Desc     string
	Image    string
	Redirect string
	Pricing  string
	Tags     []string
}
