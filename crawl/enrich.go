package crawl

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/toolindex/toolindex"
)

// shortDescriptionLimit bounds the short description derived from a long
// description when the listing card carried none.
const shortDescriptionLimit = 180

// maxRecordTags bounds the number of tags folded into a record.
const maxRecordTags = 12

// Enricher builds complete tool records from listing references.
type Enricher struct {
	Store      toolindex.RecordStore
	Structured toolindex.DetailExtractor
	Fallback   toolindex.DetailExtractor
	Translator toolindex.Translator
	Logger     zerolog.Logger
}

// EnrichTool returns the full record for a discovered tool.
//
// A previously persisted record is returned unchanged without any network
// call, which makes the pipeline safely re-runnable after partial failure.
// Otherwise exactly one extraction strategy supplies the detail: the HTML
// fallback runs only when structured extraction returns no result.
func (e *Enricher) EnrichTool(ctx context.Context, ref toolindex.ToolReference) (*toolindex.ToolRecord, error) {
	if err := ref.Validate(); err != nil {
		return nil, err
	}

	if existing, err := e.Store.Load(ref.Slug); err == nil {
		e.Logger.Debug().Str("slug", ref.Slug).Msg("record exists, resuming")
		return existing, nil
	} else if toolindex.ErrorCode(err) != toolindex.ENOTFOUND {
		return nil, err
	}

	detail, err := e.Structured.ExtractDetail(ctx, ref.URL)
	if err != nil {
		if code := toolindex.ErrorCode(err); code != toolindex.EUNAVAILABLE {
			e.Logger.Warn().Str("slug", ref.Slug).Str("code", code).Err(err).
				Msg("structured detail extraction failed, using HTML fallback")
		}
		detail, err = e.Fallback.ExtractDetail(ctx, ref.URL)
		if err != nil {
			return nil, err
		}
	}

	return e.buildRecord(ctx, ref, detail), nil
}

// buildRecord folds the extracted detail and the listing reference into a
// fresh record, then fans out the translation calls.
func (e *Enricher) buildRecord(ctx context.Context, ref toolindex.ToolReference, detail *toolindex.DetailExtraction) *toolindex.ToolRecord {
	title := detail.Title
	if title == "" {
		title = ref.Name
	}
	desc := detail.Desc
	if desc == "" {
		desc = ref.ShortDescription
	}
	imageURL := detail.Image
	if imageURL == "" {
		imageURL = ref.ImageURL
	}

	shortDesc := ref.ShortDescription
	if shortDesc == "" {
		shortDesc = truncate(desc, shortDescriptionLimit)
	}

	tags := detail.Tags
	if len(tags) > maxRecordTags {
		tags = tags[:maxRecordTags]
	}

	record := toolindex.NewToolRecord(ref.Slug)
	record.ImageURL = imageURL
	record.RedirectURL = detail.Redirect
	record.SearchIndexEn = BuildSearchIndexEn(title, desc, detail.Tags)
	record.SearchIndexEs = BuildSearchIndexEs(record.SearchIndexEn)

	en := toolindex.Translation{
		Title:            title,
		ShortDescription: strings.TrimSpace(shortDesc),
		LongDescription:  strings.TrimSpace(desc),
		Tags:             strings.Join(tags, ", "),
		PricingInfo:      detail.Pricing,
		Category:         ref.Category,
		AppType:          ClassifyAppType(title, desc, detail.Tags),
	}
	record.Translations["en"] = en

	fields := en.Fields()
	for _, lang := range toolindex.TargetLanguages {
		translated := e.Translator.TranslateFields(ctx, fields, lang)
		if override, ok := CategoryTranslation(en.Category, lang); ok {
			translated["category"] = override
		}
		record.Translations[lang] = toolindex.TranslationFromFields(translated)
	}

	return record
}

// truncate shortens s to limit runes, appending an ellipsis when cut.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "…"
}
