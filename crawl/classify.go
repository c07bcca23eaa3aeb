// Package crawl provides the category crawl-and-enrich orchestration:
// pagination over listing pages, per-tool enrichment with dual-strategy
// extraction and translation fan-out, and the bounded worker pool that
// drives a category run end to end.
package crawl

import "strings"

// appTypeRule associates a coarse app type with its trigger keywords.
type appTypeRule struct {
	appType  string
	keywords []string
}

// appTypeRules is tested in order; the first matching category wins.
var appTypeRules = []appTypeRule{
	{"assistant", []string{"assistant", "chatbot", "chat"}},
	{"generator", []string{"generator", "create", "generate"}},
	{"research", []string{"research", "search", "find"}},
	{"writing", []string{"write", "writing", "text"}},
	{"image", []string{"image", "photo", "picture"}},
	{"video", []string{"video", "movie"}},
	{"audio", []string{"audio", "music", "sound"}},
	{"code", []string{"code", "programming", "development"}},
}

// ClassifyAppType derives a coarse type classification from the tool's
// title, description, and tags.
func ClassifyAppType(title, description string, tags []string) string {
	text := strings.ToLower(title + " " + description + " " + strings.Join(tags, " "))
	for _, rule := range appTypeRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(text, keyword) {
				return rule.appType
			}
		}
	}
	return "other"
}

// searchTermSubstitution is one English-to-Spanish keyword replacement.
// Substitutions apply in order, so multi-word phrases must come after any
// of their fragments that appear earlier in the list.
type searchTermSubstitution struct {
	en string
	es string
}

var searchTermSubstitutions = []searchTermSubstitution{
	{"assistant", "asistente"},
	{"personal", "personal"},
	{"ai", "ia"},
	{"artificial intelligence", "inteligencia artificial"},
	{"tool", "herramienta"},
	{"generator", "generador"},
	{"code", "codigo"},
	{"research", "investigacion"},
	{"writing", "escritura"},
	{"image", "imagen"},
	{"video", "video"},
	{"audio", "audio"},
	{"chat", "chat"},
	{"chatbot", "chatbot"},
}

// BuildSearchIndexEn concatenates the lowercased title, description, and
// tags into the English search index.
func BuildSearchIndexEn(title, description string, tags []string) string {
	return strings.ToLower(title) + " " + strings.ToLower(description) + " " + strings.Join(tags, " ")
}

// BuildSearchIndexEs derives the Spanish search index from the English one
// through static keyword substitution. This is a lookup heuristic, not a
// translation.
func BuildSearchIndexEs(searchIndexEn string) string {
	result := strings.ToLower(searchIndexEn)
	for _, sub := range searchTermSubstitutions {
		result = strings.ReplaceAll(result, sub.en, sub.es)
	}
	return result
}
