package toolindex

import "context"

// TranslateMarkerPrefix formats the passthrough prefix applied to every
// field when translation is unavailable or fails for a target language.
func TranslateMarkerPrefix(lang string) string {
	return "[TRANSLATE-" + lang + "] "
}

// MarkerPassthrough returns a copy of fields with each value prefixed by
// the translation fallback marker for lang. The key set is preserved.
func MarkerPassthrough(fields map[string]string, lang string) map[string]string {
	out := make(map[string]string, len(fields))
	for k, v := range fields {
		out[k] = TranslateMarkerPrefix(lang) + v
	}
	return out
}

// Translator translates a field bundle into a target language.
//
// TranslateFields always returns a map with the same key set as the input.
// Translation failure is never fatal: on missing credentials, transport
// failure, or a malformed response the implementation degrades to the
// marker-prefixed passthrough.
type Translator interface {
	TranslateFields(ctx context.Context, fields map[string]string, lang string) map[string]string
}
