package mock

import (
	"context"

	"github.com/toolindex/toolindex"
)

var _ toolindex.Translator = (*Translator)(nil)

// Translator is a mock implementation of toolindex.Translator.
type Translator struct {
	TranslateFieldsFn func(ctx context.Context, fields map[string]string, lang string) map[string]string
}

func (t *Translator) TranslateFields(ctx context.Context, fields map[string]string, lang string) map[string]string {
	return t.TranslateFieldsFn(ctx, fields, lang)
}
