package toolindex_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toolindex/toolindex"
)

func TestToolReference_Validate(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		ref := toolindex.ToolReference{Slug: "a", URL: "https://example.com/tool/a"}
		require.NoError(t, ref.Validate())
	})

	t.Run("missing slug", func(t *testing.T) {
		t.Parallel()
		ref := toolindex.ToolReference{URL: "https://example.com/tool/a"}
		err := ref.Validate()
		require.Error(t, err)
		assert.Equal(t, toolindex.EINVALID, toolindex.ErrorCode(err))
	})

	t.Run("missing URL", func(t *testing.T) {
		t.Parallel()
		ref := toolindex.ToolReference{Slug: "a"}
		err := ref.Validate()
		require.Error(t, err)
		assert.Equal(t, toolindex.EINVALID, toolindex.ErrorCode(err))
	})
}

func TestNewToolRecord(t *testing.T) {
	t.Parallel()

	record := toolindex.NewToolRecord("my-tool")

	assert.Equal(t, "my-tool", record.Slug)
	assert.Equal(t, toolindex.DefaultTechnicalRequirements, record.TechnicalRequirements)
	for _, lang := range toolindex.Languages {
		_, ok := record.Translations[lang]
		assert.True(t, ok, "fresh record carries an entry for %q", lang)
	}
	require.NoError(t, record.Validate())
}

func TestToolRecord_Validate_MissingLanguage(t *testing.T) {
	t.Parallel()

	record := toolindex.NewToolRecord("my-tool")
	delete(record.Translations, "pt")

	err := record.Validate()
	require.Error(t, err)
	assert.Equal(t, toolindex.EINVALID, toolindex.ErrorCode(err))
}

func TestTranslation_FieldsRoundTrip(t *testing.T) {
	t.Parallel()

	original := toolindex.Translation{
		Title:            "Tool",
		ShortDescription: "short",
		LongDescription:  "long",
		Tags:             "a, b",
		PricingInfo:      "Free",
		Category:         "summarizer",
		AppType:          "assistant",
	}

	assert.Equal(t, original, toolindex.TranslationFromFields(original.Fields()))
}
