package crawl

import (
	"encoding/csv"
	"os"
	"strings"

	"github.com/toolindex/toolindex"
)

// categoryTranslations maps each known English category slug to its
// localized slug per language. When a tool's category appears here the
// lookup overrides whatever the translation model returned for that field.
var categoryTranslations = map[string]map[string]string{
	"personal-assistant":    {"es": "asistente-personal", "pt": "assistente-pessoal", "en": "personal-assistant", "fr": "assistant-personnel", "de": "personlicher-assistent"},
	"research-assistant":    {"es": "asistente-investigacion", "pt": "assistente-pesquisa", "en": "research-assistant", "fr": "assistant-recherche", "de": "forschungsassistent"},
	"spreadsheet-assistant": {"es": "asistente-hojas-calculo", "pt": "assistente-planilhas", "en": "spreadsheet-assistant", "fr": "assistant-feuilles-calcul", "de": "tabellenkalkulation-assistent"},
	"translators":           {"es": "traductores", "pt": "tradutores", "en": "translators", "fr": "traducteurs", "de": "ubersetzer"},
	"presentations":         {"es": "presentaciones", "pt": "apresentacoes", "en": "presentations", "fr": "presentations", "de": "prasentationen"},
	"email-assistant":       {"es": "asistente-email", "pt": "assistente-email", "en": "email-assistant", "fr": "assistant-email", "de": "email-assistent"},
	"search-engine":         {"es": "motor-busqueda", "pt": "motor-busca", "en": "search-engine", "fr": "moteur-recherche", "de": "suchmaschine"},
	"prompt-generators":     {"es": "generadores-prompts", "pt": "geradores-prompts", "en": "prompt-generators", "fr": "generateurs-prompts", "de": "prompt-generatoren"},
	"writing-generators":    {"es": "generadores-escritura", "pt": "geradores-escrita", "en": "writing-generators", "fr": "generateurs-ecriture", "de": "schreib-generatoren"},
	"storyteller":           {"es": "narrador", "pt": "contador-historias", "en": "storyteller", "fr": "conteur", "de": "geschichtenerzahler"},
	"summarizer":            {"es": "resumidor", "pt": "sumarizador", "en": "summarizer", "fr": "resumeur", "de": "zusammenfasser"},
	"code-assistant":        {"es": "asistente-codigo", "pt": "assistente-codigo", "en": "code-assistant", "fr": "assistant-code", "de": "code-assistent"},
	"no-code":               {"es": "sin-codigo", "pt": "sem-codigo", "en": "no-code", "fr": "sans-code", "de": "kein-code"},
	"sql-assistant":         {"es": "asistente-sql", "pt": "assistente-sql", "en": "sql-assistant", "fr": "assistant-sql", "de": "sql-assistent"},
}

// CategoryTranslation returns the localized slug for an English category
// slug, if the category is in the static dictionary.
func CategoryTranslation(category, lang string) (string, bool) {
	m, ok := categoryTranslations[category]
	if !ok {
		return "", false
	}
	translated, ok := m[lang]
	return translated, ok
}

// categoryNameSlugs maps display names from the category input list to
// their listing-path slugs.
var categoryNameSlugs = map[string]string{
	"AI Personal Assistant Tools": "personal-assistant",
	"Research Assistant":          "research-assistant",
	"Spreadsheet Assistant":       "spreadsheet-assistant",
	"Translators":                 "translators",
	"Presentations":               "presentations",
	"Email Assistant":             "email-assistant",
	"Search Engine":               "search-engine",
	"Prompt Generators":           "prompt-generators",
	"Writing Generators":          "writing-generators",
	"Storyteller":                 "storyteller",
	"Summarizer":                  "summarizer",
	"Code Assistant":              "code-assistant",
	"No Code":                     "no-code",
	"SQL Assistant":               "sql-assistant",
}

// CategoryURL converts a category input (a full listing URL, a display
// name, or a category slug) into a listing URL under baseURL. Unknown names
// are slugified automatically.
func CategoryURL(baseURL, input string) string {
	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		return input
	}

	slug, ok := categoryNameSlugs[input]
	if !ok {
		slug = slugify(input)
	}
	return strings.TrimRight(baseURL, "/") + "/ai-tools/" + slug
}

// slugify lowercases the name, turns spaces into dashes, and drops
// everything that is not alphanumeric or a dash.
func slugify(name string) string {
	slug := strings.ToLower(name)
	slug = strings.ReplaceAll(slug, " ", "-")

	var b strings.Builder
	for _, r := range slug {
		if r == '-' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// LoadCategories reads the category input list: a CSV with a Category
// column whose values are listing URLs or category identifiers.
func LoadCategories(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, toolindex.Errorf(toolindex.ENOTFOUND, "categories file %q does not exist", path)
		}
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, toolindex.Errorf(toolindex.EINVALID, "reading categories file %q: %v", path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	column := -1
	for i, name := range rows[0] {
		if strings.EqualFold(strings.TrimSpace(name), "Category") {
			column = i
			break
		}
	}
	if column == -1 {
		return nil, toolindex.Errorf(toolindex.EINVALID, "categories file %q has no Category column", path)
	}

	var categories []string
	for _, row := range rows[1:] {
		if column >= len(row) {
			continue
		}
		if value := strings.TrimSpace(row[column]); value != "" {
			categories = append(categories, value)
		}
	}
	return categories, nil
}
