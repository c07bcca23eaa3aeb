// Package openrouter provides the batch translation client backed by an
// OpenRouter-style chat-completions API. One request is issued per target
// language carrying the full field bundle; any failure degrades to a
// marker-prefixed passthrough so translation is never fatal to the
// enrichment pipeline.
package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/toolindex/toolindex"
)

const systemInstruction = "You are a professional technical translator. " +
	"Return ONLY strict JSON, utf-8, with the SAME KEYS as input. " +
	"No commentary, no markdown, no trailing commas. Keep meaning precise."

// Ensure Translator implements toolindex.Translator at compile time.
var _ toolindex.Translator = (*Translator)(nil)

// Translator translates field bundles through a chat-completion endpoint.
type Translator struct {
	apiKey string
	apiURL string
	model  string

	client *http.Client
	logger zerolog.Logger
}

// Option configures a Translator.
type Option func(*Translator)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(t *Translator) { t.client = hc }
}

// WithLogger sets the logger used for fallback warnings.
func WithLogger(logger zerolog.Logger) Option {
	return func(t *Translator) { t.logger = logger }
}

// NewTranslator creates a Translator. An empty apiKey produces a client
// that returns the marker passthrough without network calls.
func NewTranslator(apiKey, apiURL, model string, opts ...Option) *Translator {
	t := &Translator{
		apiKey: apiKey,
		apiURL: apiURL,
		model:  model,
		client: &http.Client{Timeout: 60 * time.Second},
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// TranslateFields translates the bundle into lang. The returned map always
// has the same key set as the input: either translated values or the
// marker-prefixed originals when the call cannot be made or fails.
func (t *Translator) TranslateFields(ctx context.Context, fields map[string]string, lang string) map[string]string {
	if t.apiKey == "" {
		return toolindex.MarkerPassthrough(fields, lang)
	}

	translated, err := t.translate(ctx, fields, lang)
	if err != nil {
		t.logger.Warn().Str("lang", lang).Err(err).Msg("translation failed, using marker passthrough")
		return toolindex.MarkerPassthrough(fields, lang)
	}
	return translated
}

func (t *Translator) translate(ctx context.Context, fields map[string]string, lang string) (map[string]string, error) {
	user, err := json.Marshal(map[string]any{
		"instruction": fmt.Sprintf("Translate each value from English to %s. Keep style concise, natural and domain-correct. Return JSON only.", lang),
		"input":       fields,
	})
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(chatRequest{
		Model: t.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemInstruction},
			{Role: "user", Content: string(user)},
		},
		Temperature: 0.2,
		MaxTokens:   1200,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+t.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("HTTP %d from translation API", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var chat chatResponse
	if err := json.Unmarshal(raw, &chat); err != nil {
		return nil, fmt.Errorf("malformed API response: %w", err)
	}
	if len(chat.Choices) == 0 {
		return nil, fmt.Errorf("API response has no choices")
	}

	var translated map[string]string
	content := stripFences(chat.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &translated); err != nil {
		return nil, fmt.Errorf("malformed translation JSON: %w", err)
	}

	// Enforce the same-keys contract: a response missing any input key is
	// malformed, and keys the model invented are dropped.
	out := make(map[string]string, len(fields))
	for k := range fields {
		v, ok := translated[k]
		if !ok {
			return nil, fmt.Errorf("translation response missing key %q", k)
		}
		out[k] = v
	}
	return out, nil
}

// stripFences removes Markdown code-fence wrapping that chat models
// sometimes add around JSON output.
func stripFences(content string) string {
	content = strings.TrimSpace(content)
	content = strings.Trim(content, "`")
	if rest, ok := strings.CutPrefix(content, "json"); ok {
		content = strings.TrimSpace(rest)
	}
	return content
}
