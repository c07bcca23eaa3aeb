package toolindex

import (
	"os"
	"strconv"
	"time"
)

// Config holds the runtime configuration surface. Every field is
// overridable through environment variables; there is no other input
// channel.
type Config struct {
	// Target site.
	BaseURL string

	// Output directories.
	ToolsDir string // per-tool JSON records (the resume keystore)
	DataDir  string // per-category CSV exports

	// HTTP behavior.
	HTTPTimeout  time.Duration
	RequestDelay time.Duration // politeness delay applied after successful calls
	ConnRetries  int

	// Pagination safety bound.
	MaxPagesPerCategory int

	// Structured-extraction API (FetchFox). Empty key disables the client.
	FetchFoxAPIKey string
	FetchFoxAPIURL string

	// Translation API (OpenRouter). Empty key selects marker passthrough.
	OpenRouterAPIKey string
	OpenRouterAPIURL string
	OpenRouterModel  string
}

// LoadConfig loads the configuration from environment variables with
// defaults.
func LoadConfig() Config {
	timeoutSec := getEnvInt("TOOLINDEX_HTTP_TIMEOUT_SECONDS", 30)
	delayMs := getEnvInt("TOOLINDEX_REQUEST_DELAY_MS", 1000)

	return Config{
		BaseURL:             getEnv("TOOLINDEX_BASE_URL", "https://www.futurepedia.io"),
		ToolsDir:            getEnv("TOOLINDEX_TOOLS_DIR", "tools_data"),
		DataDir:             getEnv("TOOLINDEX_DATA_DIR", "category_data"),
		HTTPTimeout:         time.Duration(timeoutSec) * time.Second,
		RequestDelay:        time.Duration(delayMs) * time.Millisecond,
		ConnRetries:         getEnvInt("TOOLINDEX_CONN_RETRIES", 3),
		MaxPagesPerCategory: getEnvInt("TOOLINDEX_MAX_PAGES_PER_CATEGORY", 200),
		FetchFoxAPIKey:      getEnv("FETCHFOX_API_KEY", ""),
		FetchFoxAPIURL:      getEnv("FETCHFOX_API_URL", "https://api.fetchfox.ai/v1/scrape"),
		OpenRouterAPIKey:    getEnv("OPENROUTER_API_KEY", ""),
		OpenRouterAPIURL:    getEnv("OPENROUTER_API_URL", "https://openrouter.ai/api/v1/chat/completions"),
		OpenRouterModel:     getEnv("OPENROUTER_MODEL", "deepseek/deepseek-r1-0528:free"),
	}
}

// Validate returns an error if the configuration is unusable.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return Errorf(EINVALID, "base URL required")
	}
	if c.ToolsDir == "" {
		return Errorf(EINVALID, "tools directory required")
	}
	if c.DataDir == "" {
		return Errorf(EINVALID, "data directory required")
	}
	if c.HTTPTimeout <= 0 {
		return Errorf(EINVALID, "HTTP timeout must be positive")
	}
	if c.MaxPagesPerCategory <= 0 {
		return Errorf(EINVALID, "page cap must be positive")
	}
	if c.ConnRetries < 0 {
		return Errorf(EINVALID, "connection retries must not be negative")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
