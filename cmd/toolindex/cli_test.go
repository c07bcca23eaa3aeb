package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toolindex/toolindex"
	main "github.com/toolindex/toolindex/cmd/toolindex"
	"github.com/toolindex/toolindex/crawl"
	"github.com/toolindex/toolindex/fs"
	"github.com/toolindex/toolindex/mock"
)

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	helpOutput := stdout.String()
	for _, cmd := range []string{"category", "all"} {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
}

func TestMain_Run_HelpShowsKongOutput(t *testing.T) {
	m := main.NewMain()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"--help"}, stdout, stderr)
	require.NoError(t, err)

	helpOutput := stdout.String()
	assert.Contains(t, helpOutput, "category")
	assert.Contains(t, helpOutput, "all")
	assert.Contains(t, helpOutput, "Usage:")
}

func TestMain_Run_NoArgsIsAnError(t *testing.T) {
	m := main.NewMain()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), nil, stdout, stderr)
	require.Error(t, err)
	assert.Contains(t, stdout.String(), "Usage:")
}

// testDependencies wires the command layer onto an in-memory pipeline: a
// real fs.Store in a temp dir and mocks everywhere the network would be.
func testDependencies(t *testing.T, refs []toolindex.ToolReference) (*main.Dependencies, *bytes.Buffer) {
	t.Helper()

	store, err := fs.NewStore(filepath.Join(t.TempDir(), "tools"), filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)

	lists := &mock.ListExtractor{
		ExtractCardsFn: func(ctx context.Context, pageURL, categoryURL string) ([]toolindex.ToolReference, error) {
			if pageURL == categoryURL {
				return refs, nil
			}
			return nil, nil
		},
	}
	detail := &mock.DetailExtractor{
		ExtractDetailFn: func(ctx context.Context, toolURL string) (*toolindex.DetailExtraction, error) {
			return &toolindex.DetailExtraction{Title: "T", Desc: "d"}, nil
		},
	}
	fetcher := &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			return "<html></html>", nil
		},
	}
	translator := &mock.Translator{
		TranslateFieldsFn: func(ctx context.Context, fields map[string]string, lang string) map[string]string {
			return toolindex.MarkerPassthrough(fields, lang)
		},
	}

	stdout := &bytes.Buffer{}
	deps := &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: &bytes.Buffer{},
		Config: toolindex.Config{BaseURL: "https://example.com", ToolsDir: "tools", DataDir: "data"},
		Logger: zerolog.Nop(),
		Orchestrator: &crawl.Orchestrator{
			Paginator: &crawl.Paginator{
				Fetcher:  fetcher,
				Lists:    lists,
				BaseURL:  "https://example.com",
				MaxPages: 10,
				Logger:   zerolog.Nop(),
			},
			Enricher: &crawl.Enricher{
				Store:      store,
				Structured: detail,
				Fallback:   detail,
				Translator: translator,
				Logger:     zerolog.Nop(),
			},
			Store:  store,
			Logger: zerolog.Nop(),
		},
	}
	return deps, stdout
}

func TestCategoryCmd_Run(t *testing.T) {
	t.Parallel()

	refs := []toolindex.ToolReference{
		{Name: "A", URL: "https://example.com/tool/a", Slug: "a", Category: "summarizer"},
	}
	deps, stdout := testDependencies(t, refs)

	cmd := &main.CategoryCmd{Category: "Summarizer", Workers: 2}
	err := cmd.Run(deps)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "https://example.com/ai-tools/summarizer")
	assert.True(t, deps.Orchestrator.Store.Seen("a"))
}

func TestCategoryCmd_Run_EmptyCategoryFails(t *testing.T) {
	t.Parallel()

	deps, _ := testDependencies(t, nil)

	cmd := &main.CategoryCmd{Category: "Summarizer"}
	err := cmd.Run(deps)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no tools")
}

func TestAllCmd_Run(t *testing.T) {
	t.Parallel()

	refs := []toolindex.ToolReference{
		{Name: "A", URL: "https://example.com/tool/a", Slug: "a", Category: "summarizer"},
	}
	deps, stdout := testDependencies(t, refs)

	path := filepath.Join(t.TempDir(), "categories.csv")
	require.NoError(t, os.WriteFile(path, []byte("Category\nSummarizer\nNo Code\n"), 0644))

	cmd := &main.AllCmd{File: path, Workers: 2}
	err := cmd.Run(deps)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "Scraping 2 categories")
	assert.Contains(t, stdout.String(), "2/2 categories succeeded")
}

func TestAllCmd_Run_MissingFile(t *testing.T) {
	t.Parallel()

	deps, _ := testDependencies(t, nil)

	cmd := &main.AllCmd{File: filepath.Join(t.TempDir(), "nope.csv")}
	err := cmd.Run(deps)

	require.Error(t, err)
	assert.Equal(t, toolindex.ENOTFOUND, toolindex.ErrorCode(err))
}
