package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/artex"
	main "github.com/fwojciec/artex/cmd/artex"
	"github.com/fwojciec/artex/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("reads stdin and applies declared input fields", func(t *testing.T) {
		t.Parallel()

		var got *artex.Input
		deps, stdout, _ := newDeps(func(in *artex.Input) (*artex.Result, error) {
			got = in
			return textResult("Title", "Body text."), nil
		})
		deps.Stdin = strings.NewReader("<p>Body text.</p>")

		cmd := &main.ExtractCmd{Source: "-", URL: "https://example.com/a", Lang: "de", Encoding: "latin1", Engine: artex.EngineGoquery, Format: "text"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, []byte("<p>Body text.</p>"), got.HTML)
		assert.Equal(t, "https://example.com/a", got.URL)
		assert.Equal(t, "de", got.Language)
		assert.Equal(t, "latin1", got.Encoding)
		assert.Equal(t, "Title\n\nBody text.\n", stdout.String())
	})

	t.Run("fetches URLs", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(func(in *artex.Input) (*artex.Result, error) {
			return textResult("", string(in.HTML)), nil
		})
		deps.Fetcher = &mock.Fetcher{FetchFn: func(_ context.Context, url string) (*artex.Input, error) {
			return &artex.Input{HTML: []byte("fetched " + url), URL: url}, nil
		}}

		cmd := &main.ExtractCmd{Source: "https://example.com/a", Engine: artex.EngineGoquery, Format: "text"}
		require.NoError(t, cmd.Run(deps))

		assert.Equal(t, "fetched https://example.com/a\n", stdout.String())
	})

	t.Run("writes JSON without term scores unless asked", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(func(in *artex.Input) (*artex.Result, error) {
			res := textResult("Title", "Body.")
			res.TermScores = map[string]float64{"body": 1}
			return res, nil
		})

		cmd := &main.ExtractCmd{Source: "-", Engine: artex.EngineGoquery, Format: "json"}
		require.NoError(t, cmd.Run(deps))

		var out map[string]any
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &out))
		assert.Equal(t, "Title", out["title"])
		assert.NotContains(t, out, "termScores")
		assert.Equal(t, []any{}, out["authors"])
	})

	t.Run("reports missing files", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps(nil)

		cmd := &main.ExtractCmd{Source: filepath.Join(t.TempDir(), "missing.html"), Engine: artex.EngineGoquery, Format: "json"}
		err := cmd.Run(deps)

		assert.Equal(t, artex.ENOTFOUND, artex.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error:")
	})

	t.Run("reports invalid input", func(t *testing.T) {
		t.Parallel()

		deps, stdout, stderr := newDeps(func(*artex.Input) (*artex.Result, error) {
			return nil, artex.Errorf(artex.EINVALID, "input is not text")
		})

		cmd := &main.ExtractCmd{Source: "-", Engine: artex.EngineGoquery, Format: "json"}
		err := cmd.Run(deps)

		assert.Equal(t, artex.EINVALID, artex.ErrorCode(err))
		assert.Equal(t, "error: input is not text\n", stderr.String())
		assert.Empty(t, stdout.String())
	})

	t.Run("rejects engines that are not wired", func(t *testing.T) {
		t.Parallel()

		deps, _, _ := newDeps(nil)

		cmd := &main.ExtractCmd{Source: "-", Engine: artex.EngineTrafilatura, Format: "json"}
		err := cmd.Run(deps)

		assert.Equal(t, artex.EINVALID, artex.ErrorCode(err))
	})
}

func TestMain_Run_Extract(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(path, []byte(articlePage), 0o644))

	t.Run("extracts a file as text", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.ConfigPath = ""
		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"extract", path, "--format", "text"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(stdout.String(), "Harbor dredging plan approved\n\n"))
		assert.Contains(t, stdout.String(), "The harbor council approved")
		assert.NotContains(t, stdout.String(), "Contact")
	})

	t.Run("extracts stdin as JSON", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.ConfigPath = ""
		m.Stdin = strings.NewReader(articlePage)
		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"extract", "--url", "https://news.example.com/harbor", "--terms"}, stdout, &bytes.Buffer{})
		require.NoError(t, err)

		var res artex.Result
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &res))
		assert.Equal(t, "Harbor dredging plan approved", res.Title)
		assert.Equal(t, []string{"Jane Doe"}, res.Authors)
		assert.Equal(t, "en", res.Language)
		assert.NotEmpty(t, res.Summary)
		assert.NotEmpty(t, res.Keywords)
		assert.NotEmpty(t, res.TermScores)
		assert.Equal(t, "https://news.example.com/harbor", res.CanonicalURL)
	})

	t.Run("renders markdown", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.ConfigPath = ""
		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"extract", path, "-f", "markdown"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(stdout.String(), "# Harbor dredging plan approved\n"))
		assert.Contains(t, stdout.String(), "Jane Doe")
	})

	t.Run("applies a config file", func(t *testing.T) {
		t.Parallel()

		config := filepath.Join(t.TempDir(), "artex.yaml")
		require.NoError(t, os.WriteFile(config, []byte("min_candidate_score: 100000\n"), 0o644))

		m := main.NewMain()
		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"--config", config, "extract", path, "--format", "text"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.NotContains(t, stdout.String(), "The harbor council approved")
	})

	t.Run("rejects an invalid config file", func(t *testing.T) {
		t.Parallel()

		config := filepath.Join(t.TempDir(), "artex.yaml")
		require.NoError(t, os.WriteFile(config, []byte("decay_factor: 3\n"), 0o644))

		m := main.NewMain()
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"--config", config, "extract", path}, &bytes.Buffer{}, stderr)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "decay factor")
	})
}
