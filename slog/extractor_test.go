package slog_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/fwojciec/artex"
	"github.com/fwojciec/artex/mock"
	artexslog "github.com/fwojciec/artex/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("logs result summary", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			ExtractFn: func(in *artex.Input) (*artex.Result, error) {
				res := artex.NewResult()
				res.Text = "The council approved the plan."
				res.Language = "en"
				return res, nil
			},
		}

		res, err := artexslog.NewLoggingExtractor(inner, logger).Extract(&artex.Input{HTML: []byte("<p>x</p>"), URL: "https://example.com/a"})

		require.NoError(t, err)
		assert.Equal(t, "en", res.Language)
		output := buf.String()
		assert.Contains(t, output, "level=INFO")
		assert.Contains(t, output, "msg=extract")
		assert.Contains(t, output, "url=https://example.com/a")
		assert.Contains(t, output, "bytes=8")
		assert.Contains(t, output, "words=5")
		assert.Contains(t, output, "language=en")
		assert.Contains(t, output, "duration=")
	})

	t.Run("warns when result has warnings", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			ExtractFn: func(in *artex.Input) (*artex.Result, error) {
				res := artex.NewResult()
				res.Warnings = append(res.Warnings, "invalid JSON-LD block dropped")
				return res, nil
			},
		}

		_, err := artexslog.NewLoggingExtractor(inner, logger).Extract(&artex.Input{})

		require.NoError(t, err)
		assert.Contains(t, buf.String(), "level=WARN")
		assert.Contains(t, buf.String(), "warnings=1")
	})

	t.Run("logs error for nil input", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			ExtractFn: func(in *artex.Input) (*artex.Result, error) {
				return nil, artex.Errorf(artex.EINVALID, "input is not text")
			},
		}

		_, err := artexslog.NewLoggingExtractor(inner, logger).Extract(nil)

		require.Error(t, err)
		assert.Contains(t, buf.String(), "message=input is not text")
	})
}
