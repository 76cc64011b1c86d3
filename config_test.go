package artex_test

import (
	"testing"

	"github.com/fwojciec/artex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	t.Parallel()

	cfg := artex.DefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.InDelta(t, 0.5, cfg.DecayFactor, 1e-9)
	assert.InDelta(t, 0.3, cfg.SiblingThreshold, 1e-9)
	assert.Equal(t, 5, cfg.SummarySentences)
	assert.Equal(t, 10, cfg.KeywordCount)
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*artex.Config)
	}{
		{"zero decay", func(c *artex.Config) { c.DecayFactor = 0 }},
		{"decay above one", func(c *artex.Config) { c.DecayFactor = 1.5 }},
		{"no propagation", func(c *artex.Config) { c.PropagationDepth = 0 }},
		{"negative sibling threshold", func(c *artex.Config) { c.SiblingThreshold = -0.1 }},
		{"sibling threshold above one", func(c *artex.Config) { c.SiblingThreshold = 2 }},
		{"zero summary length", func(c *artex.Config) { c.SummarySentences = 0 }},
		{"zero keyword count", func(c *artex.Config) { c.KeywordCount = 0 }},
		{"zero max depth", func(c *artex.Config) { c.MaxDepth = 0 }},
		{"negative future tolerance", func(c *artex.Config) { c.FutureDateTolerance = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := artex.DefaultConfig()
			tt.modify(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Equal(t, artex.EINVALID, artex.ErrorCode(err))
		})
	}
}
