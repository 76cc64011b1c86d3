package artex

import "time"

// Config holds the tunable heuristics of the extraction pipeline.
type Config struct {
	// DecayFactor is the fraction of a block score handed to each further
	// ancestor level. The parent receives the full score.
	DecayFactor float64 `yaml:"decay_factor"`

	// PropagationDepth is the number of ancestor levels a block score reaches.
	PropagationDepth int `yaml:"propagation_depth"`

	// SiblingThreshold is the fraction of the top candidate score a sibling
	// must exceed to be merged into the article.
	SiblingThreshold float64 `yaml:"sibling_threshold"`

	// MinCandidateScore is the score below which no article is selected.
	MinCandidateScore float64 `yaml:"min_candidate_score"`

	PositiveWeight  float64 `yaml:"positive_weight"`
	NegativeWeight  float64 `yaml:"negative_weight"`
	HighLinkDensity float64 `yaml:"high_link_density"`

	MinParagraphWords int `yaml:"min_paragraph_words"`
	MinTokenLength    int `yaml:"min_token_length"`
	SummarySentences  int `yaml:"summary_sentences"`
	KeywordCount      int `yaml:"keyword_count"`
	MinImageWidth     int `yaml:"min_image_width"`
	MinImageHeight    int `yaml:"min_image_height"`

	// Tree limits. Deeper or later nodes are dropped.
	MaxDepth      int `yaml:"max_depth"`
	MaxNodes      int `yaml:"max_nodes"`
	MaxInputBytes int `yaml:"max_input_bytes"`

	// FutureDateTolerance is how far past the current time a declared
	// publish date may lie.
	FutureDateTolerance time.Duration `yaml:"future_date_tolerance"`
}

// DefaultConfig returns the default heuristics.
func DefaultConfig() Config {
	return Config{
		DecayFactor:         0.5,
		PropagationDepth:    3,
		SiblingThreshold:    0.3,
		MinCandidateScore:   5,
		PositiveWeight:      25,
		NegativeWeight:      25,
		HighLinkDensity:     0.5,
		MinParagraphWords:   2,
		MinTokenLength:      3,
		SummarySentences:    5,
		KeywordCount:        10,
		MinImageWidth:       100,
		MinImageHeight:      100,
		MaxDepth:            256,
		MaxNodes:            100000,
		MaxInputBytes:       16 << 20,
		FutureDateTolerance: 7 * 24 * time.Hour,
	}
}

// Validate returns an error if the configuration contains invalid values.
func (c *Config) Validate() error {
	switch {
	case c.DecayFactor <= 0 || c.DecayFactor > 1:
		return Errorf(EINVALID, "decay factor must be in (0, 1], got %v", c.DecayFactor)
	case c.PropagationDepth < 1:
		return Errorf(EINVALID, "propagation depth must be at least 1, got %d", c.PropagationDepth)
	case c.SiblingThreshold < 0 || c.SiblingThreshold > 1:
		return Errorf(EINVALID, "sibling threshold must be in [0, 1], got %v", c.SiblingThreshold)
	case c.MinCandidateScore < 0:
		return Errorf(EINVALID, "min candidate score must not be negative")
	case c.PositiveWeight < 0 || c.NegativeWeight < 0:
		return Errorf(EINVALID, "class weights must not be negative")
	case c.HighLinkDensity <= 0 || c.HighLinkDensity > 1:
		return Errorf(EINVALID, "high link density must be in (0, 1], got %v", c.HighLinkDensity)
	case c.MinParagraphWords < 1:
		return Errorf(EINVALID, "min paragraph words must be at least 1")
	case c.MinTokenLength < 1:
		return Errorf(EINVALID, "min token length must be at least 1")
	case c.SummarySentences < 1:
		return Errorf(EINVALID, "summary sentences must be at least 1")
	case c.KeywordCount < 1:
		return Errorf(EINVALID, "keyword count must be at least 1")
	case c.MinImageWidth < 0 || c.MinImageHeight < 0:
		return Errorf(EINVALID, "min image size must not be negative")
	case c.MaxDepth < 1 || c.MaxNodes < 1 || c.MaxInputBytes < 1:
		return Errorf(EINVALID, "tree and input limits must be positive")
	case c.FutureDateTolerance < 0:
		return Errorf(EINVALID, "future date tolerance must not be negative")
	}
	return nil
}
