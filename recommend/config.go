package recommend

import (
	"fmt"
)

// Config holds the tunable parameters of the scoring pipeline.
// The defaults reproduce the reference weighting exactly; change them only
// when score values need not match earlier results.
type Config struct {
	// TagRepeat is how many times each genre and theme is written into the
	// composed document. Default: 2
	TagRepeat int

	// GenreWeight scales genre Jaccard overlap in the boost multiplier. Default: 2
	GenreWeight float64

	// ThemeWeight scales theme Jaccard overlap in the boost multiplier. Default: 2
	ThemeWeight float64

	// MinDocumentFrequency is the minimum number of documents a term must
	// appear in to enter the vocabulary. Default: 2
	MinDocumentFrequency int

	// MaxDocumentFrequency is the maximum fraction of documents a term may
	// appear in to enter the vocabulary. Default: 0.85
	MaxDocumentFrequency float64

	// MaxNGram is the longest word n-gram kept as a term. Default: 2
	MaxNGram int

	// MaxTopN is the largest result count a caller may request. Default: 20
	MaxTopN int

	// MaxQueryLength is the longest accepted query in characters. Default: 100
	MaxQueryLength int
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithTagRepeat sets the genre/theme repetition factor.
func WithTagRepeat(n int) ConfigOption {
	return func(c *Config) {
		c.TagRepeat = n
	}
}

// WithBoostWeights sets the genre and theme overlap weights.
func WithBoostWeights(genre, theme float64) ConfigOption {
	return func(c *Config) {
		c.GenreWeight = genre
		c.ThemeWeight = theme
	}
}

// WithDocumentFrequency sets the vocabulary document-frequency bounds.
func WithDocumentFrequency(minDocs int, maxFraction float64) ConfigOption {
	return func(c *Config) {
		c.MinDocumentFrequency = minDocs
		c.MaxDocumentFrequency = maxFraction
	}
}

// WithMaxNGram sets the longest n-gram kept as a term.
func WithMaxNGram(n int) ConfigOption {
	return func(c *Config) {
		c.MaxNGram = n
	}
}

// WithMaxTopN sets the largest result count a caller may request.
func WithMaxTopN(n int) ConfigOption {
	return func(c *Config) {
		c.MaxTopN = n
	}
}

// WithMaxQueryLength sets the longest accepted query.
func WithMaxQueryLength(n int) ConfigOption {
	return func(c *Config) {
		c.MaxQueryLength = n
	}
}

// DefaultConfig returns the reference configuration.
func DefaultConfig() *Config {
	return &Config{
		TagRepeat:            2,
		GenreWeight:          2,
		ThemeWeight:          2,
		MinDocumentFrequency: 2,
		MaxDocumentFrequency: 0.85,
		MaxNGram:             2,
		MaxTopN:              20,
		MaxQueryLength:       100,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := NewConfig(
//	    WithBoostWeights(3, 1),
//	    WithMaxTopN(50),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	switch {
	case c.TagRepeat < 1:
		return fmt.Errorf("%w: TagRepeat must be at least 1", ErrInvalidConfig)
	case c.GenreWeight < 0 || c.ThemeWeight < 0:
		return fmt.Errorf("%w: boost weights cannot be negative", ErrInvalidConfig)
	case c.MinDocumentFrequency < 1:
		return fmt.Errorf("%w: MinDocumentFrequency must be at least 1", ErrInvalidConfig)
	case c.MaxDocumentFrequency <= 0 || c.MaxDocumentFrequency > 1:
		return fmt.Errorf("%w: MaxDocumentFrequency must be in (0, 1]", ErrInvalidConfig)
	case c.MaxNGram < 1:
		return fmt.Errorf("%w: MaxNGram must be at least 1", ErrInvalidConfig)
	case c.MaxTopN < 1:
		return fmt.Errorf("%w: MaxTopN must be at least 1", ErrInvalidConfig)
	case c.MaxQueryLength < 1:
		return fmt.Errorf("%w: MaxQueryLength must be at least 1", ErrInvalidConfig)
	}
	return nil
}

func (c *Config) vectorizerConfig() VectorizerConfig {
	return VectorizerConfig{
		MinDocumentFrequency: c.MinDocumentFrequency,
		MaxDocumentFrequency: c.MaxDocumentFrequency,
		MaxNGram:             c.MaxNGram,
	}
}

func (c *Config) boostConfig() BoostConfig {
	return BoostConfig{
		GenreWeight: c.GenreWeight,
		ThemeWeight: c.ThemeWeight,
	}
}
