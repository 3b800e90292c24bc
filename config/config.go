package config

import (
	"time"

	"github.com/poiesic/mangarec/ingestion"
	"github.com/poiesic/mangarec/recommend"
)

// Config is the application configuration.
type Config struct {
	Storage   StorageConfig   `koanf:"storage"`
	Recommend RecommendConfig `koanf:"recommend"`
	Ingest    IngestConfig    `koanf:"ingest"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// StorageConfig locates the item store and optional corpus file.
type StorageConfig struct {
	Path       string `koanf:"path"`
	InMemory   bool   `koanf:"in_memory"`
	CorpusFile string `koanf:"corpus_file"`
}

// RecommendConfig holds scoring and serving settings.
type RecommendConfig struct {
	TagRepeat            int     `koanf:"tag_repeat" validate:"gte=1"`
	GenreWeight          float64 `koanf:"genre_weight" validate:"gte=0"`
	ThemeWeight          float64 `koanf:"theme_weight" validate:"gte=0"`
	MinDocumentFrequency int     `koanf:"min_df" validate:"gte=1"`
	MaxDocumentFrequency float64 `koanf:"max_df" validate:"gt=0,lte=1"`
	MaxNGram             int     `koanf:"max_ngram" validate:"gte=1"`
	MaxTopN              int     `koanf:"max_top_n" validate:"gte=1"`
	MaxQueryLength       int     `koanf:"max_query_length" validate:"gte=1"`
	DefaultCount         int     `koanf:"default_count" validate:"gte=1,ltefield=MaxTopN"`
	MatrixCacheSize      int     `koanf:"matrix_cache_size" validate:"gte=0"`
	PoolSize             int     `koanf:"pool_size" validate:"gte=0"`
}

// IngestConfig holds import pipeline settings.
type IngestConfig struct {
	PoolSize             int           `koanf:"pool_size" validate:"gte=0"`
	BatchSize            int           `koanf:"batch_size" validate:"gte=1"`
	MinDescriptionLength int           `koanf:"min_description_length" validate:"gte=0"`
	RetryAttempts        int           `koanf:"retry_attempts" validate:"gte=1"`
	RetryDelay           time.Duration `koanf:"retry_delay" validate:"gte=0"`
	ProgressInterval     int           `koanf:"progress_interval" validate:"gte=0"`
}

// LoggingConfig selects the log level.
type LoggingConfig struct {
	Level string `koanf:"level" validate:"oneof=debug info warn error"`
}

// defaultConfig returns a Config with the built-in defaults.
// These are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	scoring := recommend.DefaultConfig()
	return &Config{
		Storage: StorageConfig{
			Path: "mangarec.db",
		},
		Recommend: RecommendConfig{
			TagRepeat:            scoring.TagRepeat,
			GenreWeight:          scoring.GenreWeight,
			ThemeWeight:          scoring.ThemeWeight,
			MinDocumentFrequency: scoring.MinDocumentFrequency,
			MaxDocumentFrequency: scoring.MaxDocumentFrequency,
			MaxNGram:             scoring.MaxNGram,
			MaxTopN:              scoring.MaxTopN,
			MaxQueryLength:       scoring.MaxQueryLength,
			DefaultCount:         5,
			MatrixCacheSize:      0, // 0 = disabled
			PoolSize:             0, // 0 = runtime.NumCPU()
		},
		Ingest: IngestConfig{
			PoolSize:             0, // 0 = runtime.NumCPU() / 2
			BatchSize:            100,
			MinDescriptionLength: 20,
			RetryAttempts:        3,
			RetryDelay:           100 * time.Millisecond,
			ProgressInterval:     0, // 0 = no progress output
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// ScoringConfig converts the recommend section to a recommend.Config.
func (c *Config) ScoringConfig() *recommend.Config {
	r := c.Recommend
	return recommend.NewConfig(
		recommend.WithTagRepeat(r.TagRepeat),
		recommend.WithBoostWeights(r.GenreWeight, r.ThemeWeight),
		recommend.WithDocumentFrequency(r.MinDocumentFrequency, r.MaxDocumentFrequency),
		recommend.WithMaxNGram(r.MaxNGram),
		recommend.WithMaxTopN(r.MaxTopN),
		recommend.WithMaxQueryLength(r.MaxQueryLength),
	)
}

// RecommenderOptions returns the recommend.Option values the recommend
// section describes.
func (c *Config) RecommenderOptions() []recommend.Option {
	opts := []recommend.Option{recommend.WithConfig(c.ScoringConfig())}
	if c.Recommend.MatrixCacheSize > 0 {
		opts = append(opts, recommend.WithMatrixCache(c.Recommend.MatrixCacheSize))
	}
	if c.Recommend.PoolSize > 0 {
		opts = append(opts, recommend.WithPoolSize(c.Recommend.PoolSize))
	}
	return opts
}

// IngestionOptions returns the ingestion.Option values the ingest section
// describes. Progress output is configured by the caller.
func (c *Config) IngestionOptions() []ingestion.Option {
	opts := []ingestion.Option{
		ingestion.WithBatchSize(c.Ingest.BatchSize),
		ingestion.WithMinDescriptionLength(c.Ingest.MinDescriptionLength),
		ingestion.WithRetry(c.Ingest.RetryAttempts, c.Ingest.RetryDelay),
	}
	if c.Ingest.PoolSize > 0 {
		opts = append(opts, ingestion.WithPoolSize(c.Ingest.PoolSize))
	}
	return opts
}
