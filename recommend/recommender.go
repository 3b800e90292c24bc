package recommend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/mangarec/core"
	"github.com/poiesic/mangarec/metrics"
	"github.com/poiesic/mangarec/storage"
)

// Recommender serves recommendations over a corpus that is loaded fresh
// for every request, so changes to the underlying store are always visible.
type Recommender struct {
	loader    storage.CorpusLoader
	engine    *Engine
	config    *Config
	cache     *MatrixCache
	cacheSize int
	poolSize  int
	pool      *ants.Pool
	validate  *validator.Validate
	logger    *slog.Logger
}

// Option configures a Recommender.
type Option func(*Recommender) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Recommender) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// WithConfig sets the scoring configuration.
// Default is DefaultConfig().
func WithConfig(cfg *Config) Option {
	return func(r *Recommender) error {
		if cfg == nil {
			cfg = DefaultConfig()
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		r.config = cfg
		return nil
	}
}

// WithMatrixCache enables a term matrix cache holding up to size matrices.
// Default is no cache.
func WithMatrixCache(size int) Option {
	return func(r *Recommender) error {
		if size < 1 {
			return fmt.Errorf("%w: matrix cache size must be at least 1", ErrInvalidConfig)
		}
		r.cacheSize = size
		return nil
	}
}

// WithPoolSize sets the worker pool size used by RecommendBatch.
// Default is runtime.NumCPU().
func WithPoolSize(size int) Option {
	return func(r *Recommender) error {
		if size < 1 {
			size = 1
		}
		r.poolSize = size
		return nil
	}
}

// NewRecommender creates a recommender reading its corpus from loader.
func NewRecommender(loader storage.CorpusLoader, opts ...Option) (*Recommender, error) {
	if loader == nil {
		return nil, ErrCorpusLoaderRequired
	}

	r := &Recommender{
		loader:   loader,
		config:   DefaultConfig(),
		poolSize: runtime.NumCPU(),
		validate: validator.New(),
		logger:   slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	if r.cacheSize > 0 {
		cache, err := NewMatrixCache(r.cacheSize)
		if err != nil {
			return nil, err
		}
		r.cache = cache
	}

	engine, err := NewEngine(r.config, r.cache)
	if err != nil {
		r.Release()
		return nil, err
	}
	r.engine = engine

	pool, err := ants.NewPool(r.poolSize)
	if err != nil {
		r.Release()
		return nil, err
	}
	r.pool = pool

	return r, nil
}

// Config returns the scoring configuration in use.
func (r *Recommender) Config() *Config {
	return r.config
}

// Recommend returns up to topN titles similar to the one query names.
func (r *Recommender) Recommend(ctx context.Context, query string, topN int) ([]*core.Recommendation, error) {
	return r.RecommendWithMonitor(ctx, query, topN, nil)
}

// RecommendWithMonitor is Recommend with stage callbacks.
func (r *Recommender) RecommendWithMonitor(ctx context.Context, query string, topN int, monitor RecommendMonitor) (results []*core.Recommendation, err error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	start := time.Now()
	defer func() {
		metrics.RecordRecommend(outcome(err), time.Since(start))
	}()

	if err = r.validateRequest(query, topN); err != nil {
		return nil, err
	}
	monitor.Start(query, topN)

	corpus, err := r.loadCorpus(ctx)
	if err != nil {
		return nil, err
	}
	monitor.AfterLoad(len(corpus))

	results, err = r.engine.RecommendWithMonitor(corpus, query, topN, metricsMonitor{monitor})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			r.logger.Debug("no title matches query", "query", query)
		} else {
			r.logger.Error("recommendation failed", "query", query, "err", err)
		}
		return nil, err
	}

	r.logger.Debug("recommendation complete", "query", query, "results", len(results),
		"elapsed", time.Since(start))
	return results, nil
}

// BatchResult is the outcome of one query in a batch.
type BatchResult struct {
	Query           string
	Recommendations []*core.Recommendation
	Err             error
}

// RecommendBatch answers several queries against one corpus snapshot.
// Queries run concurrently; results are returned in query order and each
// carries its own error. The returned error is set only when the corpus
// cannot be loaded or ctx is cancelled.
func (r *Recommender) RecommendBatch(ctx context.Context, queries []string, topN int) ([]*BatchResult, error) {
	results := make([]*BatchResult, len(queries))
	if len(queries) == 0 {
		return results, nil
	}

	corpus, err := r.loadCorpus(ctx)
	if err != nil {
		return nil, err
	}

	var wg sync.WaitGroup
	for i, query := range queries {
		result := &BatchResult{Query: query}
		results[i] = result

		if err := ctx.Err(); err != nil {
			result.Err = err
			continue
		}

		wg.Add(1)
		submitErr := r.pool.Submit(func() {
			defer wg.Done()
			start := time.Now()
			err := r.validateRequest(query, topN)
			if err == nil {
				result.Recommendations, err = r.engine.RecommendWithMonitor(corpus, query, topN, metricsMonitor{&noopMonitor{}})
			}
			result.Err = err
			metrics.RecordRecommend(outcome(err), time.Since(start))
		})
		if submitErr != nil {
			wg.Done()
			result.Err = fmt.Errorf("failed to schedule query: %w", submitErr)
		}
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}

// Release stops the worker pool and the matrix cache.
func (r *Recommender) Release() {
	if r.pool != nil {
		r.pool.Release()
	}
	if r.cache != nil {
		r.cache.Close()
	}
}

// validateRequest checks the request bounds. Surrounding whitespace does not
// count toward the query length, but the query is matched as given.
func (r *Recommender) validateRequest(query string, topN int) error {
	rule := fmt.Sprintf("required,max=%d", r.config.MaxQueryLength)
	if err := r.validate.Var(strings.TrimSpace(query), rule); err != nil {
		return fmt.Errorf("%w: query must be 1 to %d characters", ErrInvalidRequest, r.config.MaxQueryLength)
	}
	rule = fmt.Sprintf("min=1,max=%d", r.config.MaxTopN)
	if err := r.validate.Var(topN, rule); err != nil {
		return fmt.Errorf("%w: %w: %d not in [1,%d]", ErrInvalidRequest, ErrInvalidTopN, topN, r.config.MaxTopN)
	}
	return nil
}

func (r *Recommender) loadCorpus(ctx context.Context) ([]*core.Item, error) {
	corpus, err := r.loader.LoadCorpus(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrCorpusUnavailable) || errors.Is(err, context.Canceled) ||
			errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", storage.ErrCorpusUnavailable, err)
	}
	return corpus, nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, ErrNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, ErrInvalidRequest):
		return metrics.OutcomeInvalid
	default:
		return metrics.OutcomeError
	}
}
