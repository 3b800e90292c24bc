package recommend

import (
	"fmt"

	"github.com/poiesic/mangarec/core"
)

// Engine scores a corpus against a query title. It holds no per-request
// state; the term matrix is rebuilt from the corpus on every call unless a
// MatrixCache supplies one for an identical document set.
type Engine struct {
	cfg   *Config
	cache *MatrixCache
}

// NewEngine creates an engine. A nil cfg selects DefaultConfig.
// cache may be nil.
func NewEngine(cfg *Config, cache *MatrixCache) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg, cache: cache}, nil
}

// Config returns the engine's configuration.
func (e *Engine) Config() *Config {
	return e.cfg
}

// Recommend returns up to topN items most similar to the item the query
// resolves to, best first. The resolved item itself is never included.
func (e *Engine) Recommend(corpus []*core.Item, query string, topN int) ([]*core.Recommendation, error) {
	return e.RecommendWithMonitor(corpus, query, topN, nil)
}

// RecommendWithMonitor is Recommend with stage callbacks.
func (e *Engine) RecommendWithMonitor(corpus []*core.Item, query string, topN int, monitor RecommendMonitor) ([]*core.Recommendation, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	if topN < 1 || topN > e.cfg.MaxTopN {
		return nil, fmt.Errorf("%w: %d not in [1,%d]", ErrInvalidTopN, topN, e.cfg.MaxTopN)
	}

	index, err := ResolveQuery(corpus, query)
	if err != nil {
		return nil, err
	}
	monitor.AfterResolve(index, corpus[index])

	// Nothing to compare against
	if len(corpus) == 1 {
		results := []*core.Recommendation{}
		monitor.Finish(results)
		return results, nil
	}

	matrix, err := e.matrix(corpus, monitor)
	if err != nil {
		return nil, err
	}

	raw, err := matrix.CosineSimilarities(index)
	if err != nil {
		return nil, err
	}
	boosted := Boost(corpus, index, raw, e.cfg.boostConfig())
	monitor.AfterBoost(raw, boosted)

	results := Rank(corpus, index, boosted, topN)
	monitor.Finish(results)
	return results, nil
}

func (e *Engine) matrix(corpus []*core.Item, monitor RecommendMonitor) (*TermMatrix, error) {
	docs := ComposeCorpus(corpus, e.cfg.TagRepeat)
	vcfg := e.cfg.vectorizerConfig()

	var key uint64
	if e.cache != nil {
		key = Fingerprint(docs, vcfg)
		if m, ok := e.cache.Get(key); ok && m.NumDocuments() == len(docs) {
			monitor.AfterVectorize(m.NumDocuments(), len(m.Vocabulary()), true)
			return m, nil
		}
	}

	m, err := Vectorize(docs, vcfg)
	if err != nil {
		return nil, err
	}
	if e.cache != nil {
		e.cache.Set(key, m)
	}
	monitor.AfterVectorize(m.NumDocuments(), len(m.Vocabulary()), false)
	return m, nil
}
