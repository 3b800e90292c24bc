package recommend

import (
	"github.com/poiesic/mangarec/core"
	"github.com/poiesic/mangarec/metrics"
)

// RecommendMonitor provides hooks to observe a recommendation request.
// Implement this interface to track intermediate steps and results.
type RecommendMonitor interface {
	Start(query string, topN int)
	AfterLoad(items int)
	AfterResolve(index int, item *core.Item)
	AfterVectorize(docs, vocabulary int, cached bool)
	AfterBoost(raw, boosted []float64)
	Finish(results []*core.Recommendation)
}

// noopMonitor is a no-op implementation of RecommendMonitor
type noopMonitor struct{}

var _ RecommendMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string, _ int)            {}
func (n *noopMonitor) AfterLoad(_ int)                  {}
func (n *noopMonitor) AfterResolve(_ int, _ *core.Item) {}
func (n *noopMonitor) AfterVectorize(_, _ int, _ bool)  {}
func (n *noopMonitor) AfterBoost(_, _ []float64)        {}
func (n *noopMonitor) Finish(_ []*core.Recommendation)  {}

// metricsMonitor forwards matrix statistics to Prometheus before
// delegating to the caller's monitor.
type metricsMonitor struct {
	RecommendMonitor
}

func (m metricsMonitor) AfterVectorize(docs, vocabulary int, cached bool) {
	metrics.RecordMatrixBuild(docs, vocabulary, cached)
	m.RecommendMonitor.AfterVectorize(docs, vocabulary, cached)
}
