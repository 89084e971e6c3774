package search

import (
	"github.com/greation/sermonkit/core"
)

// SearchMonitor provides hooks to observe the candidate retrieval process.
// Implement this interface to track which strategy produced the results and
// the intermediate steps along the way.
type SearchMonitor interface {
	Start(query string)
	AfterQueryEmbedding(vector []float32)
	AfterVectorSearch(candidates []core.ScoredCandidate)
	AfterRemoteSearch(candidates []core.ScoredCandidate)
	FellBackToRandomSample(count int)
	Finish(strategy string, results []core.ScoredCandidate)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                                  {}
func (n *noopMonitor) AfterQueryEmbedding(_ []float32)                 {}
func (n *noopMonitor) AfterVectorSearch(_ []core.ScoredCandidate)      {}
func (n *noopMonitor) AfterRemoteSearch(_ []core.ScoredCandidate)      {}
func (n *noopMonitor) FellBackToRandomSample(_ int)                    {}
func (n *noopMonitor) Finish(_ string, _ []core.ScoredCandidate)       {}
