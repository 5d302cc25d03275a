package search

import "github.com/poiesic/slidesearch/core"

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string, requested core.Domain)
	AfterDomainDetection(query string, domain core.Domain)
	AfterCorpusBuilt(domain core.Domain, documents, vocabulary int)
	SourceMissing(domain core.Domain)
	Finish(response *core.SearchResponse)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string, _ core.Domain)                {}
func (n *noopMonitor) AfterDomainDetection(_ string, _ core.Domain) {}
func (n *noopMonitor) AfterCorpusBuilt(_ core.Domain, _, _ int)     {}
func (n *noopMonitor) SourceMissing(_ core.Domain)                  {}
func (n *noopMonitor) Finish(_ *core.SearchResponse)                {}
