package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/poiesic/slidesearch/core"
	"github.com/poiesic/slidesearch/storage"
)

// Default result limits.
const (
	DefaultMaxResults          = 3
	DefaultMaxResultsPerDomain = 2
)

// Searcher ranks records of the searchable domains against free-text queries.
type Searcher struct {
	source  storage.RecordSource
	specs   map[core.Domain]DomainSpec
	router  *Router
	bm25    BM25
	monitor SearchMonitor
	logger  *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithRouter replaces the default keyword router.
func WithRouter(router *Router) Option {
	return func(s *Searcher) error {
		if router == nil {
			return ErrRouterRequired
		}
		s.router = router
		return nil
	}
}

// WithBM25 overrides the ranking parameters.
// Default is k1=1.5, b=0.75.
func WithBM25(k1, b float64) Option {
	return func(s *Searcher) error {
		if k1 < 0 || b < 0 || b > 1 {
			return fmt.Errorf("%w: k1=%v b=%v", ErrInvalidBM25, k1, b)
		}
		s.bm25 = BM25{K1: k1, B: b}
		return nil
	}
}

// WithDomainSpec overrides the field configuration of one domain.
func WithDomainSpec(spec DomainSpec) Option {
	return func(s *Searcher) error {
		if err := core.ValidateDomain(spec.Domain); err != nil {
			return err
		}
		s.specs[spec.Domain] = spec
		return nil
	}
}

// WithMonitor installs hooks that observe every search.
func WithMonitor(monitor SearchMonitor) Option {
	return func(s *Searcher) error {
		if monitor == nil {
			monitor = &noopMonitor{}
		}
		s.monitor = monitor
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(source storage.RecordSource, opts ...Option) (*Searcher, error) {
	if source == nil {
		return nil, ErrSourceRequired
	}

	specs := make(map[core.Domain]DomainSpec)
	for _, spec := range DefaultDomainSpecs() {
		specs[spec.Domain] = spec
	}

	s := &Searcher{
		source:  source,
		specs:   specs,
		router:  DefaultRouter(),
		bm25:    DefaultBM25(),
		monitor: &noopMonitor{},
		logger:  slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Router returns the searcher's domain router.
func (s *Searcher) Router() *Router {
	return s.router
}

// DetectDomain returns the domain the router picks for query.
func (s *Searcher) DetectDomain(query string) core.Domain {
	return s.router.Detect(query)
}

// Search ranks one domain's records against query and returns up to
// maxResults hits with a positive score. An empty domain is detected from
// the query. A domain without backing data yields a response with Error set
// rather than an error; errors are reserved for unknown domains and failures
// reading the backing data.
func (s *Searcher) Search(ctx context.Context, query string, domain core.Domain, maxResults int) (*core.SearchResponse, error) {
	s.monitor.Start(query, domain)

	if domain == "" {
		domain = s.router.Detect(query)
		s.monitor.AfterDomainDetection(query, domain)
	}
	spec, ok := s.specs[domain]
	if !ok {
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownDomain, domain)
	}

	ds, err := s.source.Load(ctx, domain.Table())
	if errors.Is(err, storage.ErrSourceNotFound) {
		s.logger.Warn("no backing data for domain", "domain", domain)
		s.monitor.SourceMissing(domain)
		resp := &core.SearchResponse{
			Domain:  domain,
			Results: []core.Hit{},
			Error:   fmt.Sprintf("source not found for domain %q", domain),
		}
		s.monitor.Finish(resp)
		return resp, nil
	}
	if err != nil {
		s.logger.Error("error loading domain records", "domain", domain, "err", err)
		return nil, err
	}

	corpus := CorpusFromRecords(ds.Records, spec.SearchFields)
	s.monitor.AfterCorpusBuilt(domain, corpus.Len(), corpus.Vocabulary())

	ranked := s.bm25.Rank(corpus, Tokenize(query))
	if maxResults < 0 {
		maxResults = 0
	}
	if len(ranked) > maxResults {
		ranked = ranked[:maxResults]
	}

	hits := make([]core.Hit, 0, len(ranked))
	for _, r := range ranked {
		hits = append(hits, core.Hit{
			Record: ds.Records[r.Index].Project(spec.OutputFields),
			Score:  r.Score,
		})
	}

	resp := &core.SearchResponse{
		Domain:  domain,
		Query:   query,
		Source:  ds.Source,
		Count:   len(hits),
		Results: hits,
	}
	s.logger.Debug("search complete", "domain", domain, "count", resp.Count, "documents", corpus.Len())
	s.monitor.Finish(resp)
	return resp, nil
}

// SearchAll searches every domain in the fixed domain order and keeps only
// domains with at least one hit. The result keeps domain order; it is not
// re-sorted by score.
func (s *Searcher) SearchAll(ctx context.Context, query string, maxResultsPerDomain int) (core.DomainResults, error) {
	results := make(core.DomainResults, 0, len(s.specs))
	for _, domain := range core.Domains() {
		resp, err := s.Search(ctx, query, domain, maxResultsPerDomain)
		if err != nil {
			return nil, err
		}
		if resp.Count > 0 {
			results = append(results, resp)
		}
	}
	return results, nil
}
