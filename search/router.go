package search

import (
	"strings"

	"github.com/poiesic/slidesearch/core"
)

// DomainKeywords lists the substrings that vote for a domain.
type DomainKeywords struct {
	Domain   core.Domain
	Keywords []string
}

// DomainScore is the number of keyword hits for a domain.
type DomainScore struct {
	Domain core.Domain
	Hits   int
}

// Router picks the domain whose keywords best match a query.
// A Router is immutable and safe for concurrent use.
type Router struct {
	rules    []DomainKeywords
	fallback core.Domain
}

// NewRouter creates a router. Rule order is the tie-break order: when two
// domains score the same, the earlier rule wins. fallback is returned when
// no keyword matches.
func NewRouter(fallback core.Domain, rules ...DomainKeywords) *Router {
	copied := make([]DomainKeywords, len(rules))
	for i, r := range rules {
		kws := make([]string, len(r.Keywords))
		for j, kw := range r.Keywords {
			kws[j] = strings.ToLower(kw)
		}
		copied[i] = DomainKeywords{Domain: r.Domain, Keywords: kws}
	}
	return &Router{rules: copied, fallback: fallback}
}

// DefaultRouter returns the router over the standard keyword lists, in
// strategy, layout, copy, chart order, falling back to strategy.
func DefaultRouter() *Router {
	return NewRouter(core.DomainStrategy,
		DomainKeywords{Domain: core.DomainStrategy, Keywords: []string{
			"pitch", "deck", "investor", "yc", "seed", "series", "demo", "sales", "webinar",
			"conference", "board", "qbr", "all-hands", "duarte", "kawasaki", "structure",
		}},
		DomainKeywords{Domain: core.DomainLayout, Keywords: []string{
			"slide", "layout", "grid", "column", "title", "hero", "section", "cta",
			"screenshot", "quote", "timeline", "comparison", "pricing", "team",
		}},
		DomainKeywords{Domain: core.DomainCopy, Keywords: []string{
			"headline", "copy", "formula", "aida", "pas", "hook", "cta", "benefit",
			"objection", "proof", "testimonial", "urgency", "scarcity",
		}},
		DomainKeywords{Domain: core.DomainChart, Keywords: []string{
			"chart", "graph", "bar", "line", "pie", "funnel", "metrics", "data",
			"visualization", "kpi", "trend", "comparison", "heatmap", "gauge",
		}},
	)
}

// Scores counts case-insensitive substring hits per domain, in rule order.
// Each keyword counts at most once.
func (r *Router) Scores(query string) []DomainScore {
	q := strings.ToLower(query)
	scores := make([]DomainScore, len(r.rules))
	for i, rule := range r.rules {
		hits := 0
		for _, kw := range rule.Keywords {
			if strings.Contains(q, kw) {
				hits++
			}
		}
		scores[i] = DomainScore{Domain: rule.Domain, Hits: hits}
	}
	return scores
}

// Detect returns the best matching domain for query.
func (r *Router) Detect(query string) core.Domain {
	best := DomainScore{Domain: r.fallback}
	for _, s := range r.Scores(query) {
		if s.Hits > best.Hits {
			best = s
		}
	}
	return best.Domain
}

// Fallback returns the domain used when nothing matches.
func (r *Router) Fallback() core.Domain {
	return r.fallback
}
