package search

import "slices"

// Default BM25 parameters.
const (
	DefaultK1 = 1.5
	DefaultB  = 0.75
)

// BM25 holds the ranking parameters.
// K1 controls term frequency saturation, B controls length normalization.
type BM25 struct {
	K1 float64
	B  float64
}

// DefaultBM25 returns the standard k1=1.5, b=0.75 parameters.
func DefaultBM25() BM25 {
	return BM25{K1: DefaultK1, B: DefaultB}
}

// Scored is a document index with its BM25 score.
type Scored struct {
	Index int
	Score float64
}

// Score computes the BM25 score of document i for the query tokens.
// Repeated query tokens contribute once per occurrence.
func (p BM25) Score(c *Corpus, queryTokens []string, i int) float64 {
	if c.avgdl == 0 {
		return 0
	}
	norm := p.K1 * (1 - p.B + p.B*float64(c.lengths[i])/c.avgdl)

	var score float64
	for _, tok := range queryTokens {
		idf, ok := c.idf[tok]
		if !ok {
			continue
		}
		tf := float64(c.termFreqs[i][tok])
		if tf == 0 {
			continue
		}
		score += idf * tf * (p.K1 + 1) / (tf + norm)
	}
	return score
}

// Rank scores every document and returns those with a positive score,
// highest first. Equal scores keep corpus order.
func (p BM25) Rank(c *Corpus, queryTokens []string) []Scored {
	ranked := make([]Scored, 0, c.Len())
	if c.Len() == 0 || len(queryTokens) == 0 {
		return ranked
	}
	for i := range c.lengths {
		if s := p.Score(c, queryTokens, i); s > 0 {
			ranked = append(ranked, Scored{Index: i, Score: s})
		}
	}
	slices.SortStableFunc(ranked, func(a, b Scored) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})
	return ranked
}
