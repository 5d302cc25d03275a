package search

import (
	"math"
	"strings"

	"github.com/poiesic/slidesearch/core"
)

// Corpus holds the term statistics of one domain's documents.
// It is immutable after construction and never shared across searches.
type Corpus struct {
	termFreqs []map[string]int
	lengths   []int
	avgdl     float64
	docFreqs  map[string]int
	idf       map[string]float64
}

// NewCorpus tokenizes documents and computes their statistics.
func NewCorpus(documents []string) *Corpus {
	c := &Corpus{
		termFreqs: make([]map[string]int, len(documents)),
		lengths:   make([]int, len(documents)),
		docFreqs:  make(map[string]int),
		idf:       make(map[string]float64),
	}
	if len(documents) == 0 {
		return c
	}

	total := 0
	for i, doc := range documents {
		tokens := Tokenize(doc)
		tf := make(map[string]int, len(tokens))
		for _, tok := range tokens {
			tf[tok]++
		}
		c.termFreqs[i] = tf
		c.lengths[i] = len(tokens)
		total += len(tokens)

		// Document frequency counts each document once per term.
		for term := range tf {
			c.docFreqs[term]++
		}
	}
	c.avgdl = float64(total) / float64(len(documents))

	n := float64(len(documents))
	for term, df := range c.docFreqs {
		c.idf[term] = math.Log((n-float64(df)+0.5)/(float64(df)+0.5) + 1)
	}
	return c
}

// CorpusFromRecords builds a corpus whose document i is the space-joined
// values of fields in records[i]. Absent fields contribute "".
func CorpusFromRecords(records []core.Record, fields []string) *Corpus {
	docs := make([]string, len(records))
	parts := make([]string, len(fields))
	for i, rec := range records {
		for j, f := range fields {
			parts[j] = rec.Get(f)
		}
		docs[i] = strings.Join(parts, " ")
	}
	return NewCorpus(docs)
}

// Len returns the number of documents.
func (c *Corpus) Len() int {
	return len(c.lengths)
}

// DocLength returns the token count of document i.
func (c *Corpus) DocLength(i int) int {
	return c.lengths[i]
}

// AvgDocLength returns the mean document length, 0 for an empty corpus.
func (c *Corpus) AvgDocLength() float64 {
	return c.avgdl
}

// DocFreq returns how many documents contain term at least once.
func (c *Corpus) DocFreq(term string) int {
	return c.docFreqs[term]
}

// IDF returns the inverse document frequency of term and whether the term
// occurs in the corpus at all.
func (c *Corpus) IDF(term string) (float64, bool) {
	v, ok := c.idf[term]
	return v, ok
}

// TermFreq returns the occurrences of term in document i.
func (c *Corpus) TermFreq(term string, i int) int {
	return c.termFreqs[i][term]
}

// Vocabulary returns the number of distinct terms.
func (c *Corpus) Vocabulary() int {
	return len(c.docFreqs)
}
