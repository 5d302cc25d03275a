// Package metrics exposes search and import activity as Prometheus metrics.
package metrics

import (
	"github.com/poiesic/slidesearch/core"
	"github.com/poiesic/slidesearch/ingestion"
	"github.com/poiesic/slidesearch/search"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "slidesearch"

// Search outcomes.
const (
	outcomeFound   = "found"
	outcomeEmpty   = "empty"
	outcomeMissing = "missing"
)

// Monitor implements search.SearchMonitor by recording Prometheus metrics.
type Monitor struct {
	searches        *prometheus.CounterVec
	detections      *prometheus.CounterVec
	results         *prometheus.HistogramVec
	corpusDocuments *prometheus.GaugeVec
	vocabulary      *prometheus.GaugeVec
	imports         *prometheus.CounterVec
}

var _ search.SearchMonitor = (*Monitor)(nil)

// NewMonitor creates a monitor and registers its collectors with reg.
func NewMonitor(reg prometheus.Registerer) (*Monitor, error) {
	m := &Monitor{
		searches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "searches_total",
				Help:      "Total number of domain searches",
			},
			[]string{"domain", "outcome"},
		),
		detections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "domain_detections_total",
				Help:      "Total number of queries routed by keyword detection",
			},
			[]string{"domain"},
		),
		results: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "search_results",
				Help:      "Number of hits returned per search",
				Buckets:   []float64{0, 1, 2, 3, 5, 10},
			},
			[]string{"domain"},
		),
		corpusDocuments: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "corpus_documents",
				Help:      "Documents in the most recently built corpus",
			},
			[]string{"domain"},
		),
		vocabulary: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "corpus_vocabulary_terms",
				Help:      "Distinct terms in the most recently built corpus",
			},
			[]string{"domain"},
		),
		imports: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "import_tables_total",
				Help:      "Total number of tables processed by imports",
			},
			[]string{"table", "outcome"},
		),
	}

	for _, c := range []prometheus.Collector{
		m.searches, m.detections, m.results, m.corpusDocuments, m.vocabulary, m.imports,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Start is a no-op; searches are counted by Finish.
func (m *Monitor) Start(_ string, _ core.Domain) {}

// AfterDomainDetection counts the routed domain.
func (m *Monitor) AfterDomainDetection(_ string, domain core.Domain) {
	m.detections.WithLabelValues(string(domain)).Inc()
}

// AfterCorpusBuilt sets the document and vocabulary gauges of the domain.
func (m *Monitor) AfterCorpusBuilt(domain core.Domain, documents, vocabulary int) {
	m.corpusDocuments.WithLabelValues(string(domain)).Set(float64(documents))
	m.vocabulary.WithLabelValues(string(domain)).Set(float64(vocabulary))
}

// SourceMissing is counted when the search finishes.
func (m *Monitor) SourceMissing(_ core.Domain) {}

// Finish counts the search by outcome and observes its result count.
func (m *Monitor) Finish(resp *core.SearchResponse) {
	domain := string(resp.Domain)
	switch {
	case !resp.Found():
		m.searches.WithLabelValues(domain, outcomeMissing).Inc()
		return
	case resp.Count == 0:
		m.searches.WithLabelValues(domain, outcomeEmpty).Inc()
	default:
		m.searches.WithLabelValues(domain, outcomeFound).Inc()
	}
	m.results.WithLabelValues(domain).Observe(float64(resp.Count))
}

// ObserveImport records the per-table outcomes of an import.
func (m *Monitor) ObserveImport(report *ingestion.Report) {
	if report == nil {
		return
	}
	for _, res := range report.Results {
		m.imports.WithLabelValues(string(res.Table), string(res.Outcome)).Inc()
	}
}
