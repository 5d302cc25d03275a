package search

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/poiesic/slidesearch/core"
	"github.com/poiesic/slidesearch/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	strategyCols = []string{"strategy_name", "keywords", "slide_count", "goal", "audience", "narrative_arc", "tone"}
	chartCols    = []string{"chart_type", "keywords", "best_for", "when_to_use", "slide_context", "data_type"}
	layoutCols   = []string{"layout_name", "keywords", "use_case", "recommended_for"}
)

func testSource() *storage.StaticSource {
	return storage.NewStaticSource(
		storage.DatasetFromRows(core.TableStrategy, "slide-strategies.csv", strategyCols,
			[]string{"YC Seed Deck", "seed investor pitch", "10", "raise seed", "angels", "problem to solution", "direct"},
			[]string{"Sales Demo", "sales demo closing", "9", "close deals", "buyers", "pain to relief", "consultative"},
			[]string{"Board Update", "board qbr growth", "12", "align board", "directors", "review", "factual"},
		),
		storage.DatasetFromRows(core.TableChart, "slide-charts.csv", chartCols,
			[]string{"Funnel Chart", "funnel conversion growth funnel", "drop-off", "signup funnel", "traction", "sequential"},
			[]string{"Bar Chart", "bar compare", "ranking", "categories", "market", "categorical"},
		),
		storage.DatasetFromRows(core.TableLayout, "slide-layouts.csv", layoutCols),
	)
}

func newTestSearcher(t *testing.T, opts ...Option) *Searcher {
	t.Helper()
	s, err := NewSearcher(testSource(), opts...)
	require.NoError(t, err)
	return s
}

func TestNewSearcher(t *testing.T) {
	src := testSource()

	t.Run("valid configuration", func(t *testing.T) {
		searcher, err := NewSearcher(src)
		require.NoError(t, err)
		assert.NotNil(t, searcher)
	})

	t.Run("with custom logger", func(t *testing.T) {
		searcher, err := NewSearcher(src, WithLogger(slog.Default()))
		require.NoError(t, err)
		assert.NotNil(t, searcher)
	})

	t.Run("with nil logger falls back to default", func(t *testing.T) {
		searcher, err := NewSearcher(src, WithLogger(nil))
		require.NoError(t, err)
		assert.NotNil(t, searcher)
	})

	t.Run("nil source", func(t *testing.T) {
		_, err := NewSearcher(nil)
		assert.Equal(t, ErrSourceRequired, err)
	})

	t.Run("nil router", func(t *testing.T) {
		_, err := NewSearcher(src, WithRouter(nil))
		assert.Equal(t, ErrRouterRequired, err)
	})

	t.Run("invalid bm25 parameters", func(t *testing.T) {
		_, err := NewSearcher(src, WithBM25(1.2, 1.5))
		assert.ErrorIs(t, err, ErrInvalidBM25)
	})

	t.Run("domain spec for unknown domain", func(t *testing.T) {
		_, err := NewSearcher(src, WithDomainSpec(DomainSpec{Domain: "slides"}))
		assert.ErrorIs(t, err, core.ErrUnknownDomain)
	})
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	s := newTestSearcher(t)

	t.Run("explicit domain", func(t *testing.T) {
		resp, err := s.Search(ctx, "seed investor", core.DomainStrategy, 3)
		require.NoError(t, err)
		require.True(t, resp.Found())

		assert.Equal(t, core.DomainStrategy, resp.Domain)
		assert.Equal(t, "seed investor", resp.Query)
		assert.Equal(t, "slide-strategies.csv", resp.Source)
		require.Equal(t, 1, resp.Count)
		assert.Equal(t, "YC Seed Deck", resp.Results[0].Record.Get("strategy_name"))
		assert.Greater(t, resp.Results[0].Score, 0.0)
	})

	t.Run("results carry only output fields present in the row", func(t *testing.T) {
		resp, err := s.Search(ctx, "seed", core.DomainStrategy, 3)
		require.NoError(t, err)
		require.Equal(t, 1, resp.Count)
		rec := resp.Results[0].Record
		assert.True(t, rec.Has("tone"))
		assert.False(t, rec.Has("structure"), "column missing from the table")
		assert.False(t, rec.Has("sources"))
	})

	t.Run("domain detected from query", func(t *testing.T) {
		resp, err := s.Search(ctx, "funnel chart", "", 3)
		require.NoError(t, err)
		assert.Equal(t, core.DomainChart, resp.Domain)
		require.Equal(t, 2, resp.Count)
		assert.Equal(t, "Funnel Chart", resp.Results[0].Record.Get("chart_type"))
	})

	t.Run("undetectable query falls back to strategy", func(t *testing.T) {
		resp, err := s.Search(ctx, "growth", "", 3)
		require.NoError(t, err)
		assert.Equal(t, core.DomainStrategy, resp.Domain)
		require.Equal(t, 1, resp.Count)
		assert.Equal(t, "Board Update", resp.Results[0].Record.Get("strategy_name"))
	})

	t.Run("max results caps the hits", func(t *testing.T) {
		resp, err := s.Search(ctx, "seed sales board", core.DomainStrategy, 2)
		require.NoError(t, err)
		assert.Equal(t, 2, resp.Count)
		assert.Len(t, resp.Results, 2)
	})

	t.Run("zero max results", func(t *testing.T) {
		resp, err := s.Search(ctx, "seed", core.DomainStrategy, 0)
		require.NoError(t, err)
		assert.Equal(t, 0, resp.Count)
		assert.NotNil(t, resp.Results)
	})

	t.Run("no shared vocabulary", func(t *testing.T) {
		resp, err := s.Search(ctx, "zebra quantum", core.DomainStrategy, 3)
		require.NoError(t, err)
		assert.True(t, resp.Found())
		assert.Equal(t, 0, resp.Count)
		assert.Empty(t, resp.Results)
	})

	t.Run("empty corpus", func(t *testing.T) {
		resp, err := s.Search(ctx, "grid layout", core.DomainLayout, 3)
		require.NoError(t, err)
		assert.True(t, resp.Found())
		assert.Equal(t, 0, resp.Count)
	})

	t.Run("missing source is reported, not returned", func(t *testing.T) {
		resp, err := s.Search(ctx, "headline", core.DomainCopy, 3)
		require.NoError(t, err)
		assert.False(t, resp.Found())
		assert.Equal(t, core.DomainCopy, resp.Domain)
		assert.NotEmpty(t, resp.Error)
		assert.Equal(t, 0, resp.Count)
	})

	t.Run("unknown domain is an error", func(t *testing.T) {
		_, err := s.Search(ctx, "anything", "slides", 3)
		assert.ErrorIs(t, err, core.ErrUnknownDomain)
	})
}

func TestSearch_Deterministic(t *testing.T) {
	ctx := context.Background()
	cols := []string{"formula_name", "keywords"}
	src := storage.NewStaticSource(storage.DatasetFromRows(core.TableCopy, "copy.csv", cols,
		[]string{"First", "hook headline"},
		[]string{"Second", "hook headline"},
		[]string{"Third", "hook headline"},
		[]string{"Other", "benefit stack"},
	))
	s, err := NewSearcher(src)
	require.NoError(t, err)

	first, err := s.Search(ctx, "hook", core.DomainCopy, 10)
	require.NoError(t, err)
	require.Equal(t, 3, first.Count)

	names := func(r *core.SearchResponse) []string {
		out := make([]string, len(r.Results))
		for i, h := range r.Results {
			out[i] = h.Record.Get("formula_name")
		}
		return out
	}
	assert.Equal(t, []string{"First", "Second", "Third"}, names(first))

	for i := 0; i < 5; i++ {
		again, err := s.Search(ctx, "hook", core.DomainCopy, 10)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestSearch_SourceReadFailure(t *testing.T) {
	boom := errors.New("disk on fire")
	s, err := NewSearcher(failingSource{err: boom})
	require.NoError(t, err)

	_, err = s.Search(context.Background(), "pitch", core.DomainStrategy, 3)
	assert.ErrorIs(t, err, boom)
}

func TestSearchAll(t *testing.T) {
	ctx := context.Background()
	s := newTestSearcher(t)

	t.Run("keeps fixed domain order", func(t *testing.T) {
		// The chart hit outscores the strategy hit but strategy still comes first.
		results, err := s.SearchAll(ctx, "growth funnel", 2)
		require.NoError(t, err)
		require.Equal(t, []core.Domain{core.DomainStrategy, core.DomainChart}, results.Domains())

		strategy := results.Get(core.DomainStrategy)
		chart := results.Get(core.DomainChart)
		assert.Greater(t, chart.Results[0].Score, strategy.Results[0].Score)
	})

	t.Run("drops empty and missing domains", func(t *testing.T) {
		results, err := s.SearchAll(ctx, "bar compare", 2)
		require.NoError(t, err)
		assert.Equal(t, []core.Domain{core.DomainChart}, results.Domains())
	})

	t.Run("nothing matches", func(t *testing.T) {
		results, err := s.SearchAll(ctx, "zebra", 2)
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}

type recordingMonitor struct {
	starts   []core.Domain
	detected []core.Domain
	corpora  []int
	missing  []core.Domain
	finished []*core.SearchResponse
}

func (m *recordingMonitor) Start(_ string, d core.Domain) { m.starts = append(m.starts, d) }
func (m *recordingMonitor) AfterDomainDetection(_ string, d core.Domain) {
	m.detected = append(m.detected, d)
}
func (m *recordingMonitor) AfterCorpusBuilt(_ core.Domain, docs, _ int) {
	m.corpora = append(m.corpora, docs)
}
func (m *recordingMonitor) SourceMissing(d core.Domain)   { m.missing = append(m.missing, d) }
func (m *recordingMonitor) Finish(r *core.SearchResponse) { m.finished = append(m.finished, r) }

func TestSearch_Monitor(t *testing.T) {
	ctx := context.Background()
	mon := &recordingMonitor{}
	s := newTestSearcher(t, WithMonitor(mon))

	_, err := s.Search(ctx, "funnel chart", "", 3)
	require.NoError(t, err)
	_, err = s.Search(ctx, "headline", core.DomainCopy, 3)
	require.NoError(t, err)

	assert.Equal(t, []core.Domain{"", core.DomainCopy}, mon.starts)
	assert.Equal(t, []core.Domain{core.DomainChart}, mon.detected)
	assert.Equal(t, []int{2}, mon.corpora)
	assert.Equal(t, []core.Domain{core.DomainCopy}, mon.missing)
	require.Len(t, mon.finished, 2)
	assert.Equal(t, 2, mon.finished[0].Count)
}

func TestSearch_CustomBM25(t *testing.T) {
	ctx := context.Background()
	def := newTestSearcher(t)
	flat := newTestSearcher(t, WithBM25(1.5, 0))

	a, err := def.Search(ctx, "funnel", core.DomainChart, 1)
	require.NoError(t, err)
	b, err := flat.Search(ctx, "funnel", core.DomainChart, 1)
	require.NoError(t, err)

	require.Equal(t, 1, a.Count)
	require.Equal(t, 1, b.Count)
	assert.NotEqual(t, a.Results[0].Score, b.Results[0].Score)
}

type failingSource struct{ err error }

func (f failingSource) Load(context.Context, core.TableName) (*core.Dataset, error) {
	return nil, f.err
}
