package fusion

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/slidesearch/core"
	"github.com/poiesic/slidesearch/decision"
	"github.com/poiesic/slidesearch/search"
	"github.com/poiesic/slidesearch/storage"
	"github.com/poiesic/slidesearch/storage/csvsource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEmbeddedEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	src := csvsource.Embedded()
	searcher, err := search.NewSearcher(src)
	require.NoError(t, err)
	tables, err := decision.NewTables(src)
	require.NoError(t, err)
	engine, err := NewEngine(searcher, tables, opts...)
	require.NoError(t, err)
	return engine
}

func TestNewEngine(t *testing.T) {
	src := storage.NewStaticSource()
	searcher, err := search.NewSearcher(src)
	require.NoError(t, err)
	tables, err := decision.NewTables(src)
	require.NoError(t, err)

	t.Run("valid configuration", func(t *testing.T) {
		engine, err := NewEngine(searcher, tables)
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), engine.Config())
	})

	t.Run("nil searcher", func(t *testing.T) {
		_, err := NewEngine(nil, tables)
		assert.Equal(t, ErrSearcherRequired, err)
	})

	t.Run("nil tables", func(t *testing.T) {
		_, err := NewEngine(searcher, nil)
		assert.Equal(t, ErrTablesRequired, err)
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.DefaultAnimation = ""
		_, err := NewEngine(searcher, tables, WithConfig(cfg))
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("with nil logger", func(t *testing.T) {
		_, err := NewEngine(searcher, tables, WithLogger(nil))
		require.NoError(t, err)
	})
}

func TestSearchWithContext_Problem(t *testing.T) {
	engine := newEmbeddedEngine(t)

	resp, err := engine.SearchWithContext(context.Background(), "problem slide", 2, 9, "")
	require.NoError(t, err)
	require.NotNil(t, resp.Context)

	rc := resp.Context
	assert.Equal(t, "problem slide", resp.Query)
	assert.Equal(t, "problem", rc.InferredGoal)
	assert.Equal(t, "animate-fade-up", rc.AnimationClass)
	assert.Equal(t, 2, rc.SlidePosition)
	assert.Equal(t, 9, rc.TotalSlides)

	assert.Equal(t, "split-screen", rc.RecommendedLayout)
	assert.Equal(t, "left-to-right", rc.LayoutDirection)
	assert.Equal(t, "medium", rc.VisualWeight)
	assert.True(t, rc.UseBackgroundImage)
	assert.Nil(t, rc.PatternBreakHint)

	require.NotNil(t, rc.Typography)
	assert.Equal(t, "var(--text-5xl)", rc.Typography.PrimarySize)

	assert.Equal(t, "frustration", rc.Emotion)
	require.NotNil(t, rc.ColorTreatment)
	assert.Equal(t, "var(--color-dark-800)", rc.ColorTreatment.Background)

	assert.False(t, rc.ShouldBreakPattern)
	assert.False(t, rc.ShouldUseFullBleed)

	require.NotNil(t, rc.Background)
	assert.Equal(t, "frustrated-workplace", rc.Background.ImageCategory)

	assert.NotEmpty(t, resp.BaseResults)
	for _, r := range resp.BaseResults {
		assert.LessOrEqual(t, r.Count, 2)
	}
}

func TestSearchWithContext_PatternBreakHint(t *testing.T) {
	engine := newEmbeddedEngine(t)

	resp, err := engine.SearchWithContext(context.Background(), "our solution", 3, 9, "frustration")
	require.NoError(t, err)

	rc := resp.Context
	assert.Equal(t, "solution", rc.InferredGoal)
	require.NotNil(t, rc.PatternBreakHint)
	assert.Equal(t, "frustration", rc.PatternBreakHint.ContrastWith)
	assert.Equal(t, "hope", rc.Emotion)
	assert.True(t, rc.ShouldBreakPattern)
	assert.True(t, rc.ShouldUseFullBleed)
	require.NotNil(t, rc.Background)
	assert.Equal(t, "collaboration", rc.Background.ImageCategory)
	assert.Equal(t, "animate-scale", rc.AnimationClass)
}

func TestSearchWithContext_BreakingRuleWithoutPreviousEmotion(t *testing.T) {
	engine := newEmbeddedEngine(t)

	resp, err := engine.SearchWithContext(context.Background(), "call to action", 9, 9, "")
	require.NoError(t, err)

	rc := resp.Context
	assert.Equal(t, "cta", rc.InferredGoal)
	assert.Nil(t, rc.PatternBreakHint)
	assert.Equal(t, "urgency", rc.Emotion)
	assert.Equal(t, "animate-pulse", rc.AnimationClass)
	assert.False(t, rc.ShouldUseFullBleed)
}

func TestSearchWithContext_UnmappedGoal(t *testing.T) {
	engine := newEmbeddedEngine(t)

	resp, err := engine.SearchWithContext(context.Background(), "investor pitch deck", 1, 9, "")
	require.NoError(t, err)

	rc := resp.Context
	assert.Equal(t, "strategy", rc.InferredGoal)
	// Layout falls back to the features row.
	assert.Equal(t, "three-column-grid", rc.RecommendedLayout)
	assert.Equal(t, "clarity", rc.Emotion)
	assert.False(t, rc.UseBackgroundImage)
	assert.Nil(t, rc.Background)
	require.NotNil(t, rc.Typography)
	assert.Equal(t, "var(--text-3xl)", rc.Typography.PrimarySize)
	assert.Equal(t, "animate-fade-up", rc.AnimationClass)
	assert.False(t, rc.ShouldUseFullBleed)

	require.NotEmpty(t, resp.BaseResults)
	assert.Equal(t, core.DomainStrategy, resp.BaseResults[0].Domain)
}

func TestSearchWithContext_NoTables(t *testing.T) {
	src := storage.NewStaticSource()
	searcher, err := search.NewSearcher(src)
	require.NoError(t, err)
	tables, err := decision.NewTables(src)
	require.NoError(t, err)
	engine, err := NewEngine(searcher, tables)
	require.NoError(t, err)

	resp, err := engine.SearchWithContext(context.Background(), "hook", 1, 9, "")
	require.NoError(t, err)

	rc := resp.Context
	assert.Equal(t, "hook", rc.InferredGoal)
	assert.Empty(t, rc.RecommendedLayout)
	assert.Nil(t, rc.Typography)
	assert.Nil(t, rc.ColorTreatment)
	assert.Nil(t, rc.Background)
	assert.Equal(t, "clarity", rc.Emotion)
	assert.False(t, rc.ShouldUseFullBleed)
	assert.Empty(t, resp.BaseResults)
}

func TestSearchWithContext_EmptyEmotionUsesDefault(t *testing.T) {
	cols := []string{"goal", "layout_pattern", "emotion", "break_pattern", "use_bg_image"}
	src := storage.NewStaticSource(storage.DatasetFromRows(core.TableLayoutLogic, "layout.csv", cols,
		[]string{"hook", "hero-centered", "", "false", "false"},
	))
	searcher, err := search.NewSearcher(src)
	require.NoError(t, err)
	tables, err := decision.NewTables(src)
	require.NoError(t, err)
	engine, err := NewEngine(searcher, tables)
	require.NoError(t, err)

	resp, err := engine.SearchWithContext(context.Background(), "hook", 1, 9, "")
	require.NoError(t, err)
	assert.Equal(t, "hero-centered", resp.Context.RecommendedLayout)
	assert.Equal(t, "clarity", resp.Context.Emotion)

	plan, err := engine.PlanDeck(context.Background(), []string{"hook", "hook"})
	require.NoError(t, err)
	require.Len(t, plan, 2)
	assert.Equal(t, "clarity", plan[1].Context.PreviousEmotion)
}

func TestSearchWithContext_CustomConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Animations = map[string]string{"problem": "animate-shake"}
	cfg.DefaultAnimation = "animate-none"
	engine := newEmbeddedEngine(t, WithConfig(cfg))

	resp, err := engine.SearchWithContext(context.Background(), "problem slide", 2, 9, "")
	require.NoError(t, err)
	assert.Equal(t, "animate-shake", resp.Context.AnimationClass)

	resp, err = engine.SearchWithContext(context.Background(), "our solution", 3, 9, "")
	require.NoError(t, err)
	assert.Equal(t, "animate-none", resp.Context.AnimationClass)
}

func TestSearchWithContext_Deterministic(t *testing.T) {
	engine := newEmbeddedEngine(t)
	ctx := context.Background()

	first, err := engine.SearchWithContext(ctx, "traction metrics chart", 4, 9, "hope")
	require.NoError(t, err)
	second, err := engine.SearchWithContext(ctx, "traction metrics chart", 4, 9, "hope")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPlanDeck(t *testing.T) {
	engine := newEmbeddedEngine(t)

	plan, err := engine.PlanDeck(context.Background(), []string{
		"hook title",
		"the problem",
		"our solution",
		"call to action",
	})
	require.NoError(t, err)
	require.Len(t, plan, 4)

	goals := make([]string, len(plan))
	for i, p := range plan {
		goals[i] = p.Context.InferredGoal
		assert.Equal(t, i+1, p.Context.SlidePosition)
		assert.Equal(t, 4, p.Context.TotalSlides)
	}
	assert.Equal(t, []string{"hook", "problem", "solution", "cta"}, goals)

	assert.Empty(t, plan[0].Context.PreviousEmotion)
	assert.Equal(t, "curiosity", plan[1].Context.PreviousEmotion)
	assert.Equal(t, "frustration", plan[2].Context.PreviousEmotion)
	assert.Equal(t, "hope", plan[3].Context.PreviousEmotion)

	require.NotNil(t, plan[2].Context.PatternBreakHint)
	assert.Equal(t, "frustration", plan[2].Context.PatternBreakHint.ContrastWith)

	// Four slides is below the pattern-break minimum.
	for _, p := range plan {
		assert.False(t, p.Context.ShouldBreakPattern)
	}
	assert.True(t, plan[0].Context.ShouldUseFullBleed)
	assert.False(t, plan[1].Context.ShouldUseFullBleed)
	assert.True(t, plan[2].Context.ShouldUseFullBleed)
	assert.False(t, plan[3].Context.ShouldUseFullBleed)
}

func TestPlanDeck_Empty(t *testing.T) {
	engine := newEmbeddedEngine(t)
	plan, err := engine.PlanDeck(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, plan)
}

type failingSearcher struct{ err error }

func (f failingSearcher) DetectDomain(string) core.Domain { return core.DomainStrategy }

func (f failingSearcher) SearchAll(context.Context, string, int) (core.DomainResults, error) {
	return nil, f.err
}

func TestSearchWithContext_SearchFailure(t *testing.T) {
	boom := errors.New("search failed")
	tables, err := decision.NewTables(storage.NewStaticSource())
	require.NoError(t, err)
	engine, err := NewEngine(failingSearcher{err: boom}, tables)
	require.NoError(t, err)

	_, err = engine.SearchWithContext(context.Background(), "hook", 1, 9, "")
	assert.ErrorIs(t, err, boom)

	_, err = engine.PlanDeck(context.Background(), []string{"hook"})
	assert.ErrorIs(t, err, boom)
}
