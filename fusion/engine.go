package fusion

import (
	"context"
	"log/slog"

	"github.com/poiesic/slidesearch/core"
	"github.com/poiesic/slidesearch/decision"
)

// Searcher is the search capability the engine draws on.
type Searcher interface {
	DetectDomain(query string) core.Domain
	SearchAll(ctx context.Context, query string, maxResultsPerDomain int) (core.DomainResults, error)
}

// RuleTables is the decision-table capability the engine draws on.
type RuleTables interface {
	Layout(ctx context.Context, goal string) (decision.LayoutRule, bool, error)
	TypographyFor(ctx context.Context, slideType string, hints decision.Hints) (decision.TypographyRule, bool, error)
	Color(ctx context.Context, emotion string) (decision.ColorRule, bool, error)
	Background(ctx context.Context, slideType string) (decision.BackgroundRule, bool, error)
}

// Engine merges search results and decision-table lookups into one
// recommendation per slide. It keeps no state between calls.
type Engine struct {
	searcher Searcher
	tables   RuleTables
	config   Config
	logger   *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// WithConfig replaces the stock heuristics.
func WithConfig(cfg Config) Option {
	return func(e *Engine) error {
		if err := cfg.validate(); err != nil {
			return err
		}
		e.config = cfg.clone()
		return nil
	}
}

// NewEngine creates a fusion engine.
func NewEngine(searcher Searcher, tables RuleTables, opts ...Option) (*Engine, error) {
	if searcher == nil {
		return nil, ErrSearcherRequired
	}
	if tables == nil {
		return nil, ErrTablesRequired
	}
	e := &Engine{
		searcher: searcher,
		tables:   tables,
		config:   DefaultConfig(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Config returns a copy of the engine's heuristics.
func (e *Engine) Config() Config {
	return e.config.clone()
}

// InferGoal detects the domain of query and applies the goal overrides.
func (e *Engine) InferGoal(query string) string {
	return e.config.InferGoal(query, e.searcher.DetectDomain(query))
}

// SearchWithContext builds the recommendation for the slide at position in a
// deck of total slides. previousEmotion is the resolved emotion of the slide
// before it, or "" for none; callers planning a deck thread it from one call
// to the next.
func (e *Engine) SearchWithContext(ctx context.Context, query string, position, total int, previousEmotion string) (*core.ContextResponse, error) {
	base, err := e.searcher.SearchAll(ctx, query, e.config.BaseResultsPerDomain)
	if err != nil {
		return nil, err
	}

	goal := e.InferGoal(query)
	rc := &core.RecommendationContext{
		SlidePosition:   position,
		TotalSlides:     total,
		PreviousEmotion: previousEmotion,
		InferredGoal:    goal,
	}

	layout, hasLayout, err := e.tables.Layout(ctx, goal)
	if err != nil {
		return nil, err
	}
	if hasLayout {
		rc.RecommendedLayout = layout.Pattern
		rc.LayoutDirection = layout.Direction
		rc.VisualWeight = layout.VisualWeight
		rc.UseBackgroundImage = layout.UseBackgroundImage
		if layout.BreakPattern && previousEmotion != "" {
			rc.PatternBreakHint = &core.PatternBreakHint{ContrastWith: previousEmotion}
		}
	}

	typo, ok, err := e.tables.TypographyFor(ctx, goal, decision.Hints{})
	if err != nil {
		return nil, err
	}
	if ok {
		rc.Typography = typo.Typography()
	}

	// An empty emotion cell resolves to the default rather than "". The color
	// lookup falls back to the default for it anyway, so the reported emotion
	// names the treatment actually applied, and PlanDeck threads that name
	// into the next slide's previous emotion.
	rc.Emotion = e.config.DefaultEmotion
	if hasLayout && layout.Emotion != "" {
		rc.Emotion = layout.Emotion
	}
	color, ok, err := e.tables.Color(ctx, rc.Emotion)
	if err != nil {
		return nil, err
	}
	if ok {
		rc.ColorTreatment = color.ColorTreatment()
	}

	rc.ShouldBreakPattern = e.config.PatternBreak(position, total, previousEmotion)
	rc.ShouldUseFullBleed = e.config.FullBleed(position, total, rc.Emotion)

	if rc.UseBackgroundImage {
		bg, ok, err := e.tables.Background(ctx, goal)
		if err != nil {
			return nil, err
		}
		if ok {
			rc.Background = bg.Background()
		}
	}

	rc.AnimationClass = e.config.Animation(goal)

	e.logger.Debug("slide context resolved",
		"goal", goal,
		"position", position,
		"total", total,
		"emotion", rc.Emotion,
		"breakPattern", rc.ShouldBreakPattern,
		"fullBleed", rc.ShouldUseFullBleed)

	return &core.ContextResponse{
		Query:       query,
		Context:     rc,
		BaseResults: base,
	}, nil
}

// PlanDeck resolves one recommendation per query, treating the queries as
// consecutive slides of a single deck. Each slide's emotion becomes the next
// slide's previous emotion.
func (e *Engine) PlanDeck(ctx context.Context, queries []string) ([]*core.ContextResponse, error) {
	plan := make([]*core.ContextResponse, 0, len(queries))
	previous := ""
	for i, query := range queries {
		resp, err := e.SearchWithContext(ctx, query, i+1, len(queries), previous)
		if err != nil {
			return nil, err
		}
		plan = append(plan, resp)
		previous = resp.Context.Emotion
	}
	return plan, nil
}
