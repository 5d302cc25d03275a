package fusion

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/poiesic/slidesearch/core"
)

// GoalOverride maps any of its phrases, found in a lowercased query, to Goal.
type GoalOverride struct {
	Goal    string
	Phrases []string
}

// Config holds the fixed heuristics of the fusion engine.
// Engines copy the config they are given, so later changes by the caller
// have no effect.
type Config struct {
	// GoalOverrides are checked in order; the first match wins.
	GoalOverrides []GoalOverride

	Animations       map[string]string
	DefaultAnimation string

	// Contrasts is keyed by previous emotion. Only key membership is
	// consulted when deciding a pattern break.
	Contrasts map[string][]string

	HighEmotionBeats []string
	DefaultEmotion   string

	MinPatternBreakSlides int
	MinFullBleedSlides    int

	BaseResultsPerDomain int
}

// DefaultConfig returns the stock heuristics.
func DefaultConfig() Config {
	return Config{
		GoalOverrides: []GoalOverride{
			{Goal: "problem", Phrases: []string{"problem"}},
			{Goal: "solution", Phrases: []string{"solution"}},
			{Goal: "cta", Phrases: []string{"cta", "call to action"}},
			{Goal: "hook", Phrases: []string{"hook", "title"}},
			{Goal: "traction", Phrases: []string{"traction", "metric"}},
		},
		Animations: map[string]string{
			"hook":      "animate-fade-up",
			"problem":   "animate-fade-up",
			"agitation": "animate-count animate-stagger",
			"solution":  "animate-scale",
			"features":  "animate-stagger",
			"traction":  "animate-chart animate-count",
			"proof":     "animate-stagger-scale",
			"social":    "animate-fade-up",
			"cta":       "animate-pulse",
		},
		DefaultAnimation: "animate-fade-up",
		Contrasts: map[string][]string{
			"frustration": {"hope", "relief"},
			"hope":        {"frustration", "fear"},
			"fear":        {"hope", "relief"},
		},
		HighEmotionBeats:      []string{"hope", "urgency", "fear", "curiosity"},
		DefaultEmotion:        "clarity",
		MinPatternBreakSlides: 5,
		MinFullBleedSlides:    3,
		BaseResultsPerDomain:  2,
	}
}

func (c Config) validate() error {
	if c.DefaultAnimation == "" {
		return fmt.Errorf("%w: default animation is empty", ErrInvalidConfig)
	}
	if c.DefaultEmotion == "" {
		return fmt.Errorf("%w: default emotion is empty", ErrInvalidConfig)
	}
	if c.BaseResultsPerDomain < 0 {
		return fmt.Errorf("%w: base results per domain %d", ErrInvalidConfig, c.BaseResultsPerDomain)
	}
	return nil
}

func (c Config) clone() Config {
	out := c
	out.GoalOverrides = make([]GoalOverride, len(c.GoalOverrides))
	for i, o := range c.GoalOverrides {
		out.GoalOverrides[i] = GoalOverride{Goal: o.Goal, Phrases: slices.Clone(o.Phrases)}
	}
	out.Animations = maps.Clone(c.Animations)
	out.Contrasts = make(map[string][]string, len(c.Contrasts))
	for k, v := range c.Contrasts {
		out.Contrasts[k] = slices.Clone(v)
	}
	out.HighEmotionBeats = slices.Clone(c.HighEmotionBeats)
	return out
}

// InferGoal applies the goal overrides to query. When none match, the
// detected domain is the goal.
func (c Config) InferGoal(query string, detected core.Domain) string {
	q := strings.ToLower(query)
	for _, o := range c.GoalOverrides {
		for _, phrase := range o.Phrases {
			if strings.Contains(q, phrase) {
				return o.Goal
			}
		}
	}
	return string(detected)
}

// Animation returns the animation class for goal.
func (c Config) Animation(goal string) string {
	if a, ok := c.Animations[goal]; ok {
		return a
	}
	return c.DefaultAnimation
}

// PatternBreak reports whether the slide at position should break the visual
// pattern. Small decks never break. Otherwise a slide breaks at the one-third
// and two-thirds points, or whenever the previous emotion has a contrast entry.
func (c Config) PatternBreak(position, total int, previousEmotion string) bool {
	if total < c.MinPatternBreakSlides {
		return false
	}
	third := total / 3
	if position == third || position == third*2 {
		return true
	}
	_, ok := c.Contrasts[previousEmotion]
	return ok
}

// FullBleed reports whether the slide at position should use an edge-to-edge
// background. Only high-emotion beats qualify, and only at the first slide,
// the one-third and two-thirds points, or the penultimate slide.
func (c Config) FullBleed(position, total int, emotion string) bool {
	if !slices.Contains(c.HighEmotionBeats, emotion) {
		return false
	}
	if total < c.MinFullBleedSlides {
		return false
	}
	third := total / 3
	return slices.Contains([]int{1, third, third * 2, total - 1}, position)
}

// InferGoal infers a slide goal from query with the stock overrides.
func InferGoal(query string, detected core.Domain) string {
	return DefaultConfig().InferGoal(query, detected)
}

// CalculatePatternBreak applies the stock pattern-break rule.
func CalculatePatternBreak(position, total int, previousEmotion string) bool {
	return DefaultConfig().PatternBreak(position, total, previousEmotion)
}

// ShouldUseFullBleed applies the stock full-bleed rule.
func ShouldUseFullBleed(position, total int, emotion string) bool {
	return DefaultConfig().FullBleed(position, total, emotion)
}
