package core

import (
	"bytes"

	"github.com/goccy/go-json"
)

func marshalJSON(v any) ([]byte, error) {
	return json.Marshal(v)
}

// SearchResponse is the outcome of searching one domain.
// When the domain's backing data is absent, Error is set and the
// remaining fields other than Domain are zero.
type SearchResponse struct {
	Domain  Domain `json:"domain"`
	Query   string `json:"query,omitempty"`
	Source  string `json:"file,omitempty"`
	Count   int    `json:"count"`
	Results []Hit  `json:"results"`
	Error   string `json:"error,omitempty"`
}

// Found reports whether the domain's backing data was present.
func (r *SearchResponse) Found() bool {
	return r != nil && r.Error == ""
}

// DomainResults holds per-domain responses in the fixed domain order.
// It serializes as a JSON object whose keys keep that order.
type DomainResults []*SearchResponse

// Get returns the response for a domain, or nil if it is not included.
func (dr DomainResults) Get(d Domain) *SearchResponse {
	for _, r := range dr {
		if r.Domain == d {
			return r
		}
	}
	return nil
}

// Domains returns the included domains in order.
func (dr DomainResults) Domains() []Domain {
	out := make([]Domain, len(dr))
	for i, r := range dr {
		out[i] = r.Domain
	}
	return out
}

// MarshalJSON writes {"<domain>": <response>, ...} preserving slice order.
func (dr DomainResults) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, r := range dr {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(r.Domain))
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// PatternBreakHint marks a layout whose rule asks to break the visual pattern
// established by the previous slide.
type PatternBreakHint struct {
	ContrastWith string `json:"contrast_with"`
}

// Typography is the type-scale treatment for a slide.
type Typography struct {
	PrimarySize    string `json:"primary_size"`
	SecondarySize  string `json:"secondary_size"`
	WeightContrast string `json:"weight_contrast"`
}

// ColorTreatment is the color handling for an emotional beat.
type ColorTreatment struct {
	Background  string `json:"background"`
	TextColor   string `json:"text_color"`
	AccentUsage string `json:"accent_usage"`
	CardStyle   string `json:"card_style"`
}

// Background is the background-image treatment for a slide type.
type Background struct {
	ImageCategory  string `json:"image_category"`
	OverlayStyle   string `json:"overlay_style"`
	SearchKeywords string `json:"search_keywords"`
}

// RecommendationContext is the merged design recommendation for one slide.
type RecommendationContext struct {
	SlidePosition   int    `json:"slide_position"`
	TotalSlides     int    `json:"total_slides"`
	PreviousEmotion string `json:"previous_emotion,omitempty"`
	InferredGoal    string `json:"inferred_goal"`

	// Layout fields are empty when no layout rule exists.
	RecommendedLayout  string            `json:"recommended_layout,omitempty"`
	LayoutDirection    string            `json:"layout_direction,omitempty"`
	VisualWeight       string            `json:"visual_weight,omitempty"`
	UseBackgroundImage bool              `json:"use_background_image"`
	PatternBreakHint   *PatternBreakHint `json:"pattern_break_hint,omitempty"`

	Typography     *Typography     `json:"typography,omitempty"`
	Emotion        string          `json:"emotion"`
	ColorTreatment *ColorTreatment `json:"color_treatment,omitempty"`

	ShouldBreakPattern bool `json:"should_break_pattern"`
	ShouldUseFullBleed bool `json:"should_use_full_bleed"`

	Background     *Background `json:"background,omitempty"`
	AnimationClass string      `json:"animation_class"`
}

// ContextResponse bundles a slide recommendation with the multi-domain
// search results for the same query.
type ContextResponse struct {
	Query       string                 `json:"query"`
	Context     *RecommendationContext `json:"context"`
	BaseResults DomainResults          `json:"base_results"`
}
