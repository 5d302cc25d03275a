package decision

import "github.com/poiesic/slidesearch/core"

// Key columns and fallback keys.
const (
	layoutKey     = "goal"
	typographyKey = "content_type"
	colorKey      = "emotion"
	backgroundKey = "slide_type"

	FallbackGoal    = "features"
	FallbackEmotion = "clarity"
)

// LayoutRule is one row of the layout-logic table.
type LayoutRule struct {
	Goal         string
	Pattern      string
	Direction    string
	VisualWeight string
	Emotion      string
	// BreakPattern and UseBackgroundImage are set only by the literal "true".
	BreakPattern       bool
	UseBackgroundImage bool
}

func layoutRuleFromRecord(r core.Record) LayoutRule {
	return LayoutRule{
		Goal:               r.Get(layoutKey),
		Pattern:            r.Get("layout_pattern"),
		Direction:          r.Get("direction"),
		VisualWeight:       r.Get("visual_weight"),
		Emotion:            r.Get("emotion"),
		BreakPattern:       r.Get("break_pattern") == "true",
		UseBackgroundImage: r.Get("use_bg_image") == "true",
	}
}

// TypographyRule is one row of the typography table.
type TypographyRule struct {
	ContentType    string
	PrimarySize    string
	SecondarySize  string
	WeightContrast string
}

func typographyRuleFromRecord(r core.Record) TypographyRule {
	return TypographyRule{
		ContentType:    r.Get(typographyKey),
		PrimarySize:    r.Get("primary_size"),
		SecondarySize:  r.Get("secondary_size"),
		WeightContrast: r.Get("weight_contrast"),
	}
}

// Typography converts the rule into its output form.
func (t TypographyRule) Typography() *core.Typography {
	return &core.Typography{
		PrimarySize:    t.PrimarySize,
		SecondarySize:  t.SecondarySize,
		WeightContrast: t.WeightContrast,
	}
}

// ColorRule is one row of the color-logic table.
type ColorRule struct {
	Emotion     string
	Background  string
	TextColor   string
	AccentUsage string
	CardStyle   string
}

func colorRuleFromRecord(r core.Record) ColorRule {
	return ColorRule{
		Emotion:     r.Get(colorKey),
		Background:  r.Get("background"),
		TextColor:   r.Get("text_color"),
		AccentUsage: r.Get("accent_usage"),
		CardStyle:   r.Get("card_style"),
	}
}

// ColorTreatment converts the rule into its output form.
func (c ColorRule) ColorTreatment() *core.ColorTreatment {
	return &core.ColorTreatment{
		Background:  c.Background,
		TextColor:   c.TextColor,
		AccentUsage: c.AccentUsage,
		CardStyle:   c.CardStyle,
	}
}

// BackgroundRule is one row of the backgrounds table.
type BackgroundRule struct {
	SlideType      string
	ImageCategory  string
	OverlayStyle   string
	SearchKeywords string
}

func backgroundRuleFromRecord(r core.Record) BackgroundRule {
	return BackgroundRule{
		SlideType:      r.Get(backgroundKey),
		ImageCategory:  r.Get("image_category"),
		OverlayStyle:   r.Get("overlay_style"),
		SearchKeywords: r.Get("search_keywords"),
	}
}

// Background converts the rule into its output form.
func (b BackgroundRule) Background() *core.Background {
	return &core.Background{
		ImageCategory:  b.ImageCategory,
		OverlayStyle:   b.OverlayStyle,
		SearchKeywords: b.SearchKeywords,
	}
}
