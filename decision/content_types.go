package decision

// Content types selected by typography hints.
const (
	ContentTypeMetric  = "metric-callout"
	ContentTypeQuote   = "quote-block"
	DefaultContentType = "feature-grid"
)

// Hints describe slide content that overrides the slide-type mapping.
type Hints struct {
	HasMetrics bool
	HasQuote   bool
}

// DefaultContentTypes returns the slide-type to typography content-type map.
func DefaultContentTypes() map[string]string {
	return map[string]string{
		"hero":        "hero-statement",
		"hook":        "hero-statement",
		"title":       "title-only",
		"problem":     "subtitle-heavy",
		"agitation":   "metric-callout",
		"solution":    "subtitle-heavy",
		"features":    "feature-grid",
		"proof":       "metric-callout",
		"traction":    "data-insight",
		"social":      "quote-block",
		"testimonial": "testimonial",
		"pricing":     "pricing",
		"team":        "team",
		"cta":         "cta-action",
		"comparison":  "comparison",
		"timeline":    "timeline",
	}
}

// ContentType resolves the typography content type for a slide type.
// Metrics take precedence over quotes, and both over the slide type.
func (t *Tables) ContentType(slideType string, hints Hints) string {
	switch {
	case hints.HasMetrics:
		return ContentTypeMetric
	case hints.HasQuote:
		return ContentTypeQuote
	}
	if ct, ok := t.contentTypes[slideType]; ok {
		return ct
	}
	return DefaultContentType
}
