package search

import "github.com/poiesic/slidesearch/core"

// DomainSpec selects which fields of a domain's records are searched and
// which are returned.
type DomainSpec struct {
	Domain       core.Domain
	SearchFields []string
	OutputFields []string
}

// DefaultDomainSpecs returns the field configuration of every domain in the
// fixed domain order.
func DefaultDomainSpecs() []DomainSpec {
	return []DomainSpec{
		{
			Domain:       core.DomainStrategy,
			SearchFields: []string{"strategy_name", "keywords", "goal", "audience", "narrative_arc"},
			OutputFields: []string{"strategy_name", "keywords", "slide_count", "structure", "goal", "audience", "tone", "narrative_arc", "sources"},
		},
		{
			Domain:       core.DomainLayout,
			SearchFields: []string{"layout_name", "keywords", "use_case", "recommended_for"},
			OutputFields: []string{"layout_name", "keywords", "use_case", "content_zones", "visual_weight", "cta_placement", "recommended_for", "avoid_for", "css_structure"},
		},
		{
			Domain:       core.DomainCopy,
			SearchFields: []string{"formula_name", "keywords", "use_case", "emotion_trigger", "slide_type"},
			OutputFields: []string{"formula_name", "keywords", "components", "use_case", "example_template", "emotion_trigger", "slide_type", "source"},
		},
		{
			Domain:       core.DomainChart,
			SearchFields: []string{"chart_type", "keywords", "best_for", "when_to_use", "slide_context"},
			OutputFields: []string{"chart_type", "keywords", "best_for", "data_type", "when_to_use", "when_to_avoid", "max_categories", "slide_context", "css_implementation", "accessibility_notes"},
		},
	}
}
