package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/poiesic/slidesearch/core"
)

type fieldLabel struct {
	label string
	field string
}

type resultFormat struct {
	title  string
	fields []fieldLabel
}

var resultFormats = map[core.Domain]resultFormat{
	core.DomainStrategy: {
		title: "strategy_name",
		fields: []fieldLabel{
			{"Slides", "slide_count"},
			{"Structure", "structure"},
			{"Goal", "goal"},
			{"Audience", "audience"},
			{"Tone", "tone"},
			{"Arc", "narrative_arc"},
			{"Source", "sources"},
		},
	},
	core.DomainLayout: {
		title: "layout_name",
		fields: []fieldLabel{
			{"Use case", "use_case"},
			{"Zones", "content_zones"},
			{"Visual weight", "visual_weight"},
			{"CTA", "cta_placement"},
			{"Recommended", "recommended_for"},
			{"Avoid", "avoid_for"},
			{"CSS", "css_structure"},
		},
	},
	core.DomainCopy: {
		title: "formula_name",
		fields: []fieldLabel{
			{"Components", "components"},
			{"Use case", "use_case"},
			{"Template", "example_template"},
			{"Emotion", "emotion_trigger"},
			{"Slide type", "slide_type"},
			{"Source", "source"},
		},
	},
	core.DomainChart: {
		title: "chart_type",
		fields: []fieldLabel{
			{"Best for", "best_for"},
			{"Data type", "data_type"},
			{"When to use", "when_to_use"},
			{"When to avoid", "when_to_avoid"},
			{"Max categories", "max_categories"},
			{"Slide context", "slide_context"},
			{"CSS", "css_implementation"},
			{"Accessibility", "accessibility_notes"},
		},
	},
}

func valueOrNA(r core.Record, field string) string {
	if !r.Has(field) {
		return "N/A"
	}
	return r.Get(field)
}

func formatResult(w io.Writer, domain core.Domain, r core.Record) {
	f := resultFormats[domain]
	fmt.Fprintf(w, "**%s**\n", valueOrNA(r, f.title))
	for _, fl := range f.fields {
		fmt.Fprintf(w, "  %s: %s\n", fl.label, valueOrNA(r, fl.field))
	}
}

func formatSearch(w io.Writer, resp *core.SearchResponse) {
	if !resp.Found() {
		fmt.Fprintf(w, "Error: %s\n", resp.Error)
		return
	}
	fmt.Fprintf(w, "Domain: %s\n", resp.Domain)
	fmt.Fprintf(w, "Query: %s\n", resp.Query)
	fmt.Fprintf(w, "File: %s\n", resp.Source)
	fmt.Fprintf(w, "Results: %d\n\n", resp.Count)

	if resp.Count == 0 {
		fmt.Fprintln(w, "No matching results found.")
		return
	}
	for i, hit := range resp.Results {
		fmt.Fprintf(w, "--- Result %d ---\n", i+1)
		formatResult(w, resp.Domain, hit.Record)
		fmt.Fprintln(w)
	}
}

func formatAll(w io.Writer, query string, results core.DomainResults) {
	if len(results) == 0 {
		fmt.Fprintf(w, "No results found for: %s\n", query)
		return
	}
	for _, resp := range results {
		fmt.Fprintf(w, "\n=== %s ===\n", strings.ToUpper(string(resp.Domain)))
		fmt.Fprintf(w, "File: %s\n", resp.Source)
		fmt.Fprintf(w, "Results: %d\n\n", resp.Count)
		for _, hit := range resp.Results {
			formatResult(w, resp.Domain, hit.Record)
			fmt.Fprintln(w)
		}
	}
}

func formatContext(w io.Writer, rc *core.RecommendationContext) {
	fmt.Fprintln(w, "\n=== CONTEXTUAL RECOMMENDATIONS ===")
	fmt.Fprintf(w, "Inferred Goal: %s\n", rc.InferredGoal)
	fmt.Fprintf(w, "Position: Slide %d of %d\n", rc.SlidePosition, rc.TotalSlides)

	if rc.RecommendedLayout != "" {
		fmt.Fprintf(w, "\nLayout: %s\n", rc.RecommendedLayout)
		fmt.Fprintf(w, "   Direction: %s\n", rc.LayoutDirection)
		fmt.Fprintf(w, "   Visual Weight: %s\n", rc.VisualWeight)
	}
	if rc.PatternBreakHint != nil {
		fmt.Fprintf(w, "   Contrast with: %s\n", rc.PatternBreakHint.ContrastWith)
	}

	if t := rc.Typography; t != nil {
		fmt.Fprintln(w, "\nTypography:")
		fmt.Fprintf(w, "   Primary: %s\n", t.PrimarySize)
		fmt.Fprintf(w, "   Secondary: %s\n", t.SecondarySize)
		fmt.Fprintf(w, "   Contrast: %s\n", t.WeightContrast)
	}

	fmt.Fprintf(w, "\nEmotion: %s\n", rc.Emotion)
	if c := rc.ColorTreatment; c != nil {
		fmt.Fprintln(w, "\nColor Treatment:")
		fmt.Fprintf(w, "   Background: %s\n", c.Background)
		fmt.Fprintf(w, "   Text: %s\n", c.TextColor)
		fmt.Fprintf(w, "   Accent: %s\n", c.AccentUsage)
		fmt.Fprintf(w, "   Cards: %s\n", c.CardStyle)
	}

	if rc.ShouldBreakPattern {
		fmt.Fprintln(w, "\nPattern Break: YES (use contrasting layout)")
	}
	if rc.ShouldUseFullBleed {
		fmt.Fprintln(w, "\nFull Bleed: Recommended for emotional impact")
	}

	if bg := rc.Background; rc.UseBackgroundImage && bg != nil {
		fmt.Fprintln(w, "\nBackground Image:")
		fmt.Fprintf(w, "   Category: %s\n", bg.ImageCategory)
		fmt.Fprintf(w, "   Overlay: %s\n", bg.OverlayStyle)
		fmt.Fprintf(w, "   Keywords: %s\n", bg.SearchKeywords)
	}

	fmt.Fprintf(w, "\nAnimation: %s\n", rc.AnimationClass)
}

func formatContextResponse(w io.Writer, resp *core.ContextResponse) {
	formatContext(w, resp.Context)
	if len(resp.BaseResults) == 0 {
		return
	}
	fmt.Fprintln(w, "\n\n=== RELATED SEARCH RESULTS ===")
	for _, r := range resp.BaseResults {
		fmt.Fprintf(w, "\n--- %s ---\n", strings.ToUpper(string(r.Domain)))
		for _, hit := range r.Results {
			formatResult(w, r.Domain, hit.Record)
			fmt.Fprintln(w)
		}
	}
}
