// Package fusion merges ranked search results with the decision tables and
// the slide's place in its deck to produce a single design recommendation.
//
// The engine is a pure function of (query, position, total, previous
// emotion). Callers that build a whole deck carry the previous emotion from
// one slide to the next, or use Engine.PlanDeck which does so.
package fusion
