package search

import (
	"maps"
	"strings"
)

// DefaultSynonyms returns the built-in abbreviation expansions.
func DefaultSynonyms() map[string]string {
	return map[string]string{
		"nlp": "natural language processing",
		"ml":  "machine learning",
		"ai":  "artificial intelligence",
		"cv":  "computer vision",
		"ds":  "data science",
		"iot": "internet of things",
	}
}

// Expander normalizes queries and replaces whole-query abbreviations with
// their canonical phrases.
type Expander struct {
	synonyms map[string]string
}

// NewExpander creates an Expander. Keys and values are trimmed and lowercased.
func NewExpander(synonyms map[string]string) *Expander {
	normalized := make(map[string]string, len(synonyms))
	for k, v := range synonyms {
		normalized[normalizeQuery(k)] = normalizeQuery(v)
	}
	return &Expander{synonyms: normalized}
}

// Expand trims and lowercases query, then substitutes the canonical phrase
// if the entire query is a known abbreviation. It never fails; the result
// may be empty.
func (e *Expander) Expand(query string) string {
	q := normalizeQuery(query)
	if expanded, ok := e.synonyms[q]; ok {
		return expanded
	}
	return q
}

// Synonyms returns a copy of the expansion table.
func (e *Expander) Synonyms() map[string]string {
	return maps.Clone(e.synonyms)
}

func normalizeQuery(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
