package search

import (
	"errors"
	"maps"
	"math"
)

// Config holds the resolver tunables.
type Config struct {
	// SimilarityThreshold is the score a record must strictly exceed to be a
	// semantic match. Scores are cosine similarities in [-1, 1].
	SimilarityThreshold float32

	// FallbackCount is the number of best-scoring records returned when no
	// record clears the threshold.
	FallbackCount int

	// Synonyms maps whole-query abbreviations to canonical phrases.
	Synonyms map[string]string
}

// DefaultConfig returns the standard tunables.
func DefaultConfig() *Config {
	return &Config{
		SimilarityThreshold: 0.35,
		FallbackCount:       5,
		Synonyms:            DefaultSynonyms(),
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if math.IsNaN(float64(c.SimilarityThreshold)) || c.SimilarityThreshold < -1 || c.SimilarityThreshold > 1 {
		return errors.New("search config: SimilarityThreshold must be between -1 and 1")
	}
	if c.FallbackCount < 1 {
		return errors.New("search config: FallbackCount must be at least 1")
	}
	return nil
}

func (c *Config) clone() *Config {
	out := *c
	out.Synonyms = maps.Clone(c.Synonyms)
	return &out
}
