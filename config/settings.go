// Package config provides configuration structures for the FAQ engine.
// It defines matcher settings such as the confidence threshold and
// normalization options.
package config

import (
	"strings"
)

// DefaultConfidenceThreshold is the minimum cosine similarity a candidate
// must reach before the matcher accepts it as an answer. It governs the
// precision/recall trade-off and can be overridden per index (settings)
// or per call (query).
const DefaultConfidenceThreshold = 0.3

// MatcherSettings contains all configuration options for one FAQ index.
//
// ConfidenceThreshold is a tunable, not a hard requirement: the shipped
// default was chosen against a small evaluation set and callers are
// expected to adjust it for their own corpus.
type MatcherSettings struct {
	Name                string   `json:"name"`                 // Unique name for the index (e.g., "admissions")
	ConfidenceThreshold float64  `json:"confidence_threshold"` // Minimum similarity in [0,1] to accept a match
	DisableStemming     bool     `json:"disable_stemming"`     // Skip the suffix-stripping step during normalization
	ExtraStopwords      []string `json:"extra_stopwords"`      // Corpus-specific stopwords removed in addition to the built-in set
}

// Validate checks the settings for basic requirements and returns a list
// of human-readable conflicts. An empty list means the settings are usable.
func (settings *MatcherSettings) Validate() []string {
	var conflicts []string

	if strings.TrimSpace(settings.Name) == "" {
		conflicts = append(conflicts, "Index name cannot be empty or whitespace-only")
	}

	if settings.ConfidenceThreshold < 0 || settings.ConfidenceThreshold > 1 {
		conflicts = append(conflicts, "Confidence threshold must be within [0, 1]")
	}

	conflicts = append(conflicts, checkDuplicates("extra_stopwords", settings.ExtraStopwords)...)

	for _, word := range settings.ExtraStopwords {
		if strings.TrimSpace(word) == "" {
			conflicts = append(conflicts, "Stopword cannot be empty or whitespace-only")
		}
	}

	return conflicts
}

// checkDuplicates checks for duplicate values in a slice and returns error messages
func checkDuplicates(fieldName string, values []string) []string {
	var errors []string
	seen := make(map[string]bool)

	for _, value := range values {
		if seen[value] {
			errors = append(errors, "Duplicate value '"+value+"' found in "+fieldName)
		}
		seen[value] = true
	}

	return errors
}

// ApplyDefaults applies default values to the matcher settings
func (settings *MatcherSettings) ApplyDefaults() {
	if settings.ConfidenceThreshold == 0 {
		settings.ConfidenceThreshold = DefaultConfidenceThreshold
	}

	// Initialize empty slices if nil to prevent nil pointer issues
	if settings.ExtraStopwords == nil {
		settings.ExtraStopwords = []string{}
	}
}
