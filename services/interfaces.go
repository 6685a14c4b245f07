package services

import (
	"github.com/gcbaptista/go-faq-engine/config"
	"github.com/gcbaptista/go-faq-engine/model"
)

// MatchQuery represents a single free-text question posed to an index.
type MatchQuery struct {
	Query     string   `json:"query"`
	Threshold *float64 `json:"threshold,omitempty"` // Optional: override the index confidence threshold for this call
}

// MatchResult is the outcome of matching one query against an index.
// A no-match is not an error: Matched is false, Answer and MatchedQuestion
// are empty, and Score carries the best similarity found (possibly 0) so
// callers can still report how close the nearest FAQ was.
type MatchResult struct {
	Matched         bool    `json:"matched"`
	Answer          string  `json:"answer"`
	Score           float64 `json:"score"`
	MatchedQuestion string  `json:"matched_question"`
	MatchedIndex    int     `json:"matched_index"` // Corpus position of the matched entry, -1 when no entry scored
	QueryID         string  `json:"query_id"`      // Unique UUID for this match call
	Took            int64   `json:"took"`          // Milliseconds
}

// Candidate is one (corpus index, similarity) pair in a ranked score list.
type Candidate struct {
	Index int     `json:"index"`
	Score float64 `json:"score"`
}

// Matcher defines operations for querying an index
type Matcher interface {
	Match(query MatchQuery) (MatchResult, error)
	Rank(query string) ([]Candidate, error)
}

// FAQProvider exposes the immutable corpus an index was built from
type FAQProvider interface {
	FAQs() []model.FAQ
}

// IndexManager manages the lifecycle of FAQ indices. Adding or changing
// entries means rebuilding the index, there is no incremental update.
type IndexManager interface {
	CreateIndex(settings config.MatcherSettings, faqs []model.FAQ) error
	GetIndex(name string) (IndexAccessor, error)
	GetIndexSettings(name string) (config.MatcherSettings, error)
	DeleteIndex(name string) error
	ListIndexes() []string
}

// IndexAccessor combines the per-index capabilities exposed to adapters.
type IndexAccessor interface {
	Matcher
	FAQProvider
	Settings() config.MatcherSettings
}
