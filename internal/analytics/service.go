// Package analytics tracks aggregate match statistics per index.
// Only counters are kept: individual interactions are never stored,
// so no query history accumulates anywhere.
package analytics

import (
	"sync"

	"github.com/gcbaptista/go-faq-engine/services"
)

// Snapshot is a point-in-time view of one index's match statistics.
type Snapshot struct {
	IndexName      string  `json:"index_name"`
	TotalFAQs      int     `json:"total_faqs"`
	TotalQueries   int     `json:"total_queries"`
	MatchedQueries int     `json:"matched_queries"`
	MatchRate      float64 `json:"match_rate"`           // matched / total, 0 when no queries yet
	AvgConfidence  float64 `json:"avg_confidence"`       // mean score of matched queries
	AvgResponseMs  float64 `json:"avg_response_time_ms"` // mean matcher latency across all queries
}

type indexCounters struct {
	totalQueries   int
	matchedQueries int
	scoreSum       float64
	tookSumMs      int64
}

// Service implements analytics tracking and reporting. The counters map
// is the one piece of shared mutable state in the process, guarded by a
// single mutex; matching itself stays lock-free.
type Service struct {
	mutex    sync.RWMutex
	counters map[string]*indexCounters
}

// NewService creates a new analytics service
func NewService() *Service {
	return &Service{counters: make(map[string]*indexCounters)}
}

// TrackMatch records the outcome of one match call against an index.
func (s *Service) TrackMatch(indexName string, result services.MatchResult) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	counters, exists := s.counters[indexName]
	if !exists {
		counters = &indexCounters{}
		s.counters[indexName] = counters
	}

	counters.totalQueries++
	counters.tookSumMs += result.Took
	if result.Matched {
		counters.matchedQueries++
		counters.scoreSum += result.Score
	}
}

// Snapshot returns the current statistics for an index. totalFAQs is
// supplied by the caller since the corpus size lives with the index,
// not with the counters.
func (s *Service) Snapshot(indexName string, totalFAQs int) Snapshot {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	snapshot := Snapshot{
		IndexName: indexName,
		TotalFAQs: totalFAQs,
	}

	counters, exists := s.counters[indexName]
	if !exists || counters.totalQueries == 0 {
		return snapshot
	}

	snapshot.TotalQueries = counters.totalQueries
	snapshot.MatchedQueries = counters.matchedQueries
	snapshot.MatchRate = float64(counters.matchedQueries) / float64(counters.totalQueries)
	snapshot.AvgResponseMs = float64(counters.tookSumMs) / float64(counters.totalQueries)
	if counters.matchedQueries > 0 {
		snapshot.AvgConfidence = counters.scoreSum / float64(counters.matchedQueries)
	}
	return snapshot
}

// Reset drops the counters for an index, typically after the index is deleted.
func (s *Service) Reset(indexName string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.counters, indexName)
}
