package matcher

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/gcbaptista/go-faq-engine/config"
	"github.com/gcbaptista/go-faq-engine/index"
	"github.com/gcbaptista/go-faq-engine/internal/tokenizer"
	"github.com/gcbaptista/go-faq-engine/internal/vectorizer"
	"github.com/gcbaptista/go-faq-engine/services"
	"github.com/gcbaptista/go-faq-engine/store"
)

// Service implements the matching logic for a single FAQ index.
// It fulfills the services.Matcher interface. Scoring is pure and
// touches only read-only state, so any number of Match calls may run
// concurrently against the same Service.
type Service struct {
	vectorIndex *index.VectorIndex
	faqStore    *store.FAQStore
	settings    *config.MatcherSettings
}

// NewService creates a new matcher Service.
func NewService(vectorIndex *index.VectorIndex, faqStore *store.FAQStore, settings *config.MatcherSettings) (*Service, error) {
	if vectorIndex == nil {
		return nil, fmt.Errorf("vector index cannot be nil")
	}
	if faqStore == nil {
		return nil, fmt.Errorf("FAQ store cannot be nil")
	}
	if settings == nil {
		return nil, fmt.Errorf("settings cannot be nil")
	}
	return &Service{
		vectorIndex: vectorIndex,
		faqStore:    faqStore,
		settings:    settings,
	}, nil
}

// Rank scores the query against every corpus entry and returns all
// candidates ordered by descending cosine similarity. Both sides are
// unit-normalized with non-negative weights, so similarity reduces to a
// dot product and lies in [0, 1]. Ties keep corpus order: the
// first-inserted FAQ wins.
func (s *Service) Rank(query string) ([]services.Candidate, error) {
	tokens := tokenizer.Normalize(query, vectorizer.NormalizeOptions(s.settings))
	queryVector := vectorizer.Vectorize(tokens, s.vectorIndex.Vocabulary, s.vectorIndex.IDF)

	candidates := make([]services.Candidate, 0, s.vectorIndex.DocCount())
	for i, docVector := range s.vectorIndex.Vectors {
		candidates = append(candidates, services.Candidate{
			Index: i,
			Score: dot(queryVector, docVector),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	return candidates, nil
}

// Match returns the best-matching FAQ answer for a free-text query, or a
// no-match outcome when the top similarity stays below the confidence
// threshold. The caller's threshold override wins over the index
// setting. A zero similarity never matches, regardless of threshold:
// empty queries and queries with no overlapping terms always come back
// as no-match carrying score 0.
func (s *Service) Match(query services.MatchQuery) (services.MatchResult, error) {
	startTime := time.Now()

	threshold := s.settings.ConfidenceThreshold
	if query.Threshold != nil {
		threshold = *query.Threshold
	}

	result := services.MatchResult{
		Matched:      false,
		MatchedIndex: -1,
		QueryID:      uuid.New().String(),
	}

	candidates, err := s.Rank(query.Query)
	if err != nil {
		return services.MatchResult{}, err
	}
	if len(candidates) == 0 {
		result.Took = time.Since(startTime).Milliseconds()
		return result, nil
	}

	best := candidates[0]
	result.Score = best.Score

	if best.Score > 0 && best.Score >= threshold {
		faq, ok := s.faqStore.Get(best.Index)
		if !ok {
			return services.MatchResult{}, fmt.Errorf("corpus entry %d missing from FAQ store", best.Index)
		}
		result.Matched = true
		result.Answer = faq.Answer
		result.MatchedQuestion = faq.Question
		result.MatchedIndex = best.Index
	}

	result.Took = time.Since(startTime).Milliseconds()
	return result, nil
}

// dot computes the dot product of two equal-length dense vectors.
// Zero-norm vectors (zero-term documents or queries) naturally produce
// similarity 0 here; there is no division to guard.
func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
