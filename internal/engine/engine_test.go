package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-faq-engine/config"
	internalErrors "github.com/gcbaptista/go-faq-engine/internal/errors"
	"github.com/gcbaptista/go-faq-engine/model"
	"github.com/gcbaptista/go-faq-engine/services"
)

var testFAQs = []model.FAQ{
	{Question: "What are the class timings?", Answer: "9 AM to 4:30 PM"},
	{Question: "What is the admission fee?", Answer: "₹50,000 per year"},
}

func testEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(t.TempDir())
}

func TestCreateAndGetIndex(t *testing.T) {
	eng := testEngine(t)

	err := eng.CreateIndex(config.MatcherSettings{Name: "college"}, testFAQs)
	require.NoError(t, err)

	accessor, err := eng.GetIndex("college")
	require.NoError(t, err)

	result, err := accessor.Match(services.MatchQuery{Query: "class timings"})
	require.NoError(t, err)
	assert.True(t, result.Matched)
	assert.Equal(t, "What are the class timings?", result.MatchedQuestion)
	assert.Greater(t, result.Score, 0.5)

	assert.Len(t, accessor.FAQs(), 2)
	assert.Equal(t, config.DefaultConfidenceThreshold, accessor.Settings().ConfidenceThreshold)
}

func TestCreateIndex_EmptyCorpus(t *testing.T) {
	eng := testEngine(t)

	err := eng.CreateIndex(config.MatcherSettings{Name: "empty"}, []model.FAQ{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, internalErrors.ErrEmptyCorpus), "expected ErrEmptyCorpus, got %v", err)

	_, err = eng.GetIndex("empty")
	assert.Error(t, err, "a failed creation must not register an index")
}

func TestCreateIndex_AlreadyExists(t *testing.T) {
	eng := testEngine(t)

	require.NoError(t, eng.CreateIndex(config.MatcherSettings{Name: "college"}, testFAQs))

	err := eng.CreateIndex(config.MatcherSettings{Name: "college"}, testFAQs)
	require.Error(t, err)
	assert.True(t, errors.Is(err, internalErrors.ErrIndexAlreadyExists))
}

func TestCreateIndex_EmptyName(t *testing.T) {
	eng := testEngine(t)

	err := eng.CreateIndex(config.MatcherSettings{}, testFAQs)
	require.Error(t, err)
	assert.True(t, errors.Is(err, internalErrors.ErrInvalidInput))
}

func TestGetIndex_NotFound(t *testing.T) {
	eng := testEngine(t)

	_, err := eng.GetIndex("missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, internalErrors.ErrIndexNotFound))
}

func TestGetIndexSettings(t *testing.T) {
	eng := testEngine(t)

	settings := config.MatcherSettings{Name: "college", ConfidenceThreshold: 0.42}
	require.NoError(t, eng.CreateIndex(settings, testFAQs))

	got, err := eng.GetIndexSettings("college")
	require.NoError(t, err)
	assert.Equal(t, 0.42, got.ConfidenceThreshold)

	_, err = eng.GetIndexSettings("missing")
	assert.Error(t, err)
}

func TestListIndexes(t *testing.T) {
	eng := testEngine(t)

	assert.Empty(t, eng.ListIndexes())

	require.NoError(t, eng.CreateIndex(config.MatcherSettings{Name: "college"}, testFAQs))
	require.NoError(t, eng.CreateIndex(config.MatcherSettings{Name: "admissions"}, testFAQs))

	names := eng.ListIndexes()
	assert.ElementsMatch(t, []string{"college", "admissions"}, names)
}

func TestDeleteIndex(t *testing.T) {
	eng := testEngine(t)

	require.NoError(t, eng.CreateIndex(config.MatcherSettings{Name: "college"}, testFAQs))
	require.NoError(t, eng.DeleteIndex("college"))

	_, err := eng.GetIndex("college")
	assert.Error(t, err)

	err = eng.DeleteIndex("college")
	require.Error(t, err)
	assert.True(t, errors.Is(err, internalErrors.ErrIndexNotFound))
}

func TestEngine_PersistenceRoundTrip(t *testing.T) {
	dataDir := t.TempDir()

	first := NewEngine(dataDir)
	settings := config.MatcherSettings{Name: "college", ConfidenceThreshold: 0.42, ExtraStopwords: []string{"please"}}
	require.NoError(t, first.CreateIndex(settings, testFAQs))

	// A fresh engine over the same data dir must reload the index as-is.
	second := NewEngine(dataDir)

	accessor, err := second.GetIndex("college")
	require.NoError(t, err)
	assert.Equal(t, 0.42, accessor.Settings().ConfidenceThreshold)
	assert.Len(t, accessor.FAQs(), 2)

	result, err := accessor.Match(services.MatchQuery{Query: "admission fee"})
	require.NoError(t, err)
	assert.True(t, result.Matched)
	assert.Equal(t, 1, result.MatchedIndex)
}

func TestEngine_MatchIsStableAcrossReload(t *testing.T) {
	dataDir := t.TempDir()

	first := NewEngine(dataDir)
	require.NoError(t, first.CreateIndex(config.MatcherSettings{Name: "college"}, testFAQs))
	before, err := mustMatch(first, "college", "class timings")
	require.NoError(t, err)

	second := NewEngine(dataDir)
	after, err := mustMatch(second, "college", "class timings")
	require.NoError(t, err)

	assert.Equal(t, before.Matched, after.Matched)
	assert.Equal(t, before.MatchedIndex, after.MatchedIndex)
	assert.InDelta(t, before.Score, after.Score, 1e-9)
}

func mustMatch(eng *Engine, indexName, query string) (services.MatchResult, error) {
	accessor, err := eng.GetIndex(indexName)
	if err != nil {
		return services.MatchResult{}, err
	}
	return accessor.Match(services.MatchQuery{Query: query})
}
