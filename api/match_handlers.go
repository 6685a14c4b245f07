package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	internalErrors "github.com/gcbaptista/go-faq-engine/internal/errors"
	"github.com/gcbaptista/go-faq-engine/services"
)

// noMatchAnswer is returned in the match envelope when no FAQ clears
// the confidence threshold.
const noMatchAnswer = "I couldn't find a matching answer. Please try rephrasing your question."

// MatchRequest defines the structure for match queries.
type MatchRequest struct {
	Query     string   `json:"query"`
	Threshold *float64 `json:"threshold,omitempty"` // Optional: override the index confidence threshold for this call
}

// MatchResponse is the transport envelope around a core MatchResult.
type MatchResponse struct {
	Query           string    `json:"query"`
	Answer          string    `json:"answer"`
	Confidence      float64   `json:"confidence"`
	MatchedQuestion string    `json:"matched_question,omitempty"`
	Matched         bool      `json:"matched"`
	QueryID         string    `json:"query_id,omitempty"`
	Cached          bool      `json:"cached,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
}

// MatchHandler handles match requests against an index.
// Request Body: MatchRequest
//
// A confident match returns 200; a no-match outcome returns 404 with a
// fallback answer and the best score found, mirroring the behavior of
// the web chat this API fronts. An empty query is a client error at
// this layer even though the core tolerates it.
func (api *API) MatchHandler(c *gin.Context) {
	indexName := c.Param("indexName")
	if result := ValidateIndexName(indexName); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	accessor, err := api.engine.GetIndex(indexName)
	if err != nil {
		if errors.Is(err, internalErrors.ErrIndexNotFound) {
			SendIndexNotFoundError(c, indexName)
			return
		}
		SendInternalError(c, "get index", err)
		return
	}

	var req MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	if strings.TrimSpace(req.Query) == "" {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidQuery, "Query cannot be empty")
		return
	}
	if result := ValidateThreshold(req.Threshold); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	effectiveThreshold := accessor.Settings().ConfidenceThreshold
	if req.Threshold != nil {
		effectiveThreshold = *req.Threshold
	}

	ctx := c.Request.Context()
	if cached, hit := api.answerCache.Get(ctx, indexName, req.Query, effectiveThreshold); hit {
		api.analytics.TrackMatch(indexName, cached)
		sendMatchResponse(c, req.Query, cached, true)
		return
	}

	result, err := accessor.Match(services.MatchQuery{Query: req.Query, Threshold: req.Threshold})
	if err != nil {
		SendMatchError(c, indexName, err)
		return
	}

	api.analytics.TrackMatch(indexName, result)
	api.answerCache.Set(ctx, indexName, req.Query, effectiveThreshold, result)

	sendMatchResponse(c, req.Query, result, false)
}

func sendMatchResponse(c *gin.Context, query string, result services.MatchResult, cached bool) {
	response := MatchResponse{
		Query:           query,
		Answer:          result.Answer,
		Confidence:      result.Score,
		MatchedQuestion: result.MatchedQuestion,
		Matched:         result.Matched,
		QueryID:         result.QueryID,
		Cached:          cached,
		Timestamp:       time.Now(),
	}

	if !result.Matched {
		response.Answer = noMatchAnswer
		c.JSON(http.StatusNotFound, response)
		return
	}
	c.JSON(http.StatusOK, response)
}

// ListFAQsHandler returns the corpus an index was built from.
func (api *API) ListFAQsHandler(c *gin.Context) {
	indexName := c.Param("indexName")
	if result := ValidateIndexName(indexName); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	accessor, err := api.engine.GetIndex(indexName)
	if err != nil {
		SendIndexNotFoundError(c, indexName)
		return
	}

	faqs := accessor.FAQs()
	c.JSON(http.StatusOK, gin.H{
		"faqs":  faqs,
		"count": len(faqs),
	})
}

// GetStatsHandler returns aggregate match statistics for an index.
func (api *API) GetStatsHandler(c *gin.Context) {
	indexName := c.Param("indexName")
	if result := ValidateIndexName(indexName); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	accessor, err := api.engine.GetIndex(indexName)
	if err != nil {
		SendIndexNotFoundError(c, indexName)
		return
	}

	c.JSON(http.StatusOK, api.analytics.Snapshot(indexName, len(accessor.FAQs())))
}
