package api

import (
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-faq-engine/config"
	"github.com/gcbaptista/go-faq-engine/internal/analytics"
	"github.com/gcbaptista/go-faq-engine/internal/cache"
	internalErrors "github.com/gcbaptista/go-faq-engine/internal/errors"
	"github.com/gcbaptista/go-faq-engine/model"
	"github.com/gcbaptista/go-faq-engine/services"
)

const maxRequestBodySize = 1 << 20 // 1 MiB, FAQ corpora are small

// API holds dependencies for API handlers, primarily the FAQ engine manager.
type API struct {
	engine      services.IndexManager
	analytics   *analytics.Service
	answerCache *cache.AnswerCache // nil when caching is not configured
}

// NewAPI creates a new API handler structure.
func NewAPI(engine services.IndexManager, answerCache *cache.AnswerCache) *API {
	return &API{
		engine:      engine,
		analytics:   analytics.NewService(),
		answerCache: answerCache,
	}
}

// SetupRoutes defines all the API routes for the FAQ engine.
func SetupRoutes(router *gin.Engine, engine services.IndexManager, answerCache *cache.AnswerCache) {
	apiHandler := NewAPI(engine, answerCache)

	router.Use(CORSMiddleware())
	router.Use(RequestSizeLimitMiddleware(maxRequestBodySize))

	// Health check route
	router.GET("/health", apiHandler.HealthCheckHandler)

	// Index management routes
	indexRoutes := router.Group("/indexes")
	{
		indexRoutes.POST("", apiHandler.CreateIndexHandler)              // Create a new index over a corpus
		indexRoutes.GET("", apiHandler.ListIndexesHandler)               // List all indexes
		indexRoutes.GET("/:indexName", apiHandler.GetIndexHandler)       // Get index details (settings + corpus size)
		indexRoutes.DELETE("/:indexName", apiHandler.DeleteIndexHandler) // Delete an index

		indexRoutes.GET("/:indexName/faqs", apiHandler.ListFAQsHandler)   // List the corpus the index was built from
		indexRoutes.GET("/:indexName/stats", apiHandler.GetStatsHandler) // Get match statistics

		// Match route per index
		indexRoutes.POST("/:indexName/_match", apiHandler.MatchHandler)
	}
}

// CreateIndexRequest is the payload for index creation: the matcher
// settings plus the full FAQ corpus to build over.
type CreateIndexRequest struct {
	Settings config.MatcherSettings `json:"settings"`
	FAQs     []model.FAQ            `json:"faqs"`
}

// CreateIndexHandler handles the request to create a new index.
// Request Body: CreateIndexRequest
func (api *API) CreateIndexHandler(c *gin.Context) {
	var req CreateIndexRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	if result := ValidateCreateIndexRequest(&req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	if err := api.engine.CreateIndex(req.Settings, req.FAQs); err != nil {
		switch {
		case errors.Is(err, internalErrors.ErrIndexAlreadyExists):
			SendIndexExistsError(c, req.Settings.Name)
		case errors.Is(err, internalErrors.ErrEmptyCorpus):
			SendEmptyCorpusError(c, req.Settings.Name)
		default:
			SendIndexingError(c, "create index", err)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Index '" + req.Settings.Name + "' created successfully",
		"faq_count": len(req.FAQs),
	})
}

// ListIndexesHandler lists the names of all existing indexes.
func (api *API) ListIndexesHandler(c *gin.Context) {
	names := api.engine.ListIndexes()
	sort.Strings(names)
	c.JSON(http.StatusOK, gin.H{
		"indexes": names,
		"count":   len(names),
	})
}

// GetIndexHandler returns the settings and corpus size of one index.
func (api *API) GetIndexHandler(c *gin.Context) {
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

	c.JSON(http.StatusOK, gin.H{
		"settings":  accessor.Settings(),
		"faq_count": len(accessor.FAQs()),
	})
}

// DeleteIndexHandler deletes an index and drops its cached answers and counters.
func (api *API) DeleteIndexHandler(c *gin.Context) {
	indexName := c.Param("indexName")
	if result := ValidateIndexName(indexName); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	if err := api.engine.DeleteIndex(indexName); err != nil {
		if errors.Is(err, internalErrors.ErrIndexNotFound) {
			SendIndexNotFoundError(c, indexName)
			return
		}
		SendInternalError(c, "delete index", err)
		return
	}

	api.analytics.Reset(indexName)
	api.answerCache.InvalidateIndex(c.Request.Context(), indexName)

	c.JSON(http.StatusOK, gin.H{"message": "Index '" + indexName + "' deleted successfully"})
}

// HealthCheckHandler provides a simple health check endpoint
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "go-faq-engine",
		"timestamp": time.Now().Unix(),
	})
}
