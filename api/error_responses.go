package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ErrorCode represents standardized error codes for the API
type ErrorCode string

const (
	// Client Error Codes (4xx)
	ErrorCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrorCodeIndexNotFound    ErrorCode = "INDEX_NOT_FOUND"
	ErrorCodeIndexExists      ErrorCode = "INDEX_ALREADY_EXISTS"
	ErrorCodeEmptyCorpus      ErrorCode = "EMPTY_CORPUS"
	ErrorCodeInvalidRequest   ErrorCode = "INVALID_REQUEST"
	ErrorCodeInvalidJSON      ErrorCode = "INVALID_JSON"
	ErrorCodeInvalidQuery     ErrorCode = "INVALID_QUERY"

	// Server Error Codes (5xx)
	ErrorCodeInternalError  ErrorCode = "INTERNAL_ERROR"
	ErrorCodeIndexingFailed ErrorCode = "INDEXING_FAILED"
	ErrorCodeMatchFailed    ErrorCode = "MATCH_FAILED"
)

// ErrorDetail provides additional context for an error
type ErrorDetail struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// APIError represents a standardized API error response
type APIError struct {
	Error     string        `json:"error"`
	Code      ErrorCode     `json:"code"`
	Message   string        `json:"message"`
	Details   []ErrorDetail `json:"details,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// APIErrorResponse creates a standardized error response
func APIErrorResponse(code ErrorCode, message string, details ...ErrorDetail) *APIError {
	return &APIError{
		Error:     "Request failed",
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now(),
	}
}

// SendError sends a standardized error response
func SendError(c *gin.Context, statusCode int, code ErrorCode, message string, details ...ErrorDetail) {
	c.JSON(statusCode, APIErrorResponse(code, message, details...))
}

// SendValidationError sends a validation error with structured details
func SendValidationError(c *gin.Context, result *ValidationResult) {
	details := make([]ErrorDetail, len(result.Errors))
	for i, err := range result.Errors {
		details[i] = ErrorDetail{
			Field:   err.Field,
			Message: err.Message,
			Code:    "VALIDATION_ERROR",
		}
	}

	SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, "Request validation failed", details...)
}

// SendIndexNotFoundError sends a standardized index not found error
func SendIndexNotFoundError(c *gin.Context, indexName string) {
	SendError(c, http.StatusNotFound, ErrorCodeIndexNotFound,
		"Index '"+indexName+"' not found")
}

// SendIndexExistsError sends a standardized index already exists error
func SendIndexExistsError(c *gin.Context, indexName string) {
	SendError(c, http.StatusConflict, ErrorCodeIndexExists,
		"Index '"+indexName+"' already exists")
}

// SendEmptyCorpusError sends a standardized empty corpus error
func SendEmptyCorpusError(c *gin.Context, indexName string) {
	SendError(c, http.StatusBadRequest, ErrorCodeEmptyCorpus,
		"Cannot build index '"+indexName+"' over an empty FAQ corpus")
}

// SendInvalidJSONError sends a standardized invalid JSON error
func SendInvalidJSONError(c *gin.Context, err error) {
	SendError(c, http.StatusBadRequest, ErrorCodeInvalidJSON,
		"Invalid JSON in request body: "+err.Error())
}

// SendInternalError sends a standardized internal server error
func SendInternalError(c *gin.Context, operation string, err error) {
	SendError(c, http.StatusInternalServerError, ErrorCodeInternalError,
		"Internal error during "+operation+": "+err.Error())
}

// SendIndexingError sends a standardized indexing error
func SendIndexingError(c *gin.Context, operation string, err error) {
	SendError(c, http.StatusInternalServerError, ErrorCodeIndexingFailed,
		"Indexing operation failed ("+operation+"): "+err.Error())
}

// SendMatchError sends a standardized match error
func SendMatchError(c *gin.Context, indexName string, err error) {
	SendError(c, http.StatusInternalServerError, ErrorCodeMatchFailed,
		"Match failed on index '"+indexName+"': "+err.Error())
}
