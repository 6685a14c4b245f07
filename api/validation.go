// Package api provides the HTTP adapter for the FAQ engine: request
// validation, route setup, and translation between transport payloads
// and core matcher calls.
package api

import (
	"fmt"
	"strings"

	"github.com/gcbaptista/go-faq-engine/model"
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds the result of validation operations
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// ValidateIndexName validates an index name parameter
func ValidateIndexName(indexName string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if indexName == "" {
		result.AddError("indexName", "Index name is required")
		return result
	}

	if strings.TrimSpace(indexName) != indexName {
		result.AddError("indexName", "Index name cannot have leading or trailing whitespace")
		return result
	}

	return result
}

// ValidateCreateIndexRequest validates the payload for index creation
func ValidateCreateIndexRequest(req *CreateIndexRequest) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if req == nil {
		result.AddError("request", "Request body is required")
		return result
	}

	if req.Settings.Name == "" {
		result.AddError("settings.name", "Index name is required")
	}

	// Apply defaults before validation
	req.Settings.ApplyDefaults()

	if conflicts := req.Settings.Validate(); len(conflicts) > 0 {
		for _, conflict := range conflicts {
			result.AddError("settings", conflict)
		}
	}

	result.merge(ValidateFAQs(req.FAQs))
	return result
}

// ValidateFAQs validates a corpus supplied for indexing
func ValidateFAQs(faqs []model.FAQ) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if len(faqs) == 0 {
		result.AddError("faqs", "At least one FAQ entry is required")
		return result
	}

	for i, faq := range faqs {
		if strings.TrimSpace(faq.Question) == "" {
			result.AddError(fmt.Sprintf("faqs[%d].question", i), "Question cannot be empty")
		}
		if strings.TrimSpace(faq.Answer) == "" {
			result.AddError(fmt.Sprintf("faqs[%d].answer", i), "Answer cannot be empty")
		}
	}

	return result
}

// ValidateThreshold validates an optional per-call threshold override
func ValidateThreshold(threshold *float64) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if threshold != nil && (*threshold < 0 || *threshold > 1) {
		result.AddError("threshold", "Threshold must be within [0, 1]")
	}

	return result
}

func (vr *ValidationResult) merge(other *ValidationResult) {
	if other == nil {
		return
	}
	for _, err := range other.Errors {
		vr.AddError(err.Field, err.Message)
	}
}
