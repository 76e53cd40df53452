package core

import (
	"errors"
	"fmt"
)

// ErrorCategory classifies errors for handling decisions.
type ErrorCategory string

const (
	ErrCatConfig     ErrorCategory = "config"     // Bad client/app setup, pre-network
	ErrCatValidation ErrorCategory = "validation" // Invalid caller input
	ErrCatProvider   ErrorCategory = "provider"   // LLM backend failure
	ErrCatParse      ErrorCategory = "parse"      // Model output non-conforming
	ErrCatAgent      ErrorCategory = "agent"      // Agent execution failure
	ErrCatPipeline   ErrorCategory = "pipeline"   // Unexpected failure at the summarizer boundary
	ErrCatInternal   ErrorCategory = "internal"   // Unexpected internal error
)

// Provider error codes. Each maps to exactly one retryable decision;
// see retryableCodes.
const (
	CodeRateLimitExceeded     = "RATE_LIMIT_EXCEEDED"
	CodeInsufficientQuota     = "INSUFFICIENT_QUOTA"
	CodeInvalidAPIKey         = "INVALID_API_KEY"
	CodeModelNotFound         = "MODEL_NOT_FOUND"
	CodeContentFiltered       = "CONTENT_FILTERED"
	CodeContextLengthExceeded = "CONTEXT_LENGTH_EXCEEDED"
	CodeNetworkError          = "NETWORK_ERROR"
	CodeTimeout               = "TIMEOUT"
	CodeProviderValidation    = "VALIDATION_ERROR"
	CodeUnknown               = "UNKNOWN"
)

// Configuration and validation error codes.
const (
	CodeUnsupportedProvider = "UNSUPPORTED_PROVIDER"
	CodeUnsupportedModel    = "UNSUPPORTED_MODEL"
	CodeMissingAPIKey       = "MISSING_API_KEY"
	CodeInvalidInput        = "INVALID_INPUT"
	CodeEmptyRegistry       = "EMPTY_REGISTRY"
)

var retryableCodes = map[string]bool{
	CodeRateLimitExceeded: true,
	CodeNetworkError:      true,
	CodeTimeout:           true,
	CodeUnknown:           true,
}

// DomainError represents a structured error from any layer of the pipeline.
type DomainError struct {
	Category  ErrorCategory
	Code      string
	Message   string
	Retryable bool
	Cause     error
	Details   map[string]interface{}
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %s (%v)", e.Category, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Category, e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches a target.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Category == t.Category && e.Code == t.Code
}

// WithCause wraps an underlying error.
func (e *DomainError) WithCause(cause error) *DomainError {
	e.Cause = cause
	return e
}

// WithDetail adds contextual information.
func (e *DomainError) WithDetail(key string, value interface{}) *DomainError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ErrConfiguration creates a configuration error. Always fatal.
func ErrConfiguration(code, message string) *DomainError {
	return &DomainError{
		Category:  ErrCatConfig,
		Code:      code,
		Message:   message,
		Retryable: false,
	}
}

// ErrValidation creates an input validation error.
func ErrValidation(code, message string) *DomainError {
	return &DomainError{
		Category:  ErrCatValidation,
		Code:      code,
		Message:   message,
		Retryable: false,
	}
}

// ErrProvider creates a provider error. The retryable flag is derived
// from the code so every call site classifies consistently.
func ErrProvider(code, message string) *DomainError {
	return &DomainError{
		Category:  ErrCatProvider,
		Code:      code,
		Message:   message,
		Retryable: retryableCodes[code],
	}
}

// ErrParse creates a parse error for non-conforming model output.
func ErrParse(message string) *DomainError {
	return &DomainError{
		Category:  ErrCatParse,
		Code:      "PARSE_FAILED",
		Message:   message,
		Retryable: false,
	}
}

// ErrAgent creates an agent failure error.
func ErrAgent(agent, message string) *DomainError {
	return &DomainError{
		Category:  ErrCatAgent,
		Code:      "AGENT_FAILED",
		Message:   message,
		Retryable: false,
		Details:   map[string]interface{}{"agent": agent},
	}
}

// ErrPipeline creates a pipeline failure error.
func ErrPipeline(message string) *DomainError {
	return &DomainError{
		Category:  ErrCatPipeline,
		Code:      "PIPELINE_FAILED",
		Message:   message,
		Retryable: false,
	}
}

// IsRetryable checks if an error is retryable.
func IsRetryable(err error) bool {
	var domErr *DomainError
	if errors.As(err, &domErr) {
		return domErr.Retryable
	}
	return false
}

// GetCategory extracts the error category.
func GetCategory(err error) ErrorCategory {
	var domErr *DomainError
	if errors.As(err, &domErr) {
		return domErr.Category
	}
	return ErrCatInternal
}

// IsCategory checks if an error belongs to a category.
func IsCategory(err error, cat ErrorCategory) bool {
	return GetCategory(err) == cat
}
