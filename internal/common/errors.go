package common

import (
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeConfiguration for configuration-related errors
	ErrorTypeConfiguration ErrorType = "configuration"
	// ErrorTypeStorage for storage/persistence errors
	ErrorTypeStorage ErrorType = "storage"
	// ErrorTypeNetwork for network-related errors
	ErrorTypeNetwork ErrorType = "network"
	// ErrorTypeJira for Jira API errors
	ErrorTypeJira ErrorType = "jira"
	// ErrorTypeRender for dashboard rendering errors
	ErrorTypeRender ErrorType = "render"
	// ErrorTypeInternal for internal system errors
	ErrorTypeInternal ErrorType = "internal"
)

// DashboardError represents a structured error with context
type DashboardError struct {
	Type      ErrorType              `json:"type"`
	Code      string                 `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Context   map[string]interface{} `json:"context,omitempty"`
	Cause     error                  `json:"-"`
}

// Error implements the error interface
func (e *DashboardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s:%s] %s: %s", e.Type, e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Type, e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *DashboardError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *DashboardError) WithContext(key string, value interface{}) *DashboardError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewError creates a new DashboardError
func NewError(errorType ErrorType, code, message string) *DashboardError {
	return &DashboardError{
		Type:      errorType,
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// NewJiraError creates a Jira API error
func NewJiraError(code, message string) *DashboardError {
	return NewError(ErrorTypeJira, code, message)
}

// NewStorageError creates a storage error
func NewStorageError(code, message string) *DashboardError {
	return NewError(ErrorTypeStorage, code, message)
}

// WrapError wraps an existing error with DashboardError context
func WrapError(err error, errorType ErrorType, code, message string) *DashboardError {
	return &DashboardError{
		Type:      errorType,
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
		Cause:     err,
	}
}
