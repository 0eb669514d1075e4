// Package errors provides custom error types for the database assistant
// backend client.
package errors

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	ErrInvalidResponse = errors.New("invalid response format")
	ErrBlankFilename   = errors.New("export filename is blank")
)

// QueryHelpError is a soft failure: the backend understood the shape of
// the question but needs clarification, and returned actionable
// rephrasing suggestions.
type QueryHelpError struct {
	Message          string
	Suggestions      []string
	OriginalQuestion string
}

func (e *QueryHelpError) Error() string {
	if e.Message == "" {
		return "query needs clarification"
	}
	return e.Message
}

// Is allows comparison with other QueryHelpErrors
func (e *QueryHelpError) Is(target error) bool {
	_, ok := target.(*QueryHelpError)
	return ok
}

// NewQueryHelpError creates a new QueryHelpError
func NewQueryHelpError(message, originalQuestion string, suggestions []string) *QueryHelpError {
	return &QueryHelpError{
		Message:          message,
		Suggestions:      suggestions,
		OriginalQuestion: originalQuestion,
	}
}

// AppError is an application-level failure: the backend answered with
// success=false and an error text, without the query-help discriminator.
type AppError struct {
	Message string
}

func (e *AppError) Error() string {
	if e.Message == "" {
		return "request failed"
	}
	return e.Message
}

// Is allows comparison with other AppErrors
func (e *AppError) Is(target error) bool {
	_, ok := target.(*AppError)
	return ok
}

// NewAppError creates a new AppError
func NewAppError(message string) *AppError {
	return &AppError{Message: message}
}

// NetworkError is a transport failure before any backend response.
type NetworkError struct {
	Operation string
	Endpoint  string
	Err       error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error during %s at %s: %v", e.Operation, e.Endpoint, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// NewNetworkError creates a new NetworkError wrapping the transport cause
func NewNetworkError(operation, endpoint string, err error) *NetworkError {
	return &NetworkError{Operation: operation, Endpoint: endpoint, Err: err}
}

// APIError is a non-200 HTTP response that did not carry a decodable
// application error body.
type APIError struct {
	StatusCode int
	Endpoint   string
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("API error [%d] at %s: %s", e.StatusCode, e.Endpoint, e.Message)
	}
	return fmt.Sprintf("API error at %s: %s", e.Endpoint, e.Message)
}

// NewAPIError creates a new APIError
func NewAPIError(statusCode int, endpoint, message string) *APIError {
	return &APIError{StatusCode: statusCode, Endpoint: endpoint, Message: message}
}

// ParseError is a response that could not be decoded.
type ParseError struct {
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: %s", e.Message)
}

// Is allows comparison with the ErrInvalidResponse sentinel
func (e *ParseError) Is(target error) bool {
	if target == ErrInvalidResponse {
		return true
	}
	_, ok := target.(*ParseError)
	return ok
}

// NewParseError creates a new ParseError
func NewParseError(message string) *ParseError {
	return &ParseError{Message: message}
}

// DownloadError is a failure while fetching an exported file.
type DownloadError struct {
	Message string
	URL     string
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("download error: %s (%s)", e.Message, e.URL)
}

// NewDownloadError creates a new DownloadError
func NewDownloadError(message, url string) *DownloadError {
	return &DownloadError{Message: message, URL: url}
}

// IsQueryHelp reports whether err is a query-help soft failure.
func IsQueryHelp(err error) bool {
	var qh *QueryHelpError
	return errors.As(err, &qh)
}

// IsAppError reports whether err is an application-level failure.
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// IsNetworkError reports whether err is a transport failure.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// IsCancellation reports whether err is a user-initiated cancellation.
// Cancellation is not a failure: callers must not convert it into an
// error message.
func IsCancellation(err error) bool {
	return errors.Is(err, context.Canceled)
}
