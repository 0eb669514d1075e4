package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestQueryHelpError(t *testing.T) {
	err := NewQueryHelpError("need more detail", "show stuff", []string{"a", "b"})

	if err.Error() != "need more detail" {
		t.Errorf("Error() = %q", err.Error())
	}
	if err.OriginalQuestion != "show stuff" {
		t.Errorf("OriginalQuestion = %q", err.OriginalQuestion)
	}
	if !IsQueryHelp(err) {
		t.Error("IsQueryHelp() = false")
	}

	// Blank message falls back to a generic line.
	blank := NewQueryHelpError("", "", nil)
	if blank.Error() == "" {
		t.Error("blank QueryHelpError has empty Error()")
	}
}

func TestQueryHelpErrorWrapped(t *testing.T) {
	err := fmt.Errorf("submit: %w", NewQueryHelpError("msg", "q", nil))
	if !IsQueryHelp(err) {
		t.Error("IsQueryHelp() = false for wrapped error")
	}

	var qh *QueryHelpError
	if !errors.As(err, &qh) || qh.Message != "msg" {
		t.Error("errors.As failed to recover the QueryHelpError")
	}
}

func TestAppError(t *testing.T) {
	err := NewAppError("table missing")

	if err.Error() != "table missing" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !IsAppError(err) {
		t.Error("IsAppError() = false")
	}
	if IsQueryHelp(err) {
		t.Error("IsQueryHelp() = true for AppError")
	}
}

func TestNetworkErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewNetworkError("ask", "/api/nl-to-sql", cause)

	if !IsNetworkError(err) {
		t.Error("IsNetworkError() = false")
	}
	if !errors.Is(err, cause) {
		t.Error("Unwrap chain lost the cause")
	}
}

func TestAPIError(t *testing.T) {
	err := NewAPIError(502, "/api/nl-to-sql", "bad gateway")

	expected := "API error [502] at /api/nl-to-sql: bad gateway"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestParseErrorIsSentinel(t *testing.T) {
	err := NewParseError("bad body")
	if !errors.Is(err, ErrInvalidResponse) {
		t.Error("ParseError does not match ErrInvalidResponse")
	}
}

func TestIsCancellation(t *testing.T) {
	if !IsCancellation(context.Canceled) {
		t.Error("IsCancellation(context.Canceled) = false")
	}
	if !IsCancellation(fmt.Errorf("wrapped: %w", context.Canceled)) {
		t.Error("IsCancellation() = false for wrapped cancellation")
	}
	if IsCancellation(context.DeadlineExceeded) {
		t.Error("IsCancellation(DeadlineExceeded) = true")
	}
	if IsCancellation(NewAppError("x")) {
		t.Error("IsCancellation(AppError) = true")
	}
}
