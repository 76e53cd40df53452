package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestDomainErrorMessage(t *testing.T) {
	err := ErrProvider(CodeRateLimitExceeded, "too many requests")
	want := "[provider] RATE_LIMIT_EXCEEDED: too many requests"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	wrapped := ErrProvider(CodeNetworkError, "request failed").WithCause(errors.New("dial tcp"))
	if wrapped.Error() != "[provider] NETWORK_ERROR: request failed (dial tcp)" {
		t.Errorf("Error() = %q", wrapped.Error())
	}
}

func TestDomainErrorUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := ErrProvider(CodeTimeout, "timed out").WithCause(cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should reach the cause")
	}
	if errors.Unwrap(err) != cause {
		t.Error("Unwrap should return the cause")
	}
}

func TestDomainErrorIsMatchesCategoryAndCode(t *testing.T) {
	a := ErrProvider(CodeRateLimitExceeded, "first")
	b := ErrProvider(CodeRateLimitExceeded, "second")
	c := ErrProvider(CodeTimeout, "third")

	if !errors.Is(a, b) {
		t.Error("same category and code should match")
	}
	if errors.Is(a, c) {
		t.Error("different code should not match")
	}
}

func TestRetryableByCode(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{CodeRateLimitExceeded, true},
		{CodeNetworkError, true},
		{CodeTimeout, true},
		{CodeUnknown, true},
		{CodeInsufficientQuota, false},
		{CodeInvalidAPIKey, false},
		{CodeModelNotFound, false},
		{CodeContentFiltered, false},
		{CodeContextLengthExceeded, false},
		{CodeProviderValidation, false},
	}
	for _, tt := range tests {
		err := ErrProvider(tt.code, "x")
		if got := IsRetryable(err); got != tt.want {
			t.Errorf("IsRetryable(%s) = %v, want %v", tt.code, got, tt.want)
		}
	}

	if IsRetryable(errors.New("plain")) {
		t.Error("plain errors are never retryable")
	}
}

func TestCategoryHelpers(t *testing.T) {
	err := ErrValidation(CodeInvalidInput, "bad input")
	if GetCategory(err) != ErrCatValidation {
		t.Errorf("GetCategory = %v", GetCategory(err))
	}
	if !IsCategory(err, ErrCatValidation) || IsCategory(err, ErrCatProvider) {
		t.Error("IsCategory mismatch")
	}

	wrapped := fmt.Errorf("outer: %w", err)
	if GetCategory(wrapped) != ErrCatValidation {
		t.Error("GetCategory should see through wrapping")
	}
	if GetCategory(errors.New("plain")) != ErrCatInternal {
		t.Error("plain errors fall back to internal")
	}
}

func TestErrAgentCarriesDetails(t *testing.T) {
	err := ErrAgent("technical", "analysis failed")
	if err.Details["agent"] != "technical" {
		t.Errorf("details = %v", err.Details)
	}

	err = err.WithDetail("attempt", 2)
	if err.Details["attempt"] != 2 {
		t.Errorf("details = %v", err.Details)
	}
}
