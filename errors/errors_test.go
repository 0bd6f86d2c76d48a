package errors

import (
	"fmt"
	"net/http"
	"testing"
)

func TestAppErrorMessage(t *testing.T) {
	err := InvalidInput("op", nil, "test message")

	if err.Code != http.StatusBadRequest {
		t.Errorf("expected code %d, got %d", http.StatusBadRequest, err.Code)
	}
	if err.Error() != "test message" {
		t.Errorf("expected error string 'test message', got '%s'", err.Error())
	}
}

func TestErrorWithCause(t *testing.T) {
	cause := fmt.Errorf("cause error")
	err := Provider("op", cause, "test message")

	expected := "test message: cause error"
	if err.Error() != expected {
		t.Errorf("expected '%s', got '%s'", expected, err.Error())
	}
	if err.Unwrap() != cause {
		t.Errorf("expected Unwrap to return the cause")
	}
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
		kind     Kind
	}{
		{"invalid input", InvalidInput("op", nil, "bad"), http.StatusBadRequest, KindInvalidInput},
		{"not found", NotFound("op", nil, "missing"), http.StatusNotFound, KindNotFound},
		{"provider", Provider("op", fmt.Errorf("boom"), "upstream"), http.StatusInternalServerError, KindProvider},
		{"configuration", Configuration("op", nil, "no key"), http.StatusInternalServerError, KindConfiguration},
		{"internal", Internal("op", nil, "oops"), http.StatusInternalServerError, KindInternal},
		{"wrapped", fmt.Errorf("outer: %w", NotFound("op", nil, "missing")), http.StatusNotFound, KindNotFound},
		{"non-custom error", fmt.Errorf("standard error"), http.StatusInternalServerError, KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusCode(tt.err); got != tt.expected {
				t.Errorf("StatusCode() = %v, want %v", got, tt.expected)
			}
			if got := KindOf(tt.err); got != tt.kind {
				t.Errorf("KindOf() = %v, want %v", got, tt.kind)
			}
		})
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(NotFound("op", nil, "missing")) {
		t.Error("expected IsNotFound to be true")
	}
	if IsNotFound(InvalidInput("op", nil, "bad")) {
		t.Error("expected IsNotFound to be false for invalid input")
	}
	if !IsInvalidInput(InvalidInput("op", nil, "bad")) {
		t.Error("expected IsInvalidInput to be true")
	}
}
