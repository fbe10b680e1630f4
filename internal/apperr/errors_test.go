package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/mpavlovic/rankwatch/internal/apperr"
)

func TestNewValidation(t *testing.T) {
	err := apperr.NewValidation("targets list is empty")

	if err.Error() != "targets list is empty" {
		t.Errorf("expected 'targets list is empty', got %q", err.Error())
	}
	if err.Unwrap() != nil {
		t.Errorf("expected nil unwrap, got %v", err.Unwrap())
	}
}

func TestNewValidationWrap(t *testing.T) {
	inner := fmt.Errorf("parse failed")
	err := apperr.NewValidationWrap("invalid targets file", inner)

	if err.Error() != "invalid targets file: parse failed" {
		t.Errorf("expected 'invalid targets file: parse failed', got %q", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("expected Unwrap to return inner error")
	}
}

func TestValidationError_SurvivesFmtWrapping(t *testing.T) {
	original := apperr.NewValidation("no target products")

	wrapped := fmt.Errorf("presence check: %w", original)
	doubleWrapped := fmt.Errorf("run failed: %w", wrapped)

	var ve *apperr.ValidationError
	if !errors.As(doubleWrapped, &ve) {
		t.Fatal("errors.As should find ValidationError through double wrapping")
	}
	if ve.Message != "no target products" {
		t.Errorf("expected 'no target products', got %q", ve.Message)
	}
}

func TestValidationError_NotFoundForPlainErrors(t *testing.T) {
	plain := fmt.Errorf("connection refused")
	wrapped := fmt.Errorf("search failed: %w", plain)

	var ve *apperr.ValidationError
	if errors.As(wrapped, &ve) {
		t.Fatal("errors.As should NOT find ValidationError in plain error chain")
	}
}
