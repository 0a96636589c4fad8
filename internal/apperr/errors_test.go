package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/DjordjeVuckovic/support-rag/internal/apperr"
)

func TestNewValidation(t *testing.T) {
	err := apperr.NewValidation("message cannot be empty")

	if err.Error() != "message cannot be empty" {
		t.Errorf("expected 'message cannot be empty', got %q", err.Error())
	}
	if err.Unwrap() != nil {
		t.Errorf("expected nil unwrap, got %v", err.Unwrap())
	}
}

func TestNewValidationWrap(t *testing.T) {
	inner := fmt.Errorf("unexpected end of JSON input")
	err := apperr.NewValidationWrap("invalid body", inner)

	if err.Error() != "invalid body: unexpected end of JSON input" {
		t.Errorf("expected 'invalid body: unexpected end of JSON input', got %q", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("expected Unwrap to return inner error")
	}
}

func TestValidationError_SurvivesFmtWrapping(t *testing.T) {
	original := apperr.NewValidation("blank question")

	wrapped := fmt.Errorf("send message: %w", original)
	doubleWrapped := fmt.Errorf("chat service: %w", wrapped)

	var ve *apperr.ValidationError
	if !errors.As(doubleWrapped, &ve) {
		t.Fatal("errors.As should find ValidationError through double wrapping")
	}
	if ve.Message != "blank question" {
		t.Errorf("expected 'blank question', got %q", ve.Message)
	}
}

func TestValidationError_NotFoundForPlainErrors(t *testing.T) {
	plain := fmt.Errorf("database connection failed")
	wrapped := fmt.Errorf("storage error: %w", plain)

	var ve *apperr.ValidationError
	if errors.As(wrapped, &ve) {
		t.Fatal("errors.As should NOT find ValidationError in plain error chain")
	}
}

func TestProviderError_Unwrap(t *testing.T) {
	cause := errors.New("429 too many requests")
	err := fmt.Errorf("embed question: %w", apperr.NewProvider("openai", "embed", cause))

	var pe *apperr.ProviderError
	if !errors.As(err, &pe) {
		t.Fatal("errors.As should find ProviderError")
	}
	if pe.Provider != "openai" || pe.Operation != "embed" {
		t.Errorf("unexpected provider fields: %+v", pe)
	}
	if !errors.Is(err, cause) {
		t.Error("expected provider error to unwrap to its cause")
	}
}

func TestNotFoundError_Message(t *testing.T) {
	err := apperr.NewNotFound("ground truth file", "eval/ground_truth_rag.json")

	if err.Error() != "ground truth file not found: eval/ground_truth_rag.json" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestInvalidArgumentAndConfiguration(t *testing.T) {
	ia := apperr.NewInvalidArgument("overlap", "must be smaller than chunk size")
	if ia.Error() != "invalid argument overlap: must be smaller than chunk size" {
		t.Errorf("unexpected message %q", ia.Error())
	}

	ce := apperr.NewConfiguration("OPENAI_API_KEY", "is not configured")
	if ce.Error() != "configuration error: OPENAI_API_KEY: is not configured" {
		t.Errorf("unexpected message %q", ce.Error())
	}
}
