package validation

import (
	"errors"
	"strings"
	"testing"
	"time"

	ttperrors "github.com/Lau0120/tiny-thread-pool/pkg/common/errors"
)

func TestNonNegative(t *testing.T) {
	if err := NonNegative("pool", "WorkerCount", 0); err != nil {
		t.Errorf("expected nil error for zero, got %v", err)
	}
	if err := NonNegative("pool", "WorkerCount", 4); err != nil {
		t.Errorf("expected nil error for positive, got %v", err)
	}

	err := NonNegative("pool", "WorkerCount", -1)
	if err == nil {
		t.Fatal("expected error for negative value")
	}
	if !errors.Is(err, ttperrors.ErrInvalidConfiguration) {
		t.Errorf("expected ErrInvalidConfiguration, got %v", err)
	}
}

func TestPositive(t *testing.T) {
	if err := Positive("timer", "times", 1); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
	if err := Positive("timer", "times", 0); err == nil {
		t.Error("expected error for zero")
	}
}

func TestPositiveDuration(t *testing.T) {
	if err := PositiveDuration("timer", "interval", time.Second); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
	if err := PositiveDuration("timer", "interval", 0); err == nil {
		t.Error("expected error for zero duration")
	}
}

func TestNotEmpty(t *testing.T) {
	if err := NotEmpty("timer", "id", "heartbeat"); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}

	err := NotEmpty("timer", "id", "")
	if err == nil {
		t.Fatal("expected error for empty string")
	}

	var validationErr *ttperrors.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if validationErr.Module != "timer" || validationErr.Field != "id" {
		t.Errorf("unexpected error fields: %+v", validationErr)
	}
	if !strings.Contains(err.Error(), "cannot be empty") {
		t.Errorf("unexpected message: %v", err)
	}
}
