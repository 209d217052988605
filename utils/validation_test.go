package utils

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
)

func TestSanitizeValidationErrorEmail(t *testing.T) {
	// Simulate a validator.ValidationErrors for an email field
	validate := validator.New()

	type TestReq struct {
		Email string `validate:"required,email"`
	}

	err := validate.Struct(TestReq{Email: "not-an-email"})
	if err == nil {
		t.Fatal("expected validation error for invalid email")
	}

	msg := SanitizeValidationError(err)
	if !strings.Contains(msg, "email") {
		t.Errorf("expected error message to mention email, got: %s", msg)
	}
	if !strings.Contains(msg, "valid email address") {
		t.Errorf("expected user-friendly email error, got: %s", msg)
	}
}

func TestSanitizeValidationErrorRequired(t *testing.T) {
	validate := validator.New()

	type TestReq struct {
		Name     string `validate:"required"`
		Password string `validate:"required,min=8"`
	}

	err := validate.Struct(TestReq{})
	if err == nil {
		t.Fatal("expected validation error for missing required fields")
	}

	msg := SanitizeValidationError(err)
	if !strings.Contains(msg, "required") {
		t.Errorf("expected error message to mention 'required', got: %s", msg)
	}
}

func TestSanitizeValidationErrorNilReturnsEmpty(t *testing.T) {
	msg := SanitizeValidationError(nil)
	if msg != "" {
		t.Errorf("expected empty string for nil error, got: %s", msg)
	}
}

func TestSanitizeValidationErrorMinLength(t *testing.T) {
	validate := validator.New()

	type TestReq struct {
		Password string `validate:"required,min=8"`
	}

	err := validate.Struct(TestReq{Password: "short"})
	if err == nil {
		t.Fatal("expected validation error")
	}

	msg := SanitizeValidationError(err)
	if !strings.Contains(msg, "at least") {
		t.Errorf("expected min length message, got: %s", msg)
	}
}

func TestSanitizeValidationErrorNonValidator(t *testing.T) {
	msg := SanitizeValidationError(errors.New("invalid character 'x' looking for beginning of value"))
	if msg != "Invalid request body" {
		t.Errorf("expected generic message, got: %s", msg)
	}
}

func TestSanitizeValidationErrorTimeFormat(t *testing.T) {
	_, err := ParseTime("next tuesday", time.UTC)
	msg := SanitizeValidationError(err)
	if !strings.Contains(msg, "next tuesday") {
		t.Errorf("expected time error to name the value, got: %s", msg)
	}
}

func TestParseTimeLayouts(t *testing.T) {
	jst := time.FixedZone("JST", 9*60*60)
	tests := []struct {
		value string
		want  time.Time
	}{
		{"2024-04-01T10:30:00Z", time.Date(2024, 4, 1, 10, 30, 0, 0, time.UTC)},
		{"2024-04-01T10:30", time.Date(2024, 4, 1, 10, 30, 0, 0, jst)},
		{"2024-04-01 10:30:15", time.Date(2024, 4, 1, 10, 30, 15, 0, jst)},
		{"2024-04-01 10:30", time.Date(2024, 4, 1, 10, 30, 0, 0, jst)},
		{"2024-04-01", time.Date(2024, 4, 1, 0, 0, 0, 0, jst)},
	}
	for _, tt := range tests {
		got, err := ParseTime(tt.value, jst)
		if err != nil {
			t.Errorf("ParseTime(%q) returned error: %v", tt.value, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseTime(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestParseTimeEmpty(t *testing.T) {
	got, err := ParseTime("  ", time.UTC)
	if err != nil || got != nil {
		t.Errorf("expected nil time and nil error, got %v, %v", got, err)
	}
}

func TestParseTimeInvalid(t *testing.T) {
	if _, err := ParseTime("01/04/2024", time.UTC); err == nil {
		t.Error("expected error for unsupported layout")
	}
}
