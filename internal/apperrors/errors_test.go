package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusMapping(t *testing.T) {
	tests := []struct {
		err  *Error
		want int
	}{
		{Validation("bad input"), http.StatusBadRequest},
		{Authorization("not yours"), http.StatusForbidden},
		{OutOfRange("too far"), http.StatusForbidden},
		{NotFound("emergency request"), http.StatusNotFound},
		{Conflict("already finalized"), http.StatusConflict},
		{Dependency(errors.New("mongo down")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := tt.err.HTTPStatus(); got != tt.want {
			t.Errorf("%s → %d, want %d", tt.err.Code, got, tt.want)
		}
	}
}

func TestFromPassesThroughTypedErrors(t *testing.T) {
	typed := Conflict("already accepted")

	got := From(fmt.Errorf("service: %w", typed))
	if got.Code != CodeConflict {
		t.Errorf("code = %s, want %s", got.Code, CodeConflict)
	}
	if got.Message != "already accepted" {
		t.Errorf("message = %q", got.Message)
	}
}

func TestFromWrapsUnknownAsDependency(t *testing.T) {
	got := From(errors.New("connection refused"))
	if got.Code != CodeDependency {
		t.Errorf("code = %s, want %s", got.Code, CodeDependency)
	}
	if got.Unwrap() == nil {
		t.Error("cause should be preserved")
	}
}

func TestIsCode(t *testing.T) {
	err := fmt.Errorf("outer: %w", NotFound("hospital"))

	if !IsCode(err, CodeNotFound) {
		t.Error("IsCode should see through wrapping")
	}
	if IsCode(err, CodeConflict) {
		t.Error("IsCode should not match a different code")
	}
	if IsCode(errors.New("plain"), CodeNotFound) {
		t.Error("IsCode should reject untyped errors")
	}
}
