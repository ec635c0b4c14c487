package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusOf_MapsTaxonomyToHTTP(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", NotFound("Tour", "abc"), http.StatusNotFound},
		{"conflict", Conflict("EMAIL_EXISTS", "email is already in use"), http.StatusConflict},
		{"unauthorized", Unauthorized("nope"), http.StatusUnauthorized},
		{"forbidden", Forbidden("admins only"), http.StatusForbidden},
		{"invalid", Invalid("bad input"), http.StatusBadRequest},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped sentinel", fmt.Errorf("outer: %w", ErrNotFound), http.StatusNotFound},
		{"wrapped typed", fmt.Errorf("outer: %w", Invalid("bad")), http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusOf(tt.err); got != tt.want {
				t.Fatalf("StatusOf=%d, want %d", got, tt.want)
			}
		})
	}
}

func TestCodeOf_PrefersTypedCode(t *testing.T) {
	if got := CodeOf(Conflict("ALREADY_IN_WISHLIST", "dup")); got != "ALREADY_IN_WISHLIST" {
		t.Fatalf("CodeOf=%q", got)
	}
	if got := CodeOf(errors.New("boom")); got != "INTERNAL" {
		t.Fatalf("CodeOf=%q, want INTERNAL", got)
	}
}

func TestSentinels_SurviveWrapping(t *testing.T) {
	err := fmt.Errorf("service: %w", NotFound("User", "id"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected errors.Is to see ErrNotFound through wrapping")
	}
	var ae *Error
	if !errors.As(err, &ae) {
		t.Fatalf("expected errors.As to find *Error")
	}
	if ae.Status != http.StatusNotFound {
		t.Fatalf("status=%d", ae.Status)
	}
}
