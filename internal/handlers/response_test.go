package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/wayfarer-travel/wayfarer-backend/internal/apperr"
)

func TestRespondError_MapsTaxonomyToStatusAndCode(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", apperr.NotFound("Tour", "abc"), http.StatusNotFound, "NOT_FOUND"},
		{"conflict", apperr.Conflict("ALREADY_IN_WISHLIST", "dup"), http.StatusConflict, "ALREADY_IN_WISHLIST"},
		{"unauthorized", apperr.Unauthorized("nope"), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"invalid", apperr.Invalid("bad"), http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"internal", errors.New("boom"), http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			RespondError(c, tt.err)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status=%d, want %d", rec.Code, tt.wantStatus)
			}
			var envelope ErrorEnvelope
			if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if envelope.Error.Code != tt.wantCode {
				t.Fatalf("code=%q, want %q", envelope.Error.Code, tt.wantCode)
			}
			if envelope.Error.Message == "" {
				t.Fatalf("expected a message")
			}
		})
	}
}
