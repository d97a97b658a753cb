package server

import (
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/lucas/resume-studio/internal/llm"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"email conflict", &ErrEmailAlreadyExists{Email: "a@b.com"}, http.StatusConflict},
		{"invalid credentials", &ErrInvalidCredentials{}, http.StatusUnauthorized},
		{"password mismatch", &ErrPasswordMismatch{}, http.StatusUnauthorized},
		{"user not found", &ErrUserNotFound{UserID: uuid.New()}, http.StatusNotFound},
		{"validation", &ErrValidation{Field: "email", Message: "required"}, http.StatusBadRequest},
		{"schema violation", &llm.SchemaValidationError{Contract: "resume"}, http.StatusBadGateway},
		{"no model", &llm.NoModelAvailableError{}, http.StatusPaymentRequired},
		{"provider failure", &llm.GenerationError{Message: "upstream 500"}, http.StatusBadGateway},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestGenerationErrorUnwrapsThroughWrapping(t *testing.T) {
	wrapped := &llm.GenerationError{Message: "no model available", Cause: &llm.NoModelAvailableError{}}
	// The inner sentinel wins over the generic provider-failure mapping.
	assert.Equal(t, http.StatusPaymentRequired, HTTPStatus(wrapped))
}
