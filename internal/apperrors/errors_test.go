package apperrors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindValidation, http.StatusBadRequest},
		{KindNotFound, http.StatusNotFound},
		{KindConflict, http.StatusConflict},
		{KindForbidden, http.StatusForbidden},
		{KindRateLimited, http.StatusTooManyRequests},
		{KindTimeout, http.StatusGatewayTimeout},
		{KindInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.kind))
	}
}

func TestFrom_PassesThroughAppErrors(t *testing.T) {
	orig := Conflict("email already in use")
	got := From(fmt.Errorf("create user: %w", orig))
	assert.Equal(t, KindConflict, got.Kind)
	assert.Equal(t, "email already in use", got.Message)
}

func TestFrom_DeadlineBecomesTimeout(t *testing.T) {
	got := From(fmt.Errorf("query: %w", context.DeadlineExceeded))
	assert.Equal(t, KindTimeout, got.Kind)
}

func TestFrom_UnknownBecomesInternal(t *testing.T) {
	cause := errors.New("boom")
	got := From(cause)
	assert.Equal(t, KindInternal, got.Kind)
	assert.Equal(t, "internal server error", got.Message)
	assert.ErrorIs(t, got, cause)
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "user not found", NotFound("user not found").Error())

	wrapped := Internal("internal server error", errors.New("pg down"))
	assert.Equal(t, "internal server error: pg down", wrapped.Error())
}
