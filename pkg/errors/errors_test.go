package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name         string
		err          *Error
		expectedType ErrorType
		expectedMsg  string
	}{
		{
			name:         "validation",
			err:          Validation("Username is required in the body"),
			expectedType: ErrorTypeValidation,
			expectedMsg:  "Username is required in the body",
		},
		{
			name:         "upstream status",
			err:          UpstreamStatus(404, "Not Found"),
			expectedType: ErrorTypeUpstream,
			expectedMsg:  "API Error: 404 - Not Found",
		},
		{
			name:         "no response",
			err:          NoResponse(context.DeadlineExceeded),
			expectedType: ErrorTypeNoResponse,
			expectedMsg:  "No response received from API",
		},
		{
			name:         "request setup",
			err:          RequestSetup(errors.New("bad url")),
			expectedType: ErrorTypeRequestSetup,
			expectedMsg:  "Request error: bad url",
		},
		{
			name:         "internal",
			err:          Internal(errors.New("boom")),
			expectedType: ErrorTypeInternal,
			expectedMsg:  GenericMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedType, tt.err.Type)
			assert.Equal(t, tt.expectedMsg, tt.err.Error())
		})
	}
}

func TestUpstreamStatusKeepsCode(t *testing.T) {
	err := UpstreamStatus(429, "Too Many Requests")
	assert.Equal(t, 429, err.Code)
	assert.Equal(t, "Too Many Requests", err.StatusText)
}

func TestUnwrap(t *testing.T) {
	err := NoResponse(context.Canceled)
	assert.ErrorIs(t, err, context.Canceled)

	wrapped := fmt.Errorf("fetch profile: %w", err)
	assert.Equal(t, ErrorTypeNoResponse, TypeOf(wrapped))
}

func TestIsUpstream(t *testing.T) {
	assert.True(t, IsUpstream(UpstreamStatus(500, "Internal Server Error")))
	assert.True(t, IsUpstream(NoResponse(nil)))
	assert.True(t, IsUpstream(RequestSetup(errors.New("x"))))
	assert.True(t, IsUpstream(Parsing(errors.New("x"))))
	assert.False(t, IsUpstream(Validation("x")))
	assert.False(t, IsUpstream(errors.New("plain")))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(Validation("x")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(UpstreamStatus(404, "Not Found")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(NoResponse(nil)))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("plain")))
}

func TestPublicMessage(t *testing.T) {
	upstream := UpstreamStatus(403, "Forbidden")

	t.Run("development passes upstream message through", func(t *testing.T) {
		assert.Equal(t, "API Error: 403 - Forbidden", PublicMessage(upstream, false))
	})

	t.Run("production hides upstream message", func(t *testing.T) {
		assert.Equal(t, GenericMessage, PublicMessage(upstream, true))
	})

	t.Run("validation is always shown", func(t *testing.T) {
		assert.Equal(t, "bad", PublicMessage(Validation("bad"), true))
	})

	t.Run("unclassified errors are generic", func(t *testing.T) {
		assert.Equal(t, GenericMessage, PublicMessage(errors.New("secret detail"), false))
	})
}
