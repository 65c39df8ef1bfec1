package gateway

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAuthErrorThroughWrapping(t *testing.T) {
	err := fmt.Errorf("listing tasks: %w", &AuthError{Status: 401, Message: "bad key"})
	assert.True(t, IsAuthError(err))
	assert.False(t, IsAuthError(errors.New("boom")))
}

func TestAPIErrorMatchesNotFound(t *testing.T) {
	notFound := fmt.Errorf("download: %w", &APIError{Status: 404, Method: "GET", Path: "/x"})
	assert.ErrorIs(t, notFound, ErrNotFound)

	serverErr := &APIError{Status: 500, Method: "GET", Path: "/x"}
	assert.NotErrorIs(t, serverErr, ErrNotFound)
}
