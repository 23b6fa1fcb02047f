package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_KindsUnwrap(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		kind error
		msg  string
	}{
		{"validation", Validation("title is required"), ErrValidation, "title is required"},
		{"unauthorized", Unauthorized("invalid token"), ErrUnauthorized, "invalid token"},
		{"conflict", Conflict("email already exists"), ErrConflict, "email already exists"},
		{"not found", NotFound("not found"), ErrNotFound, "not found"},
		{"formatted", Validation("rating must be between %d and %d", 1, 5), ErrValidation, "rating must be between 1 and 5"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.ErrorIs(t, tt.err, tt.kind)
			assert.Equal(t, tt.msg, tt.err.Error())
		})
	}
}

func TestPublicMessage(t *testing.T) {
	t.Parallel()

	t.Run("wrapped app error keeps its message", func(t *testing.T) {
		err := fmt.Errorf("add item: %w", Validation("title is required"))

		msg, ok := PublicMessage(err)

		assert.True(t, ok)
		assert.Equal(t, "title is required", msg)
	})

	t.Run("plain error has no public message", func(t *testing.T) {
		msg, ok := PublicMessage(errors.New("dial tcp: connection refused"))

		assert.False(t, ok)
		assert.Empty(t, msg)
	})

	t.Run("kind sentinel is not an app error", func(t *testing.T) {
		_, ok := PublicMessage(fmt.Errorf("%w: pool timeout", ErrResourceExhausted))

		assert.False(t, ok)
	})
}
