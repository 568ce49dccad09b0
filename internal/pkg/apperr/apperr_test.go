package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	t.Run("kinds survive wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("create review: %w", NotFound("project", "abc"))

		var nf *NotFoundError
		assert.True(t, errors.As(wrapped, &nf))
		assert.Equal(t, "project", nf.Entity)
		assert.Equal(t, "abc", nf.Ref)
	})

	t.Run("kinds do not match each other", func(t *testing.T) {
		err := Validation("status", "out of range")

		var nf *NotFoundError
		var ce *ConflictError
		assert.False(t, errors.As(err, &nf))
		assert.False(t, errors.As(err, &ce))

		var ve *ValidationError
		assert.True(t, errors.As(err, &ve))
	})

	t.Run("messages name the offending field or entity", func(t *testing.T) {
		assert.EqualError(t, Validation("author", "must not be empty"), "invalid author: must not be empty")
		assert.EqualError(t, Conflict("review", "share link already taken"), "review conflict: share link already taken")
		assert.EqualError(t, NotFound("design item", "42"), "design item not found: 42")
	})
}
