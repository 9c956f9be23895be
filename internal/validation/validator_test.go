package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type request struct {
	Name     string `json:"name" validate:"required,max=10"`
	CoverURL string `json:"cover_url,omitempty" validate:"omitempty,url"`
	Rating   *int   `json:"rating" validate:"required,gte=0,lte=5"`
}

func TestValidator(t *testing.T) {
	v := New()
	three, seven := 3, 7

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, v.Validate(request{Name: "alice", Rating: &three}))
	})

	t.Run("fields use json names", func(t *testing.T) {
		err := v.Validate(request{CoverURL: "not a url", Rating: &seven})

		var verr *Error
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, map[string]string{
			"name":      "is required",
			"cover_url": "must be a valid URL",
			"rating":    "must be less than or equal to 5",
		}, verr.Fields)
		assert.ErrorIs(t, err, ErrInvalid)
		assert.Equal(t, "validation failed: cover_url must be a valid URL; name is required; rating must be less than or equal to 5", err.Error())
	})

	t.Run("missing pointer", func(t *testing.T) {
		err := v.Validate(request{Name: "alice"})

		var verr *Error
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "is required", verr.Fields["rating"])
	})

	t.Run("max length", func(t *testing.T) {
		err := v.Validate(request{Name: "a very long name", Rating: &three})

		var verr *Error
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "must not exceed 10", verr.Fields["name"])
	})
}
