package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	err := New(ErrCodeItemNotFound, "item not found")
	assert.Equal(t, ErrCodeItemNotFound, err.Code)

	cause := fmt.Errorf("underlying error")
	wrapped := Wrap(cause, ErrCodeCommandFailed, "command failed")
	assert.Equal(t, cause, wrapped.Unwrap())

	assert.True(t, Is(wrapped, ErrCodeCommandFailed))
	assert.False(t, Is(wrapped, ErrCodeItemNotFound))

	detailed := err.WithDetail("id", "claude").WithDetail("page", 2)
	assert.Equal(t, "claude", detailed.Details["id"])
	assert.Equal(t, 2, detailed.Details["page"])
}

func TestGetCodeThroughWrapping(t *testing.T) {
	inner := ConfigNotFound("/tmp/deck.yml")
	outer := fmt.Errorf("loading: %w", inner)

	assert.Equal(t, ErrCodeConfigNotFound, GetCode(outer))
	assert.True(t, Is(outer, ErrCodeConfigNotFound))
	assert.Equal(t, ErrorCode(""), GetCode(fmt.Errorf("plain")))
	assert.Equal(t, ErrorCode(""), GetCode(nil))
	assert.False(t, Is(nil, ""))
}

func TestErrorConstructors(t *testing.T) {
	err := ItemNotFound("claude")
	assert.Equal(t, ErrCodeItemNotFound, err.Code)
	assert.Equal(t, "claude", err.Details["id"])

	err = CatalogInvalid(3, "duplicate id")
	assert.Equal(t, ErrCodeCatalogInvalid, err.Code)
	assert.Equal(t, 3, err.Details["index"])
	assert.Contains(t, err.Error(), "catalog entry 3: duplicate id")

	err = HostUnavailable("chromium", fmt.Errorf("no driver"))
	assert.Equal(t, "chromium", err.Details["host"])
	assert.Contains(t, err.Error(), "no driver")
	assert.Contains(t, err.ToJSON(), `"code": "HOST_UNAVAILABLE"`)
}
