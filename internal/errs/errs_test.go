package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorIsMatchesKind(t *testing.T) {
	notFound := NewNotFoundError("Shopping list item not found", true, nil)
	wrapped := fmt.Errorf("get item 7: %w", notFound)

	assert.True(t, errors.Is(wrapped, &Error{Kind: KindNotFound}))
	assert.True(t, errors.Is(wrapped, &Error{}))
	assert.False(t, errors.Is(wrapped, &Error{Kind: KindInvalid}))
	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsNotFound(NewInternalError()))
	assert.False(t, IsNotFound(errors.New("boom")))
}

func TestConstructorsDefaultCodes(t *testing.T) {
	assert.Equal(t, "NOT_FOUND", NewNotFoundError("x", false, nil).Code)
	assert.Equal(t, "INVALID", NewInvalidError("x", false, nil, nil).Code)
	assert.Equal(t, "INTERNAL_ERROR", NewInternalError().Code)

	code := "SHOPPING_LIST_REQUIRED"
	err := NewInvalidError("The Item Name is required", true, &code, []FieldError{{Field: "item_name", Error: "is required"}})
	assert.Equal(t, code, err.Code)
	assert.Equal(t, KindInvalid, err.Kind)
	assert.Len(t, err.Errors, 1)
}
