package model

import (
	"errors"
	"testing"

	"github.com/deppfellow/shopping-list/internal/errs"
	"github.com/deppfellow/shopping-list/internal/validation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldErrors(t *testing.T, err error) []errs.FieldError {
	t.Helper()
	var appErr *errs.Error
	require.True(t, errors.As(err, &appErr), "expected *errs.Error, got %T", err)
	assert.Equal(t, errs.KindInvalid, appErr.Kind)
	assert.Equal(t, "Validation failed", appErr.Message)
	return appErr.Errors
}

func TestNewItemValidate(t *testing.T) {
	valid := NewItem{ItemName: "Fish tricks", Category: "Main", Price: decimal.RequireFromString("13.10")}
	assert.NoError(t, validation.Validate(valid))

	got := fieldErrors(t, validation.Validate(NewItem{Price: decimal.RequireFromString("1")}))
	assert.ElementsMatch(t, []errs.FieldError{
		{Field: "item_name", Error: "is required"},
		{Field: "category", Error: "is required"},
	}, got)

	negative := valid
	negative.Price = decimal.RequireFromString("-0.01")
	got = fieldErrors(t, validation.Validate(negative))
	assert.Equal(t, []errs.FieldError{{Field: "price", Error: "must not be negative"}}, got)
}

func TestItemPatchValidate(t *testing.T) {
	assert.NoError(t, validation.Validate(ItemPatch{}))
	assert.NoError(t, validation.Validate(ItemPatch{ItemName: ptr("renamed"), Checked: ptr(true)}))

	got := fieldErrors(t, validation.Validate(ItemPatch{Category: ptr("")}))
	assert.Equal(t, []errs.FieldError{{Field: "category", Error: "must be at least 1 characters"}}, got)

	price := decimal.RequireFromString("-5")
	got = fieldErrors(t, validation.Validate(ItemPatch{Price: &price}))
	assert.Equal(t, "price", got[0].Field)
}
