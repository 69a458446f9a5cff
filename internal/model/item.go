// Package model holds the shopping list entity and the shapes read from
// and written to the shopping_list table.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is one row of the shopping_list table.
type Item struct {
	ID        int64           `json:"id" db:"id"`
	DateAdded time.Time       `json:"date_added" db:"date_added"`
	ItemName  string          `json:"item_name" db:"item_name"`
	Checked   bool            `json:"checked" db:"checked"`
	Category  string          `json:"category" db:"category"`
	Price     decimal.Decimal `json:"price" db:"price"`
}

// NewItem is the insert payload: every column except the store-assigned id.
//
// A zero DateAdded leaves the column to the table default.
type NewItem struct {
	DateAdded time.Time       `json:"date_added"`
	ItemName  string          `json:"item_name" validate:"required"`
	Checked   bool            `json:"checked"`
	Category  string          `json:"category" validate:"required"`
	Price     decimal.Decimal `json:"price"`
}

// ItemPatch is a partial update. Nil fields are left untouched.
//
// It has no ID field, so an update never changes a row's id.
type ItemPatch struct {
	DateAdded *time.Time       `json:"date_added,omitempty"`
	ItemName  *string          `json:"item_name,omitempty" validate:"omitnil,min=1"`
	Checked   *bool            `json:"checked,omitempty"`
	Category  *string          `json:"category,omitempty" validate:"omitnil,min=1"`
	Price     *decimal.Decimal `json:"price,omitempty"`
}

// IsEmpty reports whether the patch sets no field.
func (p ItemPatch) IsEmpty() bool {
	return p.DateAdded == nil &&
		p.ItemName == nil &&
		p.Checked == nil &&
		p.Category == nil &&
		p.Price == nil
}

// Columns returns the column/value pairs the patch sets.
func (p ItemPatch) Columns() map[string]any {
	cols := make(map[string]any, 5)
	if p.DateAdded != nil {
		cols["date_added"] = *p.DateAdded
	}
	if p.ItemName != nil {
		cols["item_name"] = *p.ItemName
	}
	if p.Checked != nil {
		cols["checked"] = *p.Checked
	}
	if p.Category != nil {
		cols["category"] = *p.Category
	}
	if p.Price != nil {
		cols["price"] = *p.Price
	}
	return cols
}
