package model

import (
	"github.com/deppfellow/shopping-list/internal/validation"
	"github.com/shopspring/decimal"
)

// Validate checks a NewItem before it is inserted.
func (n NewItem) Validate() error {
	if err := validation.Struct(n); err != nil {
		return err
	}
	return checkPrice(&n.Price)
}

// Validate checks the fields an ItemPatch sets. An empty patch is valid.
func (p ItemPatch) Validate() error {
	if err := validation.Struct(p); err != nil {
		return err
	}
	return checkPrice(p.Price)
}

func checkPrice(price *decimal.Decimal) error {
	if price != nil && price.IsNegative() {
		return validation.CustomValidationErrors{
			{Field: "price", Message: "must not be negative"},
		}
	}
	return nil
}
