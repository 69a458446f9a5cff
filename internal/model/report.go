package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemSummary is the name/price/category projection used by the reports.
type ItemSummary struct {
	ItemName string          `json:"item_name" db:"item_name"`
	Price    decimal.Decimal `json:"price" db:"price"`
	Category string          `json:"category" db:"category"`
}

// RecentItem is an ItemSummary with the date it was added.
type RecentItem struct {
	ItemName  string          `json:"item_name" db:"item_name"`
	Price     decimal.Decimal `json:"price" db:"price"`
	Category  string          `json:"category" db:"category"`
	DateAdded time.Time       `json:"date_added" db:"date_added"`
}

// CategoryTotal is the summed price of one category.
type CategoryTotal struct {
	Category string          `json:"category" db:"category"`
	Total    decimal.Decimal `json:"total" db:"total"`
}
