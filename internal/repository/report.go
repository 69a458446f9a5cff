package repository

import (
	"context"
	"math"

	sq "github.com/Masterminds/squirrel"
	"github.com/deppfellow/shopping-list/internal/model"
	"github.com/jackc/pgx/v5"
)

// ProductsPerPage is the fixed page size of Paginate.
const ProductsPerPage = 6

// ReportRepository runs the read-only reporting queries over shopping_list.
type ReportRepository struct{}

// NewReportRepository returns a stateless ReportRepository.
func NewReportRepository() *ReportRepository {
	return &ReportRepository{}
}

func searchByName(term string) sq.SelectBuilder {
	return psql.Select("item_name", "price", "category").
		From(TableShoppingList).
		Where(sq.ILike{"item_name": "%" + term + "%"}).
		OrderBy("id")
}

// pageOffset returns the row offset of a 1-based page; pages below 1 read as page 1.
// Offsets past the bigint range are clamped to math.MaxInt64, which reads as an empty page.
func pageOffset(page int) uint64 {
	if page < 1 {
		page = 1
	}
	skipped := uint64(page - 1)
	if skipped > math.MaxInt64/ProductsPerPage {
		return math.MaxInt64
	}
	return ProductsPerPage * skipped
}

func paginate(page int) sq.SelectBuilder {
	return psql.Select("item_name", "price", "category").
		From(TableShoppingList).
		OrderBy("id").
		Limit(ProductsPerPage).
		Offset(pageOffset(page))
}

func addedSince(daysAgo int) sq.SelectBuilder {
	return psql.Select("item_name", "price", "category", "date_added").
		From(TableShoppingList).
		Where(sq.Expr("date_added > now() - make_interval(days => ?)", daysAgo)).
		OrderBy("date_added DESC")
}

func costPerCategory() sq.SelectBuilder {
	return psql.Select("category", "SUM(price) AS total").
		From(TableShoppingList).
		GroupBy("category").
		OrderBy("category")
}

// SearchByName returns items whose name contains term, ignoring case.
// term is matched as-is, so % and _ keep their LIKE meaning.
func (r *ReportRepository) SearchByName(ctx context.Context, db Querier, term string) ([]model.ItemSummary, error) {
	return collect(ctx, db, searchByName(term), pgx.RowToStructByName[model.ItemSummary])
}

// Paginate returns the given 1-based page of ProductsPerPage items.
func (r *ReportRepository) Paginate(ctx context.Context, db Querier, page int) ([]model.ItemSummary, error) {
	return collect(ctx, db, paginate(page), pgx.RowToStructByName[model.ItemSummary])
}

// AddedSince returns items added within the last daysAgo days, newest first.
func (r *ReportRepository) AddedSince(ctx context.Context, db Querier, daysAgo int) ([]model.RecentItem, error) {
	return collect(ctx, db, addedSince(daysAgo), pgx.RowToStructByName[model.RecentItem])
}

// CostPerCategory sums prices per category.
func (r *ReportRepository) CostPerCategory(ctx context.Context, db Querier) ([]model.CategoryTotal, error) {
	return collect(ctx, db, costPerCategory(), pgx.RowToStructByName[model.CategoryTotal])
}
