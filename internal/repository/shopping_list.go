package repository

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/deppfellow/shopping-list/internal/model"
	"github.com/jackc/pgx/v5"
)

// ShoppingListRepository is the data access object for shopping_list.
//
// Each method is a single statement. Inputs are not validated and driver
// errors are returned as they are; the table schema is the only authority
// on what a valid row is.
type ShoppingListRepository struct{}

// NewShoppingListRepository returns a stateless ShoppingListRepository.
func NewShoppingListRepository() *ShoppingListRepository {
	return &ShoppingListRepository{}
}

func selectAllItems() sq.SelectBuilder {
	return psql.Select("*").From(TableShoppingList).OrderBy("id")
}

func selectItemByID(id int64) sq.SelectBuilder {
	return psql.Select("*").From(TableShoppingList).Where(sq.Eq{"id": id}).Limit(1)
}

func insertItem(item model.NewItem) sq.InsertBuilder {
	columns := []string{"item_name", "checked", "category", "price"}
	values := []any{item.ItemName, item.Checked, item.Category, item.Price}
	if !item.DateAdded.IsZero() {
		columns = append([]string{"date_added"}, columns...)
		values = append([]any{item.DateAdded}, values...)
	}

	return psql.Insert(TableShoppingList).
		Columns(columns...).
		Values(values...).
		Suffix("RETURNING *")
}

func updateItem(id int64, patch model.ItemPatch) sq.UpdateBuilder {
	return psql.Update(TableShoppingList).
		SetMap(patch.Columns()).
		Where(sq.Eq{"id": id})
}

func deleteItem(id int64) sq.DeleteBuilder {
	return psql.Delete(TableShoppingList).Where(sq.Eq{"id": id})
}

// GetAllItems returns every item in id order; an empty table gives an empty slice.
func (r *ShoppingListRepository) GetAllItems(ctx context.Context, db Querier) ([]model.Item, error) {
	return collect(ctx, db, selectAllItems(), pgx.RowToStructByName[model.Item])
}

// GetByID returns the item with the given id, or nil with no error when
// there is none.
func (r *ShoppingListRepository) GetByID(ctx context.Context, db Querier, id int64) (*model.Item, error) {
	query, args, err := selectItemByID(id).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	item, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.Item])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// InsertItem inserts a row and returns it as stored, including its new id.
func (r *ShoppingListRepository) InsertItem(ctx context.Context, db Querier, newItem model.NewItem) (model.Item, error) {
	query, args, err := insertItem(newItem).ToSql()
	if err != nil {
		return model.Item{}, err
	}

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return model.Item{}, err
	}

	return pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.Item])
}

// UpdateList applies patch to the item with the given id.
//
// Matching no row is not an error. An empty patch issues no statement.
func (r *ShoppingListRepository) UpdateList(ctx context.Context, db Querier, id int64, patch model.ItemPatch) error {
	if patch.IsEmpty() {
		return nil
	}

	query, args, err := updateItem(id, patch).ToSql()
	if err != nil {
		return err
	}

	_, err = db.Exec(ctx, query, args...)
	return err
}

// DeleteItem removes the item with the given id. Matching no row is not an error.
func (r *ShoppingListRepository) DeleteItem(ctx context.Context, db Querier, id int64) error {
	query, args, err := deleteItem(id).ToSql()
	if err != nil {
		return err
	}

	_, err = db.Exec(ctx, query, args...)
	return err
}
