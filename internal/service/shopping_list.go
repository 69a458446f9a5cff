package service

import (
	"context"
	"fmt"

	"github.com/deppfellow/shopping-list/internal/errs"
	"github.com/deppfellow/shopping-list/internal/model"
	"github.com/deppfellow/shopping-list/internal/repository"
	"github.com/deppfellow/shopping-list/internal/sqlerr"
	"github.com/rs/zerolog"
)

type itemRepository interface {
	GetAllItems(ctx context.Context, db repository.Querier) ([]model.Item, error)
	GetByID(ctx context.Context, db repository.Querier, id int64) (*model.Item, error)
	InsertItem(ctx context.Context, db repository.Querier, newItem model.NewItem) (model.Item, error)
	UpdateList(ctx context.Context, db repository.Querier, id int64, patch model.ItemPatch) error
	DeleteItem(ctx context.Context, db repository.Querier, id int64) error
}

// ShoppingListService runs the item operations against one Querier.
//
// Unlike the repository it reports a missing id as a not-found error, and
// Update/Delete check that the item exists first. The check and the write
// are separate statements, so a concurrent delete in between still ends in
// a silent zero-row write.
type ShoppingListService struct {
	db   repository.Querier
	repo itemRepository
	log  *zerolog.Logger
}

// NewShoppingListService binds repo to db. log receives the raw driver
// errors that callers only see in translated form.
func NewShoppingListService(db repository.Querier, repo itemRepository, log *zerolog.Logger) *ShoppingListService {
	return &ShoppingListService{db: db, repo: repo, log: log}
}

func itemNotFound(id int64) error {
	code := "SHOPPING_LIST_NOT_FOUND"
	return errs.NewNotFoundError(fmt.Sprintf("Shopping list item %d not found", id), true, &code)
}

// fail logs the raw driver error and returns its application form.
func (s *ShoppingListService) fail(op string, id int64, err error) error {
	event := s.log.Error().
		Err(err).
		Str("operation", op).
		Str("db_error", string(sqlerr.ErrCode(err)))
	if id != 0 {
		event = event.Int64("item_id", id)
	}
	event.Msg("shopping list operation failed")
	return sqlerr.HandleError(err)
}

// List returns every item in insertion order. An empty table gives an empty slice.
func (s *ShoppingListService) List(ctx context.Context) ([]model.Item, error) {
	items, err := s.repo.GetAllItems(ctx, s.db)
	if err != nil {
		return nil, s.fail("list", 0, err)
	}
	s.log.Debug().Int("count", len(items)).Msg("listed items")
	return items, nil
}

// Get returns the item with id, or a not-found *errs.Error when no row matches.
func (s *ShoppingListService) Get(ctx context.Context, id int64) (model.Item, error) {
	item, err := s.repo.GetByID(ctx, s.db, id)
	if err != nil {
		return model.Item{}, s.fail("get", id, err)
	}
	if item == nil {
		return model.Item{}, itemNotFound(id)
	}
	return *item, nil
}

// Create inserts newItem and returns it with its store-assigned id.
//
// Constraint violations come back as invalid *errs.Error values with a
// readable message, e.g. "The Category is required".
func (s *ShoppingListService) Create(ctx context.Context, newItem model.NewItem) (model.Item, error) {
	item, err := s.repo.InsertItem(ctx, s.db, newItem)
	if err != nil {
		return model.Item{}, s.fail("create", 0, err)
	}
	s.log.Info().Int64("item_id", item.ID).Msg("item created")
	return item, nil
}

// Update applies patch and returns the item as it is now stored.
func (s *ShoppingListService) Update(ctx context.Context, id int64, patch model.ItemPatch) (model.Item, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return model.Item{}, err
	}

	if err := s.repo.UpdateList(ctx, s.db, id, patch); err != nil {
		return model.Item{}, s.fail("update", id, err)
	}
	s.log.Info().Int64("item_id", id).Msg("item updated")

	return s.Get(ctx, id)
}

// Delete removes the item with id. A missing id is a not-found error.
func (s *ShoppingListService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	if err := s.repo.DeleteItem(ctx, s.db, id); err != nil {
		return s.fail("delete", id, err)
	}
	s.log.Info().Int64("item_id", id).Msg("item deleted")
	return nil
}
