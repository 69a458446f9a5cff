package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sort"
	"testing"

	"github.com/deppfellow/shopping-list/internal/errs"
	"github.com/deppfellow/shopping-list/internal/model"
	"github.com/deppfellow/shopping-list/internal/repository"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryItems is an itemRepository over a map, with an optional forced error.
type memoryItems struct {
	items  map[int64]model.Item
	nextID int64
	err    error
	writes int
}

func newMemoryItems() *memoryItems {
	return &memoryItems{items: map[int64]model.Item{}, nextID: 1}
}

func (m *memoryItems) GetAllItems(context.Context, repository.Querier) ([]model.Item, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]model.Item, 0, len(m.items))
	for _, item := range m.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memoryItems) GetByID(_ context.Context, _ repository.Querier, id int64) (*model.Item, error) {
	if m.err != nil {
		return nil, m.err
	}
	item, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

func (m *memoryItems) InsertItem(_ context.Context, _ repository.Querier, n model.NewItem) (model.Item, error) {
	if m.err != nil {
		return model.Item{}, m.err
	}
	item := model.Item{
		ID:        m.nextID,
		DateAdded: n.DateAdded,
		ItemName:  n.ItemName,
		Checked:   n.Checked,
		Category:  n.Category,
		Price:     n.Price,
	}
	m.items[item.ID] = item
	m.nextID++
	return item, nil
}

func (m *memoryItems) UpdateList(_ context.Context, _ repository.Querier, id int64, patch model.ItemPatch) error {
	m.writes++
	if item, ok := m.items[id]; ok {
		m.items[id] = applyPatch(item, patch)
	}
	return nil
}

func (m *memoryItems) DeleteItem(_ context.Context, _ repository.Querier, id int64) error {
	m.writes++
	delete(m.items, id)
	return nil
}

// applyPatch merges the fields patch sets into item.
func applyPatch(item model.Item, patch model.ItemPatch) model.Item {
	if patch.DateAdded != nil {
		item.DateAdded = *patch.DateAdded
	}
	if patch.ItemName != nil {
		item.ItemName = *patch.ItemName
	}
	if patch.Checked != nil {
		item.Checked = *patch.Checked
	}
	if patch.Category != nil {
		item.Category = *patch.Category
	}
	if patch.Price != nil {
		item.Price = *patch.Price
	}
	return item
}

func newTestService(repo *memoryItems) *ShoppingListService {
	log := zerolog.Nop()
	return NewShoppingListService(nil, repo, &log)
}

func TestShoppingListServiceCRUD(t *testing.T) {
	repo := newMemoryItems()
	svc := newTestService(repo)
	ctx := context.Background()

	for _, p := range []string{"17.78", "12.78", "18.78"} {
		_, err := svc.Create(ctx, model.NewItem{ItemName: "item " + p, Category: "Main", Price: decimal.RequireFromString(p)})
		require.NoError(t, err)
	}

	require.NoError(t, svc.Delete(ctx, 2))

	items, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, int64(1), items[0].ID)
	assert.Equal(t, int64(3), items[1].ID)

	name := "updated test item!"
	updated, err := svc.Update(ctx, 3, model.ItemPatch{ItemName: &name})
	require.NoError(t, err)
	assert.Equal(t, "updated test item!", updated.ItemName)
	assert.Equal(t, "Main", updated.Category)
	assert.True(t, decimal.RequireFromString("18.78").Equal(updated.Price))
}

func TestShoppingListServiceMissingItem(t *testing.T) {
	repo := newMemoryItems()
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.Get(ctx, 9)
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
	assert.Equal(t, "Shopping list item 9 not found", err.Error())

	checked := true
	_, err = svc.Update(ctx, 9, model.ItemPatch{Checked: &checked})
	assert.True(t, errs.IsNotFound(err))

	assert.True(t, errs.IsNotFound(svc.Delete(ctx, 9)))
	assert.Zero(t, repo.writes, "no write is issued for a missing item")
}

func TestShoppingListServiceTranslatesDriverErrors(t *testing.T) {
	repo := newMemoryItems()
	repo.err = &pgconn.PgError{Code: "23502", TableName: "shopping_list", ColumnName: "category"}
	svc := newTestService(repo)

	_, err := svc.Create(context.Background(), model.NewItem{ItemName: "no category"})
	require.Error(t, err)

	var appErr *errs.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, errs.KindInvalid, appErr.Kind)
	assert.Equal(t, "The Category is required", appErr.Message)

	repo.err = errors.New("connection reset")
	_, err = svc.List(context.Background())
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, errs.KindInternal, appErr.Kind)
}

func TestShoppingListServiceLogsDriverErrorClass(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	repo := newMemoryItems()
	repo.err = &pgconn.PgError{Code: "23502", TableName: "shopping_list", ColumnName: "category"}
	svc := NewShoppingListService(nil, repo, &log)

	_, err := svc.Create(context.Background(), model.NewItem{ItemName: "no category"})
	require.Error(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "create", entry["operation"])
	assert.Equal(t, "not_null_violation", entry["db_error"])
}
