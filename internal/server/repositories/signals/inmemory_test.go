package signals

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signalregistry/api/internal/common"
	"github.com/signalregistry/api/internal/server/models"
)

func ownScope(owner string) models.Scope { return models.Scope{Owner: owner} }

func TestInMemory_CreateListThenAppendKeepsOrder(t *testing.T) {
	ctx := context.Background()
	r := NewInMemoryRepository()

	require.NoError(t, r.CreateList(ctx, "temp", "alice", []any{"a"}))
	require.NoError(t, r.AppendList(ctx, "temp", ownScope("alice"), []any{"b"}))

	item, err := r.FindOne(ctx, models.TypeList, "temp", ownScope("alice"))
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b"}, item.Data)
}

func TestInMemory_CreateListUpsertsOnOwnerName(t *testing.T) {
	ctx := context.Background()
	r := NewInMemoryRepository()

	require.NoError(t, r.CreateList(ctx, "temp", "alice", []any{"a"}))
	require.NoError(t, r.CreateList(ctx, "temp", "alice", []any{"x", "y"}))

	n, err := r.Count(ctx, models.TypeList, "temp", ownScope("alice"))
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	item, err := r.FindOne(ctx, models.TypeList, "temp", ownScope("alice"))
	require.NoError(t, err)
	assert.Equal(t, []any{"x", "y"}, item.Data)
}

func TestInMemory_ScopeHidesOtherOwners(t *testing.T) {
	ctx := context.Background()
	r := NewInMemoryRepository()

	require.NoError(t, r.CreateList(ctx, "temp", "alice", nil))

	_, err := r.FindOne(ctx, models.TypeList, "temp", ownScope("bob"))
	assert.True(t, errors.Is(err, common.ErrorNotFound))

	items, err := r.Find(ctx, models.TypeList, models.Scope{All: true})
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestInMemory_PushReadingOutsideScope(t *testing.T) {
	ctx := context.Background()
	r := NewInMemoryRepository()

	item := &models.Item{Owner: "alice", Name: "door", Type: models.TypeTrigger}
	require.NoError(t, r.UpsertMeta(ctx, "registry", item))

	stored, err := r.FindOne(ctx, "registry", "door", ownScope("alice"))
	require.NoError(t, err)

	matched, err := r.PushReading(ctx, "registry", stored.ID, ownScope("bob"), models.Reading{Value: 1})
	require.NoError(t, err)
	assert.False(t, matched)

	matched, err = r.PushReading(ctx, "registry", stored.ID, ownScope("alice"), models.Reading{Value: 1})
	require.NoError(t, err)
	assert.True(t, matched)
}

func TestInMemory_SummaryTypesDeduplicated(t *testing.T) {
	ctx := context.Background()
	r := NewInMemoryRepository()

	require.NoError(t, r.CreateList(ctx, "mixed", "alice", []any{float64(1), "x", float64(2)}))

	summaries, err := r.Summaries(ctx, models.TypeList, ownScope("alice"))
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	assert.Equal(t, 3, summaries[0].Count)
	assert.ElementsMatch(t, []string{"double", "string"}, summaries[0].Types)
}

func TestInMemory_DeleteOneRemovesSingleDocument(t *testing.T) {
	ctx := context.Background()
	r := NewInMemoryRepository()

	require.NoError(t, r.CreateList(ctx, "a", "alice", nil))
	require.NoError(t, r.CreateList(ctx, "b", "alice", nil))

	require.NoError(t, r.DeleteOne(ctx, models.TypeList, "a", ownScope("alice")))

	_, err := r.FindOne(ctx, models.TypeList, "a", ownScope("alice"))
	assert.True(t, errors.Is(err, common.ErrorNotFound))

	_, err = r.FindOne(ctx, models.TypeList, "b", ownScope("alice"))
	assert.NoError(t, err)
}
