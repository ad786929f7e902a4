package memstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atelier-backend/internal/store"
	"atelier-backend/internal/store/memstore"
)

func TestInsertAndFindByID(t *testing.T) {
	m := memstore.New()
	ctx := context.Background()

	require.NoError(t, m.Insert(ctx, "items", store.Doc{"id": "a", "name": "vase"}))

	doc, err := m.FindByID(ctx, "items", "a")
	require.NoError(t, err)
	assert.Equal(t, "vase", doc["name"])

	_, err = m.FindByID(ctx, "items", "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestInsertRejectsMissingID(t *testing.T) {
	m := memstore.New()
	assert.Error(t, m.Insert(context.Background(), "items", store.Doc{"name": "no id"}))
}

func TestFindOneByFilter(t *testing.T) {
	m := memstore.New()
	ctx := context.Background()

	require.NoError(t, m.Insert(ctx, "users", store.Doc{"id": "u1", "email": "a@b.c"}))
	require.NoError(t, m.Insert(ctx, "users", store.Doc{"id": "u2", "email": "x@y.z"}))

	doc, err := m.FindOne(ctx, "users", store.Doc{"email": "x@y.z"})
	require.NoError(t, err)
	assert.Equal(t, "u2", doc["id"])

	_, err = m.FindOne(ctx, "users", store.Doc{"email": "nobody"})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSetFieldsMergesPartially(t *testing.T) {
	m := memstore.New()
	ctx := context.Background()

	require.NoError(t, m.Insert(ctx, "items", store.Doc{
		"id":    "a",
		"name":  "vase",
		"count": float64(3),
	}))

	updated, err := m.SetFields(ctx, "items", "a", store.Doc{"count": float64(5)})
	require.NoError(t, err)
	assert.True(t, updated)

	doc, err := m.FindByID(ctx, "items", "a")
	require.NoError(t, err)
	assert.Equal(t, "vase", doc["name"], "untouched sibling field must survive")
	assert.Equal(t, float64(5), doc["count"])

	updated, err = m.SetFields(ctx, "items", "missing", store.Doc{"count": float64(1)})
	require.NoError(t, err)
	assert.False(t, updated)
}

func TestReturnedDocsDoNotAliasStore(t *testing.T) {
	m := memstore.New()
	ctx := context.Background()

	require.NoError(t, m.Insert(ctx, "items", store.Doc{"id": "a", "name": "vase"}))

	doc, err := m.FindByID(ctx, "items", "a")
	require.NoError(t, err)
	doc["name"] = "mutated"

	fresh, err := m.FindByID(ctx, "items", "a")
	require.NoError(t, err)
	assert.Equal(t, "vase", fresh["name"])
}

func TestFindSortsAndLimits(t *testing.T) {
	m := memstore.New()
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"l1", "l2", "l3"} {
		require.NoError(t, m.Insert(ctx, "logs", store.Doc{
			"id":        id,
			"timestamp": store.FormatTime(base.Add(time.Duration(i) * time.Minute)),
		}))
	}

	docs, err := m.Find(ctx, "logs", store.Doc{}, store.FindOptions{
		SortField: "timestamp",
		SortDesc:  true,
		Limit:     2,
	})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "l3", docs[0]["id"])
	assert.Equal(t, "l2", docs[1]["id"])
}

func TestDeleteByID(t *testing.T) {
	m := memstore.New()
	ctx := context.Background()

	require.NoError(t, m.Insert(ctx, "items", store.Doc{"id": "a"}))

	deleted, err := m.DeleteByID(ctx, "items", "a")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = m.DeleteByID(ctx, "items", "a")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestDeleteOlderThan(t *testing.T) {
	m := memstore.New()
	ctx := context.Background()

	old := store.FormatTime(time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC))
	recent := store.FormatTime(time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC))
	cutoff := store.FormatTime(time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))

	require.NoError(t, m.Insert(ctx, "logs", store.Doc{"id": "old", "timestamp": old}))
	require.NoError(t, m.Insert(ctx, "logs", store.Doc{"id": "recent", "timestamp": recent}))

	deleted, err := m.DeleteOlderThan(ctx, "logs", "timestamp", cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = m.FindByID(ctx, "logs", "old")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = m.FindByID(ctx, "logs", "recent")
	assert.NoError(t, err)
}
