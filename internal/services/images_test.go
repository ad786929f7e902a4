package services

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atelier-backend/internal/apperr"
	"atelier-backend/internal/imaging"
	"atelier-backend/internal/models"
	"atelier-backend/internal/storage"
	"atelier-backend/internal/store"
	"atelier-backend/internal/store/memstore"
)

func newTestImageService(t *testing.T) (*ImageService, *Coordinator, *memstore.MemStore) {
	t.Helper()
	m := memstore.New()
	coord := NewCoordinator(m)
	svc := NewImageService(
		coord,
		storage.NewValidator([]string{"jpg", "jpeg", "png"}, 10),
		imaging.Codec{MaxWidth: 1920, MaxHeight: 1080, Quality: 85},
		storage.NewLocalBackend(t.TempDir()),
		true,
	)
	return svc, coord, m
}

func smallPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 50, 50))))
	return buf.Bytes()
}

func createItem(t *testing.T, coord *Coordinator, id string) {
	t.Helper()
	_, err := coord.Create(context.Background(), store.CollInventory, models.EntityInventory, store.Doc{
		"id":     id,
		"name":   "glass vase",
		"images": []interface{}{},
	}, testActor, nil)
	require.NoError(t, err)
}

func TestAttachAndDetachRoundTrip(t *testing.T) {
	svc, coord, m := newTestImageService(t)
	ctx := context.Background()
	createItem(t, coord, "item-1")

	locator, total, err := svc.Attach(ctx, store.CollInventory, models.EntityInventory, "item-1", "vase.png", smallPNG(t), testActor)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.NotEmpty(t, locator)

	doc, err := m.FindByID(ctx, store.CollInventory, "item-1")
	require.NoError(t, err)
	assert.Equal(t, []interface{}{locator}, doc["images"])

	remaining, err := svc.Detach(ctx, store.CollInventory, models.EntityInventory, "item-1", locator, testActor)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	doc, err = m.FindByID(ctx, store.CollInventory, "item-1")
	require.NoError(t, err)
	assert.Empty(t, doc["images"])
}

func TestAttachAppendsInOrder(t *testing.T) {
	svc, coord, _ := newTestImageService(t)
	ctx := context.Background()
	createItem(t, coord, "item-1")

	first, total, err := svc.Attach(ctx, store.CollInventory, models.EntityInventory, "item-1", "a.png", smallPNG(t), testActor)
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	second, total, err := svc.Attach(ctx, store.CollInventory, models.EntityInventory, "item-1", "b.png", smallPNG(t), testActor)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.NotEqual(t, first, second)

	remaining, err := svc.Detach(ctx, store.CollInventory, models.EntityInventory, "item-1", first, testActor)
	require.NoError(t, err)
	assert.Equal(t, []string{second}, remaining)
}

func TestAttachRejectsBadExtensionBeforeAnyWrite(t *testing.T) {
	svc, coord, m := newTestImageService(t)
	ctx := context.Background()
	createItem(t, coord, "item-1")

	_, _, err := svc.Attach(ctx, store.CollInventory, models.EntityInventory, "item-1", "malware.exe", []byte("x"), testActor)
	assert.True(t, errors.Is(err, apperr.ErrInvalidInput))

	doc, err := m.FindByID(ctx, store.CollInventory, "item-1")
	require.NoError(t, err)
	assert.Empty(t, doc["images"])

	locators, err := svc.Backend().ListForOwner(ctx, "item-1")
	require.NoError(t, err)
	assert.Empty(t, locators, "rejected upload leaves no stored bytes")
}

func TestAttachToMissingItemIsNotFound(t *testing.T) {
	svc, _, _ := newTestImageService(t)

	_, _, err := svc.Attach(context.Background(), store.CollInventory, models.EntityInventory, "missing", "a.png", smallPNG(t), testActor)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestDetachUnattachedLocatorIsNotFound(t *testing.T) {
	svc, coord, m := newTestImageService(t)
	ctx := context.Background()
	createItem(t, coord, "item-1")

	locator, _, err := svc.Attach(ctx, store.CollInventory, models.EntityInventory, "item-1", "a.png", smallPNG(t), testActor)
	require.NoError(t, err)

	_, err = svc.Detach(ctx, store.CollInventory, models.EntityInventory, "item-1", "/api/uploads/item-1/never-attached.png", testActor)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	doc, err := m.FindByID(ctx, store.CollInventory, "item-1")
	require.NoError(t, err)
	assert.Equal(t, []interface{}{locator}, doc["images"], "failed detach leaves the list unchanged")
}

func TestDetachSurvivesMissingPhysicalFile(t *testing.T) {
	svc, coord, m := newTestImageService(t)
	ctx := context.Background()
	createItem(t, coord, "item-1")

	locator, _, err := svc.Attach(ctx, store.CollInventory, models.EntityInventory, "item-1", "a.png", smallPNG(t), testActor)
	require.NoError(t, err)

	// Someone removed the file behind our back; detach still cleans the list.
	deleted, err := svc.Backend().Delete(ctx, locator)
	require.NoError(t, err)
	require.True(t, deleted)

	remaining, err := svc.Detach(ctx, store.CollInventory, models.EntityInventory, "item-1", locator, testActor)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	doc, err := m.FindByID(ctx, store.CollInventory, "item-1")
	require.NoError(t, err)
	assert.Empty(t, doc["images"])
}

func TestAttachAndDetachAudit(t *testing.T) {
	svc, coord, m := newTestImageService(t)
	ctx := context.Background()
	createItem(t, coord, "item-1")

	locator, _, err := svc.Attach(ctx, store.CollInventory, models.EntityInventory, "item-1", "a.png", smallPNG(t), testActor)
	require.NoError(t, err)
	_, err = svc.Detach(ctx, store.CollInventory, models.EntityInventory, "item-1", locator, testActor)
	require.NoError(t, err)

	uploads, err := m.Find(ctx, store.CollLogs, store.Doc{"action": models.ActionUploadImage}, store.FindOptions{})
	require.NoError(t, err)
	require.Len(t, uploads, 1)
	details, ok := uploads[0]["details"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, locator, details["image_url"])

	deletes, err := m.Find(ctx, store.CollLogs, store.Doc{"action": models.ActionDeleteImage}, store.FindOptions{})
	require.NoError(t, err)
	assert.Len(t, deletes, 1)
}
