package services

import (
	"context"
	"errors"

	"atelier-backend/internal/apperr"
	"atelier-backend/internal/imaging"
	"atelier-backend/internal/logging"
	"atelier-backend/internal/models"
	"atelier-backend/internal/storage"
	"atelier-backend/internal/store"
)

// ImageService runs the attach/detach pipeline for catalog item images:
// validate, transcode, store, splice the item's image list, audit.
type ImageService struct {
	coord     *Coordinator
	validator *storage.Validator
	codec     imaging.Codec
	backend   storage.Backend
	optimize  bool
}

func NewImageService(coord *Coordinator, validator *storage.Validator, codec imaging.Codec, backend storage.Backend, optimize bool) *ImageService {
	return &ImageService{
		coord:     coord,
		validator: validator,
		codec:     codec,
		backend:   backend,
		optimize:  optimize,
	}
}

// Backend exposes the active storage backend, for URL resolution.
func (s *ImageService) Backend() storage.Backend { return s.backend }

// Attach validates and stores one image for a catalog item and appends its
// locator to the item's image list. Validation failures happen before any
// byte reaches the codec or backend.
func (s *ImageService) Attach(ctx context.Context, collection, entityType, itemID, filename string, content []byte, actor Actor) (string, int, error) {
	if err := s.validator.Validate(filename, int64(len(content))); err != nil {
		return "", 0, err
	}

	doc, err := s.coord.store.FindByID(ctx, collection, itemID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", 0, apperr.NotFound("%s not found", lower(entityType))
		}
		return "", 0, apperr.Dependency("failed to load %s", lower(entityType))
	}

	if s.optimize {
		content = s.codec.Optimize(content)
	}

	locator, err := s.backend.Save(ctx, content, filename, itemID)
	if err != nil {
		return "", 0, err
	}

	images := append(imageList(doc), locator)
	patch := store.Doc{
		"images":     images,
		"updated_at": store.FormatTime(s.coord.now()),
	}
	if _, err := s.coord.store.SetFields(ctx, collection, itemID, patch); err != nil {
		return "", 0, apperr.Dependency("failed to update %s", lower(entityType))
	}

	s.coord.appendAudit(ctx, actor, models.ActionUploadImage, entityType, itemID, map[string]interface{}{
		"image_url": locator,
	})
	return locator, len(images), nil
}

// Detach removes a locator from the item's image list. An unattached
// locator is NotFound and leaves the list unchanged; physical deletion is
// best-effort and never blocks the list update.
func (s *ImageService) Detach(ctx context.Context, collection, entityType, itemID, locator string, actor Actor) ([]string, error) {
	doc, err := s.coord.store.FindByID(ctx, collection, itemID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("%s not found", lower(entityType))
		}
		return nil, apperr.Dependency("failed to load %s", lower(entityType))
	}

	images := imageList(doc)
	idx := -1
	for i, img := range images {
		if img == locator {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, apperr.NotFound("image is not attached to this item")
	}

	if deleted, err := s.backend.Delete(ctx, locator); err != nil || !deleted {
		reason := "not found in backend"
		if err != nil {
			reason = err.Error()
		}
		logging.LogKV("warn", "physical image delete failed", map[string]interface{}{
			"locator": locator,
			"reason":  reason,
		})
	}

	remaining := append(append([]string{}, images[:idx]...), images[idx+1:]...)
	patch := store.Doc{
		"images":     remaining,
		"updated_at": store.FormatTime(s.coord.now()),
	}
	if _, err := s.coord.store.SetFields(ctx, collection, itemID, patch); err != nil {
		return nil, apperr.Dependency("failed to update %s", lower(entityType))
	}

	s.coord.appendAudit(ctx, actor, models.ActionDeleteImage, entityType, itemID, map[string]interface{}{
		"image_url": locator,
	})
	return remaining, nil
}

// imageList reads the images field out of a stored document; values come
// back from the store as []interface{}.
func imageList(doc store.Doc) []string {
	raw, ok := doc["images"].([]interface{})
	if !ok {
		return []string{}
	}
	images := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			images = append(images, s)
		}
	}
	return images
}
