// Package storage holds the media storage abstraction: a Backend contract
// with local-filesystem, S3 and Telegram-relay variants, plus the upload
// validator that runs before any bytes reach a backend.
package storage

import (
	"context"
	"fmt"

	"atelier-backend/internal/config"
)

// Backend stores image bytes on behalf of an owning entity and hands back an
// opaque locator. Callers treat locators as values; only the backend that
// issued one may interpret it.
//
// The backend is selected once at startup and fixed for the process
// lifetime. Locators issued under a different backend are not re-dispatched
// by shape: serving and deletion only work for locators of the active
// backend.
type Backend interface {
	// Save stores content under a freshly generated name inside the
	// owner's namespace. Only the extension of originalFilename survives;
	// the rest of the attacker-controlled name is discarded.
	Save(ctx context.Context, content []byte, originalFilename, ownerID string) (string, error)

	// Delete removes the stored object. Deleting an unknown or malformed
	// locator returns false, never an error.
	Delete(ctx context.Context, locator string) (bool, error)

	// ListForOwner enumerates the owner's stored locators in a stable
	// order.
	ListForOwner(ctx context.Context, ownerID string) ([]string, error)
}

// URLResolver is implemented by backends whose locators are not fetchable
// URLs themselves and need a second call to resolve one.
type URLResolver interface {
	ResolveURL(ctx context.Context, locator string) (string, error)
}

// New constructs the backend selected by cfg.StorageMode.
func New(ctx context.Context, cfg *config.Config) (Backend, error) {
	switch cfg.StorageMode {
	case config.StorageLocal:
		return NewLocalBackend(cfg.UploadDir), nil
	case config.StorageS3:
		return NewS3Backend(ctx, cfg.S3Bucket, cfg.AWSRegion)
	case config.StorageTelegram:
		return NewTelegramBackend(cfg.TelegramBotToken, cfg.TelegramChatID), nil
	default:
		return nil, fmt.Errorf("unknown storage mode: %s", cfg.StorageMode)
	}
}
