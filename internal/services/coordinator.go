// Package services holds the mutation+audit coordinator: every create,
// update and delete on every resource collection goes through the same
// protocol of existence check, partial-field merge, timestamp stamping,
// persistence write and audit append.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"atelier-backend/internal/apperr"
	"atelier-backend/internal/logging"
	"atelier-backend/internal/models"
	"atelier-backend/internal/store"
)

// Actor identifies the authenticated principal performing a mutation.
type Actor struct {
	ID   string
	Name string
}

type Coordinator struct {
	store store.Store
	now   func() time.Time
}

func NewCoordinator(st store.Store) *Coordinator {
	return &Coordinator{store: st, now: time.Now}
}

// Create inserts doc with created_at/updated_at stamped and appends an
// audit entry. The returned document is the stored form.
func (c *Coordinator) Create(ctx context.Context, collection, entityType string, doc store.Doc, actor Actor, details map[string]interface{}) (store.Doc, error) {
	id, _ := doc["id"].(string)
	now := store.FormatTime(c.now())
	doc["created_at"] = now
	doc["updated_at"] = now

	if err := c.store.Insert(ctx, collection, doc); err != nil {
		return nil, apperr.Dependency("failed to create %s", lower(entityType))
	}

	c.appendAudit(ctx, actor, models.ActionCreate, entityType, id, details)
	return doc, nil
}

// Update applies patch as an atomic partial merge: only the fields present
// in patch change, siblings stay untouched. It fails NotFound before any
// side effect when the document is absent, and returns the re-fetched
// post-write document.
func (c *Coordinator) Update(ctx context.Context, collection, entityType, id string, patch store.Doc, actor Actor) (store.Doc, error) {
	if _, err := c.store.FindByID(ctx, collection, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("%s not found", lower(entityType))
		}
		return nil, apperr.Dependency("failed to load %s", lower(entityType))
	}

	patch["updated_at"] = store.FormatTime(c.now())
	if _, err := c.store.SetFields(ctx, collection, id, patch); err != nil {
		return nil, apperr.Dependency("failed to update %s", lower(entityType))
	}

	// Audit details are the merged-field set, not the full document.
	c.appendAudit(ctx, actor, models.ActionUpdate, entityType, id, patch)

	updated, err := c.store.FindByID(ctx, collection, id)
	if err != nil {
		return nil, apperr.Dependency("failed to reload %s", lower(entityType))
	}
	return updated, nil
}

// Delete removes the document and appends an audit entry; NotFound when the
// id does not exist.
func (c *Coordinator) Delete(ctx context.Context, collection, entityType, id string, actor Actor, details map[string]interface{}) error {
	deleted, err := c.store.DeleteByID(ctx, collection, id)
	if err != nil {
		return apperr.Dependency("failed to delete %s", lower(entityType))
	}
	if !deleted {
		return apperr.NotFound("%s not found", lower(entityType))
	}

	c.appendAudit(ctx, actor, models.ActionDelete, entityType, id, details)
	return nil
}

// Get fetches one document, NotFound when absent.
func (c *Coordinator) Get(ctx context.Context, collection, entityType, id string) (store.Doc, error) {
	doc, err := c.store.FindByID(ctx, collection, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("%s not found", lower(entityType))
		}
		return nil, apperr.Dependency("failed to load %s", lower(entityType))
	}
	return doc, nil
}

// List fetches every document in a collection.
func (c *Coordinator) List(ctx context.Context, collection string) ([]store.Doc, error) {
	docs, err := c.store.Find(ctx, collection, store.Doc{}, store.FindOptions{})
	if err != nil {
		return nil, apperr.Dependency("failed to list %s", collection)
	}
	return docs, nil
}

// appendAudit writes one audit entry. The append is best-effort relative to
// the mutation it records: a failed append is logged and the mutation
// stands. A crash between persist and append therefore loses the audit
// record; see DESIGN.md.
func (c *Coordinator) appendAudit(ctx context.Context, actor Actor, action, entityType, entityID string, details map[string]interface{}) {
	entry := store.Doc{
		"id":          uuid.New().String(),
		"user_id":     actor.ID,
		"user_name":   actor.Name,
		"action":      action,
		"entity_type": entityType,
		"entity_id":   entityID,
		"timestamp":   store.FormatTime(c.now()),
	}
	if len(details) > 0 {
		entry["details"] = details
	}

	if err := c.store.Insert(ctx, store.CollLogs, entry); err != nil {
		logging.LogKV("error", "audit append failed", map[string]interface{}{
			"action":      action,
			"entity_type": entityType,
			"entity_id":   entityID,
			"reason":      err.Error(),
		})
	}
}

func lower(entityType string) string {
	switch entityType {
	case models.EntityUser:
		return "user"
	case models.EntityProject:
		return "project"
	case models.EntityInventory:
		return "inventory item"
	case models.EntityEquipment:
		return "equipment item"
	default:
		return "resource"
	}
}
