package store

import (
	"context"
	"errors"
)

// Collection names.
const (
	CollUsers     = "users"
	CollProjects  = "projects"
	CollInventory = "inventory"
	CollEquipment = "equipment"
	CollLogs      = "logs"
)

// ErrNotFound is returned when a lookup matches no document.
var ErrNotFound = errors.New("document not found")

// Doc is a schemaless document. Every document carries a string "id" field.
type Doc = map[string]interface{}

// FindOptions control sorting and result size for Find.
type FindOptions struct {
	SortField string
	SortDesc  bool
	Limit     int64
}

// Store is the document-store contract the rest of the backend is written
// against. SetFields must apply the given fields as one atomic partial
// update against the stored document, never as a whole-document overwrite:
// concurrent updates to different fields of the same document must both
// survive.
type Store interface {
	Insert(ctx context.Context, collection string, doc Doc) error
	FindByID(ctx context.Context, collection, id string) (Doc, error)
	FindOne(ctx context.Context, collection string, filter Doc) (Doc, error)
	Find(ctx context.Context, collection string, filter Doc, opts FindOptions) ([]Doc, error)
	SetFields(ctx context.Context, collection, id string, fields Doc) (bool, error)
	DeleteByID(ctx context.Context, collection, id string) (bool, error)
	// DeleteOlderThan removes documents whose string field sorts before
	// cutoff. Timestamps are stored as fixed-width UTC strings, so
	// lexicographic order equals time order.
	DeleteOlderThan(ctx context.Context, collection, field, cutoff string) (int64, error)
	Close(ctx context.Context) error
}
