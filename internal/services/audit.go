package services

import (
	"context"
	"time"

	"atelier-backend/internal/apperr"
	"atelier-backend/internal/models"
	"atelier-backend/internal/store"
)

// Audit entries older than this are purged, lazily on read and via the
// explicit cleanup operation.
const auditRetention = 30 * 24 * time.Hour

// ListLogs returns up to limit entries, most recent first. Stale entries
// are purged first, so a read never returns anything past retention.
func (c *Coordinator) ListLogs(ctx context.Context, limit int64) ([]models.LogEntry, error) {
	if _, err := c.PurgeLogs(ctx); err != nil {
		return nil, err
	}

	docs, err := c.store.Find(ctx, store.CollLogs, store.Doc{}, store.FindOptions{
		SortField: "timestamp",
		SortDesc:  true,
		Limit:     limit,
	})
	if err != nil {
		return nil, apperr.Dependency("failed to list logs")
	}

	entries := make([]models.LogEntry, 0, len(docs))
	for _, doc := range docs {
		var entry models.LogEntry
		if err := store.FromDoc(doc, &entry); err != nil {
			return nil, apperr.Dependency("failed to decode log entry")
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// PurgeLogs removes entries past retention and reports how many went.
func (c *Coordinator) PurgeLogs(ctx context.Context) (int64, error) {
	cutoff := store.FormatTime(c.now().Add(-auditRetention))
	deleted, err := c.store.DeleteOlderThan(ctx, store.CollLogs, "timestamp", cutoff)
	if err != nil {
		return 0, apperr.Dependency("failed to purge logs")
	}
	return deleted, nil
}
