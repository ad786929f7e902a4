package models

import "time"

// Audit actions.
const (
	ActionCreate      = "CREATE"
	ActionUpdate      = "UPDATE"
	ActionDelete      = "DELETE"
	ActionUploadImage = "UPLOAD_IMAGE"
	ActionDeleteImage = "DELETE_IMAGE"
)

// Audited entity types.
const (
	EntityUser      = "USER"
	EntityProject   = "PROJECT"
	EntityInventory = "INVENTORY"
	EntityEquipment = "EQUIPMENT"
)

// LogEntry is one append-only audit record. Entries are immutable once
// written and are purged after the retention window.
type LogEntry struct {
	ID         string                 `bson:"id" json:"id"`
	UserID     string                 `bson:"user_id" json:"user_id"`
	UserName   string                 `bson:"user_name" json:"user_name"`
	Action     string                 `bson:"action" json:"action"`
	EntityType string                 `bson:"entity_type" json:"entity_type"`
	EntityID   string                 `bson:"entity_id" json:"entity_id"`
	Details    map[string]interface{} `bson:"details,omitempty" json:"details,omitempty"`
	Timestamp  time.Time              `bson:"timestamp" json:"timestamp"`
}
