package models

import "time"

// CatalogItem is an inventory or equipment record. The two collections are
// structurally identical and stored separately; Images holds the ordered
// storage locators the item owns.
type CatalogItem struct {
	ID            string    `bson:"id" json:"id"`
	Category      string    `bson:"category" json:"category"`
	Name          string    `bson:"name" json:"name"`
	TotalQuantity int       `bson:"total_quantity" json:"total_quantity"`
	VisualMarker  string    `bson:"visual_marker,omitempty" json:"visual_marker,omitempty"`
	Description   string    `bson:"description,omitempty" json:"description,omitempty"`
	Images        []string  `bson:"images" json:"images"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updated_at"`
}

type CatalogItemCreateRequest struct {
	Category      string `json:"category" binding:"required"`
	Name          string `json:"name" binding:"required"`
	TotalQuantity int    `json:"total_quantity" binding:"min=0"`
	VisualMarker  string `json:"visual_marker"`
	Description   string `json:"description"`
}

type CatalogItemUpdateRequest struct {
	Category      *string `json:"category"`
	Name          *string `json:"name"`
	TotalQuantity *int    `json:"total_quantity"`
	VisualMarker  *string `json:"visual_marker"`
	Description   *string `json:"description"`
}
