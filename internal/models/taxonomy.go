package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups posts by broad topic. Posts carry at most one category.
type Category struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`

	// Virtual field populated by store methods.
	PostCount int `json:"post_count"`
}

// Tag is a free-form label; posts carry any number of tags.
type Tag struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}
