// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Post represents an authored article. The slug is assigned exactly once,
// on first save, and never changes afterwards — it is the post's permalink.
// Views is a non-negative counter maintained by atomic single-column
// increments so it never clobbers concurrent field edits.
type Post struct {
	ID             uuid.UUID  `json:"id"`
	AuthorID       uuid.UUID  `json:"author_id"`
	Title          string     `json:"title"`
	Excerpt        *string    `json:"excerpt,omitempty"`
	Body           string     `json:"body"`
	Slug           string     `json:"slug"`
	CategoryID     *uuid.UUID `json:"category_id,omitempty"`
	CoverImage     []byte     `json:"-"`
	CoverImageType *string    `json:"cover_image_type,omitempty"`
	Views          int64      `json:"views"`
	IsArchived     bool       `json:"is_archived"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// Virtual fields populated by store methods.
	Tags       []Tag  `json:"tags,omitempty"`
	AuthorName string `json:"author_name,omitempty"`
}

// HasCoverImage reports whether the post carries an inline cover image blob.
func (p *Post) HasCoverImage() bool {
	return len(p.CoverImage) > 0 && p.CoverImageType != nil
}
