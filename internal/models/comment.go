// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a single node in a post's comment thread. A nil ParentID marks
// a root (top-level) comment; replies carry their parent's ID. Parent IDs
// are plain references, not foreign keys: deleting a comment leaves its
// replies in place with a dangling ParentID, so display code must tolerate
// a parent that no longer resolves.
type Comment struct {
	ID        uuid.UUID  `json:"id"`
	PostID    uuid.UUID  `json:"post_id"`
	UserID    uuid.UUID  `json:"user_id"`
	ParentID  *uuid.UUID `json:"parent_id,omitempty"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`

	// Virtual fields populated by store methods.
	AuthorName string `json:"author_name,omitempty"`
	ReplyCount int    `json:"reply_count"`
}

// IsRoot returns true for top-level comments.
func (c *Comment) IsRoot() bool {
	return c.ParentID == nil
}
