// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package blog

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"inkwell/internal/models"
)

// FlagStore is the per-viewer key-value capability used to deduplicate
// views within a session. Implementations live next to the session store;
// tests inject an in-memory fake.
type FlagStore interface {
	Get(ctx context.Context, key string) (bool, error)
	Set(ctx context.Context, key string) error
}

// ViewCounter is the counter surface for view accounting: an atomic
// single-column increment returning the new value, and a plain read of the
// current value for paths that must not increment.
type ViewCounter interface {
	IncrementViews(id uuid.UUID) (int64, error)
	Views(id uuid.UUID) (int64, error)
}

// ViewRecorder implements idempotent per-session view accounting: at most
// one increment per (session, post) pair, and never for the post's own
// author.
//
// The guarantee is best-effort, not exactly-once: two concurrent requests
// sharing a session can both pass the flag check before either sets it,
// losing one increment. That undercount is accepted; the counter itself
// never clobbers concurrent edits because the increment targets only the
// views column.
type ViewRecorder struct {
	counter ViewCounter
}

// NewViewRecorder creates a ViewRecorder over the given counter.
func NewViewRecorder(counter ViewCounter) *ViewRecorder {
	return &ViewRecorder{counter: counter}
}

// viewFlagKey is the session-store key marking "this session already
// counted a view for this post".
func viewFlagKey(postID uuid.UUID) string {
	return fmt.Sprintf("post_viewed_%s", postID)
}

// Record counts a view of post for the viewer identified by viewerID
// (uuid.Nil for anonymous readers), deduplicated through flags. It returns
// the post's up-to-date view count whether or not an increment happened.
//
// The flag is set only after a successful increment, so a failed increment
// leaves the session eligible to count the view on a later request.
func (r *ViewRecorder) Record(ctx context.Context, post *models.Post, viewerID uuid.UUID, flags FlagStore) (int64, error) {
	// Authors never inflate their own counters, even from a fresh session.
	if viewerID != uuid.Nil && viewerID == post.AuthorID {
		return r.currentViews(post)
	}

	key := viewFlagKey(post.ID)
	seen, err := flags.Get(ctx, key)
	if err != nil {
		return post.Views, fmt.Errorf("view flag get: %w", err)
	}
	if seen {
		return r.currentViews(post)
	}

	views, err := r.counter.IncrementViews(post.ID)
	if err != nil {
		return post.Views, fmt.Errorf("increment views: %w", err)
	}

	// Increment-then-mark: only a counted view is remembered.
	if err := flags.Set(ctx, key); err != nil {
		return views, fmt.Errorf("view flag set: %w", err)
	}
	return views, nil
}

// currentViews reads the live counter so no-increment paths still report an
// up-to-date count rather than the caller's snapshot.
func (r *ViewRecorder) currentViews(post *models.Post) (int64, error) {
	views, err := r.counter.Views(post.ID)
	if err != nil {
		return post.Views, fmt.Errorf("read views: %w", err)
	}
	return views, nil
}
