// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package blog

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"inkwell/internal/models"
)

// CommentStore is the persistence surface the comment thread needs.
type CommentStore interface {
	Create(c *models.Comment) (*models.Comment, error)
	FindByID(id uuid.UUID) (*models.Comment, error)
	ListRoots(postID uuid.UUID) ([]models.Comment, error)
	ListReplies(parentID uuid.UUID) ([]models.Comment, error)
	CountByPost(postID uuid.UUID) (int, error)
	Delete(id uuid.UUID) error
}

// CommentService manages a post's comment thread. Comments form a flat
// table of nodes with optional parent references; the tree is assembled
// lazily by fetching roots first and replies per parent on demand.
type CommentService struct {
	store CommentStore
}

// NewCommentService creates a CommentService over the given store.
func NewCommentService(store CommentStore) *CommentService {
	return &CommentService{store: store}
}

// ListRoots returns the top-level comments on post, newest first. Replies
// are not fetched here; consumers call Replies per comment as display
// depth requires.
func (s *CommentService) ListRoots(post *models.Post) ([]models.Comment, error) {
	roots, err := s.store.ListRoots(post.ID)
	if err != nil {
		return nil, fmt.Errorf("list root comments: %w", err)
	}
	return roots, nil
}

// Replies returns the direct children of the given comment, newest first.
func (s *CommentService) Replies(commentID uuid.UUID) ([]models.Comment, error) {
	replies, err := s.store.ListReplies(commentID)
	if err != nil {
		return nil, fmt.Errorf("list replies: %w", err)
	}
	return replies, nil
}

// Count returns the total number of comments on post, roots and replies.
func (s *CommentService) Count(post *models.Post) (int, error) {
	n, err := s.store.CountByPost(post.ID)
	if err != nil {
		return 0, fmt.Errorf("count comments: %w", err)
	}
	return n, nil
}

// Add creates a comment on post by author. A nil parentID creates a root
// comment; otherwise the parent must resolve and must belong to the same
// post. Content that is empty after trimming is rejected.
func (s *CommentService) Add(post *models.Post, authorID uuid.UUID, content string, parentID *uuid.UUID) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, &ValidationError{Field: "content", Msg: "must not be empty"}
	}

	if parentID != nil {
		parent, err := s.store.FindByID(*parentID)
		if err != nil {
			return nil, fmt.Errorf("find parent comment: %w", err)
		}
		if parent == nil {
			return nil, ErrNotFound
		}
		if parent.PostID != post.ID {
			return nil, &ValidationError{Field: "parent_id", Msg: "belongs to a different post"}
		}
	}

	created, err := s.store.Create(&models.Comment{
		PostID:   post.ID,
		UserID:   authorID,
		ParentID: parentID,
		Content:  content,
	})
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return created, nil
}

// Delete removes exactly one comment. Permitted for the comment's author
// and for the post's author, who moderates the whole thread. Replies to
// the deleted comment are left in place with a dangling parent reference —
// deliberate behavior, not cleanup left undone.
func (s *CommentService) Delete(post *models.Post, commentID, requesterID uuid.UUID) error {
	c, err := s.store.FindByID(commentID)
	if err != nil {
		return fmt.Errorf("find comment: %w", err)
	}
	if c == nil || c.PostID != post.ID {
		return ErrNotFound
	}

	if !CanModerateComment(requesterID, c, post) {
		return ErrPermissionDenied
	}

	if err := s.store.Delete(c.ID); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}

// CanModerateComment is the dual-authority moderation predicate: a comment
// may be removed by the user who wrote it or by the author of the post it
// sits on.
func CanModerateComment(actorID uuid.UUID, c *models.Comment, post *models.Post) bool {
	return actorID == c.UserID || actorID == post.AuthorID
}
