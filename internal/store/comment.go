// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"inkwell/internal/models"
)

// CommentStore handles all comment-related database operations. Comments
// are a flat table of nodes with an optional parent_id; there is no foreign
// key on parent_id, so deleting a comment leaves its replies pointing at a
// row that no longer exists. Thread display tolerates that by construction:
// roots are fetched first and replies looked up per parent.
type CommentStore struct {
	db *sql.DB
}

// NewCommentStore creates a new CommentStore with the given database connection.
func NewCommentStore(db *sql.DB) *CommentStore {
	return &CommentStore{db: db}
}

const commentColumns = `c.id, c.post_id, c.user_id, c.parent_id, c.content, c.created_at, u.display_name`

func scanComment(scanner interface{ Scan(...any) error }) (*models.Comment, error) {
	c := &models.Comment{}
	err := scanner.Scan(
		&c.ID, &c.PostID, &c.UserID, &c.ParentID,
		&c.Content, &c.CreatedAt, &c.AuthorName,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Create inserts a new comment and returns it with the generated ID.
func (s *CommentStore) Create(c *models.Comment) (*models.Comment, error) {
	var id uuid.UUID
	err := s.db.QueryRow(`
		INSERT INTO comments (post_id, user_id, parent_id, content)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, c.PostID, c.UserID, c.ParentID, c.Content).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return s.FindByID(id)
}

// FindByID retrieves a comment by its UUID. Returns nil if not found.
func (s *CommentStore) FindByID(id uuid.UUID) (*models.Comment, error) {
	row := s.db.QueryRow(`
		SELECT `+commentColumns+`
		FROM comments c JOIN users u ON u.id = c.user_id
		WHERE c.id = $1
	`, id)
	c, err := scanComment(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find comment by id: %w", err)
	}
	return c, nil
}

// ListRoots returns the top-level comments on a post, newest first, each
// annotated with its direct reply count.
func (s *CommentStore) ListRoots(postID uuid.UUID) ([]models.Comment, error) {
	rows, err := s.db.Query(`
		SELECT `+commentColumns+`,
		       (SELECT COUNT(*) FROM comments r WHERE r.parent_id = c.id) AS reply_count
		FROM comments c JOIN users u ON u.id = c.user_id
		WHERE c.post_id = $1 AND c.parent_id IS NULL
		ORDER BY c.created_at DESC
	`, postID)
	if err != nil {
		return nil, fmt.Errorf("list root comments: %w", err)
	}
	defer rows.Close()

	var items []models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(
			&c.ID, &c.PostID, &c.UserID, &c.ParentID,
			&c.Content, &c.CreatedAt, &c.AuthorName, &c.ReplyCount,
		); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// ListReplies returns the direct children of a comment, newest first. The
// parent itself need not exist anymore.
func (s *CommentStore) ListReplies(parentID uuid.UUID) ([]models.Comment, error) {
	rows, err := s.db.Query(`
		SELECT `+commentColumns+`
		FROM comments c JOIN users u ON u.id = c.user_id
		WHERE c.parent_id = $1
		ORDER BY c.created_at DESC
	`, parentID)
	if err != nil {
		return nil, fmt.Errorf("list replies: %w", err)
	}
	defer rows.Close()

	var items []models.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reply: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// CountByPost returns the total number of comments on a post, roots and
// replies together.
func (s *CommentStore) CountByPost(postID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM comments WHERE post_id = $1`, postID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count comments: %w", err)
	}
	return count, nil
}

// Delete removes exactly one comment row. Replies are left untouched.
func (s *CommentStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}
