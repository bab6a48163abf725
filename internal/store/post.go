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

// PostStore handles all post-related database operations.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

// postColumns excludes the cover image blob; listings never need it and it
// can be large. FindByID/FindBySlug select it explicitly.
const postColumns = `p.id, p.author_id, p.title, p.excerpt, p.body, p.slug,
       p.category_id, p.cover_image_type, p.views, p.is_archived,
       p.created_at, p.updated_at, u.display_name`

func scanPost(scanner interface{ Scan(...any) error }) (*models.Post, error) {
	p := &models.Post{}
	err := scanner.Scan(
		&p.ID, &p.AuthorID, &p.Title, &p.Excerpt, &p.Body, &p.Slug,
		&p.CategoryID, &p.CoverImageType, &p.Views, &p.IsArchived,
		&p.CreatedAt, &p.UpdatedAt, &p.AuthorName,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Create inserts a new post and returns it with the generated ID. The slug
// must already be assigned by the caller; the unique index on posts.slug is
// the last line of defense against a race between two identical titles.
func (s *PostStore) Create(p *models.Post) (*models.Post, error) {
	var id uuid.UUID
	err := s.db.QueryRow(`
		INSERT INTO posts (author_id, title, excerpt, body, slug, category_id,
		                   cover_image, cover_image_type, views, is_archived)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`, p.AuthorID, p.Title, p.Excerpt, p.Body, p.Slug, p.CategoryID,
		p.CoverImage, p.CoverImageType, p.Views, p.IsArchived,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return s.FindByID(id)
}

// FindByID retrieves a post by its UUID, including the cover image blob.
// Returns nil if not found.
func (s *PostStore) FindByID(id uuid.UUID) (*models.Post, error) {
	p := &models.Post{}
	err := s.db.QueryRow(`
		SELECT `+postColumns+`, p.cover_image
		FROM posts p JOIN users u ON u.id = p.author_id
		WHERE p.id = $1
	`, id).Scan(
		&p.ID, &p.AuthorID, &p.Title, &p.Excerpt, &p.Body, &p.Slug,
		&p.CategoryID, &p.CoverImageType, &p.Views, &p.IsArchived,
		&p.CreatedAt, &p.UpdatedAt, &p.AuthorName, &p.CoverImage,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	return p, s.attachTags(p)
}

// FindBySlug retrieves a post by its permalink slug. Archived posts resolve
// too — only public listings exclude them. Returns nil if not found.
func (s *PostStore) FindBySlug(slug string) (*models.Post, error) {
	p := &models.Post{}
	err := s.db.QueryRow(`
		SELECT `+postColumns+`, p.cover_image
		FROM posts p JOIN users u ON u.id = p.author_id
		WHERE p.slug = $1
	`, slug).Scan(
		&p.ID, &p.AuthorID, &p.Title, &p.Excerpt, &p.Body, &p.Slug,
		&p.CategoryID, &p.CoverImageType, &p.Views, &p.IsArchived,
		&p.CreatedAt, &p.UpdatedAt, &p.AuthorName, &p.CoverImage,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by slug: %w", err)
	}
	return p, s.attachTags(p)
}

// ListFilter narrows the public post listing.
type ListFilter struct {
	CategoryID *uuid.UUID
	TagID      *uuid.UUID
}

// ListPublic returns non-archived posts, newest first, optionally filtered
// by category or tag.
func (s *PostStore) ListPublic(filter ListFilter) ([]models.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts p JOIN users u ON u.id = p.author_id
		WHERE p.is_archived = FALSE`
	var args []any

	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		query += fmt.Sprintf(" AND p.category_id = $%d", len(args))
	}
	if filter.TagID != nil {
		args = append(args, *filter.TagID)
		query += fmt.Sprintf(
			" AND EXISTS (SELECT 1 FROM post_tags pt WHERE pt.post_id = p.id AND pt.tag_id = $%d)",
			len(args))
	}
	query += " ORDER BY p.created_at DESC"

	return s.list(query, args...)
}

// ListByAuthor returns every post by author (archived included), newest first.
func (s *PostStore) ListByAuthor(authorID uuid.UUID) ([]models.Post, error) {
	return s.list(`
		SELECT `+postColumns+`
		FROM posts p JOIN users u ON u.id = p.author_id
		WHERE p.author_id = $1
		ORDER BY p.created_at DESC
	`, authorID)
}

// RecentByAuthor returns the author's latest posts, capped at limit.
func (s *PostStore) RecentByAuthor(authorID uuid.UUID, limit int) ([]models.Post, error) {
	return s.list(`
		SELECT `+postColumns+`
		FROM posts p JOIN users u ON u.id = p.author_id
		WHERE p.author_id = $1
		ORDER BY p.created_at DESC
		LIMIT $2
	`, authorID, limit)
}

func (s *PostStore) list(query string, args ...any) ([]models.Post, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var items []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, s.attachTagsAll(items)
}

// Update modifies the author-editable fields of a post. Slug, views, and
// is_archived are deliberately absent: the slug is immutable, the counter
// is only ever touched by IncrementViews, and archiving goes through
// SetArchived.
func (s *PostStore) Update(p *models.Post) error {
	_, err := s.db.Exec(`
		UPDATE posts SET
			title = $1, excerpt = $2, body = $3, category_id = $4,
			cover_image = $5, cover_image_type = $6, updated_at = NOW()
		WHERE id = $7
	`, p.Title, p.Excerpt, p.Body, p.CategoryID,
		p.CoverImage, p.CoverImageType, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	return nil
}

// SetArchived sets the archived flag on a post.
func (s *PostStore) SetArchived(id uuid.UUID, archived bool) error {
	_, err := s.db.Exec(`
		UPDATE posts SET is_archived = $1, updated_at = NOW() WHERE id = $2
	`, archived, id)
	if err != nil {
		return fmt.Errorf("set archived: %w", err)
	}
	return nil
}

// Delete removes a post. Comments go with it (ON DELETE CASCADE on
// comments.post_id).
func (s *PostStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

// IncrementViews bumps the view counter by one and returns the new value.
// Targeting the single column keeps concurrent title/body edits intact.
func (s *PostStore) IncrementViews(id uuid.UUID) (int64, error) {
	var views int64
	err := s.db.QueryRow(`
		UPDATE posts SET views = views + 1 WHERE id = $1 RETURNING views
	`, id).Scan(&views)
	if err != nil {
		return 0, fmt.Errorf("increment views: %w", err)
	}
	return views, nil
}

// Views returns the current view counter for a post.
func (s *PostStore) Views(id uuid.UUID) (int64, error) {
	var views int64
	err := s.db.QueryRow(`SELECT views FROM posts WHERE id = $1`, id).Scan(&views)
	if err != nil {
		return 0, fmt.Errorf("read views: %w", err)
	}
	return views, nil
}

// SlugExists reports whether any post OTHER than excludeID holds slug.
// Pass uuid.Nil when creating, so every existing post counts.
func (s *PostStore) SlugExists(slug string, excludeID uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`
		SELECT EXISTS (SELECT 1 FROM posts WHERE slug = $1 AND id <> $2)
	`, slug, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("slug exists: %w", err)
	}
	return exists, nil
}

// SetTags replaces a post's tag set in one transaction.
func (s *PostStore) SetTags(postID uuid.UUID, tagIDs []uuid.UUID) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM post_tags WHERE post_id = $1`, postID); err != nil {
		return fmt.Errorf("clear post tags: %w", err)
	}
	for _, tagID := range tagIDs {
		if _, err := tx.Exec(`
			INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, postID, tagID); err != nil {
			return fmt.Errorf("insert post tag %s: %w", tagID, err)
		}
	}
	return tx.Commit()
}

// attachTags loads the tag set for a single post.
func (s *PostStore) attachTags(p *models.Post) error {
	items := []models.Post{*p}
	if err := s.attachTagsAll(items); err != nil {
		return err
	}
	p.Tags = items[0].Tags
	return nil
}

// attachTagsAll loads tags for a slice of posts in one query.
func (s *PostStore) attachTagsAll(posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	// Build placeholder list for IN clause.
	placeholders := ""
	args := make([]any, len(posts))
	for i := range posts {
		if i > 0 {
			placeholders += ", "
		}
		placeholders += fmt.Sprintf("$%d", i+1)
		args[i] = posts[i].ID
	}

	rows, err := s.db.Query(`
		SELECT pt.post_id, t.id, t.name, t.slug, t.created_at
		FROM post_tags pt JOIN tags t ON t.id = pt.tag_id
		WHERE pt.post_id IN (`+placeholders+`)
		ORDER BY t.name
	`, args...)
	if err != nil {
		return fmt.Errorf("load post tags: %w", err)
	}
	defer rows.Close()

	byPost := make(map[uuid.UUID][]models.Tag)
	for rows.Next() {
		var postID uuid.UUID
		var t models.Tag
		if err := rows.Scan(&postID, &t.ID, &t.Name, &t.Slug, &t.CreatedAt); err != nil {
			return fmt.Errorf("scan post tag: %w", err)
		}
		byPost[postID] = append(byPost[postID], t)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range posts {
		posts[i].Tags = byPost[posts[i].ID]
	}
	return nil
}

// CoverImage returns the raw cover blob and MIME type for a post, or nil
// when the post has no cover image.
func (s *PostStore) CoverImage(id uuid.UUID) ([]byte, string, error) {
	var blob []byte
	var mimeType sql.NullString
	err := s.db.QueryRow(`
		SELECT cover_image, cover_image_type FROM posts WHERE id = $1
	`, id).Scan(&blob, &mimeType)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("load cover image: %w", err)
	}
	if len(blob) == 0 || !mimeType.Valid {
		return nil, "", nil
	}
	return blob, mimeType.String, nil
}
