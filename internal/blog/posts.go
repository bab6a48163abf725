// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package blog

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"inkwell/internal/models"
	"inkwell/internal/slug"
)

// PostStore is the persistence surface the post lifecycle needs. The
// concrete store.PostStore satisfies it; tests use an in-memory fake.
type PostStore interface {
	Create(p *models.Post) (*models.Post, error)
	FindByID(id uuid.UUID) (*models.Post, error)
	FindBySlug(slug string) (*models.Post, error)
	Update(p *models.Post) error
	SetArchived(id uuid.UUID, archived bool) error
	Delete(id uuid.UUID) error
	SlugExists(slug string, excludeID uuid.UUID) (bool, error)
	SetTags(postID uuid.UUID, tagIDs []uuid.UUID) error
}

// PostInput carries the author-editable fields of a post. Slug, view count,
// and the archived flag are never caller-supplied.
type PostInput struct {
	Title          string
	Excerpt        string
	Body           string
	CategoryID     *uuid.UUID
	TagIDs         []uuid.UUID
	CoverImage     []byte
	CoverImageType string
}

// PostService implements the post lifecycle: create with one-time slug
// assignment, author-only update/archive/delete, and slug-stable edits.
type PostService struct {
	store PostStore
}

// NewPostService creates a PostService over the given store.
func NewPostService(store PostStore) *PostService {
	return &PostService{store: store}
}

// Create persists a new post for author. The slug is derived from the title
// and probed against all existing posts until unique; it is assigned here
// and never recomputed for the life of the post. New posts start active
// with zero views.
func (s *PostService) Create(authorID uuid.UUID, in PostInput) (*models.Post, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	postSlug, err := slug.Unique(in.Title, func(candidate string) (bool, error) {
		return s.store.SlugExists(candidate, uuid.Nil)
	})
	if err != nil {
		return nil, fmt.Errorf("assign slug: %w", err)
	}

	p := &models.Post{
		AuthorID:   authorID,
		Title:      strings.TrimSpace(in.Title),
		Body:       in.Body,
		Slug:       postSlug,
		CategoryID: in.CategoryID,
		Views:      0,
		IsArchived: false,
	}
	applyOptional(p, in)

	created, err := s.store.Create(p)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	if len(in.TagIDs) > 0 {
		if err := s.store.SetTags(created.ID, in.TagIDs); err != nil {
			return nil, fmt.Errorf("set post tags: %w", err)
		}
	}
	return created, nil
}

// Update applies in to the post identified by id. Only the post's author
// may edit it. The slug is left untouched even when the title changes —
// slugs are permalinks.
func (s *PostService) Update(editorID, id uuid.UUID, in PostInput) (*models.Post, error) {
	p, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if p.AuthorID != editorID {
		return nil, ErrPermissionDenied
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}

	p.Title = strings.TrimSpace(in.Title)
	p.Body = in.Body
	p.CategoryID = in.CategoryID
	p.Excerpt = nil
	p.CoverImage = nil
	p.CoverImageType = nil
	applyOptional(p, in)

	if err := s.store.Update(p); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	if err := s.store.SetTags(p.ID, in.TagIDs); err != nil {
		return nil, fmt.Errorf("set post tags: %w", err)
	}
	return p, nil
}

// ToggleArchive flips the archived flag. Only the author may archive or
// restore a post. Archived posts stay fetchable by slug; public listings
// filter them out.
func (s *PostService) ToggleArchive(requesterID, id uuid.UUID) (*models.Post, error) {
	p, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if p.AuthorID != requesterID {
		return nil, ErrPermissionDenied
	}

	if err := s.store.SetArchived(p.ID, !p.IsArchived); err != nil {
		return nil, fmt.Errorf("toggle archive: %w", err)
	}
	p.IsArchived = !p.IsArchived
	return p, nil
}

// Delete removes the post and, through the store, every comment on it.
// Only the author may delete a post.
func (s *PostService) Delete(requesterID, id uuid.UUID) error {
	p, err := s.load(id)
	if err != nil {
		return err
	}
	if p.AuthorID != requesterID {
		return ErrPermissionDenied
	}

	if err := s.store.Delete(p.ID); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

// GetBySlug resolves a post by its permalink. Archived posts resolve too;
// only listings exclude them.
func (s *PostService) GetBySlug(postSlug string) (*models.Post, error) {
	p, err := s.store.FindBySlug(postSlug)
	if err != nil {
		return nil, fmt.Errorf("find post by slug: %w", err)
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *PostService) load(id uuid.UUID) (*models.Post, error) {
	p, err := s.store.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

func validateInput(in PostInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return &ValidationError{Field: "title", Msg: "is required"}
	}
	if strings.TrimSpace(in.Body) == "" {
		return &ValidationError{Field: "body", Msg: "is required"}
	}
	return nil
}

func applyOptional(p *models.Post, in PostInput) {
	if excerpt := strings.TrimSpace(in.Excerpt); excerpt != "" {
		p.Excerpt = &excerpt
	}
	if len(in.CoverImage) > 0 && in.CoverImageType != "" {
		p.CoverImage = in.CoverImage
		t := in.CoverImageType
		p.CoverImageType = &t
	}
}
