// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"inkwell/internal/blog"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
)

// Comments groups the comment thread handlers. All routes hang off the
// post slug, so every operation resolves the post first; a comment is
// never addressed outside the thread it belongs to.
type Comments struct {
	service *blog.CommentService
	posts   *blog.PostService
}

// NewComments creates a new Comments handler group.
func NewComments(service *blog.CommentService, posts *blog.PostService) *Comments {
	return &Comments{service: service, posts: posts}
}

func (h *Comments) resolvePost(w http.ResponseWriter, r *http.Request) (*models.Post, bool) {
	p, err := h.posts.GetBySlug(chi.URLParam(r, "slug"))
	if err != nil {
		respondServiceError(w, err)
		return nil, false
	}
	return p, true
}

// List returns the top-level comments on a post, newest first, each with
// its direct reply count. Replies load lazily via Replies.
func (h *Comments) List(w http.ResponseWriter, r *http.Request) {
	post, ok := h.resolvePost(w, r)
	if !ok {
		return
	}

	roots, err := h.service.ListRoots(post)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"comments": roots})
}

// Replies returns the direct children of one comment, newest first.
func (h *Comments) Replies(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.resolvePost(w, r); !ok {
		return
	}

	commentID, err := uuid.Parse(chi.URLParam(r, "commentID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid comment id")
		return
	}

	replies, err := h.service.Replies(commentID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"comments": replies})
}

type commentRequest struct {
	Content  string     `json:"content"`
	ParentID *uuid.UUID `json:"parent_id"`
}

// Add posts a comment. A parent_id makes it a reply; the parent must sit
// on the same post.
func (h *Comments) Add(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	post, ok := h.resolvePost(w, r)
	if !ok {
		return
	}

	var req commentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	comment, err := h.service.Add(post, sess.UserID, req.Content, req.ParentID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, comment)
}

// Delete removes one comment. Allowed for the comment's author and for
// the post's author; replies stay in place.
func (h *Comments) Delete(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	post, ok := h.resolvePost(w, r)
	if !ok {
		return
	}

	commentID, err := uuid.Parse(chi.URLParam(r, "commentID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid comment id")
		return
	}

	if err := h.service.Delete(post, commentID, sess.UserID); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
