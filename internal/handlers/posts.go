// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"inkwell/internal/blog"
	"inkwell/internal/markdown"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/session"
	"inkwell/internal/store"
)

// Posts groups the post lifecycle and reading handlers.
type Posts struct {
	service   *blog.PostService
	recorder  *blog.ViewRecorder
	comments  *blog.CommentService
	sessions  *session.Store
	postStore *store.PostStore
	catStore  *store.CategoryStore
	tagStore  *store.TagStore
}

// NewPosts creates a new Posts handler group.
func NewPosts(
	service *blog.PostService,
	recorder *blog.ViewRecorder,
	comments *blog.CommentService,
	sessions *session.Store,
	postStore *store.PostStore,
	catStore *store.CategoryStore,
	tagStore *store.TagStore,
) *Posts {
	return &Posts{
		service:   service,
		recorder:  recorder,
		comments:  comments,
		sessions:  sessions,
		postStore: postStore,
		catStore:  catStore,
		tagStore:  tagStore,
	}
}

type postRequest struct {
	Title          string       `json:"title"`
	Excerpt        string       `json:"excerpt"`
	Body           string       `json:"body"`
	CategoryID     *uuid.UUID   `json:"category_id"`
	TagIDs         []uuid.UUID  `json:"tag_ids"`
	CoverImage     []byte       `json:"cover_image"` // base64 in JSON
	CoverImageType string       `json:"cover_image_type"`
}

func (req postRequest) input() blog.PostInput {
	return blog.PostInput{
		Title:          req.Title,
		Excerpt:        req.Excerpt,
		Body:           req.Body,
		CategoryID:     req.CategoryID,
		TagIDs:         req.TagIDs,
		CoverImage:     req.CoverImage,
		CoverImageType: req.CoverImageType,
	}
}

// List returns the public feed: non-archived posts, newest first. The
// category and tag query parameters filter by slug.
func (h *Posts) List(w http.ResponseWriter, r *http.Request) {
	var filter store.ListFilter

	if catSlug := r.URL.Query().Get("category"); catSlug != "" {
		cat, err := h.catStore.FindBySlug(catSlug)
		if err != nil {
			slog.Error("category lookup failed", "error", err)
			respondError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		if cat == nil {
			respondError(w, http.StatusNotFound, "category not found")
			return
		}
		filter.CategoryID = &cat.ID
	}

	if tagSlug := r.URL.Query().Get("tag"); tagSlug != "" {
		tag, err := h.tagStore.FindBySlug(tagSlug)
		if err != nil {
			slog.Error("tag lookup failed", "error", err)
			respondError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		if tag == nil {
			respondError(w, http.StatusNotFound, "tag not found")
			return
		}
		filter.TagID = &tag.ID
	}

	posts, err := h.postStore.ListPublic(filter)
	if err != nil {
		slog.Error("list posts failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"posts": posts})
}

// Mine returns every post by the authenticated author, archived included.
func (h *Posts) Mine(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	posts, err := h.postStore.ListByAuthor(sess.UserID)
	if err != nil {
		slog.Error("list own posts failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"posts": posts})
}

// postDetail is the reading view of a post: rendered body, live view
// count, and the size of its comment thread.
type postDetail struct {
	*models.Post
	BodyHTML     string `json:"body_html"`
	CommentCount int    `json:"comment_count"`
}

// Get resolves a post by slug and counts the view. Archived posts resolve
// for direct links; only the public feed hides them.
func (h *Posts) Get(w http.ResponseWriter, r *http.Request) {
	post, err := h.service.GetBySlug(chi.URLParam(r, "slug"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	// Count the view, deduplicated per session (or per anonymous viewer
	// cookie). Failures here never block the read.
	viewerUID := uuid.Nil
	if sess := middleware.SessionFromCtx(r.Context()); sess != nil {
		viewerUID = sess.UserID
	}
	viewerID, err := h.sessions.ViewerID(w, r)
	if err != nil {
		slog.Warn("viewer id unavailable, view not counted", "post", post.ID, "error", err)
	} else {
		views, recErr := h.recorder.Record(r.Context(), post, viewerUID, h.sessions.Flags(viewerID))
		if recErr != nil {
			slog.Warn("view accounting failed", "post", post.ID, "error", recErr)
		} else {
			post.Views = views
		}
	}

	bodyHTML, err := markdown.ToHTML(post.Body)
	if err != nil {
		slog.Error("markdown render failed", "post", post.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	count, err := h.comments.Count(post)
	if err != nil {
		slog.Error("comment count failed", "post", post.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, postDetail{
		Post:         post,
		BodyHTML:     bodyHTML,
		CommentCount: count,
	})
}

// Create publishes a new post by the authenticated author.
func (h *Posts) Create(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	var req postRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.CoverImage) > 0 {
		if msg := validateImage(req.CoverImage, req.CoverImageType); msg != "" {
			respondError(w, http.StatusUnprocessableEntity, msg)
			return
		}
	}

	post, err := h.service.Create(sess.UserID, req.input())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, post)
}

// Update edits a post. Author-only; the slug never changes.
func (h *Posts) Update(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	var req postRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.CoverImage) > 0 {
		if msg := validateImage(req.CoverImage, req.CoverImageType); msg != "" {
			respondError(w, http.StatusUnprocessableEntity, msg)
			return
		}
	}

	post, err := h.service.Update(sess.UserID, id, req.input())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, post)
}

// ToggleArchive flips a post between active and archived. Author-only.
func (h *Posts) ToggleArchive(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	post, err := h.service.ToggleArchive(sess.UserID, id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, post)
}

// Delete removes a post and its whole comment thread. Author-only.
func (h *Posts) Delete(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	if err := h.service.Delete(sess.UserID, id); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// Cover serves a post's cover image as raw bytes with its stored MIME type.
func (h *Posts) Cover(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	blob, mimeType, err := h.postStore.CoverImage(id)
	if err != nil {
		slog.Error("load cover failed", "post", id, "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if blob == nil {
		respondError(w, http.StatusNotFound, "not found")
		return
	}

	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(blob)
}
