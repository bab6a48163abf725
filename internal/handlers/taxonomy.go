// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"inkwell/internal/slug"
	"inkwell/internal/store"
)

// Taxonomy groups the category and tag handlers.
type Taxonomy struct {
	catStore *store.CategoryStore
	tagStore *store.TagStore
}

// NewTaxonomy creates a new Taxonomy handler group.
func NewTaxonomy(catStore *store.CategoryStore, tagStore *store.TagStore) *Taxonomy {
	return &Taxonomy{catStore: catStore, tagStore: tagStore}
}

// Categories lists all categories with their active post counts.
func (h *Taxonomy) Categories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.catStore.List()
	if err != nil {
		slog.Error("list categories failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"categories": cats})
}

// Tags lists all tags.
func (h *Taxonomy) Tags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.tagStore.List()
	if err != nil {
		slog.Error("list tags failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"tags": tags})
}

type tagRequest struct {
	Name string `json:"name"`
}

// EnsureTag returns the tag with the given name, creating it on first
// use. Tag names are normalized to lower case.
func (h *Taxonomy) EnsureTag(w http.ResponseWriter, r *http.Request) {
	var req tagRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	name := strings.ToLower(strings.TrimSpace(req.Name))
	if name == "" {
		respondError(w, http.StatusUnprocessableEntity, "Tag name is required.")
		return
	}

	tag, err := h.tagStore.Ensure(name, slug.Generate(name))
	if err != nil {
		slog.Error("ensure tag failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, tag)
}
