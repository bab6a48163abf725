// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"inkwell/internal/middleware"
	"inkwell/internal/store"
)

// Profiles groups the author profile handlers.
type Profiles struct {
	profileStore *store.ProfileStore
	userStore    *store.UserStore
}

// NewProfiles creates a new Profiles handler group.
func NewProfiles(profileStore *store.ProfileStore, userStore *store.UserStore) *Profiles {
	return &Profiles{profileStore: profileStore, userStore: userStore}
}

type profileResponse struct {
	UserID      uuid.UUID `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Bio         string    `json:"bio"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
}

// Get returns the public profile of a user.
func (h *Profiles) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	user, err := h.userStore.FindByID(userID)
	if err != nil {
		slog.Error("profile user lookup failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if user == nil {
		respondError(w, http.StatusNotFound, "not found")
		return
	}

	profile, err := h.profileStore.FindByUserID(userID)
	if err != nil {
		slog.Error("profile lookup failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := profileResponse{UserID: user.ID, DisplayName: user.DisplayName}
	if profile != nil {
		resp.Bio = profile.Bio
		if len(profile.Avatar) > 0 {
			resp.AvatarURL = "/api/users/" + user.ID.String() + "/avatar"
		}
	}

	respondJSON(w, http.StatusOK, resp)
}

type updateProfileRequest struct {
	Bio string `json:"bio"`
}

// UpdateBio sets the authenticated user's bio.
func (h *Profiles) UpdateBio(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := validateBio(req.Bio); msg != "" {
		respondError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	if err := h.profileStore.UpdateBio(sess.UserID, req.Bio); err != nil {
		slog.Error("update bio failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"bio": req.Bio})
}

// UploadAvatar replaces the authenticated user's avatar. The image comes
// as the raw request body with its Content-Type header.
func (h *Profiles) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	data, err := io.ReadAll(io.LimitReader(r.Body, maxImageBytes+1))
	if err != nil {
		respondError(w, http.StatusBadRequest, "could not read image")
		return
	}

	mimeType := r.Header.Get("Content-Type")
	if msg := validateImage(data, mimeType); msg != "" {
		respondError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	if err := h.profileStore.UpdateAvatar(sess.UserID, data, mimeType); err != nil {
		slog.Error("update avatar failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// Avatar serves a user's avatar as raw bytes.
func (h *Profiles) Avatar(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	profile, err := h.profileStore.FindByUserID(userID)
	if err != nil {
		slog.Error("avatar lookup failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if profile == nil || len(profile.Avatar) == 0 || profile.AvatarType == nil {
		respondError(w, http.StatusNotFound, "not found")
		return
	}

	w.Header().Set("Content-Type", *profile.AvatarType)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(profile.Avatar)
}
