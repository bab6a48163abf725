// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/store"
)

// recentPostLimit caps the recent-posts list on the dashboard.
const recentPostLimit = 5

// Dashboard serves the author's dashboard aggregates.
type Dashboard struct {
	statsStore *store.StatsStore
	postStore  *store.PostStore
}

// NewDashboard creates a new Dashboard handler group.
func NewDashboard(statsStore *store.StatsStore, postStore *store.PostStore) *Dashboard {
	return &Dashboard{statsStore: statsStore, postStore: postStore}
}

type dashboardResponse struct {
	Stats       *store.AuthorStats  `json:"stats"`
	RecentPosts []models.Post       `json:"recent_posts"`
	Monthly     []store.MonthCount  `json:"monthly_posts"`
}

// Show returns headline totals, the latest posts, and a posts-per-month
// histogram for the trailing year.
func (h *Dashboard) Show(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	stats, err := h.statsStore.ForAuthor(sess.UserID)
	if err != nil {
		slog.Error("dashboard stats failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	recent, err := h.postStore.RecentByAuthor(sess.UserID, recentPostLimit)
	if err != nil {
		slog.Error("dashboard recent posts failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	monthly, err := h.statsStore.MonthlyPostCounts(sess.UserID)
	if err != nil {
		slog.Error("dashboard monthly counts failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, dashboardResponse{
		Stats:       stats,
		RecentPosts: recent,
		Monthly:     monthly,
	})
}
