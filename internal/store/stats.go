// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// StatsStore computes dashboard aggregates for an author.
type StatsStore struct {
	db *sql.DB
}

// NewStatsStore creates a new StatsStore with the given database connection.
func NewStatsStore(db *sql.DB) *StatsStore {
	return &StatsStore{db: db}
}

// AuthorStats are the headline numbers on an author's dashboard.
type AuthorStats struct {
	TotalPosts    int   `json:"total_posts"`
	ArchivedPosts int   `json:"archived_posts"`
	TotalComments int   `json:"total_comments"`
	TotalViews    int64 `json:"total_views"`
}

// MonthCount is one bucket of the posts-per-month histogram.
type MonthCount struct {
	Month time.Time `json:"month"`
	Count int       `json:"count"`
}

// ForAuthor returns post, comment, and view totals across all of an
// author's posts, archived ones included.
func (s *StatsStore) ForAuthor(authorID uuid.UUID) (*AuthorStats, error) {
	stats := &AuthorStats{}
	err := s.db.QueryRow(`
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE is_archived),
		       COALESCE(SUM(views), 0)
		FROM posts WHERE author_id = $1
	`, authorID).Scan(&stats.TotalPosts, &stats.ArchivedPosts, &stats.TotalViews)
	if err != nil {
		return nil, fmt.Errorf("author post stats: %w", err)
	}

	err = s.db.QueryRow(`
		SELECT COUNT(*)
		FROM comments c JOIN posts p ON p.id = c.post_id
		WHERE p.author_id = $1
	`, authorID).Scan(&stats.TotalComments)
	if err != nil {
		return nil, fmt.Errorf("author comment stats: %w", err)
	}
	return stats, nil
}

// MonthlyPostCounts returns one bucket per month for the trailing year,
// oldest first. Months with no posts appear with a zero count so charts
// render a continuous axis.
func (s *StatsStore) MonthlyPostCounts(authorID uuid.UUID) ([]MonthCount, error) {
	rows, err := s.db.Query(`
		SELECT m.month, COUNT(p.id)
		FROM generate_series(
			date_trunc('month', NOW()) - INTERVAL '11 months',
			date_trunc('month', NOW()),
			INTERVAL '1 month'
		) AS m(month)
		LEFT JOIN posts p
			ON date_trunc('month', p.created_at) = m.month
			AND p.author_id = $1
		GROUP BY m.month
		ORDER BY m.month
	`, authorID)
	if err != nil {
		return nil, fmt.Errorf("monthly post counts: %w", err)
	}
	defer rows.Close()

	var buckets []MonthCount
	for rows.Next() {
		var b MonthCount
		if err := rows.Scan(&b.Month, &b.Count); err != nil {
			return nil, fmt.Errorf("scan month bucket: %w", err)
		}
		buckets = append(buckets, b)
	}
	return buckets, rows.Err()
}
