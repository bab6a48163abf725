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

// ProfileStore handles profile rows (bio + avatar blob), one per user.
type ProfileStore struct {
	db *sql.DB
}

// NewProfileStore creates a new ProfileStore with the given database connection.
func NewProfileStore(db *sql.DB) *ProfileStore {
	return &ProfileStore{db: db}
}

// FindByUserID retrieves a user's profile. Returns nil if not found.
func (s *ProfileStore) FindByUserID(userID uuid.UUID) (*models.Profile, error) {
	p := &models.Profile{}
	err := s.db.QueryRow(`
		SELECT user_id, bio, avatar, avatar_type, updated_at
		FROM profiles WHERE user_id = $1
	`, userID).Scan(&p.UserID, &p.Bio, &p.Avatar, &p.AvatarType, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return p, nil
}

// UpdateBio sets the profile's bio text.
func (s *ProfileStore) UpdateBio(userID uuid.UUID, bio string) error {
	_, err := s.db.Exec(`
		UPDATE profiles SET bio = $1, updated_at = NOW() WHERE user_id = $2
	`, bio, userID)
	if err != nil {
		return fmt.Errorf("update bio: %w", err)
	}
	return nil
}

// UpdateAvatar replaces the avatar blob and its MIME type.
func (s *ProfileStore) UpdateAvatar(userID uuid.UUID, avatar []byte, mimeType string) error {
	_, err := s.db.Exec(`
		UPDATE profiles SET avatar = $1, avatar_type = $2, updated_at = NOW() WHERE user_id = $3
	`, avatar, mimeType, userID)
	if err != nil {
		return fmt.Errorf("update avatar: %w", err)
	}
	return nil
}
